package pet

import "time"

// Game constants
const (
	DefaultPetName = "Tama"
	MaxStat        = 100.0
	MinStat        = 0.0
	StorageKey     = "tamagotchi-storage" // Fixed identifier of the persisted document

	// Stat change rates (per second)
	HungerIncreaseRate        = 0.05
	HappinessDecreaseRate     = 0.03
	EnergyDecreaseRate        = 0.02
	CleanlinessDecreaseRate   = 0.04
	HealthDecreaseRate        = 0.01 // Only while a vital is critical
	HealthRegenRateMultiplier = 0.1  // Applied to the summed ability regen bonus

	// Health decays while any of these is breached
	StarvingThreshold  = 90 // hunger above
	FilthyThreshold    = 20 // cleanliness below
	MiserableThreshold = 20 // happiness below

	// Mood thresholds
	TiredThreshold  = 20 // energy below
	SickThreshold   = 30 // health below
	HungryThreshold = 80 // hunger above
	DirtyThreshold  = 30 // cleanliness below
	SadThreshold    = 30 // happiness below

	// Personality thresholds
	HighTraitThreshold   = 70
	BranchTraitThreshold = 60
	MinBirthTrait        = 30
	MaxBirthTrait        = 70

	// Care quality
	CareSmoothing       = 0.1 // EMA alpha
	GoodCareThreshold   = 50  // Average score above which evolution runs at full speed
	NeglectedCareFactor = 0.7

	// Evolution thresholds (in days of care-adjusted age)
	ChildAgeDays = 2
	TeenAgeDays  = 5
	AdultAgeDays = 10

	// Action costs and effects
	BaseTrainingEnergyCost = 10
	BasePlayEnergyCost     = 15
	PlayfulPlayDiscount    = 3
	FriendlyPlayBonus      = 3

	FeedHungerDecrease    = 30
	FeedHappinessIncrease = 10
	FeedDisciplineGain    = 0.5

	PlayHappinessIncrease = 20
	PlayHungerIncrease    = 10
	PlayPlayfulnessGain   = 1
	PlayFriendlinessGain  = 0.5

	CleanCleanlinessIncrease = 50
	CleanHappinessIncrease   = 5

	WakeHappinessIncrease      = 10 // Natural wake
	EarlyWakeEnergyIncrease    = 30
	EarlyWakeHappinessDecrease = 5

	MedicineHealthLimit       = 80 // Medicine refused above this health
	MedicineHealthIncrease    = 40
	MedicineHappinessDecrease = 10

	TrainHungerIncrease   = 5
	TrainIntelligenceGain = 1.5
	TrainDisciplineGain   = 1

	KnowledgeHungerDecrease      = 15
	KnowledgeIntelligenceGain    = 0.5
	KnowledgeLevelGain           = 5
	PageHungerDecrease           = 20
	PageIntelligenceGain         = 1
	PageKnowledgeLevelGain       = 10
	RoomCleanlinessIncrease      = 30
	RoomHappinessIncrease        = 5
	VisitHappinessIncrease       = 10
	VisitFriendlinessGain        = 1
	ConversationFriendlinessGain = 0.3

	// Knowledge limits (runes)
	ManualContentLimit = 5000
	PageContentLimit   = 3000

	// Social and AI context limits
	MaxVisitors            = 10
	MaxVisitorGifts        = 3
	MaxKnowledgeContext    = 10
	MaxConversationContext = 5

	// Timing
	SleepDuration     = 8 * time.Second // Real time standing in for eight hours
	MissYouAfter      = 30 * time.Minute
	ReminderRetention = 7 * 24 * time.Hour
)

// Status emojis
const (
	StatusEmojiHappy    = "😸"
	StatusEmojiSleeping = "😴"
	StatusEmojiHungry   = "🙀"
	StatusEmojiSad      = "😿"
	StatusEmojiSick     = "🤢"
	StatusEmojiTired    = "😾"
	StatusEmojiDirty    = "💩"
	StatusEmojiDead     = "💀"
)
