package pet

import (
	"log"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// Testable time and id functions
var (
	TimeNow = func() time.Time { return time.Now().UTC() }
	NewID   = func() string { return uuid.NewString() }
)

// RandSource is the randomness needed at birth. *rand.Rand satisfies it.
type RandSource interface {
	Intn(n int) int
}

// Action names an owner action in the activity log.
type Action string

const (
	ActionFeed             Action = "feed"
	ActionPlay             Action = "play"
	ActionClean            Action = "clean"
	ActionSleep            Action = "sleep"
	ActionWake             Action = "wake"
	ActionMedicine         Action = "medicine"
	ActionTrain            Action = "train"
	ActionLearn            Action = "learn"
	ActionCleanEnvironment Action = "clean-environment"
	ActionVisit            Action = "visit"
)

// ActivityLog records the vitals around one owner action.
type ActivityLog struct {
	ID          string    `json:"id"`
	Action      Action    `json:"action"`
	Timestamp   time.Time `json:"timestamp"`
	StatsBefore Stats     `json:"statsBefore"`
	StatsAfter  Stats     `json:"statsAfter"`
}

// Conversation is one exchange with the pet through the AI provider.
type Conversation struct {
	ID             string    `json:"id"`
	Timestamp      time.Time `json:"timestamp"`
	UserMessage    string    `json:"userMessage"`
	AIResponse     string    `json:"aiResponse"`
	EvolutionStage Stage     `json:"evolutionStage"`
	Mood           Mood      `json:"mood"`
}

// State is the whole pet aggregate. Every operation in this package takes a State by value
// and returns the next one; nothing here mutates a State in place.
type State struct {
	Name            string            `json:"name"`
	BirthDate       time.Time         `json:"birthDate"`
	Mood            Mood              `json:"currentMood"`
	Location        Location          `json:"currentLocation"`
	Stage           Stage             `json:"evolutionStage"`
	Branch          Branch            `json:"evolutionBranch"`
	Stats           Stats             `json:"stats"`
	Personality     PersonalityTraits `json:"personality"`
	Care            CareQuality       `json:"careQuality"`
	Environment     Environment       `json:"environment"`
	Knowledge       []KnowledgeItem   `json:"knowledgeBase"`
	Visitors        []Visitor         `json:"visitors"`
	Reminders       []Reminder        `json:"reminders"`
	ActivityLogs    []ActivityLog     `json:"activityLogs"`
	Conversations   []Conversation    `json:"conversations"`
	IsAlive         bool              `json:"isAlive"`
	LastUpdated     time.Time         `json:"lastUpdated"`
	LastInteraction time.Time         `json:"lastInteractionTime"`

	// Sleep episode bookkeeping so a deferred wake can tell whether it is still current.
	SleepEpisode   uint64     `json:"sleepEpisode,omitempty"`
	SleepStartedAt *time.Time `json:"sleepStartedAt,omitempty"`
}

// NewState returns an unnamed pet with the starting vitals.
func NewState(now time.Time) State {
	return State{
		Name:      DefaultPetName,
		BirthDate: now,
		Mood:      MoodHappy,
		Location:  LocationLivingRoom,
		Stage:     StageBaby,
		Branch:    BranchNone,
		Stats: Stats{
			Hunger:      50,
			Happiness:   100,
			Energy:      100,
			Health:      100,
			Cleanliness: 100,
		},
		Personality: PersonalityTraits{
			Intelligence: 50,
			Friendliness: 50,
			Playfulness:  50,
			Discipline:   50,
		},
		Care: CareQuality{
			FeedingScore:   70,
			HappinessScore: 90,
			HealthScore:    100,
		},
		Environment: Environment{
			HouseTraining:  20,
			Cleanliness:    80,
			Enrichment:     50,
			KnowledgeLevel: 0,
		},
		IsAlive:         true,
		LastUpdated:     now,
		LastInteraction: now,
	}
}

// Adopt names a new pet. Naming is the birth moment: the birth date resets and each trait is
// rolled uniformly in [30,70].
func Adopt(name string, rng RandSource, now time.Time) State {
	s := NewState(now)
	if name != "" {
		s.Name = name
	}
	roll := func() float64 {
		return float64(MinBirthTrait + rng.Intn(MaxBirthTrait-MinBirthTrait+1))
	}
	s.Personality = PersonalityTraits{
		Intelligence: roll(),
		Friendliness: roll(),
		Playfulness:  roll(),
		Discipline:   roll(),
	}
	log.Printf("Adopted %s (intelligence %.0f, friendliness %.0f, playfulness %.0f, discipline %.0f)",
		s.Name, s.Personality.Intelligence, s.Personality.Friendliness, s.Personality.Playfulness, s.Personality.Discipline)
	return s
}

// NewRand returns a seeded RandSource; a zero seed uses the current time.
func NewRand(seed int64) RandSource {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// Abilities returns what the pet has unlocked at its current branch and stage.
func (s State) Abilities() []Ability {
	return Abilities(s.Branch, s.Stage)
}

// Modifiers returns the multipliers currently in effect.
func (s State) Modifiers() Modifiers {
	return CalculateModifiers(s.Personality, s.Abilities())
}

// Sleeping reports whether a sleep episode is in progress.
func (s State) Sleeping() bool {
	return s.Mood == MoodSleeping
}

// AgeInDays returns the uncorrected age.
func (s State) AgeInDays(now time.Time) float64 {
	return now.Sub(s.BirthDate).Hours() / 24
}

func newActivityLog(action Action, before, after Stats, now time.Time) ActivityLog {
	return ActivityLog{
		ID:          NewID(),
		Action:      action,
		Timestamp:   now,
		StatsBefore: before,
		StatsAfter:  after,
	}
}

// prepend returns a fresh slice with v in front; the input slice is never written to.
func prepend[T any](v T, list []T) []T {
	out := make([]T, 0, len(list)+1)
	out = append(out, v)
	return append(out, list...)
}
