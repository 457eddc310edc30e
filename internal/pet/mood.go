package pet

// Mood is the discrete, derived behaviour state of the pet.
type Mood string

const (
	MoodHappy    Mood = "happy"
	MoodSad      Mood = "sad"
	MoodHungry   Mood = "hungry"
	MoodTired    Mood = "tired"
	MoodSick     Mood = "sick"
	MoodDirty    Mood = "dirty"
	MoodSleeping Mood = "sleeping" // Only ever set by the sleep action
)

// ClassifyMood maps vitals to a mood. The checks run in priority order and the first match wins.
func ClassifyMood(s Stats) Mood {
	switch {
	case s.Energy < TiredThreshold:
		return MoodTired
	case s.Health < SickThreshold:
		return MoodSick
	case s.Hunger > HungryThreshold:
		return MoodHungry
	case s.Cleanliness < DirtyThreshold:
		return MoodDirty
	case s.Happiness < SadThreshold:
		return MoodSad
	default:
		return MoodHappy
	}
}

// MoodFor is ClassifyMood plus the dead override.
func MoodFor(alive bool, s Stats) Mood {
	if !alive {
		return MoodSad
	}
	return ClassifyMood(s)
}
