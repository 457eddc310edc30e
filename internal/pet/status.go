package pet

var moodEmoji = map[Mood]string{
	MoodHappy:    StatusEmojiHappy,
	MoodSad:      StatusEmojiSad,
	MoodHungry:   StatusEmojiHungry,
	MoodTired:    StatusEmojiTired,
	MoodSick:     StatusEmojiSick,
	MoodDirty:    StatusEmojiDirty,
	MoodSleeping: StatusEmojiSleeping,
}

var moodLabel = map[Mood]string{
	MoodHappy:    "Happy",
	MoodSad:      "Sad",
	MoodHungry:   "Hungry",
	MoodTired:    "Tired",
	MoodSick:     "Sick",
	MoodDirty:    "Dirty",
	MoodSleeping: "Sleeping",
}

// GetStatus returns the status emoji(s) for the pet
func GetStatus(s State) string {
	if !s.IsAlive {
		return StatusEmojiDead
	}

	// Icon 1: Activity (what pet is DOING)
	activity := StatusEmojiHappy
	if s.Sleeping() {
		activity = StatusEmojiSleeping
	}

	// Icon 2: Feeling. A sleeping pet still shows what it will wake up needing.
	mood := s.Mood
	if s.Sleeping() {
		mood = ClassifyMood(s.Stats)
	}
	if mood == MoodHappy {
		return activity
	}
	return activity + moodEmoji[mood]
}

// GetStatusWithLabel returns status with text labels for the UI
func GetStatusWithLabel(s State) string {
	if !s.IsAlive {
		return "💀 Dead"
	}

	status := GetStatus(s)
	if s.Sleeping() {
		if status != StatusEmojiSleeping {
			return status + " Sleeping (needs care)"
		}
		return status + " Sleeping"
	}
	label, ok := moodLabel[s.Mood]
	if !ok {
		label = "Happy"
	}
	return status + " " + label
}

// MoodEmoji returns the single emoji for a mood.
func MoodEmoji(m Mood) string {
	if e, ok := moodEmoji[m]; ok {
		return e
	}
	return StatusEmojiHappy
}
