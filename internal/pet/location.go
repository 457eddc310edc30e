package pet

// Location is the room of the house the pet is currently in.
type Location string

const (
	LocationBedroom    Location = "bedroom"
	LocationStudy      Location = "study"
	LocationLivingRoom Location = "living-room"
	LocationPlayArea   Location = "play-area"
	LocationOutside    Location = "outside"
)

// InferLocation picks the room that fits the pet's mood and vitals. A dead pet stays where it was.
func InferLocation(s State) Location {
	if !s.IsAlive {
		if s.Location == "" {
			return LocationLivingRoom
		}
		return s.Location
	}

	switch s.Mood {
	case MoodSleeping, MoodTired, MoodSick:
		return LocationBedroom
	}

	st := s.Stats
	switch {
	case st.Hunger > 70:
		return LocationStudy
	case st.Happiness < 40:
		return LocationBedroom
	case st.Energy > 70 && st.Happiness > 60:
		return LocationPlayArea
	case st.Happiness > 70:
		return LocationLivingRoom
	default:
		return LocationStudy
	}
}
