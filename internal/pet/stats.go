package pet

// Stats are the five vitals. Higher hunger means hungrier; every other vital is better when high.
type Stats struct {
	Hunger      float64 `json:"hunger"`
	Happiness   float64 `json:"happiness"`
	Energy      float64 `json:"energy"`
	Health      float64 `json:"health"`
	Cleanliness float64 `json:"cleanliness"`
}

// PersonalityTraits only move in response to owner actions; they never decay.
type PersonalityTraits struct {
	Intelligence float64 `json:"intelligence"`
	Friendliness float64 `json:"friendliness"`
	Playfulness  float64 `json:"playfulness"`
	Discipline   float64 `json:"discipline"`
}

// Environment describes the pet's home, independent of its vitals.
type Environment struct {
	HouseTraining  float64 `json:"houseTraining"`
	Cleanliness    float64 `json:"cleanliness"`
	Enrichment     float64 `json:"enrichment"`
	KnowledgeLevel float64 `json:"knowledgeLevel"`
}

func clamp(v float64) float64 {
	return max(MinStat, min(v, MaxStat))
}

// The With/Add helpers below are the only way fields change; each clamps to [0,100].

func (s Stats) AddHunger(d float64) Stats {
	s.Hunger = clamp(s.Hunger + d)
	return s
}

func (s Stats) AddHappiness(d float64) Stats {
	s.Happiness = clamp(s.Happiness + d)
	return s
}

func (s Stats) AddEnergy(d float64) Stats {
	s.Energy = clamp(s.Energy + d)
	return s
}

func (s Stats) AddHealth(d float64) Stats {
	s.Health = clamp(s.Health + d)
	return s
}

func (s Stats) AddCleanliness(d float64) Stats {
	s.Cleanliness = clamp(s.Cleanliness + d)
	return s
}

func (s Stats) WithEnergy(v float64) Stats {
	s.Energy = clamp(v)
	return s
}

// Clamped returns a copy with every vital forced into range.
func (s Stats) Clamped() Stats {
	return Stats{
		Hunger:      clamp(s.Hunger),
		Happiness:   clamp(s.Happiness),
		Energy:      clamp(s.Energy),
		Health:      clamp(s.Health),
		Cleanliness: clamp(s.Cleanliness),
	}
}

func (p PersonalityTraits) AddIntelligence(d float64) PersonalityTraits {
	p.Intelligence = clamp(p.Intelligence + d)
	return p
}

func (p PersonalityTraits) AddFriendliness(d float64) PersonalityTraits {
	p.Friendliness = clamp(p.Friendliness + d)
	return p
}

func (p PersonalityTraits) AddPlayfulness(d float64) PersonalityTraits {
	p.Playfulness = clamp(p.Playfulness + d)
	return p
}

func (p PersonalityTraits) AddDiscipline(d float64) PersonalityTraits {
	p.Discipline = clamp(p.Discipline + d)
	return p
}

// Clamped returns a copy with every trait forced into range.
func (p PersonalityTraits) Clamped() PersonalityTraits {
	return PersonalityTraits{
		Intelligence: clamp(p.Intelligence),
		Friendliness: clamp(p.Friendliness),
		Playfulness:  clamp(p.Playfulness),
		Discipline:   clamp(p.Discipline),
	}
}

func (e Environment) AddCleanliness(d float64) Environment {
	e.Cleanliness = clamp(e.Cleanliness + d)
	return e
}

// AddKnowledge raises the knowledge level by at most gain, never past the cap.
func (e Environment) AddKnowledge(gain float64) Environment {
	e.KnowledgeLevel = clamp(e.KnowledgeLevel + min(gain, MaxStat-e.KnowledgeLevel))
	return e
}

// Clamped returns a copy with every field forced into range.
func (e Environment) Clamped() Environment {
	return Environment{
		HouseTraining:  clamp(e.HouseTraining),
		Cleanliness:    clamp(e.Cleanliness),
		Enrichment:     clamp(e.Enrichment),
		KnowledgeLevel: clamp(e.KnowledgeLevel),
	}
}
