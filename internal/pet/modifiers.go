package pet

import "math"

// Modifiers are the decay multipliers and energy costs in effect for a given personality and ability set.
type Modifiers struct {
	HungerDecayRate      float64
	HappinessDecayRate   float64
	EnergyDecayRate      float64
	CleanlinessDecayRate float64
	TrainingEnergyCost   float64
	PlayEnergyCost       float64
}

// CalculateModifiers composes personality discounts and ability multipliers.
// Everything is multiplicative so application order does not matter.
func CalculateModifiers(p PersonalityTraits, abilities []Ability) Modifiers {
	m := Modifiers{
		HungerDecayRate:      1.0,
		HappinessDecayRate:   1.0,
		EnergyDecayRate:      1.0,
		CleanlinessDecayRate: 1.0,
		TrainingEnergyCost:   BaseTrainingEnergyCost,
		PlayEnergyCost:       BasePlayEnergyCost,
	}

	if p.Intelligence >= HighTraitThreshold {
		m.HungerDecayRate *= 0.85
	}
	if p.Playfulness >= HighTraitThreshold {
		m.HappinessDecayRate *= 0.75
		m.PlayEnergyCost -= PlayfulPlayDiscount
	}
	if p.Discipline >= HighTraitThreshold {
		m.scaleDecay(0.85)
	}
	// Friendliness only matters at action time (play bonus).

	for _, a := range abilities {
		if a.StatDecayModifier != 0 {
			m.scaleDecay(a.StatDecayModifier)
		}
		if a.EnergyCostModifier != 0 {
			m.TrainingEnergyCost *= a.EnergyCostModifier
			m.PlayEnergyCost *= a.EnergyCostModifier
		}
	}

	return m
}

func (m *Modifiers) scaleDecay(f float64) {
	m.HungerDecayRate *= f
	m.HappinessDecayRate *= f
	m.EnergyDecayRate *= f
	m.CleanlinessDecayRate *= f
}

// PlayCost is the energy actually consumed by a play session.
func (m Modifiers) PlayCost() float64 {
	return math.Round(m.PlayEnergyCost)
}

// TrainingCost is the energy actually consumed by a training session.
func (m Modifiers) TrainingCost() float64 {
	return math.Round(m.TrainingEnergyCost)
}
