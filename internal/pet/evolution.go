package pet

import (
	"log"
	"time"
)

// Stage is an ordered growth milestone.
type Stage string

const (
	StageBaby  Stage = "baby"
	StageChild Stage = "child"
	StageTeen  Stage = "teen"
	StageAdult Stage = "adult"
)

// Rank orders stages; unknown values rank below baby.
func (s Stage) Rank() int {
	switch s {
	case StageBaby:
		return 0
	case StageChild:
		return 1
	case StageTeen:
		return 2
	case StageAdult:
		return 3
	default:
		return -1
	}
}

// Valid reports whether s is one of the four known stages.
func (s Stage) Valid() bool { return s.Rank() >= 0 }

// Branch is the evolutionary path chosen once at the baby to child transition.
type Branch string

const (
	BranchNone        Branch = "none"
	BranchSmart       Branch = "smart"
	BranchEnergetic   Branch = "energetic"
	BranchDisciplined Branch = "disciplined"
)

// Valid reports whether b is one of the known branches.
func (b Branch) Valid() bool {
	switch b {
	case BranchNone, BranchSmart, BranchEnergetic, BranchDisciplined:
		return true
	}
	return false
}

// Ability is a passive bundle of multipliers unlocked by branch and stage.
// A zero field means the ability leaves that value alone.
type Ability struct {
	Name               string  `json:"name"`
	Description        string  `json:"description"`
	StatDecayModifier  float64 `json:"statDecayModifier,omitempty"`
	EnergyCostModifier float64 `json:"energyCostModifier,omitempty"`
	TrainingBonus      float64 `json:"trainingBonus,omitempty"`
	HappinessBonus     float64 `json:"happinessBonus,omitempty"`
	HealthRegenBonus   float64 `json:"healthRegenBonus,omitempty"`
}

var abilityTable = map[Branch]map[Stage]Ability{
	BranchSmart: {
		StageChild: {
			Name:               "Quick Learner",
			Description:        "Training costs 30% less energy and grants +0.5 intelligence bonus",
			EnergyCostModifier: 0.7,
			TrainingBonus:      0.5,
		},
		StageTeen: {
			Name:          "Sharp Mind",
			Description:   "Training bonus increased to +1.0",
			TrainingBonus: 1.0,
		},
		StageAdult: {
			Name:               "Genius",
			Description:        "All energy costs reduced by 20%, training gives +1.5 intelligence",
			EnergyCostModifier: 0.8,
			TrainingBonus:      1.5,
		},
	},
	BranchEnergetic: {
		StageChild: {
			Name:               "Playful Spirit",
			Description:        "Playing costs 30% less energy and grants +5 happiness bonus",
			EnergyCostModifier: 0.7,
			HappinessBonus:     5,
		},
		StageTeen: {
			Name:           "Endless Energy",
			Description:    "Play happiness bonus +10",
			HappinessBonus: 10,
		},
		StageAdult: {
			Name:               "Boundless Joy",
			Description:        "Play gives +15 happiness and costs 50% less",
			EnergyCostModifier: 0.5,
			HappinessBonus:     15,
		},
	},
	BranchDisciplined: {
		StageChild: {
			Name:              "Good Habits",
			Description:       "All stats decay 20% slower",
			StatDecayModifier: 0.8,
		},
		StageTeen: {
			Name:              "Self-Care",
			Description:       "Stats decay 30% slower, slight health regeneration",
			StatDecayModifier: 0.7,
			HealthRegenBonus:  0.5,
		},
		StageAdult: {
			Name:              "Perfect Balance",
			Description:       "Stats decay 40% slower, moderate health regeneration",
			StatDecayModifier: 0.6,
			HealthRegenBonus:  1.0,
		},
	},
}

// Abilities returns the unlocked abilities for a branch and stage.
func Abilities(b Branch, s Stage) []Ability {
	if b == BranchNone || s == StageBaby {
		return nil
	}
	a, ok := abilityTable[b][s]
	if !ok {
		return nil
	}
	return []Ability{a}
}

// StageFor derives the stage from absolute age, slowed down by poor care.
func StageFor(birth time.Time, care CareQuality, now time.Time) Stage {
	ageInDays := now.Sub(birth).Hours() / 24

	careFactor := 1.0
	if care.OverallAverage() <= GoodCareThreshold {
		careFactor = NeglectedCareFactor
	}
	adjusted := ageInDays * careFactor

	switch {
	case adjusted >= AdultAgeDays:
		return StageAdult
	case adjusted >= TeenAgeDays:
		return StageTeen
	case adjusted >= ChildAgeDays:
		return StageChild
	default:
		return StageBaby
	}
}

// DetermineBranch picks the path for the dominant trait. Friendliness never decides a branch,
// and ties go to the earlier trait in intelligence, playfulness, discipline order.
func DetermineBranch(p PersonalityTraits) Branch {
	candidates := []struct {
		value  float64
		branch Branch
	}{
		{p.Intelligence, BranchSmart},
		{p.Playfulness, BranchEnergetic},
		{p.Discipline, BranchDisciplined},
	}

	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.value > best.value {
			best = c
		}
	}
	if best.value < BranchTraitThreshold {
		return BranchNone
	}
	return best.branch
}

// Evolve recomputes stage and, on the exact baby to child step, the branch. A pet that skips
// child keeps no branch. The stage never regresses even if care drops.
func Evolve(s State, now time.Time) State {
	stage := StageFor(s.BirthDate, s.Care, now)
	if stage.Rank() < s.Stage.Rank() {
		stage = s.Stage
	}

	if stage != s.Stage {
		if s.Stage == StageBaby && stage == StageChild && s.Branch == BranchNone {
			s.Branch = DetermineBranch(s.Personality)
			log.Printf("%s chose the %s path", s.Name, s.Branch)
		}
		log.Printf("%s evolved from %s to %s (care quality: %.0f%%)", s.Name, s.Stage, stage, s.Care.OverallAverage())
		s.Stage = stage
	}
	return s
}
