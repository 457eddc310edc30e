package pet

import (
	"log"
	"time"
)

// Tick applies time-based decay over an explicit elapsed duration. A sleeping or dead pet is
// left untouched and Tick reports false.
func Tick(s State, elapsed time.Duration, now time.Time) (State, bool) {
	if !s.IsAlive || s.Sleeping() {
		return s, false
	}
	if elapsed <= 0 {
		return s, false
	}

	seconds := elapsed.Seconds()
	abilities := s.Abilities()
	m := CalculateModifiers(s.Personality, abilities)

	stats := s.Stats.
		AddHunger(HungerIncreaseRate * seconds * m.HungerDecayRate).
		AddHappiness(-HappinessDecreaseRate * seconds * m.HappinessDecayRate).
		AddEnergy(-EnergyDecreaseRate * seconds * m.EnergyDecayRate).
		AddCleanliness(-CleanlinessDecreaseRate * seconds * m.CleanlinessDecayRate)

	// Health is never decayed by time alone, only while another vital is critical
	if stats.Hunger > StarvingThreshold || stats.Cleanliness < FilthyThreshold || stats.Happiness < MiserableThreshold {
		stats = stats.AddHealth(-HealthDecreaseRate * seconds)
	}

	var regen float64
	for _, a := range abilities {
		regen += a.HealthRegenBonus
	}
	if regen > 0 && stats.Health < MaxStat {
		stats = stats.AddHealth(regen * seconds * HealthRegenRateMultiplier)
	}

	next := s
	next.Stats = stats
	next.IsAlive = stats.Health > 0
	next.Mood = MoodFor(next.IsAlive, stats)
	next.Care = next.Care.Update(stats)
	next = Evolve(next, now)
	next.Location = InferLocation(next)
	next.LastUpdated = now

	if !next.IsAlive {
		log.Printf("%s has died (hunger %.0f, happiness %.0f, cleanliness %.0f)", s.Name, stats.Hunger, stats.Happiness, stats.Cleanliness)
	}
	return next, true
}

// CatchUp brings a loaded snapshot up to now: an overdue sleep episode ends at its scheduled
// wake time, then the remaining time since the last update is ticked.
func CatchUp(s State, now time.Time) State {
	if s.Sleeping() && s.SleepStartedAt != nil {
		wakeAt := s.SleepStartedAt.Add(SleepDuration)
		if !now.Before(wakeAt) {
			s, _ = NaturalWake(s, s.SleepEpisode, wakeAt)
		}
	}
	last := s.LastUpdated
	if last.IsZero() {
		last = now
	}
	if next, ok := Tick(s, now.Sub(last), now); ok {
		return next
	}
	if !s.Sleeping() {
		s.LastUpdated = now
	}
	return s
}
