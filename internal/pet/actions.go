package pet

import (
	"log"
	"time"
)

// Owner actions. Each returns the next snapshot and true, or the unchanged snapshot and false when
// its precondition fails; a refused action is not an error and leaves no trace.

// Feed lowers hunger and cheers the pet up a little. Regular meals build discipline.
func Feed(s State, now time.Time) (State, bool) {
	if !s.IsAlive {
		return s, false
	}
	next := s
	next.Stats = s.Stats.AddHunger(-FeedHungerDecrease).AddHappiness(FeedHappinessIncrease)
	next.Personality = s.Personality.AddDiscipline(FeedDisciplineGain)
	return commitAction(s, next, ActionFeed, now), true
}

// Play trades energy for happiness. Refused when the pet cannot afford the energy cost.
func Play(s State, now time.Time) (State, bool) {
	if !s.IsAlive {
		return s, false
	}
	abilities := s.Abilities()
	cost := CalculateModifiers(s.Personality, abilities).PlayCost()
	if s.Stats.Energy < cost {
		return s, false
	}

	gain := float64(PlayHappinessIncrease)
	for _, a := range abilities {
		gain += a.HappinessBonus
	}
	if s.Personality.Friendliness >= HighTraitThreshold {
		gain += FriendlyPlayBonus
	}

	next := s
	next.Stats = s.Stats.AddHappiness(gain).AddEnergy(-cost).AddHunger(PlayHungerIncrease)
	next.Personality = s.Personality.AddPlayfulness(PlayPlayfulnessGain).AddFriendliness(PlayFriendlinessGain)
	return commitAction(s, next, ActionPlay, now), true
}

// Clean bathes the pet.
func Clean(s State, now time.Time) (State, bool) {
	if !s.IsAlive {
		return s, false
	}
	next := s
	next.Stats = s.Stats.AddCleanliness(CleanCleanlinessIncrease).AddHappiness(CleanHappinessIncrease)
	return commitAction(s, next, ActionClean, now), true
}

// Sleep starts a new sleep episode. Vitals are untouched until the pet wakes; the owner of the
// state is responsible for scheduling NaturalWake after SleepDuration.
func Sleep(s State, now time.Time) (State, bool) {
	if !s.IsAlive || s.Sleeping() {
		return s, false
	}
	next := s
	next.SleepEpisode = s.SleepEpisode + 1
	started := now
	next.SleepStartedAt = &started
	next = commitAction(s, next, ActionSleep, now)
	next.Mood = MoodSleeping
	next.Location = InferLocation(next)
	next.LastUpdated = now
	log.Printf("%s fell asleep (episode %d)", s.Name, next.SleepEpisode)
	return next, true
}

// NaturalWake ends sleep episode ep fully rested. It does nothing if the pet already woke up or a
// newer episode has started, so a stale scheduled wake is harmless.
func NaturalWake(s State, ep uint64, now time.Time) (State, bool) {
	if !s.IsAlive || !s.Sleeping() || s.SleepEpisode != ep {
		return s, false
	}
	next := s
	next.Stats = s.Stats.WithEnergy(MaxStat).AddHappiness(WakeHappinessIncrease)
	next.SleepStartedAt = nil
	next.Mood = ClassifyMood(next.Stats)
	next.Care = next.Care.Update(next.Stats)
	next = Evolve(next, now)
	next.Location = InferLocation(next)
	next.LastUpdated = now
	log.Printf("%s woke up rested (episode %d)", s.Name, ep)
	return next, true
}

// Wake interrupts sleep early: only a partial energy restore, and the pet is a bit grumpy.
func Wake(s State, now time.Time) (State, bool) {
	if !s.IsAlive || !s.Sleeping() {
		return s, false
	}
	next := s
	next.Stats = s.Stats.AddEnergy(EarlyWakeEnergyIncrease).AddHappiness(-EarlyWakeHappinessDecrease)
	next.LastUpdated = now
	log.Printf("%s was woken early (episode %d)", s.Name, s.SleepEpisode)
	return commitAction(s, next, ActionWake, now), true
}

// GiveMedicine restores health. Refused while the pet is still fairly healthy.
func GiveMedicine(s State, now time.Time) (State, bool) {
	if !s.IsAlive || s.Stats.Health > MedicineHealthLimit {
		return s, false
	}
	next := s
	next.Stats = s.Stats.AddHealth(MedicineHealthIncrease).AddHappiness(-MedicineHappinessDecrease)
	return commitAction(s, next, ActionMedicine, now), true
}

// Train spends energy to build intelligence and discipline.
func Train(s State, now time.Time) (State, bool) {
	if !s.IsAlive {
		return s, false
	}
	abilities := s.Abilities()
	cost := CalculateModifiers(s.Personality, abilities).TrainingCost()
	if s.Stats.Energy < cost {
		return s, false
	}

	gain := TrainIntelligenceGain
	for _, a := range abilities {
		gain += a.TrainingBonus
	}

	next := s
	next.Stats = s.Stats.AddEnergy(-cost).AddHunger(TrainHungerIncrease)
	next.Personality = s.Personality.AddIntelligence(gain).AddDiscipline(TrainDisciplineGain)
	return commitAction(s, next, ActionTrain, now), true
}

// CleanEnvironment tidies the house, which also lifts the pet's spirits.
func CleanEnvironment(s State, now time.Time) (State, bool) {
	if !s.IsAlive {
		return s, false
	}
	next := s
	next.Environment = s.Environment.AddCleanliness(RoomCleanlinessIncrease)
	next.Stats = s.Stats.AddHappiness(RoomHappinessIncrease)
	return commitAction(s, next, ActionCleanEnvironment, now), true
}

// commitAction finishes an owner action: activity log, interaction count, care averages (when the
// vitals moved), then evolution, in that order.
func commitAction(prev, next State, action Action, now time.Time) State {
	next.ActivityLogs = prepend(newActivityLog(action, prev.Stats, next.Stats, now), prev.ActivityLogs)
	next.LastInteraction = now

	// Any action other than going to sleep ends a sleep episode
	next.Mood = ClassifyMood(next.Stats)
	if action != ActionSleep {
		next.SleepStartedAt = nil
	}

	if next.Stats != prev.Stats {
		next.Care = next.Care.Update(next.Stats)
	}
	next.Care = next.Care.RecordInteraction()
	next = Evolve(next, now)
	next.Location = InferLocation(next)
	return next
}

// ActionFunc is the common shape of every owner action.
type ActionFunc func(State, time.Time) (State, bool)

// Actions maps command names to owner actions.
var Actions = map[string]ActionFunc{
	string(ActionFeed):             Feed,
	string(ActionPlay):             Play,
	string(ActionClean):            Clean,
	string(ActionSleep):            Sleep,
	string(ActionWake):             Wake,
	string(ActionMedicine):         GiveMedicine,
	string(ActionTrain):            Train,
	string(ActionCleanEnvironment): CleanEnvironment,
}
