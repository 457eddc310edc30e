package pet

import (
	"bytes"
	"fmt"
	"log"
	"math"
	"strings"
	"testing"
	"time"
)

// mockTimeNow sets a fixed time for deterministic tests and auto-restores after test
func mockTimeNow(t *testing.T) time.Time {
	originalTimeNow := TimeNow
	currentTime := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	TimeNow = func() time.Time { return currentTime }
	t.Cleanup(func() { TimeNow = originalTimeNow })
	return currentTime
}

// mockNewID hands out id-1, id-2, ... and auto-restores after test
func mockNewID(t *testing.T) {
	originalNewID := NewID
	n := 0
	NewID = func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	t.Cleanup(func() { NewID = originalNewID })
}

// captureLogs redirects the standard logger for the duration of the test
func captureLogs(t *testing.T) *bytes.Buffer {
	var buf bytes.Buffer
	originalOutput := log.Writer()
	originalFlags := log.Flags()
	log.SetOutput(&buf)
	log.SetFlags(0)
	t.Cleanup(func() {
		log.SetOutput(originalOutput)
		log.SetFlags(originalFlags)
	})
	return &buf
}

type fixedRand struct{ values []int }

func (r *fixedRand) Intn(n int) int {
	v := r.values[0]
	r.values = r.values[1:]
	return v % n
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func assertStat(t *testing.T, name string, got, want float64) {
	t.Helper()
	if !approx(got, want) {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func TestNewState(t *testing.T) {
	now := mockTimeNow(t)
	s := NewState(now)

	want := Stats{Hunger: 50, Happiness: 100, Energy: 100, Health: 100, Cleanliness: 100}
	if s.Stats != want {
		t.Errorf("Expected starting stats %+v, got %+v", want, s.Stats)
	}
	if s.Stage != StageBaby || s.Branch != BranchNone {
		t.Errorf("Expected baby/none, got %s/%s", s.Stage, s.Branch)
	}
	if s.Mood != MoodHappy {
		t.Errorf("Expected happy mood, got %s", s.Mood)
	}
	if !s.IsAlive {
		t.Error("New pet should be alive")
	}
	if !s.BirthDate.Equal(now) || !s.LastUpdated.Equal(now) {
		t.Error("Birth date and last update should be now")
	}
}

func TestAdopt(t *testing.T) {
	now := mockTimeNow(t)
	logs := captureLogs(t)

	rng := &fixedRand{values: []int{0, 40, 20, 7}}
	s := Adopt("Mochi", rng, now)

	want := PersonalityTraits{Intelligence: 30, Friendliness: 70, Playfulness: 50, Discipline: 37}
	if s.Personality != want {
		t.Errorf("Expected personality %+v, got %+v", want, s.Personality)
	}
	if s.Name != "Mochi" {
		t.Errorf("Expected name Mochi, got %s", s.Name)
	}
	if !strings.Contains(logs.String(), "Adopted Mochi") {
		t.Errorf("Expected adoption log, got %q", logs.String())
	}

	t.Run("Empty name keeps default", func(t *testing.T) {
		s := Adopt("", NewRand(1), now)
		if s.Name != DefaultPetName {
			t.Errorf("Expected %s, got %s", DefaultPetName, s.Name)
		}
		for _, v := range []float64{s.Personality.Intelligence, s.Personality.Friendliness, s.Personality.Playfulness, s.Personality.Discipline} {
			if v < MinBirthTrait || v > MaxBirthTrait {
				t.Errorf("Trait %v outside [%d,%d]", v, MinBirthTrait, MaxBirthTrait)
			}
		}
	})
}

func TestTick(t *testing.T) {
	now := mockTimeNow(t)

	t.Run("Base decay over ten seconds", func(t *testing.T) {
		s := NewState(now)
		next, ok := Tick(s, 10*time.Second, now.Add(10*time.Second))
		if !ok {
			t.Fatal("Tick should apply to a live, awake pet")
		}
		assertStat(t, "hunger", next.Stats.Hunger, 50.5)
		assertStat(t, "happiness", next.Stats.Happiness, 99.7)
		assertStat(t, "energy", next.Stats.Energy, 99.8)
		assertStat(t, "cleanliness", next.Stats.Cleanliness, 99.6)
		assertStat(t, "health", next.Stats.Health, 100)
		if !next.LastUpdated.Equal(now.Add(10 * time.Second)) {
			t.Error("Tick should stamp last update")
		}
		if s.Stats.Hunger != 50 {
			t.Error("Tick must not mutate its input")
		}
	})

	t.Run("Health decays only while a vital is critical", func(t *testing.T) {
		s := NewState(now)
		s.Stats.Hunger = 95
		next, _ := Tick(s, 10*time.Second, now)
		assertStat(t, "health", next.Stats.Health, 99.9)

		s = NewState(now)
		s.Stats.Cleanliness = 10
		next, _ = Tick(s, 10*time.Second, now)
		assertStat(t, "health", next.Stats.Health, 99.9)
	})

	t.Run("Intelligent pets get hungry slower", func(t *testing.T) {
		s := NewState(now)
		s.Personality.Intelligence = 80
		next, _ := Tick(s, 100*time.Second, now)
		assertStat(t, "hunger", next.Stats.Hunger, 50+5*0.85)
	})

	t.Run("Self-Care regenerates health", func(t *testing.T) {
		s := NewState(now)
		s.Branch = BranchDisciplined
		s.Stage = StageTeen
		s.Stats.Health = 50
		next, _ := Tick(s, 10*time.Second, now)
		assertStat(t, "health", next.Stats.Health, 50.5)
		assertStat(t, "hunger", next.Stats.Hunger, 50+0.5*0.7)
		if next.Stage != StageTeen {
			t.Errorf("Stage must not regress, got %s", next.Stage)
		}
	})

	t.Run("Death at zero health", func(t *testing.T) {
		logs := captureLogs(t)
		s := NewState(now)
		s.Stats.Health = 0.005
		s.Stats.Hunger = 95
		next, ok := Tick(s, time.Second, now)
		if !ok {
			t.Fatal("Tick should apply")
		}
		if next.IsAlive {
			t.Error("Pet should be dead at zero health")
		}
		if next.Mood != MoodSad {
			t.Errorf("Dead pet mood should be sad, got %s", next.Mood)
		}
		if !strings.Contains(logs.String(), "has died") {
			t.Errorf("Expected death log, got %q", logs.String())
		}

		again, ok := Tick(next, time.Hour, now.Add(time.Hour))
		if ok || again.Stats != next.Stats || again.IsAlive {
			t.Error("Ticks must not change a dead pet")
		}
	})

	t.Run("No-op while sleeping or for non-positive elapsed", func(t *testing.T) {
		s, _ := Sleep(NewState(now), now)
		if _, ok := Tick(s, time.Minute, now); ok {
			t.Error("Sleeping pet should not decay")
		}
		if _, ok := Tick(NewState(now), 0, now); ok {
			t.Error("Zero elapsed should be a no-op")
		}
	})

	t.Run("Every field stays in range", func(t *testing.T) {
		s := NewState(now)
		for i := 0; i < 500; i++ {
			s, _ = Tick(s, 10*time.Second, now.Add(time.Duration(i)*10*time.Second))
			if i%50 == 0 {
				s, _ = Feed(s, now)
			}
		}
		for name, v := range map[string]float64{
			"hunger": s.Stats.Hunger, "happiness": s.Stats.Happiness, "energy": s.Stats.Energy,
			"health": s.Stats.Health, "cleanliness": s.Stats.Cleanliness,
			"feeding": s.Care.FeedingScore, "careHappiness": s.Care.HappinessScore, "careHealth": s.Care.HealthScore,
			"discipline": s.Personality.Discipline,
		} {
			if v < MinStat || v > MaxStat {
				t.Errorf("%s = %v out of range", name, v)
			}
		}
	})
}

func TestCatchUp(t *testing.T) {
	now := mockTimeNow(t)

	t.Run("Awake pet decays for the time away", func(t *testing.T) {
		s := NewState(now.Add(-100 * time.Second))
		next := CatchUp(s, now)
		assertStat(t, "hunger", next.Stats.Hunger, 55)
		if !next.LastUpdated.Equal(now) {
			t.Error("CatchUp should stamp last update")
		}
	})

	t.Run("Overdue sleep ends at its wake time", func(t *testing.T) {
		start := now.Add(-20 * time.Second)
		s := NewState(start)
		s.Stats.Energy = 40
		s, _ = Sleep(s, start)

		next := CatchUp(s, now)
		if next.Sleeping() {
			t.Fatal("Pet should have woken up")
		}
		// Woke at start+8s with full energy, then 12s of decay
		assertStat(t, "energy", next.Stats.Energy, 100-12*EnergyDecreaseRate)
	})

	t.Run("Sleep still in progress is left alone", func(t *testing.T) {
		start := now.Add(-2 * time.Second)
		s, _ := Sleep(NewState(start), start)
		next := CatchUp(s, now)
		if !next.Sleeping() || next.Stats != s.Stats {
			t.Error("Pet should still be asleep and unchanged")
		}
	})
}

func TestGetStatus(t *testing.T) {
	now := mockTimeNow(t)

	t.Run("Dead status", func(t *testing.T) {
		s := NewState(now)
		s.IsAlive = false
		if status := GetStatus(s); status != "💀" {
			t.Errorf("Expected 💀, got %s", status)
		}
		if label := GetStatusWithLabel(s); label != "💀 Dead" {
			t.Errorf("Expected 💀 Dead, got %s", label)
		}
	})

	t.Run("Happy status", func(t *testing.T) {
		s := NewState(now)
		if status := GetStatusWithLabel(s); status != "😸 Happy" {
			t.Errorf("Expected 😸 Happy, got %s", status)
		}
	})

	t.Run("Hungry status (awake)", func(t *testing.T) {
		s := NewState(now)
		s.Stats.Hunger = 90
		s.Mood = ClassifyMood(s.Stats)
		if status := GetStatus(s); status != "😸🙀" {
			t.Errorf("Expected 😸🙀, got %s", status)
		}
	})

	t.Run("Sleeping status", func(t *testing.T) {
		s, _ := Sleep(NewState(now), now)
		if status := GetStatusWithLabel(s); status != "😴 Sleeping" {
			t.Errorf("Expected 😴 Sleeping, got %s", status)
		}
	})

	t.Run("Hungry status (sleeping)", func(t *testing.T) {
		s := NewState(now)
		s.Stats.Hunger = 90
		s, _ = Sleep(s, now)
		if status := GetStatusWithLabel(s); status != "😴🙀 Sleeping (needs care)" {
			t.Errorf("Expected 😴🙀 Sleeping (needs care), got %s", status)
		}
	})
}

func TestInferLocation(t *testing.T) {
	now := mockTimeNow(t)

	tests := []struct {
		name  string
		setup func(*State)
		want  Location
	}{
		{"Tired pet goes to bed", func(s *State) { s.Mood = MoodTired }, LocationBedroom},
		{"Hungry pet in the study", func(s *State) { s.Stats.Hunger = 75 }, LocationStudy},
		{"Unhappy pet in the bedroom", func(s *State) { s.Stats.Happiness = 35 }, LocationBedroom},
		{"Energetic happy pet plays", func(s *State) {}, LocationPlayArea},
		{"Happy but low energy in the living room", func(s *State) { s.Stats.Energy = 50 }, LocationLivingRoom},
		{"Otherwise the study", func(s *State) { s.Stats.Energy = 50; s.Stats.Happiness = 50 }, LocationStudy},
		{"Dead pet stays put", func(s *State) { s.IsAlive = false; s.Location = LocationOutside }, LocationOutside},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewState(now)
			tt.setup(&s)
			if got := InferLocation(s); got != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, got)
			}
		})
	}
}
