package chase

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"tamagotchi/internal/pet"
)

func testPet() pet.State {
	s := pet.NewState(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.Name = "Mochi"
	return s
}

func sized(m Model) Model {
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return next.(Model)
}

func TestTargets(t *testing.T) {
	tests := []struct {
		name      string
		target    string
		wantEmoji string
		wantErr   bool
	}{
		{name: "Default is the butterfly", target: "", wantEmoji: "🦋"},
		{name: "Ball", target: "ball", wantEmoji: "⚽"},
		{name: "Mouse", target: "mouse", wantEmoji: "🐁"},
		{name: "Unknown", target: "laser", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target, err := LookupTarget(tt.target)
			if (err != nil) != tt.wantErr {
				t.Fatalf("LookupTarget(%q) error = %v", tt.target, err)
			}
			if tt.wantErr {
				return
			}
			if target.Emoji != tt.wantEmoji {
				t.Errorf("Emoji = %q, want %q", target.Emoji, tt.wantEmoji)
			}
			if target.Speed <= 0 {
				t.Errorf("Speed = %d, want > 0", target.Speed)
			}
		})
	}
}

func TestUpdate_KeyQuits(t *testing.T) {
	m := NewModel(testPet(), Targets["ball"])
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	if cmd == nil {
		t.Fatal("Expected a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("Expected tea.QuitMsg")
	}
}

func TestUpdate_WaitsForSize(t *testing.T) {
	m := NewModel(testPet(), Targets["butterfly"])
	next, cmd := m.Update(animTickMsg(time.Now()))
	updated := next.(Model)
	if cmd == nil || updated.TargetPosX != 5 {
		t.Error("Nothing should move before the terminal size is known")
	}
	if m.View() != "Initializing..." {
		t.Errorf("Unexpected view %q", m.View())
	}
}

func TestUpdate_TargetMovesEverySpeedFrames(t *testing.T) {
	m := sized(NewModel(testPet(), Targets["butterfly"]))
	for i := 0; i < Targets["butterfly"].Speed; i++ {
		next, _ := m.Update(animTickMsg(time.Now()))
		m = next.(Model)
	}
	if m.TargetPosX != 6 {
		t.Errorf("TargetPosX = %d, want 6", m.TargetPosX)
	}
}

func TestUpdate_PetFollows(t *testing.T) {
	m := sized(NewModel(testPet(), Targets["ball"]))
	m.TargetPosX, m.TargetPosY = 20, 10
	m.PetPosX, m.PetPosY = 0, 0
	m.Frame = 1 // next tick is even, so the pet moves

	next, _ := m.Update(animTickMsg(time.Now()))
	updated := next.(Model)
	if updated.PetPosX != 1 || updated.PetPosY != 1 {
		t.Errorf("Pet at (%d,%d), want (1,1)", updated.PetPosX, updated.PetPosY)
	}
}

func TestUpdate_Catch(t *testing.T) {
	m := sized(NewModel(testPet(), Targets["ball"]))
	m.TargetPosX, m.TargetPosY = 10, 5
	m.PetPosX, m.PetPosY = 9, 5

	next, cmd := m.Update(animTickMsg(time.Now()))
	if !next.(Model).Caught || cmd == nil {
		t.Error("Expected the pet to catch the ball")
	}
}

func TestUpdate_Escape(t *testing.T) {
	m := sized(NewModel(testPet(), Targets["mouse"]))
	m.TargetPosX = m.maxX() - 1
	m.Frame = 1 // mouse moves on even frames

	next, cmd := m.Update(animTickMsg(time.Now()))
	updated := next.(Model)
	if !updated.Escaped || updated.Caught || cmd == nil {
		t.Error("Expected the mouse to escape")
	}
}

func TestClampOnResize(t *testing.T) {
	m := NewModel(testPet(), Targets["ball"])
	m.PetPosX, m.PetPosY = 500, 500
	m.TargetPosX, m.TargetPosY = -3, -3
	m = sized(m)

	if m.PetPosX != m.maxX() || m.PetPosY != m.visibleRows()-1 {
		t.Errorf("Pet not clamped: (%d,%d)", m.PetPosX, m.PetPosY)
	}
	if m.TargetPosX != 0 || m.TargetPosY != 0 {
		t.Errorf("Target not clamped: (%d,%d)", m.TargetPosX, m.TargetPosY)
	}
}

func TestVisibleRowsMinimum(t *testing.T) {
	m := Model{TermHeight: 3}
	if got := m.visibleRows(); got != minVisibleRows {
		t.Errorf("visibleRows() = %d, want %d", got, minVisibleRows)
	}
}

func TestView(t *testing.T) {
	m := sized(NewModel(testPet(), Targets["butterfly"]))
	m.PetPosX, m.PetPosY = 0, 0
	m.TargetPosX, m.TargetPosY = 30, 5

	view := m.View()
	if !strings.Contains(view, "🦋") || !strings.Contains(view, EmojiEnergetic) {
		t.Errorf("Expected the butterfly and an energetic pet in the view")
	}
	if !strings.Contains(view, "Mochi is chasing a butterfly") {
		t.Error("Expected the caption")
	}
	if lines := strings.Count(view, "\n"); lines != m.visibleRows() {
		t.Errorf("View has %d newlines, want %d", lines, m.visibleRows())
	}

	// A target on the last row must not index past the grid
	m.TargetPosY = m.visibleRows() - 1
	_ = m.View()
}

func TestChaseEmoji(t *testing.T) {
	tests := []struct {
		name     string
		stats    pet.Stats
		distX    int
		distY    int
		expected string
	}{
		{"Close to target", pet.Stats{Energy: 50, Happiness: 50, Hunger: 50}, 2, 1, EmojiExcited},
		{"Tired", pet.Stats{Energy: 20, Happiness: 50, Hunger: 50}, 10, 0, pet.StatusEmojiSleeping},
		{"Hungry beats energetic", pet.Stats{Energy: 90, Happiness: 50, Hunger: 90}, 10, 0, pet.StatusEmojiHungry},
		{"Energetic", pet.Stats{Energy: 90, Happiness: 50, Hunger: 50}, 10, 0, EmojiEnergetic},
		{"Sad", pet.Stats{Energy: 50, Happiness: 20, Hunger: 50}, 10, 0, pet.StatusEmojiSad},
		{"Content", pet.Stats{Energy: 50, Happiness: 50, Hunger: 50}, 10, 0, pet.StatusEmojiHappy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := testPet()
			s.Stats = tt.stats
			if got := chaseEmoji(s, tt.distX, tt.distY); got != tt.expected {
				t.Errorf("chaseEmoji() = %s, want %s", got, tt.expected)
			}
		})
	}
}
