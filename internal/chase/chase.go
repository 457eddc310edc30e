// Package chase is a full-screen play session where the pet chases a target across the terminal.
package chase

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"tamagotchi/internal/pet"
)

const (
	tickInterval   = 70 * time.Millisecond
	minVisibleRows = 6
)

const (
	EmojiExcited   = "😻"
	EmojiEnergetic = "😼"
)

// chaseEmoji picks the pet's face from its distance to the target and its vitals
func chaseEmoji(s pet.State, distX, distY int) string {
	// About to catch
	if absInt(distX) <= 2 && absInt(distY) <= 1 {
		return EmojiExcited
	}

	switch {
	case s.Stats.Energy < 30:
		return pet.StatusEmojiSleeping
	case s.Stats.Hunger > pet.HungryThreshold:
		return pet.StatusEmojiHungry
	case s.Stats.Energy > 80:
		return EmojiEnergetic
	case s.Stats.Happiness < 30:
		return pet.StatusEmojiSad
	}
	return pet.StatusEmojiHappy
}

// Target defines what the pet can chase
type Target struct {
	Emoji string
	Name  string
	Speed int // Frames to move 1 position
}

// Available targets (extensible)
var Targets = map[string]Target{
	"butterfly": {Emoji: "🦋", Name: "butterfly", Speed: 3},
	"ball":      {Emoji: "⚽", Name: "ball", Speed: 4},
	"mouse":     {Emoji: "🐁", Name: "mouse", Speed: 2},
}

// LookupTarget returns the named target; an empty name is the butterfly.
func LookupTarget(name string) (Target, error) {
	if name == "" {
		name = "butterfly"
	}
	t, ok := Targets[name]
	if !ok {
		return Target{}, fmt.Errorf("unknown chase target %q", name)
	}
	return t, nil
}

// Model is the Bubble Tea model for chase animation
type Model struct {
	Pet        pet.State
	Target     Target
	TermWidth  int
	TermHeight int
	PetPosX    int
	PetPosY    int
	TargetPosX int
	TargetPosY int
	Frame      int
	Caught     bool
	Escaped    bool
}

type animTickMsg time.Time

// NewModel places the target a few columns ahead of the pet.
func NewModel(s pet.State, target Target) Model {
	return Model{
		Pet:        s,
		Target:     target,
		TargetPosX: 5,
	}
}

// Run plays one chase and reports whether the pet caught the target.
func Run(s pet.State, target Target) (bool, error) {
	program := tea.NewProgram(NewModel(s, target), tea.WithAltScreen())
	final, err := program.Run()
	if err != nil {
		return false, fmt.Errorf("chase animation: %w", err)
	}
	m, ok := final.(Model)
	return ok && m.Caught, nil
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return animTickMsg(t)
	})
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return tick()
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, tea.Quit

	case tea.WindowSizeMsg:
		m.TermWidth = msg.Width
		m.TermHeight = msg.Height
		m.clampPositions()
		return m, nil

	case animTickMsg:
		m.Frame++

		if m.TermWidth == 0 || m.TermHeight == 0 {
			return m, tick()
		}

		// Target moves every Speed frames along a sine flutter
		if m.Frame%m.Target.Speed == 0 {
			m.TargetPosX++

			if m.TargetPosX >= m.maxX() {
				m.Escaped = true
				return m, tea.Quit
			}

			height := float64(m.visibleRows())
			amplitude := height / 3.0
			centerY := height / 2.0
			frequency := 0.2

			m.TargetPosY = int(centerY + amplitude*math.Sin(float64(m.TargetPosX)*frequency))
			m.clampPositions()
		}

		// Pet follows in 2D
		if m.Frame%2 == 0 {
			distX := m.TargetPosX - m.PetPosX
			distY := m.TargetPosY - m.PetPosY

			if distX > 3 {
				m.PetPosX++
			}

			if distY > 1 {
				m.PetPosY++
			} else if distY < -1 {
				m.PetPosY--
			}

			m.clampPositions()
		}

		// Catch condition: overlapping X and same row
		if absInt(m.TargetPosX-m.PetPosX) <= 1 && m.TargetPosY == m.PetPosY {
			m.Caught = true
			return m, tea.Quit
		}

		return m, tick()
	}

	return m, nil
}

// View implements tea.Model
func (m Model) View() string {
	if m.TermWidth == 0 || m.TermHeight == 0 {
		return "Initializing..."
	}

	rows := m.visibleRows() - 1
	petEmoji := chaseEmoji(m.Pet, m.TargetPosX-m.PetPosX, m.TargetPosY-m.PetPosY)

	grid := make([][]rune, rows)
	for y := range grid {
		grid[y] = []rune(strings.Repeat(" ", m.TermWidth))
	}

	place := func(x, y int, emoji string) {
		if y < 0 || y >= rows || x < 0 || x >= m.TermWidth-2 {
			return
		}
		for i, r := range []rune(emoji) {
			if x+i < m.TermWidth {
				grid[y][x+i] = r
			}
		}
	}
	place(m.TargetPosX, m.TargetPosY, m.Target.Emoji)
	place(m.PetPosX, m.PetPosY, petEmoji)

	var result strings.Builder
	for _, row := range grid {
		result.WriteString(string(row))
		result.WriteRune('\n')
	}

	fmt.Fprintf(&result, "\n%s is chasing a %s! Press any key to stop", m.Pet.Name, m.Target.Name)
	return result.String()
}

func (m *Model) clampPositions() {
	rows := m.visibleRows()
	if rows < 1 {
		return
	}

	m.PetPosX = min(max(m.PetPosX, 0), m.maxX())
	m.TargetPosX = min(max(m.TargetPosX, 0), m.maxX())
	m.PetPosY = min(max(m.PetPosY, 0), rows-1)
	m.TargetPosY = min(max(m.TargetPosY, 0), rows-1)
}

func (m Model) visibleRows() int {
	if m.TermHeight <= 0 {
		return 0
	}
	rows := m.TermHeight - 2 // leave space for instruction
	if rows < minVisibleRows {
		rows = minVisibleRows
	}
	return rows
}

func (m Model) maxX() int {
	if m.TermWidth <= 2 {
		return 0
	}
	return m.TermWidth - 2
}
