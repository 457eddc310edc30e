package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"tamagotchi/internal/pet"
)

// StatsModel is a simple Bubble Tea model for displaying stats
type StatsModel struct {
	Pet pet.State
}

// Init implements tea.Model
func (m StatsModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m StatsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, tea.Quit
	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress {
			return m, tea.Quit
		}
	}
	return m, nil
}

// View implements tea.Model
func (m StatsModel) View() string {
	return RenderStatusCard(m.Pet) + "\nPress ESC, click, or any key to close..."
}

func makeBar(value float64) string {
	filled := int(value) / 20
	var bar strings.Builder
	for i := 0; i < 5; i++ {
		if i < filled {
			bar.WriteString("█")
		} else {
			bar.WriteString("░")
		}
	}
	return bar.String()
}

// RenderStatusCard draws the boxed status summary.
func RenderStatusCard(p pet.State) string {
	formEmoji := StageEmoji(p.Stage)
	abilities := "None"
	if list := p.Abilities(); len(list) > 0 {
		var names []string
		for _, a := range list {
			names = append(names, a.Name)
		}
		abilities = strings.Join(names, ", ")
	}
	pending := len(pet.PendingReminders(p))

	var s strings.Builder
	s.WriteString("╔════════════════════════════════════╗\n")
	s.WriteString(fmt.Sprintf("║  %s %-30s ║\n", formEmoji, p.Name))
	s.WriteString("╠════════════════════════════════════╣\n")
	s.WriteString(fmt.Sprintf("║  Form:    %-24s ║\n", FormName(p)))
	s.WriteString(fmt.Sprintf("║  Ability: %-24s ║\n", abilities))
	s.WriteString(fmt.Sprintf("║  Age:     %-24s ║\n", fmt.Sprintf("%.1f days", p.AgeInDays(pet.TimeNow()))))
	s.WriteString(fmt.Sprintf("║  Status:  %-24s ║\n", pet.GetStatus(p)))
	s.WriteString(fmt.Sprintf("║  Place:   %-24s ║\n", p.Location))
	s.WriteString("║                                    ║\n")
	s.WriteString(fmt.Sprintf("║  Hunger:    [%s] %3.0f%%           ║\n", makeBar(p.Stats.Hunger), p.Stats.Hunger))
	s.WriteString(fmt.Sprintf("║  Happiness: [%s] %3.0f%%           ║\n", makeBar(p.Stats.Happiness), p.Stats.Happiness))
	s.WriteString(fmt.Sprintf("║  Energy:    [%s] %3.0f%%           ║\n", makeBar(p.Stats.Energy), p.Stats.Energy))
	s.WriteString(fmt.Sprintf("║  Health:    [%s] %3.0f%%           ║\n", makeBar(p.Stats.Health), p.Stats.Health))
	s.WriteString(fmt.Sprintf("║  Clean:     [%s] %3.0f%%           ║\n", makeBar(p.Stats.Cleanliness), p.Stats.Cleanliness))
	s.WriteString("║                                    ║\n")
	s.WriteString(fmt.Sprintf("║  Intelligence: %-19.0f ║\n", p.Personality.Intelligence))
	s.WriteString(fmt.Sprintf("║  Friendliness: %-19.0f ║\n", p.Personality.Friendliness))
	s.WriteString(fmt.Sprintf("║  Playfulness:  %-19.0f ║\n", p.Personality.Playfulness))
	s.WriteString(fmt.Sprintf("║  Discipline:   %-19.0f ║\n", p.Personality.Discipline))
	s.WriteString("║                                    ║\n")
	s.WriteString(fmt.Sprintf("║  Knowledge: %-23d║\n", len(p.Knowledge)))
	s.WriteString(fmt.Sprintf("║  Reminders: %-23d║\n", pending))
	s.WriteString("╚════════════════════════════════════╝\n")
	return s.String()
}

// DisplayStats shows the stats display
func DisplayStats(p pet.State) error {
	program := tea.NewProgram(StatsModel{Pet: p}, tea.WithAltScreen(), tea.WithMouseAllMotion())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("running stats display: %w", err)
	}
	return nil
}
