package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"tamagotchi/internal/pet"
)

var gameStyles = struct {
	title   lipgloss.Style
	status  lipgloss.Style
	menu    lipgloss.Style
	menuBox lipgloss.Style
	stats   lipgloss.Style
	notice  lipgloss.Style
}{
	title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FF75B5")).
		Padding(0, 1),

	status: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FF75B5")).
		Width(40),

	stats: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FF75B5")).
		Width(40),

	menu: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FF75B5")),

	menuBox: lipgloss.NewStyle().
		Padding(0, 2),

	notice: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFD700")),
}

var stageEmoji = map[pet.Stage]string{
	pet.StageBaby:  "🐣",
	pet.StageChild: "🐱",
	pet.StageTeen:  "😼",
	pet.StageAdult: "🦁",
}

// StageEmoji returns the form emoji for a stage.
func StageEmoji(s pet.Stage) string {
	if e, ok := stageEmoji[s]; ok {
		return e
	}
	return stageEmoji[pet.StageBaby]
}

// FormName describes stage and branch, e.g. "Smart Teen".
func FormName(s pet.State) string {
	stage := capitalize(string(s.Stage))
	if s.Branch == pet.BranchNone || s.Branch == "" {
		return stage
	}
	return capitalize(string(s.Branch)) + " " + stage
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// View implements tea.Model
func (m Model) View() string {
	s := m.Pet.Snapshot()
	if !s.IsAlive {
		return m.deadView(s)
	}
	if m.Quitting {
		return "Thanks for playing!\n"
	}

	// Show animation if one is active
	if m.Animation.Type != AnimNone {
		return m.renderAnimation(s)
	}

	formEmoji := StageEmoji(s.Stage)
	title := gameStyles.title.Render(formEmoji + " " + s.Name + " " + formEmoji)

	sections := []string{
		title,
		"",
		renderStats(s),
		"",
		gameStyles.status.Render(fmt.Sprintf("Status: %s", pet.GetStatusWithLabel(s))),
	}

	if notices := m.renderNotices(); notices != "" {
		sections = append(sections, "", notices)
	}

	if m.Message != "" && pet.TimeNow().Before(m.MessageExpires) {
		sections = append(sections, "", gameStyles.status.Render(m.Message))
	}

	sections = append(sections,
		"",
		m.renderMenu(),
		"",
		gameStyles.status.Render("Use arrows to move • enter to select • q to quit"),
	)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func renderStats(s pet.State) string {
	stats := []struct {
		name, value string
	}{
		{"Form", FormName(s)},
		{"Mood", capitalize(string(s.Mood))},
		{"Place", capitalize(strings.ReplaceAll(string(s.Location), "-", " "))},
		{"Hunger", fmt.Sprintf("%.0f%%", s.Stats.Hunger)},
		{"Happiness", fmt.Sprintf("%.0f%%", s.Stats.Happiness)},
		{"Energy", fmt.Sprintf("%.0f%%", s.Stats.Energy)},
		{"Health", fmt.Sprintf("%.0f%%", s.Stats.Health)},
		{"Clean", fmt.Sprintf("%.0f%%", s.Stats.Cleanliness)},
		{"Room", fmt.Sprintf("%.0f%% tidy", s.Environment.Cleanliness)},
		{"Knows", fmt.Sprintf("%d things", len(s.Knowledge))},
		{"Care", fmt.Sprintf("%.0f/100", s.Care.OverallAverage())},
		{"Age", fmt.Sprintf("%.1f days", s.AgeInDays(pet.TimeNow()))},
	}

	var lines []string
	for _, stat := range stats {
		lines = append(lines, fmt.Sprintf("%-10s %s", stat.name+":", stat.value))
	}

	return gameStyles.stats.Render(strings.Join(lines, "\n"))
}

func (m Model) renderNotices() string {
	if len(m.Notices) == 0 {
		return ""
	}
	var lines []string
	for _, r := range m.Notices {
		line := "🔔 " + r.Title
		if r.Message != "" {
			line += ": " + r.Message
		}
		lines = append(lines, line)
	}
	return gameStyles.notice.Render(strings.Join(lines, "\n"))
}

func (m Model) renderMenu() string {
	var menuItems []string

	for i, item := range m.menu() {
		cursor := " "
		if m.Choice == i {
			cursor = ">"
		}
		menuItems = append(menuItems, fmt.Sprintf("%s %s", cursor, item.label))
	}

	return gameStyles.menuBox.Render(strings.Join(menuItems, "\n"))
}

func (m Model) renderAnimation(s pet.State) string {
	frame := GetAnimationFrame(m.Animation)
	formEmoji := StageEmoji(s.Stage)
	title := gameStyles.title.Render(formEmoji + " " + s.Name + " " + formEmoji)

	animStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFD700")).
		Bold(true).
		Padding(1, 2)

	var status string
	if m.Message != "" && pet.TimeNow().Before(m.MessageExpires) {
		status = gameStyles.status.Render(m.Message)
	}

	sections := []string{
		title,
		"",
		animStyle.Render(frame),
	}

	if status != "" {
		sections = append(sections, "", status)
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) deadView(s pet.State) string {
	lived := fmt.Sprintf("They lived for %.1f days", s.LastUpdated.Sub(s.BirthDate).Hours()/24)
	if m.ShowingAdoptPrompt {
		return lipgloss.JoinVertical(
			lipgloss.Center,
			gameStyles.title.Render("💀 "+s.Name+" 💀"),
			"",
			gameStyles.status.Render("Your pet has passed away..."),
			gameStyles.status.Render(lived),
			"",
			gameStyles.menuBox.Render("Would you like to adopt a new pet?"),
			"",
			gameStyles.status.Render("Press 'y' for yes, 'n' for no"),
		)
	}
	return lipgloss.JoinVertical(
		lipgloss.Center,
		gameStyles.title.Render("💀 "+s.Name+" 💀"),
		"",
		gameStyles.status.Render("Your pet has passed away..."),
		gameStyles.status.Render("It will be remembered forever."),
		"",
		gameStyles.status.Render("Press q to exit"),
	)
}
