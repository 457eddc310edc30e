package ui

import (
	"context"
	"fmt"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"tamagotchi/internal/pet"
)

const (
	TickInterval          = time.Second
	ReminderCheckInterval = 30 * time.Second
	AutoSaveInterval      = 30 * time.Second
	MessageDuration       = 3 * time.Second
)

type menuItem struct {
	label  string
	action pet.Action // empty means quit
}

// Model represents the game state
type Model struct {
	Pet                *pet.Companion
	Store              pet.Store
	Scheduler          pet.Scheduler
	Rand               pet.RandSource
	Choice             int
	Quitting           bool
	ShowingAdoptPrompt bool
	Message            string
	MessageExpires     time.Time
	Notices            []pet.Reminder
	Animation          Animation

	lastSave  time.Time
	lastCheck time.Time
}

type tickMsg time.Time
type animTickMsg struct {
	started time.Time
}

// NewModel wraps a running companion. sched must be the scheduler the companion was built with.
func NewModel(c *pet.Companion, store pet.Store, sched pet.Scheduler, rng pet.RandSource) Model {
	now := pet.TimeNow()
	return Model{
		Pet:                c,
		Store:              store,
		Scheduler:          sched,
		Rand:               rng,
		ShowingAdoptPrompt: !c.Snapshot().IsAlive,
		lastSave:           now,
		lastCheck:          now,
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(TickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func animTick(start time.Time) tea.Cmd {
	return tea.Tick(AnimationFrameDuration, func(t time.Time) tea.Msg {
		return animTickMsg{started: start}
	})
}

func (m Model) menu() []menuItem {
	sleep := menuItem{"Sleep", pet.ActionSleep}
	if m.Pet.Snapshot().Sleeping() {
		sleep = menuItem{"Wake", pet.ActionWake}
	}
	return []menuItem{
		{"Feed", pet.ActionFeed},
		{"Play", pet.ActionPlay},
		{"Clean", pet.ActionClean},
		sleep,
		{"Medicine", pet.ActionMedicine},
		{"Train", pet.ActionTrain},
		{"Clean room", pet.ActionCleanEnvironment},
		{"Quit", ""},
	}
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// While an animation is playing, ignore inputs except quit keys
		if m.Animation.Type != AnimNone {
			switch msg.String() {
			case "ctrl+c", "q":
				return m.quit()
			default:
				return m, nil
			}
		}

		alive := m.Pet.Snapshot().IsAlive
		switch msg.String() {
		case "ctrl+c", "q":
			return m.quit()
		case "y":
			if !alive && m.ShowingAdoptPrompt {
				m.adopt()
				return m, nil
			}
		case "n":
			if !alive && m.ShowingAdoptPrompt {
				m.ShowingAdoptPrompt = false
				return m, nil
			}
		case "up", "k":
			if m.Choice > 0 {
				m.Choice--
			}
		case "down", "j":
			if m.Choice < len(m.menu())-1 {
				m.Choice++
			}
		case "enter", " ":
			if !alive {
				return m, nil
			}
			item := m.menu()[m.Choice]
			if item.action == "" {
				return m.quit()
			}
			if m.act(item.action) {
				return m, animTick(m.Animation.StartTime)
			}
		}

	case tickMsg:
		m.onTick(time.Time(msg))
		return m, tick()

	case animTickMsg:
		// Drop ticks that belong to an older animation (e.g., if a new action started)
		if m.Animation.Type == AnimNone || !m.Animation.StartTime.Equal(msg.started) {
			return m, nil
		}

		m.Animation.Frame++
		if IsAnimationComplete(m.Animation) {
			m.Animation = Animation{}
			return m, nil
		}

		return m, animTick(m.Animation.StartTime)
	}

	return m, nil
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.Quitting = true
	m.save()
	return m, tea.Quit
}

func (m *Model) onTick(t time.Time) {
	before := m.Pet.Snapshot()
	m.Pet.Tick(TickInterval)
	after := m.Pet.Snapshot()
	m.announceEvolution(before, after)
	if before.IsAlive && !after.IsAlive {
		log.Printf("%s has died", after.Name)
		m.ShowingAdoptPrompt = true
		m.save()
	}

	now := pet.TimeNow()
	if now.Sub(m.lastCheck) >= ReminderCheckInterval {
		m.lastCheck = now
		if due := m.Pet.CheckReminders(); len(due) > 0 {
			m.Notices = append(due, m.Notices...)
			m.Notices = m.Notices[:min(len(m.Notices), 3)]
			m.setMessage("🔔 " + due[0].Title)
		}
	}
	if now.Sub(m.lastSave) >= AutoSaveInterval {
		m.save()
	}
}

func (m *Model) save() {
	if m.Store == nil {
		return
	}
	m.lastSave = pet.TimeNow()
	if err := m.Store.Save(context.Background(), m.Pet.Document()); err != nil {
		log.Printf("Error saving state: %v", err)
	}
}

func (m *Model) setMessage(msg string) {
	m.Message = msg
	m.MessageExpires = pet.TimeNow().Add(MessageDuration)
}

func (m *Model) startAnimation(animType AnimationType) {
	m.Animation = Animation{
		Type:      animType,
		Frame:     0,
		StartTime: pet.TimeNow(),
	}
}

var actionMessages = map[pet.Action]string{
	pet.ActionFeed:             "🍖 Yum!",
	pet.ActionPlay:             "🎾 Wheee!",
	pet.ActionClean:            "🛁 Squeaky clean!",
	pet.ActionSleep:            "💤 Good night...",
	pet.ActionWake:             "☀️ Awake!",
	pet.ActionMedicine:         "💊 Feeling better",
	pet.ActionTrain:            "🏋️ Getting stronger!",
	pet.ActionCleanEnvironment: "🧹 The room sparkles",
}

var refusalMessages = map[pet.Action]string{
	pet.ActionPlay:     "😴 Too tired to play...",
	pet.ActionTrain:    "😴 Too tired to train...",
	pet.ActionSleep:    "💤 Already asleep",
	pet.ActionWake:     "👀 Already awake",
	pet.ActionMedicine: "💊 Not sick enough for medicine",
}

// act runs an owner action and reports whether an animation started.
func (m *Model) act(action pet.Action) bool {
	before := m.Pet.Snapshot()
	ok, err := m.Pet.Act(string(action))
	if err != nil {
		log.Printf("Error running %s: %v", action, err)
		return false
	}
	if !ok {
		msg, found := refusalMessages[action]
		if !found {
			msg = "🤷 Nothing happened"
		}
		m.setMessage(msg)
		return false
	}

	after := m.Pet.Snapshot()
	log.Printf("%s: hunger %.0f, happiness %.0f, energy %.0f, health %.0f, cleanliness %.0f",
		action, after.Stats.Hunger, after.Stats.Happiness, after.Stats.Energy, after.Stats.Health, after.Stats.Cleanliness)
	m.setMessage(actionMessages[action])
	m.announceEvolution(before, after)
	m.save()

	anim := AnimationFor(action)
	if anim == AnimNone {
		return false
	}
	m.startAnimation(anim)
	return true
}

func (m *Model) announceEvolution(before, after pet.State) {
	if after.Stage == before.Stage && after.Branch == before.Branch {
		return
	}
	text := fmt.Sprintf("✨ %s evolved into a %s!", after.Name, after.Stage)
	if after.Branch != pet.BranchNone {
		text = fmt.Sprintf("✨ %s evolved into a %s %s!", after.Name, after.Branch, after.Stage)
	}
	log.Print(text)
	m.setMessage(text)
}

func (m *Model) adopt() {
	ai := m.Pet.AIConfig()
	m.Pet.Close()
	doc := pet.Document{State: pet.Adopt(pet.DefaultPetName, m.Rand, pet.TimeNow()), AI: ai}
	m.Pet = pet.NewCompanion(doc, m.Scheduler)
	m.ShowingAdoptPrompt = false
	m.Choice = 0
	m.Notices = nil
	m.save()
}
