package pet

import (
	"fmt"
	"log"
	"sync"
	"time"
)

// Companion owns the live pet. Every change goes through it as a whole-snapshot swap, and it keeps
// at most one scheduled wake, always for the current sleep episode.
type Companion struct {
	mu    sync.Mutex
	state State
	ai    AIConfig
	sched Scheduler

	wake        Handle
	wakeEpisode uint64
}

// NewCompanion takes ownership of doc. A pet saved mid-sleep gets its wake rescheduled for the
// remaining time, or immediately if it is overdue.
func NewCompanion(doc Document, sched Scheduler) *Companion {
	if sched == nil {
		sched = NewTimerScheduler()
	}
	c := &Companion{state: doc.State, ai: doc.AI, sched: sched}
	c.mu.Lock()
	c.syncWake()
	c.mu.Unlock()
	return c
}

// Snapshot returns the current state.
func (c *Companion) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// AIConfig returns the chat settings.
func (c *Companion) AIConfig() AIConfig {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ai
}

// Document returns what should be persisted right now.
func (c *Companion) Document() Document {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Document{State: c.state, AI: c.ai, SavedAt: TimeNow()}
}

// Apply runs a reducer against the current state and commits the result if it reports a change.
func (c *Companion) Apply(fn func(State) (State, bool)) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	next, ok := fn(c.state)
	if !ok {
		return false
	}
	c.state = next
	c.syncWake()
	return true
}

// Tick decays the pet over elapsed.
func (c *Companion) Tick(elapsed time.Duration) bool {
	return c.Apply(func(s State) (State, bool) { return Tick(s, elapsed, TimeNow()) })
}

// Do runs an owner action.
func (c *Companion) Do(action ActionFunc) bool {
	return c.Apply(func(s State) (State, bool) { return action(s, TimeNow()) })
}

// Act runs the owner action with the given name.
func (c *Companion) Act(name string) (bool, error) {
	action, ok := Actions[name]
	if !ok {
		return false, fmt.Errorf("unknown action %q", name)
	}
	return c.Do(action), nil
}

// Learn feeds a knowledge item.
func (c *Companion) Learn(in KnowledgeInput) bool {
	return c.Apply(func(s State) (State, bool) { return FeedKnowledge(s, in, TimeNow()) })
}

// LearnPage feeds an already fetched page.
func (c *Companion) LearnPage(p Page) bool {
	return c.Apply(func(s State) (State, bool) { return LearnFromPage(s, p, TimeNow()) })
}

// Visit imports a parsed visitor card.
func (c *Companion) Visit(card VisitorCard) bool {
	return c.Apply(func(s State) (State, bool) { return ImportVisitor(s, card, TimeNow()) })
}

// RecordConversation stores a successful chat exchange.
func (c *Companion) RecordConversation(userMessage, reply string) bool {
	return c.Apply(func(s State) (State, bool) { return RecordConversation(s, userMessage, reply, TimeNow()) })
}

// AddReminder schedules a reminder.
func (c *Companion) AddReminder(in ReminderInput) (Reminder, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	next, r, err := AddReminder(c.state, in, TimeNow())
	if err != nil {
		return Reminder{}, err
	}
	c.state = next
	return r, nil
}

// CompleteReminder marks a reminder done.
func (c *Companion) CompleteReminder(id string) error {
	return c.resolve(id, CompleteReminder)
}

// DismissReminder marks a reminder dismissed.
func (c *Companion) DismissReminder(id string) error {
	return c.resolve(id, DismissReminder)
}

func (c *Companion) resolve(id string, fn func(State, string) (State, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	next, err := fn(c.state, id)
	if err != nil {
		return err
	}
	c.state = next
	return nil
}

// CheckReminders runs a due check and returns the reminders that just came due.
func (c *Companion) CheckReminders() []Reminder {
	c.mu.Lock()
	defer c.mu.Unlock()
	next, due := CheckReminders(c.state, TimeNow())
	c.state = next
	return due
}

// SetAIProvider changes the chat settings.
func (c *Companion) SetAIProvider(p AIProvider, apiKey string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ai = SetAIProvider(c.ai, p, apiKey)
	log.Printf("AI provider set to %s", c.ai.Provider)
}

// Close cancels the pending wake. The state stays readable.
func (c *Companion) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancelWake()
}

func (c *Companion) naturalWake(ep uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.wakeEpisode == ep {
		c.wake = 0
	}
	if next, ok := NaturalWake(c.state, ep, TimeNow()); ok {
		c.state = next
	}
	c.syncWake()
}

// syncWake makes the scheduled wake match the state. Callers hold mu.
func (c *Companion) syncWake() {
	s := c.state
	if !s.IsAlive || !s.Sleeping() || s.SleepStartedAt == nil {
		c.cancelWake()
		return
	}
	if c.wake != 0 && c.wakeEpisode == s.SleepEpisode {
		return
	}
	c.cancelWake()

	ep := s.SleepEpisode
	delay := s.SleepStartedAt.Add(SleepDuration).Sub(TimeNow())
	c.wake = c.sched.Schedule(max(delay, 0), func() { c.naturalWake(ep) })
	c.wakeEpisode = ep
}

func (c *Companion) cancelWake() {
	if c.wake == 0 {
		return
	}
	c.sched.Cancel(c.wake)
	c.wake = 0
	c.wakeEpisode = 0
}
