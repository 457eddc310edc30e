package pet

import (
	"errors"
	"log"
	"strings"
	"time"
)

// ReminderType groups reminders by purpose.
type ReminderType string

const (
	ReminderTask    ReminderType = "task"
	ReminderMissYou ReminderType = "miss-you"
	ReminderCare    ReminderType = "care"
	ReminderCustom  ReminderType = "custom"
)

// Valid reports whether t is a known reminder type.
func (t ReminderType) Valid() bool {
	switch t {
	case ReminderTask, ReminderMissYou, ReminderCare, ReminderCustom:
		return true
	}
	return false
}

// Reminder is pending until it is completed or dismissed, after which it never changes again.
// A recurring reminder spawns one successor when it comes due instead of rescheduling itself.
type Reminder struct {
	ID                string       `json:"id"`
	Type              ReminderType `json:"type"`
	Title             string       `json:"title"`
	Message           string       `json:"message"`
	ScheduledFor      time.Time    `json:"scheduledFor"`
	Recurring         bool         `json:"recurring"`
	RecurringInterval int          `json:"recurringInterval,omitempty"` // minutes
	CreatedAt         time.Time    `json:"createdAt"`
	Completed         bool         `json:"completed"`
	Dismissed         bool         `json:"dismissed"`

	Notified    bool   `json:"notified,omitempty"`
	SuccessorID string `json:"successorId,omitempty"`
}

// Resolved reports whether the reminder reached a terminal state.
func (r Reminder) Resolved() bool { return r.Completed || r.Dismissed }

// Interval returns the recurrence interval, zero when the reminder does not repeat.
func (r Reminder) Interval() time.Duration {
	if !r.Recurring || r.RecurringInterval <= 0 {
		return 0
	}
	return time.Duration(r.RecurringInterval) * time.Minute
}

// ReminderInput describes a reminder to add.
type ReminderInput struct {
	Type              ReminderType
	Title             string
	Message           string
	ScheduledFor      time.Time
	RecurringInterval int // minutes; zero for one-shot
}

var (
	ErrInvalidReminder  = errors.New("reminder needs a known type, a title and a schedule time")
	ErrReminderNotFound = errors.New("reminder not found")
)

// AddReminder appends a pending reminder and returns it with its generated id.
func AddReminder(s State, in ReminderInput, now time.Time) (State, Reminder, error) {
	in.Title = strings.TrimSpace(in.Title)
	if in.Type == "" {
		in.Type = ReminderCustom
	}
	if !in.Type.Valid() || in.Title == "" || in.ScheduledFor.IsZero() || in.RecurringInterval < 0 {
		return s, Reminder{}, ErrInvalidReminder
	}
	r := Reminder{
		ID:                NewID(),
		Type:              in.Type,
		Title:             in.Title,
		Message:           strings.TrimSpace(in.Message),
		ScheduledFor:      in.ScheduledFor,
		Recurring:         in.RecurringInterval > 0,
		RecurringInterval: in.RecurringInterval,
		CreatedAt:         now,
	}
	next := s
	next.Reminders = append(append([]Reminder(nil), s.Reminders...), r)
	log.Printf("Added %s reminder %q for %s", r.Type, r.Title, r.ScheduledFor.Format(time.RFC3339))
	return next, r, nil
}

// CompleteReminder marks a pending reminder done.
func CompleteReminder(s State, id string) (State, error) {
	return resolveReminder(s, id, func(r *Reminder) { r.Completed = true })
}

// DismissReminder marks a pending reminder dismissed.
func DismissReminder(s State, id string) (State, error) {
	return resolveReminder(s, id, func(r *Reminder) { r.Dismissed = true })
}

func resolveReminder(s State, id string, mark func(*Reminder)) (State, error) {
	for i, r := range s.Reminders {
		if r.ID != id {
			continue
		}
		if r.Resolved() {
			return s, nil
		}
		next := s
		next.Reminders = append([]Reminder(nil), s.Reminders...)
		mark(&next.Reminders[i])
		return next, nil
	}
	return s, ErrReminderNotFound
}

// CheckReminders runs one due check. It returns the next state and the reminders that just came
// due; each pending reminder is reported once. Recurring reminders spawn their successor on the
// first check that finds them due, scheduled from the original time so the series does not drift.
func CheckReminders(s State, now time.Time) (State, []Reminder) {
	var due []Reminder
	reminders := make([]Reminder, 0, len(s.Reminders)+1)
	var spawned []Reminder

	for _, r := range s.Reminders {
		if r.Resolved() {
			if now.Sub(r.CreatedAt) > ReminderRetention {
				continue
			}
			reminders = append(reminders, r)
			continue
		}
		if r.ScheduledFor.After(now) {
			reminders = append(reminders, r)
			continue
		}

		if iv := r.Interval(); iv > 0 && r.SuccessorID == "" {
			succ := Reminder{
				ID:                NewID(),
				Type:              r.Type,
				Title:             r.Title,
				Message:           r.Message,
				ScheduledFor:      r.ScheduledFor.Add(iv),
				Recurring:         true,
				RecurringInterval: r.RecurringInterval,
				CreatedAt:         now,
			}
			r.SuccessorID = succ.ID
			spawned = append(spawned, succ)
		}
		if !r.Notified {
			r.Notified = true
			due = append(due, r)
		}
		reminders = append(reminders, r)
	}
	reminders = append(reminders, spawned...)

	if missYouDue(s, reminders, now) {
		r := Reminder{
			ID:           NewID(),
			Type:         ReminderMissYou,
			Title:        "I miss you!",
			Message:      s.Name + " was feeling lonely",
			ScheduledFor: now,
			CreatedAt:    now,
			Notified:     true,
		}
		reminders = append(reminders, r)
		due = append(due, r)
		log.Printf("%s misses you (no interaction since %s)", s.Name, s.LastInteraction.Format(time.RFC3339))
	}

	next := s
	next.Reminders = reminders
	for _, r := range due {
		log.Printf("Reminder due: %s %q", r.Type, r.Title)
	}
	return next, due
}

func missYouDue(s State, reminders []Reminder, now time.Time) bool {
	if !s.IsAlive || now.Sub(s.LastInteraction) < MissYouAfter {
		return false
	}
	for _, r := range reminders {
		if r.Type == ReminderMissYou && !r.Resolved() && now.Sub(r.CreatedAt) < MissYouAfter {
			return false
		}
	}
	return true
}

// PendingReminders returns the unresolved reminders in insertion order.
func PendingReminders(s State) []Reminder {
	var out []Reminder
	for _, r := range s.Reminders {
		if !r.Resolved() {
			out = append(out, r)
		}
	}
	return out
}
