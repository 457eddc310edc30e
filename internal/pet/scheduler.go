package pet

import (
	"sync"
	"time"
)

// Handle identifies a scheduled task. The zero Handle is never returned by Schedule.
type Handle uint64

// Scheduler runs deferred tasks. Schedule must not run fn before it returns, and Cancel must be
// safe to call any number of times, including after the task ran.
type Scheduler interface {
	Schedule(delay time.Duration, fn func()) Handle
	Cancel(h Handle)
}

// TimerScheduler is a Scheduler on top of time.AfterFunc.
type TimerScheduler struct {
	mu     sync.Mutex
	next   Handle
	timers map[Handle]*time.Timer
}

// NewTimerScheduler returns a ready TimerScheduler.
func NewTimerScheduler() *TimerScheduler {
	return &TimerScheduler{timers: make(map[Handle]*time.Timer)}
}

func (s *TimerScheduler) Schedule(delay time.Duration, fn func()) Handle {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.next++
	h := s.next
	s.timers[h] = time.AfterFunc(max(delay, 0), func() {
		s.mu.Lock()
		_, live := s.timers[h]
		delete(s.timers, h)
		s.mu.Unlock()
		if live {
			fn()
		}
	})
	return h
}

func (s *TimerScheduler) Cancel(h Handle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.timers[h]; ok {
		t.Stop()
		delete(s.timers, h)
	}
}

// pending returns the number of tasks that have neither run nor been cancelled.
func (s *TimerScheduler) pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}
