package debounce

import (
	"sync"
	"time"
)

// ManualScheduler is a Scheduler driven by Advance instead of wall time.
type ManualScheduler struct {
	mu    sync.Mutex
	now   time.Duration
	tasks []*manualTask
}

type manualTask struct {
	at       time.Duration
	fn       func()
	canceled bool
}

// NewManualScheduler returns a ManualScheduler at time zero.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// Schedule implements Scheduler.
func (s *ManualScheduler) Schedule(delay time.Duration, fn func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	task := &manualTask{at: s.now + delay, fn: fn}
	s.tasks = append(s.tasks, task)
	return func() {
		s.mu.Lock()
		task.canceled = true
		s.mu.Unlock()
	}
}

// Advance moves time forward by d and runs every task that came due, in due order.
func (s *ManualScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	s.now += d
	var due []*manualTask
	remaining := s.tasks[:0]
	for _, task := range s.tasks {
		switch {
		case task.canceled:
		case task.at <= s.now:
			due = append(due, task)
		default:
			remaining = append(remaining, task)
		}
	}
	s.tasks = remaining
	s.mu.Unlock()

	for _, task := range due {
		s.mu.Lock()
		canceled := task.canceled
		s.mu.Unlock()
		if !canceled {
			task.fn()
		}
	}
}

// Pending counts scheduled tasks that are neither run nor canceled.
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, task := range s.tasks {
		if !task.canceled {
			n++
		}
	}
	return n
}
