// Package debounce delays an action until input has been quiet for a fixed interval.
package debounce

import (
	"sync"
	"time"
)

// DefaultDelay is the quiet period applied to search input.
const DefaultDelay = 500 * time.Millisecond

// Scheduler runs fn after delay. The returned cancel stops fn if it has not started.
type Scheduler interface {
	Schedule(delay time.Duration, fn func()) (cancel func())
}

// TimerScheduler schedules with time.AfterFunc.
type TimerScheduler struct{}

// Schedule implements Scheduler.
func (TimerScheduler) Schedule(delay time.Duration, fn func()) func() {
	t := time.AfterFunc(delay, fn)
	return func() { t.Stop() }
}

// Debouncer collapses bursts of triggers into a single call of the last
// function, run once delay has passed without another trigger.
type Debouncer struct {
	scheduler Scheduler
	delay     time.Duration

	mu      sync.Mutex
	cancel  func()
	pending func()
	seq     uint64
}

// New builds a Debouncer. A nil scheduler uses TimerScheduler; a non-positive
// delay uses DefaultDelay.
func New(scheduler Scheduler, delay time.Duration) *Debouncer {
	if scheduler == nil {
		scheduler = TimerScheduler{}
	}
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Debouncer{scheduler: scheduler, delay: delay}
}

// Trigger cancels any pending call and schedules fn.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.cancel != nil {
		d.cancel()
	}
	d.seq++
	seq := d.seq
	d.pending = fn
	d.cancel = d.scheduler.Schedule(d.delay, func() {
		d.mu.Lock()
		current := seq == d.seq
		if current {
			d.cancel = nil
			d.pending = nil
		}
		d.mu.Unlock()
		if current {
			fn()
		}
	})
}

// Cancel drops the pending call, if any.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.pending = nil
	d.seq++
}

// Flush runs the pending call now, on the caller's goroutine, and reports
// whether there was one.
func (d *Debouncer) Flush() bool {
	d.mu.Lock()
	fn := d.pending
	if d.cancel != nil {
		d.cancel()
	}
	d.cancel = nil
	d.pending = nil
	d.seq++
	d.mu.Unlock()

	if fn == nil {
		return false
	}
	fn()
	return true
}

// Pending reports whether a call is scheduled and not yet run.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cancel != nil
}
