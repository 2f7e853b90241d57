// Package debounce delays propagation of rapidly repeated events until input
// has been quiet for a fixed period.
package debounce

import (
	"sync"
	"time"
)

// DefaultDelay is the quiet period applied to search input.
const DefaultDelay = 500 * time.Millisecond

// Option configures a Deferred.
type Option func(*Deferred)

// WithClock replaces the clock used to schedule the callback.
func WithClock(c Clock) Option {
	return func(d *Deferred) {
		d.clock = c
	}
}

// Deferred runs a callback once a delay has elapsed since the last Reschedule.
// Every Reschedule cancels the pending run. The callback invoked is always the
// one most recently set, not the one current when the timer was armed.
//
// A Deferred is owned by the component that created it, which must call Stop on
// teardown.
type Deferred struct {
	delay time.Duration
	clock Clock

	mu      sync.Mutex
	fn      func()
	timer   Timer
	gen     uint64
	stopped bool

	running sync.WaitGroup
}

// NewDeferred creates a Deferred. Nothing is scheduled until Reschedule.
func NewDeferred(delay time.Duration, fn func(), opts ...Option) *Deferred {
	d := &Deferred{
		delay: delay,
		clock: RealClock,
		fn:    fn,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Reschedule cancels any pending run and arms a new one. It is a no-op after
// Stop.
func (d *Deferred) Reschedule() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	d.cancelLocked()

	gen := d.gen
	d.timer = d.clock.AfterFunc(d.delay, func() {
		d.fire(gen)
	})
}

// Cancel drops the pending run, if any. The Deferred can be rescheduled later.
func (d *Deferred) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.cancelLocked()
}

// Stop cancels the pending run, disables further scheduling and waits for a
// callback that already started to return. It must not be called from the
// callback itself.
func (d *Deferred) Stop() {
	d.mu.Lock()
	d.cancelLocked()
	d.stopped = true
	d.mu.Unlock()

	d.running.Wait()
}

// Pending reports whether a run is armed.
func (d *Deferred) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.timer != nil
}

// SetFunc replaces the callback without touching the schedule.
func (d *Deferred) SetFunc(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.fn = fn
}

// cancelLocked stops the timer and bumps the generation so a timer that already
// fired but has not yet taken the lock turns into a no-op.
func (d *Deferred) cancelLocked() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++
}

func (d *Deferred) fire(gen uint64) {
	d.mu.Lock()
	if d.stopped || gen != d.gen {
		d.mu.Unlock()
		return
	}
	d.timer = nil
	d.gen++
	fn := d.fn
	d.running.Add(1)
	d.mu.Unlock()

	defer d.running.Done()
	if fn != nil {
		fn()
	}
}
