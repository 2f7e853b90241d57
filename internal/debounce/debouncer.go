package debounce

import (
	"sync"
	"time"
)

// Debouncer emits the latest pushed value once input has been quiet for the
// configured delay.
type Debouncer[T any] struct {
	deferred *Deferred

	mu       sync.Mutex
	latest   T
	callback func(T)
}

// New creates a Debouncer that hands the settled value to callback.
func New[T any](delay time.Duration, callback func(T), opts ...Option) *Debouncer[T] {
	d := &Debouncer[T]{callback: callback}
	d.deferred = NewDeferred(delay, d.emit, opts...)
	return d
}

// Push records v as the latest value and restarts the quiet period.
func (d *Debouncer[T]) Push(v T) {
	d.mu.Lock()
	d.latest = v
	d.mu.Unlock()

	d.deferred.Reschedule()
}

// SetCallback swaps the downstream callback. A pending emission goes to the new
// callback and the quiet period is not restarted.
func (d *Debouncer[T]) SetCallback(callback func(T)) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.callback = callback
}

// Cancel drops a pending emission.
func (d *Debouncer[T]) Cancel() {
	d.deferred.Cancel()
}

// Pending reports whether an emission is armed.
func (d *Debouncer[T]) Pending() bool {
	return d.deferred.Pending()
}

// Close cancels any pending emission and waits for one already running to
// finish, so no callback runs after Close returns. Calling Close from the
// callback deadlocks.
func (d *Debouncer[T]) Close() {
	d.deferred.Stop()
}

func (d *Debouncer[T]) emit() {
	d.mu.Lock()
	v := d.latest
	callback := d.callback
	d.mu.Unlock()

	if callback != nil {
		callback(v)
	}
}
