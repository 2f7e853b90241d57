package debounce

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type emission struct {
	at    time.Duration
	value string
}

func TestDebouncer_EmitsLatestAfterQuietPeriod(t *testing.T) {
	clock := &fakeClock{}
	var got []emission

	d := New(500*time.Millisecond, func(v string) {
		got = append(got, emission{at: clock.Now(), value: v})
	}, WithClock(clock))
	defer d.Close()

	d.Push("p")
	clock.Advance(100 * time.Millisecond)
	d.Push("ph")
	clock.Advance(100 * time.Millisecond)
	d.Push("pho")
	clock.Advance(time.Second)

	require.Len(t, got, 1)
	assert.Equal(t, 700*time.Millisecond, got[0].at)
	assert.Equal(t, "pho", got[0].value)
}

func TestDebouncer_NoEmissionBeforeQuietPeriod(t *testing.T) {
	clock := &fakeClock{}
	calls := 0

	d := New(500*time.Millisecond, func(string) { calls++ }, WithClock(clock))
	defer d.Close()

	d.Push("a")
	clock.Advance(499 * time.Millisecond)
	assert.Equal(t, 0, calls)
	assert.True(t, d.Pending())

	clock.Advance(time.Millisecond)
	assert.Equal(t, 1, calls)
	assert.False(t, d.Pending())
}

func TestDebouncer_SeparateBurstsEmitSeparately(t *testing.T) {
	clock := &fakeClock{}
	var got []string

	d := New(500*time.Millisecond, func(v string) { got = append(got, v) }, WithClock(clock))
	defer d.Close()

	d.Push("first")
	clock.Advance(600 * time.Millisecond)
	d.Push("second")
	clock.Advance(600 * time.Millisecond)

	assert.Equal(t, []string{"first", "second"}, got)
}

func TestDebouncer_CloseCancelsPending(t *testing.T) {
	clock := &fakeClock{}
	calls := 0

	d := New(500*time.Millisecond, func(string) { calls++ }, WithClock(clock))

	d.Push("a")
	clock.Advance(200 * time.Millisecond)
	d.Close()
	clock.Advance(time.Second)

	assert.Equal(t, 0, calls)

	d.Push("b")
	clock.Advance(time.Second)
	assert.Equal(t, 0, calls, "pushes after Close must not emit")
}

func TestDebouncer_CloseWaitsForRunningCallback(t *testing.T) {
	clock := &fakeClock{}
	started := make(chan struct{})
	release := make(chan struct{})
	var finished atomic.Bool

	d := New(500*time.Millisecond, func(string) {
		close(started)
		<-release
		finished.Store(true)
	}, WithClock(clock))

	d.Push("a")
	go clock.Advance(time.Second)
	<-started

	var closed atomic.Bool
	go func() {
		d.Close()
		closed.Store(true)
	}()

	assert.Never(t, closed.Load, 50*time.Millisecond, 5*time.Millisecond, "Close returned while the callback was running")

	close(release)
	require.Eventually(t, closed.Load, time.Second, time.Millisecond)
	assert.True(t, finished.Load())
}

func TestDebouncer_CancelKeepsItUsable(t *testing.T) {
	clock := &fakeClock{}
	var got []string

	d := New(500*time.Millisecond, func(v string) { got = append(got, v) }, WithClock(clock))
	defer d.Close()

	d.Push("dropped")
	d.Cancel()
	clock.Advance(time.Second)
	assert.Empty(t, got)

	d.Push("kept")
	clock.Advance(time.Second)
	assert.Equal(t, []string{"kept"}, got)
}

func TestDebouncer_UsesCurrentCallback(t *testing.T) {
	clock := &fakeClock{}
	var stale, current []string

	d := New(500*time.Millisecond, func(v string) { stale = append(stale, v) }, WithClock(clock))
	defer d.Close()

	d.Push("query")
	clock.Advance(300 * time.Millisecond)
	d.SetCallback(func(v string) { current = append(current, v) })
	clock.Advance(200 * time.Millisecond)

	assert.Empty(t, stale)
	assert.Equal(t, []string{"query"}, current)
	assert.Equal(t, 500*time.Millisecond, clock.Now(), "swapping the callback must not restart the timer")
}

func TestDeferred_RescheduleRestartsTimer(t *testing.T) {
	clock := &fakeClock{}
	var fired []time.Duration

	d := NewDeferred(100*time.Millisecond, func() { fired = append(fired, clock.Now()) }, WithClock(clock))
	defer d.Stop()

	d.Reschedule()
	clock.Advance(50 * time.Millisecond)
	d.Reschedule()
	clock.Advance(50 * time.Millisecond)
	assert.Empty(t, fired)

	clock.Advance(50 * time.Millisecond)
	assert.Equal(t, []time.Duration{150 * time.Millisecond}, fired)
}

func TestDeferred_StaleFireIsIgnored(t *testing.T) {
	clock := &fakeClock{}
	calls := 0

	d := NewDeferred(100*time.Millisecond, func() { calls++ }, WithClock(clock))
	defer d.Stop()

	d.Reschedule()
	gen := d.gen
	d.Cancel()

	// Simulates a timer goroutine that fired just before Cancel took the lock.
	d.fire(gen)

	assert.Equal(t, 0, calls)
}

func TestDeferred_SetFunc(t *testing.T) {
	clock := &fakeClock{}
	var which string

	d := NewDeferred(100*time.Millisecond, func() { which = "old" }, WithClock(clock))
	defer d.Stop()

	d.Reschedule()
	d.SetFunc(func() { which = "new" })
	clock.Advance(100 * time.Millisecond)

	assert.Equal(t, "new", which)
}

func TestDebouncer_RealClock(t *testing.T) {
	var calls atomic.Int32
	var mu sync.Mutex
	var last string
	done := make(chan struct{})

	d := New(20*time.Millisecond, func(v string) {
		mu.Lock()
		last = v
		mu.Unlock()
		if calls.Add(1) == 1 {
			close(done)
		}
	})
	defer d.Close()

	d.Push("a")
	d.Push("ab")
	d.Push("abc")

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("debouncer never emitted")
	}

	time.Sleep(60 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, "abc", last)
	assert.Equal(t, int32(1), calls.Load())
}
