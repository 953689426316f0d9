package scrolly

import (
	"context"
	"sync/atomic"
	"time"
)

// Clock supplies the current time to a Ticker.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time { return time.Now() }

// ManualClock is a Clock advanced explicitly, for deterministic stepping.
type ManualClock struct {
	t time.Time
}

// NewManualClock creates a clock starting at start.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{t: start}
}

// Now returns the clock's current time.
func (c *ManualClock) Now() time.Time { return c.t }

// Advance moves the clock forward by d.
func (c *ManualClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

// Ticker owns the per-frame loop: each frame it ticks the Scroller, then the
// Director, then the registered frame observers, in that order.
//
// Step and Advance must be called from a single goroutine. Stop and Dispose
// may be called from any goroutine.
type Ticker struct {
	clock     Clock
	scroller  *Scroller
	director  *Director
	observers []func(ScrollFrame)

	last     time.Time
	running  atomic.Bool
	disposed atomic.Bool
	done     chan struct{}
}

// NewTicker creates a stopped ticker. A nil clock uses SystemClock. director
// may be nil for scroll-only use.
func NewTicker(clock Clock, scroller *Scroller, director *Director) *Ticker {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Ticker{
		clock:    clock,
		scroller: scroller,
		director: director,
		done:     make(chan struct{}),
	}
}

// OnFrame registers a presentation observer called after each frame with the
// scroller's result.
func (t *Ticker) OnFrame(fn func(ScrollFrame)) {
	t.observers = append(t.observers, fn)
}

// Start begins measuring frame time from now. No-op once disposed.
func (t *Ticker) Start() {
	if t.disposed.Load() {
		return
	}
	t.last = t.clock.Now()
	t.running.Store(true)
}

// Stop pauses the ticker; Step becomes a no-op until Start is called again.
func (t *Ticker) Stop() {
	t.running.Store(false)
}

// Running reports whether the ticker is started.
func (t *Ticker) Running() bool {
	return t.running.Load()
}

// Dispose stops the ticker permanently and ends any Run loop.
func (t *Ticker) Dispose() {
	t.running.Store(false)
	if t.disposed.CompareAndSwap(false, true) {
		close(t.done)
	}
}

// Disposed reports whether Dispose has been called.
func (t *Ticker) Disposed() bool {
	return t.disposed.Load()
}

// Step advances one frame using the time elapsed on the clock since the
// previous Step (or Start). Returns false if the ticker is not running.
func (t *Ticker) Step() (ScrollFrame, bool) {
	if !t.running.Load() || t.disposed.Load() {
		return ScrollFrame{}, false
	}
	now := t.clock.Now()
	dt := now.Sub(t.last).Seconds()
	t.last = now
	return t.Advance(dt), true
}

// Advance runs one frame with an explicit dt in seconds, regardless of the
// running state. No-op once disposed.
func (t *Ticker) Advance(dt float64) ScrollFrame {
	if t.disposed.Load() {
		return ScrollFrame{}
	}
	frame := t.scroller.Tick(dt)
	if t.director != nil {
		t.director.Tick(dt)
	}
	for _, fn := range t.observers {
		fn(frame)
	}
	return frame
}

// Run starts the ticker and steps it every interval until ctx is cancelled or
// the ticker is disposed. Returns ctx.Err() on cancellation, nil on dispose.
func (t *Ticker) Run(ctx context.Context, interval time.Duration) error {
	t.Start()
	defer t.Stop()

	tk := time.NewTicker(interval)
	defer tk.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.done:
			return nil
		case <-tk.C:
			t.Step()
		}
	}
}
