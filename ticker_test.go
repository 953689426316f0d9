package scrolly

import (
	"context"
	"errors"
	"testing"
	"time"
)

func newTestTicker() (*Ticker, *ManualClock, *Scroller, *Director) {
	clock := NewManualClock(time.Unix(0, 0))
	sc := NewScroller(DefaultScrollerConfig(1000))
	d := NewDirector(DirectorConfig{Scroller: sc, Scenes: []*Scene{NewScene("all", 0, 100)}})
	return NewTicker(clock, sc, d), clock, sc, d
}

func TestTickerStepUsesClock(t *testing.T) {
	tk, clock, sc, _ := newTestTicker()

	if _, ok := tk.Step(); ok {
		t.Fatal("Step should fail before Start")
	}

	tk.Start()
	sc.OnWheel(120)
	clock.Advance(time.Second / 60)
	f, ok := tk.Step()
	if !ok {
		t.Fatal("Step should run after Start")
	}
	if !approxEqual(f.Dt, 1.0/60, 1e-9) {
		t.Errorf("dt = %v, want 1/60", f.Dt)
	}
	if !approxEqual(f.FakeScroll, 0.114, 1e-6) {
		t.Errorf("fakeScroll = %v, want 0.114", f.FakeScroll)
	}

	// No clock movement means a zero-length frame.
	f, _ = tk.Step()
	if f.Dt != 0 {
		t.Errorf("dt = %v, want 0", f.Dt)
	}
}

func TestTickerFrameOrder(t *testing.T) {
	tk, _, sc, d := newTestTicker()
	sc.OnWheel(600)

	var order []string
	d.OnSceneEvent(func(SceneEvent) { order = append(order, "director") })
	tk.OnFrame(func(f ScrollFrame) {
		order = append(order, "observer")
		// The director has already sampled this frame's scroll state.
		if d.Percent() != f.Percent {
			t.Errorf("director percent %v != frame percent %v", d.Percent(), f.Percent)
		}
	})
	tk.OnFrame(func(ScrollFrame) { order = append(order, "observer2") })

	tk.Advance(frame)
	want := []string{"director", "observer", "observer2"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order = %v, want %v", order, want)
			break
		}
	}
}

func TestTickerStopAndDispose(t *testing.T) {
	tk, clock, sc, _ := newTestTicker()
	tk.Start()
	tk.Stop()
	if tk.Running() {
		t.Error("should be stopped")
	}
	clock.Advance(time.Second)
	if _, ok := tk.Step(); ok {
		t.Error("Step should fail while stopped")
	}

	// Explicit frames still run while stopped.
	sc.OnWheel(60)
	if f := tk.Advance(frame); f.FakeScroll == 0 {
		t.Error("Advance should run while stopped")
	}

	tk.Dispose()
	tk.Dispose()
	if !tk.Disposed() {
		t.Error("should be disposed")
	}
	tk.Start()
	if tk.Running() {
		t.Error("Start after Dispose should be a no-op")
	}
	before := sc.FakeScroll()
	if f := tk.Advance(frame); f != (ScrollFrame{}) {
		t.Errorf("Advance after Dispose = %+v, want zero frame", f)
	}
	if sc.FakeScroll() != before {
		t.Error("Advance after Dispose should not touch the scroller")
	}
}

func TestTickerRestartResetsFrameTime(t *testing.T) {
	tk, clock, _, _ := newTestTicker()
	tk.Start()
	tk.Stop()
	clock.Advance(10 * time.Second)
	tk.Start()
	clock.Advance(time.Second / 60)
	f, _ := tk.Step()
	if !approxEqual(f.Dt, 1.0/60, 1e-9) {
		t.Errorf("dt = %v, want 1/60 (paused time excluded)", f.Dt)
	}
}

func TestTickerRunCancel(t *testing.T) {
	tk := NewTicker(nil, NewScroller(DefaultScrollerConfig(1000)), nil)
	frames := make(chan struct{}, 16)
	tk.OnFrame(func(ScrollFrame) {
		select {
		case frames <- struct{}{}:
		default:
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- tk.Run(ctx, time.Millisecond) }()

	select {
	case <-frames:
	case <-time.After(5 * time.Second):
		t.Fatal("Run produced no frames")
	}
	cancel()

	select {
	case err := <-errc:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("err = %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestTickerRunDispose(t *testing.T) {
	tk := NewTicker(nil, NewScroller(DefaultScrollerConfig(1000)), nil)
	errc := make(chan error, 1)
	go func() { errc <- tk.Run(context.Background(), time.Hour) }()
	tk.Dispose()

	select {
	case err := <-errc:
		if err != nil {
			t.Errorf("err = %v, want nil", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after Dispose")
	}
}
