package scrolly

import (
	"fmt"
	"math"
)

// Default scroller tuning. Smoothing values are lerp factors applied once per
// tick; friction is the per-frame velocity retention at 60 fps.
const (
	DefaultFriction              = 0.95
	DefaultSmoothing             = 0.06
	DefaultTargetScrollSmoothing = 0.1

	// seekSnapDistance is how close fakeScroll must get to a seek target
	// before it snaps onto it and the target is cleared.
	seekSnapDistance = 0.5

	// referenceFPS normalizes the friction decay so it is frame-rate
	// independent.
	referenceFPS = 60
)

// ClampPolicy selects whether the scroller bounds its state. The default,
// ClampNone, leaves fakeScroll and velocity unbounded.
type ClampPolicy uint8

const (
	ClampNone   ClampPolicy = iota // no bounds (default)
	ClampScroll                    // keep fakeScroll and seek targets within [0, MaxHeight]
)

// ScrollerConfig holds the tuning parameters for a Scroller.
type ScrollerConfig struct {
	// Friction is the fraction of velocity kept per 60 fps frame, in (0, 1).
	Friction float64
	// Smoothing is the lerp factor toward the free-scroll candidate, in (0, 1).
	Smoothing float64
	// TargetScrollSmoothing is the lerp factor used while seeking a target
	// set by a progress bar click, in (0, 1).
	TargetScrollSmoothing float64
	// MaxHeight is the synthetic scroll extent. Fixed at construction;
	// typically half the initial viewport height.
	MaxHeight float64
	// Clamp selects the optional bounds policy.
	Clamp ClampPolicy
}

// DefaultScrollerConfig returns the default tuning for the given viewport
// height. MaxHeight is viewportHeight/2.
func DefaultScrollerConfig(viewportHeight float64) ScrollerConfig {
	return ScrollerConfig{
		Friction:              DefaultFriction,
		Smoothing:             DefaultSmoothing,
		TargetScrollSmoothing: DefaultTargetScrollSmoothing,
		MaxHeight:             viewportHeight / 2,
	}
}

// Validate reports tuning values outside their documented ranges.
// A zero MaxHeight is accepted; Percent then yields NaN or Inf.
func (c ScrollerConfig) Validate() error {
	if c.Friction <= 0 || c.Friction >= 1 {
		return fmt.Errorf("friction %v out of range (0, 1)", c.Friction)
	}
	if c.Smoothing <= 0 || c.Smoothing >= 1 {
		return fmt.Errorf("smoothing %v out of range (0, 1)", c.Smoothing)
	}
	if c.TargetScrollSmoothing <= 0 || c.TargetScrollSmoothing >= 1 {
		return fmt.Errorf("target scroll smoothing %v out of range (0, 1)", c.TargetScrollSmoothing)
	}
	if c.MaxHeight < 0 {
		return fmt.Errorf("max height %v is negative", c.MaxHeight)
	}
	return nil
}

// ScrollFrame is the result of one scroller tick, consumed by the
// presentation step (progress bar, HUD, persistence).
type ScrollFrame struct {
	// Dt is the frame duration in seconds.
	Dt         float64
	FakeScroll float64
	Velocity   float64
	Percent    float64
	Seeking    bool
}

// ClipPath returns the CSS-style clip path for a progress element filled to
// this frame's percentage.
func (f ScrollFrame) ClipPath() string {
	return ProgressClipPath(f.Percent)
}

// Scroller converts wheel, drag, and progress bar input into a smoothed
// synthetic scroll value, independent of any native scrolling.
//
// A Scroller is not safe for concurrent use; input handlers and Tick are
// expected to run on the same goroutine.
type Scroller struct {
	config ScrollerConfig

	fakeScroll float64
	velocity   float64
	target     float64
	hasTarget  bool

	dragging bool
	lastY    float64
}

// NewScroller creates a Scroller at position zero.
func NewScroller(cfg ScrollerConfig) *Scroller {
	return &Scroller{config: cfg}
}

// Config returns the scroller's tuning.
func (s *Scroller) Config() ScrollerConfig {
	return s.config
}

// MaxHeight returns the synthetic scroll extent.
func (s *Scroller) MaxHeight() float64 {
	return s.config.MaxHeight
}

// FakeScroll returns the current synthetic scroll value.
func (s *Scroller) FakeScroll() float64 {
	return s.fakeScroll
}

// Velocity returns the accumulated scroll velocity.
func (s *Scroller) Velocity() float64 {
	return s.velocity
}

// Target returns the pending seek target, if any.
func (s *Scroller) Target() (float64, bool) {
	return s.target, s.hasTarget
}

// Dragging reports whether a pointer drag is in progress.
func (s *Scroller) Dragging() bool {
	return s.dragging
}

// Percent returns fakeScroll as a percentage of MaxHeight.
func (s *Scroller) Percent() float64 {
	return s.fakeScroll / s.config.MaxHeight * 100
}

// OnWheel accumulates a wheel delta into the velocity. Positive deltaY scrolls
// forward. There is no upper bound.
func (s *Scroller) OnWheel(deltaY float64) {
	s.velocity += deltaY
}

// OnPointerDown starts a drag at screen y.
func (s *Scroller) OnPointerDown(y float64) {
	s.dragging = true
	s.lastY = y
}

// OnPointerMove feeds the vertical movement since the last move into the
// velocity while dragging. Dragging down scrolls forward.
func (s *Scroller) OnPointerMove(y float64) {
	if !s.dragging {
		return
	}
	delta := s.lastY - y
	s.velocity += -delta
	s.lastY = y
}

// OnPointerUp ends the current drag.
func (s *Scroller) OnPointerUp() {
	s.dragging = false
}

// OnProgressBarClick starts an eased seek to the given fraction of MaxHeight.
// The jump is not instant: Tick lerps toward the target with
// TargetScrollSmoothing until it is within half a unit.
func (s *Scroller) OnProgressBarClick(fraction float64) {
	s.target = fraction * s.config.MaxHeight
	s.hasTarget = true
	if s.config.Clamp == ClampScroll {
		s.target = s.clamp(s.target)
	}
}

// Seek moves fakeScroll to value immediately, clearing velocity and any
// pending target. Used when restoring a saved position.
func (s *Scroller) Seek(value float64) {
	if s.config.Clamp == ClampScroll {
		value = s.clamp(value)
	}
	s.fakeScroll = value
	s.velocity = 0
	s.hasTarget = false
}

// Reset returns the scroller to its initial state.
func (s *Scroller) Reset() {
	*s = Scroller{config: s.config}
}

// Tick advances the scroll state by dt seconds and returns the resulting
// frame. The step is a pure state update; presentation is left to the caller.
func (s *Scroller) Tick(dt float64) ScrollFrame {
	s.velocity *= DecayFactor(s.config.Friction, dt)

	var candidate, smoothing float64
	if s.hasTarget {
		candidate = s.target
		smoothing = s.config.TargetScrollSmoothing
	} else {
		candidate = s.fakeScroll + s.velocity*dt
		smoothing = s.config.Smoothing
	}
	s.fakeScroll = lerp(s.fakeScroll, candidate, smoothing)

	if s.hasTarget && math.Abs(s.fakeScroll-s.target) < seekSnapDistance {
		s.fakeScroll = s.target
		s.hasTarget = false
	}

	if s.config.Clamp == ClampScroll {
		s.fakeScroll = s.clamp(s.fakeScroll)
	}

	return ScrollFrame{
		Dt:         dt,
		FakeScroll: s.fakeScroll,
		Velocity:   s.velocity,
		Percent:    s.Percent(),
		Seeking:    s.hasTarget,
	}
}

func (s *Scroller) clamp(v float64) float64 {
	return math.Max(0, math.Min(v, s.config.MaxHeight))
}

// DecayFactor returns the velocity multiplier for dt seconds at the given
// per-60fps-frame friction: friction^(dt*60). Decays compose, so
// DecayFactor(f, a)*DecayFactor(f, b) == DecayFactor(f, a+b).
func DecayFactor(friction, dt float64) float64 {
	return math.Pow(friction, dt*referenceFPS)
}

// ProgressClipPath returns the clip path that reveals a progress element up
// to percent: inset(0 X% 0 0) with X = 100 - percent.
func ProgressClipPath(percent float64) string {
	return fmt.Sprintf("inset(0 %g%% 0 0)", 100-percent)
}
