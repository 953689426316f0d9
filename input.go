package scrolly

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

const (
	maxPointers = 10 // pointer 0 = mouse, 1-9 = touch

	// DefaultWheelScale converts one ebiten wheel notch into a pixel delta
	// comparable to a browser wheel event.
	DefaultWheelScale = 100.0
	// defaultClickSlop is how far a press may move on the progress bar and
	// still count as a click.
	defaultClickSlop = 4.0
)

// --- Per-pointer state ---

type pointerState struct {
	down     bool
	startX   float64
	startY   float64
	lastX    float64
	lastY    float64
	onBar    bool // press began on the progress bar
	dragging bool // press is feeding the scroller
}

// Input turns ebiten mouse, wheel, and touch state (or injected synthetic
// events) into Scroller input. Presses on the progress bar seek; presses
// anywhere else drag. Only one pointer drives a drag at a time.
type Input struct {
	scroller *Scroller
	bar      *ProgressBar

	// WheelScale multiplies ebiten's wheel offset. ebiten reports positive
	// values for scrolling up, so the sign is inverted to get a forward delta.
	WheelScale float64
	// ClickSlop is the maximum press movement, in pixels, for a progress
	// bar press to count as a click.
	ClickSlop float64

	pointers     [maxPointers]pointerState
	dragPointer  int // pointer driving the scroller drag, or -1
	touchMap     [maxPointers]ebiten.TouchID
	touchUsed    [maxPointers]bool
	prevTouchIDs []ebiten.TouchID

	injectQueue []syntheticEvent
}

// NewInput creates an Input feeding scroller. bar may be nil.
func NewInput(scroller *Scroller, bar *ProgressBar) *Input {
	return &Input{
		scroller:    scroller,
		bar:         bar,
		WheelScale:  DefaultWheelScale,
		ClickSlop:   defaultClickSlop,
		dragPointer: -1,
	}
}

// Update polls input for this frame. An injected event, when queued, replaces
// real pointer input for the frame.
func (in *Input) Update() {
	if in.processInjected() {
		return
	}
	_, wy := ebiten.Wheel()
	if wy != 0 {
		in.scroller.OnWheel(-wy * in.WheelScale)
	}

	mx, my := ebiten.CursorPosition()
	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	in.processPointer(0, float64(mx), float64(my), pressed)
	in.processTouchPointers()
}

// processTouchPointers handles touch input (pointers 1-9).
func (in *Input) processTouchPointers() {
	touchIDs := ebiten.AppendTouchIDs(in.prevTouchIDs[:0])
	in.prevTouchIDs = touchIDs

	var activeSlots [maxPointers]bool
	for _, tid := range touchIDs {
		slot := in.touchSlot(tid)
		if slot < 0 {
			continue
		}
		activeSlots[slot] = true
		tx, ty := ebiten.TouchPosition(tid)
		in.processPointer(slot, float64(tx), float64(ty), true)
	}

	// Release any touch slots that are no longer active.
	for i := 1; i < maxPointers; i++ {
		if in.touchUsed[i] && !activeSlots[i] {
			ps := &in.pointers[i]
			if ps.down {
				in.processPointer(i, ps.lastX, ps.lastY, false)
			}
			in.touchUsed[i] = false
			in.touchMap[i] = 0
		}
	}
}

// touchSlot maps an ebiten.TouchID to a pointer slot (1-9).
// Returns the existing slot or allocates a new one. Returns -1 if full.
func (in *Input) touchSlot(tid ebiten.TouchID) int {
	for i := 1; i < maxPointers; i++ {
		if in.touchUsed[i] && in.touchMap[i] == tid {
			return i
		}
	}
	for i := 1; i < maxPointers; i++ {
		if !in.touchUsed[i] {
			in.touchUsed[i] = true
			in.touchMap[i] = tid
			return i
		}
	}
	return -1
}

// processPointer runs the pointer state machine for a single pointer.
func (in *Input) processPointer(pointerID int, x, y float64, pressed bool) {
	ps := &in.pointers[pointerID]

	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.startX, ps.startY = x, y
		ps.lastX, ps.lastY = x, y
		ps.dragging = false
		ps.onBar = false
		if in.bar != nil {
			_, ps.onBar = in.bar.ClickFraction(x, y)
		}
		if !ps.onBar && in.dragPointer < 0 {
			in.dragPointer = pointerID
			ps.dragging = true
			in.scroller.OnPointerDown(y)
		}

	case !pressed && ps.down:
		if ps.onBar && in.bar != nil {
			dx, dy := x-ps.startX, y-ps.startY
			if math.Sqrt(dx*dx+dy*dy) <= in.ClickSlop {
				if frac, ok := in.bar.ClickFraction(x, y); ok {
					in.scroller.OnProgressBarClick(frac)
				}
			}
		}
		if ps.dragging {
			// Movement since the last sample counts before the drag ends.
			if y != ps.lastY {
				in.scroller.OnPointerMove(y)
			}
			in.scroller.OnPointerUp()
			in.dragPointer = -1
		}
		ps.down = false
		ps.dragging = false
		ps.onBar = false
		ps.lastX, ps.lastY = x, y

	case pressed && ps.down:
		if ps.dragging && y != ps.lastY {
			in.scroller.OnPointerMove(y)
		}
		ps.lastX, ps.lastY = x, y

	default:
		ps.lastX, ps.lastY = x, y
	}
}
