package scrolly

// syntheticEvent is a single injected input event. Pointer events use screen
// coordinates, identical to real mouse input.
type syntheticEvent struct {
	wheel   bool
	deltaY  float64
	x, y    float64
	pressed bool
}

// InjectWheel queues a wheel event with the given forward delta (browser
// convention: positive scrolls forward). Consumes one frame.
func (in *Input) InjectWheel(deltaY float64) {
	in.injectQueue = append(in.injectQueue, syntheticEvent{wheel: true, deltaY: deltaY})
}

// InjectPress queues a pointer press at the given screen coordinates.
func (in *Input) InjectPress(x, y float64) {
	in.injectQueue = append(in.injectQueue, syntheticEvent{x: x, y: y, pressed: true})
}

// InjectMove queues a pointer move with the button held down. Use this
// between InjectPress and InjectRelease to simulate a drag.
func (in *Input) InjectMove(x, y float64) {
	in.injectQueue = append(in.injectQueue, syntheticEvent{x: x, y: y, pressed: true})
}

// InjectRelease queues a pointer release at the given screen coordinates.
func (in *Input) InjectRelease(x, y float64) {
	in.injectQueue = append(in.injectQueue, syntheticEvent{x: x, y: y})
}

// InjectClick queues a press followed by a release at the same screen
// coordinates. Consumes two frames.
func (in *Input) InjectClick(x, y float64) {
	in.InjectPress(x, y)
	in.InjectRelease(x, y)
}

// InjectDrag queues a full drag sequence: press at (fromX, fromY), linearly
// interpolated moves over frames-2 intermediate frames, and release at
// (toX, toY). Minimum frames is 2 (press + release).
func (in *Input) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	in.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		in.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	in.InjectRelease(toX, toY)
}

// Pending returns the number of queued synthetic events.
func (in *Input) Pending() int {
	return len(in.injectQueue)
}

// processInjected pops one event from the queue and applies it. Returns true
// if an event was consumed (real input is skipped for the frame).
func (in *Input) processInjected() bool {
	if len(in.injectQueue) == 0 {
		return false
	}
	evt := in.injectQueue[0]
	copy(in.injectQueue, in.injectQueue[1:])
	in.injectQueue = in.injectQueue[:len(in.injectQueue)-1]

	if evt.wheel {
		in.scroller.OnWheel(evt.deltaY)
		return true
	}
	in.processPointer(0, evt.x, evt.y, evt.pressed)
	return true
}
