package scrolly

// SceneRange is an inclusive scroll-percentage range. Start <= End, both in
// [0, 100].
type SceneRange struct {
	Start, End float64
}

// Contains reports whether pct lies in [Start, End].
func (r SceneRange) Contains(pct float64) bool {
	return pct >= r.Start && pct <= r.End
}

// SceneHandler is implemented by values that react to a scene becoming
// active or inactive.
type SceneHandler interface {
	OnEnter()
	OnExit()
}

// Scene is a narrative milestone bound to a scroll-percentage range. Its
// callbacks take no arguments; either may be nil.
type Scene struct {
	Name  string
	Range SceneRange

	// Caption is optional text shown while the scene is active.
	Caption string

	OnEnter func()
	OnExit  func()
}

// NewScene creates a scene covering [start, end] with no callbacks.
func NewScene(name string, start, end float64) *Scene {
	return &Scene{Name: name, Range: SceneRange{Start: start, End: end}}
}

// NewSceneFromHandler creates a scene whose callbacks forward to h.
func NewSceneFromHandler(name string, r SceneRange, h SceneHandler) *Scene {
	return &Scene{
		Name:    name,
		Range:   r,
		OnEnter: h.OnEnter,
		OnExit:  h.OnExit,
	}
}

func (s *Scene) enter() {
	if s.OnEnter != nil {
		s.OnEnter()
	}
}

func (s *Scene) exit() {
	if s.OnExit != nil {
		s.OnExit()
	}
}

// SceneEventKind identifies a scene lifecycle transition.
type SceneEventKind uint8

const (
	SceneEnter SceneEventKind = iota // a scene became the tracked scene
	SceneExit                        // a scene's exit callback fired
)

// String returns "enter" or "exit".
func (k SceneEventKind) String() string {
	switch k {
	case SceneEnter:
		return "enter"
	case SceneExit:
		return "exit"
	default:
		return "unknown"
	}
}

// SceneEvent describes one fired scene callback.
type SceneEvent struct {
	Kind    SceneEventKind
	Name    string
	Range   SceneRange
	Percent float64
	Scene   *Scene
}

// EntityStore is the interface for optional ECS integration.
// When set on a Director, scene lifecycle events are forwarded to it.
type EntityStore interface {
	EmitEvent(event SceneEvent)
}

// matchScene returns the first scene whose range contains pct, or nil.
func matchScene(scenes []*Scene, pct float64) *Scene {
	for _, s := range scenes {
		if s.Range.Contains(pct) {
			return s
		}
	}
	return nil
}
