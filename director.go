package scrolly

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// yawCommitThreshold is the minimum yaw change, in radians, before the
// character's heading is updated mid-path. Smaller changes are ignored to
// suppress jitter between adjacent trace samples.
const yawCommitThreshold = 2.5

// DirectorConfig wires a Director to its collaborators.
type DirectorConfig struct {
	Scroller   *Scroller
	Trace      *TraceLine
	CameraPath *Curve
	Character  *Object
	Camera     *Camera
	Scenes     []*Scene
}

type sceneHandler struct {
	id uint32
	fn func(SceneEvent)
}

// CallbackHandle allows removing a registered scene event callback.
type CallbackHandle struct {
	id uint32
	d  *Director
}

// Remove unregisters this callback so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.d == nil {
		return
	}
	s := h.d.handlers
	for i := range s {
		if s[i].id == h.id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = sceneHandler{}
			h.d.handlers = s[:len(s)-1]
			return
		}
	}
}

// Director couples the scroll percentage to the trace reveal, the character
// pose, the camera pose, and scene lifecycle callbacks, once per frame.
//
// Scene dispatch: each frame the first scene whose range contains the
// percentage is matched. When it differs from the tracked scene, the exit
// callback fires for the scene that was tracked before the current one
// (exits lag one transition behind), tracking advances, and the matched
// scene's enter callback fires. Frames with no matching scene leave the
// tracked scene unchanged and fire nothing.
type Director struct {
	scroller   *Scroller
	trace      *TraceLine
	cameraPath *Curve
	character  *Object
	camera     *Camera
	scenes     []*Scene

	current    *Scene
	lastActive *Scene
	yaw        float64
	percent    float64

	store    EntityStore
	handlers []sceneHandler
	nextID   uint32
}

// NewDirector creates a director. Scenes are matched in the given order.
// The character's current yaw seeds the anti-jitter gate.
func NewDirector(cfg DirectorConfig) *Director {
	d := &Director{
		scroller:   cfg.Scroller,
		trace:      cfg.Trace,
		cameraPath: cfg.CameraPath,
		character:  cfg.Character,
		camera:     cfg.Camera,
		scenes:     append([]*Scene(nil), cfg.Scenes...),
	}
	if d.character != nil {
		d.yaw = d.character.Yaw()
	}
	return d
}

// Scenes returns the scene list. The returned slice MUST NOT be mutated.
func (d *Director) Scenes() []*Scene {
	return d.scenes
}

// ActiveScene returns the tracked scene, or nil before the first match.
func (d *Director) ActiveScene() *Scene {
	return d.current
}

// Percent returns the percentage sampled on the last tick.
func (d *Director) Percent() float64 {
	return d.percent
}

// Character returns the object posed along the trace.
func (d *Director) Character() *Object {
	return d.character
}

// Camera returns the camera moved along the camera path.
func (d *Director) Camera() *Camera {
	return d.camera
}

// Trace returns the revealed trace line.
func (d *Director) Trace() *TraceLine {
	return d.trace
}

// SetEntityStore sets the optional ECS bridge.
func (d *Director) SetEntityStore(store EntityStore) {
	d.store = store
}

// OnSceneEvent registers a callback fired after every scene enter or exit
// callback.
func (d *Director) OnSceneEvent(fn func(SceneEvent)) CallbackHandle {
	d.nextID++
	d.handlers = append(d.handlers, sceneHandler{id: d.nextID, fn: fn})
	return CallbackHandle{id: d.nextID, d: d}
}

// Tick samples the scroll percentage and updates the trace, character,
// camera, and scene state. dt is in seconds.
func (d *Director) Tick(dt float64) {
	pct := d.scroller.Percent()
	d.percent = pct
	matched := matchScene(d.scenes, pct)

	if d.trace != nil {
		d.drawTrace(pct)
	}
	if d.camera != nil && d.cameraPath != nil {
		d.followCamera(pct, dt)
	}
	d.dispatch(matched, pct)
}

// drawTrace reveals the trace up to pct and poses the character on it.
func (d *Director) drawTrace(pct float64) {
	total := d.trace.VertexCount()
	exact := float64(total) * pct / 100
	n := int(math.Floor(exact))
	d.trace.SetDrawRange(0, n)

	if d.character == nil {
		return
	}
	if total == 0 {
		nan := math.NaN()
		d.character.Position = mgl64.Vec3{nan, nan, nan}
		return
	}

	a := clampIndex(n-1, total)
	b := clampIndex(n, total)
	if a == b {
		if b > 0 {
			a = b - 1
		} else if total > 1 {
			b = a + 1
		}
	}
	frac := exact - float64(n)

	va := d.trace.Vertex(a)
	vb := d.trace.Vertex(b)
	local := va.Add(vb.Sub(va).Mul(frac))
	d.character.Position = transformPoint(d.trace.Matrix, local)

	dir := vb.Sub(va)
	yaw := math.Atan2(dir.X(), dir.Z())
	delta := unwrapAngle(yaw - d.yaw)
	atEnd := b >= total-1
	if atEnd || math.Abs(delta) > yawCommitThreshold {
		d.yaw = yaw
		d.character.SetYaw(yaw)
	}
}

// followCamera moves the camera along its path and aims it at the character.
func (d *Director) followCamera(pct, dt float64) {
	d.camera.SetPosition(d.cameraPath.PointAt(pct / 100))
	if d.character != nil {
		d.camera.LookAt(d.character.Position)
	}
	d.camera.update(dt)
}

// dispatch runs the scene state machine for this frame.
func (d *Director) dispatch(matched *Scene, pct float64) {
	if matched == nil || matched == d.current {
		return
	}
	if d.lastActive != nil {
		d.lastActive.exit()
		d.emit(SceneExit, d.lastActive, pct)
	}
	d.lastActive = d.current
	d.current = matched
	matched.enter()
	d.emit(SceneEnter, matched, pct)
}

func (d *Director) emit(kind SceneEventKind, s *Scene, pct float64) {
	if d.store == nil && len(d.handlers) == 0 {
		return
	}
	ev := SceneEvent{Kind: kind, Name: s.Name, Range: s.Range, Percent: pct, Scene: s}
	for _, h := range d.handlers {
		h.fn(ev)
	}
	if d.store != nil {
		d.store.EmitEvent(ev)
	}
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// unwrapAngle maps an angle difference into (-pi, pi].
func unwrapAngle(a float64) float64 {
	a = math.Remainder(a, 2*math.Pi)
	if a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}
