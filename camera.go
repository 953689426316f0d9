package scrolly

import (
	"github.com/charmbracelet/harmonica"
	"github.com/go-gl/mathgl/mgl64"
)

// lookSpring smooths the camera's look target with a critically damped (or
// user-tuned) spring per axis.
type lookSpring struct {
	frequency float64
	damping   float64
	spring    harmonica.Spring
	lastDt    float64
	vel       mgl64.Vec3
}

// Camera is a perspective camera positioned in world space and aimed at a
// target point.
type Camera struct {
	// Position is the eye position in world space.
	Position mgl64.Vec3
	// Target is the point the camera looks at.
	Target mgl64.Vec3
	// Up is the camera's up direction.
	Up mgl64.Vec3

	// FOV is the vertical field of view in degrees.
	FOV float64
	// Near and Far are the clip plane distances.
	Near, Far float64

	// Viewport is the screen-space rectangle this camera renders into.
	Viewport Rect

	lookGoal mgl64.Vec3
	look     *lookSpring

	view  mgl64.Mat4
	proj  mgl64.Mat4
	dirty bool
}

// NewCamera creates a camera at the origin looking down -Z with a 45 degree
// field of view.
func NewCamera(viewport Rect) *Camera {
	return &Camera{
		Target:   mgl64.Vec3{0, 0, -1},
		lookGoal: mgl64.Vec3{0, 0, -1},
		Up:       mgl64.Vec3{0, 1, 0},
		FOV:      45,
		Near:     0.1,
		Far:      1000,
		Viewport: viewport,
		dirty:    true,
	}
}

// SetPosition moves the camera eye.
func (c *Camera) SetPosition(p mgl64.Vec3) {
	c.Position = p
	c.dirty = true
}

// LookAt aims the camera at target. With a look spring enabled the target is
// approached over subsequent updates instead of immediately.
func (c *Camera) LookAt(target mgl64.Vec3) {
	c.lookGoal = target
	if c.look == nil {
		c.Target = target
	}
	c.dirty = true
}

// SetLookSpring enables spring smoothing of the look target. frequency is the
// angular frequency and damping the damping ratio (1 = critically damped).
func (c *Camera) SetLookSpring(frequency, damping float64) {
	c.look = &lookSpring{frequency: frequency, damping: damping}
}

// ClearLookSpring disables look smoothing and snaps to the last goal.
func (c *Camera) ClearLookSpring() {
	c.look = nil
	c.Target = c.lookGoal
	c.dirty = true
}

// LookSpringEnabled reports whether look smoothing is on.
func (c *Camera) LookSpringEnabled() bool {
	return c.look != nil
}

// update advances the look spring by dt seconds. Called from Director.Tick.
func (c *Camera) update(dt float64) {
	ls := c.look
	if ls == nil || dt <= 0 {
		return
	}
	if ls.lastDt != dt {
		ls.spring = harmonica.NewSpring(dt, ls.frequency, ls.damping)
		ls.lastDt = dt
	}
	for i := 0; i < 3; i++ {
		c.Target[i], ls.vel[i] = ls.spring.Update(c.Target[i], ls.vel[i], c.lookGoal[i])
	}
	c.dirty = true
}

// MarkDirty forces a recomputation of the cached matrices.
func (c *Camera) MarkDirty() {
	c.dirty = true
}

func (c *Camera) computeMatrices() {
	if !c.dirty {
		return
	}
	c.dirty = false
	c.view = mgl64.LookAtV(c.Position, c.Target, c.Up)
	aspect := 1.0
	if c.Viewport.Height > 0 {
		aspect = c.Viewport.Width / c.Viewport.Height
	}
	c.proj = mgl64.Perspective(mgl64.DegToRad(c.FOV), aspect, c.Near, c.Far)
}

// ViewMatrix returns the world-to-camera matrix.
func (c *Camera) ViewMatrix() mgl64.Mat4 {
	c.computeMatrices()
	return c.view
}

// ProjectionMatrix returns the perspective projection matrix.
func (c *Camera) ProjectionMatrix() mgl64.Mat4 {
	c.computeMatrices()
	return c.proj
}

// WorldToScreen projects a world point into viewport pixels. ok is false when
// the point is behind the camera.
func (c *Camera) WorldToScreen(p mgl64.Vec3) (sx, sy float64, ok bool) {
	c.computeMatrices()
	clip := c.proj.Mul4(c.view).Mul4x1(p.Vec4(1))
	w := clip.W()
	if w <= 0 {
		return 0, 0, false
	}
	ndcX := clip.X() / w
	ndcY := clip.Y() / w
	sx = c.Viewport.X + (ndcX+1)/2*c.Viewport.Width
	sy = c.Viewport.Y + (1-ndcY)/2*c.Viewport.Height
	return sx, sy, true
}
