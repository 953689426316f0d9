package scrolly

import (
	"github.com/go-gl/mathgl/mgl64"
)

// TraceLine is a renderable polyline whose visible portion is controlled by a
// draw range. The ground trace reveals progressively as the scroll
// percentage grows.
type TraceLine struct {
	points []mgl64.Vec3

	// Matrix places the line's points in world space. Identity for lines
	// built by BuildCurveFromTrace, whose samples are already in world space.
	Matrix mgl64.Mat4

	// Color is the stroke color used by the renderer.
	Color Color
	// Width is the stroke width in screen pixels.
	Width float64

	drawStart int
	drawCount int
}

// NewTraceLine creates a line through points with the whole line visible.
// The slice is copied.
func NewTraceLine(points []mgl64.Vec3) *TraceLine {
	pts := append([]mgl64.Vec3(nil), points...)
	return &TraceLine{
		points:    pts,
		Matrix:    mgl64.Ident4(),
		Color:     ColorWhite,
		Width:     3,
		drawCount: len(pts),
	}
}

// VertexCount returns the number of vertices in the line.
func (l *TraceLine) VertexCount() int {
	return len(l.points)
}

// Vertex returns vertex i in the line's local space.
// Panics if i is out of range.
func (l *TraceLine) Vertex(i int) mgl64.Vec3 {
	return l.points[i]
}

// Points returns the line's vertices. The returned slice MUST NOT be mutated.
func (l *TraceLine) Points() []mgl64.Vec3 {
	return l.points
}

// SetDrawRange sets the visible vertex range [start, start+count).
func (l *TraceLine) SetDrawRange(start, count int) {
	l.drawStart = start
	l.drawCount = count
}

// DrawRange returns the visible vertex range.
func (l *TraceLine) DrawRange() (start, count int) {
	return l.drawStart, l.drawCount
}

// VisiblePoints returns the vertices inside the draw range, clipped to the
// line's bounds.
func (l *TraceLine) VisiblePoints() []mgl64.Vec3 {
	start := l.drawStart
	if start < 0 {
		start = 0
	}
	end := l.drawStart + l.drawCount
	if end > len(l.points) {
		end = len(l.points)
	}
	if start >= end {
		return nil
	}
	return l.points[start:end]
}

// WorldVertex returns vertex i transformed by Matrix.
func (l *TraceLine) WorldVertex(i int) mgl64.Vec3 {
	return transformPoint(l.Matrix, l.points[i])
}
