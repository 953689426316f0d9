package scrolly

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// DefaultTraceSegments is the number of segments a built curve is resampled
// into for its TraceLine.
const DefaultTraceSegments = 500

// maxTraceSegments keeps the trace ribbon within 16-bit vertex indices.
const maxTraceSegments = 30000

// ErrEmptyGeometry is returned when a template object has fewer than two
// vertices to build a curve from.
var ErrEmptyGeometry = errors.New("scrolly: template geometry needs at least two vertices")

// ErrTooManySegments is returned when a build asks for more resample
// segments than the trace ribbon can index.
var ErrTooManySegments = fmt.Errorf("scrolly: trace segments exceed %d", maxTraceSegments)

// BuildOptions tunes BuildCurveFromTrace.
type BuildOptions struct {
	// Reverse inverts the point order before the curve is built.
	Reverse bool
	// Segments is the resample count for the returned TraceLine.
	// Zero means DefaultTraceSegments. Values above 30000 are rejected.
	Segments int
}

// BuildCurveFromTrace derives a world-space Catmull-Rom curve from the
// vertices of a template object. The geometry is de-indexed (one point per
// emitted vertex), every vertex is transformed through the object's full
// parent chain, the order is optionally reversed, and the curve is resampled
// into a TraceLine for rendering. Callers that only need the curve (the
// camera path) may discard the line.
func BuildCurveFromTrace(obj *Object, reverse bool) (*Curve, *TraceLine, error) {
	return BuildCurveFromTraceWith(obj, BuildOptions{Reverse: reverse})
}

// BuildCurveFromTraceWith is BuildCurveFromTrace with explicit options.
func BuildCurveFromTraceWith(obj *Object, opts BuildOptions) (*Curve, *TraceLine, error) {
	if obj == nil || obj.Geometry == nil {
		return nil, nil, fmt.Errorf("build curve: %w", ErrEmptyGeometry)
	}
	pts := obj.WorldVertices()
	if len(pts) < 2 {
		return nil, nil, fmt.Errorf("build curve from %q: %w", obj.Name, ErrEmptyGeometry)
	}
	if opts.Reverse {
		reversePoints(pts)
	}

	segments := opts.Segments
	if segments <= 0 {
		segments = DefaultTraceSegments
	}
	if segments > maxTraceSegments {
		return nil, nil, fmt.Errorf("build curve from %q: %d segments: %w", obj.Name, segments, ErrTooManySegments)
	}

	curve := NewCurve(pts)
	line := NewTraceLine(curve.Points(segments))
	return curve, line, nil
}

func reversePoints(pts []mgl64.Vec3) {
	for i, j := 0, len(pts)-1; i < j; i, j = i+1, j-1 {
		pts[i], pts[j] = pts[j], pts[i]
	}
}
