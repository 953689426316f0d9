package scrolly

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestBuildCurveFromTrace(t *testing.T) {
	obj := NewMeshObject("trace", &Geometry{Positions: zigzag})
	curve, line, err := BuildCurveFromTrace(obj, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cp := curve.ControlPoints()
	if len(cp) != len(zigzag) {
		t.Fatalf("control points = %d, want %d", len(cp), len(zigzag))
	}
	for i := range cp {
		if cp[i] != zigzag[i] {
			t.Errorf("cp[%d] = %v, want %v", i, cp[i], zigzag[i])
		}
	}
	if line.VertexCount() != DefaultTraceSegments+1 {
		t.Errorf("line vertices = %d, want %d", line.VertexCount(), DefaultTraceSegments+1)
	}
	if line.Matrix != mgl64.Ident4() {
		t.Error("built line should use the identity matrix")
	}
	if start, count := line.DrawRange(); start != 0 || count != line.VertexCount() {
		t.Errorf("draw range = (%d, %d), want whole line", start, count)
	}
}

func TestBuildCurveFromTraceReverse(t *testing.T) {
	obj := NewMeshObject("trace", &Geometry{Positions: zigzag})
	fwd, _, _ := BuildCurveFromTrace(obj, false)
	rev, _, err := BuildCurveFromTrace(obj, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	f, r := fwd.ControlPoints(), rev.ControlPoints()
	for i := range f {
		if r[i] != f[len(f)-1-i] {
			t.Errorf("reversed[%d] = %v, want %v", i, r[i], f[len(f)-1-i])
		}
	}
	if !vecApprox(rev.PointAt(0), zigzag[len(zigzag)-1], 1e-9) {
		t.Error("reversed curve should start at the last vertex")
	}
	// Source geometry is untouched.
	if obj.Geometry.Positions[0] != zigzag[0] {
		t.Error("reverse mutated the template geometry")
	}
}

func TestBuildCurveFromTraceDeindexes(t *testing.T) {
	geom := &Geometry{
		Positions: []mgl64.Vec3{{0, 0, 0}, {1, 0, 0}, {2, 0, 0}},
		Indices:   []uint32{0, 1, 1, 2},
	}
	curve, _, err := BuildCurveFromTrace(NewMeshObject("indexed", geom), false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []mgl64.Vec3{{0, 0, 0}, {1, 0, 0}, {1, 0, 0}, {2, 0, 0}}
	got := curve.ControlPoints()
	if len(got) != len(want) {
		t.Fatalf("control points = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("cp[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestBuildCurveFromTraceAppliesParentChain(t *testing.T) {
	root := NewObject("root")
	root.Position = mgl64.Vec3{10, 0, 0}
	mid := NewObject("mid")
	mid.Rotation = mgl64.Vec3{0, math.Pi / 2, 0}
	root.AddChild(mid)

	obj := NewMeshObject("trace", &Geometry{Positions: []mgl64.Vec3{{0, 0, 0}, {1, 0, 0}}})
	obj.Scale = mgl64.Vec3{2, 2, 2}
	mid.AddChild(obj)

	curve, _, err := BuildCurveFromTrace(obj, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cp := curve.ControlPoints()
	// (1,0,0) scaled to (2,0,0), rotated about Y to (0,0,-2), moved by (10,0,0).
	if !vecApprox(cp[0], mgl64.Vec3{10, 0, 0}, 1e-9) {
		t.Errorf("cp[0] = %v, want (10,0,0)", cp[0])
	}
	if !vecApprox(cp[1], mgl64.Vec3{10, 0, -2}, 1e-9) {
		t.Errorf("cp[1] = %v, want (10,0,-2)", cp[1])
	}
}

func TestBuildCurveFromTraceWithSegments(t *testing.T) {
	obj := NewMeshObject("trace", &Geometry{Positions: zigzag})
	curve, line, err := BuildCurveFromTraceWith(obj, BuildOptions{Segments: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if line.VertexCount() != 11 {
		t.Fatalf("vertices = %d, want 11", line.VertexCount())
	}
	want := curve.Points(10)
	for i := range want {
		if line.Vertex(i) != want[i] {
			t.Errorf("vertex %d = %v, want %v", i, line.Vertex(i), want[i])
		}
	}
}

func TestBuildCurveFromTraceSegmentLimit(t *testing.T) {
	obj := NewMeshObject("trace", &Geometry{Positions: zigzag})
	if _, _, err := BuildCurveFromTraceWith(obj, BuildOptions{Segments: maxTraceSegments + 1}); !errors.Is(err, ErrTooManySegments) {
		t.Errorf("err = %v, want ErrTooManySegments", err)
	}
	_, line, err := BuildCurveFromTraceWith(obj, BuildOptions{Segments: maxTraceSegments})
	if err != nil {
		t.Fatalf("unexpected error at the limit: %v", err)
	}
	if line.VertexCount() != maxTraceSegments+1 {
		t.Errorf("vertices = %d, want %d", line.VertexCount(), maxTraceSegments+1)
	}
}

func TestBuildCurveFromTraceEmpty(t *testing.T) {
	tests := []struct {
		name string
		obj  *Object
	}{
		{"nil object", nil},
		{"no geometry", NewObject("bare")},
		{"one vertex", NewMeshObject("one", &Geometry{Positions: []mgl64.Vec3{{1, 1, 1}}})},
		{"empty positions", NewMeshObject("none", &Geometry{})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := BuildCurveFromTrace(tt.obj, false)
			if !errors.Is(err, ErrEmptyGeometry) {
				t.Errorf("err = %v, want ErrEmptyGeometry", err)
			}
		})
	}
}
