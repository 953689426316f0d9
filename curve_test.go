package scrolly

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func vecApprox(a, b mgl64.Vec3, eps float64) bool {
	return approxEqual(a[0], b[0], eps) && approxEqual(a[1], b[1], eps) && approxEqual(a[2], b[2], eps)
}

var zigzag = []mgl64.Vec3{
	{0, 0, 0},
	{4, 0, 2},
	{8, 1, 0},
	{12, 0, 3},
	{16, 0, 0},
}

func TestCurvePassesThroughControlPoints(t *testing.T) {
	c := NewCurve(zigzag)
	n := len(zigzag) - 1
	for k, p := range zigzag {
		got := c.Point(float64(k) / float64(n))
		if !vecApprox(got, p, 1e-9) {
			t.Errorf("Point(%d/%d) = %v, want %v", k, n, got, p)
		}
	}
}

func TestCurveEndpoints(t *testing.T) {
	c := NewCurve(zigzag)
	if got := c.PointAt(0); !vecApprox(got, zigzag[0], 1e-9) {
		t.Errorf("PointAt(0) = %v, want %v", got, zigzag[0])
	}
	last := zigzag[len(zigzag)-1]
	if got := c.PointAt(1); !vecApprox(got, last, 1e-9) {
		t.Errorf("PointAt(1) = %v, want %v", got, last)
	}
}

func TestCurveStraightLineIsUniform(t *testing.T) {
	pts := []mgl64.Vec3{{0, 0, 0}, {1, 0, 0}, {2, 0, 0}, {3, 0, 0}, {4, 0, 0}}
	c := NewCurve(pts)

	if !approxEqual(c.Length(), 4, 1e-6) {
		t.Errorf("Length = %v, want 4", c.Length())
	}
	for _, u := range []float64{0, 0.1, 0.25, 0.5, 0.9, 1} {
		got := c.PointAt(u)
		want := mgl64.Vec3{4 * u, 0, 0}
		if !vecApprox(got, want, 1e-6) {
			t.Errorf("PointAt(%v) = %v, want %v", u, got, want)
		}
	}
}

func TestCurvePointAtIsArcLengthUniform(t *testing.T) {
	// Uneven spacing: t is not uniform but u should be.
	pts := []mgl64.Vec3{{0, 0, 0}, {1, 0, 0}, {10, 0, 0}}
	c := NewCurve(pts)
	l := c.Length()
	for _, u := range []float64{0.2, 0.5, 0.8} {
		got := c.PointAt(u)
		if !approxEqual(got.X(), u*l, 0.05) {
			t.Errorf("PointAt(%v).X = %v, want ~%v", u, got.X(), u*l)
		}
	}
}

func TestCurvePointAtContinuous(t *testing.T) {
	c := NewCurve(zigzag)
	prev := c.PointAt(0)
	step := c.Length() / 1000
	for i := 1; i <= 1000; i++ {
		p := c.PointAt(float64(i) / 1000)
		if d := p.Sub(prev).Len(); d > 3*step {
			t.Fatalf("jump of %v at u=%v", d, float64(i)/1000)
		}
		prev = p
	}
}

func TestCurvePointsCountAndDeterminism(t *testing.T) {
	c := NewCurve(zigzag)
	a := c.Points(50)
	b := c.Points(50)
	if len(a) != 51 {
		t.Fatalf("len = %d, want 51", len(a))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("sample %d differs: %v vs %v", i, a[i], b[i])
		}
	}
	if len(c.Points(0)) != 2 {
		t.Error("Points(0) should clamp to one division")
	}
}

func TestCurveDuplicatePointsStayFinite(t *testing.T) {
	pts := []mgl64.Vec3{{0, 0, 0}, {0, 0, 0}, {1, 0, 0}, {1, 0, 0}}
	c := NewCurve(pts)
	for _, p := range c.Points(20) {
		for k := 0; k < 3; k++ {
			if math.IsNaN(p[k]) || math.IsInf(p[k], 0) {
				t.Fatalf("non-finite sample %v", p)
			}
		}
	}
}

func TestCurveDegenerate(t *testing.T) {
	single := NewCurve([]mgl64.Vec3{{1, 2, 3}})
	if got := single.Point(0.5); got != (mgl64.Vec3{1, 2, 3}) {
		t.Errorf("single point curve = %v", got)
	}
	empty := NewCurve(nil)
	if got := empty.Point(0.5); !math.IsNaN(got.X()) {
		t.Errorf("empty curve = %v, want NaN", got)
	}
}

func TestCurveControlPointsCopied(t *testing.T) {
	pts := append([]mgl64.Vec3(nil), zigzag...)
	c := NewCurve(pts)
	pts[0] = mgl64.Vec3{99, 99, 99}
	if c.ControlPoints()[0] != zigzag[0] {
		t.Error("curve should copy its input")
	}
}
