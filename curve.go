package scrolly

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// arcLengthDivisions is the number of samples used to build the arc-length
// table behind PointAt.
const arcLengthDivisions = 200

// Curve is an open centripetal Catmull-Rom spline through an ordered list of
// 3D points. It passes through every point with a continuous tangent.
//
// A Curve is immutable after construction and safe to read from multiple
// goroutines once built.
type Curve struct {
	points     []mgl64.Vec3
	arcLengths []float64
}

// NewCurve builds a curve through points. The slice is copied.
// At least two points are required for meaningful output; fewer produce NaN
// samples.
func NewCurve(points []mgl64.Vec3) *Curve {
	c := &Curve{points: append([]mgl64.Vec3(nil), points...)}
	c.arcLengths = c.computeArcLengths(arcLengthDivisions)
	return c
}

// ControlPoints returns a copy of the points the curve passes through.
func (c *Curve) ControlPoints() []mgl64.Vec3 {
	return append([]mgl64.Vec3(nil), c.points...)
}

// Length returns the approximate arc length of the curve.
func (c *Curve) Length() float64 {
	if len(c.arcLengths) == 0 {
		return 0
	}
	return c.arcLengths[len(c.arcLengths)-1]
}

// Point returns the point at curve parameter t in [0, 1]. t is not
// arc-length uniform: each control segment spans an equal share of t.
func (c *Curve) Point(t float64) mgl64.Vec3 {
	l := len(c.points)
	if l == 0 {
		nan := math.NaN()
		return mgl64.Vec3{nan, nan, nan}
	}
	if l == 1 {
		return c.points[0]
	}

	p := float64(l-1) * t
	i := int(math.Floor(p))
	w := p - float64(i)

	if i >= l-1 {
		i = l - 2
		w = p - float64(i)
	}
	if i < 0 {
		i = 0
		w = p
	}

	// Mirror the end points to synthesize the outer control points.
	var p0, p3 mgl64.Vec3
	if i > 0 {
		p0 = c.points[i-1]
	} else {
		p0 = c.points[0].Sub(c.points[1]).Add(c.points[0])
	}
	p1 := c.points[i]
	p2 := c.points[i+1]
	if i+2 < l {
		p3 = c.points[i+2]
	} else {
		p3 = c.points[l-1].Sub(c.points[l-2]).Add(c.points[l-1])
	}

	// Centripetal parametrization: knot spacing is |dp|^0.5, computed from the
	// squared distance as (|dp|^2)^0.25.
	dt0 := math.Pow(distSq(p0, p1), 0.25)
	dt1 := math.Pow(distSq(p1, p2), 0.25)
	dt2 := math.Pow(distSq(p2, p3), 0.25)
	if dt1 < 1e-4 {
		dt1 = 1
	}
	if dt0 < 1e-4 {
		dt0 = dt1
	}
	if dt2 < 1e-4 {
		dt2 = dt1
	}

	var out mgl64.Vec3
	for k := 0; k < 3; k++ {
		out[k] = nonuniformCatmullRom(p0[k], p1[k], p2[k], p3[k], dt0, dt1, dt2, w)
	}
	return out
}

// PointAt returns the point at arc-length fraction u in [0, 1], so equal
// steps in u cover equal distances along the curve. PointAt is continuous
// in u.
func (c *Curve) PointAt(u float64) mgl64.Vec3 {
	return c.Point(c.uToT(u))
}

// Points returns divisions+1 points sampled at t = d/divisions. The result
// is deterministic for a given curve and division count.
func (c *Curve) Points(divisions int) []mgl64.Vec3 {
	if divisions < 1 {
		divisions = 1
	}
	out := make([]mgl64.Vec3, divisions+1)
	for d := 0; d <= divisions; d++ {
		out[d] = c.Point(float64(d) / float64(divisions))
	}
	return out
}

// computeArcLengths samples the curve at divisions+1 parameters and returns
// the cumulative distance at each sample.
func (c *Curve) computeArcLengths(divisions int) []float64 {
	lengths := make([]float64, divisions+1)
	last := c.Point(0)
	var sum float64
	for p := 1; p <= divisions; p++ {
		cur := c.Point(float64(p) / float64(divisions))
		sum += cur.Sub(last).Len()
		lengths[p] = sum
		last = cur
	}
	return lengths
}

// uToT maps an arc-length fraction to the curve parameter using a binary
// search over the arc-length table.
func (c *Curve) uToT(u float64) float64 {
	lengths := c.arcLengths
	il := len(lengths)
	target := u * lengths[il-1]

	low, high := 0, il-1
	for low <= high {
		i := low + (high-low)/2
		cmp := lengths[i] - target
		if cmp < 0 {
			low = i + 1
		} else if cmp > 0 {
			high = i - 1
		} else {
			high = i
			break
		}
	}
	if high < 0 {
		high = 0
	}
	i := high

	if lengths[i] == target {
		return float64(i) / float64(il-1)
	}
	if i >= il-1 {
		return 1
	}

	before := lengths[i]
	segment := lengths[i+1] - before
	fraction := (target - before) / segment
	return (float64(i) + fraction) / float64(il-1)
}

// nonuniformCatmullRom evaluates one coordinate of a Catmull-Rom segment
// between x1 and x2 with knot intervals dt0, dt1, dt2, as a cubic Hermite
// polynomial at w in [0, 1].
func nonuniformCatmullRom(x0, x1, x2, x3, dt0, dt1, dt2, w float64) float64 {
	t1 := (x1-x0)/dt0 - (x2-x0)/(dt0+dt1) + (x2-x1)/dt1
	t2 := (x2-x1)/dt1 - (x3-x1)/(dt1+dt2) + (x3-x2)/dt2
	t1 *= dt1
	t2 *= dt1

	c0 := x1
	c1 := t1
	c2 := -3*x1 + 3*x2 - 2*t1 - t2
	c3 := 2*x1 - 2*x2 + t1 + t2
	w2 := w * w
	return c0 + c1*w + c2*w2 + c3*w2*w
}

func distSq(a, b mgl64.Vec3) float64 {
	d := b.Sub(a)
	return d.Dot(d)
}
