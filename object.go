package scrolly

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Geometry holds vertex positions in an object's local space. When Indices is
// non-empty the geometry is indexed and each index emits one vertex.
type Geometry struct {
	Positions []mgl64.Vec3
	Indices   []uint32
}

// Indexed reports whether the geometry uses an index buffer.
func (g *Geometry) Indexed() bool {
	return len(g.Indices) > 0
}

// VertexCount returns the number of emitted vertices: the index count for
// indexed geometry, otherwise the position count.
func (g *Geometry) VertexCount() int {
	if g.Indexed() {
		return len(g.Indices)
	}
	return len(g.Positions)
}

// NonIndexed returns one position per emitted vertex, in emission order.
// Non-indexed geometry returns a copy of Positions.
// Panics if an index is out of range.
func (g *Geometry) NonIndexed() []mgl64.Vec3 {
	if !g.Indexed() {
		return append([]mgl64.Vec3(nil), g.Positions...)
	}
	out := make([]mgl64.Vec3, len(g.Indices))
	for i, idx := range g.Indices {
		out[i] = g.Positions[idx]
	}
	return out
}

// Object is a node in a 3D transform hierarchy. It is used both for template
// meshes that curves are derived from and for the character the camera
// follows.
//
// The local matrix is Translate(Position) * Rotate(Rotation) * Scale(Scale),
// with Rotation applied as Euler angles in X, Y, Z order.
type Object struct {
	Name string

	Position mgl64.Vec3
	// Rotation holds Euler angles in radians about X, Y and Z.
	Rotation mgl64.Vec3
	Scale    mgl64.Vec3

	// Geometry is optional; containers and the character marker have none.
	Geometry *Geometry

	Parent   *Object
	children []*Object
}

// NewObject creates an object at the origin with unit scale.
func NewObject(name string) *Object {
	return &Object{Name: name, Scale: mgl64.Vec3{1, 1, 1}}
}

// NewMeshObject creates an object carrying the given geometry.
func NewMeshObject(name string, geom *Geometry) *Object {
	o := NewObject(name)
	o.Geometry = geom
	return o
}

// AddChild appends child to this object's children, reparenting it if needed.
// Panics if child is nil or an ancestor of this object.
func (o *Object) AddChild(child *Object) {
	if child == nil {
		panic("scrolly: cannot add nil child")
	}
	for p := o; p != nil; p = p.Parent {
		if p == child {
			panic("scrolly: adding child would create a cycle")
		}
	}
	if child.Parent != nil {
		child.Parent.RemoveChild(child)
	}
	child.Parent = o
	o.children = append(o.children, child)
}

// RemoveChild detaches child. No-op if child is not a child of o.
func (o *Object) RemoveChild(child *Object) {
	for i, c := range o.children {
		if c == child {
			copy(o.children[i:], o.children[i+1:])
			o.children[len(o.children)-1] = nil
			o.children = o.children[:len(o.children)-1]
			child.Parent = nil
			return
		}
	}
}

// Children returns the child list. The returned slice MUST NOT be mutated.
func (o *Object) Children() []*Object {
	return o.children
}

// Yaw returns the rotation about the Y axis.
func (o *Object) Yaw() float64 {
	return o.Rotation[1]
}

// SetYaw sets the rotation about the Y axis.
func (o *Object) SetYaw(yaw float64) {
	o.Rotation[1] = yaw
}

// LocalMatrix returns Translate * RotateX * RotateY * RotateZ * Scale.
func (o *Object) LocalMatrix() mgl64.Mat4 {
	t := mgl64.Translate3D(o.Position.X(), o.Position.Y(), o.Position.Z())
	r := mgl64.HomogRotate3DX(o.Rotation.X()).
		Mul4(mgl64.HomogRotate3DY(o.Rotation.Y())).
		Mul4(mgl64.HomogRotate3DZ(o.Rotation.Z()))
	s := mgl64.Scale3D(o.Scale.X(), o.Scale.Y(), o.Scale.Z())
	return t.Mul4(r).Mul4(s)
}

// WorldMatrix composes the local matrices of this object and every ancestor.
func (o *Object) WorldMatrix() mgl64.Mat4 {
	m := o.LocalMatrix()
	for p := o.Parent; p != nil; p = p.Parent {
		m = p.LocalMatrix().Mul4(m)
	}
	return m
}

// LocalToWorld transforms a point from this object's local space to world
// space.
func (o *Object) LocalToWorld(v mgl64.Vec3) mgl64.Vec3 {
	return transformPoint(o.WorldMatrix(), v)
}

// WorldPosition returns the object's origin in world space.
func (o *Object) WorldPosition() mgl64.Vec3 {
	return o.LocalToWorld(mgl64.Vec3{})
}

// WorldVertices returns every emitted vertex of the object's geometry in
// world space, de-indexed and in emission order. Returns nil if the object
// has no geometry.
func (o *Object) WorldVertices() []mgl64.Vec3 {
	if o.Geometry == nil {
		return nil
	}
	pts := o.Geometry.NonIndexed()
	m := o.WorldMatrix()
	for i := range pts {
		pts[i] = transformPoint(m, pts[i])
	}
	return pts
}

// transformPoint applies an affine 4x4 matrix to a point.
func transformPoint(m mgl64.Mat4, v mgl64.Vec3) mgl64.Vec3 {
	return m.Mul4x1(v.Vec4(1)).Vec3()
}
