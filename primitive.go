package volr

import "math"

// Primitive is an implicitly defined shape rendered by direct ray
// intersection rather than volumetric traversal. The nearest
// intersection across all primitives, and across contour/volume passes,
// wins per pixel by depth compare.
type Primitive interface {
	// Intersect returns the smallest non-negative parametric distance
	// at which the ray hits the primitive, or ok=false on a miss.
	Intersect(r Ray) (t float64, ok bool)

	// NormalAt returns the outward unit surface normal at a point on
	// (or numerically near) the surface.
	NormalAt(p Vec3) Vec3

	// Bounds returns the primitive's axis-aligned bounding box.
	Bounds() (lower, upper Vec3)
}

// Object pairs a primitive with its surface color for a geometry pass.
type Object struct {
	Shape Primitive
	Color RGBA
}

// Sphere is an analytic sphere primitive.
type Sphere struct {
	Center Vec3
	Radius float64
}

// Intersect solves the quadratic ray/sphere equation.
func (s Sphere) Intersect(r Ray) (float64, bool) {
	oc := r.Origin.Sub(s.Center)
	b := oc.Dot(r.Direction)
	c := oc.LengthSq() - s.Radius*s.Radius
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	sq := math.Sqrt(disc)
	if t := -b - sq; t >= 0 {
		return t, true
	}
	if t := -b + sq; t >= 0 {
		return t, true
	}
	return 0, false
}

// NormalAt returns the outward normal at p.
func (s Sphere) NormalAt(p Vec3) Vec3 {
	return p.Sub(s.Center).Normalize()
}

// Bounds returns the sphere's bounding box.
func (s Sphere) Bounds() (Vec3, Vec3) {
	r := V3(s.Radius, s.Radius, s.Radius)
	return s.Center.Sub(r), s.Center.Add(r)
}

// Box is an analytic axis-aligned box primitive.
type Box struct {
	Lower, Upper Vec3
}

// Intersect uses the slab method. A ray starting inside the box hits at
// t=0.
func (b Box) Intersect(r Ray) (float64, bool) {
	t0, t1 := r.IntersectAABB(b.Lower, b.Upper)
	if t0 > t1 {
		return 0, false
	}
	return t0, true
}

// NormalAt returns the axis normal of the face nearest to p.
func (b Box) NormalAt(p Vec3) Vec3 {
	center := b.Lower.Add(b.Upper).Mul(0.5)
	half := b.Upper.Sub(b.Lower).Mul(0.5)
	d := p.Sub(center)
	// The face with the largest relative displacement is the one p sits on.
	rx := math.Abs(d.X) / half.X
	ry := math.Abs(d.Y) / half.Y
	rz := math.Abs(d.Z) / half.Z
	switch {
	case rx >= ry && rx >= rz:
		return V3(math.Copysign(1, d.X), 0, 0)
	case ry >= rz:
		return V3(0, math.Copysign(1, d.Y), 0)
	default:
		return V3(0, 0, math.Copysign(1, d.Z))
	}
}

// Bounds returns the box itself.
func (b Box) Bounds() (Vec3, Vec3) {
	return b.Lower, b.Upper
}
