package volr

import "math"

// DistanceFunc is a signed distance function: negative inside, positive
// outside, zero on the surface.
type DistanceFunc func(p Vec3) float64

// SDF is a primitive defined by a signed distance function, intersected
// by sphere tracing. Boolean composition (union, difference,
// intersection) and rigid transforms build complex shapes from simple
// ones.
type SDF struct {
	dist         DistanceFunc
	lower, upper Vec3

	// threshold is the surface tolerance for sphere tracing, scaled to
	// the shape's feature size by the constructors.
	threshold float64
}

// NewSDF wraps a distance function with explicit bounds and surface
// tolerance.
func NewSDF(dist DistanceFunc, lower, upper Vec3, threshold float64) *SDF {
	return &SDF{dist: dist, lower: lower, upper: upper, threshold: threshold}
}

// Distance evaluates the signed distance at p.
func (s *SDF) Distance(p Vec3) float64 { return s.dist(p) }

// Bounds returns the shape's bounding box.
func (s *SDF) Bounds() (Vec3, Vec3) { return s.lower, s.upper }

// maxTraceSteps bounds sphere tracing on near-grazing rays.
const maxTraceSteps = 256

// Intersect sphere-traces the ray inside the shape's bounding box:
// each step advances by the current distance bound, terminating when the
// distance drops below the surface tolerance.
func (s *SDF) Intersect(r Ray) (float64, bool) {
	t0, t1 := r.IntersectAABB(s.lower, s.upper)
	if t0 > t1 {
		return 0, false
	}
	t := t0
	for i := 0; i < maxTraceSteps && t <= t1; i++ {
		d := s.dist(r.At(t))
		if d < s.threshold {
			return t, true
		}
		t += d
	}
	return 0, false
}

// NormalAt estimates the outward normal by central differences of the
// distance function.
func (s *SDF) NormalAt(p Vec3) Vec3 {
	h := s.threshold
	if h <= 0 {
		h = 1e-4
	}
	n := Vec3{
		X: s.dist(V3(p.X+h, p.Y, p.Z)) - s.dist(V3(p.X-h, p.Y, p.Z)),
		Y: s.dist(V3(p.X, p.Y+h, p.Z)) - s.dist(V3(p.X, p.Y-h, p.Z)),
		Z: s.dist(V3(p.X, p.Y, p.Z+h)) - s.dist(V3(p.X, p.Y, p.Z-h)),
	}
	return n.Normalize()
}

// Union returns the boolean union of two shapes.
func (s *SDF) Union(o *SDF) *SDF {
	a, b := s.dist, o.dist
	return &SDF{
		dist:      func(p Vec3) float64 { return math.Min(a(p), b(p)) },
		lower:     s.lower.Min(o.lower),
		upper:     s.upper.Max(o.upper),
		threshold: math.Min(s.threshold, o.threshold),
	}
}

// Difference returns s with o carved out.
func (s *SDF) Difference(o *SDF) *SDF {
	a, b := s.dist, o.dist
	return &SDF{
		dist:      func(p Vec3) float64 { return math.Max(a(p), -b(p)) },
		lower:     s.lower,
		upper:     s.upper,
		threshold: s.threshold,
	}
}

// Intersection returns the boolean intersection of two shapes.
func (s *SDF) Intersection(o *SDF) *SDF {
	a, b := s.dist, o.dist
	return &SDF{
		dist:      func(p Vec3) float64 { return math.Max(a(p), b(p)) },
		lower:     s.lower.Max(o.lower),
		upper:     s.upper.Min(o.upper),
		threshold: math.Min(s.threshold, o.threshold),
	}
}

// Translate returns the shape moved by offset.
func (s *SDF) Translate(offset Vec3) *SDF {
	d := s.dist
	return &SDF{
		dist:      func(p Vec3) float64 { return d(p.Sub(offset)) },
		lower:     s.lower.Add(offset),
		upper:     s.upper.Add(offset),
		threshold: s.threshold,
	}
}

// Rotate returns the shape rotated by angle radians about the given axis
// through the origin. Bounds expand to the rotation-invariant cube of
// the original bounding radius.
func (s *SDF) Rotate(angle float64, axis Vec3) *SDF {
	d := s.dist
	u := axis.Normalize()
	// Sample points rotate backwards through the shape's frame.
	cos, sin := math.Cos(-angle), math.Sin(-angle)
	rot := func(p Vec3) Vec3 {
		// Rodrigues' rotation formula.
		return p.Mul(cos).
			Add(u.Cross(p).Mul(sin)).
			Add(u.Mul(u.Dot(p) * (1 - cos)))
	}
	radius := math.Max(s.lower.Length(), s.upper.Length())
	r := V3(radius, radius, radius)
	return &SDF{
		dist:      func(p Vec3) float64 { return d(rot(p)) },
		lower:     r.Neg(),
		upper:     r,
		threshold: s.threshold,
	}
}

// SDFSphere returns a sphere of the given radius at center.
func SDFSphere(radius float64, center Vec3) *SDF {
	return &SDF{
		dist:      func(p Vec3) float64 { return p.Sub(center).Length() - radius },
		lower:     center.Sub(V3(radius, radius, radius)),
		upper:     center.Add(V3(radius, radius, radius)),
		threshold: radius / 100,
	}
}

// SDFBox returns a solid box with the given corners.
func SDFBox(lower, upper Vec3) *SDF {
	center := lower.Add(upper).Mul(0.5)
	half := upper.Sub(lower).Mul(0.5)
	dist := func(p Vec3) float64 {
		q := p.Sub(center).Abs().Sub(half)
		outside := q.Max(Vec3{}).Length()
		inside := math.Min(q.MaxComponent(), 0)
		return outside + inside
	}
	return &SDF{
		dist:      dist,
		lower:     lower,
		upper:     upper,
		threshold: half.MinComponent() / 100,
	}
}

// SDFBoxFrame returns the wireframe-like edge frame of a box with the
// given bar thickness.
func SDFBoxFrame(lower, upper Vec3, thickness float64) *SDF {
	size := upper.Sub(lower)
	center := lower.Add(size.Mul(0.5))
	dist := func(pos Vec3) float64 {
		p := pos.Sub(center).Abs().Sub(size.Mul(0.5))
		q := V3(
			math.Abs(p.X+thickness)-thickness,
			math.Abs(p.Y+thickness)-thickness,
			math.Abs(p.Z+thickness)-thickness,
		)
		ex := V3(math.Max(p.X, 0), math.Max(q.Y, 0), math.Max(q.Z, 0)).Length() +
			math.Min(math.Max(p.X, math.Max(q.Y, q.Z)), 0)
		ey := V3(math.Max(q.X, 0), math.Max(p.Y, 0), math.Max(q.Z, 0)).Length() +
			math.Min(math.Max(q.X, math.Max(p.Y, q.Z)), 0)
		ez := V3(math.Max(q.X, 0), math.Max(q.Y, 0), math.Max(p.Z, 0)).Length() +
			math.Min(math.Max(q.X, math.Max(q.Y, p.Z)), 0)
		return math.Min(math.Min(ex, ey), ez)
	}
	// Pad the bounds by the bar thickness so grazing rays still trace.
	pad := V3(thickness, thickness, thickness)
	return &SDF{
		dist:      dist,
		lower:     lower.Sub(pad),
		upper:     upper.Add(pad),
		threshold: thickness / 100,
	}
}

// SDFCylinder returns a y-axis-aligned cylinder with the given radius
// and half-height at center.
func SDFCylinder(radius, height float64, center Vec3) *SDF {
	dist := func(pos Vec3) float64 {
		p := pos.Sub(center)
		d := math.Hypot(p.X, p.Z) - radius
		h := math.Abs(p.Y) - height
		return math.Min(math.Max(d, h), 0) +
			math.Hypot(math.Max(d, 0), math.Max(h, 0))
	}
	return &SDF{
		dist:      dist,
		lower:     center.Add(V3(-radius, -height, -radius)),
		upper:     center.Add(V3(radius, height, radius)),
		threshold: radius / 100,
	}
}

// SDFCone returns a downward-pointing cone. sin and cos describe the
// opening angle, h is the height, center locates the apex.
func SDFCone(sin, cos, h float64, center Vec3) *SDF {
	dist := func(pos Vec3) float64 {
		p := pos.Sub(center)
		qx, qy := h*sin/cos, -h
		wx, wy := math.Hypot(p.X, p.Z), p.Y
		dq := qx*qx + qy*qy
		f := clampRange((wx*qx+wy*qy)/dq, 0, 1)
		ax, ay := wx-qx*f, wy-qy*f
		bx, by := wx-qx*clampRange(wx/qx, 0, 1), wy-qy
		k := math.Copysign(1, qy)
		d := math.Min(ax*ax+ay*ay, bx*bx+by*by)
		s := math.Max(k*(wx*qy-wy*qx), k*(wy-qy))
		return math.Sqrt(d) * math.Copysign(1, s)
	}
	return &SDF{
		dist:      dist,
		lower:     center.Add(V3(-h, -h, -h)),
		upper:     center.Add(V3(h, h, h)),
		threshold: h / 100,
	}
}

// SDFArrow returns an upward-pointing arrow of the given height at
// center: a cylinder shaft capped by a cone head.
func SDFArrow(height float64, center Vec3) *SDF {
	radius := height / 10
	shaft := SDFCylinder(radius, height*3/8, V3(0, height*3/8, 0))
	head := SDFCone(0.5, 0.866, height/4, V3(0, height, 0))
	return shaft.Union(head).Translate(center)
}

// clampRange clamps v into [lo, hi].
func clampRange(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
