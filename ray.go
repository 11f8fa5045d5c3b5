package volr

import "math"

// Ray is a world-space ray with a unit direction. Rays are ephemeral:
// one is created per pixel per render and never persisted.
type Ray struct {
	Origin    Vec3
	Direction Vec3
}

// At returns the point at parametric distance t along the ray.
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// IntersectAABB computes the slab intersection of the ray with an
// axis-aligned box. It returns the entry and exit parametric distances,
// with t0 clamped to zero so an origin inside the box starts marching at
// the origin. The ray misses the box when t0 > t1.
//
// Division by a zero direction component yields ±Inf, which the min/max
// slab reduction handles without special cases.
func (r Ray) IntersectAABB(lower, upper Vec3) (t0, t1 float64) {
	tx0 := (lower.X - r.Origin.X) / r.Direction.X
	tx1 := (upper.X - r.Origin.X) / r.Direction.X
	ty0 := (lower.Y - r.Origin.Y) / r.Direction.Y
	ty1 := (upper.Y - r.Origin.Y) / r.Direction.Y
	tz0 := (lower.Z - r.Origin.Z) / r.Direction.Z
	tz1 := (upper.Z - r.Origin.Z) / r.Direction.Z

	tminX, tmaxX := math.Min(tx0, tx1), math.Max(tx0, tx1)
	tminY, tmaxY := math.Min(ty0, ty1), math.Max(ty0, ty1)
	tminZ, tmaxZ := math.Min(tz0, tz1), math.Max(tz0, tz1)

	t0 = math.Max(0, math.Max(tminX, math.Max(tminY, tminZ)))
	t1 = math.Min(tmaxX, math.Min(tmaxY, tmaxZ))
	return t0, t1
}

// Marcher steps a ray through a volume's bounding box at a fixed step
// size. It is a value type: copy it, or call Volume.March again, for a
// fresh traversal per consumer — there is no shared cursor.
type Marcher struct {
	ray  Ray
	step float64
	t    float64
	t1   float64
	n    int // remaining steps
}

// March creates a traversal of the ray restricted to its intersection
// with the volume's bounding box. A non-positive step size defaults to
// the smallest voxel spacing. If the ray misses the box the traversal is
// empty.
func (v *Volume) March(r Ray, step float64) Marcher {
	if step <= 0 {
		step = v.spacing.MinComponent()
	}
	t0, t1 := r.IntersectAABB(v.lower, v.upper)
	m := Marcher{ray: r, step: step, t: t0, t1: t1}
	if t0 <= t1 {
		m.n = int((t1-t0)/step) + 1
	}
	return m
}

// Next advances the traversal and reports the next sample point and its
// parametric distance. ok is false once the ray has left the box.
func (m *Marcher) Next() (p Vec3, t float64, ok bool) {
	if m.n <= 0 {
		return Vec3{}, 0, false
	}
	p, t = m.ray.At(m.t), m.t
	m.t += m.step
	m.n--
	return p, t, true
}

// Step returns the traversal's step size.
func (m *Marcher) Step() float64 { return m.step }

// Remaining returns the number of steps left in the traversal.
func (m *Marcher) Remaining() int { return m.n }
