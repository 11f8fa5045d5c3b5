package volr

import "math"

// Volume is an immutable scalar field on a regular 3D lattice. The field
// value at lattice point (i, j, k) sits at world position
// origin + (i*dx, j*dy, k*dz); the volume's world-space bounds are
// [origin, origin + spacing*(dims-1)].
//
// A Volume is constructed once and never mutated; the renderer borrows it
// read-only for the duration of a render call, so one Volume may back any
// number of concurrent renders.
type Volume struct {
	field   Field
	spacing Vec3
	origin  Vec3

	// cached bounds and dimensions
	nx, ny, nz int
	lower      Vec3
	upper      Vec3
}

// NewVolume creates a volume from a field, voxel spacing and world origin.
// It fails with a *ConfigError on non-positive spacing or a zero-sized
// dimension.
func NewVolume(field Field, spacing, origin Vec3) (*Volume, error) {
	if field == nil {
		return nil, configErrf("field", "must not be nil")
	}
	nx, ny, nz := field.Dims()
	if nx < 1 || ny < 1 || nz < 1 {
		return nil, configErrf("field", "dimensions must be >= 1, got (%d, %d, %d)", nx, ny, nz)
	}
	if spacing.X <= 0 || spacing.Y <= 0 || spacing.Z <= 0 {
		return nil, configErrf("spacing", "must be positive in every axis, got (%g, %g, %g)",
			spacing.X, spacing.Y, spacing.Z)
	}
	v := &Volume{
		field:   field,
		spacing: spacing,
		origin:  origin,
		nx:      nx, ny: ny, nz: nz,
		lower: origin,
		upper: Vec3{
			X: origin.X + spacing.X*float64(nx-1),
			Y: origin.Y + spacing.Y*float64(ny-1),
			Z: origin.Z + spacing.Z*float64(nz-1),
		},
	}
	Logger().Debug("volr: volume created",
		"dims", [3]int{nx, ny, nz}, "spacing", spacing, "origin", origin)
	return v, nil
}

// Field returns the underlying scalar field.
func (v *Volume) Field() Field { return v.field }

// Spacing returns the voxel spacing.
func (v *Volume) Spacing() Vec3 { return v.spacing }

// Origin returns the world position of lattice point (0, 0, 0).
func (v *Volume) Origin() Vec3 { return v.origin }

// Dims returns the lattice dimensions.
func (v *Volume) Dims() (int, int, int) { return v.nx, v.ny, v.nz }

// Bounds returns the world-space axis-aligned bounding box of the volume.
func (v *Volume) Bounds() (lower, upper Vec3) { return v.lower, v.upper }

// Contains reports whether p lies inside the volume's bounds, inclusive.
func (v *Volume) Contains(p Vec3) bool {
	return p.X >= v.lower.X && p.X <= v.upper.X &&
		p.Y >= v.lower.Y && p.Y <= v.upper.Y &&
		p.Z >= v.lower.Z && p.Z <= v.upper.Z
}

// Sample trilinearly interpolates the field at a world-space point using
// the 8 surrounding lattice values. Points exactly on a lattice site
// reduce to the stored value. A point outside the bounds in any axis
// returns ok=false and is treated as empty space by the callers; the
// sampler never clamps or wraps, which would silently distort
// isosurfaces near boundaries.
func (v *Volume) Sample(p Vec3) (value float64, ok bool) {
	gx := (p.X - v.origin.X) / v.spacing.X
	gy := (p.Y - v.origin.Y) / v.spacing.Y
	gz := (p.Z - v.origin.Z) / v.spacing.Z

	if gx < 0 || gx > float64(v.nx-1) ||
		gy < 0 || gy > float64(v.ny-1) ||
		gz < 0 || gz > float64(v.nz-1) {
		return 0, false
	}

	i, fx := cellIndex(gx, v.nx)
	j, fy := cellIndex(gy, v.ny)
	k, fz := cellIndex(gz, v.nz)

	f := v.field
	v000 := f.At(i, j, k)
	v100 := f.At(i+1, j, k)
	v010 := f.At(i, j+1, k)
	v110 := f.At(i+1, j+1, k)
	v001 := f.At(i, j, k+1)
	v101 := f.At(i+1, j, k+1)
	v011 := f.At(i, j+1, k+1)
	v111 := f.At(i+1, j+1, k+1)

	v00 := v000*(1-fx) + v100*fx
	v10 := v010*(1-fx) + v110*fx
	v01 := v001*(1-fx) + v101*fx
	v11 := v011*(1-fx) + v111*fx
	v0 := v00*(1-fy) + v10*fy
	v1 := v01*(1-fy) + v11*fy
	return v0*(1-fz) + v1*fz, true
}

// cellIndex splits a grid coordinate into a cell index and fractional
// part. The index is clamped so the upper boundary stays inside the last
// cell with fraction 1, keeping interpolation exact at the far lattice
// face. The fraction is zero at lattice sites, so no extrapolation can
// occur.
func cellIndex(g float64, n int) (int, float64) {
	if n == 1 {
		return 0, 0
	}
	i := int(g)
	if i > n-2 {
		i = n - 2
	}
	return i, g - float64(i)
}

// gradientOffset is the central-difference half-step as a fraction of the
// voxel spacing.
const gradientOffset = 0.5

// SampleGradient estimates the field gradient at p by central differences
// of Sample, offset by half a voxel along each axis. Near the bounds,
// where one side falls outside, it degrades to a one-sided difference;
// ok is false only when no difference can be formed in some axis (the
// gradient is then the zero vector in that axis).
func (v *Volume) SampleGradient(p Vec3) (grad Vec3, ok bool) {
	ok = true
	grad.X, ok = v.axisDiff(p, Vec3{X: v.spacing.X * gradientOffset}, ok)
	grad.Y, ok = v.axisDiff(p, Vec3{Y: v.spacing.Y * gradientOffset}, ok)
	grad.Z, ok = v.axisDiff(p, Vec3{Z: v.spacing.Z * gradientOffset}, ok)
	return grad, ok
}

// axisDiff forms the best available finite difference along one axis.
func (v *Volume) axisDiff(p, h Vec3, ok bool) (float64, bool) {
	step := h.Length()
	hi, hiOK := v.Sample(p.Add(h))
	lo, loOK := v.Sample(p.Sub(h))
	switch {
	case hiOK && loOK:
		return (hi - lo) / (2 * step), ok
	case hiOK:
		c, cOK := v.Sample(p)
		if !cOK {
			return 0, false
		}
		return (hi - c) / step, ok
	case loOK:
		c, cOK := v.Sample(p)
		if !cOK {
			return 0, false
		}
		return (c - lo) / step, ok
	default:
		return 0, false
	}
}

// Range returns the minimum and maximum field values. Fields that expose
// a cheap range (like *DenseField) are queried directly; otherwise the
// lattice is scanned.
func (v *Volume) Range() (min, max float64) {
	type ranger interface{ Range() (float64, float64) }
	if r, isRanger := v.field.(ranger); isRanger {
		return r.Range()
	}
	min = math.Inf(1)
	max = math.Inf(-1)
	for i := 0; i < v.nx; i++ {
		for j := 0; j < v.ny; j++ {
			for k := 0; k < v.nz; k++ {
				val := v.field.At(i, j, k)
				if math.IsNaN(val) {
					continue
				}
				if val < min {
					min = val
				}
				if val > max {
					max = val
				}
			}
		}
	}
	if min > max {
		return 0, 1
	}
	return min, max
}
