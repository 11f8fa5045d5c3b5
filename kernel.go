package volr

import "math"

// Pixel kernels: one call renders exactly one pixel of one pass,
// reading only shared immutable inputs and writing only that pixel's
// slot. Renderers (the built-in goroutine pool, the backend registry's
// software backend, backend/wgpu's CPU fallback) differ only in how
// they schedule these calls.

// ContourJob is one validated contour pass over a pixel grid.
type ContourJob struct {
	Volume    *Volume
	Camera    *Camera
	Threshold float64

	// ColorVolume optionally drives coloring: the companion volume is
	// sampled at the hit point and mapped through Colormap. When nil,
	// Colormap is queried with the threshold value (a Solid colormap
	// makes that a constant color).
	ColorVolume *Volume
	Colormap    Colormap

	// Fallback is the color used when ColorVolume does not cover the
	// hit point.
	Fallback RGBA

	Width, Height int
	StepSize      float64
	RefineSteps   int
	Background    RGBA
}

// RenderPixel renders pixel (x, y) into dst.
func (j *ContourJob) RenderPixel(x, y int, dst *ScreenBuffer) {
	ray := j.Camera.RayThrough(x, y, j.Width, j.Height)
	hit, ok := j.Volume.TraceContour(ray, j.Threshold, j.StepSize, j.RefineSteps)
	if !ok {
		return // background, depth stays +Inf
	}

	base := j.Fallback
	if j.ColorVolume != nil {
		if scalar, valid := j.ColorVolume.Sample(hit.Point); valid {
			base = j.Colormap.At(scalar)
		}
	} else {
		base = j.Colormap.At(j.Threshold)
	}

	dst.SetPixel(x, y, ShadeSurface(hit.Normal, ray.Direction, base))
	dst.SetDepth(x, y, hit.T)
	dst.SetNormal(x, y, hit.Normal)
}

// VolumeJob is one validated volumetric pass over a pixel grid.
type VolumeJob struct {
	Volume   *Volume
	Camera   *Camera
	Colormap Colormap

	Width, Height int
	StepSize      float64
	Background    RGBA
}

// RenderPixel renders pixel (x, y) into dst: front-to-back alpha
// accumulation over the full traversal, terminating early once the
// accumulated opacity saturates.
func (j *VolumeJob) RenderPixel(x, y int, dst *ScreenBuffer) {
	ray := j.Camera.RayThrough(x, y, j.Width, j.Height)
	m := j.Volume.March(ray, j.StepSize)

	var acc Accumulator
	for {
		p, _, more := m.Next()
		if !more {
			break
		}
		value, ok := j.Volume.Sample(p)
		if !ok {
			continue
		}
		acc.Add(j.Colormap.At(value))
		if acc.Saturated() {
			break
		}
	}

	dst.SetPixel(x, y, acc.Resolve(j.Background))
	// Volumetric media have no surface: depth keeps its +Inf sentinel
	// so Merge composites this pass by alpha, not by depth.
}

// GeometryJob is one validated geometry pass over a pixel grid.
type GeometryJob struct {
	Objects []Object
	Camera  *Camera

	Width, Height int
	Background    RGBA
}

// RenderPixel intersects the pixel's ray with every object; the nearest
// intersection wins.
func (j *GeometryJob) RenderPixel(x, y int, dst *ScreenBuffer) {
	ray := j.Camera.RayThrough(x, y, j.Width, j.Height)

	nearest := math.Inf(1)
	var nearestObj *Object
	for i := range j.Objects {
		if t, ok := j.Objects[i].Shape.Intersect(ray); ok && t < nearest {
			nearest = t
			nearestObj = &j.Objects[i]
		}
	}
	if nearestObj == nil {
		return
	}

	p := ray.At(nearest)
	n := nearestObj.Shape.NormalAt(p)
	dst.SetPixel(x, y, ShadeSurface(n, ray.Direction, nearestObj.Color))
	dst.SetDepth(x, y, nearest)
	dst.SetNormal(x, y, n)
}

// Segment is one world-space line segment of a wireframe pass.
type Segment struct {
	A, B Vec3
}

// WireframeJob renders line segments of a given world-space thickness.
type WireframeJob struct {
	Segments  []Segment
	Color     RGBA
	Thickness float64
	Camera    *Camera

	Width, Height int
	Background    RGBA
}

// RenderPixel finds the nearest segment passing within Thickness of the
// pixel's ray.
func (j *WireframeJob) RenderPixel(x, y int, dst *ScreenBuffer) {
	ray := j.Camera.RayThrough(x, y, j.Width, j.Height)

	nearest := math.Inf(1)
	for _, seg := range j.Segments {
		dist, t := raySegmentDistance(ray, seg.A, seg.B)
		if dist <= j.Thickness && t < nearest {
			nearest = t
		}
	}
	if math.IsInf(nearest, 1) {
		return
	}

	dst.SetPixel(x, y, j.Color)
	dst.SetDepth(x, y, nearest)
}

// raySegmentDistance returns the smallest distance between the ray and
// the segment [a, b], and the ray parameter of the closest approach.
func raySegmentDistance(r Ray, a, b Vec3) (dist, t float64) {
	u := r.Direction       // unit
	v := b.Sub(a)          // segment direction, unnormalized
	w := r.Origin.Sub(a)

	uv := u.Dot(v)
	vv := v.LengthSq()
	uw := u.Dot(w)
	vw := v.Dot(w)

	denom := vv - uv*uv // vv*uu - uv^2 with uu = 1
	var s float64
	if denom > 1e-12 {
		s = (vw - uv*uw) / denom
	}
	s = clampRange(s, 0, 1)

	t = math.Max(0, s*uv-uw)
	onRay := r.At(t)
	onSeg := a.Add(v.Mul(s))
	return onRay.Distance(onSeg), t
}
