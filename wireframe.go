package volr

import "math"

// BoxEdges returns the 12 edges of the box [lower, upper] as segments.
func BoxEdges(lower, upper Vec3) []Segment {
	l, u := lower, upper
	return []Segment{
		// bottom face
		{V3(l.X, l.Y, l.Z), V3(u.X, l.Y, l.Z)},
		{V3(l.X, l.Y, l.Z), V3(l.X, l.Y, u.Z)},
		{V3(u.X, l.Y, u.Z), V3(l.X, l.Y, u.Z)},
		{V3(u.X, l.Y, u.Z), V3(u.X, l.Y, l.Z)},
		// top face
		{V3(l.X, u.Y, l.Z), V3(u.X, u.Y, l.Z)},
		{V3(l.X, u.Y, l.Z), V3(l.X, u.Y, u.Z)},
		{V3(u.X, u.Y, u.Z), V3(l.X, u.Y, u.Z)},
		{V3(u.X, u.Y, u.Z), V3(u.X, u.Y, l.Z)},
		// verticals
		{V3(l.X, l.Y, l.Z), V3(l.X, u.Y, l.Z)},
		{V3(u.X, l.Y, l.Z), V3(u.X, u.Y, l.Z)},
		{V3(l.X, l.Y, u.Z), V3(l.X, u.Y, u.Z)},
		{V3(u.X, l.Y, u.Z), V3(u.X, u.Y, u.Z)},
	}
}

// RenderWireframeBox renders the edges of the box [lower, upper] with
// the given world-space line thickness. The result is typically merged
// over a contour or volume pass to outline the data bounds.
func RenderWireframeBox(lower, upper Vec3, thickness float64, color RGBA, cam *Camera, opts ...Option) (*ScreenBuffer, error) {
	if cam == nil {
		return nil, ErrNilCamera
	}
	if err := cam.update(); err != nil {
		return nil, err
	}
	if thickness <= 0 {
		return nil, configErrf("thickness", "must be positive, got %g", thickness)
	}

	s, renderer, w, h := resolve(opts)
	job := &WireframeJob{
		Segments:   BoxEdges(lower, upper),
		Color:      color,
		Thickness:  thickness,
		Camera:     cam,
		Width:      w,
		Height:     h,
		Background: s.background,
	}

	buf := NewScreenBuffer(w, h)
	buf.Clear(s.background)
	if err := renderer.Wireframe(job, buf); err != nil {
		return nil, err
	}
	return finish(buf, s), nil
}

// RenderAxes renders an axis triad of arrows at center: x red, y
// yellow, z green. size is the arrow length.
func RenderAxes(size float64, center Vec3, cam *Camera, opts ...Option) (*ScreenBuffer, error) {
	if size <= 0 {
		return nil, configErrf("size", "must be positive, got %g", size)
	}
	objects := []Object{
		{Shape: axisArrow(size, center, V3(1, 0, 0)), Color: RGB(1, 0, 0)},
		{Shape: axisArrow(size, center, V3(0, 1, 0)), Color: RGB(1, 1, 0)},
		{Shape: axisArrow(size, center, V3(0, 0, 1)), Color: RGB(0, 1, 0)},
	}
	return RenderGeometry(objects, cam, opts...)
}

// axisArrow builds an arrow from center along the given unit axis.
func axisArrow(size float64, center, axis Vec3) *SDF {
	arrow := SDFArrow(size, Vec3{})
	switch {
	case axis.X != 0:
		arrow = arrow.Rotate(-math.Pi/2, V3(0, 0, 1))
	case axis.Z != 0:
		arrow = arrow.Rotate(math.Pi/2, V3(1, 0, 0))
	}
	return arrow.Translate(center)
}
