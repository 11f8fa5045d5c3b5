package volr

// Render entry points. Each call validates its inputs, renders one pass
// into a fresh ScreenBuffer and returns it; the caller owns the buffer.
// Passes compose by depth with [ScreenBuffer.Merge]. A failed call
// returns an error and no buffer, never a partially valid one.

// resolve applies options and picks the effective renderer and
// supersampled grid size.
func resolve(opts []Option) (settings, Renderer, int, int) {
	s := defaultSettings()
	for _, opt := range opts {
		opt(&s)
	}
	if s.supersample < 1 {
		s.supersample = 1
	}
	r := s.renderer
	if r == nil {
		r = NewSoftwareRenderer(s.workers)
	}
	return s, r, s.width * s.supersample, s.height * s.supersample
}

// finish resolves supersampling on a completed pass buffer.
func finish(buf *ScreenBuffer, s settings) *ScreenBuffer {
	if s.supersample > 1 {
		return buf.Downsample(s.supersample)
	}
	return buf
}

// RenderContour renders the isosurface of vol at the given threshold.
//
// colorVol optionally drives the surface color: it is sampled at each
// hit point and mapped through cmap, falling back to the configured
// fallback color where it has no coverage. With a nil colorVol the
// surface takes a single color from cmap; a nil cmap then defaults to
// solid white. A nil cmap with a colorVol defaults to Jet over the
// color volume's value range.
func RenderContour(vol *Volume, cam *Camera, threshold float64, colorVol *Volume, cmap Colormap, opts ...Option) (*ScreenBuffer, error) {
	if vol == nil {
		return nil, ErrNilVolume
	}
	if cam == nil {
		return nil, ErrNilCamera
	}
	if err := cam.update(); err != nil {
		return nil, err
	}
	if cmap == nil {
		if colorVol != nil {
			min, max := colorVol.Range()
			cmap = Jet(min, max)
		} else {
			cmap = Solid{Color: White}
		}
	}

	s, renderer, w, h := resolve(opts)
	job := &ContourJob{
		Volume:      vol,
		Camera:      cam,
		Threshold:   threshold,
		ColorVolume: colorVol,
		Colormap:    cmap,
		Fallback:    s.fallback,
		Width:       w,
		Height:      h,
		StepSize:    s.stepSize,
		RefineSteps: s.refineSteps,
		Background:  s.background,
	}

	buf := NewScreenBuffer(w, h)
	buf.Clear(s.background)
	if err := renderer.Contour(job, buf); err != nil {
		return nil, err
	}
	return finish(buf, s), nil
}

// RenderVolume renders vol as a participating medium with front-to-back
// alpha compositing through cmap. A nil cmap defaults to Jet over the
// volume's value range with a linear opacity ramp.
func RenderVolume(vol *Volume, cam *Camera, cmap Colormap, opts ...Option) (*ScreenBuffer, error) {
	if vol == nil {
		return nil, ErrNilVolume
	}
	if cam == nil {
		return nil, ErrNilCamera
	}
	if err := cam.update(); err != nil {
		return nil, err
	}
	if cmap == nil {
		min, max := vol.Range()
		cmap = Jet(min, max).SetOpacity(0, 0.05)
	}

	s, renderer, w, h := resolve(opts)
	job := &VolumeJob{
		Volume:     vol,
		Camera:     cam,
		Colormap:   cmap,
		Width:      w,
		Height:     h,
		StepSize:   s.stepSize,
		Background: s.background,
	}

	buf := NewScreenBuffer(w, h)
	if err := renderer.Volume(job, buf); err != nil {
		return nil, err
	}
	return finish(buf, s), nil
}

// RenderGeometry renders analytic and signed-distance primitives by
// direct ray intersection. The nearest intersection wins per pixel.
func RenderGeometry(objects []Object, cam *Camera, opts ...Option) (*ScreenBuffer, error) {
	if len(objects) == 0 {
		return nil, ErrNoPrimitives
	}
	if cam == nil {
		return nil, ErrNilCamera
	}
	if err := cam.update(); err != nil {
		return nil, err
	}

	s, renderer, w, h := resolve(opts)
	job := &GeometryJob{
		Objects:    objects,
		Camera:     cam,
		Width:      w,
		Height:     h,
		Background: s.background,
	}

	buf := NewScreenBuffer(w, h)
	buf.Clear(s.background)
	if err := renderer.Geometry(job, buf); err != nil {
		return nil, err
	}
	return finish(buf, s), nil
}
