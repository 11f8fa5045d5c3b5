package volr

import "github.com/gogpu/volr/internal/parallel"

// Renderer executes the pixel kernels of a render pass over the full
// pixel grid. The built-in implementation runs them on a goroutine
// pool; the backend/ packages provide registry-selected and
// GPU-compute implementations. Inject one with [WithRenderer].
type Renderer interface {
	// Contour renders a contour pass into dst.
	Contour(job *ContourJob, dst *ScreenBuffer) error

	// Volume renders a volumetric pass into dst.
	Volume(job *VolumeJob, dst *ScreenBuffer) error

	// Geometry renders a geometry pass into dst.
	Geometry(job *GeometryJob, dst *ScreenBuffer) error

	// Wireframe renders a wireframe pass into dst.
	Wireframe(job *WireframeJob, dst *ScreenBuffer) error
}

// softwareRenderer runs pixel kernels on a row-scheduling goroutine
// pool. It is the default renderer.
type softwareRenderer struct {
	pool *parallel.Pool
}

// NewSoftwareRenderer creates the built-in CPU renderer with the given
// worker count (0 uses GOMAXPROCS).
func NewSoftwareRenderer(workers int) Renderer {
	return &softwareRenderer{pool: parallel.New(workers)}
}

func (r *softwareRenderer) Contour(job *ContourJob, dst *ScreenBuffer) error {
	r.pool.Rows(job.Height, func(y int) {
		for x := 0; x < job.Width; x++ {
			job.RenderPixel(x, y, dst)
		}
	})
	return nil
}

func (r *softwareRenderer) Volume(job *VolumeJob, dst *ScreenBuffer) error {
	r.pool.Rows(job.Height, func(y int) {
		for x := 0; x < job.Width; x++ {
			job.RenderPixel(x, y, dst)
		}
	})
	return nil
}

func (r *softwareRenderer) Geometry(job *GeometryJob, dst *ScreenBuffer) error {
	r.pool.Rows(job.Height, func(y int) {
		for x := 0; x < job.Width; x++ {
			job.RenderPixel(x, y, dst)
		}
	})
	return nil
}

func (r *softwareRenderer) Wireframe(job *WireframeJob, dst *ScreenBuffer) error {
	r.pool.Rows(job.Height, func(y int) {
		for x := 0; x < job.Width; x++ {
			job.RenderPixel(x, y, dst)
		}
	})
	return nil
}
