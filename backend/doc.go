// Package backend provides a pluggable render-backend abstraction.
//
// A backend owns the execution strategy for the per-pixel render
// kernels: the software backend schedules them on a goroutine pool,
// the wgpu backend compiles them to GPU compute pipelines. The passes
// themselves (contour, volume, geometry, wireframe) are defined in the
// root volr package; backends only decide where and how they run.
//
// # Backend Registration
//
// Backends are registered via init() functions and selected at
// runtime. The software backend is automatically registered on import:
//
//	import _ "github.com/gogpu/volr/backend"
//
// # Backend Selection
//
// Use Default() to get the best available backend, or Get() to request
// a specific backend by name:
//
//	// Get the default (best available) backend
//	b := backend.Default()
//
//	// Or request a specific backend
//	b := backend.Get("software")
//
// # Usage
//
// A backend hands out a volr.Renderer that plugs into the render entry
// points through volr.WithRenderer:
//
//	b := backend.Default()
//	if err := b.Init(); err != nil {
//		log.Fatal(err)
//	}
//	defer b.Close()
//
//	buf, err := volr.RenderContour(vol, cam, 0.5, nil, nil,
//		volr.WithRenderer(b.Renderer()))
//
// # Available Backends
//
// - "software": CPU goroutine-pool renderer (always available)
// - "wgpu": GPU compute via gogpu/wgpu (register with wgpu.RegisterWith)
package backend
