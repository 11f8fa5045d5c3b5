package backend

import (
	"github.com/gogpu/volr"
)

// Backend name constants.
const (
	// BackendSoftware is the name of the CPU goroutine-pool backend.
	BackendSoftware = "software"
	// BackendWGPU is the name of the GPU compute backend (gogpu/wgpu).
	BackendWGPU = "wgpu"
)

// SoftwareBackend is a CPU-based render backend.
// It wraps the built-in goroutine-pool renderer.
type SoftwareBackend struct {
	workers     int
	initialized bool
}

// init registers the software backend on package import.
func init() {
	Register(BackendSoftware, func() RenderBackend {
		return &SoftwareBackend{}
	})
}

// NewSoftwareBackend creates a new software render backend with the
// given worker count (0 uses GOMAXPROCS).
func NewSoftwareBackend(workers int) *SoftwareBackend {
	return &SoftwareBackend{workers: workers}
}

// Name returns the backend identifier.
func (b *SoftwareBackend) Name() string {
	return BackendSoftware
}

// Init initializes the backend.
func (b *SoftwareBackend) Init() error {
	b.initialized = true
	return nil
}

// Close releases all backend resources.
func (b *SoftwareBackend) Close() {
	b.initialized = false
}

// Renderer returns a goroutine-pool renderer.
func (b *SoftwareBackend) Renderer() volr.Renderer {
	return volr.NewSoftwareRenderer(b.workers)
}
