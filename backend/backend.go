package backend

import (
	"errors"

	"github.com/gogpu/volr"
)

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when a requested backend is not available.
	ErrBackendNotAvailable = errors.New("backend: not available")

	// ErrNotInitialized is returned when operations are called before Init.
	ErrNotInitialized = errors.New("backend: not initialized")
)

// RenderBackend is the interface for render backends.
// It abstracts how the per-pixel kernels are executed, allowing the
// library to support multiple implementations (software, GPU compute
// via wgpu, etc.).
//
// Backends must be registered via Register() and are selected via
// Get() or Default().
type RenderBackend interface {
	// Name returns the backend identifier (e.g., "software", "wgpu").
	Name() string

	// Init initializes the backend.
	// This should be called before any rendering operations.
	Init() error

	// Close releases all backend resources.
	// The backend should not be used after Close is called.
	Close()

	// Renderer returns a volr.Renderer backed by this backend.
	// The renderer is injected into render calls with volr.WithRenderer.
	Renderer() volr.Renderer
}
