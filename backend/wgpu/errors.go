package wgpu

import "errors"

// Backend-specific errors.
var (
	// ErrNoDevice is returned when the backend is created without a
	// HAL device and queue.
	ErrNoDevice = errors.New("wgpu: device and queue are required")

	// ErrNotInitialized is returned when rendering before Init.
	ErrNotInitialized = errors.New("wgpu: backend not initialized")

	// ErrShaderCompile wraps WGSL to SPIR-V compilation failures.
	ErrShaderCompile = errors.New("wgpu: shader compilation failed")
)
