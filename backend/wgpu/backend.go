package wgpu

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"
	types "github.com/gogpu/gputypes"

	"github.com/gogpu/volr"
	"github.com/gogpu/volr/backend"
)

//go:embed shaders/march.wgsl
var marchShaderWGSL string

// configBindingSize is sizeof(Config) in march.wgsl.
const configBindingSize = 160

// Backend is the GPU compute render backend.
// It owns the compiled shader, bind group layouts and compute
// pipelines for the ray-marching kernels.
//
// Backend is safe for concurrent use from multiple goroutines.
type Backend struct {
	mu sync.Mutex

	device hal.Device
	queue  hal.Queue

	// Shader module (cached)
	shaderModule hal.ShaderModule

	// Compute pipelines
	contourPipeline hal.ComputePipeline
	volumePipeline  hal.ComputePipeline

	// Pipeline layout and bind group layouts
	pipelineLayout   hal.PipelineLayout
	inputBindLayout  hal.BindGroupLayout
	outputBindLayout hal.BindGroupLayout

	// Compiled SPIR-V (cached for verification)
	spirvCode []uint32

	initialized bool
	shaderReady bool
}

// New creates a GPU backend bound to the given HAL device and queue.
// Init must be called before rendering.
func New(device hal.Device, queue hal.Queue) (*Backend, error) {
	if device == nil || queue == nil {
		return nil, ErrNoDevice
	}
	return &Backend{device: device, queue: queue}, nil
}

// RegisterWith creates a backend for the given device and registers it
// in the backend registry under the "wgpu" name, making it the default
// selection. Returns ErrNoDevice when device or queue is nil.
func RegisterWith(device hal.Device, queue hal.Queue) error {
	if device == nil || queue == nil {
		return ErrNoDevice
	}
	backend.Register(backend.BackendWGPU, func() backend.RenderBackend {
		b, err := New(device, queue)
		if err != nil {
			return nil
		}
		return b
	})
	return nil
}

// Name returns the backend identifier.
func (b *Backend) Name() string {
	return backend.BackendWGPU
}

// Init compiles the WGSL kernels to SPIR-V and creates the compute
// pipelines. It is safe to call Init more than once.
func (b *Backend) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.initialized {
		return nil
	}
	if b.device == nil || b.queue == nil {
		return ErrNoDevice
	}

	// Compile WGSL to SPIR-V
	spirvBytes, err := naga.Compile(marchShaderWGSL)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrShaderCompile, err)
	}

	// Convert bytes to uint32 slice for SPIR-V
	b.spirvCode = make([]uint32, len(spirvBytes)/4)
	for i := range b.spirvCode {
		b.spirvCode[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	b.shaderReady = true

	shaderModule, err := b.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label: "march_shader",
		Source: hal.ShaderSource{
			SPIRV: b.spirvCode,
		},
	})
	if err != nil {
		return fmt.Errorf("wgpu: failed to create shader module: %w", err)
	}
	b.shaderModule = shaderModule

	if err := b.createBindGroupLayouts(); err != nil {
		b.destroyLocked()
		return err
	}
	if err := b.createPipelineLayout(); err != nil {
		b.destroyLocked()
		return err
	}
	if err := b.createPipelines(); err != nil {
		b.destroyLocked()
		return err
	}

	b.initialized = true
	volr.Logger().Info("wgpu backend initialized",
		"spirv_words", len(b.spirvCode))
	return nil
}

// createBindGroupLayouts creates the bind group layouts for the pipelines.
func (b *Backend) createBindGroupLayouts() error {
	// Input bind group layout (group 0): config + volume data + colormap.
	inputLayout, err := b.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "march_input_layout",
		Entries: []types.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: types.ShaderStageCompute,
				Buffer: &types.BufferBindingLayout{
					Type:           types.BufferBindingTypeUniform,
					MinBindingSize: configBindingSize,
				},
			},
			{
				Binding:    1,
				Visibility: types.ShaderStageCompute,
				Buffer: &types.BufferBindingLayout{
					Type: types.BufferBindingTypeReadOnlyStorage,
				},
			},
			{
				Binding:    2,
				Visibility: types.ShaderStageCompute,
				Buffer: &types.BufferBindingLayout{
					Type: types.BufferBindingTypeReadOnlyStorage,
				},
			},
			{
				Binding:    3,
				Visibility: types.ShaderStageCompute,
				Buffer: &types.BufferBindingLayout{
					Type: types.BufferBindingTypeReadOnlyStorage,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("wgpu: failed to create input bind group layout: %w", err)
	}
	b.inputBindLayout = inputLayout

	// Output bind group layout (group 1): color + depth.
	outputLayout, err := b.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "march_output_layout",
		Entries: []types.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: types.ShaderStageCompute,
				Buffer: &types.BufferBindingLayout{
					Type: types.BufferBindingTypeStorage,
				},
			},
			{
				Binding:    1,
				Visibility: types.ShaderStageCompute,
				Buffer: &types.BufferBindingLayout{
					Type: types.BufferBindingTypeStorage,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("wgpu: failed to create output bind group layout: %w", err)
	}
	b.outputBindLayout = outputLayout

	return nil
}

// createPipelineLayout creates the shared pipeline layout.
func (b *Backend) createPipelineLayout() error {
	layout, err := b.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "march_pipeline_layout",
		BindGroupLayouts: []hal.BindGroupLayout{b.inputBindLayout, b.outputBindLayout},
	})
	if err != nil {
		return fmt.Errorf("wgpu: failed to create pipeline layout: %w", err)
	}
	b.pipelineLayout = layout
	return nil
}

// createPipelines creates one compute pipeline per kernel entry point.
func (b *Backend) createPipelines() error {
	contourPipeline, err := b.device.CreateComputePipeline(&hal.ComputePipelineDescriptor{
		Label:  "contour_pipeline",
		Layout: b.pipelineLayout,
		Compute: hal.ComputeState{
			Module:     b.shaderModule,
			EntryPoint: "cs_contour",
		},
	})
	if err != nil {
		return fmt.Errorf("wgpu: failed to create contour pipeline: %w", err)
	}
	b.contourPipeline = contourPipeline

	volumePipeline, err := b.device.CreateComputePipeline(&hal.ComputePipelineDescriptor{
		Label:  "volume_pipeline",
		Layout: b.pipelineLayout,
		Compute: hal.ComputeState{
			Module:     b.shaderModule,
			EntryPoint: "cs_volume",
		},
	})
	if err != nil {
		return fmt.Errorf("wgpu: failed to create volume pipeline: %w", err)
	}
	b.volumePipeline = volumePipeline

	return nil
}

// IsInitialized reports whether Init completed successfully.
func (b *Backend) IsInitialized() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.initialized
}

// IsShaderReady reports whether the WGSL kernels compiled to SPIR-V.
func (b *Backend) IsShaderReady() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.shaderReady
}

// SPIRVCode returns the compiled SPIR-V code (for debugging/verification).
func (b *Backend) SPIRVCode() []uint32 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.spirvCode
}

// Device returns the HAL device the backend is bound to.
func (b *Backend) Device() hal.Device { return b.device }

// Queue returns the HAL queue the backend is bound to.
func (b *Backend) Queue() hal.Queue { return b.queue }

// Renderer returns a volr.Renderer backed by this backend.
func (b *Backend) Renderer() volr.Renderer {
	return &Renderer{backend: b}
}

// Close releases all GPU resources.
func (b *Backend) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.destroyLocked()
}

// destroyLocked releases GPU resources. Callers must hold b.mu.
func (b *Backend) destroyLocked() {
	if b.device == nil {
		return
	}

	if b.contourPipeline != nil {
		b.device.DestroyComputePipeline(b.contourPipeline)
		b.contourPipeline = nil
	}
	if b.volumePipeline != nil {
		b.device.DestroyComputePipeline(b.volumePipeline)
		b.volumePipeline = nil
	}
	if b.pipelineLayout != nil {
		b.device.DestroyPipelineLayout(b.pipelineLayout)
		b.pipelineLayout = nil
	}
	if b.inputBindLayout != nil {
		b.device.DestroyBindGroupLayout(b.inputBindLayout)
		b.inputBindLayout = nil
	}
	if b.outputBindLayout != nil {
		b.device.DestroyBindGroupLayout(b.outputBindLayout)
		b.outputBindLayout = nil
	}
	if b.shaderModule != nil {
		b.device.DestroyShaderModule(b.shaderModule)
		b.shaderModule = nil
	}

	b.initialized = false
}
