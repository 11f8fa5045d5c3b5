// Package wgpu provides GPU-accelerated rendering using WebGPU compute.
//
// The ray-marching kernels (contour extraction and volumetric
// accumulation) are expressed once in WGSL and compiled to SPIR-V
// through gogpu/naga at Init time. The backend builds the compute
// pipelines, bind group layouts and pipeline layout against a
// gogpu/wgpu HAL device supplied by the host application.
//
// # Device ownership
//
// The backend RECEIVES its device, it does not create one. Hosts that
// already run a gogpu context pass their device and queue through
// RegisterWith, which also registers the backend in the registry:
//
//	wgpu.RegisterWith(device, queue)
//	b, err := backend.InitDefault() // now selects "wgpu"
//
// # Dispatch status
//
// Pipeline and layout creation is fully wired; buffer binding for
// compute dispatch requires HAL API extensions that are not available
// yet. Until then Renderer prepares the exact GPU buffer contents
// (config, volume, colormap) and executes the same kernels on the CPU,
// so results are identical to the future GPU path. Geometry and
// wireframe passes have no compute port and always run on the CPU.
package wgpu
