// Package volr renders scientific volumetric and geometric data into 2D
// image buffers using ray-based, per-pixel parallel algorithms.
//
// # Overview
//
// volr takes a scalar field on a regular 3D grid (a [Volume]), a camera
// pose (a [Camera]) and rendering parameters, and returns a color/depth
// [ScreenBuffer]. Three render passes are provided:
//
//   - [RenderContour]: isosurface extraction by ray marching with
//     bisection refinement, shaded from the field gradient.
//   - [RenderVolume]: volumetric density rendering with front-to-back
//     alpha compositing through a [Colormap].
//   - [RenderGeometry]: analytic and signed-distance primitives
//     ([Sphere], [Box], [SDF] compositions) intersected per ray.
//
// Buffers from separate passes compose by depth: see [ScreenBuffer.Merge].
//
// # Quick Start
//
//	vol, _ := volr.NewVolume(field, volr.V3(2.0/255, 2.0/255, 2.0/255), volr.V3(-1, -1, -1))
//	cam, _ := volr.NewCamera(volr.V3(2, 1, -4), volr.V3(0, 0, 0), volr.V3(0, 1, 0))
//
//	buf, err := volr.RenderContour(vol, cam, 0, nil, nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//	buf.SavePNG("contour.png")
//
// # Execution Model
//
// Every pixel is an independent unit of work: rays never communicate and
// each pixel owns exactly one output slot, so passes run on all available
// cores with no locking. The Volume, Camera and Colormap are read-only
// for the duration of a render call; a call returns only once every
// pixel is finalized.
//
// # Renderers
//
// The default renderer executes pixel kernels on a goroutine pool. The
// backend packages provide the same kernels behind a registry (the
// built-in software backend and backend/wgpu); inject one with
// [WithRenderer].
package volr

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0-alpha.1"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0

	// VersionPrerelease is the prerelease identifier
	VersionPrerelease = "alpha.1"
)
