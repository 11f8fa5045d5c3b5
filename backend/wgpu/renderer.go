package wgpu

import (
	"math"
	"sync"

	"github.com/gogpu/volr"
	"github.com/gogpu/volr/internal/parallel"
)

// cmapTableSize is the number of colormap entries uploaded to the GPU.
const cmapTableSize = 256

// GPUConfig is the GPU-compatible layout of a render pass
// configuration. Must match the Config struct in march.wgsl.
type GPUConfig struct {
	NX          uint32
	NY          uint32
	NZ          uint32
	RefineSteps uint32

	Spacing   [3]float32
	Threshold float32
	Origin    [3]float32
	StepSize  float32

	CamPos     [3]float32
	HalfHeight float32
	CamForward [3]float32
	Aspect     float32
	CamRight   [3]float32
	Width      uint32
	CamUp      [3]float32
	Height     uint32

	CmapMin        float32
	CmapMax        float32
	CmapSize       uint32
	HasColorVolume uint32

	Background [4]float32
	Fallback   [4]float32
}

// Renderer executes render passes through the GPU backend.
//
// Renderer prepares the exact buffer contents the compute kernels
// consume; the dispatch itself currently runs the shared CPU kernels
// (see the package documentation). Geometry and wireframe passes have
// no compute port and always run on the CPU pool.
type Renderer struct {
	backend *Backend

	// Serialized inputs of the most recent marching pass, in the exact
	// layout a dispatch uploads. Held until the next pass overwrites
	// them.
	mu       sync.Mutex
	config   []byte
	volume   []float32
	colorVol []float32
	colormap []float32
}

// Contour renders a contour pass into dst.
func (r *Renderer) Contour(job *volr.ContourJob, dst *volr.ScreenBuffer) error {
	if !r.backend.IsInitialized() {
		return ErrNotInitialized
	}

	cfg := contourConfig(job)
	r.uploadPass(cfg, job.Volume, job.ColorVolume, job.Colormap)

	dispatchRows(job.Height, job.Width, func(x, y int) {
		job.RenderPixel(x, y, dst)
	})
	return nil
}

// Volume renders a volumetric pass into dst.
func (r *Renderer) Volume(job *volr.VolumeJob, dst *volr.ScreenBuffer) error {
	if !r.backend.IsInitialized() {
		return ErrNotInitialized
	}

	cfg := volumeConfig(job)
	r.uploadPass(cfg, job.Volume, nil, job.Colormap)

	dispatchRows(job.Height, job.Width, func(x, y int) {
		job.RenderPixel(x, y, dst)
	})
	return nil
}

// Geometry renders a geometry pass into dst. Runs on the CPU pool.
func (r *Renderer) Geometry(job *volr.GeometryJob, dst *volr.ScreenBuffer) error {
	if !r.backend.IsInitialized() {
		return ErrNotInitialized
	}
	dispatchRows(job.Height, job.Width, func(x, y int) {
		job.RenderPixel(x, y, dst)
	})
	return nil
}

// Wireframe renders a wireframe pass into dst. Runs on the CPU pool.
func (r *Renderer) Wireframe(job *volr.WireframeJob, dst *volr.ScreenBuffer) error {
	if !r.backend.IsInitialized() {
		return ErrNotInitialized
	}
	dispatchRows(job.Height, job.Width, func(x, y int) {
		job.RenderPixel(x, y, dst)
	})
	return nil
}

// dispatchRows schedules pixel kernels across the CPU pool.
func dispatchRows(height, width int, fn func(x, y int)) {
	parallel.Rows(0, height, func(y int) {
		for x := 0; x < width; x++ {
			fn(x, y)
		}
	})
}

// uploadPass serializes the pass inputs into GPU buffer contents and
// stages them on the renderer. A compute dispatch uploads the staged
// slices verbatim; until then they keep the data path exercised and
// validated.
func (r *Renderer) uploadPass(cfg GPUConfig, vol, colorVol *volr.Volume, cmap volr.Colormap) {
	config := ConfigToBytes(&cfg)
	volume := VolumeData(vol)
	var colorData []float32
	if colorVol != nil {
		colorData = VolumeData(colorVol)
	}
	table := ColormapTable(cmap, float64(cfg.CmapMin), float64(cfg.CmapMax), int(cfg.CmapSize))

	r.mu.Lock()
	r.config = config
	r.volume = volume
	r.colorVol = colorData
	r.colormap = table
	r.mu.Unlock()
}

// contourConfig builds the GPU configuration for a contour pass.
func contourConfig(job *volr.ContourJob) GPUConfig {
	cfg := baseConfig(job.Volume, job.Camera, job.Width, job.Height, job.StepSize, job.Background)
	cfg.Threshold = float32(job.Threshold)
	cfg.RefineSteps = uint32(job.RefineSteps)
	cfg.Fallback = rgbaToVec4(job.Fallback)

	if job.ColorVolume != nil {
		cfg.HasColorVolume = 1
		min, max := job.ColorVolume.Range()
		cfg.CmapMin = float32(min)
		cfg.CmapMax = float32(max)
		cfg.CmapSize = cmapTableSize
	} else {
		// Constant surface color: a single-entry table looked up at
		// the threshold value.
		cfg.CmapMin = float32(job.Threshold)
		cfg.CmapMax = float32(job.Threshold)
		cfg.CmapSize = 1
	}
	return cfg
}

// volumeConfig builds the GPU configuration for a volumetric pass.
func volumeConfig(job *volr.VolumeJob) GPUConfig {
	cfg := baseConfig(job.Volume, job.Camera, job.Width, job.Height, job.StepSize, job.Background)
	min, max := job.Volume.Range()
	cfg.CmapMin = float32(min)
	cfg.CmapMax = float32(max)
	cfg.CmapSize = cmapTableSize
	return cfg
}

// baseConfig fills the fields shared by all marching passes.
func baseConfig(vol *volr.Volume, cam *volr.Camera, width, height int, stepSize float64, bg volr.RGBA) GPUConfig {
	nx, ny, nz := vol.Dims()
	forward, right, up := cam.Basis()

	return GPUConfig{
		NX:         uint32(nx),
		NY:         uint32(ny),
		NZ:         uint32(nz),
		Spacing:    vec3ToFloats(vol.Spacing()),
		Origin:     vec3ToFloats(vol.Origin()),
		StepSize:   float32(stepSize),
		CamPos:     vec3ToFloats(cam.Position),
		HalfHeight: float32(math.Tan(cam.FOV * math.Pi / 360)),
		CamForward: vec3ToFloats(forward),
		Aspect:     float32(width) / float32(height),
		CamRight:   vec3ToFloats(right),
		Width:      uint32(width),
		CamUp:      vec3ToFloats(up),
		Height:     uint32(height),
		Background: rgbaToVec4(bg),
	}
}

// VolumeData returns the volume's scalar grid as the flat x-major
// float32 array the kernels index. Dense fields are passed through
// without copying.
func VolumeData(vol *volr.Volume) []float32 {
	if raw, ok := vol.Field().(volr.RawField); ok {
		return raw.Raw()
	}

	nx, ny, nz := vol.Dims()
	data := make([]float32, nx*ny*nz)
	idx := 0
	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			for k := 0; k < nz; k++ {
				data[idx] = float32(vol.Field().At(i, j, k))
				idx++
			}
		}
	}
	return data
}

// ColormapTable samples cmap into a flat RGBA table over [min, max].
func ColormapTable(cmap volr.Colormap, min, max float64, size int) []float32 {
	if size <= 0 {
		return nil
	}
	table := make([]float32, size*4)
	for i := 0; i < size; i++ {
		value := min
		if size > 1 {
			value = min + (max-min)*float64(i)/float64(size-1)
		}
		c := cmap.At(value)
		table[i*4+0] = float32(c.R)
		table[i*4+1] = float32(c.G)
		table[i*4+2] = float32(c.B)
		table[i*4+3] = float32(c.A)
	}
	return table
}

// ConfigToBytes serializes a GPUConfig to its uniform buffer layout.
func ConfigToBytes(cfg *GPUConfig) []byte {
	buf := make([]byte, configBindingSize)

	writeUint32(buf, 0, cfg.NX)
	writeUint32(buf, 4, cfg.NY)
	writeUint32(buf, 8, cfg.NZ)
	writeUint32(buf, 12, cfg.RefineSteps)

	writeVec3(buf, 16, cfg.Spacing)
	writeFloat32(buf, 28, cfg.Threshold)
	writeVec3(buf, 32, cfg.Origin)
	writeFloat32(buf, 44, cfg.StepSize)

	writeVec3(buf, 48, cfg.CamPos)
	writeFloat32(buf, 60, cfg.HalfHeight)
	writeVec3(buf, 64, cfg.CamForward)
	writeFloat32(buf, 76, cfg.Aspect)
	writeVec3(buf, 80, cfg.CamRight)
	writeUint32(buf, 92, cfg.Width)
	writeVec3(buf, 96, cfg.CamUp)
	writeUint32(buf, 108, cfg.Height)

	writeFloat32(buf, 112, cfg.CmapMin)
	writeFloat32(buf, 116, cfg.CmapMax)
	writeUint32(buf, 120, cfg.CmapSize)
	writeUint32(buf, 124, cfg.HasColorVolume)

	writeVec4(buf, 128, cfg.Background)
	writeVec4(buf, 144, cfg.Fallback)

	return buf
}

// Byte serialization helpers (little-endian, matching WGSL layouts).

func writeUint32(buf []byte, offset int, val uint32) {
	buf[offset] = byte(val)
	buf[offset+1] = byte(val >> 8)
	buf[offset+2] = byte(val >> 16)
	buf[offset+3] = byte(val >> 24)
}

func writeFloat32(buf []byte, offset int, val float32) {
	writeUint32(buf, offset, math.Float32bits(val))
}

func writeVec3(buf []byte, offset int, v [3]float32) {
	writeFloat32(buf, offset, v[0])
	writeFloat32(buf, offset+4, v[1])
	writeFloat32(buf, offset+8, v[2])
}

func writeVec4(buf []byte, offset int, v [4]float32) {
	writeFloat32(buf, offset, v[0])
	writeFloat32(buf, offset+4, v[1])
	writeFloat32(buf, offset+8, v[2])
	writeFloat32(buf, offset+12, v[3])
}

func vec3ToFloats(v volr.Vec3) [3]float32 {
	return [3]float32{float32(v.X), float32(v.Y), float32(v.Z)}
}

func rgbaToVec4(c volr.RGBA) [4]float32 {
	return [4]float32{float32(c.R), float32(c.G), float32(c.B), float32(c.A)}
}
