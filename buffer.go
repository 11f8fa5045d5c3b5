package volr

import (
	"image"
	"image/png"
	"math"
	"os"
)

// ScreenBuffer is the 2D render output: a row-major RGBA color plane, a
// parallel depth plane (+Inf means no hit) and a normal plane for shaded
// passes. A buffer is created fresh per render call and fully owned by
// the caller on return.
//
// During a render every pixel lane writes only its own slot, so buffer
// writes need no synchronization.
type ScreenBuffer struct {
	width  int
	height int
	color  []float32 // 4 per pixel: R, G, B, A
	depth  []float32 // +Inf sentinel for no hit
	normal []float32 // 3 per pixel
}

// NewScreenBuffer creates a buffer cleared to transparent black with all
// depths at +Inf.
func NewScreenBuffer(width, height int) *ScreenBuffer {
	b := &ScreenBuffer{
		width:  width,
		height: height,
		color:  make([]float32, width*height*4),
		depth:  make([]float32, width*height),
		normal: make([]float32, width*height*3),
	}
	for i := range b.depth {
		b.depth[i] = float32(math.Inf(1))
	}
	return b
}

// Width returns the width of the buffer in pixels.
func (b *ScreenBuffer) Width() int { return b.width }

// Height returns the height of the buffer in pixels.
func (b *ScreenBuffer) Height() int { return b.height }

// Clear fills the color plane with c and resets depth to +Inf.
func (b *ScreenBuffer) Clear(c RGBA) {
	r, g, bl, a := float32(c.R), float32(c.G), float32(c.B), float32(c.A)
	for i := 0; i < len(b.color); i += 4 {
		b.color[i] = r
		b.color[i+1] = g
		b.color[i+2] = bl
		b.color[i+3] = a
	}
	inf := float32(math.Inf(1))
	for i := range b.depth {
		b.depth[i] = inf
	}
	for i := range b.normal {
		b.normal[i] = 0
	}
}

// At returns the color of pixel (x, y).
func (b *ScreenBuffer) At(x, y int) RGBA {
	i := (y*b.width + x) * 4
	return RGBA{
		R: float64(b.color[i]),
		G: float64(b.color[i+1]),
		B: float64(b.color[i+2]),
		A: float64(b.color[i+3]),
	}
}

// SetPixel writes the color of pixel (x, y).
func (b *ScreenBuffer) SetPixel(x, y int, c RGBA) {
	i := (y*b.width + x) * 4
	b.color[i] = float32(c.R)
	b.color[i+1] = float32(c.G)
	b.color[i+2] = float32(c.B)
	b.color[i+3] = float32(c.A)
}

// Depth returns the depth of pixel (x, y); +Inf means no hit.
func (b *ScreenBuffer) Depth(x, y int) float64 {
	return float64(b.depth[y*b.width+x])
}

// SetDepth writes the depth of pixel (x, y).
func (b *ScreenBuffer) SetDepth(x, y int, d float64) {
	b.depth[y*b.width+x] = float32(d)
}

// Normal returns the shading normal recorded at pixel (x, y). The zero
// vector means no shaded surface was hit.
func (b *ScreenBuffer) Normal(x, y int) Vec3 {
	i := (y*b.width + x) * 3
	return Vec3{
		X: float64(b.normal[i]),
		Y: float64(b.normal[i+1]),
		Z: float64(b.normal[i+2]),
	}
}

// SetNormal records the shading normal of pixel (x, y).
func (b *ScreenBuffer) SetNormal(x, y int, n Vec3) {
	i := (y*b.width + x) * 3
	b.normal[i] = float32(n.X)
	b.normal[i+1] = float32(n.Y)
	b.normal[i+2] = float32(n.Z)
}

// Merge layers other into b by depth compare: per pixel, the nearer
// surface wins and brings its depth and normal along. Semi-transparent
// accumulation pixels (depth +Inf but nonzero alpha) composite over b;
// their channels are alpha-premultiplied, the form [Accumulator.Resolve]
// writes. The two buffers must have identical dimensions; mismatched
// buffers leave b unchanged.
func (b *ScreenBuffer) Merge(other *ScreenBuffer) {
	if other == nil || other.width != b.width || other.height != b.height {
		Logger().Warn("volr: merge with mismatched buffer dimensions skipped")
		return
	}
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			i := y*b.width + x
			od := other.depth[i]
			switch {
			case math.IsInf(float64(od), 1):
				// No opaque hit in other; composite any accumulated
				// transparency over the current pixel.
				oc := other.At(x, y)
				if oc.A > 0 {
					b.SetPixel(x, y, oc.OverPremultiplied(b.At(x, y)))
				}
			case od < b.depth[i]:
				b.SetPixel(x, y, other.At(x, y))
				b.depth[i] = od
				b.SetNormal(x, y, other.Normal(x, y))
			}
		}
	}
}

// Image converts the color plane to an 8-bit image.RGBA.
func (b *ScreenBuffer) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, b.width, b.height))
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			c := b.At(x, y)
			i := img.PixOffset(x, y)
			img.Pix[i] = uint8(clamp255(c.R * 255))
			img.Pix[i+1] = uint8(clamp255(c.G * 255))
			img.Pix[i+2] = uint8(clamp255(c.B * 255))
			img.Pix[i+3] = uint8(clamp255(c.A * 255))
		}
	}
	return img
}

// SavePNG saves the color plane to a PNG file.
func (b *ScreenBuffer) SavePNG(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()
	return png.Encode(f, b.Image())
}
