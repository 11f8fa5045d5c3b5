package volr

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// Downsample filters the buffer's color plane down by an integer factor
// and returns a new buffer. The depth plane takes the minimum over each
// factor×factor block so merged passes still compare correctly.
// Rendering at WithSupersample(n) uses this to resolve n× oversampled
// frames.
func (b *ScreenBuffer) Downsample(factor int) *ScreenBuffer {
	if factor <= 1 {
		return b
	}
	w, h := b.width/factor, b.height/factor
	out := NewScreenBuffer(w, h)

	// Filter the color plane at 16 bits per channel; an 8-bit trip would
	// quantize the float planes visibly. The filter expects premultiplied
	// channels, so alpha is folded in here and divided back out below.
	src := image.NewRGBA64(image.Rect(0, 0, b.width, b.height))
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			c := b.At(x, y)
			a := clamp01(c.A)
			src.SetRGBA64(x, y, color.RGBA64{
				R: uint16(clamp01(c.R)*a*65535 + 0.5),
				G: uint16(clamp01(c.G)*a*65535 + 0.5),
				B: uint16(clamp01(c.B)*a*65535 + 0.5),
				A: uint16(a*65535 + 0.5),
			})
		}
	}
	dst := image.NewRGBA64(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			p := dst.RGBA64At(x, y)
			var c RGBA
			if p.A > 0 {
				a := float64(p.A)
				c = RGBA{
					R: float64(p.R) / a,
					G: float64(p.G) / a,
					B: float64(p.B) / a,
					A: a / 65535,
				}
			}
			out.SetPixel(x, y, c)

			minDepth := b.Depth(x*factor, y*factor)
			var n Vec3
			for dy := 0; dy < factor; dy++ {
				for dx := 0; dx < factor; dx++ {
					d := b.Depth(x*factor+dx, y*factor+dy)
					if d <= minDepth {
						minDepth = d
						n = b.Normal(x*factor+dx, y*factor+dy)
					}
				}
			}
			out.SetDepth(x, y, minDepth)
			out.SetNormal(x, y, n)
		}
	}
	return out
}
