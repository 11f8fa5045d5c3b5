package volr

import (
	"image/color"
	"math"
)

// RGBA represents a color with red, green, blue, and alpha components.
// Each component is in the range [0, 1].
type RGBA struct {
	R, G, B, A float64
}

// Common colors.
var (
	Black       = RGBA{R: 0, G: 0, B: 0, A: 1}
	White       = RGBA{R: 1, G: 1, B: 1, A: 1}
	Transparent = RGBA{}
)

// RGB creates an opaque color from RGB components.
func RGB(r, g, b float64) RGBA {
	return RGBA{R: r, G: g, B: b, A: 1.0}
}

// Color converts RGBA to the standard color.Color interface.
func (c RGBA) Color() color.Color {
	return color.NRGBA{
		R: uint8(clamp255(c.R * 255)),
		G: uint8(clamp255(c.G * 255)),
		B: uint8(clamp255(c.B * 255)),
		A: uint8(clamp255(c.A * 255)),
	}
}

// FromColor converts a standard color.Color to RGBA.
func FromColor(c color.Color) RGBA {
	r, g, b, a := c.RGBA()
	return RGBA{
		R: float64(r) / 65535,
		G: float64(g) / 65535,
		B: float64(b) / 65535,
		A: float64(a) / 65535,
	}
}

// Scale returns the color with R, G and B multiplied by s.
// Alpha is left unchanged.
func (c RGBA) Scale(s float64) RGBA {
	return RGBA{R: c.R * s, G: c.G * s, B: c.B * s, A: c.A}
}

// Over composites c over d using standard source-over alpha blending.
// Both colors carry straight (non-premultiplied) channels.
func (c RGBA) Over(d RGBA) RGBA {
	ia := 1 - c.A
	return RGBA{
		R: c.R*c.A + d.R*ia,
		G: c.G*c.A + d.G*ia,
		B: c.B*c.A + d.B*ia,
		A: c.A + d.A*ia,
	}
}

// OverPremultiplied composites c over d where c's channels are already
// weighted by its alpha, as [Accumulator.Resolve] produces them. Weighting
// by c.A again would darken the source.
func (c RGBA) OverPremultiplied(d RGBA) RGBA {
	ia := 1 - c.A
	return RGBA{
		R: c.R + d.R*ia,
		G: c.G + d.G*ia,
		B: c.B + d.B*ia,
		A: c.A + d.A*ia,
	}
}

// clamp255 clamps a value to [0, 255].
func clamp255(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}

// clamp01 clamps a value to [0, 1].
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
