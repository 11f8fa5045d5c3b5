package volr

import "math"

// Fixed lighting model for contour and geometry shading: a headlight at
// the camera with a small ambient floor. Surfaces facing the ray light
// up fully; grazing surfaces fall to the ambient term.
const (
	shadeAmbient = 0.15
	shadeDiffuse = 1 - shadeAmbient
)

// ShadeSurface computes the lit color of a surface with the given normal
// seen along rayDir. The diffuse term uses the absolute cosine so
// normals are orientation-independent, as field gradients are.
func ShadeSurface(normal, rayDir Vec3, base RGBA) RGBA {
	intensity := shadeAmbient + shadeDiffuse*math.Abs(normal.Dot(rayDir))
	return RGBA{
		R: base.R * intensity,
		G: base.G * intensity,
		B: base.B * intensity,
		A: base.A,
	}
}

// saturationAlpha is the accumulated opacity beyond which volumetric
// marching stops early. The remaining transmittance is below 1e-4, so
// skipped samples cannot move any channel by more than that and the
// rounded output matches a full march.
const saturationAlpha = 0.9999

// Accumulator performs front-to-back alpha compositing along one ray.
// The zero value is an empty, fully transparent accumulator.
type Accumulator struct {
	R, G, B float64
	Alpha   float64
}

// Add composites one sample, whose alpha is its per-step opacity, behind
// everything accumulated so far:
//
//	color += (1-alpha_acc) * a * rgb
//	alpha_acc += (1-alpha_acc) * a
func (a *Accumulator) Add(c RGBA) {
	w := (1 - a.Alpha) * c.A
	a.R += w * c.R
	a.G += w * c.G
	a.B += w * c.B
	a.Alpha += w
}

// Saturated reports whether further samples can no longer change the
// rounded output.
func (a *Accumulator) Saturated() bool {
	return a.Alpha >= saturationAlpha
}

// Resolve composites the accumulated color over a background color.
func (a *Accumulator) Resolve(background RGBA) RGBA {
	w := 1 - a.Alpha
	return RGBA{
		R: a.R + w*background.R*background.A,
		G: a.G + w*background.G*background.A,
		B: a.B + w*background.B*background.A,
		A: a.Alpha + w*background.A,
	}
}
