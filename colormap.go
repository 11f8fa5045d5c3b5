package volr

import "math"

// Colormap maps a scalar value to a color. Implementations must be
// stateless and total over their domain: every input, including values
// beyond the declared range, returns a defined color (boundary clamp).
// Colormaps are queried concurrently by all pixel lanes.
type Colormap interface {
	At(value float64) RGBA
}

// Solid is a Colormap that ignores the value and always returns one
// color. It is the degenerate coloring used when a contour has no color
// volume.
type Solid struct {
	Color RGBA
}

// At returns the solid color.
func (s Solid) At(float64) RGBA { return s.Color }

// Table is a discrete lookup-table colormap over [Min, Max]. Values are
// clamped into the range, then mapped linearly onto the table entries.
// NaN values map to the NaN color.
type Table struct {
	Min, Max float64
	Colors   []RGBA

	// NaN is the color for NaN inputs. The zero value (transparent)
	// hides NaN cells.
	NaN RGBA
}

// NewTable creates a table colormap. The table must not be empty and
// min < max must hold.
func NewTable(min, max float64, colors []RGBA) (*Table, error) {
	if len(colors) == 0 {
		return nil, configErrf("colormap", "empty color table")
	}
	if !(min < max) {
		return nil, configErrf("colormap", "min %g must be below max %g", min, max)
	}
	return &Table{Min: min, Max: max, Colors: colors}, nil
}

// At looks up the color for value.
func (t *Table) At(value float64) RGBA {
	if math.IsNaN(value) {
		return t.NaN
	}
	if value < t.Min {
		value = t.Min
	}
	if value > t.Max {
		value = t.Max
	}
	idx := int((value - t.Min) / (t.Max - t.Min) * float64(len(t.Colors)-1))
	return t.Colors[idx]
}

// SetOpacity overwrites the alpha channel of every table entry with a
// ramp from lo at Min to hi at Max. Returns the table for chaining.
func (t *Table) SetOpacity(lo, hi float64) *Table {
	n := len(t.Colors)
	for i := range t.Colors {
		f := 0.0
		if n > 1 {
			f = float64(i) / float64(n-1)
		}
		t.Colors[i].A = lo + (hi-lo)*f
	}
	return t
}

// tableSize is the entry count for the built-in ramp constructors.
const tableSize = 256

// Grayscale returns a linear black-to-white colormap over [min, max].
func Grayscale(min, max float64) *Table {
	colors := make([]RGBA, tableSize)
	for i := range colors {
		v := float64(i) / (tableSize - 1)
		colors[i] = RGBA{R: v, G: v, B: v, A: 1}
	}
	return &Table{Min: min, Max: max, Colors: colors}
}

// Jet returns the classic blue-cyan-yellow-red rainbow colormap over
// [min, max], matching the piecewise-linear jet ramp.
func Jet(min, max float64) *Table {
	colors := make([]RGBA, tableSize)
	for i := range colors {
		v := 4 * float64(i) / (tableSize - 1)
		colors[i] = RGBA{
			R: clamp01(math.Min(v-1.5, -v+4.5)),
			G: clamp01(math.Min(v-0.5, -v+3.5)),
			B: clamp01(math.Min(v+0.5, -v+2.5)),
			A: 1,
		}
	}
	return &Table{Min: min, Max: max, Colors: colors}
}

// Viridis returns a perceptually uniform dark-violet-to-yellow colormap
// over [min, max], built from a coarse anchor set with linear blending.
func Viridis(min, max float64) *Table {
	anchors := []RGBA{
		{R: 0.267, G: 0.005, B: 0.329, A: 1},
		{R: 0.283, G: 0.141, B: 0.458, A: 1},
		{R: 0.254, G: 0.265, B: 0.530, A: 1},
		{R: 0.207, G: 0.372, B: 0.553, A: 1},
		{R: 0.164, G: 0.471, B: 0.558, A: 1},
		{R: 0.128, G: 0.567, B: 0.551, A: 1},
		{R: 0.135, G: 0.659, B: 0.518, A: 1},
		{R: 0.267, G: 0.749, B: 0.441, A: 1},
		{R: 0.478, G: 0.821, B: 0.318, A: 1},
		{R: 0.741, G: 0.873, B: 0.150, A: 1},
		{R: 0.993, G: 0.906, B: 0.144, A: 1},
	}
	colors := make([]RGBA, tableSize)
	for i := range colors {
		f := float64(i) / (tableSize - 1) * float64(len(anchors)-1)
		lo := int(f)
		if lo > len(anchors)-2 {
			lo = len(anchors) - 2
		}
		t := f - float64(lo)
		a, b := anchors[lo], anchors[lo+1]
		colors[i] = RGBA{
			R: a.R + (b.R-a.R)*t,
			G: a.G + (b.G-a.G)*t,
			B: a.B + (b.B-a.B)*t,
			A: 1,
		}
	}
	return &Table{Min: min, Max: max, Colors: colors}
}
