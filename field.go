package volr

import "math"

// Field is the device-array capability the renderer consumes from array
// backends: a 3D scalar array with known dimensions and floating-point
// element access. Adapters for external array libraries implement Field;
// rendering logic never branches on the concrete backend.
//
// Implementations must be safe for concurrent reads: every pixel lane
// samples the field during a render call.
type Field interface {
	// Dims returns the lattice dimensions (nx, ny, nz). All must be >= 1.
	Dims() (int, int, int)

	// At returns the stored value at lattice point (i, j, k).
	// Indices are always in range when called by the renderer.
	At(i, j, k int) float64
}

// RawField is implemented by fields that expose their contiguous backing
// store. Backends that upload volume data to device memory (backend/wgpu)
// use Raw to avoid an element-by-element copy.
type RawField interface {
	Field

	// Raw returns the backing store in x-major order:
	// index = (i*ny+j)*nz + k.
	Raw() []float32
}

// DenseField is a contiguous float32 scalar field, the default Field
// implementation. The zero value is not usable; construct with
// NewDenseField or FromFunc.
type DenseField struct {
	nx, ny, nz int
	data       []float32
}

// NewDenseField creates a zero-filled field with the given dimensions.
// If data is non-nil it is used as the backing store and must have
// length nx*ny*nz.
func NewDenseField(nx, ny, nz int, data []float32) (*DenseField, error) {
	if nx < 1 || ny < 1 || nz < 1 {
		return nil, configErrf("dims", "dimensions must be >= 1, got (%d, %d, %d)", nx, ny, nz)
	}
	if data == nil {
		data = make([]float32, nx*ny*nz)
	} else if len(data) != nx*ny*nz {
		return nil, configErrf("data", "length %d does not match dims (%d, %d, %d)", len(data), nx, ny, nz)
	}
	return &DenseField{nx: nx, ny: ny, nz: nz, data: data}, nil
}

// FromFunc samples fn on an n³ lattice spanning [-1, 1] in every axis
// and returns the field together with the spacing and origin that place
// it back onto that cube. Useful for tests and examples.
func FromFunc(n int, fn func(x, y, z float64) float64) (*DenseField, Vec3, Vec3) {
	f, _ := NewDenseField(n, n, n, nil)
	h := 2.0 / float64(n-1)
	for i := 0; i < n; i++ {
		x := -1 + float64(i)*h
		for j := 0; j < n; j++ {
			y := -1 + float64(j)*h
			for k := 0; k < n; k++ {
				z := -1 + float64(k)*h
				f.Set(i, j, k, fn(x, y, z))
			}
		}
	}
	return f, V3(h, h, h), V3(-1, -1, -1)
}

// Dims returns the lattice dimensions.
func (f *DenseField) Dims() (int, int, int) {
	return f.nx, f.ny, f.nz
}

// At returns the stored value at (i, j, k).
func (f *DenseField) At(i, j, k int) float64 {
	return float64(f.data[(i*f.ny+j)*f.nz+k])
}

// Set stores a value at (i, j, k).
func (f *DenseField) Set(i, j, k int, v float64) {
	f.data[(i*f.ny+j)*f.nz+k] = float32(v)
}

// Raw returns the backing store in x-major order.
func (f *DenseField) Raw() []float32 {
	return f.data
}

// Range returns the minimum and maximum stored values, ignoring NaNs.
// Returns (0, 1) for a field that holds nothing but NaNs.
func (f *DenseField) Range() (min, max float64) {
	min = math.Inf(1)
	max = math.Inf(-1)
	for _, v := range f.data {
		fv := float64(v)
		if math.IsNaN(fv) {
			continue
		}
		if fv < min {
			min = fv
		}
		if fv > max {
			max = fv
		}
	}
	if min > max {
		return 0, 1
	}
	return min, max
}
