package volr

import (
	"math"
	"testing"
)

func TestShadeSurface(t *testing.T) {
	base := RGB(1, 0.5, 0.25)

	tests := []struct {
		name      string
		normal    Vec3
		rayDir    Vec3
		intensity float64
	}{
		{"facing the ray", V3(0, 0, 1), V3(0, 0, 1), 1},
		{"facing away", V3(0, 0, -1), V3(0, 0, 1), 1},
		{"perpendicular", V3(1, 0, 0), V3(0, 0, 1), 0.15},
		{"45 degrees", V3(0, 1, 1).Normalize(), V3(0, 0, 1), 0.15 + 0.85*math.Sqrt2/2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ShadeSurface(tt.normal, tt.rayDir, base)
			if math.Abs(got.R-base.R*tt.intensity) > 1e-12 {
				t.Errorf("R = %g, want %g", got.R, base.R*tt.intensity)
			}
			if math.Abs(got.G-base.G*tt.intensity) > 1e-12 {
				t.Errorf("G = %g, want %g", got.G, base.G*tt.intensity)
			}
			if got.A != base.A {
				t.Errorf("alpha changed: %g", got.A)
			}
		})
	}
}

func TestAccumulatorZeroValue(t *testing.T) {
	var acc Accumulator
	if acc.Saturated() {
		t.Error("empty accumulator reports saturated")
	}
	got := acc.Resolve(RGB(0.2, 0.4, 0.6))
	if got != RGB(0.2, 0.4, 0.6) {
		t.Errorf("Resolve over background = %v, want the background", got)
	}
}

func TestAccumulatorClosedForm(t *testing.T) {
	// n identical samples of opacity a accumulate to 1-(1-a)^n.
	var acc Accumulator
	const a = 0.3
	for i := 1; i <= 10; i++ {
		acc.Add(RGBA{R: 1, A: a})
		want := 1 - math.Pow(1-a, float64(i))
		if math.Abs(acc.Alpha-want) > 1e-12 {
			t.Fatalf("after %d samples alpha = %g, want %g", i, acc.Alpha, want)
		}
		// Uniform color: premultiplied red tracks alpha exactly.
		if math.Abs(acc.R-want) > 1e-12 {
			t.Fatalf("after %d samples R = %g, want %g", i, acc.R, want)
		}
	}
}

func TestAccumulatorFrontToBack(t *testing.T) {
	// An opaque first sample hides everything behind it.
	var acc Accumulator
	acc.Add(RGBA{R: 1, A: 1})
	acc.Add(RGBA{G: 1, A: 1})

	if acc.G != 0 {
		t.Errorf("occluded sample contributed: G = %g", acc.G)
	}
	if acc.R != 1 || acc.Alpha != 1 {
		t.Errorf("front sample = (%g, alpha %g), want (1, 1)", acc.R, acc.Alpha)
	}
}

func TestAccumulatorSaturation(t *testing.T) {
	var acc Accumulator
	steps := 0
	for !acc.Saturated() {
		acc.Add(RGBA{R: 1, A: 0.5})
		steps++
		if steps > 100 {
			t.Fatal("never saturated")
		}
	}
	// 1-(1-0.5)^n >= 0.9999 first holds at n = 14.
	if steps != 14 {
		t.Errorf("saturated after %d samples, want 14", steps)
	}
}

func TestResolveBlends(t *testing.T) {
	var acc Accumulator
	acc.Add(RGBA{R: 1, A: 0.5})

	// Over an opaque background half of it shows through.
	got := acc.Resolve(RGB(0, 0, 1))
	if math.Abs(got.R-0.5) > 1e-12 || math.Abs(got.B-0.5) > 1e-12 || got.A != 1 {
		t.Errorf("Resolve over blue = %v", got)
	}

	// Over a transparent background the accumulation passes through.
	got = acc.Resolve(Transparent)
	if math.Abs(got.R-0.5) > 1e-12 || got.A != 0.5 {
		t.Errorf("Resolve over transparent = %v", got)
	}
}
