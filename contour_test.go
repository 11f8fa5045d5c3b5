package volr

import (
	"math"
	"testing"
)

func TestTracePhaseString(t *testing.T) {
	tests := []struct {
		phase TracePhase
		want  string
	}{
		{TraceSearching, "searching"},
		{TraceBracketed, "bracketed"},
		{TraceRefining, "refining"},
		{TraceHit, "hit"},
		{TraceMiss, "miss"},
		{TracePhase(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.phase.String(); got != tt.want {
			t.Errorf("TracePhase(%d).String() = %q, want %q", tt.phase, got, tt.want)
		}
	}
}

func TestObserveStaysSearching(t *testing.T) {
	tr := Trace{}
	for i, v := range []float64{1, 2, 3, 2.5} {
		tr = tr.Observe(float64(i), v, true, 0.5)
		if tr.Phase != TraceSearching {
			t.Fatalf("same-side sample %d moved phase to %v", i, tr.Phase)
		}
	}
}

func TestObserveBracketsOnSignChange(t *testing.T) {
	tr := Trace{}
	tr = tr.Observe(1, 1.0, true, 0.5)
	tr = tr.Observe(2, 0.2, true, 0.5)

	if tr.Phase != TraceBracketed {
		t.Fatalf("phase = %v, want bracketed", tr.Phase)
	}
	if tr.T0 != 1 || tr.T1 != 2 {
		t.Errorf("bracket = [%g, %g], want [1, 2]", tr.T0, tr.T1)
	}
	if tr.V0 != 1.0 || tr.V1 != 0.2 {
		t.Errorf("bracket values = (%g, %g), want (1, 0.2)", tr.V0, tr.V1)
	}
}

func TestObserveExactThresholdCounts(t *testing.T) {
	tr := Trace{}
	tr = tr.Observe(1, 1.0, true, 0.5)
	tr = tr.Observe(2, 0.5, true, 0.5)
	if tr.Phase != TraceBracketed {
		t.Errorf("a sample exactly on the threshold should bracket, got %v", tr.Phase)
	}
}

func TestObserveInvalidResetsSearch(t *testing.T) {
	// A gap in coverage must not conjure a crossing across it.
	tr := Trace{}
	tr = tr.Observe(1, 1.0, true, 0.5)
	tr = tr.Observe(2, 0, false, 0.5)
	tr = tr.Observe(3, 0.2, true, 0.5)
	if tr.Phase != TraceSearching {
		t.Fatalf("crossing conjured across an invalid gap: %v", tr.Phase)
	}

	// The sample after the gap seeds a new search.
	tr = tr.Observe(4, 0.9, true, 0.5)
	if tr.Phase != TraceBracketed {
		t.Errorf("post-gap samples should bracket normally, got %v", tr.Phase)
	}
	if tr.T0 != 3 || tr.T1 != 4 {
		t.Errorf("bracket = [%g, %g], want [3, 4]", tr.T0, tr.T1)
	}
}

func TestObserveTerminalStatesIgnoreSamples(t *testing.T) {
	tr := Trace{Phase: TraceBracketed, T0: 1, T1: 2}
	if got := tr.Observe(3, 0, true, 0.5); got != tr {
		t.Errorf("bracketed state mutated by Observe: %+v", got)
	}
}

// sphereVolume builds an SDF-style sphere field on [-1,1]^3: positive
// inside radius 0.5, negative outside.
func sphereVolume(t *testing.T, n int) *Volume {
	t.Helper()
	field, spacing, origin := FromFunc(n, func(x, y, z float64) float64 {
		return -(math.Sqrt(x*x+y*y+z*z) - 0.5)
	})
	return mustVolume(t, field, spacing, origin)
}

func TestTraceContourSphereHit(t *testing.T) {
	v := sphereVolume(t, 64)
	r := Ray{Origin: V3(0, 0, -3), Direction: V3(0, 0, 1)}

	hit, ok := v.TraceContour(r, 0, 0, 0)
	if !ok {
		t.Fatal("axial ray should hit the sphere")
	}

	// First crossing from outside: z = -0.5, so t = 2.5.
	if math.Abs(hit.T-2.5) > 0.02 {
		t.Errorf("hit.T = %g, want 2.5", hit.T)
	}
	if hit.Point.Sub(V3(0, 0, -0.5)).Length() > 0.02 {
		t.Errorf("hit.Point = %v, want (0, 0, -0.5)", hit.Point)
	}

	// The field grows toward the center, so the gradient at the front
	// face points along +z; the normal is its unit vector.
	if math.Abs(hit.Normal.Length()-1) > 1e-9 {
		t.Errorf("normal %v is not unit length", hit.Normal)
	}
	if hit.Normal.Z < 0.95 {
		t.Errorf("normal = %v, want ~(0, 0, 1)", hit.Normal)
	}
}

func TestTraceContourNormalsRadial(t *testing.T) {
	v := sphereVolume(t, 64)

	// Rays from several directions: the shading normal must align with
	// the radial direction at the hit point.
	dirs := []Vec3{
		V3(0, 0, 1), V3(1, 0, 0), V3(0, 1, 0),
		V3(1, 1, 1).Normalize(), V3(-1, 0.5, 0.25).Normalize(),
	}
	for _, d := range dirs {
		r := Ray{Origin: d.Mul(-3), Direction: d}
		hit, ok := v.TraceContour(r, 0, 0, 0)
		if !ok {
			t.Fatalf("ray %v should hit the sphere", d)
		}
		radial := hit.Point.Normalize()
		if math.Abs(math.Abs(hit.Normal.Dot(radial))-1) > 0.05 {
			t.Errorf("direction %v: normal %v not aligned with radial %v", d, hit.Normal, radial)
		}
	}
}

func TestTraceContourMiss(t *testing.T) {
	v := sphereVolume(t, 32)

	tests := []struct {
		name string
		ray  Ray
	}{
		{"pointing away", Ray{Origin: V3(0, 0, -3), Direction: V3(0, 0, -1)}},
		{"offset past silhouette", Ray{Origin: V3(0.9, 0.9, -3), Direction: V3(0, 0, 1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := v.TraceContour(tt.ray, 0, 0, 0); ok {
				t.Error("expected a miss")
			}
		})
	}
}

func TestTraceContourRefinement(t *testing.T) {
	v := sphereVolume(t, 64)
	r := Ray{Origin: V3(0, 0, -3), Direction: V3(0, 0, 1)}

	// Bisection localizes the crossing well below one march step.
	fine, ok := v.TraceContour(r, 0, 0, 16)
	if !ok {
		t.Fatal("trace missed")
	}
	step := v.Spacing().MinComponent()
	if err := math.Abs(fine.T - 2.5); err > step/4 {
		t.Errorf("refined hit off by %g, want well under the %g march step", err, step)
	}
}

func TestTraceContourDeterministic(t *testing.T) {
	v := sphereVolume(t, 32)
	r := Ray{Origin: V3(0.3, -0.2, -3), Direction: V3(0, 0.05, 1).Normalize()}

	a, okA := v.TraceContour(r, 0, 0, 0)
	b, okB := v.TraceContour(r, 0, 0, 0)
	if okA != okB || a != b {
		t.Errorf("repeated traces differ: %+v vs %+v", a, b)
	}
}
