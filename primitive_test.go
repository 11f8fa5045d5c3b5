package volr

import (
	"math"
	"testing"
)

func TestSphereIntersect(t *testing.T) {
	s := Sphere{Center: V3(0, 0, 2), Radius: 1}

	tests := []struct {
		name string
		ray  Ray
		t    float64
		hit  bool
	}{
		{"head on", Ray{Origin: Vec3{}, Direction: V3(0, 0, 1)}, 1, true},
		{"from inside", Ray{Origin: V3(0, 0, 2), Direction: V3(0, 0, 1)}, 1, true},
		{"behind origin", Ray{Origin: V3(0, 0, 5), Direction: V3(0, 0, 1)}, 0, false},
		{"tangent", Ray{Origin: V3(1, 0, 0), Direction: V3(0, 0, 1)}, 2, true},
		{"clean miss", Ray{Origin: V3(3, 0, 0), Direction: V3(0, 0, 1)}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := s.Intersect(tt.ray)
			if ok != tt.hit {
				t.Fatalf("hit = %v, want %v", ok, tt.hit)
			}
			if ok && math.Abs(got-tt.t) > 1e-9 {
				t.Errorf("t = %g, want %g", got, tt.t)
			}
		})
	}
}

func TestSphereNormalAt(t *testing.T) {
	s := Sphere{Center: V3(1, 0, 0), Radius: 2}
	if n := s.NormalAt(V3(3, 0, 0)); n.Sub(V3(1, 0, 0)).Length() > 1e-12 {
		t.Errorf("NormalAt = %v, want +x", n)
	}
	if n := s.NormalAt(V3(1, -2, 0)); n.Sub(V3(0, -1, 0)).Length() > 1e-12 {
		t.Errorf("NormalAt = %v, want -y", n)
	}
}

func TestSphereBounds(t *testing.T) {
	s := Sphere{Center: V3(1, 2, 3), Radius: 0.5}
	lo, hi := s.Bounds()
	if lo != V3(0.5, 1.5, 2.5) || hi != V3(1.5, 2.5, 3.5) {
		t.Errorf("Bounds = %v, %v", lo, hi)
	}
}

func TestBoxIntersect(t *testing.T) {
	b := Box{Lower: V3(-1, -1, -1), Upper: V3(1, 1, 1)}

	if tt, ok := b.Intersect(Ray{Origin: V3(0, 0, -3), Direction: V3(0, 0, 1)}); !ok || tt != 2 {
		t.Errorf("through center: (%g, %v), want (2, true)", tt, ok)
	}
	if tt, ok := b.Intersect(Ray{Origin: Vec3{}, Direction: V3(1, 0, 0)}); !ok || tt != 0 {
		t.Errorf("from inside: (%g, %v), want (0, true)", tt, ok)
	}
	if _, ok := b.Intersect(Ray{Origin: V3(0, 5, -3), Direction: V3(0, 0, 1)}); ok {
		t.Error("offset ray should miss")
	}
}

func TestBoxNormalAt(t *testing.T) {
	b := Box{Lower: V3(-1, -2, -3), Upper: V3(1, 2, 3)}

	tests := []struct {
		p    Vec3
		want Vec3
	}{
		{V3(1, 0, 0), V3(1, 0, 0)},
		{V3(-1, 0.5, 1), V3(-1, 0, 0)},
		{V3(0, 2, 0), V3(0, 1, 0)},
		{V3(0.2, -2, 1), V3(0, -1, 0)},
		{V3(0, 0, 3), V3(0, 0, 1)},
		{V3(0.5, 1, -3), V3(0, 0, -1)},
	}
	for _, tt := range tests {
		if got := b.NormalAt(tt.p); got != tt.want {
			t.Errorf("NormalAt(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestSDFMatchesAnalyticSphere(t *testing.T) {
	analytic := Sphere{Radius: 1}
	sdf := SDFSphere(1, Vec3{})

	r := Ray{Origin: V3(0, 0, -3), Direction: V3(0, 0, 1)}
	want, _ := analytic.Intersect(r)
	got, ok := sdf.Intersect(r)
	if !ok {
		t.Fatal("sphere tracing missed")
	}
	// Sphere tracing stops within the surface tolerance of the analytic t.
	if math.Abs(got-want) > 0.02 {
		t.Errorf("t = %g, want %g", got, want)
	}

	n := sdf.NormalAt(V3(0, 0, -1))
	if n.Sub(V3(0, 0, -1)).Length() > 1e-3 {
		t.Errorf("normal = %v, want -z", n)
	}
}
