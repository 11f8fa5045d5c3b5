package backend

import (
	"math"
	"testing"

	"github.com/gogpu/volr"
)

// mockBackend is a minimal RenderBackend for registry tests.
type mockBackend struct {
	name string
}

func (m *mockBackend) Name() string            { return m.name }
func (m *mockBackend) Init() error             { return nil }
func (m *mockBackend) Close()                  {}
func (m *mockBackend) Renderer() volr.Renderer { return volr.NewSoftwareRenderer(1) }

func TestSoftwareRegisteredOnImport(t *testing.T) {
	if !IsRegistered(BackendSoftware) {
		t.Fatal("software backend should be registered on import")
	}

	b := Get(BackendSoftware)
	if b == nil {
		t.Fatal("Get(software) returned nil")
	}
	if b.Name() != BackendSoftware {
		t.Errorf("Name() = %q, want %q", b.Name(), BackendSoftware)
	}
}

func TestGetUnknown(t *testing.T) {
	if b := Get("no-such-backend"); b != nil {
		t.Errorf("Get of unknown backend returned %v, want nil", b)
	}
}

func TestRegisterUnregister(t *testing.T) {
	const name = "mock"
	Register(name, func() RenderBackend { return &mockBackend{name: name} })
	defer Unregister(name)

	if !IsRegistered(name) {
		t.Fatal("mock backend not registered")
	}
	if b := Get(name); b == nil || b.Name() != name {
		t.Fatalf("Get(%q) = %v", name, b)
	}

	Unregister(name)
	if IsRegistered(name) {
		t.Error("mock backend still registered after Unregister")
	}
}

func TestDefaultPrefersWGPU(t *testing.T) {
	// Without a wgpu registration the default is software.
	b := Default()
	if b == nil {
		t.Fatal("Default() returned nil")
	}
	if b.Name() != BackendSoftware {
		t.Errorf("Default() = %q, want %q", b.Name(), BackendSoftware)
	}

	// A registered wgpu backend takes priority.
	Register(BackendWGPU, func() RenderBackend { return &mockBackend{name: BackendWGPU} })
	defer Unregister(BackendWGPU)

	b = Default()
	if b == nil || b.Name() != BackendWGPU {
		t.Errorf("Default() with wgpu registered = %v, want %q", b, BackendWGPU)
	}
}

func TestMustDefault(t *testing.T) {
	if b := MustDefault(); b == nil {
		t.Fatal("MustDefault() returned nil")
	}
}

func TestInitDefault(t *testing.T) {
	b, err := InitDefault()
	if err != nil {
		t.Fatalf("InitDefault() error: %v", err)
	}
	defer b.Close()

	if b.Renderer() == nil {
		t.Error("initialized backend returned nil renderer")
	}
}

func TestAvailableContainsSoftware(t *testing.T) {
	found := false
	for _, name := range Available() {
		if name == BackendSoftware {
			found = true
		}
	}
	if !found {
		t.Errorf("Available() = %v, missing %q", Available(), BackendSoftware)
	}
}

// TestSoftwareBackendRenders runs a small contour pass through a
// backend-provided renderer.
func TestSoftwareBackendRenders(t *testing.T) {
	b := NewSoftwareBackend(2)
	if err := b.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer b.Close()

	field, spacing, origin := volr.FromFunc(16, func(x, y, z float64) float64 {
		return math.Sqrt(x*x + y*y + z*z)
	})
	vol, err := volr.NewVolume(field, spacing, origin)
	if err != nil {
		t.Fatalf("NewVolume: %v", err)
	}
	cam, err := volr.NewCamera(volr.V3(0, 0, -3), volr.Vec3{}, volr.V3(0, 1, 0))
	if err != nil {
		t.Fatalf("NewCamera: %v", err)
	}

	buf, err := volr.RenderContour(vol, cam, 0.5, nil, nil,
		volr.WithSize(32, 32),
		volr.WithRenderer(b.Renderer()))
	if err != nil {
		t.Fatalf("RenderContour: %v", err)
	}

	// The sphere r=0.5 fills the image center.
	if d := buf.Depth(16, 16); math.IsInf(d, 1) {
		t.Error("center pixel should hit the isosurface")
	}
}
