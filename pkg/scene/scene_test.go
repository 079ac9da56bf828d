package scene

import (
	"errors"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

func TestCreate(t *testing.T) {
	tests := []struct {
		name        string
		sceneType   string
		expectError bool
		minShapes   int
	}{
		{"default scene", "default", false, 4},
		{"sphere grid scene", "spheregrid", false, 4},
		{"simple scene", "simple", false, 2},
		{"gradient scene", "gradient", false, 0},
		{"unknown scene", "nonexistent", true, 0},
		{"empty scene name", "", true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Create(tt.sceneType, DefaultSphereGridSeed)

			if tt.expectError {
				if !errors.Is(err, ErrUnknownScene) {
					t.Errorf("Expected ErrUnknownScene for '%s', got %v", tt.sceneType, err)
				}
				if s != nil {
					t.Errorf("Expected nil scene for '%s', got %v", tt.sceneType, s)
				}
				return
			}

			if err != nil {
				t.Fatalf("Unexpected error for scene type '%s': %v", tt.sceneType, err)
			}
			if s.Camera == nil {
				t.Error("Scene should have a camera")
			}
			if len(s.Shapes) < tt.minShapes {
				t.Errorf("Expected at least %d shapes, got %d", tt.minShapes, len(s.Shapes))
			}
			if err := s.Validate(); err != nil {
				t.Errorf("Built-in scene should validate: %v", err)
			}
			if s.SamplingConfig.Width <= 0 || s.SamplingConfig.Height <= 0 {
				t.Errorf("Scene should recommend positive dimensions, got %dx%d",
					s.SamplingConfig.Width, s.SamplingConfig.Height)
			}
		})
	}
}

func TestListScenes(t *testing.T) {
	scenes := ListScenes()
	if len(scenes) != len(builtinScenes) {
		t.Fatalf("Expected %d scenes, got %d", len(builtinScenes), len(scenes))
	}
	for i := 1; i < len(scenes); i++ {
		if scenes[i-1].ID >= scenes[i].ID {
			t.Errorf("Scenes not sorted: %s before %s", scenes[i-1].ID, scenes[i].ID)
		}
	}
}

func TestSphereGridScene_Deterministic(t *testing.T) {
	a, err := NewSphereGridScene(7)
	if err != nil {
		t.Fatalf("NewSphereGridScene: %v", err)
	}
	b, err := NewSphereGridScene(7)
	if err != nil {
		t.Fatalf("NewSphereGridScene: %v", err)
	}
	c, err := NewSphereGridScene(8)
	if err != nil {
		t.Fatalf("NewSphereGridScene: %v", err)
	}

	if len(a.Shapes) != len(b.Shapes) {
		t.Fatalf("Same seed produced %d and %d shapes", len(a.Shapes), len(b.Shapes))
	}
	for i := range a.Shapes {
		sa := a.Shapes[i].(*geometry.Sphere)
		sb := b.Shapes[i].(*geometry.Sphere)
		if sa.Center != sb.Center || sa.Radius != sb.Radius {
			t.Fatalf("Shape %d differs: %v vs %v", i, sa.Center, sb.Center)
		}
	}

	different := len(a.Shapes) != len(c.Shapes)
	for i := 0; !different && i < len(a.Shapes); i++ {
		different = a.Shapes[i].(*geometry.Sphere).Center != c.Shapes[i].(*geometry.Sphere).Center
	}
	if !different {
		t.Error("Different seeds should produce different scenes")
	}

	// Small spheres stay clear of the metal feature sphere
	clearing := core.NewVec3(4, 0.2, 0)
	for _, shape := range a.Shapes {
		sphere := shape.(*geometry.Sphere)
		if sphere.Radius == 0.2 && sphere.Center.Subtract(clearing).Length() <= 0.9 {
			t.Errorf("Small sphere at %v inside clearing", sphere.Center)
		}
	}
}

func TestScene_CameraOverrides(t *testing.T) {
	s, err := NewDefaultScene(geometry.CameraConfig{AspectRatio: 1.0, VFov: 30})
	if err != nil {
		t.Fatalf("NewDefaultScene: %v", err)
	}
	if s.CameraConfig.AspectRatio != 1.0 || s.CameraConfig.VFov != 30 {
		t.Errorf("Overrides not applied: %+v", s.CameraConfig)
	}

	if _, err := NewDefaultScene(geometry.CameraConfig{VFov: 200}); !errors.Is(err, core.ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig for bad override, got %v", err)
	}
}

func TestScene_Validate(t *testing.T) {
	s, err := NewGradientScene()
	if err != nil {
		t.Fatalf("NewGradientScene: %v", err)
	}

	if err := s.AddSphere(core.NewVec3(0, 0, -1), -0.5, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))); !errors.Is(err, core.ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig for negative radius, got %v", err)
	}
	if len(s.Shapes) != 0 {
		t.Errorf("Rejected sphere should not be added, have %d shapes", len(s.Shapes))
	}

	// Shapes appended directly bypass construction checks; Validate catches them
	s.Shapes = append(s.Shapes, &geometry.Sphere{Radius: 0, Material: material.NewDielectric(1.5)})
	if err := s.Validate(); !errors.Is(err, core.ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig from Validate, got %v", err)
	}

	empty := &Scene{}
	if err := empty.Validate(); !errors.Is(err, core.ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig for scene without camera, got %v", err)
	}
}

func TestScene_NilReceiver(t *testing.T) {
	var s *Scene

	if s.GetCamera() != nil {
		t.Error("Nil scene should have no camera")
	}
	if len(s.GetShapes()) != 0 {
		t.Error("Nil scene should have no shapes")
	}
	if top, bottom := s.GetBackgroundColors(); top != DefaultTopColor || bottom != DefaultBottomColor {
		t.Errorf("Nil scene should report the default sky, got %v and %v", top, bottom)
	}
	if err := s.Validate(); !errors.Is(err, core.ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig for nil scene, got %v", err)
	}
}
