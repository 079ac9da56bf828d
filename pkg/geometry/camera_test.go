package geometry

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func pinholeConfig() CameraConfig {
	return CameraConfig{
		Center:        core.NewVec3(0, 0, 0),
		LookAt:        core.NewVec3(0, 0, -1),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          90.0,
		AspectRatio:   2.0,
		Aperture:      0.0,
		FocusDistance: 1.0,
	}
}

func TestCamera_PinholeCorners(t *testing.T) {
	camera, err := NewCamera(pinholeConfig())
	if err != nil {
		t.Fatalf("NewCamera: %v", err)
	}
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(1)))

	// 90° vfov at unit focus gives half-height 1; aspect 2 gives half-width 2
	tests := []struct {
		name      string
		s, t      float64
		direction core.Vec3
	}{
		{"lower left", 0, 0, core.NewVec3(-2, -1, -1)},
		{"upper right", 1, 1, core.NewVec3(2, 1, -1)},
		{"center", 0.5, 0.5, core.NewVec3(0, 0, -1)},
		{"lower right", 1, 0, core.NewVec3(2, -1, -1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := camera.GetRay(tt.s, tt.t, sampler)
			if !ray.Origin.ApproxEquals(core.NewVec3(0, 0, 0), 1e-12) {
				t.Errorf("Pinhole ray origin should be camera center, got %v", ray.Origin)
			}
			if !ray.Direction.ApproxEquals(tt.direction, 1e-9) {
				t.Errorf("Expected direction %v, got %v", tt.direction, ray.Direction)
			}
		})
	}
}

func TestCamera_Basis(t *testing.T) {
	config := pinholeConfig()
	config.Center = core.NewVec3(3, 2, 5)
	config.LookAt = core.NewVec3(-1, 0.5, 0)

	camera, err := NewCamera(config)
	if err != nil {
		t.Fatalf("NewCamera: %v", err)
	}

	if camera.Origin() != config.Center {
		t.Errorf("Expected origin %v, got %v", config.Center, camera.Origin())
	}
	if camera.LensRadius() != 0 {
		t.Errorf("Pinhole camera should have zero lens radius, got %f", camera.LensRadius())
	}

	expectedForward := config.LookAt.Subtract(config.Center).Normalize()
	if !camera.Forward().ApproxEquals(expectedForward, 1e-9) {
		t.Errorf("Expected forward %v, got %v", expectedForward, camera.Forward())
	}

	for name, dot := range map[string]float64{
		"u.v": camera.u.Dot(camera.v),
		"u.w": camera.u.Dot(camera.w),
		"v.w": camera.v.Dot(camera.w),
	} {
		if math.Abs(dot) > 1e-9 {
			t.Errorf("Basis not orthogonal: %s = %f", name, dot)
		}
	}
	for name, vec := range map[string]core.Vec3{"u": camera.u, "v": camera.v, "w": camera.w} {
		if math.Abs(vec.Length()-1) > 1e-9 {
			t.Errorf("Basis vector %s not unit length: %f", name, vec.Length())
		}
	}
}

func TestCamera_DepthOfFieldConvergesAtFocalPlane(t *testing.T) {
	config := pinholeConfig()
	config.Aperture = 0.5
	config.FocusDistance = 4.0

	camera, err := NewCamera(config)
	if err != nil {
		t.Fatalf("NewCamera: %v", err)
	}
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))

	// Every lens sample for the same (s, t) must pass through the same point on the focal plane
	expected := core.NewVec3(0.6, -0.2, -4)
	s := 0.5 + 0.6/(2*2*4)
	tt := 0.5 - 0.2/(2*1*4)

	movedOrigin := false
	for i := 0; i < 100; i++ {
		ray := camera.GetRay(s, tt, sampler)
		if ray.Origin.Length() > config.Aperture/2+1e-12 {
			t.Fatalf("Ray origin %v outside lens radius", ray.Origin)
		}
		if ray.Origin.Z != 0 {
			t.Fatalf("Lens offset should lie in the u-v plane, got %v", ray.Origin)
		}
		if ray.Origin.Length() > 0 {
			movedOrigin = true
		}
		if p := ray.At(1); !p.ApproxEquals(expected, 1e-9) {
			t.Fatalf("Ray does not converge at focal plane: expected %v, got %v", expected, p)
		}
	}
	if !movedOrigin {
		t.Error("Expected lens sampling to move ray origins")
	}
}

func TestCamera_AutoFocusDistance(t *testing.T) {
	config := pinholeConfig()
	config.LookAt = core.NewVec3(0, 0, -3)
	config.FocusDistance = 0

	camera, err := NewCamera(config)
	if err != nil {
		t.Fatalf("NewCamera: %v", err)
	}

	ray := camera.GetRay(0.5, 0.5, core.NewFixedSampler(0.5))
	if !ray.Direction.ApproxEquals(core.NewVec3(0, 0, -3), 1e-9) {
		t.Errorf("Expected image plane at the look-at distance, got direction %v", ray.Direction)
	}
}

func TestCameraConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*CameraConfig)
	}{
		{"zero fov", func(c *CameraConfig) { c.VFov = 0 }},
		{"fov 180", func(c *CameraConfig) { c.VFov = 180 }},
		{"negative aspect", func(c *CameraConfig) { c.AspectRatio = -1 }},
		{"negative aperture", func(c *CameraConfig) { c.Aperture = -0.1 }},
		{"negative focus", func(c *CameraConfig) { c.FocusDistance = -2 }},
		{"center equals look at", func(c *CameraConfig) { c.LookAt = c.Center }},
		{"up parallel to view", func(c *CameraConfig) { c.Up = core.NewVec3(0, 0, 1) }},
		{"NaN center", func(c *CameraConfig) { c.Center = core.NewVec3(math.NaN(), 0, 0) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := pinholeConfig()
			tt.modify(&config)

			camera, err := NewCamera(config)
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if !errors.Is(err, core.ErrInvalidConfig) {
				t.Errorf("Expected ErrInvalidConfig, got %v", err)
			}
			if camera != nil {
				t.Error("Expected nil camera on error")
			}
		})
	}
}

func TestMergeCameraConfig(t *testing.T) {
	base := pinholeConfig()
	merged := MergeCameraConfig(base, CameraConfig{VFov: 20, Aperture: 0.1})

	if merged.VFov != 20 || merged.Aperture != 0.1 {
		t.Errorf("Override fields not applied: %+v", merged)
	}
	if merged.Center != base.Center || merged.AspectRatio != base.AspectRatio {
		t.Errorf("Zero override fields should keep base values: %+v", merged)
	}
}

func TestCamera_LensRadius(t *testing.T) {
	for _, aperture := range []float64{0, 0.1, 0.5, 2} {
		config := pinholeConfig()
		config.Aperture = aperture

		camera, err := NewCamera(config)
		if err != nil {
			t.Fatalf("NewCamera(aperture %f): %v", aperture, err)
		}
		if camera.LensRadius() != aperture/2 {
			t.Errorf("Aperture %f: expected lens radius %f, got %f", aperture, aperture/2, camera.LensRadius())
		}
	}
}
