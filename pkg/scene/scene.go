package scene

import (
	"errors"
	"fmt"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Scene contains all the elements needed for rendering.
// It is built once and only read during rendering.
type Scene struct {
	Camera         *geometry.Camera
	CameraConfig   geometry.CameraConfig
	Shapes         []geometry.Shape // Objects in the scene, tested linearly
	TopColor       core.Vec3        // Background at the zenith
	BottomColor    core.Vec3        // Background at the horizon and below
	SamplingConfig SamplingConfig
}

// SamplingConfig contains the scene's recommended render settings
type SamplingConfig struct {
	Width           int // Image width
	Height          int // Image height
	SamplesPerPixel int // Number of rays per pixel
	MaxDepth        int // Maximum ray bounce depth
}

// Default background gradient: white at the horizon to sky blue overhead
var (
	DefaultTopColor    = core.NewVec3(0.5, 0.7, 1.0)
	DefaultBottomColor = core.NewVec3(1.0, 1.0, 1.0)
)

// NewScene creates an empty scene with the default sky and a camera built from config
func NewScene(config geometry.CameraConfig, sampling SamplingConfig) (*Scene, error) {
	camera, err := geometry.NewCamera(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create camera: %w", err)
	}

	return &Scene{
		Camera:         camera,
		CameraConfig:   config,
		Shapes:         make([]geometry.Shape, 0),
		TopColor:       DefaultTopColor,
		BottomColor:    DefaultBottomColor,
		SamplingConfig: sampling,
	}, nil
}

// AddSphere adds a sphere to the scene
func (s *Scene) AddSphere(center core.Vec3, radius float64, mat material.Material) error {
	sphere, err := geometry.NewSphere(center, radius, mat)
	if err != nil {
		return err
	}
	s.Shapes = append(s.Shapes, sphere)
	return nil
}

// Validate checks that the scene can be rendered
func (s *Scene) Validate() error {
	if s == nil {
		return fmt.Errorf("scene is nil: %w", core.ErrInvalidConfig)
	}
	if s.Camera == nil {
		return fmt.Errorf("scene has no camera: %w", core.ErrInvalidConfig)
	}
	if !s.TopColor.IsFinite() || !s.BottomColor.IsFinite() {
		return fmt.Errorf("scene background colors must be finite: %w", core.ErrInvalidConfig)
	}

	var errs []error
	for i, shape := range s.Shapes {
		if err := geometry.Validate(shape); err != nil {
			errs = append(errs, fmt.Errorf("shape %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

// GetCamera returns the scene camera, or nil for a nil scene
func (s *Scene) GetCamera() *geometry.Camera {
	if s == nil {
		return nil
	}
	return s.Camera
}

// GetShapes returns the scene's shapes
func (s *Scene) GetShapes() []geometry.Shape {
	if s == nil {
		return nil
	}
	return s.Shapes
}

// GetBackgroundColors returns the sky gradient colors
func (s *Scene) GetBackgroundColors() (topColor, bottomColor core.Vec3) {
	if s == nil {
		return DefaultTopColor, DefaultBottomColor
	}
	return s.TopColor, s.BottomColor
}

// sphereDef is a literal sphere used by the built-in scenes
type sphereDef struct {
	center   core.Vec3
	radius   float64
	material material.Material
}

func (s *Scene) addSpheres(defs ...sphereDef) error {
	for _, def := range defs {
		if err := s.AddSphere(def.center, def.radius, def.material); err != nil {
			return err
		}
	}
	return nil
}
