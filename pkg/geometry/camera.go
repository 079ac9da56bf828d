package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// CameraConfig contains all camera configuration parameters
type CameraConfig struct {
	Center        core.Vec3 // Camera position (look from)
	LookAt        core.Vec3 // Point the camera is looking at
	Up            core.Vec3 // Up direction (usually 0,1,0)
	VFov          float64   // Vertical field of view in degrees
	AspectRatio   float64   // Width / height
	Aperture      float64   // Lens aperture diameter, 0 = pinhole
	FocusDistance float64   // Distance to the focal plane, 0 = auto (distance to LookAt)
}

// MergeCameraConfig returns base with every non-zero field of override applied
func MergeCameraConfig(base, override CameraConfig) CameraConfig {
	result := base
	zero := core.Vec3{}

	if override.Center != zero {
		result.Center = override.Center
	}
	if override.LookAt != zero {
		result.LookAt = override.LookAt
	}
	if override.Up != zero {
		result.Up = override.Up
	}
	if override.VFov != 0 {
		result.VFov = override.VFov
	}
	if override.AspectRatio != 0 {
		result.AspectRatio = override.AspectRatio
	}
	if override.Aperture != 0 {
		result.Aperture = override.Aperture
	}
	if override.FocusDistance != 0 {
		result.FocusDistance = override.FocusDistance
	}

	return result
}

// Validate checks the camera configuration
func (c CameraConfig) Validate() error {
	if !c.Center.IsFinite() || !c.LookAt.IsFinite() || !c.Up.IsFinite() {
		return fmt.Errorf("camera vectors must be finite: %w", core.ErrInvalidConfig)
	}
	if !(c.VFov > 0 && c.VFov < 180) {
		return fmt.Errorf("camera vertical fov %g must be in (0, 180): %w", c.VFov, core.ErrInvalidConfig)
	}
	if !(c.AspectRatio > 0) || math.IsInf(c.AspectRatio, 0) {
		return fmt.Errorf("camera aspect ratio %g must be positive: %w", c.AspectRatio, core.ErrInvalidConfig)
	}
	if !(c.Aperture >= 0) || math.IsInf(c.Aperture, 0) {
		return fmt.Errorf("camera aperture %g must be non-negative: %w", c.Aperture, core.ErrInvalidConfig)
	}
	if !(c.FocusDistance >= 0) || math.IsInf(c.FocusDistance, 0) {
		return fmt.Errorf("camera focus distance %g must be positive (or 0 for auto): %w", c.FocusDistance, core.ErrInvalidConfig)
	}

	view := c.Center.Subtract(c.LookAt)
	if view.LengthSquared() == 0 {
		return fmt.Errorf("camera center and look-at point coincide: %w", core.ErrInvalidConfig)
	}
	if c.Up.Cross(view).LengthSquared() == 0 {
		return fmt.Errorf("camera up vector %v is parallel to the view direction: %w", c.Up, core.ErrInvalidConfig)
	}
	return nil
}

// Camera is a thin-lens camera. It is immutable after construction and safe for concurrent use.
type Camera struct {
	origin          core.Vec3
	lowerLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
	u, v, w         core.Vec3 // Orthonormal basis, w points backward from the view direction
	lensRadius      float64
}

// NewCamera creates a camera from the config. The image plane sits at the focus
// distance, so only geometry on that plane is sharp when the aperture is open.
func NewCamera(config CameraConfig) (*Camera, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	focusDistance := config.FocusDistance
	if focusDistance == 0 {
		focusDistance = config.Center.Subtract(config.LookAt).Length()
	}

	theta := config.VFov * math.Pi / 180.0
	halfHeight := math.Tan(theta / 2)
	halfWidth := config.AspectRatio * halfHeight

	w := config.Center.Subtract(config.LookAt).Normalize()
	u := config.Up.Cross(w).Normalize()
	v := w.Cross(u)

	origin := config.Center
	lowerLeftCorner := origin.
		Subtract(u.Multiply(halfWidth * focusDistance)).
		Subtract(v.Multiply(halfHeight * focusDistance)).
		Subtract(w.Multiply(focusDistance))

	return &Camera{
		origin:          origin,
		lowerLeftCorner: lowerLeftCorner,
		horizontal:      u.Multiply(2 * halfWidth * focusDistance),
		vertical:        v.Multiply(2 * halfHeight * focusDistance),
		u:               u,
		v:               v,
		w:               w,
		lensRadius:      config.Aperture / 2,
	}, nil
}

// GetRay generates a ray for image plane coordinates (s, t) where 0 <= s,t <= 1.
// (0,0) is the lower left corner. The ray starts at a random point on the lens.
func (c *Camera) GetRay(s, t float64, sampler core.Sampler) core.Ray {
	rd := core.RandomInUnitDisk(sampler).Multiply(c.lensRadius)
	offset := c.u.Multiply(rd.X).Add(c.v.Multiply(rd.Y))

	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t)).
		Subtract(c.origin).
		Subtract(offset)

	return core.NewRay(c.origin.Add(offset), direction)
}

// Origin returns the center of the lens
func (c *Camera) Origin() core.Vec3 {
	return c.origin
}

// Forward returns the unit view direction
func (c *Camera) Forward() core.Vec3 {
	return c.w.Negate()
}

// LensRadius returns half the aperture
func (c *Camera) LensRadius() float64 {
	return c.lensRadius
}
