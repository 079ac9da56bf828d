package material

import (
	"fmt"
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Material is the closed set of surface materials: *Lambertian, *Metal and *Dielectric.
// New materials are added by extending the switches in Scatter and Validate.
type Material interface {
	material()
}

func (*Lambertian) material() {}
func (*Metal) material()      {}
func (*Dielectric) material() {}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Scattered   core.Ray  // The continuation ray
	Attenuation core.Vec3 // Color attenuation applied to the radiance carried back along Scattered
}

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	Point    core.Vec3 // Point of intersection
	Normal   core.Vec3 // Unit surface normal, always pointing out of the surface
	T        float64   // Parameter t along the ray
	Material Material  // Material of the hit object
}

// Scatter dispatches to the hit material. It returns false when the ray is absorbed.
func Scatter(m Material, rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	switch m := m.(type) {
	case *Lambertian:
		return m.Scatter(rayIn, hit, sampler)
	case *Metal:
		return m.Scatter(rayIn, hit, sampler)
	case *Dielectric:
		return m.Scatter(rayIn, hit, sampler)
	default:
		panic(fmt.Sprintf("material: unknown material type %T", m))
	}
}

// Validate checks material parameters, returning an error wrapping core.ErrInvalidConfig
func Validate(m Material) error {
	switch m := m.(type) {
	case nil:
		return fmt.Errorf("material is nil: %w", core.ErrInvalidConfig)
	case *Lambertian:
		if m == nil {
			return fmt.Errorf("lambertian is nil: %w", core.ErrInvalidConfig)
		}
		return validateAlbedo("lambertian", m.Albedo)
	case *Metal:
		if m == nil {
			return fmt.Errorf("metal is nil: %w", core.ErrInvalidConfig)
		}
		if !(m.Fuzz >= 0 && m.Fuzz <= 1) {
			return fmt.Errorf("metal fuzz %g outside [0,1]: %w", m.Fuzz, core.ErrInvalidConfig)
		}
		return validateAlbedo("metal", m.Albedo)
	case *Dielectric:
		if m == nil {
			return fmt.Errorf("dielectric is nil: %w", core.ErrInvalidConfig)
		}
		if !(m.RefractiveIndex > 0) || math.IsInf(m.RefractiveIndex, 0) {
			return fmt.Errorf("dielectric refractive index %g must be positive and finite: %w", m.RefractiveIndex, core.ErrInvalidConfig)
		}
		return nil
	default:
		return fmt.Errorf("unknown material type %T: %w", m, core.ErrInvalidConfig)
	}
}

func validateAlbedo(name string, albedo core.Vec3) error {
	if !albedo.IsFinite() || albedo != albedo.Clamp(0, 1) {
		return fmt.Errorf("%s albedo %v outside [0,1]: %w", name, albedo, core.ErrInvalidConfig)
	}
	return nil
}

// reflect calculates the reflection of a vector v off a surface with normal n
func reflect(v, n core.Vec3) core.Vec3 {
	// r = v - 2*dot(v,n)*n
	return v.Subtract(n.Multiply(2 * v.Dot(n)))
}
