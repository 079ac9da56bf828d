package material

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Dielectric represents a transparent material like glass that can both reflect and refract
type Dielectric struct {
	RefractiveIndex float64 // Index of refraction (e.g., 1.5 for glass)
}

// NewDielectric creates a new dielectric material
func NewDielectric(refractiveIndex float64) *Dielectric {
	return &Dielectric{RefractiveIndex: refractiveIndex}
}

// Scatter implements the Material interface for dielectric scattering
func (d *Dielectric) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	// Dielectrics always attenuate by 1.0 (no color absorption for clear glass)
	attenuation := core.NewVec3(1.0, 1.0, 1.0)

	unitDirection := rayIn.Direction.Normalize()

	// Hit normals point outward, so a positive dot product means the ray is leaving the medium
	normal := hit.Normal
	refractionRatio := 1.0 / d.RefractiveIndex
	cosTheta := -unitDirection.Dot(normal)
	if cosTheta < 0 {
		normal = normal.Negate()
		refractionRatio = d.RefractiveIndex
		cosTheta = -cosTheta
	}
	cosTheta = math.Min(cosTheta, 1.0)

	var direction core.Vec3
	refracted, canRefract := refractVector(unitDirection, normal, refractionRatio)
	if !canRefract || sampler.Get1D() < Reflectance(cosTheta, refractionRatio) {
		direction = reflect(unitDirection, normal)
	} else {
		direction = refracted
	}

	return ScatterResult{
		Scattered:   core.NewRay(hit.Point, direction),
		Attenuation: attenuation,
	}, true
}

// refractVector bends the unit vector uv through a surface with normal n facing against uv,
// using Snell's law. It returns false on total internal reflection.
func refractVector(uv, n core.Vec3, etaiOverEtat float64) (core.Vec3, bool) {
	dt := uv.Dot(n)
	discriminant := 1.0 - etaiOverEtat*etaiOverEtat*(1.0-dt*dt)
	if discriminant < 0 {
		return core.Vec3{}, false
	}
	return uv.Subtract(n.Multiply(dt)).Multiply(etaiOverEtat).Subtract(n.Multiply(math.Sqrt(discriminant))), true
}

// Reflectance calculates the Fresnel reflectance using Schlick's approximation
func Reflectance(cosine, refractionRatio float64) float64 {
	// R0 is the reflectance at normal incidence
	r0 := (1 - refractionRatio) / (1 + refractionRatio)
	r0 = r0 * r0
	return r0 + (1-r0)*math.Pow(1-cosine, 5)
}
