package geometry

import (
	"fmt"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Shape is the closed set of surfaces that can be hit by rays. *Sphere is the only member.
type Shape interface {
	shape()
}

func (*Sphere) shape() {}

// Hit dispatches an intersection test to the concrete shape.
// Only intersections with t strictly inside (tMin, tMax) are reported.
func Hit(s Shape, ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	switch s := s.(type) {
	case *Sphere:
		return s.Hit(ray, tMin, tMax)
	default:
		panic(fmt.Sprintf("geometry: unknown shape type %T", s))
	}
}

// Validate checks shape parameters and the shape's material
func Validate(s Shape) error {
	switch s := s.(type) {
	case *Sphere:
		if s == nil {
			return fmt.Errorf("sphere is nil: %w", core.ErrInvalidConfig)
		}
		return s.Validate()
	default:
		return fmt.Errorf("unknown shape type %T: %w", s, core.ErrInvalidConfig)
	}
}

// HitList tests the ray against every shape and returns the nearest hit.
// The search window shrinks to the closest t found so far, so only the
// nearest visible surface along the ray is reported.
func HitList(shapes []Shape, ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	var closestHit *material.HitRecord
	closestSoFar := tMax

	for _, shape := range shapes {
		if hit, isHit := Hit(shape, ray, tMin, closestSoFar); isHit {
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, closestHit != nil
}
