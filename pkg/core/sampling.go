package core

import (
	"math/rand"
	randv2 "math/rand/v2"
)

// Sampler provides uniform random numbers in [0, 1) for rendering algorithms.
// Can be swapped out for deterministic testing.
type Sampler interface {
	Get1D() float64
	Get2D() Vec2
	Get3D() Vec3
}

// Float64Source is satisfied by *rand.Rand from both math/rand and math/rand/v2
type Float64Source interface {
	Float64() float64
}

// RandomSampler wraps a standard Go random generator.
// It is not safe for concurrent use; give each worker its own.
type RandomSampler struct {
	random Float64Source
}

// NewRandomSampler creates a sampler from a Go random generator
func NewRandomSampler(random Float64Source) *RandomSampler {
	return &RandomSampler{random: random}
}

// NewSeededSampler creates a sampler backed by a fresh generator with the given seed
func NewSeededSampler(seed int64) *RandomSampler {
	return NewRandomSampler(rand.New(rand.NewSource(seed)))
}

// NewStreamSampler creates a PCG-backed sampler for one independent stream of a seeded render,
// e.g. one per pixel. The same (seed, stream) pair always yields the same sequence.
func NewStreamSampler(seed int64, stream uint64) *RandomSampler {
	return NewRandomSampler(randv2.New(randv2.NewPCG(uint64(seed), stream)))
}

// Get1D returns a random float64 in [0, 1)
func (r *RandomSampler) Get1D() float64 {
	return r.random.Float64()
}

// Get2D returns two random float64 values in [0, 1)
func (r *RandomSampler) Get2D() Vec2 {
	return NewVec2(r.random.Float64(), r.random.Float64())
}

// Get3D returns three random float64 values in [0, 1)
func (r *RandomSampler) Get3D() Vec3 {
	return NewVec3(r.random.Float64(), r.random.Float64(), r.random.Float64())
}

// RandomInUnitDisk generates a random point in the unit disk on the XY plane (for depth of field).
// Points are drawn in [-1,1]² until one lands strictly inside the disk.
func RandomInUnitDisk(sampler Sampler) Vec3 {
	for {
		s := sampler.Get2D()
		p := NewVec3(2*s.X-1, 2*s.Y-1, 0)
		if p.LengthSquared() < 1.0 {
			return p
		}
	}
}

// RandomInUnitSphere generates a random point strictly inside the unit sphere
// by rejection sampling the [-1,1]³ cube.
func RandomInUnitSphere(sampler Sampler) Vec3 {
	for {
		s := sampler.Get3D()
		p := NewVec3(2*s.X-1, 2*s.Y-1, 2*s.Z-1)
		if p.LengthSquared() < 1.0 {
			return p
		}
	}
}

// FixedSampler replays a fixed sequence of values, wrapping around at the end.
// Useful for deterministic tests of sampling code.
type FixedSampler struct {
	values []float64
	next   int
}

// NewFixedSampler creates a sampler that returns values in order, cycling
func NewFixedSampler(values ...float64) *FixedSampler {
	if len(values) == 0 {
		values = []float64{0.5}
	}
	return &FixedSampler{values: values}
}

// Get1D returns the next value in the sequence
func (f *FixedSampler) Get1D() float64 {
	v := f.values[f.next%len(f.values)]
	f.next++
	return v
}

// Get2D returns the next two values in the sequence
func (f *FixedSampler) Get2D() Vec2 {
	x := f.Get1D()
	return NewVec2(x, f.Get1D())
}

// Get3D returns the next three values in the sequence
func (f *FixedSampler) Get3D() Vec3 {
	x := f.Get1D()
	y := f.Get1D()
	return NewVec3(x, y, f.Get1D())
}

// Draws returns how many values have been consumed
func (f *FixedSampler) Draws() int {
	return f.next
}
