package core

import (
	"math"
	"math/rand"
	"testing"
)

const tolerance = 1e-9

func randomVec(random *rand.Rand) Vec3 {
	return NewVec3(random.Float64()*20-10, random.Float64()*20-10, random.Float64()*20-10)
}

func TestVec3_Arithmetic(t *testing.T) {
	a := NewVec3(1, 2, 3)
	b := NewVec3(4, -5, 6)

	tests := []struct {
		name     string
		result   Vec3
		expected Vec3
	}{
		{"Add", a.Add(b), NewVec3(5, -3, 9)},
		{"Subtract", a.Subtract(b), NewVec3(-3, 7, -3)},
		{"Multiply", a.Multiply(2), NewVec3(2, 4, 6)},
		{"MultiplyVec", a.MultiplyVec(b), NewVec3(4, -10, 18)},
		{"Divide", a.Divide(2), NewVec3(0.5, 1, 1.5)},
		{"DivideVec", b.DivideVec(a), NewVec3(4, -2.5, 2)},
		{"Negate", a.Negate(), NewVec3(-1, -2, -3)},
		{"Cross", NewVec3(1, 0, 0).Cross(NewVec3(0, 1, 0)), NewVec3(0, 0, 1)},
		{"Sqrt", NewVec3(0.25, 4, 0).Sqrt(), NewVec3(0.5, 2, 0)},
		{"Clamp", NewVec3(-1, 0.5, 3).Clamp(0, 1), NewVec3(0, 0.5, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.result.ApproxEquals(tt.expected, tolerance) {
				t.Errorf("Expected %v, got %v", tt.expected, tt.result)
			}
		})
	}

	if got := a.Dot(b); got != 12 {
		t.Errorf("Dot: expected 12, got %f", got)
	}
	if got := NewVec3(3, 4, 0).Length(); got != 5 {
		t.Errorf("Length: expected 5, got %f", got)
	}
	if got := NewVec3(3, 4, 0).LengthSquared(); got != 25 {
		t.Errorf("LengthSquared: expected 25, got %f", got)
	}
}

func TestVec3_AlgebraicProperties(t *testing.T) {
	random := rand.New(rand.NewSource(7))

	for i := 0; i < 1000; i++ {
		a := randomVec(random)
		b := randomVec(random)

		if math.Abs(a.Dot(b)-b.Dot(a)) > tolerance {
			t.Fatalf("dot not symmetric for %v, %v", a, b)
		}
		if !a.Cross(b).ApproxEquals(b.Cross(a).Negate(), tolerance) {
			t.Fatalf("cross not antisymmetric for %v, %v", a, b)
		}
		if !a.Add(b).Subtract(b).ApproxEquals(a, 1e-12) {
			t.Fatalf("(a+b)-b != a for %v, %v", a, b)
		}
		if a.Length() > 0 && math.Abs(a.Normalize().Length()-1) > tolerance {
			t.Fatalf("unit(%v) has length %f", a, a.Normalize().Length())
		}
		// Cross product is perpendicular to both operands
		c := a.Cross(b)
		if math.Abs(c.Dot(a)) > 1e-9*c.Length()*a.Length()+1e-9 {
			t.Fatalf("cross(%v, %v) not perpendicular to a", a, b)
		}
	}
}

func TestVec3_NormalizeZero(t *testing.T) {
	zero := NewVec3(0, 0, 0)
	if got := zero.Normalize(); !got.Equals(zero) {
		t.Errorf("Expected zero vector, got %v", got)
	}
}

func TestVec3_IsFinite(t *testing.T) {
	if !NewVec3(1, 2, 3).IsFinite() {
		t.Error("Expected finite vector")
	}
	if NewVec3(math.NaN(), 0, 0).IsFinite() {
		t.Error("NaN component should not be finite")
	}
	if NewVec3(0, math.Inf(1), 0).IsFinite() {
		t.Error("Inf component should not be finite")
	}
}

func TestRay_At(t *testing.T) {
	ray := NewRay(NewVec3(1, 1, 1), NewVec3(0, 2, 0))

	tests := []struct {
		t        float64
		expected Vec3
	}{
		{0, NewVec3(1, 1, 1)},
		{0.5, NewVec3(1, 2, 1)},
		{-1, NewVec3(1, -1, 1)},
	}

	for _, tt := range tests {
		if got := ray.At(tt.t); !got.ApproxEquals(tt.expected, tolerance) {
			t.Errorf("At(%f): expected %v, got %v", tt.t, tt.expected, got)
		}
	}
}
