package numerics

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

type constSource float64

func (c constSource) Float64() float64 { return float64(c) }

func TestDist(t *testing.T) {
	tests := []struct {
		name string
		a, b r2.Vec
		want float64
	}{
		{"same point", r2.Vec{X: 3, Y: 4}, r2.Vec{X: 3, Y: 4}, 0},
		{"3-4-5", r2.Vec{}, r2.Vec{X: 3, Y: 4}, 5},
		{"negative", r2.Vec{X: -1, Y: -1}, r2.Vec{X: 2, Y: 3}, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Dist(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Dist(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	v := Normalize(r2.Vec{X: 10, Y: 0})
	if v.X != 1 || v.Y != 0 {
		t.Errorf("expected (1, 0), got %v", v)
	}

	v = Normalize(r2.Vec{X: 3, Y: 4})
	if math.Abs(r2.Norm(v)-1) > 1e-9 {
		t.Errorf("expected unit length, got %v", r2.Norm(v))
	}

	zero := Normalize(r2.Vec{})
	if zero.X != 0 || zero.Y != 0 {
		t.Errorf("zero vector should stay zero, got %v", zero)
	}
}

func TestLerpAngle(t *testing.T) {
	if got := LerpAngle(0, 1, 0.5); got != 0.5 {
		t.Errorf("LerpAngle(0, 1, 0.5) = %v, want 0.5", got)
	}
	if got := LerpAngle(0.3, 2, 1); got != 2 {
		t.Errorf("full rate should snap, got %v", got)
	}

	// No wraparound correction: from just below Pi to just above -Pi
	// the interpolation sweeps through zero.
	got := LerpAngle(3.1, -3.1, 0.5)
	if math.Abs(got) > 1e-9 {
		t.Errorf("expected raw midpoint 0, got %v", got)
	}
}

func TestToRadians(t *testing.T) {
	if got := ToRadians(180); math.Abs(got-math.Pi) > 1e-12 {
		t.Errorf("ToRadians(180) = %v", got)
	}
	if got := ToDegrees(ToRadians(80)); math.Abs(got-80) > 1e-9 {
		t.Errorf("roundtrip = %v", got)
	}
}

func TestFromAngle(t *testing.T) {
	v := FromAngle(math.Pi / 2)
	if math.Abs(v.X) > 1e-12 || math.Abs(v.Y-1) > 1e-12 {
		t.Errorf("FromAngle(Pi/2) = %v", v)
	}
	if got := Angle(v); math.Abs(got-math.Pi/2) > 1e-12 {
		t.Errorf("Angle = %v", got)
	}
}

func TestNext(t *testing.T) {
	src := constSource(0.25)
	if got := Next(src, 800); got != 200 {
		t.Errorf("Next = %v, want 200", got)
	}
	if got := NextDouble(src); got != 0.25 {
		t.Errorf("NextDouble = %v, want 0.25", got)
	}

	seeded := NewSource(7)
	for i := 0; i < 100; i++ {
		v := Next(seeded, 10)
		if v < 0 || v >= 10 {
			t.Fatalf("Next out of range: %v", v)
		}
	}
}
