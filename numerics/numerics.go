// Package numerics provides the small vector and angle helpers used by the
// steering controller and the scene.
package numerics

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r2"
)

// Dist returns the Euclidean distance between two points.
func Dist(a, b r2.Vec) float64 {
	return r2.Norm(r2.Sub(a, b))
}

// Normalize returns the unit vector of v. The zero vector stays zero.
func Normalize(v r2.Vec) r2.Vec {
	if v.X == 0 && v.Y == 0 {
		return v
	}
	return r2.Unit(v)
}

// LerpAngle moves angle a toward b by fraction t.
// The difference is taken raw, so crossing ±Pi takes the long way round.
func LerpAngle(a, b, t float64) float64 {
	return a + (b-a)*t
}

// ToRadians converts degrees to radians.
func ToRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

// ToDegrees converts radians to degrees.
func ToDegrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

// FromAngle returns the unit vector pointing along angle.
func FromAngle(angle float64) r2.Vec {
	return r2.Vec{X: math.Cos(angle), Y: math.Sin(angle)}
}

// Angle returns the heading angle of v.
func Angle(v r2.Vec) float64 {
	return math.Atan2(v.Y, v.X)
}

// Source is the randomness used by the simulation. *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

// NewSource returns a seeded source.
func NewSource(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// Next returns a uniform value in [0, n).
func Next(src Source, n float64) float64 {
	return src.Float64() * n
}

// NextDouble returns a uniform value in [0, 1).
func NextDouble(src Source) float64 {
	return src.Float64()
}
