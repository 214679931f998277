package steering

import (
	"math"
	"time"

	"github.com/pthm-cable/aquarium/numerics"
)

// Distances at which a goal counts as reached.
const (
	ArrivalRadius     = 20.0 // wander target and flee point
	FoodReachRadius   = 10.0 // food is eaten
	FoodSpeedFactor   = 1.8
	ShockSpeedFactor  = 5.0
	WanderSpeedSpread = 0.5 // wander speed is bias * [1, 1+spread)
)

// Options tunes a single Tracker. Every field is independent per instance.
type Options struct {
	SpeedBias       float64 // base speed in units per second
	SmoothCurveRate float64 // fraction of the heading error closed per tick, in (0, 1]

	// SmoothingReferenceFPS converts SmoothCurveRate to a per-second rate.
	// Zero keeps the rate applied once per tick regardless of frame time.
	SmoothingReferenceFPS float64

	ShockThresholdDistance float64 // presses further away are ignored
	ShockAvoidDistance     float64 // how far to flee

	FoodTriggerDistance  float64
	FoodViewableAngleDeg float64 // full field of view cone

	// SmoothCurveTriggerDistance switches to wide arcing turns when the target
	// is further away than this. +Inf disables arcing.
	SmoothCurveTriggerDistance float64

	NoiseSize   float64 // jitter magnitude relative to speed
	AutoTarget  bool
	FoodEnabled bool
	Debug       bool

	Rand     numerics.Source
	Listener Listener
}

// DefaultOptions returns the stock tuning.
func DefaultOptions() Options {
	return Options{
		SpeedBias:                  125,
		SmoothCurveRate:            0.01,
		ShockThresholdDistance:     80,
		ShockAvoidDistance:         80,
		FoodTriggerDistance:        120,
		FoodViewableAngleDeg:       160,
		SmoothCurveTriggerDistance: math.Inf(1),
		NoiseSize:                  1,
		AutoTarget:                 true,
		FoodEnabled:                true,
	}
}

// sanitized fills invalid values from the defaults so speed stays positive.
func (o Options) sanitized() Options {
	def := DefaultOptions()
	if o.SpeedBias <= 0 || math.IsNaN(o.SpeedBias) {
		o.SpeedBias = def.SpeedBias
	}
	if o.SmoothCurveRate <= 0 || o.SmoothCurveRate > 1 || math.IsNaN(o.SmoothCurveRate) {
		o.SmoothCurveRate = def.SmoothCurveRate
	}
	if o.SmoothingReferenceFPS < 0 {
		o.SmoothingReferenceFPS = 0
	}
	if o.NoiseSize < 0 {
		o.NoiseSize = 0
	}
	if o.Rand == nil {
		o.Rand = numerics.NewSource(time.Now().UnixNano())
	}
	if o.Listener == nil {
		o.Listener = nopListener{}
	}
	return o
}
