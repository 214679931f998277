// Package main provides CMA-ES tuning for creature steering parameters.
package main

import (
	"github.com/pthm-cable/aquarium/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the tracker tuning parameters. Shock settings are
// left out: nothing presses during a headless run.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "speed_bias", Path: "tracker.speed_bias", Min: 40, Max: 300, Default: 125},
			{Name: "smooth_curve_rate", Path: "tracker.smooth_curve_rate", Min: 0.002, Max: 0.2, Default: 0.01},
			{Name: "food_trigger_distance", Path: "tracker.food_trigger_distance", Min: 20, Max: 400, Default: 120},
			{Name: "food_viewable_angle_deg", Path: "tracker.food_viewable_angle_deg", Min: 30, Max: 360, Default: 160},
			{Name: "noise_size", Path: "tracker.noise_size", Min: 0, Max: 2, Default: 1},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = min(max(v[i], spec.Min), spec.Max)
	}
	return clamped
}

// ApplyToConfig writes clamped values into the tracker section.
// Order must match Specs order.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	clamped := pv.Clamp(values)
	cfg.Tracker.SpeedBias = clamped[0]
	cfg.Tracker.SmoothCurveRate = clamped[1]
	cfg.Tracker.FoodTriggerDistance = clamped[2]
	cfg.Tracker.FoodViewableAngleDeg = clamped[3]
	cfg.Tracker.NoiseSize = clamped[4]
}

// ExtractFromConfig extracts current parameter values from a Config struct.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	return []float64{
		cfg.Tracker.SpeedBias,
		cfg.Tracker.SmoothCurveRate,
		cfg.Tracker.FoodTriggerDistance,
		cfg.Tracker.FoodViewableAngleDeg,
		cfg.Tracker.NoiseSize,
	}
}
