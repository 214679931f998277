// Package telemetry aggregates tracker and food events into windowed stats
// and writes them, with tick timings, to CSV.
package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Population at window end
	Creatures  int `csv:"creatures"`
	FoodsAlive int `csv:"foods_alive"`

	// Food events during window
	FoodsSpawned int `csv:"foods_spawned"`
	FoodsEaten   int `csv:"foods_eaten"`
	FoodsExpired int `csv:"foods_expired"`
	FoodLocks    int `csv:"food_locks"`
	FoodAbandons int `csv:"food_abandons"`

	// Steering events during window
	Shocks    int `csv:"shocks"`
	Retargets int `csv:"retargets"`

	// Fraction of food locks that ended in a meal
	LockSuccessRate float64 `csv:"lock_success_rate"`

	// Speed distribution (sampled at window end)
	SpeedMean float64 `csv:"speed_mean"`
	SpeedStd  float64 `csv:"speed_std"`
	SpeedP10  float64 `csv:"speed_p10"`
	SpeedP50  float64 `csv:"speed_p50"`
	SpeedP90  float64 `csv:"speed_p90"`
}

// SpeedStats summarizes a set of creature speeds.
type SpeedStats struct {
	Mean, Std     float64
	P10, P50, P90 float64
}

// ComputeSpeedStats calculates mean, standard deviation and percentiles.
// Returns zeros for an empty slice.
func ComputeSpeedStats(values []float64) SpeedStats {
	if len(values) == 0 {
		return SpeedStats{}
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mean, std := stat.PopMeanStdDev(sorted, nil)
	return SpeedStats{
		Mean: mean,
		Std:  std,
		P10:  stat.Quantile(0.10, stat.LinInterp, sorted, nil),
		P50:  stat.Quantile(0.50, stat.LinInterp, sorted, nil),
		P90:  stat.Quantile(0.90, stat.LinInterp, sorted, nil),
	}
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("creatures", s.Creatures),
		slog.Int("foods_alive", s.FoodsAlive),
		slog.Int("foods_spawned", s.FoodsSpawned),
		slog.Int("foods_eaten", s.FoodsEaten),
		slog.Int("foods_expired", s.FoodsExpired),
		slog.Int("food_locks", s.FoodLocks),
		slog.Int("food_abandons", s.FoodAbandons),
		slog.Int("shocks", s.Shocks),
		slog.Int("retargets", s.Retargets),
		slog.Float64("lock_success_rate", s.LockSuccessRate),
		slog.Float64("speed_mean", s.SpeedMean),
		slog.Float64("speed_std", s.SpeedStd),
		slog.Float64("speed_p10", s.SpeedP10),
		slog.Float64("speed_p50", s.SpeedP50),
		slog.Float64("speed_p90", s.SpeedP90),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}
