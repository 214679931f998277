package main

import (
	"fmt"
	"math"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/aquarium/config"
	"github.com/pthm-cable/aquarium/game"
	"github.com/pthm-cable/aquarium/telemetry"
)

// FitnessEvaluator runs headless aquariums and scores how well creatures feed.
type FitnessEvaluator struct {
	params      *ParamVector
	maxTicks    int32
	seeds       []int64
	baseConfig  *config.Config
	statsWindow float64

	mu          sync.Mutex
	lastQuality float64 // quality from most recent Evaluate call
	lastMeals   float64
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int32, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		maxTicks:    maxTicks,
		seeds:       seeds,
		baseConfig:  baseCfg,
		statsWindow: 10.0,
	}
}

// LastQuality returns the quality score from the most recent evaluation.
func (fe *FitnessEvaluator) LastQuality() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastQuality
}

// LastMeals returns the meal rate from the most recent evaluation.
func (fe *FitnessEvaluator) LastMeals() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastMeals
}

// seedResult holds the result from one seed evaluation.
type seedResult struct {
	meals   float64
	quality float64
	err     error
}

// Evaluate computes fitness for a raw parameter vector (lower = better).
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	results := make([]seedResult, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			windows, err := fe.runSimulation(x, s)
			results[idx] = seedResult{
				meals:   mealRate(windows),
				quality: computeQuality(windows),
				err:     err,
			}
		}(i, seed)
	}
	wg.Wait()

	var totalMeals, totalQuality float64
	for _, r := range results {
		if r.err != nil {
			// A run that cannot start scores worst.
			return math.Inf(1)
		}
		totalMeals += r.meals
		totalQuality += r.quality
	}

	n := float64(len(fe.seeds))
	meals := totalMeals / n
	quality := totalQuality / n

	fe.mu.Lock()
	fe.lastQuality = quality
	fe.lastMeals = meals
	fe.mu.Unlock()

	return computeFitness(meals, quality)
}

// runSimulation executes a single headless run and returns its windows.
func (fe *FitnessEvaluator) runSimulation(x []float64, seed int64) ([]telemetry.WindowStats, error) {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)

	var windows []telemetry.WindowStats
	g, err := game.NewGameWithOptions(game.Options{
		Seed:           seed,
		Headless:       true,
		StatsWindowSec: fe.statsWindow,
		StepsPerUpdate: 1,
		Config:         cfg,
		StatsCallback: func(stats telemetry.WindowStats) {
			windows = append(windows, stats)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("seed %d: %w", seed, err)
	}
	defer g.Unload()

	for g.Tick() < fe.maxTicks {
		g.UpdateHeadless()
	}
	return windows, nil
}

// copyConfig copies the base config so runs can mutate the tracker section.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	return &cfg
}

// computeFitness: -(meals × (1 + 0.2 × quality)).
// The meal rate dominates; quality separates configs that feed equally well.
func computeFitness(meals, quality float64) float64 {
	return -(meals * (1.0 + 0.2*quality))
}

// Quality component weights.
const (
	qualityWeightLock      = 0.5
	qualityWeightFreshness = 0.3
	qualityWeightSteady    = 0.2

	qualityWarmupWindows = 1 // skip first N windows (warmup)
)

// mealRate is foods eaten per creature per simulated minute, past warmup.
func mealRate(windows []telemetry.WindowStats) float64 {
	if len(windows) <= qualityWarmupWindows {
		return 0
	}
	valid := windows[qualityWarmupWindows:]

	var eaten int
	var creatures float64
	for _, w := range valid {
		eaten += w.FoodsEaten
		creatures += float64(w.Creatures)
	}
	span := valid[len(valid)-1].SimTimeSec - windows[qualityWarmupWindows-1].SimTimeSec
	if creatures == 0 || span <= 0 {
		return 0
	}
	avgCreatures := creatures / float64(len(valid))
	return float64(eaten) / avgCreatures / (span / 60)
}

// computeQuality scores feeding behaviour in [0, 1]: locks that end in a
// meal, food eaten before it dissolves, and a steady average speed.
func computeQuality(windows []telemetry.WindowStats) float64 {
	if len(windows) <= qualityWarmupWindows {
		return 0
	}
	valid := windows[qualityWarmupWindows:]

	var locks, lockWeights []float64
	var eaten, expired int
	speeds := make([]float64, 0, len(valid))
	for _, w := range valid {
		if w.FoodLocks > 0 {
			locks = append(locks, w.LockSuccessRate)
			lockWeights = append(lockWeights, float64(w.FoodLocks))
		}
		eaten += w.FoodsEaten
		expired += w.FoodsExpired
		speeds = append(speeds, w.SpeedMean)
	}

	lockScore := 0.0
	if len(locks) > 0 {
		lockScore = stat.Mean(locks, lockWeights)
	}

	freshScore := 0.0
	if eaten+expired > 0 {
		freshScore = float64(eaten) / float64(eaten+expired)
	}

	steadyScore := 0.0
	if len(speeds) >= 2 {
		mean, std := stat.MeanStdDev(speeds, nil)
		if mean > 0 {
			cv := std / mean
			steadyScore = math.Exp(-cv * cv)
		}
	}

	quality := qualityWeightLock*lockScore +
		qualityWeightFreshness*freshScore +
		qualityWeightSteady*steadyScore

	return min(max(quality, 0), 1)
}
