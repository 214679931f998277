package telemetry

// Collector accumulates tracker and food events within time windows and
// produces WindowStats. Windows are measured in simulation seconds since
// windowed runs step with a variable dt.
type Collector struct {
	windowDurationSec float64

	// Current window tracking
	windowStartTick int32
	windowStartTime float64

	// Event counters for current window
	foodsSpawned int
	foodsEaten   int
	foodsExpired int
	foodLocks    int
	foodAbandons int
	shocks       int
	retargets    int
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
func NewCollector(windowDurationSec float64) *Collector {
	if windowDurationSec <= 0 {
		windowDurationSec = 1
	}
	return &Collector{windowDurationSec: windowDurationSec}
}

// RecordFoodSpawned records a food entering the tank.
func (c *Collector) RecordFoodSpawned() { c.foodsSpawned++ }

// RecordFoodEaten records a food consumed by a creature.
func (c *Collector) RecordFoodEaten() { c.foodsEaten++ }

// RecordFoodExpired records a food dissolving before anyone ate it.
func (c *Collector) RecordFoodExpired() { c.foodsExpired++ }

// RecordFoodLock records a creature locking onto a food.
func (c *Collector) RecordFoodLock() { c.foodLocks++ }

// RecordFoodAbandon records a food approach ending without a meal.
func (c *Collector) RecordFoodAbandon() { c.foodAbandons++ }

// RecordShock records a creature being startled.
func (c *Collector) RecordShock() { c.shocks++ }

// RecordRetarget records a new wander target.
func (c *Collector) RecordRetarget() { c.retargets++ }

// ShouldFlush returns true if enough simulation time has passed to flush the window.
func (c *Collector) ShouldFlush(simTime float64) bool {
	return simTime-c.windowStartTime >= c.windowDurationSec
}

// WindowDurationSec returns the configured window length.
func (c *Collector) WindowDurationSec() float64 {
	return c.windowDurationSec
}

// Flush produces a WindowStats and resets counters for the next window.
// The caller provides the current tick and time, the population at window
// end and the current creature speeds for the distribution columns.
func (c *Collector) Flush(currentTick int32, simTime float64, creatures, foodsAlive int, speeds []float64) WindowStats {
	var lockRate float64
	if c.foodLocks > 0 {
		lockRate = float64(c.foodsEaten) / float64(c.foodLocks)
		if lockRate > 1 {
			// Locks from the previous window can finish in this one.
			lockRate = 1
		}
	}

	speed := ComputeSpeedStats(speeds)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      simTime,

		Creatures:  creatures,
		FoodsAlive: foodsAlive,

		FoodsSpawned: c.foodsSpawned,
		FoodsEaten:   c.foodsEaten,
		FoodsExpired: c.foodsExpired,
		FoodLocks:    c.foodLocks,
		FoodAbandons: c.foodAbandons,

		Shocks:    c.shocks,
		Retargets: c.retargets,

		LockSuccessRate: lockRate,

		SpeedMean: speed.Mean,
		SpeedStd:  speed.Std,
		SpeedP10:  speed.P10,
		SpeedP50:  speed.P50,
		SpeedP90:  speed.P90,
	}

	c.reset(currentTick, simTime)
	return stats
}

func (c *Collector) reset(tick int32, simTime float64) {
	*c = Collector{
		windowDurationSec: c.windowDurationSec,
		windowStartTick:   tick,
		windowStartTime:   simTime,
	}
}
