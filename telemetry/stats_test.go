package telemetry

import (
	"math"
	"testing"
)

func TestComputeSpeedStats(t *testing.T) {
	values := []float64{100, 20, 30, 40, 50, 60, 70, 80, 90, 10}
	s := ComputeSpeedStats(values)

	if math.Abs(s.Mean-55) > 0.001 {
		t.Errorf("mean = %v, want 55", s.Mean)
	}
	// Population std of 10..100 step 10
	if math.Abs(s.Std-28.7228) > 0.001 {
		t.Errorf("std = %v, want ~28.72", s.Std)
	}
	if s.P10 > s.P50 || s.P50 > s.P90 {
		t.Errorf("percentiles out of order: %v %v %v", s.P10, s.P50, s.P90)
	}
	if s.P10 < 10 || s.P90 > 100 {
		t.Errorf("percentiles outside data range: %v %v", s.P10, s.P90)
	}

	// Input must not be reordered
	if values[0] != 100 {
		t.Error("ComputeSpeedStats sorted the caller's slice")
	}
}

func TestComputeSpeedStatsEmpty(t *testing.T) {
	if s := ComputeSpeedStats(nil); s != (SpeedStats{}) {
		t.Errorf("empty input = %+v, want zeros", s)
	}
}

func TestCollectorFlush(t *testing.T) {
	c := NewCollector(10)

	if c.ShouldFlush(9.9) {
		t.Error("flushed before window elapsed")
	}
	if !c.ShouldFlush(10) {
		t.Error("expected flush at window end")
	}

	c.RecordFoodSpawned()
	c.RecordFoodSpawned()
	c.RecordFoodLock()
	c.RecordFoodLock()
	c.RecordFoodEaten()
	c.RecordFoodAbandon()
	c.RecordShock()
	c.RecordRetarget()
	c.RecordRetarget()

	s := c.Flush(600, 10, 5, 1, []float64{125, 125})

	if s.FoodsSpawned != 2 || s.FoodsEaten != 1 || s.FoodLocks != 2 || s.FoodAbandons != 1 {
		t.Errorf("food counters = %+v", s)
	}
	if s.Shocks != 1 || s.Retargets != 2 {
		t.Errorf("steering counters = shocks %d retargets %d", s.Shocks, s.Retargets)
	}
	if s.LockSuccessRate != 0.5 {
		t.Errorf("lock success = %v, want 0.5", s.LockSuccessRate)
	}
	if s.SpeedMean != 125 || s.SpeedStd != 0 {
		t.Errorf("speed stats = %v/%v", s.SpeedMean, s.SpeedStd)
	}
	if s.Creatures != 5 || s.FoodsAlive != 1 || s.WindowEndTick != 600 {
		t.Errorf("window end = %+v", s)
	}

	// Counters reset and the next window starts at the flush point
	if c.ShouldFlush(19) {
		t.Error("window did not restart at flush time")
	}
	next := c.Flush(1200, 20, 5, 0, nil)
	if next.WindowStartTick != 600 || next.FoodsSpawned != 0 || next.Shocks != 0 {
		t.Errorf("counters not reset: %+v", next)
	}
}

func TestCollectorLockRateCapped(t *testing.T) {
	c := NewCollector(1)
	c.RecordFoodLock()
	c.RecordFoodEaten()
	c.RecordFoodEaten()

	if s := c.Flush(60, 1, 0, 0, nil); s.LockSuccessRate != 1 {
		t.Errorf("lock success = %v, want capped at 1", s.LockSuccessRate)
	}
}
