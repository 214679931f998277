package game

import (
	"log/slog"

	"github.com/pthm-cable/aquarium/steering"
)

// trackerEvent forwards tracker events to the collector. Meals are counted
// by the food provider when the food is removed.
func (g *Game) trackerEvent(e steering.Event) {
	switch e.Kind {
	case steering.EventTargetAcquired:
		g.collector.RecordRetarget()
	case steering.EventShockStarted:
		g.collector.RecordShock()
	case steering.EventFoodLocked:
		g.collector.RecordFoodLock()
	case steering.EventFoodAbandoned:
		g.collector.RecordFoodAbandon()
	}
}

// flushTelemetry closes the stats window when it has elapsed.
func (g *Game) flushTelemetry() {
	simTime := g.scene.Time()
	if !g.collector.ShouldFlush(simTime) {
		return
	}

	stats := g.collector.Flush(g.tick, simTime, len(g.creatures), g.food.Count(), g.sampleSpeeds())
	perfStats := g.perfCollector.Stats()

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if g.outputManager != nil {
		if err := g.outputManager.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}
}

// sampleSpeeds collects every tracker's current speed.
func (g *Game) sampleSpeeds() []float64 {
	speeds := make([]float64, len(g.creatures))
	for i, c := range g.creatures {
		speeds[i] = c.Tracker().Speed()
	}
	return speeds
}
