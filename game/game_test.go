package game

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/aquarium/config"
	"github.com/pthm-cable/aquarium/steering"
	"github.com/pthm-cable/aquarium/telemetry"
)

func loadConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	require.NoError(t, err)
	return cfg
}

func newHeadless(t *testing.T, cfg *config.Config, opts Options) *Game {
	t.Helper()
	opts.Headless = true
	g, err := newGame(cfg, opts)
	require.NoError(t, err)
	t.Cleanup(g.Unload)
	return g
}

func TestGame_SpawnsConfiguredCreatures(t *testing.T) {
	g := newHeadless(t, loadConfig(t), Options{Seed: 1})

	require.Len(t, g.Creatures(), 21)
	counts := map[string]int{}
	for _, c := range g.Creatures() {
		counts[c.Kind().String()]++
		loc := c.Body().Location()
		require.True(t, loc.X >= 0 && loc.X <= 1280 && loc.Y >= 0 && loc.Y <= 800)
	}
	require.Equal(t, map[string]int{"fish": 16, "jellyfish": 3, "lophophorata": 2}, counts)
}

func TestGame_HeadlessIsDeterministic(t *testing.T) {
	run := func() []r2.Vec {
		g := newHeadless(t, loadConfig(t), Options{Seed: 99, StepsPerUpdate: 10})
		for i := 0; i < 30; i++ {
			g.UpdateHeadless()
		}
		require.Equal(t, int32(300), g.Tick())
		locs := make([]r2.Vec, len(g.Creatures()))
		for i, c := range g.Creatures() {
			locs[i] = c.Body().Location()
		}
		return locs
	}
	require.Equal(t, run(), run())
}

func TestGame_CreaturesWander(t *testing.T) {
	g := newHeadless(t, loadConfig(t), Options{Seed: 3})
	start := g.Creatures()[0].Body().Location()
	for i := 0; i < 120; i++ {
		g.UpdateHeadless()
	}
	moved := r2.Norm(r2.Sub(g.Creatures()[0].Body().Location(), start))
	require.Greater(t, moved, 10.0)
	for _, c := range g.Creatures() {
		require.Greater(t, c.Tracker().Speed(), 0.0)
	}
}

func TestGame_PressStartlesNearbyCreature(t *testing.T) {
	g := newHeadless(t, loadConfig(t), Options{Seed: 5})
	c := g.Creatures()[0]
	loc := c.Body().Location()

	g.Press(loc.X+10, loc.Y)

	require.Equal(t, steering.StateShock, c.Tracker().State())
	require.Equal(t, 125.0*steering.ShockSpeedFactor, c.Tracker().Speed())
	require.Equal(t, 1, g.Food().Count(), "press drops food")
}

func TestGame_StatsWindows(t *testing.T) {
	cfg := loadConfig(t)
	g := newHeadless(t, cfg, Options{Seed: 11, StatsWindowSec: 1})

	var windows []telemetry.WindowStats
	g.SetStatsCallback(func(s telemetry.WindowStats) { windows = append(windows, s) })

	for i := 0; i < 125; i++ {
		g.UpdateHeadless()
	}

	require.Len(t, windows, 2)
	first := windows[0]
	require.Equal(t, 21, first.Creatures)
	require.GreaterOrEqual(t, first.Retargets, 21, "every creature picks a first target")
	require.Greater(t, first.SpeedMean, 0.0)
	require.Equal(t, windows[0].WindowEndTick, windows[1].WindowStartTick)
}

func TestGame_OutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	cfg := loadConfig(t)
	g, err := newGame(cfg, Options{Seed: 1, Headless: true, OutputDir: dir, StatsWindowSec: 0.5})
	require.NoError(t, err)

	for i := 0; i < 70; i++ {
		g.UpdateHeadless()
	}
	g.Unload()

	for _, name := range []string{"config.yaml", "telemetry.csv", "perf.csv"} {
		info, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err, name)
		require.Positive(t, info.Size(), name)
	}
}

func TestGame_DebugTargetsToggle(t *testing.T) {
	g := newHeadless(t, loadConfig(t), Options{Seed: 1, Debug: true})
	for _, c := range g.Creatures() {
		require.True(t, c.Tracker().Options().Debug)
	}
	g.SetDebugTargets(false)
	for _, c := range g.Creatures() {
		require.False(t, c.Tracker().Options().Debug)
	}
}

func TestTrackerOptions_GroupOverrides(t *testing.T) {
	cfg := loadConfig(t)

	base := trackerOptions(cfg, config.CreatureConfig{Kind: "fish"})
	require.Equal(t, 125.0, base.SpeedBias)
	require.True(t, base.FoodEnabled)
	require.True(t, math.IsInf(base.SmoothCurveTriggerDistance, 1))

	off := false
	jelly := trackerOptions(cfg, config.CreatureConfig{
		Kind:            "jellyfish",
		SpeedBias:       30,
		SmoothCurveRate: 0.005,
		NoiseSize:       0.2,
		FoodEnabled:     &off,
	})
	require.Equal(t, 30.0, jelly.SpeedBias)
	require.Equal(t, 0.005, jelly.SmoothCurveRate)
	require.Equal(t, 0.2, jelly.NoiseSize)
	require.False(t, jelly.FoodEnabled)
	require.Equal(t, base.ShockAvoidDistance, jelly.ShockAvoidDistance)
}

func TestSpawnsFromConfig_FixedLocationAndBadKind(t *testing.T) {
	cfg := loadConfig(t)
	cfg.Creatures = []config.CreatureConfig{
		{Kind: "fish", Count: 2, Location: &config.Point{X: 5, Y: 6}, Angle: 1, Scale: 1},
		{Kind: "kraken", Count: 4},
	}
	spawns := spawnsFromConfig(cfg, newTestScene().Rand(), nil)

	require.Len(t, spawns, 2)
	for _, sp := range spawns {
		require.Equal(t, r2.Vec{X: 5, Y: 6}, sp.Location)
		require.Equal(t, 1.0, sp.Angle)
		require.NotNil(t, sp.Options.Rand)
	}
	require.NotSame(t, spawns[0].Options.Rand, spawns[1].Options.Rand)
}

func TestParseColor(t *testing.T) {
	c := parseColor("#2196f3", "#000000")
	require.Equal(t, uint8(0x21), c.R)
	require.Equal(t, uint8(0x96), c.G)
	require.Equal(t, uint8(0xf3), c.B)
	require.Equal(t, uint8(255), c.A)

	fallback := parseColor("not-a-color", "#aaaaaa")
	require.Equal(t, uint8(0xaa), fallback.R)
}

func TestNewGameWithOptions_ExplicitConfig(t *testing.T) {
	cfg := loadConfig(t)
	cfg.Creatures = []config.CreatureConfig{{Kind: "jellyfish", Count: 2, Scale: 1}}

	var windows int
	g, err := NewGameWithOptions(Options{
		Seed:           4,
		Headless:       true,
		StatsWindowSec: 0.5,
		Config:         cfg,
		StatsCallback:  func(telemetry.WindowStats) { windows++ },
	})
	require.NoError(t, err)
	defer g.Unload()

	require.Len(t, g.Creatures(), 2)
	for i := 0; i < 40; i++ {
		g.UpdateHeadless()
	}
	require.Equal(t, 1, windows)
}

func TestTrackerOptions_MapsConfigSection(t *testing.T) {
	tc := config.TrackerConfig{
		SpeedBias:              90,
		SmoothCurveRate:        0.2,
		SmoothingReferenceFPS:  60,
		ShockThresholdDistance: 70,
		ShockAvoidDistance:     60,
		FoodTriggerDistance:    50,
		FoodViewableAngleDeg:   40,
		NoiseSize:              0.3,
		AutoTarget:             true,
		FoodEnabled:            true,
		Debug:                  true,
	}
	opts := TrackerOptions(tc)
	require.Equal(t, steering.Options{
		SpeedBias:                  90,
		SmoothCurveRate:            0.2,
		SmoothingReferenceFPS:      60,
		ShockThresholdDistance:     70,
		ShockAvoidDistance:         60,
		FoodTriggerDistance:        50,
		FoodViewableAngleDeg:       40,
		SmoothCurveTriggerDistance: math.Inf(1),
		NoiseSize:                  0.3,
		AutoTarget:                 true,
		FoodEnabled:                true,
		Debug:                      true,
	}, opts)

	tc.SmoothCurveTriggerDistance = 250
	require.Equal(t, 250.0, TrackerOptions(tc).SmoothCurveTriggerDistance)
}
