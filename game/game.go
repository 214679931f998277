// Package game wires the aquarium together: the ECS-backed scene, the
// creatures and their trackers, food, input, rendering and telemetry.
package game

import (
	"fmt"
	"log/slog"
	"math/rand"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/aquarium/camera"
	"github.com/pthm-cable/aquarium/config"
	"github.com/pthm-cable/aquarium/inspector"
	"github.com/pthm-cable/aquarium/steering"
	"github.com/pthm-cable/aquarium/telemetry"
)

// Options configures a game instance.
type Options struct {
	Seed           int64
	LogStats       bool
	StatsWindowSec float64
	OutputDir      string
	Headless       bool
	StepsPerUpdate int
	Debug          bool // start with target circles and the debug panel shown

	Config        *config.Config // nil = global config
	StatsCallback func(telemetry.WindowStats)
}

// Game holds the aquarium state.
type Game struct {
	cfg *config.Config
	rng *rand.Rand

	scene     *Scene
	food      *FoodProvider
	creatures []*Creature

	tick           int32
	paused         bool
	stepsPerUpdate int
	headless       bool

	// Debug state
	debugPanel   bool
	debugTargets bool

	// Rendering (nil when headless)
	camera                    *camera.Camera
	draw                      *drawQueue
	screenWidth, screenHeight float64
	selected                  *Creature
	panel                     *inspector.Panel

	// Telemetry
	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	outputManager *telemetry.OutputManager
	logStats      bool
	statsCallback func(telemetry.WindowStats)
}

// NewGameWithOptions creates a game from opts.Config, or the global config.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}
	return newGame(cfg, opts)
}

func newGame(cfg *config.Config, opts Options) (*Game, error) {
	steps := opts.StepsPerUpdate
	if steps < 1 {
		steps = 1
	}
	statsWindow := opts.StatsWindowSec
	if statsWindow <= 0 {
		statsWindow = cfg.Telemetry.StatsWindow
	}

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("creating output: %w", err)
	}
	if err := om.WriteConfig(cfg); err != nil {
		om.Close()
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	g := &Game{
		cfg:            cfg,
		rng:            rng,
		scene:          NewScene(cfg.Derived.WorldW, cfg.Derived.WorldH, rng),
		stepsPerUpdate: steps,
		headless:       opts.Headless,
		debugPanel:     opts.Debug,
		debugTargets:   opts.Debug || cfg.Tracker.Debug,
		collector:      telemetry.NewCollector(statsWindow),
		perfCollector:  telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		outputManager:  om,
		logStats:       opts.LogStats,
		statsCallback:  opts.StatsCallback,
	}

	if !opts.Headless {
		g.screenWidth = float64(cfg.Screen.Width)
		g.screenHeight = float64(cfg.Screen.Height)
		g.camera = camera.New(g.screenWidth, g.screenHeight, cfg.Derived.WorldW, cfg.Derived.WorldH)
		g.draw = &drawQueue{}
		g.panel = inspector.NewPanel(int32(cfg.Screen.Width))
		g.scene.SetRenderer(g.draw)
	}

	// Food first so creatures pick it up during Setup.
	g.food = NewFoodProvider(cfg.Food, g.collector)
	g.scene.AttachFood(g.food)
	g.spawnCreatures()

	slog.Info("aquarium ready",
		"seed", opts.Seed,
		"creatures", len(g.creatures),
		"world_w", cfg.Derived.WorldW,
		"world_h", cfg.Derived.WorldH,
		"headless", opts.Headless,
	)
	return g, nil
}

// spawnCreatures instantiates every configured creature.
func (g *Game) spawnCreatures() {
	listener := steering.ListenerFunc(g.trackerEvent)
	for _, sp := range spawnsFromConfig(g.cfg, g.rng, listener) {
		sp.Options.Debug = g.debugTargets
		c := NewCreature(g.scene, sp)
		g.creatures = append(g.creatures, c)
		g.scene.Instantiate(c)
	}
}

// Update runs one frame in windowed mode.
func (g *Game) Update() {
	g.handleInput()
	if g.paused {
		return
	}
	dt := float64(rl.GetFrameTime())
	if maxDT := g.cfg.Physics.MaxFrameDT; maxDT > 0 && dt > maxDT {
		dt = maxDT
	}
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.step(dt)
	}
}

// UpdateHeadless runs stepsPerUpdate fixed-dt ticks without graphics.
func (g *Game) UpdateHeadless() {
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.step(g.cfg.Physics.DT)
	}
}

// step advances the simulation by one tick.
func (g *Game) step(dt float64) {
	g.perfCollector.StartTick()

	if g.draw != nil {
		g.draw.reset()
	}

	g.perfCollector.StartPhase(telemetry.PhaseActors)
	g.scene.Advance(dt)

	g.perfCollector.StartPhase(telemetry.PhaseFoodFlush)
	g.scene.FlushFood()

	g.tick++

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.flushTelemetry()

	g.perfCollector.EndTick()
}

// Press delivers a pointer press at a world position.
func (g *Game) Press(x, y float64) {
	slog.Debug("press", "x", x, "y", y, "tick", g.tick)
	g.scene.Press(r2.Vec{X: x, Y: y})
}

// SetDebugTargets toggles target circles on every tracker.
func (g *Game) SetDebugTargets(on bool) {
	g.debugTargets = on
	for _, c := range g.creatures {
		c.Tracker().SetDebug(on)
	}
}

// SetStatsCallback registers a function called with every flushed window.
func (g *Game) SetStatsCallback(fn func(telemetry.WindowStats)) {
	g.statsCallback = fn
}

// Unload releases resources.
func (g *Game) Unload() {
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}

// Tick returns the number of simulated ticks.
func (g *Game) Tick() int32 { return g.tick }

// SimTime returns simulated seconds.
func (g *Game) SimTime() float64 { return g.scene.Time() }

// Scene returns the scene.
func (g *Game) Scene() *Scene { return g.scene }

// Food returns the food provider.
func (g *Game) Food() *FoodProvider { return g.food }

// Creatures returns every creature in spawn order.
func (g *Game) Creatures() []*Creature { return g.creatures }
