package game

import (
	"image/color"
	"log/slog"
	"math"
	"math/rand"

	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/aquarium/components"
	"github.com/pthm-cable/aquarium/config"
	"github.com/pthm-cable/aquarium/steering"
)

// kindTraits are the per-kind body defaults.
type kindTraits struct {
	radius   float64
	swayRate float64
	swayAmp  float64
}

var traitsByKind = map[components.Kind]kindTraits{
	components.KindFish:         {radius: 8, swayRate: 9, swayAmp: 0.35},
	components.KindJellyfish:    {radius: 11, swayRate: 2.2, swayAmp: 0.25},
	components.KindLophophorata: {radius: 6, swayRate: 1.1, swayAmp: 0.5},
}

// Creature is a body in the tank steered by its own tracker.
type Creature struct {
	kind    components.Kind
	body    *Body
	tracker *steering.Tracker[*Body]
}

// Spawn describes a single creature to create.
type Spawn struct {
	Kind     components.Kind
	Location r2.Vec
	Angle    float64
	Scale    float64
	Color    color.RGBA
	Options  steering.Options
}

// NewCreature creates the creature's entity and tracker. The creature is
// not updated until it is instantiated in the scene.
func NewCreature(s *Scene, sp Spawn) *Creature {
	tr, ok := traitsByKind[sp.Kind]
	if !ok {
		tr = traitsByKind[components.KindFish]
	}
	scale := sp.Scale
	if scale <= 0 {
		scale = 1
	}
	shape := components.Shape{Kind: sp.Kind, Radius: tr.radius * scale, Scale: scale, Color: sp.Color}
	sway := components.Sway{
		Phase:     s.rng.Float64() * 2 * math.Pi,
		Rate:      tr.swayRate,
		Amplitude: tr.swayAmp,
		Seed:      s.rng.Float64() * 1000,
	}
	body := s.newCreatureBody(sp.Location, sp.Angle, shape, sway)
	return &Creature{
		kind:    sp.Kind,
		body:    body,
		tracker: steering.NewTracker(body, sp.Options),
	}
}

// Setup lets the tracker find the scene's food.
func (c *Creature) Setup(s *Scene) { c.tracker.Setup(s) }

// Update steers and moves the creature.
func (c *Creature) Update(dt float64, s *Scene) { c.tracker.Update(dt, s) }

// Pressed forwards a pointer press to the tracker.
func (c *Creature) Pressed(e steering.PointerEvent) { c.tracker.Pressed(e) }

// Kind returns the creature kind.
func (c *Creature) Kind() components.Kind { return c.kind }

// Body returns the creature's body.
func (c *Creature) Body() *Body { return c.body }

// Tracker returns the creature's tracker.
func (c *Creature) Tracker() *steering.Tracker[*Body] { return c.tracker }

// spawnsFromConfig expands the creature groups into individual spawns.
// Each creature gets its own random source derived from rng so runs with
// the same seed are reproducible.
func spawnsFromConfig(cfg *config.Config, rng *rand.Rand, listener steering.Listener) []Spawn {
	var out []Spawn
	for i, group := range cfg.Creatures {
		kind, err := components.ParseKind(group.Kind)
		if err != nil {
			slog.Warn("skipping creature group", "index", i, "error", err)
			continue
		}
		col := parseColor(group.Color, "#aaaaaa")
		for n := 0; n < group.Count; n++ {
			loc := r2.Vec{X: rng.Float64() * cfg.Derived.WorldW, Y: rng.Float64() * cfg.Derived.WorldH}
			if group.Location != nil {
				loc = r2.Vec{X: group.Location.X, Y: group.Location.Y}
			}
			angle := group.Angle
			if group.Location == nil && angle == 0 {
				angle = rng.Float64() * 2 * math.Pi
			}
			opts := trackerOptions(cfg, group)
			opts.Rand = rand.New(rand.NewSource(rng.Int63()))
			opts.Listener = listener
			out = append(out, Spawn{
				Kind:     kind,
				Location: loc,
				Angle:    angle,
				Scale:    group.Scale,
				Color:    col,
				Options:  opts,
			})
		}
	}
	return out
}

// TrackerOptions maps the tracker config section to steering options.
// A zero smooth curve trigger distance means never arc.
func TrackerOptions(tc config.TrackerConfig) steering.Options {
	trigger := tc.SmoothCurveTriggerDistance
	if trigger == 0 {
		trigger = math.Inf(1)
	}
	return steering.Options{
		SpeedBias:                  tc.SpeedBias,
		SmoothCurveRate:            tc.SmoothCurveRate,
		SmoothingReferenceFPS:      tc.SmoothingReferenceFPS,
		ShockThresholdDistance:     tc.ShockThresholdDistance,
		ShockAvoidDistance:         tc.ShockAvoidDistance,
		FoodTriggerDistance:        tc.FoodTriggerDistance,
		FoodViewableAngleDeg:       tc.FoodViewableAngleDeg,
		SmoothCurveTriggerDistance: trigger,
		NoiseSize:                  tc.NoiseSize,
		AutoTarget:                 tc.AutoTarget,
		FoodEnabled:                tc.FoodEnabled,
		Debug:                      tc.Debug,
	}
}

// trackerOptions merges the shared tracker tuning with a group's overrides.
func trackerOptions(cfg *config.Config, group config.CreatureConfig) steering.Options {
	opts := TrackerOptions(cfg.Tracker)
	if group.SpeedBias > 0 {
		opts.SpeedBias = group.SpeedBias
	}
	if group.SmoothCurveRate > 0 {
		opts.SmoothCurveRate = group.SmoothCurveRate
	}
	if group.NoiseSize > 0 {
		opts.NoiseSize = group.NoiseSize
	}
	if group.FoodEnabled != nil {
		opts.FoodEnabled = *group.FoodEnabled
	}
	if group.AutoTarget != nil {
		opts.AutoTarget = *group.AutoTarget
	}
	return opts
}

// parseColor parses a hex color, falling back when it is malformed.
func parseColor(hex, fallback string) color.RGBA {
	c, err := colorful.Hex(hex)
	if err != nil {
		if hex != "" {
			slog.Warn("invalid color, using fallback", "color", hex, "fallback", fallback)
		}
		c, _ = colorful.Hex(fallback)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
