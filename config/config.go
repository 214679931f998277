// Package config provides configuration loading and access for the aquarium.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all aquarium configuration parameters.
type Config struct {
	Screen    ScreenConfig     `yaml:"screen"`
	World     WorldConfig      `yaml:"world"`
	Physics   PhysicsConfig    `yaml:"physics"`
	Tracker   TrackerConfig    `yaml:"tracker"`
	Food      FoodConfig       `yaml:"food"`
	Creatures []CreatureConfig `yaml:"creatures"`
	Telemetry TelemetryConfig  `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// WorldConfig holds the tank dimensions.
// Zero means "same as the screen".
type WorldConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// PhysicsConfig holds time stepping parameters.
type PhysicsConfig struct {
	DT         float64 `yaml:"dt"`           // fixed step for headless runs
	MaxFrameDT float64 `yaml:"max_frame_dt"` // clamp on measured frame time
}

// TrackerConfig holds the steering defaults shared by every creature.
type TrackerConfig struct {
	SpeedBias                  float64 `yaml:"speed_bias"`
	SmoothCurveRate            float64 `yaml:"smooth_curve_rate"`
	SmoothingReferenceFPS      float64 `yaml:"smoothing_reference_fps"` // 0 = per tick
	ShockThresholdDistance     float64 `yaml:"shock_threshold_distance"`
	ShockAvoidDistance         float64 `yaml:"shock_avoid_distance"`
	FoodTriggerDistance        float64 `yaml:"food_trigger_distance"`
	FoodViewableAngleDeg       float64 `yaml:"food_viewable_angle_deg"`
	SmoothCurveTriggerDistance float64 `yaml:"smooth_curve_trigger_distance"` // 0 = never arc
	NoiseSize                  float64 `yaml:"noise_size"`
	AutoTarget                 bool    `yaml:"auto_target"`
	FoodEnabled                bool    `yaml:"food_enabled"`
	Debug                      bool    `yaml:"debug"`
}

// FoodConfig holds the food provider's spawn policy.
type FoodConfig struct {
	Enabled       bool    `yaml:"enabled"`
	SpawnInterval float64 `yaml:"spawn_interval"` // seconds between spawns (0 = no periodic spawn)
	MaxFoods      int     `yaml:"max_foods"`
	Lifetime      float64 `yaml:"lifetime"` // seconds before a food dissolves (0 = forever)
	Radius        float64 `yaml:"radius"`
	DropOnPress   bool    `yaml:"drop_on_press"`
	Color         string  `yaml:"color"`
}

// Point is an optional world position.
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// CreatureConfig describes a group of creatures of one kind.
// Zero tuning fields inherit from TrackerConfig.
type CreatureConfig struct {
	Kind     string  `yaml:"kind"`
	Count    int     `yaml:"count"`
	Color    string  `yaml:"color"`
	Scale    float64 `yaml:"scale"`
	Location *Point  `yaml:"location,omitempty"` // nil = random
	Angle    float64 `yaml:"angle"`

	SpeedBias       float64 `yaml:"speed_bias,omitempty"`
	SmoothCurveRate float64 `yaml:"smooth_curve_rate,omitempty"`
	NoiseSize       float64 `yaml:"noise_size,omitempty"`
	FoodEnabled     *bool   `yaml:"food_enabled,omitempty"`
	AutoTarget      *bool   `yaml:"auto_target,omitempty"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"`
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	WorldW float64 // effective world width
	WorldH float64 // effective world height

	// SmoothCurveTriggerDistance with 0 mapped to +Inf
	SmoothCurveTriggerDistance float64
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	cfg.computeDerived()

	return cfg, nil
}

// Validate rejects tuning values the simulation cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Physics.DT <= 0 {
		errs = append(errs, errors.New("physics.dt must be positive"))
	}
	errs = append(errs, validateTuning("tracker", c.Tracker.SpeedBias, c.Tracker.SmoothCurveRate)...)
	for _, d := range []struct {
		name string
		v    float64
	}{
		{"tracker.shock_threshold_distance", c.Tracker.ShockThresholdDistance},
		{"tracker.shock_avoid_distance", c.Tracker.ShockAvoidDistance},
		{"tracker.food_trigger_distance", c.Tracker.FoodTriggerDistance},
		{"tracker.smooth_curve_trigger_distance", c.Tracker.SmoothCurveTriggerDistance},
		{"tracker.noise_size", c.Tracker.NoiseSize},
		{"tracker.smoothing_reference_fps", c.Tracker.SmoothingReferenceFPS},
	} {
		if d.v < 0 {
			errs = append(errs, fmt.Errorf("%s must not be negative", d.name))
		}
	}
	for i, cr := range c.Creatures {
		name := fmt.Sprintf("creatures[%d]", i)
		if cr.Count < 0 {
			errs = append(errs, fmt.Errorf("%s.count must not be negative", name))
		}
		if cr.SpeedBias < 0 || cr.SmoothCurveRate < 0 || cr.SmoothCurveRate > 1 {
			errs = append(errs, fmt.Errorf("%s has invalid tuning overrides", name))
		}
	}
	return errors.Join(errs...)
}

func validateTuning(prefix string, speedBias, rate float64) []error {
	var errs []error
	if speedBias <= 0 {
		errs = append(errs, fmt.Errorf("%s.speed_bias must be positive", prefix))
	}
	if rate <= 0 || rate > 1 {
		errs = append(errs, fmt.Errorf("%s.smooth_curve_rate must be in (0, 1]", prefix))
	}
	return errs
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	// World dimensions default to screen size if not specified
	worldW := c.World.Width
	if worldW == 0 {
		worldW = c.Screen.Width
	}
	worldH := c.World.Height
	if worldH == 0 {
		worldH = c.Screen.Height
	}
	c.Derived.WorldW = float64(worldW)
	c.Derived.WorldH = float64(worldH)

	c.Derived.SmoothCurveTriggerDistance = c.Tracker.SmoothCurveTriggerDistance
	if c.Derived.SmoothCurveTriggerDistance == 0 {
		c.Derived.SmoothCurveTriggerDistance = math.Inf(1)
	}

	for i := range c.Creatures {
		if c.Creatures[i].Scale == 0 {
			c.Creatures[i].Scale = 1
		}
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
