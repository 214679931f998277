package config

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}

	if cfg.Tracker.SpeedBias != 125 {
		t.Errorf("speed_bias = %v, want 125", cfg.Tracker.SpeedBias)
	}
	if cfg.Tracker.SmoothCurveRate != 0.01 {
		t.Errorf("smooth_curve_rate = %v, want 0.01", cfg.Tracker.SmoothCurveRate)
	}
	if !cfg.Tracker.AutoTarget {
		t.Error("auto_target should default to true")
	}
	if len(cfg.Creatures) == 0 {
		t.Error("expected default creatures")
	}

	// World falls back to screen size
	if cfg.Derived.WorldW != float64(cfg.Screen.Width) || cfg.Derived.WorldH != float64(cfg.Screen.Height) {
		t.Errorf("derived world = %vx%v, want screen size", cfg.Derived.WorldW, cfg.Derived.WorldH)
	}

	// 0 trigger distance means never arc
	if !math.IsInf(cfg.Derived.SmoothCurveTriggerDistance, 1) {
		t.Errorf("derived trigger distance = %v, want +Inf", cfg.Derived.SmoothCurveTriggerDistance)
	}
}

func TestLoadOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := `
tracker:
  speed_bias: 200
  smooth_curve_trigger_distance: 300
world:
  width: 2000
creatures:
  - kind: fish
    count: 3
    location: {x: 10, y: 20}
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Tracker.SpeedBias != 200 {
		t.Errorf("speed_bias = %v, want 200", cfg.Tracker.SpeedBias)
	}
	// Untouched fields keep defaults
	if cfg.Tracker.ShockAvoidDistance != 80 {
		t.Errorf("shock_avoid_distance = %v, want 80", cfg.Tracker.ShockAvoidDistance)
	}
	if cfg.Derived.WorldW != 2000 {
		t.Errorf("world width = %v, want 2000", cfg.Derived.WorldW)
	}
	if cfg.Derived.SmoothCurveTriggerDistance != 300 {
		t.Errorf("trigger distance = %v, want 300", cfg.Derived.SmoothCurveTriggerDistance)
	}
	if len(cfg.Creatures) != 1 || cfg.Creatures[0].Location == nil {
		t.Fatalf("creatures not replaced: %+v", cfg.Creatures)
	}
	if cfg.Creatures[0].Scale != 1 {
		t.Errorf("scale = %v, want default 1", cfg.Creatures[0].Scale)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"defaults", func(c *Config) {}, ""},
		{"zero speed", func(c *Config) { c.Tracker.SpeedBias = 0 }, "speed_bias"},
		{"rate above one", func(c *Config) { c.Tracker.SmoothCurveRate = 1.5 }, "smooth_curve_rate"},
		{"negative distance", func(c *Config) { c.Tracker.ShockAvoidDistance = -1 }, "shock_avoid_distance"},
		{"zero dt", func(c *Config) { c.Physics.DT = 0 }, "physics.dt"},
		{"bad creature", func(c *Config) {
			c.Creatures = []CreatureConfig{{Kind: "fish", Count: -1}}
		}, "creatures[0].count"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load("")
			if err != nil {
				t.Fatal(err)
			}
			tt.mutate(cfg)
			err = cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestWriteYAMLRoundtrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Tracker.NoiseSize = 0.25

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}

	back, err := Load(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if back.Tracker.NoiseSize != 0.25 {
		t.Errorf("noise_size = %v, want 0.25", back.Tracker.NoiseSize)
	}
}

func TestCfgPanicsBeforeInit(t *testing.T) {
	global = nil
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	Cfg()
}
