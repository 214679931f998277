package main

import (
	"math"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/aquarium/config"
)

func TestNewTank_UsesConfigTuning(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.Tracker = previewTuning(cfg.Tracker)
	cfg.Tracker.SpeedBias = 77
	cfg.Tracker.SmoothCurveTriggerDistance = 0

	_, fish := newTank(cfg, rand.New(rand.NewSource(1)), nil)
	require.Len(t, fish, creatures)
	for _, c := range fish {
		opts := c.Tracker().Options()
		require.Equal(t, 77.0, opts.SpeedBias)
		require.True(t, math.IsInf(opts.SmoothCurveTriggerDistance, 1))
		require.True(t, opts.Debug)
		require.True(t, opts.AutoTarget)
	}
}

func TestNewTank_KeepsPositions(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	rng := rand.New(rand.NewSource(1))

	// Debug off: no window to draw target circles into.
	scene, fish := newTank(cfg, rng, nil)
	for i := 0; i < 10; i++ {
		scene.Tick(0.1)
	}
	_, rebuilt := newTank(cfg, rng, fish)
	for i := range fish {
		require.Equal(t, fish[i].Body().Location(), rebuilt[i].Body().Location())
	}
}

func TestTrackerYAML(t *testing.T) {
	tc := previewTuning(config.TrackerConfig{SpeedBias: 90})
	out := trackerYAML(tc)
	require.True(t, strings.HasPrefix(out, "tracker:\n"))
	require.Contains(t, out, "speed_bias: 90")
	require.Contains(t, out, "debug: false")
}
