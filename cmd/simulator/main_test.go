package main

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/alejandrodnm/top5sim/config"
	"github.com/alejandrodnm/top5sim/internal/predictions"
	"github.com/stretchr/testify/assert"
)

func TestNewPicker(t *testing.T) {
	assert.IsType(t, &predictions.UniformPicker{}, newPicker(config.SimulationConfig{Mode: "uniform", Seed: 1}))
	assert.IsType(t, &predictions.WeightedPicker{}, newPicker(config.SimulationConfig{Mode: "weighted", Seed: 1}))
}

func TestLogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
		"":      slog.LevelInfo,
		"loud":  slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, logLevel(in), in)
	}
}

func TestNewLogHandler(t *testing.T) {
	ctx := context.Background()

	var buf bytes.Buffer
	h := newLogHandler(&buf, config.LogConfig{Level: "warn", Format: "json"})
	assert.IsType(t, &slog.JSONHandler{}, h)
	assert.False(t, h.Enabled(ctx, slog.LevelInfo))
	assert.True(t, h.Enabled(ctx, slog.LevelWarn))

	slog.New(h).Warn("rate limited by API", "attempt", 2)
	assert.Contains(t, buf.String(), `"msg":"rate limited by API"`)

	buf.Reset()
	h = newLogHandler(&buf, config.LogConfig{Level: "debug", Format: "text"})
	assert.IsType(t, &slog.TextHandler{}, h)
	assert.True(t, h.Enabled(ctx, slog.LevelDebug))

	slog.New(h).Debug("prediction set", "fixture", 12)
	assert.Contains(t, buf.String(), "msg=\"prediction set\" fixture=12")
}

func TestApplyFlags(t *testing.T) {
	base := func() *config.Config {
		cfg := &config.Config{}
		cfg.Simulation.Mode = "uniform"
		cfg.Simulation.Seed = 7
		cfg.Data.Dataset = "from-config.yaml"
		cfg.Log.Level = "info"
		cfg.Log.Format = "text"
		return cfg
	}

	tests := []struct {
		name  string
		flags cliFlags
		check func(t *testing.T, cfg *config.Config)
	}{
		{
			name:  "no flags keeps config",
			flags: cliFlags{},
			check: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, base(), cfg)
			},
		},
		{
			name:  "data path",
			flags: cliFlags{dataPath: "other.yaml"},
			check: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, "other.yaml", cfg.Data.Dataset)
			},
		},
		{
			name:  "seed",
			flags: cliFlags{seed: 42},
			check: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, int64(42), cfg.Simulation.Seed)
			},
		},
		{
			name:  "weighted",
			flags: cliFlags{weighted: true},
			check: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, "weighted", cfg.Simulation.Mode)
				assert.Equal(t, int64(7), cfg.Simulation.Seed)
			},
		},
		{
			name:  "verbose and format",
			flags: cliFlags{verbose: true, logFormat: "json"},
			check: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, "debug", cfg.Log.Level)
				assert.Equal(t, "json", cfg.Log.Format)
				assert.Equal(t, "from-config.yaml", cfg.Data.Dataset)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			applyFlags(cfg, tt.flags)
			tt.check(t, cfg)
		})
	}
}
