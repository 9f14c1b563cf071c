package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alejandrodnm/top5sim/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("LOG_FORMAT", "")
	t.Setenv("FOOTBALL_DATA_API_KEY", "")
	t.Setenv("SIM_DATASET", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "uniform", cfg.Simulation.Mode)
	assert.Equal(t, domain.DefaultScoreline(), *cfg.Simulation.Scoreline)
	assert.Equal(t, "", cfg.Data.Dataset)
	assert.Equal(t, "https://api.football-data.org/v4", cfg.API.BaseURL)
	assert.Equal(t, 6, cfg.API.RequestsPerMinute)
	assert.Equal(t, 10*time.Second, cfg.Timeout())
	assert.Equal(t, "top5sim.db", cfg.Storage.DSN)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoad_YAMLAndEnvOverrides(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "")
	t.Setenv("FOOTBALL_DATA_API_KEY", "secret")
	t.Setenv("SIM_DATASET", "/tmp/refreshed.yaml")

	path := writeConfig(t, `
simulation:
  mode: weighted
  seed: 42
  scoreline:
    win_for: 2
    win_against: 0
    draw_goals: 0
api:
  requests_per_minute: 3
log:
  level: warn
  format: json
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "weighted", cfg.Simulation.Mode)
	assert.Equal(t, int64(42), cfg.Simulation.Seed)
	assert.Equal(t, domain.Scoreline{WinFor: 2, WinAgainst: 0, DrawGoals: 0}, *cfg.Simulation.Scoreline)
	assert.Equal(t, 3, cfg.API.RequestsPerMinute)
	assert.Equal(t, "secret", cfg.API.Key)
	assert.Equal(t, "/tmp/refreshed.yaml", cfg.Data.Dataset)
	assert.Equal(t, "debug", cfg.Log.Level) // env gana
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]string{
		"bad yaml":      "simulation: [",
		"bad mode":      "simulation:\n  mode: poisson\n",
		"bad scoreline": "simulation:\n  scoreline:\n    win_for: 0\n    win_against: 1\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			assert.Error(t, err)
		})
	}
}
