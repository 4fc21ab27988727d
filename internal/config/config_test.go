package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

func TestLoadYaml(t *testing.T) {
	//** Arrange
	path := writeConfig(t, "config.yaml", `catalog:
  path: "data/catalog.json"
  term: "202410"
search:
  max_schedules: 500
  max_results: 20
  shuffle: false
  seed: 42
logging:
  level: debug
metrics:
  enabled: true
  address: "127.0.0.1:9100"
`)

	//** Act
	cfg, err := Load(path)

	//** Assert
	require.NoError(t, err)
	checks := []struct {
		name string
		got  any
		want any
	}{
		{"catalog.path", cfg.Catalog.Path, "data/catalog.json"},
		{"catalog.term", cfg.Catalog.Term, "202410"},
		{"search.max_schedules", cfg.Search.MaxSchedules, 500},
		{"search.max_results", cfg.Search.MaxResults, 20},
		{"search.shuffle", cfg.Search.Shuffle, false},
		{"search.seed", cfg.Search.Seed, uint64(42)},
		{"logging.level", cfg.Logging.Level, "debug"},
		{"metrics.enabled", cfg.Metrics.Enabled, true},
		{"metrics.address", cfg.Metrics.Address, "127.0.0.1:9100"},
		{"metrics.sink", cfg.Metrics.Sink, "prometheus"},
	}
	for _, c := range checks {
		assert.Equal(t, c.want, c.got, c.name)
	}
}

func TestLoadJsonDefaults(t *testing.T) {
	//** Arrange
	path := writeConfig(t, "config.json", `{"catalog": {"term": "202420"}}`)

	//** Act
	cfg, err := Load(path)

	//** Assert
	require.NoError(t, err)
	assert.Equal(t, "catalog.json", cfg.Catalog.Path)
	assert.Equal(t, "202420", cfg.Catalog.Term)
	assert.Equal(t, 9999, cfg.Search.MaxSchedules)
	assert.Equal(t, 0, cfg.Search.MaxResults)
	assert.True(t, cfg.Search.Shuffle)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Metrics.Enabled)
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))

	require.NoError(t, err)
	assert.Equal(t, Default(), *cfg)
}

func TestLoadEnvOverrides(t *testing.T) {
	//** Arrange
	path := writeConfig(t, "config.yaml", "search:\n  max_schedules: 500\n")
	t.Setenv("PLANNER_SEARCH__MAX_SCHEDULES", "25")
	t.Setenv("PLANNER_CATALOG__TERM", "202410")

	//** Act
	cfg, err := Load(path)

	//** Assert
	require.NoError(t, err)
	assert.Equal(t, 25, cfg.Search.MaxSchedules)
	assert.Equal(t, "202410", cfg.Catalog.Term)
}

func TestLoadInvalid(t *testing.T) {
	tests := map[string]string{
		"negative cap":    "search:\n  max_schedules: -1\n",
		"negative top":    "search:\n  max_results: -3\n",
		"unknown level":   "logging:\n  level: loud\n",
		"unknown sink":    "metrics:\n  sink: statsd\n",
		"invalid address": "metrics:\n  enabled: true\n  address: nowhere\n",
	}

	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, "config.yaml", data))

			assert.Error(t, err)
		})
	}

	t.Run("zero cap falls back to the default", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, "config.yaml", "search:\n  max_schedules: 0\n"))

		require.NoError(t, err)
		assert.Equal(t, 9999, cfg.Search.MaxSchedules)
	})

	t.Run("negative cap message", func(t *testing.T) {
		_, err := Load(writeConfig(t, "config.yaml", "search:\n  max_schedules: -1\n"))

		assert.EqualError(t, err, "search: max_schedules cannot be negative, got -1")
	})

	t.Run("unsupported format", func(t *testing.T) {
		_, err := Load(writeConfig(t, "config.toml", ""))

		assert.Error(t, err)
	})
}
