package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/kahuna/config"
)

func write(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "kahuna.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	cfg := config.Default()
	assert.Equal(t, config.GridConfig{Width: 3, Length: 3, Height: 3}, cfg.Grid)
	assert.Equal(t, uint64(1), cfg.Solve.Seed)
	assert.Equal(t, 1, cfg.Solve.Count)
	assert.Equal(t, config.ObserverWeighted, cfg.Solve.Observer)
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
	assert.NoError(t, cfg.Validate())
}

func TestLoad_FillsDefaults(t *testing.T) {
	cfg, err := config.Load(write(t, `
grid:
  width: 8
solve:
  count: 4
  parallel: 2
log:
  level: DEBUG
`))
	require.NoError(t, err)
	assert.Equal(t, config.GridConfig{Width: 8, Length: 3, Height: 3}, cfg.Grid)
	assert.Equal(t, 4, cfg.Solve.Count)
	assert.Equal(t, 2, cfg.Solve.Parallel)
	assert.Equal(t, uint64(1), cfg.Solve.Seed)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
	assert.Empty(t, cfg.Prototypes)
}

func TestLoad_Errors(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = config.Load(write(t, "grid: [1, 2"))
	assert.Error(t, err)

	_, err = config.Load(write(t, "solve:\n  observer: greedy\n"))
	assert.ErrorIs(t, err, config.ErrInvalidConfig)

	_, err = config.Load(write(t, "grid:\n  height: -1\n"))
	assert.ErrorIs(t, err, config.ErrInvalidConfig)

	_, err = config.Load(write(t, "solve:\n  max_steps: -3\n"))
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}
