package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultLimits(t *testing.T) {
	l := DefaultLimits()
	assert.Equal(t, int64(10000), l.SeriesMax)
	assert.Equal(t, int64(1000), l.ODEMaxSteps)
	assert.Equal(t, int64(1000000), l.PrimeSearchCeiling)
	assert.Equal(t, int64(170), l.FactorialMax)
	assert.Equal(t, int64(1000), l.FibonacciMax)
	assert.Equal(t, 64, l.MaxRecursionDepth)
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.NotEmpty(t, cfg.DataDir)
	assert.Equal(t, filepath.Join(cfg.DataDir, "mathcli.db"), cfg.DatabasePath)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, DefaultLimits(), cfg.Limits)
}

func TestLoadEmptyPathUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default().DatabasePath, cfg.DatabasePath)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadFileFillsUnsetFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := `data_dir: ` + dir + `
limits:
  series_max: 500
logging:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.DataDir)
	assert.Equal(t, filepath.Join(dir, "mathcli.db"), cfg.DatabasePath)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, int64(500), cfg.Limits.SeriesMax)
	// Unset limits come from defaults.
	assert.Equal(t, int64(1000), cfg.Limits.ODEMaxSteps)
	assert.Equal(t, 64, cfg.Limits.MaxRecursionDepth)
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("limits: [not a map"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("MATHCLI_DATA_DIR", dir)
	t.Setenv("MATHCLI_LOG_LEVEL", "warn")
	t.Setenv("MATHCLI_SERIES_MAX", "2000")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.DataDir)
	assert.Equal(t, filepath.Join(dir, "mathcli.db"), cfg.DatabasePath)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, int64(2000), cfg.Limits.SeriesMax)
}

func TestEnvDBPathWinsOverDataDir(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "elsewhere.db")
	t.Setenv("MATHCLI_DATA_DIR", dir)
	t.Setenv("MATHCLI_DB_PATH", db)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, db, cfg.DatabasePath)
}

func TestEnvSeriesMaxIgnoresGarbage(t *testing.T) {
	t.Setenv("MATHCLI_SERIES_MAX", "many")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, int64(10000), cfg.Limits.SeriesMax)
}
