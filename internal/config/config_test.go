package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAppliesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "symbase.toml")
	require.NoError(t, os.WriteFile(path, []byte(``), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"."}, cfg.Roots)
	assert.Equal(t, []string{".sysml", ".kerml"}, cfg.Extensions)
	assert.Equal(t, 500*time.Millisecond, cfg.Watch.Debounce)
	assert.Equal(t, 4.0, cfg.Watch.MaxFlushesPerSecond)
	assert.Equal(t, "default", cfg.History.ProjectKey)
	assert.Contains(t, cfg.Exclude.Dirs, ".git")
}

func TestLoadFullConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "symbase.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
roots = ["models", "lib"]
extensions = [".sysml"]

[exclude]
dirs = ["vendor"]
files = ["*_generated.sysml"]

[watch]
debounce = 250000000
max_flushes_per_second = 2.0

[history]
path = "/tmp/symbase-history.db"
project_key = "demo"

[telemetry]
metrics_addr = ":9102"
otlp_endpoint = "localhost:4317"
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"models", "lib"}, cfg.Roots)
	assert.Equal(t, []string{".sysml"}, cfg.Extensions)
	assert.Equal(t, []string{"vendor"}, cfg.Exclude.Dirs)
	assert.Equal(t, 250*time.Millisecond, cfg.Watch.Debounce)
	assert.Equal(t, 2.0, cfg.Watch.MaxFlushesPerSecond)
	assert.Equal(t, "/tmp/symbase-history.db", cfg.History.Path)
	assert.Equal(t, "demo", cfg.History.ProjectKey)
	assert.Equal(t, ":9102", cfg.Telemetry.MetricsAddr)
	assert.Equal(t, "localhost:4317", cfg.Telemetry.OTLPEndpoint)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, []string{"."}, cfg.Roots)
	assert.NotZero(t, cfg.Watch.Debounce)
}
