package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "patrol.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, runtime.GOMAXPROCS(0), cfg.Scan.Workers)
	assert.False(t, cfg.Scan.PruneToPath)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Empty(t, cfg.Metrics.File)
}

func TestLoad_YAML(t *testing.T) {
	path := writeConfig(t, `scan:
  workers: 3
  prune_to_path: true
log:
  level: debug
  format: json
metrics:
  file: /tmp/patrol.prom
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Scan.Workers)
	assert.True(t, cfg.Scan.PruneToPath)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "/tmp/patrol.prom", cfg.Metrics.File)
}

func TestLoad_EnvOverridesYAML(t *testing.T) {
	path := writeConfig(t, "scan:\n  workers: 3\nlog:\n  level: debug\n")
	t.Setenv("PATROL_SCAN_WORKERS", "7")
	t.Setenv("PATROL_SCAN_PRUNE_TO_PATH", "true")
	t.Setenv("PATROL_LOG_FORMAT", "json")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.Scan.Workers)
	assert.True(t, cfg.Scan.PruneToPath)
	assert.Equal(t, "debug", cfg.Log.Level, "YAML value kept when env is unset")
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open config file")
}

func TestLoad_DirectoryRejected(t *testing.T) {
	_, err := Load(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a regular file")
}

func TestLoad_OversizedFile(t *testing.T) {
	path := writeConfig(t, "# "+strings.Repeat("x", maxConfigFileSize))
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too large")
}

func TestLoad_InvalidValues(t *testing.T) {
	for name, content := range map[string]string{
		"negative workers": "scan:\n  workers: -2\n",
		"bad level":        "log:\n  level: loud\n",
		"bad format":       "log:\n  format: xml\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "config validation failed")
		})
	}
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "scan.workers", envKey("PATROL_SCAN_WORKERS"))
	assert.Equal(t, "scan.prune_to_path", envKey("PATROL_SCAN_PRUNE_TO_PATH"))
	assert.Equal(t, "metrics.file", envKey("PATROL_METRICS_FILE"))
}

func TestConfig_Logging(t *testing.T) {
	cfg := Default()
	cfg.Log.Level = "trace"
	cfg.Log.Format = "json"

	lc, err := cfg.Logging()
	require.NoError(t, err)
	assert.Equal(t, zapcore.Level(-2), lc.Level)
	assert.Equal(t, "json", lc.Format)
	assert.False(t, lc.Caller)
	assert.Equal(t, map[string]string{"service": "patrol"}, lc.Fields)
}

func TestConfig_LoggingCallerAndFields(t *testing.T) {
	path := writeConfig(t, "log:\n  caller: true\n  fields:\n    site: north-wing\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	lc, err := cfg.Logging()
	require.NoError(t, err)

	assert.True(t, lc.Caller)
	assert.Equal(t, "north-wing", lc.Fields["site"])
	assert.Equal(t, "patrol", lc.Fields["service"])
}

func TestConfig_LoggingRejectsEmptyField(t *testing.T) {
	cfg := Default()
	cfg.Log.Fields = map[string]string{"site": ""}

	_, err := cfg.Logging()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `field "site" has empty value`)
}
