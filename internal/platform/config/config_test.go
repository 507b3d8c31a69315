package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell/internal/platform/config"
)

func TestNewDerivesVaultLayout(t *testing.T) {
	t.Parallel()
	cfg, err := config.New("/vault")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/vault", ".inkwell", "storage"), cfg.StorageDir)
	assert.Equal(t, filepath.Join("/vault", ".inkwell", "inkwell.db"), cfg.DBPath)
	assert.Equal(t, filepath.Join("/vault", "manuscripts"), cfg.ManuscriptDir)
	assert.Equal(t, 365, cfg.Progress.RetentionDays)

	_, err = config.New("")
	require.Error(t, err)
}

func TestLoadReadsYAMLOverrides(t *testing.T) {
	t.Parallel()
	vault := t.TempDir()
	yaml := "log:\n  level: debug\nprogress:\n  retention_days: 30\nwatch:\n  debounce: 2s\n  metrics_addr: 127.0.0.1:9300\nschedule:\n  reconcile_at: \"01:30\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(vault, "inkwell.yaml"), []byte(yaml), 0o644))

	cfg, err := config.Load(vault)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 30, cfg.Progress.RetentionDays)
	assert.Equal(t, 2*time.Second, cfg.Watch.Debounce)
	assert.Equal(t, "127.0.0.1:9300", cfg.Watch.MetricsAddr)
	assert.Equal(t, "01:30", cfg.Schedule.ReconcileAt)
}

func TestLoadWithoutFilesKeepsDefaults(t *testing.T) {
	t.Parallel()
	vault := t.TempDir()
	cfg, err := config.Load(vault)
	require.NoError(t, err)
	assert.Equal(t, "00:05", cfg.Schedule.ReconcileAt)
	assert.Equal(t, 750*time.Millisecond, cfg.Watch.Debounce)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Parallel()
	vault := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(vault, "inkwell.yaml"), []byte("progress:\n  retention_days: 0\n"), 0o644))
	_, err := config.Load(vault)
	require.Error(t, err)
}
