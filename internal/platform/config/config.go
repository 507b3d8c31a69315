package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DataDirName   = ".inkwell"
	ConfigName    = "inkwell"
	EnvPrefix     = "INKWELL"
	ManuscriptDir = "manuscripts"
)

type Config struct {
	VaultPath     string
	DataDir       string
	StorageDir    string
	DBPath        string
	ManuscriptDir string

	Log      LogConfig
	Progress ProgressConfig
	Watch    WatchConfig
	Schedule ScheduleConfig
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
	// Verbose mirrors file-level logging to stderr. Set from the CLI flag.
	Verbose bool `mapstructure:"-"`
}

type ProgressConfig struct {
	RetentionDays int `mapstructure:"retention_days"`
}

type WatchConfig struct {
	Debounce    time.Duration `mapstructure:"debounce"`
	MetricsAddr string        `mapstructure:"metrics_addr"`
}

type ScheduleConfig struct {
	ReconcileAt string `mapstructure:"reconcile_at"`
}

// New derives the vault layout with default settings and no file or
// environment overrides.
func New(vaultPath string) (Config, error) {
	if vaultPath == "" {
		return Config{}, fmt.Errorf("vault path is required")
	}
	dataDir := filepath.Join(vaultPath, DataDirName)
	return Config{
		VaultPath:     vaultPath,
		DataDir:       dataDir,
		StorageDir:    filepath.Join(dataDir, "storage"),
		DBPath:        filepath.Join(dataDir, "inkwell.db"),
		ManuscriptDir: filepath.Join(vaultPath, ManuscriptDir),
		Log: LogConfig{
			Level: "info",
			File:  filepath.Join(dataDir, "logs", "inkwell.log"),
		},
		Progress: ProgressConfig{RetentionDays: 365},
		Watch:    WatchConfig{Debounce: 750 * time.Millisecond},
		Schedule: ScheduleConfig{ReconcileAt: "00:05"},
	}, nil
}

// Load layers <vault>/.env, <vault>/inkwell.yaml and INKWELL_* variables over
// the defaults from New. Both files are optional.
func Load(vaultPath string) (Config, error) {
	cfg, err := New(vaultPath)
	if err != nil {
		return Config{}, err
	}

	envFile := filepath.Join(vaultPath, ".env")
	if _, err := os.Stat(envFile); err == nil {
		if err := godotenv.Load(envFile); err != nil {
			return Config{}, fmt.Errorf("load .env: %w", err)
		}
	}

	v := viper.New()
	v.SetConfigName(ConfigName)
	v.SetConfigType("yaml")
	v.AddConfigPath(vaultPath)
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.file", cfg.Log.File)
	v.SetDefault("progress.retention_days", cfg.Progress.RetentionDays)
	v.SetDefault("watch.debounce", cfg.Watch.Debounce)
	v.SetDefault("watch.metrics_addr", cfg.Watch.MetricsAddr)
	v.SetDefault("schedule.reconcile_at", cfg.Schedule.ReconcileAt)
	for _, key := range []string{"log.level", "log.file", "progress.retention_days", "watch.debounce", "watch.metrics_addr", "schedule.reconcile_at"} {
		_ = v.BindEnv(key)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	cfg.Log.Level = v.GetString("log.level")
	cfg.Log.File = v.GetString("log.file")
	cfg.Progress.RetentionDays = v.GetInt("progress.retention_days")
	cfg.Watch.Debounce = v.GetDuration("watch.debounce")
	cfg.Watch.MetricsAddr = v.GetString("watch.metrics_addr")
	cfg.Schedule.ReconcileAt = v.GetString("schedule.reconcile_at")

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Progress.RetentionDays < 1 {
		return fmt.Errorf("progress.retention_days must be at least 1, got %d", c.Progress.RetentionDays)
	}
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("watch.debounce must not be negative")
	}
	if _, err := time.Parse("15:04", c.Schedule.ReconcileAt); err != nil {
		return fmt.Errorf("schedule.reconcile_at must be HH:MM: %w", err)
	}
	return nil
}
