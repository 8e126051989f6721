package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config is dotkeep's project configuration, read from an optional
// .dotkeep.yaml in the working directory. Every knob has a default so
// the tool works in a bare project.
type Config struct {
	App    AppConfig    `mapstructure:"app"`
	Files  FilesConfig  `mapstructure:"files"`
	Backup BackupConfig `mapstructure:"backup"`
	Watch  WatchConfig  `mapstructure:"watch"`
}

type AppConfig struct {
	LogLevel string `mapstructure:"log_level"`
	LogFile  string `mapstructure:"log_file"`
}

type FilesConfig struct {
	// Source is the source-of-truth file for key reconciliation.
	Source string `mapstructure:"source"`
	// Targets is the env file family kept in sync and covered by
	// snapshots.
	Targets []string `mapstructure:"targets"`
}

type BackupConfig struct {
	DirName   string `mapstructure:"dir_name"`
	KeepCount int    `mapstructure:"keep_count"`
}

type WatchConfig struct {
	Debounce time.Duration `mapstructure:"debounce"`
	// Schedule is an optional 5-field cron spec for periodic snapshots
	// in watch mode; empty disables it.
	Schedule string `mapstructure:"schedule"`
	// CleanupSchedule prunes old snapshots in watch mode.
	CleanupSchedule string `mapstructure:"cleanup_schedule"`
}

// Load reads the configuration for a working directory. A missing
// config file is not an error; defaults apply.
func Load(workDir string) (*Config, error) {
	v := viper.New()
	v.SetConfigName(".dotkeep")
	v.SetConfigType("yaml")
	v.AddConfigPath(workDir)

	v.SetDefault("app.log_level", "info")
	v.SetDefault("files.source", ".env.example")
	v.SetDefault("files.targets", []string{".env", ".env.local", ".env.development", ".env.production"})
	v.SetDefault("backup.dir_name", ".dotkeep-backups")
	v.SetDefault("backup.keep_count", 10)
	v.SetDefault("watch.debounce", 2*time.Second)
	v.SetDefault("watch.cleanup_schedule", "0 3 * * *")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Files.Source == "" {
		return fmt.Errorf("files.source is required")
	}
	if len(c.Files.Targets) == 0 {
		return fmt.Errorf("files.targets must list at least one file")
	}
	if c.Backup.DirName == "" {
		return fmt.Errorf("backup.dir_name is required")
	}
	if c.Backup.KeepCount < 0 {
		return fmt.Errorf("backup.keep_count must not be negative")
	}
	return nil
}

// Family returns every file covered by snapshots: the targets plus the
// source of truth, without duplicates.
func (c *Config) Family() []string {
	family := make([]string, 0, len(c.Files.Targets)+1)
	seen := make(map[string]bool)
	for _, f := range append([]string{c.Files.Source}, c.Files.Targets...) {
		if !seen[f] {
			seen[f] = true
			family = append(family, f)
		}
	}
	return family
}
