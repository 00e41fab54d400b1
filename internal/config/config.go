// Package config provides Framecast configuration loading.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config contains the Framecast application configuration.
type Config struct {
	// DatabasePath is the location of the sqlite library database.
	DatabasePath string `mapstructure:"database_path"`

	// LibraryDir is the default directory for scene documents.
	LibraryDir string `mapstructure:"library_dir"`

	// LogLevel is the zerolog level name (debug, info, warn, error).
	LogLevel string `mapstructure:"log_level"`

	// LogFile, when set, receives log output instead of stderr.
	LogFile string `mapstructure:"log_file"`

	// Theme selects the TUI color theme.
	Theme string `mapstructure:"theme"`

	// ZoomFill is the viewport fraction a slide occupies, in (0, 1].
	ZoomFill float64 `mapstructure:"zoom_fill"`

	// AnimationMS is the slide transition duration in milliseconds.
	// Zero disables animated transitions.
	AnimationMS int `mapstructure:"animation_ms"`

	// SyncBaseURL is the base URL of the document sync backend.
	SyncBaseURL string `mapstructure:"sync_base_url"`
}

// DefaultConfigDir returns the directory holding the config file.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".config", "framecast")
}

// DefaultDatabasePath returns the default sqlite database location.
func DefaultDatabasePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".local", "share", "framecast", "framecast.db")
}

// Load reads configuration from the config file (if present), environment
// variables prefixed FRAMECAST_, and defaults, in increasing precedence of
// env over file over defaults.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigDir())
}

// LoadFrom loads configuration with an explicit config directory.
func LoadFrom(configDir string) (*Config, error) {
	v := viper.New()

	v.SetDefault("database_path", DefaultDatabasePath())
	v.SetDefault("library_dir", filepath.Join(filepath.Dir(DefaultDatabasePath()), "scenes"))
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "")
	v.SetDefault("theme", "default")
	v.SetDefault("zoom_fill", 0.7)
	v.SetDefault("animation_ms", 300)
	v.SetDefault("sync_base_url", "")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)

	v.SetEnvPrefix("FRAMECAST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks configuration invariants.
func (c *Config) Validate() error {
	if c.DatabasePath == "" {
		return fmt.Errorf("database_path is required")
	}
	if c.ZoomFill <= 0 || c.ZoomFill > 1 {
		return fmt.Errorf("zoom_fill must be in (0, 1], got %v", c.ZoomFill)
	}
	if c.AnimationMS < 0 {
		return fmt.Errorf("animation_ms must be non-negative, got %d", c.AnimationMS)
	}
	switch c.LogLevel {
	case "trace", "debug", "info", "warn", "error", "fatal", "":
	default:
		return fmt.Errorf("unknown log_level %q", c.LogLevel)
	}
	return nil
}
