// Package config holds the scissors runtime configuration and its YAML loader.
package config

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidConfig is returned by Validate for out-of-range values.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config aggregates all configuration sections.
type Config struct {
	Search SearchConfig `yaml:"search"`
	Image  ImageConfig  `yaml:"image"`
	Log    LogConfig    `yaml:"log"`
	Store  StoreConfig  `yaml:"store"`
}

// SearchConfig tunes the path search. Zero disables a limit.
type SearchConfig struct {
	MaxCost       int64 `yaml:"max_cost"`
	WallThreshold int64 `yaml:"wall_threshold"`
}

// ImageConfig controls how images become intensity fields.
type ImageConfig struct {
	// Luma selects the grayscale conversion: "bt601" or "average".
	Luma string `yaml:"luma"`
	// MaxPixels rejects images with more than this many pixels. 0 = no limit.
	MaxPixels int `yaml:"max_pixels"`
}

// LogConfig controls the charmbracelet logger.
type LogConfig struct {
	Level      string `yaml:"level"`
	Prefix     string `yaml:"prefix"`
	Timestamps bool   `yaml:"timestamps"`
}

// StoreConfig controls the SQLite run history.
type StoreConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// Default returns the hard-coded configuration used when no YAML is found.
func Default() Config {
	return Config{
		Search: SearchConfig{},
		Image: ImageConfig{
			Luma:      "bt601",
			MaxPixels: 1 << 24,
		},
		Log: LogConfig{
			Level:      "info",
			Prefix:     "scissors",
			Timestamps: true,
		},
		Store: StoreConfig{
			Enabled: true,
			Path:    "~/.scissors/paths.db",
		},
	}
}

// Validate reports the first out-of-range value.
func (c Config) Validate() error {
	if c.Search.MaxCost < 0 {
		return fmt.Errorf("%w: search.max_cost must be >= 0, got %d", ErrInvalidConfig, c.Search.MaxCost)
	}
	if c.Search.WallThreshold < 0 {
		return fmt.Errorf("%w: search.wall_threshold must be >= 0, got %d", ErrInvalidConfig, c.Search.WallThreshold)
	}
	switch strings.ToLower(c.Image.Luma) {
	case "bt601", "average":
	default:
		return fmt.Errorf("%w: image.luma must be bt601 or average, got %q", ErrInvalidConfig, c.Image.Luma)
	}
	if c.Image.MaxPixels < 0 {
		return fmt.Errorf("%w: image.max_pixels must be >= 0, got %d", ErrInvalidConfig, c.Image.MaxPixels)
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error", "fatal":
	default:
		return fmt.Errorf("%w: log.level %q is not a known level", ErrInvalidConfig, c.Log.Level)
	}
	if c.Store.Enabled && c.Store.Path == "" {
		return fmt.Errorf("%w: store.path is empty", ErrInvalidConfig)
	}

	return nil
}
