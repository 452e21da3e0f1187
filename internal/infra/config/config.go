// Package config provides configuration loading from YAML files.
package config

import (
	"os"

	"github.com/cockroachdb/errors"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Library LibraryConfig `yaml:"library"`
	Player  PlayerConfig  `yaml:"player"`
	Media   MediaConfig   `yaml:"media"`
	API     APIConfig     `yaml:"api"`
	Labels  LabelsConfig  `yaml:"labels"`
	Log     LogConfig     `yaml:"log"`
}

// LibraryConfig represents playlist library configuration.
type LibraryConfig struct {
	Playlist string `yaml:"playlist" validate:"required"`
	Watch    bool   `yaml:"watch"`
}

// PlayerConfig represents playback control configuration.
type PlayerConfig struct {
	RewindThresholdSec float64 `yaml:"rewind_threshold_sec" default:"3" validate:"gte=0,lte=60"`
}

// MediaConfig represents the media backend configuration.
// Settings is backend-specific and decoded by the backend factory.
type MediaConfig struct {
	Backend  string         `yaml:"backend" default:"beep"`
	Settings map[string]any `yaml:"settings"`
}

// APIConfig represents the remote-control API configuration.
type APIConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr" default:":8090"`
}

// LabelsConfig holds the display strings. No label is synthesized
// internally; every one must come from the configuration.
type LabelsConfig struct {
	Heading  string `yaml:"heading" validate:"required"`
	Play     string `yaml:"play" validate:"required"`
	Pause    string `yaml:"pause" validate:"required"`
	Previous string `yaml:"previous" validate:"required"`
	Next     string `yaml:"next" validate:"required"`
	Seek     string `yaml:"seek" validate:"required"`
}

// LogConfig represents logging configuration.
type LogConfig struct {
	Output string `yaml:"output" default:"stderr"`
	Level  string `yaml:"level" default:"info"`
}

// Load loads configuration from a YAML file.
// Environment variables take precedence over file values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config file")
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse config file")
	}

	// Override with environment variables
	cfg.overrideFromEnv()

	// Set defaults using creasty/defaults
	if err := defaults.Set(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to set defaults")
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "config validation failed")
	}

	return &cfg, nil
}

// overrideFromEnv overrides config values with environment variables.
func (c *Config) overrideFromEnv() {
	if v := os.Getenv("PLAYDECK_PLAYLIST"); v != "" {
		c.Library.Playlist = v
	}
	if v := os.Getenv("PLAYDECK_API_ADDR"); v != "" {
		c.API.Addr = v
	}
	if v := os.Getenv("PLAYDECK_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(err, "struct validation failed")
	}
	return nil
}
