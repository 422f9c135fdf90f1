// Package config holds the run configuration of the kahuna command.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig indicates a configuration that failed validation.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Observer names accepted by SolveConfig.Observer.
const (
	ObserverWeighted = "weighted"
	ObserverUniform  = "uniform"
)

var validate = validator.New()

// Config holds all run settings.
type Config struct {
	Grid GridConfig `yaml:"grid"`
	// Prototypes is a path to a prototype document; empty means the bundled set.
	Prototypes string      `yaml:"prototypes"`
	Solve      SolveConfig `yaml:"solve"`
	Log        LogConfig   `yaml:"log"`
}

// GridConfig holds the cube dimensions.
type GridConfig struct {
	Width  int `yaml:"width" validate:"gte=1,lte=512"`
	Length int `yaml:"length" validate:"gte=1,lte=512"`
	Height int `yaml:"height" validate:"gte=1,lte=512"`
}

// SolveConfig holds solver settings.
type SolveConfig struct {
	Seed     uint64 `yaml:"seed"`
	Count    int    `yaml:"count" validate:"gte=1"`    // independent worlds
	Parallel int    `yaml:"parallel" validate:"gte=1"` // concurrent solves
	MaxSteps int    `yaml:"max_steps" validate:"gte=0"`
	Observer string `yaml:"observer" validate:"oneof=weighted uniform"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `yaml:"level" validate:"oneof=debug info warn error"`
}

// Default returns the settings of the classic demo: one 3×3×3 world, seed 1.
func Default() *Config {
	cfg := &Config{}
	cfg.setDefaults()

	return cfg
}

// Load reads configuration from a YAML file. Missing fields take defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	cfg.setDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) setDefaults() {
	if c.Grid.Width == 0 {
		c.Grid.Width = 3
	}
	if c.Grid.Length == 0 {
		c.Grid.Length = 3
	}
	if c.Grid.Height == 0 {
		c.Grid.Height = 3
	}
	if c.Solve.Seed == 0 {
		c.Solve.Seed = 1
	}
	if c.Solve.Count == 0 {
		c.Solve.Count = 1
	}
	if c.Solve.Parallel == 0 {
		c.Solve.Parallel = 1
	}
	if c.Solve.Observer == "" {
		c.Solve.Observer = ObserverWeighted
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	c.Log.Level = strings.ToLower(c.Log.Level)
}

// Validate checks field ranges.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	return nil
}

// SlogLevel maps Log.Level to a slog level.
func (c *Config) SlogLevel() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo
	}

	return l
}
