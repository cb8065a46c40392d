// Package config loads sortplay settings from the environment.
//
// Every field has a default, so an empty environment is valid. Command-line
// flags override whatever Load returns.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the host-level settings shared by the sortplay commands.
type Config struct {
	// Size is the number of cells in a fresh array.
	Size int `env:"SORTPLAY_SIZE" envDefault:"64"`

	// Seconds is the target playback duration for play.
	Seconds float64 `env:"SORTPLAY_SECONDS" envDefault:"5"`

	// FrameRate is the number of frames per second play renders.
	FrameRate float64 `env:"SORTPLAY_FRAME_RATE" envDefault:"60"`

	// Seed seeds shuffles. 0 picks a random seed.
	Seed int64 `env:"SORTPLAY_SEED" envDefault:"0"`

	// Database is the SQLite path used by record, replay and trace.
	Database string `env:"SORTPLAY_DB" envDefault:"sortplay.db"`

	// MaxOperations bounds one recording. 0 disables the bound.
	MaxOperations int `env:"SORTPLAY_MAX_OPERATIONS" envDefault:"50000000"`
}

// Load parses Config from the environment and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values no command can run with.
func (c Config) Validate() error {
	if c.Size < 0 {
		return fmt.Errorf("size must be >= 0, got %d", c.Size)
	}
	if c.FrameRate <= 0 {
		return fmt.Errorf("frame rate must be > 0, got %v", c.FrameRate)
	}
	if c.MaxOperations < 0 {
		return fmt.Errorf("max operations must be >= 0, got %d", c.MaxOperations)
	}
	return nil
}
