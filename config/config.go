// Package config loads simulation settings from the environment
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/lixenwraith/pinball/parameter"
	"github.com/lixenwraith/pinball/vmath"
)

// Config controls a simulation run
type Config struct {
	Seed        uint64  `env:"PINBALL_SEED"         envDefault:"1"`
	Difficulty  float32 `env:"PINBALL_DIFFICULTY"   envDefault:"0.2"`
	HardScatter float32 `env:"PINBALL_HARD_SCATTER" envDefault:"0"`
	Gravity     float32 `env:"PINBALL_GRAVITY"      envDefault:"1.762985"`
	SlopeDeg    float32 `env:"PINBALL_SLOPE_DEG"    envDefault:"6"`

	// MaxCycleIterations bounds the collision rescans of one physics tick
	MaxCycleIterations int `env:"PINBALL_MAX_CYCLE_ITERATIONS" envDefault:"64"`

	Debug      bool   `env:"PINBALL_DEBUG"`
	StreamAddr string `env:"PINBALL_STREAM_ADDR"`
	Script     string `env:"PINBALL_SCRIPT"`
}

// Load parses the environment on top of the defaults
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

// Default returns the built-in settings without reading the environment
func Default() Config {
	return Config{
		Seed:               1,
		Difficulty:         0.2,
		Gravity:            1.762985,
		SlopeDeg:           6,
		MaxCycleIterations: 64,
	}
}

// Validate rejects settings the engine cannot run with
func (c Config) Validate() error {
	if c.MaxCycleIterations <= 0 {
		return fmt.Errorf("max cycle iterations must be positive, got %d", c.MaxCycleIterations)
	}
	if c.Difficulty < 0 || c.Difficulty > 1 {
		return fmt.Errorf("difficulty must be within [0,1], got %v", c.Difficulty)
	}
	return nil
}

// GravityVector returns gravity in engine units for the configured table slope
// The playfield tilts toward +Y (the player side)
func (c Config) GravityVector() mgl32.Vec3 {
	slope := mgl32.DegToRad(c.SlopeDeg)
	g := c.Gravity * parameter.GravityConst
	return mgl32.Vec3{0, vmath.Sin(slope) * g, -vmath.Cos(slope) * g}
}
