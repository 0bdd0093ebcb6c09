// Package config provides YAML and TOML configuration loading, difficulty
// presets and validation for the arena simulation.
package config

import (
	"errors"
	"fmt"
	"math"

	"github.com/vovakirdan/paddle-arena/internal/arena"
	"github.com/vovakirdan/paddle-arena/internal/core"
	"github.com/vovakirdan/paddle-arena/internal/sim"
)

// ErrInvalid is returned when a loaded configuration fails validation.
var ErrInvalid = errors.New("config: invalid configuration")

// Config contains all configuration for one arena session.
type Config struct {
	Arena  arena.Bounds `yaml:"arena" toml:"arena"`
	Paddle PaddleConfig `yaml:"paddle" toml:"paddle"`
	Ball   BallConfig   `yaml:"ball" toml:"ball"`
	Host   HostConfig   `yaml:"host" toml:"host"`
}

// PaddleConfig defines paddle parameters.
type PaddleConfig struct {
	Width  float64 `yaml:"width" toml:"width"`
	Height float64 `yaml:"height" toml:"height"`
	Gap    float64 `yaml:"gap" toml:"gap"`     // Offset of the paddle center from the left wall
	Speed  float64 `yaml:"speed" toml:"speed"` // Units per second
}

// BallConfig defines ball and serve parameters. Angles are in degrees.
type BallConfig struct {
	Radius         float64 `yaml:"radius" toml:"radius"`
	StartX         float64 `yaml:"start_x" toml:"start_x"`
	StartY         float64 `yaml:"start_y" toml:"start_y"`
	ServeSpeed     float64 `yaml:"serve_speed" toml:"serve_speed"`
	MaxServeAngle  float64 `yaml:"max_serve_angle" toml:"max_serve_angle"`
	MaxBounceAngle float64 `yaml:"max_bounce_angle" toml:"max_bounce_angle"`
	SpeedUp        float64 `yaml:"speed_up" toml:"speed_up"`   // Multiplier applied on each paddle hit
	MaxSpeed       float64 `yaml:"max_speed" toml:"max_speed"` // 0 = uncapped
}

// HostConfig defines how the headless host drives the simulation.
type HostConfig struct {
	TickRate     int `yaml:"tick_rate" toml:"tick_rate"`
	ServeDelay   int `yaml:"serve_delay" toml:"serve_delay"`     // Ticks between a miss and the next serve
	MaxCatchUp   int `yaml:"max_catch_up" toml:"max_catch_up"`   // Steps per wake-up in realtime mode
	ObserveEvery int `yaml:"observe_every" toml:"observe_every"` // Ticks between transform log lines, 0 = off
}

// Settings converts the configuration into simulation settings.
func (c Config) Settings() sim.Settings {
	return sim.Settings{
		Bounds:         c.Arena,
		PaddleSize:     core.V(c.Paddle.Width, c.Paddle.Height),
		PaddleGap:      c.Paddle.Gap,
		PaddleSpeed:    c.Paddle.Speed,
		BallStart:      core.V(c.Ball.StartX, c.Ball.StartY),
		BallRadius:     c.Ball.Radius,
		ServeSpeed:     c.Ball.ServeSpeed,
		MaxServeAngle:  degToRad(c.Ball.MaxServeAngle),
		MaxBounceAngle: degToRad(c.Ball.MaxBounceAngle),
		SpeedUp:        c.Ball.SpeedUp,
		MaxSpeed:       c.Ball.MaxSpeed,
	}
}

// Runtime builds the runtime config for a seed, using the configured tick rate.
func (c Config) Runtime(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{TickRate: c.Host.TickRate, Seed: seed}
}

// Validate checks the configuration and returns an error wrapping ErrInvalid.
func (c Config) Validate() error {
	if err := c.Settings().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if c.Ball.StartX-c.Ball.Radius <= c.Arena.Left+c.Arena.WallThickness/2 ||
		c.Ball.StartX+c.Ball.Radius >= c.Arena.Right-c.Arena.WallThickness/2 {
		return fmt.Errorf("%w: ball start x %.2f is outside the arena", ErrInvalid, c.Ball.StartX)
	}
	if c.Host.TickRate <= 0 {
		return fmt.Errorf("%w: tick_rate must be positive, got %d", ErrInvalid, c.Host.TickRate)
	}
	if c.Host.ServeDelay < 0 {
		return fmt.Errorf("%w: serve_delay must not be negative", ErrInvalid)
	}
	if c.Host.MaxCatchUp < 1 {
		return fmt.Errorf("%w: max_catch_up must be at least 1", ErrInvalid)
	}
	if c.Host.ObserveEvery < 0 {
		return fmt.Errorf("%w: observe_every must not be negative", ErrInvalid)
	}
	return nil
}

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}
