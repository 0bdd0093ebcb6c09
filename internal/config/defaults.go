package config

import (
	_ "embed"

	"github.com/vovakirdan/paddle-arena/internal/arena"
)

//go:embed defaults/arena.yaml
var defaultArenaYAML []byte

// Default host parameters.
const (
	DefaultTickRate     = 60
	DefaultServeDelay   = 60
	DefaultMaxCatchUp   = 5
	DefaultObserveEvery = 60
)

// DefaultConfig returns the default arena configuration.
func DefaultConfig() Config {
	return Config{
		Arena: arena.Default(),
		Paddle: PaddleConfig{
			Width:  20,
			Height: 120,
			Gap:    20,
			Speed:  500,
		},
		Ball: BallConfig{
			Radius:         5,
			StartX:         0,
			StartY:         -50,
			ServeSpeed:     300,
			MaxServeAngle:  30,
			MaxBounceAngle: 60,
			SpeedUp:        1.05,
			MaxSpeed:       900,
		},
		Host: HostConfig{
			TickRate:     DefaultTickRate,
			ServeDelay:   DefaultServeDelay,
			MaxCatchUp:   DefaultMaxCatchUp,
			ObserveEvery: DefaultObserveEvery,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultArenaYAML
}
