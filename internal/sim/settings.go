package sim

import (
	"errors"
	"fmt"
	"math"

	"github.com/vovakirdan/paddle-arena/internal/arena"
	"github.com/vovakirdan/paddle-arena/internal/core"
)

// Default entity settings, in arena units and seconds.
const (
	DefaultPaddleWidth    = 20.0
	DefaultPaddleHeight   = 120.0
	DefaultPaddleGap      = 20.0 // Distance from the left wall center line to the paddle center
	DefaultPaddleSpeed    = 500.0
	DefaultBallRadius     = 5.0
	DefaultBallStartX     = 0.0
	DefaultBallStartY     = -50.0
	DefaultServeSpeed     = 300.0
	DefaultMaxServeAngle  = math.Pi / 6 // 30 degrees either side of horizontal
	DefaultMaxBounceAngle = math.Pi / 3 // 60 degrees at the paddle's edge
	DefaultSpeedUp        = 1.05
	DefaultMaxSpeed       = 900.0
)

// ErrInvalidSettings is returned by Settings.Validate.
var ErrInvalidSettings = errors.New("sim: invalid settings")

// Settings holds every constant the simulation reads. It is fixed for a session.
type Settings struct {
	Bounds arena.Bounds

	PaddleSize  core.Vec2
	PaddleGap   float64
	PaddleSpeed float64

	BallStart      core.Vec2
	BallRadius     float64
	ServeSpeed     float64
	MaxServeAngle  float64 // Radians
	MaxBounceAngle float64 // Radians
	SpeedUp        float64 // Speed multiplier per paddle hit
	MaxSpeed       float64 // Cap on ball speed, 0 = uncapped
}

// DefaultSettings returns the reference arena and entity constants.
func DefaultSettings() Settings {
	return Settings{
		Bounds:         arena.Default(),
		PaddleSize:     core.V(DefaultPaddleWidth, DefaultPaddleHeight),
		PaddleGap:      DefaultPaddleGap,
		PaddleSpeed:    DefaultPaddleSpeed,
		BallStart:      core.V(DefaultBallStartX, DefaultBallStartY),
		BallRadius:     DefaultBallRadius,
		ServeSpeed:     DefaultServeSpeed,
		MaxServeAngle:  DefaultMaxServeAngle,
		MaxBounceAngle: DefaultMaxBounceAngle,
		SpeedUp:        DefaultSpeedUp,
		MaxSpeed:       DefaultMaxSpeed,
	}
}

// PaddleX returns the fixed x of the paddle center.
func (s Settings) PaddleX() float64 {
	return s.Bounds.Left + s.PaddleGap
}

// Validate checks that the entities fit inside the arena.
func (s Settings) Validate() error {
	if err := s.Bounds.Validate(); err != nil {
		return err
	}
	if s.PaddleSize.X <= 0 || s.PaddleSize.Y <= 0 {
		return fmt.Errorf("%w: paddle size must be positive", ErrInvalidSettings)
	}
	if !s.Bounds.Fits(s.PaddleSize.Y / 2) {
		return fmt.Errorf("%w: paddle of height %.2f does not fit between the walls", ErrInvalidSettings, s.PaddleSize.Y)
	}
	if s.PaddleSpeed < 0 {
		return fmt.Errorf("%w: paddle speed must not be negative", ErrInvalidSettings)
	}
	if s.BallRadius <= 0 {
		return fmt.Errorf("%w: ball radius must be positive", ErrInvalidSettings)
	}
	if 2*s.BallRadius >= s.Bounds.Height() {
		return fmt.Errorf("%w: ball of radius %.2f does not fit between the walls", ErrInvalidSettings, s.BallRadius)
	}
	if s.ServeSpeed < 0 || s.SpeedUp < 0 || s.MaxSpeed < 0 {
		return fmt.Errorf("%w: speeds must not be negative", ErrInvalidSettings)
	}
	if s.MaxServeAngle < 0 || s.MaxServeAngle >= math.Pi/2 || s.MaxBounceAngle < 0 || s.MaxBounceAngle >= math.Pi/2 {
		return fmt.Errorf("%w: angles must be in [0, 90) degrees", ErrInvalidSettings)
	}
	return nil
}
