package config

import (
	"fmt"
	"strings"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// Presets lists the known presets in increasing difficulty.
func Presets() []DifficultyPreset {
	return []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard}
}

// ParsePreset parses a preset name. The empty string means normal.
func ParsePreset(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(strings.ToLower(strings.TrimSpace(name))); p {
	case "", DifficultyNormal:
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyHard:
		return p, nil
	default:
		return "", fmt.Errorf("%w: unknown difficulty %q (want easy, normal or hard)", ErrInvalid, name)
	}
}

// presetScale holds the multipliers a preset applies.
type presetScale struct {
	serveSpeed  float64
	speedUp     float64 // Applied to the excess over 1.0
	paddleSpeed float64
}

func scaleFor(preset DifficultyPreset) presetScale {
	switch preset {
	case DifficultyEasy:
		return presetScale{serveSpeed: 0.8, speedUp: 0.5, paddleSpeed: 1.2}
	case DifficultyHard:
		return presetScale{serveSpeed: 1.25, speedUp: 2.0, paddleSpeed: 0.9}
	default:
		return presetScale{serveSpeed: 1, speedUp: 1, paddleSpeed: 1}
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
// Normal leaves the config unchanged.
func ApplyPreset(cfg *Config, preset DifficultyPreset) {
	s := scaleFor(preset)
	cfg.Ball.ServeSpeed *= s.serveSpeed
	cfg.Paddle.Speed *= s.paddleSpeed
	if cfg.Ball.SpeedUp > 1 {
		cfg.Ball.SpeedUp = 1 + (cfg.Ball.SpeedUp-1)*s.speedUp
	}
}
