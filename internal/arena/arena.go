// Package arena describes the static geometry of the playfield: four walls of
// fixed thickness around a rectangle, and the padding kept between walls and
// anything that moves along them.
package arena

import (
	"errors"
	"fmt"
)

// Reference geometry, in arena units (y-up, origin at the center).
const (
	DefaultLeftWall      = -450.0
	DefaultRightWall     = 450.0
	DefaultBottomWall    = -300.0
	DefaultTopWall       = 300.0
	DefaultWallThickness = 10.0
	DefaultPadding       = 10.0 // How close the paddle can get to a wall
)

// ErrInvalidBounds is returned by Validate for degenerate geometry.
var ErrInvalidBounds = errors.New("arena: invalid bounds")

// Bounds holds the wall center lines, their thickness and the padding margin.
// It is immutable once the simulation starts and shared read-only by every system.
// The config file decodes its arena section straight into a Bounds.
type Bounds struct {
	Left          float64 `yaml:"left" toml:"left"`
	Right         float64 `yaml:"right" toml:"right"`
	Bottom        float64 `yaml:"bottom" toml:"bottom"`
	Top           float64 `yaml:"top" toml:"top"`
	WallThickness float64 `yaml:"wall_thickness" toml:"wall_thickness"`
	Padding       float64 `yaml:"padding" toml:"padding"`
}

// Default returns the reference arena.
func Default() Bounds {
	return Bounds{
		Left:          DefaultLeftWall,
		Right:         DefaultRightWall,
		Bottom:        DefaultBottomWall,
		Top:           DefaultTopWall,
		WallThickness: DefaultWallThickness,
		Padding:       DefaultPadding,
	}
}

// Validate checks that the walls enclose a non-empty playable area.
func (b Bounds) Validate() error {
	if b.WallThickness < 0 || b.Padding < 0 {
		return fmt.Errorf("%w: negative wall thickness or padding", ErrInvalidBounds)
	}
	if b.LeftFace() >= b.RightFace() {
		return fmt.Errorf("%w: left face %.2f must be less than right face %.2f", ErrInvalidBounds, b.LeftFace(), b.RightFace())
	}
	if b.BottomFace() >= b.TopFace() {
		return fmt.Errorf("%w: bottom face %.2f must be less than top face %.2f", ErrInvalidBounds, b.BottomFace(), b.TopFace())
	}
	return nil
}

// TopFace is the y of the top wall's inner surface.
func (b Bounds) TopFace() float64 { return b.Top - b.WallThickness/2 }

// BottomFace is the y of the bottom wall's inner surface.
func (b Bounds) BottomFace() float64 { return b.Bottom + b.WallThickness/2 }

// LeftFace is the x of the left wall's inner surface.
func (b Bounds) LeftFace() float64 { return b.Left + b.WallThickness/2 }

// RightFace is the x of the right wall's inner surface.
func (b Bounds) RightFace() float64 { return b.Right - b.WallThickness/2 }

// TopBound returns the highest center y for an axis-aligned entity with the
// given half-height, keeping Padding clear of the top wall.
func (b Bounds) TopBound(halfHeight float64) float64 {
	return b.TopFace() - halfHeight - b.Padding
}

// BottomBound returns the lowest center y for an axis-aligned entity with the
// given half-height, keeping Padding clear of the bottom wall.
func (b Bounds) BottomBound(halfHeight float64) float64 {
	return b.BottomFace() + halfHeight + b.Padding
}

// Fits reports whether an entity with the given half-height has a legal band
// to move in, i.e. BottomBound <= TopBound.
func (b Bounds) Fits(halfHeight float64) bool {
	return b.BottomBound(halfHeight) <= b.TopBound(halfHeight)
}

// Width returns the distance between the left and right inner faces.
func (b Bounds) Width() float64 { return b.RightFace() - b.LeftFace() }

// Height returns the distance between the bottom and top inner faces.
func (b Bounds) Height() float64 { return b.TopFace() - b.BottomFace() }
