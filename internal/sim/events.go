package sim

import "github.com/vovakirdan/paddle-arena/internal/core"

// Side names one of the four arena walls.
type Side uint8

const (
	SideNone Side = iota
	SideLeft
	SideRight
	SideTop
	SideBottom
)

// String returns a human-readable name for the side.
func (s Side) String() string {
	switch s {
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	case SideTop:
		return "top"
	case SideBottom:
		return "bottom"
	default:
		return "none"
	}
}

// EventKind classifies what happened to the ball during a tick.
type EventKind uint8

const (
	// EventServe is emitted when the ball is (re)launched.
	EventServe EventKind = iota + 1
	// EventWallHit is a bounce off the top or bottom wall.
	EventWallHit
	// EventPaddleHit is a return off the paddle.
	EventPaddleHit
	// EventMiss is emitted when the ball crosses the left or right wall and leaves play.
	EventMiss
)

// String returns a human-readable name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventServe:
		return "serve"
	case EventWallHit:
		return "wall_hit"
	case EventPaddleHit:
		return "paddle_hit"
	case EventMiss:
		return "miss"
	default:
		return "unknown"
	}
}

// Event describes a contact or state change produced by a tick.
type Event struct {
	Kind     EventKind
	Tick     uint64
	Side     Side      // Wall involved, SideNone for paddle hits and serves
	Offset   float64   // Paddle hits: contact offset from paddle center in [-1, 1]
	Position core.Vec2 // Ball center after resolution
	Velocity core.Vec2 // Ball velocity after resolution
}
