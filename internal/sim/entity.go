// Package sim implements the per-tick arena simulation: one paddle on the left
// wall, one ball, and the collision rules between them and the walls.
// It is a pure state transform with no I/O; the host decides when to tick
// and what to do with the events a tick produces.
package sim

import (
	"iter"

	"github.com/vovakirdan/paddle-arena/internal/core"
)

// Capability is a bitmask of behaviours an entity takes part in.
type Capability uint8

const (
	// CapCollider marks an entity as participating in collision queries.
	CapCollider Capability = 1 << iota
	// CapControlled marks an entity driven by the input signal.
	CapControlled
	// CapKinematic marks an entity integrated from its velocity each tick.
	CapKinematic
)

// Has reports whether all bits of o are set.
func (c Capability) Has(o Capability) bool {
	return c&o == o
}

// EntityKind identifies one of the fixed entities in the store.
type EntityKind uint8

const (
	KindPaddle EntityKind = iota
	KindBall
)

// String returns a human-readable name for the entity kind.
func (k EntityKind) String() string {
	switch k {
	case KindPaddle:
		return "paddle"
	case KindBall:
		return "ball"
	default:
		return "unknown"
	}
}

// Paddle is the player-controlled rectangle. Only Position.Y changes after creation.
type Paddle struct {
	Position core.Vec2 // Center
	Size     core.Vec2 // Full width x height
	Speed    float64   // Units per second
	Caps     Capability
}

// HalfHeight returns half the paddle's vertical extent.
func (p Paddle) HalfHeight() float64 {
	return p.Size.Y / 2
}

// Rect returns the paddle's bounding box.
func (p Paddle) Rect() core.Rect {
	return core.RectFromCenter(p.Position, p.Size)
}

// Ball is a circle moving at a constant velocity between contacts.
type Ball struct {
	Position core.Vec2 // Center
	Velocity core.Vec2 // Units per second
	Radius   float64
	InPlay   bool // False after a miss until the next serve
	Caps     Capability
}

// Store owns the mutable state of every entity. Entities never reference each
// other; interaction happens only through geometry in the collision system.
type Store struct {
	Paddle Paddle
	Ball   Ball
}

// Caps returns the capability mask of the given entity.
func (s *Store) Caps(k EntityKind) Capability {
	switch k {
	case KindPaddle:
		return s.Paddle.Caps
	case KindBall:
		return s.Ball.Caps
	default:
		return 0
	}
}

// Tagged yields every entity carrying all bits of c, in kind order.
func (s *Store) Tagged(c Capability) iter.Seq[EntityKind] {
	return func(yield func(EntityKind) bool) {
		for _, k := range [...]EntityKind{KindPaddle, KindBall} {
			if s.Caps(k).Has(c) && !yield(k) {
				return
			}
		}
	}
}

// Colliders yields the entities taking part in collision queries.
func (s *Store) Colliders() iter.Seq[EntityKind] {
	return s.Tagged(CapCollider)
}

// collides reports whether both entities are among the colliders.
func (s *Store) collides(a, b EntityKind) bool {
	var hasA, hasB bool
	for k := range s.Colliders() {
		hasA = hasA || k == a
		hasB = hasB || k == b
	}
	return hasA && hasB
}
