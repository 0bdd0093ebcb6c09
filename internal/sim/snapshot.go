package sim

import (
	"math"
	"sync/atomic"

	"github.com/vovakirdan/paddle-arena/internal/core"
)

// Snapshot is a read-only copy of everything the presentation layer needs
// after a tick: entity transforms, fixed sizes and the contact tallies.
type Snapshot struct {
	Tick uint64

	PaddlePosition core.Vec2
	PaddleSize     core.Vec2

	BallPosition core.Vec2
	BallVelocity core.Vec2
	BallRadius   float64
	BallInPlay   bool

	Counters Counters
}

// Snapshot returns the current state as a Snapshot.
func (w *World) Snapshot() Snapshot {
	return Snapshot{
		Tick:           w.tick,
		PaddlePosition: w.store.Paddle.Position,
		PaddleSize:     w.store.Paddle.Size,
		BallPosition:   w.store.Ball.Position,
		BallVelocity:   w.store.Ball.Velocity,
		BallRadius:     w.store.Ball.Radius,
		BallInPlay:     w.store.Ball.InPlay,
		Counters:       w.counters,
	}
}

// PaddleRect returns the paddle's bounding box.
func (s Snapshot) PaddleRect() core.Rect {
	return core.RectFromCenter(s.PaddlePosition, s.PaddleSize)
}

// Hash computes a simple hash of the snapshot for determinism checks.
// Floats are hashed by their bit patterns, so two runs only match when they
// agree exactly.
func (s *Snapshot) Hash() uint64 {
	h := s.Tick
	for _, f := range [...]float64{
		s.PaddlePosition.X, s.PaddlePosition.Y,
		s.PaddleSize.X, s.PaddleSize.Y,
		s.BallPosition.X, s.BallPosition.Y,
		s.BallVelocity.X, s.BallVelocity.Y,
		s.BallRadius,
	} {
		h = h*31 + math.Float64bits(f)
	}
	if s.BallInPlay {
		h = h*31 + 1
	} else {
		h = h * 31
	}
	h = h*31 + uint64(s.Counters.PaddleHits) //#nosec G115 -- hash computation
	h = h*31 + uint64(s.Counters.WallHits)   //#nosec G115 -- hash computation
	h = h*31 + uint64(s.Counters.Misses)     //#nosec G115 -- hash computation
	h = h*31 + uint64(s.Counters.Serves)     //#nosec G115 -- hash computation
	return h
}

// SnapshotBuffer hands the latest snapshot from the simulation goroutine to
// any number of readers. The writer publishes once per tick; readers always
// see a complete snapshot, never a half-updated one.
type SnapshotBuffer struct {
	latest atomic.Pointer[Snapshot]
}

// Publish makes s the snapshot returned by subsequent Load calls.
func (b *SnapshotBuffer) Publish(s Snapshot) {
	b.latest.Store(&s)
}

// Load returns the most recently published snapshot, or false if none has
// been published yet.
func (b *SnapshotBuffer) Load() (Snapshot, bool) {
	p := b.latest.Load()
	if p == nil {
		return Snapshot{}, false
	}
	return *p, true
}
