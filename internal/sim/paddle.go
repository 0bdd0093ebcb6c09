package sim

import (
	"math"

	"github.com/vovakirdan/paddle-arena/internal/arena"
	"github.com/vovakirdan/paddle-arena/internal/core"
)

// MovePaddle advances a paddle's y by dir*speed*dt and clamps it to the legal
// band for its half-height. dir is clamped to [-1, 1]; a non-positive or NaN
// dt leaves the position where it is, apart from clamping.
func MovePaddle(y, dir, speed, dt, halfHeight float64, b arena.Bounds) float64 {
	if math.IsNaN(dir) {
		dir = 0
	}
	dir = core.ClampF(dir, -1, 1)
	if !(dt > 0) {
		dt = 0
	}

	delta := dir * speed * dt
	if math.IsNaN(delta) { // 0 * Inf
		delta = 0
	}
	return core.ClampF(y+delta, b.BottomBound(halfHeight), b.TopBound(halfHeight))
}

// movePaddle applies MovePaddle to the store's paddle.
func (s *Store) movePaddle(dir, dt float64, b arena.Bounds) {
	p := &s.Paddle
	if !p.Caps.Has(CapControlled) {
		return
	}
	p.Position.Y = MovePaddle(p.Position.Y, dir, p.Speed, dt, p.HalfHeight(), b)
}
