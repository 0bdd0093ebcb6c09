package sim

import (
	"math"

	"github.com/vovakirdan/paddle-arena/internal/arena"
	"github.com/vovakirdan/paddle-arena/internal/core"
)

// maxNudges bounds the ulp-stepping used to leave an overlap after a correction.
const maxNudges = 8

// circleRect tests a circle against a rectangle. On overlap it returns the
// contact normal, pointing from the rectangle toward the circle center, and
// the penetration depth.
func circleRect(c core.Vec2, r float64, rect core.Rect) (normal core.Vec2, depth float64, ok bool) {
	if rect.Contains(c) {
		// Center on or inside the box: leave along the shallowest face.
		best := rect.Max.X - c.X
		normal = core.V(1, 0)
		if d := c.X - rect.Min.X; d < best {
			best, normal = d, core.V(-1, 0)
		}
		if d := rect.Max.Y - c.Y; d < best {
			best, normal = d, core.V(0, 1)
		}
		if d := c.Y - rect.Min.Y; d < best {
			best, normal = d, core.V(0, -1)
		}
		return normal, best + r, true
	}

	p := rect.ClosestPoint(c)
	d := c.Sub(p)
	distSq := d.LenSq()
	if distSq >= r*r {
		return core.Vec2{}, 0, false
	}
	dist := math.Sqrt(distSq)
	return d.Scale(1 / dist), r - dist, true
}

// CircleRectOverlap reports whether a circle strictly overlaps a rectangle.
// A circle tangent to the rectangle does not overlap it.
func CircleRectOverlap(c core.Vec2, r float64, rect core.Rect) bool {
	_, _, ok := circleRect(c, r, rect)
	return ok
}

// CirclePenetration returns how deep a circle reaches into a rectangle.
// Positive means overlap, zero is tangent, negative is the separation gap.
func CirclePenetration(c core.Vec2, r float64, rect core.Rect) float64 {
	if _, depth, ok := circleRect(c, r, rect); ok {
		return depth
	}
	return r - c.Sub(rect.ClosestPoint(c)).Len()
}

// WallPenetration returns how far the ball's leading edge is past a wall's
// inner face. Positive means overlap.
func WallPenetration(ball Ball, b arena.Bounds, side Side) float64 {
	p, r := ball.Position, ball.Radius
	switch side {
	case SideLeft:
		return b.LeftFace() - (p.X - r)
	case SideRight:
		return (p.X + r) - b.RightFace()
	case SideTop:
		return (p.Y + r) - b.TopFace()
	case SideBottom:
		return b.BottomFace() - (p.Y - r)
	default:
		return math.Inf(-1)
	}
}

// tangentBelow returns the largest center coordinate whose leading edge does
// not pass face, for a circle approaching it from below.
func tangentBelow(face, r float64) float64 {
	v := face - r
	for i := 0; i < maxNudges && v+r > face; i++ {
		v = math.Nextafter(v, math.Inf(-1))
	}
	return v
}

// tangentAbove is tangentBelow for a circle approaching from above.
func tangentAbove(face, r float64) float64 {
	v := face + r
	for i := 0; i < maxNudges && v-r < face; i++ {
		v = math.Nextafter(v, math.Inf(1))
	}
	return v
}

// resolveWalls handles the four walls. Crossing the left or right face takes
// the ball out of play; the top and bottom faces reflect vy and leave the ball
// tangent to the wall. It reports at most one contact.
func resolveWalls(ball *Ball, b arena.Bounds) (Event, bool) {
	switch {
	case WallPenetration(*ball, b, SideLeft) > 0:
		ball.InPlay = false
		return ballEvent(EventMiss, SideLeft, ball), true

	case WallPenetration(*ball, b, SideRight) > 0:
		ball.InPlay = false
		return ballEvent(EventMiss, SideRight, ball), true

	case WallPenetration(*ball, b, SideTop) > 0:
		ball.Position.Y = tangentBelow(b.TopFace(), ball.Radius)
		ball.Velocity.Y = -math.Abs(ball.Velocity.Y)
		return ballEvent(EventWallHit, SideTop, ball), true

	case WallPenetration(*ball, b, SideBottom) > 0:
		ball.Position.Y = tangentAbove(b.BottomFace(), ball.Radius)
		ball.Velocity.Y = math.Abs(ball.Velocity.Y)
		return ballEvent(EventWallHit, SideBottom, ball), true
	}
	return Event{}, false
}

// resolvePaddle pushes the ball out of the paddle along the contact normal and
// sends it back. The correction never moves the ball past the top or bottom
// wall: a ball squeezed between the paddle and a wall leaves through the
// paddle's front face instead. Returns false when the two do not overlap or
// the ball is already moving away.
func resolvePaddle(ball *Ball, paddle Paddle, s Settings) (Event, bool) {
	rect := paddle.Rect()
	normal, depth, ok := circleRect(ball.Position, ball.Radius, rect)
	if !ok {
		return Event{}, false
	}

	pos := separate(ball.Position.Add(normal.Scale(depth)), normal, ball.Radius, rect)
	lo := tangentAbove(s.Bounds.BottomFace(), ball.Radius)
	hi := tangentBelow(s.Bounds.TopFace(), ball.Radius)
	if y := core.ClampF(pos.Y, lo, hi); y != pos.Y {
		normal = core.V(1, 0)
		pos = core.V(tangentAbove(rect.Max.X, ball.Radius), y)
	}
	ball.Position = pos

	if ball.Velocity.Dot(normal) >= 0 {
		return Event{}, false
	}

	offset := 0.0
	if hh := paddle.HalfHeight(); hh > 0 {
		offset = core.ClampF((ball.Position.Y-paddle.Position.Y)/hh, -1, 1)
	}
	ball.Velocity = returnVelocity(ball.Velocity, normal, offset, s)

	ev := ballEvent(EventPaddleHit, SideNone, ball)
	ev.Offset = offset
	return ev, true
}

// separate steps c along n one ulp at a time until the circle no longer
// overlaps rect. Needed because c+n*depth can land a rounding error inside.
func separate(c, n core.Vec2, r float64, rect core.Rect) core.Vec2 {
	for i := 0; i < maxNudges && CircleRectOverlap(c, r, rect); i++ {
		c = core.V(nudge(c.X, n.X), nudge(c.Y, n.Y))
	}
	return c
}

func nudge(v, dir float64) float64 {
	switch {
	case dir > 0:
		return math.Nextafter(v, math.Inf(1))
	case dir < 0:
		return math.Nextafter(v, math.Inf(-1))
	default:
		return v
	}
}

// returnVelocity computes the ball's velocity after touching the paddle.
//
// The mirror reflection about the contact normal is blended with an angled
// return whose direction depends only on where along the paddle the ball
// landed (offset in [-1, 1] maps to +-MaxBounceAngle). The blend weight is
// |n.X|: a face hit is a pure angled return, a hit on the paddle's top or
// bottom edge is a pure reflection, and corner hits move smoothly between the
// two. Speed is preserved and then multiplied by SpeedUp up to MaxSpeed.
// A ball already moving away from the paddle keeps its velocity.
func returnVelocity(v, n core.Vec2, offset float64, s Settings) core.Vec2 {
	vn := v.Dot(n)
	if vn >= 0 {
		return v
	}

	speed := v.Len()
	out := v.Sub(n.Scale(2 * vn))

	if n.X != 0 {
		theta := offset * s.MaxBounceAngle
		angled := core.V(core.Sign(n.X)*math.Cos(theta), math.Sin(theta)).Scale(speed)
		w := math.Abs(n.X)
		blend := angled.Scale(w).Add(out.Scale(1 - w))
		if l := blend.Len(); l > 1e-12 {
			out = blend.Scale(speed / l)
		}
	}

	if speed == 0 {
		return out
	}
	return out.Scale(boostedSpeed(speed, s) / speed)
}

// boostedSpeed applies the per-hit speed-up without letting it cross MaxSpeed.
// A ball already faster than the cap is not slowed down.
func boostedSpeed(speed float64, s Settings) float64 {
	factor := s.SpeedUp
	if factor <= 0 {
		factor = 1
	}
	next := speed * factor
	if s.MaxSpeed > 0 && next > s.MaxSpeed {
		next = math.Max(s.MaxSpeed, speed)
	}
	return next
}

// collide resolves at most one contact for the ball. Wall handling runs
// first so a ball overlapping both a wall and the paddle cannot be pushed out
// of the arena by the paddle correction.
func collide(st *Store, s Settings) (Event, bool) {
	ball := &st.Ball
	if !ball.InPlay || !ball.Caps.Has(CapCollider) {
		return Event{}, false
	}

	if ev, ok := resolveWalls(ball, s.Bounds); ok {
		return ev, true
	}

	if st.collides(KindPaddle, KindBall) {
		return resolvePaddle(ball, st.Paddle, s)
	}
	return Event{}, false
}

func ballEvent(kind EventKind, side Side, ball *Ball) Event {
	return Event{
		Kind:     kind,
		Side:     side,
		Position: ball.Position,
		Velocity: ball.Velocity,
	}
}
