// Package core provides fundamental types and utilities for the arena simulation.
// It contains no external dependencies to keep simulation logic pure and testable.
package core

import "math"

// Vec2 is a 2D vector in arena units. The arena is y-up with the origin at its center.
type Vec2 struct {
	X, Y float64
}

// V creates a new vector.
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns v multiplied by s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Dot returns the dot product of v and o.
func (v Vec2) Dot(o Vec2) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Len returns the length of the vector.
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// LenSq returns the squared length of the vector.
func (v Vec2) LenSq() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Half returns v scaled by 0.5. Used to turn sizes into half-extents.
func (v Vec2) Half() Vec2 {
	return Vec2{X: v.X / 2, Y: v.Y / 2}
}

// Rect represents an axis-aligned bounding box used for collision detection.
// Min is the bottom-left corner, Max the top-right corner.
type Rect struct {
	Min, Max Vec2
}

// RectFromCenter creates a rectangle centered on c with the given full size.
func RectFromCenter(c, size Vec2) Rect {
	h := size.Half()
	return Rect{Min: c.Sub(h), Max: c.Add(h)}
}

// Contains returns true if p lies inside the rectangle or on its boundary.
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// ClosestPoint clamps p to the rectangle, returning the nearest point on or inside it.
func (r Rect) ClosestPoint(p Vec2) Vec2 {
	return Vec2{
		X: ClampF(p.X, r.Min.X, r.Max.X),
		Y: ClampF(p.Y, r.Min.Y, r.Max.Y),
	}
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Sign returns -1, 0, or 1.
func Sign(x float64) float64 {
	switch {
	case x < 0:
		return -1
	case x > 0:
		return 1
	default:
		return 0
	}
}
