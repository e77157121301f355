// Package core provides fundamental types and utilities for the arcade platform.
// It contains no external dependencies (especially no Bubble Tea or Ebiten) to keep
// game logic pure and testable.
package core

import "math"

// Vec2 is a 2D vector in world units (pixels of the 800x600 playfield).
type Vec2 struct {
	X, Y float64
}

// Add returns v+o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

// Sub returns v-o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

// Scale returns v multiplied by s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// AABB is an axis-aligned bounding box in world units.
type AABB struct {
	X, Y float64 // Top-left corner
	W, H float64
}

// Right returns the x-coordinate of the right edge.
func (b AABB) Right() float64 {
	return b.X + b.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (b AABB) Bottom() float64 {
	return b.Y + b.H
}

// Center returns the center point of the box.
func (b AABB) Center() Vec2 {
	return Vec2{b.X + b.W/2, b.Y + b.H/2}
}

// Inset shrinks the box by m on every side.
func (b AABB) Inset(m float64) AABB {
	return AABB{X: b.X + m, Y: b.Y + m, W: b.W - 2*m, H: b.H - 2*m}
}

// Intersects reports whether the open interiors of b and o overlap.
// Boxes that only share an edge do not intersect.
func (b AABB) Intersects(o AABB) bool {
	return b.X < o.Right() && b.Right() > o.X &&
		b.Y < o.Bottom() && b.Bottom() > o.Y
}

// Clamp restricts an int to [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
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
