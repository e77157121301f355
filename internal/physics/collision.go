package physics

import "github.com/vovakirdan/reflex-arcade/internal/core"

// Collision describes how to separate a moving box from a static one.
type Collision struct {
	Normal      core.Vec2 // Unit vector pointing from the static box toward the moving box
	Penetration float64   // Overlap depth along Normal
}

// Horizontal reports whether the collision separates along the x axis.
func (c Collision) Horizontal() bool {
	return c.Normal.X != 0
}

// DetailedCollision computes the separating axis of two overlapping boxes.
// On each axis the shorter of the two pushes (toward negative or positive)
// is the overlap; the axis with the smaller overlap wins, vertical on a tie.
// Returns ok=false when the boxes do not overlap.
func DetailedCollision(moving, static core.AABB) (c Collision, ok bool) {
	if !CheckCollision(moving, static) {
		return Collision{}, false
	}

	nx, overlapX := axisPush(moving.X, moving.Right(), static.X, static.Right())
	ny, overlapY := axisPush(moving.Y, moving.Bottom(), static.Y, static.Bottom())

	if overlapX < overlapY {
		return Collision{Normal: core.Vec2{X: nx}, Penetration: overlapX}, true
	}
	return Collision{Normal: core.Vec2{Y: ny}, Penetration: overlapY}, true
}

// axisPush returns the direction and distance that move [lo, hi] clear of
// [staticLo, staticHi] on one axis. Ties push toward negative (left or up).
func axisPush(lo, hi, staticLo, staticHi float64) (sign, depth float64) {
	back := hi - staticLo
	forward := staticHi - lo
	if back <= forward {
		return -1, back
	}
	return 1, forward
}

// ResolveCollision pushes the body out along the collision normal and stops
// its motion on that axis. Landing on top of the static box re-enables jumping.
func ResolveCollision(b *Body, c Collision) {
	b.Pos = b.Pos.Add(c.Normal.Scale(c.Penetration))

	if c.Horizontal() {
		b.Vel.X = 0
		return
	}
	b.Vel.Y = 0
	if c.Normal.Y == -1 {
		b.CanJump = true
	}
}
