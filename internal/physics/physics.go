// Package physics implements the rectangle physics shared by the arcade games:
// Euler integration with gravity, exponential air drag, AABB collision tests
// and a handful of impulse helpers. All functions are stateless; tunable
// constants live in a Physics value.
package physics

import (
	"math"

	"github.com/vovakirdan/reflex-arcade/internal/core"
)

// Default tuning, in world pixels and seconds.
const (
	DefaultGravity          = 800.0
	DefaultTerminalVelocity = 600.0
	DefaultAirResistance    = 0.98
	DefaultGroundTolerance  = 5.0
	DefaultRestitution      = 0.7
)

// Body is the physical state of a simulated object.
type Body struct {
	Pos core.Vec2 // Top-left corner
	Vel core.Vec2
	W   float64
	H   float64

	HasGravity       bool
	HasAirResistance bool
	CanJump          bool
	Solid            bool
}

// Bounds returns the body's full bounding box.
func (b *Body) Bounds() core.AABB {
	return core.AABB{X: b.Pos.X, Y: b.Pos.Y, W: b.W, H: b.H}
}

// Center returns the center of the body.
func (b *Body) Center() core.Vec2 {
	return b.Bounds().Center()
}

// Physics holds the tunable constants used by the integration helpers.
type Physics struct {
	Gravity          float64 // Downward acceleration
	TerminalVelocity float64 // Maximum downward speed
	AirResistance    float64 // Fraction of horizontal speed kept per second
	GroundTolerance  float64 // Distance at which a body counts as grounded
	Restitution      float64 // Speed kept by Bounce
}

// Default returns the standard tuning.
func Default() Physics {
	return Physics{
		Gravity:          DefaultGravity,
		TerminalVelocity: DefaultTerminalVelocity,
		AirResistance:    DefaultAirResistance,
		GroundTolerance:  DefaultGroundTolerance,
		Restitution:      DefaultRestitution,
	}
}

// ApplyGravity accelerates a gravity-enabled body downward and caps its
// fall speed at the terminal velocity.
func (p Physics) ApplyGravity(b *Body, dt float64) {
	if !b.HasGravity {
		return
	}
	b.Vel.Y += p.Gravity * dt
	b.Vel.Y = math.Min(b.Vel.Y, p.TerminalVelocity)
}

// ApplyAirResistance decays horizontal speed by AirResistance^dt, which is
// independent of frame rate.
func (p Physics) ApplyAirResistance(b *Body, dt float64) {
	if !b.HasAirResistance {
		return
	}
	b.Vel.X *= math.Pow(p.AirResistance, dt)
}

// UpdatePosition integrates velocity into position.
func UpdatePosition(b *Body, dt float64) {
	b.Pos.X += b.Vel.X * dt
	b.Pos.Y += b.Vel.Y * dt
}

// CheckCollision reports whether two boxes overlap. Touching edges do not count.
func CheckCollision(a, b core.AABB) bool {
	return a.Intersects(b)
}

// CheckCollisionWithMargin insets both boxes by margin before testing.
func CheckCollisionWithMargin(a, b core.AABB, margin float64) bool {
	return CheckCollision(a.Inset(margin), b.Inset(margin))
}

// ConstrainToBounds keeps the body inside [0,w]x[0,h]. At each boundary hit
// the velocity component pointing out of the area is zeroed.
func ConstrainToBounds(b *Body, w, h float64) {
	if b.Pos.X < 0 {
		b.Pos.X = 0
		b.Vel.X = math.Max(0, b.Vel.X)
	}
	if b.Pos.X+b.W > w {
		b.Pos.X = w - b.W
		b.Vel.X = math.Min(0, b.Vel.X)
	}
	if b.Pos.Y < 0 {
		b.Pos.Y = 0
		b.Vel.Y = math.Max(0, b.Vel.Y)
	}
	if b.Pos.Y+b.H > h {
		b.Pos.Y = h - b.H
		b.Vel.Y = math.Min(0, b.Vel.Y)
	}
}

// IsInBounds reports whether any part of the body touches the w x h area.
func IsInBounds(b *Body, w, h float64) bool {
	return b.Pos.X+b.W >= 0 && b.Pos.X <= w &&
		b.Pos.Y+b.H >= 0 && b.Pos.Y <= h
}

// Distance returns the Euclidean distance between two points.
func Distance(a, b core.Vec2) float64 {
	return b.Sub(a).Len()
}

// DistanceBetween returns the distance between the centers of two bodies.
func DistanceBetween(a, b *Body) float64 {
	return Distance(a.Center(), b.Center())
}

// IsOnGround reports whether the body's bottom edge is within the ground
// tolerance of groundY and it is not moving upward.
func (p Physics) IsOnGround(b *Body, groundY float64) bool {
	bottom := b.Pos.Y + b.H
	return math.Abs(bottom-groundY) <= p.GroundTolerance && b.Vel.Y >= 0
}

// ApplyImpulse adds an instantaneous velocity change.
func ApplyImpulse(b *Body, impulse core.Vec2) {
	b.Vel = b.Vel.Add(impulse)
}

// Axis selects the surface orientation for Bounce.
type Axis int

const (
	// Horizontal surfaces (floor, ceiling) reflect vertical velocity.
	Horizontal Axis = iota
	// Vertical surfaces (walls) reflect horizontal velocity.
	Vertical
)

// Bounce reflects the velocity component perpendicular to the surface and
// scales it by the restitution.
func (p Physics) Bounce(b *Body, surface Axis) {
	switch surface {
	case Horizontal:
		b.Vel.Y = -b.Vel.Y * p.Restitution
	case Vertical:
		b.Vel.X = -b.Vel.X * p.Restitution
	}
}

// Jump launches the body upward with the given power if it may jump.
// Returns false without touching velocity otherwise.
func Jump(b *Body, power float64) bool {
	if !b.CanJump {
		return false
	}
	b.Vel.Y = -power
	b.CanJump = false
	return true
}
