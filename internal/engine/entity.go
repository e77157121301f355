package engine

import (
	"fmt"

	"github.com/vovakirdan/reflex-arcade/internal/core"
	"github.com/vovakirdan/reflex-arcade/internal/physics"
)

// Kind tags an entity with its concrete type ("dino", "cactus_small", ...).
type Kind string

// Behavior supplies the type-specific part of an entity.
// Draw works in local coordinates: the origin is the entity center and the
// entity occupies LocalRect().
type Behavior interface {
	Update(e *Entity, ctx *Context, dt float64)
	Draw(e *Entity, s core.Surface)
}

// Optional lifecycle hooks a Behavior may implement.
type (
	AddedHook interface {
		OnAdded(e *Entity, ctx *Context)
	}
	RemovedHook interface {
		OnRemoved(e *Entity)
	}
	DestroyHook interface {
		OnDestroy(e *Entity)
	}
	ResizeHook interface {
		OnResize(e *Entity, w, h float64)
	}
	// Prototype builds a fresh behavior of the same concrete kind for Clone.
	// Behaviors without per-instance state need not implement it.
	Prototype interface {
		Fresh() Behavior
	}
)

// Entity is a simulated object: a physics body plus visual attributes,
// lifecycle flags and a behavior.
type Entity struct {
	physics.Body

	Kind     Kind
	Behavior Behavior

	Color    core.Color
	Rotation float64 // Radians
	ScaleX   float64
	ScaleY   float64
	Opacity  float64
	Visible  bool
	Active   bool

	Age             float64 // Seconds since creation
	CollisionMargin float64 // Inset applied by Bounds

	AnimFrame int
	AnimSpeed float64 // Seconds per frame, 0 disables
	AnimTimer float64

	remove bool
	ctx    *Context
}

// NewEntity creates a visible, active, solid entity. Width and height must be positive.
func NewEntity(kind Kind, x, y, w, h float64, b Behavior) *Entity {
	if w <= 0 || h <= 0 {
		panic(fmt.Sprintf("engine: entity %q needs a positive size, got %vx%v", kind, w, h))
	}
	return &Entity{
		Body: physics.Body{
			Pos:   core.Vec2{X: x, Y: y},
			W:     w,
			H:     h,
			Solid: true,
		},
		Kind:     kind,
		Behavior: b,
		Color:    core.ColorWhite,
		ScaleX:   1,
		ScaleY:   1,
		Opacity:  1,
		Visible:  true,
		Active:   true,
	}
}

// Update advances the entity by dt seconds: age, gravity, drag, position,
// animation timer, then the behavior.
func (e *Entity) Update(ctx *Context, dt float64) {
	e.Age += dt

	p := ctx.physics()
	p.ApplyGravity(&e.Body, dt)
	p.ApplyAirResistance(&e.Body, dt)
	physics.UpdatePosition(&e.Body, dt)

	if e.AnimSpeed > 0 {
		e.AnimTimer += dt
		if e.AnimTimer >= e.AnimSpeed {
			e.AnimFrame++
			e.AnimTimer = 0
		}
	}

	if e.Behavior != nil {
		e.Behavior.Update(e, ctx, dt)
	}
}

// Render draws the entity with its position, rotation, scale and opacity applied.
func (e *Entity) Render(s core.Surface) {
	if !e.Visible {
		return
	}

	s.Save()
	s.Translate(e.Pos.X+e.W/2, e.Pos.Y+e.H/2)
	if e.Rotation != 0 {
		s.Rotate(e.Rotation)
	}
	if e.ScaleX != 1 || e.ScaleY != 1 {
		s.Scale(e.ScaleX, e.ScaleY)
	}
	s.SetAlpha(e.Opacity)

	if e.Behavior != nil {
		e.Behavior.Draw(e, s)
	} else {
		x, y, w, h := e.LocalRect()
		s.FillRect(x, y, w, h, e.Color)
	}
	s.Restore()

	if e.ctx != nil && e.ctx.Debug {
		e.renderDebug(s)
	}
}

// renderDebug outlines the collision box and marks the center.
func (e *Entity) renderDebug(s core.Surface) {
	b := e.Bounds()
	s.FillRect(b.X, b.Y, b.W, 1, core.ColorRed)
	s.FillRect(b.X, b.Bottom()-1, b.W, 1, core.ColorRed)
	s.FillRect(b.X, b.Y, 1, b.H, core.ColorRed)
	s.FillRect(b.Right()-1, b.Y, 1, b.H, core.ColorRed)

	c := e.Center()
	s.FillRect(c.X-2, c.Y-2, 4, 4, core.ColorRed)
}

// LocalRect returns the entity's rectangle in its own draw coordinates.
func (e *Entity) LocalRect() (x, y, w, h float64) {
	return -e.W / 2, -e.H / 2, e.W, e.H
}

// Bounds returns the collision box: the body inset by CollisionMargin.
func (e *Entity) Bounds() core.AABB {
	return e.Body.Bounds().Inset(e.CollisionMargin)
}

// CollidesWith reports whether two solid entities' collision boxes overlap.
func (e *Entity) CollidesWith(other *Entity) bool {
	if !e.Solid || !other.Solid {
		return false
	}
	return physics.CheckCollision(e.Bounds(), other.Bounds())
}

// Destroy flags the entity for removal and runs its destroy hook.
// The engine unlinks it at the end of the current or next update pass.
func (e *Entity) Destroy() {
	if e.remove {
		return
	}
	e.remove = true
	if h, ok := e.Behavior.(DestroyHook); ok {
		h.OnDestroy(e)
	}
}

// ShouldRemove reports whether the entity is flagged for removal.
func (e *Entity) ShouldRemove() bool {
	return e.remove
}

// Context returns the engine context the entity was added to, or nil.
func (e *Entity) Context() *Context {
	return e.ctx
}

// IsOffScreen reports whether the entity lies entirely outside a w x h area.
func (e *Entity) IsOffScreen(w, h float64) bool {
	return e.Pos.X+e.W < 0 || e.Pos.X > w || e.Pos.Y+e.H < 0 || e.Pos.Y > h
}

// Clone creates an entity of the same kind at the same position and size,
// copying velocity, color, rotation, scale and physics flags. Animation and
// behavior substate start fresh.
func (e *Entity) Clone() *Entity {
	b := e.Behavior
	if p, ok := b.(Prototype); ok {
		b = p.Fresh()
	}

	c := NewEntity(e.Kind, e.Pos.X, e.Pos.Y, e.W, e.H, b)
	c.Vel = e.Vel
	c.Color = e.Color
	c.Rotation = e.Rotation
	c.ScaleX, c.ScaleY = e.ScaleX, e.ScaleY
	c.HasGravity = e.HasGravity
	c.HasAirResistance = e.HasAirResistance
	c.CanJump = e.CanJump
	c.Solid = e.Solid
	c.CollisionMargin = e.CollisionMargin
	return c
}
