// Package engine implements the generic entity game loop: an ordered entity
// collection updated and rendered once per frame, with a capped frame delta,
// FPS tracking and per-entity fault isolation.
package engine

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/reflex-arcade/internal/core"
	"github.com/vovakirdan/reflex-arcade/internal/physics"
)

// DefaultMaxDelta caps a frame delta so a stalled host does not teleport entities.
const DefaultMaxDelta = 1.0 / 30

// Context is passed to every entity hook in place of a back-reference to the engine.
type Context struct {
	Width   float64
	Height  float64
	Physics physics.Physics
	Logger  *log.Logger
	Debug   bool
}

// NewContext creates a context for a w x h world with default physics.
func NewContext(w, h float64) *Context {
	return &Context{
		Width:   w,
		Height:  h,
		Physics: physics.Default(),
		Logger:  log.Default(),
	}
}

func (c *Context) physics() physics.Physics {
	if c == nil {
		return physics.Default()
	}
	return c.Physics
}

func (c *Context) logger() *log.Logger {
	if c == nil || c.Logger == nil {
		return log.Default()
	}
	return c.Logger
}

// Scene replaces the default per-frame update. Games that orchestrate more
// than plain entity updates install one and call UpdateEntities themselves.
type Scene interface {
	Update(dt float64)
}

// Stats describes the most recent frame.
type Stats struct {
	FPS        float64
	Frames     uint64
	Entities   int
	UpdateTime time.Duration
	RenderTime time.Duration
}

// Engine owns an insertion-ordered entity collection and drives the frame loop.
// Insertion order is render order, back to front. Not safe for concurrent use.
type Engine struct {
	ctx      *Context
	clock    core.Clock
	entities []*Entity
	scene    Scene

	running  bool
	last     time.Time
	maxDelta float64
	updating bool

	fpsFrames int
	fpsWindow float64
	stats     Stats
}

// New creates a stopped engine.
func New(ctx *Context, clock core.Clock) *Engine {
	if ctx == nil {
		ctx = NewContext(core.WorldWidth, core.WorldHeight)
	}
	if clock == nil {
		clock = core.SystemClock{}
	}
	return &Engine{
		ctx:      ctx,
		clock:    clock,
		maxDelta: DefaultMaxDelta,
	}
}

// Context returns the context shared with entities.
func (g *Engine) Context() *Context {
	return g.ctx
}

// SetScene installs a custom per-frame update. Nil restores UpdateEntities.
func (g *Engine) SetScene(s Scene) {
	g.scene = s
}

// SetMaxDelta changes the frame delta cap in seconds.
func (g *Engine) SetMaxDelta(seconds float64) {
	if seconds > 0 {
		g.maxDelta = seconds
	}
}

// Start begins the loop, measuring the first delta from now.
func (g *Engine) Start() {
	if g.running {
		return
	}
	g.running = true
	g.last = g.clock.Now()
	g.ctx.logger().Debug("engine started", "entities", len(g.entities))
}

// Stop halts the loop. Pending Advance calls become no-ops.
func (g *Engine) Stop() {
	if !g.running {
		return
	}
	g.running = false
	g.ctx.logger().Debug("engine stopped")
}

// Running reports whether the loop is active.
func (g *Engine) Running() bool {
	return g.running
}

// Advance runs one frame's update if the engine is running and returns the
// delta used. Hosts call Advance and then Render once per frame.
func (g *Engine) Advance() (dt float64, ok bool) {
	if !g.running {
		return 0, false
	}

	now := g.clock.Now()
	elapsed := now.Sub(g.last).Seconds()
	g.last = now
	if elapsed < 0 {
		elapsed = 0
	}
	dt = min(elapsed, g.maxDelta)

	start := time.Now()
	if g.scene != nil {
		g.scene.Update(dt)
	} else {
		g.UpdateEntities(dt)
	}
	g.stats.UpdateTime = time.Since(start)
	g.stats.Frames++
	g.stats.Entities = len(g.entities)

	g.fpsFrames++
	g.fpsWindow += elapsed
	if g.fpsWindow >= 1 {
		g.stats.FPS = float64(g.fpsFrames) / g.fpsWindow
		g.fpsFrames = 0
		g.fpsWindow = 0
	}
	return dt, true
}

// UpdateEntities updates every active entity in reverse insertion order and
// evicts entities flagged for removal in the same pass. A panicking entity
// is logged and skipped.
func (g *Engine) UpdateEntities(dt float64) {
	g.updating = true
	defer func() { g.updating = false }()

	for i := len(g.entities) - 1; i >= 0; i-- {
		e := g.entities[i]
		if e.Active && !e.remove {
			g.guard(e, "update", func() { e.Update(g.ctx, dt) })
		}
		if e.remove {
			g.removeAt(i)
		}
	}
}

// Render draws every entity in insertion order, then the debug overlay.
func (g *Engine) Render(s core.Surface) {
	start := time.Now()
	for _, e := range g.entities {
		g.guard(e, "render", func() { e.Render(s) })
	}
	if g.ctx.Debug {
		g.renderDebug(s)
	}
	g.stats.RenderTime = time.Since(start)
}

func (g *Engine) renderDebug(s core.Surface) {
	s.FillText(10, 10, fmt.Sprintf("FPS: %.0f", g.stats.FPS), core.ColorBrightGreen)
	s.FillText(10, 30, fmt.Sprintf("Entities: %d", len(g.entities)), core.ColorBrightGreen)
	s.FillText(10, 50, fmt.Sprintf("Update: %s", g.stats.UpdateTime.Round(time.Microsecond)), core.ColorBrightGreen)
}

// AddEntity appends e and runs its added hook.
func (g *Engine) AddEntity(e *Entity) {
	g.entities = append(g.entities, e)
	e.ctx = g.ctx
	if h, ok := e.Behavior.(AddedHook); ok {
		g.guard(e, "added", func() { h.OnAdded(e, g.ctx) })
	}
}

// RemoveEntity unlinks e and runs its removed hook. During an update pass the
// entity is only flagged, so the running iteration stays valid.
func (g *Engine) RemoveEntity(e *Entity) bool {
	for i, cur := range g.entities {
		if cur != e {
			continue
		}
		if g.updating {
			e.remove = true
			return true
		}
		g.removeAt(i)
		return true
	}
	return false
}

func (g *Engine) removeAt(i int) {
	e := g.entities[i]
	g.entities = append(g.entities[:i], g.entities[i+1:]...)
	if h, ok := e.Behavior.(RemovedHook); ok {
		g.guard(e, "removed", func() { h.OnRemoved(e) })
	}
	e.ctx = nil
}

// Clear removes every entity.
func (g *Engine) Clear() {
	for len(g.entities) > 0 {
		g.removeAt(len(g.entities) - 1)
	}
}

// Entities returns the live collection. Callers must not modify it.
func (g *Engine) Entities() []*Entity {
	return g.entities
}

// FindEntities returns the entities of the given kind in insertion order.
func (g *Engine) FindEntities(kind Kind) []*Entity {
	var out []*Entity
	for _, e := range g.entities {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

// Resize updates the world size and notifies entities.
func (g *Engine) Resize(w, h float64) {
	g.ctx.Width, g.ctx.Height = w, h
	for _, e := range g.entities {
		if hook, ok := e.Behavior.(ResizeHook); ok {
			g.guard(e, "resize", func() { hook.OnResize(e, w, h) })
		}
	}
}

// ToggleDebug flips the debug overlay.
func (g *Engine) ToggleDebug() {
	g.ctx.Debug = !g.ctx.Debug
}

// Stats returns measurements of the last frame.
func (g *Engine) Stats() Stats {
	return g.stats
}

// guard runs fn, logging and swallowing a panic so one entity cannot halt the frame.
func (g *Engine) guard(e *Entity, hook string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			g.ctx.logger().Error("entity hook failed", "hook", hook, "kind", e.Kind, "panic", r)
		}
	}()
	fn()
}
