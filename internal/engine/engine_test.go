package engine

import (
	"io"
	"math"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/reflex-arcade/internal/core"
)

// recordingSurface records fill colors in draw order.
type recordingSurface struct {
	core.TransformStack
	fills []core.Color
	texts []string
}

func (s *recordingSurface) Width() float64                   { return core.WorldWidth }
func (s *recordingSurface) Height() float64                  { return core.WorldHeight }
func (s *recordingSurface) Clear(core.Color)                 {}
func (s *recordingSurface) FillPath([]core.Vec2, core.Color) {}
func (s *recordingSurface) FillRect(_, _, _, _ float64, c core.Color) {
	s.fills = append(s.fills, c)
}
func (s *recordingSurface) FillCircle(_, _, _ float64, c core.Color) {
	s.fills = append(s.fills, c)
}
func (s *recordingSurface) MeasureText(text string) float64 { return float64(len(text)) * 10 }
func (s *recordingSurface) FillText(_, _ float64, text string, _ core.Color) {
	s.texts = append(s.texts, text)
}

// probe is a test behavior that records calls.
type probe struct {
	updates   int
	removed   int
	destroyed int
	resized   int
	order     *[]string
	name      string
	selfKill  bool
	panics    bool
}

func (p *probe) Update(e *Entity, _ *Context, _ float64) {
	p.updates++
	if p.order != nil {
		*p.order = append(*p.order, p.name)
	}
	if p.panics {
		panic("boom")
	}
	if p.selfKill {
		e.Destroy()
	}
}

func (p *probe) Draw(e *Entity, s core.Surface) {
	x, y, w, h := e.LocalRect()
	s.FillRect(x, y, w, h, e.Color)
}

func (p *probe) OnRemoved(*Entity)                { p.removed++ }
func (p *probe) OnDestroy(*Entity)                { p.destroyed++ }
func (p *probe) OnResize(_ *Entity, _, _ float64) { p.resized++ }
func (p *probe) Fresh() Behavior                  { return &probe{name: p.name} }

func newTestEngine() (*Engine, *core.ManualClock) {
	ctx := NewContext(core.WorldWidth, core.WorldHeight)
	ctx.Logger = log.New(io.Discard)
	clock := core.NewManualClock(time.Unix(0, 0))
	return New(ctx, clock), clock
}

func TestAdvanceRequiresRunning(t *testing.T) {
	g, clock := newTestEngine()
	p := &probe{}
	g.AddEntity(NewEntity("probe", 0, 0, 10, 10, p))

	clock.Advance(16 * time.Millisecond)
	if _, ok := g.Advance(); ok {
		t.Error("Advance() on a stopped engine should be a no-op")
	}

	g.Start()
	clock.Advance(16 * time.Millisecond)
	if _, ok := g.Advance(); !ok {
		t.Fatal("Advance() on a running engine should run a frame")
	}

	g.Stop()
	clock.Advance(16 * time.Millisecond)
	g.Advance()
	if p.updates != 1 {
		t.Errorf("updates = %d, expected 1", p.updates)
	}
}

func TestAdvanceClampsDelta(t *testing.T) {
	g, clock := newTestEngine()
	g.Start()

	clock.Advance(2 * time.Second)
	dt, _ := g.Advance()
	if math.Abs(dt-DefaultMaxDelta) > 1e-12 {
		t.Errorf("dt = %v, expected clamp to %v", dt, DefaultMaxDelta)
	}

	clock.Advance(10 * time.Millisecond)
	dt, _ = g.Advance()
	if math.Abs(dt-0.01) > 1e-9 {
		t.Errorf("dt = %v, expected 0.01", dt)
	}
}

func TestUpdateReverseOrderAndEviction(t *testing.T) {
	g, _ := newTestEngine()
	var order []string

	a := &probe{name: "a", order: &order}
	b := &probe{name: "b", order: &order, selfKill: true}
	c := &probe{name: "c", order: &order}
	g.AddEntity(NewEntity("probe", 0, 0, 10, 10, a))
	g.AddEntity(NewEntity("probe", 0, 0, 10, 10, b))
	g.AddEntity(NewEntity("probe", 0, 0, 10, 10, c))

	g.UpdateEntities(0.016)

	want := []string{"c", "b", "a"}
	if len(order) != 3 || order[0] != want[0] || order[1] != want[1] || order[2] != want[2] {
		t.Errorf("update order = %v, expected %v", order, want)
	}
	if len(g.Entities()) != 2 {
		t.Fatalf("entities = %d, expected 2 after eviction", len(g.Entities()))
	}
	if b.removed != 1 || b.destroyed != 1 {
		t.Errorf("removed/destroyed hooks = %d/%d, expected 1/1", b.removed, b.destroyed)
	}

	g.UpdateEntities(0.016)
	if b.updates != 1 {
		t.Errorf("evicted entity updated %d times, expected 1", b.updates)
	}
}

func TestPanickingEntityIsIsolated(t *testing.T) {
	g, _ := newTestEngine()
	bad := &probe{panics: true}
	good := &probe{}
	g.AddEntity(NewEntity("good", 0, 0, 10, 10, good))
	g.AddEntity(NewEntity("bad", 0, 0, 10, 10, bad))

	g.UpdateEntities(0.016)
	g.UpdateEntities(0.016)

	if good.updates != 2 {
		t.Errorf("good entity updates = %d, expected 2", good.updates)
	}
	if len(g.Entities()) != 2 {
		t.Errorf("a failing entity should stay registered, entities = %d", len(g.Entities()))
	}
}

func TestRenderInsertionOrder(t *testing.T) {
	g, _ := newTestEngine()
	back := NewEntity("back", 0, 0, 10, 10, &probe{})
	back.Color = core.ColorBlue
	front := NewEntity("front", 0, 0, 10, 10, &probe{})
	front.Color = core.ColorRed
	hidden := NewEntity("hidden", 0, 0, 10, 10, nil)
	hidden.Visible = false

	g.AddEntity(back)
	g.AddEntity(hidden)
	g.AddEntity(front)

	s := &recordingSurface{}
	g.Render(s)

	if len(s.fills) != 2 || s.fills[0] != core.ColorBlue || s.fills[1] != core.ColorRed {
		t.Errorf("fills = %v, expected [blue red]", s.fills)
	}

	g.ToggleDebug()
	s = &recordingSurface{}
	g.Render(s)
	if len(s.texts) == 0 {
		t.Error("debug overlay should draw text")
	}
}

func TestRemoveEntityDuringUpdateIsDeferred(t *testing.T) {
	g, _ := newTestEngine()
	victim := NewEntity("victim", 0, 0, 10, 10, &probe{})
	g.AddEntity(victim)

	killer := &killerBehavior{engine: g, target: victim}
	g.AddEntity(NewEntity("killer", 0, 0, 10, 10, killer))

	g.UpdateEntities(0.016)

	if len(g.Entities()) != 1 || g.Entities()[0].Kind != "killer" {
		t.Errorf("victim should be evicted in the same pass, entities = %d", len(g.Entities()))
	}
	if g.RemoveEntity(victim) {
		t.Error("removing an unknown entity should return false")
	}
}

type killerBehavior struct {
	engine *Engine
	target *Entity
}

func (k *killerBehavior) Update(*Entity, *Context, float64) { k.engine.RemoveEntity(k.target) }
func (k *killerBehavior) Draw(*Entity, core.Surface)        {}

type sceneFunc func(dt float64)

func (f sceneFunc) Update(dt float64) { f(dt) }

func TestSceneAndStats(t *testing.T) {
	g, clock := newTestEngine()
	var calls int
	g.SetScene(sceneFunc(func(float64) { calls++ }))
	g.Start()

	for i := 0; i < 61; i++ {
		clock.Advance(time.Second / 60)
		g.Advance()
	}

	if calls != 61 {
		t.Errorf("scene calls = %d, expected 61", calls)
	}
	stats := g.Stats()
	if stats.Frames != 61 {
		t.Errorf("Frames = %d, expected 61", stats.Frames)
	}
	if math.Abs(stats.FPS-60) > 1 {
		t.Errorf("FPS = %v, expected about 60", stats.FPS)
	}
}

func TestFindResizeClear(t *testing.T) {
	g, _ := newTestEngine()
	p := &probe{}
	g.AddEntity(NewEntity("cloud", 0, 0, 10, 10, p))
	g.AddEntity(NewEntity("cloud", 0, 0, 10, 10, &probe{}))
	g.AddEntity(NewEntity("dino", 0, 0, 10, 10, &probe{}))

	if n := len(g.FindEntities("cloud")); n != 2 {
		t.Errorf("FindEntities(cloud) = %d, expected 2", n)
	}

	g.Resize(1024, 768)
	if p.resized != 1 || g.Context().Width != 1024 {
		t.Errorf("resize hook = %d, width = %v", p.resized, g.Context().Width)
	}

	g.Clear()
	if len(g.Entities()) != 0 || p.removed != 1 {
		t.Errorf("Clear() left %d entities, removed hook = %d", len(g.Entities()), p.removed)
	}
}
