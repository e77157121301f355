package dinorun

import (
	"github.com/vovakirdan/reflex-arcade/internal/config"
	"github.com/vovakirdan/reflex-arcade/internal/core"
	"github.com/vovakirdan/reflex-arcade/internal/engine"
)

// ObstacleKind identifies one of the fixed obstacle types.
type ObstacleKind int

const (
	CactusSmall ObstacleKind = iota
	CactusLarge
	CactusDouble
	BirdLow
	BirdHigh

	kindCount = iota
)

// kindSpec holds the per-kind constants.
type kindSpec struct {
	name   string
	width  float64
	height float64
	points int
}

var kindSpecs = [kindCount]kindSpec{
	CactusSmall:  {"cactus_small", 20, 40, 10},
	CactusLarge:  {"cactus_large", 30, 60, 15},
	CactusDouble: {"cactus_double", 35, 55, 20},
	BirdLow:      {"bird_low", 35, 25, 25},
	BirdHigh:     {"bird_high", 35, 25, 20},
}

// String returns the kind's name, which is also its entity kind tag.
func (k ObstacleKind) String() string {
	if k < 0 || int(k) >= kindCount {
		return "unknown"
	}
	return kindSpecs[k].name
}

// Size returns the fixed width and height of the kind.
func (k ObstacleKind) Size() (w, h float64) {
	s := kindSpecs[k]
	return s.width, s.height
}

// Points returns the score awarded for passing an obstacle of this kind.
func (k ObstacleKind) Points() int {
	return kindSpecs[k].points
}

// IsBird reports whether the kind flies.
func (k ObstacleKind) IsBird() bool {
	return k == BirdLow || k == BirdHigh
}

// Obstacle is the behavior of a scrolling obstacle entity.
type Obstacle struct {
	Entity *engine.Entity
	Kind   ObstacleKind

	passed     bool
	baseSpeed  float64
	multiplier float64
	despawnX   float64

	flapInterval float64
	flapFrame    int
	flapTimer    float64
}

// NewObstacle creates an obstacle of kind with its top-left corner at (x, y),
// moving left at cfg.BaseSpeed times multiplier.
func NewObstacle(kind ObstacleKind, x, y float64, cfg config.ObstaclesConfig, multiplier float64) *Obstacle {
	o := &Obstacle{
		Kind:         kind,
		baseSpeed:    cfg.BaseSpeed,
		despawnX:     cfg.DespawnX,
		flapInterval: cfg.FlapInterval,
	}
	w, h := kind.Size()
	o.Entity = engine.NewEntity(engine.Kind(kind.String()), x, y, w, h, o)
	o.Entity.CollisionMargin = cfg.CollisionMargin
	o.SetSpeedMultiplier(multiplier)
	return o
}

// SetSpeedMultiplier rescales the obstacle's leftward speed.
func (o *Obstacle) SetSpeedMultiplier(m float64) {
	o.multiplier = m
	if o.Entity != nil {
		o.Entity.Vel.X = -o.baseSpeed * m
	}
}

// Passed reports whether the obstacle has already been scored.
func (o *Obstacle) Passed() bool {
	return o.passed
}

// FlapFrame returns the bird wing frame (0 up, 1 middle, 2 down).
func (o *Obstacle) FlapFrame() int {
	return o.flapFrame
}

// CheckPassed marks the obstacle passed once its trailing edge is behind
// playerX and returns its points. It returns 0 on every later call.
func (o *Obstacle) CheckPassed(playerX float64) int {
	if o.passed || o.Entity.Pos.X+o.Entity.W >= playerX {
		return 0
	}
	o.passed = true
	return o.Kind.Points()
}

// Update implements engine.Behavior.
func (o *Obstacle) Update(e *engine.Entity, _ *engine.Context, dt float64) {
	if o.Kind.IsBird() && o.flapInterval > 0 {
		o.flapTimer += dt
		if o.flapTimer >= o.flapInterval {
			o.flapFrame = (o.flapFrame + 1) % 3
			o.flapTimer = 0
		}
	}

	if e.Pos.X+e.W < o.despawnX {
		e.Destroy()
	}

	e.Vel.X = -o.baseSpeed * o.multiplier
}

// OnAdded binds a cloned behavior to its entity.
func (o *Obstacle) OnAdded(e *engine.Entity, _ *engine.Context) {
	o.Entity = e
}

// Fresh implements engine.Prototype.
func (o *Obstacle) Fresh() engine.Behavior {
	return &Obstacle{
		Kind:         o.Kind,
		baseSpeed:    o.baseSpeed,
		multiplier:   o.multiplier,
		despawnX:     o.despawnX,
		flapInterval: o.flapInterval,
	}
}

// Draw implements engine.Behavior.
func (o *Obstacle) Draw(e *engine.Entity, s core.Surface) {
	x, y, w, h := e.LocalRect()
	switch o.Kind {
	case CactusSmall:
		s.FillRect(x+w*0.4, y, w*0.2, h, core.ColorGreen)
		s.FillRect(x+w*0.1, y+h*0.3, w*0.3, w*0.15, core.ColorGreen)
		s.FillRect(x+w*0.6, y+h*0.5, w*0.3, w*0.15, core.ColorGreen)
		for i := 0; i < 3; i++ {
			spikeY := y + h/4*float64(i) + 5
			s.FillRect(x+w*0.35, spikeY, 2, 3, core.ColorBrightGreen)
			s.FillRect(x+w*0.65, spikeY, 2, 3, core.ColorBrightGreen)
		}
	case CactusLarge:
		s.FillRect(x+w*0.35, y, w*0.3, h, core.ColorGreen)
		s.FillRect(x+w*0.05, y+h*0.25, w*0.3, w*0.15, core.ColorGreen)
		s.FillRect(x+w*0.05, y+h*0.6, w*0.25, w*0.15, core.ColorGreen)
		s.FillRect(x+w*0.65, y+h*0.4, w*0.3, w*0.15, core.ColorGreen)
	case CactusDouble:
		s.FillRect(x+w*0.2, y, w*0.2, h*0.8, core.ColorGreen)
		s.FillRect(x+w*0.6, y+h*0.2, w*0.2, h*0.8, core.ColorGreen)
		s.FillRect(x, y+h*0.3, w*0.2, w*0.12, core.ColorGreen)
		s.FillRect(x+w*0.8, y+h*0.5, w*0.2, w*0.12, core.ColorGreen)
	case BirdLow, BirdHigh:
		o.drawBird(s, x, y, w, h)
	}
}

func (o *Obstacle) drawBird(s core.Surface, x, y, w, h float64) {
	s.FillRect(x+w*0.3, y+h*0.3, w*0.4, h*0.4, core.ColorMagenta) // body
	s.FillRect(x+w*0.1, y+h*0.2, w*0.3, h*0.3, core.ColorMagenta) // head
	s.FillRect(x, y+h*0.35, w*0.15, h*0.1, core.ColorOrange)      // beak
	s.FillRect(x+w*0.7, y+h*0.35, w*0.3, h*0.15, core.ColorMagenta)

	switch o.flapFrame {
	case 0:
		s.FillPath([]core.Vec2{{X: x + w*0.25, Y: y + h*0.3}, {X: x + w*0.5, Y: y}, {X: x + w*0.75, Y: y + h*0.3}}, core.ColorBrightMagenta)
	case 1:
		s.FillRect(x+w*0.2, y+h*0.25, w*0.6, h*0.15, core.ColorBrightMagenta)
	default:
		s.FillPath([]core.Vec2{{X: x + w*0.25, Y: y + h*0.45}, {X: x + w*0.5, Y: y + h}, {X: x + w*0.75, Y: y + h*0.45}}, core.ColorBrightMagenta)
	}
}
