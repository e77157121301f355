package dinorun

import (
	"math/rand"

	"github.com/vovakirdan/reflex-arcade/internal/config"
	"github.com/vovakirdan/reflex-arcade/internal/core"
	"github.com/vovakirdan/reflex-arcade/internal/engine"
)

// groundDetail is a rock or grass tuft drawn on the ground strip.
type groundDetail struct {
	x, y, size float64
	grass      bool
}

// Ground is the scrolling strip below the ground line. It wraps every
// screen width and regenerates its texture on each wrap.
type Ground struct {
	Entity *engine.Entity

	rng       *rand.Rand
	baseSpeed float64
	details   []groundDetail
}

// NewGround creates the ground strip spanning worldW below cfg.Dino.GroundY.
func NewGround(cfg config.DinoRunConfig, worldW, worldH float64, rng *rand.Rand) *Ground {
	g := &Ground{rng: rng, baseSpeed: cfg.Scroll.GroundSpeed}
	g.Entity = engine.NewEntity("ground", 0, cfg.Dino.GroundY, worldW, worldH-cfg.Dino.GroundY, g)
	g.Entity.Solid = false
	g.Reset()
	return g
}

// Reset puts the strip back at the origin at base speed.
func (g *Ground) Reset() {
	g.Entity.Pos.X = 0
	g.SetSpeed(1)
	g.generate()
}

// SetSpeed applies the game speed multiplier to the scroll velocity.
func (g *Ground) SetSpeed(multiplier float64) {
	g.Entity.Vel.X = -g.baseSpeed * multiplier
}

func (g *Ground) generate() {
	g.details = g.details[:0]
	for x := 0.0; x < g.Entity.W; x += 20 {
		if g.rng.Float64() < 0.3 {
			g.details = append(g.details, groundDetail{x: x, y: g.rng.Float64()*20 + 10, size: g.rng.Float64()*3 + 2})
		}
		if g.rng.Float64() < 0.2 {
			g.details = append(g.details, groundDetail{x: x, y: g.rng.Float64()*5 + 2, size: g.rng.Float64()*4 + 3, grass: true})
		}
	}
}

// Update implements engine.Behavior.
func (g *Ground) Update(e *engine.Entity, _ *engine.Context, _ float64) {
	if e.Pos.X <= -e.W {
		e.Pos.X += e.W
		g.generate()
	}
}

// Draw implements engine.Behavior. The strip is drawn twice so the scrolled
// gap on the right stays covered.
func (g *Ground) Draw(e *engine.Entity, s core.Surface) {
	x, y, w, h := e.LocalRect()
	for _, off := range []float64{0, w} {
		s.FillRect(x+off, y, w, h, core.ColorOrange)
		s.FillRect(x+off, y, w, 2, core.ColorYellow)
		for _, d := range g.details {
			if d.grass {
				s.FillRect(x+off+d.x, y+d.y-d.size, 4, d.size, core.ColorGreen)
			} else {
				s.FillRect(x+off+d.x, y+d.y, d.size, d.size, core.ColorGray)
			}
		}
	}
}

// Speed returns the current scroll velocity.
func (g *Ground) Speed() float64 {
	return g.Entity.Vel.X
}

// cloud and mountain are parallax decorations.
type cloud struct {
	x, y, size, speed, opacity float64
}

type mountain struct {
	x, y, w, h, speed float64
	color             core.Color
}

// Background draws the parallax sky: mountains behind drifting clouds.
type Background struct {
	Entity *engine.Entity

	rng       *rand.Rand
	spawnX    float64
	cloudN    int
	mountainN int
	clouds    []cloud
	mountains []mountain
}

// NewBackground creates the sky decoration above the ground line.
func NewBackground(cfg config.DinoRunConfig, worldW float64, rng *rand.Rand) *Background {
	b := &Background{
		rng:       rng,
		spawnX:    cfg.Obstacles.SpawnX,
		cloudN:    cfg.Scroll.Clouds,
		mountainN: cfg.Scroll.Mountains,
	}
	b.Entity = engine.NewEntity("background", 0, 0, worldW, cfg.Dino.GroundY, b)
	b.Entity.Solid = false
	b.Reset()
	return b
}

// Reset regenerates every cloud and mountain.
func (b *Background) Reset() {
	b.clouds = b.clouds[:0]
	for i := 0; i < b.cloudN; i++ {
		b.clouds = append(b.clouds, cloud{
			x:       b.rng.Float64() * 1000,
			y:       b.rng.Float64()*200 + 50,
			size:    b.rng.Float64()*40 + 30,
			speed:   -20 - b.rng.Float64()*30,
			opacity: 0.3 + b.rng.Float64()*0.4,
		})
	}

	colors := []core.Color{core.ColorGray, core.ColorBlue, core.ColorCyan}
	b.mountains = b.mountains[:0]
	for i := 0; i < b.mountainN; i++ {
		b.mountains = append(b.mountains, mountain{
			x:     float64(i)*120 + b.rng.Float64()*50,
			y:     300 + b.rng.Float64()*100,
			w:     60 + b.rng.Float64()*80,
			h:     100 + b.rng.Float64()*60,
			speed: -50,
			color: colors[b.rng.Intn(len(colors))],
		})
	}
}

// SetSpeed applies the game speed multiplier with parallax factors.
func (b *Background) SetSpeed(multiplier float64) {
	for i := range b.clouds {
		b.clouds[i].speed = (-20 - b.rng.Float64()*30) * multiplier * 0.3
	}
	for i := range b.mountains {
		b.mountains[i].speed = -50 * multiplier * 0.5
	}
}

// Update implements engine.Behavior.
func (b *Background) Update(_ *engine.Entity, _ *engine.Context, dt float64) {
	for i := range b.clouds {
		c := &b.clouds[i]
		c.x += c.speed * dt
		if c.x < -c.size {
			c.x = b.spawnX + b.rng.Float64()*200
			c.y = b.rng.Float64()*200 + 50
		}
	}
	for i := range b.mountains {
		m := &b.mountains[i]
		m.x += m.speed * dt
		if m.x < -m.w {
			m.x = b.spawnX + b.rng.Float64()*100
		}
	}
}

// Draw implements engine.Behavior.
func (b *Background) Draw(e *engine.Entity, s core.Surface) {
	x, y, _, _ := e.LocalRect()

	for _, m := range b.mountains {
		base := y + m.y + m.h
		s.FillPath([]core.Vec2{
			{X: x + m.x, Y: base},
			{X: x + m.x + m.w/2, Y: y + m.y},
			{X: x + m.x + m.w, Y: base},
		}, m.color)
	}

	for _, c := range b.clouds {
		s.Save()
		s.SetAlpha(c.opacity)
		cx, cy, r := x+c.x, y+c.y, c.size
		s.FillCircle(cx, cy, r*0.6, core.ColorBrightWhite)
		s.FillCircle(cx+r*0.4, cy, r*0.5, core.ColorBrightWhite)
		s.FillCircle(cx-r*0.4, cy, r*0.5, core.ColorBrightWhite)
		s.FillCircle(cx+r*0.2, cy-r*0.3, r*0.4, core.ColorBrightWhite)
		s.FillCircle(cx-r*0.2, cy-r*0.3, r*0.4, core.ColorBrightWhite)
		s.Restore()
	}
}

// CloudSpeeds returns the current per-cloud velocities.
func (b *Background) CloudSpeeds() []float64 {
	out := make([]float64, len(b.clouds))
	for i, c := range b.clouds {
		out[i] = c.speed
	}
	return out
}

// MountainSpeeds returns the current per-mountain velocities.
func (b *Background) MountainSpeeds() []float64 {
	out := make([]float64, len(b.mountains))
	for i, m := range b.mountains {
		out[i] = m.speed
	}
	return out
}
