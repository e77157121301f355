package dinorun

import (
	"math"

	"github.com/vovakirdan/reflex-arcade/internal/config"
	"github.com/vovakirdan/reflex-arcade/internal/core"
	"github.com/vovakirdan/reflex-arcade/internal/engine"
	"github.com/vovakirdan/reflex-arcade/internal/physics"
)

// AnimState is the Dino's animation state.
type AnimState int

const (
	AnimRunning AnimState = iota
	AnimJumping
	AnimHurt
)

func (a AnimState) String() string {
	switch a {
	case AnimRunning:
		return "running"
	case AnimJumping:
		return "jumping"
	case AnimHurt:
		return "hurt"
	default:
		return "unknown"
	}
}

// Frames per animation state.
const (
	runFrames  = 4
	jumpFrames = 1
	hurtFrames = 3
)

// Dino is the player behavior: jump physics, strikes with an invulnerability
// window, and the running/jumping/hurt animation.
type Dino struct {
	Entity *engine.Entity

	cfg          config.DinoConfig
	strikes      int
	invulnerable bool
	invulnTimer  float64
	state        AnimState
	onGround     bool
}

// NewDino creates the player standing on the ground line.
func NewDino(cfg config.DinoConfig) *Dino {
	d := &Dino{cfg: cfg}
	d.Entity = engine.NewEntity("dino", cfg.X, cfg.GroundY-cfg.Height, cfg.Width, cfg.Height, d)
	d.Entity.HasGravity = true
	d.Entity.CollisionMargin = cfg.CollisionMargin
	d.Entity.AnimSpeed = cfg.FrameDuration
	d.Entity.Color = core.ColorBlue
	d.Reset()
	return d
}

// Reset clears strikes and invulnerability and puts the Dino back at its
// starting position, running.
func (d *Dino) Reset() {
	e := d.Entity
	d.strikes = 0
	d.invulnerable = false
	d.invulnTimer = 0
	d.state = AnimRunning
	d.onGround = true

	e.Pos = core.Vec2{X: d.cfg.X, Y: d.cfg.GroundY - d.cfg.Height}
	e.Vel = core.Vec2{}
	e.CanJump = true
	e.Opacity = 1
	e.AnimFrame = 0
	e.AnimTimer = 0
}

// Jump launches the Dino if it is grounded, able to jump and not invulnerable.
func (d *Dino) Jump() bool {
	if !d.onGround || d.invulnerable {
		return false
	}
	if !physics.Jump(&d.Entity.Body, d.cfg.JumpPower) {
		return false
	}
	d.onGround = false
	d.setState(AnimJumping)
	return true
}

// TakeDamage registers a hit. It is ignored while invulnerable. It returns
// true when the hit uses up the last strike.
func (d *Dino) TakeDamage() bool {
	if d.invulnerable {
		return false
	}
	if d.strikes < d.cfg.MaxStrikes {
		d.strikes++
	}
	d.invulnerable = true
	d.invulnTimer = d.cfg.Invulnerability
	d.setState(AnimHurt)
	return d.IsGameOver()
}

// IsGameOver reports whether every strike is used.
func (d *Dino) IsGameOver() bool {
	return d.strikes >= d.cfg.MaxStrikes
}

// Strikes returns the number of hits taken.
func (d *Dino) Strikes() int {
	return d.strikes
}

// MaxStrikes returns the number of hits that end the game.
func (d *Dino) MaxStrikes() int {
	return d.cfg.MaxStrikes
}

// Invulnerable reports whether damage is currently suppressed.
func (d *Dino) Invulnerable() bool {
	return d.invulnerable
}

// OnGround reports whether the Dino is standing on the ground line.
func (d *Dino) OnGround() bool {
	return d.onGround
}

// State returns the animation state.
func (d *Dino) State() AnimState {
	return d.state
}

func (d *Dino) setState(s AnimState) {
	d.state = s
	d.Entity.AnimFrame = 0
	d.Entity.AnimTimer = 0
}

// Update implements engine.Behavior. It runs after gravity and integration.
func (d *Dino) Update(e *engine.Entity, _ *engine.Context, dt float64) {
	if d.invulnerable {
		d.invulnTimer -= dt
		if d.invulnTimer <= 0 {
			d.invulnerable = false
			d.invulnTimer = 0
		}
	}

	if e.Pos.Y+e.H >= d.cfg.GroundY {
		e.Pos.Y = d.cfg.GroundY - e.H
		e.Vel.Y = 0
		e.CanJump = true
		d.onGround = true
		if d.state == AnimJumping {
			d.setState(AnimRunning)
		}
	} else {
		d.onGround = false
	}

	switch d.state {
	case AnimRunning:
		e.AnimFrame %= runFrames
	case AnimJumping:
		if e.AnimFrame >= jumpFrames {
			e.AnimFrame = jumpFrames - 1
		}
	case AnimHurt:
		if e.AnimFrame >= hurtFrames {
			d.setState(AnimRunning)
		}
	}

	// Flicker at 10Hz while invulnerable.
	e.Opacity = 1
	if d.invulnerable && int(math.Floor(e.Age*10))%2 == 1 {
		e.Opacity = 0.5
	}
}

// Draw implements engine.Behavior.
func (d *Dino) Draw(e *engine.Entity, s core.Surface) {
	x, y, w, h := e.LocalRect()

	var bounce float64
	switch d.state {
	case AnimRunning:
		bounce = math.Sin(float64(e.AnimFrame)*math.Pi/2) * 3
	case AnimJumping:
		bounce = -5
	}
	y += bounce

	// Head and hair.
	s.FillRect(x+w*0.25, y, w*0.5, h*0.4, core.ColorBrightYellow)
	s.FillRect(x+w*0.25-2, y-5, w*0.5+4, 8, core.ColorGray)

	eyes := core.ColorDefault
	if d.state == AnimHurt {
		eyes = core.ColorRed
	}
	s.FillRect(x+w*0.25+6, y+8, 3, 3, eyes)
	s.FillRect(x+w*0.75-9, y+8, 3, 3, eyes)

	// Shirt and arms.
	s.FillRect(x+w*0.2, y+h*0.4, w*0.6, h*0.4, e.Color)
	swing := bounce
	s.FillRect(x+w*0.1, y+h*0.45+swing, 4, h*0.2, core.ColorBrightYellow)
	s.FillRect(x+w*0.85, y+h*0.45-swing, 4, h*0.2, core.ColorBrightYellow)

	// Legs.
	legY := y + h*0.8
	if d.state == AnimJumping {
		s.FillRect(x+w*0.3, legY, 6, h*0.15, core.ColorGray)
		s.FillRect(x+w*0.6, legY, 6, h*0.15, core.ColorGray)
		return
	}
	legSwing := math.Sin(float64(e.AnimFrame)*math.Pi/2) * 4
	s.FillRect(x+w*0.3, legY, 6, h*0.2+legSwing, core.ColorGray)
	s.FillRect(x+w*0.6, legY, 6, h*0.2-legSwing, core.ColorGray)
}
