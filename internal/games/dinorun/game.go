// Package dinorun implements Dino-Run: a side-scrolling runner where the
// player jumps over cacti and birds, with three strikes and a speed ramp.
package dinorun

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/reflex-arcade/internal/config"
	"github.com/vovakirdan/reflex-arcade/internal/core"
	"github.com/vovakirdan/reflex-arcade/internal/engine"
	"github.com/vovakirdan/reflex-arcade/internal/physics"
	"github.com/vovakirdan/reflex-arcade/internal/registry"
)

// GameID is the registry and storage identifier.
const GameID = "dino-run"

// Command tokens accepted from keys or voice.
const (
	CommandJump    = "JUMP"
	CommandPause   = "PAUSE"
	CommandStart   = "START"
	CommandRestart = "RESTART"
)

// Vocabulary lists every command token the game reacts to.
var Vocabulary = []string{CommandJump, CommandPause, CommandStart, CommandRestart}

// Phase is the orchestrator state.
type Phase string

const (
	PhaseReady    Phase = "ready"
	PhasePlaying  Phase = "playing"
	PhasePaused   Phase = "paused"
	PhaseGameOver Phase = "game-over"
)

// configPath stores the custom config path set via CLI
var configPath string
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names keep the
// loaded config.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil {
		log.Warn("ignoring difficulty preset", "game", GameID, "err", err)
	}
	difficultyPreset = p
}

// Game orchestrates the Dino, obstacles, scrolling scenery, scoring and the
// ready/playing/paused/game-over state machine on top of the entity engine.
type Game struct {
	cfg     config.DinoRunConfig
	runtime core.RuntimeConfig
	store   core.KVStore
	logger  *log.Logger

	engine     *engine.Engine
	rng        *rand.Rand
	dino       *Dino
	ground     *Ground
	background *Background
	spawner    *Spawner
	obstacles  []*Obstacle

	bus      core.EventBus
	recorder core.EventRecorder

	phase     Phase
	score     int
	bonus     int
	distance  float64
	gameTime  float64
	speed     float64
	level     int
	highScore int
	newHigh   bool
}

// New creates a Dino-Run game. Reset must be called before use.
func New() *Game {
	g := &Game{logger: log.Default().WithPrefix(GameID)}
	g.bus.Subscribe(g.recorder.Record)
	return g
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Dino Run"
}

// Commands returns the command tokens the game accepts.
func (g *Game) Commands() []string {
	return Vocabulary
}

// Events returns the bus the game publishes on.
func (g *Game) Events() *core.EventBus {
	return &g.bus
}

// Reset loads configuration and builds a fresh world in the ready phase.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.store = runtime.Store

	cfg, err := config.LoadDinoRun(configPath)
	if err != nil {
		g.logger.Warn("using default config", "err", err)
		cfg = config.DefaultDinoRunConfig()
	}
	if difficultyPreset != "" {
		config.ApplyDinoRunPreset(&cfg, difficultyPreset)
	}
	g.cfg = cfg

	ctx := engine.NewContext(core.WorldWidth, core.WorldHeight)
	ctx.Physics = physics.Physics{
		Gravity:          cfg.Physics.Gravity,
		TerminalVelocity: cfg.Physics.TerminalVelocity,
		AirResistance:    cfg.Physics.AirResistance,
		GroundTolerance:  cfg.Physics.GroundTolerance,
		Restitution:      cfg.Physics.Restitution,
	}
	ctx.Logger = g.logger
	g.engine = engine.New(ctx, runtime.ClockOrSystem())
	g.engine.SetScene(g)

	g.rng = rand.New(rand.NewSource(runtime.Seed))
	g.background = NewBackground(cfg, ctx.Width, g.rng)
	g.ground = NewGround(cfg, ctx.Width, ctx.Height, g.rng)
	g.dino = NewDino(cfg.Dino)
	g.spawner = NewSpawner(cfg, g.rng)
	g.obstacles = nil

	// Insertion order is draw order.
	g.engine.AddEntity(g.background.Entity)
	g.engine.AddEntity(g.ground.Entity)
	g.engine.AddEntity(g.dino.Entity)

	g.highScore = core.LoadHighScore(g.store, core.HighScoreKey(GameID))
	g.resetRun()
	g.phase = PhaseReady
	g.recorder.Drain()
}

// resetRun zeroes the per-run counters.
func (g *Game) resetRun() {
	g.score = 0
	g.bonus = 0
	g.distance = 0
	g.gameTime = 0
	g.speed = 1
	g.level = 1
	g.newHigh = false
}

// Step applies input and advances the simulation by one host frame.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionDebug) {
		g.engine.ToggleDebug()
	}
	// A frame that changes phase does not also jump.
	phase := g.phase
	if in.Has(core.ActionPause) || in.HasCommand(CommandPause) {
		g.TogglePause()
	}
	if in.Has(core.ActionRestart) || in.HasCommand(CommandRestart) {
		g.Restart()
	}
	if (in.Has(core.ActionConfirm) || in.HasCommand(CommandStart)) && g.phase == PhaseReady {
		g.Start()
	}
	if (in.Has(core.ActionJump) || in.HasCommand(CommandJump)) && g.phase == phase {
		g.Jump()
	}

	g.engine.Advance()

	return core.StepResult{State: g.State(), Events: g.recorder.Drain()}
}

// Start begins a run from the ready phase.
func (g *Game) Start() bool {
	if g.phase != PhaseReady {
		return false
	}
	g.setPhase(PhasePlaying)
	g.engine.Start()
	return true
}

// TogglePause switches between playing and paused without resetting.
func (g *Game) TogglePause() bool {
	switch g.phase {
	case PhasePlaying:
		g.setPhase(PhasePaused)
		g.engine.Stop()
	case PhasePaused:
		g.setPhase(PhasePlaying)
		g.engine.Start()
	default:
		return false
	}
	return true
}

// Restart persists the high score and returns every owned object to its
// initial state in the ready phase with the engine stopped.
func (g *Game) Restart() {
	g.persistHighScore()
	g.engine.Stop()

	for _, o := range g.obstacles {
		o.Entity.Destroy()
		g.engine.RemoveEntity(o.Entity)
	}
	g.obstacles = nil

	g.dino.Reset()
	g.spawner.Reset()
	g.ground.Reset()
	g.background.Reset()
	g.resetRun()
	g.setPhase(PhaseReady)
}

// Jump is the primary action: it starts a run when ready, jumps while
// playing, and restarts after game over.
func (g *Game) Jump() bool {
	switch g.phase {
	case PhaseReady:
		return g.Start()
	case PhasePlaying:
		return g.dino.Jump()
	case PhaseGameOver:
		g.Restart()
		return true
	default:
		return false
	}
}

// Update implements engine.Scene. It runs one frame of play.
func (g *Game) Update(dt float64) {
	if g.phase != PhasePlaying {
		return
	}

	g.gameTime += dt
	g.distance += g.cfg.Scroll.GroundSpeed * g.speed * dt / 100
	g.updateDifficulty()

	if o := g.spawner.Update(dt, g.gameTime); o != nil {
		o.SetSpeedMultiplier(g.speed)
		g.obstacles = append(g.obstacles, o)
		g.engine.AddEntity(o.Entity)
	}
	if lvl := g.spawner.Level(); lvl > g.level {
		g.level = lvl
		g.bus.Publish(core.LevelUp{Level: lvl, Speed: g.spawner.Speed()})
	}

	g.engine.UpdateEntities(dt)
	g.checkCollisions()
	g.updateScore()
	g.cleanupObstacles()

	if g.dino.IsGameOver() {
		g.gameOver()
	}
}

// updateDifficulty raises the speed multiplier on each ramp step and
// propagates it to everything that scrolls.
func (g *Game) updateDifficulty() {
	target := g.cfg.Difficulty.Multiplier(g.gameTime)
	if target <= g.speed {
		return
	}
	g.speed = target
	g.ground.SetSpeed(g.speed)
	g.background.SetSpeed(g.speed)
	for _, o := range g.obstacles {
		o.SetSpeedMultiplier(g.speed)
	}
	g.logger.Debug("speed increased", "speed", g.speed, "time", g.gameTime)
}

// checkCollisions processes at most one hit per frame.
func (g *Game) checkCollisions() {
	for _, o := range g.obstacles {
		if o.Entity.ShouldRemove() || !o.Entity.CollidesWith(g.dino.Entity) {
			continue
		}

		before := g.dino.Strikes()
		over := g.dino.TakeDamage()
		if g.dino.Strikes() != before {
			g.bus.Publish(core.PlayerHit{Strikes: g.dino.Strikes(), MaxStrikes: g.dino.MaxStrikes()})
			g.logger.Debug("dino hit", "obstacle", o.Kind, "strikes", g.dino.Strikes())
		}
		if over {
			return
		}
		o.Entity.Destroy()
		return
	}
}

// updateScore sets score to whole distance plus passed-obstacle bonuses.
func (g *Game) updateScore() {
	for _, o := range g.obstacles {
		if o.Entity.ShouldRemove() {
			continue
		}
		g.bonus += o.CheckPassed(g.dino.Entity.Pos.X)
	}

	score := int(math.Floor(g.distance)) + g.bonus
	if score == g.score {
		return
	}
	g.bus.Publish(core.ScoreChanged{Score: score, Delta: score - g.score})
	g.score = score

	if g.score > g.highScore {
		g.highScore = g.score
		g.newHigh = true
	}
}

// cleanupObstacles drops obstacles flagged for removal from the owned list.
func (g *Game) cleanupObstacles() {
	live := g.obstacles[:0]
	for _, o := range g.obstacles {
		if o.Entity.ShouldRemove() {
			g.engine.RemoveEntity(o.Entity)
			continue
		}
		live = append(live, o)
	}
	for i := len(live); i < len(g.obstacles); i++ {
		g.obstacles[i] = nil
	}
	g.obstacles = live
}

func (g *Game) gameOver() {
	g.setPhase(PhaseGameOver)
	g.engine.Stop()
	g.persistHighScore()
	g.bus.Publish(core.GameEnded{
		Score:        g.score,
		HighScore:    g.highScore,
		NewHighScore: g.newHigh,
		Reason:       "out of strikes",
	})
}

// persistHighScore writes the high score. Failures are logged and ignored.
func (g *Game) persistHighScore() {
	stored := core.LoadHighScore(g.store, core.HighScoreKey(GameID))
	if g.highScore <= stored {
		return
	}
	if err := core.SaveHighScore(g.store, core.HighScoreKey(GameID), g.highScore); err != nil {
		g.logger.Warn("cannot save high score", "err", err)
	}
}

func (g *Game) setPhase(p Phase) {
	if p == g.phase {
		return
	}
	from := g.phase
	g.phase = p
	g.logger.Debug("state changed", "from", from, "to", p)
	g.bus.Publish(core.StateChanged{From: string(from), To: string(p)})
}

// Phase returns the current state machine phase.
func (g *Game) Phase() Phase {
	return g.phase
}

// Speed returns the game speed multiplier.
func (g *Game) Speed() float64 {
	return g.speed
}

// Distance returns the distance run in meters.
func (g *Game) Distance() float64 {
	return g.distance
}

// GameTime returns the seconds of play in the current run.
func (g *Game) GameTime() float64 {
	return g.gameTime
}

// Dino returns the player.
func (g *Game) Dino() *Dino {
	return g.dino
}

// Ground returns the scrolling ground strip.
func (g *Game) Ground() *Ground {
	return g.ground
}

// Background returns the parallax sky.
func (g *Game) Background() *Background {
	return g.background
}

// Spawner returns the obstacle spawner.
func (g *Game) Spawner() *Spawner {
	return g.spawner
}

// Obstacles returns the live obstacles. Callers must not modify the slice.
func (g *Game) Obstacles() []*Obstacle {
	return g.obstacles
}

// Engine returns the underlying entity engine.
func (g *Game) Engine() *engine.Engine {
	return g.engine
}

// AddObstacle places an obstacle into the running world.
func (g *Game) AddObstacle(o *Obstacle) {
	o.SetSpeedMultiplier(g.speed)
	g.obstacles = append(g.obstacles, o)
	g.engine.AddEntity(o.Entity)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:     g.score,
		HighScore: g.highScore,
		GameOver:  g.phase == PhaseGameOver,
		Paused:    g.phase == PhasePaused,
		Phase:     string(g.phase),
	}
}

// Render draws the world and the HUD.
func (g *Game) Render(dst core.Surface) {
	dst.Clear(core.ColorCyan)
	g.engine.Render(dst)
	g.renderHUD(dst)
}

func (g *Game) renderHUD(dst core.Surface) {
	dst.FillText(20, 5, fmt.Sprintf("Score: %d", g.score), core.ColorBrightWhite)
	if g.highScore > 0 {
		dst.FillText(20, 30, fmt.Sprintf("High: %d", g.highScore), core.ColorYellow)
	}
	dst.FillText(20, 55, fmt.Sprintf("Speed: %.2fx", g.speed), core.ColorWhite)

	lives := fmt.Sprintf("Lives: %d", g.dino.MaxStrikes()-g.dino.Strikes())
	livesColor := core.ColorBrightWhite
	if g.dino.Strikes() > 0 {
		livesColor = core.ColorBrightRed
	}
	dst.FillText(dst.Width()-20-dst.MeasureText(lives), 5, lives, livesColor)

	switch g.phase {
	case PhaseReady:
		core.DrawPanel(dst, core.ColorBrightGreen, "DINO RUN",
			"Jump over obstacles and survive!",
			fmt.Sprintf("You have %d lives", g.dino.MaxStrikes()),
			"SPACE or say JUMP to start")
	case PhasePaused:
		core.DrawPanel(dst, core.ColorBrightWhite, "PAUSED", "Press P to resume")
	case PhaseGameOver:
		last := fmt.Sprintf("High Score: %d", g.highScore)
		if g.newHigh {
			last = "NEW HIGH SCORE!"
		}
		core.DrawPanel(dst, core.ColorBrightRed, "GAME OVER",
			fmt.Sprintf("Final Score: %d", g.score),
			fmt.Sprintf("Distance: %dm", int(g.distance)),
			last,
			"Press R or SPACE to restart")
	}
}

// Register the game with the registry
func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
}
