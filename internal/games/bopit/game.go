// Package bopit implements Bop-It: a reaction game that calls out commands
// and ends on the first wrong or late answer.
package bopit

import (
	"math/rand"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/reflex-arcade/internal/config"
	"github.com/vovakirdan/reflex-arcade/internal/core"
	"github.com/vovakirdan/reflex-arcade/internal/registry"
)

// GameID is the registry and storage identifier.
const GameID = "bop-it"

// Command tokens the player must answer with.
const (
	CommandBop   = "BOP"
	CommandTwist = "TWIST"
	CommandPull  = "PULL"
	CommandFlick = "FLICK"
	CommandSpin  = "SPIN"
	CommandPass  = "PASS"
)

// Control tokens.
const (
	CommandStart   = "START"
	CommandRestart = "RESTART"
)

// Commands is the response vocabulary, in key order (1..6).
var Commands = []string{CommandBop, CommandTwist, CommandPull, CommandFlick, CommandSpin, CommandPass}

// Vocabulary lists every token the game reacts to.
var Vocabulary = append(slices.Clone(Commands), CommandStart, CommandRestart)

// Phase is the game state.
type Phase string

const (
	PhaseReady    Phase = "ready"
	PhasePlaying  Phase = "playing"
	PhaseGameOver Phase = "game-over"
)

// End reasons reported in core.GameEnded.
const (
	ReasonTimeout = "timeout"
	ReasonWrong   = "wrong command"
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

// Game is the command-reaction loop. Timing is kept as deadlines checked
// against the clock on every Step, so a reset leaves nothing pending.
type Game struct {
	cfg    config.BopItConfig
	rules  ruleset
	clock  core.Clock
	store  core.KVStore
	rng    *rand.Rand
	logger *log.Logger

	bus      core.EventBus
	recorder core.EventRecorder

	phase     Phase
	command   string // Outstanding command, empty while none
	last      string
	issuedAt  time.Time
	limit     time.Duration
	remaining time.Duration

	nextCommandAt time.Time // Zero when no command is scheduled
	nextTickAt    time.Time

	score     int
	round     int
	streak    int
	highScore int
	newHigh   bool
	reason    string
}

// New creates a Bop-It game. Reset must be called before use.
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
	return "Bop It"
}

// Commands returns the command tokens the game accepts.
func (g *Game) Commands() []string {
	return Vocabulary
}

// Events returns the bus the game publishes on.
func (g *Game) Events() *core.EventBus {
	return &g.bus
}

// Reset loads configuration and returns to the ready phase.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	cfg, err := config.LoadBopIt(configPath)
	if err != nil {
		g.logger.Warn("using default config", "err", err)
		cfg = config.DefaultBopItConfig()
	}
	if difficultyPreset != "" {
		config.ApplyBopItPreset(&cfg, difficultyPreset)
	}
	g.Configure(cfg, runtime)
}

// Configure installs cfg directly and returns to the ready phase.
func (g *Game) Configure(cfg config.BopItConfig, runtime core.RuntimeConfig) {
	rules, err := newRuleset(cfg)
	if err != nil {
		g.logger.Warn("falling back to classic rules", "err", err)
		cfg.Ruleset = config.RulesetClassic
		rules, _ = newRuleset(cfg)
	}
	if cfg.TickMs <= 0 {
		cfg.TickMs = 50
	}

	g.cfg = cfg
	g.rules = rules
	g.clock = runtime.ClockOrSystem()
	g.store = runtime.Store
	g.rng = rand.New(rand.NewSource(runtime.Seed))
	g.highScore = core.LoadHighScore(g.store, core.HighScoreKey(GameID))

	g.clearRun()
	g.last = ""
	g.phase = PhaseReady
	g.recorder.Drain()
}

// clearRun drops the outstanding command and every pending deadline.
func (g *Game) clearRun() {
	g.command = ""
	g.issuedAt = time.Time{}
	g.nextCommandAt = time.Time{}
	g.nextTickAt = time.Time{}
	g.score = 0
	g.round = 1
	g.streak = 0
	g.newHigh = false
	g.reason = ""
	g.limit = g.rules.limit(1)
	g.remaining = g.limit
}

// Step applies input, then fires any deadline that has passed.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	now := g.clock.Now()
	g.Tick(now)

	if in.Has(core.ActionRestart) || in.HasCommand(CommandRestart) {
		g.Restart()
	}
	if in.Has(core.ActionConfirm) || in.Has(core.ActionJump) || in.HasCommand(CommandStart) {
		if g.phase != PhasePlaying {
			g.Start()
		}
	}
	for _, c := range in.Commands {
		if slices.Contains(Commands, c) {
			g.respondAt(c, now)
		}
	}

	return core.StepResult{State: g.State(), Events: g.recorder.Drain()}
}

// Start begins a run from the ready or game-over phase and issues the first
// command immediately.
func (g *Game) Start() bool {
	if g.phase == PhasePlaying {
		return false
	}
	g.clearRun()
	g.last = ""
	g.setPhase(PhasePlaying)
	g.bus.Publish(core.ScoreChanged{Score: 0})
	g.issue(g.clock.Now())
	return true
}

// Restart abandons the run and returns to the ready phase.
func (g *Game) Restart() {
	g.clearRun()
	g.last = ""
	g.setPhase(PhaseReady)
}

// issue picks a command other than the previous one and opens its deadline.
func (g *Game) issue(now time.Time) {
	g.command = g.nextCommand()
	g.last = g.command
	g.issuedAt = now
	g.limit = g.rules.limit(g.round)
	g.remaining = g.limit
	g.nextCommandAt = time.Time{}
	g.nextTickAt = now.Add(g.tick())

	g.logger.Debug("command issued", "command", g.command, "round", g.round, "limit", g.limit)
	g.bus.Publish(core.CommandIssued{Command: g.command, Round: g.round, Limit: g.limit})
}

// nextCommand draws uniformly from the commands other than the last one.
func (g *Game) nextCommand() string {
	if g.last == "" || len(Commands) < 2 {
		return Commands[g.rng.Intn(len(Commands))]
	}
	i := g.rng.Intn(len(Commands) - 1)
	if Commands[i] == g.last {
		i = len(Commands) - 1
	}
	return Commands[i]
}

func (g *Game) tick() time.Duration {
	return time.Duration(g.cfg.TickMs) * time.Millisecond
}

// Tick fires every deadline due at now: the delayed next command, the
// countdown tick and the response timeout.
func (g *Game) Tick(now time.Time) {
	if g.phase != PhasePlaying {
		return
	}

	if !g.nextCommandAt.IsZero() && !now.Before(g.nextCommandAt) {
		g.issue(g.nextCommandAt)
	}
	if g.command == "" {
		return
	}

	elapsed := now.Sub(g.issuedAt)
	if elapsed >= g.limit {
		g.remaining = 0
		g.bus.Publish(core.TimerTick{Remaining: 0, Limit: g.limit})
		g.end(ReasonTimeout)
		return
	}

	if !now.Before(g.nextTickAt) {
		g.remaining = g.limit - elapsed
		g.bus.Publish(core.TimerTick{Remaining: g.remaining, Limit: g.limit})
		for !g.nextTickAt.After(now) {
			g.nextTickAt = g.nextTickAt.Add(g.tick())
		}
	}
}

// Respond answers the outstanding command at the clock's current time.
// It returns true for a correct, timely answer. Tokens arriving while no
// command is outstanding are ignored.
func (g *Game) Respond(token string) bool {
	now := g.clock.Now()
	g.Tick(now)
	return g.respondAt(token, now)
}

func (g *Game) respondAt(token string, now time.Time) bool {
	if g.phase != PhasePlaying || g.command == "" {
		return false
	}

	elapsed := now.Sub(g.issuedAt)
	if elapsed >= g.limit {
		g.end(ReasonTimeout)
		return false
	}
	if !strings.EqualFold(strings.TrimSpace(token), g.command) {
		g.logger.Debug("wrong command", "expected", g.command, "got", token)
		g.end(ReasonWrong)
		return false
	}

	points := g.rules.award(g.limit - elapsed)
	g.score += points
	g.round++
	g.streak++
	g.command = ""
	g.nextTickAt = time.Time{}
	g.bus.Publish(core.ScoreChanged{Score: g.score, Delta: points})

	if g.score > g.highScore {
		g.highScore = g.score
		g.newHigh = true
	}

	delay := g.rules.delay(g.round)
	if delay <= 0 {
		g.issue(now)
	} else {
		g.limit = g.rules.limit(g.round)
		g.remaining = g.limit
		g.nextCommandAt = now.Add(delay)
	}
	return true
}

func (g *Game) end(reason string) {
	g.command = ""
	g.nextCommandAt = time.Time{}
	g.nextTickAt = time.Time{}
	g.reason = reason
	g.setPhase(PhaseGameOver)

	stored := core.LoadHighScore(g.store, core.HighScoreKey(GameID))
	if g.highScore > stored {
		if err := core.SaveHighScore(g.store, core.HighScoreKey(GameID), g.highScore); err != nil {
			g.logger.Warn("cannot save high score", "err", err)
		}
	}

	g.logger.Debug("game over", "reason", reason, "score", g.score, "rounds", g.round-1)
	g.bus.Publish(core.GameEnded{
		Score:        g.score,
		HighScore:    g.highScore,
		NewHighScore: g.newHigh,
		Reason:       reason,
	})
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

// Phase returns the current phase.
func (g *Game) Phase() Phase {
	return g.phase
}

// Command returns the outstanding command, or "" between commands.
func (g *Game) Command() string {
	return g.command
}

// IssuedAt returns when the outstanding command was issued.
func (g *Game) IssuedAt() time.Time {
	return g.issuedAt
}

// Limit returns the response budget of the current round.
func (g *Game) Limit() time.Duration {
	return g.limit
}

// Remaining returns the response time left as of the last tick.
func (g *Game) Remaining() time.Duration {
	return g.remaining
}

// Round returns the 1-based round number.
func (g *Game) Round() int {
	return g.round
}

// Streak returns the number of correct answers in this run.
func (g *Game) Streak() int {
	return g.streak
}

// Reason returns why the last run ended.
func (g *Game) Reason() string {
	return g.reason
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:     g.score,
		HighScore: g.highScore,
		GameOver:  g.phase == PhaseGameOver,
		Phase:     string(g.phase),
	}
}

// Register the game with the registry
func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
}
