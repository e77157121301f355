// Package window runs games in a desktop window using Ebitengine.
package window

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/vovakirdan/reflex-arcade/internal/core"
	"github.com/vovakirdan/reflex-arcade/internal/registry"
	"github.com/vovakirdan/reflex-arcade/internal/storage"
)

// Options carries optional collaborators for a window session.
type Options struct {
	History *storage.Store
	Voice   <-chan string
	// Scale multiplies the window size. Zero means 1.
	Scale float64
}

// host adapts a registry.Game to ebiten.Game.
type host struct {
	game     registry.Game
	surface  *Surface
	opts     Options
	commands []string
	frame    core.InputFrame
	state    core.GameState
	logger   *log.Logger
}

func newHost(game registry.Game, opts Options) *host {
	var commands []string
	if cs, ok := game.(registry.CommandSource); ok {
		commands = cs.Commands()
	}
	return &host{
		game:     game,
		surface:  NewSurface(core.WorldWidth, core.WorldHeight),
		opts:     opts,
		commands: commands,
		frame:    core.NewInputFrame(),
		logger:   log.Default().WithPrefix("window"),
	}
}

// Update advances the game by one tick.
func (h *host) Update() error {
	readFrame(inpututil.IsKeyJustPressed, h.commands, &h.frame)
	h.drainVoice()

	if h.frame.Has(core.ActionQuit) {
		return ebiten.Termination
	}
	if h.frame.Has(core.ActionBack) && h.state.Phase != "playing" {
		return ebiten.Termination
	}

	h.step()
	return nil
}

func (h *host) step() {
	result := h.game.Step(h.frame)
	h.state = result.State
	for _, ev := range result.Events {
		h.handleEvent(ev)
	}
	h.frame.Clear()
}

// drainVoice moves every pending voice token into the frame without blocking.
func (h *host) drainVoice() {
	for h.opts.Voice != nil {
		select {
		case token, ok := <-h.opts.Voice:
			if !ok {
				h.opts.Voice = nil
				return
			}
			h.frame.AddCommand(token)
		default:
			return
		}
	}
}

func (h *host) handleEvent(ev core.Event) {
	e, ok := ev.(core.GameEnded)
	if !ok {
		h.logger.Debug("event", "game", h.game.ID(), "type", fmt.Sprintf("%T", ev))
		return
	}
	h.logger.Info("game over", "game", h.game.ID(), "score", e.Score, "reason", e.Reason)
	if h.opts.History == nil || e.Score <= 0 {
		return
	}
	run := storage.Run{GameID: h.game.ID(), Score: e.Score, Reason: e.Reason, NewHigh: e.NewHighScore}
	if _, err := h.opts.History.RecordRun(run); err != nil {
		h.logger.Warn("cannot record score", "err", err)
	}
}

// Draw renders the game onto the window.
func (h *host) Draw(screen *ebiten.Image) {
	h.surface.Begin(screen)
	h.game.Render(h.surface)
}

// Layout keeps the logical screen at world size; ebiten scales it to the window.
func (h *host) Layout(_, _ int) (int, int) {
	return core.WorldWidth, core.WorldHeight
}

// Run opens a window and plays game until it is closed or the player leaves.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) error {
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	scale := opts.Scale
	if scale <= 0 {
		scale = 1
	}

	game.Reset(cfg)

	ebiten.SetWindowTitle(game.Title())
	ebiten.SetWindowSize(int(core.WorldWidth*scale), int(core.WorldHeight*scale))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.TickRate)

	if err := ebiten.RunGame(newHost(game, opts)); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("window: %w", err)
	}
	return nil
}
