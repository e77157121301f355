package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/reflex-arcade/internal/core"
	"github.com/vovakirdan/reflex-arcade/internal/registry"
	"github.com/vovakirdan/reflex-arcade/internal/storage"
)

// Options carries the collaborators a game session may use. Every field is
// optional.
type Options struct {
	// History records every finished run.
	History *storage.Store
	// Voice delivers recognized command tokens.
	Voice <-chan string
	// VoiceLabel is shown in the status line when voice input is active.
	VoiceLabel string
}

// GameModel is the Bubble Tea model that runs one game.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	surface    *core.CellSurface
	opts       Options
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	help       help.Model
	logger     *log.Logger
	lastVoice  string
	quitting   bool
	backToMenu bool
	embedded   bool // Hosted by SessionModel, which owns the program
}

// NewGameModel creates a model for game. The game is reset in Init.
func NewGameModel(game registry.Game, cfg core.RuntimeConfig, opts Options) GameModel {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	var commands []string
	if cs, ok := game.(registry.CommandSource); ok {
		commands = cs.Commands()
	}

	screen := core.NewScreen(cfg.ScreenW, playfieldHeight(cfg.ScreenH))
	return GameModel{
		game:       game,
		screen:     screen,
		surface:    core.NewCellSurface(screen, core.WorldWidth, core.WorldHeight),
		opts:       opts,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(commands...),
		help:       help.New(),
		logger:     log.Default().WithPrefix("tui"),
	}
}

// playfieldHeight leaves one row for the status line.
func playfieldHeight(h int) int {
	return max(1, h-1)
}

// Init resets the game and starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tea.Batch(tickCmd(m.config.TickRate), waitForVoice(m.opts.Voice))
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, playfieldHeight(msg.Height))
		m.help.Width = msg.Width
		return m, nil

	case VoiceMsg:
		m.inputFrame.AddCommand(string(msg))
		m.lastVoice = string(msg)
		return m, waitForVoice(m.opts.Voice)

	case voiceClosedMsg:
		m.opts.Voice = nil
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}

	// Back to menu is only offered outside active play.
	if m.inputFrame.Has(core.ActionBack) && m.gameState.Phase != "playing" {
		m.backToMenu = true
		if m.embedded {
			return m, nil
		}
		return m, tea.Quit
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	for _, ev := range result.Events {
		m.handleEvent(ev)
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// handleEvent records finished runs and logs game events.
func (m *GameModel) handleEvent(ev core.Event) {
	switch e := ev.(type) {
	case core.GameEnded:
		m.logger.Info("game over", "game", m.game.ID(), "score", e.Score, "reason", e.Reason, "newHigh", e.NewHighScore)
		if m.opts.History == nil || e.Score <= 0 {
			return
		}
		run := storage.Run{GameID: m.game.ID(), Score: e.Score, Reason: e.Reason, NewHigh: e.NewHighScore}
		if _, err := m.opts.History.RecordRun(run); err != nil {
			m.logger.Warn("cannot record score", "err", err)
		}
	default:
		m.logger.Debug("event", "game", m.game.ID(), "type", fmt.Sprintf("%T", ev), "event", ev)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.surface)

	dir := filepath.Join(os.Getenv("HOME"), ".arcade", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("cannot create screenshot directory", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("cannot save screenshot", "err", err)
	}
}

var statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// View renders the playfield and a status line.
func (m GameModel) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	m.game.Render(m.surface)
	return RenderScreen(m.screen) + "\n" + statusStyle.Render(m.statusLine())
}

func (m GameModel) statusLine() string {
	line := m.help.View(m.keyMapper.Keys())
	if len(m.keyMapper.commands) > 0 {
		line += fmt.Sprintf(" • 1-%d commands", len(m.keyMapper.commands))
	}
	if m.opts.Voice != nil {
		label := m.opts.VoiceLabel
		if label == "" {
			label = "voice on"
		}
		line += " • " + label
		if m.lastVoice != "" {
			line += ": " + m.lastVoice
		}
	}
	return line
}

// State returns the state after the last tick.
func (m GameModel) State() core.GameState {
	return m.gameState
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program for a single game. It reports whether
// the player asked to return to the menu.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) (backToMenu bool, err error) {
	p := tea.NewProgram(
		NewGameModel(game, cfg, opts),
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(GameModel)
	return ok && m.BackToMenu(), nil
}
