package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/reflex-arcade/internal/config"
	"github.com/vovakirdan/reflex-arcade/internal/core"
	"github.com/vovakirdan/reflex-arcade/internal/games/bopit"
	"github.com/vovakirdan/reflex-arcade/internal/games/dinorun"
	"github.com/vovakirdan/reflex-arcade/internal/platform/tui"
	"github.com/vovakirdan/reflex-arcade/internal/registry"
	"github.com/vovakirdan/reflex-arcade/internal/storage"
	"github.com/vovakirdan/reflex-arcade/internal/voice"
)

// High score store backends for --kv.
const (
	kvSQLite = "sqlite"
	kvGdata  = "gdata"
	kvMemory = "memory"
)

// appName names the gdata app directory.
const appName = "reflex-arcade"

var logFile *os.File

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

// setupLogging configures the default charmbracelet logger. Terminal
// programs own stdout, so logs go to a file unless path is empty.
func setupLogging(level, path string) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", level, err)
	}

	out := os.Stderr
	if path != "" {
		if path, err = expandHome(path); err != nil {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("cannot create log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("cannot open log file: %w", err)
		}
		logFile = f
		out = f
	}

	log.SetDefault(log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Level:           lvl,
	}))
	return nil
}

func closeLogFile() {
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}

// applyDifficulty sets the preset for every game.
func applyDifficulty(preset string) error {
	if preset == "" {
		return nil
	}
	if _, err := config.ParsePreset(preset); err != nil {
		return err
	}
	dinorun.SetDifficultyPreset(preset)
	bopit.SetDifficultyPreset(preset)
	return nil
}

// applyConfigPath points the named game at a custom YAML file.
func applyConfigPath(gameID, path string) {
	switch gameID {
	case dinorun.GameID:
		dinorun.SetConfigPath(path)
	case bopit.GameID:
		bopit.SetConfigPath(path)
	}
}

// session holds the collaborators shared by every game a command runs.
type session struct {
	history    *storage.Store
	kv         core.KVStore
	voice      <-chan string
	voiceLabel string
	stopVoice  context.CancelFunc
}

// openSession opens the score database, the high score store and the voice
// input named by the global flags. Missing storage is not fatal.
func openSession() (*session, error) {
	s := &session{stopVoice: func() {}}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		log.Warn("could not open scores database", "err", err)
	} else {
		s.history = store
	}

	switch flagKV {
	case kvSQLite:
		if s.history != nil {
			s.kv = s.history
		}
	case kvGdata:
		g, err := storage.OpenGdata(appName)
		if err != nil {
			log.Warn("could not open app data, high scores will not persist", "err", err)
		} else {
			s.kv = g
		}
	case kvMemory:
		s.kv = core.NewMemoryStore()
	default:
		s.Close()
		return nil, fmt.Errorf("invalid --kv %q: expected sqlite, gdata or memory", flagKV)
	}

	if flagVoice != "" {
		if err := s.startVoice(flagVoice); err != nil {
			s.Close()
			return nil, err
		}
	}
	return s, nil
}

// startVoice feeds lines from path through a voice controller that knows
// every registered game's commands.
func (s *session) startVoice(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("cannot open voice input: %w", err)
	}

	ctrl := voice.NewController(registry.Vocabulary(), voice.Options{})
	ch := make(chan string, 8)
	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		defer f.Close()
		defer close(ch)
		if err := ctrl.Run(ctx, voice.NewLineSource(f), ch); err != nil {
			log.Warn("voice input stopped", "err", err)
		}
		st := ctrl.Stats()
		log.Info("voice input closed", "recognized", st.Recognized, "total", st.Total)
	}()

	s.voice = ch
	s.voiceLabel = "voice: " + filepath.Base(path)
	s.stopVoice = cancel
	return nil
}

// runtimeConfig builds the runtime config for one game.
func (s *session) runtimeConfig(width, height int) core.RuntimeConfig {
	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if s.kv != nil {
		cfg.Store = s.kv
	}
	return cfg
}

// Close stops voice input and closes the database.
func (s *session) Close() {
	s.stopVoice()
	if s.history != nil {
		s.history.Close()
	}
}

// terminalSize returns the terminal size, or 80x24 when unknown.
func terminalSize() (int, int) {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return width, height
}

func (s *session) tuiOptions() tui.Options {
	return tui.Options{
		History:    s.history,
		Voice:      s.voice,
		VoiceLabel: s.voiceLabel,
	}
}
