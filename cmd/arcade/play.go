package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/reflex-arcade/internal/platform/tui"
	"github.com/vovakirdan/reflex-arcade/internal/registry"
)

var flagConfig string

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game in the terminal",
	Long: `Start playing the specified game in the terminal.

Controls:
  Space/Up   - Jump / start
  Enter      - Start
  1-6        - Bop It commands (BOP TWIST PULL FLICK SPIN PASS)
  P          - Pause
  R          - Restart
  Esc        - Back (when not playing)
  Q/Ctrl+C   - Quit

Difficulty options:
  easy   - Slower start, more forgiving timers
  normal - Default tuning
  hard   - Faster start, tighter timers
  fixed  - No progression

Examples:
  arcade play dino-run
  arcade play bop-it --difficulty hard
  arcade play dino-run --config ./my-dino.yaml
  arcade play bop-it --voice /tmp/speech.fifo`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
}

// createGame applies --config and creates the game.
func createGame(gameID string) (registry.Game, error) {
	if !registry.Exists(gameID) {
		return nil, fmt.Errorf("unknown game %q, run 'arcade list' to see available games", gameID)
	}
	applyConfigPath(gameID, flagConfig)
	return registry.Create(gameID)
}

func runPlay(_ *cobra.Command, args []string) error {
	game, err := createGame(args[0])
	if err != nil {
		return err
	}

	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	cfg := sess.runtimeConfig(terminalSize())
	if _, err := tui.Run(game, cfg, sess.tuiOptions()); err != nil {
		return fmt.Errorf("error running game: %w", err)
	}
	return nil
}
