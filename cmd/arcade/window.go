package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/reflex-arcade/internal/core"
	"github.com/vovakirdan/reflex-arcade/internal/platform/window"
)

var flagScale float64

var windowCmd = &cobra.Command{
	Use:   "window <game>",
	Short: "Play a game in a desktop window",
	Long: `Open a desktop window and play the specified game with full
vector graphics. Controls match 'arcade play'; Esc closes the window
when no round is running.

Examples:
  arcade window dino-run
  arcade window bop-it --scale 1.5`,
	Args: cobra.ExactArgs(1),
	RunE: runWindow,
}

func init() {
	windowCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	windowCmd.Flags().Float64Var(&flagScale, "scale", 1, "Window size multiplier")
}

func runWindow(_ *cobra.Command, args []string) error {
	game, err := createGame(args[0])
	if err != nil {
		return err
	}

	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	cfg := sess.runtimeConfig(core.WorldWidth, core.WorldHeight)
	opts := window.Options{
		History: sess.history,
		Voice:   sess.voice,
		Scale:   flagScale,
	}
	if err := window.Run(game, cfg, opts); err != nil {
		return fmt.Errorf("error running game: %w", err)
	}
	return nil
}
