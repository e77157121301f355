package main

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/reflex-arcade/internal/platform/tui"
	"github.com/vovakirdan/reflex-arcade/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the arcade with a game picker menu",
	Long: `Start the arcade in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a game.
After a game ends, press Esc to return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select game
  Tab          - Scoreboard
  Q            - Quit

Examples:
  arcade menu
  arcade menu --fps 30
  arcade menu --db ./scores.db`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	cfg := sess.runtimeConfig(terminalSize())

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(cfg)
		if err != nil {
			return err
		}

		// Update config with any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(sess.history, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				log.Error("scoreboard failed", "err", sbErr)
			}
			if goBack {
				continue
			}
			return nil
		}

		game, err := registry.Create(menuResult.GameID)
		if err != nil {
			log.Error("cannot create game", "game", menuResult.GameID, "err", err)
			continue
		}

		// Fresh seed for each game
		cfg = sess.runtimeConfig(cfg.ScreenW, cfg.ScreenH)

		backToMenu, err := tui.Run(game, cfg, sess.tuiOptions())
		if err != nil {
			log.Error("game failed", "game", game.ID(), "err", err)
		}
		if !backToMenu {
			return nil
		}
	}
}
