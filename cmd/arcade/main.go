// arcade is a reflex arcade: Dino Run and Bop It in the terminal, a desktop
// window, or over SSH.
//
// Usage:
//
//	arcade list              - List available games
//	arcade play <game>       - Play a game in the terminal
//	arcade window <game>     - Play a game in a desktop window
//	arcade menu              - Start menu to pick games interactively
//	arcade serve             - Start SSH server for remote play
//	arcade scores <game>     - Show high scores for a game
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.arcade/scores.db)
//	--kv <backend>        - High score store: sqlite, gdata or memory
//	--difficulty <preset> - easy, normal, hard or fixed
//	--voice <file>        - Read recognized speech lines from a file or FIFO
//	--log-level <level>   - debug, info, warn or error
//	--log-file <path>     - Write logs to a file instead of stderr
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/reflex-arcade/internal/games/bopit"
	_ "github.com/vovakirdan/reflex-arcade/internal/games/dinorun"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagKV         string
	flagDifficulty string
	flagVoice      string
	flagLogLevel   string
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arcade",
	Short: "Reflex Arcade - Dino Run and Bop It",
	Long: `Reflex Arcade bundles two reaction games: Dino Run, an endless
runner, and Bop It, where you answer spoken or typed commands before the
timer runs out.

Available commands:
  list     - Show all available games
  play     - Play a game in the terminal
  window   - Play a game in a desktop window
  menu     - Interactive game picker menu
  serve    - Start SSH server for remote play
  scores   - View high scores

Examples:
  arcade list
  arcade play dino-run
  arcade window bop-it --difficulty hard
  arcade menu --voice /tmp/speech.fifo
  arcade serve --ssh :2222
  arcade scores bop-it`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		if err := setupLogging(flagLogLevel, flagLogFile); err != nil {
			return err
		}
		return applyDifficulty(flagDifficulty)
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		closeLogFile()
	},
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagKV, "kv", kvSQLite, "High score store: sqlite, gdata, memory")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagVoice, "voice", "", "Voice input: file or FIFO of \"TRANSCRIPT [confidence]\" lines")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "~/.arcade/arcade.log", "Log file (empty = stderr)")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}
