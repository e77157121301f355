package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/reflex-arcade/internal/registry"
	"github.com/vovakirdan/reflex-arcade/internal/storage"
)

var (
	flagScoresLimit  int
	flagScoresRecent bool
	flagScoresClear  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show recorded runs",
	Long: `Without a game, summarize every game's history. With a game, list
its best runs, or its latest runs with --recent.

Examples:
  arcade scores
  arcade scores dino-run
  arcade scores bop-it --recent --limit 20
  arcade scores bop-it --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagScoresRecent, "recent", false, "List the latest runs instead of the best")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the game's run history")
}

func runScores(_ *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("error opening scores database: %w", err)
	}
	defer store.Close()

	if len(args) == 0 {
		return printSummary(store)
	}

	gameID := args[0]
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q, run 'arcade list' to see available games", gameID)
	}

	if flagScoresClear {
		n, err := store.ClearRuns(gameID)
		if err != nil {
			return err
		}
		fmt.Printf("Removed %d runs of %s.\n", n, gameID)
		return nil
	}
	return printRuns(store, gameID)
}

func printRuns(store *storage.Store, gameID string) error {
	var runs []storage.Run
	var err error
	heading := "High Scores"
	if flagScoresRecent {
		heading = "Recent Runs"
		runs, err = store.RecentRuns(gameID, flagScoresLimit)
	} else {
		runs, err = store.TopRuns(gameID, flagScoresLimit)
	}
	if err != nil {
		return fmt.Errorf("error retrieving runs: %w", err)
	}

	fmt.Printf("%s - %s\n\n", heading, gameID)
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Printf("Play 'arcade play %s' to set the first high score!\n", gameID)
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  Rank\tScore\tEnded by\tDate\t")
	fmt.Fprintln(w, "  ----\t-----\t--------\t----\t")
	for i, r := range runs {
		mark := ""
		if r.NewHigh {
			mark = "new high"
		}
		fmt.Fprintf(w, "  %d\t%d\t%s\t%s\t%s\n", i+1, r.Score, orDash(r.Reason), r.CreatedAt.Local().Format("2006-01-02 15:04"), mark)
	}
	w.Flush()

	stats, err := store.Stats(gameID)
	if err == nil {
		fmt.Printf("\nBest: %d  Runs: %d  Average: %.1f\n", stats.Best, stats.Runs, stats.Average)
	}
	return nil
}

func printSummary(store *storage.Store) error {
	ids, err := store.PlayedGames()
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  Game\tRuns\tBest\tAverage\tLast played\t")
	fmt.Fprintln(w, "  ----\t----\t----\t-------\t-----------\t")
	for _, id := range ids {
		stats, err := store.Stats(id)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "  %s\t%d\t%d\t%.1f\t%s\t\n", id, stats.Runs, stats.Best, stats.Average,
			stats.LastPlayed.Local().Format("2006-01-02 15:04"))
	}
	return w.Flush()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
