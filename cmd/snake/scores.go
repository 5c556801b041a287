package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/scorelog"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var (
	flagBest  bool
	flagStats bool
	flagLimit int
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Print the score log",
	Long: `Print every recorded run in the order it was played, exactly as
stored in the log.

With --best, print each player's best run instead, highest first.
With --stats (sqlite backend only), print aggregate statistics.

Examples:
  snake scores
  snake scores --best --limit 5
  snake scores --scores ./other.txt`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagBest, "best", false, "Show each player's best run")
	scoresCmd.Flags().BoolVar(&flagStats, "stats", false, "Show aggregate statistics (sqlite backend)")
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Maximum rows for --best")
}

func runScores(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer closeLog.Close()

	backend, closeBackend, err := openBackend(cfg)
	if err != nil {
		return err
	}
	defer closeBackend.Close()

	out := cmd.OutOrStdout()

	if flagStats {
		store, ok := backend.(*storage.Store)
		if !ok {
			return fmt.Errorf("--stats needs scores.backend: %s", config.BackendSQLite)
		}
		stats, err := store.GetStats()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Runs:      %d\n", stats.Runs)
		fmt.Fprintf(out, "Players:   %d\n", stats.Players)
		fmt.Fprintf(out, "Best:      %d\n", stats.HighScore)
		fmt.Fprintf(out, "Average:   %.1f\n", stats.AvgScore)
		if !stats.LastPlayed.IsZero() {
			fmt.Fprintf(out, "Last run:  %s\n", stats.LastPlayed.Format("2006-01-02 15:04"))
		}
		return nil
	}

	lines, err := backend.ReadAll()
	if err != nil {
		logger.Error("could not read scores", "error", err)
		lines = nil
	}

	if len(lines) == 0 {
		fmt.Fprintln(out, "No scores recorded yet.")
		return nil
	}

	if !flagBest {
		for _, line := range lines {
			fmt.Fprintln(out, line)
		}
		return nil
	}

	var best []scorelog.Record
	if store, ok := backend.(*storage.Store); ok {
		entries, err := store.TopScores(flagLimit)
		if err != nil {
			logger.Error("could not read top scores", "error", err)
		}
		for _, e := range entries {
			best = append(best, e.Record())
		}
	} else {
		best = scorelog.Best(lines)
		if flagLimit > 0 && len(best) > flagLimit {
			best = best[:flagLimit]
		}
	}

	// Print header
	fmt.Fprintf(out, "  %-4s  %-20s  %s\n", "Rank", "Player", "Apples")
	fmt.Fprintf(out, "  %-4s  %-20s  %s\n", "----", "------", "------")
	for i, rec := range best {
		fmt.Fprintf(out, "  %-4d  %-20s  %d\n", i+1, rec.Username, rec.Apples)
	}
	return nil
}
