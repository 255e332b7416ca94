package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

var (
	flagScoresLimit  int
	flagScoresRecent bool
	flagScoresClear  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [marathon|sprint]",
	Short: "Show the leaderboard of a mode",
	Long: `Display the best runs of a mode. Marathon runs are ranked by score,
sprint runs by completion time.

Examples:
  tetris scores
  tetris scores sprint
  tetris scores --recent
  tetris scores sprint --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVarP(&flagScoresLimit, "limit", "n", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagScoresRecent, "recent", false, "Show the most recent runs of every mode")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all runs of the mode")
}

func runScores(_ *cobra.Command, args []string) error {
	// Open run storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening runs database: %w", err)
	}
	defer store.Close()

	if flagScoresRecent {
		runs, err := store.RecentRuns(flagScoresLimit)
		if err != nil {
			return fmt.Errorf("retrieving runs: %w", err)
		}
		fmt.Println("Recent runs")
		fmt.Println()
		printRuns(runs, true)
		return nil
	}

	mode := ""
	if len(args) > 0 {
		mode = args[0]
	}
	gameID, err := resolveMode(mode)
	if err != nil {
		return err
	}
	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	if flagScoresClear {
		if err := store.ClearRuns(gameID); err != nil {
			return fmt.Errorf("clearing runs: %w", err)
		}
		fmt.Printf("Cleared all runs of %s.\n", game.Title())
		return nil
	}

	timed := gameID == tetris.IDSprint
	var runs []storage.Run
	if timed {
		runs, err = store.FastestRuns(gameID, flagScoresLimit)
	} else {
		runs, err = store.TopScores(gameID, flagScoresLimit)
	}
	if err != nil {
		return fmt.Errorf("retrieving runs: %w", err)
	}

	if timed {
		fmt.Printf("Fastest Clears - %s\n", game.Title())
	} else {
		fmt.Printf("High Scores - %s\n", game.Title())
	}
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'tetris play %s' to set the first record!\n", mode)
		return nil
	}
	printRuns(runs, false)

	stats, err := store.GetGameStats(gameID)
	if err != nil {
		return fmt.Errorf("retrieving stats: %w", err)
	}
	fmt.Println()
	fmt.Printf("Games: %d  Completed: %d  Lines: %d  Average: %.0f\n",
		stats.GamesCount, stats.Completed, stats.TotalLines, stats.AvgScore)
	if timed {
		fmt.Printf("Best: %s by %s\n", formatRunTime(runs[0].Duration()), runs[0].Player)
	} else if stats.HighScore > 0 {
		fmt.Printf("Best: %d\n", stats.HighScore)
	}
	if !stats.LastPlayed.IsZero() {
		fmt.Printf("Last played: %s\n", stats.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}

// printRuns writes a table of runs to stdout.
func printRuns(runs []storage.Run, withMode bool) {
	header := fmt.Sprintf("  %-4s  %-12s  %-9s  %-5s  %-3s  %-9s  %s", "Rank", "Player", "Score", "Lines", "Lvl", "Time", "Date")
	if withMode {
		header += "  Mode"
	}
	fmt.Println(header)
	for i, r := range runs {
		line := fmt.Sprintf("  %-4d  %-12s  %-9d  %-5d  %-3d  %-9s  %s",
			i+1, r.Player, r.Score, r.Lines, r.Level,
			formatRunTime(r.Duration()), r.CreatedAt.Format("2006-01-02 15:04"))
		if withMode {
			line += "  " + r.GameID
		}
		fmt.Println(line)
	}
}

// formatRunTime renders d as m:ss.cc.
func formatRunTime(d time.Duration) string {
	centis := d.Milliseconds() / 10
	return fmt.Sprintf("%d:%02d.%02d", centis/6000, centis/100%60, centis%100)
}
