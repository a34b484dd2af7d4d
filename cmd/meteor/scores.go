package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/meteor-arcade/internal/storage"
)

var (
	flagRecent bool
	flagLimit  int
	flagClear  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the run history",
	Long: `Display the longest runs, or the latest ones with --recent.

Examples:
  meteor scores
  meteor scores --recent --limit 20
  meteor scores --clear`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagRecent, "recent", false, "List the latest runs instead of the best")
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the whole history")
}

func runScores(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening run history: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearRuns(); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing runs: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Run history cleared.")
		return
	}

	title := "High Scores"
	var runs []storage.Run
	if flagRecent {
		title = "Recent Runs"
		runs, err = store.RecentRuns(flagLimit)
	} else {
		runs, err = store.TopRuns(flagLimit)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("%s - Dodge the Meteor\n\n", title)

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'meteor play' to set the first score!")
		return
	}

	fmt.Printf("  %-4s  %-8s  %-7s  %-4s  %-6s  %-7s  %s\n", "Rank", "Time", "Strikes", "Shot", "Dodged", "Level", "Date")
	fmt.Printf("  %-4s  %-8s  %-7s  %-4s  %-6s  %-7s  %s\n", "----", "----", "-------", "----", "------", "-----", "----")
	for i, r := range runs {
		fmt.Printf("  %-4d  %-8s  %-7d  %-4d  %-6d  %-7s  %s\n",
			i+1, fmt.Sprintf("%.1fs", r.Score.Seconds()), r.Strikes, r.MeteorsShot, r.MeteorsDodged,
			r.Difficulty, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	if sum, err := store.Summary(); err == nil {
		fmt.Println()
		fmt.Printf("Best: %.1fs over %d runs (average %.1fs)\n", sum.Best.Seconds(), sum.Runs, sum.Average.Seconds())
	}
}
