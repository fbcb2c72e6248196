package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/traingun/internal/modes"
	"github.com/vovakirdan/traingun/internal/registry"
	"github.com/vovakirdan/traingun/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show statistics and recent runs",
	Long: `Without a mode, lists the best run of every mode.
With a mode, shows its statistics and most recent runs.

Examples:
  traingun scores
  traingun scores flicking
  traingun scores tracking --limit 20
  traingun scores --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of recent runs to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all stored runs and settings")
}

func runScores(cmd *cobra.Command, args []string) {
	if len(args) == 1 && !registry.Exists(args[0]) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", args[0])
		fmt.Fprintln(os.Stderr, "Run 'traingun list' to see available modes.")
		os.Exit(1)
	}

	// Open result storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening results database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	switch {
	case flagScoresClear:
		err = store.ClearAll()
		if err == nil {
			fmt.Println("All runs and settings deleted.")
		}
	case len(args) == 0:
		err = printBestScores(store)
	default:
		err = printModeScores(store, args[0])
	}
	if err != nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error retrieving results: %v\n", err)
		os.Exit(1)
	}
}

func modeTitle(id string) string {
	for _, m := range registry.List() {
		if m.ID == id {
			return m.Title
		}
	}
	return id
}

func printBestScores(store *storage.Store) error {
	best, err := store.BestScores(modes.Order)
	if err != nil {
		return err
	}

	fmt.Println("Best Runs")
	fmt.Println()
	fmt.Printf("  %-18s  %-8s  %-8s  %-7s  %s\n", "Mode", "Score", "Acc", "Diff", "Date")
	fmt.Printf("  %-18s  %-8s  %-8s  %-7s  %s\n", "----", "-----", "---", "----", "----")

	for _, id := range modes.Order {
		r := best[id]
		if r == nil {
			fmt.Printf("  %-18s  %-8s\n", modeTitle(id), "-")
			continue
		}
		fmt.Printf("  %-18s  %-8d  %-8s  %-7s  %s\n",
			modeTitle(id), r.Score, fmt.Sprintf("%.1f%%", r.Accuracy), r.Difficulty,
			r.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func printModeScores(store *storage.Store, modeID string) error {
	stats, err := store.ModeStats(modeID)
	if err != nil {
		return err
	}
	runs, err := store.Results(modeID, flagScoresLimit)
	if err != nil {
		return err
	}

	fmt.Printf("Statistics - %s\n", modeTitle(modeID))
	fmt.Println()

	if stats.Runs == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'traingun play %s' to set the first record!\n", modeID)
		return nil
	}

	fmt.Printf("  Runs          %d\n", stats.Runs)
	fmt.Printf("  Best          %d\n", stats.Best)
	fmt.Printf("  Avg score     %.0f\n", stats.AvgScore)
	fmt.Printf("  Avg accuracy  %.1f%%\n", stats.AvgAccuracy)
	fmt.Println()

	// Print header
	fmt.Printf("  %-16s  %-7s  %-8s  %-8s  %s\n", "Date", "Diff", "Score", "Acc", "Reaction")
	fmt.Printf("  %-16s  %-7s  %-8s  %-8s  %s\n", "----", "----", "-----", "---", "--------")

	// Newest first
	for i := len(runs) - 1; i >= 0; i-- {
		r := runs[i]
		reaction := "-"
		if r.AvgReactionMs != nil {
			reaction = fmt.Sprintf("%dms", *r.AvgReactionMs)
		}
		fmt.Printf("  %-16s  %-7s  %-8d  %-8s  %s\n",
			r.CreatedAt.Format("2006-01-02 15:04"), r.Difficulty, r.Score,
			fmt.Sprintf("%.1f%%", r.Accuracy), reaction)
	}
	return nil
}
