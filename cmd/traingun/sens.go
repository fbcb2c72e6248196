package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/traingun/internal/sensitivity"
	"github.com/vovakirdan/traingun/internal/storage"
)

var (
	flagSensGame  string
	flagSensValue float64
	flagSensDPI   int
	flagSensSave  bool
	flagSensGames bool
)

var sensCmd = &cobra.Command{
	Use:   "sens",
	Short: "Convert game sensitivity to cm/360",
	Long: `Converts a game's native sensitivity and mouse DPI to cm/360 and
the trainer's cursor scale. With --save the result becomes the trainer's
sensitivity.

Examples:
  traingun sens --games
  traingun sens --game cs2 --sens 2 --dpi 800
  traingun sens --game valorant --sens 0.4 --dpi 1600 --save`,
	Run: runSens,
}

func init() {
	sensCmd.Flags().StringVar(&flagSensGame, "game", sensitivity.DefaultGame, "Game id (see --games)")
	sensCmd.Flags().Float64Var(&flagSensValue, "sens", 0, "In-game sensitivity (0 = the game's default)")
	sensCmd.Flags().IntVar(&flagSensDPI, "dpi", sensitivity.DefaultDPI, "Mouse DPI")
	sensCmd.Flags().BoolVar(&flagSensSave, "save", false, "Store the result as the trainer sensitivity")
	sensCmd.Flags().BoolVar(&flagSensGames, "games", false, "List supported games")
}

func runSens(cmd *cobra.Command, args []string) {
	if flagSensGames {
		printGames()
		return
	}

	game, ok := sensitivity.Lookup(flagSensGame)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", flagSensGame)
		fmt.Fprintln(os.Stderr, "Run 'traingun sens --games' to see supported games.")
		os.Exit(1)
	}

	sens := flagSensValue
	if sens == 0 {
		sens = game.DefaultSens
	}
	if sens < game.Range.Min || sens > game.Range.Max {
		fmt.Fprintf(os.Stderr, "Error: %s sensitivity must be between %g and %g\n", game.Name, game.Range.Min, game.Range.Max)
		os.Exit(1)
	}
	if flagSensDPI <= 0 {
		fmt.Fprintln(os.Stderr, "Error: --dpi must be positive")
		os.Exit(1)
	}

	width, _ := runtimeConfig().Viewport()
	cfg := sensitivity.Config{Game: game.ID, Sensitivity: sens, DPI: flagSensDPI}.Recompute(width)

	fmt.Printf("%s  sens %g @ %d DPI\n", game.Name, sens, flagSensDPI)
	fmt.Println()
	fmt.Printf("  cm/360        %.2f\n", cfg.Cm360)
	fmt.Printf("  cursor scale  %.4f (for this terminal)\n", cfg.CursorScale)

	if !flagSensSave {
		return
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening results database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if err := store.SaveSensitivity(cfg); err != nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error saving sensitivity: %v\n", err)
		os.Exit(1)
	}
	fmt.Println()
	fmt.Println("Saved. Up/Down adjust it further during a run.")
}

func printGames() {
	fmt.Println("Supported games:")
	fmt.Println()
	fmt.Printf("  %-10s  %-20s  %-8s  %s\n", "ID", "Name", "Default", "Range")
	fmt.Printf("  %-10s  %-20s  %-8s  %s\n", "--", "----", "-------", "-----")
	for _, g := range sensitivity.Games() {
		fmt.Printf("  %-10s  %-20s  %-8g  %g - %g\n", g.ID, g.Name, g.DefaultSens, g.Range.Min, g.Range.Max)
	}
	fmt.Println()
	fmt.Printf("Common DPI values: %v\n", sensitivity.DPIPresets)
}
