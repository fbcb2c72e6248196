package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/traingun/internal/config"
	"github.com/vovakirdan/traingun/internal/platform/tui"
	"github.com/vovakirdan/traingun/internal/registry"
)

var (
	flagDifficulty string
	flagDuration   float64
)

var playCmd = &cobra.Command{
	Use:   "play <mode>",
	Short: "Train a single mode",
	Long: `Start training the specified mode.

Controls:
  Mouse         - Aim (the crosshair follows the pointer)
  Left click    - Fire (also Space)
  Right click   - Toggle scope (also Z)
  R             - Reload / restart after a run
  1-4           - Switch weapon
  Up/Down       - Adjust sensitivity
  W/A/S/D       - Nudge the crosshair one cell
  P/Esc         - Pause
  Q/Ctrl+C      - Quit

Difficulty options:
  easy, medium, hard

Examples:
  traingun play flicking
  traingun play tracking --difficulty hard
  traingun play reflex --duration 30
  traingun play humanoid --config ./my-modes.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "medium", "Difficulty: easy, medium, hard")
	playCmd.Flags().Float64Var(&flagDuration, "duration", 0, "Run length in seconds (0 = the mode's default)")
}

func runPlay(cmd *cobra.Command, args []string) {
	modeID := args[0]

	// Check if mode exists
	if !registry.Exists(modeID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", modeID)
		fmt.Fprintln(os.Stderr, "Run 'traingun list' to see available modes.")
		os.Exit(1)
	}

	difficulty, ok := config.ParseDifficulty(flagDifficulty)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown difficulty %q (easy, medium, hard)\n", flagDifficulty)
		os.Exit(1)
	}

	s, err := newSession()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	runErr := tui.Play(s.opts, modeID, difficulty, flagDuration)

	// Close store before potential exit
	s.Close()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running trainer: %v\n", runErr)
		os.Exit(1)
	}
}
