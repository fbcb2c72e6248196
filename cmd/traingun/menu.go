package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/traingun/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the trainer with a mode picker menu",
	Long: `Start the trainer in interactive menu mode.

Use arrow keys or j/k to pick a mode or routine, left/right to change
the difficulty and Enter to start. After a run you return to the menu.

Controls:
  Up/Down/j/k    - Navigate menu
  Left/Right     - Change difficulty
  Enter/Space    - Start
  Tab            - Statistics
  Q              - Quit

Examples:
  traingun menu
  traingun menu --fps 30
  traingun menu --db ./results.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	s, err := newSession()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	runErr := tui.Run(s.opts)
	s.Close()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		os.Exit(1)
	}
}
