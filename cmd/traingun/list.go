package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/traingun/internal/modes"
	"github.com/vovakirdan/traingun/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all training modes",
	Long:  `Shows a list of all training modes registered in the trainer.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	titles := make(map[string]string)
	for _, m := range registry.List() {
		titles[m.ID] = m.Title
	}

	if len(titles) == 0 {
		fmt.Println("No modes available.")
		return
	}

	fmt.Println("Training modes:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for id := range titles {
		if len(id) > maxIDLen {
			maxIDLen = len(id)
		}
	}

	// Print header
	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")

	// Print modes in training order
	for _, id := range modes.Order {
		if title, ok := titles[id]; ok {
			fmt.Printf("  %-*s  %s\n", maxIDLen, id, title)
		}
	}

	fmt.Println()
	fmt.Println("Run 'traingun play <id>' to start training.")
}
