package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/traingun/internal/config"
	"github.com/vovakirdan/traingun/internal/platform/tui"
	"github.com/vovakirdan/traingun/internal/registry"
	"github.com/vovakirdan/traingun/internal/routine"
)

var flagSteps []string

var routineCmd = &cobra.Command{
	Use:   "routine",
	Short: "List, edit and start training routines",
	Long: `Routines are ordered lists of mode, difficulty and duration steps
played back to back. Two routines are built in; edited routines are
stored in the results database.

A step is written mode[:difficulty[:seconds]]. Difficulty defaults to
medium and a missing duration uses the mode's own.

Examples:
  traingun routine list
  traingun routine start r_daily_warmup
  traingun routine create "Evening" --step flicking:hard:90 --step tracking
  traingun routine edit <id> "Evening" --step reflex:easy:60
  traingun routine delete <id>`,
}

var routineListCmd = &cobra.Command{
	Use:   "list",
	Short: "List routines and their steps",
	Run:   runRoutineList,
}

var routineStartCmd = &cobra.Command{
	Use:   "start <id>",
	Short: "Play a routine from its first step",
	Args:  cobra.ExactArgs(1),
	Run:   runRoutineStart,
}

var routineCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Add a routine",
	Args:  cobra.ExactArgs(1),
	Run:   runRoutineCreate,
}

var routineEditCmd = &cobra.Command{
	Use:   "edit <id> <name>",
	Short: "Replace the name and steps of a routine",
	Args:  cobra.ExactArgs(2),
	Run:   runRoutineEdit,
}

var routineDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Remove a routine",
	Args:  cobra.ExactArgs(1),
	Run:   runRoutineDelete,
}

func init() {
	for _, cmd := range []*cobra.Command{routineCreateCmd, routineEditCmd} {
		cmd.Flags().StringArrayVar(&flagSteps, "step", nil, "Step as mode[:difficulty[:seconds]] (repeatable)")
		_ = cmd.MarkFlagRequired("step")
	}

	routineCmd.AddCommand(routineListCmd)
	routineCmd.AddCommand(routineStartCmd)
	routineCmd.AddCommand(routineCreateCmd)
	routineCmd.AddCommand(routineEditCmd)
	routineCmd.AddCommand(routineDeleteCmd)
}

// parseStep reads one mode[:difficulty[:seconds]] step.
func parseStep(spec string) (routine.Step, error) {
	parts := strings.Split(strings.TrimSpace(spec), ":")
	if len(parts) > 3 {
		return routine.Step{}, fmt.Errorf("step %q: expected mode[:difficulty[:seconds]]", spec)
	}

	step := routine.Step{Mode: strings.ToLower(parts[0]), Difficulty: string(config.DifficultyMedium)}
	if !registry.Exists(step.Mode) {
		return routine.Step{}, fmt.Errorf("step %q: unknown mode %q", spec, parts[0])
	}

	if len(parts) > 1 && parts[1] != "" {
		d, ok := config.ParseDifficulty(parts[1])
		if !ok {
			return routine.Step{}, fmt.Errorf("step %q: unknown difficulty %q", spec, parts[1])
		}
		step.Difficulty = string(d)
	}

	if len(parts) > 2 && parts[2] != "" {
		secs, err := strconv.ParseFloat(parts[2], 64)
		if err != nil || secs <= 0 {
			return routine.Step{}, fmt.Errorf("step %q: duration must be a positive number of seconds", spec)
		}
		step.Duration = secs
	}
	return step, nil
}

func parseSteps(specs []string) ([]routine.Step, error) {
	steps := make([]routine.Step, 0, len(specs))
	for _, spec := range specs {
		step, err := parseStep(spec)
		if err != nil {
			return nil, err
		}
		steps = append(steps, step)
	}
	return steps, nil
}

// editSession opens a session for a routine edit. Edits without a database
// would be lost on exit, so that case is an error.
func editSession() *session {
	s, err := newSession()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if s.store == nil {
		s.Close()
		fmt.Fprintln(os.Stderr, "Error: routines cannot be saved without a results database")
		os.Exit(1)
	}
	return s
}

func runRoutineCreate(_ *cobra.Command, args []string) {
	steps, err := parseSteps(flagSteps)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	s := editSession()
	r, err := s.opts.Routines.Create(args[0], steps)
	s.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Created %s (%s) with %d steps.\n", r.Name, r.ID, len(r.Steps))
}

func runRoutineEdit(_ *cobra.Command, args []string) {
	steps, err := parseSteps(flagSteps)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	s := editSession()
	err = s.opts.Routines.Update(args[0], args[1], steps)
	s.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Updated %s.\n", args[0])
}

func runRoutineDelete(_ *cobra.Command, args []string) {
	s := editSession()
	err := s.opts.Routines.Delete(args[0])
	s.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Deleted %s.\n", args[0])
}

func runRoutineList(_ *cobra.Command, _ []string) {
	s, err := newSession()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	defer s.Close()

	routines := s.opts.Routines.List()
	if len(routines) == 0 {
		fmt.Println("No routines defined.")
		return
	}

	for _, r := range routines {
		fmt.Printf("%s  (%s)\n", r.Name, r.ID)
		for i, step := range r.Steps {
			fmt.Printf("  %d. %-18s %-7s %4.0fs\n", i+1, modeTitle(step.Mode), step.Difficulty, step.Duration)
		}
		fmt.Println()
	}
	fmt.Println("Run 'traingun routine start <id>' to begin.")
}

func runRoutineStart(_ *cobra.Command, args []string) {
	s, err := newSession()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	runErr := tui.PlayRoutine(s.opts, args[0])
	s.Close()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		os.Exit(1)
	}
}
