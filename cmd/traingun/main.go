// traingun is an FPS aim trainer that runs in the terminal.
//
// Usage:
//
//	traingun list                 - List training modes
//	traingun play <mode>          - Train a single mode
//	traingun menu                 - Pick modes and routines interactively
//	traingun scores [mode]        - Show statistics and recent runs
//	traingun sens                 - Convert game sensitivity to cm/360
//	traingun routine <cmd>        - List, create, edit, delete or start routines
//	traingun serve                - Start SSH server for remote training
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible target placement
//	--db <path>     - Set database path (default: ~/.traingun/traingun.db)
//	--config <path> - Custom modes.yaml
//	--log <path>    - Log file for interactive sessions
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/traingun/internal/config"
	"github.com/vovakirdan/traingun/internal/core"
	"github.com/vovakirdan/traingun/internal/platform/tui"
	"github.com/vovakirdan/traingun/internal/routine"
	"github.com/vovakirdan/traingun/internal/storage"

	// Import modes to register them
	_ "github.com/vovakirdan/traingun/internal/modes"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagWeapons  string
	flagLogPath  string
	flagLogLevel string
	flagRelative bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "traingun",
	Short: "traingun - FPS aim training in your terminal",
	Long: `traingun is a terminal aim trainer. Targets spawn on a virtual
play field and you aim with the mouse, using the same cm/360 you
play with in your favorite shooter.

Available commands:
  list     - Show all training modes
  play     - Train a specific mode directly
  menu     - Interactive mode and routine picker
  scores   - View statistics and recent runs
  sens     - Convert game sensitivity to cm/360
  routine  - List, edit and start training routines
  serve    - Start SSH server for remote training

Examples:
  traingun list
  traingun play flicking --difficulty hard
  traingun menu
  traingun sens --game valorant --sens 0.4 --dpi 1600 --save
  traingun serve --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.traingun/traingun.db", "Path to results database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom modes YAML")
	rootCmd.PersistentFlags().StringVar(&flagWeapons, "weapons", "", "Path to custom weapons YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogPath, "log", "~/.traingun/traingun.log", "Log file for interactive sessions (empty disables logging)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&flagRelative, "relative", false, "Turn mouse motion into sensitivity-scaled deltas instead of following the pointer")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(sensCmd)
	rootCmd.AddCommand(routineCmd)
	rootCmd.AddCommand(serveCmd)
}

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// newFileLogger opens the interactive log file. The alternate screen owns
// the terminal, so nothing may be logged to stdout or stderr while it runs.
// The returned cleanup func is never nil.
func newFileLogger() (*log.Logger, func()) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		level = log.InfoLevel
	}

	if flagLogPath == "" {
		return log.New(io.Discard), func() {}
	}

	path := expandHome(flagLogPath)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: cannot create log directory: %v\n", err)
		return log.New(io.Discard), func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: cannot open log file: %v\n", err)
		return log.New(io.Discard), func() {}
	}

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Level:           level,
		Prefix:          "traingun",
	})
	// Package-level warnings (unknown game ids) go to the same file.
	log.SetDefault(logger)
	return logger, func() { f.Close() }
}

// openStore opens the results database. Failures are reported and the
// trainer continues without persistence.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open results database: %v\n", err)
		return nil
	}
	store.SetLogger(logger)
	return store
}

// loadConfigs reads the mode tables and weapon presets.
func loadConfigs() (config.ModesConfig, config.WeaponsConfig, error) {
	modesCfg, err := config.LoadModes(flagConfig)
	if err != nil {
		return modesCfg, config.WeaponsConfig{}, err
	}
	weaponsCfg, err := config.LoadWeapons(flagWeapons)
	if err != nil {
		return modesCfg, weaponsCfg, err
	}
	return modesCfg, weaponsCfg, nil
}

// runtimeConfig sizes the play field to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// session bundles what an interactive command needs.
type session struct {
	opts    tui.Options
	store   *storage.Store
	cleanup func()
}

// newSession loads configuration, storage and logging for an interactive
// command. Close must be called when the command ends.
func newSession() (*session, error) {
	modesCfg, weaponsCfg, err := loadConfigs()
	if err != nil {
		return nil, err
	}

	logger, cleanup := newFileLogger()
	store := openStore(logger)

	opts := tui.Options{
		Store:    store,
		Modes:    modesCfg,
		Weapons:  weaponsCfg,
		Runtime:  runtimeConfig(),
		Logger:   logger,
		Relative: flagRelative,
	}
	var routines routine.Store
	if store != nil {
		routines = store
	}
	opts.Routines = routine.NewManager(routines, logger)

	return &session{opts: opts, store: store, cleanup: cleanup}, nil
}

func (s *session) Close() {
	if s.store != nil {
		s.store.Close()
	}
	s.cleanup()
}
