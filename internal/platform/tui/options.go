package tui

import (
	"math/rand"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/traingun/internal/config"
	"github.com/vovakirdan/traingun/internal/core"
	"github.com/vovakirdan/traingun/internal/engine"
	"github.com/vovakirdan/traingun/internal/routine"
	"github.com/vovakirdan/traingun/internal/storage"
)

// Options wires the UI to its collaborators.
type Options struct {
	Store    *storage.Store // may be nil: results are then not persisted
	Routines *routine.Manager
	Modes    config.ModesConfig
	Weapons  config.WeaponsConfig
	Runtime  core.RuntimeConfig
	Logger   *log.Logger
	Renderer *lipgloss.Renderer
	Clock    func() time.Time // nil uses time.Now

	// Relative turns terminal mouse motion into sensitivity-scaled deltas.
	// When false the crosshair follows the pointer directly.
	Relative bool
}

func (o Options) withDefaults() Options {
	if o.Logger == nil {
		o.Logger = log.Default()
	}
	if o.Runtime.TickRate <= 0 {
		o.Runtime.TickRate = 60
	}
	if o.Runtime.ScreenW <= 0 || o.Runtime.ScreenH <= 0 {
		def := core.DefaultConfig()
		o.Runtime.ScreenW, o.Runtime.ScreenH = def.ScreenW, def.ScreenH
	}
	if o.Modes.Tracking == nil {
		o.Modes = config.DefaultModesConfig()
	}
	if len(o.Weapons.Presets) == 0 {
		o.Weapons = config.DefaultWeaponsConfig()
	}
	if o.Routines == nil {
		o.Routines = routine.NewManager(o.routineStore(), o.Logger)
	}
	return o
}

// keybinds returns the persisted bindings or the defaults.
func (o Options) keybinds() config.Keybinds {
	if o.Store == nil {
		return config.DefaultKeybinds()
	}
	kb, err := o.Store.LoadKeybinds()
	if err != nil {
		o.Logger.Error("failed to load keybinds, using defaults", "err", err)
	}
	return kb
}

// The store is passed through these helpers so a nil *storage.Store becomes
// a nil interface rather than a non-nil interface holding a nil pointer.

func (o Options) resultStore() engine.ResultStore {
	if o.Store == nil {
		return nil
	}
	return o.Store
}

func (o Options) settingsStore() engine.SettingsStore {
	if o.Store == nil {
		return nil
	}
	return o.Store
}

func (o Options) routineStore() routine.Store {
	if o.Store == nil {
		return nil
	}
	return o.Store
}

func (o Options) now() time.Time {
	if o.Clock == nil {
		return time.Now()
	}
	return o.Clock()
}

func (o Options) newRand() *rand.Rand {
	seed := o.Runtime.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// viewport returns the play area in virtual pixels.
func viewport(cfg core.RuntimeConfig) core.Vec2 {
	w, h := cfg.Viewport()
	return core.V(w, h)
}
