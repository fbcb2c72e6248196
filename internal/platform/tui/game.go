package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/traingun/internal/config"
	"github.com/vovakirdan/traingun/internal/core"
	"github.com/vovakirdan/traingun/internal/engine"
	"github.com/vovakirdan/traingun/internal/registry"
	"github.com/vovakirdan/traingun/internal/routine"
)

// Keys that only apply on the pause and result screens.
var (
	menuKey = key.NewBinding(key.WithKeys("b", "esc"), key.WithHelp("b/esc", "menu"))
	backKey = key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "menu"))
	nextKey = key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "next step"))
)

// GameModel is the Bubble Tea model for one training mode, or for the steps
// of a routine played back to back.
type GameModel struct {
	opts    Options
	eng     *engine.Engine
	handler engine.ModeHandler
	capture *MouseCapture
	keys    KeyMap
	help    help.Model
	painter *Painter
	screen  *core.Screen
	canvas  *core.Canvas
	config  core.RuntimeConfig
	loop    uint64

	modeID     string
	difficulty config.Difficulty
	duration   float64 // zero uses the mode's duration
	progress   *routine.Progress
	status     string

	standalone bool
	quitting   bool
	backToMenu bool
}

// NewGameModel creates a model that plays modeID at difficulty d.
// A positive duration replaces the mode's run length.
func NewGameModel(opts Options, modeID string, d config.Difficulty, duration float64) (GameModel, error) {
	opts = opts.withDefaults()

	handler, err := registry.Create(modeID, opts.Modes)
	if err != nil {
		return GameModel{}, err
	}

	capture := NewMouseCapture(opts.Relative)
	eng := engine.New(engine.Config{
		Viewport: viewport(opts.Runtime),
		Clock:    opts.Clock,
		Rand:     opts.newRand(),
		Logger:   opts.Logger,
		Results:  opts.resultStore(),
		Settings: opts.settingsStore(),
		Capture:  capture,
		Weapons:  opts.Weapons,
	})

	screen := core.NewScreen(opts.Runtime.ScreenW, opts.Runtime.ScreenH)
	h := help.New()
	h.ShowAll = true

	return GameModel{
		opts:       opts,
		eng:        eng,
		handler:    handler,
		capture:    capture,
		keys:       NewKeyMap(opts.keybinds()),
		help:       h,
		painter:    NewPainter(opts.Renderer),
		screen:     screen,
		canvas:     core.NewCanvas(screen),
		config:     opts.Runtime,
		loop:       nextLoopID(),
		modeID:     modeID,
		difficulty: d,
		duration:   duration,
	}, nil
}

// NewRoutineGameModel creates a model that plays the current step of the
// running routine and offers the following steps from the result screen.
func NewRoutineGameModel(opts Options) (GameModel, error) {
	opts = opts.withDefaults()

	p := opts.Routines.Current()
	if p == nil {
		return GameModel{}, fmt.Errorf("tui: no routine is running")
	}

	m, err := NewGameModel(opts, p.Step.Mode, stepDifficulty(p.Step), p.Step.Duration)
	if err != nil {
		return GameModel{}, err
	}
	m.progress = p
	return m, nil
}

func stepDifficulty(s routine.Step) config.Difficulty {
	d, ok := config.ParseDifficulty(s.Difficulty)
	if !ok {
		return config.DifficultyMedium
	}
	return d
}

// Init starts the first run and the frame loop.
func (m GameModel) Init() tea.Cmd {
	m.eng.Init(m.handler, m.difficulty, engine.RunOptions{Duration: m.duration})
	return tickCmd(m.config.TickRate, m.loop)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		if msg.Loop != m.loop || m.quitting || m.backToMenu {
			return m, nil
		}
		m.eng.Frame(msg.At)
		return m, tickCmd(m.config.TickRate, m.loop)
	}

	return m, nil
}

// handleKey processes keyboard input for the current engine state.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.keys.Matches(msg, core.ActionQuit) {
		m.eng.Destroy()
		m.quitting = true
		return m, tea.Quit
	}

	switch m.eng.State() {
	case engine.StateFinished:
		return m.handleResultKey(msg)

	case engine.StatePaused:
		switch {
		case m.keys.Matches(msg, core.ActionPause):
			m.eng.Resume()
		case key.Matches(msg, backKey):
			return m, m.leave()
		}

	case engine.StateCountdown:
		if key.Matches(msg, menuKey) {
			return m, m.leave()
		}

	case engine.StateRunning:
		action := m.keys.Action(msg)
		if action == core.ActionNone {
			if v, ok := m.keys.Nudge(msg); ok {
				m.eng.WarpCursor(m.eng.Cursor().Add(v))
			}
			return m, nil
		}
		m.dispatch(action)
	}

	return m, nil
}

// handleResultKey processes input on the result screen.
func (m GameModel) handleResultKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case m.keys.Matches(msg, core.ActionRestart):
		m.restart()

	case m.progress != nil && key.Matches(msg, nextKey):
		p := m.opts.Routines.Next()
		if p == nil {
			m.status = fmt.Sprintf("Routine %q complete!", m.progress.Name)
			m.progress = nil
			return m, nil
		}
		m.progress = p
		m.modeID = p.Step.Mode
		m.difficulty = stepDifficulty(p.Step)
		m.duration = p.Step.Duration
		m.restart()

	case key.Matches(msg, menuKey):
		return m, m.leave()
	}
	return m, nil
}

// leave ends the run without a result and hands control back to the menu,
// or quits when the model runs on its own.
func (m *GameModel) leave() tea.Cmd {
	m.eng.Destroy()
	if m.progress != nil {
		m.opts.Routines.Stop()
		m.progress = nil
	}
	if m.standalone {
		m.quitting = true
		return tea.Quit
	}
	m.backToMenu = true
	return nil
}

// restart plays modeID again with a fresh handler.
func (m *GameModel) restart() {
	handler, err := registry.Create(m.modeID, m.opts.Modes)
	if err != nil {
		m.opts.Logger.Error("cannot start mode", "mode", m.modeID, "err", err)
		m.status = err.Error()
		return
	}
	m.handler = handler
	m.status = ""
	m.eng.Init(handler, m.difficulty, engine.RunOptions{Duration: m.duration})
}

// dispatch applies a gameplay action to the engine.
func (m GameModel) dispatch(a core.Action) {
	switch a {
	case core.ActionFire:
		m.eng.Fire()
	case core.ActionADS:
		m.eng.ToggleScope()
	case core.ActionReload:
		m.eng.Reload()
	case core.ActionPause:
		m.eng.Pause()
	case core.ActionWeapon1, core.ActionWeapon2, core.ActionWeapon3, core.ActionWeapon4:
		m.eng.SwitchWeapon(int(a-core.ActionWeapon1) + 1)
	case core.ActionSensUp:
		m.eng.AdjustSensitivity(1)
	case core.ActionSensDown:
		m.eng.AdjustSensitivity(-1)
	}
}

// handleMouse moves the crosshair and fires bound buttons.
func (m GameModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.eng.State() != engine.StateRunning {
		return m, nil
	}

	if m.eng.Captured() {
		if dx, dy, ok := m.capture.Delta(msg.X, msg.Y); ok {
			m.eng.MovePointer(dx, dy)
		}
	} else {
		m.eng.WarpCursor(cellCenter(msg.X, msg.Y))
	}

	if msg.Action == tea.MouseActionPress {
		m.dispatch(m.keys.MouseAction(msg.Button))
	}
	return m, nil
}

// resize processes window resize events.
func (m *GameModel) resize(width, height int) {
	m.config.ScreenW = width
	m.config.ScreenH = height
	m.screen.Resize(width, height)
	m.eng.Resize(viewport(m.config))
	m.help.Width = width
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	switch m.eng.State() {
	case engine.StateFinished:
		return m.place(m.resultView())
	case engine.StatePaused:
		return m.place(m.pauseView())
	}

	m.screen.Clear()
	m.eng.Draw(m.canvas)
	m.drawHUD(m.eng.HUD())
	return m.painter.Render(m.screen)
}

// place centers a panel in the terminal.
func (m GameModel) place(panel string) string {
	return m.painter.Renderer().Place(m.config.ScreenW, m.config.ScreenH, lipgloss.Center, lipgloss.Center, panel)
}

// Engine returns the session engine.
func (m GameModel) Engine() *engine.Engine {
	return m.eng
}

// Progress returns the routine step being played, or nil.
func (m GameModel) Progress() *routine.Progress {
	return m.progress
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// runProgram runs a model full-screen with all-motion mouse reporting.
func runProgram(model tea.Model, opts ...tea.ProgramOption) (tea.Model, error) {
	opts = append([]tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	}, opts...)
	return tea.NewProgram(model, opts...).Run()
}

// Play runs a single mode until the user quits.
func Play(opts Options, modeID string, d config.Difficulty, duration float64) error {
	model, err := NewGameModel(opts, modeID, d, duration)
	if err != nil {
		return err
	}
	model.standalone = true
	_, err = runProgram(model)
	return err
}

// PlayRoutine runs every step of a routine until the user quits.
func PlayRoutine(opts Options, routineID string) error {
	opts = opts.withDefaults()
	if !opts.Routines.Start(routineID) {
		return fmt.Errorf("tui: routine %q not found or empty", routineID)
	}
	defer opts.Routines.Stop()

	model, err := NewRoutineGameModel(opts)
	if err != nil {
		return err
	}
	model.standalone = true
	_, err = runProgram(model)
	return err
}
