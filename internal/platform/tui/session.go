package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// screenKind is the screen a session is showing.
type screenKind int

const (
	screenMenu screenKind = iota
	screenGame
	screenScores
)

// SessionModel manages the full flow: menu -> game -> menu, and
// menu -> statistics -> menu. It is the top-level model for both the local
// menu command and SSH sessions.
type SessionModel struct {
	opts     Options
	username string
	screen   screenKind
	menu     MenuModel
	game     *GameModel
	scores   *ScoreboardModel
	notice   string
	quitting bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(opts Options, username string) SessionModel {
	opts = opts.withDefaults()
	return SessionModel{
		opts:     opts,
		username: username,
		menu:     NewMenuModel(opts),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.opts.Runtime.ScreenW = wsm.Width
		m.opts.Runtime.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenScores:
		return m.updateScores(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.menu.WantsScoreboard() {
		scores := NewScoreboardModel(m.opts)
		m.scores = &scores
		m.screen = screenScores
		return m, scores.Init()
	}

	if choice := m.menu.Selected(); choice != nil {
		return m.startGame(*choice)
	}

	return m, cmd
}

// startGame builds the game model for a menu choice.
func (m SessionModel) startGame(choice MenuChoice) (tea.Model, tea.Cmd) {
	var (
		game GameModel
		err  error
	)
	if choice.RoutineID != "" {
		if !m.opts.Routines.Start(choice.RoutineID) {
			return m.backToMenu("Routine has no steps.")
		}
		game, err = NewRoutineGameModel(m.opts)
	} else {
		game, err = NewGameModel(m.opts, choice.ModeID, choice.Difficulty, 0)
	}
	if err != nil {
		m.opts.Logger.Error("cannot start game", "user", m.username, "err", err)
		m.opts.Routines.Stop()
		return m.backToMenu(err.Error())
	}

	m.game = &game
	m.screen = screenGame
	m.opts.Logger.Info("game started", "user", m.username, "mode", game.modeID, "difficulty", game.difficulty)
	return m, m.game.Init()
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.game = &gameModel
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.game.BackToMenu() {
		m.game = nil
		return m.backToMenu("")
	}

	return m, cmd
}

// updateScores handles updates when showing statistics.
func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.scores.Update(msg)
	if scores, ok := newModel.(ScoreboardModel); ok {
		m.scores = &scores
	}

	if m.scores.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.scores.IsGoingBack() {
		m.scores = nil
		return m.backToMenu("")
	}

	return m, cmd
}

// backToMenu rebuilds the menu so best scores are current.
func (m SessionModel) backToMenu(notice string) (tea.Model, tea.Cmd) {
	m.menu = NewMenuModel(m.opts)
	m.screen = screenMenu
	m.notice = notice
	return m, m.menu.Init()
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGame:
		return m.game.View()
	case screenScores:
		return m.scores.View()
	}

	view := m.menu.View()
	if m.notice != "" {
		view += "\n" + centerText(m.notice, m.opts.Runtime.ScreenW)
	}
	return view
}

// Run starts the interactive menu session and blocks until the user quits.
func Run(opts Options) error {
	_, err := runProgram(NewSessionModel(opts, "local"))
	return err
}
