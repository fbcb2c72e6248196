package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/traingun/internal/engine"
)

func updateSession(t *testing.T, m SessionModel, msg tea.Msg) (SessionModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	sm, ok := next.(SessionModel)
	if !ok {
		t.Fatalf("Update() returned %T", next)
	}
	return sm, cmd
}

func TestSessionMenuToGameAndBack(t *testing.T) {
	clock := &testClock{now: time.Unix(1_700_000_000, 0)}
	m := NewSessionModel(testOptions(clock), "tester")

	m, _ = updateSession(t, m, runeKey('j'))
	m, cmd := updateSession(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.screen != screenGame || m.game == nil {
		t.Fatal("enter should start a game")
	}
	if cmd == nil {
		t.Error("starting a game should schedule the frame loop")
	}
	if got := m.game.Engine().Mode(); got != "flicking" {
		t.Errorf("game mode = %q, expected flicking", got)
	}
	if !strings.Contains(m.View(), "GET READY") {
		t.Error("View() should show the countdown")
	}

	m, _ = updateSession(t, m, tea.KeyMsg{Type: tea.KeyEscape})
	if m.screen != screenMenu || m.game != nil {
		t.Error("esc during the countdown should return to the menu")
	}
	if !strings.Contains(m.View(), "T R A I N G U N") {
		t.Error("View() should show the menu again")
	}
}

func TestSessionScoreboard(t *testing.T) {
	m := NewSessionModel(testOptions(&testClock{now: time.Now()}), "tester")

	m, _ = updateSession(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.screen != screenScores {
		t.Fatal("tab should open the scoreboard")
	}
	if !strings.Contains(m.View(), "STATISTICS") {
		t.Error("View() should show the scoreboard")
	}

	m, _ = updateSession(t, m, runeKey('b'))
	if m.screen != screenMenu || m.scores != nil {
		t.Error("b should return to the menu")
	}
}

func TestSessionRoutine(t *testing.T) {
	clock := &testClock{now: time.Unix(1_700_000_000, 0)}
	opts := testOptions(clock)
	m := NewSessionModel(opts, "tester")

	for range 7 {
		m, _ = updateSession(t, m, runeKey('j'))
	}
	m, _ = updateSession(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.screen != screenGame {
		t.Fatal("selecting a routine should start its first step")
	}
	if p := m.game.Progress(); p == nil || p.Name != "Click Master" || p.Index != 1 {
		t.Errorf("Progress() = %+v, expected Click Master step 1", p)
	}

	m.game.Engine().Finish()
	m, _ = updateSession(t, m, runeKey('b'))
	if m.screen != screenMenu {
		t.Fatal("b on the result screen should return to the menu")
	}
	if opts.Routines.Running() {
		t.Error("leaving a routine should stop it")
	}
}

func TestSessionIgnoresStaleTicksAfterReturn(t *testing.T) {
	clock := &testClock{now: time.Unix(1_700_000_000, 0)}
	m := NewSessionModel(testOptions(clock), "tester")

	m, _ = updateSession(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	first := m.game.loop
	m, _ = updateSession(t, m, tea.KeyMsg{Type: tea.KeyEscape})
	m, _ = updateSession(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.game.loop == first {
		t.Fatal("a new game should get a new frame loop")
	}
	m, cmd := updateSession(t, m, TickMsg{At: clock.advance(engine.CountdownDuration), Loop: first})
	if cmd != nil {
		t.Error("a tick from the old loop should not be rescheduled")
	}
	if got := m.game.Engine().State(); got != engine.StateCountdown {
		t.Errorf("State() = %v, expected the old loop's tick to be ignored", got)
	}
}

func TestSessionQuit(t *testing.T) {
	m := NewSessionModel(testOptions(&testClock{}), "tester")

	m, cmd := updateSession(t, m, runeKey('q'))
	if !m.quitting || cmd == nil {
		t.Error("q should quit the session")
	}
	if m.View() != "" {
		t.Error("View() should be empty after quitting")
	}
}

func TestSessionResizeCarriesIntoGame(t *testing.T) {
	clock := &testClock{now: time.Unix(1_700_000_000, 0)}
	m := NewSessionModel(testOptions(clock), "tester")

	m, _ = updateSession(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	m, _ = updateSession(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if got := m.game.Engine().Viewport(); got.X != 120*8 || got.Y != 40*16 {
		t.Errorf("Viewport() = %v, expected 960x640", got)
	}
}
