package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/traingun/internal/core"
)

func updateScores(t *testing.T, m ScoreboardModel, msg tea.Msg) ScoreboardModel {
	t.Helper()
	next, _ := m.Update(msg)
	sm, ok := next.(ScoreboardModel)
	if !ok {
		t.Fatalf("Update() returned %T", next)
	}
	return sm
}

func TestScoreboardWithoutStore(t *testing.T) {
	m := NewScoreboardModel(testOptions(&testClock{now: time.Now()}))

	view := m.View()
	for _, want := range []string{"STATISTICS - Tracking", "No runs yet.", "No runs recorded yet."} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestScoreboardShowsModeHistory(t *testing.T) {
	now := time.Date(2026, 5, 20, 18, 0, 0, 0, time.Local)
	opts := testOptions(&testClock{now: now})
	opts.Store = openTestStore(t)

	runs := []core.RunResult{
		{Mode: "tracking", Difficulty: "easy", Score: 800, Accuracy: 64.5, CreatedAt: now.AddDate(0, 0, -2)},
		{Mode: "tracking", Difficulty: "hard", Score: 1200, Accuracy: 71.0, CreatedAt: now.Add(-time.Hour)},
		{Mode: "flicking", Difficulty: "medium", Score: 300, Accuracy: 50, CreatedAt: now.Add(-time.Hour)},
	}
	for _, r := range runs {
		if _, err := opts.Store.SaveResult(r); err != nil {
			t.Fatalf("SaveResult() failed: %v", err)
		}
	}

	m := NewScoreboardModel(opts)
	if len(m.runs) != 2 {
		t.Fatalf("tracking has %d runs, expected 2", len(m.runs))
	}
	if len(m.daily) != 2 {
		t.Errorf("daily series has %d days, expected 2", len(m.daily))
	}

	rows := m.table.Rows()
	if len(rows) != 2 || rows[0][2] != "1200" {
		t.Errorf("table rows = %v, expected newest run first", rows)
	}

	view := m.View()
	for _, want := range []string{"Runs 2", "Best 1200", "peak 1200", "█"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}

	m = updateScores(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if got := m.modes[m.modeCursor].ID; got != "flicking" {
		t.Errorf("mode after tab = %q, expected flicking", got)
	}
	if len(m.runs) != 1 {
		t.Errorf("flicking has %d runs, expected 1", len(m.runs))
	}

	m = updateScores(t, m, runeKey('h'))
	m = updateScores(t, m, runeKey('h'))
	if got := m.modes[m.modeCursor].ID; got != "humanoid" {
		t.Errorf("mode after wrapping back = %q, expected humanoid", got)
	}
}

func TestScoreboardLayout(t *testing.T) {
	opts := testOptions(&testClock{now: time.Now()})

	opts.Runtime.ScreenW = 120
	if m := NewScoreboardModel(opts); !m.showSidebar || !strings.Contains(m.View(), "Modes") {
		t.Error("wide terminals should show the mode sidebar")
	}

	opts.Runtime.ScreenW = 60
	m := NewScoreboardModel(opts)
	if m.showSidebar || !strings.Contains(m.View(), "< Tracking >") {
		t.Error("narrow terminals should show mode tabs")
	}

	m = updateScores(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	if !m.showSidebar {
		t.Error("resizing past the threshold should show the sidebar")
	}
}

func TestScoreboardNavigation(t *testing.T) {
	m := NewScoreboardModel(testOptions(&testClock{now: time.Now()}))

	back := updateScores(t, m, tea.KeyMsg{Type: tea.KeyEscape})
	if !back.IsGoingBack() || back.IsQuitting() {
		t.Error("esc should go back without quitting")
	}
	if back.View() != "" {
		t.Error("View() should be empty when leaving")
	}

	quit := updateScores(t, m, runeKey('q'))
	if !quit.IsQuitting() {
		t.Error("q should quit")
	}
}
