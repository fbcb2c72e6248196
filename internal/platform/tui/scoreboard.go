package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/traingun/internal/core"
	"github.com/vovakirdan/traingun/internal/modes"
	"github.com/vovakirdan/traingun/internal/registry"
	"github.com/vovakirdan/traingun/internal/storage"
)

// Scoreboard layout constants
const (
	minWidthForSidebar = 90 // Minimum width to show mode list sidebar
	sidebarWidth       = 22 // Width of mode list sidebar
	recentRuns         = 50 // Runs listed in the table
	chartDays          = 30 // Days covered by the daily-best chart
	chartHeight        = 6  // Rows of the daily-best chart
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextMode key.Binding
	PrevMode key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextMode, k.PrevMode, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextMode, k.PrevMode},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextMode: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next mode"),
		),
		PrevMode: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev mode"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel is the Bubble Tea model for the statistics screen.
type ScoreboardModel struct {
	modes       []registry.ModeInfo
	modeCursor  int
	store       *storage.Store
	now         func() time.Time
	stats       *storage.ModeStats
	daily       []storage.DailyBest
	runs        []core.RunResult
	table       table.Model
	help        help.Model
	keys        ScoreboardKeyMap
	painter     *Painter
	width       int
	height      int
	quitting    bool
	goingBack   bool
	showSidebar bool
}

// NewScoreboardModel creates a new scoreboard model.
func NewScoreboardModel(opts Options) ScoreboardModel {
	opts = opts.withDefaults()

	titles := make(map[string]string)
	for _, info := range registry.List() {
		titles[info.ID] = info.Title
	}
	list := make([]registry.ModeInfo, 0, len(modes.Order))
	for _, id := range modes.Order {
		if title, ok := titles[id]; ok {
			list = append(list, registry.ModeInfo{ID: id, Title: title})
		}
	}

	h := help.New()
	h.ShowAll = false

	m := ScoreboardModel{
		modes:       list,
		store:       opts.Store,
		now:         opts.now,
		keys:        DefaultScoreboardKeyMap(),
		help:        h,
		painter:     NewPainter(opts.Renderer),
		width:       opts.Runtime.ScreenW,
		height:      opts.Runtime.ScreenH,
		showSidebar: opts.Runtime.ScreenW >= minWidthForSidebar,
	}

	m.table = m.createTable()
	if len(m.modes) > 0 {
		m.load(m.modes[0].ID)
	}
	return m
}

// createTable creates a new table with appropriate columns.
func (m *ScoreboardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Date", Width: 13},
		{Title: "Diff", Width: 7},
		{Title: "Score", Width: 7},
		{Title: "Acc", Width: 7},
		{Title: "React", Width: 7},
		{Title: "Combo", Width: 6},
	}

	height := m.height - chartHeight - 16 // Title, stats, chart, help and borders
	if height < 3 {
		height = 3
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	// Table styles
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load reads statistics, the daily-best series and recent runs for a mode.
// Storage errors leave the screen empty.
func (m *ScoreboardModel) load(modeID string) {
	m.stats, m.daily, m.runs = nil, nil, nil
	if m.store != nil {
		if stats, err := m.store.ModeStats(modeID); err == nil {
			m.stats = stats
		}
		if daily, err := m.store.DailyBest(modeID, chartDays, m.now()); err == nil {
			m.daily = daily
		}
		if runs, err := m.store.Results(modeID, recentRuns); err == nil {
			m.runs = runs
		}
	}
	m.updateTableRows()
}

// updateTableRows fills the table with recent runs, newest first.
func (m *ScoreboardModel) updateTableRows() {
	rows := make([]table.Row, 0, len(m.runs))
	for i := len(m.runs) - 1; i >= 0; i-- {
		r := m.runs[i]
		reaction := "-"
		if r.AvgReactionMs != nil {
			reaction = fmt.Sprintf("%dms", *r.AvgReactionMs)
		}
		rows = append(rows, table.Row{
			r.CreatedAt.Format("Jan 02 15:04"),
			r.Difficulty,
			fmt.Sprintf("%d", r.Score),
			fmt.Sprintf("%.1f%%", r.Accuracy),
			reaction,
			fmt.Sprintf("%d", r.MaxCombo),
		})
	}
	m.table.SetRows(rows)

	// Reset cursor to top
	m.table.GotoTop()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, nil

		case key.Matches(msg, m.keys.NextMode):
			if len(m.modes) > 0 {
				m.modeCursor = (m.modeCursor + 1) % len(m.modes)
				m.load(m.modes[m.modeCursor].ID)
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevMode):
			if len(m.modes) > 0 {
				m.modeCursor = (m.modeCursor + len(m.modes) - 1) % len(m.modes)
				m.load(m.modes[m.modeCursor].ID)
			}
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			// Pass to table for scrolling
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	return m, nil
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := m.painter.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))

	title := "STATISTICS"
	if len(m.modes) > 0 {
		title = fmt.Sprintf("STATISTICS - %s", m.modes[m.modeCursor].Title)
	}
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render(title), m.width))
	b.WriteString("\n\n")

	main := lipgloss.JoinVertical(lipgloss.Left,
		m.renderSummary(),
		"",
		m.renderChart(),
		"",
		m.renderTableContent(),
	)
	boxed := m.painter.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1).
		Render(main)

	if m.showSidebar {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), "  ", boxed))
	} else {
		b.WriteString(centerText(m.renderTabs(), m.width))
		b.WriteString("\n\n")
		b.WriteString(boxed)
	}

	// Help bar
	b.WriteString("\n")
	helpStyle := m.painter.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderSidebar lists the modes with the current one highlighted.
func (m ScoreboardModel) renderSidebar() string {
	sidebarStyle := m.painter.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("Modes\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, mode := range m.modes {
		cursor := "  "
		style := m.painter.NewStyle()
		if i == m.modeCursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}
		sidebar.WriteString(style.Render(cursor + mode.Title))
		sidebar.WriteString("\n")
	}

	return sidebarStyle.Render(sidebar.String())
}

// renderTabs shows the current mode with arrows on narrow terminals.
func (m ScoreboardModel) renderTabs() string {
	if len(m.modes) == 0 {
		return ""
	}
	return fmt.Sprintf("< %s >", m.modes[m.modeCursor].Title)
}

// renderSummary renders the aggregate line for the mode.
func (m ScoreboardModel) renderSummary() string {
	if m.stats == nil || m.stats.Runs == 0 {
		return "No runs yet."
	}
	s := m.stats
	last := "-"
	if !s.LastPlayed.IsZero() {
		last = s.LastPlayed.Format("Jan 02 15:04")
	}
	return fmt.Sprintf("Runs %d   Best %d   Avg score %.0f   Avg accuracy %.1f%%   Last %s",
		s.Runs, s.Best, s.AvgScore, s.AvgAccuracy, last)
}

// renderChart draws the best score of each of the last chartDays days as a
// bar chart, oldest on the left. Days without runs stay empty.
func (m ScoreboardModel) renderChart() string {
	if len(m.daily) == 0 {
		return m.painter.NewStyle().Foreground(lipgloss.Color("241")).Render("No runs in the last 30 days.")
	}

	byDay := make(map[string]int, len(m.daily))
	peak := 0
	for _, d := range m.daily {
		byDay[d.Day.Format(time.DateOnly)] = d.Score
		peak = max(peak, d.Score)
	}

	grid := core.NewScreen(chartDays, chartHeight)
	today := m.now()
	for i := range chartDays {
		day := today.AddDate(0, 0, i-chartDays+1).Format(time.DateOnly)
		score, ok := byDay[day]
		if !ok || peak == 0 {
			continue
		}
		bar := max(1, score*chartHeight/peak)
		for y := chartHeight - bar; y < chartHeight; y++ {
			grid.SetColored(i, y, '█', core.ColorCyan)
		}
	}

	label := m.painter.NewStyle().Foreground(lipgloss.Color("241")).
		Render(fmt.Sprintf("Daily best, last %d days (peak %d)", chartDays, peak))
	return lipgloss.JoinVertical(lipgloss.Left, label, m.painter.Render(grid))
}

// renderTableContent renders the table or empty message.
func (m ScoreboardModel) renderTableContent() string {
	if len(m.runs) == 0 {
		emptyStyle := m.painter.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(1, 2)
		return emptyStyle.Render("No runs recorded yet.\nFinish a run to see it here!")
	}

	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}
