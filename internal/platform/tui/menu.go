package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/traingun/internal/config"
	"github.com/vovakirdan/traingun/internal/core"
	"github.com/vovakirdan/traingun/internal/modes"
	"github.com/vovakirdan/traingun/internal/registry"
)

// MenuItem is a selectable mode or routine.
type MenuItem struct {
	ModeID    string // set for modes
	RoutineID string // set for routines
	Title     string
	Detail    string
}

// MenuChoice is what the user picked.
type MenuChoice struct {
	ModeID     string
	RoutineID  string
	Difficulty config.Difficulty
}

// MenuModel is the Bubble Tea model for the mode picker.
type MenuModel struct {
	opts           Options
	items          []MenuItem
	cursor         int
	difficulty     int // index into config.Difficulties()
	width          int
	height         int
	keys           menuKeyMap
	help           help.Model
	painter        *Painter
	quitting       bool
	selected       *MenuChoice
	openScoreboard bool
}

// NewMenuModel creates a new menu model.
func NewMenuModel(opts Options) MenuModel {
	opts = opts.withDefaults()

	m := MenuModel{
		opts:       opts,
		width:      opts.Runtime.ScreenW,
		height:     opts.Runtime.ScreenH,
		keys:       defaultMenuKeyMap(),
		help:       help.New(),
		painter:    NewPainter(opts.Renderer),
		difficulty: difficultyIndex(config.DifficultyMedium),
	}
	m.items = m.buildItems()
	return m
}

func difficultyIndex(d config.Difficulty) int {
	for i, v := range config.Difficulties() {
		if v == d {
			return i
		}
	}
	return 0
}

// buildItems lists the modes in training order followed by the routines.
func (m MenuModel) buildItems() []MenuItem {
	titles := make(map[string]string)
	for _, info := range registry.List() {
		titles[info.ID] = info.Title
	}

	var best map[string]*core.RunResult
	if m.opts.Store != nil {
		var err error
		if best, err = m.opts.Store.BestScores(modes.Order); err != nil {
			m.opts.Logger.Error("failed to load best scores", "err", err)
		}
	}

	items := make([]MenuItem, 0, len(modes.Order)+4)
	for _, id := range modes.Order {
		title, ok := titles[id]
		if !ok {
			continue
		}
		detail := ""
		if r := best[id]; r != nil {
			detail = fmt.Sprintf("best %d", r.Score)
		}
		items = append(items, MenuItem{ModeID: id, Title: title, Detail: detail})
	}

	for _, r := range m.opts.Routines.List() {
		items = append(items, MenuItem{
			RoutineID: r.ID,
			Title:     r.Name,
			Detail:    fmt.Sprintf("%d steps", len(r.Steps)),
		})
	}
	return items
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.opts.Runtime.ScreenW = msg.Width
		m.opts.Runtime.ScreenH = msg.Height
		m.help.Width = msg.Width
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	levels := config.Difficulties()

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Left):
		m.difficulty = (m.difficulty + len(levels) - 1) % len(levels)

	case key.Matches(msg, m.keys.Right):
		m.difficulty = (m.difficulty + 1) % len(levels)

	case key.Matches(msg, m.keys.Select):
		if len(m.items) > 0 {
			item := m.items[m.cursor]
			m.selected = &MenuChoice{
				ModeID:     item.ModeID,
				RoutineID:  item.RoutineID,
				Difficulty: levels[m.difficulty],
			}
		}

	case key.Matches(msg, m.keys.Scores):
		m.openScoreboard = true
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	p := m.painter
	accent := p.NewStyle().Foreground(lipgloss.Color(core.ColorCyan))
	dim := p.NewStyle().Foreground(lipgloss.Color(core.ColorDim))
	active := p.NewStyle().Bold(true).Foreground(lipgloss.Color(core.ColorOrange))

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(accent.Bold(true).Render("T R A I N G U N"), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(dim.Render("terminal aim trainer"), m.width))
	b.WriteString("\n\n")

	routinesHeader := false
	for i, item := range m.items {
		if item.RoutineID != "" && !routinesHeader {
			routinesHeader = true
			b.WriteString("\n")
			b.WriteString(centerText(dim.Render("Routines"), m.width))
			b.WriteString("\n")
		}

		cursor := "  "
		style := p.NewStyle()
		if i == m.cursor {
			cursor = "> "
			style = active
		}
		line := fmt.Sprintf("%s%-20s %12s", cursor, item.Title, item.Detail)
		b.WriteString(centerText(style.Render(line), m.width))
		b.WriteString("\n")
	}

	level := config.Difficulties()[m.difficulty]
	b.WriteString("\n")
	b.WriteString(centerText("Difficulty: "+accent.Render(fmt.Sprintf("< %s >", strings.ToUpper(string(level)))), m.width))
	b.WriteString("\n\n")

	b.WriteString(centerText(dim.Render(m.help.View(m.keys)), m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the user's pick, or nil if none was made.
func (m MenuModel) Selected() *MenuChoice {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested the statistics screen.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.opts.Runtime
}

// centerText centers text within given width, ignoring ANSI sequences.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}
