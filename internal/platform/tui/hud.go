package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/traingun/internal/core"
	"github.com/vovakirdan/traingun/internal/engine"
)

// Shot map size in cells.
const (
	shotMapW = 40
	shotMapH = 12
)

// goWindow is how long "GO!" stays up after the countdown, in seconds.
const goWindow = 0.5

// hudSegment is one colored piece of the status line.
type hudSegment struct {
	text  string
	color core.Color
}

// drawHUD writes the status line, countdown and reload bar over the play field.
func (m GameModel) drawHUD(h engine.HUD) {
	s := m.screen
	title := strings.ToUpper(m.handler.Title())

	left := []hudSegment{
		{fmt.Sprintf(" %s · %s", title, strings.ToUpper(h.Difficulty)), core.ColorCyan},
		{fmt.Sprintf("SCORE %d", h.Score), core.ColorWhite},
		{fmt.Sprintf("TIME %d", h.Remaining), timeColor(h.Remaining)},
		{fmt.Sprintf("ACC %d%%", h.Accuracy), core.ColorGreen},
	}
	if h.Combo > 1 {
		left = append(left, hudSegment{fmt.Sprintf("COMBO x%d", h.Combo), core.ColorOrange})
	}

	x := 0
	for _, seg := range left {
		s.DrawTextColored(x, 0, seg.text, seg.color)
		x += len([]rune(seg.text)) + 3
	}

	weapon := fmt.Sprintf("%s %s", strings.ToUpper(h.Weapon), h.Ammo)
	if h.Scoped {
		weapon += " [SCOPE]"
	}
	right := fmt.Sprintf("%s   SENS %.2f (%.1fcm) ", weapon, h.Sens, h.Cm360)
	s.DrawTextColored(s.Width()-len([]rune(right)), 0, right, core.ColorDim)

	if m.progress != nil {
		banner := fmt.Sprintf(" %s %d/%d", m.progress.Name, m.progress.Index, m.progress.Total)
		s.DrawTextColored(0, 1, banner, core.ColorDim)
	}

	mid := s.Height() / 2
	switch {
	case h.State == engine.StateCountdown:
		s.DrawTextCentered(mid-2, "GET READY", core.ColorCyan)
		s.DrawTextCentered(mid, fmt.Sprintf("%d", h.Countdown), core.ColorWhite)
	case h.State == engine.StateRunning && m.eng.Elapsed() < goWindow:
		s.DrawTextCentered(mid, "GO!", core.ColorGreen)
	}

	bottom := s.Height() - 1
	if h.Reload > 0 {
		s.DrawTextColored(1, bottom, reloadBar(h.Reload, 20), core.ColorOrange)
	}
	hint := "esc pause · q quit "
	if !h.Captured {
		hint = "pointer · " + hint
	}
	s.DrawTextColored(s.Width()-len([]rune(hint)), bottom, hint, core.ColorDim)
}

func timeColor(remaining int) core.Color {
	if remaining <= 5 {
		return core.ColorRed
	}
	return core.ColorWhite
}

// reloadBar renders reload progress as a fixed-width bar.
func reloadBar(progress float64, width int) string {
	filled := int(core.ClampF(progress, 0, 1) * float64(width))
	return "RELOAD [" + strings.Repeat("#", filled) + strings.Repeat(".", width-filled) + "]"
}

// pauseView renders the pause panel with the active bindings.
func (m GameModel) pauseView() string {
	p := m.painter
	title := p.NewStyle().Bold(true).Foreground(lipgloss.Color(core.ColorCyan)).Render("PAUSED")
	h := m.eng.HUD()
	info := fmt.Sprintf("%s · %s   score %d   %ds left", m.handler.Title(), h.Difficulty, h.Score, h.Remaining)

	body := lipgloss.JoinVertical(lipgloss.Center,
		title,
		"",
		info,
		"",
		m.help.View(m.keys),
		"",
		p.NewStyle().Foreground(lipgloss.Color(core.ColorDim)).Render("esc resume · b menu · q quit"),
	)
	return panelStyle(p).Render(body)
}

// resultView renders the run summary with a map of where shots landed.
func (m GameModel) resultView() string {
	p := m.painter
	r, record, ok := m.eng.Result()
	if !ok {
		return panelStyle(p).Render("No result.")
	}

	heading := "RUN COMPLETE"
	headColor := core.ColorCyan
	if record {
		heading = "NEW RECORD!"
		headColor = core.ColorOrange
	}
	title := p.NewStyle().Bold(true).Foreground(lipgloss.Color(headColor)).Render(heading)
	sub := fmt.Sprintf("%s · %s", m.handler.Title(), strings.ToUpper(r.Difficulty))

	label := p.NewStyle().Foreground(lipgloss.Color(core.ColorDim)).Width(14)
	value := p.NewStyle().Bold(true)
	row := func(name, v string) string {
		return lipgloss.JoinHorizontal(lipgloss.Top, label.Render(name), value.Render(v))
	}

	reaction := "-"
	if r.AvgReactionMs != nil {
		reaction = fmt.Sprintf("%d ms", *r.AvgReactionMs)
	}

	rows := []string{
		row("Score", fmt.Sprintf("%d", r.Score)),
		row("Accuracy", fmt.Sprintf("%.1f%%", r.Accuracy)),
		row("Avg reaction", reaction),
		row("Hits / misses", fmt.Sprintf("%d / %d", r.Hits, r.Misses)),
		row("Max combo", fmt.Sprintf("%d", r.MaxCombo)),
		row("Time", fmt.Sprintf("%ds", r.ElapsedSeconds)),
	}
	if r.Headshots > 0 {
		rows = append(rows, row("Headshots", fmt.Sprintf("%d", r.Headshots)))
	}
	stats := lipgloss.JoinVertical(lipgloss.Left, rows...)

	parts := []string{title, sub, "", stats}
	if len(r.ShotHistory) > 0 {
		parts = append(parts, "", m.shotMap(r.ShotHistory))
	}
	if m.status != "" {
		parts = append(parts, "", p.NewStyle().Foreground(lipgloss.Color(core.ColorGreen)).Render(m.status))
	}

	footer := "r restart · esc menu · q quit"
	if m.progress != nil {
		footer = fmt.Sprintf("enter next (%d/%d) · ", m.progress.Index+1, m.progress.Total) + footer
		if m.progress.Index >= m.progress.Total {
			footer = "enter finish routine · r restart · esc menu · q quit"
		}
	}
	parts = append(parts, "", p.NewStyle().Foreground(lipgloss.Color(core.ColorDim)).Render(footer))

	return panelStyle(p).Render(lipgloss.JoinVertical(lipgloss.Center, parts...))
}

// shotMap plots every shot of the run on a small grid: targets as 'o',
// hits as '•' and misses as '×'.
func (m GameModel) shotMap(shots []core.ShotRecord) string {
	grid := core.NewScreen(shotMapW, shotMapH)
	cell := func(x, y float64) (int, int) {
		cx := int(core.ClampF(x, 0, 1) * float64(shotMapW-1))
		cy := int(core.ClampF(y, 0, 1) * float64(shotMapH-1))
		return cx, cy
	}

	for _, s := range shots {
		tx, ty := cell(s.TX, s.TY)
		if grid.Get(tx, ty) == ' ' {
			grid.SetCell(tx, ty, core.Cell{Rune: 'o', Color: core.ColorDim, Faint: true})
		}
	}
	for _, s := range shots {
		x, y := cell(s.X, s.Y)
		if s.Hit {
			grid.SetColored(x, y, '•', core.ColorGreen)
		} else {
			grid.SetColored(x, y, '×', core.ColorRed)
		}
	}

	box := m.painter.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(core.ColorGrid))
	return box.Render(m.painter.Render(grid))
}

func panelStyle(p *Painter) lipgloss.Style {
	return p.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(core.ColorCyan)).
		Padding(1, 3)
}
