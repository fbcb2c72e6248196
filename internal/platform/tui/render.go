package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/traingun/internal/core"
)

// styleKey identifies a cached cell style.
type styleKey struct {
	color core.Color
	faint bool
}

// Painter converts Screen buffers to styled strings. Styles are built on
// first use and cached per color, so each session keeps its own renderer
// (and color profile) without rebuilding styles every frame.
type Painter struct {
	renderer *lipgloss.Renderer
	styles   map[styleKey]lipgloss.Style
}

// NewPainter creates a painter for the given renderer.
// A nil renderer uses the default one bound to stdout.
func NewPainter(r *lipgloss.Renderer) *Painter {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return &Painter{renderer: r, styles: make(map[styleKey]lipgloss.Style)}
}

// Renderer returns the lipgloss renderer styles are created with.
func (p *Painter) Renderer() *lipgloss.Renderer {
	return p.renderer
}

// NewStyle returns an empty style bound to the painter's renderer.
func (p *Painter) NewStyle() lipgloss.Style {
	return p.renderer.NewStyle()
}

func (p *Painter) style(c core.Color, faint bool) lipgloss.Style {
	k := styleKey{color: c, faint: faint}
	if s, ok := p.styles[k]; ok {
		return s
	}
	s := p.renderer.NewStyle()
	if c != core.ColorDefault {
		s = s.Foreground(lipgloss.Color(c))
	}
	if faint {
		s = s.Faint(true)
	}
	p.styles[k] = s
	return s
}

// Render converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same style to minimize ANSI escape sequences.
func (p *Painter) Render(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			start := s.GetCell(x, y)

			run.Reset()
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != start.Color || cell.Faint != start.Faint {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			if start.Color == core.ColorDefault && !start.Faint {
				sb.WriteString(run.String())
				continue
			}
			sb.WriteString(p.style(start.Color, start.Faint).Render(run.String()))
		}
	}
	return sb.String()
}
