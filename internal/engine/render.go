package engine

import (
	"github.com/vovakirdan/traingun/internal/config"
	"github.com/vovakirdan/traingun/internal/core"
)

// gridSpacing is the background grid pitch in virtual pixels.
const gridSpacing = 64

// Draw renders the play field onto the canvas. Shake and scope zoom apply to
// the world layer; the crosshair is drawn untransformed at the aim point.
func (e *Engine) Draw(c *core.Canvas) {
	c.ResetTransform()
	drawGrid(c, e.viewport)

	c.SetShake(e.shake.Offset(e.vfx))
	if zoom := e.weapon.ZoomFactor(); zoom > 1 {
		c.SetZoom(e.cursor, zoom)
	}

	for _, t := range e.targets {
		t.Draw(c)
	}
	e.particles.Draw(c)
	e.texts.Draw(c)

	c.ResetTransform()
	if e.state == StateRunning || e.state == StatePaused || e.state == StateCountdown {
		drawCrosshair(c, e.cursor.Add(e.weapon.Offset()), e.custom.Crosshair)
	}
}

func drawGrid(c *core.Canvas, viewport core.Vec2) {
	dot := core.Cell{Rune: '·', Color: core.ColorGrid}
	for y := float64(gridSpacing); y < viewport.Y; y += gridSpacing {
		for x := float64(gridSpacing); x < viewport.X; x += gridSpacing {
			c.PlotCell(core.V(x, y), dot)
		}
	}
}

// drawCrosshair renders one of the four crosshair styles centered on p.
func drawCrosshair(c *core.Canvas, p core.Vec2, ch config.CrosshairConfig) {
	col := core.Color(ch.Color)
	dim := ch.Opacity < 0.5

	switch ch.Style {
	case config.CrosshairDot:
		c.Disc(p, ch.DotSize+1, core.Cell{Rune: '●', Color: col, Faint: dim})
	case config.CrosshairCircle:
		c.Ring(p, ch.Size, core.Cell{Rune: '○', Color: col, Faint: dim})
		c.PlotCell(p, core.Cell{Rune: '·', Color: col, Faint: dim})
	default:
		drawArms(c, p, ch.Gap, ch.Size, col, dim)
		if ch.Style == config.CrosshairCrossDot {
			c.PlotCell(p, core.Cell{Rune: '•', Color: col, Faint: dim})
		}
	}
}

// drawArms draws the four cross arms from gap to gap+size around p. The
// cell under p itself is left alone so the center stays readable.
func drawArms(c *core.Canvas, p core.Vec2, gap, size float64, col core.Color, dim bool) {
	h := core.Cell{Rune: '─', Color: col, Faint: dim}
	v := core.Cell{Rune: '│', Color: col, Faint: dim}
	cx, cy := c.CellAt(p)

	plot := func(q core.Vec2, cell core.Cell) {
		if x, y := c.CellAt(q); x != cx || y != cy {
			c.PlotCell(q, cell)
		}
	}

	for d := gap; d < gap+size; d += core.CellWidth / 2 {
		plot(p.Add(core.V(-d, 0)), h)
		plot(p.Add(core.V(d, 0)), h)
	}
	plot(p.Add(core.V(-gap-size, 0)), h)
	plot(p.Add(core.V(gap+size, 0)), h)

	for d := gap; d < gap+size; d += core.CellHeight / 2 {
		plot(p.Add(core.V(0, -d)), v)
		plot(p.Add(core.V(0, d)), v)
	}
	plot(p.Add(core.V(0, -gap-size)), v)
	plot(p.Add(core.V(0, gap+size)), v)
}
