package core

import "math"

// Virtual-pixel size of one terminal cell. Terminal cells are roughly twice
// as tall as they are wide, so game logic keeps square pixels and the canvas
// does the conversion.
const (
	CellWidth  = 8
	CellHeight = 16
)

// Canvas draws virtual-pixel geometry onto a Screen.
// It applies an optional zoom around a fixed point (scope) followed by a
// translation (screen shake). Hit-testing never goes through the canvas.
type Canvas struct {
	screen     *Screen
	shake      Vec2
	zoomCenter Vec2
	zoom       float64
}

// NewCanvas wraps a screen buffer.
func NewCanvas(s *Screen) *Canvas {
	return &Canvas{screen: s, zoom: 1}
}

// Screen returns the underlying cell buffer.
func (c *Canvas) Screen() *Screen {
	return c.screen
}

// Size returns the canvas dimensions in virtual pixels.
func (c *Canvas) Size() (w, h float64) {
	return float64(c.screen.Width() * CellWidth), float64(c.screen.Height() * CellHeight)
}

// SetShake sets the translation applied to subsequent draws.
func (c *Canvas) SetShake(offset Vec2) {
	c.shake = offset
}

// SetZoom magnifies subsequent draws around center by factor.
// A factor of 1 disables zoom.
func (c *Canvas) SetZoom(center Vec2, factor float64) {
	if factor <= 0 {
		factor = 1
	}
	c.zoomCenter = center
	c.zoom = factor
}

// ResetTransform clears shake and zoom.
func (c *Canvas) ResetTransform() {
	c.shake = Vec2{}
	c.zoom = 1
}

// Project maps a virtual-pixel point through zoom and shake.
func (c *Canvas) Project(p Vec2) Vec2 {
	if c.zoom != 1 {
		p = c.zoomCenter.Add(p.Sub(c.zoomCenter).Scale(c.zoom))
	}
	return p.Add(c.shake)
}

// CellAt returns the cell containing the projected point.
func (c *Canvas) CellAt(p Vec2) (int, int) {
	q := c.Project(p)
	return int(math.Floor(q.X / CellWidth)), int(math.Floor(q.Y / CellHeight))
}

// cellCenter returns the virtual-pixel center of a cell in projected space.
func cellCenter(x, y int) Vec2 {
	return Vec2{X: (float64(x) + 0.5) * CellWidth, Y: (float64(y) + 0.5) * CellHeight}
}

// Plot draws a single rune at the cell containing p.
func (c *Canvas) Plot(p Vec2, r rune, col Color) {
	x, y := c.CellAt(p)
	c.screen.SetColored(x, y, r, col)
}

// PlotCell draws a full cell at the cell containing p.
func (c *Canvas) PlotCell(p Vec2, cell Cell) {
	x, y := c.CellAt(p)
	c.screen.SetCell(x, y, cell)
}

// Disc fills every cell whose center lies within radius of center.
// Tiny discs still mark the cell containing their center.
func (c *Canvas) Disc(center Vec2, radius float64, cell Cell) {
	q := c.Project(center)
	rr := radius * c.zoom
	minX := int(math.Floor((q.X - rr) / CellWidth))
	maxX := int(math.Floor((q.X + rr) / CellWidth))
	minY := int(math.Floor((q.Y - rr) / CellHeight))
	maxY := int(math.Floor((q.Y + rr) / CellHeight))

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			if cellCenter(x, y).DistSq(q) <= rr*rr {
				c.screen.SetCell(x, y, cell)
			}
		}
	}
	c.screen.SetCell(int(math.Floor(q.X/CellWidth)), int(math.Floor(q.Y/CellHeight)), cell)
}

// Ring outlines a circle of the given radius.
func (c *Canvas) Ring(center Vec2, radius float64, cell Cell) {
	q := c.Project(center)
	rr := radius * c.zoom
	const band = CellHeight / 2
	outer := rr + band
	minX := int(math.Floor((q.X - outer) / CellWidth))
	maxX := int(math.Floor((q.X + outer) / CellWidth))
	minY := int(math.Floor((q.Y - outer) / CellHeight))
	maxY := int(math.Floor((q.Y + outer) / CellHeight))

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			d := math.Sqrt(cellCenter(x, y).DistSq(q))
			if math.Abs(d-rr) <= band/2 {
				c.screen.SetCell(x, y, cell)
			}
		}
	}
}

// FillBox fills every cell whose center lies inside the box.
func (c *Canvas) FillBox(b Box, cell Cell) {
	tl := c.Project(Vec2{X: b.Left, Y: b.Top})
	br := c.Project(Vec2{X: b.Right, Y: b.Bottom})
	pb := Box{Left: tl.X, Top: tl.Y, Right: br.X, Bottom: br.Y}

	for y := int(math.Floor(tl.Y / CellHeight)); y <= int(math.Floor(br.Y/CellHeight)); y++ {
		for x := int(math.Floor(tl.X / CellWidth)); x <= int(math.Floor(br.X/CellWidth)); x++ {
			if pb.Contains(cellCenter(x, y)) {
				c.screen.SetCell(x, y, cell)
			}
		}
	}
}

// Text draws text horizontally centered on p.
func (c *Canvas) Text(p Vec2, text string, col Color) {
	x, y := c.CellAt(p)
	x -= len([]rune(text)) / 2
	c.screen.DrawTextColored(x, y, text, col)
}
