package tui

import (
	"errors"

	"github.com/vovakirdan/traingun/internal/core"
)

// ErrRelativeDisabled is returned by MouseCapture.Acquire when relative
// pointer input was turned off for the session.
var ErrRelativeDisabled = errors.New("tui: relative pointer input disabled")

// MouseCapture turns absolute terminal mouse reports into relative motion.
// While acquired, each report yields the virtual-pixel distance from the
// previous one, which the engine scales by the sensitivity. When released
// (or never granted) the model positions the crosshair at the pointer.
type MouseCapture struct {
	relative bool
	active   bool

	hasLast bool
	lastX   int
	lastY   int
}

// NewMouseCapture creates a capture that grants relative input when relative is true.
func NewMouseCapture(relative bool) *MouseCapture {
	return &MouseCapture{relative: relative}
}

// Acquire starts relative input.
func (c *MouseCapture) Acquire() error {
	if !c.relative {
		return ErrRelativeDisabled
	}
	c.active = true
	c.hasLast = false
	return nil
}

// Release stops relative input.
func (c *MouseCapture) Release() {
	c.active = false
	c.hasLast = false
}

// Active reports whether relative input is on.
func (c *MouseCapture) Active() bool {
	return c.active
}

// Delta records a pointer report at cell (x, y) and returns the movement
// since the previous report in virtual pixels. The first report after
// Acquire only sets the reference point.
func (c *MouseCapture) Delta(x, y int) (dx, dy float64, ok bool) {
	if !c.active {
		return 0, 0, false
	}
	if !c.hasLast {
		c.hasLast = true
		c.lastX, c.lastY = x, y
		return 0, 0, false
	}
	dx = float64((x - c.lastX) * core.CellWidth)
	dy = float64((y - c.lastY) * core.CellHeight)
	c.lastX, c.lastY = x, y
	return dx, dy, dx != 0 || dy != 0
}

// cellCenter returns the virtual-pixel center of a terminal cell.
func cellCenter(x, y int) core.Vec2 {
	return core.V(float64(x*core.CellWidth)+core.CellWidth/2, float64(y*core.CellHeight)+core.CellHeight/2)
}
