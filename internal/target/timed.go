package target

import (
	"time"

	"github.com/vovakirdan/traingun/internal/core"
)

// TimedSphere disappears on its own once its lifespan runs out.
type TimedSphere struct {
	*Sphere
	lifespan    float64
	maxLifespan float64
	expired     bool
}

// NewTimedSphere creates a sphere that expires after lifespan seconds.
func NewTimedSphere(pos core.Vec2, radius, lifespan float64, spawn time.Time) *TimedSphere {
	return &TimedSphere{
		Sphere:      NewSphere(pos, radius, Style{Color: core.ColorOrange, Opacity: 1}, spawn),
		lifespan:    lifespan,
		maxLifespan: lifespan,
	}
}

// Lifespan returns the seconds left before expiry.
func (t *TimedSphere) Lifespan() float64 { return t.lifespan }

// Expired reports whether the target ran out of time, as opposed to being hit.
func (t *TimedSphere) Expired() bool { return t.expired }

// Update counts the lifespan down and expires the target at zero.
// The color shifts toward red as time runs out.
func (t *TimedSphere) Update(dt float64) {
	t.Sphere.Update(dt)
	t.lifespan -= dt

	switch {
	case t.lifespan < 0.3:
		t.style.Color = core.ColorRed
	case t.lifespan < 0.6:
		t.style.Color = core.ColorEmber
	}

	if t.lifespan <= 0 && t.state == StateActive {
		t.state = StateExpired
		t.expired = true
	}
}

// Draw renders the sphere inside a countdown ring that thins out.
func (t *TimedSphere) Draw(c *core.Canvas) {
	if t.state != StateActive {
		return
	}
	progress := 0.0
	if t.maxLifespan > 0 {
		progress = core.ClampF(t.lifespan/t.maxLifespan, 0, 1)
	}

	ring := '·'
	switch {
	case progress > 0.66:
		ring = '●'
	case progress > 0.33:
		ring = '•'
	}
	r := t.radius * t.scale
	c.Ring(t.pos, r+4, core.Cell{Rune: ring, Color: t.style.Color})
	c.Disc(t.pos, r*0.6, core.Cell{Rune: '▒', Color: t.style.Color})
	c.PlotCell(t.pos, core.Cell{Rune: '◉', Color: core.ColorWhite})
}
