package target

import (
	"math"
	"math/rand"
	"time"

	"github.com/vovakirdan/traingun/internal/core"
)

// trackMargin keeps moving targets this far (plus their radius) from the edges.
const trackMargin = 20

// wave is one sine component per axis.
type wave struct {
	freqX, freqY   float64
	ampX, ampY     float64
	phaseX, phaseY float64
}

// MovingSphere follows a smooth path built from a primary sine wave plus a
// faster, smaller noise wave. The path parameters are drawn once at spawn.
type MovingSphere struct {
	*Sphere
	base     core.Vec2
	bounds   core.Vec2
	speed    float64
	time     float64
	primary  wave
	noise    wave
	tracked  bool
	trackSec float64
}

// NewMovingSphere creates a tracking target anchored at base inside a
// viewport of the given size. rng supplies the per-instance path.
func NewMovingSphere(base core.Vec2, radius, speed float64, viewport core.Vec2, rng *rand.Rand, spawn time.Time) *MovingSphere {
	return &MovingSphere{
		Sphere: NewSphere(base, radius, Style{Color: core.ColorGreen, Opacity: 1}, spawn),
		base:   base,
		bounds: viewport,
		speed:  speed,
		time:   rng.Float64() * 100,
		primary: wave{
			freqX:  0.5 + rng.Float64()*1.5,
			freqY:  0.3 + rng.Float64()*1.2,
			ampX:   viewport.X*0.15 + rng.Float64()*viewport.X*0.15,
			ampY:   viewport.Y*0.15 + rng.Float64()*viewport.Y*0.15,
			phaseX: rng.Float64() * math.Pi * 2,
			phaseY: rng.Float64() * math.Pi * 2,
		},
		noise: wave{
			freqX: 2 + rng.Float64()*3,
			freqY: 2.5 + rng.Float64()*3,
			ampX:  20 + rng.Float64()*30,
			ampY:  20 + rng.Float64()*30,
		},
	}
}

// Update advances along the path and clamps to the viewport margin.
func (m *MovingSphere) Update(dt float64) {
	m.Sphere.Update(dt)
	m.time += dt * m.speed

	t := m.time
	dx := math.Sin(t*m.primary.freqX+m.primary.phaseX)*m.primary.ampX + math.Sin(t*m.noise.freqX)*m.noise.ampX
	dy := math.Sin(t*m.primary.freqY+m.primary.phaseY)*m.primary.ampY + math.Cos(t*m.noise.freqY)*m.noise.ampY

	margin := m.radius + trackMargin
	m.pos = core.Vec2{
		X: core.ClampF(m.base.X+dx, margin, m.bounds.X-margin),
		Y: core.ClampF(m.base.Y+dy, margin, m.bounds.Y-margin),
	}
}

// Track records whether the crosshair is on the target this frame.
// Losing the target resets the tracked time to zero immediately.
func (m *MovingSphere) Track(on bool, dt float64) {
	m.tracked = on
	if on {
		m.trackSec += dt
	} else {
		m.trackSec = 0
	}
}

// IsTracked reports whether the crosshair was on the target last frame.
func (m *MovingSphere) IsTracked() bool { return m.tracked }

// TrackedSeconds returns the length of the current tracking streak.
func (m *MovingSphere) TrackedSeconds() float64 { return m.trackSec }

// Draw renders green while tracked and coral otherwise, with a halo and a
// progress ring that fills over two seconds of tracking.
func (m *MovingSphere) Draw(c *core.Canvas) {
	if m.state != StateActive {
		return
	}
	r := m.radius * m.scale
	col := core.ColorCoral
	if m.tracked {
		col = core.ColorGreen
		c.Disc(m.pos, r*1.5, core.Cell{Rune: '░', Color: core.ColorGreen, Faint: true})
	}
	c.Ring(m.pos, r, core.Cell{Rune: '○', Color: col})
	c.Disc(m.pos, r*0.65, core.Cell{Rune: '▒', Color: col})
	c.PlotCell(m.pos, core.Cell{Rune: '●', Color: core.ColorWhite})

	if m.tracked && m.trackSec > 0 {
		progress := math.Min(m.trackSec/2, 1)
		c.Text(m.pos.Add(core.V(0, r+core.CellHeight)), progressBar(progress, 6), core.ColorCyan)
	}
}

// DriftingSphere moves in a straight line and bounces off the viewport margin.
type DriftingSphere struct {
	*Sphere
	vel    core.Vec2
	bounds core.Vec2
}

// NewDriftingSphere creates a slowly drifting target with a random velocity
// of up to 30 px/s per axis.
func NewDriftingSphere(pos core.Vec2, radius float64, style Style, viewport core.Vec2, rng *rand.Rand, spawn time.Time) *DriftingSphere {
	return &DriftingSphere{
		Sphere: NewSphere(pos, radius, style, spawn),
		vel:    core.V((rng.Float64()-0.5)*60, (rng.Float64()-0.5)*60),
		bounds: viewport,
	}
}

// Velocity returns the current drift velocity in px/s.
func (d *DriftingSphere) Velocity() core.Vec2 { return d.vel }

// Update moves the target and reflects its velocity at the margin.
func (d *DriftingSphere) Update(dt float64) {
	d.Sphere.Update(dt)
	d.pos = d.pos.Add(d.vel.Scale(dt))

	margin := d.radius + trackMargin
	if d.pos.X < margin || d.pos.X > d.bounds.X-margin {
		d.vel.X = -d.vel.X
	}
	if d.pos.Y < margin || d.pos.Y > d.bounds.Y-margin {
		d.vel.Y = -d.vel.Y
	}
	d.pos.X = core.ClampF(d.pos.X, margin, d.bounds.X-margin)
	d.pos.Y = core.ClampF(d.pos.Y, margin, d.bounds.Y-margin)
}

func progressBar(progress float64, width int) string {
	filled := int(math.Round(progress * float64(width)))
	bar := make([]rune, width)
	for i := range bar {
		if i < filled {
			bar[i] = '█'
		} else {
			bar[i] = '░'
		}
	}
	return string(bar)
}
