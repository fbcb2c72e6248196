// Package effects holds the purely visual feedback layers: hit particles,
// floating score text and screen shake. Nothing here affects gameplay.
package effects

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/traingun/internal/core"
)

// DefaultBurst is the particle count of a plain hit burst.
const DefaultBurst = 15

// Particle is a single spark flying out of a hit.
type Particle struct {
	Pos     core.Vec2
	Vel     core.Vec2
	Color   core.Color
	Life    float64
	MaxLife float64
}

// Alpha returns the remaining life fraction.
func (p *Particle) Alpha() float64 {
	if p.MaxLife <= 0 {
		return 0
	}
	return math.Max(0, p.Life/p.MaxLife)
}

// Dead reports whether the particle has burnt out.
func (p *Particle) Dead() bool { return p.Life <= 0 }

// Particles is a pool of live particles.
type Particles struct {
	rng   *rand.Rand
	items []Particle
}

// NewParticles creates an empty particle system.
func NewParticles(rng *rand.Rand) *Particles {
	return &Particles{rng: rng}
}

// Emit spawns count particles spread evenly around a circle with a little
// angular jitter, 100-300 px/s and 0.3-0.8s of life.
func (ps *Particles) Emit(at core.Vec2, col core.Color, count int) {
	if count <= 0 {
		count = DefaultBurst
	}
	for i := 0; i < count; i++ {
		angle := (math.Pi*2/float64(count))*float64(i) + (ps.rng.Float64()-0.5)*0.5
		speed := 100 + ps.rng.Float64()*200
		life := 0.3 + ps.rng.Float64()*0.5
		ps.items = append(ps.items, Particle{
			Pos:     at,
			Vel:     core.V(math.Cos(angle)*speed, math.Sin(angle)*speed),
			Color:   col,
			Life:    life,
			MaxLife: life,
		})
	}
}

// Update moves and damps every particle, dropping dead ones.
func (ps *Particles) Update(dt float64) {
	alive := ps.items[:0]
	for _, p := range ps.items {
		p.Pos = p.Pos.Add(p.Vel.Scale(dt))
		p.Vel = p.Vel.Scale(0.98)
		p.Life -= dt
		if !p.Dead() {
			alive = append(alive, p)
		}
	}
	ps.items = alive
}

// Len returns the number of live particles.
func (ps *Particles) Len() int { return len(ps.items) }

// Items returns the live particles. The slice is only valid until the next Update.
func (ps *Particles) Items() []Particle { return ps.items }

// Reset drops all particles.
func (ps *Particles) Reset() { ps.items = ps.items[:0] }

// Draw plots each particle, fading through smaller glyphs as it burns out.
func (ps *Particles) Draw(c *core.Canvas) {
	for _, p := range ps.items {
		a := p.Alpha()
		r := '·'
		switch {
		case a > 0.66:
			r = '*'
		case a > 0.33:
			r = '+'
		}
		c.PlotCell(p.Pos, core.Cell{Rune: r, Color: p.Color, Faint: a < 0.5})
	}
}

// DefaultTextSeconds is how long a floating text lives unless told otherwise.
const DefaultTextSeconds = 0.8

// FloatingText is a short label that drifts upward and fades.
type FloatingText struct {
	Pos     core.Vec2
	Text    string
	Color   core.Color
	Life    float64
	MaxLife float64
	vy      float64
}

// Texts is the floating text layer.
type Texts struct {
	items []FloatingText
}

// Add spawns a label. A non-positive duration uses DefaultTextSeconds.
func (ts *Texts) Add(at core.Vec2, text string, col core.Color, seconds float64) {
	if seconds <= 0 {
		seconds = DefaultTextSeconds
	}
	if col == "" {
		col = core.ColorCyan
	}
	ts.items = append(ts.items, FloatingText{
		Pos:     at,
		Text:    text,
		Color:   col,
		Life:    seconds,
		MaxLife: seconds,
		vy:      -80,
	})
}

// Update floats every label up with damping and drops expired ones.
func (ts *Texts) Update(dt float64) {
	alive := ts.items[:0]
	for _, ft := range ts.items {
		ft.Pos.Y += ft.vy * dt
		ft.vy *= 0.95
		ft.Life -= dt
		if ft.Life > 0 {
			alive = append(alive, ft)
		}
	}
	ts.items = alive
}

// Len returns the number of live labels.
func (ts *Texts) Len() int { return len(ts.items) }

// Items returns the live labels.
func (ts *Texts) Items() []FloatingText { return ts.items }

// Reset drops all labels.
func (ts *Texts) Reset() { ts.items = ts.items[:0] }

// Draw renders the labels centered on their positions.
func (ts *Texts) Draw(c *core.Canvas) {
	for _, ft := range ts.items {
		faint := ft.MaxLife > 0 && ft.Life/ft.MaxLife < 0.3
		x, y := c.CellAt(ft.Pos)
		x -= len([]rune(ft.Text)) / 2
		for _, r := range ft.Text {
			c.Screen().SetCell(x, y, core.Cell{Rune: r, Color: ft.Color, Faint: faint})
			x++
		}
	}
}

// Shake is a decaying screen-shake intensity.
type Shake struct {
	amount float64
}

// Add bumps the shake intensity.
func (s *Shake) Add(v float64) { s.amount += v }

// Amount returns the current intensity.
func (s *Shake) Amount() float64 { return s.amount }

// Reset stops shaking.
func (s *Shake) Reset() { s.amount = 0 }

// Decay multiplies the intensity by 0.9 per frame and snaps small values to zero.
func (s *Shake) Decay() {
	if s.amount > 0 {
		s.amount *= 0.9
		if s.amount < 0.5 {
			s.amount = 0
		}
	}
}

// Offset returns a random translation within the current intensity.
func (s *Shake) Offset(rng *rand.Rand) core.Vec2 {
	if s.amount <= 0 {
		return core.Vec2{}
	}
	return core.V((rng.Float64()-0.5)*s.amount, (rng.Float64()-0.5)*s.amount)
}
