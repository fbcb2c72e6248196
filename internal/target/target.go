// Package target implements the hit-testable, time-evolving entities a mode
// spawns: static, timed, moving and drifting spheres plus the two-zone
// humanoid.
//
// All geometry is in virtual pixels. Targets never remove themselves; they
// move out of StateActive and the engine sweeps them at the end of a frame.
package target

import (
	"time"

	"github.com/vovakirdan/traingun/internal/core"
)

// State is a target's lifecycle state.
type State int

const (
	StateActive State = iota
	StateHit
	StateExpired
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateHit:
		return "hit"
	case StateExpired:
		return "expired"
	default:
		return "unknown"
	}
}

// Target is the capability set the engine relies on.
type Target interface {
	Position() core.Vec2
	State() State
	SetState(State)
	SpawnTime() time.Time
	Color() core.Color
	Update(dt float64)
	IsHit(p core.Vec2) bool
	Draw(c *core.Canvas)
}

// Zone is a humanoid hit zone.
type Zone string

const (
	ZoneNone Zone = ""
	ZoneHead Zone = "head"
	ZoneBody Zone = "body"
)

// DamageResult describes the effect of one shot on a zoned target.
type DamageResult struct {
	Killed   bool
	Headshot bool
	Damage   int
}

// Zoned targets resolve shots per zone and carry hit points.
type Zoned interface {
	Target
	HitZone(p core.Vec2) Zone
	TakeDamage(zone Zone) DamageResult
}

// Style is the customizable look of a target.
type Style struct {
	Color   core.Color
	Opacity float64
}

// DefaultStyle matches the default customization record.
var DefaultStyle = Style{Color: core.ColorRed, Opacity: 0.9}

// faint reports whether an opacity renders dimmed.
func faint(opacity float64) bool {
	return opacity < 0.5
}

// growRate is how fast the spawn animation scales a sphere up, per second.
const growRate = 8

// Sphere is a static circular target.
type Sphere struct {
	pos    core.Vec2
	radius float64
	style  Style
	state  State
	spawn  time.Time
	scale  float64 // spawn animation, 0 -> 1
}

// NewSphere creates an active sphere spawned at the given time.
func NewSphere(pos core.Vec2, radius float64, style Style, spawn time.Time) *Sphere {
	if style.Color == "" {
		style.Color = DefaultStyle.Color
	}
	if style.Opacity <= 0 {
		style.Opacity = DefaultStyle.Opacity
	}
	return &Sphere{
		pos:    pos,
		radius: radius,
		style:  style,
		spawn:  spawn,
	}
}

func (s *Sphere) Position() core.Vec2     { return s.pos }
func (s *Sphere) Radius() float64         { return s.radius }
func (s *Sphere) State() State            { return s.state }
func (s *Sphere) SetState(st State)       { s.state = st }
func (s *Sphere) SpawnTime() time.Time    { return s.spawn }
func (s *Sphere) Color() core.Color       { return s.style.Color }
func (s *Sphere) SetColor(col core.Color) { s.style.Color = col }

// IsHit reports whether p lies within the radius of an active sphere.
func (s *Sphere) IsHit(p core.Vec2) bool {
	if s.state != StateActive {
		return false
	}
	return p.DistSq(s.pos) <= s.radius*s.radius
}

// Update advances the spawn animation.
func (s *Sphere) Update(dt float64) {
	if s.scale < 1 {
		s.scale = core.ClampF(s.scale+dt*growRate, 0, 1)
	}
}

// Draw renders a shaded disc with a highlight cell.
func (s *Sphere) Draw(c *core.Canvas) {
	if s.state != StateActive {
		return
	}
	r := s.radius * s.scale
	dim := faint(s.style.Opacity)
	c.Disc(s.pos, r, core.Cell{Rune: '█', Color: s.style.Color, Faint: dim})
	if r > core.CellHeight {
		hl := s.pos.Add(core.V(-r*0.3, -r*0.35))
		c.PlotCell(hl, core.Cell{Rune: '▓', Color: core.ColorWhite, Faint: dim})
	}
}
