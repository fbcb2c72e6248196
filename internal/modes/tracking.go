package modes

import (
	"math"

	"github.com/vovakirdan/traingun/internal/config"
	"github.com/vovakirdan/traingun/internal/engine"
	"github.com/vovakirdan/traingun/internal/registry"
	"github.com/vovakirdan/traingun/internal/target"
)

func init() {
	registry.Register(TrackingID, func(cfg config.ModesConfig) engine.ModeHandler {
		return NewTracking(cfg.Tracking)
	})
}

// Tracking keeps the crosshair on one smoothly moving target. Shots are not
// resolved; score and accuracy come from the frames spent on target.
type Tracking struct {
	levels config.Levels[config.TrackingLevel]
	level  config.TrackingLevel
	target *target.MovingSphere
}

// NewTracking creates a tracking handler.
func NewTracking(levels config.Levels[config.TrackingLevel]) *Tracking {
	return &Tracking{levels: levels}
}

func (m *Tracking) ID() string    { return TrackingID }
func (m *Tracking) Title() string { return "Tracking" }
func (m *Tracking) Firing() bool  { return false }

func (m *Tracking) Duration(d config.Difficulty) float64 {
	return m.levels.For(d).Duration
}

func (m *Tracking) Init(e *engine.Engine, d config.Difficulty) {
	m.level = m.levels.For(d)
	vp := e.Viewport()
	m.target = target.NewMovingSphere(vp.Scale(0.5), m.level.Radius, m.level.Speed, vp, e.Rand(), e.Now())
	e.AddTarget(m.target)
}

// Update scores 1 per frame on target, 2 once the streak passes a second.
// Leaving the target resets both the streak and the combo.
func (m *Tracking) Update(e *engine.Engine, dt float64) {
	if m.target == nil {
		return
	}

	on := m.target.IsHit(e.Cursor())
	e.CountTrackingFrame(on)
	m.target.Track(on, dt)

	if !on {
		e.SetCombo(0)
		return
	}

	e.AddScore(1)
	if sec := m.target.TrackedSeconds(); sec > 1 {
		e.AddScore(1)
		e.SetCombo(int(math.Floor(sec)))
	}
}

// Target returns the tracked sphere.
func (m *Tracking) Target() *target.MovingSphere { return m.target }

func (m *Tracking) OnHit(e *engine.Engine, h engine.Hit) {}
func (m *Tracking) OnMiss(e *engine.Engine)              {}
