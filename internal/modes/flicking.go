package modes

import (
	"github.com/vovakirdan/traingun/internal/config"
	"github.com/vovakirdan/traingun/internal/core"
	"github.com/vovakirdan/traingun/internal/engine"
	"github.com/vovakirdan/traingun/internal/registry"
	"github.com/vovakirdan/traingun/internal/target"
)

func init() {
	registry.Register(FlickingID, func(cfg config.ModesConfig) engine.ModeHandler {
		return NewFlicking(cfg.Flicking)
	})
}

var flickReaction = []reactionBonus{
	{150, 80, "INSANE!"},
	{250, 50, "FAST!"},
	{400, 20, "NICE"},
}

// Flicking shows one static target at a time anywhere on screen.
type Flicking struct {
	levels config.Levels[config.FlickingLevel]
	level  config.FlickingLevel
}

// NewFlicking creates a flicking handler.
func NewFlicking(levels config.Levels[config.FlickingLevel]) *Flicking {
	return &Flicking{levels: levels}
}

func (m *Flicking) ID() string    { return FlickingID }
func (m *Flicking) Title() string { return "Flicking" }
func (m *Flicking) Firing() bool  { return true }

func (m *Flicking) Duration(d config.Difficulty) float64 {
	return m.levels.For(d).Duration
}

func (m *Flicking) Init(e *engine.Engine, d config.Difficulty) {
	m.level = m.levels.For(d)
	m.spawn(e)
}

func (m *Flicking) Update(e *engine.Engine, dt float64) {
	if e.ActiveCount() == 0 {
		m.spawn(e)
	}
}

func (m *Flicking) spawn(e *engine.Engine) {
	style := e.TargetStyle()
	style.Color = core.ColorRed
	pos := randomPoint(e, m.level.Radius+60)
	e.AddTarget(target.NewSphere(pos, m.level.Radius, style, e.Now()))
}

// OnHit scores 100 plus a reaction bonus and a combo bonus. The combo is the
// streak before this hit.
func (m *Flicking) OnHit(e *engine.Engine, h engine.Hit) {
	points := 100
	bonus, label := lookupBonus(flickReaction, h.ReactionMs)
	points += bonus

	switch combo := e.Combo(); {
	case combo >= 10:
		points += 60
	case combo >= 5:
		points += 30
	}

	e.AddScore(points)
	showPoints(e, h.Target.Position(), points)
	if label != "" {
		showBonus(e, h.Target.Position(), label)
	}
}

func (m *Flicking) OnMiss(e *engine.Engine) { showMiss(e) }
