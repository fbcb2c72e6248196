package modes

import (
	"fmt"

	"github.com/vovakirdan/traingun/internal/config"
	"github.com/vovakirdan/traingun/internal/core"
	"github.com/vovakirdan/traingun/internal/engine"
	"github.com/vovakirdan/traingun/internal/registry"
	"github.com/vovakirdan/traingun/internal/target"
)

func init() {
	registry.Register(SixTargetID, func(cfg config.ModesConfig) engine.ModeHandler {
		return NewSixTarget(cfg.SixTarget)
	})
}

const (
	waveSize     = 6
	waveMargin   = 80
	waveSpacing  = 3.5
	waveAttempts = 80
	waveBonus    = 300
)

// SixTarget spawns waves of six spheres; clearing a wave scores a bonus.
type SixTarget struct {
	levels config.Levels[config.SixTargetLevel]
	level  config.SixTargetLevel
	waves  int
}

// NewSixTarget creates a six-target handler.
func NewSixTarget(levels config.Levels[config.SixTargetLevel]) *SixTarget {
	return &SixTarget{levels: levels}
}

func (m *SixTarget) ID() string    { return SixTargetID }
func (m *SixTarget) Title() string { return "Six Target" }
func (m *SixTarget) Firing() bool  { return true }

func (m *SixTarget) Duration(d config.Difficulty) float64 {
	return m.levels.For(d).Duration
}

func (m *SixTarget) Init(e *engine.Engine, d config.Difficulty) {
	m.level = m.levels.For(d)
	m.waves = 0
	m.spawnWave(e)
}

func (m *SixTarget) Update(e *engine.Engine, dt float64) {
	if e.ActiveCount() > 0 {
		return
	}
	m.waves++
	e.AddScore(waveBonus)
	vp := e.Viewport()
	e.AddText(core.V(vp.X/2, vp.Y/2-50), fmt.Sprintf("WAVE %d CLEAR! +%d", m.waves, waveBonus), core.ColorCyan)
	m.spawnWave(e)
}

func (m *SixTarget) spawnWave(e *engine.Engine) {
	r := m.level.Radius
	style := e.TargetStyle()
	now := e.Now()
	for _, p := range spacedPoints(e, waveSize, r+waveMargin, r*waveSpacing, waveAttempts) {
		e.AddTarget(target.NewSphere(p, r, style, now))
	}
}

// Waves returns how many waves were cleared this run.
func (m *SixTarget) Waves() int { return m.waves }

// OnHit scores 100, a reaction bonus and a bonus for the streak before this hit.
func (m *SixTarget) OnHit(e *engine.Engine, h engine.Hit) {
	points := 100
	pos := h.Target.Position()

	switch {
	case h.ReactionMs < 200:
		points += 60
		e.AddText(pos.Sub(core.V(0, 30)), "FAST!", core.ColorOrange)
	case h.ReactionMs < 350:
		points += 30
	}

	if e.Combo() >= 3 {
		points += 20
	}
	if e.Combo() >= 5 {
		points += 30
	}

	e.AddScore(points)
	e.AddText(pos.Sub(core.V(0, 10)), fmt.Sprintf("+%d", points), core.ColorCyan)
}

func (m *SixTarget) OnMiss(e *engine.Engine) { showMiss(e) }
