package modes

import (
	"time"

	"github.com/vovakirdan/traingun/internal/config"
	"github.com/vovakirdan/traingun/internal/core"
	"github.com/vovakirdan/traingun/internal/engine"
	"github.com/vovakirdan/traingun/internal/registry"
	"github.com/vovakirdan/traingun/internal/target"
)

func init() {
	registry.Register(SwitchingID, func(cfg config.ModesConfig) engine.ModeHandler {
		return NewSwitching(cfg.Switching)
	})
}

// Batch placement and the clear bonus.
const (
	switchMargin   = 80
	switchSpacing  = 4
	switchAttempts = 50
	clearBonus     = 200
)

var switchReaction = []reactionBonus{
	{200, 80, "LIGHTNING!"},
	{300, 50, "SWIFT!"},
	{500, 20, ""},
}

// Switching shows a batch of targets at once and rewards fast transfers
// between them. Clearing a batch scores a bonus and spawns the next one.
type Switching struct {
	levels  config.Levels[config.SwitchingLevel]
	level   config.SwitchingLevel
	lastHit time.Time
	batches int
}

// NewSwitching creates a switching handler.
func NewSwitching(levels config.Levels[config.SwitchingLevel]) *Switching {
	return &Switching{levels: levels}
}

func (m *Switching) ID() string    { return SwitchingID }
func (m *Switching) Title() string { return "Target Switching" }
func (m *Switching) Firing() bool  { return true }

func (m *Switching) Duration(d config.Difficulty) float64 {
	return m.levels.For(d).Duration
}

func (m *Switching) Init(e *engine.Engine, d config.Difficulty) {
	m.level = m.levels.For(d)
	m.lastHit = e.Now()
	m.batches = 0
	m.spawnBatch(e)
}

func (m *Switching) Update(e *engine.Engine, dt float64) {
	if e.ActiveCount() > 0 {
		return
	}
	m.batches++
	e.AddScore(clearBonus)
	vp := e.Viewport()
	e.AddText(core.V(vp.X/2, vp.Y/2-50), "CLEAR! +200", core.ColorCyan)
	m.spawnBatch(e)
}

func (m *Switching) spawnBatch(e *engine.Engine) {
	r := m.level.Radius
	style := e.TargetStyle()
	style.Color = core.ColorFlame
	now := e.Now()

	for _, p := range spacedPoints(e, m.level.Count, r+switchMargin, r*switchSpacing, switchAttempts) {
		if m.level.Moving {
			e.AddTarget(target.NewDriftingSphere(p, r, style, e.Viewport(), e.Rand(), now))
		} else {
			e.AddTarget(target.NewSphere(p, r, style, now))
		}
	}
}

// Batches returns how many batches were cleared this run.
func (m *Switching) Batches() int { return m.batches }

// OnHit scores 100 plus a bonus for the time since the previous hit (or
// since the run started, for the first hit).
func (m *Switching) OnHit(e *engine.Engine, h engine.Hit) {
	now := e.Now()
	switchMs := float64(now.Sub(m.lastHit)) / float64(time.Millisecond)
	m.lastHit = now

	bonus, label := lookupBonus(switchReaction, switchMs)
	points := 100 + bonus

	e.AddScore(points)
	showPoints(e, h.Target.Position(), points)
	if label != "" {
		showBonus(e, h.Target.Position(), label)
	}
}

func (m *Switching) OnMiss(e *engine.Engine) { showMiss(e) }
