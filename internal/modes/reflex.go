package modes

import (
	"github.com/vovakirdan/traingun/internal/config"
	"github.com/vovakirdan/traingun/internal/core"
	"github.com/vovakirdan/traingun/internal/engine"
	"github.com/vovakirdan/traingun/internal/registry"
	"github.com/vovakirdan/traingun/internal/target"
)

func init() {
	registry.Register(ReflexID, func(cfg config.ModesConfig) engine.ModeHandler {
		return NewReflex(cfg.Reflex)
	})
}

// Reflex scoring.
const (
	expiryPenalty  = 10
	clutchWindow   = 0.05 // seconds of lifespan left
	clutchBonus    = 30
	reflexMarginPx = 60
)

var reflexReaction = []reactionBonus{
	{150, 80, "INSANE!"},
	{200, 50, "FAST!"},
}

// Reflex flashes one short-lived target at a time. Letting a target expire
// counts as a miss and costs points.
type Reflex struct {
	levels     config.Levels[config.ReflexLevel]
	level      config.ReflexLevel
	spawnTimer float64
	expired    int
}

// NewReflex creates a reflex handler.
func NewReflex(levels config.Levels[config.ReflexLevel]) *Reflex {
	return &Reflex{levels: levels}
}

func (m *Reflex) ID() string    { return ReflexID }
func (m *Reflex) Title() string { return "Reflex" }
func (m *Reflex) Firing() bool  { return true }

func (m *Reflex) Duration(d config.Difficulty) float64 {
	return m.levels.For(d).Duration
}

// Init spawns nothing; the first target appears after one interval.
func (m *Reflex) Init(e *engine.Engine, d config.Difficulty) {
	m.level = m.levels.For(d)
	m.spawnTimer = 0
	m.expired = 0
}

func (m *Reflex) Update(e *engine.Engine, dt float64) {
	m.spawnTimer += dt

	for _, t := range e.Targets() {
		ts, ok := t.(*target.TimedSphere)
		if !ok || !ts.Expired() || ts.State() != target.StateExpired {
			continue
		}
		m.expired++
		e.AddMiss()
		e.SetScore(max(0, e.Score()-expiryPenalty))
		e.AddText(ts.Position().Sub(core.V(0, scoreTextRise)), "MISS", core.ColorRed)
		// Counted once; the sweep drops it this frame.
		ts.SetState(target.StateHit)
	}

	if m.spawnTimer >= m.level.Interval && e.ActiveCount() == 0 {
		m.spawnTimer = 0
		pos := randomPoint(e, m.level.Radius+reflexMarginPx)
		e.AddTarget(target.NewTimedSphere(pos, m.level.Radius, m.level.Lifespan, e.Now()))
	}
}

// Expired returns how many targets ran out this run.
func (m *Reflex) Expired() int { return m.expired }

func (m *Reflex) OnHit(e *engine.Engine, h engine.Hit) {
	bonus, label := lookupBonus(reflexReaction, h.ReactionMs)
	points := 100 + bonus

	if ts, ok := h.Target.(*target.TimedSphere); ok && ts.Lifespan() <= clutchWindow {
		points += clutchBonus
		label = "CLUTCH!"
	}

	e.AddScore(points)
	showPoints(e, h.Target.Position(), points)
	if label != "" {
		showBonus(e, h.Target.Position(), label)
	}
}

func (m *Reflex) OnMiss(e *engine.Engine) { showMiss(e) }
