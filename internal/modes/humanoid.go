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
	registry.Register(HumanoidID, func(cfg config.ModesConfig) engine.ModeHandler {
		return NewHumanoid(cfg.Humanoid)
	})
}

const (
	humanoidMargin   = 80
	humanoidCooldown = 0.5 // seconds between refills
	headshotPoints   = 300
	bodyKillPoints   = 150
	bodyHitPoints    = 20
)

// Humanoid keeps a number of figures on screen. A headshot kills instantly;
// body shots wear down hit points.
type Humanoid struct {
	levels     config.Levels[config.HumanoidLevel]
	level      config.HumanoidLevel
	spawnTimer float64
	kills      int
}

// NewHumanoid creates a humanoid handler.
func NewHumanoid(levels config.Levels[config.HumanoidLevel]) *Humanoid {
	return &Humanoid{levels: levels}
}

func (m *Humanoid) ID() string    { return HumanoidID }
func (m *Humanoid) Title() string { return "Humanoid" }
func (m *Humanoid) Firing() bool  { return true }

func (m *Humanoid) Duration(d config.Difficulty) float64 {
	return m.levels.For(d).Duration
}

func (m *Humanoid) Init(e *engine.Engine, d config.Difficulty) {
	m.level = m.levels.For(d)
	m.spawnTimer = 0
	m.kills = 0
	for i := 0; i < m.level.MaxOnScreen; i++ {
		m.spawn(e)
	}
}

func (m *Humanoid) Update(e *engine.Engine, dt float64) {
	m.spawnTimer += dt
	if e.ActiveCount() < m.level.MaxOnScreen && m.spawnTimer >= humanoidCooldown {
		m.spawnTimer = 0
		m.spawn(e)
	}
}

// spawn stands a figure somewhere in the lower part of the screen.
func (m *Humanoid) spawn(e *engine.Engine) {
	vp := e.Viewport()
	rng := e.Rand()
	feet := core.V(
		humanoidMargin+rng.Float64()*max(0, vp.X-humanoidMargin*2),
		vp.Y-humanoidMargin-rng.Float64()*vp.Y*0.3,
	)
	e.AddTarget(target.NewHumanoid(feet, m.level.Scale, m.level.BodyHP, e.Now()))
}

// Kills returns how many figures went down this run.
func (m *Humanoid) Kills() int { return m.kills }

func (m *Humanoid) OnHit(e *engine.Engine, h engine.Hit) {
	fig, ok := h.Target.(*target.Humanoid)
	if !ok {
		return
	}
	pos := fig.Position()
	mid := core.V(pos.X, pos.Y-fig.TotalHeight()/2)

	switch {
	case h.Damage.Headshot:
		points := headshotPoints
		head := fig.HeadCenter()
		switch {
		case h.ReactionMs < 200:
			points += 100
			e.AddText(core.V(pos.X+30, head.Y-20), "INSANE!", core.ColorOrange)
		case h.ReactionMs < 400:
			points += 50
		}
		e.AddScore(points)
		e.AddText(core.V(pos.X, head.Y-50), fmt.Sprintf("+%d", points), core.ColorBlood)
		m.kills++

	case h.Damage.Killed:
		e.AddScore(bodyKillPoints)
		e.AddText(mid, fmt.Sprintf("+%d", bodyKillPoints), core.ColorCyan)
		m.kills++

	default:
		e.AddScore(bodyHitPoints)
		label := fmt.Sprintf("+%d (HP: %d/%d)", bodyHitPoints, fig.HP(), fig.MaxHP())
		e.AddText(mid.Add(core.V(20, 0)), label, core.ColorOrange)
	}
}

func (m *Humanoid) OnMiss(e *engine.Engine) { showMiss(e) }
