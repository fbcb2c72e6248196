package target

import (
	"strings"
	"time"

	"github.com/vovakirdan/traingun/internal/core"
)

// Humanoid proportions at scale 1, in virtual pixels.
const (
	headRadius = 14
	bodyWidth  = 22
	bodyHeight = 40
	legHeight  = 30
)

// DefaultHumanoidHP is the hit points of a humanoid unless a mode overrides it.
const DefaultHumanoidHP = 3

// hitFlashSeconds is how long a body hit tints the figure.
const hitFlashSeconds = 0.15

// Humanoid is a standing figure with a circular head zone and a rectangular
// body zone. Its position is the point between its feet.
type Humanoid struct {
	pos        core.Vec2
	scale      float64
	state      State
	spawn      time.Time
	grow       float64
	hp         int
	maxHP      int
	hitFlash   float64
	headR      float64
	bodyW      float64
	bodyH      float64
	legH       float64
	headCenter core.Vec2
}

// NewHumanoid creates a figure standing at feet with the given scale and hit points.
func NewHumanoid(feet core.Vec2, scale float64, hp int, spawn time.Time) *Humanoid {
	if scale <= 0 {
		scale = 1
	}
	if hp <= 0 {
		hp = DefaultHumanoidHP
	}
	h := &Humanoid{
		pos:   feet,
		scale: scale,
		spawn: spawn,
		hp:    hp,
		maxHP: hp,
		headR: headRadius * scale,
		bodyW: bodyWidth * scale,
		bodyH: bodyHeight * scale,
		legH:  legHeight * scale,
	}
	h.headCenter = core.V(feet.X, feet.Y-h.TotalHeight()+h.headR)
	return h
}

func (h *Humanoid) Position() core.Vec2  { return h.pos }
func (h *Humanoid) State() State         { return h.state }
func (h *Humanoid) SetState(st State)    { h.state = st }
func (h *Humanoid) SpawnTime() time.Time { return h.spawn }
func (h *Humanoid) Color() core.Color    { return core.ColorBlue }

// HP returns the remaining hit points.
func (h *Humanoid) HP() int { return h.hp }

// MaxHP returns the starting hit points.
func (h *Humanoid) MaxHP() int { return h.maxHP }

// TotalHeight is head diameter plus torso plus legs.
func (h *Humanoid) TotalHeight() float64 {
	return h.headR*2 + h.bodyH + h.legH
}

// HeadCenter returns the center of the head zone.
func (h *Humanoid) HeadCenter() core.Vec2 { return h.headCenter }

// HeadRadius returns the head zone radius.
func (h *Humanoid) HeadRadius() float64 { return h.headR }

// BodyBox returns the body zone: torso and legs, from the chin to the feet.
func (h *Humanoid) BodyBox() core.Box {
	return core.Box{
		Left:   h.pos.X - h.bodyW/2,
		Top:    h.headCenter.Y + h.headR,
		Right:  h.pos.X + h.bodyW/2,
		Bottom: h.pos.Y,
	}
}

// HitZone resolves p against the head first, then the body.
func (h *Humanoid) HitZone(p core.Vec2) Zone {
	if h.state != StateActive {
		return ZoneNone
	}
	if p.DistSq(h.headCenter) <= h.headR*h.headR {
		return ZoneHead
	}
	if h.BodyBox().Contains(p) {
		return ZoneBody
	}
	return ZoneNone
}

// IsHit reports whether p lands on any zone.
func (h *Humanoid) IsHit(p core.Vec2) bool {
	return h.HitZone(p) != ZoneNone
}

// TakeDamage applies one shot. A head hit kills outright regardless of hit
// points; a body hit costs one point and kills at zero.
func (h *Humanoid) TakeDamage(zone Zone) DamageResult {
	if zone == ZoneHead {
		h.hp = 0
		h.state = StateHit
		return DamageResult{Killed: true, Headshot: true, Damage: h.maxHP}
	}

	h.hp--
	h.hitFlash = hitFlashSeconds
	if h.hp <= 0 {
		h.hp = 0
		h.state = StateHit
		return DamageResult{Killed: true, Damage: 1}
	}
	return DamageResult{Damage: 1}
}

// Update advances the spawn animation and the hit flash.
func (h *Humanoid) Update(dt float64) {
	if h.grow < 1 {
		h.grow = core.ClampF(h.grow+dt*6, 0, 1)
	}
	if h.hitFlash > 0 {
		h.hitFlash -= dt
	}
}

// Draw renders the figure growing up from its feet, with an HP bar once damaged.
func (h *Humanoid) Draw(c *core.Canvas) {
	if h.state != StateActive || h.grow < 0.01 {
		return
	}

	bodyCol, legCol, headCol := core.ColorBlue, core.ColorNavy, core.ColorSkin
	if h.hitFlash > 0 {
		bodyCol, legCol, headCol = core.ColorBlood, core.ColorBlood, core.ColorBlood
	}

	// Grow from the feet: scale every y offset by the spawn progress.
	lift := func(y float64) float64 { return h.pos.Y - (h.pos.Y-y)*h.grow }

	legTop := lift(h.pos.Y - h.legH)
	spread := h.bodyW * 0.3
	c.FillBox(core.Box{Left: h.pos.X - spread, Top: legTop, Right: h.pos.X - spread*0.2, Bottom: h.pos.Y},
		core.Cell{Rune: '▌', Color: legCol})
	c.FillBox(core.Box{Left: h.pos.X + spread*0.2, Top: legTop, Right: h.pos.X + spread, Bottom: h.pos.Y},
		core.Cell{Rune: '▐', Color: legCol})

	bodyTop := lift(h.pos.Y - h.legH - h.bodyH)
	c.FillBox(core.Box{Left: h.pos.X - h.bodyW/2, Top: bodyTop, Right: h.pos.X + h.bodyW/2, Bottom: legTop},
		core.Cell{Rune: '█', Color: bodyCol})
	c.Plot(core.V(h.pos.X-h.bodyW/2-core.CellWidth, bodyTop+6*h.scale), '/', bodyCol)
	c.Plot(core.V(h.pos.X+h.bodyW/2+core.CellWidth, bodyTop+6*h.scale), '\\', bodyCol)

	headCY := lift(h.headCenter.Y)
	c.Disc(core.V(h.pos.X, headCY), h.headR*h.grow, core.Cell{Rune: '●', Color: headCol})

	if h.hp < h.maxHP {
		ratio := float64(h.hp) / float64(h.maxHP)
		col := core.ColorRed
		switch {
		case ratio > 0.5:
			col = core.ColorGreen
		case ratio > 0.25:
			col = core.ColorOrange
		}
		bar := strings.Repeat("■", h.hp) + strings.Repeat("□", h.maxHP-h.hp)
		c.Text(core.V(h.pos.X, headCY-h.headR-core.CellHeight), bar, col)
	}
}
