package engine

import (
	"math"

	"github.com/vovakirdan/traingun/internal/core"
	"github.com/vovakirdan/traingun/internal/target"
)

// Screen shake added per shot and per headshot.
const (
	shakeHeavy    = 5
	shakeLight    = 2
	heavyDamage   = 80
	shakeHeadshot = 5
)

// Fire pulls the trigger at the crosshair. It reports whether the weapon
// actually fired; a fired shot is resolved against the first active target
// under the aim point, in spawn order.
func (e *Engine) Fire() bool {
	if e.state != StateRunning || e.handler == nil || !e.handler.Firing() {
		return false
	}

	now := e.clock()
	if !e.weapon.Fire(now).Fired {
		return false
	}

	if e.weapon.Damage() > heavyDamage {
		e.shake.Add(shakeHeavy)
	} else {
		e.shake.Add(shakeLight)
	}
	e.shotsFired++

	aim := e.cursor.Add(e.weapon.Offset())
	hit := false

	for _, t := range e.targets {
		if t.State() != target.StateActive {
			continue
		}

		if z, ok := t.(target.Zoned); ok {
			zone := z.HitZone(aim)
			if zone == target.ZoneNone {
				continue
			}
			hit = true
			e.resolveZoned(z, zone, aim, now.Sub(t.SpawnTime()).Seconds()*1000)
			break
		}

		if t.IsHit(aim) {
			hit = true
			t.SetState(target.StateHit)
			reaction := now.Sub(t.SpawnTime()).Seconds() * 1000
			e.reactions = append(e.reactions, reaction)
			e.handler.OnHit(e, Hit{Target: t, ReactionMs: reaction})
			e.particles.Emit(t.Position(), t.Color(), 20)
			e.registerKill()
			break
		}
	}

	if !hit {
		e.misses++
		e.combo = 0
		e.handler.OnMiss(e)
	}

	e.recordShot(aim, hit)
	return true
}

func (e *Engine) resolveZoned(z target.Zoned, zone target.Zone, aim core.Vec2, reaction float64) {
	res := z.TakeDamage(zone)
	e.reactions = append(e.reactions, reaction)

	if res.Headshot {
		e.headshots++
		e.particles.Emit(aim, core.ColorBlood, 30)
		if h, ok := z.(*target.Humanoid); ok {
			e.AddText(core.V(h.Position().X, h.HeadCenter().Y-30), "HEADSHOT!", core.ColorBlood)
		}
		e.shake.Add(shakeHeadshot)
	} else {
		e.particles.Emit(aim, core.ColorBlue, 10)
	}

	if res.Killed {
		e.registerKill()
		center := z.Position()
		if h, ok := z.(*target.Humanoid); ok {
			center.Y -= h.TotalHeight() / 2
		}
		e.particles.Emit(center, z.Color(), 25)
	}

	e.handler.OnHit(e, Hit{Target: z, ReactionMs: reaction, Zone: zone, Damage: res})
}

func (e *Engine) registerKill() {
	e.hits++
	e.combo++
	if e.combo > e.maxCombo {
		e.maxCombo = e.combo
	}
}

// recordShot appends a normalized shot record. The target fields point at
// the nearest active target, whether or not it was hit.
func (e *Engine) recordShot(aim core.Vec2, hit bool) {
	tx, ty := 0.5, 0.5
	best := math.Inf(1)
	for _, t := range e.targets {
		if t.State() != target.StateActive {
			continue
		}
		if d := t.Position().DistSq(aim); d < best {
			best = d
			tx = t.Position().X / e.viewport.X
			ty = t.Position().Y / e.viewport.Y
		}
	}

	e.shots = append(e.shots, core.ShotRecord{
		X:   aim.X / e.viewport.X,
		Y:   aim.Y / e.viewport.Y,
		TX:  tx,
		TY:  ty,
		Hit: hit,
		T:   core.RoundTo(e.elapsed, 3),
	})
}
