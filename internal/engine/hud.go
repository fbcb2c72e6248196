package engine

import (
	"math"

	"github.com/vovakirdan/traingun/internal/core"
)

// HUD is the snapshot published to the platform after every state change
// and every running frame.
type HUD struct {
	State      State
	Mode       string
	Difficulty string
	Score      int
	Remaining  int // whole seconds, rounded up
	Accuracy   int // percent
	Combo      int
	Ammo       string
	Weapon     string
	Scoped     bool
	Reload     float64 // 0..1 while reloading
	Countdown  int     // whole seconds left in the countdown
	Sens       float64
	Cm360      float64
	Captured   bool
}

// HUD returns the current snapshot.
func (e *Engine) HUD() HUD {
	countdown := 0
	if left := e.CountdownLeft(e.clock()); left > 0 {
		countdown = int(math.Ceil(left.Seconds()))
	}

	return HUD{
		State:      e.state,
		Mode:       e.Mode(),
		Difficulty: string(e.difficulty),
		Score:      e.score,
		Remaining:  int(math.Ceil(e.Remaining())),
		Accuracy:   int(e.accuracy(0)),
		Combo:      e.combo,
		Ammo:       e.weapon.AmmoDisplay(),
		Weapon:     e.weapon.Name(),
		Scoped:     e.weapon.IsScoped(),
		Reload:     e.weapon.ReloadProgress(),
		Countdown:  countdown,
		Sens:       e.sens.Sensitivity,
		Cm360:      e.sens.Cm360,
		Captured:   e.captured,
	}
}

func (e *Engine) publishHUD() {
	if e.onHUD != nil {
		e.onHUD(e.HUD())
	}
}

// accuracy returns the hit percentage rounded to places decimals. Firing
// modes count hits per shot; the rest count on-target frames. With no data
// it is 100.
func (e *Engine) accuracy(places int) float64 {
	num, den := e.hits, e.shotsFired
	if e.handler != nil && !e.handler.Firing() {
		num, den = e.trackingHitFrames, e.trackingFrames
	}
	if den == 0 {
		return 100
	}
	return core.RoundTo(float64(num)/float64(den)*100, places)
}
