package engine

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/traingun/internal/core"
	"github.com/vovakirdan/traingun/internal/effects"
	"github.com/vovakirdan/traingun/internal/target"
)

// The methods below are the surface mode handlers work through.

// Now returns the engine clock's current time.
func (e *Engine) Now() time.Time { return e.clock() }

// Rand returns the gameplay random source.
func (e *Engine) Rand() *rand.Rand { return e.rng }

// Viewport returns the play area size in virtual pixels.
func (e *Engine) Viewport() core.Vec2 { return e.viewport }

// Cursor returns the crosshair position.
func (e *Engine) Cursor() core.Vec2 { return e.cursor }

// Targets returns the live target list in spawn order.
func (e *Engine) Targets() []target.Target { return e.targets }

// AddTarget appends a target to the live list.
func (e *Engine) AddTarget(t target.Target) {
	e.targets = append(e.targets, t)
}

// ActiveCount returns how many targets are still active.
func (e *Engine) ActiveCount() int {
	n := 0
	for _, t := range e.targets {
		if t.State() == target.StateActive {
			n++
		}
	}
	return n
}

// TargetStyle returns the target look from the customization record.
func (e *Engine) TargetStyle() target.Style {
	return target.Style{
		Color:   core.Color(e.custom.TargetColor),
		Opacity: e.custom.TargetOpacity,
	}
}

// Score returns the current score.
func (e *Engine) Score() int { return e.score }

// AddScore adds points.
func (e *Engine) AddScore(points int) { e.score += points }

// SetScore overwrites the score.
func (e *Engine) SetScore(score int) { e.score = score }

// Combo returns the current combo.
func (e *Engine) Combo() int { return e.combo }

// SetCombo overwrites the combo, raising the max combo if needed.
func (e *Engine) SetCombo(combo int) {
	e.combo = combo
	if combo > e.maxCombo {
		e.maxCombo = combo
	}
}

// Hits returns the number of kills so far.
func (e *Engine) Hits() int { return e.hits }

// Misses returns the number of misses so far.
func (e *Engine) Misses() int { return e.misses }

// MaxCombo returns the best combo of the run.
func (e *Engine) MaxCombo() int { return e.maxCombo }

// ShotsFired returns how many shots were fired.
func (e *Engine) ShotsFired() int { return e.shotsFired }

// Headshots returns the headshot count.
func (e *Engine) Headshots() int { return e.headshots }

// AddMiss counts a miss that did not come from a shot, such as an expired
// target, and breaks the combo.
func (e *Engine) AddMiss() {
	e.misses++
	e.combo = 0
}

// CountTrackingFrame records one frame of on-target measurement.
func (e *Engine) CountTrackingFrame(on bool) {
	e.trackingFrames++
	if on {
		e.trackingHitFrames++
	}
}

// AddText floats a label with the default lifetime.
func (e *Engine) AddText(at core.Vec2, text string, col core.Color) {
	e.texts.Add(at, text, col, effects.DefaultTextSeconds)
}

// AddTextFor floats a label for the given number of seconds.
func (e *Engine) AddTextFor(at core.Vec2, text string, col core.Color, seconds float64) {
	e.texts.Add(at, text, col, seconds)
}

// Texts returns the floating text layer.
func (e *Engine) Texts() *effects.Texts { return &e.texts }

// Particles returns the particle layer.
func (e *Engine) Particles() *effects.Particles { return e.particles }

// ShotHistory returns the shots recorded so far.
func (e *Engine) ShotHistory() []core.ShotRecord { return e.shots }
