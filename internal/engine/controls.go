package engine

import (
	"fmt"

	"github.com/vovakirdan/traingun/internal/core"
	"github.com/vovakirdan/traingun/internal/weapon"
)

// sensTextSeconds is how long the sensitivity change notice stays up.
const sensTextSeconds = 1.5

// MovePointer applies a relative pointer movement in device units, scaled
// by the live cursor scale and clamped to the viewport.
func (e *Engine) MovePointer(dx, dy float64) {
	if e.state != StateRunning {
		return
	}
	step := core.V(dx, dy).Scale(e.sens.CursorScale)
	e.cursor = e.clampToViewport(e.cursor.Add(step))
}

// WarpCursor places the crosshair at an absolute position. Used when
// relative pointer input is unavailable.
func (e *Engine) WarpCursor(p core.Vec2) {
	if e.state != StateRunning {
		return
	}
	e.cursor = e.clampToViewport(p)
}

func (e *Engine) clampToViewport(p core.Vec2) core.Vec2 {
	return core.V(
		core.ClampF(p.X, 0, e.viewport.X),
		core.ClampF(p.Y, 0, e.viewport.Y),
	)
}

// Reload starts a manual reload.
func (e *Engine) Reload() {
	if e.state != StateRunning {
		return
	}
	e.weapon.Reload()
	e.publishHUD()
}

// ToggleScope flips the scope on scope-capable weapons.
func (e *Engine) ToggleScope() {
	if e.state != StateRunning {
		return
	}
	e.weapon.ToggleScope()
	e.publishHUD()
}

// SwitchWeapon equips the preset in the given 1-based slot. Selecting the
// equipped weapon does nothing; any other choice starts with a full magazine.
func (e *Engine) SwitchWeapon(slot int) bool {
	if e.state != StateRunning {
		return false
	}
	key, ok := weapon.Slot(slot)
	if !ok {
		return false
	}
	spec, ok := e.weapons.Preset(key)
	if !ok || spec.Name == e.weapon.Name() {
		return false
	}

	e.weapon = weapon.New(spec, e.rng)
	e.AddText(e.cursor.Sub(core.V(0, 100)), "Switched to "+spec.Name, core.ColorWhite)
	e.log.Debug("weapon switched", "weapon", spec.Name)
	e.publishHUD()
	return true
}

// AdjustSensitivity steps the sensitivity by one hot-key increment in
// direction (+1 or -1), persists it and shows the new value.
func (e *Engine) AdjustSensitivity(direction int) bool {
	if e.state != StateRunning {
		return false
	}
	next, changed := e.sens.Adjust(direction, e.viewport.X)
	if !changed {
		return false
	}
	e.sens = next

	if e.settings != nil {
		if err := e.settings.SaveSensitivity(next); err != nil {
			e.log.Error("failed to save sensitivity", "err", err)
		}
	}

	e.AddTextFor(
		core.V(e.viewport.X/2, e.viewport.Y/2+100),
		fmt.Sprintf("Sensitivity: %.2f (%vcm)", next.Sensitivity, next.Cm360),
		core.ColorCyan,
		sensTextSeconds,
	)
	e.log.Info("sensitivity adjusted", "sensitivity", next.Sensitivity, "cm360", next.Cm360)
	e.publishHUD()
	return true
}
