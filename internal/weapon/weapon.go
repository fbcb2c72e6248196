// Package weapon implements the fire-rate, ammo, recoil and scope model.
//
// A Weapon is a small state machine (ready, cooling down, reloading) layered
// on continuous ammo and recoil state. It is pure simulation: the engine
// advances it with Update and asks it to Fire at a timestamp. Reloading is
// driven by Update as well, so a paused engine also pauses the reload.
package weapon

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/vovakirdan/traingun/internal/core"
)

// Recoil parameters. Vertical kicks the aim up each shot, Horizontal is the
// width of the uniform sideways jitter, Recovery is the per-frame decay rate
// at 60 fps and Max bounds the offset length (0 disables the bound).
type Recoil struct {
	Vertical   float64 `yaml:"vertical"`
	Horizontal float64 `yaml:"horizontal"`
	Recovery   float64 `yaml:"recovery"`
	Max        float64 `yaml:"max"`
}

// Spec is the static description of a weapon.
type Spec struct {
	Name         string  `yaml:"name"`
	Type         string  `yaml:"type"`
	Damage       int     `yaml:"damage"`
	FireInterval int     `yaml:"fire_interval_ms"`
	MagazineSize int     `yaml:"magazine_size"`
	ReloadTime   int     `yaml:"reload_time_ms"`
	Recoil       Recoil  `yaml:"recoil"`
	CanScope     bool    `yaml:"can_scope"`
	Zoom         float64 `yaml:"zoom"`
	ScopeSpeed   float64 `yaml:"scope_speed"`
}

// State is the discrete firing state.
type State int

const (
	StateReady State = iota
	StateCoolingDown
	StateReloading
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StateCoolingDown:
		return "cooling-down"
	case StateReloading:
		return "reloading"
	default:
		return "unknown"
	}
}

// recoilSnap is the offset component magnitude below which decay snaps to zero.
const recoilSnap = 0.1

// FireResult reports the outcome of a trigger pull.
type FireResult struct {
	Fired bool
	Kick  core.Vec2 // recoil added by this shot, zero when not fired
}

// Weapon is a live weapon instance. Instances are never shared: switching
// weapons builds a fresh one from a Spec.
type Weapon struct {
	spec Spec
	rng  *rand.Rand

	ammo       int
	reloading  bool
	reloadLeft float64 // seconds until the magazine is refilled
	lastFire   time.Time
	hasFired   bool
	recoil     core.Vec2
	scoped     bool
	scopeBlend float64
}

// New creates a weapon with a full magazine. rng drives horizontal recoil.
func New(spec Spec, rng *rand.Rand) *Weapon {
	if spec.MagazineSize <= 0 {
		spec.MagazineSize = 30
	}
	if spec.Zoom <= 0 {
		spec.Zoom = 1
	}
	if spec.ScopeSpeed <= 0 {
		spec.ScopeSpeed = 0.2
	}
	if spec.Recoil.Recovery <= 0 {
		spec.Recoil.Recovery = 0.1
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Weapon{
		spec: spec,
		rng:  rng,
		ammo: spec.MagazineSize,
	}
}

// Spec returns the weapon's static description.
func (w *Weapon) Spec() Spec { return w.spec }

// Name returns the display name.
func (w *Weapon) Name() string { return w.spec.Name }

// Damage returns damage per shot.
func (w *Weapon) Damage() int { return w.spec.Damage }

// Ammo returns the rounds left in the magazine.
func (w *Weapon) Ammo() int { return w.ammo }

// MagazineSize returns the magazine capacity.
func (w *Weapon) MagazineSize() int { return w.spec.MagazineSize }

// IsReloading reports whether a reload is in progress.
func (w *Weapon) IsReloading() bool { return w.reloading }

// IsScoped reports the scope toggle target.
func (w *Weapon) IsScoped() bool { return w.scoped }

// ScopeBlend returns the scope transition progress in [0, 1].
func (w *Weapon) ScopeBlend() float64 { return w.scopeBlend }

// Offset returns the current recoil vector added to the aim point.
func (w *Weapon) Offset() core.Vec2 { return w.recoil }

// LastFire returns the time of the last successful shot.
func (w *Weapon) LastFire() (time.Time, bool) { return w.lastFire, w.hasFired }

// State returns the discrete state at time now.
func (w *Weapon) State(now time.Time) State {
	if w.reloading {
		return StateReloading
	}
	if w.hasFired && now.Sub(w.lastFire) < w.interval() {
		return StateCoolingDown
	}
	return StateReady
}

func (w *Weapon) interval() time.Duration {
	return time.Duration(w.spec.FireInterval) * time.Millisecond
}

// Fire attempts a shot at time now. It fails while reloading, inside the
// fire interval, or with an empty magazine (which starts a reload).
// A successful shot spends one round and kicks the recoil offset.
func (w *Weapon) Fire(now time.Time) FireResult {
	if w.reloading {
		return FireResult{}
	}
	if w.ammo <= 0 {
		w.Reload()
		return FireResult{}
	}
	if w.hasFired && now.Sub(w.lastFire) < w.interval() {
		return FireResult{}
	}

	w.ammo--
	w.lastFire = now
	w.hasFired = true

	kick := core.Vec2{
		X: (w.rng.Float64() - 0.5) * w.spec.Recoil.Horizontal,
		Y: -w.spec.Recoil.Vertical, // up is negative Y
	}
	w.recoil = w.recoil.Add(kick)

	if limit := w.spec.Recoil.Max; limit > 0 {
		if l := w.recoil.Len(); l > limit {
			w.recoil = w.recoil.Scale(limit / l)
		}
	}

	return FireResult{Fired: true, Kick: kick}
}

// Reload starts refilling the magazine. No-op while already reloading or
// when the magazine is full.
func (w *Weapon) Reload() {
	if w.reloading || w.ammo == w.spec.MagazineSize {
		return
	}
	w.reloading = true
	w.reloadLeft = float64(w.spec.ReloadTime) / 1000
	if w.reloadLeft <= 0 {
		w.finishReload()
	}
}

// ReloadProgress returns how far the current reload is, in [0, 1].
func (w *Weapon) ReloadProgress() float64 {
	if !w.reloading || w.spec.ReloadTime <= 0 {
		return 0
	}
	total := float64(w.spec.ReloadTime) / 1000
	return core.ClampF(1-w.reloadLeft/total, 0, 1)
}

func (w *Weapon) finishReload() {
	w.ammo = w.spec.MagazineSize
	w.reloading = false
	w.reloadLeft = 0
}

// ToggleScope flips the scope target on scope-capable weapons.
func (w *Weapon) ToggleScope() {
	if w.spec.CanScope {
		w.scoped = !w.scoped
	}
}

// ZoomFactor returns the current render magnification.
func (w *Weapon) ZoomFactor() float64 {
	return 1 + (w.spec.Zoom-1)*w.scopeBlend
}

// Update advances reload, recoil recovery and the scope blend by dt seconds.
func (w *Weapon) Update(dt float64) {
	if w.reloading {
		w.reloadLeft -= dt
		if w.reloadLeft <= 0 {
			w.finishReload()
		}
	}

	// Normalized to 60 fps so recovery reads as "per frame".
	factor := math.Max(0, 1-w.spec.Recoil.Recovery*dt*60)
	w.recoil = w.recoil.Scale(factor)
	if math.Abs(w.recoil.X) < recoilSnap {
		w.recoil.X = 0
	}
	if math.Abs(w.recoil.Y) < recoilSnap {
		w.recoil.Y = 0
	}

	target := 0.0
	if w.scoped {
		target = 1
	}
	w.scopeBlend += (target - w.scopeBlend) * math.Min(1, w.spec.ScopeSpeed*dt*60)
	w.scopeBlend = core.ClampF(w.scopeBlend, 0, 1)
}

// AmmoDisplay formats the HUD ammo counter.
func (w *Weapon) AmmoDisplay() string {
	if w.reloading {
		return "RELOADING..."
	}
	return fmt.Sprintf("%d/%d", w.ammo, w.spec.MagazineSize)
}
