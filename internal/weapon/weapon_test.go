package weapon

import (
	"math/rand"
	"testing"
	"time"
)

func newTestWeapon(key string) *Weapon {
	return New(DefaultPresets()[key], rand.New(rand.NewSource(42)))
}

func TestFireDecrementsAmmo(t *testing.T) {
	for _, key := range PresetOrder {
		t.Run(key, func(t *testing.T) {
			w := newTestWeapon(key)
			before := w.Ammo()
			res := w.Fire(time.Unix(100, 0))
			if !res.Fired {
				t.Fatalf("Fire() on fresh %s did not fire", key)
			}
			if w.Ammo() != before-1 {
				t.Errorf("Ammo() = %d, expected %d", w.Ammo(), before-1)
			}
		})
	}
}

func TestFireInterval(t *testing.T) {
	w := newTestWeapon(Vandal)
	start := time.Unix(100, 0)

	if !w.Fire(start).Fired {
		t.Fatal("First shot should fire")
	}
	if w.Fire(start.Add(50 * time.Millisecond)).Fired {
		t.Error("Shot inside the fire interval should not fire")
	}
	if w.State(start.Add(50*time.Millisecond)) != StateCoolingDown {
		t.Errorf("State() = %v, expected cooling-down", w.State(start.Add(50*time.Millisecond)))
	}
	if !w.Fire(start.Add(100 * time.Millisecond)).Fired {
		t.Error("Shot after the fire interval should fire")
	}
}

func TestRecoilClamped(t *testing.T) {
	for _, key := range PresetOrder {
		t.Run(key, func(t *testing.T) {
			w := newTestWeapon(key)
			spec := w.Spec()
			now := time.Unix(100, 0)
			for i := 0; i < spec.MagazineSize && i < 50; i++ {
				now = now.Add(time.Duration(spec.FireInterval+1) * time.Millisecond)
				w.Fire(now)
				if spec.Recoil.Max > 0 && w.Offset().Len() > spec.Recoil.Max+1e-9 {
					t.Fatalf("shot %d: |offset| = %v exceeds max %v", i, w.Offset().Len(), spec.Recoil.Max)
				}
			}
		})
	}
}

func TestRecoilKicksUp(t *testing.T) {
	w := newTestWeapon(Sheriff)
	res := w.Fire(time.Unix(100, 0))

	if res.Kick.Y != -8 {
		t.Errorf("Kick.Y = %v, expected -8", res.Kick.Y)
	}
	if res.Kick.X < -0.25 || res.Kick.X > 0.25 {
		t.Errorf("Kick.X = %v, expected within [-0.25, 0.25]", res.Kick.X)
	}
}

func TestEmptyMagazineStartsReload(t *testing.T) {
	w := newTestWeapon(Sheriff)
	now := time.Unix(100, 0)

	for i := 0; i < 6; i++ {
		now = now.Add(300 * time.Millisecond)
		if !w.Fire(now).Fired {
			t.Fatalf("shot %d should fire", i)
		}
	}
	if w.Ammo() != 0 {
		t.Fatalf("Ammo() = %d, expected 0", w.Ammo())
	}

	now = now.Add(300 * time.Millisecond)
	if w.Fire(now).Fired {
		t.Error("Fire() on empty magazine should not fire")
	}
	if !w.IsReloading() {
		t.Fatal("Fire() on empty magazine should start a reload")
	}
	if w.AmmoDisplay() != "RELOADING..." {
		t.Errorf("AmmoDisplay() = %q, expected RELOADING...", w.AmmoDisplay())
	}
	if w.Fire(now.Add(time.Second)).Fired {
		t.Error("Fire() while reloading should not fire")
	}

	w.Update(1.0)
	if !w.IsReloading() {
		t.Error("Reload finished too early")
	}
	w.Update(1.0)
	if w.IsReloading() {
		t.Error("Reload should be finished after 2s of updates")
	}
	if w.Ammo() != 6 {
		t.Errorf("Ammo() = %d, expected 6", w.Ammo())
	}
	if w.AmmoDisplay() != "6/6" {
		t.Errorf("AmmoDisplay() = %q, expected 6/6", w.AmmoDisplay())
	}
}

func TestReloadNoopWhenFull(t *testing.T) {
	w := newTestWeapon(Vandal)
	w.Reload()
	if w.IsReloading() {
		t.Error("Reload() with full magazine should be a no-op")
	}
}

func TestReloadWithoutUpdatesStays(t *testing.T) {
	w := newTestWeapon(Vandal)
	w.Fire(time.Unix(100, 0))
	w.Reload()

	// No frames advance the reload, as when the engine is paused.
	if !w.IsReloading() || w.Ammo() != 24 {
		t.Errorf("reload state = %v/%d, expected true/24", w.IsReloading(), w.Ammo())
	}
}

func TestRecoilDecaysToZero(t *testing.T) {
	w := newTestWeapon(Vandal)
	w.Fire(time.Unix(100, 0))
	if w.Offset().Len() == 0 {
		t.Fatal("Fire() should add recoil")
	}

	for i := 0; i < 300; i++ {
		w.Update(1.0 / 60)
	}
	if w.Offset().X != 0 || w.Offset().Y != 0 {
		t.Errorf("Offset() = %+v, expected exactly zero", w.Offset())
	}
}

func TestScopeBlend(t *testing.T) {
	w := newTestWeapon(Operator)
	w.ToggleScope()
	if !w.IsScoped() {
		t.Fatal("Operator should scope")
	}

	w.Update(1.0 / 60)
	if w.ScopeBlend() <= 0 || w.ScopeBlend() >= 1 {
		t.Errorf("ScopeBlend() after one frame = %v, expected in (0, 1)", w.ScopeBlend())
	}
	for i := 0; i < 200; i++ {
		w.Update(1.0 / 60)
	}
	if w.ZoomFactor() < 2.49 {
		t.Errorf("ZoomFactor() = %v, expected ~2.5", w.ZoomFactor())
	}

	s := newTestWeapon(Sheriff)
	s.ToggleScope()
	if s.IsScoped() {
		t.Error("Sheriff cannot scope")
	}
}

func TestStandardFiresFreely(t *testing.T) {
	w := newTestWeapon(Standard)
	now := time.Unix(100, 0)
	for i := 0; i < 10; i++ {
		if !w.Fire(now).Fired {
			t.Fatalf("Standard shot %d should fire", i)
		}
	}
	if w.Offset().Len() != 0 {
		t.Errorf("Standard should have no recoil, got %+v", w.Offset())
	}
}

func TestSlot(t *testing.T) {
	tests := []struct {
		n        int
		expected string
		ok       bool
	}{
		{1, Standard, true},
		{2, Vandal, true},
		{4, Operator, true},
		{0, "", false},
		{5, "", false},
	}

	for _, tc := range tests {
		got, ok := Slot(tc.n)
		if got != tc.expected || ok != tc.ok {
			t.Errorf("Slot(%d) = %q, %v, expected %q, %v", tc.n, got, ok, tc.expected, tc.ok)
		}
	}
}
