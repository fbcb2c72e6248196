package target

import (
	"math/rand"
	"testing"
	"time"

	"github.com/vovakirdan/traingun/internal/core"
)

var epoch = time.Unix(1000, 0)

func TestSphereIsHit(t *testing.T) {
	s := NewSphere(core.V(100, 100), 25, DefaultStyle, epoch)

	tests := []struct {
		p        core.Vec2
		expected bool
	}{
		{core.V(100, 100), true},
		{core.V(125, 100), true},  // on the edge
		{core.V(100, 126), false}, // just outside
		{core.V(118, 118), false}, // corner of the bounding box
		{core.V(117, 117), true},
	}

	for _, tc := range tests {
		if got := s.IsHit(tc.p); got != tc.expected {
			t.Errorf("IsHit(%v) = %v, expected %v", tc.p, got, tc.expected)
		}
	}

	s.SetState(StateHit)
	if s.IsHit(core.V(100, 100)) {
		t.Error("IsHit() on a non-active sphere should be false")
	}
}

func TestSphereDefaults(t *testing.T) {
	s := NewSphere(core.V(0, 0), 10, Style{}, epoch)
	if s.Color() != core.ColorRed {
		t.Errorf("Color() = %q, expected %q", s.Color(), core.ColorRed)
	}
	if s.State() != StateActive {
		t.Errorf("State() = %v, expected active", s.State())
	}
	if !s.SpawnTime().Equal(epoch) {
		t.Errorf("SpawnTime() = %v, expected %v", s.SpawnTime(), epoch)
	}
}

func TestTimedSphereExpires(t *testing.T) {
	ts := NewTimedSphere(core.V(100, 100), 20, 0.5, epoch)
	ts.Update(0.6)

	if ts.State() != StateExpired {
		t.Errorf("State() = %v, expected expired", ts.State())
	}
	if !ts.Expired() {
		t.Error("Expired() should be true after the lifespan runs out")
	}
	if ts.Color() != core.ColorRed {
		t.Errorf("Color() = %q, expected urgent red", ts.Color())
	}
}

func TestTimedSphereStaysActive(t *testing.T) {
	ts := NewTimedSphere(core.V(100, 100), 20, 1.5, epoch)
	ts.Update(0.5)

	if ts.State() != StateActive {
		t.Errorf("State() = %v, expected active", ts.State())
	}
	if ts.Color() != core.ColorOrange {
		t.Errorf("Color() = %q, expected orange", ts.Color())
	}
	ts.Update(0.5)
	if ts.Color() != core.ColorEmber {
		t.Errorf("Color() at 0.5s left = %q, expected ember", ts.Color())
	}
}

func TestTimedSphereHitIsNotExpiry(t *testing.T) {
	ts := NewTimedSphere(core.V(100, 100), 20, 0.5, epoch)
	ts.SetState(StateHit)
	ts.Update(1)

	if ts.Expired() {
		t.Error("A hit target should not report expiry")
	}
	if ts.State() != StateHit {
		t.Errorf("State() = %v, expected hit", ts.State())
	}
}

func TestMovingSphereStaysInBounds(t *testing.T) {
	viewport := core.V(640, 480)
	m := NewMovingSphere(core.V(320, 240), 30, 1.3, viewport, rand.New(rand.NewSource(7)), epoch)
	margin := 30.0 + trackMargin

	for i := 0; i < 2000; i++ {
		m.Update(1.0 / 60)
		p := m.Position()
		if p.X < margin || p.X > viewport.X-margin || p.Y < margin || p.Y > viewport.Y-margin {
			t.Fatalf("frame %d: position %v outside margin %v", i, p, margin)
		}
	}
}

func TestMovingSphereDeterministic(t *testing.T) {
	viewport := core.V(1280, 720)
	a := NewMovingSphere(core.V(640, 360), 30, 0.8, viewport, rand.New(rand.NewSource(3)), epoch)
	b := NewMovingSphere(core.V(640, 360), 30, 0.8, viewport, rand.New(rand.NewSource(3)), epoch)

	for i := 0; i < 100; i++ {
		a.Update(0.016)
		b.Update(0.016)
	}
	if a.Position() != b.Position() {
		t.Errorf("Same seed diverged: %v vs %v", a.Position(), b.Position())
	}
}

func TestMovingSphereTracking(t *testing.T) {
	m := NewMovingSphere(core.V(320, 240), 30, 1, core.V(640, 480), rand.New(rand.NewSource(1)), epoch)

	m.Track(true, 0.5)
	m.Track(true, 0.75)
	if !m.IsTracked() {
		t.Error("IsTracked() should be true")
	}
	if m.TrackedSeconds() != 1.25 {
		t.Errorf("TrackedSeconds() = %v, expected 1.25", m.TrackedSeconds())
	}

	m.Track(false, 0.1)
	if m.IsTracked() || m.TrackedSeconds() != 0 {
		t.Errorf("Losing the target should reset, got %v/%v", m.IsTracked(), m.TrackedSeconds())
	}
}

func TestDriftingSphereBounces(t *testing.T) {
	viewport := core.V(400, 300)
	d := NewDriftingSphere(core.V(200, 150), 18, DefaultStyle, viewport, rand.New(rand.NewSource(11)), epoch)
	margin := 18.0 + trackMargin

	v := d.Velocity()
	if v.X < -30 || v.X > 30 || v.Y < -30 || v.Y > 30 {
		t.Fatalf("Velocity() = %v, expected each axis within [-30, 30]", v)
	}

	for i := 0; i < 6000; i++ {
		d.Update(1.0 / 60)
		p := d.Position()
		if p.X < margin || p.X > viewport.X-margin || p.Y < margin || p.Y > viewport.Y-margin {
			t.Fatalf("frame %d: position %v outside margin", i, p)
		}
	}
}

func TestHumanoidGeometry(t *testing.T) {
	h := NewHumanoid(core.V(200, 400), 1, 3, epoch)

	if h.TotalHeight() != 98 {
		t.Errorf("TotalHeight() = %v, expected 98", h.TotalHeight())
	}
	if h.HeadCenter() != core.V(200, 316) {
		t.Errorf("HeadCenter() = %v, expected (200, 316)", h.HeadCenter())
	}

	tests := []struct {
		p        core.Vec2
		expected Zone
	}{
		{core.V(200, 316), ZoneHead},
		{core.V(213, 316), ZoneHead},
		{core.V(200, 360), ZoneBody},
		{core.V(211, 400), ZoneBody}, // bottom-right corner, inclusive
		{core.V(212, 360), ZoneNone},
		{core.V(200, 401), ZoneNone},
		{core.V(220, 316), ZoneNone},
	}

	for _, tc := range tests {
		if got := h.HitZone(tc.p); got != tc.expected {
			t.Errorf("HitZone(%v) = %q, expected %q", tc.p, got, tc.expected)
		}
	}
}

func TestHumanoidScaled(t *testing.T) {
	h := NewHumanoid(core.V(200, 400), 0.5, 3, epoch)
	if h.HeadRadius() != 7 {
		t.Errorf("HeadRadius() = %v, expected 7", h.HeadRadius())
	}
	if h.TotalHeight() != 49 {
		t.Errorf("TotalHeight() = %v, expected 49", h.TotalHeight())
	}
}

func TestHumanoidHeadshotAlwaysKills(t *testing.T) {
	h := NewHumanoid(core.V(200, 400), 1, 3, epoch)
	res := h.TakeDamage(ZoneHead)

	if !res.Killed || !res.Headshot {
		t.Errorf("TakeDamage(head) = %+v, expected killed headshot", res)
	}
	if h.HP() != 0 {
		t.Errorf("HP() = %d, expected 0", h.HP())
	}
	if h.State() != StateHit {
		t.Errorf("State() = %v, expected hit", h.State())
	}
}

func TestHumanoidBodyShots(t *testing.T) {
	h := NewHumanoid(core.V(200, 400), 1, 3, epoch)
	expected := []bool{false, false, true}

	for i, want := range expected {
		res := h.TakeDamage(ZoneBody)
		if res.Killed != want {
			t.Errorf("body shot %d: Killed = %v, expected %v", i+1, res.Killed, want)
		}
		if res.Headshot {
			t.Errorf("body shot %d reported a headshot", i+1)
		}
		if res.Damage != 1 {
			t.Errorf("body shot %d: Damage = %d, expected 1", i+1, res.Damage)
		}
	}
	if h.HitZone(core.V(200, 360)) != ZoneNone {
		t.Error("A dead humanoid should not resolve zones")
	}
}

func TestDrawDoesNotPanic(t *testing.T) {
	screen := core.NewScreen(80, 24)
	canvas := core.NewCanvas(screen)
	rng := rand.New(rand.NewSource(5))
	w, h := canvas.Size()
	vp := core.V(w, h)

	targets := []Target{
		NewSphere(core.V(100, 100), 25, DefaultStyle, epoch),
		NewTimedSphere(core.V(200, 200), 20, 1, epoch),
		NewMovingSphere(core.V(320, 192), 30, 1, vp, rng, epoch),
		NewDriftingSphere(core.V(500, 100), 18, DefaultStyle, vp, rng, epoch),
		NewHumanoid(core.V(600, 350), 1, 3, epoch),
		NewSphere(core.V(-50, -50), 40, DefaultStyle, epoch), // off-screen
	}

	for _, tg := range targets {
		tg.Update(0.2)
		tg.Draw(canvas)
	}
	if screen.Get(100/core.CellWidth, 100/core.CellHeight) == ' ' {
		t.Error("Sphere should draw at its center cell")
	}
}
