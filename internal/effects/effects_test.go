package effects

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/traingun/internal/core"
)

func TestEmitDefaults(t *testing.T) {
	ps := NewParticles(rand.New(rand.NewSource(1)))
	ps.Emit(core.V(100, 100), core.ColorCyan, 0)

	if ps.Len() != DefaultBurst {
		t.Fatalf("Len() = %d, expected %d", ps.Len(), DefaultBurst)
	}
	for i, p := range ps.Items() {
		speed := p.Vel.Len()
		if speed < 100-1e-9 || speed > 300+1e-9 {
			t.Errorf("particle %d speed = %v, expected in [100, 300]", i, speed)
		}
		if p.Life < 0.3 || p.Life > 0.8 {
			t.Errorf("particle %d life = %v, expected in [0.3, 0.8]", i, p.Life)
		}
	}
}

func TestParticlesBurnOut(t *testing.T) {
	ps := NewParticles(rand.New(rand.NewSource(2)))
	ps.Emit(core.V(0, 0), core.ColorRed, 30)

	ps.Update(0.1)
	if ps.Len() != 30 {
		t.Errorf("Len() after 0.1s = %d, expected 30", ps.Len())
	}
	for i := 0; i < 10; i++ {
		ps.Update(0.1)
	}
	if ps.Len() != 0 {
		t.Errorf("Len() after 1.1s = %d, expected 0", ps.Len())
	}
}

func TestParticlesDamp(t *testing.T) {
	ps := NewParticles(rand.New(rand.NewSource(3)))
	ps.Emit(core.V(0, 0), core.ColorRed, 1)
	before := ps.Items()[0].Vel.Len()

	ps.Update(0.01)
	after := ps.Items()[0].Vel.Len()
	if diff := after - before*0.98; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("velocity after damping = %v, expected %v", after, before*0.98)
	}
}

func TestFloatingTextRisesAndExpires(t *testing.T) {
	var ts Texts
	ts.Add(core.V(50, 200), "+100", "", 0)

	if ts.Items()[0].Color != core.ColorCyan {
		t.Errorf("default color = %q, expected cyan", ts.Items()[0].Color)
	}

	ts.Update(0.1)
	if y := ts.Items()[0].Pos.Y; y >= 200 {
		t.Errorf("text should float up, y = %v", y)
	}

	for i := 0; i < 8; i++ {
		ts.Update(0.1)
	}
	if ts.Len() != 0 {
		t.Errorf("Len() after 0.9s = %d, expected 0", ts.Len())
	}
}

func TestFloatingTextCustomDuration(t *testing.T) {
	var ts Texts
	ts.Add(core.V(0, 0), "Sensitivity", core.ColorWhite, 1.5)

	ts.Update(1.0)
	if ts.Len() != 1 {
		t.Errorf("Len() after 1s of 1.5s = %d, expected 1", ts.Len())
	}
}

func TestShakeDecay(t *testing.T) {
	var s Shake
	s.Add(5)
	s.Decay()
	if s.Amount() != 4.5 {
		t.Errorf("Amount() = %v, expected 4.5", s.Amount())
	}

	for i := 0; i < 100; i++ {
		s.Decay()
	}
	if s.Amount() != 0 {
		t.Errorf("Amount() = %v, expected snap to 0", s.Amount())
	}
	if off := s.Offset(rand.New(rand.NewSource(1))); off != (core.Vec2{}) {
		t.Errorf("Offset() without shake = %v, expected zero", off)
	}
}

func TestDrawLayers(t *testing.T) {
	screen := core.NewScreen(40, 10)
	canvas := core.NewCanvas(screen)

	var ts Texts
	ts.Add(core.V(160, 80), "HIT", core.ColorOrange, 1)
	ts.Draw(canvas)

	if got := screen.Row(5); got[19:22] != "HIT" {
		t.Errorf("Row(5) = %q, expected HIT centered at column 20", got)
	}

	ps := NewParticles(rand.New(rand.NewSource(4)))
	ps.Emit(core.V(-100, -100), core.ColorRed, 5)
	ps.Draw(canvas) // off-screen particles are clipped
}
