package sensitivity

import (
	"math"
	"testing"
)

func TestCm360CS2(t *testing.T) {
	got := Cm360("cs2", 2.0, 800)
	expected := math.Round((2.54*360)/(800*2.0*0.022)*100) / 100

	if got != expected {
		t.Errorf("Cm360(cs2, 2.0, 800) = %v, expected %v", got, expected)
	}
	if got != 25.98 {
		t.Errorf("Cm360(cs2, 2.0, 800) = %v, expected 25.98", got)
	}
}

func TestCm360AllGames(t *testing.T) {
	for _, g := range Games() {
		t.Run(g.ID, func(t *testing.T) {
			got := Cm360(g.ID, g.DefaultSens, 800)
			raw := (2.54 * 360) / (800 * g.DefaultSens * g.Coefficient)
			if got != math.Round(raw*100)/100 {
				t.Errorf("Cm360(%s) = %v, expected %v rounded to 2 places", g.ID, got, raw)
			}
		})
	}
}

func TestCm360UnknownGameFallsBack(t *testing.T) {
	if got := Cm360("quake", 3, 800); got != FallbackCm360 {
		t.Errorf("Cm360(unknown) = %v, expected %v", got, FallbackCm360)
	}
}

func TestCursorScaleRounding(t *testing.T) {
	cm := 25.98
	got := CursorScale(cm, 800, 1920, 103)

	fullRotation := 1920 * (360.0 / 103)
	counts := (cm / 2.54) * 800
	expected := math.Round(fullRotation/counts*10000) / 10000

	if got != expected {
		t.Errorf("CursorScale = %v, expected %v", got, expected)
	}
	if got != 0.8201 {
		t.Errorf("CursorScale = %v, expected 0.8201", got)
	}
}

func TestCursorScaleDefaultFOV(t *testing.T) {
	if CursorScale(30, 800, 1280, 0) != CursorScale(30, 800, 1280, DefaultFOV) {
		t.Error("Non-positive FOV should select the default FOV")
	}
}

func TestFromGameSettingsDeterministic(t *testing.T) {
	inputs := []struct {
		game  string
		sens  float64
		dpi   int
		width float64
	}{
		{"cs2", 2.0, 800, 1920},
		{"valorant", 0.35, 1600, 640},
		{"overwatch", 5.5, 400, 1280},
		{"unknown", 1, 800, 800},
	}

	for _, in := range inputs {
		first := FromGameSettings(in.game, in.sens, in.dpi, in.width)
		for i := 0; i < 5; i++ {
			again := FromGameSettings(in.game, in.sens, in.dpi, in.width)
			if again != first {
				t.Fatalf("FromGameSettings(%v) not deterministic: %v vs %v", in, first, again)
			}
		}
		if first.Cm360 != Cm360(in.game, in.sens, in.dpi) {
			t.Errorf("FromGameSettings cm360 mismatch for %v", in)
		}
		if first.CursorScale != CursorScale(first.Cm360, in.dpi, in.width, DefaultFOV) {
			t.Errorf("FromGameSettings cursor scale mismatch for %v", in)
		}
	}
}

func TestLookup(t *testing.T) {
	g, ok := Lookup("valorant")
	if !ok {
		t.Fatal("Lookup(valorant) should succeed")
	}
	if g.Coefficient != 0.07 {
		t.Errorf("valorant coefficient = %v, expected 0.07", g.Coefficient)
	}
	if _, ok := Lookup("nope"); ok {
		t.Error("Lookup(nope) should fail")
	}
}
