package storage

import (
	"reflect"
	"testing"

	"github.com/vovakirdan/traingun/internal/config"
	"github.com/vovakirdan/traingun/internal/core"
	"github.com/vovakirdan/traingun/internal/routine"
	"github.com/vovakirdan/traingun/internal/sensitivity"
)

func TestSettingsDefaults(t *testing.T) {
	store := openTestStore(t)

	sens, err := store.LoadSensitivity()
	if err != nil {
		t.Fatalf("LoadSensitivity() failed: %v", err)
	}
	if sens.Game != "cs2" || sens.Sensitivity != 2 || sens.DPI != 800 {
		t.Errorf("LoadSensitivity() = %+v, expected the cs2 default", sens)
	}

	custom, err := store.LoadCustomization()
	if err != nil {
		t.Fatalf("LoadCustomization() failed: %v", err)
	}
	if !reflect.DeepEqual(custom, config.DefaultCustomization()) {
		t.Errorf("LoadCustomization() = %+v, expected defaults", custom)
	}

	keys, err := store.LoadKeybinds()
	if err != nil {
		t.Fatalf("LoadKeybinds() failed: %v", err)
	}
	if !reflect.DeepEqual(keys, config.DefaultKeybinds()) {
		t.Errorf("LoadKeybinds() = %v, expected defaults", keys)
	}

	rs, err := store.LoadRoutines()
	if err != nil {
		t.Fatalf("LoadRoutines() failed: %v", err)
	}
	if len(rs) != len(routine.Defaults()) {
		t.Errorf("LoadRoutines() returned %d routines, expected the defaults", len(rs))
	}
}

func TestSensitivityRoundTrip(t *testing.T) {
	store := openTestStore(t)

	in := sensitivity.Config{Game: "valorant", Sensitivity: 0.4, DPI: 1600}.Recompute(sensitivity.DefaultViewportWidth)
	if err := store.SaveSensitivity(in); err != nil {
		t.Fatalf("SaveSensitivity() failed: %v", err)
	}

	out, err := store.LoadSensitivity()
	if err != nil {
		t.Fatalf("LoadSensitivity() failed: %v", err)
	}
	if out != in {
		t.Errorf("LoadSensitivity() = %+v, expected %+v", out, in)
	}

	// Overwrites the existing row.
	in.Sensitivity = 0.5
	in = in.Recompute(sensitivity.DefaultViewportWidth)
	if err := store.SaveSensitivity(in); err != nil {
		t.Fatalf("SaveSensitivity() failed: %v", err)
	}
	if out, _ := store.LoadSensitivity(); out.Sensitivity != 0.5 {
		t.Errorf("Sensitivity = %v after second save, expected 0.5", out.Sensitivity)
	}
}

func TestCorruptRecordFallsBack(t *testing.T) {
	store := openTestStore(t)

	for _, key := range []string{KeySensitivity, KeyCustomization, KeyKeybinds, KeyRoutines} {
		if _, err := store.db.Exec("INSERT INTO settings (key, value) VALUES (?, ?)", key, "{not json"); err != nil {
			t.Fatalf("insert %s: %v", key, err)
		}
	}

	if sens, err := store.LoadSensitivity(); err != nil || sens.Game != "cs2" {
		t.Errorf("LoadSensitivity() = %+v, %v; expected default", sens, err)
	}
	if c, err := store.LoadCustomization(); err != nil || c != config.DefaultCustomization() {
		t.Errorf("LoadCustomization() = %+v, %v; expected default", c, err)
	}
	if k, err := store.LoadKeybinds(); err != nil || !reflect.DeepEqual(k, config.DefaultKeybinds()) {
		t.Errorf("LoadKeybinds() = %v, %v; expected default", k, err)
	}
	if rs, err := store.LoadRoutines(); err != nil || len(rs) != 2 {
		t.Errorf("LoadRoutines() = %v, %v; expected defaults", rs, err)
	}
}

func TestCustomizationIsNormalized(t *testing.T) {
	store := openTestStore(t)

	c := config.DefaultCustomization()
	c.TargetColor = "#00ff00"
	c.TargetOpacity = 5
	c.Crosshair.Style = "banana"
	if err := store.SaveCustomization(c); err != nil {
		t.Fatalf("SaveCustomization() failed: %v", err)
	}

	got, err := store.LoadCustomization()
	if err != nil {
		t.Fatalf("LoadCustomization() failed: %v", err)
	}
	if got.TargetColor != "#00ff00" {
		t.Errorf("TargetColor = %q, expected #00ff00", got.TargetColor)
	}
	if got.TargetOpacity != 1 {
		t.Errorf("TargetOpacity = %v, expected 1", got.TargetOpacity)
	}
	if got.Crosshair.Style != config.CrosshairCross {
		t.Errorf("Crosshair.Style = %q, expected %q", got.Crosshair.Style, config.CrosshairCross)
	}
}

func TestKeybindsMergeOverDefaults(t *testing.T) {
	store := openTestStore(t)

	overrides := config.Keybinds{
		core.ActionReload.String(): {"e"},
		"dance":                    {"d"},
	}
	if err := store.SaveKeybinds(overrides); err != nil {
		t.Fatalf("SaveKeybinds() failed: %v", err)
	}

	got, err := store.LoadKeybinds()
	if err != nil {
		t.Fatalf("LoadKeybinds() failed: %v", err)
	}
	if keys := got.Keys(core.ActionReload); !reflect.DeepEqual(keys, []string{"e"}) {
		t.Errorf("reload keys = %v, expected [e]", keys)
	}
	if keys := got.Keys(core.ActionFire); !reflect.DeepEqual(keys, config.DefaultKeybinds().Keys(core.ActionFire)) {
		t.Errorf("fire keys = %v, expected defaults", keys)
	}
	if _, ok := got["dance"]; ok {
		t.Error("unknown action was kept")
	}
}

func TestRoutinesThroughManager(t *testing.T) {
	store := openTestStore(t)

	m := routine.NewManager(store, nil)
	r, err := m.Create("Reflex Drill", []routine.Step{{Mode: "reflex", Difficulty: "hard", Duration: 30}})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if err := m.Delete("r_daily_warmup"); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}

	reloaded := routine.NewManager(store, nil)
	rs := reloaded.List()
	if len(rs) != 2 {
		t.Fatalf("reloaded %d routines, expected 2", len(rs))
	}
	if rs[0].ID != "r_click_master" || rs[1].ID != r.ID {
		t.Errorf("reloaded IDs = %s, %s", rs[0].ID, rs[1].ID)
	}
}
