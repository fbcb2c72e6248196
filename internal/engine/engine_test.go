package engine

import (
	"errors"
	"io"
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/traingun/internal/config"
	"github.com/vovakirdan/traingun/internal/core"
	"github.com/vovakirdan/traingun/internal/sensitivity"
	"github.com/vovakirdan/traingun/internal/target"
	"github.com/vovakirdan/traingun/internal/weapon"
)

var (
	testViewport = core.V(800, 608)
	targetPos    = core.V(400, 300)
	missPos      = core.V(10, 10)
)

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) time.Time {
	c.now = c.now.Add(d)
	return c.now
}

// stubMode keeps one sphere at targetPos alive and scores 100 per hit.
type stubMode struct {
	firing  bool
	hits    []Hit
	misses  int
	updates int
}

func (m *stubMode) ID() string                           { return "stub" }
func (m *stubMode) Title() string                        { return "Stub" }
func (m *stubMode) Duration(d config.Difficulty) float64 { return 30 }
func (m *stubMode) Firing() bool                         { return m.firing }

func (m *stubMode) Init(e *Engine, d config.Difficulty) {
	e.AddTarget(target.NewSphere(targetPos, 30, e.TargetStyle(), e.Now()))
}

func (m *stubMode) Update(e *Engine, dt float64) {
	m.updates++
	if e.ActiveCount() == 0 {
		e.AddTarget(target.NewSphere(targetPos, 30, e.TargetStyle(), e.Now()))
	}
}

func (m *stubMode) OnHit(e *Engine, h Hit) {
	m.hits = append(m.hits, h)
	e.AddScore(100)
}

func (m *stubMode) OnMiss(e *Engine) { m.misses++ }

type fakeResults struct {
	best    int
	hasBest bool
	bestErr error
	saveErr error
	saved   []core.RunResult
}

func (f *fakeResults) SaveResult(r core.RunResult) (core.RunResult, error) {
	if f.saveErr != nil {
		return r, f.saveErr
	}
	r.ID = "run-1"
	f.saved = append(f.saved, r)
	return r, nil
}

func (f *fakeResults) BestScore(mode string) (int, bool, error) {
	return f.best, f.hasBest, f.bestErr
}

type fakeSettings struct {
	sens  sensitivity.Config
	saved []sensitivity.Config
}

func (f *fakeSettings) LoadSensitivity() (sensitivity.Config, error) { return f.sens, nil }

func (f *fakeSettings) SaveSensitivity(cfg sensitivity.Config) error {
	f.saved = append(f.saved, cfg)
	return nil
}

func (f *fakeSettings) LoadCustomization() (config.Customization, error) {
	return config.DefaultCustomization(), nil
}

type fakeCapture struct {
	err      error
	acquired int
	released int
}

func (f *fakeCapture) Acquire() error {
	if f.err != nil {
		return f.err
	}
	f.acquired++
	return nil
}

func (f *fakeCapture) Release() { f.released++ }

type harness struct {
	e        *Engine
	clock    *fakeClock
	mode     *stubMode
	results  *fakeResults
	settings *fakeSettings
	capture  *fakeCapture
	done     []core.RunResult
	records  []bool
}

func newHarness(t *testing.T, preset string) *harness {
	t.Helper()
	h := &harness{
		clock:    &fakeClock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)},
		mode:     &stubMode{firing: true},
		results:  &fakeResults{},
		settings: &fakeSettings{sens: sensitivity.DefaultConfig(testViewport.X)},
		capture:  &fakeCapture{},
	}
	h.e = New(Config{
		Viewport: testViewport,
		Clock:    h.clock.Now,
		Rand:     rand.New(rand.NewSource(1)),
		Logger:   log.New(io.Discard),
		Results:  h.results,
		Settings: h.settings,
		Capture:  h.capture,
		Weapons:  config.WeaponsConfig{Default: preset, Presets: weapon.DefaultPresets()},
		OnComplete: func(r core.RunResult, rec bool) {
			h.done = append(h.done, r)
			h.records = append(h.records, rec)
		},
	})
	return h
}

// start initializes a run and skips the countdown.
func (h *harness) start(duration float64) {
	h.e.Init(h.mode, config.DifficultyMedium, RunOptions{Duration: duration})
	h.e.Frame(h.clock.Advance(CountdownDuration))
}

func (h *harness) step(d time.Duration) {
	h.e.Frame(h.clock.Advance(d))
}

func TestInitEntersCountdown(t *testing.T) {
	h := newHarness(t, weapon.Standard)
	h.e.Init(h.mode, config.DifficultyHard, RunOptions{})

	if h.e.State() != StateCountdown {
		t.Errorf("State() = %v, expected countdown", h.e.State())
	}
	if h.e.Duration() != 30 {
		t.Errorf("Duration() = %v, expected the mode's 30", h.e.Duration())
	}
	if h.e.Difficulty() != config.DifficultyHard {
		t.Errorf("Difficulty() = %v, expected hard", h.e.Difficulty())
	}
	if h.e.ActiveCount() != 1 {
		t.Errorf("ActiveCount() = %d, expected 1 from mode init", h.e.ActiveCount())
	}
	if h.e.Cursor() != testViewport.Scale(0.5) {
		t.Errorf("Cursor() = %v, expected viewport center", h.e.Cursor())
	}
	if got := h.e.HUD().Countdown; got != 3 {
		t.Errorf("HUD().Countdown = %d, expected 3", got)
	}
}

func TestCountdownIgnoresInput(t *testing.T) {
	h := newHarness(t, weapon.Standard)
	h.e.Init(h.mode, config.DifficultyMedium, RunOptions{})

	if h.e.Fire() {
		t.Error("Fire() during countdown should be ignored")
	}
	h.e.MovePointer(100, 100)
	if h.e.Cursor() != testViewport.Scale(0.5) {
		t.Error("MovePointer() during countdown should be ignored")
	}

	h.step(2 * time.Second)
	if h.e.State() != StateCountdown {
		t.Fatalf("State() after 2s = %v, expected countdown", h.e.State())
	}
	if h.mode.updates != 0 {
		t.Error("Mode should not update during the countdown")
	}

	h.step(time.Second)
	if h.e.State() != StateRunning {
		t.Errorf("State() after 3s = %v, expected running", h.e.State())
	}
	if h.e.Elapsed() != 0 {
		t.Errorf("Elapsed() = %v, expected 0 on the first running frame", h.e.Elapsed())
	}
}

func TestFireHit(t *testing.T) {
	h := newHarness(t, weapon.Standard)
	h.start(60)
	h.clock.Advance(250 * time.Millisecond)

	h.e.WarpCursor(targetPos)
	if !h.e.Fire() {
		t.Fatal("Fire() = false, expected a shot")
	}

	if h.e.Hits() != 1 || h.e.Combo() != 1 || h.e.Score() != 100 {
		t.Errorf("hits/combo/score = %d/%d/%d, expected 1/1/100", h.e.Hits(), h.e.Combo(), h.e.Score())
	}
	if len(h.mode.hits) != 1 {
		t.Fatalf("OnHit calls = %d, expected 1", len(h.mode.hits))
	}
	// Countdown (3s) plus 250ms.
	if got := h.mode.hits[0].ReactionMs; math.Abs(got-3250) > 1e-6 {
		t.Errorf("ReactionMs = %v, expected 3250", got)
	}

	shots := h.e.ShotHistory()
	if len(shots) != 1 {
		t.Fatalf("ShotHistory() has %d records, expected 1", len(shots))
	}
	if !shots[0].Hit || shots[0].X != 0.5 {
		t.Errorf("ShotHistory()[0] = %+v, expected a hit at x 0.5", shots[0])
	}
	// The hit target left the active state, so the fallback center is used.
	if shots[0].TX != 0.5 || shots[0].TY != 0.5 {
		t.Errorf("TX/TY = %v/%v, expected 0.5/0.5", shots[0].TX, shots[0].TY)
	}

	h.step(16 * time.Millisecond)
	if len(h.e.Targets()) != 1 || h.e.ActiveCount() != 1 {
		t.Errorf("Targets() = %d, expected the hit target swept and one respawned", len(h.e.Targets()))
	}
}

func TestFireHitsFirstOverlappingTarget(t *testing.T) {
	h := newHarness(t, weapon.Standard)
	h.start(60)

	second := target.NewSphere(core.V(420, 300), 30, h.e.TargetStyle(), h.e.Now())
	h.e.AddTarget(second)
	first := h.e.Targets()[0]

	// Closer to the second sphere, still inside both.
	h.e.WarpCursor(core.V(412, 300))
	if !h.e.Fire() {
		t.Fatal("Fire() = false, expected a shot")
	}

	if first.State() != target.StateHit {
		t.Errorf("first target state = %v, expected hit", first.State())
	}
	if second.State() != target.StateActive {
		t.Errorf("second target state = %v, expected active", second.State())
	}
	if h.e.Hits() != 1 || len(h.mode.hits) != 1 {
		t.Fatalf("hits = %d, OnHit calls = %d, expected one each", h.e.Hits(), len(h.mode.hits))
	}
	if h.mode.hits[0].Target != first {
		t.Error("OnHit should report the first target in insertion order")
	}
}

func TestParticlesDoNotConsumeGameplayRand(t *testing.T) {
	a := newHarness(t, weapon.Standard)
	b := newHarness(t, weapon.Standard)

	a.e.Particles().Emit(targetPos, core.ColorBlood, 30)

	for i := range 5 {
		if x, y := a.e.Rand().Float64(), b.e.Rand().Float64(); x != y {
			t.Fatalf("Rand().Float64() #%d = %v after a burst, expected %v", i, x, y)
		}
	}
}

func TestFireMissBreaksCombo(t *testing.T) {
	h := newHarness(t, weapon.Standard)
	h.start(60)

	h.e.WarpCursor(targetPos)
	h.e.Fire()
	h.step(16 * time.Millisecond)

	h.e.WarpCursor(missPos)
	h.e.Fire()

	if h.e.Combo() != 0 || h.e.MaxCombo() != 1 {
		t.Errorf("combo/max = %d/%d, expected 0/1", h.e.Combo(), h.e.MaxCombo())
	}
	if h.e.Misses() != 1 || h.mode.misses != 1 {
		t.Errorf("misses = %d (mode %d), expected 1", h.e.Misses(), h.mode.misses)
	}

	shot := h.e.ShotHistory()[1]
	if shot.Hit {
		t.Error("Second shot should be a miss")
	}
	if shot.TX != targetPos.X/testViewport.X || shot.TY != targetPos.Y/testViewport.Y {
		t.Errorf("TX/TY = %v/%v, expected the nearest active target", shot.TX, shot.TY)
	}
}

func TestAccuracySeventyPercent(t *testing.T) {
	h := newHarness(t, weapon.Standard)
	h.start(60)

	for i := 0; i < 10; i++ {
		if i < 7 {
			h.e.WarpCursor(targetPos)
		} else {
			h.e.WarpCursor(missPos)
		}
		h.e.Fire()
		h.step(16 * time.Millisecond)
	}

	if got := h.e.HUD().Accuracy; got != 70 {
		t.Errorf("HUD().Accuracy = %d, expected 70", got)
	}

	h.e.Finish()
	if len(h.done) != 1 {
		t.Fatalf("OnComplete calls = %d, expected 1", len(h.done))
	}
	r := h.done[0]
	if r.Accuracy != 70 || r.Hits != 7 || r.Misses != 3 || r.MaxCombo != 7 {
		t.Errorf("result = %+v, expected accuracy 70 hits 7 misses 3 max combo 7", r)
	}
	if r.AvgReactionMs == nil {
		t.Error("AvgReactionMs = nil, expected a value after hits")
	}
	if len(r.ShotHistory) != 10 {
		t.Errorf("ShotHistory has %d records, expected 10", len(r.ShotHistory))
	}
}

func TestAccuracyWithoutShots(t *testing.T) {
	h := newHarness(t, weapon.Standard)
	h.start(60)
	if got := h.e.HUD().Accuracy; got != 100 {
		t.Errorf("HUD().Accuracy = %d, expected 100 before any shot", got)
	}
}

func TestTrackingAccuracyUsesFrames(t *testing.T) {
	h := newHarness(t, weapon.Standard)
	h.mode.firing = false
	h.start(60)

	if h.e.Fire() {
		t.Error("Fire() should be ignored in a non-firing mode")
	}
	for i := 0; i < 4; i++ {
		h.e.CountTrackingFrame(i == 0)
	}
	if got := h.e.HUD().Accuracy; got != 25 {
		t.Errorf("HUD().Accuracy = %d, expected 25", got)
	}
}

func TestFrameDeltaIsCapped(t *testing.T) {
	h := newHarness(t, weapon.Standard)
	h.start(60)

	h.step(5 * time.Second)
	if got := h.e.Elapsed(); math.Abs(got-maxFrameDelta) > 1e-9 {
		t.Errorf("Elapsed() = %v, expected %v", got, maxFrameDelta)
	}
}

func TestPauseFreezesTimeAndReload(t *testing.T) {
	h := newHarness(t, weapon.Vandal)
	h.start(60)

	h.e.WarpCursor(missPos)
	h.e.Fire()
	h.e.Reload()
	if !h.e.Weapon().IsReloading() {
		t.Fatal("Reload() should start reloading a partly empty magazine")
	}

	h.step(50 * time.Millisecond)
	before := h.e.Elapsed()

	h.e.Pause()
	if h.e.State() != StatePaused {
		t.Fatalf("State() = %v, expected paused", h.e.State())
	}
	for i := 0; i < 100; i++ {
		h.step(100 * time.Millisecond)
	}
	if h.e.Elapsed() != before {
		t.Errorf("Elapsed() changed while paused: %v -> %v", before, h.e.Elapsed())
	}
	if !h.e.Weapon().IsReloading() {
		t.Error("Reload should not progress while paused")
	}
	if h.e.Fire() {
		t.Error("Fire() should be ignored while paused")
	}

	h.e.Resume()
	h.step(50 * time.Millisecond)
	if got := h.e.Elapsed(); math.Abs(got-(before+0.05)) > 1e-9 {
		t.Errorf("Elapsed() after resume = %v, expected %v", got, before+0.05)
	}
}

func TestPauseReleasesPointer(t *testing.T) {
	h := newHarness(t, weapon.Standard)
	h.start(60)

	if !h.e.Captured() || h.capture.acquired != 1 {
		t.Fatalf("Captured() = %v acquired %d, expected capture on init", h.e.Captured(), h.capture.acquired)
	}
	h.e.Pause()
	if h.e.Captured() || h.capture.released != 1 {
		t.Error("Pause() should release the pointer")
	}
	h.e.Resume()
	if !h.e.Captured() || h.capture.acquired != 2 {
		t.Error("Resume() should re-acquire the pointer")
	}
}

func TestCaptureDeniedFallsBack(t *testing.T) {
	h := newHarness(t, weapon.Standard)
	h.capture.err = errors.New("not supported")
	h.start(60)

	if h.e.Captured() {
		t.Error("Captured() = true, expected false after denial")
	}
	if h.e.State() != StateRunning {
		t.Fatalf("State() = %v, expected the run to proceed", h.e.State())
	}
	h.e.WarpCursor(core.V(123, 45))
	if h.e.Cursor() != core.V(123, 45) {
		t.Errorf("Cursor() = %v, expected absolute positioning", h.e.Cursor())
	}
}

func TestMovePointerScalesAndClamps(t *testing.T) {
	h := newHarness(t, weapon.Standard)
	h.start(60)

	scale := h.e.Sensitivity().CursorScale
	h.e.MovePointer(10, 0)
	expected := testViewport.X/2 + 10*scale
	if got := h.e.Cursor().X; math.Abs(got-expected) > 1e-9 {
		t.Errorf("Cursor().X = %v, expected %v", got, expected)
	}

	h.e.MovePointer(1e9, -1e9)
	if h.e.Cursor() != core.V(testViewport.X, 0) {
		t.Errorf("Cursor() = %v, expected clamped to the top-right corner", h.e.Cursor())
	}
}

func TestTimerFinishesRun(t *testing.T) {
	h := newHarness(t, weapon.Standard)
	h.results.best, h.results.hasBest = 500, true
	h.start(0.25)

	for i := 0; i < 5; i++ {
		h.step(100 * time.Millisecond)
	}

	if h.e.State() != StateFinished {
		t.Fatalf("State() = %v, expected finished", h.e.State())
	}
	if len(h.done) != 1 {
		t.Fatalf("OnComplete calls = %d, expected exactly 1", len(h.done))
	}
	if h.records[0] {
		t.Error("Score 0 against best 500 should not be a new record")
	}
	if len(h.results.saved) != 1 || h.done[0].ID != "run-1" {
		t.Errorf("Result was not saved through the store: %+v", h.done[0])
	}
	if h.done[0].Mode != "stub" || h.done[0].Difficulty != "medium" {
		t.Errorf("Mode/Difficulty = %q/%q, expected stub/medium", h.done[0].Mode, h.done[0].Difficulty)
	}
	if h.capture.released == 0 {
		t.Error("Finish should release the pointer")
	}
}

func TestNewRecord(t *testing.T) {
	tests := []struct {
		name     string
		best     int
		hasBest  bool
		expected bool
	}{
		{"first run", 0, false, true},
		{"beats best", 50, true, true},
		{"ties best", 100, true, true},
		{"below best", 150, true, false},
	}

	for _, tc := range tests {
		h := newHarness(t, weapon.Standard)
		h.results.best, h.results.hasBest = tc.best, tc.hasBest
		h.start(60)
		h.e.WarpCursor(targetPos)
		h.e.Fire()
		h.e.Finish()

		_, rec, ok := h.e.Result()
		if !ok || rec != tc.expected {
			t.Errorf("%s: new record = %v, expected %v", tc.name, rec, tc.expected)
		}
	}
}

func TestFinishSurvivesStoreErrors(t *testing.T) {
	h := newHarness(t, weapon.Standard)
	h.results.bestErr = errors.New("db locked")
	h.results.saveErr = errors.New("disk full")
	h.start(60)
	h.e.Finish()

	if len(h.done) != 1 {
		t.Fatal("OnComplete should still fire when the store fails")
	}
	if h.done[0].ID != "" {
		t.Errorf("ID = %q, expected empty for an unsaved result", h.done[0].ID)
	}
}

func TestFinishIsIdempotent(t *testing.T) {
	h := newHarness(t, weapon.Standard)
	h.start(60)
	h.e.Finish()
	h.e.Finish()
	h.step(time.Second)

	if len(h.done) != 1 {
		t.Errorf("OnComplete calls = %d, expected 1", len(h.done))
	}
}

func TestDestroy(t *testing.T) {
	h := newHarness(t, weapon.Standard)
	h.start(60)
	h.e.Destroy()

	if h.e.State() != StateIdle {
		t.Errorf("State() = %v, expected idle", h.e.State())
	}
	if h.e.Fire() {
		t.Error("Fire() after Destroy should be ignored")
	}
	h.step(time.Minute)
	if len(h.done) != 0 {
		t.Error("Destroy should not produce a result")
	}
}

func TestAdjustSensitivity(t *testing.T) {
	h := newHarness(t, weapon.Standard)
	h.start(60)

	if !h.e.AdjustSensitivity(1) {
		t.Fatal("AdjustSensitivity(1) = false, expected a change")
	}
	if got := h.e.Sensitivity().Sensitivity; got != 2.1 {
		t.Errorf("Sensitivity = %v, expected 2.1", got)
	}
	if len(h.settings.saved) != 1 || h.settings.saved[0].Sensitivity != 2.1 {
		t.Errorf("saved = %+v, expected one record at 2.1", h.settings.saved)
	}
	if h.e.Texts().Len() != 1 {
		t.Errorf("Texts().Len() = %d, expected the sensitivity notice", h.e.Texts().Len())
	}
}

func TestSwitchWeapon(t *testing.T) {
	h := newHarness(t, weapon.Standard)
	h.start(60)

	if h.e.SwitchWeapon(1) {
		t.Error("SwitchWeapon(1) with Standard equipped should be a no-op")
	}
	if !h.e.SwitchWeapon(4) {
		t.Fatal("SwitchWeapon(4) = false, expected the Operator")
	}
	if h.e.Weapon().Name() != "Operator" || h.e.Weapon().Ammo() != 5 {
		t.Errorf("Weapon = %s %d rounds, expected a full Operator", h.e.Weapon().Name(), h.e.Weapon().Ammo())
	}
	if h.e.SwitchWeapon(9) {
		t.Error("SwitchWeapon(9) should fail for an unknown slot")
	}
}

func TestInitRefillsWeapon(t *testing.T) {
	h := newHarness(t, weapon.Sheriff)
	h.start(60)
	h.e.WarpCursor(missPos)
	h.e.Fire()
	h.e.Finish()

	h.start(60)
	if got := h.e.Weapon().Ammo(); got != 6 {
		t.Errorf("Ammo() after restart = %d, expected a full magazine", got)
	}
	if h.e.Score() != 0 || len(h.e.ShotHistory()) != 0 {
		t.Error("Init should reset score and shot history")
	}
}

func TestDrawCrosshair(t *testing.T) {
	h := newHarness(t, weapon.Standard)
	h.start(60)

	screen := core.NewScreen(int(testViewport.X)/core.CellWidth, int(testViewport.Y)/core.CellHeight)
	h.e.Draw(core.NewCanvas(screen))

	// Cursor (400, 304) sits in cell (50, 19); the default cross has a 4px gap.
	if got := screen.Get(49, 19); got != '─' {
		t.Errorf("cell left of center = %q, expected '─'", got)
	}
	if got := screen.Get(50, 18); got != '│' {
		t.Errorf("cell above center = %q, expected '│'", got)
	}
}
