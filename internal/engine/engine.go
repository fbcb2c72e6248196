// Package engine runs a training session: it owns the targets, the weapon
// and the crosshair, advances them once per frame, resolves shots and
// produces a RunResult when the timer runs out.
//
// The engine is driven from a single goroutine. The platform calls Frame with
// the current time once per display tick and forwards input through Fire,
// MovePointer and the other controls between frames. Modes plug in through
// ModeHandler and mutate the session only through the engine's methods.
package engine

import (
	"math"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/traingun/internal/config"
	"github.com/vovakirdan/traingun/internal/core"
	"github.com/vovakirdan/traingun/internal/effects"
	"github.com/vovakirdan/traingun/internal/sensitivity"
	"github.com/vovakirdan/traingun/internal/target"
	"github.com/vovakirdan/traingun/internal/weapon"
)

// State is the session lifecycle state.
type State int

const (
	StateIdle State = iota
	StateCountdown
	StateRunning
	StatePaused
	StateFinished
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateCountdown:
		return "countdown"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// CountdownDuration is the 3-2-1-GO wait before a run starts.
const CountdownDuration = 3 * time.Second

// maxFrameDelta caps dt so a stalled terminal does not teleport targets.
const maxFrameDelta = 0.1

// Hit describes a successful shot for ModeHandler.OnHit.
// Zone and Damage are only set for zoned targets.
type Hit struct {
	Target     target.Target
	ReactionMs float64
	Zone       target.Zone
	Damage     target.DamageResult
}

// ModeHandler is a pluggable spawning and scoring policy.
type ModeHandler interface {
	// ID returns the mode name used for storage and the CLI (e.g. "flicking").
	ID() string

	// Title returns a human-readable name.
	Title() string

	// Duration returns the run length in seconds for a difficulty.
	Duration(d config.Difficulty) float64

	// Firing reports whether shots are resolved. Modes that do not fire
	// measure accuracy as the share of frames spent on target.
	Firing() bool

	// Init spawns the opening targets. Called once per run after the engine
	// has reset its counters.
	Init(e *Engine, d config.Difficulty)

	// Update runs once per frame after targets and effects have advanced.
	Update(e *Engine, dt float64)

	// OnHit scores a hit. For plain targets it runs before hits and combo
	// are incremented for this shot.
	OnHit(e *Engine, h Hit)

	// OnMiss reacts to a shot that hit nothing.
	OnMiss(e *Engine)
}

// ResultStore receives finished runs.
type ResultStore interface {
	SaveResult(r core.RunResult) (core.RunResult, error)
	BestScore(mode string) (score int, ok bool, err error)
}

// SettingsStore provides the persisted user records the engine reads.
type SettingsStore interface {
	LoadSensitivity() (sensitivity.Config, error)
	SaveSensitivity(cfg sensitivity.Config) error
	LoadCustomization() (config.Customization, error)
}

// PointerCapture grabs relative pointer input for the duration of a run.
type PointerCapture interface {
	Acquire() error
	Release()
}

// Config wires an engine to its collaborators. Zero values select defaults.
type Config struct {
	Viewport   core.Vec2 // virtual pixels
	Clock      func() time.Time
	Rand       *rand.Rand
	Logger     *log.Logger
	Results    ResultStore
	Settings   SettingsStore
	Capture    PointerCapture
	Weapons    config.WeaponsConfig
	OnHUD      func(HUD)
	OnComplete func(r core.RunResult, newRecord bool)
}

// RunOptions overrides per-run settings.
type RunOptions struct {
	Duration float64 // seconds; zero uses the mode's duration
}

// Engine is a training session.
type Engine struct {
	log        *log.Logger
	clock      func() time.Time
	rng        *rand.Rand
	vfx        *rand.Rand
	results    ResultStore
	settings   SettingsStore
	capture    PointerCapture
	onHUD      func(HUD)
	onComplete func(core.RunResult, bool)

	viewport core.Vec2
	weapons  config.WeaponsConfig
	weapon   *weapon.Weapon
	sens     sensitivity.Config
	custom   config.Customization
	captured bool

	state        State
	handler      ModeHandler
	difficulty   config.Difficulty
	duration     float64
	elapsed      float64
	lastFrame    time.Time
	countdownEnd time.Time

	cursor    core.Vec2
	targets   []target.Target
	particles *effects.Particles
	texts     effects.Texts
	shake     effects.Shake

	score             int
	hits              int
	misses            int
	combo             int
	maxCombo          int
	shotsFired        int
	headshots         int
	reactions         []float64
	shots             []core.ShotRecord
	trackingFrames    int
	trackingHitFrames int

	lastResult *core.RunResult
	newRecord  bool
}

// New creates an idle engine.
func New(cfg Config) *Engine {
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	if cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Viewport.X <= 0 || cfg.Viewport.Y <= 0 {
		w, h := core.DefaultConfig().Viewport()
		cfg.Viewport = core.V(w, h)
	}
	if len(cfg.Weapons.Presets) == 0 {
		cfg.Weapons = config.DefaultWeaponsConfig()
	}

	e := &Engine{
		log:        cfg.Logger,
		clock:      cfg.Clock,
		rng:        cfg.Rand,
		vfx:        rand.New(rand.NewSource(cfg.Rand.Int63())),
		results:    cfg.Results,
		settings:   cfg.Settings,
		capture:    cfg.Capture,
		onHUD:      cfg.OnHUD,
		onComplete: cfg.OnComplete,
		viewport:   cfg.Viewport,
		weapons:    cfg.Weapons,
		custom:     config.DefaultCustomization(),
		difficulty: config.DifficultyMedium,
		duration:   60,
	}
	e.weapon = weapon.New(cfg.Weapons.DefaultWeapon(), e.rng)
	e.particles = effects.NewParticles(e.vfx)
	e.sens = sensitivity.DefaultConfig(e.viewport.X)
	e.cursor = e.viewport.Scale(0.5)
	return e
}

// Init resets the session for a new run and enters the countdown.
func (e *Engine) Init(h ModeHandler, d config.Difficulty, opts RunOptions) {
	e.releasePointer()
	e.handler = h
	e.difficulty = d

	e.score, e.hits, e.misses = 0, 0, 0
	e.combo, e.maxCombo = 0, 0
	e.shotsFired, e.headshots = 0, 0
	e.reactions = nil
	e.shots = nil
	e.trackingFrames, e.trackingHitFrames = 0, 0
	e.elapsed = 0
	e.targets = nil
	e.particles.Reset()
	e.texts.Reset()
	e.shake.Reset()
	e.lastResult = nil
	e.newRecord = false

	e.duration = opts.Duration
	if e.duration <= 0 {
		e.duration = h.Duration(d)
	}

	e.loadSettings()
	e.cursor = e.viewport.Scale(0.5)

	// Same weapon, fresh state: full magazine, no recoil, no pending reload.
	e.weapon = weapon.New(e.weapon.Spec(), e.rng)

	h.Init(e, d)

	now := e.clock()
	e.state = StateCountdown
	e.countdownEnd = now.Add(CountdownDuration)
	e.lastFrame = now
	e.acquirePointer()
	e.publishHUD()

	e.log.Info("run initialized", "mode", h.ID(), "difficulty", d, "duration", e.duration)
}

func (e *Engine) loadSettings() {
	e.sens = sensitivity.DefaultConfig(e.viewport.X)
	e.custom = config.DefaultCustomization()
	if e.settings == nil {
		return
	}

	if s, err := e.settings.LoadSensitivity(); err != nil {
		e.log.Error("failed to load sensitivity, using defaults", "err", err)
	} else {
		e.sens = s.Recompute(e.viewport.X)
	}

	if c, err := e.settings.LoadCustomization(); err != nil {
		e.log.Error("failed to load customization, using defaults", "err", err)
	} else {
		e.custom = c.Normalize()
	}
}

func (e *Engine) acquirePointer() {
	e.captured = false
	if e.capture == nil {
		return
	}
	if err := e.capture.Acquire(); err != nil {
		e.log.Warn("pointer capture denied, using absolute cursor positioning", "err", err)
		return
	}
	e.captured = true
}

func (e *Engine) releasePointer() {
	if e.capture != nil && e.captured {
		e.capture.Release()
	}
	e.captured = false
}

// Frame advances the session to now. During the countdown it only checks the
// deadline; while running it executes one gameplay tick.
func (e *Engine) Frame(now time.Time) {
	switch e.state {
	case StateCountdown:
		if now.Before(e.countdownEnd) {
			e.publishHUD()
			return
		}
		e.state = StateRunning
		e.lastFrame = now
		e.log.Debug("countdown finished", "mode", e.Mode())
		e.tick(now)
	case StateRunning:
		e.tick(now)
	}
}

func (e *Engine) tick(now time.Time) {
	dt := math.Min(now.Sub(e.lastFrame).Seconds(), maxFrameDelta)
	if dt < 0 {
		dt = 0
	}
	e.lastFrame = now
	e.elapsed += dt

	if e.Remaining() <= 0 {
		e.Finish()
		return
	}

	for _, t := range e.targets {
		t.Update(dt)
	}
	e.particles.Update(dt)
	e.weapon.Update(dt)
	e.shake.Decay()
	e.texts.Update(dt)

	e.handler.Update(e, dt)
	e.sweep()
	e.publishHUD()
}

// sweep drops every target that left the active state this frame.
func (e *Engine) sweep() {
	alive := e.targets[:0]
	for _, t := range e.targets {
		if t.State() == target.StateActive {
			alive = append(alive, t)
		}
	}
	for i := len(alive); i < len(e.targets); i++ {
		e.targets[i] = nil
	}
	e.targets = alive
}

// Pause suspends a running session. Elapsed time, ammo, recoil and any
// reload in progress are frozen until Resume.
func (e *Engine) Pause() {
	if e.state != StateRunning {
		return
	}
	e.state = StatePaused
	e.releasePointer()
	e.publishHUD()
}

// Resume continues a paused session without replaying the countdown.
func (e *Engine) Resume() {
	if e.state != StatePaused {
		return
	}
	e.acquirePointer()
	e.state = StateRunning
	e.lastFrame = e.clock()
	e.publishHUD()
}

// Finish ends the run, stores the result and reports it through OnComplete.
// It is a no-op unless a run is in progress.
func (e *Engine) Finish() {
	switch e.state {
	case StateRunning, StatePaused, StateCountdown:
	default:
		return
	}
	e.state = StateFinished
	e.releasePointer()

	result := e.buildResult()
	e.newRecord = true

	if e.results != nil {
		if best, ok, err := e.results.BestScore(result.Mode); err != nil {
			e.log.Error("failed to read best score", "mode", result.Mode, "err", err)
		} else if ok {
			e.newRecord = result.Score >= best
		}

		saved, err := e.results.SaveResult(result)
		if err != nil {
			e.log.Error("failed to save result", "mode", result.Mode, "err", err)
		} else {
			result = saved
		}
	}

	e.lastResult = &result
	e.log.Info("run finished",
		"mode", result.Mode, "difficulty", result.Difficulty,
		"score", result.Score, "accuracy", result.Accuracy, "new_record", e.newRecord)

	e.publishHUD()
	if e.onComplete != nil {
		e.onComplete(result, e.newRecord)
	}
}

func (e *Engine) buildResult() core.RunResult {
	var avg *int
	if len(e.reactions) > 0 {
		var sum float64
		for _, r := range e.reactions {
			sum += r
		}
		v := int(math.Round(sum / float64(len(e.reactions))))
		avg = &v
	}

	shots := make([]core.ShotRecord, len(e.shots))
	copy(shots, e.shots)

	return core.RunResult{
		Mode:           e.Mode(),
		Difficulty:     string(e.difficulty),
		Score:          e.score,
		Accuracy:       e.accuracy(1),
		AvgReactionMs:  avg,
		ElapsedSeconds: int(math.Round(e.elapsed)),
		Hits:           e.hits,
		Misses:         e.misses,
		MaxCombo:       e.maxCombo,
		Headshots:      e.headshots,
		ShotHistory:    shots,
	}
}

// Destroy stops the session from any state without producing a result.
func (e *Engine) Destroy() {
	e.releasePointer()
	e.state = StateIdle
	e.targets = nil
}

// Resize changes the viewport. The crosshair is clamped into the new bounds,
// and recentered when no run is active.
func (e *Engine) Resize(viewport core.Vec2) {
	if viewport.X <= 0 || viewport.Y <= 0 {
		return
	}
	e.viewport = viewport
	e.sens = e.sens.Recompute(viewport.X)
	if e.state == StateIdle {
		e.cursor = viewport.Scale(0.5)
		return
	}
	e.cursor = e.clampToViewport(e.cursor)
}

// State returns the lifecycle state.
func (e *Engine) State() State { return e.state }

// Mode returns the active mode ID, or empty before the first Init.
func (e *Engine) Mode() string {
	if e.handler == nil {
		return ""
	}
	return e.handler.ID()
}

// Difficulty returns the difficulty of the current run.
func (e *Engine) Difficulty() config.Difficulty { return e.difficulty }

// Handler returns the active mode handler.
func (e *Engine) Handler() ModeHandler { return e.handler }

// Duration returns the run length in seconds.
func (e *Engine) Duration() float64 { return e.duration }

// Elapsed returns the seconds of gameplay so far.
func (e *Engine) Elapsed() float64 { return e.elapsed }

// Remaining returns the seconds left, never negative.
func (e *Engine) Remaining() float64 {
	return math.Max(0, e.duration-e.elapsed)
}

// CountdownLeft returns the time until the countdown ends, zero outside it.
func (e *Engine) CountdownLeft(now time.Time) time.Duration {
	if e.state != StateCountdown || !now.Before(e.countdownEnd) {
		return 0
	}
	return e.countdownEnd.Sub(now)
}

// Result returns the last finished run and whether it set a record.
func (e *Engine) Result() (core.RunResult, bool, bool) {
	if e.lastResult == nil {
		return core.RunResult{}, false, false
	}
	return *e.lastResult, e.newRecord, true
}

// Weapon returns the equipped weapon.
func (e *Engine) Weapon() *weapon.Weapon { return e.weapon }

// Sensitivity returns the live sensitivity record.
func (e *Engine) Sensitivity() sensitivity.Config { return e.sens }

// Customization returns the loaded customization record.
func (e *Engine) Customization() config.Customization { return e.custom }

// Captured reports whether relative pointer input is active.
func (e *Engine) Captured() bool { return e.captured }
