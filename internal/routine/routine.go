// Package routine manages training routines: named, ordered playlists of
// mode/difficulty/duration steps played back to back.
package routine

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// Step is one run of a routine. Duration is in seconds and replaces the
// mode's own duration.
type Step struct {
	Mode       string  `json:"mode"`
	Difficulty string  `json:"difficulty"`
	Duration   float64 `json:"duration"`
}

// Routine is a named playlist.
type Routine struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Steps []Step `json:"steps"`
}

// Defaults returns the built-in routines.
func Defaults() []Routine {
	return []Routine{
		{
			ID:   "r_daily_warmup",
			Name: "Daily Warmup",
			Steps: []Step{
				{Mode: "tracking", Difficulty: "medium", Duration: 120},
				{Mode: "flicking", Difficulty: "hard", Duration: 120},
				{Mode: "switching", Difficulty: "medium", Duration: 60},
			},
		},
		{
			ID:   "r_click_master",
			Name: "Click Master",
			Steps: []Step{
				{Mode: "flicking", Difficulty: "easy", Duration: 60},
				{Mode: "flicking", Difficulty: "medium", Duration: 120},
				{Mode: "sixtarget", Difficulty: "hard", Duration: 120},
				{Mode: "reflex", Difficulty: "hard", Duration: 60},
			},
		},
	}
}

// Store persists the routine list.
type Store interface {
	LoadRoutines() ([]Routine, error)
	SaveRoutines(rs []Routine) error
}

// Progress describes the active step of a running routine.
type Progress struct {
	Step  Step
	Index int // 1-based
	Total int
	Name  string
}

// ErrNotFound is returned for an unknown routine ID.
var ErrNotFound = errors.New("routine: not found")

// Manager holds the routine list and the playback position.
// All methods are safe for concurrent use.
type Manager struct {
	mu       sync.Mutex
	store    Store
	log      *log.Logger
	routines []Routine

	active *Routine
	index  int
}

// NewManager loads routines from store. A nil store keeps them in memory.
// Load failures are logged and the defaults are used.
func NewManager(store Store, logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.Default()
	}
	m := &Manager{store: store, log: logger, routines: Defaults()}
	if store == nil {
		return m
	}
	rs, err := store.LoadRoutines()
	if err != nil {
		logger.Error("failed to load routines, using defaults", "err", err)
		return m
	}
	if rs != nil {
		m.routines = rs
	}
	return m
}

// List returns a copy of all routines.
func (m *Manager) List() []Routine {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Routine, len(m.routines))
	for i, r := range m.routines {
		out[i] = clone(r)
	}
	return out
}

// Get returns the routine with the given ID.
func (m *Manager) Get(id string) (Routine, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.find(id)
	if i < 0 {
		return Routine{}, false
	}
	return clone(m.routines[i]), true
}

// Create adds a routine with a fresh ID and persists the list.
func (m *Manager) Create(name string, steps []Step) (Routine, error) {
	if err := validate(name, steps); err != nil {
		return Routine{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	r := Routine{ID: "r_" + uuid.NewString(), Name: strings.TrimSpace(name), Steps: slices.Clone(steps)}
	m.routines = append(m.routines, r)
	return clone(r), m.save()
}

// Update replaces the name and steps of an existing routine.
func (m *Manager) Update(id, name string, steps []Step) error {
	if err := validate(name, steps); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.find(id)
	if i < 0 {
		return ErrNotFound
	}
	m.routines[i].Name = strings.TrimSpace(name)
	m.routines[i].Steps = slices.Clone(steps)
	return m.save()
}

// Delete removes a routine. Deleting the running routine stops it.
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.find(id)
	if i < 0 {
		return ErrNotFound
	}
	m.routines = slices.Delete(m.routines, i, i+1)
	if m.active != nil && m.active.ID == id {
		m.active = nil
		m.index = 0
	}
	return m.save()
}

// Start begins playback of a routine at its first step.
// It reports false for an unknown or empty routine.
func (m *Manager) Start(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.find(id)
	if i < 0 || len(m.routines[i].Steps) == 0 {
		return false
	}
	r := clone(m.routines[i])
	m.active = &r
	m.index = 0
	return true
}

// Current returns the active step, or nil when no routine is running.
func (m *Manager) Current() *Progress {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current()
}

// Next advances to the following step and returns it. When the routine is
// finished it stops playback and returns nil.
func (m *Manager) Next() *Progress {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.active == nil {
		return nil
	}
	m.index++
	if m.index >= len(m.active.Steps) {
		m.active = nil
		m.index = 0
		return nil
	}
	return m.current()
}

// Stop ends playback.
func (m *Manager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.active = nil
	m.index = 0
}

// Running reports whether a routine is being played.
func (m *Manager) Running() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active != nil
}

func (m *Manager) current() *Progress {
	if m.active == nil {
		return nil
	}
	return &Progress{
		Step:  m.active.Steps[m.index],
		Index: m.index + 1,
		Total: len(m.active.Steps),
		Name:  m.active.Name,
	}
}

func (m *Manager) find(id string) int {
	return slices.IndexFunc(m.routines, func(r Routine) bool { return r.ID == id })
}

func (m *Manager) save() error {
	if m.store == nil {
		return nil
	}
	if err := m.store.SaveRoutines(m.routines); err != nil {
		m.log.Error("failed to save routines", "err", err)
		return err
	}
	return nil
}

func validate(name string, steps []Step) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("routine: name is empty")
	}
	if len(steps) == 0 {
		return fmt.Errorf("routine: %q has no steps", name)
	}
	for i, s := range steps {
		if s.Mode == "" {
			return fmt.Errorf("routine: step %d has no mode", i+1)
		}
		if s.Duration < 0 {
			return fmt.Errorf("routine: step %d has a negative duration", i+1)
		}
	}
	return nil
}

func clone(r Routine) Routine {
	r.Steps = slices.Clone(r.Steps)
	return r
}
