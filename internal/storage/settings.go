package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vovakirdan/traingun/internal/config"
	"github.com/vovakirdan/traingun/internal/routine"
	"github.com/vovakirdan/traingun/internal/sensitivity"
)

// Settings keys.
const (
	KeySensitivity   = "sensitivity"
	KeyCustomization = "customization"
	KeyKeybinds      = "keybinds"
	KeyRoutines      = "routines"
)

// loadJSON decodes the record stored under key into v.
// It reports false when the key is absent or the value is corrupt; a corrupt
// value is logged and left in place so it can be inspected.
func (s *Store) loadJSON(key string, v any) (bool, error) {
	var raw string
	err := s.db.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("storage: cannot read %s: %w", key, err)
	}

	if err := json.Unmarshal([]byte(raw), v); err != nil {
		s.log.Error("corrupt settings record, using defaults", "key", key, "err", err)
		return false, nil
	}
	return true, nil
}

func (s *Store) saveJSON(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("storage: cannot encode %s: %w", key, err)
	}

	_, err = s.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, string(raw),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save %s: %w", key, err)
	}
	return nil
}

// LoadSensitivity returns the stored sensitivity record, or the default.
// Derived fields are computed for the default viewport width; callers
// recompute for their own viewport.
func (s *Store) LoadSensitivity() (sensitivity.Config, error) {
	def := sensitivity.DefaultConfig(sensitivity.DefaultViewportWidth)

	var cfg sensitivity.Config
	ok, err := s.loadJSON(KeySensitivity, &cfg)
	if err != nil || !ok {
		return def, err
	}
	return cfg.Recompute(sensitivity.DefaultViewportWidth), nil
}

// SaveSensitivity stores the sensitivity record.
func (s *Store) SaveSensitivity(cfg sensitivity.Config) error {
	return s.saveJSON(KeySensitivity, cfg)
}

// LoadCustomization returns the stored customization, normalized, or the default.
func (s *Store) LoadCustomization() (config.Customization, error) {
	var c config.Customization
	ok, err := s.loadJSON(KeyCustomization, &c)
	if err != nil || !ok {
		return config.DefaultCustomization(), err
	}
	return c.Normalize(), nil
}

// SaveCustomization stores the customization record.
func (s *Store) SaveCustomization(c config.Customization) error {
	return s.saveJSON(KeyCustomization, c.Normalize())
}

// LoadKeybinds returns the defaults overlaid with the stored overrides.
func (s *Store) LoadKeybinds() (config.Keybinds, error) {
	def := config.DefaultKeybinds()

	var overrides config.Keybinds
	ok, err := s.loadJSON(KeyKeybinds, &overrides)
	if err != nil || !ok {
		return def, err
	}

	merged, dropped := def.Merge(overrides)
	if len(dropped) > 0 {
		s.log.Warn("ignoring unknown keybind actions", "actions", dropped)
	}
	return merged, nil
}

// SaveKeybinds stores the keybind overrides.
func (s *Store) SaveKeybinds(k config.Keybinds) error {
	return s.saveJSON(KeyKeybinds, k)
}

// LoadRoutines returns the stored routines, or the built-in ones.
func (s *Store) LoadRoutines() ([]routine.Routine, error) {
	var rs []routine.Routine
	ok, err := s.loadJSON(KeyRoutines, &rs)
	if err != nil || !ok || rs == nil {
		return routine.Defaults(), err
	}
	return rs, nil
}

// SaveRoutines stores the routine list.
func (s *Store) SaveRoutines(rs []routine.Routine) error {
	if rs == nil {
		rs = []routine.Routine{}
	}
	return s.saveJSON(KeyRoutines, rs)
}
