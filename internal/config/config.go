// Package config provides YAML-based mode and weapon configuration loading
// plus the user customization and keybind records for the trainer.
package config

import (
	"github.com/vovakirdan/traingun/internal/weapon"
)

// TrackingLevel configures the tracking mode at one difficulty.
type TrackingLevel struct {
	Radius   float64 `yaml:"radius"`
	Speed    float64 `yaml:"speed"`
	Duration float64 `yaml:"duration"`
}

// FlickingLevel configures the flicking mode at one difficulty.
type FlickingLevel struct {
	Radius   float64 `yaml:"radius"`
	Duration float64 `yaml:"duration"`
}

// SwitchingLevel configures the target switching mode at one difficulty.
type SwitchingLevel struct {
	Radius   float64 `yaml:"radius"`
	Count    int     `yaml:"count"`
	Moving   bool    `yaml:"moving"`
	Duration float64 `yaml:"duration"`
}

// ReflexLevel configures the reflex mode at one difficulty.
type ReflexLevel struct {
	Radius   float64 `yaml:"radius"`
	Lifespan float64 `yaml:"lifespan"` // seconds a target stays up
	Interval float64 `yaml:"interval"` // minimum seconds between spawns
	Duration float64 `yaml:"duration"`
}

// SixTargetLevel configures the six-target mode at one difficulty.
type SixTargetLevel struct {
	Radius   float64 `yaml:"radius"`
	Duration float64 `yaml:"duration"`
}

// HumanoidLevel configures the humanoid mode at one difficulty.
type HumanoidLevel struct {
	Scale       float64 `yaml:"scale"`
	BodyHP      int     `yaml:"body_hp"`
	MaxOnScreen int     `yaml:"max_on_screen"`
	Duration    float64 `yaml:"duration"`
}

// ModesConfig holds the difficulty tables of every mode.
type ModesConfig struct {
	Tracking  Levels[TrackingLevel]  `yaml:"tracking"`
	Flicking  Levels[FlickingLevel]  `yaml:"flicking"`
	Switching Levels[SwitchingLevel] `yaml:"switching"`
	Reflex    Levels[ReflexLevel]    `yaml:"reflex"`
	SixTarget Levels[SixTargetLevel] `yaml:"sixtarget"`
	Humanoid  Levels[HumanoidLevel]  `yaml:"humanoid"`
}

// WeaponsConfig holds the weapon presets and the one equipped at start.
type WeaponsConfig struct {
	Default string                 `yaml:"default"`
	Presets map[string]weapon.Spec `yaml:"presets"`
}

// Preset returns a preset by key, falling back to the built-in table.
func (w WeaponsConfig) Preset(key string) (weapon.Spec, bool) {
	if spec, ok := w.Presets[key]; ok {
		return spec, true
	}
	spec, ok := weapon.DefaultPresets()[key]
	return spec, ok
}

// DefaultWeapon returns the preset equipped when an engine starts.
func (w WeaponsConfig) DefaultWeapon() weapon.Spec {
	if spec, ok := w.Preset(w.Default); ok {
		return spec
	}
	return weapon.DefaultPresets()[weapon.DefaultPreset]
}
