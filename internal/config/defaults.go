package config

import (
	_ "embed"

	"github.com/vovakirdan/traingun/internal/weapon"
)

//go:embed defaults/modes.yaml
var defaultModesYAML []byte

//go:embed defaults/weapons.yaml
var defaultWeaponsYAML []byte

// DefaultModesConfig returns the built-in difficulty tables.
func DefaultModesConfig() ModesConfig {
	return ModesConfig{
		Tracking: Levels[TrackingLevel]{
			DifficultyEasy:   {Radius: 45, Speed: 0.5, Duration: 30},
			DifficultyMedium: {Radius: 30, Speed: 0.8, Duration: 30},
			DifficultyHard:   {Radius: 18, Speed: 1.3, Duration: 30},
		},
		Flicking: Levels[FlickingLevel]{
			DifficultyEasy:   {Radius: 40, Duration: 60},
			DifficultyMedium: {Radius: 25, Duration: 60},
			DifficultyHard:   {Radius: 15, Duration: 60},
		},
		Switching: Levels[SwitchingLevel]{
			DifficultyEasy:   {Radius: 35, Count: 2, Moving: false, Duration: 60},
			DifficultyMedium: {Radius: 25, Count: 3, Moving: false, Duration: 60},
			DifficultyHard:   {Radius: 18, Count: 5, Moving: true, Duration: 60},
		},
		Reflex: Levels[ReflexLevel]{
			DifficultyEasy:   {Radius: 40, Lifespan: 1.5, Interval: 1.2, Duration: 45},
			DifficultyMedium: {Radius: 28, Lifespan: 0.8, Interval: 0.8, Duration: 45},
			DifficultyHard:   {Radius: 16, Lifespan: 0.4, Interval: 0.5, Duration: 45},
		},
		SixTarget: Levels[SixTargetLevel]{
			DifficultyEasy:   {Radius: 35, Duration: 60},
			DifficultyMedium: {Radius: 25, Duration: 60},
			DifficultyHard:   {Radius: 16, Duration: 60},
		},
		Humanoid: Levels[HumanoidLevel]{
			DifficultyEasy:   {Scale: 1.3, BodyHP: 2, MaxOnScreen: 1, Duration: 60},
			DifficultyMedium: {Scale: 1.0, BodyHP: 3, MaxOnScreen: 2, Duration: 60},
			DifficultyHard:   {Scale: 0.7, BodyHP: 4, MaxOnScreen: 3, Duration: 60},
		},
	}
}

// DefaultWeaponsConfig returns the built-in weapon presets.
func DefaultWeaponsConfig() WeaponsConfig {
	return WeaponsConfig{
		Default: weapon.DefaultPreset,
		Presets: weapon.DefaultPresets(),
	}
}

// GetDefaultYAML returns the embedded default YAML for a config file name.
func GetDefaultYAML(name string) []byte {
	switch name {
	case "modes":
		return defaultModesYAML
	case "weapons":
		return defaultWeaponsYAML
	default:
		return nil
	}
}
