package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadModes loads the mode difficulty tables.
// Search order: customPath -> ~/.traingun/configs/modes.yaml -> ./configs/modes.yaml -> embedded default
func LoadModes(customPath string) (ModesConfig, error) {
	cfg, err := load("modes.yaml", customPath, defaultModesYAML, DefaultModesConfig)
	if err != nil {
		return cfg, err
	}
	fillModes(&cfg)
	return cfg, nil
}

// LoadWeapons loads the weapon presets.
// Search order: customPath -> ~/.traingun/configs/weapons.yaml -> ./configs/weapons.yaml -> embedded default
func LoadWeapons(customPath string) (WeaponsConfig, error) {
	cfg, err := load("weapons.yaml", customPath, defaultWeaponsYAML, DefaultWeaponsConfig)
	if err != nil {
		return cfg, err
	}
	if len(cfg.Presets) == 0 {
		cfg.Presets = DefaultWeaponsConfig().Presets
	}
	return cfg, nil
}

func load[T any](filename, customPath string, embedded []byte, fallback func() T) (T, error) {
	var cfg T

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(filename); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			var user T
			if err := yaml.Unmarshal(data, &user); err == nil {
				return user, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", filename)); err == nil {
		var local T
		if err := yaml.Unmarshal(data, &local); err == nil {
			return local, nil
		}
	}

	// Use embedded default YAML
	var embeddedCfg T
	if err := yaml.Unmarshal(embedded, &embeddedCfg); err != nil {
		return fallback(), nil // Fallback to hardcoded if embed fails
	}
	return embeddedCfg, nil
}

// fillModes backfills any mode table a partial file left out.
func fillModes(cfg *ModesConfig) {
	def := DefaultModesConfig()
	if len(cfg.Tracking) == 0 {
		cfg.Tracking = def.Tracking
	}
	if len(cfg.Flicking) == 0 {
		cfg.Flicking = def.Flicking
	}
	if len(cfg.Switching) == 0 {
		cfg.Switching = def.Switching
	}
	if len(cfg.Reflex) == 0 {
		cfg.Reflex = def.Reflex
	}
	if len(cfg.SixTarget) == 0 {
		cfg.SixTarget = def.SixTarget
	}
	if len(cfg.Humanoid) == 0 {
		cfg.Humanoid = def.Humanoid
	}
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".traingun", "configs", filename)
}
