package weapon

// Preset keys in the order the number keys select them.
const (
	Standard = "standard"
	Vandal   = "vandal"
	Sheriff  = "sheriff"
	Operator = "operator"
)

// PresetOrder maps weapon slots 1-4 to preset keys.
var PresetOrder = []string{Standard, Vandal, Sheriff, Operator}

// DefaultPreset is equipped when an engine is constructed.
const DefaultPreset = Vandal

// DefaultPresets returns the built-in weapon table.
func DefaultPresets() map[string]Spec {
	return map[string]Spec{
		Standard: {
			Name:         "Standard",
			Type:         "pistol",
			Damage:       100,
			FireInterval: 0,
			MagazineSize: 9999,
			ReloadTime:   0,
			Recoil:       Recoil{Vertical: 0, Horizontal: 0, Recovery: 1, Max: 0},
			Zoom:         1,
			ScopeSpeed:   0.2,
		},
		Vandal: {
			Name:         "Vandal",
			Type:         "rifle",
			Damage:       40,
			FireInterval: 100,
			MagazineSize: 25,
			ReloadTime:   2500,
			Recoil:       Recoil{Vertical: 2, Horizontal: 1, Recovery: 0.15, Max: 50},
			CanScope:     true,
			Zoom:         1.25,
			ScopeSpeed:   0.2,
		},
		Sheriff: {
			Name:         "Sheriff",
			Type:         "pistol",
			Damage:       55,
			FireInterval: 250,
			MagazineSize: 6,
			ReloadTime:   2000,
			Recoil:       Recoil{Vertical: 8, Horizontal: 0.5, Recovery: 0.2, Max: 40},
			Zoom:         1,
			ScopeSpeed:   0.2,
		},
		Operator: {
			Name:         "Operator",
			Type:         "sniper",
			Damage:       150,
			FireInterval: 1200,
			MagazineSize: 5,
			ReloadTime:   3700,
			Recoil:       Recoil{Vertical: 15, Horizontal: 2, Recovery: 0.05, Max: 80},
			CanScope:     true,
			Zoom:         2.5,
			ScopeSpeed:   0.2,
		},
	}
}

// Slot returns the preset key for a 1-based weapon slot.
func Slot(n int) (string, bool) {
	if n < 1 || n > len(PresetOrder) {
		return "", false
	}
	return PresetOrder[n-1], true
}
