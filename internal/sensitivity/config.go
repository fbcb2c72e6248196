package sensitivity

import (
	"math"

	"github.com/vovakirdan/traingun/internal/core"
)

// Config is the persisted sensitivity record.
// Cm360 and CursorScale are derived from the other fields plus the viewport
// width; always build or change a Config through Recompute, never by hand.
type Config struct {
	Game        string  `json:"game"`
	Sensitivity float64 `json:"sensitivity"`
	DPI         int     `json:"dpi"`
	Cm360       float64 `json:"cm360"`
	CursorScale float64 `json:"cursorScale"`
}

// Defaults for an absent record.
const (
	DefaultGame        = "cs2"
	DefaultSensitivity = 2.0
	DefaultDPI         = 800
)

// minSensitivity is the floor applied by Adjust.
const minSensitivity = 0.01

// DefaultConfig returns the documented default record for the given viewport width.
func DefaultConfig(viewportWidth float64) Config {
	return Config{
		Game:        DefaultGame,
		Sensitivity: DefaultSensitivity,
		DPI:         DefaultDPI,
	}.Recompute(viewportWidth)
}

// Recompute returns a copy with Cm360 and CursorScale derived from the inputs.
// Missing inputs are replaced with defaults first.
func (c Config) Recompute(viewportWidth float64) Config {
	if c.Game == "" {
		c.Game = DefaultGame
	}
	if c.Sensitivity <= 0 {
		c.Sensitivity = DefaultSensitivity
	}
	if c.DPI <= 0 {
		c.DPI = DefaultDPI
	}
	if viewportWidth <= 0 {
		viewportWidth = DefaultViewportWidth
	}
	r := FromGameSettings(c.Game, c.Sensitivity, c.DPI, viewportWidth)
	c.Cm360 = r.Cm360
	c.CursorScale = r.CursorScale
	return c
}

// StepSize returns the hot-key increment for the current sensitivity:
// 0.05 below 1, 0.1 from 1 up to 5, and 0.5 from 5 upward.
func StepSize(current float64) float64 {
	switch {
	case current >= 5:
		return 0.5
	case current >= 1:
		return 0.1
	default:
		return 0.05
	}
}

// Adjust steps the sensitivity once in direction (+1 or -1), rounds to two
// decimals with a floor of 0.01, and recomputes the derived values.
// It reports false when the value did not change.
func (c Config) Adjust(direction int, viewportWidth float64) (Config, bool) {
	step := StepSize(c.Sensitivity)
	next := core.RoundTo(c.Sensitivity+float64(direction)*step, 2)
	next = math.Max(minSensitivity, next)
	if next == c.Sensitivity {
		return c, false
	}
	c.Sensitivity = next
	return c.Recompute(viewportWidth), true
}
