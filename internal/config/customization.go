package config

import (
	"regexp"
	"strings"

	"github.com/vovakirdan/traingun/internal/core"
)

// Crosshair styles.
const (
	CrosshairCross    = "cross"
	CrosshairCrossDot = "crossdot"
	CrosshairDot      = "dot"
	CrosshairCircle   = "circle"
)

// CrosshairStyles lists the styles in settings order.
var CrosshairStyles = []string{CrosshairCross, CrosshairCrossDot, CrosshairDot, CrosshairCircle}

// CrosshairConfig is the persisted crosshair look. Sizes are in virtual pixels.
type CrosshairConfig struct {
	Style     string  `json:"style"`
	Color     string  `json:"color"`
	Size      float64 `json:"size"`
	Gap       float64 `json:"gap"`
	Thickness float64 `json:"thickness"`
	DotSize   float64 `json:"dotSize"`
	Opacity   float64 `json:"opacity"`
}

// Customization is the persisted visual customization record.
type Customization struct {
	TargetColor   string          `json:"targetColor"`
	TargetOpacity float64         `json:"targetOpacity"`
	Crosshair     CrosshairConfig `json:"crosshair"`
}

// DefaultCustomization returns the record used when none is stored.
func DefaultCustomization() Customization {
	return Customization{
		TargetColor:   string(core.ColorRed),
		TargetOpacity: 0.9,
		Crosshair: CrosshairConfig{
			Style:     CrosshairCross,
			Color:     string(core.ColorCyan),
			Size:      12,
			Gap:       4,
			Thickness: 2,
			DotSize:   2,
			Opacity:   1,
		},
	}
}

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Normalize fills missing or invalid fields with defaults and clamps opacities to [0.1, 1].
func (c Customization) Normalize() Customization {
	def := DefaultCustomization()

	if !hexColor.MatchString(c.TargetColor) {
		c.TargetColor = def.TargetColor
	}
	if c.TargetOpacity == 0 {
		c.TargetOpacity = def.TargetOpacity
	}
	c.TargetOpacity = core.ClampF(c.TargetOpacity, 0.1, 1)

	ch := &c.Crosshair
	ch.Style = strings.ToLower(ch.Style)
	if !validStyle(ch.Style) {
		ch.Style = def.Crosshair.Style
	}
	if !hexColor.MatchString(ch.Color) {
		ch.Color = def.Crosshair.Color
	}
	if ch.Size <= 0 {
		ch.Size = def.Crosshair.Size
	}
	if ch.Gap <= 0 {
		ch.Gap = def.Crosshair.Gap
	}
	if ch.Thickness <= 0 {
		ch.Thickness = def.Crosshair.Thickness
	}
	if ch.DotSize <= 0 {
		ch.DotSize = def.Crosshair.DotSize
	}
	if ch.Opacity == 0 {
		ch.Opacity = def.Crosshair.Opacity
	}
	ch.Opacity = core.ClampF(ch.Opacity, 0.1, 1)

	return c
}

func validStyle(s string) bool {
	for _, v := range CrosshairStyles {
		if v == s {
			return true
		}
	}
	return false
}
