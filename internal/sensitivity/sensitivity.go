// Package sensitivity converts real-game mouse settings into the trainer's
// cursor multiplier.
//
// The common unit is cm/360: how many centimeters of physical mouse travel
// turn the in-game view a full circle. A game's native sensitivity maps to
// cm/360 through a per-game yaw coefficient:
//
//	cm360 = (2.54 * 360) / (dpi * sensitivity * coefficient)
//
// The trainer treats its viewport width as a horizontal FOV (103 degrees by
// default), so one full rotation equals width * 360/fov pixels of crosshair
// travel. The cursor scale is that pixel distance divided by the mouse counts
// a full rotation takes.
package sensitivity

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/traingun/internal/core"
)

// FallbackCm360 is returned for unrecognized games.
const FallbackCm360 = 30.0

// DefaultFOV is the horizontal field of view the viewport stands in for.
const DefaultFOV = 103.0

// DefaultViewportWidth is used when the real viewport width is unknown.
const DefaultViewportWidth = 1920.0

// Range is a game's native sensitivity input range.
type Range struct {
	Min  float64
	Max  float64
	Step float64
}

// Game describes a supported external game.
type Game struct {
	ID          string
	Name        string
	Coefficient float64
	DefaultSens float64
	Range       Range
}

var games = []Game{
	{ID: "cs2", Name: "CS2 / CS:GO", Coefficient: 0.022, DefaultSens: 2.0, Range: Range{0.1, 10, 0.01}},
	{ID: "valorant", Name: "Valorant", Coefficient: 0.07, DefaultSens: 0.6, Range: Range{0.01, 5, 0.01}},
	{ID: "apex", Name: "Apex Legends", Coefficient: 0.022, DefaultSens: 2.0, Range: Range{0.1, 10, 0.1}},
	{ID: "overwatch", Name: "Overwatch 2", Coefficient: 0.0066, DefaultSens: 6.0, Range: Range{0.1, 100, 0.1}},
	{ID: "fortnite", Name: "Fortnite", Coefficient: 0.5555, DefaultSens: 0.06, Range: Range{0.01, 1, 0.01}},
	{ID: "r6siege", Name: "Rainbow Six Siege", Coefficient: 0.00572958, DefaultSens: 10, Range: Range{1, 100, 1}},
}

// DPIPresets are the common mouse DPI values offered by the settings UI.
var DPIPresets = []int{400, 800, 1000, 1200, 1600, 3200}

// Games returns the supported games in display order.
func Games() []Game {
	out := make([]Game, len(games))
	copy(out, games)
	return out
}

// Lookup returns the game with the given id.
func Lookup(id string) (Game, bool) {
	for _, g := range games {
		if g.ID == id {
			return g, true
		}
	}
	return Game{}, false
}

// Cm360 returns the cm/360 for a game's native sensitivity, rounded to two
// decimals. Unknown games yield FallbackCm360.
func Cm360(gameID string, sens float64, dpi int) float64 {
	g, ok := Lookup(gameID)
	if !ok {
		log.Warn("unknown game, using fallback cm/360", "game", gameID, "fallback", FallbackCm360)
		return FallbackCm360
	}
	cm := (2.54 * 360) / (float64(dpi) * sens * g.Coefficient)
	return core.RoundTo(cm, 2)
}

// CursorScale returns the multiplier applied to raw pointer deltas, rounded
// to four decimals. A non-positive fov selects DefaultFOV.
func CursorScale(cm360 float64, dpi int, viewportWidth, fov float64) float64 {
	if fov <= 0 {
		fov = DefaultFOV
	}
	fullRotationPixels := viewportWidth * (360 / fov)
	countsPerRotation := (cm360 / 2.54) * float64(dpi)
	return core.RoundTo(fullRotationPixels/countsPerRotation, 4)
}

// Result is the pair of derived values for a set of game settings.
type Result struct {
	Cm360       float64
	CursorScale float64
}

// FromGameSettings converts game settings straight to cm/360 and cursor scale.
// This is the entry point other components use.
func FromGameSettings(gameID string, sens float64, dpi int, viewportWidth float64) Result {
	cm := Cm360(gameID, sens, dpi)
	return Result{
		Cm360:       cm,
		CursorScale: CursorScale(cm, dpi, viewportWidth, DefaultFOV),
	}
}
