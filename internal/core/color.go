package core

// Color is a lipgloss-compatible color spec for a screen cell:
// a hex string ("#ff3366"), an ANSI index ("9"), or empty for the terminal default.
type Color string

// Palette used by the trainer's visuals.
const (
	ColorDefault Color = ""
	ColorCyan    Color = "#00fff0"
	ColorRed     Color = "#ff3366"
	ColorOrange  Color = "#ffaa00"
	ColorEmber   Color = "#ff6633"
	ColorGreen   Color = "#00ff88"
	ColorBlue    Color = "#4488ff"
	ColorSkin    Color = "#ffcc88"
	ColorWhite   Color = "#ffffff"
	ColorGrid    Color = "#1c2a3a"
	ColorDim     Color = "#555577"
	ColorBlood   Color = "#ff3333"
	ColorCoral   Color = "#ff6666"
	ColorFlame   Color = "#ff6b35"
	ColorNavy    Color = "#3366cc"
)
