package core

// RuntimeConfig contains configuration passed to the engine at initialization.
// The engine uses this to size its viewport and seed its RNG.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Frames per second (default 60)
	Seed     int64 // RNG seed for deterministic spawning
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// Viewport returns the play area in virtual pixels.
func (c RuntimeConfig) Viewport() (w, h float64) {
	return float64(c.ScreenW * CellWidth), float64(c.ScreenH * CellHeight)
}
