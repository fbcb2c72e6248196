package core

import "time"

// ShotRecord is one fired shot with coordinates normalized to the viewport.
// TX/TY locate the nearest active target at the time of the shot, or the
// viewport center when there was none.
type ShotRecord struct {
	X   float64 `json:"x"`
	Y   float64 `json:"y"`
	TX  float64 `json:"tx"`
	TY  float64 `json:"ty"`
	Hit bool    `json:"hit"`
	T   float64 `json:"t"` // seconds into the run
}

// RunResult is the immutable record of a finished training run.
type RunResult struct {
	ID             string
	Mode           string
	Difficulty     string
	Score          int
	Accuracy       float64 // percent, one decimal
	AvgReactionMs  *int    // nil when nothing was hit
	ElapsedSeconds int
	Hits           int
	Misses         int
	MaxCombo       int
	Headshots      int
	ShotHistory    []ShotRecord
	CreatedAt      time.Time
}
