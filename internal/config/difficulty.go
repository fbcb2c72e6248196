package config

import "strings"

// Difficulty is a named difficulty level.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Difficulties lists the levels in menu order.
func Difficulties() []Difficulty {
	return []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}
}

// ParseDifficulty normalizes a name. Unknown names map to medium and report false.
func ParseDifficulty(name string) (Difficulty, bool) {
	switch d := Difficulty(strings.ToLower(strings.TrimSpace(name))); d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return d, true
	default:
		return DifficultyMedium, false
	}
}

// Levels maps difficulty names to a mode's per-level settings.
type Levels[T any] map[Difficulty]T

// For returns the settings for d, falling back to medium for unknown levels.
func (l Levels[T]) For(d Difficulty) T {
	if v, ok := l[d]; ok {
		return v
	}
	return l[DifficultyMedium]
}
