// Package storage provides SQLite-based persistence for training results and
// user settings. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies.
package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/traingun/internal/core"
)

// MaxResults is how many results are kept; older runs are dropped on insert.
const MaxResults = 500

// Store manages the SQLite database connection for result and settings persistence.
type Store struct {
	db    *sql.DB
	log   *log.Logger
	clock func() time.Time
}

// DailyBest is the best run of one local calendar day.
type DailyBest struct {
	Day      time.Time // local midnight
	Score    int
	Accuracy float64
}

// ModeStats contains aggregated statistics for a mode.
type ModeStats struct {
	Mode        string
	Runs        int
	Best        int
	AvgScore    float64
	AvgAccuracy float64
	LastPlayed  time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	// Open database
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// SQLite allows one writer; SSH sessions share this handle.
	db.SetMaxOpenConns(1)

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db, log: log.Default(), clock: time.Now}

	// Run migrations
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// SetLogger replaces the logger used to report corrupt settings.
func (s *Store) SetLogger(l *log.Logger) {
	if l != nil {
		s.log = l
	}
}

// SetClock replaces the time source used to stamp new results.
func (s *Store) SetClock(clock func() time.Time) {
	if clock != nil {
		s.clock = clock
	}
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS results (
			id TEXT PRIMARY KEY,
			mode TEXT NOT NULL,
			difficulty TEXT NOT NULL,
			score INTEGER NOT NULL,
			accuracy REAL NOT NULL,
			avg_reaction_ms INTEGER,
			elapsed_secs INTEGER NOT NULL DEFAULT 0,
			hits INTEGER NOT NULL DEFAULT 0,
			misses INTEGER NOT NULL DEFAULT 0,
			max_combo INTEGER NOT NULL DEFAULT 0,
			headshots INTEGER NOT NULL DEFAULT 0,
			shot_history TEXT NOT NULL DEFAULT '[]',
			created_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_results_mode ON results(mode);
		CREATE INDEX IF NOT EXISTS idx_results_created ON results(created_at);
		CREATE INDEX IF NOT EXISTS idx_results_top ON results(mode, score DESC);

		CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveResult records a finished run and returns it with its ID and timestamp
// filled in. Only the newest MaxResults rows survive the insert.
func (s *Store) SaveResult(r core.RunResult) (core.RunResult, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = s.clock()
	}

	shots := r.ShotHistory
	if shots == nil {
		shots = []core.ShotRecord{}
	}
	history, err := json.Marshal(shots)
	if err != nil {
		return r, fmt.Errorf("storage: cannot encode shot history: %w", err)
	}

	var avg sql.NullInt64
	if r.AvgReactionMs != nil {
		avg = sql.NullInt64{Int64: int64(*r.AvgReactionMs), Valid: true}
	}

	tx, err := s.db.Begin()
	if err != nil {
		return r, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO results
		 (id, mode, difficulty, score, accuracy, avg_reaction_ms, elapsed_secs,
		  hits, misses, max_combo, headshots, shot_history, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Mode, r.Difficulty, r.Score, r.Accuracy, avg, r.ElapsedSeconds,
		r.Hits, r.Misses, r.MaxCombo, r.Headshots, string(history), r.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return r, fmt.Errorf("storage: cannot save result: %w", err)
	}

	_, err = tx.Exec(
		`DELETE FROM results WHERE id IN (
		   SELECT id FROM results ORDER BY created_at DESC, rowid DESC LIMIT -1 OFFSET ?
		 )`,
		MaxResults,
	)
	if err != nil {
		return r, fmt.Errorf("storage: cannot trim results: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return r, fmt.Errorf("storage: cannot commit result: %w", err)
	}

	return r, nil
}

const resultColumns = `id, mode, difficulty, score, accuracy, avg_reaction_ms, elapsed_secs,
	hits, misses, max_combo, headshots, shot_history, created_at`

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanResult(row rowScanner) (core.RunResult, error) {
	var (
		r       core.RunResult
		avg     sql.NullInt64
		history string
		created int64
	)
	if err := row.Scan(
		&r.ID, &r.Mode, &r.Difficulty, &r.Score, &r.Accuracy, &avg, &r.ElapsedSeconds,
		&r.Hits, &r.Misses, &r.MaxCombo, &r.Headshots, &history, &created,
	); err != nil {
		return r, err
	}

	if avg.Valid {
		v := int(avg.Int64)
		r.AvgReactionMs = &v
	}
	if err := json.Unmarshal([]byte(history), &r.ShotHistory); err != nil {
		return r, fmt.Errorf("corrupt shot history for %s: %w", r.ID, err)
	}
	r.CreatedAt = time.UnixMilli(created)
	return r, nil
}

// Results returns the most recent limit results in chronological order.
// An empty mode selects every mode; a non-positive limit defaults to 50.
func (s *Store) Results(mode string, limit int) ([]core.RunResult, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.Query(
		`SELECT `+resultColumns+`
		 FROM results
		 WHERE ? = '' OR mode = ?
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		mode, mode, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query results: %w", err)
	}
	defer rows.Close()

	var results []core.RunResult
	for rows.Next() {
		r, err := scanResult(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	// Newest first from the query; callers want oldest first.
	for i, j := 0, len(results)-1; i < j; i, j = i+1, j-1 {
		results[i], results[j] = results[j], results[i]
	}

	return results, nil
}

// BestScore returns the highest score for the given mode.
// ok is false when the mode has no results.
func (s *Store) BestScore(mode string) (int, bool, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM results WHERE mode = ?",
		mode,
	).Scan(&score)

	if err != nil {
		return 0, false, fmt.Errorf("storage: cannot query best score: %w", err)
	}

	if !score.Valid {
		return 0, false, nil
	}

	return int(score.Int64), true, nil
}

// BestScores returns the best run of each listed mode, or nil for a mode
// without results. Ties go to the earlier run.
func (s *Store) BestScores(modes []string) (map[string]*core.RunResult, error) {
	best := make(map[string]*core.RunResult, len(modes))
	for _, mode := range modes {
		row := s.db.QueryRow(
			`SELECT `+resultColumns+`
			 FROM results
			 WHERE mode = ?
			 ORDER BY score DESC, created_at ASC, rowid ASC
			 LIMIT 1`,
			mode,
		)
		r, err := scanResult(row)
		if err == sql.ErrNoRows {
			best[mode] = nil
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("storage: cannot query best result: %w", err)
		}
		best[mode] = &r
	}
	return best, nil
}

// DailyBest returns one entry per local calendar day with the best score of
// that day, for runs in the last days days before now. Entries are
// chronological. An empty mode selects every mode.
func (s *Store) DailyBest(mode string, days int, now time.Time) ([]DailyBest, error) {
	if days <= 0 {
		days = 30
	}
	cutoff := now.Add(-time.Duration(days) * 24 * time.Hour)

	rows, err := s.db.Query(
		`SELECT score, accuracy, created_at
		 FROM results
		 WHERE (? = '' OR mode = ?) AND created_at >= ?
		 ORDER BY created_at ASC`,
		mode, mode, cutoff.UnixMilli(),
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query daily best: %w", err)
	}
	defer rows.Close()

	byDay := make(map[time.Time]*DailyBest)
	for rows.Next() {
		var (
			score    int
			accuracy float64
			created  int64
		)
		if err := rows.Scan(&score, &accuracy, &created); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}

		t := time.UnixMilli(created).In(now.Location())
		day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
		if cur, ok := byDay[day]; !ok || score > cur.Score {
			byDay[day] = &DailyBest{Day: day, Score: score, Accuracy: accuracy}
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	out := make([]DailyBest, 0, len(byDay))
	for _, d := range byDay {
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Day.Before(out[j].Day)
	})

	return out, nil
}

// ModeStats retrieves aggregated statistics for a specific mode.
func (s *Store) ModeStats(mode string) (*ModeStats, error) {
	stats := &ModeStats{Mode: mode}

	var last sql.NullInt64
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0),
		        COALESCE(AVG(accuracy), 0), MAX(created_at)
		 FROM results WHERE mode = ?`,
		mode,
	).Scan(&stats.Runs, &stats.Best, &stats.AvgScore, &stats.AvgAccuracy, &last)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get mode stats: %w", err)
	}

	stats.AvgScore = float64(int(stats.AvgScore + 0.5))
	stats.AvgAccuracy = core.RoundTo(stats.AvgAccuracy, 1)
	if last.Valid {
		stats.LastPlayed = time.UnixMilli(last.Int64)
	}

	return stats, nil
}

// ClearAll deletes every result and every settings record.
func (s *Store) ClearAll() error {
	_, err := s.db.Exec("DELETE FROM results; DELETE FROM settings;")
	if err != nil {
		return fmt.Errorf("storage: cannot clear data: %w", err)
	}
	return nil
}
