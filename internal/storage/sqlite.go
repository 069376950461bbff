// Package storage provides SQLite-based persistence for the player profile:
// unlock flags and mission results.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/sortie/internal/core"
)

// Store manages the SQLite database connection for profile persistence.
type Store struct {
	db *sql.DB
}

// Result is one finished mission attempt.
type Result struct {
	ID         string // UUID, assigned by SaveResult when empty
	MissionID  string
	Outcome    string // "cleared" or "failed"
	Elapsed    float64
	Health     int
	Difficulty string
	CreatedAt  time.Time
}

// MissionStats contains aggregated statistics for a mission.
type MissionStats struct {
	MissionID  string
	Attempts   int
	Clears     int
	BestTime   float64 // Fastest clear in seconds, 0 if never cleared
	LastPlayed time.Time
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

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	// Run migrations
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS unlocks (
			flag TEXT PRIMARY KEY,
			unlocked_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS mission_results (
			id TEXT PRIMARY KEY,
			mission_id TEXT NOT NULL,
			outcome TEXT NOT NULL,
			elapsed REAL NOT NULL,
			health INTEGER NOT NULL DEFAULT 0,
			difficulty TEXT NOT NULL DEFAULT 'normal',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_results_mission ON mission_results(mission_id);
		CREATE INDEX IF NOT EXISTS idx_results_best ON mission_results(mission_id, outcome, elapsed);
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

// Unlocks returns every stored unlock flag.
func (s *Store) Unlocks() (core.Unlocks, error) {
	rows, err := s.db.Query(`SELECT flag FROM unlocks`)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query unlocks: %w", err)
	}
	defer rows.Close()

	out := make(core.Unlocks)
	for rows.Next() {
		var flag string
		if err := rows.Scan(&flag); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		out[flag] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

// SetUnlock sets or clears a flag. Only flags the engine reads are accepted.
func (s *Store) SetUnlock(flag string, on bool) error {
	if !core.IsKnownUnlock(flag) {
		return fmt.Errorf("storage: unknown unlock %q", flag)
	}
	var err error
	if on {
		_, err = s.db.Exec(`INSERT OR IGNORE INTO unlocks (flag) VALUES (?)`, flag)
	} else {
		_, err = s.db.Exec(`DELETE FROM unlocks WHERE flag = ?`, flag)
	}
	if err != nil {
		return fmt.Errorf("storage: cannot update unlock %s: %w", flag, err)
	}
	return nil
}

// GrantUnlocks sets every flag and returns the ones that were not set before.
func (s *Store) GrantUnlocks(flags []string) ([]string, error) {
	have, err := s.Unlocks()
	if err != nil {
		return nil, err
	}
	var granted []string
	for _, f := range flags {
		if have.Has(f) {
			continue
		}
		if err := s.SetUnlock(f, true); err != nil {
			return granted, err
		}
		have[f] = true
		granted = append(granted, f)
	}
	return granted, nil
}

// SaveResult records a finished attempt and returns its ID.
func (s *Store) SaveResult(r Result) (string, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.Difficulty == "" {
		r.Difficulty = "normal"
	}
	_, err := s.db.Exec(
		`INSERT INTO mission_results (id, mission_id, outcome, elapsed, health, difficulty)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.ID, r.MissionID, r.Outcome, r.Elapsed, r.Health, r.Difficulty,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save result: %w", err)
	}
	return r.ID, nil
}

// Results returns the most recent attempts at a mission, newest first.
func (s *Store) Results(missionID string, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, mission_id, outcome, elapsed, health, difficulty, created_at
		 FROM mission_results
		 WHERE mission_id = ?
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		missionID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query results: %w", err)
	}
	defer rows.Close()

	var entries []Result
	for rows.Next() {
		r, err := scanResult(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// BestClear returns the fastest clear of a mission, or nil if it was never
// cleared.
func (s *Store) BestClear(missionID string) (*Result, error) {
	row := s.db.QueryRow(
		`SELECT id, mission_id, outcome, elapsed, health, difficulty, created_at
		 FROM mission_results
		 WHERE mission_id = ? AND outcome = 'cleared'
		 ORDER BY elapsed ASC, health DESC
		 LIMIT 1`,
		missionID,
	)
	r, err := scanResult(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// Stats retrieves aggregated statistics for a mission.
func (s *Store) Stats(missionID string) (*MissionStats, error) {
	stats := &MissionStats{MissionID: missionID}
	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN outcome = 'cleared' THEN 1 ELSE 0 END), 0),
		        COALESCE(MIN(CASE WHEN outcome = 'cleared' THEN elapsed END), 0),
		        MAX(created_at)
		 FROM mission_results WHERE mission_id = ?`,
		missionID,
	).Scan(&stats.Attempts, &stats.Clears, &stats.BestTime, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get mission stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)
	return stats, nil
}

// AllStats retrieves statistics for every mission that has been played.
func (s *Store) AllStats() (map[string]*MissionStats, error) {
	rows, err := s.db.Query(
		`SELECT mission_id, COUNT(*),
		        SUM(CASE WHEN outcome = 'cleared' THEN 1 ELSE 0 END),
		        COALESCE(MIN(CASE WHEN outcome = 'cleared' THEN elapsed END), 0),
		        MAX(created_at)
		 FROM mission_results
		 GROUP BY mission_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all mission stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*MissionStats)
	for rows.Next() {
		var st MissionStats
		var lastPlayed any
		if err := rows.Scan(&st.MissionID, &st.Attempts, &st.Clears, &st.BestTime, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastPlayed = parseTime(lastPlayed)
		stats[st.MissionID] = &st
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}

// ClearResults removes all results for a mission.
func (s *Store) ClearResults(missionID string) error {
	_, err := s.db.Exec("DELETE FROM mission_results WHERE mission_id = ?", missionID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear results: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanResult(sc scanner) (Result, error) {
	var r Result
	var createdAt any
	err := sc.Scan(&r.ID, &r.MissionID, &r.Outcome, &r.Elapsed, &r.Health, &r.Difficulty, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return r, err
	}
	if err != nil {
		return r, fmt.Errorf("storage: cannot scan row: %w", err)
	}
	r.CreatedAt = parseTime(createdAt)
	return r, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
