// Package storage keeps the history of finished runs in SQLite.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for run history.
type Store struct {
	db *sql.DB
}

// Run is one finished game.
type Run struct {
	ID             int64
	Seed           int64
	Score          time.Duration // Survival time
	Strikes        int
	MeteorsSpawned int
	MeteorsShot    int
	MeteorsDodged  int
	GunPickups     int
	BoxPickups     int
	Shots          int
	Difficulty     string
	CreatedAt      time.Time
}

// Summary aggregates every stored run.
type Summary struct {
	Runs        int
	Best        time.Duration
	Average     time.Duration
	MeteorsShot int
	LastPlayed  time.Time
}

const runColumns = `id, seed, score_ms, strikes, meteors_spawned, meteors_shot,
	meteors_dodged, gun_pickups, box_pickups, shots, difficulty, created_at`

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}
	return store, nil
}

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			seed INTEGER NOT NULL,
			score_ms INTEGER NOT NULL,
			strikes INTEGER NOT NULL DEFAULT 0,
			meteors_spawned INTEGER NOT NULL DEFAULT 0,
			meteors_shot INTEGER NOT NULL DEFAULT 0,
			meteors_dodged INTEGER NOT NULL DEFAULT 0,
			gun_pickups INTEGER NOT NULL DEFAULT 0,
			box_pickups INTEGER NOT NULL DEFAULT 0,
			shots INTEGER NOT NULL DEFAULT 0,
			difficulty TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_score ON runs(score_ms DESC);
		CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC);
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

// SaveRun records a finished run and returns its ID.
func (s *Store) SaveRun(r Run) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO runs (seed, score_ms, strikes, meteors_spawned, meteors_shot,
			meteors_dodged, gun_pickups, box_pickups, shots, difficulty)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Seed, r.Score.Milliseconds(), r.Strikes, r.MeteorsSpawned, r.MeteorsShot,
		r.MeteorsDodged, r.GunPickups, r.BoxPickups, r.Shots, r.Difficulty,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// TopRuns returns the longest runs, best first. Ties go to the older run.
func (s *Store) TopRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryRuns(`SELECT `+runColumns+` FROM runs ORDER BY score_ms DESC, id ASC LIMIT ?`, limit)
}

// RecentRuns returns the latest runs, newest first.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryRuns(`SELECT `+runColumns+` FROM runs ORDER BY id DESC LIMIT ?`, limit)
}

// AllRuns returns every stored run, best first.
func (s *Store) AllRuns() ([]Run, error) {
	return s.queryRuns(`SELECT ` + runColumns + ` FROM runs ORDER BY score_ms DESC, id ASC`)
}

func (s *Store) queryRuns(query string, args ...any) ([]Run, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var scoreMS int64
		var createdAt any
		if err := rows.Scan(&r.ID, &r.Seed, &scoreMS, &r.Strikes, &r.MeteorsSpawned, &r.MeteorsShot,
			&r.MeteorsDodged, &r.GunPickups, &r.BoxPickups, &r.Shots, &r.Difficulty, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Score = time.Duration(scoreMS) * time.Millisecond
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// BestScore returns the longest survival time, or zero when nothing was played.
func (s *Store) BestScore() (time.Duration, error) {
	var best sql.NullInt64
	if err := s.db.QueryRow("SELECT MAX(score_ms) FROM runs").Scan(&best); err != nil {
		return 0, fmt.Errorf("storage: cannot query best score: %w", err)
	}
	if !best.Valid {
		return 0, nil
	}
	return time.Duration(best.Int64) * time.Millisecond, nil
}

// Summary aggregates all runs.
func (s *Store) Summary() (*Summary, error) {
	var sum Summary
	var bestMS, shot int64
	var avgMS float64
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score_ms), 0), COALESCE(AVG(score_ms), 0), COALESCE(SUM(meteors_shot), 0)
		 FROM runs`,
	).Scan(&sum.Runs, &bestMS, &avgMS, &shot)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot summarize runs: %w", err)
	}
	sum.Best = time.Duration(bestMS) * time.Millisecond
	sum.Average = time.Duration(avgMS * float64(time.Millisecond))
	sum.MeteorsShot = int(shot)

	var last any
	err = s.db.QueryRow(`SELECT created_at FROM runs ORDER BY id DESC LIMIT 1`).Scan(&last)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		sum.LastPlayed = parseTime(last)
	}

	return &sum, nil
}

// ClearRuns deletes the whole history.
func (s *Store) ClearRuns() error {
	if _, err := s.db.Exec("DELETE FROM runs"); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// parseTime handles both driver-decoded times and SQLite's text format.
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
