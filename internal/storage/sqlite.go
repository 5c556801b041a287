// Package storage provides SQLite-based persistence for snake scores.
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

	"github.com/vovakirdan/tui-snake/internal/scorelog"
)

// Store manages the SQLite database connection for score persistence.
type Store struct {
	db *sql.DB
}

// ScoreEntry represents a single stored run.
type ScoreEntry struct {
	ID        int64
	RunID     string
	Username  string
	Apples    int
	CreatedAt time.Time
}

// Record converts the entry to the flat log record.
func (e ScoreEntry) Record() scorelog.Record {
	return scorelog.Record{Username: e.Username, Apples: e.Apples}
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

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL UNIQUE,
			username TEXT NOT NULL,
			apples INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_scores_username ON scores(username);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(apples DESC);
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

// SaveScore records a finished run and returns the ID of the inserted row.
func (s *Store) SaveScore(rec scorelog.Record) (int64, error) {
	if err := rec.Validate(); err != nil {
		return 0, err
	}
	result, err := s.db.Exec(
		"INSERT INTO scores (run_id, username, apples) VALUES (?, ?, ?)",
		uuid.NewString(), rec.Username, rec.Apples,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// Append implements scorelog.Backend.
func (s *Store) Append(rec scorelog.Record) error {
	_, err := s.SaveScore(rec)
	return err
}

// ReadAll implements scorelog.Backend. Rows come back in insertion order,
// formatted exactly like the flat log.
func (s *Store) ReadAll() ([]string, error) {
	entries, err := s.query(`SELECT id, run_id, username, apples, created_at FROM scores ORDER BY id`)
	if err != nil {
		return nil, err
	}

	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = e.Record().String()
	}
	return lines, nil
}

// TopScores returns each player's best run, highest first. Ties keep the
// order players first appeared in.
func (s *Store) TopScores(limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.query(
		`SELECT s.id, s.run_id, s.username, s.apples, s.created_at
		 FROM scores s
		 WHERE s.id = (
			SELECT t.id FROM scores t
			WHERE t.username = s.username
			ORDER BY t.apples DESC, t.id
			LIMIT 1
		 )
		 ORDER BY s.apples DESC,
			(SELECT MIN(f.id) FROM scores f WHERE f.username = s.username)
		 LIMIT ?`,
		limit,
	)
}

// HighScore returns the player's best run. Returns 0 if they have none.
func (s *Store) HighScore(username string) (int, error) {
	var apples sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(apples) FROM scores WHERE username = ?",
		username,
	).Scan(&apples)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !apples.Valid {
		return 0, nil
	}
	return int(apples.Int64), nil
}

// Stats contains aggregated statistics over all runs.
type Stats struct {
	Runs       int
	Players    int
	HighScore  int
	AvgScore   float64
	LastPlayed time.Time
}

// GetStats retrieves aggregated statistics over all runs.
func (s *Store) GetStats() (*Stats, error) {
	stats := &Stats{}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COUNT(DISTINCT username), COALESCE(MAX(apples), 0), COALESCE(AVG(apples), 0)
		 FROM scores`,
	).Scan(&stats.Runs, &stats.Players, &stats.HighScore, &stats.AvgScore)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(`SELECT created_at FROM scores ORDER BY id DESC LIMIT 1`).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}

func (s *Store) query(q string, args ...any) ([]ScoreEntry, error) {
	rows, err := s.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.RunID, &e.Username, &e.Apples, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// parseTime handles the driver returning either time.Time or a string.
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

var _ scorelog.Backend = (*Store)(nil)
