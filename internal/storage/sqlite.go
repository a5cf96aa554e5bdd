// Package storage provides SQLite-based persistence for recorded runs.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-flappy/internal/loop"
)

// ErrRunNotFound is returned when a run ID does not exist.
var ErrRunNotFound = errors.New("storage: run not found")

// Store manages the SQLite database connection for the run journal.
type Store struct {
	db *sql.DB
}

// RunEntry is a finished session as stored in the journal.
type RunEntry struct {
	ID         int64
	Host       string // "tui", "ssh", "web" or "canvas"
	Seed       int64
	StartedAt  time.Time
	Restarted  bool // Session began with a restart rather than at launch
	Score      int
	EndReason  string
	FrameCount int
	Duration   time.Duration
	ConfigYAML string
	CreatedAt  time.Time

	// Recording is only populated by Run.
	Recording loop.Recording
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
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			host TEXT NOT NULL,
			seed INTEGER NOT NULL,
			started_at TEXT NOT NULL,
			restarted INTEGER NOT NULL DEFAULT 0,
			score INTEGER NOT NULL DEFAULT 0,
			end_reason TEXT NOT NULL DEFAULT '',
			frame_count INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			config_yaml TEXT NOT NULL DEFAULT '',
			frames_json TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_host ON runs(host);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return err
	}

	// Journals created before restarts were recorded lack the column
	var n int
	if err := s.db.QueryRow(
		`SELECT COUNT(*) FROM pragma_table_info('runs') WHERE name = 'restarted'`,
	).Scan(&n); err != nil {
		return err
	}
	if n == 0 {
		if _, err := s.db.Exec(`ALTER TABLE runs ADD COLUMN restarted INTEGER NOT NULL DEFAULT 0`); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records a finished session. configYAML is the game configuration
// the session ran with; replays need it to rebuild the same game.
// Returns the ID of the inserted record.
func (s *Store) SaveRun(host string, configYAML []byte, rec loop.Recording) (int64, error) {
	frames, err := json.Marshal(rec.Frames)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot encode frames: %w", err)
	}

	result, err := s.db.Exec(
		`INSERT INTO runs (host, seed, started_at, restarted, score, end_reason, frame_count, duration_ms, config_yaml, frames_json)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		host,
		rec.Seed,
		rec.StartedAt.UTC().Format(time.RFC3339Nano),
		rec.Restarted,
		rec.Final.Score,
		rec.Final.EndReason,
		rec.Final.Frames,
		rec.Duration().Milliseconds(),
		string(configYAML),
		string(frames),
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

// Run loads a run including its frame recording.
// Returns ErrRunNotFound if no run has the given ID.
func (s *Store) Run(id int64) (*RunEntry, error) {
	var e RunEntry
	var startedAt, framesJSON string
	var durationMS int64
	var createdAt any

	err := s.db.QueryRow(
		`SELECT id, host, seed, started_at, restarted, score, end_reason, frame_count, duration_ms,
		        config_yaml, frames_json, created_at
		 FROM runs
		 WHERE id = ?`,
		id,
	).Scan(
		&e.ID,
		&e.Host,
		&e.Seed,
		&startedAt,
		&e.Restarted,
		&e.Score,
		&e.EndReason,
		&e.FrameCount,
		&durationMS,
		&e.ConfigYAML,
		&framesJSON,
		&createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", ErrRunNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}

	e.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt)
	if err != nil {
		return nil, fmt.Errorf("storage: run %d has bad start time: %w", id, err)
	}
	e.Duration = time.Duration(durationMS) * time.Millisecond
	e.CreatedAt = parseDateTime(createdAt)

	var frames []loop.FrameRecord
	if err := json.Unmarshal([]byte(framesJSON), &frames); err != nil {
		return nil, fmt.Errorf("storage: run %d has bad frames: %w", id, err)
	}

	e.Recording = loop.Recording{
		Seed:      e.Seed,
		StartedAt: e.StartedAt,
		Restarted: e.Restarted,
		Frames:    frames,
	}
	e.Recording.Final.Score = e.Score
	e.Recording.Final.GameOver = true
	e.Recording.Final.EndReason = e.EndReason
	e.Recording.Final.Frames = e.FrameCount

	return &e, nil
}

// RecentRuns retrieves the most recent runs, newest first.
// Frame recordings are not loaded.
func (s *Store) RecentRuns(limit int) ([]RunEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, host, seed, started_at, score, end_reason, frame_count, duration_ms, created_at
		 FROM runs
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var entries []RunEntry
	for rows.Next() {
		var e RunEntry
		var startedAt string
		var durationMS int64
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Host, &e.Seed, &startedAt, &e.Score, &e.EndReason,
			&e.FrameCount, &durationMS, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}

		if parsed, err := time.Parse(time.RFC3339Nano, startedAt); err == nil {
			e.StartedAt = parsed
		}
		e.Duration = time.Duration(durationMS) * time.Millisecond
		e.CreatedAt = parseDateTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// DeleteRun removes a run from the journal.
// Returns ErrRunNotFound if no run has the given ID.
func (s *Store) DeleteRun(id int64) error {
	res, err := s.db.Exec("DELETE FROM runs WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("storage: cannot delete run: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: cannot delete run: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %d", ErrRunNotFound, id)
	}
	return nil
}

// Stats contains totals over the journal. Scores are not aggregated.
type Stats struct {
	Runs        int
	TotalFrames int64
	TotalTime   time.Duration
	LastPlayed  time.Time
}

// Stats retrieves totals over all recorded runs.
func (s *Store) Stats() (*Stats, error) {
	stats := &Stats{}
	var totalMS int64
	var lastPlayed any

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(frame_count), 0), COALESCE(SUM(duration_ms), 0), MAX(created_at)
		 FROM runs`,
	).Scan(&stats.Runs, &stats.TotalFrames, &totalMS, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	stats.TotalTime = time.Duration(totalMS) * time.Millisecond
	stats.LastPlayed = parseDateTime(lastPlayed)

	return stats, nil
}

// parseDateTime handles both time.Time and string values of DATETIME columns.
func parseDateTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
