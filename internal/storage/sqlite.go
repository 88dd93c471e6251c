// Package storage provides the SQLite run journal.
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
)

const timeLayout = "2006-01-02 15:04:05"

// Store manages the SQLite database connection for the run journal.
type Store struct {
	db *sql.DB
}

// Run is one finished session.
type Run struct {
	ID     string // UUID; assigned by SaveRun when empty
	Player string
	Seed   int64
	Preset string

	Score    int
	Level    int
	Duration time.Duration
	Frames   int

	Passed     int
	Collisions int
	Obstacles  int

	// Spawn events per pattern.
	SpawnsSingle   int
	SpawnsCluster  int
	SpawnsDiagonal int
	SpawnsWall     int

	FinalHash string // World hash at game over, hex
	CreatedAt time.Time
}

// SpawnEvents returns the total number of spawn events.
func (r Run) SpawnEvents() int {
	return r.SpawnsSingle + r.SpawnsCluster + r.SpawnsDiagonal + r.SpawnsWall
}

// LevelMix aggregates runs that ended on the same level.
type LevelMix struct {
	Level    int
	Runs     int
	AvgScore float64

	SpawnsSingle   int
	SpawnsCluster  int
	SpawnsDiagonal int
	SpawnsWall     int
}

// Summary contains aggregated statistics over the whole journal.
type Summary struct {
	Runs          int
	AvgScore      float64
	AvgLevel      float64
	TotalDuration time.Duration
	LastPlayed    time.Time
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
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			player TEXT NOT NULL DEFAULT '',
			seed INTEGER NOT NULL,
			preset TEXT NOT NULL DEFAULT 'normal',
			score INTEGER NOT NULL,
			level INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			frames INTEGER NOT NULL DEFAULT 0,
			passed INTEGER NOT NULL DEFAULT 0,
			collisions INTEGER NOT NULL DEFAULT 0,
			obstacles INTEGER NOT NULL DEFAULT 0,
			spawns_single INTEGER NOT NULL DEFAULT 0,
			spawns_cluster INTEGER NOT NULL DEFAULT 0,
			spawns_diagonal INTEGER NOT NULL DEFAULT 0,
			spawns_wall INTEGER NOT NULL DEFAULT 0,
			final_hash TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC);
		CREATE INDEX IF NOT EXISTS idx_runs_player ON runs(player);
		CREATE INDEX IF NOT EXISTS idx_runs_level ON runs(level);
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

// SaveRun records a finished run and returns its ID. A missing ID is
// generated and a zero CreatedAt means now.
func (s *Store) SaveRun(r Run) (string, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	if r.Preset == "" {
		r.Preset = "normal"
	}

	_, err := s.db.Exec(
		`INSERT INTO runs
		 (id, player, seed, preset, score, level, duration_ms, frames, passed, collisions, obstacles,
		  spawns_single, spawns_cluster, spawns_diagonal, spawns_wall, final_hash, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Player, r.Seed, r.Preset, r.Score, r.Level, r.Duration.Milliseconds(),
		r.Frames, r.Passed, r.Collisions, r.Obstacles,
		r.SpawnsSingle, r.SpawnsCluster, r.SpawnsDiagonal, r.SpawnsWall,
		r.FinalHash, r.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save run: %w", err)
	}
	return r.ID, nil
}

const runColumns = `id, player, seed, preset, score, level, duration_ms, frames, passed, collisions,
	obstacles, spawns_single, spawns_cluster, spawns_diagonal, spawns_wall, final_hash, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (Run, error) {
	var r Run
	var durationMs int64
	var createdAt any
	err := sc.Scan(
		&r.ID, &r.Player, &r.Seed, &r.Preset, &r.Score, &r.Level, &durationMs,
		&r.Frames, &r.Passed, &r.Collisions, &r.Obstacles,
		&r.SpawnsSingle, &r.SpawnsCluster, &r.SpawnsDiagonal, &r.SpawnsWall,
		&r.FinalHash, &createdAt,
	)
	if err != nil {
		return Run{}, err
	}
	r.Duration = time.Duration(durationMs) * time.Millisecond
	r.CreatedAt = parseTime(createdAt)
	return r, nil
}

// parseTime handles both time.Time and string column values.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(timeLayout, t); err == nil {
			return parsed
		}
	case []byte:
		if parsed, err := time.Parse(timeLayout, string(t)); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

func (s *Store) queryRuns(query string, args ...any) ([]Run, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// RecentRuns retrieves the most recent runs, newest first.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryRuns(
		`SELECT `+runColumns+`
		 FROM runs
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		limit,
	)
}

// PlayerRuns retrieves the most recent runs of one player.
func (s *Store) PlayerRuns(player string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryRuns(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE player = ?
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		player, limit,
	)
}

// RunByID retrieves a run by its ID. Returns nil if it does not exist.
func (s *Store) RunByID(id string) (*Run, error) {
	r, err := scanRun(s.db.QueryRow(`SELECT `+runColumns+` FROM runs WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}
	return &r, nil
}

// LevelMix returns the spawn pattern totals grouped by the level each run
// ended on, lowest level first.
func (s *Store) LevelMix() ([]LevelMix, error) {
	rows, err := s.db.Query(
		`SELECT level, COUNT(*), AVG(score),
		        SUM(spawns_single), SUM(spawns_cluster), SUM(spawns_diagonal), SUM(spawns_wall)
		 FROM runs
		 GROUP BY level
		 ORDER BY level`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query level mix: %w", err)
	}
	defer rows.Close()

	var out []LevelMix
	for rows.Next() {
		var m LevelMix
		if err := rows.Scan(&m.Level, &m.Runs, &m.AvgScore,
			&m.SpawnsSingle, &m.SpawnsCluster, &m.SpawnsDiagonal, &m.SpawnsWall); err != nil {
			return nil, fmt.Errorf("storage: cannot scan level mix row: %w", err)
		}
		out = append(out, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

// Summary returns aggregated statistics over every run.
func (s *Store) Summary() (*Summary, error) {
	sum := &Summary{}
	var totalMs int64

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(AVG(score), 0), COALESCE(AVG(level), 0), COALESCE(SUM(duration_ms), 0)
		 FROM runs`,
	).Scan(&sum.Runs, &sum.AvgScore, &sum.AvgLevel, &totalMs)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get summary: %w", err)
	}
	sum.TotalDuration = time.Duration(totalMs) * time.Millisecond

	var lastPlayed any
	err = s.db.QueryRow(`SELECT created_at FROM runs ORDER BY created_at DESC LIMIT 1`).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		sum.LastPlayed = parseTime(lastPlayed)
	}

	return sum, nil
}

// ClearRuns deletes the whole journal.
func (s *Store) ClearRuns() error {
	if _, err := s.db.Exec("DELETE FROM runs"); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}
