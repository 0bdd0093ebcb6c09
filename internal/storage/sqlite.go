// Package storage provides SQLite-based persistence for simulation run summaries.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/paddle-arena/internal/host"
)

// Store manages the SQLite database connection for run persistence.
type Store struct {
	db *sql.DB
}

// RunRecord represents a single recorded simulation run.
type RunRecord struct {
	ID         int64
	Driver     string
	Preset     string
	Seed       int64
	TickRate   int
	Ticks      uint64
	PaddleHits int
	WallHits   int
	Misses     int
	Serves     int
	FinalHash  uint64
	Realtime   bool
	Duration   time.Duration // Wall-clock time of the run
	CreatedAt  time.Time
}

// HitRatio returns paddle hits per ball that reached the paddle side.
func (r RunRecord) HitRatio() float64 {
	total := r.PaddleHits + r.Misses
	if total == 0 {
		return 0
	}
	return float64(r.PaddleHits) / float64(total)
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
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			driver TEXT NOT NULL,
			preset TEXT NOT NULL DEFAULT 'normal',
			seed INTEGER NOT NULL,
			tick_rate INTEGER NOT NULL,
			ticks INTEGER NOT NULL,
			paddle_hits INTEGER NOT NULL DEFAULT 0,
			wall_hits INTEGER NOT NULL DEFAULT 0,
			misses INTEGER NOT NULL DEFAULT 0,
			serves INTEGER NOT NULL DEFAULT 0,
			final_hash TEXT NOT NULL,
			realtime INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_driver ON runs(driver);
		CREATE INDEX IF NOT EXISTS idx_runs_seed ON runs(seed);
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

// SaveRun records a run. Returns the ID of the inserted record.
func (s *Store) SaveRun(r RunRecord) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO runs
		 (driver, preset, seed, tick_rate, ticks, paddle_hits, wall_hits, misses, serves, final_hash, realtime, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Driver,
		r.Preset,
		r.Seed,
		r.TickRate,
		int64(r.Ticks), //#nosec G115 -- tick counts stay far below 2^63
		r.PaddleHits,
		r.WallHits,
		r.Misses,
		r.Serves,
		formatHash(r.FinalHash),
		r.Realtime,
		r.Duration.Milliseconds(),
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

// SaveSummary implements host.SummarySaver.
// This adapter allows the runner to save run summaries without direct storage dependency.
func (s *Store) SaveSummary(sum host.Summary) error {
	_, err := s.SaveRun(RunRecord{
		Driver:     sum.Driver,
		Preset:     sum.Preset,
		Seed:       sum.Seed,
		TickRate:   sum.TickRate,
		Ticks:      sum.Ticks,
		PaddleHits: sum.Counters.PaddleHits,
		WallHits:   sum.Counters.WallHits,
		Misses:     sum.Counters.Misses,
		Serves:     sum.Counters.Serves,
		FinalHash:  sum.FinalHash,
		Realtime:   sum.Realtime,
		Duration:   sum.Elapsed,
	})
	return err
}

// Ensure Store implements SummarySaver
var _ host.SummarySaver = (*Store)(nil)

const runColumns = `id, driver, preset, seed, tick_rate, ticks, paddle_hits, wall_hits,
		        misses, serves, final_hash, realtime, duration_ms, created_at`

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (RunRecord, error) {
	var (
		r          RunRecord
		ticks      int64
		hash       string
		durationMS int64
		createdAt  any
	)
	if err := sc.Scan(
		&r.ID,
		&r.Driver,
		&r.Preset,
		&r.Seed,
		&r.TickRate,
		&ticks,
		&r.PaddleHits,
		&r.WallHits,
		&r.Misses,
		&r.Serves,
		&hash,
		&r.Realtime,
		&durationMS,
		&createdAt,
	); err != nil {
		return r, err
	}

	r.Ticks = uint64(ticks) //#nosec G115 -- stored from a uint64
	r.Duration = time.Duration(durationMS) * time.Millisecond
	r.CreatedAt = parseTimestamp(createdAt)

	h, err := strconv.ParseUint(hash, 16, 64)
	if err != nil {
		return r, fmt.Errorf("bad hash %q: %w", hash, err)
	}
	r.FinalHash = h
	return r, nil
}

// RunByID retrieves a run by its ID. Returns nil if there is no such run.
func (s *Store) RunByID(id int64) (*RunRecord, error) {
	r, err := scanRun(s.db.QueryRow(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE id = ?`,
		id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}
	return &r, nil
}

// RecentRuns retrieves the most recent runs, newest first.
// A non-empty driver restricts the result to that driver.
func (s *Store) RecentRuns(driver string, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE ? = '' OR driver = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		driver, driver, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunRecord
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

// RunsBySeed retrieves every run recorded for a seed, oldest first.
// Runs with the same seed, driver and tick count should share a final hash.
func (s *Store) RunsBySeed(seed int64) ([]RunRecord, error) {
	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE seed = ?
		 ORDER BY id ASC`,
		seed,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunRecord
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

// ClearRuns deletes all recorded runs.
func (s *Store) ClearRuns() error {
	_, err := s.db.Exec("DELETE FROM runs")
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// DriverStats contains aggregated statistics for one input driver.
type DriverStats struct {
	Driver     string
	Runs       int
	TotalTicks int64
	PaddleHits int
	WallHits   int
	Misses     int
	LastRun    time.Time
}

// HitRatio returns paddle hits per ball that reached the paddle side.
func (d DriverStats) HitRatio() float64 {
	total := d.PaddleHits + d.Misses
	if total == 0 {
		return 0
	}
	return float64(d.PaddleHits) / float64(total)
}

// AllDriverStats retrieves statistics for every driver that has recorded runs.
func (s *Store) AllDriverStats() (map[string]*DriverStats, error) {
	rows, err := s.db.Query(
		`SELECT driver, COUNT(*), SUM(ticks), SUM(paddle_hits), SUM(wall_hits), SUM(misses), MAX(created_at)
		 FROM runs
		 GROUP BY driver`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get driver stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*DriverStats)
	for rows.Next() {
		var d DriverStats
		var lastRun any
		if err := rows.Scan(&d.Driver, &d.Runs, &d.TotalTicks, &d.PaddleHits, &d.WallHits, &d.Misses, &lastRun); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		d.LastRun = parseTimestamp(lastRun)
		stats[d.Driver] = &d
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// parseTimestamp handles both time.Time and string datetimes.
func parseTimestamp(v any) time.Time {
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

func formatHash(h uint64) string {
	return fmt.Sprintf("%016x", h)
}
