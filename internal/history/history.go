// Package history keeps a local record of past analyzer runs in a SQLite
// database, so per-kind totals can be compared across dump revisions without
// re-running old analyses. History is best-effort: a broken database must
// never fail a run.
package history

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/RecursivePineapple/recex-analyzer/internal/analyze"
	"github.com/RecursivePineapple/recex-analyzer/internal/errors"
	"github.com/RecursivePineapple/recex-analyzer/internal/logging"
)

// Run is one recorded analyzer invocation.
type Run struct {
	ID           string
	CreatedAt    time.Time
	BeforePath   string
	AfterPath    string
	MachineCount int
	TotalRecords int
	Counts       map[string]int
}

// DB wraps the history database connection
type DB struct {
	conn   *sql.DB
	logger *logging.Logger
}

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	created_at TEXT NOT NULL,
	before_path TEXT NOT NULL,
	after_path TEXT NOT NULL,
	machine_count INTEGER NOT NULL,
	total_records INTEGER NOT NULL,
	counts TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);
`

// Open opens or creates the history database at path, creating parent
// directories as needed.
func Open(path string, logger *logging.Logger) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, errors.Newf(errors.HistoryError, err, "cannot create history directory for %q", path)
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Newf(errors.HistoryError, err, "cannot open history database %q", path)
	}

	// Set pragmas for performance and reliability
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			_ = conn.Close()
			return nil, errors.Newf(errors.HistoryError, err, "cannot configure history database %q", path)
		}
	}

	if _, err := conn.Exec(schema); err != nil {
		_ = conn.Close()
		return nil, errors.Newf(errors.HistoryError, err, "cannot initialize history schema in %q", path)
	}

	return &DB{conn: conn, logger: logger}, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

// RecordRun inserts one completed run and returns its generated id.
func (db *DB) RecordRun(beforePath, afterPath string, machineCount int, summaryCounts map[analyze.Status]int) (string, error) {
	counts := make(map[string]int, len(summaryCounts))
	total := 0
	for status, n := range summaryCounts {
		counts[status.String()] = n
		total += n
	}

	countsJSON, err := json.Marshal(counts)
	if err != nil {
		return "", errors.New(errors.HistoryError, "cannot encode summary counts", err)
	}

	id := uuid.New().String()
	_, err = db.conn.Exec(
		`INSERT INTO runs (id, created_at, before_path, after_path, machine_count, total_records, counts)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id,
		time.Now().UTC().Format(time.RFC3339),
		beforePath,
		afterPath,
		machineCount,
		total,
		string(countsJSON),
	)
	if err != nil {
		return "", errors.New(errors.HistoryError, "cannot insert run", err)
	}

	db.logger.Debug("recorded run", map[string]interface{}{"id": id})
	return id, nil
}

// Recent returns the most recent runs, newest first.
func (db *DB) Recent(limit int) ([]Run, error) {
	rows, err := db.conn.Query(
		`SELECT id, created_at, before_path, after_path, machine_count, total_records, counts
		 FROM runs ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, errors.New(errors.HistoryError, "cannot query runs", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []Run
	for rows.Next() {
		var run Run
		var createdAt, countsJSON string
		if err := rows.Scan(&run.ID, &createdAt, &run.BeforePath, &run.AfterPath,
			&run.MachineCount, &run.TotalRecords, &countsJSON); err != nil {
			return nil, errors.New(errors.HistoryError, "cannot scan run", err)
		}

		run.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, errors.Newf(errors.HistoryError, err, "run %s has malformed timestamp", run.ID)
		}
		if err := json.Unmarshal([]byte(countsJSON), &run.Counts); err != nil {
			return nil, errors.Newf(errors.HistoryError, err, "run %s has malformed counts", run.ID)
		}

		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// DefaultPath returns the history database location under the analyzer's
// state directory.
func DefaultPath(stateDir string) string {
	return filepath.Join(stateDir, "history.db")
}

// Describe renders one run as a single human-readable line.
func Describe(run Run) string {
	after := run.AfterPath
	if after == "" {
		after = "(self-diff)"
	}
	return fmt.Sprintf("%s  %s  %s -> %s  machines=%d records=%d",
		run.ID[:8],
		run.CreatedAt.Format("2006-01-02 15:04:05"),
		run.BeforePath,
		after,
		run.MachineCount,
		run.TotalRecords,
	)
}
