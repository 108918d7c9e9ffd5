package renderlog

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/MS8080/iconforge/internal/export"
	"github.com/MS8080/iconforge/internal/paths"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using a SQLite database.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// Open opens the render history database at its default location under
// the iconforge data directory.
func Open() (*SQLiteStore, error) {
	return NewSQLiteStore(filepath.Join(paths.DataDir(), paths.RenderDBName))
}

// NewSQLiteStore opens (or creates) a SQLite database at path and creates
// tables and indexes.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), paths.DirPerm); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Set PRAGMAs before any DDL.
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("sqlite pragma: %w", err)
		}
	}

	ddl := `
CREATE TABLE IF NOT EXISTS renders (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    timestamp   TEXT    NOT NULL,
    run_id      TEXT    NOT NULL DEFAULT '',
    style       TEXT    NOT NULL DEFAULT '',
    size        INTEGER NOT NULL,
    file        TEXT    NOT NULL DEFAULT '',
    bytes       INTEGER NOT NULL DEFAULT 0,
    duration_ms REAL    NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_renders_timestamp ON renders(timestamp DESC);
CREATE INDEX IF NOT EXISTS idx_renders_style     ON renders(style, size);
CREATE INDEX IF NOT EXISTS idx_renders_run       ON renders(run_id);
`
	if _, err := db.Exec(ddl); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite schema: %w", err)
	}

	return &SQLiteStore{db: db, path: path}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) LogRender(runID string, r export.Result) error {
	ts := time.Now().Format(time.RFC3339)
	_, err := s.db.Exec(
		`INSERT INTO renders (timestamp, run_id, style, size, file, bytes, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		ts, runID, r.Style, r.Size, filepath.Base(r.Path), r.Bytes,
		float64(r.Duration)/float64(time.Millisecond),
	)
	return err
}

func (s *SQLiteStore) LogRun(run export.Run) error {
	ts := time.Now().Format(time.RFC3339)

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, r := range run.Results {
		if _, err := tx.Exec(
			`INSERT INTO renders (timestamp, run_id, style, size, file, bytes, duration_ms)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			ts, run.ID, r.Style, r.Size, filepath.Base(r.Path), r.Bytes,
			float64(r.Duration)/float64(time.Millisecond),
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) Entries(days int) ([]Entry, error) {
	query := `SELECT timestamp, run_id, style, size, file, bytes, duration_ms FROM renders`
	var args []any
	if days > 0 {
		query += ` WHERE timestamp >= ?`
		args = append(args, DayCutoff(days).Format(time.RFC3339))
	}
	query += ` ORDER BY id`

	return s.queryEntries(query, args...)
}

func (s *SQLiteStore) EntriesSince(cutoff time.Time) ([]Entry, error) {
	return s.queryEntries(
		`SELECT timestamp, run_id, style, size, file, bytes, duration_ms
		 FROM renders WHERE timestamp >= ? ORDER BY id`,
		cutoff.Format(time.RFC3339),
	)
}

func (s *SQLiteStore) queryEntries(query string, args ...any) ([]Entry, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var tsStr, runID, style, file string
		var size, bytes int
		var durationMS float64
		if err := rows.Scan(&tsStr, &runID, &style, &size, &file, &bytes, &durationMS); err != nil {
			return nil, err
		}
		ts, err := time.Parse(time.RFC3339, tsStr)
		if err != nil {
			continue
		}
		entries = append(entries, Entry{
			Time:     ts,
			RunID:    runID,
			Style:    style,
			Size:     size,
			File:     file,
			Bytes:    bytes,
			Duration: time.Duration(durationMS * float64(time.Millisecond)),
		})
	}
	return entries, rows.Err()
}

func (s *SQLiteStore) Runs(days int) ([]RunSummary, error) {
	query := `SELECT run_id, style, MIN(timestamp), COUNT(*), SUM(bytes), SUM(duration_ms)
		FROM renders WHERE run_id != ''`
	var args []any
	if days > 0 {
		query += ` AND timestamp >= ?`
		args = append(args, DayCutoff(days).Format(time.RFC3339))
	}
	query += ` GROUP BY run_id, style ORDER BY MIN(timestamp) DESC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var rs RunSummary
		var tsStr string
		var durationMS float64
		if err := rows.Scan(&rs.RunID, &rs.Style, &tsStr, &rs.Files, &rs.Bytes, &durationMS); err != nil {
			return nil, err
		}
		ts, err := time.Parse(time.RFC3339, tsStr)
		if err != nil {
			continue
		}
		rs.Start = ts
		rs.Duration = time.Duration(durationMS * float64(time.Millisecond))
		runs = append(runs, rs)
	}
	return runs, rows.Err()
}

func (s *SQLiteStore) Clean(days int) (int, error) {
	cutoff := DayCutoff(days).Format(time.RFC3339)
	res, err := s.db.Exec(`DELETE FROM renders WHERE timestamp < ?`, cutoff)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}

func (s *SQLiteStore) Clear() error {
	_, err := s.db.Exec(`DELETE FROM renders`)
	return err
}

func (s *SQLiteStore) Path() string {
	return s.path
}
