// Package manifest records every crawl attempt in an SQLite database for
// post-run inspection: which URLs were tried, at what frontier rank, with
// what score, and how each attempt ended. It is a ledger, not crawl state —
// nothing reads it back to resume a crawl.
package manifest

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS attempts (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	url        TEXT NOT NULL,
	file       TEXT,
	rank_idx   INTEGER,
	score      REAL,
	status     TEXT NOT NULL CHECK (status IN ('saved', 'failed')),
	error      TEXT,
	created_at TEXT NOT NULL DEFAULT (datetime('now'))
);
CREATE INDEX IF NOT EXISTS idx_attempts_status ON attempts(status);
`

// Statuses recorded per attempt.
const (
	StatusSaved  = "saved"
	StatusFailed = "failed"
)

// Attempt is one page visit, successful or not.
type Attempt struct {
	URL     string
	File    string  // output filename, empty when nothing was written
	RankIdx int     // index in the ranked frontier, -1 for the root page
	Score   float64 // frontier score, 0 for the root page
	Status  string
	Err     string // failure cause, empty on success
}

// Manifest is the crawl ledger handle.
type Manifest struct {
	db *sql.DB
}

// Open opens (or creates) the manifest database at path and applies the
// schema. WAL and a busy timeout are set the same way as every other
// SQLite database in the ecosystem.
func Open(path string) (*Manifest, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("manifest: mkdir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("manifest: open: %w", err)
	}

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 10000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("manifest: %s: %w", p, err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("manifest: schema: %w", err)
	}

	return &Manifest{db: db}, nil
}

// Record inserts one attempt.
func (m *Manifest) Record(ctx context.Context, a Attempt) error {
	_, err := m.db.ExecContext(ctx,
		`INSERT INTO attempts (url, file, rank_idx, score, status, error)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		a.URL, a.File, a.RankIdx, a.Score, a.Status, a.Err)
	if err != nil {
		return fmt.Errorf("manifest: record %s: %w", a.URL, err)
	}
	return nil
}

// Counts returns the number of saved and failed attempts.
func (m *Manifest) Counts(ctx context.Context) (saved, failed int, err error) {
	rows, err := m.db.QueryContext(ctx,
		`SELECT status, COUNT(*) FROM attempts GROUP BY status`)
	if err != nil {
		return 0, 0, fmt.Errorf("manifest: counts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return 0, 0, fmt.Errorf("manifest: scan: %w", err)
		}
		switch status {
		case StatusSaved:
			saved = n
		case StatusFailed:
			failed = n
		}
	}
	return saved, failed, rows.Err()
}

// Close closes the database.
func (m *Manifest) Close() error {
	return m.db.Close()
}
