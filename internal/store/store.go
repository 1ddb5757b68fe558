// Package store persists analysis runs to SQLite via database/sql and the
// modernc.org/sqlite driver, with schema ensured on open and no migrations
// framework.
package store

import (
	"database/sql"
	"time"

	_ "modernc.org/sqlite"
)

// Run is one recorded analysis run. Its Verdict is a plain string rather
// than analysis.Verdict, keeping store independent of the pipeline package
// (it only ever receives already computed strings).
type Run struct {
	ID         string
	SourcePath string
	StartedAt  time.Time
	FinishedAt *time.Time
	Verdict    string // "success", "syntax_error", "lexical_error", or "error" (queue worker could not read the source); empty until RecordRun
	Diagnostic string // empty on success
}

type Store struct {
	db *sql.DB
}

// New opens (or creates) a SQLite database at dbPath and ensures its schema.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	schema := `
CREATE TABLE IF NOT EXISTS analysis_runs (
    id TEXT PRIMARY KEY,
    source_path TEXT NOT NULL,
    started_at TEXT NOT NULL,
    finished_at TEXT,
    verdict TEXT NOT NULL DEFAULT '',
    diagnostic TEXT DEFAULT ''
);`

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// StartRun inserts the row for a run with an empty verdict and diagnostic;
// RecordRun later fills in its outcome and finish time in one write.
// started_at is written with a fixed nine-digit fraction so that its text
// order is its chronological order.
func (s *Store) StartRun(id, sourcePath string) error {
	_, err := s.db.Exec(
		`INSERT INTO analysis_runs (id, source_path, started_at, verdict, diagnostic) VALUES (?, ?, ?, '', '')`,
		id, sourcePath, time.Now().UTC().Format("2006-01-02T15:04:05.000000000Z07:00"),
	)
	return err
}

// RecordRun finishes a run with its outcome.
func (s *Store) RecordRun(id, verdict, diagnosticText string) error {
	_, err := s.db.Exec(
		`UPDATE analysis_runs SET finished_at = ?, verdict = ?, diagnostic = ? WHERE id = ?`,
		time.Now().UTC().Format(time.RFC3339Nano), verdict, diagnosticText, id,
	)
	return err
}

// GetRun fetches a single run by ID, or nil if it doesn't exist.
func (s *Store) GetRun(id string) (*Run, error) {
	var r Run
	var startedAt string
	var finishedAt sql.NullString
	err := s.db.QueryRow(
		`SELECT id, source_path, started_at, finished_at, verdict, diagnostic FROM analysis_runs WHERE id = ?`, id,
	).Scan(&r.ID, &r.SourcePath, &startedAt, &finishedAt, &r.Verdict, &r.Diagnostic)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	r.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt)
	if err != nil {
		return nil, err
	}
	if finishedAt.Valid {
		t, err := time.Parse(time.RFC3339Nano, finishedAt.String)
		if err != nil {
			return nil, err
		}
		r.FinishedAt = &t
	}
	return &r, nil
}

// ListRuns returns every recorded run, most recent first.
func (s *Store) ListRuns() ([]Run, error) {
	rows, err := s.db.Query(`SELECT id, source_path, started_at, finished_at, verdict, diagnostic FROM analysis_runs ORDER BY started_at DESC, _rowid_ DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		var r Run
		var startedAt string
		var finishedAt sql.NullString
		if err := rows.Scan(&r.ID, &r.SourcePath, &startedAt, &finishedAt, &r.Verdict, &r.Diagnostic); err != nil {
			return nil, err
		}
		r.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt)
		if err != nil {
			return nil, err
		}
		if finishedAt.Valid {
			t, err := time.Parse(time.RFC3339Nano, finishedAt.String)
			if err != nil {
				return nil, err
			}
			r.FinishedAt = &t
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
