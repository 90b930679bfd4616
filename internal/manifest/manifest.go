// Package manifest records generation runs and their emitted documents in SQLite.
package manifest

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Manifest errors.
var (
	ErrRunNotFound  = errors.New("run not found")
	ErrMissingRunID = errors.New("run id is required")
)

// Run statuses.
const (
	RunRunning   = "running"
	RunCompleted = "completed"
	RunAborted   = "aborted"
)

// Document statuses.
const (
	DocumentOK     = "ok"
	DocumentFailed = "failed"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id          TEXT PRIMARY KEY,
	input       TEXT NOT NULL,
	output_dir  TEXT NOT NULL,
	started_at  TEXT NOT NULL,
	finished_at TEXT NOT NULL DEFAULT '',
	succeeded   INTEGER NOT NULL DEFAULT 0,
	failed      INTEGER NOT NULL DEFAULT 0,
	status      TEXT NOT NULL DEFAULT 'running'
);

CREATE TABLE IF NOT EXISTS documents (
	id       INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id   TEXT NOT NULL REFERENCES runs(id),
	line     INTEGER NOT NULL,
	product  TEXT NOT NULL DEFAULT '',
	file     TEXT NOT NULL DEFAULT '',
	sha256   TEXT NOT NULL DEFAULT '',
	variants INTEGER NOT NULL DEFAULT 0,
	status   TEXT NOT NULL,
	error    TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS documents_run ON documents(run_id, line);
`

// timeLayout keeps stored timestamps lexically ordered.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// Run is one invocation of the generator.
type Run struct {
	ID         string `db:"id"`
	Input      string `db:"input"`
	OutputDir  string `db:"output_dir"`
	StartedAt  string `db:"started_at"`
	FinishedAt string `db:"finished_at"`
	Succeeded  int    `db:"succeeded"`
	Failed     int    `db:"failed"`
	Status     string `db:"status"`
}

// Document is the outcome of one input row.
type Document struct {
	ID       int64  `db:"id"`
	RunID    string `db:"run_id"`
	Line     int    `db:"line"`
	Product  string `db:"product"`
	File     string `db:"file"`
	SHA256   string `db:"sha256"`
	Variants int    `db:"variants"`
	Status   string `db:"status"`
	Error    string `db:"error"`
}

// Store is a SQLite-backed run manifest.
type Store struct {
	db *sqlx.DB
}

// Open opens (creating if needed) the manifest database at path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create manifest dir: %w", err)
		}
	}

	db, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// BeginRun inserts a running run with a fresh id.
func (s *Store) BeginRun(ctx context.Context, input, outputDir string, startedAt time.Time) (Run, error) {
	run := Run{
		ID:        uuid.NewString(),
		Input:     input,
		OutputDir: outputDir,
		StartedAt: startedAt.UTC().Format(timeLayout),
		Status:    RunRunning,
	}

	_, err := s.db.NamedExecContext(ctx, `
		INSERT INTO runs (id, input, output_dir, started_at, status)
		VALUES (:id, :input, :output_dir, :started_at, :status)`, run)
	if err != nil {
		return Run{}, fmt.Errorf("insert run: %w", err)
	}

	return run, nil
}

// RecordDocument stores the outcome of one row.
func (s *Store) RecordDocument(ctx context.Context, doc Document) error {
	if doc.RunID == "" {
		return ErrMissingRunID
	}

	_, err := s.db.NamedExecContext(ctx, `
		INSERT INTO documents (run_id, line, product, file, sha256, variants, status, error)
		VALUES (:run_id, :line, :product, :file, :sha256, :variants, :status, :error)`, doc)
	if err != nil {
		return fmt.Errorf("insert document: %w", err)
	}

	return nil
}

// FinishRun stores the final counts and status of a run.
func (s *Store) FinishRun(ctx context.Context, runID string, succeeded, failed int, status string, finishedAt time.Time) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE runs SET succeeded = ?, failed = ?, status = ?, finished_at = ?
		WHERE id = ?`, succeeded, failed, status, finishedAt.UTC().Format(timeLayout), runID)
	if err != nil {
		return fmt.Errorf("update run: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update run: %w", err)
	}

	if n == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}

	return nil
}

// GetRun loads a run by id.
func (s *Store) GetRun(ctx context.Context, runID string) (Run, error) {
	var run Run

	err := s.db.GetContext(ctx, &run, `SELECT * FROM runs WHERE id = ?`, runID)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}

	if err != nil {
		return Run{}, fmt.Errorf("select run: %w", err)
	}

	return run, nil
}

// LatestRun loads the most recently started run.
func (s *Store) LatestRun(ctx context.Context) (Run, error) {
	var run Run

	err := s.db.GetContext(ctx, &run, `SELECT * FROM runs ORDER BY started_at DESC, rowid DESC LIMIT 1`)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, ErrRunNotFound
	}

	if err != nil {
		return Run{}, fmt.Errorf("select latest run: %w", err)
	}

	return run, nil
}

// Documents lists the documents of a run in input order.
func (s *Store) Documents(ctx context.Context, runID string) ([]Document, error) {
	var docs []Document

	err := s.db.SelectContext(ctx, &docs, `
		SELECT * FROM documents WHERE run_id = ? ORDER BY line, id`, runID)
	if err != nil {
		return nil, fmt.Errorf("select documents: %w", err)
	}

	return docs, nil
}
