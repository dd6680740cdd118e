// Package store persists cleaning runs, either as a JSON export of the
// cleaned rows or in a sqlite database that keeps every run.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"seqclean/internal/classify"
	"seqclean/internal/clean"
)

// ErrNoRuns is returned by LatestRun on an empty database.
var ErrNoRuns = errors.New("store: no runs recorded")

// ErrRunNotFound is returned by Run for an unknown id.
var ErrRunNotFound = errors.New("store: no such run")

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id         TEXT PRIMARY KEY,
	source     TEXT NOT NULL,
	created_at TEXT NOT NULL,
	total      INTEGER NOT NULL,
	duplicates INTEGER NOT NULL,
	invalid    INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS rows (
	run_id     TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	position   INTEGER NOT NULL,
	name       TEXT NOT NULL,
	symbols    TEXT NOT NULL,
	length     INTEGER NOT NULL,
	gc_content REAL NOT NULL,
	category   TEXT NOT NULL,
	PRIMARY KEY (run_id, position)
);
`

// Run describes one stored cleaning pass.
type Run struct {
	ID         string    `json:"id"`
	Source     string    `json:"source"`
	CreatedAt  time.Time `json:"created_at"`
	Total      int       `json:"total"`
	Duplicates int       `json:"duplicates"`
	Invalid    int       `json:"invalid"`
	Retained   int       `json:"retained"`
}

// Store wraps a sqlite database.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (creating if needed) the sqlite database at path and applies
// the schema.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// one writer; sqlite serialises anyway
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db, now: time.Now}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// SaveRun stores res under a fresh run id in a single transaction.
func (s *Store) SaveRun(ctx context.Context, source string, res clean.Result) (Run, error) {
	run := Run{
		ID:         uuid.NewString(),
		Source:     source,
		CreatedAt:  s.now().UTC().Truncate(time.Second),
		Total:      res.Total,
		Duplicates: res.Duplicates,
		Invalid:    res.Invalid,
		Retained:   res.Retained(),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Run{}, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (id, source, created_at, total, duplicates, invalid) VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID, run.Source, run.CreatedAt.Format(time.RFC3339), run.Total, run.Duplicates, run.Invalid); err != nil {
		return Run{}, fmt.Errorf("insert run: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO rows (run_id, position, name, symbols, length, gc_content, category) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return Run{}, err
	}
	defer stmt.Close()
	for i, r := range res.Rows {
		if _, err := stmt.ExecContext(ctx, run.ID, i, r.Name, r.Symbols, r.Length, r.GCContent, string(r.Category)); err != nil {
			return Run{}, fmt.Errorf("insert row %q: %w", r.Name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return Run{}, err
	}
	return run, nil
}

const runColumns = `SELECT r.id, r.source, r.created_at, r.total, r.duplicates, r.invalid,
	(SELECT COUNT(*) FROM rows w WHERE w.run_id = r.id) FROM runs r`

func scanRun(sc interface{ Scan(...any) error }) (Run, error) {
	var (
		run     Run
		created string
	)
	if err := sc.Scan(&run.ID, &run.Source, &created, &run.Total, &run.Duplicates, &run.Invalid, &run.Retained); err != nil {
		return Run{}, err
	}
	t, err := time.Parse(time.RFC3339, created)
	if err != nil {
		return Run{}, fmt.Errorf("run %s: bad created_at %q: %w", run.ID, created, err)
	}
	run.CreatedAt = t
	return run, nil
}

// Runs lists stored runs, newest first.
func (s *Store) Runs(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, runColumns+` ORDER BY r.created_at DESC, r.rowid DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, run)
	}
	return out, rows.Err()
}

// Run returns the stored run with the given id.
func (s *Store) Run(ctx context.Context, id string) (Run, error) {
	run, err := scanRun(s.db.QueryRowContext(ctx, runColumns+` WHERE r.id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	return run, err
}

// LatestRun returns the most recently stored run.
func (s *Store) LatestRun(ctx context.Context) (Run, error) {
	row := s.db.QueryRowContext(ctx, runColumns+` ORDER BY r.created_at DESC, r.rowid DESC LIMIT 1`)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, ErrNoRuns
	}
	return run, err
}

// Rows returns the cleaned rows of a run in their original order.
func (s *Store) Rows(ctx context.Context, runID string) ([]clean.Row, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, symbols, length, gc_content, category FROM rows WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []clean.Row{}
	for rows.Next() {
		var (
			r   clean.Row
			cat string
		)
		if err := rows.Scan(&r.Name, &r.Symbols, &r.Length, &r.GCContent, &cat); err != nil {
			return nil, err
		}
		r.Category = classify.Category(cat)
		out = append(out, r)
	}
	return out, rows.Err()
}
