// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history persists a ledger of merge operations in SQLite so
// operators can audit what was merged, when, and with what outcome.
// Implements: prd005-history (R1-R3);
//
//	docs/ARCHITECTURE § Merge History.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/pdfmerge/pkg/types"
)

const dbFile = "merges.db"

// Store manages the merge-history SQLite database.
type Store struct {
	db *sql.DB
}

// NewStore opens or creates the ledger at dir/merges.db, creating the
// schema if it does not exist.
func NewStore(cfg types.HistoryConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	dbPath := filepath.Join(cfg.Dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS merges (
			id TEXT PRIMARY KEY,
			mode TEXT NOT NULL,
			sources INTEGER NOT NULL,
			pages INTEGER NOT NULL,
			output TEXT,
			status TEXT NOT NULL,
			error TEXT,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_merges_created_at ON merges(created_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record inserts one merge operation into the ledger.
func (s *Store) Record(ctx context.Context, rec types.MergeRecord) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO merges (id, mode, sources, pages, output, status, error, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Mode, rec.Sources, rec.Pages, rec.Output, rec.Status, rec.Error,
		rec.CreatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("recording merge %s: %w", rec.ID, err)
	}
	return nil
}

// List returns the most recent merge records, newest first. A limit of 0
// or less defaults to 20.
func (s *Store) List(ctx context.Context, limit int) ([]types.MergeRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, mode, sources, pages, output, status, error, created_at
		 FROM merges ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying merges: %w", err)
	}
	defer rows.Close()

	var records []types.MergeRecord
	for rows.Next() {
		var rec types.MergeRecord
		var createdAt string
		if err := rows.Scan(&rec.ID, &rec.Mode, &rec.Sources, &rec.Pages,
			&rec.Output, &rec.Status, &rec.Error, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning merge row: %w", err)
		}
		ts, err := time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parsing timestamp %q: %w", createdAt, err)
		}
		rec.CreatedAt = ts
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating merge rows: %w", err)
	}
	return records, nil
}
