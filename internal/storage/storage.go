package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/tesh254/ukify/internal/dictionary"
)

// ErrNoSnapshot is returned when no dictionary snapshot has been saved.
var ErrNoSnapshot = errors.New("no dictionary snapshot stored")

const schema = `
CREATE TABLE IF NOT EXISTS terms (
	position INTEGER PRIMARY KEY,
	american TEXT NOT NULL UNIQUE,
	british  TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS meta (
	id         INTEGER PRIMARY KEY CHECK (id = 1),
	source     TEXT NOT NULL,
	checksum   TEXT NOT NULL,
	fetched_at TIMESTAMP NOT NULL
);`

// SnapshotInfo describes the stored snapshot.
type SnapshotInfo struct {
	Source    string
	Checksum  string
	FetchedAt time.Time
	Terms     int
}

// Storage manages the sqlite database holding the dictionary snapshot.
type Storage struct {
	db *sql.DB
}

// NewStorage creates or opens a sqlite database.
func NewStorage(dbPath string) (*Storage, error) {
	if dir := filepath.Dir(dbPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return &Storage{db: db}, nil
}

// Close closes the database connection.
func (s *Storage) Close() error {
	return s.db.Close()
}

// SaveSnapshot replaces the stored snapshot with dict in one transaction.
func (s *Storage) SaveSnapshot(ctx context.Context, dict *dictionary.Dictionary) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM terms`); err != nil {
		return fmt.Errorf("failed to clear terms: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO terms (position, american, british) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, t := range dict.Mapping {
		if _, err := stmt.ExecContext(ctx, i, t.American, t.British); err != nil {
			return fmt.Errorf("failed to store term %q: %w", t.American, err)
		}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO meta (id, source, checksum, fetched_at) VALUES (1, ?, ?, ?)`,
		dict.Source, dict.Checksum, dict.LoadedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to store snapshot metadata: %w", err)
	}

	return tx.Commit()
}

// LoadSnapshot returns the stored mapping in its original order.
func (s *Storage) LoadSnapshot(ctx context.Context) (dictionary.TermMapping, error) {
	if _, err := s.Info(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT american, british FROM terms ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query terms: %w", err)
	}
	defer rows.Close()

	var mapping dictionary.TermMapping
	for rows.Next() {
		var t dictionary.Term
		if err := rows.Scan(&t.American, &t.British); err != nil {
			return nil, fmt.Errorf("failed to scan term: %w", err)
		}
		mapping = append(mapping, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read terms: %w", err)
	}
	return mapping, nil
}

// Info returns metadata about the stored snapshot.
func (s *Storage) Info(ctx context.Context) (*SnapshotInfo, error) {
	var info SnapshotInfo
	err := s.db.QueryRowContext(ctx, `SELECT source, checksum, fetched_at FROM meta WHERE id = 1`).
		Scan(&info.Source, &info.Checksum, &info.FetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot metadata: %w", err)
	}

	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM terms`).Scan(&info.Terms); err != nil {
		return nil, fmt.Errorf("failed to count terms: %w", err)
	}
	return &info, nil
}

// Clean deletes the stored snapshot.
func (s *Storage) Clean(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM terms`); err != nil {
		return fmt.Errorf("failed to clear terms: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM meta`); err != nil {
		return fmt.Errorf("failed to clear metadata: %w", err)
	}
	return tx.Commit()
}
