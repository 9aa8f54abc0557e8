// Package pgslot keeps slots in a single Postgres key/value table. It is
// an optional backend for running the tracker against a shared database
// instead of local files; the slot semantics are identical.
package pgslot

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hbarnes/penny/internal/storage"
)

type Store struct {
	db *sql.DB
}

// New ensures the slots table exists and returns a Postgres-backed
// slot store.
func New(ctx context.Context, db *sql.DB) (*Store, error) {
	query := `
		CREATE TABLE IF NOT EXISTS slots (
			key        TEXT PRIMARY KEY,
			value      BYTEA NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`

	if _, err := db.ExecContext(ctx, query); err != nil {
		return nil, fmt.Errorf("ensuring slots table: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Read(ctx context.Context, key string) ([]byte, error) {
	var value []byte

	err := s.db.QueryRowContext(ctx, `SELECT value FROM slots WHERE key = $1`, key).Scan(&value)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, storage.ErrNotFound
		}

		return nil, fmt.Errorf("reading slot %q: %w", key, err)
	}

	return value, nil
}

func (s *Store) Write(ctx context.Context, key string, data []byte) error {
	query := `
		INSERT INTO slots (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`

	if _, err := s.db.ExecContext(ctx, query, key, data); err != nil {
		return fmt.Errorf("writing slot %q: %w", key, err)
	}

	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM slots WHERE key = $1`, key); err != nil {
		return fmt.Errorf("deleting slot %q: %w", key, err)
	}

	return nil
}
