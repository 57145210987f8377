// Package postgres is a KeyValue backed by the kv_entries table.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ghuser/pricetrack/pkg/database"
	"github.com/ghuser/pricetrack/services/grocery/infrastructure/persistence"
)

const (
	selectEntry = `SELECT value FROM kv_entries WHERE key = $1`
	upsertEntry = `INSERT INTO kv_entries (key, value, updated_at) VALUES ($1, $2, now())
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`
	deleteEntry = `DELETE FROM kv_entries WHERE key = $1`
)

// Store implements persistence.KeyValue against PostgreSQL. Values must be
// valid JSON since the column is JSONB.
type Store struct {
	db *database.Database
}

// NewStore returns a Store on the given pool. The kv_entries table must exist;
// see the migrations package.
func NewStore(db *database.Database) *Store {
	return &Store{db: db}
}

// Get returns the stored value. Returns persistence.ErrKeyNotFound if the key has no row.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.DB().QueryRowContext(ctx, selectEntry, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, persistence.ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query entry: %w", err)
	}
	return value, nil
}

// Set upserts the value inside a transaction.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if !json.Valid(value) {
		return fmt.Errorf("value for %s is not valid JSON", key)
	}
	return s.db.WithTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, upsertEntry, key, string(value)); err != nil {
			return fmt.Errorf("upsert entry: %w", err)
		}
		return nil
	})
}

// Delete removes the row for key, if any.
func (s *Store) Delete(ctx context.Context, key string) error {
	if _, err := s.db.DB().ExecContext(ctx, deleteEntry, key); err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	return nil
}

// Ping checks the database connection health.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}
