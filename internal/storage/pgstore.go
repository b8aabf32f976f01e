package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/lib/pq"
)

const schema = `
CREATE TABLE IF NOT EXISTS kv (
    key TEXT PRIMARY KEY,
    value JSONB NOT NULL
);
`

// PGStore is a KV backed by a single Postgres key-value table. It is the
// alternate persistence adapter for deployments that want the local state
// in a database instead of a file.
type PGStore struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPGStore creates a PGStore on top of an existing database connection.
func NewPGStore(db *sql.DB) *PGStore {
	return &PGStore{DB: db}
}

// OpenPostgres connects to Postgres with the given DSN, verifies the
// connection, and bootstraps the kv schema.
func OpenPostgres(dsn string) (*PGStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return NewPGStore(db), nil
}

// Get returns the raw value stored under key, ok=false if none exists.
func (s *PGStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := s.DB.QueryRowContext(
		ctx,
		`SELECT value FROM kv WHERE key = $1`,
		key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

// Set stores value under key, replacing any existing value.
func (s *PGStore) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.DB.ExecContext(
		ctx,
		`INSERT INTO kv (key, value) VALUES ($1, $2)
         ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`,
		key, string(value),
	)
	return err
}

// Delete removes key. Deleting a missing key is not an error.
func (s *PGStore) Delete(ctx context.Context, key string) error {
	_, err := s.DB.ExecContext(
		ctx,
		`DELETE FROM kv WHERE key = $1`,
		key,
	)
	return err
}
