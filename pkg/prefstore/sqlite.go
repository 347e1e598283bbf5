package prefstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	_ "modernc.org/sqlite" // pure Go SQLite driver
)

const (
	createPreferencesTable = `CREATE TABLE IF NOT EXISTS preferences (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
)`
	selectPreference = `SELECT value FROM preferences WHERE key = ?`
	upsertPreference = `INSERT INTO preferences (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
)

// SQLiteBackend keeps preferences in a key/value table.
type SQLiteBackend struct {
	db *sql.DB
	mu sync.Mutex
}

// OpenSQLite opens (or creates) the database at path and ensures the
// preferences table exists. Use ":memory:" for a throwaway store.
func OpenSQLite(ctx context.Context, path string) (*SQLiteBackend, error) {
	if path == "" {
		return nil, errors.New("prefstore: sqlite path is required")
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("prefstore: open sqlite database %q: %w", path, err)
	}
	// a single connection keeps ":memory:" databases shared across calls
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("prefstore: verify sqlite connection to %q: %w", path, err)
	}
	if _, err := db.ExecContext(ctx, createPreferencesTable); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("prefstore: create preferences table: %w", err)
	}
	return &SQLiteBackend{db: db}, nil
}

// Load returns the stored value for key.
func (b *SQLiteBackend) Load(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := b.db.QueryRowContext(ctx, selectPreference, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("prefstore: load %q: %w", key, err)
	}
	return value, true, nil
}

// Save upserts key=value.
func (b *SQLiteBackend) Save(ctx context.Context, key, value string) error {
	if key == "" {
		return errors.New("prefstore: preference key is required")
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, err := b.db.ExecContext(ctx, upsertPreference, key, value); err != nil {
		return fmt.Errorf("prefstore: save %q: %w", key, err)
	}
	return nil
}

// Close releases the database handle.
func (b *SQLiteBackend) Close() error {
	return b.db.Close()
}
