package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/maragym/gymlog/internal/kvstore"
)

// Backend implements kvstore.Backend on the kv table.
type Backend struct {
	db *DB
}

var _ kvstore.Backend = (*Backend)(nil)

func newBackend(db *DB) *Backend {
	return &Backend{db: db}
}

// Get returns the value stored under key.
func (b *Backend) Get(key string) (string, bool, error) {
	var value string
	err := b.db.conn.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read key: %w", err)
	}
	return value, true, nil
}

// Set upserts key.
func (b *Backend) Set(key, value string) error {
	_, err := b.db.conn.Exec(
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to write key: %w", err)
	}
	return nil
}

// Remove deletes key. Removing an absent key is not an error.
func (b *Backend) Remove(key string) error {
	if _, err := b.db.conn.Exec(`DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete key: %w", err)
	}
	return nil
}

// Close closes the owning database.
func (b *Backend) Close() error {
	return b.db.Close()
}
