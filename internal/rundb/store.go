// Package rundb caches a completed analysis report keyed by the content
// hash of its inputs, so re-running swiftexclude against an unchanged
// graph and rule set can skip recomputation entirely. Backed by a durable
// SQLite table (modernc.org/sqlite) rather than an in-memory map, so the
// cache survives across `swiftexclude watch` ticks and process restarts.
package rundb

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	key       TEXT PRIMARY KEY,
	report    BLOB NOT NULL,
	stored_at DATETIME NOT NULL
);`

// Store is a SQLite-backed cache of {key -> report bytes}.
type Store struct {
	db *sql.DB
}

// Open creates or opens the SQLite database at path and ensures its
// schema exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening run cache %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing run cache schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Key derives the cache key for a given graph document and rule file:
// SHA-256 over the two byte slices, separated by a NUL so that, for inputs
// containing no NUL bytes, shifting the graph/rules boundary changes the
// key.
func Key(graphBytes, rulesBytes []byte) string {
	h := sha256.New()
	h.Write(graphBytes)
	h.Write([]byte{0})
	h.Write(rulesBytes)
	return hex.EncodeToString(h.Sum(nil))
}

// Get returns the cached report bytes for key, and whether an entry was
// found at all.
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, `SELECT report FROM runs WHERE key = ?`, key).Scan(&data)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, false, nil
	case err != nil:
		return nil, false, fmt.Errorf("reading run cache entry: %w", err)
	}
	return data, true, nil
}

// Put stores (or overwrites) the report bytes for key.
func (s *Store) Put(ctx context.Context, key string, report []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs(key, report, stored_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET report = excluded.report, stored_at = excluded.stored_at
	`, key, report, time.Now())
	if err != nil {
		return fmt.Errorf("writing run cache entry: %w", err)
	}
	return nil
}

// Delete removes the cache entry for key, if any.
func (s *Store) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM runs WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("deleting run cache entry: %w", err)
	}
	return nil
}
