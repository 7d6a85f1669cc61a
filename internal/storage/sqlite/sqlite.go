// Package sqlite provides a SQLite-backed implementation of the storage.Slot interface.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/zeipilote/internal/storage"
)

// Ensure SQLiteSlot implements storage.Slot
var _ storage.Slot = (*SQLiteSlot)(nil)

// SQLiteSlot implements storage.Slot using a single key/value table.
type SQLiteSlot struct {
	db *sql.DB
}

// New creates a new SQLiteSlot with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteSlot, error) {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// The CLI and the server may share the file; wait for locks instead of failing.
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteSlot{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteSlot) Close() error {
	return s.db.Close()
}

// Get retrieves the value stored under key.
func (s *SQLiteSlot) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx,
		"SELECT value FROM kv WHERE key = ?",
		key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get value: %w", err)
	}
	return value, nil
}

// Set replaces the value stored under key in a single statement.
func (s *SQLiteSlot) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to set value: %w", err)
	}
	return nil
}

// UpdatedAt returns when key was last written, or the zero time if it never was.
func (s *SQLiteSlot) UpdatedAt(ctx context.Context, key string) (time.Time, error) {
	var unix int64
	err := s.db.QueryRowContext(ctx, "SELECT updated_at FROM kv WHERE key = ?", key).Scan(&unix)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to get update time: %w", err)
	}
	return time.Unix(unix, 0), nil
}
