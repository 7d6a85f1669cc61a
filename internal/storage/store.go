// Package storage persists the app data aggregate as one JSON blob in a key-value slot.
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mmynk/zeipilote/internal/metrics"
	"github.com/mmynk/zeipilote/internal/models"
)

// DefaultKey is the slot key the app data lives under.
const DefaultKey = "zeipilote-data"

var (
	// ErrEmpty is returned by a Slot when nothing is stored under the key.
	ErrEmpty = errors.New("slot is empty")

	// ErrUnavailable is returned by Save when the store has no slot to write to.
	ErrUnavailable = errors.New("storage unavailable")
)

// Slot defines the key-value capability the store is built on.
// This abstraction allows swapping backends (SQLite, plain files, memory)
// without changing the service layer.
type Slot interface {
	// Get returns the value stored under key, or ErrEmpty.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set replaces the value stored under key.
	Set(ctx context.Context, key string, value []byte) error

	// Close releases any resources held by the slot.
	Close() error
}

// Timestamped is implemented by slots that record when a key was last written.
type Timestamped interface {
	UpdatedAt(ctx context.Context, key string) (time.Time, error)
}

// Store reads and writes the whole AppData under a single key.
//
// Writes are last-write-wins: two processes sharing a slot each overwrite the
// other's snapshot without merging.
type Store struct {
	slot Slot
	key  string
	now  func() time.Time
}

// New creates a Store over slot. An empty key selects DefaultKey.
// A nil slot is allowed and behaves like unavailable storage.
func New(slot Slot, key string) *Store {
	if key == "" {
		key = DefaultKey
	}
	return &Store{slot: slot, key: key, now: time.Now}
}

// Key returns the slot key used by the store.
func (s *Store) Key() string { return s.key }

// Load returns the persisted app data. It never fails: when storage is unavailable,
// empty or holds something that does not decode, the default app data is returned.
func (s *Store) Load(ctx context.Context) models.AppData {
	data, _ := s.load(ctx)
	return data
}

// LoadForUpdate is Load for read-modify-write callers. An unavailable slot is
// reported as an error wrapping ErrUnavailable instead of falling back, so the
// default data never overwrites a snapshot that merely could not be read.
// Empty and undecodable snapshots still fall back to the default app data.
func (s *Store) LoadForUpdate(ctx context.Context) (models.AppData, error) {
	return s.load(ctx)
}

func (s *Store) load(ctx context.Context) (models.AppData, error) {
	if s.slot == nil {
		return s.fallback("unavailable", nil), ErrUnavailable
	}

	raw, err := s.slot.Get(ctx, s.key)
	if errors.Is(err, ErrEmpty) {
		return s.fallback("empty", nil), nil
	}
	if err != nil {
		return s.fallback("unavailable", err), fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return s.fallback("corrupt", errors.New("stored value is not a JSON object")), nil
	}

	var data models.AppData
	if err := json.Unmarshal(trimmed, &data); err != nil {
		return s.fallback("corrupt", err), nil
	}
	return data, nil
}

// Save serializes data and overwrites the slot. There is no merge and no history.
func (s *Store) Save(ctx context.Context, data models.AppData) error {
	if s.slot == nil {
		metrics.StoreWrites.WithLabelValues("error").Inc()
		return ErrUnavailable
	}

	raw, err := json.Marshal(data)
	if err != nil {
		metrics.StoreWrites.WithLabelValues("error").Inc()
		return fmt.Errorf("failed to encode app data: %w", err)
	}
	if err := s.slot.Set(ctx, s.key, raw); err != nil {
		metrics.StoreWrites.WithLabelValues("error").Inc()
		return fmt.Errorf("failed to write app data: %w", err)
	}

	metrics.StoreWrites.WithLabelValues("ok").Inc()
	slog.Debug("App data saved", "key", s.key, "bytes", len(raw))
	return nil
}

// Probe checks that the slot can be read. An empty slot is healthy.
func (s *Store) Probe(ctx context.Context) error {
	if s.slot == nil {
		return ErrUnavailable
	}
	if _, err := s.slot.Get(ctx, s.key); err != nil && !errors.Is(err, ErrEmpty) {
		return err
	}
	return nil
}

// LastSaved returns when the app data was last written. ok is false when the slot
// does not track write times or nothing was written yet.
func (s *Store) LastSaved(ctx context.Context) (t time.Time, ok bool) {
	ts, isTimestamped := s.slot.(Timestamped)
	if !isTimestamped {
		return time.Time{}, false
	}
	t, err := ts.UpdatedAt(ctx, s.key)
	if err != nil {
		slog.Warn("Failed to read last save time", "key", s.key, "error", err)
		return time.Time{}, false
	}
	return t, !t.IsZero()
}

// Close closes the underlying slot.
func (s *Store) Close() error {
	if s.slot == nil {
		return nil
	}
	return s.slot.Close()
}

func (s *Store) fallback(reason string, err error) models.AppData {
	metrics.StoreFallbacks.WithLabelValues(reason).Inc()
	if err != nil {
		slog.Warn("Falling back to default app data", "key", s.key, "reason", reason, "error", err)
	} else {
		slog.Debug("Falling back to default app data", "key", s.key, "reason", reason)
	}
	return models.DefaultAppData(s.now())
}
