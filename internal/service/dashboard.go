// Package service implements the dashboard operations on top of the app data store.
//
// Every mutation is load, modify a copy, save. A mutex serializes read-modify-write
// inside one process; across processes sharing a slot the last write wins.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/zeipilote/internal/metrics"
	"github.com/mmynk/zeipilote/internal/models"
	"github.com/mmynk/zeipilote/internal/storage"
)

var (
	// ErrNotFound is returned when a record id does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrInvalidSettings is returned when a settings update names an unknown currency or locale.
	ErrInvalidSettings = errors.New("invalid settings")
)

// UpdateMode decides what an update does when the record id is unknown.
type UpdateMode string

const (
	// UpdateIgnore silently leaves the data untouched.
	UpdateIgnore UpdateMode = "ignore"
	// UpdateUpsert appends the record as if it were new.
	UpdateUpsert UpdateMode = "upsert"
	// UpdateStrict fails with ErrNotFound.
	UpdateStrict UpdateMode = "strict"
)

// ParseUpdateMode reads a mode name. The empty string selects UpdateIgnore.
func ParseUpdateMode(s string) (UpdateMode, error) {
	switch mode := UpdateMode(strings.ToLower(strings.TrimSpace(s))); mode {
	case "":
		return UpdateIgnore, nil
	case UpdateIgnore, UpdateUpsert, UpdateStrict:
		return mode, nil
	default:
		return "", fmt.Errorf("unknown update mode %q", s)
	}
}

// Option configures a Dashboard.
type Option func(*Dashboard)

// WithClock overrides the time source used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(d *Dashboard) { d.now = now }
}

// WithIDGenerator overrides the id generator used for new records.
func WithIDGenerator(newID func() string) Option {
	return func(d *Dashboard) { d.newID = newID }
}

// WithUpdateMode sets the behaviour of updates that target an unknown id.
func WithUpdateMode(mode UpdateMode) Option {
	return func(d *Dashboard) { d.mode = mode }
}

// WithProductName sets the product prefix used in export filenames.
func WithProductName(name string) Option {
	return func(d *Dashboard) { d.product = name }
}

// Dashboard is the repository for the app data aggregate.
type Dashboard struct {
	mu      sync.Mutex
	store   *storage.Store
	now     func() time.Time
	newID   func() string
	mode    UpdateMode
	product string
}

// NewDashboard creates a Dashboard over store.
func NewDashboard(store *storage.Store, opts ...Option) *Dashboard {
	d := &Dashboard{
		store:   store,
		now:     time.Now,
		newID:   uuid.NewString,
		mode:    UpdateIgnore,
		product: "zeipilote",
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Mode returns the configured update mode.
func (d *Dashboard) Mode() UpdateMode { return d.mode }

// ProductName returns the product prefix used in filenames.
func (d *Dashboard) ProductName() string { return d.product }

// Now returns the dashboard clock reading.
func (d *Dashboard) Now() time.Time { return d.now() }

// Snapshot loads the current app data. It never fails.
func (d *Dashboard) Snapshot(ctx context.Context) models.AppData {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.store.Load(ctx)
}

// Probe reports whether the underlying storage can be read.
func (d *Dashboard) Probe(ctx context.Context) error {
	return d.store.Probe(ctx)
}

// LastSaved returns when the data was last written, when the storage backend tracks it.
func (d *Dashboard) LastSaved(ctx context.Context) (time.Time, bool) {
	return d.store.LastSaved(ctx)
}

// errNoChange tells mutate to skip the write.
var errNoChange = errors.New("no change")

// mutate runs fn on a fresh copy of the app data and saves the result.
// Nothing is written when the stored data could not be read.
// When fn returns errNoChange nothing is written and mutate returns nil.
func (d *Dashboard) mutate(ctx context.Context, operation string, fn func(data *models.AppData) error) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	current, err := d.store.LoadForUpdate(ctx)
	if err != nil {
		slog.Error("Failed to load app data, mutation aborted", "operation", operation, "error", err)
		return fmt.Errorf("failed to load data for %s: %w", operation, err)
	}
	data := current.Clone()
	if err := fn(&data); err != nil {
		if errors.Is(err, errNoChange) {
			slog.Debug("Mutation left data unchanged", "operation", operation)
			return nil
		}
		return err
	}
	if err := d.store.Save(ctx, data); err != nil {
		slog.Error("Failed to save app data", "operation", operation, "error", err)
		return fmt.Errorf("failed to save %s: %w", operation, err)
	}
	metrics.Mutations.WithLabelValues(operation).Inc()
	return nil
}

// unknownID applies the update mode to an update whose id did not match.
// A nil error means the record should be appended.
func (d *Dashboard) unknownID(kind, id string) error {
	switch d.mode {
	case UpdateUpsert:
		slog.Info("Update of unknown id, appending", "kind", kind, "id", id)
		return nil
	case UpdateStrict:
		return fmt.Errorf("%w: %s %s", ErrNotFound, kind, id)
	default:
		slog.Warn("Update of unknown id ignored", "kind", kind, "id", id)
		return errNoChange
	}
}

func (d *Dashboard) stamp() string {
	return models.Timestamp(d.now())
}
