package storage_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/mmynk/zeipilote/internal/metrics"
	"github.com/mmynk/zeipilote/internal/models"
	"github.com/mmynk/zeipilote/internal/storage"
	"github.com/mmynk/zeipilote/internal/storage/file"
	"github.com/mmynk/zeipilote/internal/storage/memory"
	"github.com/mmynk/zeipilote/internal/storage/sqlite"
)

// brokenSlot fails every call, like a storage backend that is not reachable.
type brokenSlot struct{}

func (brokenSlot) Get(context.Context, string) ([]byte, error) { return nil, errors.New("disk gone") }
func (brokenSlot) Set(context.Context, string, []byte) error  { return errors.New("disk gone") }
func (brokenSlot) Close() error                                { return nil }

func sampleData() models.AppData {
	budget := 1500.0
	return models.AppData{
		Clients: []models.Client{
			{ID: "c1", Name: "Jean Dupont", Email: "jean@example.com", Phone: "0102030405", CreatedAt: "2025-01-02T10:00:00.000Z"},
			{ID: "c2", Name: "ACME", Email: "contact@acme.test", CreatedAt: "2025-01-03T10:00:00.000Z"},
		},
		Projects: []models.Project{
			{ID: "p1", ClientID: "c1", Name: "Site vitrine", Status: models.ProjectActive, StartDate: "2025-01-05", Budget: &budget},
		},
		Invoices: []models.Invoice{
			{
				ID: "i1", ClientID: "c1", Amount: 300, Status: models.InvoicePaid,
				Date: "2025-01-15T00:00:00.000Z", DueDate: "2025-02-14T00:00:00.000Z",
				Items: []models.LineItem{{Description: "Consulting", Quantity: 3, Price: 100}},
			},
		},
		BusinessInfo: models.BusinessInfo{Name: "Zoé", Profession: "Designer", LastUpdated: "2025-01-01T00:00:00.000Z"},
		Settings:     &models.Settings{Currency: "EUR", CurrencyFormat: "fr-FR"},
	}
}

func TestStoreRoundTrip(t *testing.T) {
	fileSlot, err := file.New(t.TempDir())
	if err != nil {
		t.Fatalf("file.New failed: %v", err)
	}

	slots := map[string]storage.Slot{
		"memory": memory.New(),
		"file":   fileSlot,
	}

	for name, slot := range slots {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store := storage.New(slot, "")

			_ = store.Load(ctx)
			want := sampleData()
			if err := store.Save(ctx, want); err != nil {
				t.Fatalf("Save failed: %v", err)
			}
			got := store.Load(ctx)
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("Load after Save mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestStoreLoadFallbacks(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		slot   func() storage.Slot
		reason string
	}{
		{
			name:   "nil slot",
			slot:   func() storage.Slot { return nil },
			reason: "unavailable",
		},
		{
			name:   "read error",
			slot:   func() storage.Slot { return brokenSlot{} },
			reason: "unavailable",
		},
		{
			name:   "nothing stored",
			slot:   func() storage.Slot { return memory.New() },
			reason: "empty",
		},
		{
			name: "not JSON",
			slot: func() storage.Slot {
				s := memory.New()
				s.Set(ctx, storage.DefaultKey, []byte("{not json"))
				return s
			},
			reason: "corrupt",
		},
		{
			name: "JSON null",
			slot: func() storage.Slot {
				s := memory.New()
				s.Set(ctx, storage.DefaultKey, []byte("null"))
				return s
			},
			reason: "corrupt",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counter := metrics.StoreFallbacks.WithLabelValues(tt.reason)
			before := testutil.ToFloat64(counter)

			got := storage.New(tt.slot(), "").Load(ctx)

			if got.Clients == nil || got.Projects == nil || got.Invoices == nil {
				t.Fatalf("expected empty collections, got %+v", got)
			}
			if len(got.Clients)+len(got.Projects)+len(got.Invoices) != 0 {
				t.Errorf("expected empty default data, got %+v", got)
			}
			if got.BusinessInfo.Profession != models.DefaultProfession {
				t.Errorf("profession = %q, want %q", got.BusinessInfo.Profession, models.DefaultProfession)
			}
			if after := testutil.ToFloat64(counter); after != before+1 {
				t.Errorf("fallback counter for %q = %v, want %v", tt.reason, after, before+1)
			}
		})
	}
}

func TestStoreLoadForUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("read error is reported", func(t *testing.T) {
		if _, err := storage.New(brokenSlot{}, "").LoadForUpdate(ctx); !errors.Is(err, storage.ErrUnavailable) {
			t.Errorf("LoadForUpdate on broken slot = %v, want ErrUnavailable", err)
		}
		if _, err := storage.New(nil, "").LoadForUpdate(ctx); !errors.Is(err, storage.ErrUnavailable) {
			t.Errorf("LoadForUpdate on nil slot = %v, want ErrUnavailable", err)
		}
	})

	t.Run("empty and corrupt slots fall back", func(t *testing.T) {
		corrupt := memory.New()
		corrupt.Set(ctx, storage.DefaultKey, []byte("{not json"))
		for _, slot := range []storage.Slot{memory.New(), corrupt} {
			got, err := storage.New(slot, "").LoadForUpdate(ctx)
			if err != nil {
				t.Fatalf("LoadForUpdate failed: %v", err)
			}
			if len(got.Clients) != 0 || got.Clients == nil {
				t.Errorf("expected default data, got %+v", got)
			}
		}
	})

	t.Run("stored data is returned", func(t *testing.T) {
		store := storage.New(memory.New(), "")
		if err := store.Save(ctx, sampleData()); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		got, err := store.LoadForUpdate(ctx)
		if err != nil {
			t.Fatalf("LoadForUpdate failed: %v", err)
		}
		if diff := cmp.Diff(sampleData(), got); diff != "" {
			t.Errorf("LoadForUpdate mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestStoreSaveErrors(t *testing.T) {
	ctx := context.Background()

	if err := storage.New(nil, "").Save(ctx, sampleData()); !errors.Is(err, storage.ErrUnavailable) {
		t.Errorf("Save on nil slot = %v, want ErrUnavailable", err)
	}
	if err := storage.New(brokenSlot{}, "").Save(ctx, sampleData()); err == nil {
		t.Error("expected error from broken slot")
	}
}

func TestStoreSaveOverwrites(t *testing.T) {
	ctx := context.Background()
	store := storage.New(memory.New(), "custom-key")
	if store.Key() != "custom-key" {
		t.Fatalf("Key() = %q", store.Key())
	}

	if err := store.Save(ctx, sampleData()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	second := sampleData()
	second.Clients = second.Clients[:1]
	second.Invoices = []models.Invoice{}
	if err := store.Save(ctx, second); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got := store.Load(ctx)
	if diff := cmp.Diff(second, got); diff != "" {
		t.Errorf("second snapshot did not replace the first (-want +got):\n%s", diff)
	}
}

func TestStoreProbe(t *testing.T) {
	ctx := context.Background()
	if err := storage.New(memory.New(), "").Probe(ctx); err != nil {
		t.Errorf("Probe on empty slot = %v, want nil", err)
	}
	if err := storage.New(brokenSlot{}, "").Probe(ctx); err == nil {
		t.Error("expected Probe error on broken slot")
	}
}

func TestStoreLastSaved(t *testing.T) {
	ctx := context.Background()

	t.Run("memory slot does not track writes", func(t *testing.T) {
		store := storage.New(memory.New(), "")
		if err := store.Save(ctx, sampleData()); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		if _, ok := store.LastSaved(ctx); ok {
			t.Error("LastSaved reported a time for a memory slot")
		}
	})

	t.Run("sqlite slot records the write", func(t *testing.T) {
		slot, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
		if err != nil {
			t.Fatalf("Failed to open sqlite: %v", err)
		}
		store := storage.New(slot, "")
		defer store.Close()

		if _, ok := store.LastSaved(ctx); ok {
			t.Error("LastSaved reported a time before any write")
		}
		before := time.Now().Add(-time.Second)
		if err := store.Save(ctx, sampleData()); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		saved, ok := store.LastSaved(ctx)
		if !ok {
			t.Fatal("LastSaved reported nothing after a write")
		}
		if saved.Before(before.Truncate(time.Second)) {
			t.Errorf("LastSaved = %v, want after %v", saved, before)
		}
	})
}
