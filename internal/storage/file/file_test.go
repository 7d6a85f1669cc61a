package file

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func TestSlotConcurrentWriters(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	values := make([][]byte, 8)
	for i := range values {
		values[i] = bytes.Repeat([]byte(fmt.Sprintf("%d", i)), 64*1024)
	}

	// One slot per writer, like the CLI and the server sharing a data directory.
	var wg sync.WaitGroup
	errs := make(chan error, len(values)*10)
	for _, value := range values {
		slot, err := New(dir)
		if err != nil {
			t.Fatalf("New failed: %v", err)
		}
		wg.Add(1)
		go func(value []byte) {
			defer wg.Done()
			for range 10 {
				if err := slot.Set(ctx, "zeipilote-data", value); err != nil {
					errs <- err
				}
			}
		}(value)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Errorf("Set failed: %v", err)
	}

	slot, err := New(dir)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	got, err := slot.Get(ctx, "zeipilote-data")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	whole := false
	for _, value := range values {
		if bytes.Equal(got, value) {
			whole = true
		}
	}
	if !whole {
		t.Errorf("stored value is not one complete write (%d bytes)", len(got))
	}

	leftovers, err := filepath.Glob(filepath.Join(dir, "*.tmp"))
	if err != nil {
		t.Fatalf("Glob failed: %v", err)
	}
	if len(leftovers) != 0 {
		t.Errorf("temp files left behind: %v", leftovers)
	}

	info, err := os.Stat(filepath.Join(dir, "zeipilote-data.json"))
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if info.Mode().Perm() != 0o644 {
		t.Errorf("data file mode = %v, want 0644", info.Mode().Perm())
	}
}

func TestSlotRejectsBadKeys(t *testing.T) {
	slot, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	for _, key := range []string{"", ".", "..", "a/b", `a\b`} {
		if err := slot.Set(context.Background(), key, []byte("{}")); err == nil {
			t.Errorf("Set(%q) succeeded, want error", key)
		}
	}
}
