package config

import (
	"fmt"
	"log/slog"

	"github.com/mmynk/zeipilote/internal/storage"
	"github.com/mmynk/zeipilote/internal/storage/file"
	"github.com/mmynk/zeipilote/internal/storage/memory"
	"github.com/mmynk/zeipilote/internal/storage/sqlite"
)

// OpenStore opens the configured slot backend and wraps it in a Store.
func (c StorageConfig) OpenStore() (*storage.Store, error) {
	var (
		slot storage.Slot
		err  error
	)
	switch c.Backend {
	case BackendSQLite, "":
		slot, err = sqlite.New(c.DBPath)
		if err == nil {
			slog.Info("Storage initialized", "backend", BackendSQLite, "database", c.DBPath)
		}
	case BackendFile:
		slot, err = file.New(c.DataDir)
		if err == nil {
			slog.Info("Storage initialized", "backend", BackendFile, "dir", c.DataDir)
		}
	case BackendMemory:
		slot = memory.New()
		slog.Info("Storage initialized", "backend", BackendMemory)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", c.Backend)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %s storage: %w", c.Backend, err)
	}
	return storage.New(slot, c.Key), nil
}
