package config

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/mmynk/zeipilote/internal/service"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "STORAGE_BACKEND", "DB_PATH", "DATA_DIR", "STORAGE_KEY", "PRODUCT_NAME", "UPDATE_MODE", "LOG_LEVEL", "CORS_ORIGINS", "SERVER_READ_TIMEOUT", "SERVER_WRITE_TIMEOUT", "SERVER_SHUTDOWN_TIMEOUT"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	want := Config{
		HTTP: HTTPConfig{
			Port:            8080,
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Storage: StorageConfig{
			Backend: BackendSQLite,
			DBPath:  "./data/zeipilote.db",
			DataDir: "./data",
			Key:     "zeipilote-data",
		},
		Product:    "zeipilote",
		UpdateMode: service.UpdateIgnore,
		LogLevel:   "info",
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("STORAGE_BACKEND", "File")
	t.Setenv("UPDATE_MODE", "strict")
	t.Setenv("CORS_ORIGINS", "http://localhost:3000, https://app.example.fr,")
	t.Setenv("SERVER_WRITE_TIMEOUT", "1m")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.HTTP.Port != 9090 || cfg.Storage.Backend != BackendFile || cfg.UpdateMode != service.UpdateStrict {
		t.Errorf("Load() = %+v", cfg)
	}
	if cfg.HTTP.WriteTimeout != time.Minute {
		t.Errorf("WriteTimeout = %v, want 1m", cfg.HTTP.WriteTimeout)
	}
	if diff := cmp.Diff([]string{"http://localhost:3000", "https://app.example.fr"}, cfg.HTTP.AllowedOrigins); diff != "" {
		t.Errorf("AllowedOrigins mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{"bad port", "PORT", "http"},
		{"port out of range", "PORT", "70000"},
		{"unknown backend", "STORAGE_BACKEND", "redis"},
		{"unknown update mode", "UPDATE_MODE", "merge"},
		{"bad timeout", "SERVER_READ_TIMEOUT", "soon"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if _, err := Load(); err == nil {
				t.Errorf("Load() with %s=%q expected an error", tt.key, tt.value)
			}
		})
	}
}

func TestOpenStore(t *testing.T) {
	dir := t.TempDir()
	tests := []StorageConfig{
		{Backend: BackendSQLite, DBPath: dir + "/db/zeipilote.db", Key: "k"},
		{Backend: BackendFile, DataDir: dir + "/files", Key: "k"},
		{Backend: BackendMemory, Key: "k"},
	}
	for _, sc := range tests {
		t.Run(sc.Backend, func(t *testing.T) {
			store, err := sc.OpenStore()
			if err != nil {
				t.Fatalf("OpenStore failed: %v", err)
			}
			defer store.Close()
			if store.Key() != "k" {
				t.Errorf("Key() = %q, want k", store.Key())
			}
			if err := store.Probe(context.Background()); err != nil {
				t.Errorf("Probe failed: %v", err)
			}
		})
	}

	if _, err := (StorageConfig{Backend: "redis"}).OpenStore(); err == nil {
		t.Error("OpenStore() expected an error for an unknown backend")
	}
}
