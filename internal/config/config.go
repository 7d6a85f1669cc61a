// Package config loads the server and CLI settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mmynk/zeipilote/internal/service"
)

// Config aggregates application configuration values.
type Config struct {
	HTTP    HTTPConfig
	Storage StorageConfig
	Product string
	// UpdateMode governs updates of records that do not exist.
	UpdateMode service.UpdateMode
	LogLevel   string
}

// HTTPConfig governs HTTP server behaviour.
type HTTPConfig struct {
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	AllowedOrigins  []string
}

// StorageConfig selects the slot backend the app data lives in.
type StorageConfig struct {
	// Backend is one of sqlite, file or memory.
	Backend string
	DBPath  string
	DataDir string
	Key     string
}

const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
	BackendMemory = "memory"
)

const (
	defaultPort            = 8080
	defaultReadTimeout     = 10 * time.Second
	defaultWriteTimeout    = 30 * time.Second
	defaultShutdownTimeout = 10 * time.Second
	defaultDBPath          = "./data/zeipilote.db"
	defaultDataDir         = "./data"
	defaultStorageKey      = "zeipilote-data"
	defaultProduct         = "zeipilote"
	defaultLogLevel        = "info"
)

// Load reads configuration from environment variables, applying defaults.
func Load() (Config, error) {
	cfg := Config{
		HTTP: HTTPConfig{
			ReadTimeout:     defaultReadTimeout,
			WriteTimeout:    defaultWriteTimeout,
			ShutdownTimeout: defaultShutdownTimeout,
			AllowedOrigins:  splitCSV(os.Getenv("CORS_ORIGINS")),
		},
		Storage: StorageConfig{
			Backend: strings.ToLower(valueOrDefault("STORAGE_BACKEND", BackendSQLite)),
			DBPath:  valueOrDefault("DB_PATH", defaultDBPath),
			DataDir: valueOrDefault("DATA_DIR", defaultDataDir),
			Key:     valueOrDefault("STORAGE_KEY", defaultStorageKey),
		},
		Product:  valueOrDefault("PRODUCT_NAME", defaultProduct),
		LogLevel: valueOrDefault("LOG_LEVEL", defaultLogLevel),
	}

	port, err := parsePort("PORT", defaultPort)
	if err != nil {
		return Config{}, err
	}
	cfg.HTTP.Port = port

	for key, dst := range map[string]*time.Duration{
		"SERVER_READ_TIMEOUT":     &cfg.HTTP.ReadTimeout,
		"SERVER_WRITE_TIMEOUT":    &cfg.HTTP.WriteTimeout,
		"SERVER_SHUTDOWN_TIMEOUT": &cfg.HTTP.ShutdownTimeout,
	} {
		if v := os.Getenv(key); v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				return Config{}, fmt.Errorf("invalid %s: %w", key, err)
			}
			*dst = d
		}
	}

	switch cfg.Storage.Backend {
	case BackendSQLite, BackendFile, BackendMemory:
	default:
		return Config{}, fmt.Errorf("invalid STORAGE_BACKEND %q: want sqlite, file or memory", cfg.Storage.Backend)
	}

	mode, err := service.ParseUpdateMode(os.Getenv("UPDATE_MODE"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid UPDATE_MODE: %w", err)
	}
	cfg.UpdateMode = mode

	return cfg, nil
}

func valueOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parsePort(key string, fallback int) (int, error) {
	if v := os.Getenv(key); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("invalid %s value %q: %w", key, v, err)
		}
		if port <= 0 || port > 65535 {
			return 0, fmt.Errorf("port %d is out of range", port)
		}
		return port, nil
	}
	return fallback, nil
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
