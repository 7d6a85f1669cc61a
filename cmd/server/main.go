package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/zeipilote/internal/api"
	"github.com/mmynk/zeipilote/internal/config"
	"github.com/mmynk/zeipilote/internal/service"
	"github.com/mmynk/zeipilote/pkg/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	// Setup structured logging
	logging.SetupWithLevel(logging.ParseLevel(cfg.LogLevel))

	store, err := cfg.Storage.OpenStore()
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	dash := service.NewDashboard(store,
		service.WithUpdateMode(cfg.UpdateMode),
		service.WithProductName(cfg.Product),
	)

	// Wrap with h2c for HTTP/2 without TLS (required for Connect)
	handler := h2c.NewHandler(api.NewRouter(dash, cfg.HTTP.AllowedOrigins), &http2.Server{})

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("Connect server starting",
			"address", addr,
			"url", fmt.Sprintf("http://localhost%s", addr),
			"storage", cfg.Storage.Backend,
			"update_mode", cfg.UpdateMode,
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
	}
}
