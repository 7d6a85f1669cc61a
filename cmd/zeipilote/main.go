package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path"

	"github.com/google/subcommands"

	"github.com/mmynk/zeipilote/internal/cli"
	"github.com/mmynk/zeipilote/internal/config"
	"github.com/mmynk/zeipilote/pkg/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(int(subcommands.ExitUsageError))
	}

	// Keep the terminal quiet unless a level is asked for explicitly.
	level := slog.LevelWarn
	if os.Getenv("LOG_LEVEL") != "" {
		level = logging.ParseLevel(cfg.LogLevel)
	}
	logging.SetupWithLevel(level)

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	app := cli.New(cfg)
	app.SetFlags(flag.CommandLine)
	app.Register(commander)
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	status := commander.Execute(ctx)
	stop()
	os.Exit(int(status))
}
