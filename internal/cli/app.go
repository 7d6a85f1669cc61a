// Package cli implements the zeipilote command line, one subcommand per file.
package cli

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/mattn/go-isatty"

	"github.com/mmynk/zeipilote/internal/config"
	"github.com/mmynk/zeipilote/internal/service"
)

// App carries the configuration shared by every subcommand.
type App struct {
	cfg config.Config
	out io.Writer
	// raw disables terminal rendering of markdown output.
	raw bool
}

// New creates an App writing to stdout. Markdown is rendered with glamour when stdout is a terminal.
func New(cfg config.Config) *App {
	return &App{
		cfg: cfg,
		out: os.Stdout,
		raw: !isatty.IsTerminal(os.Stdout.Fd()),
	}
}

// SetFlags binds the global storage flags, defaulting to the environment configuration.
func (a *App) SetFlags(f *flag.FlagSet) {
	f.StringVar(&a.cfg.Storage.Backend, "backend", a.cfg.Storage.Backend, "Storage backend: sqlite, file or memory")
	f.StringVar(&a.cfg.Storage.DBPath, "db", a.cfg.Storage.DBPath, "SQLite database path")
	f.StringVar(&a.cfg.Storage.DataDir, "data-dir", a.cfg.Storage.DataDir, "Directory of the file backend")
	f.StringVar(&a.cfg.Storage.Key, "key", a.cfg.Storage.Key, "Storage key holding the app data")
	f.BoolVar(&a.raw, "raw", a.raw, "Print markdown without terminal styling")
}

// Register adds every subcommand to c.
func (a *App) Register(c *subcommands.Commander) {
	c.Register(&profileCmd{app: a}, "profile")
	c.Register(&settingsCmd{app: a}, "profile")

	c.Register(&clientAddCmd{app: a}, "clients")
	c.Register(&clientsCmd{app: a}, "clients")
	c.Register(&clientRmCmd{app: a}, "clients")

	c.Register(&projectAddCmd{app: a}, "projects")
	c.Register(&projectsCmd{app: a}, "projects")
	c.Register(&projectRmCmd{app: a}, "projects")

	c.Register(&invoiceAddCmd{app: a}, "invoices")
	c.Register(&invoicesCmd{app: a}, "invoices")
	c.Register(&invoiceRmCmd{app: a}, "invoices")
	c.Register(&invoicePrintCmd{app: a}, "invoices")

	c.Register(&overviewCmd{app: a}, "reports")
	c.Register(&reportCmd{app: a}, "reports")
	c.Register(&exportCmd{app: a}, "data")
	c.Register(&importCmd{app: a}, "data")

	c.Register(c.HelpCommand(), "")
	c.Register(c.FlagsCommand(), "")
	c.Register(c.CommandsCommand(), "")
}

// open opens the configured store and builds a Dashboard over it.
// The returned function closes the store.
func (a *App) open() (*service.Dashboard, func(), error) {
	store, err := a.cfg.Storage.OpenStore()
	if err != nil {
		return nil, nil, err
	}
	dash := service.NewDashboard(store,
		service.WithUpdateMode(a.cfg.UpdateMode),
		service.WithProductName(a.cfg.Product),
	)
	return dash, func() { store.Close() }, nil
}

// printMarkdown renders md for the terminal, or prints it as is when raw output is requested.
func (a *App) printMarkdown(md string) {
	if !a.raw {
		r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(110))
		if err == nil {
			if out, err := r.Render(md); err == nil {
				fmt.Fprint(a.out, out)
				return
			}
		}
	}
	fmt.Fprintln(a.out, md)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func fail(format string, args ...any) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	return subcommands.ExitFailure
}

func usage(format string, args ...any) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	return subcommands.ExitUsageError
}
