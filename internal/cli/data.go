package cli

import (
	"context"
	"flag"
	"os"

	"github.com/google/subcommands"

	"github.com/mmynk/zeipilote/internal/export"
)

type exportCmd struct {
	app    *App
	output string
	backup bool
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "write all data to a JSON file" }
func (*exportCmd) Usage() string {
	return `zeipilote export [-backup] [-o <file.json>]

  Writes the whole app data as indented JSON. Without -o the file is named
  zeipilote-export-YYYY-MM-DD.json, or zeipilote-backup-YYYY-MM-DD.json with -backup.
  Use -o - to print to stdout.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "Output file, - for stdout")
	f.BoolVar(&c.backup, "backup", false, "Name the file as a backup")
}

func (c *exportCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	dash, closeStore, err := c.app.open()
	if err != nil {
		return fail("%v", err)
	}
	defer closeStore()

	kind := export.KindExport
	if c.backup {
		kind = export.KindBackup
	}
	name, raw, err := dash.ExportJSON(ctx, kind)
	if err != nil {
		return fail("%v", err)
	}

	switch c.output {
	case "-":
		c.app.out.Write(raw)
		return subcommands.ExitSuccess
	case "":
	default:
		name = c.output
	}
	if err := os.WriteFile(name, raw, 0o644); err != nil {
		return fail("failed to write %s: %v", name, err)
	}
	c.app.printf("%s\n", name)
	return subcommands.ExitSuccess
}

type importCmd struct {
	app *App
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "replace all data with a JSON backup" }
func (*importCmd) Usage() string {
	return `zeipilote import <file.json>

  Replaces clients, projects, invoices, profile and settings with the content of the file.
  A file that is not a backup is rejected and nothing changes.
`
}

func (c *importCmd) SetFlags(*flag.FlagSet) {}

func (c *importCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return usage("import takes exactly one file")
	}
	text, err := os.ReadFile(f.Arg(0))
	if err != nil {
		return fail("%v", err)
	}

	dash, closeStore, err := c.app.open()
	if err != nil {
		return fail("%v", err)
	}
	defer closeStore()

	data, err := dash.ImportJSON(ctx, text)
	if err != nil {
		return fail("%v", err)
	}
	c.app.printf("Imported %d clients, %d projects, %d invoices\n", len(data.Clients), len(data.Projects), len(data.Invoices))
	return subcommands.ExitSuccess
}
