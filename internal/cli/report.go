package cli

import (
	"bytes"
	"context"
	"flag"
	"os"

	"github.com/google/subcommands"

	"github.com/mmynk/zeipilote/internal/report"
	"github.com/mmynk/zeipilote/internal/report/markdown"
	"github.com/mmynk/zeipilote/internal/report/pdf"
)

type reportCmd struct {
	app    *App
	format string
	output string
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "generate the monthly activity report" }
func (*reportCmd) Usage() string {
	return `zeipilote report [-format pdf|md] [-o <file>]

  Generates the activity report of the current month. The PDF is written to
  zeipilote-rapport-YYYY-MM-DD.pdf unless -o is given; markdown goes to the terminal.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.format, "format", "pdf", "Output format: pdf or md")
	f.StringVar(&c.output, "o", "", "Output file")
}

func (c *reportCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.format != "pdf" && c.format != "md" {
		return usage("unknown report format %q", c.format)
	}
	dash, closeStore, err := c.app.open()
	if err != nil {
		return fail("%v", err)
	}
	defer closeStore()

	data := dash.Snapshot(ctx)
	now := dash.Now()

	var (
		renderer report.Renderer
		name     = c.output
	)
	if c.format == "md" {
		renderer = markdown.New()
	} else {
		renderer = pdf.New()
		if name == "" {
			name = report.Filename(dash.ProductName(), now)
		}
	}
	report.ComposeMonthly(renderer, data, now)

	var buf bytes.Buffer
	if err := renderer.Save(&buf); err != nil {
		return fail("%v", err)
	}
	if name == "" {
		c.app.printMarkdown(buf.String())
		return subcommands.ExitSuccess
	}
	if err := os.WriteFile(name, buf.Bytes(), 0o644); err != nil {
		return fail("failed to write %s: %v", name, err)
	}
	c.app.printf("%s\n", name)
	return subcommands.ExitSuccess
}
