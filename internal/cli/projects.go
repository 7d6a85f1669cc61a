package cli

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"strconv"

	"github.com/google/subcommands"
	md "github.com/nao1215/markdown"

	"github.com/mmynk/zeipilote/internal/calculator"
	"github.com/mmynk/zeipilote/internal/locale"
	"github.com/mmynk/zeipilote/internal/models"
)

type projectAddCmd struct {
	app     *App
	project models.Project
	status  string
	budget  string
}

func (*projectAddCmd) Name() string     { return "project-add" }
func (*projectAddCmd) Synopsis() string { return "add a project, or update one with -id" }
func (*projectAddCmd) Usage() string {
	return `zeipilote project-add -client <id> -name <name> -start <YYYY-MM-DD> [-end <YYYY-MM-DD>] [-status active|completed|on-hold] [-budget <amount>] [-description <text>] [-id <id>]

  Adds a project for a client. When -id names an existing project, that project is replaced.
`
}

func (c *projectAddCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.project.ID, "id", "", "Id of the project to update")
	f.StringVar(&c.project.ClientID, "client", "", "Client id (required)")
	f.StringVar(&c.project.Name, "name", "", "Project name (required)")
	f.StringVar(&c.project.Description, "description", "", "Description")
	f.StringVar(&c.project.StartDate, "start", "", "Start date")
	f.StringVar(&c.project.EndDate, "end", "", "End date")
	f.StringVar(&c.status, "status", string(models.ProjectActive), "Status: active, completed or on-hold")
	f.StringVar(&c.budget, "budget", "", "Budget")
}

func (c *projectAddCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	c.project.Status = models.ProjectStatus(c.status)
	if c.budget != "" {
		b, err := strconv.ParseFloat(c.budget, 64)
		if err != nil {
			return usage("invalid budget %q: %v", c.budget, err)
		}
		c.project.Budget = &b
	}
	if err := c.project.Validate(); err != nil {
		return usage("%v", err)
	}

	dash, closeStore, err := c.app.open()
	if err != nil {
		return fail("%v", err)
	}
	defer closeStore()

	saved, err := dash.SaveProject(ctx, c.project, c.project.ID != "")
	if err != nil {
		return fail("%v", err)
	}
	c.app.printf("%s\n", saved.ID)
	return subcommands.ExitSuccess
}

type projectsCmd struct {
	app    *App
	client string
}

func (*projectsCmd) Name() string     { return "projects" }
func (*projectsCmd) Synopsis() string { return "list projects" }
func (*projectsCmd) Usage() string {
	return `zeipilote projects [-client <id>]

  Lists projects, optionally only those of one client.
`
}

func (c *projectsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.client, "client", "", "Only list the projects of this client")
}

func (c *projectsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	dash, closeStore, err := c.app.open()
	if err != nil {
		return fail("%v", err)
	}
	defer closeStore()

	data := dash.Snapshot(ctx)
	projects := data.Projects
	if c.client != "" {
		projects = calculator.ProjectsForClient(projects, c.client)
	}
	c.app.printMarkdown(projectsMarkdown(data.Clients, projects, locale.New(data.Settings)))
	return subcommands.ExitSuccess
}

func projectsMarkdown(clients []models.Client, projects []models.Project, f locale.Formatter) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1(fmt.Sprintf("Projets (%d)", len(projects)))
	if len(projects) == 0 {
		doc.PlainText("Aucun projet.")
		return doc.String()
	}

	table := md.TableSet{Header: []string{"Id", "Projet", "Client", "Statut", "Début", "Fin", "Budget"}}
	for _, p := range projects {
		budget := ""
		if p.Budget != nil {
			budget = f.Currency(*p.Budget)
		}
		table.Rows = append(table.Rows, []string{
			p.ID,
			p.Name,
			calculator.ClientName(clients, p.ClientID),
			string(p.Status),
			f.RecordDate(p.StartDate),
			f.RecordDate(p.EndDate),
			budget,
		})
	}
	doc.Table(table)
	return doc.String()
}

type projectRmCmd struct {
	app *App
}

func (*projectRmCmd) Name() string     { return "project-rm" }
func (*projectRmCmd) Synopsis() string { return "delete a project" }
func (*projectRmCmd) Usage() string {
	return `zeipilote project-rm <id>

  Deletes one project. Invoices are kept.
`
}

func (c *projectRmCmd) SetFlags(*flag.FlagSet) {}

func (c *projectRmCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return usage("project-rm takes exactly one project id")
	}
	dash, closeStore, err := c.app.open()
	if err != nil {
		return fail("%v", err)
	}
	defer closeStore()

	if err := dash.DeleteProject(ctx, f.Arg(0)); err != nil {
		return fail("%v", err)
	}
	return subcommands.ExitSuccess
}
