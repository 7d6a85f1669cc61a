package cli

import (
	"bytes"
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
	md "github.com/nao1215/markdown"

	"github.com/mmynk/zeipilote/internal/calculator"
	"github.com/mmynk/zeipilote/internal/locale"
	"github.com/mmynk/zeipilote/internal/models"
)

type clientAddCmd struct {
	app    *App
	client models.Client
}

func (*clientAddCmd) Name() string     { return "client-add" }
func (*clientAddCmd) Synopsis() string { return "add a client, or update one with -id" }
func (*clientAddCmd) Usage() string {
	return `zeipilote client-add -name <name> -email <email> [-phone <phone>] [-address <address>] [-id <id>]

  Adds a client. When -id names an existing client, that client is replaced.

Usage Examples:
$ zeipilote client-add -name "Jean Dupont" -email jean@dupont.fr
`
}

func (c *clientAddCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.client.ID, "id", "", "Id of the client to update")
	f.StringVar(&c.client.Name, "name", "", "Client name (required)")
	f.StringVar(&c.client.Email, "email", "", "Client email (required)")
	f.StringVar(&c.client.Phone, "phone", "", "Phone number")
	f.StringVar(&c.client.Address, "address", "", "Postal address")
}

func (c *clientAddCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := c.client.Validate(); err != nil {
		return usage("%v", err)
	}
	dash, closeStore, err := c.app.open()
	if err != nil {
		return fail("%v", err)
	}
	defer closeStore()

	saved, err := dash.SaveClient(ctx, c.client, c.client.ID != "")
	if err != nil {
		return fail("%v", err)
	}
	c.app.printf("%s\n", saved.ID)
	return subcommands.ExitSuccess
}

type clientsCmd struct {
	app *App
}

func (*clientsCmd) Name() string     { return "clients" }
func (*clientsCmd) Synopsis() string { return "list clients with their projects and paid revenue" }
func (*clientsCmd) Usage() string {
	return `zeipilote clients

  Lists every client with its project count, invoice count and paid revenue.
`
}

func (c *clientsCmd) SetFlags(*flag.FlagSet) {}

func (c *clientsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	dash, closeStore, err := c.app.open()
	if err != nil {
		return fail("%v", err)
	}
	defer closeStore()

	data := dash.Snapshot(ctx)
	c.app.printMarkdown(clientsMarkdown(data, locale.New(data.Settings)))
	return subcommands.ExitSuccess
}

func clientsMarkdown(data models.AppData, f locale.Formatter) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1(fmt.Sprintf("Clients (%d)", len(data.Clients)))
	if len(data.Clients) == 0 {
		doc.PlainText("Aucun client.")
		return doc.String()
	}

	table := md.TableSet{
		Header: []string{"Id", "Nom", "Email", "Téléphone", "Projets", "Factures", "CA encaissé"},
		Alignment: []md.TableAlignment{
			md.AlignLeft, md.AlignLeft, md.AlignLeft, md.AlignLeft,
			md.AlignRight, md.AlignRight, md.AlignRight,
		},
	}
	for _, s := range calculator.SummarizeClients(data) {
		table.Rows = append(table.Rows, []string{
			s.Client.ID,
			s.Client.Name,
			s.Client.Email,
			s.Client.Phone,
			fmt.Sprint(s.Projects),
			fmt.Sprint(s.Invoices),
			f.Currency(s.Revenue),
		})
	}
	doc.Table(table)
	return doc.String()
}

type clientRmCmd struct {
	app *App
}

func (*clientRmCmd) Name() string     { return "client-rm" }
func (*clientRmCmd) Synopsis() string { return "delete a client with its projects and invoices" }
func (*clientRmCmd) Usage() string {
	return `zeipilote client-rm <id>

  Deletes the client and every project and invoice attached to it.
`
}

func (c *clientRmCmd) SetFlags(*flag.FlagSet) {}

func (c *clientRmCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return usage("client-rm takes exactly one client id")
	}
	dash, closeStore, err := c.app.open()
	if err != nil {
		return fail("%v", err)
	}
	defer closeStore()

	if err := dash.DeleteClient(ctx, f.Arg(0)); err != nil {
		return fail("%v", err)
	}
	return subcommands.ExitSuccess
}
