package cli

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/google/subcommands"
	md "github.com/nao1215/markdown"

	"github.com/mmynk/zeipilote/internal/calculator"
	"github.com/mmynk/zeipilote/internal/export"
	"github.com/mmynk/zeipilote/internal/locale"
	"github.com/mmynk/zeipilote/internal/models"
)

// itemsFlag collects repeated -item "description:quantity:price" values.
type itemsFlag []models.LineItem

func (i *itemsFlag) String() string {
	if i == nil {
		return ""
	}
	parts := make([]string, len(*i))
	for n, item := range *i {
		parts[n] = fmt.Sprintf("%s:%g:%g", item.Description, item.Quantity, item.Price)
	}
	return strings.Join(parts, ",")
}

// Set parses one item. The description may itself contain colons; quantity and price are the last two fields.
func (i *itemsFlag) Set(value string) error {
	priceAt := strings.LastIndex(value, ":")
	if priceAt < 0 {
		return fmt.Errorf("item %q is not description:quantity:price", value)
	}
	qtyAt := strings.LastIndex(value[:priceAt], ":")
	if qtyAt < 0 {
		return fmt.Errorf("item %q is not description:quantity:price", value)
	}
	qty, err := strconv.ParseFloat(value[qtyAt+1:priceAt], 64)
	if err != nil {
		return fmt.Errorf("item %q: invalid quantity: %w", value, err)
	}
	price, err := strconv.ParseFloat(value[priceAt+1:], 64)
	if err != nil {
		return fmt.Errorf("item %q: invalid price: %w", value, err)
	}
	*i = append(*i, models.LineItem{Description: value[:qtyAt], Quantity: qty, Price: price})
	return nil
}

type invoiceAddCmd struct {
	app     *App
	invoice models.Invoice
	status  string
	items   itemsFlag
}

func (*invoiceAddCmd) Name() string     { return "invoice-add" }
func (*invoiceAddCmd) Synopsis() string { return "add an invoice, or update one with -id" }
func (*invoiceAddCmd) Usage() string {
	return `zeipilote invoice-add -client <id> -date <YYYY-MM-DD> -item <description:quantity:price> [-item ...] [-due <YYYY-MM-DD>] [-status draft|sent|paid] [-ref <reference>] [-id <id>]

  Adds an invoice. The amount is the sum of quantity × price over the items.

Usage Examples:
$ zeipilote invoice-add -client 42 -date 2025-03-01 -status paid -item "Site vitrine:1:1500" -item "Hébergement:12:10"
`
}

func (c *invoiceAddCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.invoice.ID, "id", "", "Id of the invoice to update")
	f.StringVar(&c.invoice.ClientID, "client", "", "Client id (required)")
	f.StringVar(&c.invoice.Reference, "ref", "", "Invoice number shown on the printed invoice")
	f.StringVar(&c.invoice.Date, "date", "", "Invoice date (required)")
	f.StringVar(&c.invoice.DueDate, "due", "", "Due date")
	f.StringVar(&c.status, "status", string(models.InvoiceDraft), "Status: draft, sent or paid")
	f.Var(&c.items, "item", "Line item as description:quantity:price, repeatable")
}

func (c *invoiceAddCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	c.invoice.Status = models.InvoiceStatus(c.status)
	c.invoice.Items = c.items
	c.invoice.Amount = calculator.InvoiceAmount(c.invoice.Items)
	if err := c.invoice.Validate(); err != nil {
		return usage("%v", err)
	}

	dash, closeStore, err := c.app.open()
	if err != nil {
		return fail("%v", err)
	}
	defer closeStore()

	saved, err := dash.SaveInvoice(ctx, c.invoice, c.invoice.ID != "")
	if err != nil {
		return fail("%v", err)
	}
	c.app.printf("%s\n", saved.ID)
	return subcommands.ExitSuccess
}

type invoicesCmd struct {
	app    *App
	client string
	status string
}

func (*invoicesCmd) Name() string     { return "invoices" }
func (*invoicesCmd) Synopsis() string { return "list invoices" }
func (*invoicesCmd) Usage() string {
	return `zeipilote invoices [-client <id>] [-status draft|sent|paid]

  Lists invoices with their totals, optionally filtered by client and status.
`
}

func (c *invoicesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.client, "client", "", "Only list the invoices of this client")
	f.StringVar(&c.status, "status", "", "Only list invoices with this status")
}

func (c *invoicesCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.status != "" && !models.InvoiceStatus(c.status).Valid() {
		return usage("unknown invoice status %q", c.status)
	}
	dash, closeStore, err := c.app.open()
	if err != nil {
		return fail("%v", err)
	}
	defer closeStore()

	data := dash.Snapshot(ctx)
	invoices := data.Invoices
	if c.client != "" {
		invoices = calculator.InvoicesForClient(invoices, c.client)
	}
	if c.status != "" {
		var kept []models.Invoice
		for _, inv := range invoices {
			if inv.Status == models.InvoiceStatus(c.status) {
				kept = append(kept, inv)
			}
		}
		invoices = kept
	}
	c.app.printMarkdown(invoicesMarkdown(data.Clients, invoices, locale.New(data.Settings)))
	return subcommands.ExitSuccess
}

func invoicesMarkdown(clients []models.Client, invoices []models.Invoice, f locale.Formatter) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1(fmt.Sprintf("Factures (%d)", len(invoices)))
	if len(invoices) == 0 {
		doc.PlainText("Aucune facture.")
		return doc.String()
	}

	table := md.TableSet{
		Header: []string{"Id", "Référence", "Client", "Date", "Échéance", "Statut", "Montant"},
		Alignment: []md.TableAlignment{
			md.AlignLeft, md.AlignLeft, md.AlignLeft, md.AlignLeft,
			md.AlignLeft, md.AlignLeft, md.AlignRight,
		},
	}
	for _, inv := range invoices {
		table.Rows = append(table.Rows, []string{
			inv.ID,
			inv.Reference,
			calculator.ClientName(clients, inv.ClientID),
			f.RecordDate(inv.Date),
			f.RecordDate(inv.DueDate),
			string(inv.Status),
			f.Currency(inv.Amount),
		})
	}
	table.Rows = append(table.Rows, []string{
		"", "", "", "", "", md.Bold("Total"),
		md.Bold(f.Currency(calculator.RevenueTotal(invoices, calculator.AllInvoices))),
	})
	doc.Table(table)
	return doc.String()
}

type invoiceRmCmd struct {
	app *App
}

func (*invoiceRmCmd) Name() string     { return "invoice-rm" }
func (*invoiceRmCmd) Synopsis() string { return "delete an invoice" }
func (*invoiceRmCmd) Usage() string {
	return `zeipilote invoice-rm <id>

  Deletes one invoice. Deleting an unknown id does nothing.
`
}

func (c *invoiceRmCmd) SetFlags(*flag.FlagSet) {}

func (c *invoiceRmCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return usage("invoice-rm takes exactly one invoice id")
	}
	dash, closeStore, err := c.app.open()
	if err != nil {
		return fail("%v", err)
	}
	defer closeStore()

	if err := dash.DeleteInvoice(ctx, f.Arg(0)); err != nil {
		return fail("%v", err)
	}
	return subcommands.ExitSuccess
}

type invoicePrintCmd struct {
	app    *App
	output string
}

func (*invoicePrintCmd) Name() string     { return "invoice-print" }
func (*invoicePrintCmd) Synopsis() string { return "print an invoice as markdown or as an HTML page" }
func (*invoicePrintCmd) Usage() string {
	return `zeipilote invoice-print [-o <file.html>] <id>

  Prints the invoice to the terminal. With -o, writes a printable HTML page instead.
`
}

func (c *invoicePrintCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "Write a printable HTML page to this file")
}

func (c *invoicePrintCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return usage("invoice-print takes exactly one invoice id")
	}
	dash, closeStore, err := c.app.open()
	if err != nil {
		return fail("%v", err)
	}
	defer closeStore()

	inv, err := dash.Invoice(ctx, f.Arg(0))
	if err != nil {
		return fail("%v", err)
	}

	data := dash.Snapshot(ctx)
	formatter := locale.New(data.Settings)
	if c.output == "" {
		c.app.printMarkdown(export.InvoiceMarkdown(data, inv, formatter))
		return subcommands.ExitSuccess
	}

	var buf bytes.Buffer
	if err := export.PrintableInvoice(&buf, data, inv, formatter); err != nil {
		return fail("%v", err)
	}
	if err := os.WriteFile(c.output, buf.Bytes(), 0o644); err != nil {
		return fail("failed to write %s: %v", c.output, err)
	}
	c.app.printf("%s\n", c.output)
	return subcommands.ExitSuccess
}
