package cli

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/google/subcommands"
	md "github.com/nao1215/markdown"

	"github.com/mmynk/zeipilote/internal/calculator"
	"github.com/mmynk/zeipilote/internal/locale"
	"github.com/mmynk/zeipilote/internal/models"
)

type overviewCmd struct {
	app   *App
	month string
}

func (*overviewCmd) Name() string     { return "overview" }
func (*overviewCmd) Synopsis() string { return "show the dashboard totals and monthly revenue" }
func (*overviewCmd) Usage() string {
	return `zeipilote overview [-month <YYYY-MM>]

  Prints the dashboard cards, the monthly revenue table and the statistics of one month
  (the current month by default).
`
}

func (c *overviewCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.month, "month", "", "Month of the statistics, as YYYY-MM")
}

func (c *overviewCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	dash, closeStore, err := c.app.open()
	if err != nil {
		return fail("%v", err)
	}
	defer closeStore()

	at := dash.Now()
	if c.month != "" {
		at, err = time.ParseInLocation("2006-01", c.month, at.Location())
		if err != nil {
			return usage("invalid month %q, expected YYYY-MM", c.month)
		}
	}
	doc := overviewMarkdown(dash.Snapshot(ctx), at)
	if saved, ok := dash.LastSaved(ctx); ok {
		doc += fmt.Sprintf("\n_Dernière sauvegarde : %s_\n", saved.Format("2006-01-02 15:04"))
	}
	c.app.printMarkdown(doc)
	return subcommands.ExitSuccess
}

func overviewMarkdown(data models.AppData, at time.Time) string {
	f := locale.New(data.Settings)
	ov := calculator.ComputeOverview(data)

	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	title := "Tableau de bord"
	if data.BusinessInfo.Name != "" {
		title = fmt.Sprintf("%s, %s", data.BusinessInfo.Name, data.BusinessInfo.Profession)
	}
	doc.H1(title)
	doc.Table(md.TableSet{
		Header:    []string{"Indicateur", "Valeur"},
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Rows: [][]string{
			{"Clients", fmt.Sprint(ov.Clients)},
			{"Projets", fmt.Sprint(ov.Projects)},
			{"Factures", fmt.Sprint(ov.Invoices)},
			{"Chiffre d'affaires", f.Currency(ov.Revenue)},
			{"En attente de paiement", f.Currency(ov.Outstanding)},
		},
	})

	doc.H2("Revenus mensuels")
	monthly := calculator.MonthlyGrouping(data.Invoices, f.MonthLabel, at.Location())
	calculator.SortChronologically(monthly)
	if len(monthly) == 0 {
		doc.PlainText("Aucune facture.")
	} else {
		table := md.TableSet{
			Header:    []string{"Mois", "Montant"},
			Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		}
		for _, m := range monthly {
			table.Rows = append(table.Rows, []string{m.Label, f.Currency(m.Amount)})
		}
		doc.Table(table)
	}

	stats := calculator.ComputeMonthlyStats(data.Invoices, at.Month(), at.Year(), at.Location())
	doc.H2(f.MonthLabel(at.Year(), at.Month()))
	doc.BulletList(
		fmt.Sprintf("Total facturé : %s", f.Currency(stats.TotalAmount)),
		fmt.Sprintf("Nombre de factures : %d", stats.InvoiceCount),
		fmt.Sprintf("Facture moyenne : %s", f.Currency(stats.AverageInvoice)),
		fmt.Sprintf("Plus grosse facture : %s", f.Currency(stats.LargestInvoice)),
	)
	return doc.String()
}
