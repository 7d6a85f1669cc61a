// Package report composes the monthly activity report on top of a Renderer.
//
// The composition decides page order and which aggregates appear where;
// drawing is left to the Renderer implementations in the pdf and markdown subpackages.
package report

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/mmynk/zeipilote/internal/calculator"
	"github.com/mmynk/zeipilote/internal/locale"
	"github.com/mmynk/zeipilote/internal/models"
)

// Table is a grid with a header row, body rows and an optional footer row.
type Table struct {
	Header []string
	Rows   [][]string
	Footer []string
}

// LineChart is a single series plotted over labelled points.
type LineChart struct {
	Title  string
	Series string
	Labels []string
	Values []float64
	// Format renders axis and point values, e.g. as currency.
	Format func(float64) string
}

// Renderer draws report content. Page starts a new page; every other call draws
// on the current one. Renderers number their pages as "Page X sur N".
type Renderer interface {
	Page(title string)
	Heading(text string)
	Text(lines ...string)
	Table(t Table)
	Chart(c LineChart) error
	Save(w io.Writer) error
}

// DefaultTitle heads the first page.
const DefaultTitle = "Rapport d'activité ZeiPilote"

// Filename returns "{product}-rapport-{YYYY-MM-DD}.pdf" using the UTC date of now.
func Filename(product string, now time.Time) string {
	return fmt.Sprintf("%s-rapport-%s.pdf", product, now.UTC().Format(time.DateOnly))
}

var projectStatusLabels = map[models.ProjectStatus]string{
	models.ProjectActive:    "En cours",
	models.ProjectCompleted: "Terminé",
	models.ProjectOnHold:    "En pause",
}

// ComposeMonthly draws the five page activity report for the calendar month of now:
// summary, clients, projects, invoices of the month, revenue chart.
// A chart that fails to render is logged and left out.
func ComposeMonthly(r Renderer, data models.AppData, now time.Time) {
	f := locale.New(data.Settings)
	month, year := now.Month(), now.Year()
	stats := calculator.ComputeMonthlyStats(data.Invoices, month, year, now.Location())

	r.Page(DefaultTitle)
	r.Text(
		fmt.Sprintf("Période : %s", f.MonthLabel(year, month)),
		fmt.Sprintf("%s - %s", data.BusinessInfo.Name, data.BusinessInfo.Profession),
	)
	r.Heading("Synthèse du mois")
	r.Text(
		fmt.Sprintf("Chiffre d'affaires : %s", f.Currency(stats.TotalAmount)),
		fmt.Sprintf("Nombre de factures : %d", stats.InvoiceCount),
		fmt.Sprintf("Montant moyen par facture : %s", f.Currency(stats.AverageInvoice)),
		fmt.Sprintf("Plus grande facture : %s", f.Currency(stats.LargestInvoice)),
		fmt.Sprintf("Nombre total de clients : %d", len(data.Clients)),
		fmt.Sprintf("Nombre total de projets : %d", len(data.Projects)),
	)

	r.Page("Liste des Clients")
	clients := Table{Header: []string{"Nom", "Email", "Téléphone", "Adresse"}}
	for _, c := range data.Clients {
		clients.Rows = append(clients.Rows, []string{c.Name, c.Email, orNA(c.Phone), orNA(c.Address)})
	}
	r.Table(clients)

	r.Page("Liste des Projets")
	projects := Table{Header: []string{"Projet", "Client", "Statut", "Budget"}}
	for _, p := range data.Projects {
		budget := 0.0
		if p.Budget != nil {
			budget = *p.Budget
		}
		status, ok := projectStatusLabels[p.Status]
		if !ok {
			status = string(p.Status)
		}
		projects.Rows = append(projects.Rows, []string{
			p.Name,
			calculator.ClientName(data.Clients, p.ClientID),
			status,
			f.Currency(budget),
		})
	}
	r.Table(projects)

	r.Page("Factures du mois")
	invoices := Table{
		Header: []string{"Date", "Client", "Référence", "Montant"},
		Footer: []string{"Total", "", "", f.Currency(stats.TotalAmount)},
	}
	for _, inv := range calculator.InvoicesInMonth(data.Invoices, month, year, now.Location()) {
		invoices.Rows = append(invoices.Rows, []string{
			recordDate(f, inv.Date, now.Location()),
			calculator.ClientName(data.Clients, inv.ClientID),
			orNA(inv.Reference),
			f.Currency(inv.Amount),
		})
	}
	r.Table(invoices)

	r.Page("Évolution du chiffre d'affaires")
	months := calculator.MonthlyGrouping(data.Invoices, f.MonthLabel, now.Location())
	calculator.SortChronologically(months)
	chart := LineChart{
		Title:  "Évolution du chiffre d'affaires",
		Series: "Chiffre d'affaires",
		Format: f.Currency,
	}
	for _, m := range months {
		chart.Labels = append(chart.Labels, m.Label)
		chart.Values = append(chart.Values, m.Amount)
	}
	if err := r.Chart(chart); err != nil {
		slog.Error("Failed to render revenue chart", "months", len(months), "error", err)
	}
}

// recordDate formats a stored date as seen from loc, or returns it untouched.
func recordDate(f locale.Formatter, s string, loc *time.Location) string {
	t, err := models.ParseDateIn(s, loc)
	if err != nil {
		return s
	}
	return f.Date(t)
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
