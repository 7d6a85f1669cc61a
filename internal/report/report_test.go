package report

import (
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/mmynk/zeipilote/internal/models"
)

// recorder is a Renderer that keeps what it was asked to draw.
type recorder struct {
	pages    []string
	headings []string
	text     []string
	tables   []Table
	charts   []LineChart
	chartErr error
}

func (r *recorder) Page(title string)      { r.pages = append(r.pages, title) }
func (r *recorder) Heading(text string)    { r.headings = append(r.headings, text) }
func (r *recorder) Text(lines ...string)   { r.text = append(r.text, lines...) }
func (r *recorder) Table(t Table)          { r.tables = append(r.tables, t) }
func (r *recorder) Save(w io.Writer) error { return nil }

func (r *recorder) Chart(c LineChart) error {
	r.charts = append(r.charts, c)
	return r.chartErr
}

func plain(s string) string {
	return strings.NewReplacer("\u202f", " ", "\u00a0", " ").Replace(s)
}

func sampleData() models.AppData {
	budget := 1500.0
	data := models.DefaultAppData(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	data.BusinessInfo.Name = "Jean Dupont"
	data.Clients = []models.Client{
		{ID: "c1", Name: "ACME", Email: "acme@example.fr", Phone: "0102030405"},
		{ID: "c2", Name: "Globex", Email: "globex@example.fr"},
	}
	data.Projects = []models.Project{
		{ID: "p1", ClientID: "c1", Name: "Site", Status: models.ProjectActive, Budget: &budget},
		{ID: "p2", ClientID: "gone", Name: "Orphan", Status: models.ProjectOnHold},
	}
	data.Invoices = []models.Invoice{
		{ID: "i1", ClientID: "c1", Reference: "F-001", Amount: 1000, Status: models.InvoicePaid, Date: "2025-03-03"},
		{ID: "i2", ClientID: "c2", Amount: 234.5, Status: models.InvoiceDraft, Date: "2025-03-20"},
		{ID: "i3", ClientID: "c1", Amount: 400, Status: models.InvoicePaid, Date: "2025-01-10"},
	}
	return data
}

func TestFilename(t *testing.T) {
	got := Filename("zeipilote", time.Date(2025, 3, 31, 12, 0, 0, 0, time.UTC))
	if got != "zeipilote-rapport-2025-03-31.pdf" {
		t.Errorf("Filename() = %q", got)
	}
}

func TestComposeMonthly(t *testing.T) {
	now := time.Date(2025, 3, 25, 10, 0, 0, 0, time.UTC)
	r := &recorder{}
	ComposeMonthly(r, sampleData(), now)

	wantPages := []string{
		DefaultTitle,
		"Liste des Clients",
		"Liste des Projets",
		"Factures du mois",
		"Évolution du chiffre d'affaires",
	}
	if diff := cmp.Diff(wantPages, r.pages); diff != "" {
		t.Fatalf("page order mismatch (-want +got):\n%s", diff)
	}

	t.Run("summary", func(t *testing.T) {
		text := plain(strings.Join(r.text, "\n"))
		for _, want := range []string{
			"Période : mars 2025",
			"Jean Dupont - Développeur Web",
			"Chiffre d'affaires : 1 234,50 €",
			"Nombre de factures : 2",
			"Montant moyen par facture : 617,25 €",
			"Plus grande facture : 1 000,00 €",
			"Nombre total de clients : 2",
			"Nombre total de projets : 2",
		} {
			if !strings.Contains(text, want) {
				t.Errorf("summary is missing %q in:\n%s", want, text)
			}
		}
	})

	if len(r.tables) != 3 {
		t.Fatalf("got %d tables, want 3", len(r.tables))
	}

	t.Run("clients table", func(t *testing.T) {
		want := [][]string{
			{"ACME", "acme@example.fr", "0102030405", "N/A"},
			{"Globex", "globex@example.fr", "N/A", "N/A"},
		}
		if diff := cmp.Diff(want, r.tables[0].Rows); diff != "" {
			t.Errorf("clients rows mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("projects table", func(t *testing.T) {
		rows := r.tables[1].Rows
		if rows[0][1] != "ACME" || plain(rows[0][3]) != "1 500,00 €" || rows[0][2] != "En cours" {
			t.Errorf("first project row = %q", rows[0])
		}
		if rows[1][1] != models.UnknownClientName || plain(rows[1][3]) != "0,00 €" {
			t.Errorf("orphan project row = %q", rows[1])
		}
	})

	t.Run("invoices of the month", func(t *testing.T) {
		tbl := r.tables[2]
		if len(tbl.Rows) != 2 {
			t.Fatalf("got %d invoice rows, want 2", len(tbl.Rows))
		}
		if tbl.Rows[0][0] != "03/03/2025" || tbl.Rows[0][2] != "F-001" || tbl.Rows[1][2] != "N/A" {
			t.Errorf("invoice rows = %q", tbl.Rows)
		}
		if plain(tbl.Footer[3]) != "1 234,50 €" {
			t.Errorf("footer total = %q", tbl.Footer[3])
		}
	})

	t.Run("chart is chronological", func(t *testing.T) {
		if len(r.charts) != 1 {
			t.Fatalf("got %d charts, want 1", len(r.charts))
		}
		c := r.charts[0]
		if diff := cmp.Diff([]string{"janvier 2025", "mars 2025"}, c.Labels); diff != "" {
			t.Errorf("chart labels mismatch (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff([]float64{400, 1234.5}, c.Values); diff != "" {
			t.Errorf("chart values mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestComposeMonthlySurvivesChartFailure(t *testing.T) {
	r := &recorder{chartErr: errors.New("no rendering surface")}
	ComposeMonthly(r, sampleData(), time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))
	if len(r.pages) != 5 || len(r.charts) != 1 {
		t.Errorf("pages = %d, charts = %d; want 5 and 1", len(r.pages), len(r.charts))
	}
}

func TestComposeMonthlyEmptyData(t *testing.T) {
	r := &recorder{}
	ComposeMonthly(r, models.DefaultAppData(time.Now()), time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))
	if len(r.pages) != 5 {
		t.Fatalf("pages = %d, want 5", len(r.pages))
	}
	text := plain(strings.Join(r.text, "\n"))
	if !strings.Contains(text, "Montant moyen par facture : 0,00 €") {
		t.Errorf("empty month average missing in:\n%s", text)
	}
}

func TestComposeMonthlyUsesClockLocation(t *testing.T) {
	paris := time.FixedZone("CET", 3600)
	data := sampleData()
	data.Invoices = []models.Invoice{
		{ID: "late", ClientID: "c1", Amount: 500, Status: models.InvoicePaid, Date: "2025-01-31T23:30:00Z"},
	}

	r := &recorder{}
	ComposeMonthly(r, data, time.Date(2025, 2, 10, 9, 0, 0, 0, paris))

	text := plain(strings.Join(r.text, "\n"))
	if !strings.Contains(text, "Nombre de factures : 1") {
		t.Errorf("invoice dated 00:30 in Paris should count in February:\n%s", text)
	}
	if rows := r.tables[2].Rows; len(rows) != 1 || rows[0][0] != "01/02/2025" {
		t.Errorf("invoices of the month = %q, want one row dated 01/02/2025", rows)
	}
	if len(r.charts) != 1 || r.charts[0].Labels[0] != "février 2025" {
		t.Errorf("chart labels = %v, want février 2025", r.charts)
	}
}
