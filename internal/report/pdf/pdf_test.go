package pdf

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/mmynk/zeipilote/internal/models"
	"github.com/mmynk/zeipilote/internal/report"
)

func TestRenderLineChart(t *testing.T) {
	tests := []struct {
		name    string
		chart   report.LineChart
		wantErr bool
	}{
		{
			name:  "several months",
			chart: report.LineChart{Title: "CA", Series: "CA", Labels: []string{"janvier 2025", "février 2025", "mars 2025"}, Values: []float64{1200, 0, 3400.5}},
		},
		{
			name:  "single month",
			chart: report.LineChart{Labels: []string{"mars 2025"}, Values: []float64{300}},
		},
		{
			name:  "all zero",
			chart: report.LineChart{Labels: []string{"a", "b"}, Values: []float64{0, 0}},
		},
		{
			name:    "no data",
			chart:   report.LineChart{},
			wantErr: true,
		},
		{
			name:    "label mismatch",
			chart:   report.LineChart{Labels: []string{"a"}, Values: []float64{1, 2}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := RenderLineChart(&buf, tt.chart)
			if tt.wantErr {
				if err == nil {
					t.Fatal("RenderLineChart() expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("RenderLineChart failed: %v", err)
			}
			if !bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")) {
				t.Errorf("output is not a PNG")
			}
		})
	}

	if err := RenderLineChart(&bytes.Buffer{}, report.LineChart{}); !errors.Is(err, ErrNoData) {
		t.Errorf("RenderLineChart(empty) error = %v, want ErrNoData", err)
	}
}

func TestMonthlyReportPDF(t *testing.T) {
	data := models.DefaultAppData(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	data.BusinessInfo.Name = "Jean Dupont"
	data.Clients = []models.Client{{ID: "c1", Name: "Société Générale des Écoles", Email: "contact@example.fr"}}
	data.Invoices = []models.Invoice{
		{ID: "i1", ClientID: "c1", Amount: 1234.5, Status: models.InvoicePaid, Date: "2025-02-10"},
		{ID: "i2", ClientID: "c1", Amount: 800, Status: models.InvoiceSent, Date: "2025-03-05"},
	}

	r := New()
	report.ComposeMonthly(r, data, time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC))

	var buf bytes.Buffer
	if err := r.Save(&buf); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	out := buf.Bytes()
	if !bytes.HasPrefix(out, []byte("%PDF-")) {
		t.Fatalf("output is not a PDF")
	}
	if !bytes.Contains(out, []byte("/Count 5")) {
		t.Errorf("report does not have 5 pages")
	}
	if !bytes.Contains(out, []byte("/Subtype /Image")) {
		t.Errorf("report has no embedded chart image")
	}
}

func TestTableWithoutHeaderIsSkipped(t *testing.T) {
	r := New()
	r.Page("Vide")
	r.Table(report.Table{})
	var buf bytes.Buffer
	if err := r.Save(&buf); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
}
