package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/mmynk/zeipilote/internal/locale"
	"github.com/mmynk/zeipilote/internal/models"
)

func sampleData() models.AppData {
	data := models.DefaultAppData(time.Date(2025, 1, 2, 10, 0, 0, 0, time.UTC))
	data.BusinessInfo.Name = "Studio Lumière"
	data.Clients = []models.Client{{ID: "c1", Name: "Jean Dupont", Email: "jean@example.fr", Address: "1 rue de Paris", CreatedAt: "2025-01-02T10:00:00.000Z"}}
	data.Invoices = []models.Invoice{{
		ID: "i1", ClientID: "c1", Amount: 1234.5, Status: models.InvoiceSent,
		Date: "2025-01-02", DueDate: "2025-02-01",
		Items: []models.LineItem{{Description: "Développement", Quantity: 2, Price: 600}, {Description: "Hébergement", Quantity: 1, Price: 34.5}},
	}}
	return data
}

func TestBackupFilename(t *testing.T) {
	now := time.Date(2025, 3, 9, 23, 30, 0, 0, time.UTC)
	tests := []struct {
		kind Kind
		want string
	}{
		{KindExport, "zeipilote-export-2025-03-09.json"},
		{KindBackup, "zeipilote-backup-2025-03-09.json"},
		{"", "zeipilote-export-2025-03-09.json"},
	}
	for _, tt := range tests {
		if got := BackupFilename("zeipilote", tt.kind, now); got != tt.want {
			t.Errorf("BackupFilename(%q) = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestMarshalBackup(t *testing.T) {
	data := sampleData()
	raw, err := MarshalBackup(data)
	if err != nil {
		t.Fatalf("MarshalBackup failed: %v", err)
	}
	if !bytes.Contains(raw, []byte("\n  \"clients\": [")) {
		t.Errorf("backup is not indented with two spaces:\n%s", raw)
	}

	got, err := ParseBackup(raw)
	if err != nil {
		t.Fatalf("ParseBackup failed: %v", err)
	}
	if diff := cmp.Diff(data, got); diff != "" {
		t.Errorf("backup round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestParseBackup(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		wantErr bool
	}{
		{name: "empty sections", text: `{"clients":[],"invoices":[],"projects":[],"businessInfo":{}}`},
		{name: "legacy invoice shape", text: `{"clients":[],"invoices":[{"id":"i1","clientId":"c","total":12,"status":"paid","date":"2024-01-01","dueDate":"2024-02-01","items":[]}],"projects":[],"businessInfo":{"profession":"x"}}`},
		{name: "not json", text: `{"clients": [`, wantErr: true},
		{name: "array", text: `[1,2,3]`, wantErr: true},
		{name: "empty", text: ``, wantErr: true},
		{name: "missing projects", text: `{"clients":[],"invoices":[],"businessInfo":{}}`, wantErr: true},
		{name: "null business info", text: `{"clients":[],"invoices":[],"projects":[],"businessInfo":null}`, wantErr: true},
		{name: "wrong section type", text: `{"clients":5,"invoices":[],"projects":[],"businessInfo":{}}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseBackup([]byte(tt.text))
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidBackup) {
					t.Errorf("ParseBackup() error = %v, want ErrInvalidBackup", err)
				}
				return
			}
			if err != nil {
				t.Errorf("ParseBackup() unexpected error: %v", err)
			}
		})
	}

	t.Run("legacy total becomes amount", func(t *testing.T) {
		data, err := ParseBackup([]byte(tests[1].text))
		if err != nil {
			t.Fatalf("ParseBackup failed: %v", err)
		}
		if data.Invoices[0].Amount != 12 {
			t.Errorf("Amount = %v, want 12", data.Invoices[0].Amount)
		}
	})
}

func TestPrintableInvoice(t *testing.T) {
	data := sampleData()
	f := locale.New(nil)

	t.Run("known client", func(t *testing.T) {
		var buf bytes.Buffer
		if err := PrintableInvoice(&buf, data, data.Invoices[0], f); err != nil {
			t.Fatalf("PrintableInvoice failed: %v", err)
		}
		out := strings.NewReplacer("\u202f", " ", "\u00a0", " ").Replace(buf.String())

		for _, want := range []string{
			"<h1>FACTURE</h1>",
			"02/01/2025",
			"01/02/2025",
			"Jean Dupont",
			"1 rue de Paris",
			"<table>",
			"Développement",
			"1 200,00 €",
			"34,50 €",
			"Total : 1 234,50 €",
			"window.print()",
		} {
			if !strings.Contains(out, want) {
				t.Errorf("printable invoice is missing %q", want)
			}
		}
		if strings.Contains(out, models.UnknownClientName) {
			t.Errorf("printable invoice should resolve the client")
		}
	})

	t.Run("dangling client", func(t *testing.T) {
		inv := data.Invoices[0]
		inv.ClientID = "gone"
		var buf bytes.Buffer
		if err := PrintableInvoice(&buf, data, inv, f); err != nil {
			t.Fatalf("PrintableInvoice failed: %v", err)
		}
		if !strings.Contains(buf.String(), models.UnknownClientName) {
			t.Errorf("printable invoice should show %q", models.UnknownClientName)
		}
	})

	t.Run("user text is not rendered as html", func(t *testing.T) {
		d := data.Clone()
		d.Clients[0].Name = "<img src=x onerror=alert(1)>"
		var buf bytes.Buffer
		if err := PrintableInvoice(&buf, d, d.Invoices[0], f); err != nil {
			t.Fatalf("PrintableInvoice failed: %v", err)
		}
		if strings.Contains(buf.String(), "<img") {
			t.Errorf("client name leaked as raw HTML")
		}
	})

	t.Run("markdown punctuation is shown as entered", func(t *testing.T) {
		d := data.Clone()
		d.Clients[0].Name = "*Acme* <Studio>"
		d.Clients[0].Address = "- 3 [bis] #2 & co"
		d.Invoices[0].Items[0].Description = "Mise a jour <v2> _urgent_ `api` | 50%"
		d.Invoices[0].Items[1].Description = "1. Hébergement"
		var buf bytes.Buffer
		if err := PrintableInvoice(&buf, d, d.Invoices[0], f); err != nil {
			t.Fatalf("PrintableInvoice failed: %v", err)
		}
		out := buf.String()

		for _, want := range []string{
			"*Acme* &lt;Studio&gt;",
			"- 3 [bis] #2 &amp; co",
			"Mise a jour &lt;v2&gt; _urgent_ `api` | 50%",
			"1. Hébergement",
		} {
			if !strings.Contains(out, want) {
				t.Errorf("printable invoice is missing %q:\n%s", want, out)
			}
		}
		for _, unwanted := range []string{"<em>", "<code>", "raw HTML omitted", "<ul>", "<ol>"} {
			if strings.Contains(out, unwanted) {
				t.Errorf("user text was interpreted as markdown: found %q", unwanted)
			}
		}
		if got := strings.Count(out, "<tr>"); got != 3 {
			t.Errorf("table has %d rows, want header and 2 items", got)
		}
	})
}

func TestCell(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "Jean Dupont", want: "Jean Dupont"},
		{in: "*bold* _it_", want: `\*bold\* \_it\_`},
		{in: "a|b", want: `a\|b`},
		{in: "<x>", want: `\<x\>`},
		{in: "- item", want: `\- item`},
		{in: "12. rue", want: `12\. rue`},
		{in: "1 rue de Paris", want: "1 rue de Paris"},
		{in: "ligne\nsuivante", want: "ligne suivante"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := cell(tt.in); got != tt.want {
				t.Errorf("cell(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestMarshalBackupIsValidJSON(t *testing.T) {
	raw, err := MarshalBackup(models.DefaultAppData(time.Now()))
	if err != nil {
		t.Fatalf("MarshalBackup failed: %v", err)
	}
	if !json.Valid(raw) {
		t.Errorf("MarshalBackup produced invalid JSON")
	}
}
