package export

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"strings"

	md "github.com/nao1215/markdown"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/mmynk/zeipilote/internal/calculator"
	"github.com/mmynk/zeipilote/internal/locale"
	"github.com/mmynk/zeipilote/internal/models"
)

var converter = goldmark.New(goldmark.WithExtensions(extension.Table))

var page = template.Must(template.New("invoice").Parse(`<!DOCTYPE html>
<html lang="fr">
<head>
<meta charset="utf-8">
<title>Facture {{.Title}}</title>
<style>
body { font-family: Arial, sans-serif; margin: 40px; }
h1 { margin-bottom: 8px; }
table { width: 100%; border-collapse: collapse; margin: 20px 0; }
th, td { padding: 10px; text-align: left; border-bottom: 1px solid #ddd; }
td:nth-child(n+2), th:nth-child(n+2) { text-align: right; }
.total { text-align: right; font-weight: bold; }
@media print { body { margin: 0; } }
</style>
</head>
<body>
{{.Body}}
<script>window.addEventListener("load", function () { setTimeout(function () { window.print(); }, 250); });</script>
</body>
</html>
`))

// InvoiceMarkdown renders the body of a printable invoice as markdown.
// A dangling client reference is shown as models.UnknownClientName.
func InvoiceMarkdown(data models.AppData, inv models.Invoice, f locale.Formatter) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("FACTURE")
	if inv.Reference != "" {
		doc.PlainText(fmt.Sprintf("N° %s", cell(inv.Reference)))
		doc.PlainText("")
	}
	doc.PlainText(fmt.Sprintf("Date : %s", f.RecordDate(inv.Date)))
	doc.PlainText("")
	doc.PlainText(fmt.Sprintf("Échéance : %s", f.RecordDate(inv.DueDate)))

	doc.PlainText("")
	doc.H2("Client")
	client, ok := data.FindClient(inv.ClientID)
	if !ok {
		doc.PlainText(models.UnknownClientName)
	} else {
		doc.PlainText(cell(client.Name))
		for _, line := range []string{client.Address, client.Email, client.Phone} {
			if line != "" {
				doc.PlainText("")
				doc.PlainText(cell(line))
			}
		}
	}

	rows := make([][]string, 0, len(inv.Items))
	for _, item := range inv.Items {
		rows = append(rows, []string{
			cell(item.Description),
			f.Number(item.Quantity),
			f.Currency(item.Price),
			f.Currency(item.Total()),
		})
	}
	doc.PlainText("")
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight},
		Header:    []string{"Description", "Quantité", "Prix unitaire", "Total"},
		Rows:      rows,
	})

	doc.PlainText("")

	total := inv.Amount
	if total == 0 && len(inv.Items) > 0 {
		total = calculator.InvoiceAmount(inv.Items)
	}
	doc.PlainText(md.Bold(fmt.Sprintf("Total : %s", f.Currency(total))))

	return doc.String()
}

// PrintableInvoice writes a self-contained HTML document for inv that opens the print dialog once loaded.
func PrintableInvoice(w io.Writer, data models.AppData, inv models.Invoice, f locale.Formatter) error {
	var body bytes.Buffer
	if err := converter.Convert([]byte(InvoiceMarkdown(data, inv, f)), &body); err != nil {
		return fmt.Errorf("failed to convert invoice markdown: %w", err)
	}

	title := inv.Reference
	if title == "" {
		title = inv.ID
	}
	err := page.Execute(w, struct {
		Title string
		Body  template.HTML
	}{
		Title: title,
		// goldmark escapes text and drops raw HTML by default.
		Body: template.HTML(body.String()),
	})
	if err != nil {
		return fmt.Errorf("failed to render invoice page: %w", err)
	}
	return nil
}

var cellEscaper = strings.NewReplacer(
	"\\", "\\\\",
	"`", "\\`",
	"*", "\\*",
	"_", "\\_",
	"[", "\\[",
	"]", "\\]",
	"<", "\\<",
	">", "\\>",
	"#", "\\#",
	"|", "\\|",
	"!", "\\!",
	"~", "\\~",
	"&", "\\&",
	"\n", " ",
	"\r", "",
)

// cell escapes markdown punctuation so user text renders as entered and cannot
// break the table or line layout.
func cell(s string) string {
	s = cellEscaper.Replace(strings.TrimSpace(s))
	if s == "" {
		return s
	}
	// A leading list or thematic break marker would turn the line into a block.
	switch s[0] {
	case '-', '+', '=':
		return "\\" + s
	}
	if i := strings.IndexFunc(s, func(r rune) bool { return r < '0' || r > '9' }); i > 0 && (s[i] == '.' || s[i] == ')') {
		return s[:i] + "\\" + s[i:]
	}
	return s
}
