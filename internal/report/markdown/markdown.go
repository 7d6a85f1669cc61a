// Package markdown renders reports as a markdown document, for terminals and plain text archives.
package markdown

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	md "github.com/nao1215/markdown"

	"github.com/mmynk/zeipilote/internal/report"
)

// totalPages stands in for the page count in footers until Save knows it.
const totalPages = "{zeipilote-nb}"

// Renderer writes each report page as a top level heading. Charts become a value table.
// Every page ends with a "Page X sur N" footer.
type Renderer struct {
	buf   bytes.Buffer
	doc   *md.Markdown
	pages int
}

var _ report.Renderer = (*Renderer)(nil)

// New creates an empty markdown document.
func New() *Renderer {
	r := &Renderer{}
	r.doc = md.NewMarkdown(&r.buf)
	return r
}

// Page closes the current page with its footer and starts a new one under an H1 title.
func (r *Renderer) Page(title string) {
	if r.pages > 0 {
		r.footer()
		r.doc.PlainText("***")
		r.doc.PlainText("")
	}
	r.pages++
	r.doc.H1(title)
	r.doc.PlainText("")
}

// Heading writes an H2 section title.
func (r *Renderer) Heading(text string) {
	r.doc.H2(text)
	r.doc.PlainText("")
}

// Text writes each line as its own paragraph.
func (r *Renderer) Text(lines ...string) {
	for _, line := range lines {
		r.doc.PlainText(line)
		r.doc.PlainText("")
	}
}

// Table writes a markdown table with the footer row in bold, or a placeholder when empty.
func (r *Renderer) Table(t report.Table) {
	if len(t.Header) == 0 {
		return
	}
	rows := t.Rows
	if len(t.Footer) > 0 {
		footer := make([]string, len(t.Footer))
		for i, cell := range t.Footer {
			if cell != "" {
				footer[i] = md.Bold(cell)
			}
		}
		rows = append(rows[:len(rows):len(rows)], footer)
	}
	if len(rows) == 0 {
		r.doc.PlainText("_Aucune donnée._")
		r.doc.PlainText("")
		return
	}
	r.doc.Table(md.TableSet{Header: t.Header, Rows: rows})
	r.doc.PlainText("")
}

// Chart writes the chart values as a two column table.
func (r *Renderer) Chart(c report.LineChart) error {
	if len(c.Labels) != len(c.Values) {
		return fmt.Errorf("chart has %d labels for %d values", len(c.Labels), len(c.Values))
	}
	format := c.Format
	if format == nil {
		format = func(v float64) string { return fmt.Sprintf("%.2f", v) }
	}
	series := c.Series
	if series == "" {
		series = "Valeur"
	}

	rows := make([][]string, len(c.Values))
	for i, v := range c.Values {
		rows[i] = []string{c.Labels[i], format(v)}
	}
	r.Table(report.Table{Header: []string{"Mois", series}, Rows: rows})
	return nil
}

// Save closes the last page and writes the document with page totals filled in.
func (r *Renderer) Save(w io.Writer) error {
	if r.pages > 0 {
		r.footer()
	}
	out := strings.ReplaceAll(r.doc.String(), totalPages, strconv.Itoa(r.pages))
	if _, err := io.WriteString(w, out+"\n"); err != nil {
		return fmt.Errorf("failed to write markdown report: %w", err)
	}
	return nil
}

func (r *Renderer) footer() {
	r.doc.PlainText("")
	r.doc.PlainText(fmt.Sprintf("_Page %d sur %s_", r.pages, totalPages))
	r.doc.PlainText("")
}

// String returns the document rendered so far.
func (r *Renderer) String() string {
	return r.doc.String()
}
