// Package pdf renders reports as A4 PDF documents.
package pdf

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/mmynk/zeipilote/internal/report"
)

const (
	margin      = 20.0
	lineHeight  = 8.0
	chartWidth  = 170.0
	chartHeight = 85.0
)

type rgb struct{ r, g, b int }

var (
	titleColor   = rgb{44, 62, 80}
	sectionColor = rgb{52, 73, 94}
	footerColor  = rgb{128, 128, 128}
)

// Renderer draws a report with fpdf using the core Helvetica font.
// Text is translated to cp1252, which covers French and the common currency symbols.
type Renderer struct {
	doc    *fpdf.Fpdf
	tr     func(string) string
	charts int
}

var _ report.Renderer = (*Renderer)(nil)

// New creates an empty A4 portrait document with a "Page X sur N" footer.
func New() *Renderer {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetMargins(margin, margin, margin)
	doc.SetAutoPageBreak(true, margin)
	doc.AliasNbPages("{nb}")

	cp1252 := doc.UnicodeTranslatorFromDescriptor("")
	r := &Renderer{
		doc: doc,
		tr: func(s string) string {
			return cp1252(strings.ReplaceAll(s, "\u202f", "\u00a0"))
		},
	}

	doc.SetFooterFunc(func() {
		doc.SetY(-15)
		doc.SetFont("Helvetica", "", 10)
		doc.SetTextColor(footerColor.r, footerColor.g, footerColor.b)
		doc.CellFormat(0, 10, r.tr(fmt.Sprintf("Page %d sur {nb}", doc.PageNo())), "", 0, "C", false, 0, "")
	})
	return r
}

// Page starts a new page. The first page title is set larger than the others.
func (r *Renderer) Page(title string) {
	r.doc.AddPage()
	size := 16.0
	if r.doc.PageNo() == 1 {
		size = 24
	}
	r.doc.SetFont("Helvetica", "B", size)
	r.doc.SetTextColor(titleColor.r, titleColor.g, titleColor.b)
	r.doc.CellFormat(0, size/2, r.tr(title), "", 1, "L", false, 0, "")
	r.doc.Ln(4)
}

// Heading draws a section title followed by a rule.
func (r *Renderer) Heading(text string) {
	r.doc.Ln(4)
	r.doc.SetFont("Helvetica", "B", 16)
	r.doc.SetTextColor(sectionColor.r, sectionColor.g, sectionColor.b)
	r.doc.CellFormat(0, 10, r.tr(text), "", 1, "L", false, 0, "")

	w, _ := r.doc.GetPageSize()
	y := r.doc.GetY()
	r.doc.SetDrawColor(sectionColor.r, sectionColor.g, sectionColor.b)
	r.doc.Line(margin, y, w-margin, y)
	r.doc.Ln(4)
}

// Text draws one paragraph per line.
func (r *Renderer) Text(lines ...string) {
	r.doc.SetFont("Helvetica", "", 12)
	r.doc.SetTextColor(0, 0, 0)
	for _, line := range lines {
		r.doc.MultiCell(0, lineHeight, r.tr(line), "", "L", false)
	}
}

// Table draws a grid with equal column widths. Cells too wide for their column are cut.
func (r *Renderer) Table(t report.Table) {
	cols := len(t.Header)
	if cols == 0 {
		return
	}
	pageWidth, _ := r.doc.GetPageSize()
	colWidth := (pageWidth - 2*margin) / float64(cols)

	row := func(cells []string, header bool) {
		for i := 0; i < cols; i++ {
			text := ""
			if i < len(cells) {
				text = r.fit(r.tr(cells[i]), colWidth-2)
			}
			align := "L"
			if !header && i == cols-1 {
				align = "R"
			}
			r.doc.CellFormat(colWidth, lineHeight, text, "1", 0, align, header, 0, "")
		}
		r.doc.Ln(-1)
	}

	r.doc.SetFillColor(sectionColor.r, sectionColor.g, sectionColor.b)
	r.doc.SetFont("Helvetica", "B", 10)
	r.doc.SetTextColor(255, 255, 255)
	row(t.Header, true)

	r.doc.SetFont("Helvetica", "", 10)
	r.doc.SetTextColor(0, 0, 0)
	for _, cells := range t.Rows {
		row(cells, false)
	}

	if len(t.Footer) > 0 {
		r.doc.SetFont("Helvetica", "B", 10)
		r.doc.SetTextColor(255, 255, 255)
		row(t.Footer, true)
	}
}

// Chart renders c to PNG and places it below the current position.
func (r *Renderer) Chart(c report.LineChart) error {
	var buf bytes.Buffer
	if err := RenderLineChart(&buf, c); err != nil {
		return err
	}

	r.charts++
	name := fmt.Sprintf("chart-%d", r.charts)
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	r.doc.RegisterImageOptionsReader(name, opts, &buf)
	if r.doc.Err() {
		return fmt.Errorf("failed to embed chart: %w", r.doc.Error())
	}
	r.doc.ImageOptions(name, margin, r.doc.GetY()+2, chartWidth, chartHeight, true, opts, 0, "")
	return nil
}

// Save writes the finished document.
func (r *Renderer) Save(w io.Writer) error {
	if err := r.doc.Output(w); err != nil {
		return fmt.Errorf("failed to write pdf: %w", err)
	}
	return nil
}

// fit shortens s with an ellipsis until it fits in width.
func (r *Renderer) fit(s string, width float64) string {
	if r.doc.GetStringWidth(s) <= width {
		return s
	}
	ellipsis := r.tr("…")
	// s is already cp1252, one byte per glyph.
	for len(s) > 0 && r.doc.GetStringWidth(s+ellipsis) > width {
		s = s[:len(s)-1]
	}
	return s + ellipsis
}
