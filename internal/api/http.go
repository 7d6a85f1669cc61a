package api

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/zeipilote/internal/export"
	"github.com/mmynk/zeipilote/internal/locale"
	"github.com/mmynk/zeipilote/internal/metrics"
	"github.com/mmynk/zeipilote/internal/middleware"
	"github.com/mmynk/zeipilote/internal/report"
	"github.com/mmynk/zeipilote/internal/report/pdf"
	"github.com/mmynk/zeipilote/internal/service"
)

// NewRouter mounts the Connect service, the download endpoints, /healthz and /metrics,
// wrapped in request logging and CORS.
func NewRouter(dash *service.Dashboard, allowedOrigins []string) http.Handler {
	mux := http.NewServeMux()

	path, handler := NewDashboardServiceHandler(
		NewDashboardService(dash),
		connect.WithInterceptors(middleware.MetricsInterceptor(), middleware.LoggingInterceptor()),
	)
	mux.Handle(path, handler)

	downloads := &downloadHandler{dash: dash}
	mux.HandleFunc("GET /export/json", downloads.exportJSON)
	mux.HandleFunc("GET /export/report.pdf", downloads.reportPDF)
	mux.HandleFunc("GET /invoices/{id}/print", downloads.printInvoice)
	mux.HandleFunc("GET /healthz", downloads.healthz)
	mux.Handle("GET /metrics", metrics.Handler())

	return middleware.RequestLogger(middleware.CORS(allowedOrigins)(mux))
}

type downloadHandler struct {
	dash *service.Dashboard
}

// exportJSON serves the backup file. ?kind=backup switches the filename prefix.
func (h *downloadHandler) exportJSON(w http.ResponseWriter, r *http.Request) {
	kind := export.KindExport
	if r.URL.Query().Get("kind") == string(export.KindBackup) {
		kind = export.KindBackup
	}

	name, raw, err := h.dash.ExportJSON(r.Context(), kind)
	if err != nil {
		slog.Error("Export failed", "error", err)
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}
	slog.Info("Data exported", "filename", name, "bytes", len(raw))
	attach(w, "application/json", name, raw)
}

// reportPDF renders the activity report of the current month.
func (h *downloadHandler) reportPDF(w http.ResponseWriter, r *http.Request) {
	data := h.dash.Snapshot(r.Context())
	now := h.dash.Now()

	renderer := pdf.New()
	report.ComposeMonthly(renderer, data, now)

	var buf bytes.Buffer
	if err := renderer.Save(&buf); err != nil {
		slog.Error("Report rendering failed", "error", err)
		http.Error(w, "report rendering failed", http.StatusInternalServerError)
		return
	}
	name := report.Filename(h.dash.ProductName(), now)
	slog.Info("Report generated", "filename", name, "bytes", buf.Len())
	attach(w, "application/pdf", name, buf.Bytes())
}

// printInvoice serves a printable HTML page for one invoice.
func (h *downloadHandler) printInvoice(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	inv, err := h.dash.Invoice(r.Context(), id)
	if errors.Is(err, service.ErrNotFound) {
		http.Error(w, "invoice not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "invoice lookup failed", http.StatusInternalServerError)
		return
	}

	data := h.dash.Snapshot(r.Context())
	var buf bytes.Buffer
	if err := export.PrintableInvoice(&buf, data, inv, locale.New(data.Settings)); err != nil {
		slog.Error("Invoice rendering failed", "invoice_id", id, "error", err)
		http.Error(w, "invoice rendering failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

func (h *downloadHandler) healthz(w http.ResponseWriter, r *http.Request) {
	if err := h.dash.Probe(r.Context()); err != nil {
		slog.Warn("Health check failed", "error", err)
		http.Error(w, "storage unavailable", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintln(w, "ok")
}

func attach(w http.ResponseWriter, contentType, filename string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Write(body)
}
