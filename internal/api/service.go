package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/zeipilote/internal/calculator"
	"github.com/mmynk/zeipilote/internal/export"
	"github.com/mmynk/zeipilote/internal/locale"
	"github.com/mmynk/zeipilote/internal/models"
	"github.com/mmynk/zeipilote/internal/service"
	"github.com/mmynk/zeipilote/internal/storage"
)

// DashboardService implements the Connect DashboardService.
type DashboardService struct {
	dash *service.Dashboard
}

// NewDashboardService creates a DashboardService over dash.
func NewDashboardService(dash *service.Dashboard) *DashboardService {
	return &DashboardService{dash: dash}
}

// NewDashboardServiceHandler builds an HTTP handler serving every procedure of svc.
// It returns the path prefix to mount the handler on.
func NewDashboardServiceHandler(svc *DashboardService, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(Codec{})}, opts...)

	mux := http.NewServeMux()
	mux.Handle(GetDataProcedure, connect.NewUnaryHandler(GetDataProcedure, svc.GetData, opts...))
	mux.Handle(SaveClientProcedure, connect.NewUnaryHandler(SaveClientProcedure, svc.SaveClient, opts...))
	mux.Handle(DeleteClientProcedure, connect.NewUnaryHandler(DeleteClientProcedure, svc.DeleteClient, opts...))
	mux.Handle(SaveProjectProcedure, connect.NewUnaryHandler(SaveProjectProcedure, svc.SaveProject, opts...))
	mux.Handle(DeleteProjectProcedure, connect.NewUnaryHandler(DeleteProjectProcedure, svc.DeleteProject, opts...))
	mux.Handle(SaveInvoiceProcedure, connect.NewUnaryHandler(SaveInvoiceProcedure, svc.SaveInvoice, opts...))
	mux.Handle(DeleteInvoiceProcedure, connect.NewUnaryHandler(DeleteInvoiceProcedure, svc.DeleteInvoice, opts...))
	mux.Handle(UpdateProfileProcedure, connect.NewUnaryHandler(UpdateProfileProcedure, svc.UpdateProfile, opts...))
	mux.Handle(UpdateSettingsProcedure, connect.NewUnaryHandler(UpdateSettingsProcedure, svc.UpdateSettings, opts...))
	mux.Handle(GetOverviewProcedure, connect.NewUnaryHandler(GetOverviewProcedure, svc.GetOverview, opts...))
	mux.Handle(GetMonthlyStatsProcedure, connect.NewUnaryHandler(GetMonthlyStatsProcedure, svc.GetMonthlyStats, opts...))
	mux.Handle(ImportDataProcedure, connect.NewUnaryHandler(ImportDataProcedure, svc.ImportData, opts...))
	return "/" + ServiceName + "/", mux
}

// GetData returns the whole app data.
func (s *DashboardService) GetData(ctx context.Context, req *connect.Request[GetDataRequest]) (*connect.Response[GetDataResponse], error) {
	slog.Debug("GetData request received")
	return connect.NewResponse(&GetDataResponse{Data: s.dash.Snapshot(ctx)}), nil
}

// SaveClient creates or updates a client.
func (s *DashboardService) SaveClient(ctx context.Context, req *connect.Request[SaveClientRequest]) (*connect.Response[SaveClientResponse], error) {
	slog.Info("SaveClient request received",
		"client_id", req.Msg.Client.ID,
		"name", req.Msg.Client.Name,
		"update", req.Msg.IsUpdate,
	)

	client, err := s.dash.SaveClient(ctx, req.Msg.Client, req.Msg.IsUpdate)
	if err != nil {
		return nil, connectError(err)
	}
	return connect.NewResponse(&SaveClientResponse{Client: client}), nil
}

// DeleteClient deletes a client and everything attached to it.
func (s *DashboardService) DeleteClient(ctx context.Context, req *connect.Request[DeleteRequest]) (*connect.Response[DeleteResponse], error) {
	slog.Info("DeleteClient request received", "client_id", req.Msg.ID)
	if err := s.dash.DeleteClient(ctx, req.Msg.ID); err != nil {
		return nil, connectError(err)
	}
	return connect.NewResponse(&DeleteResponse{}), nil
}

// SaveProject creates or updates a project.
func (s *DashboardService) SaveProject(ctx context.Context, req *connect.Request[SaveProjectRequest]) (*connect.Response[SaveProjectResponse], error) {
	slog.Info("SaveProject request received",
		"project_id", req.Msg.Project.ID,
		"client_id", req.Msg.Project.ClientID,
		"update", req.Msg.IsUpdate,
	)

	project, err := s.dash.SaveProject(ctx, req.Msg.Project, req.Msg.IsUpdate)
	if err != nil {
		return nil, connectError(err)
	}
	return connect.NewResponse(&SaveProjectResponse{Project: project}), nil
}

// DeleteProject deletes a project.
func (s *DashboardService) DeleteProject(ctx context.Context, req *connect.Request[DeleteRequest]) (*connect.Response[DeleteResponse], error) {
	slog.Info("DeleteProject request received", "project_id", req.Msg.ID)
	if err := s.dash.DeleteProject(ctx, req.Msg.ID); err != nil {
		return nil, connectError(err)
	}
	return connect.NewResponse(&DeleteResponse{}), nil
}

// SaveInvoice creates or updates an invoice.
func (s *DashboardService) SaveInvoice(ctx context.Context, req *connect.Request[SaveInvoiceRequest]) (*connect.Response[SaveInvoiceResponse], error) {
	slog.Info("SaveInvoice request received",
		"invoice_id", req.Msg.Invoice.ID,
		"client_id", req.Msg.Invoice.ClientID,
		"items_count", len(req.Msg.Invoice.Items),
		"update", req.Msg.IsUpdate,
	)

	invoice, err := s.dash.SaveInvoice(ctx, req.Msg.Invoice, req.Msg.IsUpdate)
	if err != nil {
		return nil, connectError(err)
	}
	return connect.NewResponse(&SaveInvoiceResponse{Invoice: invoice}), nil
}

// DeleteInvoice deletes an invoice.
func (s *DashboardService) DeleteInvoice(ctx context.Context, req *connect.Request[DeleteRequest]) (*connect.Response[DeleteResponse], error) {
	slog.Info("DeleteInvoice request received", "invoice_id", req.Msg.ID)
	if err := s.dash.DeleteInvoice(ctx, req.Msg.ID); err != nil {
		return nil, connectError(err)
	}
	return connect.NewResponse(&DeleteResponse{}), nil
}

// UpdateProfile merges the business info fields that are set.
func (s *DashboardService) UpdateProfile(ctx context.Context, req *connect.Request[UpdateProfileRequest]) (*connect.Response[UpdateProfileResponse], error) {
	slog.Info("UpdateProfile request received")
	info, err := s.dash.UpdateProfile(ctx, *req.Msg)
	if err != nil {
		return nil, connectError(err)
	}
	return connect.NewResponse(&UpdateProfileResponse{BusinessInfo: info}), nil
}

// UpdateSettings merges the display settings that are set.
func (s *DashboardService) UpdateSettings(ctx context.Context, req *connect.Request[UpdateSettingsRequest]) (*connect.Response[UpdateSettingsResponse], error) {
	slog.Info("UpdateSettings request received")
	settings, err := s.dash.UpdateSettings(ctx, *req.Msg)
	if err != nil {
		return nil, connectError(err)
	}
	return connect.NewResponse(&UpdateSettingsResponse{Settings: settings}), nil
}

// GetOverview returns the dashboard numbers.
func (s *DashboardService) GetOverview(ctx context.Context, req *connect.Request[GetOverviewRequest]) (*connect.Response[GetOverviewResponse], error) {
	slog.Debug("GetOverview request received")

	data := s.dash.Snapshot(ctx)
	f := locale.New(data.Settings)
	overview := calculator.ComputeOverview(data)
	monthly := calculator.MonthlyGrouping(data.Invoices, f.MonthLabel, s.dash.Now().Location())
	calculator.SortChronologically(monthly)

	return connect.NewResponse(&GetOverviewResponse{
		Overview:             overview,
		Clients:              calculator.SummarizeClients(data),
		Monthly:              monthly,
		Settings:             data.Settings.Resolved(),
		FormattedRevenue:     f.Currency(overview.Revenue),
		FormattedOutstanding: f.Currency(overview.Outstanding),
	}), nil
}

// GetMonthlyStats returns the invoice statistics of one month.
func (s *DashboardService) GetMonthlyStats(ctx context.Context, req *connect.Request[GetMonthlyStatsRequest]) (*connect.Response[GetMonthlyStatsResponse], error) {
	slog.Debug("GetMonthlyStats request received", "year", req.Msg.Year, "month", req.Msg.Month)

	now := s.dash.Now()
	year, month := req.Msg.Year, time.Month(req.Msg.Month)
	if year == 0 {
		year = now.Year()
	}
	if month == 0 {
		month = now.Month()
	}
	if month < time.January || month > time.December {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("month must be between 1 and 12"))
	}

	data := s.dash.Snapshot(ctx)
	invoices := calculator.InvoicesInMonth(data.Invoices, month, year, now.Location())
	if invoices == nil {
		invoices = []models.Invoice{}
	}
	return connect.NewResponse(&GetMonthlyStatsResponse{
		Label:    locale.New(data.Settings).MonthLabel(year, month),
		Stats:    calculator.ComputeMonthlyStats(data.Invoices, month, year, now.Location()),
		Invoices: invoices,
	}), nil
}

// ImportData replaces the app data with a backup document.
func (s *DashboardService) ImportData(ctx context.Context, req *connect.Request[ImportDataRequest]) (*connect.Response[ImportDataResponse], error) {
	text := []byte(req.Msg.Text)
	if len(req.Msg.Data) > 0 {
		text = req.Msg.Data
	}
	slog.Info("ImportData request received", "bytes", len(text))

	data, err := s.dash.ImportJSON(ctx, text)
	if err != nil {
		return nil, connectError(err)
	}
	return connect.NewResponse(&ImportDataResponse{
		Clients:  len(data.Clients),
		Projects: len(data.Projects),
		Invoices: len(data.Invoices),
	}), nil
}

// connectError maps service errors to Connect codes.
func connectError(err error) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, models.ErrInvalid),
		errors.Is(err, service.ErrInvalidSettings),
		errors.Is(err, export.ErrInvalidBackup):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, storage.ErrUnavailable):
		return connect.NewError(connect.CodeUnavailable, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}
