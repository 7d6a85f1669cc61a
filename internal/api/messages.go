package api

import (
	"encoding/json"

	"github.com/mmynk/zeipilote/internal/calculator"
	"github.com/mmynk/zeipilote/internal/models"
	"github.com/mmynk/zeipilote/internal/service"
)

type GetDataRequest struct{}

type GetDataResponse struct {
	Data models.AppData `json:"data"`
}

type SaveClientRequest struct {
	Client   models.Client `json:"client"`
	IsUpdate bool          `json:"isUpdate"`
}

type SaveClientResponse struct {
	Client models.Client `json:"client"`
}

type SaveProjectRequest struct {
	Project  models.Project `json:"project"`
	IsUpdate bool           `json:"isUpdate"`
}

type SaveProjectResponse struct {
	Project models.Project `json:"project"`
}

type SaveInvoiceRequest struct {
	Invoice  models.Invoice `json:"invoice"`
	IsUpdate bool           `json:"isUpdate"`
}

type SaveInvoiceResponse struct {
	Invoice models.Invoice `json:"invoice"`
}

// DeleteRequest names the record to delete. Unknown ids are not an error.
type DeleteRequest struct {
	ID string `json:"id"`
}

type DeleteResponse struct{}

type UpdateProfileRequest = service.ProfileUpdate

type UpdateProfileResponse struct {
	BusinessInfo models.BusinessInfo `json:"businessInfo"`
}

type UpdateSettingsRequest = service.SettingsUpdate

type UpdateSettingsResponse struct {
	Settings models.Settings `json:"settings"`
}

type GetOverviewRequest struct{}

// GetOverviewResponse carries the dashboard cards, the clients page rows and the
// monthly revenue series in chronological order. Formatted amounts follow the stored settings.
type GetOverviewResponse struct {
	Overview             calculator.Overview        `json:"overview"`
	Clients              []calculator.ClientSummary `json:"clients"`
	Monthly              []calculator.MonthlyTotal  `json:"monthly"`
	Settings             models.Settings            `json:"settings"`
	FormattedRevenue     string                     `json:"formattedRevenue"`
	FormattedOutstanding string                     `json:"formattedOutstanding"`
}

// GetMonthlyStatsRequest selects a calendar month. Zero values select the current one.
type GetMonthlyStatsRequest struct {
	Year  int `json:"year,omitempty"`
	Month int `json:"month,omitempty"`
}

type GetMonthlyStatsResponse struct {
	Label    string                  `json:"label"`
	Stats    calculator.MonthlyStats `json:"stats"`
	Invoices []models.Invoice        `json:"invoices"`
}

// ImportDataRequest carries a backup document, either inline as Data or as raw Text.
type ImportDataRequest struct {
	Data json.RawMessage `json:"data,omitempty"`
	Text string          `json:"text,omitempty"`
}

type ImportDataResponse struct {
	Clients  int `json:"clients"`
	Projects int `json:"projects"`
	Invoices int `json:"invoices"`
}
