// Package api exposes the dashboard over Connect RPC and plain HTTP download endpoints.
package api

// ServiceName is the fully-qualified name of the dashboard service.
const ServiceName = "zeipilote.v1.DashboardService"

// Procedure paths served by the dashboard handler.
const (
	GetDataProcedure         = "/" + ServiceName + "/GetData"
	SaveClientProcedure      = "/" + ServiceName + "/SaveClient"
	DeleteClientProcedure    = "/" + ServiceName + "/DeleteClient"
	SaveProjectProcedure     = "/" + ServiceName + "/SaveProject"
	DeleteProjectProcedure   = "/" + ServiceName + "/DeleteProject"
	SaveInvoiceProcedure     = "/" + ServiceName + "/SaveInvoice"
	DeleteInvoiceProcedure   = "/" + ServiceName + "/DeleteInvoice"
	UpdateProfileProcedure   = "/" + ServiceName + "/UpdateProfile"
	UpdateSettingsProcedure  = "/" + ServiceName + "/UpdateSettings"
	GetOverviewProcedure     = "/" + ServiceName + "/GetOverview"
	GetMonthlyStatsProcedure = "/" + ServiceName + "/GetMonthlyStats"
	ImportDataProcedure      = "/" + ServiceName + "/ImportData"
)
