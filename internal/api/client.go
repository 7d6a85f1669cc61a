package api

import (
	"context"
	"strings"

	"connectrpc.com/connect"
)

// Client calls a remote DashboardService.
type Client struct {
	getData         *connect.Client[GetDataRequest, GetDataResponse]
	saveClient      *connect.Client[SaveClientRequest, SaveClientResponse]
	deleteClient    *connect.Client[DeleteRequest, DeleteResponse]
	saveProject     *connect.Client[SaveProjectRequest, SaveProjectResponse]
	deleteProject   *connect.Client[DeleteRequest, DeleteResponse]
	saveInvoice     *connect.Client[SaveInvoiceRequest, SaveInvoiceResponse]
	deleteInvoice   *connect.Client[DeleteRequest, DeleteResponse]
	updateProfile   *connect.Client[UpdateProfileRequest, UpdateProfileResponse]
	updateSettings  *connect.Client[UpdateSettingsRequest, UpdateSettingsResponse]
	getOverview     *connect.Client[GetOverviewRequest, GetOverviewResponse]
	getMonthlyStats *connect.Client[GetMonthlyStatsRequest, GetMonthlyStatsResponse]
	importData      *connect.Client[ImportDataRequest, ImportDataResponse]
}

// NewClient constructs a client for the DashboardService served at baseURL.
func NewClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *Client {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(Codec{})}, opts...)
	return &Client{
		getData:         connect.NewClient[GetDataRequest, GetDataResponse](httpClient, baseURL+GetDataProcedure, opts...),
		saveClient:      connect.NewClient[SaveClientRequest, SaveClientResponse](httpClient, baseURL+SaveClientProcedure, opts...),
		deleteClient:    connect.NewClient[DeleteRequest, DeleteResponse](httpClient, baseURL+DeleteClientProcedure, opts...),
		saveProject:     connect.NewClient[SaveProjectRequest, SaveProjectResponse](httpClient, baseURL+SaveProjectProcedure, opts...),
		deleteProject:   connect.NewClient[DeleteRequest, DeleteResponse](httpClient, baseURL+DeleteProjectProcedure, opts...),
		saveInvoice:     connect.NewClient[SaveInvoiceRequest, SaveInvoiceResponse](httpClient, baseURL+SaveInvoiceProcedure, opts...),
		deleteInvoice:   connect.NewClient[DeleteRequest, DeleteResponse](httpClient, baseURL+DeleteInvoiceProcedure, opts...),
		updateProfile:   connect.NewClient[UpdateProfileRequest, UpdateProfileResponse](httpClient, baseURL+UpdateProfileProcedure, opts...),
		updateSettings:  connect.NewClient[UpdateSettingsRequest, UpdateSettingsResponse](httpClient, baseURL+UpdateSettingsProcedure, opts...),
		getOverview:     connect.NewClient[GetOverviewRequest, GetOverviewResponse](httpClient, baseURL+GetOverviewProcedure, opts...),
		getMonthlyStats: connect.NewClient[GetMonthlyStatsRequest, GetMonthlyStatsResponse](httpClient, baseURL+GetMonthlyStatsProcedure, opts...),
		importData:      connect.NewClient[ImportDataRequest, ImportDataResponse](httpClient, baseURL+ImportDataProcedure, opts...),
	}
}

func (c *Client) GetData(ctx context.Context, req *connect.Request[GetDataRequest]) (*connect.Response[GetDataResponse], error) {
	return c.getData.CallUnary(ctx, req)
}

func (c *Client) SaveClient(ctx context.Context, req *connect.Request[SaveClientRequest]) (*connect.Response[SaveClientResponse], error) {
	return c.saveClient.CallUnary(ctx, req)
}

func (c *Client) DeleteClient(ctx context.Context, req *connect.Request[DeleteRequest]) (*connect.Response[DeleteResponse], error) {
	return c.deleteClient.CallUnary(ctx, req)
}

func (c *Client) SaveProject(ctx context.Context, req *connect.Request[SaveProjectRequest]) (*connect.Response[SaveProjectResponse], error) {
	return c.saveProject.CallUnary(ctx, req)
}

func (c *Client) DeleteProject(ctx context.Context, req *connect.Request[DeleteRequest]) (*connect.Response[DeleteResponse], error) {
	return c.deleteProject.CallUnary(ctx, req)
}

func (c *Client) SaveInvoice(ctx context.Context, req *connect.Request[SaveInvoiceRequest]) (*connect.Response[SaveInvoiceResponse], error) {
	return c.saveInvoice.CallUnary(ctx, req)
}

func (c *Client) DeleteInvoice(ctx context.Context, req *connect.Request[DeleteRequest]) (*connect.Response[DeleteResponse], error) {
	return c.deleteInvoice.CallUnary(ctx, req)
}

func (c *Client) UpdateProfile(ctx context.Context, req *connect.Request[UpdateProfileRequest]) (*connect.Response[UpdateProfileResponse], error) {
	return c.updateProfile.CallUnary(ctx, req)
}

func (c *Client) UpdateSettings(ctx context.Context, req *connect.Request[UpdateSettingsRequest]) (*connect.Response[UpdateSettingsResponse], error) {
	return c.updateSettings.CallUnary(ctx, req)
}

func (c *Client) GetOverview(ctx context.Context, req *connect.Request[GetOverviewRequest]) (*connect.Response[GetOverviewResponse], error) {
	return c.getOverview.CallUnary(ctx, req)
}

func (c *Client) GetMonthlyStats(ctx context.Context, req *connect.Request[GetMonthlyStatsRequest]) (*connect.Response[GetMonthlyStatsResponse], error) {
	return c.getMonthlyStats.CallUnary(ctx, req)
}

func (c *Client) ImportData(ctx context.Context, req *connect.Request[ImportDataRequest]) (*connect.Response[ImportDataResponse], error) {
	return c.importData.CallUnary(ctx, req)
}
