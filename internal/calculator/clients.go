package calculator

import "github.com/mmynk/zeipilote/internal/models"

// ProjectsForClient returns the projects whose ClientID equals clientID, in stored order.
func ProjectsForClient(projects []models.Project, clientID string) []models.Project {
	var out []models.Project
	for _, p := range projects {
		if p.ClientID == clientID {
			out = append(out, p)
		}
	}
	return out
}

// InvoicesForClient returns the invoices whose ClientID equals clientID, in stored order.
func InvoicesForClient(invoices []models.Invoice, clientID string) []models.Invoice {
	var out []models.Invoice
	for _, inv := range invoices {
		if inv.ClientID == clientID {
			out = append(out, inv)
		}
	}
	return out
}

// ProjectCountForClient counts the projects of one client.
func ProjectCountForClient(projects []models.Project, clientID string) int {
	n := 0
	for _, p := range projects {
		if p.ClientID == clientID {
			n++
		}
	}
	return n
}

// ClientRevenue is the paid revenue billed to one client.
func ClientRevenue(invoices []models.Invoice, clientID string) float64 {
	return RevenueTotal(InvoicesForClient(invoices, clientID), PaidOnly)
}

// ClientName resolves a client reference to a display name.
// Dangling references resolve to models.UnknownClientName.
func ClientName(clients []models.Client, clientID string) string {
	for _, c := range clients {
		if c.ID == clientID {
			return c.Name
		}
	}
	return models.UnknownClientName
}

// Overview holds the numbers shown on the dashboard cards.
type Overview struct {
	Clients     int     `json:"clients"`
	Projects    int     `json:"projects"`
	Invoices    int     `json:"invoices"`
	Revenue     float64 `json:"revenue"`
	Outstanding float64 `json:"outstanding"`
}

// ComputeOverview summarizes data for the dashboard.
func ComputeOverview(data models.AppData) Overview {
	return Overview{
		Clients:     len(data.Clients),
		Projects:    len(data.Projects),
		Invoices:    len(data.Invoices),
		Revenue:     RevenueTotal(data.Invoices, PaidOnly),
		Outstanding: Outstanding(data.Invoices),
	}
}

// ClientSummary is one row of the clients page.
type ClientSummary struct {
	Client   models.Client `json:"client"`
	Projects int           `json:"projects"`
	Invoices int           `json:"invoices"`
	Revenue  float64       `json:"revenue"`
}

// SummarizeClients computes per-client counts and paid revenue, in stored client order.
func SummarizeClients(data models.AppData) []ClientSummary {
	out := make([]ClientSummary, 0, len(data.Clients))
	for _, c := range data.Clients {
		out = append(out, ClientSummary{
			Client:   c,
			Projects: ProjectCountForClient(data.Projects, c.ID),
			Invoices: len(InvoicesForClient(data.Invoices, c.ID)),
			Revenue:  ClientRevenue(data.Invoices, c.ID),
		})
	}
	return out
}
