// Package calculator holds the pure aggregate functions behind the dashboard and the reports.
// Nothing here touches storage; callers pass the records they loaded.
package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/zeipilote/internal/models"
)

// RevenueFilter selects which invoices count as revenue.
type RevenueFilter int

const (
	// PaidOnly counts invoices whose status is paid. This is the default.
	PaidOnly RevenueFilter = iota
	// AllInvoices counts every invoice regardless of status.
	AllInvoices
)

// RevenueTotal sums invoice amounts under filter.
// Sums are exact in decimal and converted back to float64 once.
func RevenueTotal(invoices []models.Invoice, filter RevenueFilter) float64 {
	total := decimal.Zero
	for _, inv := range invoices {
		if filter == PaidOnly && inv.Status != models.InvoicePaid {
			continue
		}
		total = total.Add(decimal.NewFromFloat(inv.Amount))
	}
	return total.InexactFloat64()
}

// InvoiceAmount returns the sum of quantity × price over items.
func InvoiceAmount(items []models.LineItem) float64 {
	total := decimal.Zero
	for _, item := range items {
		line := decimal.NewFromFloat(item.Quantity).Mul(decimal.NewFromFloat(item.Price))
		total = total.Add(line)
	}
	return total.InexactFloat64()
}

// Outstanding sums the amounts of invoices that were sent but not paid yet.
func Outstanding(invoices []models.Invoice) float64 {
	total := decimal.Zero
	for _, inv := range invoices {
		if inv.Status == models.InvoiceSent {
			total = total.Add(decimal.NewFromFloat(inv.Amount))
		}
	}
	return total.InexactFloat64()
}
