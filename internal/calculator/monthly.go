package calculator

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/zeipilote/internal/models"
)

// MonthLabeler names a calendar month, e.g. "janvier 2025".
type MonthLabeler func(year int, month time.Month) string

// MonthlyTotal is the summed invoice amount for one calendar month.
type MonthlyTotal struct {
	Label  string     `json:"label"`
	Year   int        `json:"year"`
	Month  time.Month `json:"month"`
	Amount float64    `json:"amount"`
}

// MonthlyGrouping sums invoice amounts per calendar month of the invoice date.
// Months appear in the order they are first encountered, not chronologically;
// use SortChronologically when order matters. Every status counts.
// Invoices whose date does not parse are skipped. Months are taken in loc;
// a nil loc keeps the offset stored with each date.
func MonthlyGrouping(invoices []models.Invoice, label MonthLabeler, loc *time.Location) []MonthlyTotal {
	if label == nil {
		label = func(year int, month time.Month) string { return fmt.Sprintf("%04d-%02d", year, month) }
	}

	type key struct {
		year  int
		month time.Month
	}
	index := make(map[key]int)
	sums := []decimal.Decimal{}
	var out []MonthlyTotal

	for _, inv := range invoices {
		date, err := parseIn(inv.Date, loc)
		if err != nil {
			continue
		}
		k := key{date.Year(), date.Month()}
		i, ok := index[k]
		if !ok {
			i = len(out)
			index[k] = i
			out = append(out, MonthlyTotal{Label: label(k.year, k.month), Year: k.year, Month: k.month})
			sums = append(sums, decimal.Zero)
		}
		sums[i] = sums[i].Add(decimal.NewFromFloat(inv.Amount))
	}

	for i := range out {
		out[i].Amount = sums[i].InexactFloat64()
	}
	return out
}

// SortChronologically orders totals from the oldest month to the newest.
func SortChronologically(totals []MonthlyTotal) {
	sort.SliceStable(totals, func(i, j int) bool {
		if totals[i].Year != totals[j].Year {
			return totals[i].Year < totals[j].Year
		}
		return totals[i].Month < totals[j].Month
	})
}

// MonthlyStats summarizes the invoices of one month.
type MonthlyStats struct {
	TotalAmount    float64 `json:"totalAmount"`
	InvoiceCount   int     `json:"invoiceCount"`
	AverageInvoice float64 `json:"averageInvoice"`
	LargestInvoice float64 `json:"largestInvoice"`
}

// InvoicesInMonth returns the invoices dated in the given month of loc, in stored order.
// A nil loc keeps the offset stored with each date.
func InvoicesInMonth(invoices []models.Invoice, month time.Month, year int, loc *time.Location) []models.Invoice {
	var out []models.Invoice
	for _, inv := range invoices {
		date, err := parseIn(inv.Date, loc)
		if err != nil {
			continue
		}
		if date.Month() == month && date.Year() == year {
			out = append(out, inv)
		}
	}
	return out
}

// ComputeMonthlyStats computes total, count, average and largest amount for the invoices
// dated in the given month. Every status counts. The average is 0 when there is no invoice.
func ComputeMonthlyStats(invoices []models.Invoice, month time.Month, year int, loc *time.Location) MonthlyStats {
	inMonth := InvoicesInMonth(invoices, month, year, loc)

	total := decimal.Zero
	largest := 0.0
	for _, inv := range inMonth {
		total = total.Add(decimal.NewFromFloat(inv.Amount))
		if inv.Amount > largest {
			largest = inv.Amount
		}
	}

	stats := MonthlyStats{
		TotalAmount:    total.InexactFloat64(),
		InvoiceCount:   len(inMonth),
		LargestInvoice: largest,
	}
	if stats.InvoiceCount > 0 {
		stats.AverageInvoice = total.Div(decimal.NewFromInt(int64(stats.InvoiceCount))).InexactFloat64()
	}
	return stats
}

func parseIn(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		return models.ParseDate(s)
	}
	return models.ParseDateIn(s, loc)
}
