package locale

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/mmynk/zeipilote/internal/models"
)

// plainSpaces folds the no-break spaces used by locale layouts into ASCII spaces.
func plainSpaces(s string) string {
	return strings.NewReplacer("\u202f", " ", "\u00a0", " ").Replace(s)
}

func TestCurrency(t *testing.T) {
	tests := []struct {
		name     string
		settings *models.Settings
		amount   float64
		want     string
	}{
		{"defaults are EUR fr-FR", nil, 1234.5, "1 234,50 €"},
		{"explicit fr-FR", &models.Settings{Currency: "EUR", CurrencyFormat: "fr-FR"}, 1234.5, "1 234,50 €"},
		{"large amount", nil, 1234567.891, "1 234 567,89 €"},
		{"zero", nil, 0, "0,00 €"},
		{"negative", nil, -42.1, "-42,10 €"},
		{"en-US dollars", &models.Settings{Currency: "USD", CurrencyFormat: "en-US"}, 1234.5, "$1,234.50"},
		{"de-DE euros", &models.Settings{Currency: "EUR", CurrencyFormat: "de-DE"}, 1234.5, "1.234,50 €"},
		{"rounds half away from zero", nil, 0.005, "0,01 €"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := plainSpaces(New(tt.settings).Currency(tt.amount))
			if got != tt.want {
				t.Errorf("Currency(%v) = %q, want %q", tt.amount, got, tt.want)
			}
		})
	}
}

func TestCurrencyContainsSymbolAndDigits(t *testing.T) {
	got := New(&models.Settings{Currency: "EUR", CurrencyFormat: "fr-FR"}).Currency(1234.5)
	if !strings.Contains(plainSpaces(got), "1 234,50") {
		t.Errorf("%q does not contain the grouped amount", got)
	}
	if !strings.Contains(got, "€") {
		t.Errorf("%q does not contain the euro sign", got)
	}
}

func TestCurrencyFallbacks(t *testing.T) {
	unknownLocale := New(&models.Settings{Currency: "EUR", CurrencyFormat: "xx-invalid-!!"}).Currency(10)
	if !strings.Contains(unknownLocale, "10") || !strings.Contains(unknownLocale, "€") {
		t.Errorf("unknown locale produced %q", unknownLocale)
	}

	unknownCurrency := New(&models.Settings{Currency: "ZZZ", CurrencyFormat: "fr-FR"}).Currency(10)
	if plainSpaces(unknownCurrency) != "10,00 ZZZ" {
		t.Errorf("unknown currency produced %q", unknownCurrency)
	}
}

func TestMonthLabel(t *testing.T) {
	fr := New(nil)
	if got := fr.MonthLabel(2025, time.January); got != "janvier 2025" {
		t.Errorf("fr MonthLabel = %q", got)
	}
	if got := fr.MonthLabel(2024, time.August); got != "août 2024" {
		t.Errorf("fr MonthLabel = %q", got)
	}
	en := New(&models.Settings{CurrencyFormat: "en-US"})
	if got := en.MonthLabel(2025, time.March); got != "March 2025" {
		t.Errorf("en MonthLabel = %q", got)
	}
	es := New(&models.Settings{CurrencyFormat: "es-ES"})
	if got := es.MonthLabel(2025, time.May); got != "mayo de 2025" {
		t.Errorf("es MonthLabel = %q", got)
	}
}

func TestDates(t *testing.T) {
	day := time.Date(2025, time.January, 2, 15, 0, 0, 0, time.UTC)
	if got := New(nil).Date(day); got != "02/01/2025" {
		t.Errorf("fr Date = %q", got)
	}
	if got := New(&models.Settings{CurrencyFormat: "en-US"}).Date(day); got != "01/02/2025" {
		t.Errorf("en-US Date = %q", got)
	}
	if got := New(&models.Settings{CurrencyFormat: "en-GB"}).Date(day); got != "02/01/2025" {
		t.Errorf("en-GB Date = %q", got)
	}
	if got := New(nil).RecordDate("2025-01-02T00:00:00.000Z"); got != "02/01/2025" {
		t.Errorf("RecordDate = %q", got)
	}
	if got := New(nil).RecordDate("someday"); got != "someday" {
		t.Errorf("RecordDate on garbage = %q", got)
	}
}

func TestNumber(t *testing.T) {
	if got := New(nil).Number(1.5); got != "1,5" {
		t.Errorf("fr Number = %q", got)
	}
	if got := New(&models.Settings{CurrencyFormat: "en-US"}).Number(3); got != "3" {
		t.Errorf("en Number = %q", got)
	}
}

func TestValidate(t *testing.T) {
	if err := ValidateCurrency("EUR"); err != nil {
		t.Errorf("EUR rejected: %v", err)
	}
	if err := ValidateCurrency("EURO"); !errors.Is(err, ErrUnknownCurrency) {
		t.Errorf("EURO accepted: %v", err)
	}
	if err := ValidateLocale("fr-FR"); err != nil {
		t.Errorf("fr-FR rejected: %v", err)
	}
	if err := ValidateLocale("not a tag"); !errors.Is(err, ErrUnknownLocale) {
		t.Errorf("bad tag accepted: %v", err)
	}
}
