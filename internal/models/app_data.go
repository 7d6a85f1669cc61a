package models

import (
	"errors"
	"slices"
	"strings"
	"time"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid record")

const (
	// DefaultCurrency is used when Settings.Currency is empty.
	DefaultCurrency = "EUR"
	// DefaultCurrencyFormat is the locale used when Settings.CurrencyFormat is empty.
	DefaultCurrencyFormat = "fr-FR"
	// DefaultProfession seeds a fresh profile.
	DefaultProfession = "Développeur Web"
)

// BusinessInfo is the profile of the business owner.
type BusinessInfo struct {
	Name        string `json:"name"`
	Profession  string `json:"profession"`
	LastUpdated string `json:"lastUpdated"`
}

// Settings holds display preferences. Both fields may be empty.
type Settings struct {
	// Currency is an ISO 4217 code such as "EUR".
	Currency string `json:"currency"`

	// CurrencyFormat is a BCP 47 locale tag such as "fr-FR".
	CurrencyFormat string `json:"currencyFormat"`
}

// Resolved returns the settings with defaults applied. Nil receivers are allowed.
func (s *Settings) Resolved() Settings {
	out := Settings{Currency: DefaultCurrency, CurrencyFormat: DefaultCurrencyFormat}
	if s == nil {
		return out
	}
	if s.Currency != "" {
		out.Currency = s.Currency
	}
	if s.CurrencyFormat != "" {
		out.CurrencyFormat = s.CurrencyFormat
	}
	return out
}

// AppData is the aggregate root and the only unit of persistence.
type AppData struct {
	Clients      []Client     `json:"clients"`
	Invoices     []Invoice    `json:"invoices"`
	Projects     []Project    `json:"projects"`
	BusinessInfo BusinessInfo `json:"businessInfo"`
	Settings     *Settings    `json:"settings,omitempty"`
}

// DefaultAppData returns the structure used when nothing usable is stored.
func DefaultAppData(now time.Time) AppData {
	return AppData{
		Clients:  []Client{},
		Invoices: []Invoice{},
		Projects: []Project{},
		BusinessInfo: BusinessInfo{
			Profession:  DefaultProfession,
			LastUpdated: Timestamp(now),
		},
	}
}

// Clone returns a deep copy of d.
func (d AppData) Clone() AppData {
	out := d
	out.Clients = slices.Clone(d.Clients)
	out.Projects = slices.Clone(d.Projects)
	for i, p := range out.Projects {
		if p.Budget != nil {
			b := *p.Budget
			out.Projects[i].Budget = &b
		}
	}
	out.Invoices = slices.Clone(d.Invoices)
	for i, inv := range out.Invoices {
		out.Invoices[i].Items = slices.Clone(inv.Items)
	}
	if d.Settings != nil {
		s := *d.Settings
		out.Settings = &s
	}
	return out
}

// FindClient returns the client with the given id.
func (d AppData) FindClient(id string) (Client, bool) {
	for _, c := range d.Clients {
		if c.ID == id {
			return c, true
		}
	}
	return Client{}, false
}

// Timestamp formats t the way records store instants.
func Timestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z07:00")
}

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	time.DateOnly,
}

// ParseDate reads a record date. Both full timestamps and plain YYYY-MM-DD dates are accepted.
func ParseDate(s string) (time.Time, error) {
	var firstErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, firstErr
}

// ParseDateIn reads a record date as seen from loc. Timestamps carrying an offset are
// converted to loc; plain dates and timestamps without an offset are read as wall time in loc.
func ParseDateIn(s string, loc *time.Location) (time.Time, error) {
	t, err := ParseDate(s)
	if err != nil {
		return time.Time{}, err
	}
	if hasOffset(s) {
		return t.In(loc), nil
	}
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), loc), nil
}

// hasOffset reports whether a timestamp ends with Z or a numeric zone offset.
func hasOffset(s string) bool {
	i := strings.IndexByte(s, 'T')
	if i < 0 {
		return false
	}
	clock := s[i+1:]
	return strings.HasSuffix(clock, "Z") || strings.ContainsAny(clock, "+-")
}
