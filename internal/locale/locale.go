// Package locale formats amounts, dates and month labels according to the
// currency and locale chosen in the settings.
package locale

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"

	"github.com/mmynk/zeipilote/internal/models"
)

var (
	ErrUnknownCurrency = errors.New("unknown currency")
	ErrUnknownLocale   = errors.New("unknown locale")
)

// conventions describe how one language writes numbers and dates.
type conventions struct {
	decimal  string
	thousand string
	// template follows go-money: "1" is replaced by the number, "$" by the symbol.
	template    string
	dateLayout  string
	monthFormat string // fmt pattern taking the month name and the year
	months      [12]string
}

var (
	french = conventions{
		decimal: ",", thousand: "\u202f", template: "1\u00a0$",
		dateLayout: "02/01/2006", monthFormat: "%s %d",
		months: [12]string{"janvier", "février", "mars", "avril", "mai", "juin",
			"juillet", "août", "septembre", "octobre", "novembre", "décembre"},
	}
	english = conventions{
		decimal: ".", thousand: ",", template: "$1",
		dateLayout: "01/02/2006", monthFormat: "%s %d",
		months: [12]string{"January", "February", "March", "April", "May", "June",
			"July", "August", "September", "October", "November", "December"},
	}
	german = conventions{
		decimal: ",", thousand: ".", template: "1\u00a0$",
		dateLayout: "02.01.2006", monthFormat: "%s %d",
		months: [12]string{"Januar", "Februar", "März", "April", "Mai", "Juni",
			"Juli", "August", "September", "Oktober", "November", "Dezember"},
	}
	spanish = conventions{
		decimal: ",", thousand: ".", template: "1\u00a0$",
		dateLayout: "02/01/2006", monthFormat: "%s de %d",
		months: [12]string{"enero", "febrero", "marzo", "abril", "mayo", "junio",
			"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre"},
	}
	italian = conventions{
		decimal: ",", thousand: ".", template: "1\u00a0$",
		dateLayout: "02/01/2006", monthFormat: "%s %d",
		months: [12]string{"gennaio", "febbraio", "marzo", "aprile", "maggio", "giugno",
			"luglio", "agosto", "settembre", "ottobre", "novembre", "dicembre"},
	}
)

var (
	supported = []language.Tag{language.French, language.English, language.German, language.Spanish, language.Italian}
	matcher   = language.NewMatcher(supported)
	byIndex   = []conventions{french, english, german, spanish, italian}
)

// Formatter formats values for one currency and locale.
type Formatter struct {
	conv     conventions
	code     string
	grapheme string
	fraction int
	// native is set when the locale is not supported; go-money's own layout is used then.
	native bool
}

// New builds a Formatter from settings, applying the EUR / fr-FR defaults.
// Unknown locales fall back to the currency's conventional layout;
// unknown currencies are printed with their code.
func New(settings *models.Settings) Formatter {
	s := settings.Resolved()
	f := Formatter{code: strings.ToUpper(s.Currency), grapheme: strings.ToUpper(s.Currency), fraction: 2}

	if cur := money.GetCurrency(f.code); cur != nil {
		f.grapheme = cur.Grapheme
		f.fraction = cur.Fraction
	}

	tag, err := language.Parse(s.CurrencyFormat)
	if err != nil {
		f.conv, f.native = english, true
		return f
	}
	_, idx, confidence := matcher.Match(tag)
	if confidence == language.No {
		f.conv, f.native = english, true
		return f
	}
	f.conv = byIndex[idx]
	if base, _ := tag.Base(); base.String() == "en" {
		if region, _ := tag.Region(); region.String() != "US" {
			f.conv.dateLayout = "02/01/2006"
		}
	}
	return f
}

// Currency formats amount, e.g. "1 234,50 €" for EUR in fr-FR.
func (f Formatter) Currency(amount float64) string {
	minor := decimal.NewFromFloat(amount).Shift(int32(f.fraction)).Round(0).IntPart()
	if f.native {
		if cur := money.GetCurrency(f.code); cur != nil {
			return cur.Formatter().Format(minor)
		}
	}
	return money.NewFormatter(f.fraction, f.conv.decimal, f.conv.thousand, f.grapheme, f.conv.template).Format(minor)
}

// Number formats a plain quantity with the locale decimal separator and no trailing zeros.
func (f Formatter) Number(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	return strings.Replace(s, ".", f.conv.decimal, 1)
}

// MonthLabel returns the long month and year, e.g. "janvier 2025".
func (f Formatter) MonthLabel(year int, month time.Month) string {
	if month < time.January || month > time.December {
		return strconv.Itoa(year)
	}
	return fmt.Sprintf(f.conv.monthFormat, f.conv.months[month-1], year)
}

// Date formats t as a short numeric date.
func (f Formatter) Date(t time.Time) string {
	return t.Format(f.conv.dateLayout)
}

// RecordDate formats a stored date string, returning it untouched when it does not parse.
func (f Formatter) RecordDate(s string) string {
	t, err := models.ParseDate(s)
	if err != nil {
		return s
	}
	return f.Date(t)
}

// ValidateCurrency checks that code is an ISO 4217 currency.
func ValidateCurrency(code string) error {
	if _, err := currency.ParseISO(code); err != nil {
		return fmt.Errorf("%w: %q", ErrUnknownCurrency, code)
	}
	return nil
}

// ValidateLocale checks that tag is a well-formed BCP 47 language tag.
func ValidateLocale(tag string) error {
	if _, err := language.Parse(tag); err != nil {
		return fmt.Errorf("%w: %q", ErrUnknownLocale, tag)
	}
	return nil
}
