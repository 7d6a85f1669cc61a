// Package export serializes the app data for download and import, and renders printable invoices.
package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mmynk/zeipilote/internal/models"
)

// ErrInvalidBackup is returned when an imported document is not a usable backup.
var ErrInvalidBackup = errors.New("invalid backup")

// Kind distinguishes a user triggered export from a settings page backup.
type Kind string

const (
	KindExport Kind = "export"
	KindBackup Kind = "backup"
)

// requiredSections must be present and non-null in every backup.
var requiredSections = []string{"clients", "invoices", "projects", "businessInfo"}

// BackupFilename returns "{product}-{kind}-{YYYY-MM-DD}.json" using the UTC date of now.
func BackupFilename(product string, kind Kind, now time.Time) string {
	if kind == "" {
		kind = KindExport
	}
	return fmt.Sprintf("%s-%s-%s.json", product, kind, now.UTC().Format(time.DateOnly))
}

// MarshalBackup encodes data as JSON indented with two spaces.
func MarshalBackup(data models.AppData) ([]byte, error) {
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode backup: %w", err)
	}
	return append(raw, '\n'), nil
}

// ParseBackup decodes a backup document. Malformed JSON and documents missing
// any of clients, invoices, projects or businessInfo are rejected with ErrInvalidBackup.
// Records inside the sections are taken as they are.
func ParseBackup(text []byte) (models.AppData, error) {
	trimmed := bytes.TrimSpace(text)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return models.AppData{}, fmt.Errorf("%w: not a JSON object", ErrInvalidBackup)
	}

	var sections map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &sections); err != nil {
		return models.AppData{}, fmt.Errorf("%w: %v", ErrInvalidBackup, err)
	}
	for _, name := range requiredSections {
		raw, ok := sections[name]
		if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			return models.AppData{}, fmt.Errorf("%w: missing %s", ErrInvalidBackup, name)
		}
	}

	var data models.AppData
	if err := json.Unmarshal(trimmed, &data); err != nil {
		return models.AppData{}, fmt.Errorf("%w: %v", ErrInvalidBackup, err)
	}
	return data, nil
}
