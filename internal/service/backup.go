package service

import (
	"context"
	"log/slog"

	"github.com/mmynk/zeipilote/internal/export"
	"github.com/mmynk/zeipilote/internal/models"
)

// ImportJSON replaces the whole app data with a backup document.
// When the document is rejected the stored data is left untouched.
func (d *Dashboard) ImportJSON(ctx context.Context, text []byte) (models.AppData, error) {
	data, err := export.ParseBackup(text)
	if err != nil {
		slog.Warn("Import rejected", "error", err)
		return models.AppData{}, err
	}

	err = d.mutate(ctx, "import", func(current *models.AppData) error {
		*current = data
		return nil
	})
	if err != nil {
		return models.AppData{}, err
	}

	slog.Info("Data imported", "clients", len(data.Clients), "projects", len(data.Projects), "invoices", len(data.Invoices))
	return data, nil
}

// ExportJSON returns the download filename and the pretty-printed app data.
func (d *Dashboard) ExportJSON(ctx context.Context, kind export.Kind) (string, []byte, error) {
	data := d.Snapshot(ctx)
	raw, err := export.MarshalBackup(data)
	if err != nil {
		return "", nil, err
	}
	return export.BackupFilename(d.product, kind, d.now()), raw, nil
}
