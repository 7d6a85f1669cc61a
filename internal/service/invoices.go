package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/mmynk/zeipilote/internal/calculator"
	"github.com/mmynk/zeipilote/internal/models"
)

// SaveInvoice creates an invoice, or replaces the invoice with the same id when isUpdate is set.
// The amount is always recomputed from the line items.
func (d *Dashboard) SaveInvoice(ctx context.Context, inv models.Invoice, isUpdate bool) (models.Invoice, error) {
	inv.Amount = calculator.InvoiceAmount(inv.Items)
	if err := inv.Validate(); err != nil {
		return models.Invoice{}, err
	}

	err := d.mutate(ctx, "save_invoice", func(data *models.AppData) error {
		idx := slices.IndexFunc(data.Invoices, func(existing models.Invoice) bool { return existing.ID == inv.ID })
		if isUpdate && idx >= 0 {
			data.Invoices[idx] = inv
			return nil
		}
		if isUpdate {
			if err := d.unknownID("invoice", inv.ID); err != nil {
				return err
			}
		} else if idx >= 0 && inv.ID != "" {
			return fmt.Errorf("%w: invoice %s already exists", models.ErrInvalid, inv.ID)
		}
		if inv.ID == "" {
			inv.ID = d.newID()
		}
		data.Invoices = append(data.Invoices, inv)
		return nil
	})
	if err != nil {
		return models.Invoice{}, err
	}

	slog.Info("Invoice saved", "invoice_id", inv.ID, "client_id", inv.ClientID, "amount", inv.Amount, "update", isUpdate)
	return inv, nil
}

// DeleteInvoice removes one invoice. Unknown ids are a no-op, so repeated deletes are harmless.
func (d *Dashboard) DeleteInvoice(ctx context.Context, id string) error {
	err := d.mutate(ctx, "delete_invoice", func(data *models.AppData) error {
		n := len(data.Invoices)
		data.Invoices = slices.DeleteFunc(data.Invoices, func(inv models.Invoice) bool { return inv.ID == id })
		if n == len(data.Invoices) {
			return errNoChange
		}
		return nil
	})
	if err != nil {
		return err
	}
	slog.Info("Invoice deleted", "invoice_id", id)
	return nil
}

// Invoice returns the invoice with the given id.
func (d *Dashboard) Invoice(ctx context.Context, id string) (models.Invoice, error) {
	data := d.Snapshot(ctx)
	for _, inv := range data.Invoices {
		if inv.ID == id {
			return inv, nil
		}
	}
	return models.Invoice{}, fmt.Errorf("%w: invoice %s", ErrNotFound, id)
}
