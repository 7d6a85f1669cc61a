package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/mmynk/zeipilote/internal/models"
)

// SaveClient creates a client, or replaces the client with the same id when isUpdate is set.
// New clients get an id when none is given and a creation timestamp.
func (d *Dashboard) SaveClient(ctx context.Context, c models.Client, isUpdate bool) (models.Client, error) {
	if err := c.Validate(); err != nil {
		return models.Client{}, err
	}

	err := d.mutate(ctx, "save_client", func(data *models.AppData) error {
		idx := slices.IndexFunc(data.Clients, func(existing models.Client) bool { return existing.ID == c.ID })
		if isUpdate && idx >= 0 {
			if c.CreatedAt == "" {
				c.CreatedAt = data.Clients[idx].CreatedAt
			}
			data.Clients[idx] = c
			return nil
		}
		if isUpdate {
			if err := d.unknownID("client", c.ID); err != nil {
				return err
			}
		} else if idx >= 0 && c.ID != "" {
			return fmt.Errorf("%w: client %s already exists", models.ErrInvalid, c.ID)
		}
		if c.ID == "" {
			c.ID = d.newID()
		}
		if c.CreatedAt == "" {
			c.CreatedAt = d.stamp()
		}
		data.Clients = append(data.Clients, c)
		return nil
	})
	if err != nil {
		return models.Client{}, err
	}

	slog.Info("Client saved", "client_id", c.ID, "update", isUpdate)
	return c, nil
}

// DeleteClient removes a client together with every project and invoice that references it.
// Deleting an unknown id is a no-op.
func (d *Dashboard) DeleteClient(ctx context.Context, id string) error {
	var projects, invoices int
	err := d.mutate(ctx, "delete_client", func(data *models.AppData) error {
		before := len(data.Clients)
		data.Clients = slices.DeleteFunc(data.Clients, func(c models.Client) bool { return c.ID == id })

		n := len(data.Projects)
		data.Projects = slices.DeleteFunc(data.Projects, func(p models.Project) bool { return p.ClientID == id })
		projects = n - len(data.Projects)

		n = len(data.Invoices)
		data.Invoices = slices.DeleteFunc(data.Invoices, func(inv models.Invoice) bool { return inv.ClientID == id })
		invoices = n - len(data.Invoices)

		if before == len(data.Clients) && projects == 0 && invoices == 0 {
			return errNoChange
		}
		return nil
	})
	if err != nil {
		return err
	}

	slog.Info("Client deleted", "client_id", id, "projects_removed", projects, "invoices_removed", invoices)
	return nil
}

// Client returns the client with the given id.
func (d *Dashboard) Client(ctx context.Context, id string) (models.Client, error) {
	data := d.Snapshot(ctx)
	for _, c := range data.Clients {
		if c.ID == id {
			return c, nil
		}
	}
	return models.Client{}, fmt.Errorf("%w: client %s", ErrNotFound, id)
}
