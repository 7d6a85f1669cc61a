package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/mmynk/zeipilote/internal/models"
)

// SaveProject creates a project, or replaces the project with the same id when isUpdate is set.
func (d *Dashboard) SaveProject(ctx context.Context, p models.Project, isUpdate bool) (models.Project, error) {
	if err := p.Validate(); err != nil {
		return models.Project{}, err
	}

	err := d.mutate(ctx, "save_project", func(data *models.AppData) error {
		idx := slices.IndexFunc(data.Projects, func(existing models.Project) bool { return existing.ID == p.ID })
		if isUpdate && idx >= 0 {
			if p.CreatedAt == "" {
				p.CreatedAt = data.Projects[idx].CreatedAt
			}
			data.Projects[idx] = p
			return nil
		}
		if isUpdate {
			if err := d.unknownID("project", p.ID); err != nil {
				return err
			}
		} else if idx >= 0 && p.ID != "" {
			return fmt.Errorf("%w: project %s already exists", models.ErrInvalid, p.ID)
		}
		if p.ID == "" {
			p.ID = d.newID()
		}
		if p.CreatedAt == "" {
			p.CreatedAt = d.stamp()
		}
		data.Projects = append(data.Projects, p)
		return nil
	})
	if err != nil {
		return models.Project{}, err
	}

	slog.Info("Project saved", "project_id", p.ID, "client_id", p.ClientID, "update", isUpdate)
	return p, nil
}

// DeleteProject removes one project. Invoices are not touched. Unknown ids are a no-op.
func (d *Dashboard) DeleteProject(ctx context.Context, id string) error {
	err := d.mutate(ctx, "delete_project", func(data *models.AppData) error {
		n := len(data.Projects)
		data.Projects = slices.DeleteFunc(data.Projects, func(p models.Project) bool { return p.ID == id })
		if n == len(data.Projects) {
			return errNoChange
		}
		return nil
	})
	if err != nil {
		return err
	}
	slog.Info("Project deleted", "project_id", id)
	return nil
}

// Project returns the project with the given id.
func (d *Dashboard) Project(ctx context.Context, id string) (models.Project, error) {
	data := d.Snapshot(ctx)
	for _, p := range data.Projects {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Project{}, fmt.Errorf("%w: project %s", ErrNotFound, id)
}
