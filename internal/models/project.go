package models

import (
	"fmt"
	"strings"
)

// ProjectStatus is the lifecycle state of a project.
type ProjectStatus string

const (
	ProjectActive    ProjectStatus = "active"
	ProjectCompleted ProjectStatus = "completed"
	ProjectOnHold    ProjectStatus = "on-hold"
)

// Valid reports whether s is one of the known project states.
func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectActive, ProjectCompleted, ProjectOnHold:
		return true
	}
	return false
}

// Project represents a piece of work done for a client.
type Project struct {
	ID string `json:"id"`

	// ClientID references a Client. Not enforced: may dangle after manual edits or imports.
	ClientID string `json:"clientId"`

	Name        string        `json:"name"`
	Description string        `json:"description"`
	Status      ProjectStatus `json:"status"`

	// StartDate and EndDate are ISO dates or timestamps. EndDate is optional.
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate,omitempty"`

	// Budget is the expected value of the project, shown in the PDF report.
	Budget *float64 `json:"budget,omitempty"`

	CreatedAt string `json:"createdAt,omitempty"`
}

// Validate checks required fields and the date ordering.
func (p Project) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: project name is required", ErrInvalid)
	}
	if p.ClientID == "" {
		return fmt.Errorf("%w: project client is required", ErrInvalid)
	}
	if !p.Status.Valid() {
		return fmt.Errorf("%w: unknown project status %q", ErrInvalid, p.Status)
	}
	if p.Budget != nil && *p.Budget < 0 {
		return fmt.Errorf("%w: project budget cannot be negative", ErrInvalid)
	}
	if p.EndDate == "" {
		return nil
	}
	start, err := ParseDate(p.StartDate)
	if err != nil {
		return fmt.Errorf("%w: start date: %v", ErrInvalid, err)
	}
	end, err := ParseDate(p.EndDate)
	if err != nil {
		return fmt.Errorf("%w: end date: %v", ErrInvalid, err)
	}
	if end.Before(start) {
		return fmt.Errorf("%w: end date %s precedes start date %s", ErrInvalid, p.EndDate, p.StartDate)
	}
	return nil
}
