package models

import (
	"fmt"
	"strings"
)

// UnknownClientName is shown wherever a ClientID no longer matches a client.
const UnknownClientName = "Client inconnu"

// Client represents a customer of the business.
type Client struct {
	// ID is the unique identifier for the client (UUID format for new records).
	ID string `json:"id"`

	// Name is the display name of the client (person or company).
	Name string `json:"name"`

	// Email is the contact address of the client.
	Email string `json:"email"`

	// Phone is an optional phone number.
	Phone string `json:"phone,omitempty"`

	// Address is an optional postal address, free form.
	Address string `json:"address,omitempty"`

	// CreatedAt is the RFC 3339 timestamp of creation.
	CreatedAt string `json:"createdAt"`
}

// Validate checks the fields the client form requires.
func (c Client) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: client name is required", ErrInvalid)
	}
	if strings.TrimSpace(c.Email) == "" {
		return fmt.Errorf("%w: client email is required", ErrInvalid)
	}
	if !strings.Contains(c.Email, "@") {
		return fmt.Errorf("%w: client email %q is not an address", ErrInvalid, c.Email)
	}
	return nil
}
