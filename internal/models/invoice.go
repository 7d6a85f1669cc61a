package models

import (
	"encoding/json"
	"fmt"
)

// InvoiceStatus is the billing state of an invoice.
type InvoiceStatus string

const (
	InvoiceDraft InvoiceStatus = "draft"
	InvoiceSent  InvoiceStatus = "sent"
	InvoicePaid  InvoiceStatus = "paid"
)

// Valid reports whether s is one of the known invoice states.
func (s InvoiceStatus) Valid() bool {
	switch s {
	case InvoiceDraft, InvoiceSent, InvoicePaid:
		return true
	}
	return false
}

// Invoice represents a bill sent to a client.
type Invoice struct {
	ID string `json:"id"`

	// ClientID references a Client, with the same weak semantics as Project.ClientID.
	ClientID string `json:"clientId"`

	// Reference is an optional human facing invoice number.
	Reference string `json:"reference,omitempty"`

	// Amount is the invoice total. It equals the sum of quantity × price over Items
	// when written through the service; imported data is taken as is.
	Amount float64 `json:"amount"`

	Status InvoiceStatus `json:"status"`

	// Date and DueDate are ISO dates or timestamps.
	Date    string `json:"date"`
	DueDate string `json:"dueDate"`

	Items []LineItem `json:"items"`
}

// LineItem represents a single billed line of an invoice.
type LineItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Price       float64 `json:"price"`
}

// Total is quantity × price.
func (l LineItem) Total() float64 {
	return l.Quantity * l.Price
}

// UnmarshalJSON accepts the legacy "total" field when "amount" is absent.
// Older exports carried the invoice total under that name.
func (i *Invoice) UnmarshalJSON(data []byte) error {
	type plain Invoice
	var aux struct {
		plain
		Amount *float64 `json:"amount"`
		Total  *float64 `json:"total"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*i = Invoice(aux.plain)
	switch {
	case aux.Amount != nil:
		i.Amount = *aux.Amount
	case aux.Total != nil:
		i.Amount = *aux.Total
	}
	return nil
}

// Validate checks the fields the invoice form requires.
func (i Invoice) Validate() error {
	if i.ClientID == "" {
		return fmt.Errorf("%w: invoice client is required", ErrInvalid)
	}
	if !i.Status.Valid() {
		return fmt.Errorf("%w: unknown invoice status %q", ErrInvalid, i.Status)
	}
	if len(i.Items) == 0 {
		return fmt.Errorf("%w: invoice needs at least one item", ErrInvalid)
	}
	for n, item := range i.Items {
		if item.Quantity < 0 || item.Price < 0 {
			return fmt.Errorf("%w: item %d has a negative quantity or price", ErrInvalid, n+1)
		}
	}
	if _, err := ParseDate(i.Date); err != nil {
		return fmt.Errorf("%w: invoice date: %v", ErrInvalid, err)
	}
	if i.DueDate != "" {
		if _, err := ParseDate(i.DueDate); err != nil {
			return fmt.Errorf("%w: due date: %v", ErrInvalid, err)
		}
	}
	return nil
}
