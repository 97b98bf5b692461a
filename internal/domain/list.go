package domain

import (
	"context"
	"time"
)

//go:generate mockgen -destination mocks/mock_list_repository.go -package mocks github.com/ansolutions0125/nexmailer/internal/domain ListRepository

// List is a named audience a contact can belong to. Flows are attached
// to lists: enrolling a contact in a list enrolls it into the list's
// active flows.
type List struct {
	ID          string    `json:"id"`
	CustomerID  string    `json:"customer_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Validate checks that the list can be persisted.
func (l *List) Validate() error {
	if l.ID == "" {
		return NewValidationError("id is required")
	}
	if len(l.ID) > 32 {
		return NewValidationError("id length must be between 1 and 32")
	}
	if l.CustomerID == "" {
		return NewValidationError("customer id is required")
	}
	if l.Name == "" {
		return NewValidationError("name is required")
	}
	if len(l.Name) > 255 {
		return NewValidationError("name length must be between 1 and 255")
	}
	return nil
}

type ListRepository interface {
	// GetByID returns the list, or *ErrNotFound when missing.
	GetByID(ctx context.Context, customerID, id string) (*List, error)
}
