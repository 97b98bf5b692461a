package domain

import (
	"context"
	"time"
)

//go:generate mockgen -destination mocks/mock_template_repository.go -package mocks github.com/ansolutions0125/nexmailer/internal/domain TemplateRepository

// Template is a stored email body plus default subject. The body is
// final HTML; only {{email}} and {{fullName}} tokens are substituted
// at delivery time.
type Template struct {
	ID         string    `json:"id"`
	CustomerID string    `json:"customer_id"`
	Name       string    `json:"name"`
	Subject    string    `json:"subject"`
	HTMLBody   string    `json:"html_body"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Validate checks that the template can be persisted.
func (t *Template) Validate() error {
	if t.ID == "" {
		return NewValidationError("id is required")
	}
	if t.CustomerID == "" {
		return NewValidationError("customer id is required")
	}
	if t.Name == "" {
		return NewValidationError("name is required")
	}
	if t.HTMLBody == "" {
		return NewValidationError("html body is required")
	}
	return nil
}

type TemplateRepository interface {
	// GetByID returns the template, or *ErrNotFound when missing.
	GetByID(ctx context.Context, customerID, id string) (*Template, error)
}
