package domain

import (
	"context"
	"time"
)

//go:generate mockgen -destination mocks/mock_association_repository.go -package mocks github.com/ansolutions0125/nexmailer/internal/domain AssociationRepository

type AssociationStatus string

const (
	AssociationStatusActive    AssociationStatus = "active"
	AssociationStatusCompleted AssociationStatus = "completed"
	AssociationStatusPaused    AssociationStatus = "paused"
	AssociationStatusFailed    AssociationStatus = "failed"
	AssociationStatusCancelled AssociationStatus = "cancelled"
)

// FlowAssociation tracks one contact's progress through one flow. At
// most one live association exists per (customer, contact, flow);
// enrollment is an idempotent insert. CurrentStep is 1-based.
type FlowAssociation struct {
	ID           string    `json:"id"`
	CustomerID   string    `json:"customer_id"`
	ContactEmail string    `json:"contact_email"`
	FlowID       string    `json:"flow_id"`
	ListID       string    `json:"list_id,omitempty"`
	CurrentStep  int       `json:"current_step"`
	NextStepAt   time.Time `json:"next_step_at"`
	StartedAt    time.Time `json:"started_at"`
}

// Validate checks that the association can be enrolled.
func (a *FlowAssociation) Validate() error {
	if a.CustomerID == "" {
		return NewValidationError("customer id is required")
	}
	if a.ContactEmail == "" {
		return NewValidationError("contact email is required")
	}
	if a.FlowID == "" {
		return NewValidationError("flow id is required")
	}
	if a.CurrentStep < 1 {
		return NewValidationError("current step must be at least 1")
	}
	return nil
}

// FlowHistoryEntry is the archival record written exactly once when an
// association reaches a terminal status.
type FlowHistoryEntry struct {
	ID             string            `json:"id"`
	CustomerID     string            `json:"customer_id"`
	ContactEmail   string            `json:"contact_email"`
	FlowID         string            `json:"flow_id"`
	ListID         string            `json:"list_id,omitempty"`
	Status         AssociationStatus `json:"status"`
	StepsCompleted int               `json:"steps_completed"`
	Error          *string           `json:"error,omitempty"`
	StartedAt      time.Time         `json:"started_at"`
	CompletedAt    time.Time         `json:"completed_at"`
}

// ContactRef identifies one contact of one customer, used when batching
// due associations by contact.
type ContactRef struct {
	CustomerID string
	Email      string
}

type AssociationRepository interface {
	// Enroll inserts the association unless the contact already has a
	// live one for the same flow. Returns true when a row was inserted.
	Enroll(ctx context.Context, assoc *FlowAssociation) (bool, error)

	// GetDueContacts returns up to limit contacts that have at least one
	// association due before the given time, ordered by their oldest due
	// association.
	GetDueContacts(ctx context.Context, before time.Time, limit int) ([]ContactRef, error)

	// GetDueForContact returns every due association of one contact,
	// oldest next_step_at first.
	GetDueForContact(ctx context.Context, customerID, email string, before time.Time) ([]*FlowAssociation, error)

	// Advance moves the association to the next step, conditioned on it
	// still being at the step the caller saw. Returns false when another
	// sweep advanced or terminated it first.
	Advance(ctx context.Context, assoc *FlowAssociation, nextStepAt time.Time) (bool, error)

	// Terminate deletes the association and writes its history entry in
	// one transaction, conditioned on (id, flow, current step). Returns
	// false when the association was already gone, so a terminal step's
	// archival happens exactly once even under overlapping sweeps.
	Terminate(ctx context.Context, assoc *FlowAssociation, status AssociationStatus, errMsg *string) (bool, error)

	// CancelForContact terminates every live association of a contact as
	// cancelled, used when the contact is deleted.
	CancelForContact(ctx context.Context, customerID, email string) (int64, error)
}
