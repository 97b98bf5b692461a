package domain

import (
	"context"
	"time"
)

//go:generate mockgen -destination mocks/mock_contact_list_repository.go -package mocks github.com/ansolutions0125/nexmailer/internal/domain ContactListRepository

type ContactListStatus string

const (
	// ContactListStatusAdded is the initial state right after enrollment,
	// before the contact has received anything from the list.
	ContactListStatusAdded ContactListStatus = "added"
	// ContactListStatusActive means the membership has seen at least one
	// delivery or flow step.
	ContactListStatusActive ContactListStatus = "active"
	// ContactListStatusRemoved is a soft removal: the row stays for
	// history but the contact no longer receives from the list.
	ContactListStatusRemoved ContactListStatus = "removed"
)

// ContactList is the membership of one contact in one list.
type ContactList struct {
	CustomerID string            `json:"customer_id"`
	Email      string            `json:"email"`
	ListID     string            `json:"list_id"`
	Status     ContactListStatus `json:"status"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
	DeletedAt  *time.Time        `json:"deleted_at,omitempty"`
}

type ContactListRepository interface {
	// AddContactToList inserts the membership, or reactivates it when a
	// removed row already exists. Adding twice is a no-op.
	AddContactToList(ctx context.Context, membership *ContactList) error

	// GetContactListIDs returns the ids of the lists the contact is an
	// active member of.
	GetContactListIDs(ctx context.Context, customerID, email string) ([]string, error)

	// RemoveContactFromList marks the membership removed. Removing a
	// missing or already removed membership is a no-op.
	RemoveContactFromList(ctx context.Context, customerID, email, listID string) error

	// RemoveContactFromAllLists marks every membership of the contact
	// removed, used when the contact itself is deleted.
	RemoveContactFromAllLists(ctx context.Context, customerID, email string) error
}
