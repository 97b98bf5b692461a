package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/ansolutions0125/nexmailer/internal/domain"
)

type contactListRepository struct {
	db *sql.DB
}

// NewContactListRepository creates a new PostgreSQL contact list repository
func NewContactListRepository(db *sql.DB) domain.ContactListRepository {
	return &contactListRepository{db: db}
}

func (r *contactListRepository) AddContactToList(ctx context.Context, membership *domain.ContactList) error {
	now := time.Now().UTC()
	membership.Email = strings.ToLower(membership.Email)
	membership.CreatedAt = now
	membership.UpdatedAt = now
	if membership.Status == "" {
		membership.Status = domain.ContactListStatusAdded
	}

	// A removed membership is reactivated; an active one is untouched.
	query := `
		INSERT INTO contact_lists (customer_id, email, list_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (customer_id, email, list_id) DO UPDATE
		SET status = $4, deleted_at = NULL, updated_at = $6
		WHERE contact_lists.status = 'removed'
	`
	_, err := r.db.ExecContext(ctx, query,
		membership.CustomerID,
		membership.Email,
		membership.ListID,
		membership.Status,
		membership.CreatedAt,
		membership.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to add contact to list: %w", err)
	}
	return nil
}

func (r *contactListRepository) GetContactListIDs(ctx context.Context, customerID, email string) ([]string, error) {
	query := `
		SELECT list_id FROM contact_lists
		WHERE customer_id = $1 AND email = $2 AND status != 'removed'
	`
	rows, err := r.db.QueryContext(ctx, query, customerID, strings.ToLower(email))
	if err != nil {
		return nil, fmt.Errorf("failed to get contact lists: %w", err)
	}
	defer rows.Close()

	var listIDs []string
	for rows.Next() {
		var listID string
		if err := rows.Scan(&listID); err != nil {
			return nil, fmt.Errorf("failed to scan list id: %w", err)
		}
		listIDs = append(listIDs, listID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return listIDs, nil
}

func (r *contactListRepository) RemoveContactFromList(ctx context.Context, customerID, email, listID string) error {
	query := `
		UPDATE contact_lists
		SET status = 'removed', updated_at = NOW()
		WHERE customer_id = $1 AND email = $2 AND list_id = $3 AND status != 'removed'
	`
	_, err := r.db.ExecContext(ctx, query, customerID, strings.ToLower(email), listID)
	if err != nil {
		return fmt.Errorf("failed to remove contact from list: %w", err)
	}
	return nil
}

func (r *contactListRepository) RemoveContactFromAllLists(ctx context.Context, customerID, email string) error {
	query := `
		UPDATE contact_lists
		SET status = 'removed', updated_at = NOW()
		WHERE customer_id = $1 AND email = $2 AND status != 'removed'
	`
	_, err := r.db.ExecContext(ctx, query, customerID, strings.ToLower(email))
	if err != nil {
		return fmt.Errorf("failed to remove contact from lists: %w", err)
	}
	return nil
}
