package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ansolutions0125/nexmailer/internal/domain"
)

type associationRepository struct {
	db *sql.DB
}

// NewAssociationRepository creates a new PostgreSQL flow association repository
func NewAssociationRepository(db *sql.DB) domain.AssociationRepository {
	return &associationRepository{db: db}
}

func (r *associationRepository) Enroll(ctx context.Context, assoc *domain.FlowAssociation) (bool, error) {
	if err := assoc.Validate(); err != nil {
		return false, err
	}

	if assoc.ID == "" {
		assoc.ID = uuid.New().String()
	}
	assoc.ContactEmail = strings.ToLower(assoc.ContactEmail)
	if assoc.StartedAt.IsZero() {
		assoc.StartedAt = time.Now().UTC()
	}
	if assoc.NextStepAt.IsZero() {
		assoc.NextStepAt = assoc.StartedAt
	}

	// The unique constraint makes enrollment idempotent: a contact
	// already in the flow stays where it is.
	query := `
		INSERT INTO flow_associations
			(id, customer_id, contact_email, flow_id, list_id, current_step, next_step_at, started_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (customer_id, contact_email, flow_id) DO NOTHING
	`
	result, err := r.db.ExecContext(ctx, query,
		assoc.ID,
		assoc.CustomerID,
		assoc.ContactEmail,
		assoc.FlowID,
		nullString(assoc.ListID),
		assoc.CurrentStep,
		assoc.NextStepAt,
		assoc.StartedAt,
	)
	if err != nil {
		return false, fmt.Errorf("failed to enroll contact: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rowsAffected > 0, nil
}

func (r *associationRepository) GetDueContacts(ctx context.Context, before time.Time, limit int) ([]domain.ContactRef, error) {
	query := `
		SELECT customer_id, contact_email
		FROM flow_associations
		WHERE next_step_at <= $1
		GROUP BY customer_id, contact_email
		ORDER BY MIN(next_step_at) ASC
		LIMIT $2
	`
	rows, err := r.db.QueryContext(ctx, query, before, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query due contacts: %w", err)
	}
	defer rows.Close()

	var contacts []domain.ContactRef
	for rows.Next() {
		var ref domain.ContactRef
		if err := rows.Scan(&ref.CustomerID, &ref.Email); err != nil {
			return nil, fmt.Errorf("failed to scan contact ref: %w", err)
		}
		contacts = append(contacts, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return contacts, nil
}

func (r *associationRepository) GetDueForContact(ctx context.Context, customerID, email string, before time.Time) ([]*domain.FlowAssociation, error) {
	query := `
		SELECT id, customer_id, contact_email, flow_id, list_id, current_step, next_step_at, started_at
		FROM flow_associations
		WHERE customer_id = $1 AND contact_email = $2 AND next_step_at <= $3
		ORDER BY next_step_at ASC
	`
	rows, err := r.db.QueryContext(ctx, query, customerID, strings.ToLower(email), before)
	if err != nil {
		return nil, fmt.Errorf("failed to query due associations: %w", err)
	}
	defer rows.Close()

	var associations []*domain.FlowAssociation
	for rows.Next() {
		var assoc domain.FlowAssociation
		var listID sql.NullString
		err := rows.Scan(
			&assoc.ID,
			&assoc.CustomerID,
			&assoc.ContactEmail,
			&assoc.FlowID,
			&listID,
			&assoc.CurrentStep,
			&assoc.NextStepAt,
			&assoc.StartedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan association: %w", err)
		}
		assoc.ListID = listID.String
		associations = append(associations, &assoc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return associations, nil
}

func (r *associationRepository) Advance(ctx context.Context, assoc *domain.FlowAssociation, nextStepAt time.Time) (bool, error) {
	// Conditioned on the step the caller saw, so two overlapping sweeps
	// cannot both advance the same association.
	query := `
		UPDATE flow_associations
		SET current_step = current_step + 1, next_step_at = $4
		WHERE id = $1 AND flow_id = $2 AND current_step = $3
	`
	result, err := r.db.ExecContext(ctx, query, assoc.ID, assoc.FlowID, assoc.CurrentStep, nextStepAt)
	if err != nil {
		return false, fmt.Errorf("failed to advance association: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rowsAffected > 0, nil
}

func (r *associationRepository) Terminate(ctx context.Context, assoc *domain.FlowAssociation, status domain.AssociationStatus, errMsg *string) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Pull from active, push to history, in one transaction keyed on
	// the step the caller saw. A second terminator finds no row and
	// writes no history.
	deleteQuery := `
		DELETE FROM flow_associations
		WHERE id = $1 AND flow_id = $2 AND current_step = $3
		RETURNING customer_id, contact_email, list_id, current_step, started_at
	`
	var (
		customerID   string
		contactEmail string
		listID       sql.NullString
		currentStep  int
		startedAt    time.Time
	)
	err = tx.QueryRowContext(ctx, deleteQuery, assoc.ID, assoc.FlowID, assoc.CurrentStep).Scan(
		&customerID, &contactEmail, &listID, &currentStep, &startedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("failed to delete association: %w", err)
	}

	stepsCompleted := currentStep
	if status != domain.AssociationStatusCompleted {
		stepsCompleted = currentStep - 1
	}

	insertQuery := `
		INSERT INTO flow_history
			(id, customer_id, contact_email, flow_id, list_id, status, steps_completed, error, started_at, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
	`
	_, err = tx.ExecContext(ctx, insertQuery,
		uuid.New().String(),
		customerID,
		contactEmail,
		assoc.FlowID,
		listID,
		status,
		stepsCompleted,
		errMsg,
		startedAt,
	)
	if err != nil {
		return false, fmt.Errorf("failed to insert history entry: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return true, nil
}

func (r *associationRepository) CancelForContact(ctx context.Context, customerID, email string) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		WITH cancelled AS (
			DELETE FROM flow_associations
			WHERE customer_id = $1 AND contact_email = $2
			RETURNING id, customer_id, contact_email, flow_id, list_id, current_step, started_at
		)
		INSERT INTO flow_history
			(id, customer_id, contact_email, flow_id, list_id, status, steps_completed, started_at, completed_at)
		SELECT id, customer_id, contact_email, flow_id, list_id, 'cancelled', current_step - 1, started_at, NOW()
		FROM cancelled
	`
	result, err := tx.ExecContext(ctx, query, customerID, strings.ToLower(email))
	if err != nil {
		return 0, fmt.Errorf("failed to cancel associations: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return rowsAffected, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
