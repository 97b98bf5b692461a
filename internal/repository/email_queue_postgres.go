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

type emailQueueRepository struct {
	db *sql.DB
}

// NewEmailQueueRepository creates a new PostgreSQL email queue repository
func NewEmailQueueRepository(db *sql.DB) domain.EmailQueueRepository {
	return &emailQueueRepository{db: db}
}

const emailQueueColumns = `id, customer_id, contact_email, flow_id, list_id, step_count,
	template_id, subject, variables, status, attempts, max_attempts,
	next_attempt, last_attempt, last_error, created_at, updated_at`

func (r *emailQueueRepository) Enqueue(ctx context.Context, entry *domain.EmailQueueEntry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.Status == "" {
		entry.Status = domain.EmailQueueStatusPending
	}
	entry.ContactEmail = strings.ToLower(entry.ContactEmail)

	now := time.Now().UTC()
	entry.CreatedAt = now
	entry.UpdatedAt = now

	query := fmt.Sprintf(`
		INSERT INTO email_queue (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`, emailQueueColumns)
	_, err := r.db.ExecContext(ctx, query,
		entry.ID,
		entry.CustomerID,
		entry.ContactEmail,
		entry.FlowID,
		nullString(entry.ListID),
		entry.StepCount,
		entry.TemplateID,
		entry.Subject,
		entry.Variables,
		entry.Status,
		entry.Attempts,
		entry.MaxAttempts,
		entry.NextAttempt,
		entry.LastAttempt,
		entry.LastError,
		entry.CreatedAt,
		entry.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to enqueue email: %w", err)
	}
	return nil
}

func (r *emailQueueRepository) GetByID(ctx context.Context, id string) (*domain.EmailQueueEntry, error) {
	query := fmt.Sprintf(`SELECT %s FROM email_queue WHERE id = $1`, emailQueueColumns)

	entry, err := scanEmailQueueEntry(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, &domain.ErrNotFound{Entity: "email queue entry", ID: id}
		}
		return nil, fmt.Errorf("failed to get queue entry: %w", err)
	}
	return entry, nil
}

func (r *emailQueueRepository) FetchDue(ctx context.Context, now time.Time, staleAfter time.Duration, limit int) ([]*domain.EmailQueueEntry, error) {
	// Entries stuck in processing past staleAfter are recovered after a
	// worker crash. SKIP LOCKED only avoids waiting on rows locked by
	// an in-flight transaction; the MarkProcessing claim is what keeps
	// two workers off the same entry.
	query := fmt.Sprintf(`
		SELECT %s
		FROM email_queue
		WHERE (
			(status = 'pending' AND (next_attempt IS NULL OR next_attempt <= $1))
			OR (status = 'failed' AND attempts < max_attempts AND (next_attempt IS NULL OR next_attempt <= $1))
			OR (status = 'processing' AND updated_at < $2)
		)
		ORDER BY created_at ASC
		LIMIT $3
		FOR UPDATE SKIP LOCKED
	`, emailQueueColumns)

	rows, err := r.db.QueryContext(ctx, query, now, now.Add(-staleAfter), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query due emails: %w", err)
	}
	defer rows.Close()

	var entries []*domain.EmailQueueEntry
	for rows.Next() {
		entry, err := scanEmailQueueEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan queue entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return entries, nil
}

func (r *emailQueueRepository) MarkProcessing(ctx context.Context, id string, now time.Time, staleAfter time.Duration) (bool, error) {
	// Claiming increments attempts so a crash mid-send still burns the
	// attempt.
	query := `
		UPDATE email_queue
		SET status = 'processing', attempts = attempts + 1, last_attempt = $2, updated_at = $2
		WHERE id = $1 AND (
			status IN ('pending', 'failed')
			OR (status = 'processing' AND updated_at < $3)
		)
	`
	result, err := r.db.ExecContext(ctx, query, id, now, now.Add(-staleAfter))
	if err != nil {
		return false, fmt.Errorf("failed to mark email as processing: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rowsAffected > 0, nil
}

func (r *emailQueueRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM email_queue WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete queue entry: %w", err)
	}
	return nil
}

func (r *emailQueueRepository) MarkFailed(ctx context.Context, id string, errMsg string, nextAttempt time.Time) error {
	query := `
		UPDATE email_queue
		SET status = 'failed', last_error = $2, next_attempt = $3, updated_at = NOW()
		WHERE id = $1
	`
	_, err := r.db.ExecContext(ctx, query, id, errMsg, nextAttempt)
	if err != nil {
		return fmt.Errorf("failed to mark email as failed: %w", err)
	}
	return nil
}

func scanEmailQueueEntry(row rowScanner) (*domain.EmailQueueEntry, error) {
	var entry domain.EmailQueueEntry
	var listID sql.NullString
	err := row.Scan(
		&entry.ID,
		&entry.CustomerID,
		&entry.ContactEmail,
		&entry.FlowID,
		&listID,
		&entry.StepCount,
		&entry.TemplateID,
		&entry.Subject,
		&entry.Variables,
		&entry.Status,
		&entry.Attempts,
		&entry.MaxAttempts,
		&entry.NextAttempt,
		&entry.LastAttempt,
		&entry.LastError,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	entry.ListID = listID.String
	return &entry, nil
}
