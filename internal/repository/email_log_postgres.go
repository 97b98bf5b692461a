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

type emailLogRepository struct {
	db *sql.DB
}

// NewEmailLogRepository creates a new PostgreSQL email log repository
func NewEmailLogRepository(db *sql.DB) domain.EmailLogRepository {
	return &emailLogRepository{db: db}
}

const emailLogColumns = `id, customer_id, queue_id, contact_email, flow_id, template_id, server_id,
	subject, status, provider_message_id, error,
	open_count, max_opens, first_opened_at, last_opened_at,
	click_count, first_clicked_at, sent_at, created_at, updated_at`

func (r *emailLogRepository) Create(ctx context.Context, log *domain.EmailLog) error {
	if log.ID == "" {
		log.ID = uuid.New().String()
	}
	if log.Status == "" {
		log.Status = domain.EmailLogStatusProcessing
	}
	log.ContactEmail = strings.ToLower(log.ContactEmail)

	now := time.Now().UTC()
	log.CreatedAt = now
	log.UpdatedAt = now

	query := fmt.Sprintf(`
		INSERT INTO email_logs (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
	`, emailLogColumns)
	_, err := r.db.ExecContext(ctx, query,
		log.ID,
		log.CustomerID,
		nullString(log.QueueID),
		log.ContactEmail,
		nullString(log.FlowID),
		nullString(log.TemplateID),
		nullString(log.ServerID),
		log.Subject,
		log.Status,
		log.ProviderMessageID,
		log.Error,
		log.OpenCount,
		log.MaxOpens,
		log.FirstOpenedAt,
		log.LastOpenedAt,
		log.ClickCount,
		log.FirstClickedAt,
		log.SentAt,
		log.CreatedAt,
		log.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create email log: %w", err)
	}
	return nil
}

func (r *emailLogRepository) GetByID(ctx context.Context, id string) (*domain.EmailLog, error) {
	query := fmt.Sprintf(`SELECT %s FROM email_logs WHERE id = $1`, emailLogColumns)

	log, err := scanEmailLog(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, &domain.ErrNotFound{Entity: "email log", ID: id}
		}
		return nil, fmt.Errorf("failed to get email log: %w", err)
	}
	return log, nil
}

func (r *emailLogRepository) MarkSent(ctx context.Context, id string, providerMessageID string, sentAt time.Time) error {
	query := `
		UPDATE email_logs
		SET status = 'sent', provider_message_id = $2, sent_at = $3, error = NULL, updated_at = NOW()
		WHERE id = $1
	`
	_, err := r.db.ExecContext(ctx, query, id, providerMessageID, sentAt)
	if err != nil {
		return fmt.Errorf("failed to mark log as sent: %w", err)
	}
	return nil
}

func (r *emailLogRepository) MarkFailed(ctx context.Context, id string, errMsg string) error {
	query := `
		UPDATE email_logs
		SET status = 'failed', error = $2, updated_at = NOW()
		WHERE id = $1
	`
	_, err := r.db.ExecContext(ctx, query, id, errMsg)
	if err != nil {
		return fmt.Errorf("failed to mark log as failed: %w", err)
	}
	return nil
}

func (r *emailLogRepository) RecordOpen(ctx context.Context, id string, at time.Time) (*domain.OpenResult, error) {
	// The open_count guard makes the cap atomic: once reached, the
	// update matches nothing and the open is not counted.
	query := fmt.Sprintf(`
		UPDATE email_logs
		SET open_count = open_count + 1,
		    status = 'opened',
		    first_opened_at = COALESCE(first_opened_at, $2),
		    last_opened_at = $2,
		    updated_at = NOW()
		WHERE id = $1 AND open_count < max_opens
		RETURNING %s
	`, emailLogColumns)

	log, err := scanEmailLog(r.db.QueryRowContext(ctx, query, id, at))
	if err == nil {
		return &domain.OpenResult{
			Counted:   true,
			FirstOpen: log.OpenCount == 1,
			Log:       log,
		}, nil
	}
	if err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to record open: %w", err)
	}

	// Either missing or capped; a second lookup tells them apart.
	log, err = r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &domain.OpenResult{Counted: false, Log: log}, nil
}

func (r *emailLogRepository) RecordClick(ctx context.Context, id string, at time.Time) (*domain.ClickResult, error) {
	query := fmt.Sprintf(`
		UPDATE email_logs
		SET click_count = click_count + 1,
		    first_clicked_at = COALESCE(first_clicked_at, $2),
		    updated_at = NOW()
		WHERE id = $1
		RETURNING %s
	`, emailLogColumns)

	log, err := scanEmailLog(r.db.QueryRowContext(ctx, query, id, at))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, &domain.ErrNotFound{Entity: "email log", ID: id}
		}
		return nil, fmt.Errorf("failed to record click: %w", err)
	}
	return &domain.ClickResult{FirstClick: log.ClickCount == 1, Log: log}, nil
}

func scanEmailLog(row rowScanner) (*domain.EmailLog, error) {
	var log domain.EmailLog
	var queueID, flowID, templateID, serverID sql.NullString
	err := row.Scan(
		&log.ID,
		&log.CustomerID,
		&queueID,
		&log.ContactEmail,
		&flowID,
		&templateID,
		&serverID,
		&log.Subject,
		&log.Status,
		&log.ProviderMessageID,
		&log.Error,
		&log.OpenCount,
		&log.MaxOpens,
		&log.FirstOpenedAt,
		&log.LastOpenedAt,
		&log.ClickCount,
		&log.FirstClickedAt,
		&log.SentAt,
		&log.CreatedAt,
		&log.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	log.QueueID = queueID.String
	log.FlowID = flowID.String
	log.TemplateID = templateID.String
	log.ServerID = serverID.String
	return &log, nil
}
