package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/ansolutions0125/nexmailer/internal/domain"
)

// psql is a Squirrel StatementBuilder configured for PostgreSQL
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type contactRepository struct {
	db *sql.DB
}

// NewContactRepository creates a new PostgreSQL contact repository
func NewContactRepository(db *sql.DB) domain.ContactRepository {
	return &contactRepository{db: db}
}

const contactColumns = `id, customer_id, email, full_name,
	emails_sent, emails_delivered, emails_opened, emails_clicked, emails_failed,
	open_rate, click_rate, delivery_rate, engagement_score,
	deleted_at, created_at, updated_at`

func (r *contactRepository) GetByEmail(ctx context.Context, customerID, email string) (*domain.Contact, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM contacts
		WHERE customer_id = $1 AND email = $2 AND deleted_at IS NULL
	`, contactColumns)

	row := r.db.QueryRowContext(ctx, query, customerID, strings.ToLower(email))
	contact, err := scanContact(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, &domain.ErrNotFound{Entity: "contact", ID: email}
		}
		return nil, fmt.Errorf("failed to get contact: %w", err)
	}
	return contact, nil
}

func (r *contactRepository) Upsert(ctx context.Context, contact *domain.Contact) error {
	if err := contact.Validate(); err != nil {
		return err
	}

	if contact.ID == "" {
		contact.ID = uuid.New().String()
	}
	contact.Email = strings.ToLower(contact.Email)

	now := time.Now().UTC()
	contact.UpdatedAt = now
	if contact.CreatedAt.IsZero() {
		contact.CreatedAt = now
	}

	query := `
		INSERT INTO contacts (id, customer_id, email, full_name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (customer_id, email) DO UPDATE
		SET full_name = $4, deleted_at = NULL, updated_at = $6
	`
	_, err := r.db.ExecContext(ctx, query,
		contact.ID,
		contact.CustomerID,
		contact.Email,
		contact.FullName,
		contact.CreatedAt,
		contact.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert contact: %w", err)
	}
	return nil
}

func (r *contactRepository) SoftDelete(ctx context.Context, customerID, email string) error {
	query := `
		UPDATE contacts
		SET deleted_at = NOW(), updated_at = NOW()
		WHERE customer_id = $1 AND email = $2 AND deleted_at IS NULL
	`
	_, err := r.db.ExecContext(ctx, query, customerID, strings.ToLower(email))
	if err != nil {
		return fmt.Errorf("failed to soft delete contact: %w", err)
	}
	return nil
}

func (r *contactRepository) ApplyEngagement(ctx context.Context, customerID, email string, delta domain.EngagementDelta) (*domain.Engagement, error) {
	builder := psql.Update("contacts").
		Set("updated_at", sq.Expr("NOW()"))

	if delta.Sent {
		builder = builder.Set("emails_sent", sq.Expr("emails_sent + 1"))
	}
	if delta.Delivered {
		builder = builder.Set("emails_delivered", sq.Expr("emails_delivered + 1"))
	}
	if delta.Opened {
		builder = builder.Set("emails_opened", sq.Expr("emails_opened + 1"))
	}
	if delta.Clicked {
		builder = builder.Set("emails_clicked", sq.Expr("emails_clicked + 1"))
	}
	if delta.Failed {
		builder = builder.Set("emails_failed", sq.Expr("emails_failed + 1"))
	}

	query, args, err := builder.
		Where(sq.Eq{"customer_id": customerID, "email": strings.ToLower(email)}).
		Suffix("RETURNING emails_sent, emails_delivered, emails_opened, emails_clicked, emails_failed").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var engagement domain.Engagement
	err = r.db.QueryRowContext(ctx, query, args...).Scan(
		&engagement.EmailsSent,
		&engagement.EmailsDelivered,
		&engagement.EmailsOpened,
		&engagement.EmailsClicked,
		&engagement.EmailsFailed,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, &domain.ErrNotFound{Entity: "contact", ID: email}
		}
		return nil, fmt.Errorf("failed to apply engagement delta: %w", err)
	}
	return &engagement, nil
}

func (r *contactRepository) UpdateEngagementRates(ctx context.Context, customerID, email string, engagement *domain.Engagement) error {
	query := `
		UPDATE contacts
		SET open_rate = $3, click_rate = $4, delivery_rate = $5, engagement_score = $6, updated_at = NOW()
		WHERE customer_id = $1 AND email = $2
	`
	_, err := r.db.ExecContext(ctx, query,
		customerID,
		strings.ToLower(email),
		engagement.OpenRate,
		engagement.ClickRate,
		engagement.DeliveryRate,
		engagement.Score,
	)
	if err != nil {
		return fmt.Errorf("failed to update engagement rates: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanContact(row rowScanner) (*domain.Contact, error) {
	var c domain.Contact
	var fullName sql.NullString
	err := row.Scan(
		&c.ID,
		&c.CustomerID,
		&c.Email,
		&fullName,
		&c.Engagement.EmailsSent,
		&c.Engagement.EmailsDelivered,
		&c.Engagement.EmailsOpened,
		&c.Engagement.EmailsClicked,
		&c.Engagement.EmailsFailed,
		&c.Engagement.OpenRate,
		&c.Engagement.ClickRate,
		&c.Engagement.DeliveryRate,
		&c.Engagement.Score,
		&c.DeletedAt,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.FullName = fullName.String
	return &c, nil
}
