package repository

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/ansolutions0125/nexmailer/internal/domain"
)

type flowRepository struct {
	db *sql.DB
}

// NewFlowRepository creates a new PostgreSQL flow repository
func NewFlowRepository(db *sql.DB) domain.FlowRepository {
	return &flowRepository{db: db}
}

func (r *flowRepository) GetByID(ctx context.Context, customerID, id string) (*domain.Flow, error) {
	query := `
		SELECT id, customer_id, name, list_id, website_id, is_active, steps,
		       emails_sent, webhooks_sent, users_processed, last_processed_at,
		       created_at, updated_at
		FROM flows
		WHERE customer_id = $1 AND id = $2
	`

	var flow domain.Flow
	var listID sql.NullString
	err := r.db.QueryRowContext(ctx, query, customerID, id).Scan(
		&flow.ID,
		&flow.CustomerID,
		&flow.Name,
		&listID,
		&flow.WebsiteID,
		&flow.IsActive,
		&flow.Steps,
		&flow.Stats.EmailsSent,
		&flow.Stats.WebhooksSent,
		&flow.Stats.UsersProcessed,
		&flow.Stats.LastProcessedAt,
		&flow.CreatedAt,
		&flow.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, &domain.ErrNotFound{Entity: "flow", ID: id}
		}
		return nil, fmt.Errorf("failed to get flow: %w", err)
	}
	flow.ListID = listID.String
	return &flow, nil
}

func (r *flowRepository) IncrementStats(ctx context.Context, customerID, id string, delta domain.FlowStatsDelta) error {
	builder := psql.Update("flows").
		Set("last_processed_at", sq.Expr("NOW()")).
		Set("updated_at", sq.Expr("NOW()"))

	if delta.EmailsSent != 0 {
		builder = builder.Set("emails_sent", sq.Expr("emails_sent + ?", delta.EmailsSent))
	}
	if delta.WebhooksSent != 0 {
		builder = builder.Set("webhooks_sent", sq.Expr("webhooks_sent + ?", delta.WebhooksSent))
	}
	if delta.UsersProcessed != 0 {
		builder = builder.Set("users_processed", sq.Expr("users_processed + ?", delta.UsersProcessed))
	}

	query, args, err := builder.
		Where(sq.Eq{"customer_id": customerID, "id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to increment flow stats: %w", err)
	}
	return nil
}
