package repository

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/ansolutions0125/nexmailer/internal/domain"
)

type serverRepository struct {
	db *sql.DB
}

// NewServerRepository creates a new PostgreSQL server repository
func NewServerRepository(db *sql.DB) domain.ServerRepository {
	return &serverRepository{db: db}
}

func (r *serverRepository) GetWebsiteByID(ctx context.Context, customerID, id string) (*domain.Website, error) {
	query := `
		SELECT id, customer_id, name, url, server_id, created_at, updated_at
		FROM websites
		WHERE customer_id = $1 AND id = $2
	`

	var website domain.Website
	var url sql.NullString
	err := r.db.QueryRowContext(ctx, query, customerID, id).Scan(
		&website.ID,
		&website.CustomerID,
		&website.Name,
		&url,
		&website.ServerID,
		&website.CreatedAt,
		&website.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, &domain.ErrNotFound{Entity: "website", ID: id}
		}
		return nil, fmt.Errorf("failed to get website: %w", err)
	}
	website.URL = url.String
	return &website, nil
}

func (r *serverRepository) GetServerByID(ctx context.Context, customerID, id string) (*domain.Server, error) {
	query := `
		SELECT id, customer_id, name, preset, from_email, from_name, settings,
		       emails_sent, emails_failed, emails_opened, created_at, updated_at
		FROM servers
		WHERE customer_id = $1 AND id = $2
	`

	var server domain.Server
	var fromName sql.NullString
	err := r.db.QueryRowContext(ctx, query, customerID, id).Scan(
		&server.ID,
		&server.CustomerID,
		&server.Name,
		&server.Preset,
		&server.FromEmail,
		&fromName,
		&server.Settings,
		&server.Stats.EmailsSent,
		&server.Stats.EmailsFailed,
		&server.Stats.EmailsOpened,
		&server.CreatedAt,
		&server.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, &domain.ErrNotFound{Entity: "server", ID: id}
		}
		return nil, fmt.Errorf("failed to get server: %w", err)
	}
	server.FromName = fromName.String
	return &server, nil
}

func (r *serverRepository) IncrementStats(ctx context.Context, customerID, id string, delta domain.ServerStatsDelta) error {
	if delta.IsZero() {
		return nil
	}

	builder := psql.Update("servers").
		Set("updated_at", sq.Expr("NOW()"))

	if delta.EmailsSent != 0 {
		builder = builder.Set("emails_sent", sq.Expr("emails_sent + ?", delta.EmailsSent))
	}
	if delta.EmailsFailed != 0 {
		builder = builder.Set("emails_failed", sq.Expr("emails_failed + ?", delta.EmailsFailed))
	}
	if delta.EmailsOpened != 0 {
		builder = builder.Set("emails_opened", sq.Expr("emails_opened + ?", delta.EmailsOpened))
	}

	query, args, err := builder.
		Where(sq.Eq{"customer_id": customerID, "id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to increment server stats: %w", err)
	}
	return nil
}
