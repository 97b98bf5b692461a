package repository

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/ansolutions0125/nexmailer/internal/domain"
)

type statsRepository struct {
	db *sql.DB
}

// NewStatsRepository creates a new PostgreSQL global stats repository
func NewStatsRepository(db *sql.DB) domain.StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) IncrementGlobal(ctx context.Context, delta domain.GlobalStatsDelta) error {
	if delta.IsZero() {
		return nil
	}

	builder := psql.Update("global_stats").
		Set("updated_at", sq.Expr("NOW()"))

	increments := []struct {
		column string
		value  int64
	}{
		{"emails_sent", delta.EmailsSent},
		{"emails_failed", delta.EmailsFailed},
		{"emails_opened", delta.EmailsOpened},
		{"webhooks_sent", delta.WebhooksSent},
		{"subscribers_moved", delta.SubscribersMoved},
		{"subscribers_removed", delta.SubscribersRemoved},
		{"subscribers_deleted", delta.SubscribersDeleted},
		{"automations_advanced", delta.AutomationsAdvanced},
		{"automations_finished", delta.AutomationsFinished},
	}
	for _, inc := range increments {
		if inc.value != 0 {
			builder = builder.Set(inc.column, sq.Expr(inc.column+" + ?", inc.value))
		}
	}

	query, args, err := builder.Where(sq.Eq{"id": 1}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to increment global stats: %w", err)
	}
	return nil
}

func (r *statsRepository) GetGlobal(ctx context.Context) (*domain.GlobalStats, error) {
	query := `
		SELECT emails_sent, emails_failed, emails_opened, webhooks_sent,
		       subscribers_moved, subscribers_removed, subscribers_deleted,
		       automations_advanced, automations_finished, updated_at
		FROM global_stats
		WHERE id = 1
	`

	var stats domain.GlobalStats
	err := r.db.QueryRowContext(ctx, query).Scan(
		&stats.EmailsSent,
		&stats.EmailsFailed,
		&stats.EmailsOpened,
		&stats.WebhooksSent,
		&stats.SubscribersMoved,
		&stats.SubscribersRemoved,
		&stats.SubscribersDeleted,
		&stats.AutomationsAdvanced,
		&stats.AutomationsFinished,
		&stats.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return &domain.GlobalStats{}, nil
		}
		return nil, fmt.Errorf("failed to get global stats: %w", err)
	}
	return &stats, nil
}
