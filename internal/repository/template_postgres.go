package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ansolutions0125/nexmailer/internal/domain"
)

type templateRepository struct {
	db *sql.DB
}

// NewTemplateRepository creates a new PostgreSQL template repository
func NewTemplateRepository(db *sql.DB) domain.TemplateRepository {
	return &templateRepository{db: db}
}

func (r *templateRepository) GetByID(ctx context.Context, customerID, id string) (*domain.Template, error) {
	query := `
		SELECT id, customer_id, name, subject, html_body, created_at, updated_at
		FROM templates
		WHERE customer_id = $1 AND id = $2
	`

	var tpl domain.Template
	err := r.db.QueryRowContext(ctx, query, customerID, id).Scan(
		&tpl.ID,
		&tpl.CustomerID,
		&tpl.Name,
		&tpl.Subject,
		&tpl.HTMLBody,
		&tpl.CreatedAt,
		&tpl.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, &domain.ErrNotFound{Entity: "template", ID: id}
		}
		return nil, fmt.Errorf("failed to get template: %w", err)
	}
	return &tpl, nil
}
