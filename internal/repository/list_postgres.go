package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ansolutions0125/nexmailer/internal/domain"
)

type listRepository struct {
	db *sql.DB
}

// NewListRepository creates a new PostgreSQL list repository
func NewListRepository(db *sql.DB) domain.ListRepository {
	return &listRepository{db: db}
}

func (r *listRepository) GetByID(ctx context.Context, customerID, id string) (*domain.List, error) {
	query := `
		SELECT id, customer_id, name, description, is_active, created_at, updated_at
		FROM lists
		WHERE customer_id = $1 AND id = $2
	`

	var list domain.List
	var description sql.NullString
	err := r.db.QueryRowContext(ctx, query, customerID, id).Scan(
		&list.ID,
		&list.CustomerID,
		&list.Name,
		&description,
		&list.IsActive,
		&list.CreatedAt,
		&list.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, &domain.ErrNotFound{Entity: "list", ID: id}
		}
		return nil, fmt.Errorf("failed to get list: %w", err)
	}
	list.Description = description.String
	return &list, nil
}
