// Package repository provides Postgres persistence for categories, payment
// methods and expenses. Every query filters by the owning user: row-level
// isolation is enforced here, not assumed from the store.
package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/spendtrack/spendtrack/internal/apperr"
	"github.com/spendtrack/spendtrack/internal/models"
)

// PostgresCategoryRepository implements category persistence.
type PostgresCategoryRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresCategoryRepository creates a repository over the given
// connection.
func NewPostgresCategoryRepository(db *sql.DB) *PostgresCategoryRepository {
	return &PostgresCategoryRepository{DB: db}
}

// List returns the user's categories ordered by creation time.
func (r *PostgresCategoryRepository) List(ctx context.Context, userID string, skip, limit int) ([]models.Category, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, user_id, name, is_expense, created_at, updated_at
		  FROM categories
		 WHERE user_id = $1
		 ORDER BY created_at ASC
		 LIMIT $2 OFFSET $3
	`, userID, limit, skip)
	if err != nil {
		return nil, apperr.FromStore(fmt.Errorf("list categories: %w", err))
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.IsExpense, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, apperr.FromStore(fmt.Errorf("scan category: %w", err))
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.FromStore(fmt.Errorf("list categories: %w", err))
	}
	return categories, nil
}

// ListAll returns every category of the user, used to build aggregation
// dimensions.
func (r *PostgresCategoryRepository) ListAll(ctx context.Context, userID string) ([]models.Category, error) {
	return r.List(ctx, userID, 0, maxListSize)
}

// Exists reports whether the category belongs to the user.
func (r *PostgresCategoryRepository) Exists(ctx context.Context, userID, id string) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM categories WHERE id = $1 AND user_id = $2)`,
		id, userID,
	).Scan(&exists)
	if err != nil {
		return false, apperr.FromStore(fmt.Errorf("category exists: %w", err))
	}
	return exists, nil
}

// Create inserts a category and returns the stored row.
func (r *PostgresCategoryRepository) Create(ctx context.Context, userID, name string, isExpense bool) (models.Category, error) {
	c := models.Category{
		ID:        uuid.NewString(),
		UserID:    userID,
		Name:      name,
		IsExpense: isExpense,
	}
	now := time.Now().UTC()
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO categories (id, user_id, name, is_expense, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		RETURNING created_at, updated_at
	`, c.ID, c.UserID, c.Name, c.IsExpense, now).Scan(&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return models.Category{}, apperr.FromStore(fmt.Errorf("create category: %w", err))
	}
	return c, nil
}

// UpdateName renames the category. A missing row maps to RowNotFound.
func (r *PostgresCategoryRepository) UpdateName(ctx context.Context, userID, id, name string) (models.Category, error) {
	var c models.Category
	err := r.DB.QueryRowContext(ctx, `
		UPDATE categories
		   SET name = $3, updated_at = $4
		 WHERE id = $1 AND user_id = $2
		RETURNING id, user_id, name, is_expense, created_at, updated_at
	`, id, userID, name, time.Now().UTC()).
		Scan(&c.ID, &c.UserID, &c.Name, &c.IsExpense, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return models.Category{}, apperr.FromStore(fmt.Errorf("update category: %w", err))
	}
	return c, nil
}

// Delete removes the category. A missing row maps to RowNotFound; a
// category still referenced by expenses surfaces as ReferenceConflict via
// the store's foreign-key constraint.
func (r *PostgresCategoryRepository) Delete(ctx context.Context, userID, id string) error {
	res, err := r.DB.ExecContext(ctx,
		`DELETE FROM categories WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return apperr.FromStore(fmt.Errorf("delete category: %w", err))
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return apperr.FromStore(fmt.Errorf("delete category: %w", err))
	}
	if affected == 0 {
		return apperr.New(apperr.RowNotFound, "Not Found")
	}
	return nil
}

// maxListSize caps unpaginated internal listings.
const maxListSize = 10000
