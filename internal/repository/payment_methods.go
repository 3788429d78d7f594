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

// PostgresPaymentMethodRepository implements payment-method persistence.
type PostgresPaymentMethodRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresPaymentMethodRepository creates a repository over the given
// connection.
func NewPostgresPaymentMethodRepository(db *sql.DB) *PostgresPaymentMethodRepository {
	return &PostgresPaymentMethodRepository{DB: db}
}

// List returns the user's payment methods ordered by creation time.
func (r *PostgresPaymentMethodRepository) List(ctx context.Context, userID string, skip, limit int) ([]models.PaymentMethod, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, user_id, name, created_at, updated_at
		  FROM payment_methods
		 WHERE user_id = $1
		 ORDER BY created_at ASC
		 LIMIT $2 OFFSET $3
	`, userID, limit, skip)
	if err != nil {
		return nil, apperr.FromStore(fmt.Errorf("list payment methods: %w", err))
	}
	defer rows.Close()

	methods := []models.PaymentMethod{}
	for rows.Next() {
		var m models.PaymentMethod
		if err := rows.Scan(&m.ID, &m.UserID, &m.Name, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, apperr.FromStore(fmt.Errorf("scan payment method: %w", err))
		}
		methods = append(methods, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.FromStore(fmt.Errorf("list payment methods: %w", err))
	}
	return methods, nil
}

// ListAll returns every payment method of the user.
func (r *PostgresPaymentMethodRepository) ListAll(ctx context.Context, userID string) ([]models.PaymentMethod, error) {
	return r.List(ctx, userID, 0, maxListSize)
}

// Exists reports whether the payment method belongs to the user.
func (r *PostgresPaymentMethodRepository) Exists(ctx context.Context, userID, id string) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM payment_methods WHERE id = $1 AND user_id = $2)`,
		id, userID,
	).Scan(&exists)
	if err != nil {
		return false, apperr.FromStore(fmt.Errorf("payment method exists: %w", err))
	}
	return exists, nil
}

// Create inserts a payment method and returns the stored row.
func (r *PostgresPaymentMethodRepository) Create(ctx context.Context, userID, name string) (models.PaymentMethod, error) {
	m := models.PaymentMethod{
		ID:     uuid.NewString(),
		UserID: userID,
		Name:   name,
	}
	now := time.Now().UTC()
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO payment_methods (id, user_id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $4)
		RETURNING created_at, updated_at
	`, m.ID, m.UserID, m.Name, now).Scan(&m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return models.PaymentMethod{}, apperr.FromStore(fmt.Errorf("create payment method: %w", err))
	}
	return m, nil
}

// UpdateName renames the payment method. A missing row maps to RowNotFound.
func (r *PostgresPaymentMethodRepository) UpdateName(ctx context.Context, userID, id, name string) (models.PaymentMethod, error) {
	var m models.PaymentMethod
	err := r.DB.QueryRowContext(ctx, `
		UPDATE payment_methods
		   SET name = $3, updated_at = $4
		 WHERE id = $1 AND user_id = $2
		RETURNING id, user_id, name, created_at, updated_at
	`, id, userID, name, time.Now().UTC()).
		Scan(&m.ID, &m.UserID, &m.Name, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return models.PaymentMethod{}, apperr.FromStore(fmt.Errorf("update payment method: %w", err))
	}
	return m, nil
}

// Delete removes the payment method. Deleting one still referenced by an
// expense trips the foreign-key constraint, which FromStore maps to
// ReferenceConflict.
func (r *PostgresPaymentMethodRepository) Delete(ctx context.Context, userID, id string) error {
	res, err := r.DB.ExecContext(ctx,
		`DELETE FROM payment_methods WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return apperr.FromStore(fmt.Errorf("delete payment method: %w", err))
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return apperr.FromStore(fmt.Errorf("delete payment method: %w", err))
	}
	if affected == 0 {
		return apperr.New(apperr.RowNotFound, "Not Found")
	}
	return nil
}
