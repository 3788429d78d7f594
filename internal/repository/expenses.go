package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spendtrack/spendtrack/internal/apperr"
	"github.com/spendtrack/spendtrack/internal/models"
)

// PostgresExpenseRepository implements expense persistence.
type PostgresExpenseRepository struct {
	// DB is the database handle for executing queries and transactions.
	DB *sql.DB
}

// NewPostgresExpenseRepository creates a repository over the given
// connection.
func NewPostgresExpenseRepository(db *sql.DB) *PostgresExpenseRepository {
	return &PostgresExpenseRepository{DB: db}
}

const expenseColumns = `id, user_id, ts, category_id, payment_method_id, amount, description, notes, type, created_at, updated_at`

// scanExpense reads one expense row.
func scanExpense(row interface{ Scan(...any) error }) (models.Expense, error) {
	var e models.Expense
	var description, notes sql.NullString
	err := row.Scan(&e.ID, &e.UserID, &e.Timestamp, &e.CategoryID, &e.PaymentMethodID,
		&e.Amount, &description, &notes, &e.Type, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return models.Expense{}, err
	}
	e.Description = description.String
	e.Notes = notes.String
	return e, nil
}

// List returns the user's expenses matching the filter, newest first.
func (r *PostgresExpenseRepository) List(ctx context.Context, userID string, filter models.ExpenseFilter) ([]models.Expense, error) {
	query := strings.Builder{}
	query.WriteString(`SELECT ` + expenseColumns + ` FROM expenses WHERE user_id = $1`)
	args := []any{userID}

	appendCond := func(cond string, value any) {
		args = append(args, value)
		query.WriteString(" AND " + cond + " $" + strconv.Itoa(len(args)))
	}

	if !filter.StartDate.IsZero() {
		appendCond("ts >=", filter.StartDate)
	}
	if !filter.EndDate.IsZero() {
		appendCond("ts <=", filter.EndDate)
	}
	if filter.CategoryID != "" {
		appendCond("category_id =", filter.CategoryID)
	}
	if filter.PaymentMethodID != "" {
		appendCond("payment_method_id =", filter.PaymentMethodID)
	}
	if filter.Type != "" {
		appendCond("type =", filter.Type)
	}

	query.WriteString(" ORDER BY ts DESC")
	args = append(args, filter.Limit)
	query.WriteString(" LIMIT $" + strconv.Itoa(len(args)))
	args = append(args, filter.Skip)
	query.WriteString(" OFFSET $" + strconv.Itoa(len(args)))

	rows, err := r.DB.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, apperr.FromStore(fmt.Errorf("list expenses: %w", err))
	}
	defer rows.Close()

	expenses := []models.Expense{}
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, apperr.FromStore(fmt.Errorf("scan expense: %w", err))
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.FromStore(fmt.Errorf("list expenses: %w", err))
	}
	return expenses, nil
}

// ListForRange returns every expense of the user inside the inclusive date
// range, in a deterministic order for aggregation.
func (r *PostgresExpenseRepository) ListForRange(ctx context.Context, userID string, start, end time.Time) ([]models.Expense, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+expenseColumns+`
		  FROM expenses
		 WHERE user_id = $1 AND ts >= $2 AND ts <= $3
		 ORDER BY ts ASC, id ASC
	`, userID, start, end)
	if err != nil {
		return nil, apperr.FromStore(fmt.Errorf("list expenses for range: %w", err))
	}
	defer rows.Close()

	expenses := []models.Expense{}
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, apperr.FromStore(fmt.Errorf("scan expense: %w", err))
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.FromStore(fmt.Errorf("list expenses for range: %w", err))
	}
	return expenses, nil
}

// GetByID fetches one expense of the user. A missing row maps to
// RowNotFound.
func (r *PostgresExpenseRepository) GetByID(ctx context.Context, userID, id string) (models.Expense, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT `+expenseColumns+` FROM expenses WHERE id = $1 AND user_id = $2
	`, id, userID)
	e, err := scanExpense(row)
	if err != nil {
		return models.Expense{}, apperr.FromStore(fmt.Errorf("get expense: %w", err))
	}
	return e, nil
}

// Create inserts an expense and returns the stored row. Foreign-key
// violations on category or payment method surface through FromStore.
func (r *PostgresExpenseRepository) Create(ctx context.Context, e models.Expense) (models.Expense, error) {
	e.ID = uuid.NewString()
	now := time.Now().UTC()
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO expenses (id, user_id, ts, category_id, payment_method_id, amount, description, notes, type, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)
		RETURNING created_at, updated_at
	`, e.ID, e.UserID, e.Timestamp, e.CategoryID, e.PaymentMethodID,
		e.Amount, nullable(e.Description), nullable(e.Notes), e.Type, now).
		Scan(&e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return models.Expense{}, apperr.FromStore(fmt.Errorf("create expense: %w", err))
	}
	return e, nil
}

// Update rewrites the mutable columns of an expense and returns the stored
// row. The caller supplies the fully merged row.
func (r *PostgresExpenseRepository) Update(ctx context.Context, e models.Expense) (models.Expense, error) {
	row := r.DB.QueryRowContext(ctx, `
		UPDATE expenses
		   SET ts = $3, category_id = $4, payment_method_id = $5, amount = $6,
		       description = $7, notes = $8, type = $9, updated_at = $10
		 WHERE id = $1 AND user_id = $2
		RETURNING `+expenseColumns+`
	`, e.ID, e.UserID, e.Timestamp, e.CategoryID, e.PaymentMethodID,
		e.Amount, nullable(e.Description), nullable(e.Notes), e.Type, time.Now().UTC())
	updated, err := scanExpense(row)
	if err != nil {
		return models.Expense{}, apperr.FromStore(fmt.Errorf("update expense: %w", err))
	}
	return updated, nil
}

// Delete removes the expense. A missing row maps to RowNotFound.
func (r *PostgresExpenseRepository) Delete(ctx context.Context, userID, id string) error {
	res, err := r.DB.ExecContext(ctx,
		`DELETE FROM expenses WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return apperr.FromStore(fmt.Errorf("delete expense: %w", err))
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return apperr.FromStore(fmt.Errorf("delete expense: %w", err))
	}
	if affected == 0 {
		return apperr.New(apperr.RowNotFound, "Not Found")
	}
	return nil
}

// nullable maps the empty string to NULL.
func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
