package service

import (
	"context"
	"time"

	"github.com/spendtrack/spendtrack/internal/apperr"
	"github.com/spendtrack/spendtrack/internal/models"
	"github.com/spendtrack/spendtrack/internal/validation"
)

// ExpenseRepository defines the persistence operations required by the
// expense service.
type ExpenseRepository interface {
	List(ctx context.Context, userID string, filter models.ExpenseFilter) ([]models.Expense, error)
	ListForRange(ctx context.Context, userID string, start, end time.Time) ([]models.Expense, error)
	GetByID(ctx context.Context, userID, id string) (models.Expense, error)
	Create(ctx context.Context, e models.Expense) (models.Expense, error)
	Update(ctx context.Context, e models.Expense) (models.Expense, error)
	Delete(ctx context.Context, userID, id string) error
}

// ExpenseService implements expense operations. Writes verify referenced
// rows before touching the store; the checks and the write run
// sequentially because the write depends on their outcome.
type ExpenseService struct {
	repo       ExpenseRepository
	categories CategoryRepository
	methods    PaymentMethodRepository
}

// NewExpenseService constructs an ExpenseService.
func NewExpenseService(repo ExpenseRepository, categories CategoryRepository, methods PaymentMethodRepository) *ExpenseService {
	return &ExpenseService{repo: repo, categories: categories, methods: methods}
}

// List returns the user's expenses matching the filter.
func (s *ExpenseService) List(ctx context.Context, userID string, filter models.ExpenseFilter) ([]models.Expense, error) {
	return s.repo.List(ctx, userID, filter)
}

// Get fetches one expense.
func (s *ExpenseService) Get(ctx context.Context, userID, id string) (models.Expense, error) {
	return s.repo.GetByID(ctx, userID, id)
}

// Create verifies both referenced rows belong to the user, then inserts.
// Both lookups filter by the requesting user explicitly rather than
// trusting store-side policy.
func (s *ExpenseService) Create(ctx context.Context, userID string, payload *validation.ExpenseCreate) (models.Expense, error) {
	if err := s.checkCategory(ctx, userID, payload.CategoryID); err != nil {
		return models.Expense{}, err
	}
	if err := s.checkPaymentMethod(ctx, userID, payload.PaymentMethodID); err != nil {
		return models.Expense{}, err
	}

	return s.repo.Create(ctx, models.Expense{
		UserID:          userID,
		Timestamp:       payload.ParsedTimestamp(),
		CategoryID:      payload.CategoryID,
		PaymentMethodID: payload.PaymentMethodID,
		Amount:          *payload.Amount,
		Description:     payload.Description,
		Notes:           payload.Notes,
		Type:            models.ExpenseType(payload.Type),
	})
}

// Update applies a partial update. References are re-verified only when
// the patch changes them.
func (s *ExpenseService) Update(ctx context.Context, userID, id string, patch *validation.ExpenseUpdate) (models.Expense, error) {
	existing, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return models.Expense{}, err
	}

	if patch.CategoryID != nil && *patch.CategoryID != existing.CategoryID {
		if err := s.checkCategory(ctx, userID, *patch.CategoryID); err != nil {
			return models.Expense{}, err
		}
		existing.CategoryID = *patch.CategoryID
	}
	if patch.PaymentMethodID != nil && *patch.PaymentMethodID != existing.PaymentMethodID {
		if err := s.checkPaymentMethod(ctx, userID, *patch.PaymentMethodID); err != nil {
			return models.Expense{}, err
		}
		existing.PaymentMethodID = *patch.PaymentMethodID
	}
	if patch.Timestamp != nil {
		existing.Timestamp = patch.ParsedTimestamp()
	}
	if patch.Amount != nil {
		existing.Amount = *patch.Amount
	}
	if patch.Description != nil {
		existing.Description = *patch.Description
	}
	if patch.Notes != nil {
		existing.Notes = *patch.Notes
	}
	if patch.Type != nil {
		existing.Type = models.ExpenseType(*patch.Type)
	}

	return s.repo.Update(ctx, existing)
}

// Delete removes the expense.
func (s *ExpenseService) Delete(ctx context.Context, userID, id string) error {
	return s.repo.Delete(ctx, userID, id)
}

func (s *ExpenseService) checkCategory(ctx context.Context, userID, id string) error {
	exists, err := s.categories.Exists(ctx, userID, id)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.New(apperr.ReferenceNotFound, "Category not found for this user")
	}
	return nil
}

func (s *ExpenseService) checkPaymentMethod(ctx context.Context, userID, id string) error {
	exists, err := s.methods.Exists(ctx, userID, id)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.New(apperr.ReferenceNotFound, "Payment method not found for this user")
	}
	return nil
}
