package service

import (
	"context"

	"github.com/spendtrack/spendtrack/internal/models"
)

// PaymentMethodRepository defines the persistence operations required by
// the payment-method service.
type PaymentMethodRepository interface {
	List(ctx context.Context, userID string, skip, limit int) ([]models.PaymentMethod, error)
	ListAll(ctx context.Context, userID string) ([]models.PaymentMethod, error)
	Exists(ctx context.Context, userID, id string) (bool, error)
	Create(ctx context.Context, userID, name string) (models.PaymentMethod, error)
	UpdateName(ctx context.Context, userID, id, name string) (models.PaymentMethod, error)
	Delete(ctx context.Context, userID, id string) error
}

// PaymentMethodService implements payment-method operations by delegating
// to a PaymentMethodRepository.
type PaymentMethodService struct {
	repo PaymentMethodRepository
}

// NewPaymentMethodService constructs a PaymentMethodService.
func NewPaymentMethodService(repo PaymentMethodRepository) *PaymentMethodService {
	return &PaymentMethodService{repo: repo}
}

// List returns the user's payment methods, paginated.
func (s *PaymentMethodService) List(ctx context.Context, userID string, skip, limit int) ([]models.PaymentMethod, error) {
	return s.repo.List(ctx, userID, skip, limit)
}

// Create adds a payment method for the user.
func (s *PaymentMethodService) Create(ctx context.Context, userID, name string) (models.PaymentMethod, error) {
	return s.repo.Create(ctx, userID, name)
}

// Rename updates the payment method name.
func (s *PaymentMethodService) Rename(ctx context.Context, userID, id, name string) (models.PaymentMethod, error) {
	return s.repo.UpdateName(ctx, userID, id, name)
}

// Delete removes the payment method. A method still referenced by an
// expense fails with a conflict raised by the repository.
func (s *PaymentMethodService) Delete(ctx context.Context, userID, id string) error {
	return s.repo.Delete(ctx, userID, id)
}
