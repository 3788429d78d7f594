// Package service provides the business logic between the HTTP handlers
// and the repositories.
package service

import (
	"context"

	"github.com/spendtrack/spendtrack/internal/models"
)

// CategoryRepository defines the persistence operations required by the
// category service.
type CategoryRepository interface {
	List(ctx context.Context, userID string, skip, limit int) ([]models.Category, error)
	ListAll(ctx context.Context, userID string) ([]models.Category, error)
	Exists(ctx context.Context, userID, id string) (bool, error)
	Create(ctx context.Context, userID, name string, isExpense bool) (models.Category, error)
	UpdateName(ctx context.Context, userID, id, name string) (models.Category, error)
	Delete(ctx context.Context, userID, id string) error
}

// CategoryService implements category operations by delegating to a
// CategoryRepository.
type CategoryService struct {
	repo CategoryRepository
}

// NewCategoryService constructs a CategoryService.
func NewCategoryService(repo CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

// List returns the user's categories, paginated.
func (s *CategoryService) List(ctx context.Context, userID string, skip, limit int) ([]models.Category, error) {
	return s.repo.List(ctx, userID, skip, limit)
}

// Create adds a category for the user.
func (s *CategoryService) Create(ctx context.Context, userID, name string, isExpense bool) (models.Category, error) {
	return s.repo.Create(ctx, userID, name, isExpense)
}

// Rename updates the category name.
func (s *CategoryService) Rename(ctx context.Context, userID, id, name string) (models.Category, error) {
	return s.repo.UpdateName(ctx, userID, id, name)
}

// Delete removes the category.
func (s *CategoryService) Delete(ctx context.Context, userID, id string) error {
	return s.repo.Delete(ctx, userID, id)
}
