package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/spendtrack/spendtrack/internal/apperr"
	"github.com/spendtrack/spendtrack/internal/models"
	"github.com/spendtrack/spendtrack/internal/validation"
)

// CategoryService defines the operations required by the category
// handlers.
type CategoryService interface {
	List(ctx context.Context, userID string, skip, limit int) ([]models.Category, error)
	Create(ctx context.Context, userID, name string, isExpense bool) (models.Category, error)
	Rename(ctx context.Context, userID, id, name string) (models.Category, error)
	Delete(ctx context.Context, userID, id string) error
}

// CategoryHandler handles /api/categories.
type CategoryHandler struct {
	Service CategoryService
	Log     *zap.Logger
}

// List handles GET /api/categories.
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		apperr.WriteError(w, h.Log, err)
		return
	}

	page, err := validation.ParsePagination(r.URL.Query())
	if err != nil {
		apperr.WriteError(w, h.Log, err)
		return
	}

	categories, err := h.Service.List(r.Context(), p.ID, page.Skip, page.Limit)
	if err != nil {
		apperr.WriteError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

// Create handles POST /api/categories.
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		apperr.WriteError(w, h.Log, err)
		return
	}

	var payload validation.CategoryCreate
	if err := decodeBody(r, &payload); err != nil {
		apperr.WriteError(w, h.Log, err)
		return
	}
	if err := payload.Validate(); err != nil {
		apperr.WriteError(w, h.Log, err)
		return
	}

	category, err := h.Service.Create(r.Context(), p.ID, payload.Name, payload.ExpenseFlag())
	if err != nil {
		apperr.WriteError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusCreated, category)
}

// Update handles PATCH /api/categories/{id}.
func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		apperr.WriteError(w, h.Log, err)
		return
	}

	id, err := validation.ID(chi.URLParam(r, "id"))
	if err != nil {
		apperr.WriteError(w, h.Log, err)
		return
	}

	var payload validation.NameUpdate
	if err := decodeBody(r, &payload); err != nil {
		apperr.WriteError(w, h.Log, err)
		return
	}
	if err := payload.Validate(); err != nil {
		apperr.WriteError(w, h.Log, err)
		return
	}

	category, err := h.Service.Rename(r.Context(), p.ID, id, *payload.Name)
	if err != nil {
		apperr.WriteError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, category)
}

// Delete handles DELETE /api/categories/{id}.
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		apperr.WriteError(w, h.Log, err)
		return
	}

	id, err := validation.ID(chi.URLParam(r, "id"))
	if err != nil {
		apperr.WriteError(w, h.Log, err)
		return
	}

	if err := h.Service.Delete(r.Context(), p.ID, id); err != nil {
		apperr.WriteError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
