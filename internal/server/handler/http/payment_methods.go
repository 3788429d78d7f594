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

// PaymentMethodService defines the operations required by the
// payment-method handlers.
type PaymentMethodService interface {
	List(ctx context.Context, userID string, skip, limit int) ([]models.PaymentMethod, error)
	Create(ctx context.Context, userID, name string) (models.PaymentMethod, error)
	Rename(ctx context.Context, userID, id, name string) (models.PaymentMethod, error)
	Delete(ctx context.Context, userID, id string) error
}

// PaymentMethodHandler handles /api/payment_methods.
type PaymentMethodHandler struct {
	Service PaymentMethodService
	Log     *zap.Logger
}

// List handles GET /api/payment_methods.
func (h *PaymentMethodHandler) List(w http.ResponseWriter, r *http.Request) {
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

	methods, err := h.Service.List(r.Context(), p.ID, page.Skip, page.Limit)
	if err != nil {
		apperr.WriteError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, methods)
}

// Create handles POST /api/payment_methods.
func (h *PaymentMethodHandler) Create(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		apperr.WriteError(w, h.Log, err)
		return
	}

	var payload validation.PaymentMethodCreate
	if err := decodeBody(r, &payload); err != nil {
		apperr.WriteError(w, h.Log, err)
		return
	}
	if err := payload.Validate(); err != nil {
		apperr.WriteError(w, h.Log, err)
		return
	}

	method, err := h.Service.Create(r.Context(), p.ID, payload.Name)
	if err != nil {
		apperr.WriteError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusCreated, method)
}

// Update handles PATCH /api/payment_methods/{id}.
func (h *PaymentMethodHandler) Update(w http.ResponseWriter, r *http.Request) {
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

	method, err := h.Service.Rename(r.Context(), p.ID, id, *payload.Name)
	if err != nil {
		apperr.WriteError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, method)
}

// Delete handles DELETE /api/payment_methods/{id}. Deleting a method
// still referenced by an expense yields 409 via the taxonomy, not 400/404.
func (h *PaymentMethodHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
