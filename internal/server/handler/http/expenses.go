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

// ExpenseService defines the operations required by the expense handlers.
type ExpenseService interface {
	List(ctx context.Context, userID string, filter models.ExpenseFilter) ([]models.Expense, error)
	Get(ctx context.Context, userID, id string) (models.Expense, error)
	Create(ctx context.Context, userID string, payload *validation.ExpenseCreate) (models.Expense, error)
	Update(ctx context.Context, userID, id string, patch *validation.ExpenseUpdate) (models.Expense, error)
	Delete(ctx context.Context, userID, id string) error
}

// ExpenseHandler handles /api/expenses.
type ExpenseHandler struct {
	Service ExpenseService
	Log     *zap.Logger
}

// List handles GET /api/expenses with optional filters.
func (h *ExpenseHandler) List(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		apperr.WriteError(w, h.Log, err)
		return
	}

	q, err := validation.ParseExpensesQuery(r.URL.Query())
	if err != nil {
		apperr.WriteError(w, h.Log, err)
		return
	}

	expenses, err := h.Service.List(r.Context(), p.ID, models.ExpenseFilter{
		StartDate:       q.StartDate,
		EndDate:         q.EndDate,
		CategoryID:      q.CategoryID,
		PaymentMethodID: q.PaymentMethodID,
		Type:            q.Type,
		Skip:            q.Skip,
		Limit:           q.Limit,
	})
	if err != nil {
		apperr.WriteError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, expenses)
}

// ListByCategory handles GET /api/expenses/category/{categoryId} over a
// required date range.
func (h *ExpenseHandler) ListByCategory(w http.ResponseWriter, r *http.Request) {
	h.listByRelation(w, r, "categoryId", func(filter *models.ExpenseFilter, id string) {
		filter.CategoryID = id
	})
}

// ListByPaymentMethod handles GET /api/expenses/payment-method/{paymentMethodId}
// over a required date range.
func (h *ExpenseHandler) ListByPaymentMethod(w http.ResponseWriter, r *http.Request) {
	h.listByRelation(w, r, "paymentMethodId", func(filter *models.ExpenseFilter, id string) {
		filter.PaymentMethodID = id
	})
}

func (h *ExpenseHandler) listByRelation(w http.ResponseWriter, r *http.Request, param string, bind func(*models.ExpenseFilter, string)) {
	p, err := principal(r)
	if err != nil {
		apperr.WriteError(w, h.Log, err)
		return
	}

	id, err := validation.ID(chi.URLParam(r, param))
	if err != nil {
		apperr.WriteError(w, h.Log, err)
		return
	}

	q, err := validation.ParseDateRangeQuery(r.URL.Query())
	if err != nil {
		apperr.WriteError(w, h.Log, err)
		return
	}

	filter := models.ExpenseFilter{
		StartDate: q.StartDate,
		EndDate:   q.EndDate,
		Skip:      q.Skip,
		Limit:     q.Limit,
	}
	bind(&filter, id)

	expenses, err := h.Service.List(r.Context(), p.ID, filter)
	if err != nil {
		apperr.WriteError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, expenses)
}

// Get handles GET /api/expenses/{id}.
func (h *ExpenseHandler) Get(w http.ResponseWriter, r *http.Request) {
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

	expense, err := h.Service.Get(r.Context(), p.ID, id)
	if err != nil {
		apperr.WriteError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, expense)
}

// Create handles POST /api/expenses.
func (h *ExpenseHandler) Create(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		apperr.WriteError(w, h.Log, err)
		return
	}

	var payload validation.ExpenseCreate
	if err := decodeBody(r, &payload); err != nil {
		apperr.WriteError(w, h.Log, err)
		return
	}
	if err := payload.Validate(); err != nil {
		apperr.WriteError(w, h.Log, err)
		return
	}

	expense, err := h.Service.Create(r.Context(), p.ID, &payload)
	if err != nil {
		apperr.WriteError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusCreated, expense)
}

// Update handles PATCH /api/expenses/{id}.
func (h *ExpenseHandler) Update(w http.ResponseWriter, r *http.Request) {
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

	var patch validation.ExpenseUpdate
	if err := decodeBody(r, &patch); err != nil {
		apperr.WriteError(w, h.Log, err)
		return
	}
	if err := patch.Validate(); err != nil {
		apperr.WriteError(w, h.Log, err)
		return
	}

	expense, err := h.Service.Update(r.Context(), p.ID, id, &patch)
	if err != nil {
		apperr.WriteError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, expense)
}

// Delete handles DELETE /api/expenses/{id}.
func (h *ExpenseHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
