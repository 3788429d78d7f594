package http

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/spendtrack/spendtrack/internal/analytics"
	"github.com/spendtrack/spendtrack/internal/apperr"
	"github.com/spendtrack/spendtrack/internal/validation"
)

// AnalyticsService defines the operations required by the analytics
// handlers.
type AnalyticsService interface {
	AverageSpend(ctx context.Context, userID string, start, end time.Time) ([]analytics.GroupSummary, error)
	Summary(ctx context.Context, userID string, q validation.SummaryQuery) ([]analytics.GroupSummary, error)
}

// AnalyticsHandler handles /api/analytics.
type AnalyticsHandler struct {
	Service AnalyticsService
	Log     *zap.Logger
}

// averageSpendEntry is the wire shape of one average-spend group.
type averageSpendEntry struct {
	CategoryID    string  `json:"categoryId"`
	CategoryName  string  `json:"categoryName"`
	TotalAmount   float64 `json:"totalAmount"`
	ExpenseCount  int     `json:"expenseCount"`
	AverageAmount float64 `json:"averageAmount"`
	IsExpense     bool    `json:"is_expense"`
}

// AverageSpend handles GET /api/analytics/average-spend.
func (h *AnalyticsHandler) AverageSpend(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		apperr.WriteError(w, h.Log, err)
		return
	}

	q, err := validation.ParseAverageSpendQuery(r.URL.Query())
	if err != nil {
		apperr.WriteError(w, h.Log, err)
		return
	}

	groups, err := h.Service.AverageSpend(r.Context(), p.ID, q.StartDate, q.EndDate)
	if err != nil {
		apperr.WriteError(w, h.Log, err)
		return
	}

	out := make([]averageSpendEntry, 0, len(groups))
	for _, g := range groups {
		out = append(out, averageSpendEntry{
			CategoryID:    g.ID,
			CategoryName:  g.Label,
			TotalAmount:   g.Total,
			ExpenseCount:  g.Count,
			AverageAmount: g.Average,
			IsExpense:     g.Flag,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// Summary handles GET /api/analytics/summary.
func (h *AnalyticsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		apperr.WriteError(w, h.Log, err)
		return
	}

	q, err := validation.ParseSummaryQuery(r.URL.Query())
	if err != nil {
		apperr.WriteError(w, h.Log, err)
		return
	}

	groups, err := h.Service.Summary(r.Context(), p.ID, q)
	if err != nil {
		apperr.WriteError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, groups)
}
