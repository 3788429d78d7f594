package service

import (
	"context"
	"time"

	"github.com/spendtrack/spendtrack/internal/analytics"
	"github.com/spendtrack/spendtrack/internal/apperr"
	"github.com/spendtrack/spendtrack/internal/validation"
)

// AnalyticsService feeds filtered expense rows into the aggregation
// engine. The store calls run sequentially; the aggregation itself is a
// pure single pass.
type AnalyticsService struct {
	expenses   ExpenseRepository
	categories CategoryRepository
	methods    PaymentMethodRepository
}

// NewAnalyticsService constructs an AnalyticsService.
func NewAnalyticsService(expenses ExpenseRepository, categories CategoryRepository, methods PaymentMethodRepository) *AnalyticsService {
	return &AnalyticsService{expenses: expenses, categories: categories, methods: methods}
}

// AverageSpend aggregates the user's expenses in the date range over the
// category dimension. Non-expense categories still appear, flagged, so the
// caller can filter client-side.
func (s *AnalyticsService) AverageSpend(ctx context.Context, userID string, start, end time.Time) ([]analytics.GroupSummary, error) {
	rows, err := s.expenses.ListForRange(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}
	categories, err := s.categories.ListAll(ctx, userID)
	if err != nil {
		return nil, err
	}
	return analytics.Aggregate(rows, analytics.CategoryDimension(categories)), nil
}

// Summary aggregates the user's expenses over the requested dimension.
// The period parameter has no implementation yet and is reported as such
// rather than silently ignored.
func (s *AnalyticsService) Summary(ctx context.Context, userID string, q validation.SummaryQuery) ([]analytics.GroupSummary, error) {
	if q.Period != "" {
		return nil, apperr.New(apperr.Unimplemented, "Not Implemented")
	}

	rows, err := s.expenses.ListForRange(ctx, userID, q.StartDate, q.EndDate)
	if err != nil {
		return nil, err
	}

	var dim analytics.Dimension
	switch q.GroupBy {
	case validation.GroupByCategory:
		categories, err := s.categories.ListAll(ctx, userID)
		if err != nil {
			return nil, err
		}
		dim = analytics.CategoryDimension(categories)
	case validation.GroupByPaymentMethod:
		methods, err := s.methods.ListAll(ctx, userID)
		if err != nil {
			return nil, err
		}
		dim = analytics.PaymentMethodDimension(methods)
	default:
		dim = analytics.TypeDimension()
	}

	return analytics.Aggregate(rows, dim), nil
}
