package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/spendtrack/spendtrack/internal/analytics"
	"github.com/spendtrack/spendtrack/internal/apperr"
	"github.com/spendtrack/spendtrack/internal/validation"
)

type fakeAnalyticsService struct {
	groups   []analytics.GroupSummary
	err      error
	gotStart time.Time
	gotEnd   time.Time
	gotQuery validation.SummaryQuery
}

func (f *fakeAnalyticsService) AverageSpend(ctx context.Context, userID string, start, end time.Time) ([]analytics.GroupSummary, error) {
	f.gotStart, f.gotEnd = start, end
	return f.groups, f.err
}

func (f *fakeAnalyticsService) Summary(ctx context.Context, userID string, q validation.SummaryQuery) ([]analytics.GroupSummary, error) {
	f.gotQuery = q
	return f.groups, f.err
}

func TestAnalyticsHandler_AverageSpend(t *testing.T) {
	svc := &fakeAnalyticsService{
		groups: []analytics.GroupSummary{
			{ID: "c1", Label: "Food", Total: 150, Count: 2, Average: 75, Flag: true},
			{ID: "c2", Label: "Transport", Total: 30, Count: 1, Average: 30, Flag: true},
		},
	}
	h := &AnalyticsHandler{Service: svc, Log: zap.NewNop()}

	url := "/api/analytics/average-spend?startDate=2024-01-01T00:00:00Z&endDate=2024-02-01T00:00:00Z"
	req := asUser(httptest.NewRequest("GET", url, nil), "user-1")
	rec := httptest.NewRecorder()
	h.AverageSpend(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d; want 200; body %s", rec.Code, rec.Body)
	}
	if svc.gotStart.IsZero() || !svc.gotEnd.After(svc.gotStart) {
		t.Errorf("range passed to service: %v .. %v", svc.gotStart, svc.gotEnd)
	}

	var body []map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(body) != 2 {
		t.Fatalf("groups = %d; want 2", len(body))
	}
	first := body[0]
	for _, key := range []string{"categoryId", "categoryName", "totalAmount", "expenseCount", "averageAmount", "is_expense"} {
		if _, ok := first[key]; !ok {
			t.Errorf("field %q missing from wire shape: %v", key, first)
		}
	}
	if first["categoryName"] != "Food" || first["averageAmount"] != float64(75) {
		t.Errorf("first group = %v", first)
	}
}

func TestAnalyticsHandler_AverageSpend_MissingDates(t *testing.T) {
	svc := &fakeAnalyticsService{}
	h := &AnalyticsHandler{Service: svc, Log: zap.NewNop()}

	req := asUser(httptest.NewRequest("GET", "/api/analytics/average-spend", nil), "user-1")
	rec := httptest.NewRecorder()
	h.AverageSpend(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d; want 400", rec.Code)
	}
	var env struct {
		Error   string              `json:"error"`
		Details map[string][]string `json:"details"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if len(env.Details["startDate"]) == 0 || len(env.Details["endDate"]) == 0 {
		t.Errorf("both date fields must be reported: %+v", env.Details)
	}
}

func TestAnalyticsHandler_Summary_GroupBy(t *testing.T) {
	svc := &fakeAnalyticsService{groups: []analytics.GroupSummary{}}
	h := &AnalyticsHandler{Service: svc, Log: zap.NewNop()}

	url := "/api/analytics/summary?startDate=2024-01-01T00:00:00Z&endDate=2024-02-01T00:00:00Z&groupBy=paymentMethod"
	req := asUser(httptest.NewRequest("GET", url, nil), "user-1")
	rec := httptest.NewRecorder()
	h.Summary(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d; want 200; body %s", rec.Code, rec.Body)
	}
	if svc.gotQuery.GroupBy != validation.GroupByPaymentMethod {
		t.Errorf("groupBy = %q", svc.gotQuery.GroupBy)
	}
}

func TestAnalyticsHandler_Summary_PeriodUnimplemented(t *testing.T) {
	svc := &fakeAnalyticsService{err: apperr.New(apperr.Unimplemented, "Not Implemented")}
	h := &AnalyticsHandler{Service: svc, Log: zap.NewNop()}

	url := "/api/analytics/summary?startDate=2024-01-01T00:00:00Z&endDate=2024-02-01T00:00:00Z&groupBy=category&period=monthly"
	req := asUser(httptest.NewRequest("GET", url, nil), "user-1")
	rec := httptest.NewRecorder()
	h.Summary(rec, req)

	if rec.Code != http.StatusNotImplemented {
		t.Fatalf("status = %d; want 501", rec.Code)
	}
}
