package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/spendtrack/spendtrack/internal/apperr"
	"github.com/spendtrack/spendtrack/internal/middleware"
	"github.com/spendtrack/spendtrack/internal/models"
)

// fakeCategoryService implements CategoryService for testing.
type fakeCategoryService struct {
	listReturn   []models.Category
	createReturn models.Category
	err          error
	gotUserID    string
	gotSkip      int
	gotLimit     int
}

func (f *fakeCategoryService) List(ctx context.Context, userID string, skip, limit int) ([]models.Category, error) {
	f.gotUserID, f.gotSkip, f.gotLimit = userID, skip, limit
	return f.listReturn, f.err
}
func (f *fakeCategoryService) Create(ctx context.Context, userID, name string, isExpense bool) (models.Category, error) {
	f.gotUserID = userID
	return f.createReturn, f.err
}
func (f *fakeCategoryService) Rename(ctx context.Context, userID, id, name string) (models.Category, error) {
	f.gotUserID = userID
	return f.createReturn, f.err
}
func (f *fakeCategoryService) Delete(ctx context.Context, userID, id string) error {
	f.gotUserID = userID
	return f.err
}

// asUser attaches a resolved principal the way the gatekeeper does.
func asUser(req *http.Request, userID string) *http.Request {
	ctx := middleware.WithPrincipal(req.Context(), models.Principal{ID: userID, ResolvedFrom: "cookie"})
	return req.WithContext(ctx)
}

func TestCategoryHandler_List(t *testing.T) {
	svc := &fakeCategoryService{listReturn: []models.Category{{ID: "c1", Name: "Food"}}}
	h := &CategoryHandler{Service: svc, Log: zap.NewNop()}

	req := asUser(httptest.NewRequest("GET", "/api/categories?skip=5&limit=20", nil), "user-1")
	rec := httptest.NewRecorder()
	h.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d; want 200", rec.Code)
	}
	if svc.gotUserID != "user-1" || svc.gotSkip != 5 || svc.gotLimit != 20 {
		t.Errorf("service called with user=%q skip=%d limit=%d", svc.gotUserID, svc.gotSkip, svc.gotLimit)
	}

	var body []models.Category
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(body) != 1 || body[0].Name != "Food" {
		t.Errorf("body = %+v", body)
	}
}

func TestCategoryHandler_List_LimitTooLarge(t *testing.T) {
	svc := &fakeCategoryService{}
	h := &CategoryHandler{Service: svc, Log: zap.NewNop()}

	req := asUser(httptest.NewRequest("GET", "/api/categories?limit=10000", nil), "user-1")
	rec := httptest.NewRecorder()
	h.List(rec, req)

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
	if len(env.Details["limit"]) == 0 {
		t.Errorf("details.limit missing: %+v", env)
	}
}

func TestCategoryHandler_List_EmptyLimitDefaults(t *testing.T) {
	svc := &fakeCategoryService{listReturn: []models.Category{}}
	h := &CategoryHandler{Service: svc, Log: zap.NewNop()}

	req := asUser(httptest.NewRequest("GET", "/api/categories?limit=", nil), "user-1")
	rec := httptest.NewRecorder()
	h.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d; want 200", rec.Code)
	}
	if svc.gotLimit != 100 {
		t.Errorf("limit = %d; want default 100", svc.gotLimit)
	}
}

func TestCategoryHandler_Create(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		serviceErr   error
		expectedCode int
	}{
		{
			name:         "created",
			body:         `{"name":"Food"}`,
			expectedCode: http.StatusCreated,
		},
		{
			name:         "invalid JSON",
			body:         `not a json`,
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "empty name",
			body:         `{"name":""}`,
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "duplicate name",
			body:         `{"name":"Food"}`,
			serviceErr:   apperr.New(apperr.UniqueConflict, "conflict: resource already exists"),
			expectedCode: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeCategoryService{
				createReturn: models.Category{ID: "c1", Name: "Food", IsExpense: true},
				err:          tt.serviceErr,
			}
			h := &CategoryHandler{Service: svc, Log: zap.NewNop()}

			req := asUser(httptest.NewRequest("POST", "/api/categories", bytes.NewBufferString(tt.body)), "user-1")
			rec := httptest.NewRecorder()
			h.Create(rec, req)

			if rec.Code != tt.expectedCode {
				t.Fatalf("status = %d; want %d", rec.Code, tt.expectedCode)
			}
		})
	}
}

func TestCategoryHandler_NoPrincipal(t *testing.T) {
	h := &CategoryHandler{Service: &fakeCategoryService{}, Log: zap.NewNop()}

	req := httptest.NewRequest("GET", "/api/categories", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d; want 401", rec.Code)
	}
}
