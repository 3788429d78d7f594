package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"go.uber.org/zap"

	"github.com/spendtrack/spendtrack/internal/auth"
	"github.com/spendtrack/spendtrack/internal/identity"
)

type fakeIdentityService struct {
	signUpFunc func(ctx context.Context, email, password string) (identity.User, error)
	signInFunc func(ctx context.Context, email, password string) (identity.Session, error)
}

func (f *fakeIdentityService) SignUp(ctx context.Context, email, password string) (identity.User, error) {
	return f.signUpFunc(ctx, email, password)
}

func (f *fakeIdentityService) SignIn(ctx context.Context, email, password string) (identity.Session, error) {
	return f.signInFunc(ctx, email, password)
}

var hexToken = regexp.MustCompile(`^[0-9a-f]{64}$`)

func findCookie(t *testing.T, res *http.Response, name string) *http.Cookie {
	t.Helper()
	for _, c := range res.Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestAuthHandler_Login(t *testing.T) {
	svc := &fakeIdentityService{
		signInFunc: func(ctx context.Context, email, password string) (identity.Session, error) {
			return identity.Session{AccessToken: "jwt-token", User: identity.User{ID: "u1", Email: email}}, nil
		},
	}
	h := &AuthHandler{Identity: svc, Log: zap.NewNop()}

	body := bytes.NewBufferString(`{"email":"a@b.c","password":"secret"}`)
	req := httptest.NewRequest("POST", "/api/auth/login", body)
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d; want 200", rec.Code)
	}

	res := rec.Result()
	authCookie := findCookie(t, res, auth.AuthCookieName)
	if authCookie == nil {
		t.Fatal("auth cookie not set")
	}
	if authCookie.Value != "jwt-token" {
		t.Errorf("auth cookie value = %q", authCookie.Value)
	}
	if !authCookie.HttpOnly {
		t.Error("auth cookie must be HttpOnly")
	}

	csrfCookie := findCookie(t, res, auth.CsrfCookieName)
	if csrfCookie == nil {
		t.Fatal("csrf cookie not set")
	}
	if csrfCookie.HttpOnly {
		t.Error("csrf cookie must be readable by the client")
	}
	if !hexToken.MatchString(csrfCookie.Value) {
		t.Errorf("csrf cookie value = %q; want 64 hex chars", csrfCookie.Value)
	}

	var payload struct {
		Success   bool   `json:"success"`
		CsrfToken string `json:"csrfToken"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if !payload.Success {
		t.Error("success = false")
	}
	if payload.CsrfToken != csrfCookie.Value {
		t.Error("body csrfToken must match the cookie value")
	}
}

func TestAuthHandler_Login_BadCredentials(t *testing.T) {
	svc := &fakeIdentityService{
		signInFunc: func(ctx context.Context, email, password string) (identity.Session, error) {
			return identity.Session{}, errors.New("Invalid login credentials")
		},
	}
	h := &AuthHandler{Identity: svc, Log: zap.NewNop()}

	body := bytes.NewBufferString(`{"email":"a@b.c","password":"wrong"}`)
	req := httptest.NewRequest("POST", "/api/auth/login", body)
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d; want 401", rec.Code)
	}
	if c := findCookie(t, rec.Result(), auth.AuthCookieName); c != nil {
		t.Error("auth cookie must not be set on failed login")
	}
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	h := &AuthHandler{Identity: &fakeIdentityService{}, Log: zap.NewNop()}

	body := bytes.NewBufferString(`{"email":"a@b.c"}`)
	req := httptest.NewRequest("POST", "/api/auth/login", body)
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d; want 400", rec.Code)
	}
}

func TestAuthHandler_Signup(t *testing.T) {
	svc := &fakeIdentityService{
		signUpFunc: func(ctx context.Context, email, password string) (identity.User, error) {
			return identity.User{ID: "u-new", Email: email}, nil
		},
	}
	h := &AuthHandler{Identity: svc, Log: zap.NewNop()}

	body := bytes.NewBufferString(`{"email":"new@b.c","password":"secret"}`)
	req := httptest.NewRequest("POST", "/api/auth/signup", body)
	rec := httptest.NewRecorder()
	h.Signup(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d; want 201", rec.Code)
	}
	if c := findCookie(t, rec.Result(), auth.CsrfCookieName); c == nil {
		t.Error("signup must issue a csrf cookie")
	}

	var payload struct {
		User      identity.User `json:"user"`
		CsrfToken string        `json:"csrfToken"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if payload.User.ID != "u-new" {
		t.Errorf("user.id = %q", payload.User.ID)
	}
	if !hexToken.MatchString(payload.CsrfToken) {
		t.Errorf("csrfToken = %q; want 64 hex chars", payload.CsrfToken)
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	h := &AuthHandler{Identity: &fakeIdentityService{}, Log: zap.NewNop()}

	req := httptest.NewRequest("POST", "/api/auth/logout", nil)
	rec := httptest.NewRecorder()
	h.Logout(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d; want 200", rec.Code)
	}
	for _, name := range []string{auth.AuthCookieName, auth.CsrfCookieName} {
		c := findCookie(t, rec.Result(), name)
		if c == nil {
			t.Fatalf("cookie %q not cleared", name)
		}
		if c.MaxAge >= 0 {
			t.Errorf("cookie %q MaxAge = %d; want negative", name, c.MaxAge)
		}
	}
}
