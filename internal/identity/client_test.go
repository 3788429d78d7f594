package identity

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestVerifyToken_Success(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		if r.URL.Path != "/auth/v1/user" {
			t.Errorf("path = %s; want /auth/v1/user", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok-123" {
			t.Errorf("Authorization = %q", got)
		}
		if got := r.Header.Get("apikey"); got != "anon-key" {
			t.Errorf("apikey = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"user-1","email":"a@b.c"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "anon-key", 5*time.Second)
	user, err := c.VerifyToken(context.Background(), "tok-123")
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if user.ID != "user-1" {
		t.Errorf("user.ID = %q; want user-1", user.ID)
	}
	if calls != 1 {
		t.Errorf("provider called %d times; want exactly 1", calls)
	}
}

func TestVerifyToken_Failures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
	}{
		{"rejected token", http.StatusUnauthorized, `{"msg":"invalid JWT"}`},
		{"empty principal", http.StatusOK, `{"id":"","email":""}`},
		{"garbage body", http.StatusOK, `not json`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := NewClient(srv.URL, "k", 5*time.Second)
			if _, err := c.VerifyToken(context.Background(), "tok"); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestSignIn(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/v1/token" || r.URL.Query().Get("grant_type") != "password" {
			t.Errorf("unexpected request %s %s", r.URL.Path, r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"jwt-abc","user":{"id":"user-9","email":"x@y.z"}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "k", 5*time.Second)
	session, err := c.SignIn(context.Background(), "x@y.z", "secret")
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	if session.AccessToken != "jwt-abc" || session.User.ID != "user-9" {
		t.Errorf("session = %+v", session)
	}
}

func TestSignIn_BadCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error_description":"Invalid login credentials"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "k", 5*time.Second)
	if _, err := c.SignIn(context.Background(), "x@y.z", "wrong"); err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestSignUp_NestedUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"user":{"id":"user-2","email":"n@e.w"}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "k", 5*time.Second)
	user, err := c.SignUp(context.Background(), "n@e.w", "secret")
	if err != nil {
		t.Fatalf("SignUp: %v", err)
	}
	if user.ID != "user-2" {
		t.Errorf("user.ID = %q; want user-2", user.ID)
	}
}
