package http

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/spendtrack/spendtrack/internal/apperr"
	"github.com/spendtrack/spendtrack/internal/auth"
	"github.com/spendtrack/spendtrack/internal/identity"
)

// IdentityService defines the identity-provider operations required by the
// auth handlers.
type IdentityService interface {
	// SignUp registers a new account.
	SignUp(ctx context.Context, email, password string) (identity.User, error)
	// SignIn performs a password grant and returns the issued session.
	SignIn(ctx context.Context, email, password string) (identity.Session, error)
}

// AuthHandler handles signup, login and logout. These routes are exempt
// from the gatekeeper; login and signup are where CSRF tokens are issued.
type AuthHandler struct {
	Identity IdentityService
	Log      *zap.Logger
}

// credentialsRequest is the JSON payload for signup and login.
type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) readCredentials(r *http.Request) (credentialsRequest, error) {
	var req credentialsRequest
	if err := decodeBody(r, &req); err != nil {
		return req, err
	}
	if req.Email == "" || req.Password == "" {
		return req, apperr.New(apperr.MalformedBody, "Email and password are required.")
	}
	return req, nil
}

// Signup handles POST /api/auth/signup. On success it returns the new
// account together with a fresh CSRF token, also set as a cookie.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	req, err := h.readCredentials(r)
	if err != nil {
		apperr.WriteError(w, h.Log, err)
		return
	}

	user, err := h.Identity.SignUp(r.Context(), req.Email, req.Password)
	if err != nil {
		apperr.WriteError(w, h.Log, apperr.Wrap(apperr.MalformedBody, err.Error(), err))
		return
	}

	csrfToken, err := auth.GenerateCsrfToken()
	if err != nil {
		apperr.WriteError(w, h.Log, err)
		return
	}
	auth.SetCsrfCookie(w, csrfToken)

	writeJSON(w, http.StatusCreated, map[string]any{
		"message":   "Signup successful. Check your email for confirmation (if enabled).",
		"user":      user,
		"csrfToken": csrfToken,
	})
}

// Login handles POST /api/auth/login. On success it sets the session
// cookie (7 days) and a fresh CSRF cookie (1 day), returning the CSRF
// token in the body so the client can echo it in the header later.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	req, err := h.readCredentials(r)
	if err != nil {
		apperr.WriteError(w, h.Log, err)
		return
	}

	session, err := h.Identity.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		apperr.WriteError(w, h.Log, apperr.Wrap(apperr.InvalidCredential, err.Error(), err))
		return
	}

	csrfToken, err := auth.GenerateCsrfToken()
	if err != nil {
		apperr.WriteError(w, h.Log, err)
		return
	}
	auth.SetAuthCookie(w, session.AccessToken)
	auth.SetCsrfCookie(w, csrfToken)

	writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"csrfToken": csrfToken,
	})
}

// Logout handles POST /api/auth/logout by expiring both session cookies.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearSessionCookies(w)
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}
