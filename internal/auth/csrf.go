// Package auth implements the anti-forgery token guard and the cookie
// handling around session credentials.
package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"time"
)

const (
	// CsrfCookieName is the client-readable cookie carrying the token.
	CsrfCookieName = "csrf_token"
	// CsrfHeaderName is the request header the client echoes the token in.
	CsrfHeaderName = "X-CSRF-Token"
	// AuthCookieName carries the session credential in cookie mode.
	AuthCookieName = "auth_token"

	// csrfTokenBytes is the raw token length; hex encoding doubles it on
	// the wire.
	csrfTokenBytes = 32

	// CsrfTokenTTL bounds the anti-forgery token lifetime.
	CsrfTokenTTL = 24 * time.Hour
	// SessionTTL bounds the session credential lifetime.
	SessionTTL = 7 * 24 * time.Hour
)

// GenerateCsrfToken returns a fresh cryptographically random token,
// hex-encoded to 64 characters.
func GenerateCsrfToken() (string, error) {
	buf := make([]byte, csrfTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate csrf token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// SetCsrfCookie attaches the token as a client-readable cookie. The
// frontend must be able to read it to echo it back in the header, so it is
// deliberately not HttpOnly.
func SetCsrfCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CsrfCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(CsrfTokenTTL.Seconds()),
		Secure:   true,
		HttpOnly: false,
		SameSite: http.SameSiteNoneMode,
	})
}

// SetAuthCookie attaches the session credential as an HttpOnly cookie.
func SetAuthCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     AuthCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(SessionTTL.Seconds()),
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteNoneMode,
	})
}

// ClearSessionCookies expires both the auth and CSRF cookies.
func ClearSessionCookies(w http.ResponseWriter) {
	for _, name := range []string{AuthCookieName, CsrfCookieName} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			Secure:   true,
			SameSite: http.SameSiteNoneMode,
		})
	}
}

// VerifyCsrf implements the double-submit check: the cookie value and the
// echoed header value must both be present and byte-equal. No normalization
// is applied.
func VerifyCsrf(r *http.Request) bool {
	cookie, err := r.Cookie(CsrfCookieName)
	if err != nil || cookie.Value == "" {
		return false
	}
	header := r.Header.Get(CsrfHeaderName)
	if header == "" {
		return false
	}
	return cookie.Value == header
}

// MutatingMethod reports whether the method changes state and therefore
// requires CSRF verification. GET and HEAD are exempt.
func MutatingMethod(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}
