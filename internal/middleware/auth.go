// Package middleware provides the HTTP gatekeeper chain and request logging.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/spendtrack/spendtrack/internal/apperr"
	"github.com/spendtrack/spendtrack/internal/auth"
	"github.com/spendtrack/spendtrack/internal/identity"
	"github.com/spendtrack/spendtrack/internal/models"
)

type ctxKey string

const principalKey ctxKey = "principal"

// TokenVerifier is the single identity-provider operation the resolver
// needs.
type TokenVerifier interface {
	// VerifyToken exchanges a bearer token for the principal it identifies.
	VerifyToken(ctx context.Context, token string) (identity.User, error)
}

// Mode selects the credential transport for this deployment. The two modes
// are mutually exclusive: a deployment consults exactly one source, never
// both.
type Mode string

const (
	// ModeCookie reads the credential from the auth cookie.
	ModeCookie Mode = "cookie"
	// ModeHeader reads the credential from the Authorization header.
	ModeHeader Mode = "header"
)

// CredentialResolver extracts the bearer token from a request and verifies
// it with the identity provider.
type CredentialResolver struct {
	// Verifier is the stateless provider handle, injected at startup.
	Verifier TokenVerifier
	// Mode picks the one active extraction strategy.
	Mode Mode
}

// Resolve produces the request's principal or a typed auth failure.
// When no token is present the provider is not contacted at all. The
// verification call happens exactly once and is never retried; a transient
// provider failure is an auth failure for this request.
func (cr *CredentialResolver) Resolve(r *http.Request) (models.Principal, error) {
	token, source := cr.extract(r)
	if token == "" {
		return models.Principal{}, apperr.New(apperr.MissingCredential,
			"Unauthorized: Authentication required")
	}

	user, err := cr.Verifier.VerifyToken(r.Context(), token)
	if err != nil {
		return models.Principal{}, apperr.Wrap(apperr.InvalidCredential,
			"Unauthorized: "+err.Error(), err)
	}

	return models.Principal{ID: user.ID, ResolvedFrom: source}, nil
}

// extract reads the token from the one configured transport.
func (cr *CredentialResolver) extract(r *http.Request) (token, source string) {
	switch cr.Mode {
	case ModeHeader:
		value := r.Header.Get("Authorization")
		if after, ok := strings.CutPrefix(value, "Bearer "); ok {
			return after, "header"
		}
		return "", "header"
	default:
		cookie, err := r.Cookie(auth.AuthCookieName)
		if err != nil || cookie.Value == "" {
			return "", "cookie"
		}
		return cookie.Value, "cookie"
	}
}

// exemptPath reports whether the path bypasses both the CSRF and the
// credential checks. The two checks share one exemption set so a route can
// never pass one and be rejected by the other inconsistently.
func exemptPath(path string) bool {
	return strings.HasPrefix(path, "/api/auth")
}

// Gatekeeper is the middleware chain run ahead of every protected route:
// preflight and exemption first, then CSRF for mutating methods, then
// credential resolution. CSRF comes before identity verification so a
// forged request is rejected without spending a provider round trip. On
// success the principal is attached to the request context.
func Gatekeeper(resolver *CredentialResolver, log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			if exemptPath(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			if auth.MutatingMethod(r.Method) && !auth.VerifyCsrf(r) {
				apperr.WriteError(w, log, apperr.New(apperr.CsrfMismatch,
					"Forbidden: CSRF token missing or invalid"))
				return
			}

			principal, err := resolver.Resolve(r)
			if err != nil {
				apperr.WriteError(w, log, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), principal)))
		})
	}
}

// WithPrincipal stores the resolved principal in the context for
// downstream handlers.
func WithPrincipal(ctx context.Context, p models.Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// GetPrincipalFromContext extracts the principal stored by the gatekeeper.
// The second return is false on exempt routes.
func GetPrincipalFromContext(ctx context.Context) (models.Principal, bool) {
	p, ok := ctx.Value(principalKey).(models.Principal)
	return p, ok
}
