// Package http provides the HTTP handlers and routing for the expense
// gateway API.
package http

import (
	"encoding/json"
	"net/http"

	"github.com/spendtrack/spendtrack/internal/apperr"
	"github.com/spendtrack/spendtrack/internal/middleware"
	"github.com/spendtrack/spendtrack/internal/models"
)

// writeJSON renders a success payload. 204 responses carry no body.
func writeJSON(w http.ResponseWriter, status int, v any) {
	if status == http.StatusNoContent {
		w.WriteHeader(status)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeBody parses the request body into dst, mapping parse failures to
// the malformed-body branch of the taxonomy.
func decodeBody(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperr.Wrap(apperr.MalformedBody, "Invalid JSON payload", err)
	}
	return nil
}

// principal pulls the authenticated caller from the request context. The
// gatekeeper guarantees it on protected routes.
func principal(r *http.Request) (models.Principal, error) {
	p, ok := middleware.GetPrincipalFromContext(r.Context())
	if !ok {
		return models.Principal{}, apperr.New(apperr.MissingCredential, "Unauthorized")
	}
	return p, nil
}
