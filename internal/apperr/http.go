package apperr

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"
)

// Envelope is the single wire shape for every failure response.
type Envelope struct {
	// Error is the client-facing message.
	Error string `json:"error"`
	// Details carries optional structured context.
	Details any `json:"details,omitempty"`
}

// StatusCode maps a taxonomy kind to its HTTP status.
func StatusCode(kind Kind) int {
	switch kind {
	case ValidationFailed, MalformedBody:
		return http.StatusBadRequest
	case MissingCredential, InvalidCredential:
		return http.StatusUnauthorized
	case CsrfMismatch:
		return http.StatusForbidden
	case RowNotFound, ReferenceNotFound:
		return http.StatusNotFound
	case UniqueConflict, ReferenceConflict:
		return http.StatusConflict
	case Unimplemented:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

// WriteError renders err as the uniform error envelope. It is the single
// translation point from the taxonomy to HTTP: handlers never compose
// status codes themselves. Internal faults are logged with their full cause
// and returned to the client with a generic label only.
func WriteError(w http.ResponseWriter, log *zap.Logger, err error) {
	appErr := asError(err)
	status := StatusCode(appErr.Kind)

	env := Envelope{Error: appErr.Message, Details: appErr.Details}
	if status == http.StatusInternalServerError {
		log.Error("internal error", zap.Error(err))
		env = Envelope{Error: "Internal Server Error"}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(env)
}

// asError normalizes any error into an *Error, defaulting to Internal.
func asError(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(Internal, "internal error", err)
}
