// Package apperr defines the error taxonomy shared by every component.
// Components raise typed failures; only the HTTP mapper in this package
// turns them into status codes and response bodies.
package apperr

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
)

// Kind enumerates every failure class the system can report.
type Kind int

const (
	// Internal is an unexpected fault; details are logged, never returned.
	Internal Kind = iota
	// MissingCredential means no bearer token was found on the request.
	MissingCredential
	// InvalidCredential means the identity provider rejected the token.
	InvalidCredential
	// CsrfMismatch means the anti-forgery cookie/header pair failed.
	CsrfMismatch
	// ValidationFailed carries field-level schema violations.
	ValidationFailed
	// MalformedBody means the request body could not be parsed at all.
	MalformedBody
	// UniqueConflict is a store uniqueness-constraint violation.
	UniqueConflict
	// ReferenceConflict means a row being deleted is still referenced.
	ReferenceConflict
	// ReferenceNotFound means a write referenced a non-existent row.
	ReferenceNotFound
	// RowNotFound means the targeted row does not exist for this user.
	RowNotFound
	// Unimplemented marks a surfaced but unsupported feature.
	Unimplemented
)

// Error is the typed failure passed between components.
type Error struct {
	// Kind selects the taxonomy branch.
	Kind Kind
	// Message is the client-facing error string.
	Message string
	// Details carries optional structured context (field errors,
	// constraint descriptions).
	Details any
	// Err is the wrapped cause, logged server-side only.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap exposes the cause for errors.Is/As.
func (e *Error) Unwrap() error { return e.Err }

// New constructs an Error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap constructs an Error of the given kind around a cause.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// WithDetails attaches structured context and returns the same error.
func (e *Error) WithDetails(details any) *Error {
	e.Details = details
	return e
}

// KindOf extracts the taxonomy kind from any error. Unknown errors are
// classified as Internal.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return Internal
}

// Postgres error codes carried by lib/pq.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// FromStore translates a store-layer error into the taxonomy.
//
// Uniqueness violations map to UniqueConflict. Foreign-key violations are
// split on direction: the Postgres detail for a delete blocked by dependents
// reads `... is still referenced from table ...`, which maps to
// ReferenceConflict; an insert or update naming a missing row maps to
// ReferenceNotFound. sql.ErrNoRows maps to RowNotFound. Anything else stays
// Internal so the mapper does not leak driver internals to the client.
func FromStore(err error) *Error {
	if err == nil {
		return nil
	}

	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}

	if errors.Is(err, sql.ErrNoRows) {
		return Wrap(RowNotFound, "not found", err)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case pgUniqueViolation:
			return Wrap(UniqueConflict,
				"conflict: resource already exists", err).
				WithDetails(pqErr.Detail)
		case pgForeignKeyViolation:
			if strings.Contains(pqErr.Detail, "is still referenced") {
				return Wrap(ReferenceConflict,
					"conflict: resource is still in use and cannot be deleted", err).
					WithDetails(pqErr.Detail)
			}
			return Wrap(ReferenceNotFound,
				"related resource not found", err).
				WithDetails(pqErr.Detail)
		}
	}

	return Wrap(Internal, "internal error", err)
}
