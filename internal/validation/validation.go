// Package validation implements per-endpoint schema validation of query
// parameters, path parameters and request bodies. Every schema accumulates
// all field violations before reporting, so a single response tells the
// caller everything that needs fixing.
package validation

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/spendtrack/spendtrack/internal/apperr"
)

// Pagination defaults and bounds shared by every list endpoint.
const (
	DefaultSkip  = 0
	DefaultLimit = 100
	MaxLimit     = 500
)

// Errors maps a field name to its ordered list of violation messages.
type Errors map[string][]string

// Add appends a violation message for a field.
func (e Errors) Add(field, message string) {
	e[field] = append(e[field], message)
}

// Err converts the accumulated violations into a taxonomy error, or nil
// when the payload validated cleanly.
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return apperr.New(apperr.ValidationFailed, "Validation failed").WithDetails(e)
}

// checkName validates a display-name field against the shared 1..100 bound.
func checkName(errs Errors, field, value string) {
	if value == "" {
		errs.Add(field, "Name is required")
		return
	}
	if len(value) > 100 {
		errs.Add(field, "Name cannot exceed 100 characters")
	}
}

// checkUUID records a violation unless value parses as a UUID.
func checkUUID(errs Errors, field, value string) {
	if _, err := uuid.Parse(value); err != nil {
		errs.Add(field, "Invalid UUID format")
	}
}

// checkTimestamp parses an RFC3339 timestamp, recording a violation on
// failure. The zero time is returned when parsing fails.
func checkTimestamp(errs Errors, field, value string) time.Time {
	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		errs.Add(field, "Invalid ISO 8601 timestamp format")
		return time.Time{}
	}
	return ts
}

// checkMaxLen bounds the length of an optional free-text field.
func checkMaxLen(errs Errors, field, value string, max int) {
	if len(value) > max {
		errs.Add(field, fmt.Sprintf("%s cannot exceed %d characters", field, max))
	}
}

// checkDateRange enforces startDate <= endDate, attaching the violation to
// startDate. Zero values (absent or already-failed fields) are skipped.
func checkDateRange(errs Errors, start, end time.Time) {
	if start.IsZero() || end.IsZero() {
		return
	}
	if start.After(end) {
		errs.Add("startDate", "startDate must be before or equal to endDate")
	}
}

// ID validates a path parameter as a UUID.
func ID(value string) (string, error) {
	errs := Errors{}
	checkUUID(errs, "id", value)
	if err := errs.Err(); err != nil {
		return "", err
	}
	return value, nil
}
