package validation

import (
	"net/url"
	"strconv"
	"time"
)

const maxInt = int(^uint(0) >> 1)

// queryString reads a query parameter, treating the empty string as absent.
func queryString(q url.Values, field string) (string, bool) {
	v := q.Get(field)
	return v, v != ""
}

// queryInt coerces a query parameter from its wire string form, applying
// the default when absent and recording bound violations. A value that does
// not parse as an integer is a violation, not a fallback to the default.
func queryInt(errs Errors, q url.Values, field string, def, min, max int) int {
	raw, ok := queryString(q, field)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		errs.Add(field, "must be an integer")
		return def
	}
	if n < min {
		errs.Add(field, "must be at least "+strconv.Itoa(min))
	}
	if n > max {
		errs.Add(field, "must be at most "+strconv.Itoa(max))
	}
	return n
}

// queryUUID validates an optional UUID query parameter.
func queryUUID(errs Errors, q url.Values, field string) string {
	raw, ok := queryString(q, field)
	if !ok {
		return ""
	}
	checkUUID(errs, field, raw)
	return raw
}

// queryTimestamp validates a timestamp query parameter. When required is
// set, absence is a violation.
func queryTimestamp(errs Errors, q url.Values, field string, required bool) time.Time {
	raw, ok := queryString(q, field)
	if !ok {
		if required {
			errs.Add(field, field+" is required and must be a valid ISO 8601 date")
		}
		return time.Time{}
	}
	return checkTimestamp(errs, field, raw)
}

// queryPagination reads skip/limit with the shared defaults and bounds.
func queryPagination(errs Errors, q url.Values) (skip, limit int) {
	skip = queryInt(errs, q, "skip", DefaultSkip, 0, maxInt)
	limit = queryInt(errs, q, "limit", DefaultLimit, 1, MaxLimit)
	return skip, limit
}
