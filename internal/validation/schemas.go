package validation

import (
	"net/url"
	"time"

	"github.com/spendtrack/spendtrack/internal/models"
)

// CategoryCreate is the validated payload for creating a category.
// IsExpense defaults to true when omitted.
type CategoryCreate struct {
	Name      string `json:"name"`
	IsExpense *bool  `json:"is_expense"`
}

// Validate checks the payload, accumulating every violation.
func (p *CategoryCreate) Validate() error {
	errs := Errors{}
	checkName(errs, "name", p.Name)
	return errs.Err()
}

// ExpenseFlag returns the is_expense value with its default applied.
func (p *CategoryCreate) ExpenseFlag() bool {
	if p.IsExpense == nil {
		return true
	}
	return *p.IsExpense
}

// NameUpdate is the validated payload for renaming a category or payment
// method. Only the name field is updatable.
type NameUpdate struct {
	Name *string `json:"name"`
}

// Validate requires a present, bounded name.
func (p *NameUpdate) Validate() error {
	errs := Errors{}
	if p.Name == nil {
		errs.Add("name", "Only the 'name' field can be updated")
		return errs.Err()
	}
	checkName(errs, "name", *p.Name)
	return errs.Err()
}

// PaymentMethodCreate is the validated payload for creating a payment method.
type PaymentMethodCreate struct {
	Name string `json:"name"`
}

// Validate checks the payload.
func (p *PaymentMethodCreate) Validate() error {
	errs := Errors{}
	checkName(errs, "name", p.Name)
	return errs.Err()
}

// ExpenseCreate is the validated payload for recording an expense.
type ExpenseCreate struct {
	Timestamp       string   `json:"timestamp"`
	CategoryID      string   `json:"category_id"`
	PaymentMethodID string   `json:"payment_method_id"`
	Amount          *float64 `json:"amount"`
	Description     string   `json:"description"`
	Notes           string   `json:"notes"`
	Type            string   `json:"type"`

	// parsedTimestamp is populated by Validate.
	parsedTimestamp time.Time
}

// Validate checks every field, accumulating all violations before returning.
func (p *ExpenseCreate) Validate() error {
	errs := Errors{}

	if p.Timestamp == "" {
		errs.Add("timestamp", "Invalid ISO 8601 timestamp format")
	} else {
		p.parsedTimestamp = checkTimestamp(errs, "timestamp", p.Timestamp)
	}
	checkUUID(errs, "category_id", p.CategoryID)
	checkUUID(errs, "payment_method_id", p.PaymentMethodID)
	if p.Amount == nil || *p.Amount <= 0 {
		errs.Add("amount", "Amount must be positive")
	}
	checkMaxLen(errs, "description", p.Description, 255)
	checkMaxLen(errs, "notes", p.Notes, 1000)
	if !models.ValidExpenseType(p.Type) {
		errs.Add("type", "type must be one of: 'Need', 'Want', 'Investment'")
	}

	return errs.Err()
}

// ParsedTimestamp returns the timestamp parsed during Validate.
func (p *ExpenseCreate) ParsedTimestamp() time.Time { return p.parsedTimestamp }

// ExpenseUpdate is the validated payload for a partial expense update.
// Every field is optional but at least one must be present.
type ExpenseUpdate struct {
	Timestamp       *string  `json:"timestamp"`
	CategoryID      *string  `json:"category_id"`
	PaymentMethodID *string  `json:"payment_method_id"`
	Amount          *float64 `json:"amount"`
	Description     *string  `json:"description"`
	Notes           *string  `json:"notes"`
	Type            *string  `json:"type"`

	parsedTimestamp time.Time
}

// Validate checks every provided field and requires at least one.
func (p *ExpenseUpdate) Validate() error {
	errs := Errors{}

	if p.Timestamp == nil && p.CategoryID == nil && p.PaymentMethodID == nil &&
		p.Amount == nil && p.Description == nil && p.Notes == nil && p.Type == nil {
		errs.Add("body", "At least one field must be provided for update")
		return errs.Err()
	}

	if p.Timestamp != nil {
		p.parsedTimestamp = checkTimestamp(errs, "timestamp", *p.Timestamp)
	}
	if p.CategoryID != nil {
		checkUUID(errs, "category_id", *p.CategoryID)
	}
	if p.PaymentMethodID != nil {
		checkUUID(errs, "payment_method_id", *p.PaymentMethodID)
	}
	if p.Amount != nil && *p.Amount <= 0 {
		errs.Add("amount", "Amount must be positive")
	}
	if p.Description != nil {
		checkMaxLen(errs, "description", *p.Description, 255)
	}
	if p.Notes != nil {
		checkMaxLen(errs, "notes", *p.Notes, 1000)
	}
	if p.Type != nil && !models.ValidExpenseType(*p.Type) {
		errs.Add("type", "type must be one of: 'Need', 'Want', 'Investment'")
	}

	return errs.Err()
}

// ParsedTimestamp returns the timestamp parsed during Validate, zero when
// the field was absent.
func (p *ExpenseUpdate) ParsedTimestamp() time.Time { return p.parsedTimestamp }

// PaginationQuery holds validated skip/limit parameters.
type PaginationQuery struct {
	Skip  int
	Limit int
}

// ParsePagination validates a plain pagination query.
func ParsePagination(q url.Values) (PaginationQuery, error) {
	errs := Errors{}
	skip, limit := queryPagination(errs, q)
	if err := errs.Err(); err != nil {
		return PaginationQuery{}, err
	}
	return PaginationQuery{Skip: skip, Limit: limit}, nil
}

// ExpensesQuery holds the validated filter set for listing expenses.
type ExpensesQuery struct {
	StartDate       time.Time
	EndDate         time.Time
	CategoryID      string
	PaymentMethodID string
	Type            string
	Skip            int
	Limit           int
}

// ParseExpensesQuery validates the expense listing filters. All filters are
// optional; the date-range rule applies only when both bounds are present.
func ParseExpensesQuery(q url.Values) (ExpensesQuery, error) {
	errs := Errors{}
	out := ExpensesQuery{
		StartDate:       queryTimestamp(errs, q, "startDate", false),
		EndDate:         queryTimestamp(errs, q, "endDate", false),
		CategoryID:      queryUUID(errs, q, "categoryId"),
		PaymentMethodID: queryUUID(errs, q, "paymentMethodId"),
	}
	if raw, ok := queryString(q, "type"); ok {
		if !models.ValidExpenseType(raw) {
			errs.Add("type", "type must be one of: 'Need', 'Want', 'Investment'")
		}
		out.Type = raw
	}
	out.Skip, out.Limit = queryPagination(errs, q)
	checkDateRange(errs, out.StartDate, out.EndDate)
	if err := errs.Err(); err != nil {
		return ExpensesQuery{}, err
	}
	return out, nil
}

// DateRangeQuery holds a required date range plus pagination, used by the
// by-category and by-payment-method listings.
type DateRangeQuery struct {
	StartDate time.Time
	EndDate   time.Time
	Skip      int
	Limit     int
}

// ParseDateRangeQuery validates a required startDate/endDate pair with
// pagination.
func ParseDateRangeQuery(q url.Values) (DateRangeQuery, error) {
	errs := Errors{}
	out := DateRangeQuery{
		StartDate: queryTimestamp(errs, q, "startDate", true),
		EndDate:   queryTimestamp(errs, q, "endDate", true),
	}
	out.Skip, out.Limit = queryPagination(errs, q)
	checkDateRange(errs, out.StartDate, out.EndDate)
	if err := errs.Err(); err != nil {
		return DateRangeQuery{}, err
	}
	return out, nil
}

// Aggregation dimensions accepted by the summary endpoint.
const (
	GroupByCategory      = "category"
	GroupByPaymentMethod = "paymentMethod"
	GroupByType          = "type"
)

// SummaryQuery holds the validated analytics summary parameters.
type SummaryQuery struct {
	StartDate time.Time
	EndDate   time.Time
	GroupBy   string
	Period    string
}

// ParseSummaryQuery validates the summary parameters: a required date range
// and a grouping dimension.
func ParseSummaryQuery(q url.Values) (SummaryQuery, error) {
	errs := Errors{}
	out := SummaryQuery{
		StartDate: queryTimestamp(errs, q, "startDate", true),
		EndDate:   queryTimestamp(errs, q, "endDate", true),
	}
	groupBy, ok := queryString(q, "groupBy")
	switch {
	case !ok:
		errs.Add("groupBy", "groupBy must be one of: 'category', 'paymentMethod', 'type'")
	case groupBy != GroupByCategory && groupBy != GroupByPaymentMethod && groupBy != GroupByType:
		errs.Add("groupBy", "groupBy must be one of: 'category', 'paymentMethod', 'type'")
	default:
		out.GroupBy = groupBy
	}
	out.Period, _ = queryString(q, "period")
	checkDateRange(errs, out.StartDate, out.EndDate)
	if err := errs.Err(); err != nil {
		return SummaryQuery{}, err
	}
	return out, nil
}

// AverageSpendQuery holds the validated average-spend parameters.
type AverageSpendQuery struct {
	StartDate time.Time
	EndDate   time.Time
}

// ParseAverageSpendQuery validates the required date range.
func ParseAverageSpendQuery(q url.Values) (AverageSpendQuery, error) {
	errs := Errors{}
	out := AverageSpendQuery{
		StartDate: queryTimestamp(errs, q, "startDate", true),
		EndDate:   queryTimestamp(errs, q, "endDate", true),
	}
	checkDateRange(errs, out.StartDate, out.EndDate)
	if err := errs.Err(); err != nil {
		return AverageSpendQuery{}, err
	}
	return out, nil
}
