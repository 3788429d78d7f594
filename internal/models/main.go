// Package models defines the core data structures for categories,
// payment methods and expenses.
package models

import "time"

// Principal is the authenticated caller identity resolved for one request.
// It is created per request by the credential resolver and never persisted.
type Principal struct {
	// ID is the opaque user identifier returned by the identity provider.
	ID string
	// ResolvedFrom records which transport carried the credential
	// ("cookie" or "header").
	ResolvedFrom string
}

// Category represents a user-owned expense category.
type Category struct {
	// ID is the unique identifier for the category.
	ID string `json:"id"`
	// UserID is the owner of the category.
	UserID string `json:"user_id"`
	// Name is the display name, unique per user.
	Name string `json:"name"`
	// IsExpense marks whether transactions in this category count as
	// spending (income categories carry false).
	IsExpense bool `json:"is_expense"`
	// CreatedAt is the creation timestamp.
	CreatedAt time.Time `json:"created_at"`
	// UpdatedAt is the last modification timestamp.
	UpdatedAt time.Time `json:"updated_at"`
}

// PaymentMethod represents a user-owned payment method.
type PaymentMethod struct {
	// ID is the unique identifier for the payment method.
	ID string `json:"id"`
	// UserID is the owner of the payment method.
	UserID string `json:"user_id"`
	// Name is the display name, unique per user.
	Name string `json:"name"`
	// CreatedAt is the creation timestamp.
	CreatedAt time.Time `json:"created_at"`
	// UpdatedAt is the last modification timestamp.
	UpdatedAt time.Time `json:"updated_at"`
}

// Expense represents a single recorded transaction.
type Expense struct {
	// ID is the unique identifier for the expense.
	ID string `json:"id"`
	// UserID is the owner of the expense.
	UserID string `json:"user_id"`
	// Timestamp is when the expense occurred.
	Timestamp time.Time `json:"timestamp"`
	// CategoryID references the category the expense belongs to.
	CategoryID string `json:"category_id"`
	// PaymentMethodID references the payment method used.
	PaymentMethodID string `json:"payment_method_id"`
	// Amount is the transaction amount.
	Amount float64 `json:"amount"`
	// Description is an optional short description.
	Description string `json:"description,omitempty"`
	// Notes holds optional free-form notes.
	Notes string `json:"notes,omitempty"`
	// Type classifies the expense.
	Type ExpenseType `json:"type"`
	// CreatedAt is the creation timestamp.
	CreatedAt time.Time `json:"created_at"`
	// UpdatedAt is the last modification timestamp.
	UpdatedAt time.Time `json:"updated_at"`
}

// ExpenseType defines the set of valid expense classifications.
type ExpenseType string

const (
	// Need represents an essential expense.
	Need ExpenseType = "Need"
	// Want represents a discretionary expense.
	Want ExpenseType = "Want"
	// Investment represents money put aside or invested.
	Investment ExpenseType = "Investment"
)

// ValidExpenseType reports whether t is one of the known classifications.
func ValidExpenseType(t string) bool {
	switch ExpenseType(t) {
	case Need, Want, Investment:
		return true
	}
	return false
}

// ExpenseFilter narrows an expense listing. Zero values mean "no filter".
type ExpenseFilter struct {
	// StartDate is the inclusive lower bound on Timestamp.
	StartDate time.Time
	// EndDate is the inclusive upper bound on Timestamp.
	EndDate time.Time
	// CategoryID restricts to one category when non-empty.
	CategoryID string
	// PaymentMethodID restricts to one payment method when non-empty.
	PaymentMethodID string
	// Type restricts to one classification when non-empty.
	Type string
	// Skip is the number of rows to skip.
	Skip int
	// Limit is the maximum number of rows to return.
	Limit int
}
