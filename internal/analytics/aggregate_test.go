package analytics

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spendtrack/spendtrack/internal/models"
)

func expense(amount float64, categoryID string) models.Expense {
	return models.Expense{Amount: amount, CategoryID: categoryID}
}

func testDimension() Dimension {
	return CategoryDimension([]models.Category{
		{ID: "A", Name: "Food", IsExpense: true},
		{ID: "B", Name: "Transport", IsExpense: true},
		{ID: "C", Name: "Salary", IsExpense: false},
	})
}

func TestAggregate_GroupsAndSorts(t *testing.T) {
	rows := []models.Expense{
		expense(100, "A"),
		expense(50, "A"),
		expense(30, "B"),
	}

	got := Aggregate(rows, testDimension())

	want := []GroupSummary{
		{ID: "A", Label: "Food", Total: 150.00, Count: 2, Average: 75.00, Flag: true},
		{ID: "B", Label: "Transport", Total: 30.00, Count: 1, Average: 30.00, Flag: true},
	}
	assert.Equal(t, want, got)
}

func TestAggregate_RoundsOnceAtTheEnd(t *testing.T) {
	rows := []models.Expense{
		expense(10.005, "A"),
		expense(10.004, "A"),
	}

	got := Aggregate(rows, testDimension())
	require.Len(t, got, 1)

	// The unrounded sum is 20.009, which rounds half-away-from-zero to
	// 20.01. The average 10.0045 rounds to 10.00 from the raw sum; a
	// per-addend rounding scheme would have produced 10.01 here.
	assert.Equal(t, 20.01, got[0].Total)
	assert.Equal(t, 10.0, got[0].Average)
	assert.Equal(t, 2, got[0].Count)
}

func TestAggregate_DropsUnresolvableKeys(t *testing.T) {
	rows := []models.Expense{
		expense(10, "A"),
		expense(20, ""),        // no key: no signal
		expense(30, "ghost"),   // unknown key: dropped silently
		expense(40, "B"),
	}

	got := Aggregate(rows, testDimension())

	total := 0
	for _, g := range got {
		total += g.Count
	}
	assert.Equal(t, 2, total, "only rows with resolvable keys are counted")
	assert.LessOrEqual(t, total, len(rows))
}

func TestAggregate_Idempotent(t *testing.T) {
	rows := []models.Expense{
		expense(12.34, "B"),
		expense(56.78, "A"),
		expense(9.99, "B"),
		expense(3.50, "C"),
	}
	dim := testDimension()

	first := Aggregate(rows, dim)
	second := Aggregate(rows, dim)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("aggregate is not deterministic:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestAggregate_TiesKeepEncounterOrder(t *testing.T) {
	rows := []models.Expense{
		expense(10, "B"),
		expense(10, "A"),
		expense(10, "C"),
	}

	got := Aggregate(rows, testDimension())
	require.Len(t, got, 3)
	// All averages equal: first-seen order wins.
	assert.Equal(t, "B", got[0].ID)
	assert.Equal(t, "A", got[1].ID)
	assert.Equal(t, "C", got[2].ID)
}

func TestAggregate_NonExpenseCategoriesIncluded(t *testing.T) {
	rows := []models.Expense{
		expense(1000, "C"),
		expense(20, "A"),
	}

	got := Aggregate(rows, testDimension())
	require.Len(t, got, 2)
	assert.Equal(t, "C", got[0].ID)
	assert.False(t, got[0].Flag, "income categories still appear, flagged false")
	assert.True(t, got[1].Flag)
}

func TestAggregate_FirstSeenLabelRetained(t *testing.T) {
	dim := testDimension()
	rows := []models.Expense{expense(5, "A"), expense(7, "A")}

	got := Aggregate(rows, dim)
	require.Len(t, got, 1)
	assert.Equal(t, "Food", got[0].Label)
}

func TestAggregate_Empty(t *testing.T) {
	got := Aggregate(nil, testDimension())
	assert.Empty(t, got)
}

func TestTypeDimension(t *testing.T) {
	rows := []models.Expense{
		{Amount: 30, Type: models.Need},
		{Amount: 10, Type: models.Want},
		{Amount: 20, Type: models.Need},
		{Amount: 5, Type: "Unknown"},
	}

	got := Aggregate(rows, TypeDimension())
	require.Len(t, got, 2)
	assert.Equal(t, "Need", got[0].ID)
	assert.Equal(t, 50.0, got[0].Total)
	assert.Equal(t, 25.0, got[0].Average)
	assert.Equal(t, "Want", got[1].ID)
}

func TestPaymentMethodDimension(t *testing.T) {
	dim := PaymentMethodDimension([]models.PaymentMethod{
		{ID: "pm1", Name: "Cash"},
		{ID: "pm2", Name: "Card"},
	})
	rows := []models.Expense{
		{Amount: 15, PaymentMethodID: "pm1"},
		{Amount: 25, PaymentMethodID: "pm2"},
	}

	got := Aggregate(rows, dim)
	require.Len(t, got, 2)
	assert.Equal(t, "Card", got[0].Label)
}
