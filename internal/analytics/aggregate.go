// Package analytics implements the in-memory aggregation engine for
// grouped spending summaries.
package analytics

import (
	"math"
	"sort"

	"github.com/spendtrack/spendtrack/internal/models"
)

// Entry describes one known value of a grouping dimension: its display
// label and its classification flag.
type Entry struct {
	Label string
	Flag  bool
}

// Dimension is a grouping axis: a key extractor plus the lookup of known
// entries. Rows whose key is empty or not present in the lookup carry no
// signal and are dropped from the summary.
type Dimension struct {
	// Key extracts the grouping key from a row.
	Key func(models.Expense) string
	// Entries maps each known key to its label and flag.
	Entries map[string]Entry
}

// GroupSummary is one aggregated group in the response.
type GroupSummary struct {
	ID      string  `json:"id"`
	Label   string  `json:"label"`
	Total   float64 `json:"total"`
	Count   int     `json:"count"`
	Average float64 `json:"average"`
	Flag    bool    `json:"flag"`
}

// group accumulates a running sum and count for one dimension key.
type group struct {
	key   string
	label string
	flag  bool
	sum   float64
	count int
}

// Aggregate groups rows by the dimension and computes per-group totals,
// counts and averages in a single pass.
//
// Sums accumulate unrounded; both total and average are rounded to two
// decimals half-away-from-zero once at the end, so per-addend rounding
// error cannot compound. The result is ordered by average descending with
// ties kept in first-encounter order. The input is never mutated, so the
// output is deterministic for a given row slice.
func Aggregate(rows []models.Expense, dim Dimension) []GroupSummary {
	groups := make(map[string]*group)
	var order []*group

	for _, row := range rows {
		key := dim.Key(row)
		if key == "" {
			continue
		}
		entry, known := dim.Entries[key]
		if !known {
			continue
		}
		g, seen := groups[key]
		if !seen {
			g = &group{key: key, label: entry.Label, flag: entry.Flag}
			groups[key] = g
			order = append(order, g)
		}
		g.sum += row.Amount
		g.count++
	}

	out := make([]GroupSummary, 0, len(order))
	for _, g := range order {
		out = append(out, GroupSummary{
			ID:      g.key,
			Label:   g.label,
			Total:   round2(g.sum),
			Count:   g.count,
			Average: round2(g.sum / float64(g.count)),
			Flag:    g.flag,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Average > out[j].Average
	})
	return out
}

// round2 rounds to two decimal places, half away from zero.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// CategoryDimension groups expenses by category id.
func CategoryDimension(categories []models.Category) Dimension {
	entries := make(map[string]Entry, len(categories))
	for _, c := range categories {
		entries[c.ID] = Entry{Label: c.Name, Flag: c.IsExpense}
	}
	return Dimension{
		Key:     func(e models.Expense) string { return e.CategoryID },
		Entries: entries,
	}
}

// PaymentMethodDimension groups expenses by payment method id.
func PaymentMethodDimension(methods []models.PaymentMethod) Dimension {
	entries := make(map[string]Entry, len(methods))
	for _, m := range methods {
		entries[m.ID] = Entry{Label: m.Name, Flag: true}
	}
	return Dimension{
		Key:     func(e models.Expense) string { return e.PaymentMethodID },
		Entries: entries,
	}
}

// TypeDimension groups expenses by their classification.
func TypeDimension() Dimension {
	entries := map[string]Entry{
		string(models.Need):       {Label: string(models.Need), Flag: true},
		string(models.Want):       {Label: string(models.Want), Flag: true},
		string(models.Investment): {Label: string(models.Investment), Flag: true},
	}
	return Dimension{
		Key:     func(e models.Expense) string { return string(e.Type) },
		Entries: entries,
	}
}
