/*
Package ranking orders report rows for display.

PURPOSE:
  Owns everything about sort order: the sort keys the table exposes, the
  asc/desc direction and its click-toggle semantics, the locale-aware
  string comparator, and the rule that a synthesized totals row always
  renders last no matter the sort.

DESIGN PRINCIPLES:
  1. Stability: ties preserve prior relative order (sort.SliceStable)
  2. No hidden state: current key and direction are caller-supplied
     parameters, never package-level variables
  3. Locale awareness: names compare under Portuguese collation,
     case-insensitively
*/
package ranking

import (
	"sort"

	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// =============================================================================
// KEYS AND DIRECTION
// =============================================================================

// Key names a sortable column of the report table.
type Key string

const (
	KeyName        Key = "name"
	KeyTotalAmount Key = "total_amount"
	KeyTotalCount  Key = "total_count"
	KeyCommission  Key = "commission"
	KeyGoalPercent Key = "goal_percent"
)

// Direction is the sort direction.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// ParseKey validates a requested sort key, defaulting to total amount.
func ParseKey(s string) Key {
	switch Key(s) {
	case KeyName, KeyTotalAmount, KeyTotalCount, KeyCommission, KeyGoalPercent:
		return Key(s)
	default:
		return KeyTotalAmount
	}
}

// ParseDirection validates a requested direction, defaulting to descending.
func ParseDirection(s string) Direction {
	if Direction(s) == Ascending {
		return Ascending
	}
	return Descending
}

// Toggle computes the direction after a column-header click: clicking the
// active column flips the direction, clicking a new column resets to
// descending.
func Toggle(currentKey Key, current Direction, requested Key) Direction {
	if requested != currentKey {
		return Descending
	}
	if current == Descending {
		return Ascending
	}
	return Descending
}

// =============================================================================
// COMPARATORS
// =============================================================================

// StringComparator returns a locale-aware, case-insensitive three-way string
// comparator. Each call builds its own collator; the returned func must not
// be shared across goroutines.
func StringComparator() func(a, b string) int {
	c := collate.New(language.BrazilianPortuguese, collate.IgnoreCase)
	return func(a, b string) int { return c.CompareString(a, b) }
}

// CompareDecimals is the three-way comparator for numeric columns.
func CompareDecimals(a, b decimal.Decimal) int { return a.Cmp(b) }

// CompareInts is the three-way comparator for count columns.
func CompareInts(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// =============================================================================
// SORT
// =============================================================================

// Sort stably orders rows by the given three-way comparator and direction.
// Rows for which isTotal reports true are exempt from sorting and appended
// last, preserving their own relative order.
func Sort[T any](rows []T, dir Direction, cmp func(a, b T) int, isTotal func(T) bool) []T {
	sorted := make([]T, 0, len(rows))
	var totals []T
	for _, r := range rows {
		if isTotal != nil && isTotal(r) {
			totals = append(totals, r)
			continue
		}
		sorted = append(sorted, r)
	}

	sign := 1
	if dir == Descending {
		sign = -1
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sign*cmp(sorted[i], sorted[j]) < 0
	})

	return append(sorted, totals...)
}
