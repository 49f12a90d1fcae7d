/*
Package sales aggregates raw sale records into per-salesperson and team-wide
weekly statistics.

PURPOSE:
  Given the sale rows of a period and the month's week partition (from the
  calendar package), produce the buckets the reporting layer renders: a
  WeeklyStat per (salesperson, week), a team-wide WeeklyStat per week, and a
  ranked list of salesperson aggregates.

KEY CONCEPTS IN THIS FILE (types.go):
  - Sale: A read-only input row owned by the persistence layer
  - WeeklyStat: Count plus summed amount for one bucket
  - Aggregate: One salesperson's full month (weekly buckets + totals + rank)

DESIGN PRINCIPLES:
  1. Precision: decimal.Decimal for all amounts, never float
  2. Isolation: malformed rows are logged and skipped, never fatal
  3. Determinism: ranking ties keep input order; week sets are zero-filled

SEE ALSO:
  - aggregate.go: The aggregation pass itself
  - calendar: Week partition and date resolution
*/
package sales

import (
	"strings"

	"github.com/shopspring/decimal"
)

// =============================================================================
// INPUT - Raw sale row
// =============================================================================

// SalespersonID identifies a salesperson across sales, goals, and profiles.
type SalespersonID string

// Sale is one raw sale record as supplied by the persistence layer.
// SaleDate is a calendar date string in "YYYY-MM-DD" form.
type Sale struct {
	ID              string          `json:"id"`
	SalespersonID   SalespersonID   `json:"salesperson_id"`
	SalespersonName string          `json:"salesperson_name"`
	SaleDate        string          `json:"sale_date"`
	GrossAmount     decimal.Decimal `json:"gross_amount"`
	PaymentMethod   string          `json:"payment_method"`
}

// =============================================================================
// OUTPUT - Aggregated buckets
// =============================================================================

// WeeklyStat accumulates the sales of one bucket.
type WeeklyStat struct {
	Count  int             `json:"count"`
	Amount decimal.Decimal `json:"amount"`
}

func (s WeeklyStat) add(amount decimal.Decimal) WeeklyStat {
	return WeeklyStat{Count: s.Count + 1, Amount: s.Amount.Add(amount)}
}

// Aggregate is one salesperson's aggregated month. Position is the 1-based
// rank after sorting all aggregates by TotalAmount descending; ties keep the
// order in which salespeople first appeared in the input.
type Aggregate struct {
	ID          SalespersonID      `json:"id"`
	Name        string             `json:"name"`
	Initials    string             `json:"initials"`
	WeeklyStats map[int]WeeklyStat `json:"weekly_stats"`
	TotalCount  int                `json:"total_count"`
	TotalAmount decimal.Decimal    `json:"total_amount"`
	Position    int                `json:"position"`
}

// Result is the output of one aggregation pass.
type Result struct {
	// PerSalesperson is sorted by TotalAmount descending, Position assigned.
	PerSalesperson []*Aggregate
	// WeeklyTotals holds the team-wide bucket per week number. Every week of
	// the month's partition is present, zero-filled when it saw no sales.
	WeeklyTotals map[int]WeeklyStat
	// AvailableWeeks lists the partition's week numbers in ascending order.
	AvailableWeeks []int
	// Skipped counts input rows dropped for malformed dates, period
	// mismatches, or unresolvable weeks.
	Skipped int
}

// Initials derives a two-letter tag from the first two space-separated
// tokens of a name, uppercased. Single-token names use the token's first
// letter alone.
func Initials(name string) string {
	var b strings.Builder
	for i, tok := range strings.Fields(name) {
		if i == 2 {
			break
		}
		r := []rune(tok)
		b.WriteString(strings.ToUpper(string(r[0])))
	}
	return b.String()
}
