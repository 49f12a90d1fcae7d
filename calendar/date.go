/*
Package calendar provides the business-day calendar used by the sales engine.

PURPOSE:
  This package owns every date-level decision in the system: what counts as
  a business day, how a month is partitioned into reporting weeks, and which
  week a given sale date belongs to.

KEY CONCEPTS IN THIS FILE (date.go):
  - Date: A naive calendar date (year/month/day, no time zone, no clock)
  - Business day: Monday through Friday, irrespective of holidays

DESIGN PRINCIPLES:
  1. Purity: Every function is a pure function of its inputs
  2. Date granularity: Comparisons never look at hours/minutes/seconds
  3. Immutability: Date is a value type; arithmetic returns new values

SEE ALSO:
  - weeks.go: Month partitioning into business-day week ranges
  - assign.go: Mapping an arbitrary date to its week range
*/
package calendar

import (
	"fmt"
	"time"
)

// =============================================================================
// DATE - Naive calendar date
// =============================================================================

// Date is a calendar date with no time-of-day or time zone component.
// The zero value is the zero time and reports IsZero() == true.
type Date struct {
	t time.Time
}

// NewDate builds a Date from its components.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// Today returns the current local calendar date.
func Today() Date {
	now := time.Now()
	return NewDate(now.Year(), now.Month(), now.Day())
}

// ParseDate parses a "YYYY-MM-DD" string into a Date.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return NewDate(t.Year(), t.Month(), t.Day()), nil
}

// Comparison
func (d Date) Before(other Date) bool        { return d.t.Before(other.t) }
func (d Date) Equal(other Date) bool         { return d.t.Equal(other.t) }
func (d Date) After(other Date) bool         { return d.t.After(other.t) }
func (d Date) BeforeOrEqual(other Date) bool { return d.Before(other) || d.Equal(other) }
func (d Date) AfterOrEqual(other Date) bool  { return d.After(other) || d.Equal(other) }

// Arithmetic
func (d Date) AddDays(n int) Date { return Date{t: d.t.AddDate(0, 0, n)} }

// Properties
func (d Date) Year() int             { return d.t.Year() }
func (d Date) Month() time.Month     { return d.t.Month() }
func (d Date) Day() int              { return d.t.Day() }
func (d Date) Weekday() time.Weekday { return d.t.Weekday() }
func (d Date) IsZero() bool          { return d.t.IsZero() }

// IsBusinessDay reports whether the date falls on Monday through Friday.
func (d Date) IsBusinessDay() bool {
	wd := d.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// SameMonth reports whether the date falls in the given year and month.
func (d Date) SameMonth(year int, month time.Month) bool {
	return d.Year() == year && d.Month() == month
}

func (d Date) String() string { return d.t.Format("2006-01-02") }

// =============================================================================
// MONTH BOUNDARIES
// =============================================================================

// StartOfMonth returns the first day of the given month.
func StartOfMonth(year int, month time.Month) Date { return NewDate(year, month, 1) }

// EndOfMonth returns the last day of the given month.
func EndOfMonth(year int, month time.Month) Date {
	t := time.Date(year, month+1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
	return NewDate(t.Year(), t.Month(), t.Day())
}

// BusinessDays enumerates every business day of the month in ascending order.
func BusinessDays(year int, month time.Month) []Date {
	var days []Date
	end := EndOfMonth(year, month)
	for d := StartOfMonth(year, month); d.BeforeOrEqual(end); d = d.AddDays(1) {
		if d.IsBusinessDay() {
			days = append(days, d)
		}
	}
	return days
}
