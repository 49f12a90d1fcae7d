package calendar

// =============================================================================
// WEEK ASSIGNMENT - Which week range owns a given date
// =============================================================================

// Assignment is the result of resolving a date against a month partition.
// Approximate is set when the primary containment scan failed and the week
// number was estimated from elapsed business days instead; callers should
// treat such results as degraded and log them.
type Assignment struct {
	Week        int
	Approximate bool
}

// WeekFor resolves the week range that contains the given date.
//
// The primary path scans the ranges in order and returns the first one whose
// [Start, End] span contains the date. If no range matches (which should not
// happen when the ranges come from ComputeWeeks for the date's own month),
// the week number is estimated by counting business days from the 1st of the
// date's month through the date and dividing by five, rounded up. The
// estimate is a safety net, not a validated partition lookup.
//
// ok is false only when the estimate cannot produce a week at all (no ranges
// supplied and the date precedes every business day of its month).
func WeekFor(d Date, ranges []WeekRange) (a Assignment, ok bool) {
	for _, w := range ranges {
		if w.Contains(d) {
			return Assignment{Week: w.Number}, true
		}
	}
	if week := approximateWeek(d); week > 0 {
		return Assignment{Week: week, Approximate: true}, true
	}
	return Assignment{}, false
}

// approximateWeek counts business days elapsed since the 1st of the date's
// month, inclusive of the date itself, and maps every five onto one week.
func approximateWeek(d Date) int {
	elapsed := 0
	for cur := StartOfMonth(d.Year(), d.Month()); cur.BeforeOrEqual(d); cur = cur.AddDays(1) {
		if cur.IsBusinessDay() {
			elapsed++
		}
	}
	if elapsed == 0 {
		return 0
	}
	return (elapsed + maxWeekDays - 1) / maxWeekDays
}
