package calendar

import (
	"fmt"
	"time"
)

// =============================================================================
// WEEK RANGE - A contiguous span of business days within a month
// =============================================================================

// WeekRange is one reporting bucket: up to five consecutive business days,
// closed no later than a Friday. Week numbers are contiguous starting at 1.
type WeekRange struct {
	Number int
	Start  Date
	End    Date
}

// Contains reports whether the date falls inside [Start, End], compared at
// calendar-date granularity.
func (w WeekRange) Contains(d Date) bool {
	return d.AfterOrEqual(w.Start) && d.BeforeOrEqual(w.End)
}

// Days returns the business days of the range in ascending order.
func (w WeekRange) Days() []Date {
	var days []Date
	for d := w.Start; d.BeforeOrEqual(w.End); d = d.AddDays(1) {
		if d.IsBusinessDay() {
			days = append(days, d)
		}
	}
	return days
}

func (w WeekRange) String() string {
	return fmt.Sprintf("week %d [%s, %s]", w.Number, w.Start, w.End)
}

// =============================================================================
// MONTH PARTITION
// =============================================================================

// maxWeekDays is the bucket capacity: one Monday-to-Friday span.
const maxWeekDays = 5

// ComputeWeeks partitions a month's business days into week ranges.
//
// A week closes when it holds five business days, when the current day is a
// Friday, or when the month runs out of business days. The first and last
// ranges may therefore be shorter than five days; no range is ever empty.
func ComputeWeeks(year int, month time.Month) []WeekRange {
	days := BusinessDays(year, month)
	if len(days) == 0 {
		return nil
	}

	var weeks []WeekRange
	number := 1
	start := days[0]
	count := 0

	for i, d := range days {
		count++
		lastOfMonth := i == len(days)-1
		if count == maxWeekDays || d.Weekday() == time.Friday || lastOfMonth {
			weeks = append(weeks, WeekRange{Number: number, Start: start, End: d})
			number++
			count = 0
			if !lastOfMonth {
				start = days[i+1]
			}
		}
	}
	return weeks
}
