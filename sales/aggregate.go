package sales

import (
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/alianza/sales-engine/calendar"
)

// =============================================================================
// AGGREGATOR
// =============================================================================

// Aggregator groups the sales of one period into weekly buckets.
// The zero value is not usable; construct with NewAggregator.
type Aggregator struct {
	logger *zap.Logger
}

// NewAggregator builds an aggregator. A nil logger disables logging.
func NewAggregator(logger *zap.Logger) *Aggregator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Aggregator{logger: logger}
}

// Aggregate runs one pass over the sales of the given period.
//
// Rows whose sale date is malformed or falls outside (year, month) are
// skipped and logged, never fatal. Week resolution goes through
// calendar.WeekFor; an approximate resolution is accepted but logged as
// degraded. Every week number of the partition appears in the result's
// WeeklyTotals and in every salesperson's WeeklyStats, zero-filled when
// empty, so downstream rendering never special-cases missing weeks.
func (a *Aggregator) Aggregate(rows []Sale, year int, month time.Month, weeks []calendar.WeekRange) *Result {
	res := &Result{
		WeeklyTotals: make(map[int]WeeklyStat, len(weeks)),
	}
	for _, w := range weeks {
		res.AvailableWeeks = append(res.AvailableWeeks, w.Number)
		res.WeeklyTotals[w.Number] = WeeklyStat{}
	}

	byID := make(map[SalespersonID]*Aggregate)
	var order []SalespersonID

	for _, row := range rows {
		date, err := calendar.ParseDate(row.SaleDate)
		if err != nil {
			res.Skipped++
			a.logger.Warn("skipping sale with malformed date",
				zap.String("sale_id", row.ID),
				zap.String("sale_date", row.SaleDate),
				zap.Error(err))
			continue
		}
		if !date.SameMonth(year, month) {
			res.Skipped++
			continue
		}

		assignment, ok := calendar.WeekFor(date, weeks)
		if !ok {
			res.Skipped++
			a.logger.Warn("skipping sale with unresolvable week",
				zap.String("sale_id", row.ID),
				zap.String("sale_date", row.SaleDate))
			continue
		}
		if assignment.Approximate {
			a.logger.Warn("sale week resolved via fallback estimate",
				zap.String("sale_id", row.ID),
				zap.String("sale_date", row.SaleDate),
				zap.Int("week", assignment.Week))
		}

		agg, seen := byID[row.SalespersonID]
		if !seen {
			agg = &Aggregate{
				ID:          row.SalespersonID,
				Name:        row.SalespersonName,
				Initials:    Initials(row.SalespersonName),
				WeeklyStats: newWeekBuckets(weeks),
			}
			byID[row.SalespersonID] = agg
			order = append(order, row.SalespersonID)
		}

		week := assignment.Week
		agg.WeeklyStats[week] = agg.WeeklyStats[week].add(row.GrossAmount)
		agg.TotalCount++
		agg.TotalAmount = agg.TotalAmount.Add(row.GrossAmount)
		res.WeeklyTotals[week] = res.WeeklyTotals[week].add(row.GrossAmount)
	}

	// Rank by total descending; ties keep first-appearance order.
	res.PerSalesperson = make([]*Aggregate, 0, len(order))
	for _, id := range order {
		res.PerSalesperson = append(res.PerSalesperson, byID[id])
	}
	sort.SliceStable(res.PerSalesperson, func(i, j int) bool {
		return res.PerSalesperson[i].TotalAmount.GreaterThan(res.PerSalesperson[j].TotalAmount)
	})
	for i, agg := range res.PerSalesperson {
		agg.Position = i + 1
	}

	return res
}

func newWeekBuckets(weeks []calendar.WeekRange) map[int]WeeklyStat {
	buckets := make(map[int]WeeklyStat, len(weeks))
	for _, w := range weeks {
		buckets[w.Number] = WeeklyStat{}
	}
	return buckets
}
