/*
Package goals compares sales performance against monthly goals and, when no
goal is configured, estimates a weekly pace target.

PURPOSE:
  Two jobs. For externally configured monthly goals (one GoalRecord per
  salesperson per month), compute the signed gap and a capped percentage.
  For weekly pace coloring where no real goal exists, estimate a weekly
  target from the team's observed totals.

THE ESTIMATE IS A HEURISTIC:
  The weekly-goal estimate is not a committed target. It takes the greater
  of the team mean and the person's own total, adds a growth factor, spreads
  the result over a month of business days, and scales back up to a week.
  Production data disagrees on how many business days a month has on
  average (20 in some call sites, 22 in others); both constant sets are
  preserved as named presets until product settles the question.

GUARANTEES:
  No NaN, no Infinity. A zero goal yields percentage 0; an empty team
  yields estimate 0.
*/
package goals

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// GOAL RECORD - Externally configured monthly goal
// =============================================================================

// Record is a configured monthly goal for one salesperson. Absence of a
// record means a goal of zero.
type Record struct {
	UserID     string          `json:"user_id"`
	Month      int             `json:"month"`
	Year       int             `json:"year"`
	GoalAmount decimal.Decimal `json:"goal_amount"`
}

// =============================================================================
// CONFIG
// =============================================================================

// Config holds the constants behind the weekly-goal estimate and the
// percentage cap.
type Config struct {
	// AvgBusinessDays is the assumed number of business days in a month.
	AvgBusinessDays decimal.Decimal
	// DaysPerWeek scales a daily target back to a reporting week.
	DaysPerWeek decimal.Decimal
	// GrowthFactor is applied on top of observed totals (1.1 = +10%).
	GrowthFactor decimal.Decimal
	// CapPercent bounds goal percentages for display (200 = 200%).
	CapPercent decimal.Decimal
}

// StandardConfig is the constant set most call sites of the original system
// use: 20 business days per month.
func StandardConfig() Config {
	return Config{
		AvgBusinessDays: decimal.NewFromInt(20),
		DaysPerWeek:     decimal.NewFromInt(5),
		GrowthFactor:    decimal.RequireFromString("1.1"),
		CapPercent:      decimal.NewFromInt(200),
	}
}

// LongMonthConfig is the competing constant set observed in other call
// sites: 22 business days per month. Kept until one set is confirmed as
// authoritative.
func LongMonthConfig() Config {
	cfg := StandardConfig()
	cfg.AvgBusinessDays = decimal.NewFromInt(22)
	return cfg
}

// =============================================================================
// ENGINE
// =============================================================================

// Engine computes goal gaps, percentages, and pace estimates.
type Engine struct {
	cfg Config
}

// NewEngine builds an engine with the given constants.
func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// EstimateWeeklyGoal derives a weekly pace target for one salesperson from
// the totals of all aggregated salespeople in the period.
//
// The monthly target is the greater of the team mean and the person's own
// total, times the growth factor; it is spread over AvgBusinessDays and
// scaled by DaysPerWeek. An empty team yields zero.
func (e *Engine) EstimateWeeklyGoal(personTotal decimal.Decimal, allTotals []decimal.Decimal) decimal.Decimal {
	if len(allTotals) == 0 {
		return decimal.Zero
	}

	sum := decimal.Zero
	for _, t := range allTotals {
		sum = sum.Add(t)
	}
	mean := sum.Div(decimal.NewFromInt(int64(len(allTotals))))

	base := mean
	if personTotal.GreaterThan(base) {
		base = personTotal
	}
	monthly := base.Mul(e.cfg.GrowthFactor)

	daily := monthly.Div(e.cfg.AvgBusinessDays)
	return daily.Mul(e.cfg.DaysPerWeek)
}

// Gap returns actual minus goal; positive means ahead of pace.
func (e *Engine) Gap(actual, goal decimal.Decimal) decimal.Decimal {
	return actual.Sub(goal)
}

// Percentage returns actual/goal as a percentage, capped at CapPercent.
// A zero or negative goal yields 0, never NaN or Infinity.
func (e *Engine) Percentage(actual, goal decimal.Decimal) decimal.Decimal {
	if goal.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	pct := actual.Div(goal).Mul(decimal.NewFromInt(100))
	if pct.GreaterThan(e.cfg.CapPercent) {
		return e.cfg.CapPercent
	}
	return pct
}

// GoalFor looks up the configured goal for a salesperson in a period.
// A missing record means a goal of zero.
func GoalFor(records []Record, userID string, month, year int) decimal.Decimal {
	for _, r := range records {
		if r.UserID == userID && r.Month == month && r.Year == year {
			return r.GoalAmount
		}
	}
	return decimal.Zero
}
