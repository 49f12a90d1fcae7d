/*
Package report assembles the monthly sales report.

PURPOSE:
  The facade over the engine: given the raw sale rows, goal records, and
  contract classifications of one period, produce the complete structure
  the presentation layer renders — the week partition, ranked per-person
  rows with commission and goal figures, team-wide weekly totals, and a
  team summary row.

DATA FLOW:
  sales rows ──► calendar.ComputeWeeks ──► sales.Aggregator
                                                │
  goal records ───────────► goals.Engine ◄──────┤
  contract types ─────────► commission ◄────────┘
                                                │
                                         report.Monthly

PURITY:
  Build is a pure, synchronous transformation. It never fetches, retries,
  or blocks; fetching the inputs (and cancelling by discarding the result)
  is the caller's job. Concurrent Build calls for different periods are
  safe: no shared mutable state survives a call.
*/
package report

import (
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/alianza/sales-engine/calendar"
	"github.com/alianza/sales-engine/commission"
	"github.com/alianza/sales-engine/goals"
	"github.com/alianza/sales-engine/ranking"
	"github.com/alianza/sales-engine/sales"
)

// =============================================================================
// INPUT / OUTPUT TYPES
// =============================================================================

// Input is everything one Build call consumes.
type Input struct {
	Year  int
	Month time.Month
	Sales []sales.Sale
	Goals []goals.Record
	// Contracts classifies salespeople; missing entries default to PJ.
	Contracts map[sales.SalespersonID]commission.ContractType
}

// Row is one salesperson's line of the report.
type Row struct {
	sales.Aggregate

	Contract       commission.ContractType `json:"contract"`
	Commission     commission.Result       `json:"commission"`
	Goal           decimal.Decimal         `json:"goal"`
	GoalGap        decimal.Decimal         `json:"goal_gap"`
	GoalPercent    decimal.Decimal         `json:"goal_percent"`
	WeeklyGoalEst  decimal.Decimal         `json:"weekly_goal_estimate"`
	IsTeamTotal    bool                    `json:"is_team_total,omitempty"`
}

// Monthly is the full report for one period.
type Monthly struct {
	Year           int
	Month          time.Month
	WeekRanges     []calendar.WeekRange
	AvailableWeeks []int
	// Rows is sorted by total amount descending with Position assigned.
	Rows []Row
	// Team is the synthesized totals row; when sorting for display it is
	// appended last and exempt from ordering.
	Team         Row
	WeeklyTotals map[int]sales.WeeklyStat
	SkippedRows  int
}

// =============================================================================
// BUILDER
// =============================================================================

// Builder runs the aggregation pipeline.
type Builder struct {
	aggregator *sales.Aggregator
	goals      *goals.Engine
}

// NewBuilder wires a builder. A nil logger disables logging; cfg supplies
// the goal-estimation constants.
func NewBuilder(cfg goals.Config, logger *zap.Logger) *Builder {
	return &Builder{
		aggregator: sales.NewAggregator(logger),
		goals:      goals.NewEngine(cfg),
	}
}

// Build produces the monthly report for one period.
func (b *Builder) Build(in Input) *Monthly {
	weeks := calendar.ComputeWeeks(in.Year, in.Month)
	agg := b.aggregator.Aggregate(in.Sales, in.Year, in.Month, weeks)

	totals := make([]decimal.Decimal, len(agg.PerSalesperson))
	for i, p := range agg.PerSalesperson {
		totals[i] = p.TotalAmount
	}

	out := &Monthly{
		Year:           in.Year,
		Month:          in.Month,
		WeekRanges:     weeks,
		AvailableWeeks: agg.AvailableWeeks,
		WeeklyTotals:   agg.WeeklyTotals,
		SkippedRows:    agg.Skipped,
	}

	teamTotal := decimal.Zero
	teamCount := 0
	teamGoal := decimal.Zero

	for _, p := range agg.PerSalesperson {
		contract := in.Contracts[p.ID].Normalize()
		goal := goals.GoalFor(in.Goals, string(p.ID), int(in.Month), in.Year)

		row := Row{
			Aggregate:     *p,
			Contract:      contract,
			Commission:    commission.Calculate(p.TotalAmount, contract),
			Goal:          goal,
			GoalGap:       b.goals.Gap(p.TotalAmount, goal),
			GoalPercent:   b.goals.Percentage(p.TotalAmount, goal),
			WeeklyGoalEst: b.goals.EstimateWeeklyGoal(p.TotalAmount, totals),
		}
		out.Rows = append(out.Rows, row)

		teamTotal = teamTotal.Add(p.TotalAmount)
		teamCount += p.TotalCount
		teamGoal = teamGoal.Add(goal)
	}

	out.Team = Row{
		Aggregate: sales.Aggregate{
			Name:        "Total",
			WeeklyStats: agg.WeeklyTotals,
			TotalCount:  teamCount,
			TotalAmount: teamTotal,
		},
		Goal:        teamGoal,
		GoalGap:     b.goals.Gap(teamTotal, teamGoal),
		GoalPercent: b.goals.Percentage(teamTotal, teamGoal),
		IsTeamTotal: true,
	}

	return out
}

// =============================================================================
// DISPLAY ORDERING
// =============================================================================

// SortedRows returns the report rows ordered for display by the given key
// and direction, with the team totals row appended last.
func (m *Monthly) SortedRows(key ranking.Key, dir ranking.Direction) []Row {
	rows := make([]Row, 0, len(m.Rows)+1)
	rows = append(rows, m.Rows...)
	rows = append(rows, m.Team)

	cmpStr := ranking.StringComparator()
	var cmp func(a, b Row) int
	switch key {
	case ranking.KeyName:
		cmp = func(a, b Row) int { return cmpStr(a.Name, b.Name) }
	case ranking.KeyTotalCount:
		cmp = func(a, b Row) int { return ranking.CompareInts(a.TotalCount, b.TotalCount) }
	case ranking.KeyCommission:
		cmp = func(a, b Row) int { return ranking.CompareDecimals(a.Commission.Amount, b.Commission.Amount) }
	case ranking.KeyGoalPercent:
		cmp = func(a, b Row) int { return ranking.CompareDecimals(a.GoalPercent, b.GoalPercent) }
	default:
		cmp = func(a, b Row) int { return ranking.CompareDecimals(a.TotalAmount, b.TotalAmount) }
	}

	return ranking.Sort(rows, dir, cmp, func(r Row) bool { return r.IsTeamTotal })
}
