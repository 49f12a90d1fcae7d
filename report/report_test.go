package report_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alianza/sales-engine/commission"
	"github.com/alianza/sales-engine/goals"
	"github.com/alianza/sales-engine/ranking"
	"github.com/alianza/sales-engine/report"
	"github.com/alianza/sales-engine/sales"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func sale(id string, person sales.SalespersonID, name, date string, amount string) sales.Sale {
	return sales.Sale{
		ID:              id,
		SalespersonID:   person,
		SalespersonName: name,
		SaleDate:        date,
		GrossAmount:     dec(amount),
		PaymentMethod:   "pix",
	}
}

func mayInput() report.Input {
	return report.Input{
		Year:  2025,
		Month: time.May,
		Sales: []sales.Sale{
			sale("s1", "u1", "Ana Souza", "2025-05-02", "8000"),
			sale("s2", "u1", "Ana Souza", "2025-05-12", "4000"),
			sale("s3", "u2", "Bruno Lima", "2025-05-06", "6000"),
			sale("s4", "u3", "Carla Dias", "2025-05-30", "2000"),
		},
		Goals: []goals.Record{
			{UserID: "u1", Month: 5, Year: 2025, GoalAmount: dec("10000")},
			{UserID: "u2", Month: 5, Year: 2025, GoalAmount: dec("8000")},
		},
		Contracts: map[sales.SalespersonID]commission.ContractType{
			"u1": commission.ContractPJ,
			"u2": commission.ContractCLT,
		},
	}
}

// =============================================================================
// PIPELINE TESTS
// =============================================================================

func TestBuild_FullPipeline(t *testing.T) {
	// GIVEN: Three salespeople, two with configured goals, mixed contracts
	// WHEN: Building the May 2025 report
	// THEN: Ranking, commission, and goal figures all line up

	m := report.NewBuilder(goals.StandardConfig(), nil).Build(mayInput())

	require.Len(t, m.Rows, 3)
	require.Len(t, m.WeekRanges, 5)
	assert.Zero(t, m.SkippedRows)

	// Ana: 12000 total, PJ, above the 10000 threshold.
	ana := m.Rows[0]
	assert.Equal(t, sales.SalespersonID("u1"), ana.ID)
	assert.Equal(t, 1, ana.Position)
	assert.True(t, ana.Commission.Rate.Equal(dec("0.25")))
	assert.True(t, ana.Commission.Amount.Equal(dec("3000")))
	assert.True(t, ana.GoalGap.Equal(dec("2000")))
	assert.True(t, ana.GoalPercent.Equal(dec("120")))

	// Bruno: 6000 total, CLT, below threshold.
	bruno := m.Rows[1]
	assert.True(t, bruno.Commission.Rate.Equal(dec("0.05")))
	assert.True(t, bruno.Commission.Amount.Equal(dec("300")))
	assert.True(t, bruno.GoalGap.Equal(dec("-2000")))
	assert.True(t, bruno.GoalPercent.Equal(dec("75")))

	// Carla: no goal record, no contract entry — PJ default, percentage 0.
	carla := m.Rows[2]
	assert.Equal(t, commission.ContractPJ, carla.Contract)
	assert.True(t, carla.Goal.IsZero())
	assert.True(t, carla.GoalPercent.IsZero())
	assert.True(t, carla.GoalGap.Equal(dec("2000")))
}

func TestBuild_TeamRow(t *testing.T) {
	m := report.NewBuilder(goals.StandardConfig(), nil).Build(mayInput())

	assert.True(t, m.Team.IsTeamTotal)
	assert.True(t, m.Team.TotalAmount.Equal(dec("20000")))
	assert.Equal(t, 4, m.Team.TotalCount)
	assert.True(t, m.Team.Goal.Equal(dec("18000")))
	assert.True(t, m.Team.GoalGap.Equal(dec("2000")))

	// Team weekly stats are the team-wide totals per week.
	sum := decimal.Zero
	for _, s := range m.Team.WeeklyStats {
		sum = sum.Add(s.Amount)
	}
	assert.True(t, sum.Equal(m.Team.TotalAmount))
}

func TestBuild_WeeklyGoalEstimate(t *testing.T) {
	// Team totals 12000/6000/2000, mean 6666.66…; Ana's own total 12000
	// dominates: 12000 × 1.1 / 20 × 5 = 3300.

	m := report.NewBuilder(goals.StandardConfig(), nil).Build(mayInput())
	assert.True(t, m.Rows[0].WeeklyGoalEst.Equal(dec("3300")), "got %s", m.Rows[0].WeeklyGoalEst)
}

func TestBuild_EmptyPeriod(t *testing.T) {
	m := report.NewBuilder(goals.StandardConfig(), nil).Build(report.Input{Year: 2025, Month: time.May})

	assert.Empty(t, m.Rows)
	assert.Len(t, m.WeekRanges, 5)
	assert.True(t, m.Team.TotalAmount.IsZero())
	assert.True(t, m.Team.GoalPercent.IsZero(), "zero goal must degrade to 0, not NaN")
}

// =============================================================================
// DISPLAY ORDERING TESTS
// =============================================================================

func TestSortedRows_TeamAlwaysLast(t *testing.T) {
	m := report.NewBuilder(goals.StandardConfig(), nil).Build(mayInput())

	for _, key := range []ranking.Key{ranking.KeyName, ranking.KeyTotalAmount, ranking.KeyCommission} {
		for _, dir := range []ranking.Direction{ranking.Ascending, ranking.Descending} {
			rows := m.SortedRows(key, dir)
			require.Len(t, rows, 4)
			assert.True(t, rows[len(rows)-1].IsTeamTotal, "key=%s dir=%s", key, dir)
		}
	}
}

func TestSortedRows_ByName(t *testing.T) {
	m := report.NewBuilder(goals.StandardConfig(), nil).Build(mayInput())

	rows := m.SortedRows(ranking.KeyName, ranking.Ascending)
	assert.Equal(t, "Ana Souza", rows[0].Name)
	assert.Equal(t, "Bruno Lima", rows[1].Name)
	assert.Equal(t, "Carla Dias", rows[2].Name)
}

func TestSortedRows_ByCommission(t *testing.T) {
	m := report.NewBuilder(goals.StandardConfig(), nil).Build(mayInput())

	rows := m.SortedRows(ranking.KeyCommission, ranking.Descending)
	// Ana 3000, Bruno 300 (CLT), Carla 400 (PJ 2000×0.20).
	assert.Equal(t, "Ana Souza", rows[0].Name)
	assert.Equal(t, "Carla Dias", rows[1].Name)
	assert.Equal(t, "Bruno Lima", rows[2].Name)
}
