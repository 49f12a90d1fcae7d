/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal engine model from the external API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

AMOUNT ENCODING:
  Monetary figures are encoded as decimal strings ("1234.56"), never JSON
  numbers, to keep cent-exact values across the wire.
*/
package api

import (
	"github.com/shopspring/decimal"

	"github.com/alianza/sales-engine/calendar"
	"github.com/alianza/sales-engine/report"
	"github.com/alianza/sales-engine/sales"
	"github.com/alianza/sales-engine/store/sqlite"
)

// =============================================================================
// REQUEST/RESPONSE TYPES
// =============================================================================

// SalespersonDTO represents a salesperson profile.
type SalespersonDTO struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Contract string `json:"contract"`
}

// CreateSalespersonRequest is the request to register a salesperson.
type CreateSalespersonRequest struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Contract string `json:"contract"`
}

// CreateSaleRequest is the request to record a sale. ID is optional; the
// server generates one when absent.
type CreateSaleRequest struct {
	ID              string `json:"id,omitempty"`
	SalespersonID   string `json:"salesperson_id"`
	SalespersonName string `json:"salesperson_name,omitempty"`
	SaleDate        string `json:"sale_date"`
	GrossAmount     string `json:"gross_amount"`
	PaymentMethod   string `json:"payment_method"`
}

// UpsertGoalRequest sets the monthly goal of one salesperson.
type UpsertGoalRequest struct {
	UserID     string `json:"user_id"`
	Month      int    `json:"month"`
	Year       int    `json:"year"`
	GoalAmount string `json:"goal_amount"`
}

// WeekRangeDTO is one reporting week of a month partition.
type WeekRangeDTO struct {
	Number int    `json:"number"`
	Start  string `json:"start"`
	End    string `json:"end"`
}

// WeeklyStatDTO is one aggregated bucket.
type WeeklyStatDTO struct {
	Count  int    `json:"count"`
	Amount string `json:"amount"`
}

// ReportRowDTO is one line of the monthly report table.
type ReportRowDTO struct {
	ID               string                `json:"id,omitempty"`
	Name             string                `json:"name"`
	Initials         string                `json:"initials,omitempty"`
	Position         int                   `json:"position,omitempty"`
	Contract         string                `json:"contract,omitempty"`
	WeeklyStats      map[int]WeeklyStatDTO `json:"weekly_stats"`
	TotalCount       int                   `json:"total_count"`
	TotalAmount      string                `json:"total_amount"`
	CommissionRate   string                `json:"commission_rate,omitempty"`
	CommissionAmount string                `json:"commission_amount,omitempty"`
	Goal             string                `json:"goal"`
	GoalGap          string                `json:"goal_gap"`
	GoalPercent      string                `json:"goal_percent"`
	WeeklyGoalEst    string                `json:"weekly_goal_estimate,omitempty"`
	IsTeamTotal      bool                  `json:"is_team_total,omitempty"`
}

// MonthlyReportDTO is the full report response.
type MonthlyReportDTO struct {
	Year           int                   `json:"year"`
	Month          int                   `json:"month"`
	WeekRanges     []WeekRangeDTO        `json:"week_ranges"`
	AvailableWeeks []int                 `json:"available_weeks"`
	Rows           []ReportRowDTO        `json:"rows"`
	WeeklyTotals   map[int]WeeklyStatDTO `json:"weekly_totals"`
	SortKey        string                `json:"sort_key"`
	SortDirection  string                `json:"sort_direction"`
	SkippedRows    int                   `json:"skipped_rows,omitempty"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func toWeekRangeDTOs(weeks []calendar.WeekRange) []WeekRangeDTO {
	dtos := make([]WeekRangeDTO, len(weeks))
	for i, w := range weeks {
		dtos[i] = WeekRangeDTO{Number: w.Number, Start: w.Start.String(), End: w.End.String()}
	}
	return dtos
}

func toWeeklyStatDTOs(stats map[int]sales.WeeklyStat) map[int]WeeklyStatDTO {
	dtos := make(map[int]WeeklyStatDTO, len(stats))
	for week, s := range stats {
		dtos[week] = WeeklyStatDTO{Count: s.Count, Amount: s.Amount.String()}
	}
	return dtos
}

func toReportRowDTO(r report.Row) ReportRowDTO {
	dto := ReportRowDTO{
		ID:          string(r.ID),
		Name:        r.Name,
		Initials:    r.Initials,
		Position:    r.Position,
		Contract:    string(r.Contract),
		WeeklyStats: toWeeklyStatDTOs(r.WeeklyStats),
		TotalCount:  r.TotalCount,
		TotalAmount: r.TotalAmount.String(),
		Goal:        r.Goal.String(),
		GoalGap:     r.GoalGap.String(),
		GoalPercent: r.GoalPercent.String(),
		IsTeamTotal: r.IsTeamTotal,
	}
	if !r.IsTeamTotal {
		dto.CommissionRate = r.Commission.Rate.String()
		dto.CommissionAmount = r.Commission.Amount.String()
		dto.WeeklyGoalEst = r.WeeklyGoalEst.String()
	}
	return dto
}

func toSalespersonDTO(p sqlite.Salesperson) SalespersonDTO {
	return SalespersonDTO{ID: string(p.ID), Name: p.Name, Contract: string(p.Contract)}
}

func parseAmount(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(s)
}
