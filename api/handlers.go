/*
handlers.go - HTTP API handlers for the sales engine

PURPOSE:
  Exposes the aggregation pipeline via REST. Handlers own the fetch
  boundary: they read raw rows from the store (async, may fail, returns
  5xx) and hand them to the pure report builder (sync, cannot fail).

ENDPOINTS:
  Reports:
    GET  /api/reports/monthly?year&month&sort&dir   Full monthly report

  Calendar:
    GET  /api/calendar/weeks?year&month             Week partition

  Salespeople:
    GET  /api/salespeople                           List profiles
    POST /api/salespeople                           Create/update profile

  Sales:
    GET  /api/sales?year&month                      List raw sales
    POST /api/sales                                 Record a sale

  Goals:
    GET  /api/goals?year&month                      List goal records
    PUT  /api/goals                                 Upsert a goal

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 404: Resource not found
  - 500: Store errors

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/alianza/sales-engine/calendar"
	"github.com/alianza/sales-engine/commission"
	"github.com/alianza/sales-engine/goals"
	"github.com/alianza/sales-engine/ranking"
	"github.com/alianza/sales-engine/report"
	"github.com/alianza/sales-engine/sales"
	"github.com/alianza/sales-engine/store/sqlite"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store   *sqlite.Store
	Builder *report.Builder

	logger *zap.Logger
}

// NewHandler creates a handler. A nil logger disables logging.
func NewHandler(store *sqlite.Store, builder *report.Builder, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{Store: store, Builder: builder, logger: logger}
}

// =============================================================================
// REPORT HANDLERS
// =============================================================================

// GetMonthlyReport builds and returns the report for one period.
func (h *Handler) GetMonthlyReport(w http.ResponseWriter, r *http.Request) {
	year, month, ok := parsePeriod(w, r)
	if !ok {
		return
	}

	ctx := r.Context()
	rows, err := h.Store.ListSales(ctx, year, month)
	if err != nil {
		h.logger.Error("list sales", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to load sales", err)
		return
	}
	goalRecords, err := h.Store.ListGoals(ctx, year, month)
	if err != nil {
		h.logger.Error("list goals", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to load goals", err)
		return
	}
	contracts, err := h.Store.Contracts(ctx)
	if err != nil {
		h.logger.Error("list contracts", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to load salespeople", err)
		return
	}

	m := h.Builder.Build(report.Input{
		Year:      year,
		Month:     month,
		Sales:     rows,
		Goals:     goalRecords,
		Contracts: contracts,
	})

	key := ranking.ParseKey(r.URL.Query().Get("sort"))
	dir := ranking.ParseDirection(r.URL.Query().Get("dir"))

	dto := MonthlyReportDTO{
		Year:           m.Year,
		Month:          int(m.Month),
		WeekRanges:     toWeekRangeDTOs(m.WeekRanges),
		AvailableWeeks: m.AvailableWeeks,
		WeeklyTotals:   toWeeklyStatDTOs(m.WeeklyTotals),
		SortKey:        string(key),
		SortDirection:  string(dir),
		SkippedRows:    m.SkippedRows,
	}
	for _, row := range m.SortedRows(key, dir) {
		dto.Rows = append(dto.Rows, toReportRowDTO(row))
	}

	writeJSON(w, http.StatusOK, dto)
}

// GetWeeks returns the business-day week partition of one period.
func (h *Handler) GetWeeks(w http.ResponseWriter, r *http.Request) {
	year, month, ok := parsePeriod(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toWeekRangeDTOs(calendar.ComputeWeeks(year, month)))
}

// =============================================================================
// SALESPERSON HANDLERS
// =============================================================================

// ListSalespeople returns all registered profiles.
func (h *Handler) ListSalespeople(w http.ResponseWriter, r *http.Request) {
	people, err := h.Store.ListSalespeople(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list salespeople", err)
		return
	}
	dtos := make([]SalespersonDTO, len(people))
	for i, p := range people {
		dtos[i] = toSalespersonDTO(p)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateSalesperson registers or updates a profile.
func (h *Handler) CreateSalesperson(w http.ResponseWriter, r *http.Request) {
	var req CreateSalespersonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.ID == "" || req.Name == "" {
		writeError(w, http.StatusBadRequest, "id and name are required", nil)
		return
	}

	p := sqlite.Salesperson{
		ID:       sales.SalespersonID(req.ID),
		Name:     req.Name,
		Contract: commission.ContractType(req.Contract).Normalize(),
	}
	if err := h.Store.SaveSalesperson(r.Context(), p); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save salesperson", err)
		return
	}
	writeJSON(w, http.StatusCreated, toSalespersonDTO(p))
}

// =============================================================================
// SALE HANDLERS
// =============================================================================

// ListSales returns the raw sale rows of one period.
func (h *Handler) ListSales(w http.ResponseWriter, r *http.Request) {
	year, month, ok := parsePeriod(w, r)
	if !ok {
		return
	}
	rows, err := h.Store.ListSales(r.Context(), year, month)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list sales", err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// CreateSale records one sale.
func (h *Handler) CreateSale(w http.ResponseWriter, r *http.Request) {
	var req CreateSaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.SalespersonID == "" {
		writeError(w, http.StatusBadRequest, "salesperson_id is required", nil)
		return
	}
	if _, err := calendar.ParseDate(req.SaleDate); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid sale_date format (use YYYY-MM-DD)", err)
		return
	}
	amount, err := parseAmount(req.GrossAmount)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid gross_amount", err)
		return
	}
	if amount.IsNegative() {
		writeError(w, http.StatusBadRequest, "gross_amount must not be negative", nil)
		return
	}

	name := req.SalespersonName
	if name == "" {
		p, err := h.Store.GetSalesperson(r.Context(), sales.SalespersonID(req.SalespersonID))
		if err != nil {
			writeError(w, http.StatusBadRequest, "salesperson_name is required for unknown salespeople", err)
			return
		}
		name = p.Name
	}

	row := sales.Sale{
		ID:              req.ID,
		SalespersonID:   sales.SalespersonID(req.SalespersonID),
		SalespersonName: name,
		SaleDate:        req.SaleDate,
		GrossAmount:     amount,
		PaymentMethod:   req.PaymentMethod,
	}
	if row.ID == "" {
		row.ID = uuid.NewString()
	}

	if err := h.Store.RecordSale(r.Context(), row); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to record sale", err)
		return
	}
	writeJSON(w, http.StatusCreated, row)
}

// =============================================================================
// GOAL HANDLERS
// =============================================================================

// ListGoals returns the goal records of one period.
func (h *Handler) ListGoals(w http.ResponseWriter, r *http.Request) {
	year, month, ok := parsePeriod(w, r)
	if !ok {
		return
	}
	records, err := h.Store.ListGoals(r.Context(), year, month)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list goals", err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

// UpsertGoal sets the monthly goal of one salesperson.
func (h *Handler) UpsertGoal(w http.ResponseWriter, r *http.Request) {
	var req UpsertGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.UserID == "" {
		writeError(w, http.StatusBadRequest, "user_id is required", nil)
		return
	}
	if req.Month < 1 || req.Month > 12 {
		writeError(w, http.StatusBadRequest, "month must be 1-12", nil)
		return
	}
	amount, err := parseAmount(req.GoalAmount)
	if err != nil || amount.IsNegative() {
		writeError(w, http.StatusBadRequest, "Invalid goal_amount", err)
		return
	}

	record := goals.Record{
		UserID:     req.UserID,
		Month:      req.Month,
		Year:       req.Year,
		GoalAmount: amount,
	}
	if err := h.Store.UpsertGoal(r.Context(), record); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save goal", err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

// =============================================================================
// HELPERS
// =============================================================================

// parsePeriod reads the year and month query parameters, defaulting to the
// current month. Writes a 400 and returns ok=false on invalid input.
func parsePeriod(w http.ResponseWriter, r *http.Request) (int, time.Month, bool) {
	now := time.Now()
	year, month := now.Year(), now.Month()

	if s := r.URL.Query().Get("year"); s != "" {
		y, err := strconv.Atoi(s)
		if err != nil || y < 1 {
			writeError(w, http.StatusBadRequest, "Invalid year", err)
			return 0, 0, false
		}
		year = y
	}
	if s := r.URL.Query().Get("month"); s != "" {
		m, err := strconv.Atoi(s)
		if err != nil || m < 1 || m > 12 {
			writeError(w, http.StatusBadRequest, "Invalid month (use 1-12)", err)
			return 0, 0, false
		}
		month = time.Month(m)
	}
	return year, month, true
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
