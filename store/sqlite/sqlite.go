/*
Package sqlite provides the SQLite-backed persistence for the sales engine.

PURPOSE:
  Holds the raw inputs the engine consumes: sale records, monthly goal
  records, and salesperson profiles (name + contract classification). The
  engine itself never touches the database; handlers fetch rows here and
  hand them to the pure pipeline.

KEY TABLES:
  salespeople: id, name, contract_type
  sales:       one row per sale, sale_date stored as "YYYY-MM-DD" text
  goals:       one row per (user_id, month, year)

AMOUNT STORAGE:
  Monetary amounts are stored as TEXT and parsed back through
  decimal.NewFromString, never as REAL, to keep cent-exact round trips.

CONCURRENCY:
  Guarded by a sync.RWMutex; SQLite runs in WAL mode so readers do not
  block each other.

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper migration
  tool (golang-migrate, goose) with versioned migrations.
*/
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/alianza/sales-engine/calendar"
	"github.com/alianza/sales-engine/commission"
	"github.com/alianza/sales-engine/goals"
	"github.com/alianza/sales-engine/sales"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

// Salesperson is a stored profile.
type Salesperson struct {
	ID       sales.SalespersonID     `json:"id"`
	Name     string                  `json:"name"`
	Contract commission.ContractType `json:"contract"`
}

// Store implements persistence over SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New opens (or creates) the database at the given path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS salespeople (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		contract_type TEXT NOT NULL DEFAULT 'PJ',
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS sales (
		id TEXT PRIMARY KEY,
		salesperson_id TEXT NOT NULL,
		salesperson_name TEXT NOT NULL,
		sale_date TEXT NOT NULL,
		gross_amount TEXT NOT NULL,
		payment_method TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	-- Period listing is the hot path: every report build scans one month.
	CREATE INDEX IF NOT EXISTS idx_sales_date
		ON sales(sale_date);
	CREATE INDEX IF NOT EXISTS idx_sales_salesperson
		ON sales(salesperson_id, sale_date);

	CREATE TABLE IF NOT EXISTS goals (
		user_id TEXT NOT NULL,
		month INTEGER NOT NULL,
		year INTEGER NOT NULL,
		goal_amount TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		PRIMARY KEY (user_id, month, year)
	);

	CREATE INDEX IF NOT EXISTS idx_goals_period
		ON goals(year, month);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// SALESPEOPLE
// =============================================================================

// SaveSalesperson inserts or updates a profile.
func (s *Store) SaveSalesperson(ctx context.Context, p Salesperson) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO salespeople (id, name, contract_type, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name, contract_type = excluded.contract_type
	`
	_, err := s.db.ExecContext(ctx, query,
		string(p.ID),
		p.Name,
		string(p.Contract.Normalize()),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to save salesperson: %w", err)
	}
	return nil
}

// GetSalesperson looks up one profile by id.
func (s *Store) GetSalesperson(ctx context.Context, id sales.SalespersonID) (*Salesperson, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var p Salesperson
	var rawID, contract string
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, contract_type FROM salespeople WHERE id = ?", string(id),
	).Scan(&rawID, &p.Name, &contract)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get salesperson: %w", err)
	}
	p.ID = sales.SalespersonID(rawID)
	p.Contract = commission.ContractType(contract)
	return &p, nil
}

// ListSalespeople returns all profiles ordered by name.
func (s *Store) ListSalespeople(ctx context.Context) ([]Salesperson, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, contract_type FROM salespeople ORDER BY name ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to list salespeople: %w", err)
	}
	defer rows.Close()

	var out []Salesperson
	for rows.Next() {
		var p Salesperson
		var rawID, contract string
		if err := rows.Scan(&rawID, &p.Name, &contract); err != nil {
			return nil, fmt.Errorf("failed to scan salesperson: %w", err)
		}
		p.ID = sales.SalespersonID(rawID)
		p.Contract = commission.ContractType(contract)
		out = append(out, p)
	}
	return out, rows.Err()
}

// Contracts returns the contract classification per salesperson id.
func (s *Store) Contracts(ctx context.Context) (map[sales.SalespersonID]commission.ContractType, error) {
	people, err := s.ListSalespeople(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[sales.SalespersonID]commission.ContractType, len(people))
	for _, p := range people {
		out[p.ID] = p.Contract
	}
	return out, nil
}

// =============================================================================
// SALES
// =============================================================================

// RecordSale stores one sale row. The sale date must be a valid
// "YYYY-MM-DD" calendar date.
func (s *Store) RecordSale(ctx context.Context, row sales.Sale) error {
	if _, err := calendar.ParseDate(row.SaleDate); err != nil {
		return fmt.Errorf("invalid sale date: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO sales
		(id, salesperson_id, salesperson_name, sale_date, gross_amount, payment_method, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, query,
		row.ID,
		string(row.SalespersonID),
		row.SalespersonName,
		row.SaleDate,
		row.GrossAmount.String(),
		row.PaymentMethod,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to record sale: %w", err)
	}
	return nil
}

// ListSales returns the sales of one month, ordered by date then insertion.
func (s *Store) ListSales(ctx context.Context, year int, month time.Month) ([]sales.Sale, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	first := calendar.StartOfMonth(year, month).String()
	last := calendar.EndOfMonth(year, month).String()

	query := `
		SELECT id, salesperson_id, salesperson_name, sale_date, gross_amount, payment_method
		FROM sales
		WHERE sale_date >= ? AND sale_date <= ?
		ORDER BY sale_date ASC, created_at ASC, id ASC
	`
	rows, err := s.db.QueryContext(ctx, query, first, last)
	if err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}
	defer rows.Close()

	var out []sales.Sale
	for rows.Next() {
		var row sales.Sale
		var personID, amount string
		if err := rows.Scan(&row.ID, &personID, &row.SalespersonName, &row.SaleDate, &amount, &row.PaymentMethod); err != nil {
			return nil, fmt.Errorf("failed to scan sale: %w", err)
		}
		row.SalespersonID = sales.SalespersonID(personID)
		parsed, err := decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("failed to parse sale amount %q: %w", amount, err)
		}
		row.GrossAmount = parsed
		out = append(out, row)
	}
	return out, rows.Err()
}

// =============================================================================
// GOALS
// =============================================================================

// UpsertGoal stores or replaces the monthly goal of one salesperson.
func (s *Store) UpsertGoal(ctx context.Context, r goals.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO goals (user_id, month, year, goal_amount, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(user_id, month, year) DO UPDATE SET
			goal_amount = excluded.goal_amount,
			updated_at = excluded.updated_at
	`
	_, err := s.db.ExecContext(ctx, query,
		r.UserID,
		r.Month,
		r.Year,
		r.GoalAmount.String(),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert goal: %w", err)
	}
	return nil
}

// ListGoals returns every goal record of one period.
func (s *Store) ListGoals(ctx context.Context, year int, month time.Month) ([]goals.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT user_id, month, year, goal_amount
		FROM goals
		WHERE year = ? AND month = ?
		ORDER BY user_id ASC
	`
	rows, err := s.db.QueryContext(ctx, query, year, int(month))
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}
	defer rows.Close()

	var out []goals.Record
	for rows.Next() {
		var r goals.Record
		var amount string
		if err := rows.Scan(&r.UserID, &r.Month, &r.Year, &amount); err != nil {
			return nil, fmt.Errorf("failed to scan goal: %w", err)
		}
		parsed, err := decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("failed to parse goal amount %q: %w", amount, err)
		}
		r.GoalAmount = parsed
		out = append(out, r)
	}
	return out, rows.Err()
}

// =============================================================================
// MAINTENANCE
// =============================================================================

// Reset wipes all tables. Intended for tests and demo seeding.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, table := range []string{"sales", "goals", "salespeople"} {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to reset %s: %w", table, err)
		}
	}
	return nil
}
