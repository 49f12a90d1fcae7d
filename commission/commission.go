/*
Package commission applies the tiered commission rule to monthly sales
totals.

THE RULE IS A CLIFF, NOT A BRACKET:
  Crossing the revenue threshold reprices the ENTIRE monthly total at the
  higher rate, not just the excess. This is a deliberate business rule
  confirmed across independent call sites of the original system, not a
  bug to be "fixed" with marginal brackets.

RATES:
  PJ contracts:  20% below the threshold, 25% at or above it
  CLT contracts:  5% below the threshold, 10% at or above it
  The threshold (10000.00) is shared across contract types and inclusive:
  a total of exactly 10000.00 earns the higher rate.

No rounding happens here; presentation rounds for display only.
*/
package commission

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// CONTRACT TYPES
// =============================================================================

// ContractType classifies a salesperson's engagement and selects the rate
// pair. Unknown values fall back to PJ.
type ContractType string

const (
	ContractPJ  ContractType = "PJ"
	ContractCLT ContractType = "CLT"
)

// Normalize maps unknown contract classifications onto the PJ default.
func (c ContractType) Normalize() ContractType {
	if c == ContractCLT {
		return ContractCLT
	}
	return ContractPJ
}

// =============================================================================
// RATES
// =============================================================================

// Threshold is the monthly revenue at which the higher rate kicks in,
// inclusive.
var Threshold = decimal.NewFromInt(10000)

type ratePair struct {
	below   decimal.Decimal
	atAbove decimal.Decimal
}

var rates = map[ContractType]ratePair{
	ContractPJ: {
		below:   decimal.RequireFromString("0.20"),
		atAbove: decimal.RequireFromString("0.25"),
	},
	ContractCLT: {
		below:   decimal.RequireFromString("0.05"),
		atAbove: decimal.RequireFromString("0.10"),
	},
}

// =============================================================================
// CALCULATION
// =============================================================================

// Result is a commission computed from one monthly total.
type Result struct {
	Rate   decimal.Decimal `json:"rate"`
	Amount decimal.Decimal `json:"amount"`
}

// Calculate applies the cliff rule to a monthly total.
func Calculate(total decimal.Decimal, contract ContractType) Result {
	pair := rates[contract.Normalize()]

	rate := pair.below
	if total.GreaterThanOrEqual(Threshold) {
		rate = pair.atAbove
	}
	return Result{Rate: rate, Amount: total.Mul(rate)}
}
