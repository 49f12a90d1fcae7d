package commission_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/alianza/sales-engine/commission"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestCalculate_PJ_BelowThreshold(t *testing.T) {
	// GIVEN: A PJ total one cent below the threshold
	// THEN: Rate 0.20 applied to the whole amount

	res := commission.Calculate(dec("9999.99"), commission.ContractPJ)
	assert.True(t, res.Rate.Equal(dec("0.20")), "rate %s", res.Rate)
	assert.True(t, res.Amount.Equal(dec("1999.998")), "amount %s", res.Amount)
}

func TestCalculate_PJ_AtThreshold_BoundaryInclusive(t *testing.T) {
	// GIVEN: A PJ total of exactly 10000.00
	// THEN: The higher rate, applied to the ENTIRE total (cliff, not bracket)

	res := commission.Calculate(dec("10000.00"), commission.ContractPJ)
	assert.True(t, res.Rate.Equal(dec("0.25")), "rate %s", res.Rate)
	assert.True(t, res.Amount.Equal(dec("2500")), "amount %s", res.Amount)
}

func TestCalculate_CliffRepricesEntireAmount(t *testing.T) {
	// The cliff rule: 10001 at 25% yields 2500.25, not
	// 10000×0.20 + 1×0.25 = 2000.25 as a marginal bracket would.

	res := commission.Calculate(dec("10001"), commission.ContractPJ)
	assert.True(t, res.Amount.Equal(dec("2500.25")), "amount %s", res.Amount)
}

func TestCalculate_CLT(t *testing.T) {
	below := commission.Calculate(dec("5000"), commission.ContractCLT)
	assert.True(t, below.Rate.Equal(dec("0.05")))
	assert.True(t, below.Amount.Equal(dec("250")))

	above := commission.Calculate(dec("20000"), commission.ContractCLT)
	assert.True(t, above.Rate.Equal(dec("0.10")))
	assert.True(t, above.Amount.Equal(dec("2000")))
}

func TestCalculate_UnknownContractDefaultsToPJ(t *testing.T) {
	res := commission.Calculate(dec("5000"), commission.ContractType("freelance"))
	assert.True(t, res.Rate.Equal(dec("0.20")))

	empty := commission.Calculate(dec("5000"), commission.ContractType(""))
	assert.True(t, empty.Rate.Equal(dec("0.20")))
}

func TestCalculate_NoRounding(t *testing.T) {
	// The calculator must not round; 333.33 × 0.20 = 66.666 exactly.
	res := commission.Calculate(dec("333.33"), commission.ContractPJ)
	assert.True(t, res.Amount.Equal(dec("66.666")), "amount %s", res.Amount)
}

func TestCalculate_ZeroTotal(t *testing.T) {
	res := commission.Calculate(decimal.Zero, commission.ContractPJ)
	assert.True(t, res.Amount.IsZero())
	assert.True(t, res.Rate.Equal(dec("0.20")))
}
