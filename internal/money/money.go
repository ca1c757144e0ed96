// Package money defines the fixed-point value types the orchestration
// core uses for every amount, rate and commission. Binary floating point
// never carries money in this codebase.
package money

import "github.com/shopspring/decimal"

// Currency is a closed, extensible enumeration of settlement currencies.
type Currency string

const (
	USD Currency = "USD"
	EUR Currency = "EUR"
	RUB Currency = "RUB"
)

// Valid reports whether c is one of the known currencies.
func (c Currency) Valid() bool {
	switch c {
	case USD, EUR, RUB:
		return true
	default:
		return false
	}
}

func (c Currency) String() string {
	return string(c)
}

// Round2 applies banker's rounding at 2 fractional digits, the precision
// spec'd for display fields (Transaction.Commission, PaymentResult.ActualAmount).
// Internal computation keeps full decimal.Decimal precision; only values
// handed back to callers are rounded.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.RoundBank(2)
}

// MaxPerCurrency is the per-currency transaction ceiling enforced by the
// Validator collaborator.
var MaxPerCurrency = map[Currency]decimal.Decimal{
	USD: decimal.NewFromInt(10_000),
	EUR: decimal.NewFromInt(8_000),
	RUB: decimal.NewFromInt(500_000),
}
