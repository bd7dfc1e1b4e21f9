// Package valueobject contains domain value objects and helpers.
package valueobject

import (
	"github.com/shopspring/decimal"

	domainerror "github.com/staymetrics/backend/internal/domain/error"
)

// currencyScale is the number of fractional digits presented at the API
// boundary for all supported currencies.
const currencyScale = 2

// ParseAmount parses a stored monetary amount into an exact decimal.
// Malformed input is a hard failure for that value; it is never coerced
// to zero.
func ParseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, domainerror.NewRevenueError(
			domainerror.ErrCodeInvalidAmount,
			"stored amount is not a valid decimal: "+s,
			domainerror.ErrInvalidAmount,
		)
	}
	return d, nil
}

// RoundToCurrency rounds an exact decimal to currency precision using
// round-half-up. Rounding an already-rounded value is a no-op.
func RoundToCurrency(d decimal.Decimal) decimal.Decimal {
	return d.Round(currencyScale)
}

// APIAmount performs the single decimal-to-float conversion permitted in
// the system. Callers must only use the result at the response boundary,
// after RoundToCurrency.
func APIAmount(d decimal.Decimal) float64 {
	f, _ := RoundToCurrency(d).Float64()
	return f
}
