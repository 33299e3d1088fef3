package ledger

import "github.com/shopspring/decimal"

// CurrencyPlaces is the minor-unit precision all monetary amounts are
// rounded to.
const CurrencyPlaces int32 = 2

var half = decimal.New(5, -1)

// RoundHalfUp rounds d to the given number of decimal places with ties going
// up (0.005 -> 0.01). Banker's rounding and truncation would break the exact
// balancing the entry builder relies on, so they are not used anywhere in
// amount computation.
func RoundHalfUp(d decimal.Decimal, places int32) decimal.Decimal {
	return d.Shift(places).Add(half).Floor().Shift(-places)
}

// RoundAmount rounds a monetary amount to currency precision.
func RoundAmount(d decimal.Decimal) decimal.Decimal {
	return RoundHalfUp(d, CurrencyPlaces)
}
