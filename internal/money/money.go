// Package money converts between decimal currency amounts and integer minor units.
package money

import "github.com/shopspring/decimal"

// ToMinorUnits converts an amount in currency units to minor units, rounding half away
// from zero. 8.50 becomes 850.
func ToMinorUnits(amount float64) int64 {
	return decimal.NewFromFloat(amount).Shift(2).Round(0).IntPart()
}

// FromMinorUnits converts minor units back to currency units. The result is meant for
// display and must not be fed back into arithmetic.
func FromMinorUnits(amount int64) float64 {
	return decimal.New(amount, -2).InexactFloat64()
}
