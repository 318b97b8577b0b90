package entity

import (
	"github.com/shopspring/decimal"
)

// MoneyScale is the number of fractional digits kept for currency amounts.
const MoneyScale = 2

// RoundMoney rounds an amount to currency precision.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyScale)
}

// IsMoneyPrecise reports whether d has no digits below currency precision.
func IsMoneyPrecise(d decimal.Decimal) bool {
	return d.Equal(RoundMoney(d))
}

// MinorUnits converts an amount to the smallest currency unit, e.g. 130.00 to 13000.
// The amount is expected to be precise to MoneyScale digits.
func MinorUnits(d decimal.Decimal) int64 {
	return RoundMoney(d).Shift(MoneyScale).IntPart()
}

// FromMinorUnits converts a smallest-unit amount back to a decimal amount.
func FromMinorUnits(units int64) decimal.Decimal {
	return decimal.New(units, -MoneyScale)
}
