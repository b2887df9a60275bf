package domain

import (
	"github.com/shopspring/decimal"
)

func init() {
	// paidAmount and friends are emitted as JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

var hundred = decimal.NewFromInt(100)

// MaxOrderAmount is the largest single order, in rupees, the checkout accepts.
var MaxOrderAmount = decimal.NewFromInt(10_000_000)

// ToMinor converts a major-unit amount to minor units, rounding half away
// from zero (1999.5 -> 199950). ok is false when the result does not fit
// in an int64.
func ToMinor(major decimal.Decimal) (minor int64, ok bool) {
	scaled := major.Mul(hundred).Round(0).BigInt()
	if !scaled.IsInt64() {
		return 0, false
	}
	return scaled.Int64(), true
}

// ToMajor is the inverse of ToMinor and is exact to the cent.
func ToMajor(minor int64) decimal.Decimal {
	return decimal.NewFromInt(minor).Div(hundred)
}

const (
	// FlatDepositTourSlug is the single tour that takes a fixed deposit.
	FlatDepositTourSlug = "chardham-yatra"
	FlatDeposit         = 25
)

var depositRate = decimal.NewFromFloat(0.10)

// DepositFor returns the deposit due for a tour total in major units.
func DepositFor(tourSlug string, total int64) int64 {
	if tourSlug == FlatDepositTourSlug {
		return FlatDeposit
	}
	return decimal.NewFromInt(total).Mul(depositRate).Ceil().IntPart()
}
