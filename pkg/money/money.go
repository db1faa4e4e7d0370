// Package money provides fixed-point helpers for amounts crossing the
// service boundary. Route arithmetic works directly on shopspring decimals;
// this package centralizes parsing, cent-level flooring, and display
// formatting so the transport layers and the CLI agree on one representation.
package money

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// Parse converts a decimal string into an amount. It accepts anything
// decimal.NewFromString does ("100", "99.95", "-3.2e2").
func Parse(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("money: parse %q: %w", s, err)
	}
	return d, nil
}

// FromFloat converts a float64 into an amount, rejecting NaN and infinities
// instead of panicking the way decimal.NewFromFloat does.
func FromFloat(f float64) (decimal.Decimal, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero, fmt.Errorf("money: %v is not a finite amount", f)
	}
	return decimal.NewFromFloat(f), nil
}

// FloorCents truncates an amount toward zero at two decimal places.
// Allocation math floors rather than rounds so a source account is never
// asked for more than its share.
func FloorCents(d decimal.Decimal) decimal.Decimal {
	return d.RoundDown(2)
}

// FormatUSD renders an amount as a dollar string with exactly two decimal
// places, e.g. "$125.00". Negative amounts keep the sign after the symbol.
func FormatUSD(d decimal.Decimal) string {
	if d.IsNegative() {
		return "$-" + d.Abs().StringFixed(2)
	}
	return "$" + d.StringFixed(2)
}

// Min returns the smaller of two amounts.
func Min(a, b decimal.Decimal) decimal.Decimal {
	if a.LessThan(b) {
		return a
	}
	return b
}
