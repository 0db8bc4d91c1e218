package domain

import "github.com/shopspring/decimal"

// Epsilon is the tolerance used when comparing monetary amounts.
// Derived balances are stored with two decimal places, so anything
// within one cent counts as equal.
var Epsilon = decimal.NewFromFloat(0.01)

// AmountsEqual reports whether two amounts differ by no more than Epsilon.
func AmountsEqual(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(Epsilon)
}

// WithinTolerance reports whether amount <= limit + Epsilon.
func WithinTolerance(amount, limit decimal.Decimal) bool {
	return amount.LessThanOrEqual(limit.Add(Epsilon))
}

// ClampNonNegative returns amount, or zero when amount is negative.
// Used on derived pending balances to absorb rounding noise; it is not
// a substitute for input validation.
func ClampNonNegative(amount decimal.Decimal) decimal.Decimal {
	if amount.IsNegative() {
		return decimal.Zero
	}
	return amount
}
