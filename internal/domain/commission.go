package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultCommissionRate is the percentage applied when a sale names a
// seller without a custom rate.
var DefaultCommissionRate = decimal.NewFromInt(5)

// CommissionStatus is the payout state of a seller commission.
type CommissionStatus string

const (
	CommissionPending CommissionStatus = "pending"
	CommissionPaid    CommissionStatus = "paid"
)

// Commission is the amount owed to a seller for one sale, computed at
// sale creation as Rate percent of the sale value. It lives and dies
// with its sale: a delete or edit-rebuild of the sale removes and
// recreates it.
type Commission struct {
	ID         string
	SaleID     string
	SellerName string
	SaleValue  decimal.Decimal
	Rate       decimal.Decimal
	Amount     decimal.Decimal
	Date       time.Time
	Status     CommissionStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// CommissionAmount computes rate percent of the sale value, rounded to
// cents with banker's rounding.
func CommissionAmount(saleValue, rate decimal.Decimal) decimal.Decimal {
	return saleValue.Mul(rate).Div(decimal.NewFromInt(100)).RoundBank(2)
}

// MarkPaid records the payout of a pending commission.
func (c *Commission) MarkPaid() error {
	if c.Status == CommissionPaid {
		return ErrIllegalStateTransition
	}

	c.Status = CommissionPaid

	return nil
}
