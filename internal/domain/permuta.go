package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// PermutaStatus is the lifecycle state of a trade-in credit.
type PermutaStatus string

const (
	PermutaActive    PermutaStatus = "active"
	PermutaExhausted PermutaStatus = "exhausted"
	PermutaCancelled PermutaStatus = "cancelled"
)

// Permuta is a finite trade-in credit, typically a vehicle taken in
// exchange, consumed incrementally across future sales. ConsumedValue only
// moves forward except on explicit release, and never exceeds CreditValue.
// Version is the optimistic concurrency token checked on every mutation.
type Permuta struct {
	ID            string
	HolderName    string
	Description   string
	CreditValue   decimal.Decimal
	ConsumedValue decimal.Decimal
	Status        PermutaStatus
	Version       int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// RemainingValue is the credit still available, clamped at zero.
func (p *Permuta) RemainingValue() decimal.Decimal {
	return ClampNonNegative(p.CreditValue.Sub(p.ConsumedValue))
}

// Consume draws amount from the remaining credit. Fails without mutating
// when the credit is not active or the amount exceeds what remains.
func (p *Permuta) Consume(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	if p.Status == PermutaCancelled {
		return fmt.Errorf("%w: permuta %s is cancelled", ErrCreditUnavailable, p.ID)
	}

	remaining := p.RemainingValue()
	if amount.GreaterThan(remaining.Add(Epsilon)) {
		return fmt.Errorf("%w: requested %s, remaining %s", ErrInsufficientCredit, amount, remaining)
	}

	p.ConsumedValue = p.ConsumedValue.Add(amount)
	if p.ConsumedValue.GreaterThan(p.CreditValue) {
		p.ConsumedValue = p.CreditValue
	}

	p.refreshStatus()

	return nil
}

// Release returns previously consumed credit, as when the sale that drew
// it is deleted or edited. Consumption clamps at zero.
func (p *Permuta) Release(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	p.ConsumedValue = ClampNonNegative(p.ConsumedValue.Sub(amount))
	p.refreshStatus()

	return nil
}

// Cancel retires the credit; no further consumption is possible.
func (p *Permuta) Cancel() error {
	if p.Status == PermutaCancelled {
		return ErrIllegalStateTransition
	}

	p.Status = PermutaCancelled

	return nil
}

func (p *Permuta) refreshStatus() {
	if p.Status == PermutaCancelled {
		return
	}

	if p.RemainingValue().LessThanOrEqual(decimal.Zero) {
		p.Status = PermutaExhausted
	} else {
		p.Status = PermutaActive
	}
}
