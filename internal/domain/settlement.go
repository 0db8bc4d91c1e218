package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// SettlementStatus is the derived payment status of a sale or debt.
type SettlementStatus string

const (
	SettlementPaid    SettlementStatus = "paid"
	SettlementPartial SettlementStatus = "partial"
	SettlementPending SettlementStatus = "pending"
)

// Settlement is the derived received/pending view of a transaction. It is
// a pure function of the total and the payment methods and is never stored
// independently of them.
type Settlement struct {
	Received decimal.Decimal
	Pending  decimal.Decimal
	Status   SettlementStatus
}

// ComputeSettlement classifies each method as received-now or pending.
// Instant kinds plus single-installment credit cards count as received;
// trade-in credit and running-account slices also count as received since
// the obligation moves to the permuta or acerto ledger. Checks, boletos,
// and multi-installment credit cards stay pending until their instruments
// clear.
func ComputeSettlement(totalValue decimal.Decimal, methods []PaymentMethod) (Settlement, error) {
	if totalValue.LessThanOrEqual(decimal.Zero) {
		return Settlement{}, fmt.Errorf("%w: total value", ErrInvalidAmount)
	}

	allocated := decimal.Zero
	received := decimal.Zero

	for i, m := range methods {
		if err := m.Validate(); err != nil {
			return Settlement{}, fmt.Errorf("payment method %d: %w", i+1, err)
		}

		allocated = allocated.Add(m.Amount)
		if !m.Deferred() {
			received = received.Add(m.Amount)
		}
	}

	if !WithinTolerance(allocated, totalValue) {
		return Settlement{}, fmt.Errorf("%w: allocated %s against total %s",
			ErrInvalidAllocation, allocated, totalValue)
	}

	pending := ClampNonNegative(totalValue.Sub(received))

	status := SettlementPending
	switch {
	case pending.LessThanOrEqual(Epsilon):
		status = SettlementPaid
		pending = decimal.Zero
	case received.GreaterThan(decimal.Zero):
		status = SettlementPartial
	}

	return Settlement{Received: received, Pending: pending, Status: status}, nil
}
