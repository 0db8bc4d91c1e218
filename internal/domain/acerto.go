package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// HolderKind distinguishes client-side from company-side running accounts.
type HolderKind string

const (
	HolderClient  HolderKind = "client"
	HolderCompany HolderKind = "company"
)

// AcertoStatus is the derived payment status of a running account.
type AcertoStatus string

const (
	AcertoPending AcertoStatus = "pending"
	AcertoPartial AcertoStatus = "partial"
	AcertoPaid    AcertoStatus = "paid"
)

// ContributionRef links an acerto to a transaction that fed it through a
// running-account payment method.
type ContributionRef struct {
	Kind   ParentKind
	ID     string
	Amount decimal.Decimal
}

// Acerto is a running account: the cumulative balance a client owes across
// many sales (or the company owes across many debts), settled periodically.
// Holder matching is by HolderKey. TotalAmount is the sum of all
// contributions; PaidAmount grows on settlement; status and pending amount
// are derived. Version is the optimistic concurrency token.
type Acerto struct {
	ID            string
	HolderName    string
	Kind          HolderKind
	TotalAmount   decimal.Decimal
	PaidAmount    decimal.Decimal
	Status        AcertoStatus
	Contributions []ContributionRef
	Version       int64
	PaymentDate   *time.Time
	Observations  string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// PendingAmount is what remains to be paid, clamped at zero.
func (a *Acerto) PendingAmount() decimal.Decimal {
	return ClampNonNegative(a.TotalAmount.Sub(a.PaidAmount))
}

// Contribute adds a transaction's running-account slice to the balance.
func (a *Acerto) Contribute(ref ContributionRef) error {
	if ref.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	a.TotalAmount = a.TotalAmount.Add(ref.Amount)
	a.Contributions = append(a.Contributions, ref)
	a.RefreshStatus()

	return nil
}

// Retract removes a contribution, as when its transaction is deleted.
func (a *Acerto) Retract(kind ParentKind, id string) {
	kept := a.Contributions[:0]
	for _, c := range a.Contributions {
		if c.Kind == kind && c.ID == id {
			a.TotalAmount = ClampNonNegative(a.TotalAmount.Sub(c.Amount))
			continue
		}
		kept = append(kept, c)
	}

	a.Contributions = kept
	a.RefreshStatus()
}

// RegisterPayment grows the paid amount after a settlement batch.
func (a *Acerto) RegisterPayment(amount decimal.Decimal, at time.Time) error {
	if a.Status == AcertoPaid {
		return ErrIllegalStateTransition
	}

	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	a.PaidAmount = a.PaidAmount.Add(amount)
	d := DateOnly(at)
	a.PaymentDate = &d
	a.RefreshStatus()

	return nil
}

// RefreshStatus recomputes the derived status: paid iff PaidAmount covers
// TotalAmount within tolerance, partial iff something but not all was paid.
// An account emptied back to zero by retraction reads pending, never paid;
// paid requires an actual balance to have been covered.
func (a *Acerto) RefreshStatus() {
	switch {
	case a.TotalAmount.GreaterThan(decimal.Zero) && a.PendingAmount().LessThanOrEqual(Epsilon):
		a.Status = AcertoPaid
	case a.PaidAmount.GreaterThan(decimal.Zero):
		a.Status = AcertoPartial
	default:
		a.Status = AcertoPending
	}
}
