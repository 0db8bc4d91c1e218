package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// InstrumentKind distinguishes the two deferred-payment instruments.
type InstrumentKind string

const (
	InstrumentCheck  InstrumentKind = "check"
	InstrumentBoleto InstrumentKind = "boleto"
)

// ParentKind identifies the record an instrument was issued for.
type ParentKind string

const (
	ParentSale   ParentKind = "sale"
	ParentDebt   ParentKind = "debt"
	ParentAcerto ParentKind = "acerto"
)

// InstrumentStatus is the lifecycle state of a check or boleto.
type InstrumentStatus string

const (
	InstrumentPending   InstrumentStatus = "pending"
	InstrumentCleared   InstrumentStatus = "cleared"
	InstrumentReturned  InstrumentStatus = "returned"
	InstrumentOverdue   InstrumentStatus = "overdue"
	InstrumentCancelled InstrumentStatus = "cancelled"
)

// Instrument is one scheduled deferred payment: a single check or boleto
// with a due date, issued in batch by the installment scheduler. The
// overdue fields are zero until a resolution action is applied.
type Instrument struct {
	ID                string
	Kind              InstrumentKind
	ParentKind        ParentKind
	ParentID          string
	CounterpartyName  string
	Value             decimal.Decimal
	DueDate           time.Time
	Status            InstrumentStatus
	InstallmentNumber int
	TotalInstallments int
	IsOwnInstrument   bool
	IsCompanyPayable  bool

	OverdueAction OverdueAction
	Interest      decimal.Decimal
	Penalty       decimal.Decimal
	NotaryCosts   decimal.Decimal
	DiscountFee   decimal.Decimal
	FinalAmount   decimal.Decimal
	OverdueNotes  string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Clear marks a pending instrument as cleared on payment.
func (i *Instrument) Clear() error {
	if i.Status != InstrumentPending {
		return ErrIllegalStateTransition
	}

	i.Status = InstrumentCleared
	i.FinalAmount = i.Value

	return nil
}

// Discount settles a pending instrument early at a reduced amount, as
// when card receivables are anticipated for a fee. The realized amount
// is the face value minus the fee; the fee must leave something to
// realize.
func (i *Instrument) Discount(fee decimal.Decimal) error {
	if i.Status != InstrumentPending {
		return ErrIllegalStateTransition
	}

	if fee.IsNegative() {
		return fmt.Errorf("%w: discount fee must not be negative", ErrInvalidAmount)
	}

	if fee.GreaterThanOrEqual(i.Value) {
		return fmt.Errorf("%w: discount fee %s consumes the whole value %s", ErrInvalidAmount, fee, i.Value)
	}

	i.Status = InstrumentCleared
	i.DiscountFee = fee
	i.FinalAmount = i.Value.Sub(fee)

	return nil
}
