package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentKind identifies how a slice of a transaction is funded.
type PaymentKind string

const (
	PaymentCash           PaymentKind = "cash"
	PaymentPix            PaymentKind = "pix"
	PaymentCreditCard     PaymentKind = "credit_card"
	PaymentDebitCard      PaymentKind = "debit_card"
	PaymentCheck          PaymentKind = "check"
	PaymentBoleto         PaymentKind = "boleto"
	PaymentTransfer       PaymentKind = "transfer"
	PaymentRunningAccount PaymentKind = "running_account"
	PaymentTradeInCredit  PaymentKind = "trade_in_credit"
)

// InstallmentPlan describes how a deferred payment is split over time.
type InstallmentPlan struct {
	FirstDueDate time.Time
	CustomValues []decimal.Decimal
	Count        int
	IntervalDays int
}

// PaymentMethod is one funding slice of a sale or debt. The variant is
// closed: installment fields exist only on deferred-capable kinds, the
// permuta and holder references only on their respective kinds. Use the
// constructors; a zero PaymentMethod is invalid.
type PaymentMethod struct {
	Kind       PaymentKind
	Amount     decimal.Decimal
	Plan       *InstallmentPlan
	PermutaID  string
	HolderName string
}

// deferredCapable lists kinds that may carry an installment plan.
var deferredCapable = map[PaymentKind]bool{
	PaymentCreditCard: true,
	PaymentCheck:      true,
	PaymentBoleto:     true,
}

var instantKinds = map[PaymentKind]bool{
	PaymentCash:           true,
	PaymentPix:            true,
	PaymentDebitCard:      true,
	PaymentTransfer:       true,
	PaymentRunningAccount: true,
	PaymentTradeInCredit:  true,
}

// NewInstantPayment builds a cash, pix, debit-card or transfer method.
func NewInstantPayment(kind PaymentKind, amount decimal.Decimal) (PaymentMethod, error) {
	switch kind {
	case PaymentCash, PaymentPix, PaymentDebitCard, PaymentTransfer:
	default:
		return PaymentMethod{}, fmt.Errorf("%w: %s is not an instant kind", ErrInvalidAmount, kind)
	}

	if amount.LessThanOrEqual(decimal.Zero) {
		return PaymentMethod{}, ErrInvalidAmount
	}

	return PaymentMethod{Kind: kind, Amount: amount}, nil
}

// NewDeferredPayment builds a check, boleto or credit-card method with an
// installment plan. Custom installment values, when supplied, must sum to
// amount exactly within tolerance.
func NewDeferredPayment(kind PaymentKind, amount decimal.Decimal, plan InstallmentPlan) (PaymentMethod, error) {
	if !deferredCapable[kind] {
		return PaymentMethod{}, fmt.Errorf("%w: %s cannot carry installments", ErrInvalidSchedule, kind)
	}

	if amount.LessThanOrEqual(decimal.Zero) {
		return PaymentMethod{}, ErrInvalidAmount
	}

	if plan.Count < 1 {
		return PaymentMethod{}, fmt.Errorf("%w: installment count must be >= 1", ErrInvalidSchedule)
	}

	if plan.Count > 1 && plan.IntervalDays <= 0 {
		return PaymentMethod{}, fmt.Errorf("%w: interval must be positive for %d installments", ErrInvalidSchedule, plan.Count)
	}

	if plan.FirstDueDate.IsZero() {
		return PaymentMethod{}, fmt.Errorf("%w: first due date is required", ErrInvalidSchedule)
	}

	plan.FirstDueDate = DateOnly(plan.FirstDueDate)

	if len(plan.CustomValues) > 0 {
		if len(plan.CustomValues) != plan.Count {
			return PaymentMethod{}, fmt.Errorf("%w: %d custom values for %d installments",
				ErrInvalidAllocation, len(plan.CustomValues), plan.Count)
		}

		sum := decimal.Zero
		for _, v := range plan.CustomValues {
			if v.LessThanOrEqual(decimal.Zero) {
				return PaymentMethod{}, fmt.Errorf("%w: custom installment value must be positive", ErrInvalidAllocation)
			}
			sum = sum.Add(v)
		}

		if !AmountsEqual(sum, amount) {
			return PaymentMethod{}, fmt.Errorf("%w: custom values sum %s, method amount %s",
				ErrInvalidAllocation, sum, amount)
		}
	}

	return PaymentMethod{Kind: kind, Amount: amount, Plan: &plan}, nil
}

// NewTradeInPayment builds a permuta-funded method. The permuta must be
// active; consumption itself is validated again at commit time.
func NewTradeInPayment(amount decimal.Decimal, permuta *Permuta) (PaymentMethod, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return PaymentMethod{}, ErrInvalidAmount
	}

	if permuta == nil {
		return PaymentMethod{}, fmt.Errorf("%w: permuta", ErrUnknownReference)
	}

	if permuta.Status != PermutaActive {
		return PaymentMethod{}, fmt.Errorf("%w: permuta %s is %s", ErrCreditUnavailable, permuta.ID, permuta.Status)
	}

	return PaymentMethod{Kind: PaymentTradeInCredit, Amount: amount, PermutaID: permuta.ID}, nil
}

// NewRunningAccountPayment builds an acerto-funded method keyed by holder name.
func NewRunningAccountPayment(amount decimal.Decimal, holderName string) (PaymentMethod, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return PaymentMethod{}, ErrInvalidAmount
	}

	if HolderKey(holderName) == "" {
		return PaymentMethod{}, fmt.Errorf("%w: holder name is required", ErrInvalidCounterpartyName)
	}

	return PaymentMethod{Kind: PaymentRunningAccount, Amount: amount, HolderName: holderName}, nil
}

// Deferred reports whether this method settles later through instruments:
// checks, boletos, and credit cards with more than one installment.
func (m PaymentMethod) Deferred() bool {
	if !deferredCapable[m.Kind] {
		return false
	}

	if m.Kind == PaymentCreditCard {
		return m.Plan != nil && m.Plan.Count > 1
	}

	return true
}

// Validate checks structural invariants on a method regardless of how it
// was built. Used when methods cross the API boundary.
func (m PaymentMethod) Validate() error {
	if m.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	switch {
	case deferredCapable[m.Kind]:
		if m.Plan == nil {
			return fmt.Errorf("%w: %s requires an installment plan", ErrInvalidSchedule, m.Kind)
		}
	case instantKinds[m.Kind]:
		if m.Plan != nil {
			return fmt.Errorf("%w: %s cannot carry installments", ErrInvalidSchedule, m.Kind)
		}
	default:
		return fmt.Errorf("%w: unknown payment kind %q", ErrInvalidSchedule, m.Kind)
	}

	if m.Kind == PaymentTradeInCredit && m.PermutaID == "" {
		return fmt.Errorf("%w: trade-in payment without permuta", ErrUnknownReference)
	}

	if m.Kind == PaymentRunningAccount && HolderKey(m.HolderName) == "" {
		return fmt.Errorf("%w: holder name is required", ErrInvalidCounterpartyName)
	}

	return nil
}
