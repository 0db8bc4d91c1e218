package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// OverdueAction is the explicit disposition applied to an instrument past
// its due date.
type OverdueAction string

const (
	OverduePaidWithInterest OverdueAction = "paid_with_interest"
	OverduePaidWithPenalty  OverdueAction = "paid_with_penalty"
	OverduePaidInFull       OverdueAction = "paid_in_full"
	OverdueAgreementReached OverdueAction = "agreement_reached"
	OverdueProtested        OverdueAction = "protested"
	OverdueNegotiated       OverdueAction = "negotiated"
	OverdueCancelled        OverdueAction = "cancelled"
	OverdueTotalLoss        OverdueAction = "total_loss"
)

// OverdueCharges are the operator-entered amounts added on resolution.
// All default to zero; the suggestions are advisory and never auto-applied.
type OverdueCharges struct {
	Interest    decimal.Decimal
	Penalty     decimal.Decimal
	NotaryCosts decimal.Decimal
}

// actionOutcome maps each action to the terminal instrument status.
var actionOutcome = map[OverdueAction]InstrumentStatus{
	OverduePaidWithInterest: InstrumentCleared,
	OverduePaidWithPenalty:  InstrumentCleared,
	OverduePaidInFull:       InstrumentCleared,
	OverdueAgreementReached: InstrumentCleared,
	OverdueProtested:        InstrumentOverdue,
	OverdueNegotiated:       InstrumentOverdue,
	OverdueCancelled:        InstrumentCancelled,
	OverdueTotalLoss:        InstrumentCancelled,
}

// ResolveOverdue applies an explicit action to a pending instrument and
// recomputes its final amount: original value plus interest, penalty and
// notary costs. Returns true when the resolution realizes the final amount
// and it must be reported to the cash-flow ledger.
func (i *Instrument) ResolveOverdue(action OverdueAction, charges OverdueCharges, notes string) (realized bool, err error) {
	if i.Status != InstrumentPending {
		return false, fmt.Errorf("%w: instrument %s is %s", ErrIllegalStateTransition, i.ID, i.Status)
	}

	outcome, ok := actionOutcome[action]
	if !ok {
		return false, fmt.Errorf("%w: unknown overdue action %q", ErrIllegalStateTransition, action)
	}

	if charges.Interest.IsNegative() || charges.Penalty.IsNegative() || charges.NotaryCosts.IsNegative() {
		return false, fmt.Errorf("%w: overdue charges", ErrInvalidAmount)
	}

	i.OverdueAction = action
	i.Interest = charges.Interest
	i.Penalty = charges.Penalty
	i.NotaryCosts = charges.NotaryCosts
	i.FinalAmount = i.Value.Add(charges.Interest).Add(charges.Penalty).Add(charges.NotaryCosts)
	i.OverdueNotes = notes
	i.Status = outcome

	return outcome == InstrumentCleared, nil
}

// SuggestInterest proposes 2% per started month overdue on the original
// value. Advisory only.
func (i *Instrument) SuggestInterest(today time.Time) decimal.Decimal {
	days := DaysBetween(i.DueDate, today)
	if days <= 0 {
		return decimal.Zero
	}

	months := (days + 29) / 30
	rate := decimal.NewFromFloat(0.02).Mul(decimal.NewFromInt(int64(months)))

	return i.Value.Mul(rate).RoundBank(2)
}

// SuggestPenalty proposes a flat 2% of the original value. Advisory only.
func (i *Instrument) SuggestPenalty() decimal.Decimal {
	return i.Value.Mul(decimal.NewFromFloat(0.02)).RoundBank(2)
}
