package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// InstallmentSlot is one dated slice of a deferred payment method, before
// it is stamped into a persisted Instrument.
type InstallmentSlot struct {
	Number  int
	Value   decimal.Decimal
	DueDate time.Time
}

// BuildSchedule expands a deferred payment method into its installment
// slots. A single installment yields one slot with the full amount. With
// uniform values each slot gets amount/count rounded to cents (banker's
// rounding); the rounding remainder lands in the final slot so the slots
// always sum to the method amount exactly. Custom values are used verbatim.
// Due dates run FirstDueDate + k*IntervalDays.
//
// The expansion is deterministic: the same method yields an identical
// schedule on every call, which is what makes delete-then-recreate on edit
// safe.
func BuildSchedule(m PaymentMethod) ([]InstallmentSlot, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	if !deferredCapable[m.Kind] {
		return nil, fmt.Errorf("%w: %s does not expand into instruments", ErrInvalidSchedule, m.Kind)
	}

	plan := m.Plan
	first := DateOnly(plan.FirstDueDate)

	if plan.Count == 1 {
		return []InstallmentSlot{{Number: 1, Value: m.Amount, DueDate: first}}, nil
	}

	slots := make([]InstallmentSlot, 0, plan.Count)

	if len(plan.CustomValues) > 0 {
		for k, v := range plan.CustomValues {
			slots = append(slots, InstallmentSlot{
				Number:  k + 1,
				Value:   v,
				DueDate: AddDays(first, k*plan.IntervalDays),
			})
		}
		return slots, nil
	}

	per := m.Amount.Div(decimal.NewFromInt(int64(plan.Count))).RoundBank(2)
	allocated := decimal.Zero

	for k := 0; k < plan.Count; k++ {
		value := per
		if k == plan.Count-1 {
			value = m.Amount.Sub(allocated)
		}
		allocated = allocated.Add(value)

		slots = append(slots, InstallmentSlot{
			Number:  k + 1,
			Value:   value,
			DueDate: AddDays(first, k*plan.IntervalDays),
		})
	}

	return slots, nil
}

// ScheduleKind maps a deferred payment method to the instrument kind it
// issues. Multi-installment credit cards issue boleto-like card slips on
// the receivable timeline of the card processor, tracked here as boletos
// marked own-instrument.
func ScheduleKind(m PaymentMethod) InstrumentKind {
	switch m.Kind {
	case PaymentCheck:
		return InstrumentCheck
	default:
		return InstrumentBoleto
	}
}
