package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Debt is a payable-side transaction: an obligation to a supplier company.
// Structurally symmetric with Sale; PaidAmount mirrors ReceivedAmount on
// the receivable side.
type Debt struct {
	ID             string
	Date           time.Time
	CompanyName    string
	Description    string
	TotalValue     decimal.Decimal
	PaymentMethods []PaymentMethod
	PaidAmount     decimal.Decimal
	PendingAmount  decimal.Decimal
	Status         SettlementStatus
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ApplySettlement recomputes the derived fields from the current methods.
func (d *Debt) ApplySettlement() error {
	st, err := ComputeSettlement(d.TotalValue, d.PaymentMethods)
	if err != nil {
		return err
	}

	d.PaidAmount = st.Received
	d.PendingAmount = st.Pending
	d.Status = st.Status

	return nil
}

// ReceivePayment settles the outstanding balance in full, as happens when
// a company acerto pay-down covers this debt.
func (d *Debt) ReceivePayment() {
	d.PaidAmount = d.PaidAmount.Add(d.PendingAmount)
	d.PendingAmount = decimal.Zero
	d.Status = SettlementPaid
}
