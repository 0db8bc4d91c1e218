package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale is a receivable-side transaction: goods sold to a client, funded by
// one or more payment methods. ReceivedAmount, PendingAmount and Status are
// derived by ComputeSettlement and must never be set directly. When
// SellerName is set the sale carries a commission at CommissionRate
// percent (DefaultCommissionRate when zero).
type Sale struct {
	ID             string
	Date           time.Time
	ClientName     string
	SellerName     string
	CommissionRate decimal.Decimal
	TotalValue     decimal.Decimal
	PaymentMethods []PaymentMethod
	ReceivedAmount decimal.Decimal
	PendingAmount  decimal.Decimal
	Status         SettlementStatus
	Observations   string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ApplySettlement recomputes the derived fields from the current methods.
func (s *Sale) ApplySettlement() error {
	st, err := ComputeSettlement(s.TotalValue, s.PaymentMethods)
	if err != nil {
		return err
	}

	s.ReceivedAmount = st.Received
	s.PendingAmount = st.Pending
	s.Status = st.Status

	return nil
}

// ReceivePayment settles part or all of the outstanding balance, as happens
// when an acerto pay-down covers this sale. The received amount grows by
// the current pending amount and the sale becomes paid.
func (s *Sale) ReceivePayment() {
	s.ReceivedAmount = s.ReceivedAmount.Add(s.PendingAmount)
	s.PendingAmount = decimal.Zero
	s.Status = SettlementPaid
}
