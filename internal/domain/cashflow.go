package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CashFlowDirection marks an entry as money in or money out.
type CashFlowDirection string

const (
	CashIn  CashFlowDirection = "in"
	CashOut CashFlowDirection = "out"
)

// Cash flow categories
const (
	CashCategorySale         = "sale"
	CashCategoryDebt         = "debt"
	CashCategoryInstrument   = "instrument"
	CashCategoryAnticipation = "anticipation"
	CashCategoryCommission   = "commission"
	CashCategoryAcerto       = "acerto"
	CashCategoryTax          = "tax"
)

// CashFlowEntry is the tuple reported to the cash-flow ledger collaborator
// whenever an amount is realized: an instant payment at transaction
// creation, a cleared instrument, or an acerto pay-down. The engine emits
// entries; it does not own the ledger.
type CashFlowEntry struct {
	ID          string
	Date        time.Time
	Amount      decimal.Decimal
	Direction   CashFlowDirection
	Category    string
	Description string
	RelatedID   string
	CreatedAt   time.Time
}
