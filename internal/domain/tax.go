package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tax is a dated government obligation. Taxes feed the payable side of the
// due-date timeline alongside company checks and boletos.
type Tax struct {
	ID              string
	TaxType         string
	Description     string
	Amount          decimal.Decimal
	DueDate         time.Time
	ReferencePeriod string
	Paid            bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
