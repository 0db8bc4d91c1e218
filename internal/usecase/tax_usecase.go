package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rmacedo/contas/internal/domain"
)

// TaxUseCase manages tax obligations feeding the payables timeline.
type TaxUseCase struct {
	taxRepo TaxRepository
	idGen   IDGenerator
	clock   Clock
}

// NewTaxUseCase creates a new TaxUseCase.
func NewTaxUseCase(taxRepo TaxRepository, idGen IDGenerator, clock Clock) *TaxUseCase {
	return &TaxUseCase{taxRepo: taxRepo, idGen: idGen, clock: clock}
}

// CreateTaxInput represents input for registering a tax obligation.
type CreateTaxInput struct {
	TaxType         string
	Description     string
	Amount          decimal.Decimal
	DueDate         time.Time
	ReferencePeriod string
}

// CreateTax registers a new tax obligation.
func (uc *TaxUseCase) CreateTax(ctx context.Context, input CreateTaxInput) (*domain.Tax, error) {
	if input.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: tax amount must be positive", domain.ErrInvalidAmount)
	}
	if input.DueDate.IsZero() {
		return nil, fmt.Errorf("%w: tax due date is required", domain.ErrInvalidSchedule)
	}

	now := uc.clock.Now().UTC()
	tax := &domain.Tax{
		ID:              uc.idGen.Generate(),
		TaxType:         input.TaxType,
		Description:     input.Description,
		Amount:          input.Amount,
		DueDate:         domain.DateOnly(input.DueDate),
		ReferencePeriod: input.ReferencePeriod,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := uc.taxRepo.Create(ctx, tax); err != nil {
		return nil, err
	}

	return tax, nil
}

// MarkTaxPaid flags a tax obligation as settled, removing it from the
// payables timeline.
func (uc *TaxUseCase) MarkTaxPaid(ctx context.Context, id string) (*domain.Tax, error) {
	tax, err := uc.taxRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if tax.Paid {
		return nil, fmt.Errorf("%w: tax %s already paid", domain.ErrIllegalStateTransition, tax.ID)
	}

	tax.Paid = true
	tax.UpdatedAt = uc.clock.Now().UTC()

	if err := uc.taxRepo.Update(ctx, tax); err != nil {
		return nil, err
	}

	return tax, nil
}

// GetTax retrieves a tax obligation by ID.
func (uc *TaxUseCase) GetTax(ctx context.Context, id string) (*domain.Tax, error) {
	return uc.taxRepo.GetByID(ctx, id)
}

// DeleteTax removes a tax obligation.
func (uc *TaxUseCase) DeleteTax(ctx context.Context, id string) error {
	return uc.taxRepo.Delete(ctx, id)
}

// ListTaxesDue lists tax obligations due inside [from, to].
func (uc *TaxUseCase) ListTaxesDue(ctx context.Context, from, to time.Time) ([]*domain.Tax, error) {
	return uc.taxRepo.ListDueBetween(ctx, from, to)
}
