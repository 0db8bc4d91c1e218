package usecase

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rmacedo/contas/internal/domain"
)

// InstrumentUseCase operates on individual checks and boletos after the
// scheduler has issued them: clearing on payment and resolving overdue ones.
type InstrumentUseCase struct {
	txManager      TransactionManager
	instrumentRepo InstrumentRepository
	cashFlow       CashFlowLedger
	idGen          IDGenerator
	clock          Clock
}

// NewInstrumentUseCase creates a new InstrumentUseCase.
func NewInstrumentUseCase(
	txManager TransactionManager,
	instrumentRepo InstrumentRepository,
	cashFlow CashFlowLedger,
	idGen IDGenerator,
	clock Clock,
) *InstrumentUseCase {
	return &InstrumentUseCase{
		txManager:      txManager,
		instrumentRepo: instrumentRepo,
		cashFlow:       cashFlow,
		idGen:          idGen,
		clock:          clock,
	}
}

// MarkCleared settles a pending instrument at its face value and records
// the movement in the cash-flow ledger.
func (uc *InstrumentUseCase) MarkCleared(ctx context.Context, id string) (*domain.Instrument, error) {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	inst, err := uc.instrumentRepo.GetByIDForUpdate(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	if err := inst.Clear(); err != nil {
		return nil, fmt.Errorf("%w: instrument %s", err, inst.ID)
	}
	inst.UpdatedAt = uc.clock.Now().UTC()

	if err := uc.instrumentRepo.Update(ctx, tx, inst); err != nil {
		return nil, err
	}

	if err := uc.recordRealized(ctx, tx, inst, inst.Value, domain.CashCategoryInstrument, "Instrument cleared"); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return inst, nil
}

// Discount settles a pending instrument ahead of its due date for a fee,
// as when card receivables are anticipated. The ledger receives the
// discounted amount, not the face value.
func (uc *InstrumentUseCase) Discount(ctx context.Context, id string, fee decimal.Decimal) (*domain.Instrument, error) {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	inst, err := uc.instrumentRepo.GetByIDForUpdate(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	if err := inst.Discount(fee); err != nil {
		return nil, fmt.Errorf("instrument %s: %w", inst.ID, err)
	}
	inst.UpdatedAt = uc.clock.Now().UTC()

	if err := uc.instrumentRepo.Update(ctx, tx, inst); err != nil {
		return nil, err
	}

	if err := uc.recordRealized(ctx, tx, inst, inst.FinalAmount, domain.CashCategoryAnticipation, "Instrument discounted"); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return inst, nil
}

// ResolveOverdueInput represents input for resolving an overdue instrument.
type ResolveOverdueInput struct {
	InstrumentID string
	Action       domain.OverdueAction
	Interest     decimal.Decimal
	Penalty      decimal.Decimal
	NotaryCosts  decimal.Decimal
	Notes        string
}

// ResolveOverdue applies an overdue action to a pending instrument. When
// the action realizes a payment, the final amount (value plus charges)
// lands in the cash-flow ledger; protest and loss actions record nothing.
func (uc *InstrumentUseCase) ResolveOverdue(ctx context.Context, input ResolveOverdueInput) (*domain.Instrument, error) {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	inst, err := uc.instrumentRepo.GetByIDForUpdate(ctx, tx, input.InstrumentID)
	if err != nil {
		return nil, err
	}

	charges := domain.OverdueCharges{
		Interest:    input.Interest,
		Penalty:     input.Penalty,
		NotaryCosts: input.NotaryCosts,
	}

	realized, err := inst.ResolveOverdue(input.Action, charges, input.Notes)
	if err != nil {
		return nil, err
	}
	inst.UpdatedAt = uc.clock.Now().UTC()

	if err := uc.instrumentRepo.Update(ctx, tx, inst); err != nil {
		return nil, err
	}

	if realized {
		desc := fmt.Sprintf("Overdue resolution (%s)", input.Action)
		if err := uc.recordRealized(ctx, tx, inst, inst.FinalAmount, domain.CashCategoryInstrument, desc); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return inst, nil
}

// OverdueSuggestion carries the advisory charge amounts for an overdue
// instrument. Operators may accept, adjust or discard them.
type OverdueSuggestion struct {
	Interest decimal.Decimal
	Penalty  decimal.Decimal
	Days     int
}

// SuggestCharges computes advisory interest and penalty for an instrument
// as of today. Zero interest when the instrument is not yet overdue.
func (uc *InstrumentUseCase) SuggestCharges(ctx context.Context, id string) (*OverdueSuggestion, error) {
	inst, err := uc.instrumentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	today := uc.clock.Now()

	return &OverdueSuggestion{
		Interest: inst.SuggestInterest(today),
		Penalty:  inst.SuggestPenalty(),
		Days:     domain.DaysBetween(inst.DueDate, today),
	}, nil
}

// GetInstrument retrieves an instrument by ID.
func (uc *InstrumentUseCase) GetInstrument(ctx context.Context, id string) (*domain.Instrument, error) {
	return uc.instrumentRepo.GetByID(ctx, id)
}

// ListByParent lists the instruments issued for a sale, debt or acerto.
func (uc *InstrumentUseCase) ListByParent(ctx context.Context, parentKind domain.ParentKind, parentID string) ([]*domain.Instrument, error) {
	return uc.instrumentRepo.ListByParent(ctx, parentKind, parentID)
}

func (uc *InstrumentUseCase) recordRealized(ctx context.Context, tx Transaction, inst *domain.Instrument, amount decimal.Decimal, category, desc string) error {
	direction := domain.CashIn
	if inst.IsCompanyPayable {
		direction = domain.CashOut
	}

	now := uc.clock.Now().UTC()
	entry := &domain.CashFlowEntry{
		ID:          uc.idGen.Generate(),
		Date:        domain.DateOnly(now),
		Amount:      amount,
		Direction:   direction,
		Category:    category,
		Description: fmt.Sprintf("%s - %s", desc, inst.CounterpartyName),
		RelatedID:   inst.ID,
		CreatedAt:   now,
	}

	return uc.cashFlow.Record(ctx, tx, entry)
}
