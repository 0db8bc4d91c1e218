package usecase

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rmacedo/contas/internal/domain"
)

// PermutaUseCase manages trade-in credit ledgers.
type PermutaUseCase struct {
	txManager   TransactionManager
	permutaRepo PermutaRepository
	idGen       IDGenerator
	clock       Clock
}

// NewPermutaUseCase creates a new PermutaUseCase.
func NewPermutaUseCase(txManager TransactionManager, permutaRepo PermutaRepository, idGen IDGenerator, clock Clock) *PermutaUseCase {
	return &PermutaUseCase{
		txManager:   txManager,
		permutaRepo: permutaRepo,
		idGen:       idGen,
		clock:       clock,
	}
}

// CreatePermutaInput represents input for registering a trade-in.
type CreatePermutaInput struct {
	HolderName  string
	Description string
	CreditValue decimal.Decimal
}

// CreatePermuta registers a new trade-in credit line.
func (uc *PermutaUseCase) CreatePermuta(ctx context.Context, input CreatePermutaInput) (*domain.Permuta, error) {
	if input.CreditValue.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: credit value must be positive", domain.ErrInvalidAmount)
	}
	if input.HolderName == "" {
		return nil, fmt.Errorf("%w: holder name is required", domain.ErrInvalidCounterpartyName)
	}

	now := uc.clock.Now().UTC()
	permuta := &domain.Permuta{
		ID:            uc.idGen.Generate(),
		HolderName:    input.HolderName,
		Description:   input.Description,
		CreditValue:   input.CreditValue,
		ConsumedValue: decimal.Zero,
		Status:        domain.PermutaActive,
		Version:       1,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := uc.permutaRepo.Create(ctx, permuta); err != nil {
		return nil, err
	}

	return permuta, nil
}

// CancelPermuta voids a trade-in credit line. Cancellation does not touch
// payments that already consumed the credit; it only blocks further
// consumption.
func (uc *PermutaUseCase) CancelPermuta(ctx context.Context, id string, expectedVersion int64) (*domain.Permuta, error) {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	permuta, err := uc.permutaRepo.GetByIDForUpdate(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	if permuta.Version != expectedVersion {
		return nil, fmt.Errorf("%w: permuta %s at version %d, expected %d",
			domain.ErrConcurrentModification, permuta.ID, permuta.Version, expectedVersion)
	}

	if err := permuta.Cancel(); err != nil {
		return nil, err
	}
	permuta.UpdatedAt = uc.clock.Now().UTC()

	if err := uc.permutaRepo.Update(ctx, tx, permuta); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return permuta, nil
}

// GetPermuta retrieves a permuta by ID.
func (uc *PermutaUseCase) GetPermuta(ctx context.Context, id string) (*domain.Permuta, error) {
	return uc.permutaRepo.GetByID(ctx, id)
}

// ListPermutas lists permutas with filtering and pagination.
func (uc *PermutaUseCase) ListPermutas(ctx context.Context, filter ListFilter) ([]*domain.Permuta, error) {
	filter.Limit = clampLimit(filter.Limit)
	return uc.permutaRepo.List(ctx, filter)
}
