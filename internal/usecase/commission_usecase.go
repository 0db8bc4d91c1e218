package usecase

import (
	"context"
	"fmt"

	"github.com/rmacedo/contas/internal/domain"
)

// CommissionUseCase handles seller commission payouts and listings. The
// records themselves are created and removed by the sale lifecycle.
type CommissionUseCase struct {
	txManager      TransactionManager
	commissionRepo CommissionRepository
	cashFlow       CashFlowLedger
	idGen          IDGenerator
	clock          Clock
}

// NewCommissionUseCase creates a new CommissionUseCase.
func NewCommissionUseCase(
	txManager TransactionManager,
	commissionRepo CommissionRepository,
	cashFlow CashFlowLedger,
	idGen IDGenerator,
	clock Clock,
) *CommissionUseCase {
	return &CommissionUseCase{
		txManager:      txManager,
		commissionRepo: commissionRepo,
		cashFlow:       cashFlow,
		idGen:          idGen,
		clock:          clock,
	}
}

// MarkPaid pays out a pending commission and records the outflow in the
// cash-flow ledger.
func (uc *CommissionUseCase) MarkPaid(ctx context.Context, id string) (*domain.Commission, error) {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	commission, err := uc.commissionRepo.GetByIDForUpdate(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	if err := commission.MarkPaid(); err != nil {
		return nil, fmt.Errorf("%w: commission %s", err, commission.ID)
	}
	now := uc.clock.Now().UTC()
	commission.UpdatedAt = now

	if err := uc.commissionRepo.Update(ctx, tx, commission); err != nil {
		return nil, err
	}

	entry := &domain.CashFlowEntry{
		ID:          uc.idGen.Generate(),
		Date:        domain.DateOnly(now),
		Amount:      commission.Amount,
		Direction:   domain.CashOut,
		Category:    domain.CashCategoryCommission,
		Description: fmt.Sprintf("Commission payout - %s", commission.SellerName),
		RelatedID:   commission.ID,
		CreatedAt:   now,
	}
	if err := uc.cashFlow.Record(ctx, tx, entry); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return commission, nil
}

// GetBySale retrieves the commission attached to a sale, if any.
func (uc *CommissionUseCase) GetBySale(ctx context.Context, saleID string) (*domain.Commission, error) {
	return uc.commissionRepo.GetBySale(ctx, saleID)
}

// ListCommissions lists commissions with filtering and pagination. The
// holder filter matches the seller name.
func (uc *CommissionUseCase) ListCommissions(ctx context.Context, filter ListFilter) ([]*domain.Commission, error) {
	filter.Limit = clampLimit(filter.Limit)
	return uc.commissionRepo.List(ctx, filter)
}
