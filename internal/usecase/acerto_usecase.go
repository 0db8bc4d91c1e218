package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rmacedo/contas/internal/domain"
	"github.com/rmacedo/contas/internal/infrastructure/metrics"
)

// AcertoUseCase handles running-account pay-downs. Settlement touches the
// acerto, every selected transaction, any permuta consumed by the payment
// batch and the instruments it spawns; all of it commits as a single unit
// guarded by the acerto's optimistic version.
type AcertoUseCase struct {
	txManager  TransactionManager
	acertoRepo AcertoRepository
	saleRepo   SaleRepository
	debtRepo   DebtRepository
	payments   paymentProcessor
	clock      Clock
	metrics    *metrics.Metrics
}

// NewAcertoUseCase creates a new AcertoUseCase.
func NewAcertoUseCase(
	txManager TransactionManager,
	acertoRepo AcertoRepository,
	saleRepo SaleRepository,
	debtRepo DebtRepository,
	instrumentRepo InstrumentRepository,
	permutaRepo PermutaRepository,
	cashFlow CashFlowLedger,
	idGen IDGenerator,
	clock Clock,
	m *metrics.Metrics,
) *AcertoUseCase {
	return &AcertoUseCase{
		txManager:  txManager,
		acertoRepo: acertoRepo,
		saleRepo:   saleRepo,
		debtRepo:   debtRepo,
		payments: paymentProcessor{
			permutaRepo:    permutaRepo,
			acertoRepo:     acertoRepo,
			instrumentRepo: instrumentRepo,
			cashFlow:       cashFlow,
			idGen:          idGen,
			clock:          clock,
		},
		clock:   clock,
		metrics: m,
	}
}

// SettleAcertoInput represents input for paying down a running account.
type SettleAcertoInput struct {
	AcertoID        string
	ExpectedVersion int64
	TransactionIDs  []string
	PaymentMethods  []PaymentMethodInput
}

// SettleAcerto pays down the selected contributing transactions. Every
// selected transaction must belong to the acerto's holder and still owe
// something; the payment batch must match the selected pending total
// exactly within tolerance. Deferred payment methods spawn instruments
// tied to the acerto, so paying an acerto by check is itself scheduled.
func (uc *AcertoUseCase) SettleAcerto(ctx context.Context, input SettleAcertoInput) (*domain.Acerto, error) {
	if len(input.TransactionIDs) == 0 {
		return nil, fmt.Errorf("%w: no transactions selected", domain.ErrUnknownReference)
	}

	start := time.Now()

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	acerto, err := uc.acertoRepo.GetByIDForUpdate(ctx, tx, input.AcertoID)
	if err != nil {
		return nil, err
	}

	if acerto.Version != input.ExpectedVersion {
		if uc.metrics != nil {
			uc.metrics.SettleConflicts.Inc()
		}
		return nil, fmt.Errorf("%w: acerto %s at version %d, expected %d",
			domain.ErrConcurrentModification, acerto.ID, acerto.Version, input.ExpectedVersion)
	}

	if acerto.Status == domain.AcertoPaid {
		return nil, fmt.Errorf("%w: acerto %s already paid", domain.ErrIllegalStateTransition, acerto.ID)
	}

	selectedPending, err := uc.settleTransactions(ctx, tx, acerto, input.TransactionIDs)
	if err != nil {
		return nil, err
	}

	methods, err := uc.payments.buildMethods(ctx, tx, input.PaymentMethods)
	if err != nil {
		return nil, err
	}

	paid := decimal.Zero
	for _, m := range methods {
		paid = paid.Add(m.Amount)
	}

	if !domain.AmountsEqual(paid, selectedPending) {
		return nil, fmt.Errorf("%w: payments total %s, selected pending %s",
			domain.ErrAmountMismatch, paid, selectedPending)
	}

	if _, err := uc.payments.expandInstruments(ctx, tx, methods, domain.ParentAcerto, acerto.ID, acerto.HolderName, acerto.Kind == domain.HolderCompany); err != nil {
		return nil, err
	}

	now := uc.clock.Now().UTC()
	if err := acerto.RegisterPayment(paid, now); err != nil {
		return nil, err
	}
	acerto.UpdatedAt = now

	if err := uc.acertoRepo.Update(ctx, tx, acerto); err != nil {
		return nil, err
	}

	direction := domain.CashIn
	if acerto.Kind == domain.HolderCompany {
		direction = domain.CashOut
	}

	desc := fmt.Sprintf("Running account settlement - %s", acerto.HolderName)
	if err := uc.payments.recordInstantCash(ctx, tx, methods, direction, domain.CashCategoryAcerto, desc, acerto.ID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.AcertosSettled.Inc()
		uc.metrics.AcertoSettleAmount.Observe(paid.InexactFloat64())
		uc.metrics.SettleDuration.Observe(time.Since(start).Seconds())
	}

	return acerto, nil
}

// PayOffAcertoInput represents input for closing a running account in full.
type PayOffAcertoInput struct {
	AcertoID        string
	ExpectedVersion int64
	PaymentMethods  []PaymentMethodInput
}

// PayOffAcerto closes the acerto's entire outstanding balance in one batch
// without touching individual transactions. The payment batch must match
// the pending amount exactly within tolerance; deferred methods spawn
// instruments tied to the acerto just as in SettleAcerto.
func (uc *AcertoUseCase) PayOffAcerto(ctx context.Context, input PayOffAcertoInput) (*domain.Acerto, error) {
	start := time.Now()

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	acerto, err := uc.acertoRepo.GetByIDForUpdate(ctx, tx, input.AcertoID)
	if err != nil {
		return nil, err
	}

	if acerto.Version != input.ExpectedVersion {
		if uc.metrics != nil {
			uc.metrics.SettleConflicts.Inc()
		}
		return nil, fmt.Errorf("%w: acerto %s at version %d, expected %d",
			domain.ErrConcurrentModification, acerto.ID, acerto.Version, input.ExpectedVersion)
	}

	if acerto.Status == domain.AcertoPaid {
		return nil, fmt.Errorf("%w: acerto %s already paid", domain.ErrIllegalStateTransition, acerto.ID)
	}

	pending := acerto.PendingAmount()
	if pending.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: acerto %s has nothing pending", domain.ErrIllegalStateTransition, acerto.ID)
	}

	methods, err := uc.payments.buildMethods(ctx, tx, input.PaymentMethods)
	if err != nil {
		return nil, err
	}

	paid := decimal.Zero
	for _, m := range methods {
		paid = paid.Add(m.Amount)
	}

	if !domain.AmountsEqual(paid, pending) {
		return nil, fmt.Errorf("%w: payments total %s, acerto pending %s",
			domain.ErrAmountMismatch, paid, pending)
	}

	if _, err := uc.payments.expandInstruments(ctx, tx, methods, domain.ParentAcerto, acerto.ID, acerto.HolderName, acerto.Kind == domain.HolderCompany); err != nil {
		return nil, err
	}

	now := uc.clock.Now().UTC()
	if err := acerto.RegisterPayment(paid, now); err != nil {
		return nil, err
	}
	acerto.UpdatedAt = now

	if err := uc.acertoRepo.Update(ctx, tx, acerto); err != nil {
		return nil, err
	}

	direction := domain.CashIn
	if acerto.Kind == domain.HolderCompany {
		direction = domain.CashOut
	}

	desc := fmt.Sprintf("Running account pay-off - %s", acerto.HolderName)
	if err := uc.payments.recordInstantCash(ctx, tx, methods, direction, domain.CashCategoryAcerto, desc, acerto.ID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.AcertosSettled.Inc()
		uc.metrics.AcertoSettleAmount.Observe(paid.InexactFloat64())
		uc.metrics.SettleDuration.Observe(time.Since(start).Seconds())
	}

	return acerto, nil
}

// settleTransactions locks the selected sales or debts, validates holder
// and pending state, marks each as fully received, and returns the summed
// pending amount settled.
func (uc *AcertoUseCase) settleTransactions(ctx context.Context, tx Transaction, acerto *domain.Acerto, ids []string) (decimal.Decimal, error) {
	total := decimal.Zero

	switch acerto.Kind {
	case domain.HolderClient:
		sales, err := uc.saleRepo.GetByIDsForUpdate(ctx, tx, ids)
		if err != nil {
			return decimal.Zero, err
		}
		if len(sales) != len(ids) {
			return decimal.Zero, fmt.Errorf("%w: selected sale missing", domain.ErrUnknownReference)
		}

		for _, sale := range sales {
			if !domain.SameHolder(sale.ClientName, acerto.HolderName) {
				return decimal.Zero, fmt.Errorf("%w: sale %s belongs to %s", domain.ErrUnknownReference, sale.ID, sale.ClientName)
			}
			if sale.PendingAmount.LessThanOrEqual(decimal.Zero) {
				return decimal.Zero, fmt.Errorf("%w: sale %s has nothing pending", domain.ErrIllegalStateTransition, sale.ID)
			}

			total = total.Add(sale.PendingAmount)
			sale.ReceivePayment()
			sale.UpdatedAt = uc.clock.Now().UTC()

			if err := uc.saleRepo.Update(ctx, tx, sale); err != nil {
				return decimal.Zero, err
			}
		}

	case domain.HolderCompany:
		debts, err := uc.debtRepo.GetByIDsForUpdate(ctx, tx, ids)
		if err != nil {
			return decimal.Zero, err
		}
		if len(debts) != len(ids) {
			return decimal.Zero, fmt.Errorf("%w: selected debt missing", domain.ErrUnknownReference)
		}

		for _, debt := range debts {
			if !domain.SameHolder(debt.CompanyName, acerto.HolderName) {
				return decimal.Zero, fmt.Errorf("%w: debt %s belongs to %s", domain.ErrUnknownReference, debt.ID, debt.CompanyName)
			}
			if debt.PendingAmount.LessThanOrEqual(decimal.Zero) {
				return decimal.Zero, fmt.Errorf("%w: debt %s has nothing pending", domain.ErrIllegalStateTransition, debt.ID)
			}

			total = total.Add(debt.PendingAmount)
			debt.ReceivePayment()
			debt.UpdatedAt = uc.clock.Now().UTC()

			if err := uc.debtRepo.Update(ctx, tx, debt); err != nil {
				return decimal.Zero, err
			}
		}

	default:
		return decimal.Zero, fmt.Errorf("%w: holder kind %q", domain.ErrIllegalStateTransition, acerto.Kind)
	}

	return total, nil
}

// GetAcerto retrieves an acerto by ID.
func (uc *AcertoUseCase) GetAcerto(ctx context.Context, id string) (*domain.Acerto, error) {
	return uc.acertoRepo.GetByID(ctx, id)
}

// ListAcertos lists acertos with filtering and pagination.
func (uc *AcertoUseCase) ListAcertos(ctx context.Context, filter ListFilter) ([]*domain.Acerto, error) {
	filter.Limit = clampLimit(filter.Limit)
	return uc.acertoRepo.List(ctx, filter)
}
