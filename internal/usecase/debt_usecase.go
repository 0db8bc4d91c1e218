package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rmacedo/contas/internal/domain"
)

// DebtUseCase handles payable-side transactions. Mirrors SaleUseCase:
// instruments issued for a debt are own instruments payable by the
// company, and instant slices flow out of cash.
type DebtUseCase struct {
	txManager TransactionManager
	debtRepo  DebtRepository
	payments  paymentProcessor
	clock     Clock
}

// NewDebtUseCase creates a new DebtUseCase.
func NewDebtUseCase(
	txManager TransactionManager,
	debtRepo DebtRepository,
	instrumentRepo InstrumentRepository,
	permutaRepo PermutaRepository,
	acertoRepo AcertoRepository,
	cashFlow CashFlowLedger,
	idGen IDGenerator,
	clock Clock,
) *DebtUseCase {
	return &DebtUseCase{
		txManager: txManager,
		debtRepo:  debtRepo,
		payments: paymentProcessor{
			permutaRepo:    permutaRepo,
			acertoRepo:     acertoRepo,
			instrumentRepo: instrumentRepo,
			cashFlow:       cashFlow,
			idGen:          idGen,
			clock:          clock,
		},
		clock: clock,
	}
}

// CreateDebtInput represents input for creating a debt.
type CreateDebtInput struct {
	Date           time.Time
	CompanyName    string
	Description    string
	TotalValue     decimal.Decimal
	PaymentMethods []PaymentMethodInput
}

// CreateDebt records a payable, derives its settlement and expands
// deferred methods into company-payable instruments, atomically.
func (uc *DebtUseCase) CreateDebt(ctx context.Context, input CreateDebtInput) (*domain.Debt, error) {
	if domain.HolderKey(input.CompanyName) == "" {
		return nil, fmt.Errorf("%w: company name is required", domain.ErrInvalidCounterpartyName)
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	now := uc.clock.Now().UTC()

	methods, err := uc.payments.buildMethods(ctx, tx, input.PaymentMethods)
	if err != nil {
		return nil, err
	}

	debt := &domain.Debt{
		ID:             uc.payments.idGen.Generate(),
		Date:           domain.DateOnly(input.Date),
		CompanyName:    input.CompanyName,
		Description:    input.Description,
		TotalValue:     input.TotalValue,
		PaymentMethods: methods,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := debt.ApplySettlement(); err != nil {
		return nil, err
	}

	if err := uc.debtRepo.Create(ctx, tx, debt); err != nil {
		return nil, err
	}

	if _, err := uc.payments.expandInstruments(ctx, tx, methods, domain.ParentDebt, debt.ID, debt.CompanyName, true); err != nil {
		return nil, err
	}

	if err := uc.payments.contributeRunningAccounts(ctx, tx, methods, domain.HolderCompany, domain.ParentDebt, debt.ID); err != nil {
		return nil, err
	}

	desc := fmt.Sprintf("Payment to %s", debt.CompanyName)
	if err := uc.payments.recordInstantCash(ctx, tx, methods, domain.CashOut, domain.CashCategoryDebt, desc, debt.ID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return debt, nil
}

// UpdateDebtInput represents input for editing a debt.
type UpdateDebtInput struct {
	Date           time.Time
	CompanyName    string
	Description    string
	TotalValue     decimal.Decimal
	PaymentMethods []PaymentMethodInput
}

// UpdateDebt rebuilds the debt's schedule and side effects from scratch,
// the same delete-then-recreate contract as UpdateSale.
func (uc *DebtUseCase) UpdateDebt(ctx context.Context, id string, input UpdateDebtInput) (*domain.Debt, error) {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	debt, err := uc.debtRepo.GetByIDForUpdate(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	if err := uc.unwindDebtTx(ctx, tx, debt); err != nil {
		return nil, err
	}

	methods, err := uc.payments.buildMethods(ctx, tx, input.PaymentMethods)
	if err != nil {
		return nil, err
	}

	debt.Date = domain.DateOnly(input.Date)
	debt.CompanyName = input.CompanyName
	debt.Description = input.Description
	debt.TotalValue = input.TotalValue
	debt.PaymentMethods = methods
	debt.UpdatedAt = uc.clock.Now().UTC()

	if err := debt.ApplySettlement(); err != nil {
		return nil, err
	}

	if err := uc.debtRepo.Update(ctx, tx, debt); err != nil {
		return nil, err
	}

	if _, err := uc.payments.expandInstruments(ctx, tx, methods, domain.ParentDebt, debt.ID, debt.CompanyName, true); err != nil {
		return nil, err
	}

	if err := uc.payments.contributeRunningAccounts(ctx, tx, methods, domain.HolderCompany, domain.ParentDebt, debt.ID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return debt, nil
}

// DeleteDebt removes a debt and cascades to its dependents.
func (uc *DebtUseCase) DeleteDebt(ctx context.Context, id string) error {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	debt, err := uc.debtRepo.GetByIDForUpdate(ctx, tx, id)
	if err != nil {
		return err
	}

	if err := uc.unwindDebtTx(ctx, tx, debt); err != nil {
		return err
	}

	if err := uc.debtRepo.Delete(ctx, tx, debt.ID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (uc *DebtUseCase) unwindDebtTx(ctx context.Context, tx Transaction, debt *domain.Debt) error {
	if err := uc.payments.instrumentRepo.DeleteByParent(ctx, tx, domain.ParentDebt, debt.ID); err != nil {
		return err
	}

	if err := uc.payments.releaseTradeIns(ctx, tx, debt.PaymentMethods); err != nil {
		return err
	}

	return uc.payments.retractRunningAccounts(ctx, tx, debt.PaymentMethods, domain.HolderCompany, domain.ParentDebt, debt.ID)
}

// GetDebt retrieves a debt by ID.
func (uc *DebtUseCase) GetDebt(ctx context.Context, id string) (*domain.Debt, error) {
	return uc.debtRepo.GetByID(ctx, id)
}

// ListDebts lists debts with filtering and pagination.
func (uc *DebtUseCase) ListDebts(ctx context.Context, filter ListFilter) ([]*domain.Debt, error) {
	filter.Limit = clampLimit(filter.Limit)
	return uc.debtRepo.List(ctx, filter)
}
