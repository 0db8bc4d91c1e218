package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rmacedo/contas/internal/domain"
)

// SaleUseCase handles receivable-side transactions.
type SaleUseCase struct {
	txManager      TransactionManager
	saleRepo       SaleRepository
	commissionRepo CommissionRepository
	payments       paymentProcessor
	clock          Clock
}

// NewSaleUseCase creates a new SaleUseCase.
func NewSaleUseCase(
	txManager TransactionManager,
	saleRepo SaleRepository,
	commissionRepo CommissionRepository,
	instrumentRepo InstrumentRepository,
	permutaRepo PermutaRepository,
	acertoRepo AcertoRepository,
	cashFlow CashFlowLedger,
	idGen IDGenerator,
	clock Clock,
) *SaleUseCase {
	return &SaleUseCase{
		txManager:      txManager,
		saleRepo:       saleRepo,
		commissionRepo: commissionRepo,
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

// CreateSaleInput represents input for creating a sale.
type CreateSaleInput struct {
	Date           time.Time
	ClientName     string
	SellerName     string
	CommissionRate decimal.Decimal
	TotalValue     decimal.Decimal
	PaymentMethods []PaymentMethodInput
	Observations   string
}

// CreateSale records a sale, derives its settlement, expands deferred
// methods into instruments, consumes trade-in credit and feeds running
// accounts. The whole mutation set commits or rolls back as one unit.
func (uc *SaleUseCase) CreateSale(ctx context.Context, input CreateSaleInput) (*domain.Sale, error) {
	if domain.HolderKey(input.ClientName) == "" {
		return nil, fmt.Errorf("%w: client name is required", domain.ErrInvalidCounterpartyName)
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	sale, err := uc.createSaleTx(ctx, tx, input)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return sale, nil
}

func (uc *SaleUseCase) createSaleTx(ctx context.Context, tx Transaction, input CreateSaleInput) (*domain.Sale, error) {
	now := uc.clock.Now().UTC()

	methods, err := uc.payments.buildMethods(ctx, tx, input.PaymentMethods)
	if err != nil {
		return nil, err
	}

	sale := &domain.Sale{
		ID:             uc.payments.idGen.Generate(),
		Date:           domain.DateOnly(input.Date),
		ClientName:     input.ClientName,
		SellerName:     input.SellerName,
		CommissionRate: input.CommissionRate,
		TotalValue:     input.TotalValue,
		PaymentMethods: methods,
		Observations:   input.Observations,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := sale.ApplySettlement(); err != nil {
		return nil, err
	}

	if err := uc.saleRepo.Create(ctx, tx, sale); err != nil {
		return nil, err
	}

	if err := uc.createCommission(ctx, tx, sale); err != nil {
		return nil, err
	}

	if _, err := uc.payments.expandInstruments(ctx, tx, methods, domain.ParentSale, sale.ID, sale.ClientName, false); err != nil {
		return nil, err
	}

	if err := uc.payments.contributeRunningAccounts(ctx, tx, methods, domain.HolderClient, domain.ParentSale, sale.ID); err != nil {
		return nil, err
	}

	desc := fmt.Sprintf("Sale to %s", sale.ClientName)
	if err := uc.payments.recordInstantCash(ctx, tx, methods, domain.CashIn, domain.CashCategorySale, desc, sale.ID); err != nil {
		return nil, err
	}

	return sale, nil
}

// UpdateSaleInput represents input for editing a sale's payment methods.
type UpdateSaleInput struct {
	Date           time.Time
	ClientName     string
	SellerName     string
	CommissionRate decimal.Decimal
	TotalValue     decimal.Decimal
	PaymentMethods []PaymentMethodInput
	Observations   string
}

// UpdateSale rebuilds a sale from scratch: the previous instrument set is
// discarded and regenerated, consumed trade-in credit is returned and
// re-drawn, and running-account contributions are retracted and re-added.
// No partial patching of schedules.
func (uc *SaleUseCase) UpdateSale(ctx context.Context, id string, input UpdateSaleInput) (*domain.Sale, error) {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	sale, err := uc.saleRepo.GetByIDForUpdate(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	if err := uc.unwindSaleTx(ctx, tx, sale); err != nil {
		return nil, err
	}

	methods, err := uc.payments.buildMethods(ctx, tx, input.PaymentMethods)
	if err != nil {
		return nil, err
	}

	sale.Date = domain.DateOnly(input.Date)
	sale.ClientName = input.ClientName
	sale.SellerName = input.SellerName
	sale.CommissionRate = input.CommissionRate
	sale.TotalValue = input.TotalValue
	sale.PaymentMethods = methods
	sale.Observations = input.Observations
	sale.UpdatedAt = uc.clock.Now().UTC()

	if err := sale.ApplySettlement(); err != nil {
		return nil, err
	}

	if err := uc.saleRepo.Update(ctx, tx, sale); err != nil {
		return nil, err
	}

	if err := uc.createCommission(ctx, tx, sale); err != nil {
		return nil, err
	}

	if _, err := uc.payments.expandInstruments(ctx, tx, methods, domain.ParentSale, sale.ID, sale.ClientName, false); err != nil {
		return nil, err
	}

	if err := uc.payments.contributeRunningAccounts(ctx, tx, methods, domain.HolderClient, domain.ParentSale, sale.ID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return sale, nil
}

// DeleteSale removes a sale and cascades: dependent instruments are
// deleted, trade-in credit released, running-account contributions
// retracted.
func (uc *SaleUseCase) DeleteSale(ctx context.Context, id string) error {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	sale, err := uc.saleRepo.GetByIDForUpdate(ctx, tx, id)
	if err != nil {
		return err
	}

	if err := uc.unwindSaleTx(ctx, tx, sale); err != nil {
		return err
	}

	if err := uc.saleRepo.Delete(ctx, tx, sale.ID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// createCommission records the seller's cut when the sale names one.
// The rate falls back to the default when the sale carries none.
func (uc *SaleUseCase) createCommission(ctx context.Context, tx Transaction, sale *domain.Sale) error {
	if domain.HolderKey(sale.SellerName) == "" {
		return nil
	}

	rate := sale.CommissionRate
	if rate.LessThanOrEqual(decimal.Zero) {
		rate = domain.DefaultCommissionRate
	}

	now := uc.clock.Now().UTC()

	return uc.commissionRepo.Create(ctx, tx, &domain.Commission{
		ID:         uc.payments.idGen.Generate(),
		SaleID:     sale.ID,
		SellerName: sale.SellerName,
		SaleValue:  sale.TotalValue,
		Rate:       rate,
		Amount:     domain.CommissionAmount(sale.TotalValue, rate),
		Date:       sale.Date,
		Status:     domain.CommissionPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
}

// unwindSaleTx reverses a sale's side effects: instruments, commission,
// trade-in consumption, and running-account contributions.
func (uc *SaleUseCase) unwindSaleTx(ctx context.Context, tx Transaction, sale *domain.Sale) error {
	if err := uc.payments.instrumentRepo.DeleteByParent(ctx, tx, domain.ParentSale, sale.ID); err != nil {
		return err
	}

	if err := uc.commissionRepo.DeleteBySale(ctx, tx, sale.ID); err != nil {
		return err
	}

	if err := uc.payments.releaseTradeIns(ctx, tx, sale.PaymentMethods); err != nil {
		return err
	}

	return uc.payments.retractRunningAccounts(ctx, tx, sale.PaymentMethods, domain.HolderClient, domain.ParentSale, sale.ID)
}

// GetSale retrieves a sale by ID.
func (uc *SaleUseCase) GetSale(ctx context.Context, id string) (*domain.Sale, error) {
	return uc.saleRepo.GetByID(ctx, id)
}

// ListSales lists sales with filtering and pagination.
func (uc *SaleUseCase) ListSales(ctx context.Context, filter ListFilter) ([]*domain.Sale, error) {
	filter.Limit = clampLimit(filter.Limit)
	return uc.saleRepo.List(ctx, filter)
}
