package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rmacedo/contas/internal/domain"
	"github.com/rmacedo/contas/internal/usecase"
	"github.com/rmacedo/contas/internal/usecase/mocks"
)

type acertoFixtures struct {
	acertoRepo     *mocks.MockAcertoRepository
	saleRepo       *mocks.MockSaleRepository
	debtRepo       *mocks.MockDebtRepository
	instrumentRepo *mocks.MockInstrumentRepository
	permutaRepo    *mocks.MockPermutaRepository
	cashFlow       *mocks.MockCashFlowLedger
	uc             *usecase.AcertoUseCase
}

func newAcertoFixtures() *acertoFixtures {
	f := &acertoFixtures{
		acertoRepo:     mocks.NewMockAcertoRepository(),
		saleRepo:       mocks.NewMockSaleRepository(),
		debtRepo:       mocks.NewMockDebtRepository(),
		instrumentRepo: mocks.NewMockInstrumentRepository(),
		permutaRepo:    mocks.NewMockPermutaRepository(),
		cashFlow:       mocks.NewMockCashFlowLedger(),
	}
	f.uc = usecase.NewAcertoUseCase(
		mocks.NewMockTransactionManager(),
		f.acertoRepo,
		f.saleRepo,
		f.debtRepo,
		f.instrumentRepo,
		f.permutaRepo,
		f.cashFlow,
		mocks.NewMockIDGenerator(),
		mocks.NewMockClock(testNow),
		nil,
	)
	return f
}

// seeds a client acerto for "Ana" with two contributing sales of 300 and 200.
func (f *acertoFixtures) seedClientAcerto(t *testing.T) *domain.Acerto {
	t.Helper()
	ctx := context.Background()

	f.saleRepo.Create(ctx, nil, &domain.Sale{
		ID:            "sale-300",
		ClientName:    "Ana",
		TotalValue:    decimal.NewFromInt(300),
		PendingAmount: decimal.NewFromInt(300),
		Status:        domain.SettlementPending,
	})
	f.saleRepo.Create(ctx, nil, &domain.Sale{
		ID:            "sale-200",
		ClientName:    "Ana",
		TotalValue:    decimal.NewFromInt(200),
		PendingAmount: decimal.NewFromInt(200),
		Status:        domain.SettlementPending,
	})

	acerto := &domain.Acerto{
		ID:          "acerto-1",
		HolderName:  "Ana",
		Kind:        domain.HolderClient,
		TotalAmount: decimal.NewFromInt(500),
		Status:      domain.AcertoPending,
		Version:     1,
		Contributions: []domain.ContributionRef{
			{Kind: domain.ParentSale, ID: "sale-300", Amount: decimal.NewFromInt(300)},
			{Kind: domain.ParentSale, ID: "sale-200", Amount: decimal.NewFromInt(200)},
		},
	}
	f.acertoRepo.Create(ctx, nil, acerto)
	return acerto
}

func TestAcertoUseCase_SettleAcerto(t *testing.T) {
	t.Run("partial settlement pays selected sales only", func(t *testing.T) {
		f := newAcertoFixtures()
		f.seedClientAcerto(t)

		acerto, err := f.uc.SettleAcerto(context.Background(), usecase.SettleAcertoInput{
			AcertoID:        "acerto-1",
			ExpectedVersion: 1,
			TransactionIDs:  []string{"sale-300"},
			PaymentMethods: []usecase.PaymentMethodInput{
				{Kind: domain.PaymentPix, Amount: decimal.NewFromInt(300)},
			},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !acerto.PaidAmount.Equal(decimal.NewFromInt(300)) {
			t.Errorf("expected paid 300, got %s", acerto.PaidAmount)
		}
		if acerto.Status != domain.AcertoPartial {
			t.Errorf("expected partial, got %s", acerto.Status)
		}
		if acerto.PaymentDate == nil || !acerto.PaymentDate.Equal(domain.DateOnly(testNow)) {
			t.Errorf("expected payment date stamped")
		}

		sale300, _ := f.saleRepo.GetByID(context.Background(), "sale-300")
		if sale300.Status != domain.SettlementPaid || !sale300.PendingAmount.Equal(decimal.Zero) {
			t.Errorf("expected sale-300 paid in full, got %s pending %s", sale300.Status, sale300.PendingAmount)
		}

		sale200, _ := f.saleRepo.GetByID(context.Background(), "sale-200")
		if sale200.Status != domain.SettlementPending || !sale200.PendingAmount.Equal(decimal.NewFromInt(200)) {
			t.Errorf("expected sale-200 untouched, got %s pending %s", sale200.Status, sale200.PendingAmount)
		}

		if len(f.cashFlow.Entries) != 1 {
			t.Fatalf("expected 1 cash flow entry, got %d", len(f.cashFlow.Entries))
		}
		if f.cashFlow.Entries[0].Direction != domain.CashIn {
			t.Errorf("client settlement should record inbound cash")
		}
	})

	t.Run("full settlement marks acerto paid", func(t *testing.T) {
		f := newAcertoFixtures()
		f.seedClientAcerto(t)

		acerto, err := f.uc.SettleAcerto(context.Background(), usecase.SettleAcertoInput{
			AcertoID:        "acerto-1",
			ExpectedVersion: 1,
			TransactionIDs:  []string{"sale-300", "sale-200"},
			PaymentMethods: []usecase.PaymentMethodInput{
				{Kind: domain.PaymentCash, Amount: decimal.NewFromInt(500)},
			},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if acerto.Status != domain.AcertoPaid {
			t.Errorf("expected paid, got %s", acerto.Status)
		}
	})

	t.Run("payment batch must match selected pending", func(t *testing.T) {
		f := newAcertoFixtures()
		f.seedClientAcerto(t)

		_, err := f.uc.SettleAcerto(context.Background(), usecase.SettleAcertoInput{
			AcertoID:        "acerto-1",
			ExpectedVersion: 1,
			TransactionIDs:  []string{"sale-300"},
			PaymentMethods: []usecase.PaymentMethodInput{
				{Kind: domain.PaymentPix, Amount: decimal.NewFromInt(250)},
			},
		})
		if !errors.Is(err, domain.ErrAmountMismatch) {
			t.Fatalf("expected ErrAmountMismatch, got %v", err)
		}
	})

	t.Run("stale version rejected", func(t *testing.T) {
		f := newAcertoFixtures()
		f.seedClientAcerto(t)

		_, err := f.uc.SettleAcerto(context.Background(), usecase.SettleAcertoInput{
			AcertoID:        "acerto-1",
			ExpectedVersion: 7,
			TransactionIDs:  []string{"sale-300"},
			PaymentMethods: []usecase.PaymentMethodInput{
				{Kind: domain.PaymentPix, Amount: decimal.NewFromInt(300)},
			},
		})
		if !errors.Is(err, domain.ErrConcurrentModification) {
			t.Fatalf("expected ErrConcurrentModification, got %v", err)
		}
	})

	t.Run("already paid acerto rejected", func(t *testing.T) {
		f := newAcertoFixtures()
		acerto := f.seedClientAcerto(t)
		acerto.PaidAmount = decimal.NewFromInt(500)
		acerto.RefreshStatus()

		_, err := f.uc.SettleAcerto(context.Background(), usecase.SettleAcertoInput{
			AcertoID:        "acerto-1",
			ExpectedVersion: 1,
			TransactionIDs:  []string{"sale-300"},
			PaymentMethods: []usecase.PaymentMethodInput{
				{Kind: domain.PaymentPix, Amount: decimal.NewFromInt(300)},
			},
		})
		if !errors.Is(err, domain.ErrIllegalStateTransition) {
			t.Fatalf("expected ErrIllegalStateTransition, got %v", err)
		}
	})

	t.Run("selection from another holder rejected", func(t *testing.T) {
		f := newAcertoFixtures()
		f.seedClientAcerto(t)
		f.saleRepo.Create(context.Background(), nil, &domain.Sale{
			ID:            "sale-other",
			ClientName:    "Beto",
			PendingAmount: decimal.NewFromInt(100),
			Status:        domain.SettlementPending,
		})

		_, err := f.uc.SettleAcerto(context.Background(), usecase.SettleAcertoInput{
			AcertoID:        "acerto-1",
			ExpectedVersion: 1,
			TransactionIDs:  []string{"sale-other"},
			PaymentMethods: []usecase.PaymentMethodInput{
				{Kind: domain.PaymentPix, Amount: decimal.NewFromInt(100)},
			},
		})
		if !errors.Is(err, domain.ErrUnknownReference) {
			t.Fatalf("expected ErrUnknownReference, got %v", err)
		}
	})

	t.Run("company acerto settles debts and records outbound cash", func(t *testing.T) {
		f := newAcertoFixtures()
		ctx := context.Background()

		f.debtRepo.Create(ctx, nil, &domain.Debt{
			ID:            "debt-1",
			CompanyName:   "Fornecedora XYZ",
			PendingAmount: decimal.NewFromInt(900),
			Status:        domain.SettlementPending,
		})
		f.acertoRepo.Create(ctx, nil, &domain.Acerto{
			ID:          "acerto-co",
			HolderName:  "Fornecedora XYZ",
			Kind:        domain.HolderCompany,
			TotalAmount: decimal.NewFromInt(900),
			Status:      domain.AcertoPending,
			Version:     1,
			Contributions: []domain.ContributionRef{
				{Kind: domain.ParentDebt, ID: "debt-1", Amount: decimal.NewFromInt(900)},
			},
		})

		acerto, err := f.uc.SettleAcerto(ctx, usecase.SettleAcertoInput{
			AcertoID:        "acerto-co",
			ExpectedVersion: 1,
			TransactionIDs:  []string{"debt-1"},
			PaymentMethods: []usecase.PaymentMethodInput{
				{Kind: domain.PaymentTransfer, Amount: decimal.NewFromInt(900)},
			},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if acerto.Status != domain.AcertoPaid {
			t.Errorf("expected paid, got %s", acerto.Status)
		}

		debt, _ := f.debtRepo.GetByID(ctx, "debt-1")
		if debt.Status != domain.SettlementPaid {
			t.Errorf("expected debt paid, got %s", debt.Status)
		}

		if len(f.cashFlow.Entries) != 1 || f.cashFlow.Entries[0].Direction != domain.CashOut {
			t.Errorf("company settlement should record outbound cash")
		}
	})

	t.Run("settlement by check issues instruments on the acerto", func(t *testing.T) {
		f := newAcertoFixtures()
		f.seedClientAcerto(t)

		_, err := f.uc.SettleAcerto(context.Background(), usecase.SettleAcertoInput{
			AcertoID:        "acerto-1",
			ExpectedVersion: 1,
			TransactionIDs:  []string{"sale-300"},
			PaymentMethods: []usecase.PaymentMethodInput{
				{
					Kind:         domain.PaymentCheck,
					Amount:       decimal.NewFromInt(300),
					Installments: 2,
					IntervalDays: 15,
					FirstDueDate: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
				},
			},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		instruments, _ := f.instrumentRepo.ListByParent(context.Background(), domain.ParentAcerto, "acerto-1")
		if len(instruments) != 2 {
			t.Fatalf("expected 2 instruments on the acerto, got %d", len(instruments))
		}
	})
}

func TestAcertoUseCase_PayOffAcerto(t *testing.T) {
	t.Run("full pay-off closes the account without touching transactions", func(t *testing.T) {
		f := newAcertoFixtures()
		f.seedClientAcerto(t)

		acerto, err := f.uc.PayOffAcerto(context.Background(), usecase.PayOffAcertoInput{
			AcertoID:        "acerto-1",
			ExpectedVersion: 1,
			PaymentMethods: []usecase.PaymentMethodInput{
				{Kind: domain.PaymentCash, Amount: decimal.NewFromInt(500)},
			},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if acerto.Status != domain.AcertoPaid {
			t.Errorf("expected paid, got %s", acerto.Status)
		}
		if !acerto.PaidAmount.Equal(decimal.NewFromInt(500)) {
			t.Errorf("expected paid 500, got %s", acerto.PaidAmount)
		}
		if acerto.PaymentDate == nil || !acerto.PaymentDate.Equal(domain.DateOnly(testNow)) {
			t.Errorf("expected payment date stamped")
		}

		sale300, _ := f.saleRepo.GetByID(context.Background(), "sale-300")
		if sale300.Status != domain.SettlementPending {
			t.Errorf("expected sale-300 untouched, got %s", sale300.Status)
		}

		if len(f.cashFlow.Entries) != 1 || f.cashFlow.Entries[0].Direction != domain.CashIn {
			t.Errorf("expected a single cash-in entry, got %v", f.cashFlow.Entries)
		}
	})

	t.Run("batch must match the pending amount", func(t *testing.T) {
		f := newAcertoFixtures()
		f.seedClientAcerto(t)

		_, err := f.uc.PayOffAcerto(context.Background(), usecase.PayOffAcertoInput{
			AcertoID:        "acerto-1",
			ExpectedVersion: 1,
			PaymentMethods: []usecase.PaymentMethodInput{
				{Kind: domain.PaymentCash, Amount: decimal.NewFromInt(400)},
			},
		})
		if !errors.Is(err, domain.ErrAmountMismatch) {
			t.Fatalf("expected ErrAmountMismatch, got %v", err)
		}
	})

	t.Run("stale version is rejected", func(t *testing.T) {
		f := newAcertoFixtures()
		f.seedClientAcerto(t)

		_, err := f.uc.PayOffAcerto(context.Background(), usecase.PayOffAcertoInput{
			AcertoID:        "acerto-1",
			ExpectedVersion: 7,
			PaymentMethods: []usecase.PaymentMethodInput{
				{Kind: domain.PaymentCash, Amount: decimal.NewFromInt(500)},
			},
		})
		if !errors.Is(err, domain.ErrConcurrentModification) {
			t.Fatalf("expected ErrConcurrentModification, got %v", err)
		}
	})

	t.Run("paid acerto cannot be paid off again", func(t *testing.T) {
		f := newAcertoFixtures()
		acerto := f.seedClientAcerto(t)
		acerto.PaidAmount = decimal.NewFromInt(500)
		acerto.RefreshStatus()

		_, err := f.uc.PayOffAcerto(context.Background(), usecase.PayOffAcertoInput{
			AcertoID:        "acerto-1",
			ExpectedVersion: 1,
			PaymentMethods: []usecase.PaymentMethodInput{
				{Kind: domain.PaymentCash, Amount: decimal.NewFromInt(500)},
			},
		})
		if !errors.Is(err, domain.ErrIllegalStateTransition) {
			t.Fatalf("expected ErrIllegalStateTransition, got %v", err)
		}
	})
}
