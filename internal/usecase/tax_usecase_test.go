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

func newTaxUseCase(repo *mocks.MockTaxRepository) *usecase.TaxUseCase {
	return usecase.NewTaxUseCase(repo, mocks.NewMockIDGenerator(), mocks.NewMockClock(testNow))
}

func TestTaxUseCase_CreateTax(t *testing.T) {
	repo := mocks.NewMockTaxRepository()
	uc := newTaxUseCase(repo)

	tax, err := uc.CreateTax(context.Background(), usecase.CreateTaxInput{
		TaxType:         "ICMS",
		Description:     "January apuração",
		Amount:          decimal.NewFromInt(430),
		DueDate:         time.Date(2025, 1, 20, 15, 30, 0, 0, time.UTC),
		ReferencePeriod: "2025-01",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !tax.DueDate.Equal(time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("due date not normalized to a date, got %s", tax.DueDate)
	}
	if tax.Paid {
		t.Error("new tax must start unpaid")
	}

	if _, err := uc.CreateTax(context.Background(), usecase.CreateTaxInput{
		TaxType: "ISS",
		Amount:  decimal.Zero,
		DueDate: time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC),
	}); !errors.Is(err, domain.ErrInvalidAmount) {
		t.Errorf("expected ErrInvalidAmount, got %v", err)
	}
}

func TestTaxUseCase_MarkTaxPaid(t *testing.T) {
	repo := mocks.NewMockTaxRepository()
	uc := newTaxUseCase(repo)

	tax, err := uc.CreateTax(context.Background(), usecase.CreateTaxInput{
		TaxType: "ICMS",
		Amount:  decimal.NewFromInt(430),
		DueDate: time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	paid, err := uc.MarkTaxPaid(context.Background(), tax.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !paid.Paid {
		t.Error("expected tax marked paid")
	}

	if _, err := uc.MarkTaxPaid(context.Background(), tax.ID); !errors.Is(err, domain.ErrIllegalStateTransition) {
		t.Errorf("expected ErrIllegalStateTransition on double pay, got %v", err)
	}
}
