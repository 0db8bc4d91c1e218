package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"

	"github.com/rmacedo/contas/internal/domain"
	"github.com/rmacedo/contas/internal/usecase"
	"github.com/rmacedo/contas/internal/usecase/mocks"
)

func newDueDateUseCase(t *testing.T, cache usecase.Cache, instRepo *mocks.MockInstrumentRepository, acertoRepo *mocks.MockAcertoRepository, taxRepo *mocks.MockTaxRepository) *usecase.DueDateUseCase {
	t.Helper()
	return usecase.NewDueDateUseCase(
		instRepo,
		acertoRepo,
		taxRepo,
		cache,
		mocks.NewMockClock(testNow),
		zerolog.Nop(),
		nil,
	)
}

func TestDueDateUseCase_Receivables(t *testing.T) {
	ctrl := gomock.NewController(t)

	instRepo := mocks.NewMockInstrumentRepository()
	acertoRepo := mocks.NewMockAcertoRepository()
	taxRepo := mocks.NewMockTaxRepository()
	ctx := context.Background()

	instRepo.CreateBatch(ctx, nil, []*domain.Instrument{
		{
			ID:               "inst-late",
			Kind:             domain.InstrumentBoleto,
			ParentKind:       domain.ParentSale,
			ParentID:         "sale-1",
			CounterpartyName: "Maria Souza",
			Value:            decimal.NewFromInt(300),
			DueDate:          time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC),
			Status:           domain.InstrumentPending,
		},
		{
			ID:               "inst-today",
			Kind:             domain.InstrumentCheck,
			ParentKind:       domain.ParentSale,
			ParentID:         "sale-2",
			CounterpartyName: "Carlos Lima",
			Value:            decimal.NewFromInt(150),
			DueDate:          time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
			Status:           domain.InstrumentPending,
		},
		{
			ID:               "inst-next-week",
			Kind:             domain.InstrumentBoleto,
			ParentKind:       domain.ParentSale,
			ParentID:         "sale-3",
			CounterpartyName: "Ana Pereira",
			Value:            decimal.NewFromInt(500),
			DueDate:          time.Date(2025, 1, 16, 0, 0, 0, 0, time.UTC),
			Status:           domain.InstrumentPending,
		},
	})

	acertoRepo.Create(ctx, nil, &domain.Acerto{
		ID:          "acerto-1",
		HolderName:  "Beto Alves",
		Kind:        domain.HolderClient,
		TotalAmount: decimal.NewFromInt(800),
		Status:      domain.AcertoPending,
	})

	cache := mocks.NewMockCache(ctrl)
	cache.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, errors.New("cache miss"))
	cache.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any(), usecase.TimelineCacheTTL).Return(nil)

	uc := newDueDateUseCase(t, cache, instRepo, acertoRepo, taxRepo)

	items, err := uc.Receivables(ctx, usecase.TimelineInput{
		From: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 4 {
		t.Fatalf("expected 4 items, got %d", len(items))
	}

	// Ordered by due date; the acerto has no agreed date and falls at the
	// window end.
	wantOrder := []string{"inst-late", "inst-today", "inst-next-week", "acerto-1"}
	for i, want := range wantOrder {
		if items[i].ID != want {
			t.Errorf("position %d: expected %s, got %s", i, want, items[i].ID)
		}
	}

	wantUrgency := map[string]domain.Urgency{
		"inst-late":      domain.UrgencyOverdue,
		"inst-today":     domain.UrgencyDueToday,
		"inst-next-week": domain.UrgencyThisWeek,
		"acerto-1":       domain.UrgencyLater,
	}
	for _, item := range items {
		if item.Urgency != wantUrgency[item.ID] {
			t.Errorf("%s: expected urgency %s, got %s", item.ID, wantUrgency[item.ID], item.Urgency)
		}
	}
}

func TestDueDateUseCase_Payables(t *testing.T) {
	ctrl := gomock.NewController(t)

	instRepo := mocks.NewMockInstrumentRepository()
	acertoRepo := mocks.NewMockAcertoRepository()
	taxRepo := mocks.NewMockTaxRepository()
	ctx := context.Background()

	instRepo.CreateBatch(ctx, nil, []*domain.Instrument{
		{
			ID:               "inst-own",
			Kind:             domain.InstrumentCheck,
			ParentKind:       domain.ParentDebt,
			ParentID:         "debt-1",
			CounterpartyName: "Fornecedora XYZ",
			Value:            decimal.NewFromInt(1200),
			DueDate:          time.Date(2025, 1, 12, 0, 0, 0, 0, time.UTC),
			Status:           domain.InstrumentPending,
			IsCompanyPayable: true,
		},
	})

	taxRepo.Create(ctx, &domain.Tax{
		ID:      "tax-1",
		TaxType: "ICMS",
		Amount:  decimal.NewFromInt(430),
		DueDate: time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC),
	})
	taxRepo.Create(ctx, &domain.Tax{
		ID:      "tax-paid",
		TaxType: "ISS",
		Amount:  decimal.NewFromInt(99),
		DueDate: time.Date(2025, 1, 21, 0, 0, 0, 0, time.UTC),
		Paid:    true,
	})

	cache := mocks.NewMockCache(ctrl)
	cache.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, errors.New("cache miss"))
	cache.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any(), usecase.TimelineCacheTTL).Return(nil)

	uc := newDueDateUseCase(t, cache, instRepo, acertoRepo, taxRepo)

	items, err := uc.Payables(ctx, usecase.TimelineInput{
		From: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items (paid tax excluded), got %d", len(items))
	}
	if items[0].ID != "inst-own" || items[1].ID != "tax-1" {
		t.Errorf("unexpected order: %s, %s", items[0].ID, items[1].ID)
	}
	if items[1].Source != "tax" {
		t.Errorf("expected tax source, got %s", items[1].Source)
	}
}

func TestDueDateUseCase_CacheHit(t *testing.T) {
	ctrl := gomock.NewController(t)

	cached := []domain.DueDateItem{
		{ID: "from-cache", Source: "boleto", Value: decimal.NewFromInt(10)},
	}
	data, err := json.Marshal(cached)
	if err != nil {
		t.Fatal(err)
	}

	cache := mocks.NewMockCache(ctrl)
	cache.EXPECT().Get(gomock.Any(), gomock.Any()).Return(data, nil)

	// Repos stay empty; a hit must short-circuit before touching them.
	uc := newDueDateUseCase(t, cache,
		mocks.NewMockInstrumentRepository(),
		mocks.NewMockAcertoRepository(),
		mocks.NewMockTaxRepository(),
	)

	items, err := uc.Receivables(context.Background(), usecase.TimelineInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 || items[0].ID != "from-cache" {
		t.Errorf("expected cached payload, got %+v", items)
	}
}

func TestDueDateUseCase_CacheFailureDoesNotFailRequest(t *testing.T) {
	ctrl := gomock.NewController(t)

	cache := mocks.NewMockCache(ctrl)
	cache.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, errors.New("redis down"))
	cache.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("redis down"))

	uc := newDueDateUseCase(t, cache,
		mocks.NewMockInstrumentRepository(),
		mocks.NewMockAcertoRepository(),
		mocks.NewMockTaxRepository(),
	)

	if _, err := uc.Receivables(context.Background(), usecase.TimelineInput{}); err != nil {
		t.Fatalf("cache failure leaked: %v", err)
	}
}
