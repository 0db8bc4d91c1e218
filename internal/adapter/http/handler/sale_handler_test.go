package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/rmacedo/contas/internal/adapter/http/dto"
	"github.com/rmacedo/contas/internal/usecase"
	"github.com/rmacedo/contas/internal/usecase/mocks"
)

var handlerNow = time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)

func newSaleHandler() (*SaleHandler, *mocks.MockSaleRepository) {
	saleRepo := mocks.NewMockSaleRepository()
	uc := usecase.NewSaleUseCase(
		mocks.NewMockTransactionManager(),
		saleRepo,
		mocks.NewMockCommissionRepository(),
		mocks.NewMockInstrumentRepository(),
		mocks.NewMockPermutaRepository(),
		mocks.NewMockAcertoRepository(),
		mocks.NewMockCashFlowLedger(),
		mocks.NewMockIDGenerator(),
		mocks.NewMockClock(handlerNow),
	)
	return NewSaleHandler(uc), saleRepo
}

func TestSaleHandler_Create_Success(t *testing.T) {
	handler, _ := newSaleHandler()

	body, _ := json.Marshal(dto.CreateSaleRequest{
		Date:       handlerNow,
		ClientName: "Maria Souza",
		TotalValue: decimal.NewFromInt(500),
		PaymentMethods: []dto.PaymentMethodRequest{
			{Kind: "cash", Amount: decimal.NewFromInt(500)},
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/sales", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.SaleResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ClientName != "Maria Souza" {
		t.Fatalf("expected client name to round-trip, got %s", resp.ClientName)
	}
	if resp.Status != "paid" {
		t.Fatalf("expected cash sale to be paid, got %s", resp.Status)
	}
	if !resp.PendingAmount.IsZero() {
		t.Fatalf("expected zero pending amount, got %s", resp.PendingAmount)
	}
}

func TestSaleHandler_Create_InvalidBody(t *testing.T) {
	handler, _ := newSaleHandler()

	req := httptest.NewRequest(http.MethodPost, "/sales", bytes.NewBufferString(`{not json`))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestSaleHandler_Create_MissingMethods(t *testing.T) {
	handler, _ := newSaleHandler()

	body, _ := json.Marshal(dto.CreateSaleRequest{
		Date:       handlerNow,
		ClientName: "Maria Souza",
		TotalValue: decimal.NewFromInt(500),
	})

	req := httptest.NewRequest(http.MethodPost, "/sales", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected validation failure, got %d", rec.Code)
	}
}

func TestSaleHandler_Get_NotFound(t *testing.T) {
	handler, _ := newSaleHandler()

	req := setChiURLParam(httptest.NewRequest(http.MethodGet, "/sales/missing", nil), "id", "missing")
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func setChiURLParam(r *http.Request, key, value string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, &chi.Context{
		URLParams: chi.RouteParams{
			Keys:   []string{key},
			Values: []string{value},
		},
	}))
}
