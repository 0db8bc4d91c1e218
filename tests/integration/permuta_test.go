package integration

import (
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rmacedo/contas/internal/adapter/http/dto"
)

func TestPermutaCreditFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	router := newTestServer(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/permutas/", dto.CreatePermutaRequest{
		HolderName:  "Elisa Nunes",
		Description: "Used equipment trade-in",
		CreditValue: decimal.NewFromInt(500),
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, w.Code, w.Body.String())
	}

	var permuta dto.PermutaResponse
	decodeBody(t, w, &permuta)

	if permuta.Status != "active" {
		t.Fatalf("expected active permuta, got %s", permuta.Status)
	}
	if permuta.Version != 1 {
		t.Fatalf("expected version 1, got %d", permuta.Version)
	}

	t.Run("sale consumes trade-in credit", func(t *testing.T) {
		req := dto.CreateSaleRequest{
			Date:       time.Now(),
			ClientName: "Elisa Nunes",
			TotalValue: decimal.NewFromInt(300),
			PaymentMethods: []dto.PaymentMethodRequest{
				{Kind: "trade_in_credit", Amount: decimal.NewFromInt(300), PermutaID: permuta.ID},
			},
		}

		w := doJSON(t, router, http.MethodPost, "/api/v1/sales/", req)
		if w.Code != http.StatusCreated {
			t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, w.Code, w.Body.String())
		}

		var sale dto.SaleResponse
		decodeBody(t, w, &sale)
		if sale.Status != "paid" {
			t.Errorf("expected status paid, got %s", sale.Status)
		}

		w = doJSON(t, router, http.MethodGet, "/api/v1/permutas/"+permuta.ID, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
		}
		decodeBody(t, w, &permuta)

		if !permuta.ConsumedValue.Equal(decimal.NewFromInt(300)) {
			t.Errorf("expected consumed 300, got %s", permuta.ConsumedValue)
		}
		if !permuta.RemainingValue.Equal(decimal.NewFromInt(200)) {
			t.Errorf("expected remaining 200, got %s", permuta.RemainingValue)
		}
	})

	t.Run("over-consuming remaining credit fails", func(t *testing.T) {
		req := dto.CreateSaleRequest{
			Date:       time.Now(),
			ClientName: "Elisa Nunes",
			TotalValue: decimal.NewFromInt(250),
			PaymentMethods: []dto.PaymentMethodRequest{
				{Kind: "trade_in_credit", Amount: decimal.NewFromInt(250), PermutaID: permuta.ID},
			},
		}

		w := doJSON(t, router, http.MethodPost, "/api/v1/sales/", req)
		if w.Code != http.StatusBadRequest {
			t.Errorf("expected status %d, got %d: %s", http.StatusBadRequest, w.Code, w.Body.String())
		}
	})

	t.Run("cancel with stale version conflicts", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/v1/permutas/"+permuta.ID+"/cancel", dto.CancelPermutaRequest{
			ExpectedVersion: 1,
		})
		if w.Code != http.StatusConflict {
			t.Errorf("expected status %d, got %d: %s", http.StatusConflict, w.Code, w.Body.String())
		}
	})

	t.Run("cancel with current version succeeds", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/v1/permutas/"+permuta.ID+"/cancel", dto.CancelPermutaRequest{
			ExpectedVersion: permuta.Version,
		})
		if w.Code != http.StatusOK {
			t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
		}

		var cancelled dto.PermutaResponse
		decodeBody(t, w, &cancelled)
		if cancelled.Status != "cancelled" {
			t.Errorf("expected cancelled, got %s", cancelled.Status)
		}
	})

	t.Run("cancelled permuta cannot fund a sale", func(t *testing.T) {
		req := dto.CreateSaleRequest{
			Date:       time.Now(),
			ClientName: "Elisa Nunes",
			TotalValue: decimal.NewFromInt(100),
			PaymentMethods: []dto.PaymentMethodRequest{
				{Kind: "trade_in_credit", Amount: decimal.NewFromInt(100), PermutaID: permuta.ID},
			},
		}

		w := doJSON(t, router, http.MethodPost, "/api/v1/sales/", req)
		if w.Code != http.StatusBadRequest {
			t.Errorf("expected status %d, got %d: %s", http.StatusBadRequest, w.Code, w.Body.String())
		}
	})
}
