package integration

import (
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rmacedo/contas/internal/adapter/http/dto"
)

func TestOverdueResolution(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	router := newTestServer(t)
	pastDue := time.Now().AddDate(0, 0, -45)

	w := doJSON(t, router, http.MethodPost, "/api/v1/sales/", dto.CreateSaleRequest{
		Date:       pastDue,
		ClientName: "Helena Castro",
		TotalValue: decimal.NewFromInt(500),
		PaymentMethods: []dto.PaymentMethodRequest{
			{Kind: "check", Amount: decimal.NewFromInt(500), Installments: 1, FirstDueDate: &pastDue},
		},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, w.Code, w.Body.String())
	}

	var sale dto.SaleResponse
	decodeBody(t, w, &sale)

	w = doJSON(t, router, http.MethodGet, "/api/v1/sales/"+sale.ID+"/instruments", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}
	var instruments []dto.InstrumentResponse
	decodeBody(t, w, &instruments)
	if len(instruments) != 1 {
		t.Fatalf("expected 1 instrument, got %d", len(instruments))
	}
	inst := instruments[0]

	t.Run("suggestion proposes interest for months overdue", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/api/v1/instruments/"+inst.ID+"/suggestion", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
		}

		var suggestion dto.OverdueSuggestionResponse
		decodeBody(t, w, &suggestion)

		if suggestion.DaysOverdue <= 0 {
			t.Errorf("expected positive days overdue, got %d", suggestion.DaysOverdue)
		}
		// 2% per started month on 500, 45 days late rounds up to two months.
		if !suggestion.Interest.Equal(decimal.NewFromInt(20)) {
			t.Errorf("expected suggested interest 20, got %s", suggestion.Interest)
		}
		if !suggestion.Penalty.Equal(decimal.NewFromInt(10)) {
			t.Errorf("expected suggested penalty 10, got %s", suggestion.Penalty)
		}
	})

	t.Run("negative charges are rejected", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/v1/instruments/"+inst.ID+"/overdue", dto.ResolveOverdueRequest{
			Action:   "paid_with_interest",
			Interest: decimal.NewFromInt(-5),
		})
		if w.Code != http.StatusBadRequest {
			t.Errorf("expected status %d, got %d: %s", http.StatusBadRequest, w.Code, w.Body.String())
		}
	})

	t.Run("paid with interest clears and totals charges", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/v1/instruments/"+inst.ID+"/overdue", dto.ResolveOverdueRequest{
			Action:   "paid_with_interest",
			Interest: decimal.NewFromInt(20),
			Notes:    "client paid after reminder",
		})
		if w.Code != http.StatusOK {
			t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
		}

		var resolved dto.InstrumentResponse
		decodeBody(t, w, &resolved)

		if resolved.Status != "cleared" {
			t.Errorf("expected cleared, got %s", resolved.Status)
		}
		if !resolved.FinalAmount.Equal(decimal.NewFromInt(520)) {
			t.Errorf("expected final amount 520, got %s", resolved.FinalAmount)
		}
		if resolved.OverdueAction != "paid_with_interest" {
			t.Errorf("expected action recorded, got %q", resolved.OverdueAction)
		}
	})

	t.Run("resolved instrument cannot be resolved again", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/v1/instruments/"+inst.ID+"/overdue", dto.ResolveOverdueRequest{
			Action: "cancelled",
		})
		if w.Code != http.StatusConflict {
			t.Errorf("expected status %d, got %d: %s", http.StatusConflict, w.Code, w.Body.String())
		}
	})
}
