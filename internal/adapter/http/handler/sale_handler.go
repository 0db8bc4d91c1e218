package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rmacedo/contas/internal/adapter/http/dto"
	"github.com/rmacedo/contas/internal/usecase"
)

// SaleHandler handles sale-related HTTP requests.
type SaleHandler struct {
	saleUC *usecase.SaleUseCase
}

// NewSaleHandler creates a new SaleHandler.
func NewSaleHandler(saleUC *usecase.SaleUseCase) *SaleHandler {
	return &SaleHandler{saleUC: saleUC}
}

// Create records a new sale.
func (h *SaleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateSaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := dto.Validate(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	sale, err := h.saleUC.CreateSale(r.Context(), req.ToUseCaseInput())
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to create sale", err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, dto.SaleFromDomain(sale))
}

// Update rebuilds a sale's payment methods and schedule.
func (h *SaleHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing sale ID", "")
		return
	}

	var req dto.UpdateSaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := dto.Validate(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	sale, err := h.saleUC.UpdateSale(r.Context(), id, req.ToUseCaseInput())
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to update sale", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.SaleFromDomain(sale))
}

// Delete removes a sale and unwinds its side effects.
func (h *SaleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing sale ID", "")
		return
	}

	if err := h.saleUC.DeleteSale(r.Context(), id); err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to delete sale", err.Error())

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Get retrieves a sale by ID.
func (h *SaleHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing sale ID", "")
		return
	}

	sale, err := h.saleUC.GetSale(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get sale", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.SaleFromDomain(sale))
}

// List lists sales with optional filters.
func (h *SaleHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := usecase.ListFilter{
		HolderName: r.URL.Query().Get("client"),
		Status:     r.URL.Query().Get("status"),
		From:       parseDateQuery(r, "from"),
		To:         parseDateQuery(r, "to"),
		Limit:      parseIntQuery(r, "limit", 20),
		Offset:     parseIntQuery(r, "offset", 0),
	}

	sales, err := h.saleUC.ListSales(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list sales", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.SalesFromDomain(sales))
}
