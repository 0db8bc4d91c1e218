package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rmacedo/contas/internal/adapter/http/dto"
	"github.com/rmacedo/contas/internal/usecase"
)

// DebtHandler handles company-payable HTTP requests.
type DebtHandler struct {
	debtUC *usecase.DebtUseCase
}

// NewDebtHandler creates a new DebtHandler.
func NewDebtHandler(debtUC *usecase.DebtUseCase) *DebtHandler {
	return &DebtHandler{debtUC: debtUC}
}

// Create records a new debt.
func (h *DebtHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateDebtRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := dto.Validate(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	debt, err := h.debtUC.CreateDebt(r.Context(), req.ToUseCaseInput())
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to create debt", err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, dto.DebtFromDomain(debt))
}

// Update rebuilds a debt's payment methods and schedule.
func (h *DebtHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing debt ID", "")
		return
	}

	var req dto.UpdateDebtRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := dto.Validate(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	debt, err := h.debtUC.UpdateDebt(r.Context(), id, req.ToUseCaseInput())
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to update debt", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.DebtFromDomain(debt))
}

// Delete removes a debt and unwinds its side effects.
func (h *DebtHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing debt ID", "")
		return
	}

	if err := h.debtUC.DeleteDebt(r.Context(), id); err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to delete debt", err.Error())

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Get retrieves a debt by ID.
func (h *DebtHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing debt ID", "")
		return
	}

	debt, err := h.debtUC.GetDebt(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get debt", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.DebtFromDomain(debt))
}

// List lists debts with optional filters.
func (h *DebtHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := usecase.ListFilter{
		HolderName: r.URL.Query().Get("company"),
		Status:     r.URL.Query().Get("status"),
		From:       parseDateQuery(r, "from"),
		To:         parseDateQuery(r, "to"),
		Limit:      parseIntQuery(r, "limit", 20),
		Offset:     parseIntQuery(r, "offset", 0),
	}

	debts, err := h.debtUC.ListDebts(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list debts", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.DebtsFromDomain(debts))
}
