package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/rmacedo/contas/internal/adapter/http/dto"
	"github.com/rmacedo/contas/internal/usecase"
)

// TaxHandler handles tax obligation HTTP requests.
type TaxHandler struct {
	taxUC *usecase.TaxUseCase
}

// NewTaxHandler creates a new TaxHandler.
func NewTaxHandler(taxUC *usecase.TaxUseCase) *TaxHandler {
	return &TaxHandler{taxUC: taxUC}
}

// Create registers a new tax obligation.
func (h *TaxHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTaxRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := dto.Validate(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	tax, err := h.taxUC.CreateTax(r.Context(), req.ToUseCaseInput())
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to create tax", err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, dto.TaxFromDomain(tax))
}

// MarkPaid flags a tax obligation as settled.
func (h *TaxHandler) MarkPaid(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing tax ID", "")
		return
	}

	tax, err := h.taxUC.MarkTaxPaid(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to mark tax paid", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.TaxFromDomain(tax))
}

// Get retrieves a tax by ID.
func (h *TaxHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing tax ID", "")
		return
	}

	tax, err := h.taxUC.GetTax(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get tax", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.TaxFromDomain(tax))
}

// Delete removes a tax obligation.
func (h *TaxHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing tax ID", "")
		return
	}

	if err := h.taxUC.DeleteTax(r.Context(), id); err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to delete tax", err.Error())

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListDue lists taxes falling due in the query window. The window
// defaults to the next 90 days.
func (h *TaxHandler) ListDue(w http.ResponseWriter, r *http.Request) {
	from := parseDateQuery(r, "from")
	to := parseDateQuery(r, "to")
	if from.IsZero() {
		from = time.Now().UTC().Truncate(24 * time.Hour)
	}
	if to.IsZero() {
		to = from.AddDate(0, 0, 90)
	}

	taxes, err := h.taxUC.ListTaxesDue(r.Context(), from, to)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list taxes", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TaxesFromDomain(taxes))
}
