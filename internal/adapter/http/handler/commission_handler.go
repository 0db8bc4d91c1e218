package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rmacedo/contas/internal/adapter/http/dto"
	"github.com/rmacedo/contas/internal/usecase"
)

// CommissionHandler handles seller commission HTTP requests.
type CommissionHandler struct {
	commissionUC *usecase.CommissionUseCase
}

// NewCommissionHandler creates a new CommissionHandler.
func NewCommissionHandler(commissionUC *usecase.CommissionUseCase) *CommissionHandler {
	return &CommissionHandler{commissionUC: commissionUC}
}

// MarkPaid pays out a pending commission.
func (h *CommissionHandler) MarkPaid(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing commission ID", "")
		return
	}

	commission, err := h.commissionUC.MarkPaid(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to pay commission", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.CommissionFromDomain(commission))
}

// BySale retrieves the commission attached to a sale.
func (h *CommissionHandler) BySale(w http.ResponseWriter, r *http.Request) {
	saleID := chi.URLParam(r, "id")
	if saleID == "" {
		writeError(w, http.StatusBadRequest, "missing sale ID", "")
		return
	}

	commission, err := h.commissionUC.GetBySale(r.Context(), saleID)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get commission", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.CommissionFromDomain(commission))
}

// List lists commissions with optional filters. The seller query matches
// the seller name.
func (h *CommissionHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := usecase.ListFilter{
		HolderName: r.URL.Query().Get("seller"),
		Status:     r.URL.Query().Get("status"),
		Limit:      parseIntQuery(r, "limit", 20),
		Offset:     parseIntQuery(r, "offset", 0),
	}

	commissions, err := h.commissionUC.ListCommissions(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list commissions", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.CommissionsFromDomain(commissions))
}
