package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rmacedo/contas/internal/adapter/http/dto"
	"github.com/rmacedo/contas/internal/domain"
	"github.com/rmacedo/contas/internal/usecase"
)

// InstrumentHandler handles check and boleto HTTP requests.
type InstrumentHandler struct {
	instrumentUC *usecase.InstrumentUseCase
}

// NewInstrumentHandler creates a new InstrumentHandler.
func NewInstrumentHandler(instrumentUC *usecase.InstrumentUseCase) *InstrumentHandler {
	return &InstrumentHandler{instrumentUC: instrumentUC}
}

// MarkCleared marks a pending instrument as paid.
func (h *InstrumentHandler) MarkCleared(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing instrument ID", "")
		return
	}

	inst, err := h.instrumentUC.MarkCleared(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to clear instrument", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.InstrumentFromDomain(inst))
}

// Discount settles a pending instrument early at a reduced amount.
func (h *InstrumentHandler) Discount(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing instrument ID", "")
		return
	}

	var req dto.DiscountInstrumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	inst, err := h.instrumentUC.Discount(r.Context(), id, req.Fee)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to discount instrument", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.InstrumentFromDomain(inst))
}

// ResolveOverdue applies an overdue resolution action to an instrument.
func (h *InstrumentHandler) ResolveOverdue(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing instrument ID", "")
		return
	}

	var req dto.ResolveOverdueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := dto.Validate(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	inst, err := h.instrumentUC.ResolveOverdue(r.Context(), req.ToUseCaseInput(id))
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to resolve overdue instrument", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.InstrumentFromDomain(inst))
}

// SuggestCharges returns advisory interest and penalty for an instrument.
func (h *InstrumentHandler) SuggestCharges(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing instrument ID", "")
		return
	}

	suggestion, err := h.instrumentUC.SuggestCharges(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to suggest charges", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.OverdueSuggestionFromUseCase(suggestion))
}

// Get retrieves an instrument by ID.
func (h *InstrumentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing instrument ID", "")
		return
	}

	inst, err := h.instrumentUC.GetInstrument(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get instrument", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.InstrumentFromDomain(inst))
}

// ListBySale lists the instruments generated by a sale.
func (h *InstrumentHandler) ListBySale(w http.ResponseWriter, r *http.Request) {
	h.listByParent(w, r, domain.ParentSale)
}

// ListByDebt lists the instruments generated by a debt.
func (h *InstrumentHandler) ListByDebt(w http.ResponseWriter, r *http.Request) {
	h.listByParent(w, r, domain.ParentDebt)
}

func (h *InstrumentHandler) listByParent(w http.ResponseWriter, r *http.Request, kind domain.ParentKind) {
	parentID := chi.URLParam(r, "id")
	if parentID == "" {
		writeError(w, http.StatusBadRequest, "missing parent ID", "")
		return
	}

	instruments, err := h.instrumentUC.ListByParent(r.Context(), kind, parentID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list instruments", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.InstrumentsFromDomain(instruments))
}
