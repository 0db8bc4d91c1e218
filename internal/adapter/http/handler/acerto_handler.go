package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rmacedo/contas/internal/adapter/http/dto"
	"github.com/rmacedo/contas/internal/usecase"
)

// AcertoHandler handles running-account HTTP requests.
type AcertoHandler struct {
	acertoUC *usecase.AcertoUseCase
}

// NewAcertoHandler creates a new AcertoHandler.
func NewAcertoHandler(acertoUC *usecase.AcertoUseCase) *AcertoHandler {
	return &AcertoHandler{acertoUC: acertoUC}
}

// Settle pays down a running account against selected transactions.
func (h *AcertoHandler) Settle(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing acerto ID", "")
		return
	}

	var req dto.SettleAcertoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := dto.Validate(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	acerto, err := h.acertoUC.SettleAcerto(r.Context(), req.ToUseCaseInput(id))
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to settle acerto", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.AcertoFromDomain(acerto))
}

// PayOff closes a running account's whole outstanding balance in one batch.
func (h *AcertoHandler) PayOff(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing acerto ID", "")
		return
	}

	var req dto.PayOffAcertoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := dto.Validate(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	acerto, err := h.acertoUC.PayOffAcerto(r.Context(), req.ToUseCaseInput(id))
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to pay off acerto", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.AcertoFromDomain(acerto))
}

// Get retrieves an acerto by ID.
func (h *AcertoHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing acerto ID", "")
		return
	}

	acerto, err := h.acertoUC.GetAcerto(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get acerto", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.AcertoFromDomain(acerto))
}

// List lists acertos with optional filters.
func (h *AcertoHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := usecase.ListFilter{
		HolderName: r.URL.Query().Get("holder"),
		Status:     r.URL.Query().Get("status"),
		Limit:      parseIntQuery(r, "limit", 20),
		Offset:     parseIntQuery(r, "offset", 0),
	}

	acertos, err := h.acertoUC.ListAcertos(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list acertos", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.AcertosFromDomain(acertos))
}
