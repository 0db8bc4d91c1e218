package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rmacedo/contas/internal/adapter/http/dto"
	"github.com/rmacedo/contas/internal/usecase"
)

// PermutaHandler handles trade-in credit HTTP requests.
type PermutaHandler struct {
	permutaUC *usecase.PermutaUseCase
}

// NewPermutaHandler creates a new PermutaHandler.
func NewPermutaHandler(permutaUC *usecase.PermutaUseCase) *PermutaHandler {
	return &PermutaHandler{permutaUC: permutaUC}
}

// Create registers new trade-in credit.
func (h *PermutaHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreatePermutaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := dto.Validate(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	permuta, err := h.permutaUC.CreatePermuta(r.Context(), req.ToUseCaseInput())
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to create permuta", err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, dto.PermutaFromDomain(permuta))
}

// Cancel retires unused trade-in credit.
func (h *PermutaHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing permuta ID", "")
		return
	}

	var req dto.CancelPermutaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := dto.Validate(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	permuta, err := h.permutaUC.CancelPermuta(r.Context(), id, req.ExpectedVersion)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to cancel permuta", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.PermutaFromDomain(permuta))
}

// Get retrieves a permuta by ID.
func (h *PermutaHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing permuta ID", "")
		return
	}

	permuta, err := h.permutaUC.GetPermuta(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get permuta", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.PermutaFromDomain(permuta))
}

// List lists permutas with optional filters.
func (h *PermutaHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := usecase.ListFilter{
		HolderName: r.URL.Query().Get("holder"),
		Status:     r.URL.Query().Get("status"),
		Limit:      parseIntQuery(r, "limit", 20),
		Offset:     parseIntQuery(r, "offset", 0),
	}

	permutas, err := h.permutaUC.ListPermutas(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list permutas", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.PermutasFromDomain(permutas))
}
