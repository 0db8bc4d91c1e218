package handler

import (
	"net/http"

	"github.com/rmacedo/contas/internal/adapter/http/dto"
	"github.com/rmacedo/contas/internal/usecase"
)

// DueDateHandler serves the aggregated due-date timelines.
type DueDateHandler struct {
	dueDateUC *usecase.DueDateUseCase
}

// NewDueDateHandler creates a new DueDateHandler.
func NewDueDateHandler(dueDateUC *usecase.DueDateUseCase) *DueDateHandler {
	return &DueDateHandler{dueDateUC: dueDateUC}
}

// Receivables returns everything owed to the company in the window.
func (h *DueDateHandler) Receivables(w http.ResponseWriter, r *http.Request) {
	items, err := h.dueDateUC.Receivables(r.Context(), timelineInput(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to assemble receivables", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.DueDateItemsFromDomain(items))
}

// Payables returns everything the company owes in the window.
func (h *DueDateHandler) Payables(w http.ResponseWriter, r *http.Request) {
	items, err := h.dueDateUC.Payables(r.Context(), timelineInput(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to assemble payables", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.DueDateItemsFromDomain(items))
}

func timelineInput(r *http.Request) usecase.TimelineInput {
	return usecase.TimelineInput{
		From: parseDateQuery(r, "from"),
		To:   parseDateQuery(r, "to"),
	}
}
