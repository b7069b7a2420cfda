package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/timebank/internal/adapter/http/dto"
	"github.com/iho/timebank/internal/usecase"
)

// ScheduledHandler handles scheduled transfer requests.
type ScheduledHandler struct {
	scheduledUC *usecase.ScheduledUseCase
}

// NewScheduledHandler creates a new ScheduledHandler.
func NewScheduledHandler(scheduledUC *usecase.ScheduledUseCase) *ScheduledHandler {
	return &ScheduledHandler{scheduledUC: scheduledUC}
}

// Create schedules a new transfer.
func (h *ScheduledHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.ScheduleTransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	entry, err := h.scheduledUC.ScheduleTransfer(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to schedule transfer", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.EntryFromDomain(entry))
}

// Process resolves every due scheduled transfer as of the request
// timestamp and returns the identifiers of the transfers it materialized.
func (h *ScheduledHandler) Process(w http.ResponseWriter, r *http.Request) {
	var req dto.ProcessScheduledRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	transferIDs, err := h.scheduledUC.ProcessScheduledTransfers(r.Context(), req.Timestamp)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to process scheduled transfers", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ProcessScheduledResponse{
		At:          req.Timestamp,
		TransferIDs: transferIDs,
	})
}

// ListByAccount returns the account's pending scheduled transfer
// identifiers as of the "at" query timestamp.
func (h *ScheduledHandler) ListByAccount(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "id")

	at, err := parseAtQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid query", err.Error())
		return
	}

	ids, err := h.scheduledUC.GetScheduledTransferIDs(r.Context(), accountID, at)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list scheduled transfers", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ScheduledIDsResponse{
		AccountID:            accountID,
		At:                   at,
		ScheduledTransferIDs: ids,
	})
}
