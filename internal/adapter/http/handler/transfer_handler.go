package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/timebank/internal/adapter/http/dto"
	"github.com/iho/timebank/internal/usecase"
)

// TransferHandler handles transfer lifecycle requests.
type TransferHandler struct {
	transferUC *usecase.TransferUseCase
}

// NewTransferHandler creates a new TransferHandler.
func NewTransferHandler(transferUC *usecase.TransferUseCase) *TransferHandler {
	return &TransferHandler{transferUC: transferUC}
}

// Create creates a new pending transfer.
func (h *TransferHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	transfer, err := h.transferUC.CreateTransfer(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create transfer", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.EntryFromDomain(transfer))
}

// Accept resolves a pending transfer as accepted.
func (h *TransferHandler) Accept(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req dto.AcceptTransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := h.transferUC.AcceptTransfer(r.Context(), id, req.Timestamp); err != nil {
		writeError(w, mapDomainError(err), "failed to accept transfer", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TransferStatusResponse{
		ID:     id,
		At:     req.Timestamp,
		Status: "accepted",
	})
}

// Status evaluates a transfer's status as of the "at" query timestamp.
func (h *TransferHandler) Status(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	at, err := parseAtQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid query", err.Error())
		return
	}

	status, err := h.transferUC.GetTransferStatus(r.Context(), id, at)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get transfer status", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TransferStatusResponse{
		ID:     id,
		At:     at,
		Status: string(status),
	})
}
