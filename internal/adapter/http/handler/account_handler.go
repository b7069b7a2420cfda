package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/timebank/internal/adapter/http/dto"
	"github.com/iho/timebank/internal/domain"
	"github.com/iho/timebank/internal/usecase"
)

// AccountHandler handles account creation, deposits, withdrawals and the
// temporal account queries.
type AccountHandler struct {
	accountUC *usecase.AccountUseCase
	ledgerUC  *usecase.LedgerUseCase
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountUC *usecase.AccountUseCase, ledgerUC *usecase.LedgerUseCase) *AccountHandler {
	return &AccountHandler{accountUC: accountUC, ledgerUC: ledgerUC}
}

// Create creates a new account.
func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := h.accountUC.CreateAccount(r.Context(), req.ID); err != nil {
		writeError(w, mapDomainError(err), "failed to create account", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.AccountResponse{ID: req.ID})
}

// Deposit credits an account.
func (h *AccountHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	h.appendEntry(w, r, h.accountUC.Deposit, "failed to deposit")
}

// Withdraw debits an account.
func (h *AccountHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	h.appendEntry(w, r, h.accountUC.Withdraw, "failed to withdraw")
}

func (h *AccountHandler) appendEntry(
	w http.ResponseWriter,
	r *http.Request,
	op func(ctx context.Context, input usecase.EntryInput) (*domain.Entry, error),
	message string,
) {
	accountID := chi.URLParam(r, "id")

	var req dto.EntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	entry, err := op(r.Context(), req.ToUseCaseInput(accountID))
	if err != nil {
		writeError(w, mapDomainError(err), message, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.EntryFromDomain(entry))
}

// Balance returns the account balance as of the "at" query timestamp.
func (h *AccountHandler) Balance(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "id")

	at, err := parseAtQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid query", err.Error())
		return
	}

	balance, err := h.ledgerUC.GetBalance(r.Context(), accountID, at)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get balance", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BalanceResponse{AccountID: accountID, At: at, Balance: balance})
}

// Volume returns the account's transaction volume as of the "at" query
// timestamp.
func (h *AccountHandler) Volume(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "id")

	at, err := parseAtQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid query", err.Error())
		return
	}

	volume, err := h.ledgerUC.GetTransactionVolume(r.Context(), accountID, at)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get volume", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.VolumeResponse{AccountID: accountID, At: at, Volume: volume})
}

// History returns the account's rendered transaction history as of the
// "at" query timestamp.
func (h *AccountHandler) History(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "id")

	at, err := parseAtQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid query", err.Error())
		return
	}

	history, err := h.ledgerUC.GetTransactionHistory(r.Context(), accountID, at)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get history", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.HistoryResponse{AccountID: accountID, At: at, History: history})
}

// Top returns the top accounts by transaction volume as of the "at" query
// timestamp.
func (h *AccountHandler) Top(w http.ResponseWriter, r *http.Request) {
	at, err := parseAtQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid query", err.Error())
		return
	}

	n := parseIntQuery(r, "n", 10)

	ranking, err := h.ledgerUC.GetTopAccounts(r.Context(), n, at)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to rank accounts", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TopAccountsFromDomain(at, ranking))
}
