package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/rupeehall/wallet-engine/internal/repos/accounts"
	"github.com/rupeehall/wallet-engine/internal/repos/bets"
	"github.com/rupeehall/wallet-engine/internal/services/wallet"
)

// HandlerProvider wraps the wallet service and exposes HTTP handlers.
type HandlerProvider struct {
	svc *wallet.Service
}

func NewHandler(svc *wallet.Service) *HandlerProvider {
	return &HandlerProvider{svc: svc}
}

// --- Helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func accountKeyFromPath(r *http.Request) (string, error) {
	key := chi.URLParam(r, "accountKey")
	if key == "" {
		return "", fmt.Errorf("missing accountKey")
	}

	return key, nil
}

// decodeBody reads a small JSON body into dst, rejecting unknown fields.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("empty body")
		}

		return fmt.Errorf("invalid JSON")
	}

	return nil
}

// writeDomainError maps engine sentinel errors onto HTTP statuses:
// validation failures are 400, a missing account is 404, and state
// conflicts (funds, duplicate wallets, bet lifecycle) are 409.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, wallet.ErrInvalidAmount):
		writeError(w, http.StatusBadRequest, "invalid amount")
	case errors.Is(err, wallet.ErrUnknownGame):
		writeError(w, http.StatusBadRequest, "unknown game")
	case errors.Is(err, wallet.ErrInvalidOutcome):
		writeError(w, http.StatusBadRequest, "invalid outcome")
	case errors.Is(err, wallet.ErrInvalidWinnings):
		writeError(w, http.StatusBadRequest, "invalid winnings")
	case errors.Is(err, accounts.ErrNotFound):
		writeError(w, http.StatusNotFound, "account not found")
	case errors.Is(err, accounts.ErrAlreadyExists):
		writeError(w, http.StatusConflict, "wallet already exists")
	case errors.Is(err, accounts.ErrInsufficientFunds):
		writeError(w, http.StatusConflict, "insufficient funds")
	case errors.Is(err, bets.ErrBetAlreadyActive):
		writeError(w, http.StatusConflict, "bet already active")
	case errors.Is(err, bets.ErrNoActiveBet):
		writeError(w, http.StatusConflict, "no active bet")
	case errors.Is(err, bets.ErrAlreadyResolved):
		writeError(w, http.StatusConflict, "bet already resolved")
	default:
		slog.Error("wallet operation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// --- Handlers ---

// CreateWalletHandler handles POST /wallet/{accountKey}
func (h *HandlerProvider) CreateWalletHandler(w http.ResponseWriter, r *http.Request) {
	key, err := accountKeyFromPath(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid accountKey in path")
		return
	}

	err = h.svc.CreateWallet(r.Context(), key)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"status": "created"})
}

type amountRequest struct {
	Amount int64 `json:"amount"`
}

// DepositHandler handles POST /wallet/{accountKey}/deposit
func (h *HandlerProvider) DepositHandler(w http.ResponseWriter, r *http.Request) {
	key, err := accountKeyFromPath(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid accountKey in path")
		return
	}

	var req amountRequest
	err = decodeBody(w, r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	balance, err := h.svc.Deposit(r.Context(), key, req.Amount)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"accountKey": key,
		"balance":    balance,
	})
}

// WithdrawHandler handles POST /wallet/{accountKey}/withdraw
func (h *HandlerProvider) WithdrawHandler(w http.ResponseWriter, r *http.Request) {
	key, err := accountKeyFromPath(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid accountKey in path")
		return
	}

	var req amountRequest
	err = decodeBody(w, r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	balance, err := h.svc.Withdraw(r.Context(), key, req.Amount)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"accountKey": key,
		"balance":    balance,
	})
}

// GetBalanceHandler handles GET /wallet/{accountKey}/balance
func (h *HandlerProvider) GetBalanceHandler(w http.ResponseWriter, r *http.Request) {
	key, err := accountKeyFromPath(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid accountKey in path")
		return
	}

	balance, err := h.svc.GetBalance(r.Context(), key)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"accountKey": key,
		"balance":    balance,
	})
}

type placeBetRequest struct {
	GameName  string `json:"gameName"`
	BetAmount int64  `json:"betAmount"`
}

// PlaceBetHandler handles POST /wallet/{accountKey}/bets
func (h *HandlerProvider) PlaceBetHandler(w http.ResponseWriter, r *http.Request) {
	key, err := accountKeyFromPath(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid accountKey in path")
		return
	}

	var req placeBetRequest
	err = decodeBody(w, r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	sequence, err := h.svc.PlaceBet(r.Context(), key, req.GameName, req.BetAmount)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"gameName": req.GameName,
		"sequence": sequence,
	})
}

type resolveBetRequest struct {
	GameName string `json:"gameName"`
	Outcome  string `json:"outcome"`
	Winnings int64  `json:"winnings"`
}

// ResolveBetHandler handles POST /wallet/{accountKey}/bets/resolve
func (h *HandlerProvider) ResolveBetHandler(w http.ResponseWriter, r *http.Request) {
	key, err := accountKeyFromPath(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid accountKey in path")
		return
	}

	var req resolveBetRequest
	err = decodeBody(w, r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	err = h.svc.ResolveBet(r.Context(), key, req.GameName, bets.Outcome(req.Outcome), req.Winnings)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type betRecord struct {
	Sequence   int64      `json:"sequence"`
	GameName   string     `json:"gameName"`
	BetAmount  int64      `json:"betAmount"`
	Winnings   int64      `json:"winnings"`
	Outcome    string     `json:"outcome"`
	PlacedAt   time.Time  `json:"placedAt"`
	ResolvedAt *time.Time `json:"resolvedAt,omitempty"`
}

// GameHistoryHandler handles GET /wallet/{accountKey}/history
//
// Pending records are returned; the client decides whether to show them.
func (h *HandlerProvider) GameHistoryHandler(w http.ResponseWriter, r *http.Request) {
	key, err := accountKeyFromPath(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid accountKey in path")
		return
	}

	history, err := h.svc.GameHistory(r.Context(), key)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	records := make([]betRecord, 0, len(history))
	for _, b := range history {
		records = append(records, betRecord{
			Sequence:   b.Sequence,
			GameName:   b.GameName,
			BetAmount:  b.BetAmount,
			Winnings:   b.Winnings,
			Outcome:    string(b.Outcome),
			PlacedAt:   b.PlacedAt,
			ResolvedAt: b.ResolvedAt,
		})
	}

	writeJSON(w, http.StatusOK, records)
}
