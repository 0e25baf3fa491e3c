package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/alejandrodnm/polyjournal/internal/domain"
	"github.com/alejandrodnm/polyjournal/internal/journal"
)

// Mensajes de error visibles. Los detalles técnicos solo van al log.
const (
	msgFetchFailed   = "Failed to fetch your trading data from the Polymarket API. Please try again later."
	msgReviewFailed  = "Failed to get feedback from AI. Please try again."
	msgThesisShort   = "Thesis must be at least 20 characters."
	msgInvalidWallet = "Invalid wallet address."
	msgConviction    = "Conviction must be between 1 and 5."
	msgNotFound      = "Not found."
	msgInternal      = "Internal server error."
	msgBadBody       = "Invalid request body."
)

// writeJSON serializa v con el status dado.
func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		http.Error(w, `{"error":"internal server error"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	w.Write(data)
}

// writeError envía {"error": msg}.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeDomainError traduce un error del journal a status y mensaje genérico.
func writeDomainError(w http.ResponseWriter, logger *slog.Logger, err error) {
	status, msg := http.StatusInternalServerError, msgInternal
	switch {
	case errors.Is(err, domain.ErrInvalidWallet):
		status, msg = http.StatusBadRequest, msgInvalidWallet
	case errors.Is(err, domain.ErrThesisTooShort):
		status, msg = http.StatusBadRequest, msgThesisShort
	case errors.Is(err, domain.ErrInvalidConviction):
		status, msg = http.StatusBadRequest, msgConviction
	case errors.Is(err, domain.ErrNotFound):
		status, msg = http.StatusNotFound, msgNotFound
	case errors.Is(err, domain.ErrReviewFailed), errors.Is(err, journal.ErrReviewerDisabled):
		status, msg = http.StatusBadGateway, msgReviewFailed
	case errors.Is(err, domain.ErrFetchFailed):
		status, msg = http.StatusBadGateway, msgFetchFailed
	}

	if status >= 500 {
		logger.Error("request failed", "status", status, "err", err)
	} else {
		logger.Debug("request rejected", "status", status, "err", err)
	}
	writeError(w, status, msg)
}

// walletParam lee ?wallet= con fallback a la wallet por defecto.
func (h *handlers) walletParam(r *http.Request) (domain.Wallet, error) {
	raw := r.URL.Query().Get("wallet")
	if raw == "" {
		raw = h.defaultWallet
	}
	return domain.ParseWallet(raw)
}
