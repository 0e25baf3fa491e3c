package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/alejandrodnm/polyjournal/internal/domain"
	"github.com/alejandrodnm/polyjournal/internal/journal"
)

// maxBodyBytes limita los bodies JSON de notas y revisiones.
const maxBodyBytes = 64 << 10

type handlers struct {
	svc           *journal.Service
	defaultWallet string
	logger        *slog.Logger
}

func (h *handlers) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handlers) dashboard(w http.ResponseWriter, r *http.Request) {
	wallet, err := h.walletParam(r)
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	d, err := h.svc.Dashboard(r.Context(), wallet)
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (h *handlers) trades(w http.ResponseWriter, r *http.Request) {
	wallet, err := h.walletParam(r)
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	filter, err := domain.ParseOutcomeFilter(r.URL.Query().Get("outcome"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "outcome must be one of all, win, loss, pending.")
		return
	}
	trades, err := h.svc.Journal(r.Context(), wallet, filter)
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"connected": !wallet.IsZero(),
		"outcome":   filter,
		"trades":    trades,
	})
}

// marketView agrega los campos derivados que muestra la tarjeta de mercado.
type marketView struct {
	domain.Market
	Outcomes     []domain.OutcomePrice `json:"outcomes"`
	ReferralLink string                `json:"referralLink"`
}

func (h *handlers) markets(w http.ResponseWriter, r *http.Request) {
	markets, err := h.svc.Markets(r.Context())
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	views := make([]marketView, 0, len(markets))
	for _, m := range markets {
		views = append(views, marketView{Market: m, Outcomes: m.Outcomes(), ReferralLink: m.ReferralLink()})
	}
	writeJSON(w, http.StatusOK, map[string]any{"markets": views})
}

type noteRequest struct {
	Thesis     string `json:"thesis"`
	Conviction int    `json:"conviction"`
}

func (h *handlers) saveNote(w http.ResponseWriter, r *http.Request) {
	wallet, err := h.walletParam(r)
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	var req noteRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, msgBadBody)
		return
	}
	note, err := h.svc.SaveNote(r.Context(), wallet, r.PathValue("id"), req.Thesis, req.Conviction)
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"tradeId":    note.TradeID,
		"thesis":     note.Thesis,
		"conviction": note.Conviction,
		"updatedAt":  note.UpdatedAt,
	})
}

type reviewRequest struct {
	Wallet  string `json:"wallet"`
	TradeID string `json:"trade_id"`
	Thesis  string `json:"thesis"`
}

func (h *handlers) review(w http.ResponseWriter, r *http.Request) {
	var req reviewRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, msgBadBody)
		return
	}
	if req.Wallet == "" {
		req.Wallet = h.defaultWallet
	}
	wallet, err := domain.ParseWallet(req.Wallet)
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	review, err := h.svc.ReviewThesis(r.Context(), wallet, req.TradeID, req.Thesis)
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, review)
}

func (h *handlers) reviews(w http.ResponseWriter, r *http.Request) {
	wallet, err := h.walletParam(r)
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	reviews, err := h.svc.Reviews(r.Context(), wallet, r.PathValue("id"))
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"reviews": reviews})
}
