// Package journal orquesta fetch, transformación y notas locales para las
// vistas de dashboard, journal, markets y revisión de tesis.
package journal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/alejandrodnm/polyjournal/internal/domain"
	"github.com/alejandrodnm/polyjournal/internal/ports"
)

// ErrReviewerDisabled se devuelve cuando no hay modelo configurado.
var ErrReviewerDisabled = errors.New("thesis review is not configured")

// Reviewer pide una crítica de tesis al modelo.
type Reviewer interface {
	Review(ctx context.Context, thesis string) (string, error)
	Model() string
}

// Service es el punto de entrada de todas las vistas.
type Service struct {
	positions ports.PositionProvider
	markets   ports.MarketProvider
	store     ports.JournalStorage
	reviewer  Reviewer
	now       func() time.Time
}

// NewService crea el Service. reviewer puede ser nil: las revisiones
// devuelven ErrReviewerDisabled.
func NewService(
	positions ports.PositionProvider,
	markets ports.MarketProvider,
	store ports.JournalStorage,
	reviewer Reviewer,
) *Service {
	return &Service{
		positions: positions,
		markets:   markets,
		store:     store,
		reviewer:  reviewer,
		now:       time.Now,
	}
}

// Trades hace fetch de las posiciones y devuelve los trades con las notas
// guardadas aplicadas, en el orden de la API.
func (s *Service) Trades(ctx context.Context, wallet domain.Wallet) ([]domain.Trade, error) {
	if wallet.IsZero() {
		return []domain.Trade{}, nil
	}

	positions, err := s.positions.FetchPositions(ctx, wallet)
	if err != nil {
		return nil, fmt.Errorf("journal.Trades: %w", err)
	}
	trades := domain.TransformPositions(positions)

	notes, err := s.store.GetNotes(ctx, wallet)
	if err != nil {
		// Las notas son un extra: sin ellas se muestran los valores por defecto.
		slog.Warn("load notes failed", "wallet", wallet.Short(), "err", err)
		return trades, nil
	}
	return domain.ApplyNotes(trades, notes), nil
}

// Dashboard arma la vista principal. Sin wallet devuelve un dashboard vacío
// con Connected=false, sin hacer requests.
func (s *Service) Dashboard(ctx context.Context, wallet domain.Wallet) (domain.Dashboard, error) {
	start := s.now()
	trades, err := s.Trades(ctx, wallet)
	if err != nil {
		return domain.Dashboard{}, fmt.Errorf("journal.Dashboard: %w", err)
	}
	d := domain.BuildDashboard(wallet, trades)

	if d.Connected {
		slog.Info("dashboard loaded",
			"wallet", wallet.Short(),
			"trades", d.Stats.Total,
			"closed", d.Stats.Closed,
			"duration", time.Since(start).Round(time.Millisecond),
		)
	}
	return d, nil
}

// Journal devuelve los trades del más reciente al más antiguo, filtrados.
func (s *Service) Journal(ctx context.Context, wallet domain.Wallet, filter domain.OutcomeFilter) ([]domain.Trade, error) {
	trades, err := s.Trades(ctx, wallet)
	if err != nil {
		return nil, fmt.Errorf("journal.Journal: %w", err)
	}
	return domain.FilterByOutcome(domain.SortByDateDesc(trades), filter), nil
}

// Markets devuelve los mercados activos ordenados por volumen.
func (s *Service) Markets(ctx context.Context) ([]domain.Market, error) {
	markets, err := s.markets.FetchMarkets(ctx)
	if err != nil {
		return nil, fmt.Errorf("journal.Markets: %w", err)
	}
	return markets, nil
}

// SaveNote guarda la tesis y convicción de un trade.
func (s *Service) SaveNote(ctx context.Context, wallet domain.Wallet, tradeID, thesis string, conviction int) (domain.TradeNote, error) {
	if wallet.IsZero() {
		return domain.TradeNote{}, fmt.Errorf("journal.SaveNote: %w", domain.ErrInvalidWallet)
	}
	note := domain.TradeNote{
		Wallet:     wallet,
		TradeID:    strings.TrimSpace(tradeID),
		Thesis:     strings.TrimSpace(thesis),
		Conviction: conviction,
		UpdatedAt:  s.now().UTC(),
	}
	if err := note.Validate(); err != nil {
		return domain.TradeNote{}, fmt.Errorf("journal.SaveNote: %w", err)
	}
	if err := s.store.SaveNote(ctx, note); err != nil {
		return domain.TradeNote{}, fmt.Errorf("journal.SaveNote: %w", err)
	}
	slog.Info("note saved", "wallet", wallet.Short(), "trade", note.TradeID, "conviction", note.Conviction)
	return note, nil
}

// ReviewThesis pide la crítica de una tesis y la agrega al historial.
// tradeID es opcional: vacío revisa una tesis suelta.
func (s *Service) ReviewThesis(ctx context.Context, wallet domain.Wallet, tradeID, thesis string) (domain.ThesisReview, error) {
	thesis = strings.TrimSpace(thesis)
	if err := domain.ValidateThesis(thesis); err != nil {
		return domain.ThesisReview{}, fmt.Errorf("journal.ReviewThesis: %w", err)
	}
	if s.reviewer == nil {
		return domain.ThesisReview{}, fmt.Errorf("journal.ReviewThesis: %w: %w", domain.ErrReviewFailed, ErrReviewerDisabled)
	}

	feedback, err := s.reviewer.Review(ctx, thesis)
	if err != nil {
		return domain.ThesisReview{}, fmt.Errorf("journal.ReviewThesis: %w", err)
	}

	review := domain.NewThesisReview(wallet, tradeID, thesis, feedback, s.reviewer.Model(), s.now())
	if err := s.store.SaveReview(ctx, review); err != nil {
		// La revisión ya se pagó; se devuelve aunque no quede en el historial.
		slog.Warn("save review failed", "trade", tradeID, "err", err)
	}
	return review, nil
}

// ReviewTrade revisa la tesis actual (nota guardada o valor por defecto) de un trade.
func (s *Service) ReviewTrade(ctx context.Context, wallet domain.Wallet, tradeID string) (domain.ThesisReview, error) {
	trades, err := s.Trades(ctx, wallet)
	if err != nil {
		return domain.ThesisReview{}, fmt.Errorf("journal.ReviewTrade: %w", err)
	}
	trade, ok := domain.FindTrade(trades, tradeID)
	if !ok {
		return domain.ThesisReview{}, fmt.Errorf("journal.ReviewTrade: trade %q: %w", tradeID, domain.ErrNotFound)
	}
	return s.ReviewThesis(ctx, wallet, trade.ID, trade.Thesis)
}

// Reviews devuelve el historial de revisiones de un trade.
func (s *Service) Reviews(ctx context.Context, wallet domain.Wallet, tradeID string) ([]domain.ThesisReview, error) {
	reviews, err := s.store.ListReviews(ctx, wallet, tradeID)
	if err != nil {
		return nil, fmt.Errorf("journal.Reviews: %w", err)
	}
	return reviews, nil
}
