package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Valores literales para los campos que la API no provee.
// No se derivan: un trade importado siempre arranca con ellos.
const (
	DefaultThesis            = "This is a live trade imported from your wallet. You can edit the thesis here."
	DefaultConviction        = 3
	DefaultHoldDurationHours = 0
	UnknownCategory          = "Unknown"
)

// Outcome es el resultado de un trade.
type Outcome string

const (
	OutcomeWin     Outcome = "win"
	OutcomeLoss    Outcome = "loss"
	OutcomePending Outcome = "pending"
)

// IsClosed devuelve true si el trade ya tiene resultado.
func (o Outcome) IsClosed() bool {
	return o != OutcomePending
}

// ClassifyOutcome es función pura de (resuelto, pnl combinado).
// Mercado sin resolver → pending; resuelto → win solo si pnl > 0 (estricto),
// así que pnl == 0 cuenta como loss.
func ClassifyOutcome(isResolved bool, pnl decimal.Decimal) Outcome {
	if !isResolved {
		return OutcomePending
	}
	if pnl.IsPositive() {
		return OutcomeWin
	}
	return OutcomeLoss
}

// Trade es la forma normalizada de una Position para el journal y el dashboard.
// Se construye de cero en cada fetch; no tiene identidad más allá de ID.
type Trade struct {
	ID                string          `json:"id"`
	Market            string          `json:"market"`
	MarketQuestion    string          `json:"marketQuestion"`
	MarketCategory    string          `json:"marketCategory"`
	EntryPrice        decimal.Decimal `json:"entryPrice"`
	Size              decimal.Decimal `json:"size"`
	PnL               decimal.Decimal `json:"pnl"`
	Outcome           Outcome         `json:"outcome"`
	Thesis            string          `json:"thesis"`
	Date              time.Time       `json:"date"`
	Conviction        int             `json:"conviction"`
	HoldDurationHours int             `json:"holdDurationHours"`
}

// TradeID construye el id sintético "{market}-{index}".
func TradeID(market string, index int) string {
	return fmt.Sprintf("%s-%d", market, index)
}

// TransformPositions convierte las posiciones en trades preservando el orden
// de origen. Los numéricos ya vienen parseados (ver adapters/polymarket).
func TransformPositions(positions []Position) []Trade {
	trades := make([]Trade, 0, len(positions))
	for i, pos := range positions {
		pnl := pos.CombinedPnL()

		category := pos.Info.Category
		if category == "" {
			category = UnknownCategory
		}

		trades = append(trades, Trade{
			ID:                TradeID(pos.Market, i),
			Market:            pos.Market,
			MarketQuestion:    pos.Info.Question,
			MarketCategory:    category,
			EntryPrice:        pos.AvgPrice,
			Size:              pos.Collateral,
			PnL:               pnl,
			Outcome:           ClassifyOutcome(pos.Info.IsResolved, pnl),
			Thesis:            DefaultThesis,
			Date:              pos.LastTradeTime,
			Conviction:        DefaultConviction,
			HoldDurationHours: DefaultHoldDurationHours,
		})
	}
	return trades
}

// SortByDateDesc devuelve una copia ordenada del más reciente al más antiguo.
// Lo usa la vista de journal; el dashboard conserva el orden de origen.
func SortByDateDesc(trades []Trade) []Trade {
	sorted := make([]Trade, len(trades))
	copy(sorted, trades)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})
	return sorted
}

// OutcomeFilter selecciona trades en el journal.
type OutcomeFilter string

const (
	FilterAll     OutcomeFilter = "all"
	FilterWin     OutcomeFilter = OutcomeFilter(OutcomeWin)
	FilterLoss    OutcomeFilter = OutcomeFilter(OutcomeLoss)
	FilterPending OutcomeFilter = OutcomeFilter(OutcomePending)
)

// ParseOutcomeFilter acepta all|win|loss|pending (vacío = all).
func ParseOutcomeFilter(s string) (OutcomeFilter, error) {
	switch f := OutcomeFilter(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FilterAll, nil
	case FilterAll, FilterWin, FilterLoss, FilterPending:
		return f, nil
	default:
		return "", fmt.Errorf("domain.ParseOutcomeFilter: unknown filter %q", s)
	}
}

// FilterByOutcome devuelve los trades que coinciden con el filtro.
func FilterByOutcome(trades []Trade, f OutcomeFilter) []Trade {
	if f == FilterAll || f == "" {
		return trades
	}
	out := make([]Trade, 0, len(trades))
	for _, t := range trades {
		if OutcomeFilter(t.Outcome) == f {
			out = append(out, t)
		}
	}
	return out
}

// FindTrade busca un trade por ID.
func FindTrade(trades []Trade, id string) (Trade, bool) {
	for _, t := range trades {
		if t.ID == id {
			return t, true
		}
	}
	return Trade{}, false
}
