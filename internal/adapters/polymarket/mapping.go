package polymarket

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/alejandrodnm/polyjournal/internal/domain"
)

// mapPositions convierte los DTOs a domain.Position. Falla con el primer
// campo numérico o fecha malformada en lugar de propagar valores basura.
func mapPositions(raw []rawPosition) ([]domain.Position, error) {
	positions := make([]domain.Position, 0, len(raw))
	for i, r := range raw {
		p, err := mapPosition(r)
		if err != nil {
			return nil, fmt.Errorf("position %d (%s): %w", i, r.Market, err)
		}
		positions = append(positions, p)
	}
	return positions, nil
}

// mapPosition convierte un rawPosition a domain.Position.
func mapPosition(r rawPosition) (domain.Position, error) {
	p := domain.Position{
		Market: r.Market,
		Info: domain.MarketInfo{
			Question:          r.MarketInfo.Question,
			Category:          r.MarketInfo.category(),
			IsResolved:        r.MarketInfo.IsResolved,
			ResolutionOutcome: r.MarketInfo.ResolutionOutcome,
		},
	}

	fields := []struct {
		name string
		raw  flexNumber
		dst  *decimal.Decimal
	}{
		{"size", r.Size, &p.Size},
		{"avg_price", r.AvgPrice, &p.AvgPrice},
		{"collateral", r.Collateral, &p.Collateral},
		{"realized_pnl", r.RealizedPnL, &p.RealizedPnL},
		{"unrealized_pnl", r.UnrealizedPnL, &p.UnrealizedPnL},
	}
	for _, f := range fields {
		v, err := parseDecimal(f.name, f.raw)
		if err != nil {
			return domain.Position{}, err
		}
		*f.dst = v
	}

	ts, err := parseTimestamp(string(r.LastTradeTime))
	if err != nil {
		return domain.Position{}, fmt.Errorf("last_trade_time: %w", err)
	}
	p.LastTradeTime = ts

	return p, nil
}

// category prefiere la categoría de primer nivel y cae a la anidada.
func (m rawMarketInfo) category() string {
	if m.Category != "" {
		return m.Category
	}
	if m.Nested != nil {
		return m.Nested.Category
	}
	return ""
}

// mapMarkets convierte los DTOs del CLOB a domain.Market.
func mapMarkets(raw []rawMarket) ([]domain.Market, error) {
	markets := make([]domain.Market, 0, len(raw))
	for i, r := range raw {
		m, err := mapMarket(r)
		if err != nil {
			return nil, fmt.Errorf("market %d (%s): %w", i, m.ID, err)
		}
		markets = append(markets, m)
	}
	return markets, nil
}

// mapMarket convierte un rawMarket a domain.Market.
func mapMarket(r rawMarket) (domain.Market, error) {
	m := domain.Market{
		ID:       r.ID,
		Question: r.Question,
		Slug:     r.Slug,
		Category: r.Category,
		Active:   r.Active,
	}
	if m.ID == "" {
		m.ID = r.ConditionID
	}
	if m.Slug == "" {
		m.Slug = r.MarketSlug
	}

	var err error
	if m.Liquidity, err = parseDecimal("liquidity", r.Liquidity); err != nil {
		return m, err
	}
	if m.Volume, err = parseDecimal("volume", r.Volume); err != nil {
		return m, err
	}
	for i, raw := range r.OutcomePrices {
		price, err := parseDecimal(fmt.Sprintf("outcome_prices[%d]", i), raw)
		if err != nil {
			return m, err
		}
		m.OutcomePrices = append(m.OutcomePrices, price)
	}

	if m.EndDate, err = parseTimestamp(r.EndDateISO); err != nil {
		return m, fmt.Errorf("end_date_iso: %w", err)
	}
	return m, nil
}

// parseDecimal parsea un campo decimal. Vacío cuenta como cero.
func parseDecimal(field string, raw flexNumber) (decimal.Decimal, error) {
	s := strings.TrimSpace(string(raw))
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s=%q: %w", field, s, domain.ErrMalformedNumber)
	}
	return d, nil
}

// parseTimestamp acepta unix (segundos o milisegundos) e ISO-8601 en los
// formatos que usa Polymarket. Vacío devuelve el tiempo cero.
func parseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	if sec, err := strconv.ParseInt(s, 10, 64); err == nil {
		if sec > 1e12 {
			return time.UnixMilli(sec).UTC(), nil
		}
		return time.Unix(sec, 0).UTC(), nil
	}
	for _, layout := range []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05.000Z",
		"2006-01-02T15:04:05Z",
		"2006-01-02 15:04:05",
		"2006-01-02",
	} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%q: %w", s, domain.ErrMalformedTimestamp)
}
