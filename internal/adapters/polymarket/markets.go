package polymarket

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/alejandrodnm/polyjournal/internal/domain"
)

const marketsPath = "/markets"

// FetchMarkets devuelve los mercados activos del CLOB ordenados por volumen
// descendente. Acepta tanto un array como el sobre {"data": [...]}.
func (c *Client) FetchMarkets(ctx context.Context) ([]domain.Market, error) {
	var body json.RawMessage
	if err := c.get(ctx, c.clobLimiter, c.clobBase+marketsPath, &body); err != nil {
		return nil, fmt.Errorf("polymarket.FetchMarkets: %w", err)
	}

	raw, err := decodeMarkets(body)
	if err != nil {
		return nil, fmt.Errorf("polymarket.FetchMarkets: %w: %w", domain.ErrFetchFailed, err)
	}

	markets, err := mapMarkets(raw)
	if err != nil {
		return nil, fmt.Errorf("polymarket.FetchMarkets: %w: %w", domain.ErrFetchFailed, err)
	}

	active := domain.ActiveByVolume(markets)
	slog.Debug("markets fetched", "total", len(markets), "active", len(active))
	return active, nil
}

// decodeMarkets distingue las dos formas de respuesta por el primer byte.
func decodeMarkets(body json.RawMessage) ([]rawMarket, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var list []rawMarket
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, fmt.Errorf("decode markets array: %w", err)
		}
		return list, nil
	}
	var page marketsPage
	if err := json.Unmarshal(trimmed, &page); err != nil {
		return nil, fmt.Errorf("decode markets page: %w", err)
	}
	return page.Data, nil
}
