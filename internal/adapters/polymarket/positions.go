package polymarket

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/alejandrodnm/polyjournal/internal/domain"
)

const (
	dataPositionsPath = "/positions"
	clobPositionsPath = "/positions/"
)

// FetchPositions devuelve las posiciones de la wallet desde el endpoint
// configurado. Sin wallet no hace ningún request.
func (c *Client) FetchPositions(ctx context.Context, wallet domain.Wallet) ([]domain.Position, error) {
	if wallet.IsZero() {
		return []domain.Position{}, nil
	}

	var raw []rawPosition
	switch c.source {
	case SourceCLOB:
		u := c.clobBase + clobPositionsPath + url.PathEscape(wallet.String())
		var resp clobPositionsResponse
		if err := c.get(ctx, c.clobLimiter, u, &resp); err != nil {
			return nil, fmt.Errorf("polymarket.FetchPositions: %w", err)
		}
		raw = resp.Positions
	default:
		u := fmt.Sprintf("%s%s?user=%s", c.dataBase, dataPositionsPath, url.QueryEscape(wallet.String()))
		if err := c.get(ctx, c.dataLimiter, u, &raw); err != nil {
			return nil, fmt.Errorf("polymarket.FetchPositions: %w", err)
		}
	}

	positions, err := mapPositions(raw)
	if err != nil {
		return nil, fmt.Errorf("polymarket.FetchPositions: %w: %w", domain.ErrFetchFailed, err)
	}

	slog.Debug("positions fetched",
		"wallet", wallet.Short(),
		"source", c.source,
		"count", len(positions),
	)
	return positions, nil
}
