package ports

import (
	"context"

	"github.com/alejandrodnm/polyjournal/internal/domain"
)

// MarketProvider obtiene los mercados del CLOB.
type MarketProvider interface {
	// FetchMarkets devuelve los mercados activos ordenados por volumen descendente.
	FetchMarkets(ctx context.Context) ([]domain.Market, error)
}
