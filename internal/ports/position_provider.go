package ports

import (
	"context"

	"github.com/alejandrodnm/polyjournal/internal/domain"
)

// PositionProvider obtiene las posiciones de una wallet.
type PositionProvider interface {
	// FetchPositions devuelve las posiciones tal como las reporta la API.
	// Con una wallet vacía devuelve una lista vacía sin hacer ningún request.
	FetchPositions(ctx context.Context, wallet domain.Wallet) ([]domain.Position, error)
}
