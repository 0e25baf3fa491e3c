package ports

import (
	"context"

	"github.com/alejandrodnm/polyjournal/internal/domain"
)

// JournalStorage persiste lo que el usuario escribe sobre sus trades.
// Las posiciones y las stats nunca se guardan: se recalculan en cada fetch.
type JournalStorage interface {
	// SaveNote hace upsert de la nota de un trade.
	SaveNote(ctx context.Context, note domain.TradeNote) error

	// GetNotes devuelve las notas de la wallet indexadas por trade id.
	GetNotes(ctx context.Context, wallet domain.Wallet) (map[string]domain.TradeNote, error)

	// SaveReview agrega una revisión al historial.
	SaveReview(ctx context.Context, review domain.ThesisReview) error

	// ListReviews devuelve las revisiones de un trade, la más reciente primero.
	ListReviews(ctx context.Context, wallet domain.Wallet, tradeID string) ([]domain.ThesisReview, error)

	// Close cierra la conexión limpiamente.
	Close() error
}
