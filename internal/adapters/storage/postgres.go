package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alejandrodnm/polyjournal/internal/domain"
)

const pgSchema = `
CREATE TABLE IF NOT EXISTS trade_notes (
    wallet     TEXT        NOT NULL,
    trade_id   TEXT        NOT NULL,
    thesis     TEXT        NOT NULL DEFAULT '',
    conviction INTEGER     NOT NULL DEFAULT 3,
    updated_at TIMESTAMPTZ NOT NULL,
    PRIMARY KEY (wallet, trade_id)
);

CREATE TABLE IF NOT EXISTS thesis_reviews (
    id         UUID PRIMARY KEY,
    wallet     TEXT        NOT NULL,
    trade_id   TEXT        NOT NULL,
    thesis     TEXT        NOT NULL,
    feedback   TEXT        NOT NULL,
    model      TEXT        NOT NULL,
    created_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_reviews_trade ON thesis_reviews(wallet, trade_id, created_at DESC);
`

// PostgresStorage implementa ports.JournalStorage sobre un pool de pgx.
// Útil cuando el modo serve corre en varios hosts.
type PostgresStorage struct {
	pool *pgxpool.Pool
}

// NewPostgresStorage conecta, hace ping y aplica el schema.
func NewPostgresStorage(ctx context.Context, dsn string) (*PostgresStorage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("storage.NewPostgresStorage: parse dsn: %w", err)
	}
	cfg.MaxConns = 10
	cfg.MinConns = 1
	cfg.MaxConnIdleTime = 30 * time.Second
	cfg.MaxConnLifetime = 5 * time.Minute

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("storage.NewPostgresStorage: create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("storage.NewPostgresStorage: ping: %w", err)
	}
	if _, err := pool.Exec(ctx, pgSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("storage.NewPostgresStorage: apply schema: %w", err)
	}
	return &PostgresStorage{pool: pool}, nil
}

// SaveNote hace upsert de la nota del trade.
func (s *PostgresStorage) SaveNote(ctx context.Context, note domain.TradeNote) error {
	if err := note.Validate(); err != nil {
		return fmt.Errorf("storage.SaveNote: %w", err)
	}
	updated := note.UpdatedAt
	if updated.IsZero() {
		updated = time.Now()
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO trade_notes (wallet, trade_id, thesis, conviction, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (wallet, trade_id) DO UPDATE SET
			thesis     = EXCLUDED.thesis,
			conviction = EXCLUDED.conviction,
			updated_at = EXCLUDED.updated_at
	`, note.Wallet.String(), note.TradeID, note.Thesis, note.Conviction, updated.UTC())
	if err != nil {
		return fmt.Errorf("storage.SaveNote: upsert %s: %w", note.TradeID, err)
	}
	return nil
}

// GetNotes devuelve las notas de la wallet indexadas por trade id.
func (s *PostgresStorage) GetNotes(ctx context.Context, wallet domain.Wallet) (map[string]domain.TradeNote, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT trade_id, thesis, conviction, updated_at
		FROM trade_notes
		WHERE wallet = $1
	`, wallet.String())
	if err != nil {
		return nil, fmt.Errorf("storage.GetNotes: query: %w", err)
	}
	defer rows.Close()

	notes := make(map[string]domain.TradeNote)
	for rows.Next() {
		n := domain.TradeNote{Wallet: wallet}
		if err := rows.Scan(&n.TradeID, &n.Thesis, &n.Conviction, &n.UpdatedAt); err != nil {
			return nil, fmt.Errorf("storage.GetNotes: scan: %w", err)
		}
		n.UpdatedAt = n.UpdatedAt.UTC()
		notes[n.TradeID] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage.GetNotes: rows: %w", err)
	}
	return notes, nil
}

// SaveReview agrega una revisión al historial.
func (s *PostgresStorage) SaveReview(ctx context.Context, r domain.ThesisReview) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO thesis_reviews (id, wallet, trade_id, thesis, feedback, model, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, r.ID, r.Wallet.String(), r.TradeID, r.Thesis, r.Feedback, r.Model, r.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("storage.SaveReview: insert %s: %w", r.ID, err)
	}
	return nil
}

// ListReviews devuelve las revisiones de un trade, la más reciente primero.
func (s *PostgresStorage) ListReviews(ctx context.Context, wallet domain.Wallet, tradeID string) ([]domain.ThesisReview, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id::text, thesis, feedback, model, created_at
		FROM thesis_reviews
		WHERE wallet = $1 AND trade_id = $2
		ORDER BY created_at DESC
	`, wallet.String(), tradeID)
	if err != nil {
		return nil, fmt.Errorf("storage.ListReviews: query: %w", err)
	}
	defer rows.Close()

	reviews := []domain.ThesisReview{}
	for rows.Next() {
		r := domain.ThesisReview{Wallet: wallet, TradeID: tradeID}
		if err := rows.Scan(&r.ID, &r.Thesis, &r.Feedback, &r.Model, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("storage.ListReviews: scan: %w", err)
		}
		r.CreatedAt = r.CreatedAt.UTC()
		reviews = append(reviews, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage.ListReviews: rows: %w", err)
	}
	return reviews, nil
}

// Close cierra el pool.
func (s *PostgresStorage) Close() error {
	s.pool.Close()
	return nil
}
