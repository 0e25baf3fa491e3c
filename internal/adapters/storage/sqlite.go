package storage

// Diario local del usuario: notas de trades y revisiones de tesis.
//
//   - `trade_notes`: UNA fila por (wallet, trade_id). Upsert en cada edición.
//   - `thesis_reviews`: historial append-only de revisiones del modelo.
//   - Nada derivado de la API se persiste: posiciones y stats se recalculan.
//   - Prune al arrancar: revisiones de más de 180 días.

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"

	"github.com/alejandrodnm/polyjournal/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS trade_notes (
    wallet     TEXT    NOT NULL,
    trade_id   TEXT    NOT NULL,
    thesis     TEXT    NOT NULL DEFAULT '',
    conviction INTEGER NOT NULL DEFAULT 3,
    updated_at TEXT    NOT NULL,
    PRIMARY KEY (wallet, trade_id)
);

CREATE TABLE IF NOT EXISTS thesis_reviews (
    id         TEXT PRIMARY KEY,
    wallet     TEXT NOT NULL,
    trade_id   TEXT NOT NULL,
    thesis     TEXT NOT NULL,
    feedback   TEXT NOT NULL,
    model      TEXT NOT NULL,
    created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_reviews_trade ON thesis_reviews(wallet, trade_id, created_at DESC);
`

const retentionReviews = 180 * 24 * time.Hour

// timeLayout es de ancho fijo para que el orden lexicográfico sea cronológico.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// SQLiteStorage implementa ports.JournalStorage usando SQLite (pure Go, sin CGo).
type SQLiteStorage struct {
	db *sql.DB
}

// NewSQLiteStorage abre (o crea) la base de datos en la ruta dada.
func NewSQLiteStorage(path string) (*SQLiteStorage, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage.NewSQLiteStorage: open %q: %w", path, err)
	}
	db.SetMaxOpenConns(1) // SQLite es single-writer
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage.NewSQLiteStorage: apply schema: %w", err)
	}

	s := &SQLiteStorage{db: db}
	if err := s.pruneOld(context.Background()); err != nil {
		slog.Warn("prune old reviews failed", "err", err)
	}
	return s, nil
}

// SaveNote hace upsert de la nota del trade.
func (s *SQLiteStorage) SaveNote(ctx context.Context, note domain.TradeNote) error {
	if err := note.Validate(); err != nil {
		return fmt.Errorf("storage.SaveNote: %w", err)
	}
	updated := note.UpdatedAt
	if updated.IsZero() {
		updated = time.Now()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO trade_notes (wallet, trade_id, thesis, conviction, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(wallet, trade_id) DO UPDATE SET
			thesis     = excluded.thesis,
			conviction = excluded.conviction,
			updated_at = excluded.updated_at
	`, note.Wallet.String(), note.TradeID, note.Thesis, note.Conviction, formatTime(updated))
	if err != nil {
		return fmt.Errorf("storage.SaveNote: upsert %s: %w", note.TradeID, err)
	}
	return nil
}

// GetNotes devuelve las notas de la wallet indexadas por trade id.
func (s *SQLiteStorage) GetNotes(ctx context.Context, wallet domain.Wallet) (map[string]domain.TradeNote, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT trade_id, thesis, conviction, updated_at
		FROM trade_notes
		WHERE wallet = ?
	`, wallet.String())
	if err != nil {
		return nil, fmt.Errorf("storage.GetNotes: query: %w", err)
	}
	defer rows.Close()

	notes := make(map[string]domain.TradeNote)
	for rows.Next() {
		n := domain.TradeNote{Wallet: wallet}
		var updated string
		if err := rows.Scan(&n.TradeID, &n.Thesis, &n.Conviction, &updated); err != nil {
			return nil, fmt.Errorf("storage.GetNotes: scan: %w", err)
		}
		n.UpdatedAt = parseTime(updated)
		notes[n.TradeID] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage.GetNotes: rows: %w", err)
	}
	return notes, nil
}

// SaveReview agrega una revisión al historial.
func (s *SQLiteStorage) SaveReview(ctx context.Context, r domain.ThesisReview) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO thesis_reviews (id, wallet, trade_id, thesis, feedback, model, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, r.ID, r.Wallet.String(), r.TradeID, r.Thesis, r.Feedback, r.Model, formatTime(r.CreatedAt))
	if err != nil {
		return fmt.Errorf("storage.SaveReview: insert %s: %w", r.ID, err)
	}
	return nil
}

// ListReviews devuelve las revisiones de un trade, la más reciente primero.
func (s *SQLiteStorage) ListReviews(ctx context.Context, wallet domain.Wallet, tradeID string) ([]domain.ThesisReview, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, thesis, feedback, model, created_at
		FROM thesis_reviews
		WHERE wallet = ? AND trade_id = ?
		ORDER BY created_at DESC
	`, wallet.String(), tradeID)
	if err != nil {
		return nil, fmt.Errorf("storage.ListReviews: query: %w", err)
	}
	defer rows.Close()

	reviews := []domain.ThesisReview{}
	for rows.Next() {
		r := domain.ThesisReview{Wallet: wallet, TradeID: tradeID}
		var created string
		if err := rows.Scan(&r.ID, &r.Thesis, &r.Feedback, &r.Model, &created); err != nil {
			return nil, fmt.Errorf("storage.ListReviews: scan: %w", err)
		}
		r.CreatedAt = parseTime(created)
		reviews = append(reviews, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage.ListReviews: rows: %w", err)
	}
	return reviews, nil
}

// Close cierra la conexión.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

func (s *SQLiteStorage) pruneOld(ctx context.Context) error {
	cutoff := formatTime(time.Now().Add(-retentionReviews))
	if _, err := s.db.ExecContext(ctx, `DELETE FROM thesis_reviews WHERE created_at < ?`, cutoff); err != nil {
		return fmt.Errorf("storage.pruneOld: %w", err)
	}
	return nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
