package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// MinThesisChars es el largo mínimo de una tesis para pedir revisión.
	MinThesisChars = 20
	MinConviction  = 1
	MaxConviction  = 5
)

// TradeNote es la tesis y convicción que el usuario escribió para un trade.
// Se guarda localmente y se superpone a los valores por defecto.
type TradeNote struct {
	Wallet     Wallet
	TradeID    string
	Thesis     string
	Conviction int
	UpdatedAt  time.Time
}

// Validate comprueba los rangos de la nota.
func (n TradeNote) Validate() error {
	if n.TradeID == "" {
		return fmt.Errorf("domain.TradeNote: empty trade id")
	}
	if n.Conviction < MinConviction || n.Conviction > MaxConviction {
		return fmt.Errorf("domain.TradeNote: conviction %d: %w", n.Conviction, ErrInvalidConviction)
	}
	return nil
}

// ApplyNotes devuelve una copia de trades con las notas guardadas aplicadas.
// Una nota con tesis vacía solo cambia la convicción.
func ApplyNotes(trades []Trade, notes map[string]TradeNote) []Trade {
	if len(notes) == 0 {
		return trades
	}
	out := make([]Trade, len(trades))
	for i, t := range trades {
		if n, ok := notes[t.ID]; ok {
			if strings.TrimSpace(n.Thesis) != "" {
				t.Thesis = n.Thesis
			}
			if n.Conviction >= MinConviction && n.Conviction <= MaxConviction {
				t.Conviction = n.Conviction
			}
		}
		out[i] = t
	}
	return out
}

// ValidateThesis aplica el mínimo de caracteres (sin contar espacios de borde).
func ValidateThesis(thesis string) error {
	if n := len([]rune(strings.TrimSpace(thesis))); n < MinThesisChars {
		return fmt.Errorf("domain.ValidateThesis: %d chars, need %d: %w", n, MinThesisChars, ErrThesisTooShort)
	}
	return nil
}

// ThesisReview es una crítica generada por el modelo para una tesis.
type ThesisReview struct {
	ID        string    `json:"id"`
	Wallet    Wallet    `json:"wallet,omitempty"`
	TradeID   string    `json:"tradeId,omitempty"`
	Thesis    string    `json:"thesis"`
	Feedback  string    `json:"feedback"`
	Model     string    `json:"model"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewThesisReview crea una revisión con id aleatorio.
func NewThesisReview(wallet Wallet, tradeID, thesis, feedback, model string, at time.Time) ThesisReview {
	return ThesisReview{
		ID:        uuid.NewString(),
		Wallet:    wallet,
		TradeID:   tradeID,
		Thesis:    thesis,
		Feedback:  feedback,
		Model:     model,
		CreatedAt: at.UTC(),
	}
}
