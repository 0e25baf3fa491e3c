// Package review arma el prompt de crítica de tesis y lo envía a un
// modelo de texto alojado.
package review

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"text/template"

	"github.com/alejandrodnm/polyjournal/internal/domain"
	"github.com/alejandrodnm/polyjournal/internal/ports"
)

var promptTemplate = template.Must(template.New("thesis-review").Parse(
	`You are an AI trading thesis reviewer, skilled at providing feedback and suggestions for improvement.

Analyze the following trading thesis and provide constructive criticism, focusing on clarity, reasoning, and potential risks.

Thesis: {{.Thesis}}

Provide specific, actionable suggestions to refine the trader's thinking and improve their trading outcomes. Make sure to point out potential biases or assumptions.
Limit response to 200 words.
`))

// Reviewer pide una crítica por tesis. Un solo intento: sin reintentos
// ni truncado de la respuesta.
type Reviewer struct {
	gen ports.TextGenerator
}

// New crea un Reviewer sobre el generador dado.
func New(gen ports.TextGenerator) *Reviewer {
	return &Reviewer{gen: gen}
}

// Prompt renderiza el prompt para una tesis.
func Prompt(thesis string) (string, error) {
	var b strings.Builder
	if err := promptTemplate.Execute(&b, struct{ Thesis string }{thesis}); err != nil {
		return "", fmt.Errorf("review.Prompt: %w", err)
	}
	return b.String(), nil
}

// Review devuelve el feedback del modelo. Cualquier error del modelo o una
// respuesta vacía se reporta como domain.ErrReviewFailed.
func (r *Reviewer) Review(ctx context.Context, thesis string) (string, error) {
	prompt, err := Prompt(thesis)
	if err != nil {
		return "", fmt.Errorf("review.Review: %w: %w", domain.ErrReviewFailed, err)
	}

	feedback, err := r.gen.GenerateFeedback(ctx, prompt)
	if err != nil {
		slog.Warn("thesis review failed", "model", r.gen.Model(), "err", err)
		return "", fmt.Errorf("review.Review: %w: %w", domain.ErrReviewFailed, err)
	}
	if strings.TrimSpace(feedback) == "" {
		return "", fmt.Errorf("review.Review: empty feedback: %w", domain.ErrReviewFailed)
	}
	return feedback, nil
}

// Model devuelve el nombre del modelo subyacente.
func (r *Reviewer) Model() string {
	return r.gen.Model()
}
