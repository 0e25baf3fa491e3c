package ports

import "context"

// TextGenerator es un modelo de texto alojado: un prompt entra, una respuesta sale.
type TextGenerator interface {
	// GenerateFeedback hace un único round trip y devuelve el texto generado.
	GenerateFeedback(ctx context.Context, prompt string) (string, error)

	// Model devuelve el nombre del modelo, para registrar en el historial.
	Model() string
}
