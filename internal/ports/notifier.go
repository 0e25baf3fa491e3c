package ports

import (
	"context"

	"github.com/alejandrodnm/polyjournal/internal/domain"
)

// Notifier presenta el dashboard al usuario.
type Notifier interface {
	// Notify muestra el dashboard recién calculado.
	Notify(ctx context.Context, dashboard domain.Dashboard) error

	// NotifyError muestra un fallo de carga sin detalles técnicos.
	NotifyError(ctx context.Context, err error) error
}
