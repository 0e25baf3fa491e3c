package journal

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/alejandrodnm/polyjournal/internal/adapters/export"
	"github.com/alejandrodnm/polyjournal/internal/domain"
	"github.com/alejandrodnm/polyjournal/internal/ports"
)

// ExportResult describe un export terminado.
type ExportResult struct {
	Location string
	Count    int
}

// Export escribe el journal filtrado como CSV en el sink.
func (s *Service) Export(
	ctx context.Context,
	wallet domain.Wallet,
	filter domain.OutcomeFilter,
	sink ports.ExportSink,
	prefix string,
) (ExportResult, error) {
	if wallet.IsZero() {
		return ExportResult{}, fmt.Errorf("journal.Export: %w", domain.ErrInvalidWallet)
	}

	trades, err := s.Journal(ctx, wallet, filter)
	if err != nil {
		return ExportResult{}, fmt.Errorf("journal.Export: %w", err)
	}

	var buf bytes.Buffer
	if err := export.WriteTrades(&buf, trades); err != nil {
		return ExportResult{}, fmt.Errorf("journal.Export: %w", err)
	}

	name := export.ObjectName(prefix, wallet, s.now())
	location, err := sink.Put(ctx, name, &buf, export.ContentType)
	if err != nil {
		return ExportResult{}, fmt.Errorf("journal.Export: %w", err)
	}

	slog.Info("journal exported", "wallet", wallet.Short(), "trades", len(trades), "location", location)
	return ExportResult{Location: location, Count: len(trades)}, nil
}
