// Package export serializa trades a CSV y los guarda en disco o en un
// bucket S3-compatible.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/alejandrodnm/polyjournal/internal/domain"
)

// ContentType es el MIME de los archivos exportados.
const ContentType = "text/csv"

var header = []string{
	"id", "date", "market", "question", "category", "outcome",
	"entry_price", "size", "pnl", "conviction", "thesis",
}

// WriteTrades escribe los trades como CSV con cabecera.
func WriteTrades(w io.Writer, trades []domain.Trade) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("export.WriteTrades: header: %w", err)
	}
	for _, t := range trades {
		date := ""
		if !t.Date.IsZero() {
			date = t.Date.UTC().Format(time.RFC3339)
		}
		record := []string{
			t.ID,
			date,
			t.Market,
			t.MarketQuestion,
			t.MarketCategory,
			string(t.Outcome),
			t.EntryPrice.String(),
			t.Size.String(),
			t.PnL.String(),
			strconv.Itoa(t.Conviction),
			t.Thesis,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("export.WriteTrades: %s: %w", t.ID, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("export.WriteTrades: flush: %w", err)
	}
	return nil
}

// ObjectName arma "{prefix}trades-{wallet}-{yyyymmdd-hhmmss}.csv".
func ObjectName(prefix string, wallet domain.Wallet, at time.Time) string {
	return fmt.Sprintf("%strades-%s-%s.csv", prefix, wallet, at.UTC().Format("20060102-150405"))
}
