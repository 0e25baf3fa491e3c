package domain

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// StartLabel es la etiqueta del punto sintético de origen de la serie.
const StartLabel = "Start"

// PnLPoint es un punto de la curva de PnL acumulado.
type PnLPoint struct {
	Label         string          `json:"label"`
	Date          time.Time       `json:"date"`
	CumulativePnL decimal.Decimal `json:"cumulativePnl"`
}

// BuildPnLSeries construye el PnL acumulado de los trades cerrados ordenados
// por fecha ascendente, con un punto {Start, 0} al principio. Sin estado entre
// llamadas: siempre se recalcula desde la lista completa.
func BuildPnLSeries(trades []Trade) []PnLPoint {
	closed := make([]Trade, 0, len(trades))
	for _, t := range trades {
		if t.Outcome.IsClosed() {
			closed = append(closed, t)
		}
	}

	sort.SliceStable(closed, func(i, j int) bool {
		return closed[i].Date.Before(closed[j].Date)
	})

	series := make([]PnLPoint, 0, len(closed)+1)
	series = append(series, PnLPoint{Label: StartLabel, CumulativePnL: decimal.Zero})

	cumulative := decimal.Zero
	for _, t := range closed {
		cumulative = cumulative.Add(t.PnL)
		series = append(series, PnLPoint{
			Label:         seriesLabel(t.Date),
			Date:          t.Date,
			CumulativePnL: cumulative,
		})
	}
	return series
}

// seriesLabel formatea la fecha como "Jan 2".
func seriesLabel(t time.Time) string {
	if t.IsZero() {
		return "?"
	}
	return t.Format("Jan 2")
}
