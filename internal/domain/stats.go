package domain

import "github.com/shopspring/decimal"

// Stats es el resumen del dashboard. Se recalcula en cada render, nunca se guarda.
type Stats struct {
	// TotalPnL suma el PnL de los trades cerrados (win/loss). Coincide con el
	// último punto de la serie de PnL y con la suma de los badges cerrados.
	TotalPnL decimal.Decimal `json:"totalPnl"`
	// OpenPnL suma el PnL de los trades pending, que TotalPnL no incluye.
	OpenPnL decimal.Decimal `json:"openPnl"`
	// WinRate = wins / cerrados × 100; 0 si no hay cerrados.
	WinRate float64 `json:"winRate"`
	// TotalVolume suma Size de todos los trades (valor actual, no volumen histórico).
	TotalVolume decimal.Decimal `json:"totalVolume"`
	// AvgConviction es la media de Conviction de todos los trades; 0 si no hay.
	AvgConviction float64 `json:"avgConviction"`

	Wins    int `json:"wins"`
	Losses  int `json:"losses"`
	Pending int `json:"pending"`
	Closed  int `json:"closed"`
	Total   int `json:"total"`
}

// ComputeStats reduce la lista de trades a los escalares del dashboard.
func ComputeStats(trades []Trade) Stats {
	s := Stats{
		TotalPnL:    decimal.Zero,
		OpenPnL:     decimal.Zero,
		TotalVolume: decimal.Zero,
		Total:       len(trades),
	}

	convictionSum := 0
	for _, t := range trades {
		s.TotalVolume = s.TotalVolume.Add(t.Size)
		convictionSum += t.Conviction

		switch t.Outcome {
		case OutcomeWin:
			s.Wins++
			s.TotalPnL = s.TotalPnL.Add(t.PnL)
		case OutcomeLoss:
			s.Losses++
			s.TotalPnL = s.TotalPnL.Add(t.PnL)
		default:
			s.Pending++
			s.OpenPnL = s.OpenPnL.Add(t.PnL)
		}
	}

	s.Closed = s.Wins + s.Losses
	if s.Closed > 0 {
		s.WinRate = float64(s.Wins) / float64(s.Closed) * 100
	}
	if len(trades) > 0 {
		s.AvgConviction = float64(convictionSum) / float64(len(trades))
	}
	return s
}
