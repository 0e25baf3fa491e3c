package domain

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

const referralVia = "recktinomics"

// Market es un mercado de predicción listado en el CLOB.
type Market struct {
	ID            string            `json:"id"`
	Question      string            `json:"question"`
	Slug          string            `json:"slug"`
	Category      string            `json:"category"`
	Active        bool              `json:"active"`
	Liquidity     decimal.Decimal   `json:"liquidity"`
	Volume        decimal.Decimal   `json:"volume"`
	OutcomePrices []decimal.Decimal `json:"outcomePrices"` // en el orden de la API: [Yes, No]
	EndDate       time.Time         `json:"endDate"`       // cero si la API no la devuelve
}

// OutcomePrice es el precio de un lado del mercado.
type OutcomePrice struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// Outcomes devuelve Yes/No ordenados de mayor a menor precio.
// Faltantes cuentan como 0.
func (m Market) Outcomes() []OutcomePrice {
	price := func(i int) decimal.Decimal {
		if i < len(m.OutcomePrices) {
			return m.OutcomePrices[i]
		}
		return decimal.Zero
	}
	out := []OutcomePrice{
		{Name: "Yes", Price: price(0)},
		{Name: "No", Price: price(1)},
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Price.GreaterThan(out[j].Price)
	})
	return out
}

// ReferralLink devuelve el link al evento en polymarket.com.
func (m Market) ReferralLink() string {
	return fmt.Sprintf("https://polymarket.com/event/%s?via=%s", m.Slug, referralVia)
}

// HoursToClose devuelve las horas hasta EndDate relativas a now.
// Negativo si ya cerró; 0 si no hay fecha.
func (m Market) HoursToClose(now time.Time) float64 {
	if m.EndDate.IsZero() {
		return 0
	}
	return m.EndDate.Sub(now).Hours()
}

// ActiveByVolume filtra active == true y ordena por volumen descendente.
// El orden es estable para mercados con el mismo volumen.
func ActiveByVolume(markets []Market) []Market {
	active := make([]Market, 0, len(markets))
	for _, m := range markets {
		if m.Active {
			active = append(active, m)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].Volume.GreaterThan(active[j].Volume)
	})
	return active
}

// TruncateQuestion devuelve la pregunta truncada a maxLen caracteres.
// Si está vacía usa los primeros caracteres del id como fallback.
func TruncateQuestion(question, id string, maxLen int) string {
	q := []rune(question)
	if len(q) == 0 {
		q = []rune(id)
		if len(q) > 20 {
			q = append(q[:20], []rune("...")...)
		}
	}
	if maxLen > 3 && len(q) > maxLen {
		q = append(q[:maxLen-3], []rune("...")...)
	}
	return string(q)
}
