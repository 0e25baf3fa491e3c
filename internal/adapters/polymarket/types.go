package polymarket

import (
	"bytes"
	"encoding/json"
)

// DTOs raw de la API de Polymarket. Solo se usan dentro de este paquete.
// La conversión a domain entities se hace en mapping.go.

// flexNumber guarda el texto de un campo numérico que la API manda a veces
// como string decimal y a veces como número JSON. El parseo real (fallible)
// se hace en mapping.go.
type flexNumber string

// UnmarshalJSON acepta "1.5", 1.5 y null.
func (f *flexNumber) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexNumber(s)
		return nil
	}
	*f = flexNumber(b)
	return nil
}

// --- Positions ---

// rawPosition es una posición tal como la devuelven data-api y clob.
type rawPosition struct {
	Market        string        `json:"market"`
	Size          flexNumber    `json:"size"`
	AvgPrice      flexNumber    `json:"avg_price"`
	Collateral    flexNumber    `json:"collateral"`
	RealizedPnL   flexNumber    `json:"realized_pnl"`
	UnrealizedPnL flexNumber    `json:"unrealized_pnl"`
	LastTradeTime flexNumber    `json:"last_trade_time"` // ISO-8601 o unix
	MarketInfo    rawMarketInfo `json:"market_info"`
}

// rawMarketInfo es la metadata embebida. Algunas respuestas anidan la
// categoría un nivel más abajo (market_info.market_info.category).
type rawMarketInfo struct {
	Question          string         `json:"question"`
	Category          string         `json:"category"`
	IsResolved        bool           `json:"is_resolved"`
	ResolutionOutcome string         `json:"resolution_outcome"`
	Nested            *rawMarketInfo `json:"market_info,omitempty"`
}

// clobPositionsResponse es la respuesta de GET /positions/{address} del CLOB.
type clobPositionsResponse struct {
	Positions []rawPosition `json:"positions"`
}

// --- Markets ---

// rawMarket es un mercado de GET /markets del CLOB.
type rawMarket struct {
	ID            string       `json:"id"`
	ConditionID   string       `json:"condition_id"`
	Question      string       `json:"question"`
	Slug          string       `json:"slug"`
	MarketSlug    string       `json:"market_slug"`
	Category      string       `json:"category"`
	Active        bool         `json:"active"`
	Liquidity     flexNumber   `json:"liquidity"`
	Volume        flexNumber   `json:"volume"`
	OutcomePrices []flexNumber `json:"outcome_prices"`
	EndDateISO    string       `json:"end_date_iso"`
}

// marketsPage es el sobre paginado que el CLOB usa en algunas versiones.
type marketsPage struct {
	Data       []rawMarket `json:"data"`
	NextCursor string      `json:"next_cursor"`
}
