package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Position es la participación de un usuario en un mercado, tal como la
// reporta la API. Snapshot inmutable: no se persiste ni se modifica.
type Position struct {
	Market        string // identificador del mercado (condition id)
	Size          decimal.Decimal
	AvgPrice      decimal.Decimal
	Collateral    decimal.Decimal // valor actual de la posición en USDC
	RealizedPnL   decimal.Decimal
	UnrealizedPnL decimal.Decimal
	LastTradeTime time.Time // cero si la API no la devuelve
	Info          MarketInfo
}

// MarketInfo es la metadata del mercado embebida en cada Position.
type MarketInfo struct {
	Question          string
	Category          string // vacío si la API no la devuelve
	IsResolved        bool
	ResolutionOutcome string
}

// CombinedPnL devuelve realized + unrealized, la cantidad que se usa tanto en
// el badge de cada trade como en los agregados.
func (p Position) CombinedPnL() decimal.Decimal {
	return p.UnrealizedPnL.Add(p.RealizedPnL)
}
