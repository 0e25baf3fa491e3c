package domain

// Dashboard es todo lo que muestra la vista principal para una wallet.
type Dashboard struct {
	Wallet    Wallet     `json:"wallet"`
	Connected bool       `json:"connected"`
	Trades    []Trade    `json:"trades"`
	Stats     Stats      `json:"stats"`
	Series    []PnLPoint `json:"series"`
}

// BuildDashboard deriva stats y serie de la lista de trades.
func BuildDashboard(wallet Wallet, trades []Trade) Dashboard {
	if trades == nil {
		trades = []Trade{}
	}
	return Dashboard{
		Wallet:    wallet,
		Connected: !wallet.IsZero(),
		Trades:    trades,
		Stats:     ComputeStats(trades),
		Series:    BuildPnLSeries(trades),
	}
}
