package notify

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/shopspring/decimal"

	"github.com/alejandrodnm/polyjournal/internal/domain"
)

// Mensajes visibles. Los errores técnicos van al log, nunca a la pantalla.
const (
	msgConnect    = "Connect Your Wallet"
	msgConnectSub = "Pass -wallet 0x... or set POLYJOURNAL_WALLET to load your positions."
	msgFetchError = "Failed to fetch your trading data from the Polymarket API. Please try again later."
	msgNoSeries   = "No trading data available"
	msgNoTrades   = "No trades found."
	msgNoMarkets  = "No active markets found."
	msgNoReviews  = "No reviews yet."
)

const questionWidth = 48

// Console implementa ports.Notifier y las vistas de journal y markets.
type Console struct {
	out io.Writer
	now func() time.Time
}

// NewConsole crea un notificador que escribe a stdout.
func NewConsole() *Console {
	return &Console{out: os.Stdout, now: time.Now}
}

// NewConsoleWriter crea un notificador para tests.
func NewConsoleWriter(w io.Writer, now func() time.Time) *Console {
	if now == nil {
		now = time.Now
	}
	return &Console{out: w, now: now}
}

// Notify imprime el dashboard: stats, serie de PnL y tabla de trades.
func (c *Console) Notify(_ context.Context, d domain.Dashboard) error {
	if !d.Connected {
		c.printConnect()
		return nil
	}

	fmt.Fprintf(c.out, "\n[%s] Dashboard %s — %d trades\n",
		c.now().Format("15:04:05"), d.Wallet.Short(), d.Stats.Total)

	c.printStats(d.Stats)
	c.printSeries(d.Series)
	c.printTradesTable(d.Trades)
	return nil
}

// NotifyError imprime el aviso genérico de fallo de carga.
func (c *Console) NotifyError(_ context.Context, _ error) error {
	fmt.Fprintf(c.out, "\n[%s] Error: %s\n", c.now().Format("15:04:05"), msgFetchError)
	return nil
}

func (c *Console) printConnect() {
	fmt.Fprintf(c.out, "\n%s\n  %s\n", msgConnect, msgConnectSub)
}

// printStats imprime las cuatro tarjetas del dashboard como una tabla.
func (c *Console) printStats(s domain.Stats) {
	table := tablewriter.NewWriter(c.out)
	table.Header("Total PnL", "Win Rate", "Total Volume", "Avg. Conviction")
	table.Append(
		SignedUSD(s.TotalPnL),
		fmt.Sprintf("%.1f%%", s.WinRate),
		USD(s.TotalVolume),
		fmt.Sprintf("%.2f / 5", s.AvgConviction),
	)
	table.Append(
		"closed trades",
		fmt.Sprintf("%d wins / %d trades", s.Wins, s.Closed),
		"all positions",
		"per trade",
	)
	table.Render()

	if s.Pending > 0 {
		fmt.Fprintf(c.out, "  Open: %d pending, unrealized %s (not in Total PnL)\n",
			s.Pending, SignedUSD(s.OpenPnL))
	}
}

// printSeries imprime la curva de PnL acumulado. Solo el punto Start
// significa que no hay trades cerrados.
func (c *Console) printSeries(series []domain.PnLPoint) {
	if len(series) <= 1 {
		fmt.Fprintf(c.out, "\n  %s\n", msgNoSeries)
		return
	}

	fmt.Fprintln(c.out, "\n  PnL over time")
	table := tablewriter.NewWriter(c.out)
	table.Header("Date", "Cumulative PnL")
	for _, p := range series {
		table.Append(p.Label, SignedUSD(p.CumulativePnL))
	}
	table.Render()
}

func (c *Console) printTradesTable(trades []domain.Trade) {
	if len(trades) == 0 {
		fmt.Fprintf(c.out, "\n  %s\n", msgNoTrades)
		return
	}

	fmt.Fprintln(c.out)
	table := tablewriter.NewWriter(c.out)
	table.Header("#", "Market", "Category", "Outcome", "PnL", "Position", "Conv.")
	for i, t := range trades {
		table.Append(
			fmt.Sprintf("%d", i+1),
			domain.TruncateQuestion(t.MarketQuestion, t.Market, questionWidth),
			t.MarketCategory,
			string(t.Outcome),
			SignedUSD(t.PnL),
			Position(t),
			fmt.Sprintf("%d/5", t.Conviction),
		)
	}
	table.Render()
}

// PrintJournal imprime un bloque por trade, en el orden recibido.
func (c *Console) PrintJournal(trades []domain.Trade, filter domain.OutcomeFilter) {
	fmt.Fprintf(c.out, "\nTrading Journal (%s) — %d trades\n", filter, len(trades))
	if len(trades) == 0 {
		fmt.Fprintf(c.out, "  %s\n", msgNoTrades)
		return
	}

	for _, t := range trades {
		fmt.Fprintf(c.out, "\n%s\n", domain.TruncateQuestion(t.MarketQuestion, t.Market, 0))
		fmt.Fprintf(c.out, "  [%s] %s · %s · id %s\n",
			strings.ToUpper(string(t.Outcome)), t.MarketCategory, formatDate(t.Date), t.ID)
		fmt.Fprintf(c.out, "  PnL: %s   Position: %s   Conviction: %d/5\n",
			SignedUSD(t.PnL), Position(t), t.Conviction)
		fmt.Fprintf(c.out, "  Thesis: %s\n", t.Thesis)
	}
}

// PrintMarkets imprime la tabla de mercados activos.
func (c *Console) PrintMarkets(markets []domain.Market) {
	if len(markets) == 0 {
		fmt.Fprintf(c.out, "\n  %s\n", msgNoMarkets)
		return
	}

	now := c.now()
	fmt.Fprintf(c.out, "\n[%s] %d active markets by volume\n", now.Format("15:04:05"), len(markets))

	table := tablewriter.NewWriter(c.out)
	table.Header("#", "Market", "Category", "Prices", "Liq.", "Vol.", "Closes", "Link")
	for i, m := range markets {
		table.Append(
			fmt.Sprintf("%d", i+1),
			domain.TruncateQuestion(m.Question, m.ID, questionWidth),
			orDash(m.Category),
			formatOutcomes(m.Outcomes()),
			Thousands(m.Liquidity),
			Thousands(m.Volume),
			ClosesIn(m, now),
			m.ReferralLink(),
		)
	}
	table.Render()
}

// PrintReview imprime una revisión recién generada.
func (c *Console) PrintReview(r domain.ThesisReview) {
	fmt.Fprintf(c.out, "\nAI Feedback (%s)\n", r.Model)
	fmt.Fprintf(c.out, "  Thesis: %s\n\n", r.Thesis)
	fmt.Fprintln(c.out, r.Feedback)
}

// PrintReviews imprime el historial de revisiones de un trade.
func (c *Console) PrintReviews(tradeID string, reviews []domain.ThesisReview) {
	fmt.Fprintf(c.out, "\nReviews for %s\n", tradeID)
	if len(reviews) == 0 {
		fmt.Fprintf(c.out, "  %s\n", msgNoReviews)
		return
	}
	table := tablewriter.NewWriter(c.out)
	table.Header("When", "Model", "Thesis", "Feedback")
	for _, r := range reviews {
		table.Append(
			r.CreatedAt.Format("2006-01-02 15:04"),
			r.Model,
			truncate(r.Thesis, 40),
			truncate(r.Feedback, 80),
		)
	}
	table.Render()
}

// PrintNoteSaved confirma el guardado de una nota.
func (c *Console) PrintNoteSaved(n domain.TradeNote) {
	fmt.Fprintf(c.out, "Saved note for %s (conviction %d/5)\n", n.TradeID, n.Conviction)
}

// PrintExported informa la ubicación de un export.
func (c *Console) PrintExported(location string, count int) {
	fmt.Fprintf(c.out, "Exported %d trades to %s\n", count, location)
}

// --- Formato ---

// SignedUSD formatea +$1,234.56 / -$12.00. Cero lleva signo +.
func SignedUSD(d decimal.Decimal) string {
	if d.Round(2).IsNegative() {
		return "-" + USD(d.Abs())
	}
	return "+" + USD(d)
}

// USD formatea $1,234.56.
func USD(d decimal.Decimal) string {
	s := d.Abs().StringFixed(2)
	intPart, frac, _ := strings.Cut(s, ".")
	sign := ""
	if d.IsNegative() && !d.Round(2).IsZero() {
		sign = "-"
	}
	return sign + "$" + groupThousands(intPart) + "." + frac
}

// Thousands formatea un monto en miles sin decimales: $12k.
func Thousands(d decimal.Decimal) string {
	return "$" + d.Div(decimal.NewFromInt(1000)).StringFixed(0) + "k"
}

// Position formatea "$size @ pricec".
func Position(t domain.Trade) string {
	return fmt.Sprintf("$%s @ %sc", t.Size.StringFixed(2), t.EntryPrice.StringFixed(2))
}

// ClosesIn describe cuánto falta para el cierre del mercado.
func ClosesIn(m domain.Market, now time.Time) string {
	if m.EndDate.IsZero() {
		return "-"
	}
	h := m.HoursToClose(now)
	switch {
	case h < 0:
		return "closed"
	case h < 1:
		return fmt.Sprintf("in %d min", int(h*60))
	case h < 48:
		return fmt.Sprintf("in %d hours", int(h))
	default:
		return fmt.Sprintf("in %d days", int(h/24))
	}
}

func formatOutcomes(outcomes []domain.OutcomePrice) string {
	parts := make([]string, 0, len(outcomes))
	for _, o := range outcomes {
		parts = append(parts, fmt.Sprintf("%s %s¢", o.Name, o.Price.Mul(decimal.NewFromInt(100)).StringFixed(0)))
	}
	return strings.Join(parts, " / ")
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "unknown date"
	}
	return t.Format("Jan 2, 2006")
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var sb strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		sb.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if sb.Len() > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(digits[i : i+3])
	}
	return sb.String()
}

func truncate(s string, maxLen int) string {
	r := []rune(strings.ReplaceAll(s, "\n", " "))
	if len(r) <= maxLen {
		return string(r)
	}
	return string(r[:maxLen-3]) + "..."
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
