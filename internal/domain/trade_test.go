package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func makePosition(market string, realized, unrealized string, resolved bool, at time.Time) Position {
	return Position{
		Market:        market,
		Size:          dec("10"),
		AvgPrice:      dec("0.42"),
		Collateral:    dec("4.2"),
		RealizedPnL:   dec(realized),
		UnrealizedPnL: dec(unrealized),
		LastTradeTime: at,
		Info: MarketInfo{
			Question:   "Will " + market + " happen?",
			Category:   "Politics",
			IsResolved: resolved,
		},
	}
}

// --- ClassifyOutcome ---

func TestClassifyOutcome_Unresolved(t *testing.T) {
	assert.Equal(t, OutcomePending, ClassifyOutcome(false, dec("50")))
	assert.Equal(t, OutcomePending, ClassifyOutcome(false, dec("-50")))
	assert.Equal(t, OutcomePending, ClassifyOutcome(false, decimal.Zero))
}

func TestClassifyOutcome_Resolved(t *testing.T) {
	assert.Equal(t, OutcomeWin, ClassifyOutcome(true, dec("0.01")))
	assert.Equal(t, OutcomeLoss, ClassifyOutcome(true, dec("-0.01")))
}

func TestClassifyOutcome_ZeroPnLIsLoss(t *testing.T) {
	assert.Equal(t, OutcomeLoss, ClassifyOutcome(true, decimal.Zero))
}

// --- TransformPositions ---

func TestTransformPositions_Defaults(t *testing.T) {
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	trades := TransformPositions([]Position{makePosition("0xabc", "2.5", "-1", true, at)})
	require.Len(t, trades, 1)

	tr := trades[0]
	assert.Equal(t, "0xabc-0", tr.ID)
	assert.Equal(t, "Will 0xabc happen?", tr.MarketQuestion)
	assert.Equal(t, "Politics", tr.MarketCategory)
	assert.True(t, dec("1.5").Equal(tr.PnL), "pnl = realized + unrealized")
	assert.True(t, dec("4.2").Equal(tr.Size), "size = collateral")
	assert.True(t, dec("0.42").Equal(tr.EntryPrice))
	assert.Equal(t, OutcomeWin, tr.Outcome)
	assert.Equal(t, DefaultThesis, tr.Thesis)
	assert.Equal(t, 3, tr.Conviction)
	assert.Equal(t, 0, tr.HoldDurationHours)
	assert.Equal(t, at, tr.Date)
}

func TestTransformPositions_UnknownCategory(t *testing.T) {
	p := makePosition("0x1", "0", "0", false, time.Time{})
	p.Info.Category = ""
	trades := TransformPositions([]Position{p})
	assert.Equal(t, UnknownCategory, trades[0].MarketCategory)
}

func TestTransformPositions_PreservesOrderAndIndexes(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	positions := []Position{
		makePosition("0xa", "1", "0", true, base.Add(48*time.Hour)),
		makePosition("0xb", "1", "0", true, base),
		makePosition("0xa", "1", "0", true, base.Add(24*time.Hour)),
	}
	trades := TransformPositions(positions)
	require.Len(t, trades, 3)
	assert.Equal(t, "0xa-0", trades[0].ID)
	assert.Equal(t, "0xb-1", trades[1].ID)
	assert.Equal(t, "0xa-2", trades[2].ID)
}

func TestTransformPositions_OutcomeMatchesRule(t *testing.T) {
	cases := []struct {
		realized, unrealized string
		resolved             bool
		want                 Outcome
	}{
		{"5", "0", true, OutcomeWin},
		{"0", "0", true, OutcomeLoss},
		{"3", "-3", true, OutcomeLoss},
		{"-1", "0", true, OutcomeLoss},
		{"9", "9", false, OutcomePending},
	}
	for _, c := range cases {
		trades := TransformPositions([]Position{makePosition("0x", c.realized, c.unrealized, c.resolved, time.Time{})})
		assert.Equal(t, c.want, trades[0].Outcome, "realized=%s unrealized=%s resolved=%v", c.realized, c.unrealized, c.resolved)
	}
}

func TestTransformPositions_Empty(t *testing.T) {
	assert.Empty(t, TransformPositions(nil))
}

// --- SortByDateDesc / FilterByOutcome ---

func TestSortByDateDesc_DoesNotMutateInput(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	trades := []Trade{
		{ID: "old", Date: base},
		{ID: "new", Date: base.Add(time.Hour)},
		{ID: "mid", Date: base.Add(time.Minute)},
	}
	sorted := SortByDateDesc(trades)
	assert.Equal(t, []string{"new", "mid", "old"}, ids(sorted))
	assert.Equal(t, []string{"old", "new", "mid"}, ids(trades))
}

func TestFilterByOutcome(t *testing.T) {
	trades := []Trade{
		{ID: "w", Outcome: OutcomeWin},
		{ID: "l", Outcome: OutcomeLoss},
		{ID: "p", Outcome: OutcomePending},
	}
	assert.Len(t, FilterByOutcome(trades, FilterAll), 3)
	assert.Equal(t, []string{"w"}, ids(FilterByOutcome(trades, FilterWin)))
	assert.Equal(t, []string{"l"}, ids(FilterByOutcome(trades, FilterLoss)))
	assert.Equal(t, []string{"p"}, ids(FilterByOutcome(trades, FilterPending)))
}

func TestParseOutcomeFilter(t *testing.T) {
	f, err := ParseOutcomeFilter("")
	require.NoError(t, err)
	assert.Equal(t, FilterAll, f)

	f, err = ParseOutcomeFilter(" WIN ")
	require.NoError(t, err)
	assert.Equal(t, FilterWin, f)

	_, err = ParseOutcomeFilter("draw")
	assert.Error(t, err)
}

func ids(trades []Trade) []string {
	out := make([]string, len(trades))
	for i, t := range trades {
		out[i] = t.ID
	}
	return out
}
