package journal_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alejandrodnm/polyjournal/internal/domain"
	"github.com/alejandrodnm/polyjournal/internal/journal"
)

const longThesis = "Supply shock after the halving should push price higher."

func newService(pos *mockPositions, store *memoryStore, rev journal.Reviewer) *journal.Service {
	return journal.NewService(pos, &mockMarkets{}, store, rev)
}

func TestService_Dashboard(t *testing.T) {
	svc := newService(&mockPositions{positions: samplePositions()}, newMemoryStore(), nil)

	d, err := svc.Dashboard(context.Background(), wallet)
	require.NoError(t, err)

	assert.True(t, d.Connected)
	require.Len(t, d.Trades, 4)
	assert.Equal(t, "0xa-0", d.Trades[0].ID, "orden de la API")
	assert.Equal(t, "12", d.Stats.TotalPnL.String())
	assert.Equal(t, "2", d.Stats.OpenPnL.String())
	assert.Equal(t, 3, d.Stats.Closed)

	require.Len(t, d.Series, 4)
	last := d.Series[len(d.Series)-1]
	assert.True(t, last.CumulativePnL.Equal(d.Stats.TotalPnL), "el último punto coincide con TotalPnL")
}

func TestService_Dashboard_NoWallet(t *testing.T) {
	pos := &mockPositions{positions: samplePositions()}
	svc := newService(pos, newMemoryStore(), nil)

	d, err := svc.Dashboard(context.Background(), "")
	require.NoError(t, err)
	assert.False(t, d.Connected)
	assert.Empty(t, d.Trades)
	assert.Equal(t, 0, pos.calls)
}

func TestService_Dashboard_FetchError(t *testing.T) {
	svc := newService(&mockPositions{err: domain.ErrFetchFailed}, newMemoryStore(), nil)

	_, err := svc.Dashboard(context.Background(), wallet)
	assert.ErrorIs(t, err, domain.ErrFetchFailed)
}

func TestService_Journal_SortedAndFiltered(t *testing.T) {
	svc := newService(&mockPositions{positions: samplePositions()}, newMemoryStore(), nil)

	all, err := svc.Journal(context.Background(), wallet, domain.FilterAll)
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, []string{"0xc-2", "0xb-1", "0xd-3", "0xa-0"}, ids(all))

	wins, err := svc.Journal(context.Background(), wallet, domain.FilterWin)
	require.NoError(t, err)
	assert.Equal(t, []string{"0xd-3", "0xa-0"}, ids(wins))
}

func TestService_NotesOverlayDefaults(t *testing.T) {
	store := newMemoryStore()
	svc := newService(&mockPositions{positions: samplePositions()}, store, nil)
	ctx := context.Background()

	_, err := svc.SaveNote(ctx, wallet, "0xb-1", "  Fade the pump.  ", 5)
	require.NoError(t, err)

	trades, err := svc.Trades(ctx, wallet)
	require.NoError(t, err)
	assert.Equal(t, "Fade the pump.", trades[1].Thesis)
	assert.Equal(t, 5, trades[1].Conviction)
	assert.Equal(t, domain.DefaultThesis, trades[0].Thesis)
	assert.Equal(t, domain.DefaultConviction, trades[0].Conviction)
}

func TestService_NotesFailureFallsBackToDefaults(t *testing.T) {
	store := newMemoryStore()
	store.notesErr = errors.New("disk full")
	svc := newService(&mockPositions{positions: samplePositions()}, store, nil)

	trades, err := svc.Trades(context.Background(), wallet)
	require.NoError(t, err)
	assert.Len(t, trades, 4)
}

func TestService_SaveNote_Validation(t *testing.T) {
	svc := newService(&mockPositions{}, newMemoryStore(), nil)
	ctx := context.Background()

	_, err := svc.SaveNote(ctx, wallet, "0xa-0", "x", 0)
	assert.ErrorIs(t, err, domain.ErrInvalidConviction)

	_, err = svc.SaveNote(ctx, wallet, "0xa-0", "x", 6)
	assert.ErrorIs(t, err, domain.ErrInvalidConviction)

	_, err = svc.SaveNote(ctx, "", "0xa-0", "x", 3)
	assert.ErrorIs(t, err, domain.ErrInvalidWallet)
}

func TestService_ReviewThesis(t *testing.T) {
	store := newMemoryStore()
	rev := &mockReviewer{feedback: "Watch for ETF outflows."}
	svc := newService(&mockPositions{}, store, rev)
	ctx := context.Background()

	r, err := svc.ReviewThesis(ctx, wallet, "0xa-0", longThesis)
	require.NoError(t, err)
	assert.Equal(t, "Watch for ETF outflows.", r.Feedback)
	assert.Equal(t, "mock-model", r.Model)
	assert.NotEmpty(t, r.ID)

	history, err := svc.Reviews(ctx, wallet, "0xa-0")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, r.ID, history[0].ID)
}

func TestService_ReviewThesis_TooShort(t *testing.T) {
	rev := &mockReviewer{feedback: "ok"}
	svc := newService(&mockPositions{}, newMemoryStore(), rev)

	_, err := svc.ReviewThesis(context.Background(), wallet, "", "too short")
	assert.ErrorIs(t, err, domain.ErrThesisTooShort)
	assert.Empty(t, rev.theses, "no se llama al modelo")
}

func TestService_ReviewThesis_Failure(t *testing.T) {
	store := newMemoryStore()
	rev := &mockReviewer{err: domain.ErrReviewFailed}
	svc := newService(&mockPositions{}, store, rev)

	_, err := svc.ReviewThesis(context.Background(), wallet, "", longThesis)
	assert.ErrorIs(t, err, domain.ErrReviewFailed)
	assert.Len(t, rev.theses, 1, "sin reintentos")
	assert.Empty(t, store.reviews)
}

func TestService_ReviewThesis_Disabled(t *testing.T) {
	svc := newService(&mockPositions{}, newMemoryStore(), nil)

	_, err := svc.ReviewThesis(context.Background(), wallet, "", longThesis)
	assert.ErrorIs(t, err, domain.ErrReviewFailed)
	assert.ErrorIs(t, err, journal.ErrReviewerDisabled)
}

func TestService_ReviewThesis_StoreFailureStillReturnsReview(t *testing.T) {
	store := newMemoryStore()
	store.saveErr = errors.New("locked")
	svc := newService(&mockPositions{}, store, &mockReviewer{feedback: "fine"})

	r, err := svc.ReviewThesis(context.Background(), wallet, "", longThesis)
	require.NoError(t, err)
	assert.Equal(t, "fine", r.Feedback)
}

func TestService_ReviewTrade(t *testing.T) {
	store := newMemoryStore()
	rev := &mockReviewer{feedback: "Good."}
	svc := newService(&mockPositions{positions: samplePositions()}, store, rev)
	ctx := context.Background()

	r, err := svc.ReviewTrade(ctx, wallet, "0xa-0")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultThesis, rev.theses[0])
	assert.Equal(t, "0xa-0", r.TradeID)

	_, err = svc.ReviewTrade(ctx, wallet, "0xzz-9")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

type memorySink struct {
	name string
	data string
}

func (m *memorySink) Put(_ context.Context, name string, r io.Reader, _ string) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	m.name, m.data = name, string(b)
	return "mem://" + name, nil
}

func TestService_Export(t *testing.T) {
	svc := newService(&mockPositions{positions: samplePositions()}, newMemoryStore(), nil)
	sink := &memorySink{}

	res, err := svc.Export(context.Background(), wallet, domain.FilterLoss, sink, "exports/")
	require.NoError(t, err)
	assert.Equal(t, 1, res.Count)
	assert.True(t, strings.HasPrefix(sink.name, "exports/trades-"+string(wallet)+"-"))
	assert.Equal(t, "mem://"+sink.name, res.Location)
	assert.Contains(t, sink.data, "0xb-1")
	assert.NotContains(t, sink.data, "0xa-0")

	_, err = svc.Export(context.Background(), "", domain.FilterAll, sink, "")
	assert.ErrorIs(t, err, domain.ErrInvalidWallet)
}

func ids(trades []domain.Trade) []string {
	out := make([]string, len(trades))
	for i, t := range trades {
		out[i] = t.ID
	}
	return out
}
