package journal_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alejandrodnm/polyjournal/internal/domain"
	"github.com/alejandrodnm/polyjournal/internal/journal"
)

// gatedLoader bloquea cada llamada hasta recibir por su canal, o hasta que
// el contexto se cancele.
type gatedLoader struct {
	mu      sync.Mutex
	gates   []chan domain.Dashboard
	started chan struct{}
}

func newGatedLoader() *gatedLoader {
	return &gatedLoader{started: make(chan struct{}, 8)}
}

func (g *gatedLoader) Dashboard(ctx context.Context, w domain.Wallet) (domain.Dashboard, error) {
	gate := make(chan domain.Dashboard, 1)
	g.mu.Lock()
	g.gates = append(g.gates, gate)
	g.mu.Unlock()
	g.started <- struct{}{}

	select {
	case d := <-gate:
		return d, nil
	case <-ctx.Done():
		return domain.Dashboard{}, ctx.Err()
	}
}

func (g *gatedLoader) release(i int, d domain.Dashboard) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.gates[i] <- d
}

type funcLoader func(ctx context.Context, w domain.Wallet) (domain.Dashboard, error)

func (f funcLoader) Dashboard(ctx context.Context, w domain.Wallet) (domain.Dashboard, error) {
	return f(ctx, w)
}

func TestSession_RefreshApplies(t *testing.T) {
	loader := funcLoader(func(_ context.Context, w domain.Wallet) (domain.Dashboard, error) {
		return domain.BuildDashboard(w, nil), nil
	})
	s := journal.NewSession(loader, wallet)

	_, ok := s.Current()
	assert.False(t, ok)

	d, err := s.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, wallet, d.Wallet)

	cur, ok := s.Current()
	assert.True(t, ok)
	assert.Equal(t, wallet, cur.Wallet)
}

func TestSession_ErrorKeepsLastDashboard(t *testing.T) {
	fail := false
	loader := funcLoader(func(_ context.Context, w domain.Wallet) (domain.Dashboard, error) {
		if fail {
			return domain.Dashboard{}, domain.ErrFetchFailed
		}
		return domain.BuildDashboard(w, nil), nil
	})
	s := journal.NewSession(loader, wallet)

	_, err := s.Refresh(context.Background())
	require.NoError(t, err)

	fail = true
	_, err = s.Refresh(context.Background())
	assert.ErrorIs(t, err, domain.ErrFetchFailed)

	cur, ok := s.Current()
	assert.True(t, ok)
	assert.Equal(t, wallet, cur.Wallet)
}

func TestSession_NewerRefreshWins(t *testing.T) {
	loader := newGatedLoader()
	s := journal.NewSession(loader, wallet)

	firstErr := make(chan error, 1)
	go func() {
		_, err := s.Refresh(context.Background())
		firstErr <- err
	}()
	<-loader.started

	secondDone := make(chan error, 1)
	go func() {
		_, err := s.Refresh(context.Background())
		secondDone <- err
	}()
	<-loader.started

	// la primera carga fue cancelada por la segunda y se descarta
	assert.ErrorIs(t, <-firstErr, journal.ErrStale)

	fresh := domain.Dashboard{Wallet: wallet, Connected: true}
	loader.release(1, fresh)
	require.NoError(t, <-secondDone)

	cur, ok := s.Current()
	require.True(t, ok)
	assert.True(t, cur.Connected)
}

func TestSession_LateResponseAfterWalletChangeIsDiscarded(t *testing.T) {
	loader := newGatedLoader()
	s := journal.NewSession(loader, wallet)

	done := make(chan error, 1)
	go func() {
		_, err := s.Refresh(context.Background())
		done <- err
	}()
	<-loader.started

	s.SetWallet("")
	loader.release(0, domain.Dashboard{Wallet: wallet, Connected: true})

	assert.True(t, errors.Is(<-done, journal.ErrStale))
	_, ok := s.Current()
	assert.False(t, ok, "la respuesta de la wallet anterior no se aplica")
	assert.True(t, s.Wallet().IsZero())
}

func TestSession_CloseCancelsInFlight(t *testing.T) {
	loader := newGatedLoader()
	s := journal.NewSession(loader, wallet)

	done := make(chan error, 1)
	go func() {
		_, err := s.Refresh(context.Background())
		done <- err
	}()
	<-loader.started

	s.Close()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, journal.ErrStale)
	case <-time.After(time.Second):
		t.Fatal("refresh did not return after Close")
	}

	_, err := s.Refresh(context.Background())
	assert.ErrorIs(t, err, journal.ErrSessionClosed)
}
