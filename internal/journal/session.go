package journal

import (
	"context"
	"errors"
	"sync"

	"github.com/alejandrodnm/polyjournal/internal/domain"
)

var (
	// ErrStale indica que la respuesta llegó después de un Refresh más nuevo,
	// un cambio de wallet o un Close, y se descartó.
	ErrStale = errors.New("journal: stale dashboard discarded")

	// ErrSessionClosed se devuelve al refrescar una Session cerrada.
	ErrSessionClosed = errors.New("journal: session closed")
)

// DashboardLoader carga el dashboard de una wallet.
type DashboardLoader interface {
	Dashboard(ctx context.Context, wallet domain.Wallet) (domain.Dashboard, error)
}

// Session guarda el último dashboard de una vista. Cada Refresh toma un
// número de generación; solo la generación vigente puede escribir el estado.
type Session struct {
	loader DashboardLoader

	mu      sync.Mutex
	wallet  domain.Wallet
	gen     uint64
	cancel  context.CancelFunc
	current domain.Dashboard
	loaded  bool
	closed  bool
}

// NewSession crea una Session para la wallet dada (puede ser la wallet cero).
func NewSession(loader DashboardLoader, wallet domain.Wallet) *Session {
	return &Session{loader: loader, wallet: wallet}
}

// Refresh carga el dashboard y lo aplica si nadie lo invalidó mientras tanto.
// Un Refresh en curso se cancela al empezar otro.
func (s *Session) Refresh(ctx context.Context) (domain.Dashboard, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return domain.Dashboard{}, ErrSessionClosed
	}
	gen := s.bumpLocked()
	wallet := s.wallet
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.mu.Unlock()

	d, err := s.loader.Dashboard(ctx, wallet)

	s.mu.Lock()
	defer s.mu.Unlock()
	cancel()
	if gen != s.gen {
		return domain.Dashboard{}, ErrStale
	}
	s.cancel = nil
	if err != nil {
		return domain.Dashboard{}, err
	}
	s.current = d
	s.loaded = true
	return d, nil
}

// SetWallet cambia la wallet e invalida cualquier carga en curso.
func (s *Session) SetWallet(wallet domain.Wallet) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if wallet == s.wallet {
		return
	}
	s.wallet = wallet
	s.bumpLocked()
	s.current = domain.Dashboard{}
	s.loaded = false
}

// Current devuelve el último dashboard aplicado y si hay alguno.
func (s *Session) Current() (domain.Dashboard, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current, s.loaded
}

// Wallet devuelve la wallet actual.
func (s *Session) Wallet() domain.Wallet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wallet
}

// Close cancela la carga en curso. Las respuestas tardías se descartan.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.bumpLocked()
}

// bumpLocked cancela la carga en curso y avanza la generación. Requiere mu.
func (s *Session) bumpLocked() uint64 {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.gen++
	return s.gen
}
