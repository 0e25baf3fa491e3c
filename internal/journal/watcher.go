package journal

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/alejandrodnm/polyjournal/internal/ports"
)

const defaultWatchInterval = time.Minute

// Watcher refresca una Session en intervalos y notifica cada dashboard.
type Watcher struct {
	session  *Session
	notifier ports.Notifier
	interval time.Duration
	once     bool
}

// NewWatcher crea un Watcher. Con once=true hace un solo ciclo.
func NewWatcher(session *Session, notifier ports.Notifier, interval time.Duration, once bool) *Watcher {
	if interval <= 0 {
		interval = defaultWatchInterval
	}
	return &Watcher{session: session, notifier: notifier, interval: interval, once: once}
}

// Run ejecuta el loop hasta que el contexto se cancele. Un ciclo fallido se
// notifica y no corta el loop, salvo en modo once.
func (w *Watcher) Run(ctx context.Context) error {
	slog.Info("watcher starting",
		"wallet", w.session.Wallet().Short(),
		"interval", w.interval,
		"once", w.once,
	)
	defer w.session.Close()

	if err := w.cycle(ctx); err != nil && w.once {
		return err
	}
	if w.once {
		return nil
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("watcher stopped")
			return nil
		case <-ticker.C:
			w.cycle(ctx)
		}
	}
}

// cycle refresca y notifica. Los resultados descartados no se notifican.
func (w *Watcher) cycle(ctx context.Context) error {
	d, err := w.session.Refresh(ctx)
	switch {
	case errors.Is(err, ErrStale), errors.Is(err, ErrSessionClosed):
		return nil
	case err != nil:
		if ctx.Err() != nil {
			return nil
		}
		slog.Error("dashboard refresh failed", "err", err)
		if nerr := w.notifier.NotifyError(ctx, err); nerr != nil {
			slog.Warn("notifier error", "err", nerr)
		}
		return err
	}

	if err := w.notifier.Notify(ctx, d); err != nil {
		slog.Warn("notifier error", "err", err)
	}
	return nil
}
