package main

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/alejandrodnm/polyjournal/config"
	"github.com/alejandrodnm/polyjournal/internal/adapters/notify"
	"github.com/alejandrodnm/polyjournal/internal/domain"
	"github.com/alejandrodnm/polyjournal/internal/journal"
	"github.com/alejandrodnm/polyjournal/internal/server"
)

const shutdownTimeout = 10 * time.Second

// runServe levanta la API y, si hay wallet y watch, el loop de consola.
// Cualquiera de los dos que falle cancela al otro.
func runServe(
	ctx context.Context,
	cfg *config.Config,
	svc *journal.Service,
	console *notify.Console,
	wallet domain.Wallet,
	watch bool,
) error {
	srv := server.New(server.Config{
		Addr:          cfg.Server.Addr,
		DefaultWallet: wallet.String(),
	}, svc, slog.Default())

	g, gctx := errgroup.WithContext(ctx)

	g.Go(srv.Start)

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if watch && !wallet.IsZero() {
		g.Go(func() error {
			session := journal.NewSession(svc, wallet)
			return journal.NewWatcher(session, console, cfg.WatchInterval(), false).Run(gctx)
		})
	}

	return g.Wait()
}
