package main

import (
	"context"
	"fmt"

	"github.com/alejandrodnm/polyjournal/internal/adapters/notify"
	"github.com/alejandrodnm/polyjournal/internal/domain"
	"github.com/alejandrodnm/polyjournal/internal/journal"
	"github.com/alejandrodnm/polyjournal/internal/ports"
)

func runDashboard(ctx context.Context, svc *journal.Service, console *notify.Console, wallet domain.Wallet) error {
	d, err := svc.Dashboard(ctx, wallet)
	if err != nil {
		// el usuario ve el mensaje genérico, el detalle queda en el log
		_ = console.NotifyError(ctx, err)
		return err
	}
	return console.Notify(ctx, d)
}

func runJournal(ctx context.Context, svc *journal.Service, console *notify.Console, wallet domain.Wallet, outcome string) error {
	filter, err := domain.ParseOutcomeFilter(outcome)
	if err != nil {
		return err
	}
	trades, err := svc.Journal(ctx, wallet, filter)
	if err != nil {
		_ = console.NotifyError(ctx, err)
		return err
	}
	console.PrintJournal(trades, filter)
	return nil
}

func runMarkets(ctx context.Context, svc *journal.Service, console *notify.Console) error {
	markets, err := svc.Markets(ctx)
	if err != nil {
		_ = console.NotifyError(ctx, err)
		return err
	}
	console.PrintMarkets(markets)
	return nil
}

func runNote(ctx context.Context, svc *journal.Service, console *notify.Console, wallet domain.Wallet, opts options) error {
	if opts.tradeID == "" {
		return fmt.Errorf("note: -trade is required")
	}
	note, err := svc.SaveNote(ctx, wallet, opts.tradeID, opts.thesis, opts.conviction)
	if err != nil {
		return err
	}
	console.PrintNoteSaved(note)
	return nil
}

// runReview pide una revisión de -thesis, o de la tesis guardada del trade
// si -thesis está vacío. Con -history lista las revisiones guardadas.
func runReview(ctx context.Context, svc *journal.Service, console *notify.Console, wallet domain.Wallet, opts options) error {
	if opts.history {
		if opts.tradeID == "" {
			return fmt.Errorf("review: -history needs -trade")
		}
		reviews, err := svc.Reviews(ctx, wallet, opts.tradeID)
		if err != nil {
			return err
		}
		console.PrintReviews(opts.tradeID, reviews)
		return nil
	}

	var (
		r   domain.ThesisReview
		err error
	)
	if opts.thesis == "" && opts.tradeID != "" {
		r, err = svc.ReviewTrade(ctx, wallet, opts.tradeID)
	} else {
		r, err = svc.ReviewThesis(ctx, wallet, opts.tradeID, opts.thesis)
	}
	if err != nil {
		return err
	}
	console.PrintReview(r)
	return nil
}

func runExport(
	ctx context.Context,
	svc *journal.Service,
	console *notify.Console,
	sink ports.ExportSink,
	wallet domain.Wallet,
	outcome string,
	prefix string,
) error {
	filter, err := domain.ParseOutcomeFilter(outcome)
	if err != nil {
		return err
	}
	res, err := svc.Export(ctx, wallet, filter, sink, prefix)
	if err != nil {
		return err
	}
	console.PrintExported(res.Location, res.Count)
	return nil
}
