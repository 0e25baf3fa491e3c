package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alejandrodnm/polyjournal/config"
	"github.com/alejandrodnm/polyjournal/internal/adapters/export"
	"github.com/alejandrodnm/polyjournal/internal/adapters/gemini"
	"github.com/alejandrodnm/polyjournal/internal/adapters/notify"
	"github.com/alejandrodnm/polyjournal/internal/adapters/polymarket"
	"github.com/alejandrodnm/polyjournal/internal/adapters/storage"
	"github.com/alejandrodnm/polyjournal/internal/domain"
	"github.com/alejandrodnm/polyjournal/internal/journal"
	"github.com/alejandrodnm/polyjournal/internal/ports"
	"github.com/alejandrodnm/polyjournal/internal/review"
)

// options son los flags de la línea de comandos ya parseados.
type options struct {
	mode       string
	wallet     string
	outcome    string
	tradeID    string
	thesis     string
	conviction int
	history    bool
	once       bool
	addr       string
	noWatch    bool
}

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	verbose := flag.Bool("verbose", false, "set log level to debug")
	logFormat := flag.String("format", "", "log format: text|json (overrides config)")

	var opts options
	flag.StringVar(&opts.mode, "mode", "dashboard", "dashboard|journal|markets|review|note|export|watch|serve")
	flag.StringVar(&opts.wallet, "wallet", "", "wallet address (overrides config and POLYJOURNAL_WALLET)")
	flag.StringVar(&opts.outcome, "outcome", "all", "journal filter: all|win|loss|pending")
	flag.StringVar(&opts.tradeID, "trade", "", "trade id for note/review")
	flag.StringVar(&opts.thesis, "thesis", "", "thesis text for note/review")
	flag.IntVar(&opts.conviction, "conviction", 3, "conviction 1-5 for note")
	flag.BoolVar(&opts.history, "history", false, "review: list stored reviews instead of requesting one")
	flag.BoolVar(&opts.once, "once", false, "watch: run one refresh and exit")
	flag.StringVar(&opts.addr, "addr", "", "serve: listen address (overrides config)")
	flag.BoolVar(&opts.noWatch, "no-watch", false, "serve: do not run the console refresh loop")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err, "path", *configPath)
		os.Exit(1)
	}

	if *verbose {
		cfg.Log.Level = "debug"
	}
	if *logFormat != "" {
		cfg.Log.Format = *logFormat
	}
	if opts.wallet != "" {
		cfg.Wallet = opts.wallet
	}
	if opts.addr != "" {
		cfg.Server.Addr = opts.addr
	}
	setupLogger(cfg.Log)

	wallet, err := domain.ParseWallet(cfg.Wallet)
	if err != nil {
		slog.Error("invalid wallet", "err", err)
		os.Exit(1)
	}

	slog.Info("polyjournal starting",
		"config", *configPath,
		"mode", opts.mode,
		"wallet", wallet.Short(),
		"positions_source", cfg.API.PositionsSource,
		"storage", storageKind(cfg.Storage.DSN),
	)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	client := polymarket.NewClient(polymarket.Config{
		DataBase:        cfg.API.DataBase,
		CLOBBase:        cfg.API.CLOBBase,
		PositionsSource: polymarket.PositionsSource(cfg.API.PositionsSource),
		MaxAttempts:     cfg.Fetch.MaxAttempts,
		RetryDelay:      cfg.RetryDelay(),
		Timeout:         cfg.FetchTimeout(),
	})

	store, err := storage.Open(ctx, cfg.Storage.DSN)
	if err != nil {
		slog.Error("failed to open storage", "err", err, "storage", storageKind(cfg.Storage.DSN))
		os.Exit(1)
	}
	defer store.Close()

	svc := journal.NewService(client, client, store, newReviewer(ctx, cfg.Review))
	console := notify.NewConsole()

	if err := run(ctx, cfg, opts, wallet, svc, console); err != nil {
		slog.Error("polyjournal exited with error", "mode", opts.mode, "err", err)
		os.Exit(1)
	}

	slog.Info("polyjournal stopped cleanly")
}

// newReviewer devuelve nil sin API key: el resto de los modos sigue
// funcionando y las revisiones fallan con ErrReviewerDisabled.
func newReviewer(ctx context.Context, cfg config.ReviewConfig) journal.Reviewer {
	gen, err := gemini.NewClient(ctx, gemini.Config{APIKey: cfg.APIKey, Model: cfg.Model})
	if err != nil {
		if errors.Is(err, gemini.ErrMissingAPIKey) {
			slog.Debug("GEMINI_API_KEY not set, thesis review disabled")
		} else {
			slog.Warn("thesis review disabled", "err", err)
		}
		return nil
	}
	return review.New(gen)
}

func newExportSink(ctx context.Context, cfg config.ExportConfig) (ports.ExportSink, error) {
	if cfg.Sink == "s3" {
		return export.NewS3Sink(ctx, export.S3Config{
			Endpoint:       cfg.S3.Endpoint,
			Region:         cfg.S3.Region,
			Bucket:         cfg.S3.Bucket,
			AccessKey:      cfg.S3.AccessKey,
			SecretKey:      cfg.S3.SecretKey,
			ForcePathStyle: cfg.S3.ForcePathStyle,
		})
	}
	return export.NewFileSink(cfg.Dir), nil
}

func run(ctx context.Context, cfg *config.Config, opts options, wallet domain.Wallet, svc *journal.Service, console *notify.Console) error {
	switch opts.mode {
	case "dashboard":
		return runDashboard(ctx, svc, console, wallet)
	case "journal":
		return runJournal(ctx, svc, console, wallet, opts.outcome)
	case "markets":
		return runMarkets(ctx, svc, console)
	case "note":
		return runNote(ctx, svc, console, wallet, opts)
	case "review":
		return runReview(ctx, svc, console, wallet, opts)
	case "export":
		sink, err := newExportSink(ctx, cfg.Export)
		if err != nil {
			return err
		}
		return runExport(ctx, svc, console, sink, wallet, opts.outcome, cfg.Export.Prefix)
	case "watch":
		session := journal.NewSession(svc, wallet)
		return journal.NewWatcher(session, console, cfg.WatchInterval(), opts.once).Run(ctx)
	case "serve":
		return runServe(ctx, cfg, svc, console, wallet, !opts.noWatch)
	default:
		return fmt.Errorf("unknown mode %q", opts.mode)
	}
}

func storageKind(dsn string) string {
	if storage.IsPostgresDSN(dsn) {
		return "postgres"
	}
	return "sqlite"
}

func setupLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	// stderr: stdout queda para las tablas
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}
