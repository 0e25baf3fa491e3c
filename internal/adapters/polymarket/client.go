package polymarket

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/alejandrodnm/polyjournal/internal/domain"
)

const (
	defaultDataBase = "https://data-api.polymarket.com"
	defaultCLOBBase = "https://clob.polymarket.com"

	userAgent = "PolyJournal (Go)"

	// Rate limits muy por debajo de los documentados: un journal hace
	// pocos requests por vista, esto solo evita ráfagas del modo watch.
	dataRatePerSec = 5
	clobRatePerSec = 10

	defaultMaxAttempts = 3
	defaultRetryDelay  = time.Second
	defaultTimeout     = 10 * time.Second
)

// PositionsSource elige el endpoint de posiciones. Las formas de respuesta
// no son intercambiables: data-api devuelve un array, clob un objeto.
type PositionsSource string

const (
	SourceDataAPI PositionsSource = "data-api"
	SourceCLOB    PositionsSource = "clob"
)

// Config configura el Client. Los campos vacíos usan valores de producción.
type Config struct {
	DataBase        string
	CLOBBase        string
	PositionsSource PositionsSource
	MaxAttempts     int           // intentos totales, no reintentos
	RetryDelay      time.Duration // espera fija entre intentos
	Timeout         time.Duration
}

// Client es el HTTP client de las APIs públicas de Polymarket con
// rate limiting y reintentos de espera fija.
type Client struct {
	http        *http.Client
	dataBase    string
	clobBase    string
	source      PositionsSource
	maxAttempts int
	retryDelay  time.Duration
	dataLimiter *rate.Limiter
	clobLimiter *rate.Limiter
}

// NewClient crea un Client con la configuración dada.
func NewClient(cfg Config) *Client {
	if cfg.DataBase == "" {
		cfg.DataBase = defaultDataBase
	}
	if cfg.CLOBBase == "" {
		cfg.CLOBBase = defaultCLOBBase
	}
	if cfg.PositionsSource == "" {
		cfg.PositionsSource = SourceDataAPI
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = defaultMaxAttempts
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = defaultRetryDelay
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	return &Client{
		http:        &http.Client{Timeout: cfg.Timeout},
		dataBase:    cfg.DataBase,
		clobBase:    cfg.CLOBBase,
		source:      cfg.PositionsSource,
		maxAttempts: cfg.MaxAttempts,
		retryDelay:  cfg.RetryDelay,
		dataLimiter: rate.NewLimiter(dataRatePerSec, 5),
		clobLimiter: rate.NewLimiter(clobRatePerSec, 10),
	}
}

// get hace un GET con rate limiting y reintentos, y decodifica el JSON en out.
func (c *Client) get(ctx context.Context, limiter *rate.Limiter, url string, out any) error {
	return c.doWithRetry(ctx, limiter, url, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", userAgent)

		resp, err := c.http.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			return fmt.Errorf("status %d: %s", resp.StatusCode, string(body))
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		return nil
	})
}

// doWithRetry ejecuta fn hasta maxAttempts veces con una espera fija entre
// intentos. Cualquier error cuenta como fallo; al agotar los intentos devuelve
// el último envuelto en domain.ErrFetchFailed.
func (c *Client) doWithRetry(ctx context.Context, limiter *rate.Limiter, url string, fn func() error) error {
	var lastErr error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		if err := limiter.Wait(ctx); err != nil {
			return fmt.Errorf("%w: rate limiter: %w", domain.ErrFetchFailed, err)
		}

		lastErr = fn()
		if lastErr == nil {
			return nil
		}

		slog.Warn("polymarket request failed",
			"url", url,
			"attempt", attempt,
			"max_attempts", c.maxAttempts,
			"err", lastErr,
		)

		if attempt == c.maxAttempts {
			break
		}
		if err := c.sleep(ctx); err != nil {
			return fmt.Errorf("%w: %w", domain.ErrFetchFailed, err)
		}
	}
	return fmt.Errorf("%w after %d attempts: %w", domain.ErrFetchFailed, c.maxAttempts, lastErr)
}

// sleep espera retryDelay respetando el contexto.
func (c *Client) sleep(ctx context.Context) error {
	timer := time.NewTimer(c.retryDelay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
