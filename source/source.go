package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// ============================================================================
// SOURCE — fetches indicator payloads over HTTP
// ============================================================================
// GET {BaseURL}/{indicator} → {"data": ..., "indicator": "..."}
// The engine never sees this package; timeouts and cancellation live here.
// ============================================================================

// ErrUnexpectedStatus is returned when the backend answers with a non-2xx status.
var ErrUnexpectedStatus = errors.New("unexpected status")

// DefaultTimeout bounds a single fetch when Config.Timeout is zero.
const DefaultTimeout = 30 * time.Second

// maxBody caps a payload at 64 MiB.
const maxBody = 64 << 20

// Config configures a Fetcher.
type Config struct {
	BaseURL string
	Timeout time.Duration
	Headers map[string]string
}

// Fetcher retrieves raw payloads for indicators.
type Fetcher struct {
	config Config
	client *http.Client
	logger *slog.Logger
}

// New creates a Fetcher. A nil logger uses slog.Default().
func New(cfg Config, logger *slog.Logger) *Fetcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if logger == nil {
		logger = slog.Default()
	}
	return &Fetcher{
		config: cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}

// URL returns the endpoint for an indicator.
func (f *Fetcher) URL(indicator string) string {
	return f.config.BaseURL + "/" + url.PathEscape(indicator)
}

// Fetch retrieves one indicator's payload.
func (f *Fetcher) Fetch(ctx context.Context, indicator string) ([]byte, error) {
	return f.FetchURL(ctx, f.URL(indicator))
}

// FetchURL retrieves a payload from an explicit URL.
func (f *Fetcher) FetchURL(ctx context.Context, target string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	for k, v := range f.config.Headers {
		req.Header.Set(k, v)
	}

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", target, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		f.logger.Warn("fetch failed", "url", target, "status", resp.StatusCode)
		return nil, fmt.Errorf("%w: %d from %s: %s", ErrUnexpectedStatus, resp.StatusCode, target, snippet(body, 200))
	}

	f.logger.Info("fetched payload", "url", target, "bytes", len(body), "elapsed", time.Since(start))
	return body, nil
}

// FetchAll fetches several indicators concurrently and returns when every
// fetch has finished. The first failure cancels the rest.
func (f *Fetcher) FetchAll(ctx context.Context, indicators []string) (map[string][]byte, error) {
	results := make(map[string][]byte, len(indicators))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	for _, ind := range indicators {
		g.Go(func() error {
			body, err := f.Fetch(gctx, ind)
			if err != nil {
				return fmt.Errorf("indicator %s: %w", ind, err)
			}
			mu.Lock()
			results[ind] = body
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func snippet(b []byte, n int) string {
	s := strings.TrimSpace(string(b))
	if len(s) > n {
		return s[:n] + "..."
	}
	return s
}
