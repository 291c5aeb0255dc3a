// Package fetch provides DocumentFetcher adapters for the harvester
// artifact: an HTTP fetcher that walks a fixed candidate URL list, a
// local file fetcher, and a file watcher for live reload.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/veldt-labs/eventscope/internal/core/domain"
	"github.com/veldt-labs/eventscope/internal/core/ports/driven"
	"github.com/veldt-labs/eventscope/internal/logger"
)

// Ensure HTTPFetcher implements the interface.
var _ driven.DocumentFetcher = (*HTTPFetcher)(nil)

const (
	// requestTimeout is the hard per-request limit. The fetcher never
	// hangs; a slow candidate is a failed candidate.
	requestTimeout = 12 * time.Second

	// requestRetries is the number of extra attempts per candidate.
	// Minimal so the whole list fails fast without being flaky.
	requestRetries = 1

	userAgent = "eventscope/1.0"
)

// HTTPFetcher fetches the harvester artifact from the first responsive
// candidate URL. Which candidates exist and their order is configuration;
// the core never sees the list.
type HTTPFetcher struct {
	candidates []string
	client     *http.Client
	limiter    *rate.Limiter
}

// NewHTTPFetcher creates a fetcher over an ordered candidate URL list.
func NewHTTPFetcher(candidates []string) *HTTPFetcher {
	return &HTTPFetcher{
		candidates: candidates,
		client:     &http.Client{Timeout: requestTimeout},
		// Polite pacing across candidates and retries.
		limiter: rate.NewLimiter(rate.Limit(4), 4),
	}
}

// Fetch tries each candidate in order and returns the first success.
// When every candidate fails it returns domain.ErrDocumentUnavailable
// wrapping nothing; the individual failures are logged, not surfaced.
func (f *HTTPFetcher) Fetch(ctx context.Context) (*driven.FetchResult, error) {
	if len(f.candidates) == 0 {
		return nil, fmt.Errorf("no candidates configured: %w", domain.ErrDocumentUnavailable)
	}

	for _, url := range f.candidates {
		data, err := f.fetchOne(ctx, url)
		if err != nil {
			logger.Warn("Candidate failed: %s: %v", url, err)
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			continue
		}
		return &driven.FetchResult{URI: url, Data: data}, nil
	}

	return nil, fmt.Errorf("tried %d candidates: %w", len(f.candidates), domain.ErrDocumentUnavailable)
}

// fetchOne performs the GET with a tiny retry.
func (f *HTTPFetcher) fetchOne(ctx context.Context, url string) ([]byte, error) {
	var lastErr error

	for attempt := 0; attempt <= requestRetries; attempt++ {
		if err := f.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		data, err := f.get(ctx, url)
		if err == nil {
			return data, nil
		}
		lastErr = err
	}

	return nil, lastErr
}

func (f *HTTPFetcher) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return data, nil
}
