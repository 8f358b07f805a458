package ndl

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	bkerrors "bookjan/internal/errors"
	"bookjan/internal/ratelimit"
)

// Global HTTP client and rate limiter for reuse
var (
	httpClient      *http.Client
	clientOnce      sync.Once
	ndlRateLimiter  *ratelimit.Limiter
	rateLimiterOnce sync.Once
	httpClientNew   = func() *http.Client {
		return &http.Client{
			Timeout: 10 * time.Second,
		}
	}
)

var openSearchBaseURL = "https://ndlsearch.ndl.go.jp/api/opensearch"

const (
	maxAttempts    = 3
	initialBackoff = 500 * time.Millisecond
)

// getHTTPClient returns a singleton HTTP client
func getHTTPClient() *http.Client {
	clientOnce.Do(func() {
		httpClient = httpClientNew()
	})
	return httpClient
}

// getNDLRateLimiter returns a singleton rate limiter for the NDL API (1 req/sec)
func getNDLRateLimiter() *ratelimit.Limiter {
	rateLimiterOnce.Do(func() {
		ndlRateLimiter = ratelimit.New("NDL", 1)
	})
	return ndlRateLimiter
}

// ValidateISBN checks the shape of a lookup key: 10 or 13 digits.
func ValidateISBN(isbn string) error {
	if len(isbn) != 10 && len(isbn) != 13 {
		return fmt.Errorf("ISBN must be 10 or 13 digits, got %d characters", len(isbn))
	}
	for _, r := range isbn {
		if r < '0' || r > '9' {
			return fmt.Errorf("ISBN must contain only digits, got %q", isbn)
		}
	}
	return nil
}

// FetchRecord retrieves catalog metadata for an ISBN.
func FetchRecord(isbn string) (Record, error) {
	return FetchRecordWithContext(context.Background(), isbn)
}

// FetchRecordWithContext retrieves catalog metadata for an ISBN.
// An ISBN unknown to the catalog yields *errors.LookupNotFoundError;
// transport failures are retried with backoff and surfaced as a distinct
// error when the attempts are exhausted.
func FetchRecordWithContext(ctx context.Context, isbn string) (Record, error) {
	if err := ValidateISBN(isbn); err != nil {
		return nil, err
	}

	client := getHTTPClient()
	limiter := getNDLRateLimiter()

	lookupURL := fmt.Sprintf("%s?isbn=%s", openSearchBaseURL, url.QueryEscape(isbn))

	var lastErr error
	backoff := initialBackoff
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait failed: %w", err)
		}

		body, err := fetchOnce(ctx, client, lookupURL)
		if err == nil {
			record, parseErr := parseRecord(body, isbn)
			if parseErr != nil {
				return nil, parseErr
			}
			if record == nil {
				return nil, bkerrors.NewLookupNotFoundError(isbn)
			}
			return record, nil
		}

		// Rate limiting by the endpoint is not a transport flake.
		if bkerrors.IsRateLimitError(err) {
			return nil, err
		}

		lastErr = err
		if attempt < maxAttempts {
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
			backoff *= 2
		}
	}

	return nil, fmt.Errorf("catalog lookup failed after %d attempts: %w", maxAttempts, lastErr)
}

func fetchOnce(ctx context.Context, client *http.Client, lookupURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, lookupURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("NDL OpenSearch request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, bkerrors.NewRateLimitErrorWithRetry(
			"NDL OpenSearch rate limited", parseRetryAfter(resp.Header.Get("Retry-After")))
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("NDL OpenSearch returned status %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return body, nil
}

func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return 0
	}
	if seconds, err := strconv.Atoi(header); err == nil && seconds > 0 {
		return time.Duration(seconds) * time.Second
	}
	return 0
}
