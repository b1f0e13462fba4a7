package feed

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"time"
)

// DefaultTimeout bounds a single feed retrieval. Retry policy, if any, belongs
// to the caller; the fetcher never retries so one sync run stays bounded.
const DefaultTimeout = 15 * time.Second

// Fetcher retrieves raw feed text for one (property, channel) pair over HTTP.
type Fetcher struct {
	client *http.Client
}

// NewFetcher creates a fetcher with the given per-request timeout.
// A non-positive timeout falls back to DefaultTimeout.
func NewFetcher(timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Fetcher{
		client: &http.Client{Timeout: timeout},
	}
}

// Fetch issues a single GET for the feed URL and returns the response body.
// Failures are returned as *FetchError with a classified kind; a non-2xx
// response or an empty body is an error, never an empty snapshot.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", &FetchError{Kind: FetchUnreachable, URL: url, Err: err}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", &FetchError{Kind: classifyTransportError(err), URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &FetchError{Kind: FetchBadStatus, URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &FetchError{Kind: classifyTransportError(err), URL: url, Err: err}
	}

	if len(body) == 0 {
		return "", &FetchError{Kind: FetchEmptyBody, URL: url}
	}

	return string(body), nil
}

// classifyTransportError distinguishes deadline errors from connection errors.
func classifyTransportError(err error) FetchErrorKind {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, os.ErrDeadlineExceeded) {
		return FetchTimeout
	}

	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) && netErr.Timeout() {
		return FetchTimeout
	}

	return FetchUnreachable
}
