package fetcher

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"hike-reviews/config"
)

// ErrTimeout matches any FetchError caused by a deadline or request timeout
var ErrTimeout = errors.New("fetch timed out")

// Fetcher interface defines the contract for fetching implementations
type Fetcher interface {
	// Fetch performs a single GET of url and returns the response body.
	// Network failures, timeouts and non-2xx statuses are returned as *FetchError.
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// FetchError describes a failed page retrieval
type FetchError struct {
	URL        string
	StatusCode int // 0 when no response was received
	Timeout    bool
	Err        error
}

func (e *FetchError) Error() string {
	switch {
	case e.Timeout:
		return fmt.Sprintf("failed to fetch %s: timed out: %v", e.URL, e.Err)
	case e.StatusCode != 0:
		return fmt.Sprintf("failed to fetch %s: HTTP %d", e.URL, e.StatusCode)
	default:
		return fmt.Sprintf("failed to fetch %s: %v", e.URL, e.Err)
	}
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrTimeout) single out timeouts
func (e *FetchError) Is(target error) bool {
	return target == ErrTimeout && e.Timeout
}

func newFetchError(url string, status int, err error) *FetchError {
	return &FetchError{
		URL:        url,
		StatusCode: status,
		Timeout:    isTimeout(err),
		Err:        err,
	}
}

func isTimeout(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

// New builds the fetcher selected by cfg.Backend.
// The returned close function releases backend resources and is never nil.
func New(cfg config.FetchConfig) (Fetcher, func() error, error) {
	switch cfg.Backend {
	case "browser":
		rf, err := NewRodFetcher(cfg.Timeout)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create browser fetcher: %w", err)
		}
		return rf, rf.Close, nil
	case "http", "":
		return NewCollyFetcher(cfg.UserAgent, cfg.Timeout), func() error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("unknown fetch backend %q", cfg.Backend)
	}
}

func timeoutOrDefault(d time.Duration) time.Duration {
	if d <= 0 {
		return 30 * time.Second
	}
	return d
}
