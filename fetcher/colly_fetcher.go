package fetcher

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gocolly/colly/v2"
)

// CollyFetcher implements the Fetcher interface using colly
type CollyFetcher struct {
	userAgent string
	timeout   time.Duration
}

// NewCollyFetcher creates a new CollyFetcher instance
func NewCollyFetcher(userAgent string, timeout time.Duration) *CollyFetcher {
	return &CollyFetcher{
		userAgent: userAgent,
		timeout:   timeoutOrDefault(timeout),
	}
}

// Fetch implements the Fetcher interface.
// Each call builds its own collector so no visited-URL state survives between runs.
func (cf *CollyFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, cf.timeout)
	defer cancel()

	options := []colly.CollectorOption{
		colly.StdlibContext(ctx),
		colly.AllowURLRevisit(),
		// Report every status to OnResponse so non-2xx can be classified here
		colly.ParseHTTPErrorResponse(),
	}
	if cf.userAgent != "" {
		options = append(options, colly.UserAgent(cf.userAgent))
	}
	c := colly.NewCollector(options...)
	c.SetRequestTimeout(cf.timeout)
	// No body limit: colly's 10 MiB default truncates large review pages without an error
	c.MaxBodySize = 0

	var (
		status int
		body   []byte
	)
	c.OnResponse(func(r *colly.Response) {
		status = r.StatusCode
		body = r.Body
	})

	if err := c.Visit(url); err != nil {
		return nil, newFetchError(url, status, err)
	}

	if !isSuccess(status) {
		return nil, newFetchError(url, status, fmt.Errorf("unexpected status %d", status))
	}

	log.Printf("Fetched %s (%d bytes)\n", url, len(body))
	return body, nil
}
