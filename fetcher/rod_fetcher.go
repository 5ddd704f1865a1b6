package fetcher

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// RodFetcher implements the Fetcher interface using rod (headless browser).
// It is only needed if the site starts rendering reviews with JavaScript.
type RodFetcher struct {
	browser *rod.Browser
	timeout time.Duration
}

// NewRodFetcher launches a headless browser and connects to it
func NewRodFetcher(timeout time.Duration) (*RodFetcher, error) {
	l := launcher.New().
		Headless(true).
		NoSandbox(true).
		Leakless(false).
		Set("disable-blink-features", "AutomationControlled").
		Set("disable-dev-shm-usage").
		Set("disable-gpu").
		Set("no-first-run").
		Set("no-default-browser-check").
		Set("disable-extensions")

	// Prefer a system Chrome/Chromium over downloading one
	for _, path := range []string{
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/snap/bin/chromium",
	} {
		if _, err := os.Stat(path); err == nil {
			l = l.Bin(path)
			break
		}
	}

	browserURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	browser := rod.New().ControlURL(browserURL)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}

	return &RodFetcher{
		browser: browser,
		timeout: timeoutOrDefault(timeout),
	}, nil
}

// Close closes the browser
func (rf *RodFetcher) Close() error {
	if rf.browser != nil {
		return rf.browser.Close()
	}
	return nil
}

// Fetch implements the Fetcher interface
func (rf *RodFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	tab, err := rf.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, newFetchError(url, 0, fmt.Errorf("failed to create page: %w", err))
	}
	defer func() {
		if err := tab.Close(); err != nil {
			log.Printf("Warning: Failed to close page: %v\n", err)
		}
	}()
	page := tab.Context(ctx).Timeout(rf.timeout)

	// The document response carries the HTTP status the browser saw
	var status int
	waitDocument := page.EachEvent(func(e *proto.NetworkResponseReceived) bool {
		if e.Type == proto.NetworkResourceTypeDocument {
			status = e.Response.Status
			return true
		}
		return false
	})

	if err := page.Navigate(url); err != nil {
		return nil, newFetchError(url, 0, fmt.Errorf("failed to navigate: %w", err))
	}
	waitDocument()

	if err := page.WaitLoad(); err != nil {
		return nil, newFetchError(url, status, fmt.Errorf("failed to wait for page load: %w", err))
	}
	if !isSuccess(status) {
		return nil, newFetchError(url, status, fmt.Errorf("unexpected status %d", status))
	}

	html, err := page.HTML()
	if err != nil {
		return nil, newFetchError(url, status, fmt.Errorf("failed to get HTML: %w", err))
	}

	log.Printf("Fetched %s with browser (%d bytes)\n", url, len(html))
	return []byte(html), nil
}
