package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"hike-reviews/fetcher"
	"hike-reviews/summarizer"
)

func TestMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		contains string
	}{
		{"invalid url", fmt.Errorf("%w: %q", ErrInvalidURL, "x"), InvalidURLMessage},
		{"unavailable", fmt.Errorf("failed to summarize reviews: %w", summarizer.ErrUnavailable), "not available"},
		{"timeout", &fetcher.FetchError{URL: "u", Timeout: true, Err: context.DeadlineExceeded}, "did not respond in time"},
		{"status", &fetcher.FetchError{URL: "https://h/x", StatusCode: 503}, "HTTP 503"},
		{"network", &fetcher.FetchError{URL: "https://h/x", Err: errors.New("connection refused")}, "connection refused"},
		{"other", errors.New("boom"), "Something went wrong: boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Message(tt.err); !strings.Contains(got, tt.contains) {
				t.Errorf("Message() = %q, want it to contain %q", got, tt.contains)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	if got := Format(&Result{Summary: "There are no comments."}); got != "There are no comments." {
		t.Errorf("Format() = %q", got)
	}
	if got := Format(&Result{Summary: "Nice hike.", Summarized: true}); got != "Summary of the reviews:\nNice hike." {
		t.Errorf("Format() = %q", got)
	}
}
