package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"hike-reviews/config"
	"hike-reviews/fetcher"
	"hike-reviews/models"
	"hike-reviews/parser"
	"hike-reviews/pipeline"
	"hike-reviews/summarizer"
	"hike-reviews/validator"
)

type pageFetcher map[string]string

func (p pageFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	page, ok := p[url]
	if !ok {
		return nil, &fetcher.FetchError{URL: url, StatusCode: http.StatusNotFound}
	}
	return []byte(page), nil
}

type recordingSummarizer struct {
	calls []string
	reply string
	err   error
}

func (r *recordingSummarizer) Summarize(ctx context.Context, text string) (string, error) {
	r.calls = append(r.calls, text)
	return r.reply, r.err
}

const (
	hikeURL    = "https://www.hikingupward.com/GWNF/trail/"
	listingURL = "https://www.hikingupward.com/GWNF/trail/all_reviews.php"
)

func newTestService(pages pageFetcher, s summarizer.Summarizer) *Service {
	cfg := config.GetDefaultConfig()
	p := pipeline.New(pages, parser.NewFontSizeMatcher("1"), cfg.Site.Origin, cfg.Extract.ListingMarker)
	return New(validator.NewValidator(cfg.Site), p, s)
}

func TestSummarize(t *testing.T) {
	pages := pageFetcher{
		hikeURL:    `<a href="/GWNF/trail/all_reviews.php">all</a>`,
		listingURL: `<font size="1">Great views</font><font size="1">Muddy trail</font>`,
	}
	sum := &recordingSummarizer{reply: "Hikers liked the views."}

	result, err := newTestService(pages, sum).Summarize(context.Background(), "  "+hikeURL+"\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Summarized || result.Summary != "Hikers liked the views." {
		t.Errorf("unexpected result: %+v", result)
	}
	if len(sum.calls) != 1 || sum.calls[0] != "Great views Muddy trail" {
		t.Errorf("summarizer calls = %q", sum.calls)
	}
}

func TestSummarize_Outcomes(t *testing.T) {
	tests := []struct {
		name        string
		url         string
		pages       pageFetcher
		wantErr     error
		wantFetch   bool
		wantSummary string
	}{
		{
			name:    "invalid url",
			url:     "http://www.hikingupward.com/GWNF/trail/",
			wantErr: ErrInvalidURL,
		},
		{
			name:      "hike page missing",
			url:       hikeURL,
			pages:     pageFetcher{},
			wantFetch: true,
		},
		{
			name:        "no listing",
			url:         hikeURL,
			pages:       pageFetcher{hikeURL: `<p>nothing</p>`},
			wantSummary: models.NoCommentsMessage,
		},
		{
			name: "empty listing",
			url:  hikeURL,
			pages: pageFetcher{
				hikeURL:    `<a href="/GWNF/trail/all_reviews.php">all</a>`,
				listingURL: `<font size="2">header only</font>`,
			},
			wantSummary: NoReviewTextMessage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sum := &recordingSummarizer{reply: "unused"}
			result, err := newTestService(tt.pages, sum).Summarize(context.Background(), tt.url)

			switch {
			case tt.wantErr != nil:
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("expected %v, got %v", tt.wantErr, err)
				}
			case tt.wantFetch:
				var fetchErr *fetcher.FetchError
				if !errors.As(err, &fetchErr) {
					t.Errorf("expected *fetcher.FetchError, got %v", err)
				}
			default:
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if result.Summarized || result.Summary != tt.wantSummary {
					t.Errorf("unexpected result: %+v", result)
				}
			}
			if len(sum.calls) != 0 {
				t.Errorf("summarizer should not be called, got %q", sum.calls)
			}
		})
	}
}

func TestSummarize_Unavailable(t *testing.T) {
	pages := pageFetcher{
		hikeURL:    `<a href="/GWNF/trail/all_reviews.php">all</a>`,
		listingURL: `<font size="1">Great views</font>`,
	}
	s := summarizer.Unavailable{Err: summarizer.ErrUnavailable}

	_, err := newTestService(pages, s).Summarize(context.Background(), hikeURL)
	if !errors.Is(err, summarizer.ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
}

func TestValid(t *testing.T) {
	s := newTestService(pageFetcher{}, &recordingSummarizer{})
	if !s.Valid(" " + hikeURL + " ") {
		t.Error("expected padded URL to be valid")
	}
	if s.Valid("https://www.hikingupward.com/") {
		t.Error("expected root URL to be invalid")
	}
}
