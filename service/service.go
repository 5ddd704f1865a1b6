package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"hike-reviews/models"
	"hike-reviews/pipeline"
	"hike-reviews/summarizer"
	"hike-reviews/validator"
)

// ErrInvalidURL is returned for input that is not a hike page on the site
var ErrInvalidURL = errors.New("invalid hike URL")

// NoReviewTextMessage is reported when the reviews page exists but holds no review text
const NoReviewTextMessage = "The reviews page has no review text."

// Service runs a hike URL through validation, scraping and summarization
type Service struct {
	validator  *validator.Validator
	pipeline   *pipeline.Pipeline
	summarizer summarizer.Summarizer
}

// New creates a Service
func New(v *validator.Validator, p *pipeline.Pipeline, s summarizer.Summarizer) *Service {
	return &Service{
		validator:  v,
		pipeline:   p,
		summarizer: s,
	}
}

// Result is what a front end shows for one hike
type Result struct {
	Reviews *models.Reviews
	Summary string
	// Summarized is false when Summary is a fixed message rather than model output
	Summarized bool
}

// Valid reports whether rawURL (surrounding whitespace ignored) is an accepted hike URL
func (s *Service) Valid(rawURL string) bool {
	return s.validator.Validate(strings.TrimSpace(rawURL))
}

// Summarize validates rawURL, collects its reviews and summarizes them.
// Hikes without a reviews link or without review text are answered with a fixed
// message and no summarizer call.
func (s *Service) Summarize(ctx context.Context, rawURL string) (*Result, error) {
	hikeURL := strings.TrimSpace(rawURL)
	if !s.validator.Validate(hikeURL) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidURL, hikeURL)
	}

	reviews, err := s.pipeline.Run(ctx, hikeURL)
	if err != nil {
		return nil, err
	}

	result := &Result{Reviews: reviews}
	switch {
	case !reviews.HasListing:
		result.Summary = models.NoCommentsMessage
		return result, nil
	case strings.TrimSpace(reviews.Comments) == "":
		result.Summary = NoReviewTextMessage
		return result, nil
	}

	summary, err := s.summarizer.Summarize(ctx, reviews.Text())
	if err != nil {
		return nil, fmt.Errorf("failed to summarize reviews: %w", err)
	}
	result.Summary = summary
	result.Summarized = true
	return result, nil
}
