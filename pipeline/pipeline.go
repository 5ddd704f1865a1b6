package pipeline

import (
	"context"
	"fmt"
	"log"

	"hike-reviews/config"
	"hike-reviews/fetcher"
	"hike-reviews/models"
	"hike-reviews/parser"
)

// Pipeline turns a validated hike URL into the text of its reviews.
// Each stage performs one blocking request; nothing is retried or cached.
type Pipeline struct {
	fetcher fetcher.Fetcher
	matcher parser.CommentMatcher
	origin  string
	marker  string
}

// New creates a Pipeline.
// origin is prefixed to the root-relative href of the reviews link.
func New(f fetcher.Fetcher, m parser.CommentMatcher, origin, marker string) *Pipeline {
	return &Pipeline{
		fetcher: f,
		matcher: m,
		origin:  origin,
		marker:  marker,
	}
}

// NewFromConfig wires a Pipeline from configuration
func NewFromConfig(cfg *config.Config, f fetcher.Fetcher) (*Pipeline, error) {
	m, err := parser.NewMatcher(cfg.Extract)
	if err != nil {
		return nil, fmt.Errorf("failed to create comment matcher: %w", err)
	}
	return New(f, m, cfg.Site.Origin, cfg.Extract.ListingMarker), nil
}

// LocateReviewListing fetches the hike page and returns the absolute URL of its
// "all reviews" page. found is false when the page has no such link.
func (p *Pipeline) LocateReviewListing(ctx context.Context, hikeURL string) (string, bool, error) {
	body, err := p.fetcher.Fetch(ctx, hikeURL)
	if err != nil {
		return "", false, err
	}

	link, found, err := parser.FindReviewListing(body, p.origin, p.marker)
	if err != nil {
		return "", false, fmt.Errorf("failed to read hike page %s: %w", hikeURL, err)
	}
	return link, found, nil
}

// ExtractComments fetches the reviews page and returns its review text
func (p *Pipeline) ExtractComments(ctx context.Context, listingURL string) (string, error) {
	body, err := p.fetcher.Fetch(ctx, listingURL)
	if err != nil {
		return "", err
	}

	comments, err := parser.ExtractComments(body, p.matcher)
	if err != nil {
		return "", fmt.Errorf("failed to read reviews page %s: %w", listingURL, err)
	}
	return comments, nil
}

// Run executes both stages for a hike
func (p *Pipeline) Run(ctx context.Context, hikeURL string) (*models.Reviews, error) {
	reviews := &models.Reviews{HikeURL: hikeURL}

	link, found, err := p.LocateReviewListing(ctx, hikeURL)
	if err != nil {
		return nil, err
	}
	if !found {
		log.Printf("No reviews link on %s\n", hikeURL)
		return reviews, nil
	}
	reviews.ListingURL = link
	reviews.HasListing = true

	comments, err := p.ExtractComments(ctx, link)
	if err != nil {
		return nil, err
	}
	reviews.Comments = comments
	log.Printf("Extracted %d characters of reviews from %s\n", len(comments), link)

	return reviews, nil
}
