package service

import (
	"errors"
	"fmt"

	"hike-reviews/fetcher"
	"hike-reviews/summarizer"
)

// InvalidURLMessage is the guidance shown when input is rejected
const InvalidURLMessage = "Please enter a valid url for a hike on hikingupward.com."

// SummaryHeader precedes model output in front ends
const SummaryHeader = "Summary of the reviews:"

// Message turns a Summarize error into text a user can act on
func Message(err error) string {
	var fetchErr *fetcher.FetchError
	switch {
	case errors.Is(err, ErrInvalidURL):
		return InvalidURLMessage
	case errors.Is(err, summarizer.ErrUnavailable):
		return fmt.Sprintf("The summarizer is not available: %v", err)
	case errors.Is(err, fetcher.ErrTimeout):
		return "hikingupward.com did not respond in time. Please try again later."
	case errors.As(err, &fetchErr) && fetchErr.StatusCode != 0:
		return fmt.Sprintf("Could not load %s (HTTP %d).", fetchErr.URL, fetchErr.StatusCode)
	case errors.As(err, &fetchErr):
		return fmt.Sprintf("Could not load %s: %v", fetchErr.URL, fetchErr.Err)
	default:
		return fmt.Sprintf("Something went wrong: %v", err)
	}
}

// Format renders a result for display
func Format(result *Result) string {
	if !result.Summarized {
		return result.Summary
	}
	return SummaryHeader + "\n" + result.Summary
}
