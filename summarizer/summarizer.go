package summarizer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"hike-reviews/config"
)

// ErrUnavailable is returned when the provider cannot be used, usually
// because no valid credential is configured
var ErrUnavailable = errors.New("summarizer unavailable")

// Summarizer turns review text into a natural-language summary
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// New builds the summarizer selected by cfg.Provider.
// A missing credential is not an error here; Summarize reports ErrUnavailable instead,
// so front ends can still scrape and explain what is missing.
func New(ctx context.Context, cfg config.SummarizerConfig) (Summarizer, error) {
	switch cfg.Provider {
	case "gemini", "":
		g, err := NewGemini(ctx, cfg, os.Getenv(cfg.APIKeyEnv))
		if errors.Is(err, ErrUnavailable) {
			return Unavailable{Err: err}, nil
		}
		if err != nil {
			return nil, err
		}
		return g, nil
	case "ollama":
		return NewOllama(cfg), nil
	default:
		return nil, fmt.Errorf("unknown summarizer provider %q", cfg.Provider)
	}
}

// Unavailable always fails with Err
type Unavailable struct {
	Err error
}

// Summarize implements Summarizer
func (u Unavailable) Summarize(ctx context.Context, text string) (string, error) {
	return "", u.Err
}

// Used when the configuration leaves the timeout unset
const defaultTimeout = 2 * time.Minute

func timeoutOrDefault(timeout time.Duration) time.Duration {
	if timeout <= 0 {
		return defaultTimeout
	}
	return timeout
}

// deadlineError reports a request that ran out of its own time budget.
// Cancellation by the caller is returned unchanged.
func deadlineError(ctx context.Context, provider string, timeout time.Duration, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%s request timed out after %s: %w", provider, timeout, context.DeadlineExceeded)
	}
	return err
}

// buildPrompt prefixes the instruction and caps the review text at maxChars runes (0 = no cap)
func buildPrompt(prompt, text string, maxChars int) string {
	if maxChars > 0 {
		runes := []rune(text)
		if len(runes) > maxChars {
			text = string(runes[:maxChars])
		}
	}
	return prompt + ": " + text
}
