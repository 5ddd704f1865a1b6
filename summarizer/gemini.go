package summarizer

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"hike-reviews/config"

	"google.golang.org/api/generativelanguage/v1beta"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// Gemini summarizes with Google's Generative Language API
type Gemini struct {
	service       *generativelanguage.Service
	model         string
	prompt        string
	maxInputChars int
	timeout       time.Duration
}

// NewGemini creates a Gemini summarizer. An empty apiKey yields an error wrapping ErrUnavailable.
func NewGemini(ctx context.Context, cfg config.SummarizerConfig, apiKey string, opts ...option.ClientOption) (*Gemini, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, fmt.Errorf("%w: please save a valid Google API key in a .env file with the variable name %q", ErrUnavailable, cfg.APIKeyEnv)
	}

	opts = append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	service, err := generativelanguage.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create generative language service: %w", err)
	}

	return &Gemini{
		service:       service,
		model:         cfg.Model,
		prompt:        cfg.Prompt,
		maxInputChars: cfg.MaxInputChars,
		timeout:       timeoutOrDefault(cfg.Timeout),
	}, nil
}

// Summarize implements Summarizer
func (g *Gemini) Summarize(ctx context.Context, text string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	req := &generativelanguage.GenerateContentRequest{
		Contents: []*generativelanguage.Content{
			{
				Role:  "user",
				Parts: []*generativelanguage.Part{{Text: buildPrompt(g.prompt, text, g.maxInputChars)}},
			},
		},
	}

	resp, err := g.service.Models.GenerateContent("models/"+g.model, req).Context(ctx).Do()
	if err != nil {
		if ctx.Err() != nil {
			return "", deadlineError(ctx, "gemini", g.timeout, err)
		}
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) && isCredentialError(apiErr) {
			return "", fmt.Errorf("%w: gemini rejected the API key: %s", ErrUnavailable, apiErr.Message)
		}
		return "", fmt.Errorf("gemini request failed: %w", err)
	}

	var sb strings.Builder
	if len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil {
		for _, part := range resp.Candidates[0].Content.Parts {
			sb.WriteString(part.Text)
		}
	}
	if sb.Len() == 0 {
		if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			return "", fmt.Errorf("gemini blocked the prompt: %s", resp.PromptFeedback.BlockReason)
		}
		return "", fmt.Errorf("gemini returned no text")
	}

	return sb.String(), nil
}

func isCredentialError(apiErr *googleapi.Error) bool {
	switch apiErr.Code {
	case http.StatusUnauthorized, http.StatusForbidden:
		return true
	case http.StatusBadRequest:
		return strings.Contains(strings.ToLower(apiErr.Message), "api key")
	}
	return false
}
