package summarizer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"hike-reviews/config"
)

type ollamaRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type ollamaResponse struct {
	Response string `json:"response"`
}

// Ollama summarizes with a local Ollama instance
type Ollama struct {
	host          string
	model         string
	prompt        string
	maxInputChars int
	timeout       time.Duration
	client        *http.Client
}

// NewOllama creates an Ollama summarizer
func NewOllama(cfg config.SummarizerConfig) *Ollama {
	return &Ollama{
		host:          cfg.OllamaHost,
		model:         cfg.OllamaModel,
		prompt:        cfg.Prompt,
		maxInputChars: cfg.MaxInputChars,
		timeout:       timeoutOrDefault(cfg.Timeout),
		client:        http.DefaultClient,
	}
}

// Summarize implements Summarizer
func (o *Ollama) Summarize(ctx context.Context, text string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	body, err := json.Marshal(ollamaRequest{
		Model:  o.model,
		Prompt: buildPrompt(o.prompt, text, o.maxInputChars),
		Stream: false,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.host+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", deadlineError(ctx, "ollama", o.timeout, err)
		}
		return "", fmt.Errorf("%w: ollama request: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ollama returned HTTP %d", resp.StatusCode)
	}

	var result ollamaResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		if ctx.Err() != nil {
			return "", deadlineError(ctx, "ollama", o.timeout, err)
		}
		return "", fmt.Errorf("decode ollama response: %w", err)
	}

	return result.Response, nil
}
