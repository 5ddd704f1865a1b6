package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPrompt asks for likes, dislikes and parking notes
const DefaultPrompt = "Please write a summary of the following reviews of a hike that includes what users liked about the hike, what they disliked about the hike, and a summary of how they described the parking lot."

// Config holds everything the hike review pipeline and its front ends need
type Config struct {
	Site       SiteConfig       `yaml:"site"`
	Fetch      FetchConfig      `yaml:"fetch"`
	Extract    ExtractConfig    `yaml:"extract"`
	Summarizer SummarizerConfig `yaml:"summarizer"`
	Telegram   TelegramConfig   `yaml:"telegram"`
}

// SiteConfig describes the review site and the hike paths it accepts
type SiteConfig struct {
	Origin    string   `yaml:"origin"`
	Host      string   `yaml:"host"`
	AreaCodes []string `yaml:"area_codes"`
}

// FetchConfig controls how pages are retrieved
type FetchConfig struct {
	Backend   string        `yaml:"backend"` // "http" or "browser"
	Timeout   time.Duration `yaml:"timeout"`
	UserAgent string        `yaml:"user_agent"`
}

// ExtractConfig selects the markup rules used to find reviews
type ExtractConfig struct {
	ListingMarker string `yaml:"listing_marker"`
	Rule          string `yaml:"rule"` // "font-size" or "xpath"
	FontSize      string `yaml:"font_size"`
	XPath         string `yaml:"xpath"`
}

// SummarizerConfig selects the text generation provider
type SummarizerConfig struct {
	Provider      string        `yaml:"provider"` // "gemini" or "ollama"
	Model         string        `yaml:"model"`
	OllamaHost    string        `yaml:"ollama_host"`
	OllamaModel   string        `yaml:"ollama_model"`
	Prompt        string        `yaml:"prompt"`
	MaxInputChars int           `yaml:"max_input_chars"`
	APIKeyEnv     string        `yaml:"api_key_env"`
	Timeout       time.Duration `yaml:"timeout"`
}

// TelegramConfig configures the bot front end
type TelegramConfig struct {
	TokenEnv     string  `yaml:"token_env"`
	AllowedUsers []int64 `yaml:"allowed_users"`
}

// LoadConfig loads configuration from a YAML file.
// Fields missing from the file keep their default values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := GetDefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// GetDefaultConfig returns a default configuration
func GetDefaultConfig() *Config {
	cfg := &Config{}
	cfg.Site.Origin = "https://www.hikingupward.com"
	cfg.Site.Host = "www.hikingupward.com"
	// Trail-system abbreviations used as the first path segment on the site
	cfg.Site.AreaCodes = []string{"GWNF", "GSMNP", "JNF", "MNF", "NNF", "PNF", "SNP", "WMNF", "UNF"}

	cfg.Fetch.Backend = "http"
	cfg.Fetch.Timeout = 30 * time.Second
	cfg.Fetch.UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	cfg.Extract.ListingMarker = "all_reviews"
	cfg.Extract.Rule = "font-size"
	cfg.Extract.FontSize = "1"
	cfg.Extract.XPath = `//font[@size="1"]`

	cfg.Summarizer.Provider = "gemini"
	cfg.Summarizer.Model = "gemini-1.5-flash"
	cfg.Summarizer.OllamaHost = "http://localhost:11434"
	cfg.Summarizer.OllamaModel = "llama3.2"
	cfg.Summarizer.Prompt = DefaultPrompt
	cfg.Summarizer.MaxInputChars = 0
	cfg.Summarizer.APIKeyEnv = "GOOGLE_API_KEY"
	cfg.Summarizer.Timeout = 2 * time.Minute

	cfg.Telegram.TokenEnv = "HIKE_REVIEWS_TG"
	return cfg
}

// Validate checks the values that have a fixed set of choices
func (c *Config) Validate() error {
	if c.Site.Origin == "" || c.Site.Host == "" {
		return fmt.Errorf("invalid config: site origin and host are required")
	}
	if len(c.Site.AreaCodes) == 0 {
		return fmt.Errorf("invalid config: at least one area code is required")
	}

	switch c.Fetch.Backend {
	case "http", "browser":
	default:
		return fmt.Errorf("invalid config: unknown fetch backend %q", c.Fetch.Backend)
	}
	if c.Fetch.Timeout <= 0 {
		return fmt.Errorf("invalid config: fetch timeout must be positive")
	}

	switch c.Extract.Rule {
	case "font-size", "xpath":
	default:
		return fmt.Errorf("invalid config: unknown extract rule %q", c.Extract.Rule)
	}

	switch c.Summarizer.Provider {
	case "gemini", "ollama":
	default:
		return fmt.Errorf("invalid config: unknown summarizer provider %q", c.Summarizer.Provider)
	}
	if c.Summarizer.MaxInputChars < 0 {
		return fmt.Errorf("invalid config: max_input_chars must not be negative")
	}
	if c.Summarizer.Timeout <= 0 {
		return fmt.Errorf("invalid config: summarizer timeout must be positive")
	}

	return nil
}
