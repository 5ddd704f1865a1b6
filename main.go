package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"hike-reviews/bot"
	"hike-reviews/config"
	"hike-reviews/fetcher"
	"hike-reviews/pipeline"
	"hike-reviews/prompt"
	"hike-reviews/service"
	"hike-reviews/summarizer"
	"hike-reviews/validator"

	"github.com/joho/godotenv"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Parse command line arguments
	configPath := flag.String("config", "config.yaml", "Path to configuration file")
	envPath := flag.String("env", ".env", "Path to a .env file holding API keys")
	hikeURL := flag.String("url", "", "hikingupward.com hike URL to summarize once (optional, prompts interactively if not provided)")
	telegram := flag.Bool("telegram", false, "Run as a Telegram bot")
	flag.Parse()

	loadEnv(*envPath)
	cfg := loadConfig(*configPath)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc, cleanup, err := buildService(ctx, cfg)
	if err != nil {
		log.Printf("Error: %v\n", err)
		return 1
	}
	defer cleanup()

	switch {
	case *telegram:
		return runTelegramBot(ctx, cfg, svc)
	case *hikeURL != "":
		return runOnce(ctx, svc, *hikeURL)
	default:
		return runInteractive(ctx, svc, os.Stdin, os.Stdout)
	}
}

// loadEnv loads API keys from a .env file; a missing file is fine
func loadEnv(path string) {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Warning: Failed to load %s: %v\n", path, err)
	}
}

// loadConfig loads configuration from file or returns defaults
func loadConfig(configPath string) *config.Config {
	if _, err := os.Stat(configPath); err != nil {
		log.Println("Config file not found. Using default configuration.")
		return config.GetDefaultConfig()
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Printf("Warning: Failed to load config file: %v. Using defaults.\n", err)
		return config.GetDefaultConfig()
	}
	return cfg
}

// buildService wires validator, pipeline and summarizer from configuration
func buildService(ctx context.Context, cfg *config.Config) (*service.Service, func(), error) {
	f, closeFetcher, err := fetcher.New(cfg.Fetch)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := closeFetcher(); err != nil {
			log.Printf("Warning: Failed to close fetcher: %v\n", err)
		}
	}

	p, err := pipeline.NewFromConfig(cfg, f)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	s, err := summarizer.New(ctx, cfg.Summarizer)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to create summarizer: %w", err)
	}

	return service.New(validator.NewValidator(cfg.Site), p, s), cleanup, nil
}

// runOnce summarizes a single hike given on the command line
func runOnce(ctx context.Context, svc *service.Service, hikeURL string) int {
	result, err := svc.Summarize(ctx, hikeURL)
	if err != nil {
		fmt.Println(service.Message(err))
		return 1
	}
	fmt.Println(service.Format(result))
	return 0
}

// runInteractive prompts for hike URLs until the user declines another one
func runInteractive(ctx context.Context, svc *service.Service, in io.Reader, out io.Writer) int {
	p := prompt.New(in, out)

	for {
		hikeURL, err := p.AskURL("Please enter the url for the hikingupward.com hike.", service.InvalidURLMessage, svc.Valid)
		if errors.Is(err, io.EOF) {
			return 0
		}
		if err != nil {
			log.Printf("Error reading input: %v\n", err)
			return 1
		}

		result, err := svc.Summarize(ctx, hikeURL)
		if err != nil {
			fmt.Fprintln(out, service.Message(err))
		} else {
			fmt.Fprintf(out, "\n%s\n\n", service.Format(result))
		}

		if ctx.Err() != nil {
			return 1
		}

		again, err := p.AskYesNo("Do you want to enter another hike?")
		if err != nil || !again {
			return 0
		}
	}
}

// runTelegramBot serves hike summaries over Telegram until interrupted
func runTelegramBot(ctx context.Context, cfg *config.Config, svc *service.Service) int {
	token := os.Getenv(cfg.Telegram.TokenEnv)
	if token == "" {
		log.Printf("Error: %s environment variable is not set\n", cfg.Telegram.TokenEnv)
		return 1
	}

	b, err := bot.New(token, svc, cfg.Telegram.AllowedUsers)
	if err != nil {
		log.Printf("Error: %v\n", err)
		return 1
	}

	if err := b.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Printf("Error: %v\n", err)
		return 1
	}
	return 0
}
