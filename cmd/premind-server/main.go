package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/w-h-a/premind"
	"github.com/w-h-a/premind/generator"
	anthropicgenerator "github.com/w-h-a/premind/generator/anthropic"
	googlegenerator "github.com/w-h-a/premind/generator/google"
	openaigenerator "github.com/w-h-a/premind/generator/openai"
	"github.com/w-h-a/premind/internal/logger"
	"github.com/w-h-a/premind/retriever"
	csvstore "github.com/w-h-a/premind/retriever/csv"
	postgresstore "github.com/w-h-a/premind/retriever/postgres"
	httpserver "github.com/w-h-a/premind/server/http"
)

var (
	cfg struct {
		// Server config
		Address  string `help:"Address for the HTTP server to bind" default:":8080" env:"PREMIND_ADDRESS"`
		LogLevel string `help:"Log level: debug, info, warn, or error" default:"info" env:"PREMIND_LOG_LEVEL"`
		LogJson  bool   `help:"Emit logs as JSON" default:"false" env:"PREMIND_LOG_JSON"`

		// Record store config
		Records     string `help:"Path to the policyholder CSV" default:"data/policyholders.csv" env:"PREMIND_RECORDS"`
		RecordsDsn  string `help:"Postgres DSN for the record store (CSV store when empty)" default:"" env:"PREMIND_RECORDS_DSN"`
		SeedRecords bool   `help:"Seed the Postgres record store from the CSV at startup" default:"false"`
		EmbedderKey string `help:"API key for the Postgres store's embedder" default:"" env:"OPENAI_API_KEY"`
		Embedder    string `help:"Model identifier for the Postgres store's embedder" default:"text-embedding-3-small" env:"PREMIND_EMBEDDER"`

		// Generator config
		Provider     string `help:"Model provider: google, openai, anthropic, or empty for canned replies" default:"" env:"PREMIND_PROVIDER"`
		GeneratorKey string `help:"API key for the model provider" default:"" env:"PREMIND_API_KEY"`
		Generator    string `help:"Model identifier for the provider" default:"" env:"PREMIND_MODEL"`
	}
)

func main() {
	// Parse inputs
	_ = godotenv.Load()
	_ = kong.Parse(&cfg)
	ctx := context.Background()

	l := logger.New(ctx, cfg.LogLevel, cfg.LogJson)

	// Create the assistant
	assistant := premind.New(newRetriever(ctx), newGenerator())

	// Create the server
	server := httpserver.NewServer(
		assistant,
		httpserver.WithAddress(cfg.Address),
		httpserver.WithLogger(l),
		httpserver.WithMiddleware(httpserver.LoggingMiddleware(l)),
	)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)

	go func() {
		if err := server.Run(); err != nil {
			l.Fatal(fmt.Sprintf("failed to run server: %v", err))
		}
	}()

	<-stop
	l.Info("shutting down server")

	if err := server.Stop(ctx); err != nil {
		l.Error(fmt.Sprintf("server forced to shut down: %v", err))
	}
}

func newRetriever(ctx context.Context) retriever.Retriever {
	if len(cfg.RecordsDsn) == 0 {
		return csvstore.NewRetriever(
			retriever.WithLocation(cfg.Records),
		)
	}

	store := postgresstore.NewRetriever(
		retriever.WithLocation(cfg.RecordsDsn),
		retriever.WithApiKey(cfg.EmbedderKey),
		retriever.WithModel(cfg.Embedder),
	)

	if cfg.SeedRecords {
		records, err := csvstore.ReadFile(cfg.Records)
		if err != nil {
			log.Fatalf("failed to read seed records: %v", err)
		}
		if err := store.(retriever.Seeder).Seed(ctx, records); err != nil {
			log.Fatalf("failed to seed record store: %v", err)
		}
	}

	return store
}

func newGenerator() generator.Generator {
	provider := strings.ToLower(cfg.Provider)
	if len(provider) == 0 {
		return nil
	}

	opts := []generator.Option{
		generator.WithApiKey(apiKey(provider)),
		generator.WithModel(model(provider)),
	}

	switch provider {
	case "google":
		return googlegenerator.NewGenerator(opts...)
	case "openai":
		return openaigenerator.NewGenerator(opts...)
	case "anthropic":
		return anthropicgenerator.NewGenerator(opts...)
	default:
		log.Fatalf("unknown provider %q", cfg.Provider)
		return nil
	}
}

func apiKey(provider string) string {
	if len(cfg.GeneratorKey) > 0 {
		return cfg.GeneratorKey
	}

	switch provider {
	case "google":
		return os.Getenv("GEMINI_API_KEY")
	case "openai":
		return os.Getenv("OPENAI_API_KEY")
	case "anthropic":
		return os.Getenv("ANTHROPIC_API_KEY")
	}

	return ""
}

func model(provider string) string {
	if len(cfg.Generator) > 0 {
		return cfg.Generator
	}

	switch provider {
	case "google":
		return "gemini-1.5-flash"
	case "openai":
		return "gpt-3.5-turbo"
	case "anthropic":
		return "claude-3-5-haiku-latest"
	}

	return ""
}
