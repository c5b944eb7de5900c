package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/w-h-a/premind"
	"github.com/w-h-a/premind/generator"
	anthropicgenerator "github.com/w-h-a/premind/generator/anthropic"
	googlegenerator "github.com/w-h-a/premind/generator/google"
	openaigenerator "github.com/w-h-a/premind/generator/openai"
	"github.com/w-h-a/premind/retriever"
	csvstore "github.com/w-h-a/premind/retriever/csv"
)

var (
	cfg struct {
		// Record store config
		Records string `help:"Path to the policyholder CSV" default:"data/policyholders.csv" env:"PREMIND_RECORDS"`

		// Generator config
		Provider     string `help:"Model provider: google, openai, anthropic, or empty for canned replies" default:"" env:"PREMIND_PROVIDER"`
		GeneratorKey string `help:"API key for the model provider" default:"" env:"PREMIND_API_KEY"`
		Generator    string `help:"Model identifier for the provider" default:"" env:"PREMIND_MODEL"`

		// Session config
		PolicyId string `help:"Policy id to converse about (prompted for when empty)" default:""`
	}
)

func main() {
	// Parse inputs
	_ = godotenv.Load()
	_ = kong.Parse(&cfg)
	ctx := context.Background()

	// Create the assistant over the CSV record store
	assistant := premind.New(
		csvstore.NewRetriever(
			retriever.WithLocation(cfg.Records),
		),
		newGenerator(),
	)

	reader := bufio.NewReader(os.Stdin)

	policyID := cfg.PolicyId
	if len(policyID) == 0 {
		fmt.Print("Policy id> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			log.Fatalf("failed to read policy id: %v", err)
		}
		policyID = strings.TrimSpace(line)
	}

	sessionID, err := assistant.StartSession(ctx, policyID)
	if err != nil {
		log.Fatalf("failed to start session: %v", err)
	}
	fmt.Printf("Starting conversation with policy %s. (PII is never sent to the model.)\n", policyID)

	for {
		fmt.Print("Policyholder> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			fmt.Println("Ending conversation")
			return
		}

		reply, ended, err := assistant.Respond(ctx, sessionID, line)
		if err != nil {
			fmt.Println("Error responding:", err)
			continue
		}
		if ended {
			fmt.Println("Ending conversation")
			return
		}

		fmt.Printf("\nAgent> %s\n\n", reply)
	}
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
