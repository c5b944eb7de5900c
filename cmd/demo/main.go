package main

import (
	"context"
	"fmt"
	"log"

	"github.com/w-h-a/premind"
	"github.com/w-h-a/premind/retriever"
	csvstore "github.com/w-h-a/premind/retriever/csv"
)

const recordsCSV = "data/policyholders.csv"

func main() {
	ctx := context.Background()

	// 1. Create Assistant (no provider key: the gateway serves canned replies)
	assistant := premind.New(
		csvstore.NewRetriever(
			retriever.WithLocation(recordsCSV),
		),
		nil,
	)

	fmt.Println("--- Premium Reminder Assistant Demo ---")

	// 2. Initialize The Session
	sessionID, err := assistant.StartSession(ctx, "P001")
	if err != nil {
		log.Fatalf("failed to start session: %v", err)
	}
	fmt.Printf("Started session %s for policy P001\n\n", sessionID)

	// 3. Simulate Conversation
	questions := []string{
		"Hi, what's my registered email?",
		"And which phone number do you have on file?",
		"When is my premium due?",
		"Please send me a payment reminder closer to the date.",
	}

	for _, msg := range questions {
		reply, _, err := assistant.Respond(ctx, sessionID, msg)
		if err != nil {
			log.Printf("assistant error: %v", err)
			continue
		}
		fmt.Printf("Policyholder: %s\nAgent: %s\n\n", msg, reply)
	}

	// 4. Show What Left The Process
	fmt.Println("--- Stored history (all a model could ever see) ---")
	turns, err := assistant.History(ctx, sessionID)
	if err != nil {
		log.Fatalf("failed to read history: %v", err)
	}
	for _, turn := range turns {
		fmt.Printf("%s: %s\n", turn.Speaker, turn.Text)
	}
}
