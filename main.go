package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/outreachlabs/agent-task-sdk-go/pkg/agents"
	"github.com/outreachlabs/agent-task-sdk-go/pkg/api"
	"github.com/outreachlabs/agent-task-sdk-go/pkg/result"
	"github.com/outreachlabs/agent-task-sdk-go/pkg/runner"
)

func main() {
	// Create a platform API client
	client := api.NewClient(os.Getenv("PLATFORM_API_TOKEN"))
	if baseURL := os.Getenv("PLATFORM_API_URL"); baseURL != "" {
		client.SetBaseURL(baseURL)
	}

	// Create a runner with the client as its default
	r := runner.NewRunner().WithDefaultClient(client)

	// Observe state transitions through a slot
	slot := result.NewSlot()
	updates, cancel := slot.Subscribe()
	defer cancel()
	go func() {
		for outcome := range updates {
			fmt.Printf("%s: %s\n", agents.Scout.DisplayName(), outcome.State)
		}
	}()

	// Run the scout agent and wait for a terminal outcome
	outcome, err := agents.Scout.Run(context.Background(), r, &runner.RunOptions{
		UserID: os.Getenv("PLATFORM_USER_ID"),
		Slot:   slot,
		Params: map[string]interface{}{
			"project_id":  os.Getenv("PLATFORM_PROJECT_ID"),
			"campaign_id": os.Getenv("PLATFORM_CAMPAIGN_ID"),
		},
	})
	if err != nil {
		log.Fatalf("Failed to run agent: %v", err)
	}

	switch {
	case outcome.Succeeded():
		var anchors struct {
			Anchors int `json:"anchors"`
		}
		if err := outcome.Result.Decode(&anchors); err != nil {
			log.Fatalf("Failed to decode result: %v", err)
		}
		fmt.Printf("Scout found %d anchors\n", anchors.Anchors)
	case outcome.TimedOut():
		fmt.Println("Scout timed out; the job may still be running:", outcome.Reason)
	default:
		fmt.Println("Scout failed:", outcome.Reason)
	}
}
