package main

import (
	"context"
	"fmt"
	"os"

	"github.com/Sumitkumar005/voiceclone-studio/cmd/voiceclone/internal"
)

// usageCmd prints the account's generation quota.
func usageCmd() {
	app, err := internal.NewApp()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	snap, err := app.API.Usage(context.Background())
	if err != nil {
		fmt.Printf("Error fetching usage: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("\nGeneration quota:")
	fmt.Println("-----------------")
	fmt.Printf("  Tier:      %s\n", snap.Tier)
	fmt.Printf("  Used:      %d / %d\n", snap.Used, snap.Limit)
	fmt.Printf("  Remaining: %d\n", snap.Remaining)
	if snap.NearLimit() {
		fmt.Println("  Note: you are close to your limit. Consider upgrading your plan.")
	}
}
