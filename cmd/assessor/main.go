// Package main provides the entry point for the job assessor CLI and server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "assessor",
	Short: "Job assessor for freelancers",
	Long:  "Job assessor evaluates freelance job postings, drafts proposals and tracks a pipeline of leads, via REST API or one-shot CLI commands.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
