package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/job-assessor/internal/advisor"
	"github.com/jonathan/job-assessor/internal/llm"
)

var (
	extractConfigPath string
	extractAPIKey     string
)

var extractCmd = &cobra.Command{
	Use:   "extract [bio file]",
	Short: "Extract profile details from a bio",
	Long:  `Extract a structured profile (name, headline, skills, rate) from free-form bio text. Reads from the given file, or stdin when no file is passed.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runExtract,
}

func init() {
	extractCmd.Flags().StringVar(&extractConfigPath, "config", "", "Path to config.json file")
	extractCmd.Flags().StringVar(&extractAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY)")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(_ *cobra.Command, args []string) error {
	var bio []byte
	var err error
	if len(args) == 1 {
		bio, err = os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read bio file %s: %w", args[0], err)
		}
	} else {
		bio, err = io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read bio from stdin: %w", err)
		}
	}
	if strings.TrimSpace(string(bio)) == "" {
		return fmt.Errorf("bio text is empty")
	}

	cfg, err := loadCLIConfig(extractConfigPath)
	if err != nil {
		return err
	}
	if extractAPIKey != "" {
		cfg.APIKey = extractAPIKey
	}
	if cfg.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}

	ctx := context.Background()
	client, err := llm.NewClient(ctx, llm.DefaultConfig().WithOverrides(cfg.Models), cfg.APIKey)
	if err != nil {
		return fmt.Errorf("failed to create model client: %w", err)
	}
	defer func() { _ = client.Close() }()

	details, err := advisor.New(client).ExtractProfileDetails(ctx, string(bio))
	if err != nil {
		return err
	}

	fmt.Printf("Name:     %s\n", details.Name)
	fmt.Printf("Headline: %s\n", details.Headline)
	fmt.Printf("Rate:     %s\n", details.Rate)
	fmt.Printf("Skills:   %s\n", strings.Join(details.Skills, ", "))
	return nil
}
