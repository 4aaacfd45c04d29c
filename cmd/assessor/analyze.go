package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/job-assessor/internal/advisor"
	"github.com/jonathan/job-assessor/internal/config"
	"github.com/jonathan/job-assessor/internal/fetch"
	"github.com/jonathan/job-assessor/internal/llm"
	"github.com/jonathan/job-assessor/internal/observability"
	"github.com/jonathan/job-assessor/internal/types"
)

const maxConcurrentAnalyses = 3

var (
	analyzeJobURLs     []string
	analyzeProfilePath string
	analyzeTone        string
	analyzeUseBrowser  bool
	analyzeVerbose     bool
	analyzeConfigPath  string
	analyzeAPIKey      string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [posting files...]",
	Short: "Assess one or more job postings",
	Long: `Assess job postings from text files or URLs without touching the database.
Each posting gets a full report: verdict, red flags, skill match, client metrics and a draft proposal.`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringSliceVar(&analyzeJobURLs, "job-url", nil, "Fetch a posting from a URL (repeatable)")
	analyzeCmd.Flags().StringVar(&analyzeProfilePath, "profile", "", "Path to a JSON profile file to assess against")
	analyzeCmd.Flags().StringVar(&analyzeTone, "tone", "", "Proposal tone (bold, professional, friendly, minimalist, detailed, like-myself)")
	analyzeCmd.Flags().BoolVar(&analyzeUseBrowser, "use-browser", false, "Fall back to a headless browser for dynamic pages")
	analyzeCmd.Flags().BoolVarP(&analyzeVerbose, "verbose", "v", false, "Print the full report instead of the verdict summary")
	analyzeCmd.Flags().StringVar(&analyzeConfigPath, "config", "", "Path to config.json file")
	analyzeCmd.Flags().StringVar(&analyzeAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY)")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && len(analyzeJobURLs) == 0 {
		return fmt.Errorf("nothing to analyze: pass posting files or --job-url")
	}

	cfg, err := loadCLIConfig(analyzeConfigPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("use-browser") {
		cfg.UseBrowser = analyzeUseBrowser
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = analyzeVerbose
	}
	if analyzeAPIKey != "" {
		cfg.APIKey = analyzeAPIKey
	}
	if cfg.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}

	tone := types.ProposalTone(analyzeTone)
	if analyzeTone != "" && !tone.Valid() {
		return &types.InvalidEnumError{Field: "tone", Value: analyzeTone}
	}

	var profile *types.Profile
	if analyzeProfilePath != "" {
		profile, err = loadProfileFile(analyzeProfilePath)
		if err != nil {
			return err
		}
	}

	ctx := context.Background()

	postings, err := collectPostings(ctx, args, analyzeJobURLs, cfg)
	if err != nil {
		return err
	}

	client, err := llm.NewClient(ctx, llm.DefaultConfig().WithOverrides(cfg.Models), cfg.APIKey)
	if err != nil {
		return fmt.Errorf("failed to create model client: %w", err)
	}
	defer func() { _ = client.Close() }()
	adv := advisor.New(client)

	results := make([]*types.AnalysisResult, len(postings))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentAnalyses)
	for i, posting := range postings {
		g.Go(func() error {
			result, err := adv.AnalyzeJob(gctx, &types.JobInput{
				RawText:       posting.text,
				ActiveProfile: profile,
				PreferredTone: tone,
			})
			if err != nil {
				return fmt.Errorf("analysis of %s failed: %w", posting.source, err)
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	printer := observability.NewPrinter(os.Stdout)
	for i, result := range results {
		if len(postings) > 1 {
			fmt.Printf("\n=== %s ===\n", postings[i].source)
		}
		if cfg.Verbose {
			printer.PrintReport(result)
		} else {
			printer.PrintVerdict(result)
			printer.PrintFlags(result)
		}
	}
	return nil
}

type posting struct {
	source string
	text   string
}

// collectPostings reads file arguments, then fetches URLs. Fetches run
// sequentially since the browser fallback is heavyweight.
func collectPostings(ctx context.Context, files, urls []string, cfg *config.Config) ([]posting, error) {
	postings := make([]posting, 0, len(files)+len(urls))

	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read posting file %s: %w", path, err)
		}
		if strings.TrimSpace(string(data)) == "" {
			return nil, fmt.Errorf("posting file %s is empty", path)
		}
		postings = append(postings, posting{source: path, text: string(data)})
	}

	for _, rawURL := range urls {
		opts := fetch.DefaultOptions()
		opts.UseBrowser = cfg.UseBrowser
		opts.Verbose = cfg.Verbose

		fetchCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
		text, err := fetch.Posting(fetchCtx, rawURL, opts)
		cancel()
		if err != nil {
			return nil, err
		}
		postings = append(postings, posting{source: rawURL, text: text})
	}

	return postings, nil
}

func loadProfileFile(path string) (*types.Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile file %s: %w", path, err)
	}
	var profile types.Profile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("failed to parse profile JSON: %w", err)
	}
	return &profile, nil
}

// loadCLIConfig loads the optional config file and fills the API key from
// the environment.
func loadCLIConfig(path string) (*config.Config, error) {
	cfg := &config.Config{}
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		if err := loaded.Validate(); err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	return cfg, nil
}
