package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bugsurgeon/gh-surgeon/internal/config"
	"github.com/bugsurgeon/gh-surgeon/internal/github"
	"github.com/bugsurgeon/gh-surgeon/internal/history"
	"github.com/bugsurgeon/gh-surgeon/internal/llm"
	"github.com/bugsurgeon/gh-surgeon/internal/surgeon"
	"github.com/bugsurgeon/gh-surgeon/pkg/models"
)

func newProcessCmd() *cobra.Command {
	var (
		eventPath string
		output    string
		execute   bool
	)

	cmd := &cobra.Command{
		Use:   "process",
		Short: "Process a single issue from a GitHub Action event",
		Long: `Process an issues event payload (opened or edited): analyze the issue,
post the analysis as a comment, and optionally open a pull request,
according to the publish configuration.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			if eventPath == "" {
				eventPath = os.Getenv("GITHUB_EVENT_PATH")
			}
			if eventPath == "" {
				return fmt.Errorf("event path not set (use --event-path or GITHUB_EVENT_PATH)")
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			// Without --execute the run is forced into dry-run: analysis
			// happens, writes do not.
			result, err := processEvent(ctx, cfg, eventPath, dryRun || !execute)
			if err != nil {
				return fmt.Errorf("processing failed: %w", err)
			}

			return printResult(result, output)
		},
	}

	cmd.Flags().StringVar(&eventPath, "event-path", "", "path to the GitHub event payload JSON")
	cmd.Flags().StringVarP(&output, "output", "o", "text", "output format (text, json)")
	cmd.Flags().BoolVar(&execute, "execute", false, "apply side effects (comments, labels, PRs)")

	return cmd
}

func processEvent(ctx context.Context, cfg *config.Config, eventPath string, dryRun bool) (*models.ProcessResult, error) {
	event, err := github.ParseEventFile(eventPath)
	if err != nil {
		return nil, err
	}

	if !event.IsIssueEvent() {
		return &models.ProcessResult{Skipped: true, SkipReason: "not an issue event"}, nil
	}
	if !event.IsOpenedEvent() && !event.IsEditedEvent() {
		return &models.ProcessResult{
			IssueNumber: event.Issue.Number,
			Skipped:     true,
			SkipReason:  fmt.Sprintf("unsupported action: %s", event.Action),
		}, nil
	}

	report := event.ToReport()
	result := &models.ProcessResult{IssueNumber: report.Number}

	gh, err := github.NewClient()
	if err != nil {
		return nil, err
	}

	var similar []models.SimilarIncident
	if cfg.History.Enabled {
		store, err := history.NewStore(cfg, dryRun)
		if err != nil {
			fmt.Printf("warning: incident history unavailable: %v\n", err)
		} else {
			defer store.Close()
			if similar, err = store.FindSimilar(ctx, report); err != nil {
				fmt.Printf("warning: similarity search failed: %v\n", err)
			}
			// Record the incoming issue so future analyses can find it.
			if err := store.Record(ctx, event.ToIncident()); err != nil {
				fmt.Printf("warning: could not index issue: %v\n", err)
			}
		}
	}
	result.SimilarFound = similar

	provider, err := llm.New(&cfg.LLM)
	if err != nil {
		return nil, err
	}
	defer provider.Close()

	reader := surgeon.NewRepoReader(gh, report.Org, report.Repo)
	a, err := surgeon.New(cfg, provider, reader).Analyze(ctx, report, similar)
	if err != nil {
		result.Error = err.Error()
		return result, nil
	}
	result.Analysis = a

	pub := surgeon.NewPublisher(gh, cfg, dryRun)

	if cfg.Publish.CommentEnabled {
		posted, err := pub.Comment(ctx, report, a, similar)
		if err != nil {
			result.Error = err.Error()
			return result, nil
		}
		result.CommentPosted = posted
	}

	if cfg.Publish.PREnabled {
		pr, err := pub.OpenAnalysisPR(ctx, report, a)
		if err != nil {
			// The comment already landed; report the PR failure without
			// failing the run.
			fmt.Printf("warning: could not open analysis PR: %v\n", err)
		} else if pr != nil {
			result.PullRequest = pr.HTMLURL
		}
	}

	return result, nil
}

func printResult(result *models.ProcessResult, output string) error {
	if output == "json" {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	if result.Skipped {
		fmt.Printf("Skipped: %s\n", result.SkipReason)
		return nil
	}
	if result.Error != "" {
		return fmt.Errorf("issue #%d: %s", result.IssueNumber, result.Error)
	}

	fmt.Printf("Analyzed issue #%d (confidence: %s)\n", result.IssueNumber, result.Analysis.Confidence)
	if len(result.SimilarFound) > 0 {
		fmt.Printf("Found %d similar past incidents\n", len(result.SimilarFound))
	}
	if result.CommentPosted {
		fmt.Println("Posted analysis comment")
	}
	if result.PullRequest != "" {
		fmt.Printf("Opened pull request: %s\n", result.PullRequest)
	}

	return nil
}
