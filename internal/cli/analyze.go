package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"github.com/bugsurgeon/gh-surgeon/internal/format"
	"github.com/bugsurgeon/gh-surgeon/internal/github"
	"github.com/bugsurgeon/gh-surgeon/internal/history"
	"github.com/bugsurgeon/gh-surgeon/internal/llm"
	"github.com/bugsurgeon/gh-surgeon/internal/surgeon"
	"github.com/bugsurgeon/gh-surgeon/pkg/models"
)

func newAnalyzeCmd() *cobra.Command {
	var (
		reportFile string
		issue      int
		repo       string
		contextDir string
		output     string
		comment    bool
		openPR     bool
		noHistory  bool
		iterations int
	)

	cmd := &cobra.Command{
		Use:   "analyze [report text]",
		Short: "Analyze a bug report and identify the root cause",
		Long: `Analyze a bug report given as an argument, read from a file, or fetched
from a GitHub issue. With no source given, the report is read from stdin
when input is piped. Files mentioned in the report are pulled from the
repository (or from --context locally) and handed to the model.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			if iterations > 0 {
				cfg.React.MaxIterations = iterations
			}

			if repo != "" {
				org, name, err := github.ParseRepo(repo)
				if err != nil {
					return err
				}
				cfg.Repository.Org = org
				cfg.Repository.Repo = name
			}

			// Resolve the bug report from one of the three sources.
			var report *models.BugReport
			var gh *github.Client
			switch {
			case issue > 0:
				if !cfg.Repository.Configured() {
					return fmt.Errorf("--issue requires --repo or a configured repository")
				}
				gh, err = github.NewClient()
				if err != nil {
					return err
				}
				report, err = gh.GetIssue(ctx, cfg.Repository.Org, cfg.Repository.Repo, issue)
				if err != nil {
					return fmt.Errorf("failed to fetch issue #%d: %w", issue, err)
				}
			case reportFile == "-":
				data, err := io.ReadAll(os.Stdin)
				if err != nil {
					return fmt.Errorf("failed to read stdin: %w", err)
				}
				report = &models.BugReport{Text: string(data)}
			case reportFile != "":
				data, err := os.ReadFile(reportFile)
				if err != nil {
					return fmt.Errorf("failed to read report file: %w", err)
				}
				report = &models.BugReport{Text: string(data)}
			case len(args) == 1 && strings.TrimSpace(args[0]) != "":
				report = &models.BugReport{Text: args[0]}
			case stdinPiped():
				data, err := io.ReadAll(os.Stdin)
				if err != nil {
					return fmt.Errorf("failed to read stdin: %w", err)
				}
				report = &models.BugReport{Text: string(data)}
			default:
				return fmt.Errorf("provide a bug report: as an argument, via --file, via --issue, or on stdin")
			}

			// Files come from the repository when one is configured, and from
			// the local working tree otherwise.
			var reader surgeon.ContentReader
			if cfg.Repository.Configured() {
				if gh == nil {
					gh, err = github.NewClient()
					if err != nil {
						return err
					}
				}
				reader = surgeon.NewRepoReader(gh, cfg.Repository.Org, cfg.Repository.Repo)
			} else {
				reader = surgeon.NewLocalReader(contextDir)
			}

			var similar []models.SimilarIncident
			if cfg.History.Enabled && !noHistory {
				store, err := history.NewStore(cfg, dryRun)
				if err != nil {
					fmt.Printf("warning: incident history unavailable: %v\n", err)
				} else {
					defer store.Close()
					similar, err = store.FindSimilar(ctx, report)
					if err != nil {
						fmt.Printf("warning: similarity search failed: %v\n", err)
					}
				}
			}

			provider, err := llm.New(&cfg.LLM)
			if err != nil {
				return err
			}
			defer provider.Close()

			s := spinner.New(spinner.CharSets[11], 100*time.Millisecond)
			s.Suffix = " Analyzing bug report..."
			s.Start()

			a, err := surgeon.New(cfg, provider, reader).Analyze(ctx, report, similar)
			s.Stop()
			if err != nil {
				return err
			}

			if err := format.DisplayAnalysis(a, similar, output); err != nil {
				return err
			}

			if (comment || openPR) && report.FromIssue() {
				pub := surgeon.NewPublisher(gh, cfg, dryRun)
				if comment {
					posted, err := pub.Comment(ctx, report, a, similar)
					if err != nil {
						return err
					}
					if posted {
						fmt.Printf("Posted analysis comment on #%d\n", report.Number)
					} else if !dryRun {
						fmt.Printf("Skipped comment on #%d (recent analysis exists)\n", report.Number)
					}
				}
				if openPR {
					pr, err := pub.OpenAnalysisPR(ctx, report, a)
					if err != nil {
						return err
					}
					if pr != nil {
						fmt.Printf("Opened pull request: %s\n", pr.HTMLURL)
					}
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&reportFile, "file", "", "read the bug report from a file")
	cmd.Flags().IntVar(&issue, "issue", 0, "fetch the bug report from a GitHub issue number")
	cmd.Flags().StringVar(&repo, "repo", "", "target repository (owner/repo)")
	cmd.Flags().StringVar(&contextDir, "context", "", "local directory to read mentioned files from")
	cmd.Flags().StringVarP(&output, "output", "o", "human", "output format (human, json, yaml)")
	cmd.Flags().BoolVar(&comment, "comment", false, "post the analysis as an issue comment")
	cmd.Flags().BoolVar(&openPR, "pr", false, "open a pull request with the full analysis")
	cmd.Flags().BoolVar(&noHistory, "no-history", false, "skip the incident history lookup")
	cmd.Flags().IntVar(&iterations, "react-iterations", 0, "override the tool-loop iteration limit")

	return cmd
}

// stdinPiped reports whether stdin carries piped input rather than a terminal
func stdinPiped() bool {
	info, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice == 0
}
