package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bugsurgeon/gh-surgeon/internal/github"
	"github.com/bugsurgeon/gh-surgeon/internal/history"
)

func newSearchCmd() *cobra.Command {
	var (
		repo  string
		limit int
	)

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search the incident history (debugging/testing)",
		Long:  `Interactively search indexed incidents using semantic similarity.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			query := args[0]

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if !cfg.History.Enabled {
				return fmt.Errorf("incident history is disabled (set history.enabled)")
			}

			store, err := history.NewStore(cfg, dryRun)
			if err != nil {
				return fmt.Errorf("failed to create history store: %w", err)
			}
			defer store.Close()

			org, err := resolveSearchOrg(cfg.Repository.Org, repo)
			if err != nil {
				return err
			}

			results, err := store.FindSimilarByText(ctx, query, org, limit)
			if err != nil {
				return fmt.Errorf("search failed: %w", err)
			}

			if len(results) == 0 {
				fmt.Println("No similar incidents found")
				return nil
			}

			fmt.Printf("Found %d similar incidents:\n\n", len(results))
			for i, r := range results {
				status := "Open"
				if r.Incident.State == "closed" {
					status = "Closed"
				}
				fmt.Printf("%d. #%d - %s\n", i+1, r.Incident.Number, r.Incident.Title)
				fmt.Printf("   Repo: %s | Similarity: %.1f%% | Status: %s\n",
					r.Incident.FullRepo(), r.Score*100, status)
				fmt.Printf("   %s\n\n", r.Incident.URL)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&repo, "repo", "", "limit search to repository (owner/repo)")
	cmd.Flags().IntVar(&limit, "limit", 10, "maximum results to return")

	return cmd
}

// resolveSearchOrg picks the organization whose incident collection to
// query: the --repo flag wins over the configured repository. Incident
// collections are per-org, so searching without one is an error.
func resolveSearchOrg(configured, repoFlag string) (string, error) {
	if repoFlag != "" {
		org, _, err := github.ParseRepo(repoFlag)
		if err != nil {
			return "", err
		}
		return org, nil
	}
	if configured == "" {
		return "", fmt.Errorf("no organization to search: pass --repo or configure repository.org")
	}
	return configured, nil
}
