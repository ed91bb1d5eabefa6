package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bugsurgeon/gh-surgeon/internal/github"
	"github.com/bugsurgeon/gh-surgeon/internal/history"
)

func newIndexCmd() *cobra.Command {
	var (
		repo      string
		batchSize int
	)

	cmd := &cobra.Command{
		Use:   "index",
		Short: "Bulk index existing issues from a repository",
		Long:  `Index all existing issues from a repository into the incident history for similarity lookups.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if !cfg.History.Enabled {
				return fmt.Errorf("incident history is disabled (set history.enabled)")
			}

			org, name, err := github.ParseRepo(repo)
			if err != nil {
				return err
			}

			gh, err := github.NewClient()
			if err != nil {
				return err
			}

			store, err := history.NewStore(cfg, dryRun)
			if err != nil {
				return fmt.Errorf("failed to create history store: %w", err)
			}
			defer store.Close()

			stats, err := store.IndexRepo(ctx, gh, org, name, batchSize)
			if err != nil {
				return fmt.Errorf("indexing failed: %w", err)
			}

			fmt.Printf("Indexed %d/%d issues (%d skipped, %d errors) in %dms\n",
				stats.Indexed, stats.TotalIssues, stats.Skipped, stats.Errors, stats.DurationMs)

			return nil
		},
	}

	cmd.Flags().StringVar(&repo, "repo", "", "repository to index (owner/repo)")
	cmd.Flags().IntVar(&batchSize, "batch-size", 100, "number of issues to fetch per batch")
	_ = cmd.MarkFlagRequired("repo")

	return cmd
}
