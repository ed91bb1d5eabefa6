package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bugsurgeon/gh-surgeon/internal/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management commands",
	}

	cmd.AddCommand(newConfigValidateCmd())
	return cmd
}

func newConfigValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath := config.FindConfigPath(cfgFile)
			if cfgPath == "" {
				return fmt.Errorf("config file not found")
			}

			fmt.Printf("Validating config: %s\n", cfgPath)

			cfg, err := config.Load(cfgPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			errs := config.Validate(cfg)
			if len(errs) > 0 {
				fmt.Println("\nValidation errors:")
				for _, e := range errs {
					fmt.Printf("  - %v\n", e)
				}
				return fmt.Errorf("configuration is invalid")
			}

			fmt.Println("\nConfiguration is valid!")
			fmt.Printf("  - LLM provider: %s (%s)\n", cfg.LLM.Provider, cfg.LLM.Model)
			if cfg.Repository.Configured() {
				fmt.Printf("  - Repository: %s/%s\n", cfg.Repository.Org, cfg.Repository.Repo)
			} else {
				fmt.Println("  - Repository: not set (local mode)")
			}
			fmt.Printf("  - Publish: comment=%t pr=%t\n", cfg.Publish.CommentEnabled, cfg.Publish.PREnabled)
			if cfg.History.Enabled {
				fmt.Printf("  - History: Qdrant at %s, embedding %s (%s)\n",
					cfg.History.Qdrant.URL,
					cfg.History.Embedding.Primary.Provider,
					cfg.History.Embedding.Primary.Model)
			} else {
				fmt.Println("  - History: disabled")
			}

			return nil
		},
	}
}
