package cli

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/bugsurgeon/gh-surgeon/internal/config"
)

var (
	cfgFile string
	dryRun  bool
	version = "dev"
)

var rootCmd = &cobra.Command{
	Use:   "gh-surgeon",
	Short: "AI Bug Surgeon for GitHub issues",
	Long: `gh-surgeon reads a bug report, gathers the source files it mentions,
and asks an LLM for a structured root-cause analysis. Results can be
printed, posted as an issue comment, or opened as a pull request.

Supports Anthropic, OpenAI and Gemini models.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "skip all writes (GitHub + Qdrant)")

	rootCmd.AddCommand(newAnalyzeCmd())
	rootCmd.AddCommand(newProcessCmd())
	rootCmd.AddCommand(newIndexCmd())
	rootCmd.AddCommand(newSearchCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newVersionCmd())
}

// loadConfig resolves configuration for a command run: .env first, then a
// config file when one exists, and environment-only defaults otherwise.
func loadConfig() (*config.Config, error) {
	if err := config.LoadDotEnv(".env"); err != nil {
		log.Printf("warning: could not load .env: %v", err)
	}

	var cfg *config.Config
	if cfgPath := config.FindConfigPath(cfgFile); cfgPath != "" {
		loaded, err := config.Load(cfgPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	} else {
		cfg = config.Default()
	}

	if errs := config.Validate(cfg); len(errs) > 0 {
		for _, e := range errs {
			fmt.Printf("config error: %v\n", e)
		}
		return nil, fmt.Errorf("invalid configuration")
	}

	return cfg, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("gh-surgeon version %s\n", version)
		},
	}
}
