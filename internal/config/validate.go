package config

import (
	"fmt"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks the configuration for errors. Errors reported here stop the
// run before any network call is attempted.
func Validate(cfg *Config) []error {
	var errs []error

	switch cfg.LLM.Provider {
	case "anthropic", "openai", "gemini":
	case "":
		errs = append(errs, ValidationError{"llm.provider", "required"})
	default:
		errs = append(errs, ValidationError{"llm.provider", "must be 'anthropic', 'openai' or 'gemini'"})
	}

	if cfg.LLM.APIKey == "" && providerKeyFromEnv(cfg.LLM.Provider) == "" {
		errs = append(errs, ValidationError{"llm.api_key", "required (config or provider env var)"})
	}

	if cfg.LLM.Temperature < 0 || cfg.LLM.Temperature > 1 {
		errs = append(errs, ValidationError{"llm.temperature", "must be between 0 and 1"})
	}

	// A repo must be either fully identified or fully absent (local mode)
	if cfg.Repository.Org != "" && cfg.Repository.Repo == "" {
		errs = append(errs, ValidationError{"repository.repo", "required when repository.org is set"})
	}
	if cfg.Repository.Repo != "" && cfg.Repository.Org == "" {
		errs = append(errs, ValidationError{"repository.org", "required when repository.repo is set"})
	}

	if (cfg.Publish.CommentEnabled || cfg.Publish.PREnabled) && !cfg.Repository.Configured() {
		errs = append(errs, ValidationError{"repository", "required when publishing is enabled"})
	}

	if cfg.React.MaxIterations < 1 {
		errs = append(errs, ValidationError{"react.max_iterations", "must be at least 1"})
	}

	// History settings matter only when the incident index is enabled
	if cfg.History.Enabled {
		if cfg.History.Qdrant.URL == "" {
			errs = append(errs, ValidationError{"history.qdrant.url", "required when history is enabled"})
		}

		if cfg.History.Embedding.Primary.Provider == "" {
			errs = append(errs, ValidationError{"history.embedding.primary.provider", "required when history is enabled"})
		} else if cfg.History.Embedding.Primary.Provider != "gemini" && cfg.History.Embedding.Primary.Provider != "openai" {
			errs = append(errs, ValidationError{"history.embedding.primary.provider", "must be 'gemini' or 'openai'"})
		}

		if cfg.History.Embedding.Primary.APIKey == "" {
			errs = append(errs, ValidationError{"history.embedding.primary.api_key", "required when history is enabled"})
		}

		if cfg.History.SimilarityThreshold < 0 || cfg.History.SimilarityThreshold > 1 {
			errs = append(errs, ValidationError{"history.similarity_threshold", "must be between 0 and 1"})
		}

		if cfg.History.ClosedWeight < 0 || cfg.History.ClosedWeight > 1 {
			errs = append(errs, ValidationError{"history.closed_weight", "must be between 0 and 1"})
		}
	}

	return errs
}
