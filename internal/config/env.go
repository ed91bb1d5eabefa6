package config

import (
	"bufio"
	"os"
	"regexp"
	"strings"
)

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandEnvVars replaces ${VAR_NAME} patterns with environment variable values
func expandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if value := os.Getenv(varName); value != "" {
			return value
		}
		return match // Keep original if env var not set
	})
}

// expandConfigEnvVars expands environment variables in config string fields
func expandConfigEnvVars(cfg *Config) {
	cfg.LLM.APIKey = expandEnvVars(cfg.LLM.APIKey)
	cfg.History.Qdrant.URL = expandEnvVars(cfg.History.Qdrant.URL)
	cfg.History.Qdrant.APIKey = expandEnvVars(cfg.History.Qdrant.APIKey)
	cfg.History.Embedding.Primary.APIKey = expandEnvVars(cfg.History.Embedding.Primary.APIKey)
	cfg.History.Embedding.Fallback.APIKey = expandEnvVars(cfg.History.Embedding.Fallback.APIKey)
}

// expandFromEnv fills credentials and the target repository from well-known
// environment variables when the config leaves them blank.
func expandFromEnv(cfg *Config) {
	if cfg.LLM.APIKey == "" {
		cfg.LLM.APIKey = providerKeyFromEnv(cfg.LLM.Provider)
	}
	if !cfg.Repository.Configured() {
		if repo := os.Getenv("GITHUB_REPOSITORY"); repo != "" {
			parts := strings.SplitN(repo, "/", 2)
			if len(parts) == 2 {
				cfg.Repository.Org = parts[0]
				cfg.Repository.Repo = parts[1]
			}
		}
	}
}

// providerKeyFromEnv returns the conventional API key variable for a provider
func providerKeyFromEnv(provider string) string {
	switch provider {
	case "anthropic":
		return os.Getenv("ANTHROPIC_API_KEY")
	case "openai":
		return os.Getenv("OPENAI_API_KEY")
	case "gemini":
		return os.Getenv("GEMINI_API_KEY")
	}
	return ""
}

// LoadDotEnv reads KEY=VALUE lines from a .env file in the working directory
// into the process environment. Already-set variables are not overridden.
// Missing file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || !strings.Contains(line, "=") {
			continue
		}

		key, value, _ := strings.Cut(line, "=")
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		value = strings.Trim(value, `"'`)

		if key != "" && os.Getenv(key) == "" {
			os.Setenv(key, value)
		}
	}

	return scanner.Err()
}
