package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the full application configuration
type Config struct {
	LLM        LLMConfig        `yaml:"llm"`
	Repository RepositoryConfig `yaml:"repository"`
	Publish    PublishConfig    `yaml:"publish"`
	React      ReactConfig      `yaml:"react"`
	History    HistoryConfig    `yaml:"history"`
}

// LLMConfig contains model provider settings
type LLMConfig struct {
	Provider    string  `yaml:"provider"` // "anthropic", "openai", or "gemini"
	Model       string  `yaml:"model"`
	APIKey      string  `yaml:"api_key"`
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float32 `yaml:"temperature"`
}

// RepositoryConfig identifies the repository analyses run against.
// Both fields empty means local mode: files are read from the working
// directory and nothing is published.
type RepositoryConfig struct {
	Org  string `yaml:"org"`
	Repo string `yaml:"repo"`
}

// Configured returns true when a target repository is set
func (r *RepositoryConfig) Configured() bool {
	return r.Org != "" && r.Repo != ""
}

// PublishConfig controls how analyses are published back to GitHub
type PublishConfig struct {
	CommentEnabled       bool   `yaml:"comment_enabled"`
	PREnabled            bool   `yaml:"pr_enabled"`
	BaseBranch           string `yaml:"base_branch"`
	CommentCooldownHours int    `yaml:"comment_cooldown_hours"`
	AnalyzedLabel        string `yaml:"analyzed_label"`
}

// ReactConfig bounds the tool-request loop used when the report does not
// name any files up front
type ReactConfig struct {
	MaxIterations int `yaml:"max_iterations"`
	MaxFileBytes  int `yaml:"max_file_bytes"`
}

// HistoryConfig contains the optional incident index settings
type HistoryConfig struct {
	Enabled             bool            `yaml:"enabled"`
	Qdrant              QdrantConfig    `yaml:"qdrant"`
	Embedding           EmbeddingConfig `yaml:"embedding"`
	SimilarityThreshold float64         `yaml:"similarity_threshold"`
	MaxSimilar          int             `yaml:"max_similar"`
	ClosedWeight        float64         `yaml:"closed_weight"`
}

// QdrantConfig contains Qdrant connection settings
type QdrantConfig struct {
	URL    string `yaml:"url"`
	APIKey string `yaml:"api_key"`
}

// EmbeddingConfig contains embedding provider settings
type EmbeddingConfig struct {
	Primary  ProviderConfig `yaml:"primary"`
	Fallback ProviderConfig `yaml:"fallback"`
}

// ProviderConfig contains settings for an embedding provider
type ProviderConfig struct {
	Provider   string `yaml:"provider"`
	Model      string `yaml:"model"`
	APIKey     string `yaml:"api_key"`
	Dimensions int    `yaml:"dimensions"`
}

// Load reads and parses config from the given path
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	expandConfigEnvVars(&cfg)
	applyDefaults(&cfg)
	expandFromEnv(&cfg)

	return &cfg, nil
}

// Default returns a config built entirely from environment variables, for
// running without a config file (local mode / GitHub Actions).
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	expandFromEnv(cfg)
	return cfg
}

// FindConfigPath looks for config in common locations
func FindConfigPath(explicit string) string {
	if explicit != "" {
		return explicit
	}

	paths := []string{
		".github/surgeon.yaml",
		".github/surgeon.yml",
		"surgeon.yaml",
		"surgeon.yml",
	}

	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		homePath := filepath.Join(home, ".config", "gh-surgeon", "config.yaml")
		if _, err := os.Stat(homePath); err == nil {
			return homePath
		}
	}

	return ""
}

// applyDefaults sets default values for unset fields
func applyDefaults(cfg *Config) {
	if cfg.LLM.Provider == "" {
		cfg.LLM.Provider = "anthropic"
	}
	if cfg.LLM.MaxTokens == 0 {
		cfg.LLM.MaxTokens = 4096
	}
	if cfg.LLM.Temperature == 0 {
		cfg.LLM.Temperature = 0.1
	}
	if cfg.Publish.BaseBranch == "" {
		cfg.Publish.BaseBranch = "main"
	}
	if cfg.Publish.CommentCooldownHours == 0 {
		cfg.Publish.CommentCooldownHours = 1
	}
	if cfg.React.MaxIterations == 0 {
		cfg.React.MaxIterations = 3
	}
	if cfg.React.MaxFileBytes == 0 {
		cfg.React.MaxFileBytes = 64 * 1024
	}
	if cfg.History.SimilarityThreshold == 0 {
		cfg.History.SimilarityThreshold = 0.82
	}
	if cfg.History.MaxSimilar == 0 {
		cfg.History.MaxSimilar = 5
	}
	if cfg.History.ClosedWeight == 0 {
		cfg.History.ClosedWeight = 0.9
	}
	if cfg.History.Embedding.Primary.Dimensions == 0 {
		cfg.History.Embedding.Primary.Dimensions = 768
	}
	if cfg.History.Embedding.Fallback.Dimensions == 0 {
		cfg.History.Embedding.Fallback.Dimensions = 768
	}
}
