package llm

import (
	"context"
	"fmt"

	"github.com/bugsurgeon/gh-surgeon/internal/config"
)

// Message roles used in multi-turn conversations
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Provider defines the interface for LLM chat completion
type Provider interface {
	Complete(ctx context.Context, prompt string) (string, error)
	CompleteWithSystem(ctx context.Context, system, prompt string) (string, error)
	Chat(ctx context.Context, system string, messages []Message) (string, error)
	Close() error
}

// Message represents a chat message
type Message struct {
	Role    string
	Content string
}

// New creates a provider from config. Credential checks happen here, before
// any network call.
func New(cfg *config.LLMConfig) (Provider, error) {
	switch cfg.Provider {
	case "anthropic":
		return NewAnthropicProvider(cfg.APIKey, cfg.Model, cfg.MaxTokens, cfg.Temperature)
	case "openai":
		return NewOpenAIProvider(cfg.APIKey, cfg.Model, cfg.MaxTokens, cfg.Temperature)
	case "gemini":
		return NewGeminiProvider(cfg.APIKey, cfg.Model, cfg.MaxTokens, cfg.Temperature)
	default:
		return nil, fmt.Errorf("unknown LLM provider: %s", cfg.Provider)
	}
}
