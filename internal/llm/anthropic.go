package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const anthropicEndpoint = "https://api.anthropic.com/v1/messages"

// Models tried in order of preference when none is configured. When the API
// rejects a model as unknown the next one is tried and remembered.
var anthropicModels = []string{
	"claude-3-5-sonnet-20240620",
	"claude-3-sonnet-20240229",
	"claude-3-haiku-20240307",
}

// AnthropicProvider implements Provider using the Anthropic Messages API
type AnthropicProvider struct {
	apiKey      string
	client      *http.Client
	models      []string
	maxTokens   int
	temperature float32
}

// NewAnthropicProvider creates a new Anthropic chat provider
func NewAnthropicProvider(apiKey, model string, maxTokens int, temperature float32) (*AnthropicProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Anthropic API key is required")
	}

	models := anthropicModels
	if model != "" {
		models = []string{model}
	}

	if maxTokens == 0 {
		maxTokens = 4096
	}

	return &AnthropicProvider{
		apiKey:      apiKey,
		client:      &http.Client{Timeout: 60 * time.Second},
		models:      models,
		maxTokens:   maxTokens,
		temperature: temperature,
	}, nil
}

// Complete generates a completion for the given prompt
func (p *AnthropicProvider) Complete(ctx context.Context, prompt string) (string, error) {
	return p.CompleteWithSystem(ctx, "", prompt)
}

// CompleteWithSystem generates a completion with a system prompt
func (p *AnthropicProvider) CompleteWithSystem(ctx context.Context, system, prompt string) (string, error) {
	return p.Chat(ctx, system, []Message{{Role: RoleUser, Content: prompt}})
}

// Chat sends a multi-turn conversation and returns the response text. On a
// model-not-found error the next fallback model is tried.
func (p *AnthropicProvider) Chat(ctx context.Context, system string, messages []Message) (string, error) {
	var lastErr error
	for i, model := range p.models {
		text, err := p.chatOnce(ctx, model, system, messages)
		if err == nil {
			if i > 0 {
				// Promote the working model so later calls skip dead ones
				p.models = p.models[i:]
			}
			return text, nil
		}
		lastErr = err
		if !isUnknownModel(err) {
			return "", err
		}
	}
	return "", fmt.Errorf("no Anthropic model available: %w", lastErr)
}

func (p *AnthropicProvider) chatOnce(ctx context.Context, model, system string, messages []Message) (string, error) {
	msgs := make([]map[string]string, len(messages))
	for i, m := range messages {
		msgs[i] = map[string]string{"role": m.Role, "content": m.Content}
	}

	body := map[string]interface{}{
		"model":       model,
		"messages":    msgs,
		"max_tokens":  p.maxTokens,
		"temperature": p.temperature,
	}
	if system != "" {
		body["system"] = system
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, anthropicEndpoint, bytes.NewReader(jsonBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", p.apiKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("Anthropic request failed: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("Anthropic API error (status %d): %s", resp.StatusCode, string(respBytes))
	}

	// Minimal struct to pull out the content text.
	var apiResp struct {
		Content []struct {
			Text string `json:"text"`
		} `json:"content"`
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(respBytes, &apiResp); err != nil {
		return "", err
	}
	if apiResp.Error.Message != "" {
		return "", fmt.Errorf("Anthropic API error: %s", apiResp.Error.Message)
	}
	if len(apiResp.Content) == 0 {
		return "", fmt.Errorf("empty response from Anthropic")
	}
	return apiResp.Content[0].Text, nil
}

// isUnknownModel detects the API's model-not-found rejection
func isUnknownModel(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "status 404") || strings.Contains(msg, "not_found_error")
}

// Close releases resources
func (p *AnthropicProvider) Close() error {
	return nil
}
