package llm

import (
	"strings"
	"testing"

	"github.com/bugsurgeon/gh-surgeon/internal/config"
)

func TestNew_MissingCredential(t *testing.T) {
	// Each provider must reject a missing key at construction, before any
	// network call.
	providers := []string{"anthropic", "openai", "gemini"}

	for _, provider := range providers {
		t.Run(provider, func(t *testing.T) {
			_, err := New(&config.LLMConfig{Provider: provider})
			if err == nil {
				t.Fatalf("New(%s) with empty key: expected error, got nil", provider)
			}
			if !strings.Contains(err.Error(), "API key") {
				t.Errorf("New(%s) error = %v, want API key error", provider, err)
			}
		})
	}
}

func TestNew_UnknownProvider(t *testing.T) {
	_, err := New(&config.LLMConfig{Provider: "hal9000", APIKey: "key"})
	if err == nil {
		t.Fatal("expected error for unknown provider")
	}
}

func TestIsUnknownModel(t *testing.T) {
	tests := []struct {
		name string
		msg  string
		want bool
	}{
		{"status 404", "Anthropic API error (status 404): model not found", true},
		{"typed error", `Anthropic API error (status 400): {"type":"not_found_error"}`, true},
		{"auth error", "Anthropic API error (status 401): invalid x-api-key", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := &mockErr{tt.msg}
			if got := isUnknownModel(err); got != tt.want {
				t.Errorf("isUnknownModel(%q) = %v, want %v", tt.msg, got, tt.want)
			}
		})
	}
}

type mockErr struct{ msg string }

func (e *mockErr) Error() string { return e.msg }
