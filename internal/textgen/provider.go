// Package textgen is the text-generation capability: a Provider interface
// with OpenAI-compatible and Anthropic implementations, plus the prompt
// builders the section synthesizer uses.
package textgen

import (
	"context"
	"fmt"
)

// Capability is the name used in warnings and the recovery gate.
const Capability = "textgen"

// Request is one generation request with fixed sampling configuration.
type Request struct {
	System      string
	Prompt      string
	Temperature float32
	MaxTokens   int
}

// Provider abstracts a text-generation backend. Implementations classify
// their failures as recovery.CapabilityError so the recovery layer can apply
// a uniform policy.
type Provider interface {
	Name() string
	Complete(ctx context.Context, req Request) (string, error)
}

// Config selects and configures a provider.
type Config struct {
	Provider string // "groq", "openai", "anthropic", or any OpenAI-compatible type
	APIKey   string
	BaseURL  string
	Model    string
}

// New builds a provider for the configured type. Groq exposes an
// OpenAI-compatible API, so it shares the compat implementation with a
// different default base URL.
func New(cfg Config) (Provider, error) {
	if cfg.Provider == "mock" {
		return &MockProvider{}, nil
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key is required for provider %q", cfg.Provider)
	}
	switch cfg.Provider {
	case "claude", "anthropic":
		return newAnthropicProvider(cfg)
	default:
		return newOpenAICompatProvider(cfg)
	}
}
