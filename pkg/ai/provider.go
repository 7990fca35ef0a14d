// Package ai provides AI provider integration for the prflight project.
//
// This package implements a provider-agnostic interface for generating
// review comments and PR descriptions. Two wire protocols are supported:
// the Anthropic messages API and the OpenAI chat completions API. The
// OpenAI adapter accepts a custom endpoint, so any service speaking the
// chat completions wire shape (NVIDIA, local gateways) works through it.
package ai

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/prflight/prflight/pkg/config"
)

// Message represents a conversation message.
type Message struct {
	Role    string // "user" or "system"
	Content string
}

// Response from an AI provider.
type Response struct {
	Content      string
	StopReason   string
	InputTokens  int
	OutputTokens int
}

// Provider interface for AI operations.
type Provider interface {
	// IsAvailable checks if the provider is configured with a credential.
	IsAvailable() bool

	// Chat performs a single-turn chat completion.
	Chat(ctx context.Context, messages []Message) (*Response, error)

	// Name returns the provider name.
	Name() string
}

// Kind is the closed set of provider variants.
type Kind int

const (
	// KindOpenAI routes to the OpenAI-compatible chat completions adapter.
	// It is also the default: any API speaking that wire shape works.
	KindOpenAI Kind = iota

	// KindAnthropic routes to the Anthropic messages adapter.
	KindAnthropic

	// KindUnknown marks an explicit override naming no known provider.
	KindUnknown
)

// Provider name constants.
const (
	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"
)

// String returns the provider name for a Kind.
func (k Kind) String() string {
	switch k {
	case KindAnthropic:
		return ProviderAnthropic
	case KindOpenAI:
		return ProviderOpenAI
	default:
		return "unknown"
	}
}

// Detect selects the provider for a model name. An explicit override is
// honored verbatim; otherwise the model name decides: anything mentioning
// claude goes to Anthropic, everything else (gpt-*, o1-*, nvidia/*, and any
// unrecognized name) goes to the OpenAI-compatible adapter.
func Detect(model, override string) Kind {
	switch strings.ToLower(override) {
	case "claude", "anthropic":
		return KindAnthropic
	case "openai", "chatgpt", "nvidia":
		return KindOpenAI
	case "":
	default:
		return KindUnknown
	}

	if strings.Contains(strings.ToLower(model), "claude") {
		return KindAnthropic
	}
	return KindOpenAI
}

// NewProvider builds the adapter for the detected Kind. The returned
// provider may be unavailable (no credential); callers check IsAvailable.
func NewProvider(kind Kind, cfg *config.AIConfig, logger *slog.Logger) Provider {
	switch kind {
	case KindAnthropic:
		return NewAnthropicProvider(resolveAnthropicAPIKey(cfg.APIKey), cfg.Model, logger)
	default:
		return NewOpenAIProvider(resolveOpenAIAPIKey(cfg.APIKey), cfg.Model, cfg.OpenAIEndpoint, logger)
	}
}

// resolveAnthropicAPIKey tries ANTHROPIC_API_KEY then CLAUDE_API_KEY,
// falling back to the config value. First non-empty wins.
func resolveAnthropicAPIKey(configKey string) string {
	for _, name := range []string{"ANTHROPIC_API_KEY", "CLAUDE_API_KEY"} {
		if key := os.Getenv(name); key != "" {
			return key
		}
	}
	return configKey
}

// resolveOpenAIAPIKey tries OPENAI_API_KEY then NVIDIA_API_KEY, falling
// back to the config value. First non-empty wins.
func resolveOpenAIAPIKey(configKey string) string {
	for _, name := range []string{"OPENAI_API_KEY", "NVIDIA_API_KEY"} {
		if key := os.Getenv(name); key != "" {
			return key
		}
	}
	return configKey
}
