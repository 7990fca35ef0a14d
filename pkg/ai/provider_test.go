package ai

import (
	"testing"

	"github.com/prflight/prflight/pkg/config"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name     string
		model    string
		override string
		want     Kind
	}{
		{"claude model", "claude-sonnet-4-20250514", "", KindAnthropic},
		{"claude model mixed case", "Claude-3-Opus", "", KindAnthropic},
		{"gpt model", "gpt-4o", "", KindOpenAI},
		{"nvidia model path", "nvidia/llama-3.1-nemotron-70b-instruct", "", KindOpenAI},
		{"unrecognized model defaults to openai", "mystery-model", "", KindOpenAI},
		{"override anthropic", "gpt-4o", "anthropic", KindAnthropic},
		{"override claude alias", "gpt-4o", "claude", KindAnthropic},
		{"override openai", "claude-sonnet-4-20250514", "openai", KindOpenAI},
		{"override chatgpt alias", "claude-sonnet-4-20250514", "chatgpt", KindOpenAI},
		{"override nvidia alias", "claude-sonnet-4-20250514", "nvidia", KindOpenAI},
		{"override is case insensitive", "gpt-4o", "Anthropic", KindAnthropic},
		{"unknown override", "claude-sonnet-4-20250514", "bedrock", KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Detect(tt.model, tt.override); got != tt.want {
				t.Errorf("Detect(%q, %q) = %v, want %v", tt.model, tt.override, got, tt.want)
			}
		})
	}
}

func TestKindString(t *testing.T) {
	if KindAnthropic.String() != "anthropic" {
		t.Errorf("KindAnthropic.String() = %q", KindAnthropic.String())
	}
	if KindOpenAI.String() != "openai" {
		t.Errorf("KindOpenAI.String() = %q", KindOpenAI.String())
	}
	if KindUnknown.String() != "unknown" {
		t.Errorf("KindUnknown.String() = %q", KindUnknown.String())
	}
}

func TestNewProviderRouting(t *testing.T) {
	cfg := &config.AIConfig{Model: "claude-sonnet-4-20250514", APIKey: "k"}

	p := NewProvider(KindAnthropic, cfg, nil)
	if _, ok := p.(*AnthropicProvider); !ok {
		t.Errorf("KindAnthropic built %T, want *AnthropicProvider", p)
	}

	p = NewProvider(KindOpenAI, cfg, nil)
	if _, ok := p.(*OpenAIProvider); !ok {
		t.Errorf("KindOpenAI built %T, want *OpenAIProvider", p)
	}
}

func TestResolveAnthropicAPIKey(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "")
	t.Setenv("CLAUDE_API_KEY", "")

	if got := resolveAnthropicAPIKey("from-config"); got != "from-config" {
		t.Errorf("fallback = %q, want from-config", got)
	}

	t.Setenv("CLAUDE_API_KEY", "claude-key")
	if got := resolveAnthropicAPIKey("from-config"); got != "claude-key" {
		t.Errorf("CLAUDE_API_KEY = %q, want claude-key", got)
	}

	t.Setenv("ANTHROPIC_API_KEY", "anthropic-key")
	if got := resolveAnthropicAPIKey("from-config"); got != "anthropic-key" {
		t.Errorf("ANTHROPIC_API_KEY should win, got %q", got)
	}
}

func TestResolveOpenAIAPIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("NVIDIA_API_KEY", "nvapi-key")

	if got := resolveOpenAIAPIKey(""); got != "nvapi-key" {
		t.Errorf("NVIDIA_API_KEY fallback = %q, want nvapi-key", got)
	}

	t.Setenv("OPENAI_API_KEY", "sk-key")
	if got := resolveOpenAIAPIKey(""); got != "sk-key" {
		t.Errorf("OPENAI_API_KEY should win, got %q", got)
	}
}
