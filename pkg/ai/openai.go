package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	pferrors "github.com/prflight/prflight/pkg/errors"
)

// OpenAI chat completions configuration. The original NVIDIA integrate API
// and local gateways speak the same wire shape, so the endpoint is
// configurable.
const (
	openAIAPIURL      = "https://api.openai.com/v1/chat/completions"
	openAITemperature = 0.2
)

// OpenAIProvider implements Provider for any OpenAI-compatible chat
// completions API.
type OpenAIProvider struct {
	apiKey   string
	model    string
	endpoint string
	logger   *slog.Logger
	client   *http.Client
}

// NewOpenAIProvider creates a new OpenAI-compatible provider. An empty
// endpoint selects the OpenAI default.
func NewOpenAIProvider(apiKey, model, endpoint string, logger *slog.Logger) *OpenAIProvider {
	if endpoint == "" {
		endpoint = openAIAPIURL
	}
	return &OpenAIProvider{
		apiKey:   apiKey,
		model:    model,
		endpoint: endpoint,
		logger:   logger,
		client:   &http.Client{},
	}
}

// Name returns the provider name.
func (p *OpenAIProvider) Name() string {
	return ProviderOpenAI
}

// IsAvailable checks if the provider is configured and ready.
func (p *OpenAIProvider) IsAvailable() bool {
	return p.apiKey != ""
}

// openAIRequest represents a chat completions request.
type openAIRequest struct {
	Model       string          `json:"model"`
	Messages    []openAIMessage `json:"messages"`
	Temperature float64         `json:"temperature"`
}

// openAIMessage represents a message in the OpenAI format.
type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// openAIResponse represents a chat completions response.
type openAIResponse struct {
	ID      string         `json:"id"`
	Choices []openAIChoice `json:"choices"`
	Usage   openAIUsage    `json:"usage"`
	Error   *openAIError   `json:"error,omitempty"`
}

// openAIChoice represents a completion choice.
type openAIChoice struct {
	Index        int           `json:"index"`
	Message      openAIMessage `json:"message"`
	FinishReason string        `json:"finish_reason"`
}

// openAIUsage represents token usage.
type openAIUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// openAIError represents an API error payload.
type openAIError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    string `json:"code"`
}

// Chat performs a single-turn chat completion.
func (p *OpenAIProvider) Chat(ctx context.Context, messages []Message) (*Response, error) {
	if !p.IsAvailable() {
		return nil, pferrors.NewAIError(ProviderOpenAI, "Chat", "provider not configured")
	}

	apiMessages := make([]openAIMessage, 0, len(messages))
	for _, msg := range messages {
		apiMessages = append(apiMessages, openAIMessage(msg))
	}

	reqBody := openAIRequest{
		Model:       p.model,
		Messages:    apiMessages,
		Temperature: openAITemperature,
	}

	p.logDebug("sending chat request", "model", p.model, "endpoint", p.endpoint)

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, pferrors.NewAIErrorWithCause(ProviderOpenAI, "Chat",
			"failed to marshal request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, pferrors.NewAIErrorWithCause(ProviderOpenAI, "Chat",
			"failed to create request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	httpResp, err := p.client.Do(req)
	if err != nil {
		return nil, pferrors.NewAIErrorWithCause(ProviderOpenAI, "Chat",
			"request failed", err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, pferrors.NewAIErrorWithCause(ProviderOpenAI, "Chat",
			"failed to read response", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		return nil, p.handleErrorResponse(httpResp.StatusCode, respBody)
	}

	var resp openAIResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, pferrors.NewAIErrorWithCause(ProviderOpenAI, "Chat",
			"failed to parse response", err)
	}

	if len(resp.Choices) == 0 {
		return nil, pferrors.NewAIError(ProviderOpenAI, "Chat", "response contained no choices")
	}

	choice := resp.Choices[0]

	p.logDebug("received response",
		"finish_reason", choice.FinishReason,
		"prompt_tokens", resp.Usage.PromptTokens,
		"completion_tokens", resp.Usage.CompletionTokens)

	return &Response{
		Content:      strings.TrimSpace(choice.Message.Content),
		StopReason:   choice.FinishReason,
		InputTokens:  resp.Usage.PromptTokens,
		OutputTokens: resp.Usage.CompletionTokens,
	}, nil
}

// handleErrorResponse parses error payloads from OpenAI-compatible APIs.
func (p *OpenAIProvider) handleErrorResponse(statusCode int, body []byte) error {
	var resp openAIResponse
	if err := json.Unmarshal(body, &resp); err == nil && resp.Error != nil && resp.Error.Message != "" {
		return pferrors.NewAIErrorWithStatus(ProviderOpenAI, "Chat", statusCode, resp.Error.Message)
	}
	return pferrors.NewAIErrorWithStatus(ProviderOpenAI, "Chat", statusCode,
		fmt.Sprintf("HTTP %d: %s", statusCode, http.StatusText(statusCode)))
}

// logDebug logs a debug message if verbose logging is enabled.
func (p *OpenAIProvider) logDebug(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Debug(msg, args...)
	}
}
