package ai

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/prflight/prflight/pkg/config"
)

// Result of a generation attempt. Skipped results are not errors: the
// calling workflow substitutes its own fallback text and keeps going, so a
// missing credential or a provider outage never aborts a review.
type Result struct {
	Text    string
	Skipped bool
	Reason  string
}

// Generate runs a single-turn completion against the configured provider.
// Failures degrade to a skipped result with a human-readable reason.
func Generate(ctx context.Context, cfg *config.AIConfig, logger *slog.Logger, systemPrompt, userContent string) Result {
	kind := Detect(cfg.Model, cfg.Provider)
	if kind == KindUnknown {
		return Result{
			Skipped: true,
			Reason:  fmt.Sprintf("unknown AI provider %q", cfg.Provider),
		}
	}

	provider := NewProvider(kind, cfg, logger)
	if !provider.IsAvailable() {
		return Result{
			Skipped: true,
			Reason:  fmt.Sprintf("no API key configured for provider %s", provider.Name()),
		}
	}

	messages := []Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: userContent},
	}

	resp, err := provider.Chat(ctx, messages)
	if err != nil {
		if logger != nil {
			logger.Debug("generation failed", "provider", provider.Name(), "error", err)
		}
		return Result{
			Skipped: true,
			Reason:  err.Error(),
		}
	}

	return Result{Text: resp.Content}
}
