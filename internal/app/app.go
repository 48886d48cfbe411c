// Package app wires the provider, the throttle and the orchestrator from
// configuration.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"clipsum/internal/config"
	"clipsum/internal/orchestrator"
	"clipsum/internal/provider"
	"clipsum/internal/ratelimiter"
)

// NewOrchestrator returns a ready orchestrator and a stop function releasing
// the provider throttle.
func NewOrchestrator(
	ctx context.Context,
	cfg config.Config,
	log *slog.Logger,
) (*orchestrator.Orchestrator, func(), error) {
	p, err := provider.NewOpenAIProvider(provider.OpenAIConfig{
		APIKey:  cfg.OpenAIAPIKey,
		BaseURL: cfg.OpenAIBaseURL,
		Model:   cfg.OpenAIModel,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("create OpenAI provider: %w", err)
	}

	log.InfoContext(ctx, "OpenAI provider is initialized",
		"provider", "openai",
		"model", p.Model(),
		"customBaseURL", cfg.OpenAIBaseURL != "")

	limiter := ratelimiter.New(p, cfg.ProviderMinInterval, log)

	o := orchestrator.New(limiter, orchestrator.Options{
		MaxTokens: cfg.MaxOutputTokens,
		Timeout:   cfg.RequestTimeout,
		Retry: orchestrator.RetryPolicy{
			MaxRetries: cfg.MaxRetries,
			Backoff:    cfg.RetryBackoff,
			MaxBackoff: cfg.RetryMaxBackoff,
		},
	}, log)

	log.InfoContext(ctx, "Orchestrator is initialized",
		"maxOutputTokens", cfg.MaxOutputTokens,
		"requestTimeout", cfg.RequestTimeout,
		"maxRetries", cfg.MaxRetries,
		"providerMinInterval", cfg.ProviderMinInterval)

	return o, limiter.Stop, nil
}
