package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"clipsum/internal/domain"
	"clipsum/internal/provider"
)

const (
	// MinInputLength is the minimum trimmed input length, in characters.
	MinInputLength = 50

	DefaultMaxTokens      int64 = 500
	DefaultRequestTimeout       = 30 * time.Second

	messageInputTooShort     = "Text is too short to summarize/process."
	messageOutputTooShort    = "Generated summary is too short."
	messageUnsupportedAction = "Unsupported action."
)

type Options struct {
	// MaxTokens is the response length ceiling sent with every request.
	MaxTokens int64
	// Timeout bounds each provider attempt.
	Timeout time.Duration
	Retry   RetryPolicy
}

// Orchestrator validates captured text, builds a provider request for an
// action and turns every outcome into a domain.Result.
type Orchestrator struct {
	provider  provider.Provider
	maxTokens int64
	timeout   time.Duration
	retry     RetryPolicy
	log       *slog.Logger
}

func New(p provider.Provider, opts Options, log *slog.Logger) *Orchestrator {
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = DefaultMaxTokens
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultRequestTimeout
	}
	if log == nil {
		log = slog.Default()
	}

	return &Orchestrator{
		provider:  p,
		maxTokens: opts.MaxTokens,
		timeout:   opts.Timeout,
		retry:     opts.Retry,
		log:       log,
	}
}

// Execute runs one action over rawInput. It never returns an error: failures
// come back as a Result with a non-empty Kind.
func (o *Orchestrator) Execute(
	ctx context.Context,
	action domain.Action,
	rawInput string,
	config domain.RequestConfig,
) domain.Result {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg := config.Normalize()

	text := strings.TrimSpace(rawInput)
	if utf8.RuneCountInString(text) < MinInputLength {
		o.log.DebugContext(ctx, "Input is too short",
			"action", action.String(),
			"inputLen", utf8.RuneCountInString(text),
			"minInputLen", MinInputLength)

		return domain.Failure(domain.ErrorKindInputTooShort, messageInputTooShort, cfg)
	}

	p, ok := buildPrompt(action, text, cfg)
	if !ok {
		o.log.WarnContext(ctx, "Unsupported action",
			"action", action.String())

		return domain.Failure(domain.ErrorKindUnsupportedAction, messageUnsupportedAction, cfg)
	}

	req := provider.Request{
		System:      p.system,
		User:        p.user,
		MaxTokens:   o.maxTokens,
		Temperature: p.temperature,
	}

	start := time.Now()
	output, err := o.complete(ctx, action, req)
	if err != nil {
		o.log.ErrorContext(ctx, "Failed to complete request",
			"error", err,
			"action", action.String(),
			"inputLen", utf8.RuneCountInString(text),
			"elapsedMs", time.Since(start).Milliseconds())

		return domain.Failure(domain.ErrorKindProviderError, providerMessage(err), cfg)
	}

	output = strings.TrimSpace(output)
	if action.UsesLengthBand() {
		if words := len(strings.Fields(output)); words < cfg.MinLength {
			o.log.WarnContext(ctx, "Generated output is too short",
				"action", action.String(),
				"words", words,
				"minLength", cfg.MinLength,
				"maxLength", cfg.MaxLength)

			return domain.Failure(domain.ErrorKindOutputTooShort, messageOutputTooShort, cfg)
		}
	}

	o.log.InfoContext(ctx, "Request is completed",
		"action", action.String(),
		"inputLen", utf8.RuneCountInString(text),
		"outputLen", utf8.RuneCountInString(output),
		"elapsedMs", time.Since(start).Milliseconds())

	return domain.Success(output, cfg)
}

func (o *Orchestrator) complete(
	ctx context.Context,
	action domain.Action,
	req provider.Request,
) (string, error) {
	attempts := o.retry.attempts()

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		var output string
		output, err = o.attempt(ctx, req)
		if err == nil {
			return output, nil
		}

		if attempt == attempts || !provider.IsTransient(err) || ctx.Err() != nil {
			break
		}

		delay := o.retry.delay(attempt)
		o.log.WarnContext(ctx, "Transient provider failure, retrying...",
			"error", err,
			"action", action.String(),
			"attempt", attempt,
			"maxAttempts", attempts,
			"delay", delay)

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return "", errors.Join(err, ctx.Err())
		}
	}

	return "", err
}

func (o *Orchestrator) attempt(ctx context.Context, req provider.Request) (output string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("provider panicked: %v", r)
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	return o.provider.Complete(ctx, req)
}

func providerMessage(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "Provider request timed out: " + err.Error()
	}
	return "Provider request failed: " + err.Error()
}
