package provider

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

var (
	ErrNoChoices       = errors.New("response has no choices")
	ErrEmptyCompletion = errors.New("completion is empty")
)

// Request describes a single two-message exchange with a text-generation provider.
type Request struct {
	// System is the instruction message.
	System string
	// User carries the captured text wrapped with a directive.
	User string
	// MaxTokens bounds the completion length.
	MaxTokens int64
	// Temperature is the sampling temperature; it is never zero.
	Temperature float64
}

// Provider returns the primary completion for a request.
type Provider interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// APIError is returned when the provider answered with a non-success status.
type APIError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("status %d %s: %s", e.StatusCode, http.StatusText(e.StatusCode), e.Message)
	}
	return fmt.Sprintf("status %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// IsTransient reports whether err is worth retrying: rate limits, server-side
// failures and timeouts.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusRequestTimeout ||
			apiErr.StatusCode == http.StatusTooManyRequests ||
			apiErr.StatusCode >= http.StatusInternalServerError
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	return false
}
