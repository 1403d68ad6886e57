// Package models contains shared data models used across the Collabo codebase.
package models

import (
	"context"
	"errors"
	"fmt"
)

// LLMProvider is the core interface that all LLM integrations must implement.
// Callers must not talk to vendor SDKs directly; inject this interface instead.
// Implementations must be safe for concurrent use and must issue exactly one
// outbound request per Complete call; retry policy belongs to callers.
type LLMProvider interface {
	// Complete sends a single prompt and returns the raw response text.
	// The returned text may wrap the payload in prose or fenced code blocks;
	// callers own extraction. It must never be persisted or logged in full.
	Complete(ctx context.Context, prompt string) (string, error)
	// Name returns the provider identifier (e.g., "anthropic", "openai").
	Name() string
	// Model returns the model identifier requests are sent to.
	Model() string
}

// ErrNotConfigured is returned before any network attempt when no usable
// provider is configured (provider none, analysis disabled, or missing key).
var ErrNotConfigured = errors.New("llm provider not configured")

// ProviderErrorKind classifies provider failures for observability.
// Callers treat all kinds identically: fall back.
type ProviderErrorKind string

const (
	ProviderErrAuth      ProviderErrorKind = "auth"
	ProviderErrRateLimit ProviderErrorKind = "rate_limit"
	ProviderErrTimeout   ProviderErrorKind = "timeout"
	ProviderErrNetwork   ProviderErrorKind = "network"
	ProviderErrUnknown   ProviderErrorKind = "unknown"
)

// ProviderError wraps a backend failure with its classified kind.
type ProviderError struct {
	Kind ProviderErrorKind
	Err  error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("llm provider error (%s): %v", e.Kind, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }
