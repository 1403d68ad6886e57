// Package ai implements the conversation-analysis façade: prompt
// construction, provider dispatch, response extraction and validation, and
// the deterministic fallback path. Its public operations always return a
// schema-complete result; provider and parsing failures are absorbed here
// and surface only as source=fallback plus a log line.
package ai

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/collabohq/collabo/pkg/models"
)

const defaultTimeout = 60 * time.Second

// Service orchestrates the four analysis operations over one configured
// provider. It holds no mutable state; concurrent calls are independent.
type Service struct {
	provider models.LLMProvider
	timeout  time.Duration
}

// NewService creates a Service. The timeout bounds each outbound provider
// call; non-positive values get a default.
func NewService(provider models.LLMProvider, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Service{provider: provider, timeout: timeout}
}

// Meta describes how a result was produced.
type Meta struct {
	Source     models.ResultSource `json:"source"`
	Provider   string              `json:"provider"`
	Model      string              `json:"model"`
	Backfilled []string            `json:"backfilled,omitempty"`
}

// Analyze produces a structured assessment of a conversation transcript.
func (s *Service) Analyze(ctx context.Context, transcript string, c models.Counterpart) (models.ConversationAnalysis, Meta) {
	raw, ok := s.complete(ctx, models.OpAnalyze, buildAnalyzePrompt(transcript, c))
	if !ok {
		return FallbackAnalysis(), s.fallbackMeta()
	}
	payload, err := ExtractPayload(raw)
	if err != nil {
		s.observe(models.OpAnalyze, err)
		return FallbackAnalysis(), s.fallbackMeta()
	}
	out, backfilled, err := reconcileAnalysis(payload)
	if err != nil {
		s.observe(models.OpAnalyze, err)
		return FallbackAnalysis(), s.fallbackMeta()
	}
	return out, s.liveMeta(backfilled)
}

// SuggestStrategy produces a conversation plan for reaching a goal with a
// counterpart.
func (s *Service) SuggestStrategy(ctx context.Context, c models.Counterpart, goal string) (models.ConversationStrategy, Meta) {
	raw, ok := s.complete(ctx, models.OpStrategy, buildStrategyPrompt(c, goal))
	if !ok {
		return FallbackStrategy(), s.fallbackMeta()
	}
	payload, err := ExtractPayload(raw)
	if err != nil {
		s.observe(models.OpStrategy, err)
		return FallbackStrategy(), s.fallbackMeta()
	}
	out, backfilled, err := reconcileStrategy(payload)
	if err != nil {
		s.observe(models.OpStrategy, err)
		return FallbackStrategy(), s.fallbackMeta()
	}
	return out, s.liveMeta(backfilled)
}

// ExtractActions pulls action items out of a transcript.
func (s *Service) ExtractActions(ctx context.Context, transcript string) ([]models.ActionItem, Meta) {
	raw, ok := s.complete(ctx, models.OpExtractActions, buildActionsPrompt(transcript))
	if !ok {
		return FallbackActions(), s.fallbackMeta()
	}
	payload, err := ExtractPayload(raw)
	if err != nil {
		s.observe(models.OpExtractActions, err)
		return FallbackActions(), s.fallbackMeta()
	}
	out, backfilled, err := reconcileActions(payload)
	if err != nil {
		s.observe(models.OpExtractActions, err)
		return FallbackActions(), s.fallbackMeta()
	}
	return out, s.liveMeta(backfilled)
}

// Summarize produces a plain-text meeting summary. No extraction step: the
// whole response is the result.
func (s *Service) Summarize(ctx context.Context, transcript, counterpartName string) (string, Meta) {
	raw, ok := s.complete(ctx, models.OpSummarize, buildSummaryPrompt(transcript, counterpartName))
	if !ok {
		return FallbackSummary(), s.fallbackMeta()
	}
	summary := strings.TrimSpace(raw)
	if summary == "" {
		s.observe(models.OpSummarize, ErrExtractionFailed)
		return FallbackSummary(), s.fallbackMeta()
	}
	return summary, s.liveMeta(nil)
}

// complete performs the single bounded provider call. A false return means
// the caller must take the fallback path.
func (s *Service) complete(ctx context.Context, op models.Operation, prompt string) (string, bool) {
	cctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	raw, err := s.provider.Complete(cctx, prompt)
	if err != nil {
		s.observe(op, err)
		return "", false
	}
	// Raw responses may echo the transcript; log size only.
	slog.Debug("provider response received", "operation", op, "provider", s.provider.Name(), "bytes", len(raw))
	return raw, true
}

// observe records why an operation fell back. Failures here are an expected
// runtime condition, never an error for the caller.
func (s *Service) observe(op models.Operation, err error) {
	slog.Warn("analysis falling back",
		"operation", op,
		"provider", s.provider.Name(),
		"reason", fallbackReason(err),
	)
}

func fallbackReason(err error) string {
	var perr *models.ProviderError
	switch {
	case errors.Is(err, models.ErrNotConfigured):
		return "not_configured"
	case errors.Is(err, ErrExtractionFailed):
		return "extraction_failed"
	case errors.As(err, &perr):
		return "provider_" + string(perr.Kind)
	default:
		return "unknown"
	}
}

func (s *Service) liveMeta(backfilled []string) Meta {
	return Meta{
		Source:     models.SourceLive,
		Provider:   s.provider.Name(),
		Model:      s.provider.Model(),
		Backfilled: backfilled,
	}
}

func (s *Service) fallbackMeta() Meta {
	return Meta{
		Source:   models.SourceFallback,
		Provider: s.provider.Name(),
		Model:    s.provider.Model(),
	}
}
