package ai

import (
	"fmt"
	"log/slog"

	"github.com/collabohq/collabo/internal/ai/anthropic"
	"github.com/collabohq/collabo/internal/ai/offline"
	"github.com/collabohq/collabo/internal/ai/openai"
	"github.com/collabohq/collabo/internal/config"
	"github.com/collabohq/collabo/pkg/models"
)

// NewProvider constructs the appropriate LLM provider based on config.
// Called once at server startup. A missing API key selects the offline
// provider rather than failing: the service must come up and serve fallback
// results regardless of provider availability.
func NewProvider(cfg config.AIConfig) (models.LLMProvider, error) {
	if !cfg.Enabled {
		slog.Info("ai analysis disabled, using offline provider")
		return offline.NewProvider(), nil
	}

	switch cfg.Provider {
	case "none":
		return offline.NewProvider(), nil
	case "anthropic":
		if cfg.Anthropic.APIKey == "" {
			slog.Warn("ANTHROPIC_API_KEY not set, using offline provider")
			return offline.NewProvider(), nil
		}
		return anthropic.NewProvider(cfg.Anthropic, cfg.MaxOutputTokens), nil
	case "openai":
		if cfg.OpenAI.APIKey == "" {
			slog.Warn("OPENAI_API_KEY not set, using offline provider")
			return offline.NewProvider(), nil
		}
		return openai.NewProvider(cfg.OpenAI, cfg.MaxOutputTokens), nil
	default:
		return nil, fmt.Errorf("unknown AI provider %q: must be one of none, anthropic, openai", cfg.Provider)
	}
}
