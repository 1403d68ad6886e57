package ai_test

import (
	"testing"

	"github.com/collabohq/collabo/internal/ai"
	"github.com/collabohq/collabo/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProvider_None(t *testing.T) {
	cfg := config.AIConfig{Enabled: true, Provider: "none"}
	p, err := ai.NewProvider(cfg)
	require.NoError(t, err)
	assert.Equal(t, "none", p.Name())
}

func TestNewProvider_Disabled(t *testing.T) {
	cfg := config.AIConfig{
		Enabled:   false,
		Provider:  "anthropic",
		Anthropic: config.AnthropicConfig{APIKey: "sk-ant-test", Model: "claude-sonnet-4-5-20250929"},
	}
	p, err := ai.NewProvider(cfg)
	require.NoError(t, err)
	assert.Equal(t, "none", p.Name())
}

func TestNewProvider_Anthropic(t *testing.T) {
	cfg := config.AIConfig{
		Enabled:         true,
		Provider:        "anthropic",
		MaxOutputTokens: 2000,
		Anthropic:       config.AnthropicConfig{APIKey: "sk-ant-test", Model: "claude-sonnet-4-5-20250929"},
	}
	p, err := ai.NewProvider(cfg)
	require.NoError(t, err)
	assert.Equal(t, "anthropic", p.Name())
	assert.Equal(t, "claude-sonnet-4-5-20250929", p.Model())
}

func TestNewProvider_OpenAI(t *testing.T) {
	cfg := config.AIConfig{
		Enabled:         true,
		Provider:        "openai",
		MaxOutputTokens: 2000,
		OpenAI:          config.OpenAIConfig{APIKey: "sk-test", Model: "gpt-4o-mini"},
	}
	p, err := ai.NewProvider(cfg)
	require.NoError(t, err)
	assert.Equal(t, "openai", p.Name())
	assert.Equal(t, "gpt-4o-mini", p.Model())
}

func TestNewProvider_MissingKeyFallsBackToOffline(t *testing.T) {
	for _, provider := range []string{"anthropic", "openai"} {
		cfg := config.AIConfig{Enabled: true, Provider: provider}
		p, err := ai.NewProvider(cfg)
		require.NoError(t, err, provider)
		assert.Equal(t, "none", p.Name(), provider)
	}
}

func TestNewProvider_Unknown(t *testing.T) {
	cfg := config.AIConfig{Enabled: true, Provider: "mistral"}
	_, err := ai.NewProvider(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown AI provider")
	assert.Contains(t, err.Error(), "mistral")
}
