package openai

import (
	"context"
	"errors"
	"net"

	"github.com/collabohq/collabo/internal/config"
	"github.com/collabohq/collabo/pkg/models"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// Provider implements models.LLMProvider using the OpenAI chat completions API.
type Provider struct {
	client    *openai.Client
	model     string
	maxTokens int64
}

func NewProvider(cfg config.OpenAIConfig, maxOutputTokens int) *Provider {
	return &Provider{
		client:    openai.NewClient(option.WithAPIKey(cfg.APIKey)),
		model:     cfg.Model,
		maxTokens: int64(maxOutputTokens),
	}
}

func (p *Provider) Name() string { return "openai" }

func (p *Provider) Model() string { return p.model }

// Complete issues exactly one chat-completions request. The context carries
// the caller's deadline; no retries happen here.
func (p *Provider) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.F(p.model),
		Messages: openai.F([]openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		}),
		MaxTokens: openai.F(p.maxTokens),
	})
	if err != nil {
		return "", classify(err)
	}

	if len(resp.Choices) == 0 {
		return "", &models.ProviderError{Kind: models.ProviderErrUnknown, Err: errors.New("no choices in response")}
	}
	return resp.Choices[0].Message.Content, nil
}

// classify maps SDK failures onto the shared provider error kinds.
func classify(err error) error {
	var apierr *openai.Error
	var netErr net.Error

	kind := models.ProviderErrUnknown
	switch {
	case errors.As(err, &apierr):
		switch apierr.StatusCode {
		case 401, 403:
			kind = models.ProviderErrAuth
		case 429:
			kind = models.ProviderErrRateLimit
		}
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		kind = models.ProviderErrTimeout
	case errors.As(err, &netErr):
		kind = models.ProviderErrNetwork
		if netErr.Timeout() {
			kind = models.ProviderErrTimeout
		}
	}
	return &models.ProviderError{Kind: kind, Err: err}
}

var _ models.LLMProvider = (*Provider)(nil)
