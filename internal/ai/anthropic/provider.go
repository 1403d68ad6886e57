package anthropic

import (
	"context"
	"errors"
	"net"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/collabohq/collabo/internal/config"
	"github.com/collabohq/collabo/pkg/models"
)

// Provider implements models.LLMProvider using the Anthropic Messages API.
type Provider struct {
	client    anthropic.Client
	model     string
	maxTokens int64
}

func NewProvider(cfg config.AnthropicConfig, maxOutputTokens int) *Provider {
	return &Provider{
		client:    anthropic.NewClient(option.WithAPIKey(cfg.APIKey)),
		model:     cfg.Model,
		maxTokens: int64(maxOutputTokens),
	}
}

func (p *Provider) Name() string { return "anthropic" }

func (p *Provider) Model() string { return p.model }

// Complete issues exactly one Messages request. The context carries the
// caller's deadline; no retries happen here.
func (p *Provider) Complete(ctx context.Context, prompt string) (string, error) {
	message, err := p.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(p.model),
		MaxTokens: p.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", classify(err)
	}

	for _, block := range message.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}
	return "", &models.ProviderError{Kind: models.ProviderErrUnknown, Err: errors.New("no text content in response")}
}

// classify maps SDK failures onto the shared provider error kinds.
func classify(err error) error {
	var apierr *anthropic.Error
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
