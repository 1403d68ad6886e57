// Package mock provides models.LLMProvider implementations for tests.
package mock

import (
	"context"

	"github.com/collabohq/collabo/pkg/models"
)

// Provider satisfies models.LLMProvider for testing.
type Provider struct {
	Name_        string
	Model_       string
	CompleteFunc func(ctx context.Context, prompt string) (string, error)

	// Prompts records every prompt passed to Complete.
	Prompts []string
}

func (p *Provider) Name() string { return p.Name_ }

func (p *Provider) Model() string { return p.Model_ }

func (p *Provider) Complete(ctx context.Context, prompt string) (string, error) {
	p.Prompts = append(p.Prompts, prompt)
	if p.CompleteFunc != nil {
		return p.CompleteFunc(ctx, prompt)
	}
	return "", nil
}

// NewProvider returns a Provider that always responds with text.
func NewProvider(text string) *Provider {
	return &Provider{
		Name_:  "mock",
		Model_: "mock-v1",
		CompleteFunc: func(_ context.Context, _ string) (string, error) {
			return text, nil
		},
	}
}

// NewFailingProvider returns a Provider that always returns the given error.
func NewFailingProvider(err error) *Provider {
	return &Provider{
		Name_:  "mock-failing",
		Model_: "mock-v1",
		CompleteFunc: func(_ context.Context, _ string) (string, error) {
			return "", err
		},
	}
}

// NewTimeoutProvider returns a Provider that blocks until context is cancelled.
func NewTimeoutProvider() *Provider {
	return &Provider{
		Name_:  "mock-timeout",
		Model_: "mock-v1",
		CompleteFunc: func(ctx context.Context, _ string) (string, error) {
			<-ctx.Done()
			return "", &models.ProviderError{Kind: models.ProviderErrTimeout, Err: ctx.Err()}
		},
	}
}

// Compile-time check that Provider implements LLMProvider.
var _ models.LLMProvider = (*Provider)(nil)
