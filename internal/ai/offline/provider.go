// Package offline provides the provider used when no LLM backend is usable:
// provider "none", analysis disabled, or a missing API key. Every call
// reports ErrNotConfigured before any network attempt, so the analysis
// service short-circuits straight to the fallback path.
package offline

import (
	"context"

	"github.com/collabohq/collabo/pkg/models"
)

type Provider struct{}

func NewProvider() *Provider { return &Provider{} }

func (p *Provider) Name() string { return "none" }

func (p *Provider) Model() string { return "" }

func (p *Provider) Complete(_ context.Context, _ string) (string, error) {
	return "", models.ErrNotConfigured
}

var _ models.LLMProvider = (*Provider)(nil)
