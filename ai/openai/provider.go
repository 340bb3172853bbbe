package openai

import (
	"log/slog"

	"github.com/talentscout/resumatch/ai"
)

// Provider bundles the OpenAI-compatible embedding and extraction services
// behind the ai.AIProvider interface.
type Provider struct {
	config    *ai.Config
	embedder  *Embedder
	extractor *AttributeExtractor
	logger    *slog.Logger
}

var _ ai.AIProvider = (*Provider)(nil)

// NewProvider creates a provider from the given configuration. A nil config
// uses the defaults from ai.NewConfig.
//
// Returns ai.AIProvider interface to enforce abstraction.
func NewProvider(config *ai.Config) (ai.AIProvider, error) {
	if config == nil {
		config = ai.NewConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	embedder, err := newEmbedder(config)
	if err != nil {
		return nil, err
	}

	extractor, err := newAttributeExtractor(config)
	if err != nil {
		return nil, err
	}

	return &Provider{
		config:    config,
		embedder:  embedder,
		extractor: extractor,
		logger:    slog.Default().With("component", "openai-provider"),
	}, nil
}

// Embedder returns the embedding service.
func (p *Provider) Embedder() ai.Embedder {
	return p.embedder
}

// AttributeExtractor returns the attribute extraction service.
func (p *Provider) AttributeExtractor() ai.AttributeExtractor {
	return p.extractor
}

// Close releases provider resources. The underlying HTTP clients hold no
// persistent connections, so this is currently a no-op.
func (p *Provider) Close() error {
	p.logger.Debug("closing AI provider")
	return nil
}
