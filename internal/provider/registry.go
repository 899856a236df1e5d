package provider

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/hliang/pai/internal/config"
	"github.com/hliang/pai/internal/model"
)

// Registry holds one instance of each provider, keyed by name.
type Registry struct {
	ordered []Provider
	byName  map[string]Provider
	logger  *log.Logger
}

// NewRegistry builds the closed provider set from the stored API keys.
// The logger may be nil; listing failures then go unreported.
func NewRegistry(s config.Settings, logger *log.Logger) *Registry {
	ordered := []Provider{
		&Anthropic{APIKey: s.AnthropicAPIKey},
		&OpenAI{APIKey: s.OpenAIAPIKey},
		&Google{APIKey: s.GoogleAPIKey},
		&XAI{APIKey: s.XAIAPIKey},
		&Perplexity{APIKey: s.PerplexityAPIKey},
	}
	r := &Registry{ordered: ordered, byName: make(map[string]Provider, len(ordered)), logger: logger}
	for _, p := range ordered {
		r.byName[p.Name()] = p
	}
	return r
}

// NewRegistryWith builds a registry over explicit providers, for tests.
func NewRegistryWith(logger *log.Logger, providers ...Provider) *Registry {
	r := &Registry{ordered: providers, byName: make(map[string]Provider, len(providers)), logger: logger}
	for _, p := range providers {
		r.byName[p.Name()] = p
	}
	return r
}

// ForModel resolves the provider responsible for the given model identifier.
func (r *Registry) ForModel(modelID string) Provider {
	return r.byName[Resolve(modelID)]
}

// ByName returns the provider with the given name, or nil.
func (r *Registry) ByName(name string) Provider {
	return r.byName[name]
}

// placeholderCatalog is returned when no provider is configured or every
// listing call failed; it tells the caller to configure a key first.
func placeholderCatalog() []model.ModelInfo {
	return []model.ModelInfo{
		{ID: "claude-sonnet-4-20250514", Name: "Claude Sonnet 4 (请先配置API Key)", Provider: "Anthropic"},
		{ID: "gpt-4o", Name: "GPT-4o (请先配置API Key)", Provider: "OpenAI"},
	}
}

// ListModels queries each configured provider in turn. A failure for one
// provider is logged and skipped, never aborting the others. With nothing to
// return, the fixed placeholder catalog is used — this method never fails.
func (r *Registry) ListModels(ctx context.Context) []model.ModelInfo {
	var models []model.ModelInfo
	for _, p := range r.ordered {
		if !p.Configured() {
			continue
		}
		fetched, err := p.ListModels(ctx)
		if err != nil {
			if r.logger != nil {
				r.logger.Warn("model listing failed", "provider", p.Name(), "err", err)
			}
			continue
		}
		models = append(models, fetched...)
	}

	if len(models) == 0 {
		return placeholderCatalog()
	}
	return models
}
