package provider

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/hliang/pai/internal/model"
)

const perplexityBaseURL = "https://api.perplexity.ai"

// Perplexity talks to the Perplexity API. Chat-completions shaped, but model
// identifiers are rewritten: the "perplexity-" prefix is stripped and the
// remainder becomes the sonar suffix of the canonical online model string.
// The system prompt is ignored.
type Perplexity struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

func (p *Perplexity) Name() string     { return NamePerplexity }
func (p *Perplexity) Configured() bool { return p.APIKey != "" }

func (p *Perplexity) base() string {
	if p.BaseURL != "" {
		return p.BaseURL
	}
	return perplexityBaseURL
}

func (p *Perplexity) client() *http.Client {
	if p.HTTPClient != nil {
		return p.HTTPClient
	}
	return http.DefaultClient
}

func (p *Perplexity) Chat(ctx context.Context, req ChatRequest) (string, error) {
	if !p.Configured() {
		return "", &NotConfiguredError{Provider: "Perplexity"}
	}
	suffix := strings.TrimPrefix(req.Model, "perplexity-")
	body := chatCompletionsRequest{
		Model:     fmt.Sprintf("llama-3.1-sonar-%s-128k-online", suffix),
		Messages:  []chatCompletionMessage{{Role: "user", Content: req.UserMessage}},
		MaxTokens: req.maxTokens(),
	}
	return chatCompletions(ctx, p.client(), p.base()+"/chat/completions", p.APIKey, "Perplexity", body)
}

func (p *Perplexity) ListModels(ctx context.Context) ([]model.ModelInfo, error) {
	var list struct {
		Data []struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"data"`
	}
	headers := map[string]string{"Authorization": "Bearer " + p.APIKey}
	if err := getJSON(ctx, p.client(), p.base()+"/models", headers, "Perplexity", &list); err != nil {
		return nil, err
	}

	var models []model.ModelInfo
	for _, m := range list.Data {
		if m.ID == "" || m.Name == "" {
			continue
		}
		models = append(models, model.ModelInfo{ID: m.ID, Name: m.Name, Provider: "Perplexity"})
	}
	if len(models) == 0 {
		return nil, &EmptyResponseError{Provider: "Perplexity"}
	}
	return models, nil
}
