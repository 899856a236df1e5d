package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/hliang/pai/internal/model"
)

const (
	anthropicBaseURL = "https://api.anthropic.com"
	anthropicVersion = "2023-06-01"
)

// Anthropic talks to the Anthropic Messages API. The system prompt travels as
// a top-level field, not a message.
type Anthropic struct {
	APIKey     string
	BaseURL    string       // defaults to the public endpoint
	HTTPClient *http.Client // defaults to http.DefaultClient
}

type anthropicRequest struct {
	Model     string             `json:"model"`
	Messages  []anthropicMessage `json:"messages"`
	MaxTokens int                `json:"max_tokens"`
	System    string             `json:"system,omitempty"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []anthropicContent `json:"content"`
}

type anthropicContent struct {
	Type string  `json:"type"`
	Text *string `json:"text"`
}

type anthropicModelList struct {
	Data []struct {
		ID          string `json:"id"`
		DisplayName string `json:"display_name"`
	} `json:"data"`
}

func (a *Anthropic) Name() string     { return NameAnthropic }
func (a *Anthropic) Configured() bool { return a.APIKey != "" }

func (a *Anthropic) base() string {
	if a.BaseURL != "" {
		return a.BaseURL
	}
	return anthropicBaseURL
}

func (a *Anthropic) client() *http.Client {
	if a.HTTPClient != nil {
		return a.HTTPClient
	}
	return http.DefaultClient
}

func (a *Anthropic) headers() map[string]string {
	return map[string]string{
		"x-api-key":         a.APIKey,
		"anthropic-version": anthropicVersion,
	}
}

func (a *Anthropic) Chat(ctx context.Context, req ChatRequest) (string, error) {
	if !a.Configured() {
		return "", &NotConfiguredError{Provider: "Anthropic"}
	}

	body := anthropicRequest{
		Model:     req.Model,
		Messages:  []anthropicMessage{{Role: "user", Content: req.UserMessage}},
		MaxTokens: req.maxTokens(),
		System:    req.SystemPrompt,
	}

	resp, err := postJSON(ctx, a.client(), a.base()+"/v1/messages", a.headers(), body)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if err := checkStatus("Anthropic", resp); err != nil {
		return "", err
	}

	var parsed anthropicResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", &EmptyResponseError{Provider: "Anthropic"}
	}
	// No content block, or a block without a text field, is a shape error —
	// not an empty string reply.
	if len(parsed.Content) == 0 || parsed.Content[0].Text == nil {
		return "", &EmptyResponseError{Provider: "Anthropic"}
	}
	return *parsed.Content[0].Text, nil
}

func (a *Anthropic) ListModels(ctx context.Context) ([]model.ModelInfo, error) {
	var list anthropicModelList
	if err := getJSON(ctx, a.client(), a.base()+"/v1/models", a.headers(), "Anthropic", &list); err != nil {
		return nil, err
	}

	var models []model.ModelInfo
	for _, m := range list.Data {
		if !strings.Contains(m.ID, "claude-") && !strings.Contains(m.ID, "sonnet") &&
			!strings.Contains(m.ID, "haiku") && !strings.Contains(m.ID, "opus") {
			continue
		}
		models = append(models, model.ModelInfo{ID: m.ID, Name: m.DisplayName, Provider: "Anthropic"})
	}
	if len(models) == 0 {
		return nil, &EmptyResponseError{Provider: "Anthropic"}
	}
	return models, nil
}
