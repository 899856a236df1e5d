package provider

import (
	"context"
	"net/http"

	"github.com/hliang/pai/internal/model"
)

const xaiBaseURL = "https://api.x.ai"

// XAI talks to the xAI API, which is chat-completions shaped.
type XAI struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

func (x *XAI) Name() string     { return NameXAI }
func (x *XAI) Configured() bool { return x.APIKey != "" }

func (x *XAI) base() string {
	if x.BaseURL != "" {
		return x.BaseURL
	}
	return xaiBaseURL
}

func (x *XAI) client() *http.Client {
	if x.HTTPClient != nil {
		return x.HTTPClient
	}
	return http.DefaultClient
}

func (x *XAI) Chat(ctx context.Context, req ChatRequest) (string, error) {
	if !x.Configured() {
		return "", &NotConfiguredError{Provider: "xAI"}
	}
	body := chatCompletionsRequest{
		Model:     req.Model,
		Messages:  systemThenUser(req),
		MaxTokens: req.maxTokens(),
	}
	return chatCompletions(ctx, x.client(), x.base()+"/v1/chat/completions", x.APIKey, "xAI", body)
}

func (x *XAI) ListModels(ctx context.Context) ([]model.ModelInfo, error) {
	var list bearerModelList
	headers := map[string]string{"Authorization": "Bearer " + x.APIKey}
	if err := getJSON(ctx, x.client(), x.base()+"/v1/models", headers, "xAI", &list); err != nil {
		return nil, err
	}

	var models []model.ModelInfo
	for _, m := range list.Data {
		name := m.HumanName
		if name == "" {
			name = m.ID
		}
		models = append(models, model.ModelInfo{ID: m.ID, Name: name, Provider: "xAI"})
	}
	if len(models) == 0 {
		return nil, &EmptyResponseError{Provider: "xAI"}
	}
	return models, nil
}
