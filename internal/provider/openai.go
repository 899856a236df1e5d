package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"strings"

	"github.com/hliang/pai/internal/model"
)

const openAIBaseURL = "https://api.openai.com"

// Chat-completions wire shapes, shared by OpenAI, xAI, and Perplexity.

type chatCompletionsRequest struct {
	Model     string                  `json:"model"`
	Messages  []chatCompletionMessage `json:"messages"`
	MaxTokens int                     `json:"max_tokens"`
}

type chatCompletionMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionsResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// chatCompletions posts a chat-completions request with bearer auth and
// extracts choices[0].message.content.
func chatCompletions(ctx context.Context, client *http.Client, url, apiKey, display string, body chatCompletionsRequest) (string, error) {
	headers := map[string]string{"Authorization": "Bearer " + apiKey}

	resp, err := postJSON(ctx, client, url, headers, body)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if err := checkStatus(display, resp); err != nil {
		return "", err
	}

	var parsed chatCompletionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", &EmptyResponseError{Provider: display}
	}
	if len(parsed.Choices) == 0 {
		return "", &EmptyResponseError{Provider: display}
	}
	return parsed.Choices[0].Message.Content, nil
}

// systemThenUser prepends the system prompt, when present, as a system-role
// message ahead of the user message.
func systemThenUser(req ChatRequest) []chatCompletionMessage {
	var msgs []chatCompletionMessage
	if req.SystemPrompt != "" {
		msgs = append(msgs, chatCompletionMessage{Role: "system", Content: req.SystemPrompt})
	}
	return append(msgs, chatCompletionMessage{Role: "user", Content: req.UserMessage})
}

type bearerModelList struct {
	Data []struct {
		ID        string `json:"id"`
		HumanName string `json:"human_name"`
	} `json:"data"`
}

// OpenAI talks to the OpenAI chat-completions API.
type OpenAI struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

func (o *OpenAI) Name() string     { return NameOpenAI }
func (o *OpenAI) Configured() bool { return o.APIKey != "" }

func (o *OpenAI) base() string {
	if o.BaseURL != "" {
		return o.BaseURL
	}
	return openAIBaseURL
}

func (o *OpenAI) client() *http.Client {
	if o.HTTPClient != nil {
		return o.HTTPClient
	}
	return http.DefaultClient
}

func (o *OpenAI) Chat(ctx context.Context, req ChatRequest) (string, error) {
	if !o.Configured() {
		return "", &NotConfiguredError{Provider: "OpenAI"}
	}
	body := chatCompletionsRequest{
		Model:     req.Model,
		Messages:  systemThenUser(req),
		MaxTokens: req.maxTokens(),
	}
	return chatCompletions(ctx, o.client(), o.base()+"/v1/chat/completions", o.APIKey, "OpenAI", body)
}

// openAIFamilies are the model-id substrings worth surfacing in the catalog.
var openAIFamilies = []string{"gpt-4o", "gpt-4", "gpt-3.5", "o1", "o3", "o4"}

func (o *OpenAI) ListModels(ctx context.Context) ([]model.ModelInfo, error) {
	var list bearerModelList
	headers := map[string]string{"Authorization": "Bearer " + o.APIKey}
	if err := getJSON(ctx, o.client(), o.base()+"/v1/models", headers, "OpenAI", &list); err != nil {
		return nil, err
	}

	var models []model.ModelInfo
	for _, m := range list.Data {
		matched := false
		for _, f := range openAIFamilies {
			if strings.Contains(m.ID, f) {
				matched = true
				break
			}
		}
		if !matched {
			continue
		}
		name := m.HumanName
		if name == "" {
			name = m.ID
		}
		models = append(models, model.ModelInfo{ID: m.ID, Name: name, Provider: "OpenAI"})
	}

	// Keep the most capable/cheap families first.
	sort.SliceStable(models, func(i, j int) bool {
		return openAIPriority(models[i].ID) < openAIPriority(models[j].ID)
	})
	return models, nil
}

func openAIPriority(id string) int {
	switch {
	case strings.Contains(id, "4o"):
		return 0
	case strings.Contains(id, "o1"):
		return 1
	case strings.Contains(id, "o3"):
		return 2
	case strings.Contains(id, "4"):
		return 3
	default:
		return 4
	}
}
