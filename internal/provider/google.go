package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/hliang/pai/internal/model"
)

const googleBaseURL = "https://generativelanguage.googleapis.com"

// Google talks to the Generative Language API. The API key travels as a query
// parameter rather than a header, and the system prompt is ignored.
type Google struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

type googleRequest struct {
	Contents         []googleContent        `json:"contents"`
	GenerationConfig googleGenerationConfig `json:"generationConfig"`
}

type googleContent struct {
	Parts []googlePart `json:"parts"`
}

type googlePart struct {
	Text string `json:"text"`
}

type googleGenerationConfig struct {
	MaxOutputTokens int     `json:"maxOutputTokens"`
	Temperature     float64 `json:"temperature"`
}

type googleResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text *string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (g *Google) Name() string     { return NameGoogle }
func (g *Google) Configured() bool { return g.APIKey != "" }

func (g *Google) base() string {
	if g.BaseURL != "" {
		return g.BaseURL
	}
	return googleBaseURL
}

func (g *Google) client() *http.Client {
	if g.HTTPClient != nil {
		return g.HTTPClient
	}
	return http.DefaultClient
}

func (g *Google) Chat(ctx context.Context, req ChatRequest) (string, error) {
	if !g.Configured() {
		return "", &NotConfiguredError{Provider: "Google"}
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", g.base(), req.Model, g.APIKey)
	body := googleRequest{
		Contents: []googleContent{{Parts: []googlePart{{Text: req.UserMessage}}}},
		GenerationConfig: googleGenerationConfig{
			MaxOutputTokens: req.maxTokens(),
			Temperature:     0.9,
		},
	}

	resp, err := postJSON(ctx, g.client(), url, nil, body)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if err := checkStatus("Google", resp); err != nil {
		return "", err
	}

	var parsed googleResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", &EmptyResponseError{Provider: "Google"}
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 ||
		parsed.Candidates[0].Content.Parts[0].Text == nil {
		return "", &EmptyResponseError{Provider: "Google"}
	}
	return *parsed.Candidates[0].Content.Parts[0].Text, nil
}

func (g *Google) ListModels(ctx context.Context) ([]model.ModelInfo, error) {
	var list struct {
		Models []struct {
			Name string `json:"name"`
		} `json:"models"`
	}
	url := fmt.Sprintf("%s/v1/models?key=%s", g.base(), g.APIKey)
	if err := getJSON(ctx, g.client(), url, nil, "Google", &list); err != nil {
		return nil, err
	}

	var models []model.ModelInfo
	for _, m := range list.Models {
		if !strings.Contains(m.Name, "gemini") {
			continue
		}
		id := strings.TrimPrefix(m.Name, "models/")
		models = append(models, model.ModelInfo{
			ID:       id,
			Name:     strings.ReplaceAll(id, "-", " "),
			Provider: "Google",
		})
	}
	if len(models) == 0 {
		return nil, &EmptyResponseError{Provider: "Google"}
	}
	return models, nil
}
