package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestPerplexityModelRewrite(t *testing.T) {
	var gotReq chatCompletionsRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotReq)
		w.Write([]byte(`{"choices":[{"message":{"content":"ok"}}]}`))
	}))
	defer srv.Close()

	p := &Perplexity{APIKey: "k", BaseURL: srv.URL}
	_, err := p.Chat(context.Background(), ChatRequest{
		Model:        "perplexity-large",
		SystemPrompt: "ignored for this backend",
		UserMessage:  "hi",
	})
	if err != nil {
		t.Fatalf("chat: %v", err)
	}

	if gotReq.Model != "llama-3.1-sonar-large-128k-online" {
		t.Errorf("model = %q", gotReq.Model)
	}
	if len(gotReq.Messages) != 1 || gotReq.Messages[0].Role != "user" {
		t.Errorf("messages = %+v, want single user message", gotReq.Messages)
	}
}

func TestPerplexityListModelsRequiresName(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[
			{"id":"sonar-pro","name":"Sonar Pro"},
			{"id":"sonar-bare"}
		]}`))
	}))
	defer srv.Close()

	p := &Perplexity{APIKey: "k", BaseURL: srv.URL}
	models, err := p.ListModels(context.Background())
	if err != nil {
		t.Fatalf("list models: %v", err)
	}
	if len(models) != 1 || models[0].ID != "sonar-pro" {
		t.Errorf("models = %+v", models)
	}
}
