package provider

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAnthropicChat(t *testing.T) {
	var gotReq anthropicRequest
	var gotHeader http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeader = r.Header.Clone()
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		text := "hello there"
		json.NewEncoder(w).Encode(anthropicResponse{Content: []anthropicContent{{Type: "text", Text: &text}}})
	}))
	defer srv.Close()

	a := &Anthropic{APIKey: "test-key", BaseURL: srv.URL}
	reply, err := a.Chat(context.Background(), ChatRequest{
		Model:        "claude-3-haiku-20240307",
		SystemPrompt: "be brief",
		UserMessage:  "hi",
	})
	if err != nil {
		t.Fatalf("chat: %v", err)
	}
	if reply != "hello there" {
		t.Errorf("reply = %q", reply)
	}

	if gotHeader.Get("x-api-key") != "test-key" {
		t.Errorf("x-api-key = %q", gotHeader.Get("x-api-key"))
	}
	if gotHeader.Get("anthropic-version") != "2023-06-01" {
		t.Errorf("anthropic-version = %q", gotHeader.Get("anthropic-version"))
	}
	if gotReq.System != "be brief" {
		t.Errorf("system = %q, want top-level field", gotReq.System)
	}
	if gotReq.MaxTokens != 4096 {
		t.Errorf("max_tokens = %d, want 4096", gotReq.MaxTokens)
	}
	if len(gotReq.Messages) != 1 || gotReq.Messages[0].Role != "user" {
		t.Errorf("messages = %+v, want single user message", gotReq.Messages)
	}
}

func TestAnthropicNotConfigured(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()

	a := &Anthropic{BaseURL: srv.URL}
	_, err := a.Chat(context.Background(), ChatRequest{Model: "claude-3", UserMessage: "hi"})

	var notConfigured *NotConfiguredError
	if !errors.As(err, &notConfigured) {
		t.Fatalf("err = %v, want NotConfiguredError", err)
	}
	if calls != 0 {
		t.Errorf("expected no network call before the key check, got %d", calls)
	}
}

func TestAnthropicHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte("bad key"))
	}))
	defer srv.Close()

	a := &Anthropic{APIKey: "k", BaseURL: srv.URL}
	_, err := a.Chat(context.Background(), ChatRequest{Model: "claude-3", UserMessage: "hi"})

	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("err = %v, want HTTPError", err)
	}
	if httpErr.Status != http.StatusUnauthorized {
		t.Errorf("status = %d", httpErr.Status)
	}
	if httpErr.Body != "bad key" {
		t.Errorf("body = %q", httpErr.Body)
	}
}

func TestAnthropicEmptyResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(anthropicResponse{})
	}))
	defer srv.Close()

	a := &Anthropic{APIKey: "k", BaseURL: srv.URL}
	_, err := a.Chat(context.Background(), ChatRequest{Model: "claude-3", UserMessage: "hi"})

	var empty *EmptyResponseError
	if !errors.As(err, &empty) {
		t.Fatalf("err = %v, want EmptyResponseError, not HTTPError", err)
	}
}

func TestAnthropicListModelsFilters(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[
			{"id":"claude-3-opus","display_name":"Claude 3 Opus"},
			{"id":"voyage-embed","display_name":"Voyage"},
			{"id":"claude-sonnet-4","display_name":"Claude Sonnet 4"}
		]}`))
	}))
	defer srv.Close()

	a := &Anthropic{APIKey: "k", BaseURL: srv.URL}
	models, err := a.ListModels(context.Background())
	if err != nil {
		t.Fatalf("list models: %v", err)
	}
	if len(models) != 2 {
		t.Fatalf("expected 2 models, got %d: %+v", len(models), models)
	}
	if models[0].ID != "claude-3-opus" || models[0].Name != "Claude 3 Opus" {
		t.Errorf("first model = %+v", models[0])
	}
}
