package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGoogleChat(t *testing.T) {
	var gotReq googleRequest
	var gotKey, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.URL.Query().Get("key")
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotReq)
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"answer"}]}}]}`))
	}))
	defer srv.Close()

	g := &Google{APIKey: "g-key", BaseURL: srv.URL}
	reply, err := g.Chat(context.Background(), ChatRequest{
		Model:        "gemini-pro",
		SystemPrompt: "ignored for this backend",
		UserMessage:  "hi",
	})
	if err != nil {
		t.Fatalf("chat: %v", err)
	}
	if reply != "answer" {
		t.Errorf("reply = %q", reply)
	}

	if gotKey != "g-key" {
		t.Errorf("key query param = %q", gotKey)
	}
	if gotPath != "/v1beta/models/gemini-pro:generateContent" {
		t.Errorf("path = %q", gotPath)
	}
	if gotReq.GenerationConfig.Temperature != 0.9 {
		t.Errorf("temperature = %v, want fixed 0.9", gotReq.GenerationConfig.Temperature)
	}
	if gotReq.GenerationConfig.MaxOutputTokens != 4096 {
		t.Errorf("maxOutputTokens = %d", gotReq.GenerationConfig.MaxOutputTokens)
	}
	// The system prompt never reaches the wire for this provider.
	if len(gotReq.Contents) != 1 || len(gotReq.Contents[0].Parts) != 1 || gotReq.Contents[0].Parts[0].Text != "hi" {
		t.Errorf("contents = %+v", gotReq.Contents)
	}
}

func TestGoogleListModels(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"models":[
			{"name":"models/gemini-1.5-pro"},
			{"name":"models/text-embedding-004"}
		]}`))
	}))
	defer srv.Close()

	g := &Google{APIKey: "k", BaseURL: srv.URL}
	models, err := g.ListModels(context.Background())
	if err != nil {
		t.Fatalf("list models: %v", err)
	}
	if len(models) != 1 {
		t.Fatalf("expected 1 model, got %d: %+v", len(models), models)
	}
	if models[0].ID != "gemini-1.5-pro" {
		t.Errorf("id = %q, want models/ prefix stripped", models[0].ID)
	}
	if models[0].Name != "gemini 1.5 pro" {
		t.Errorf("name = %q, want dashes replaced", models[0].Name)
	}
}
