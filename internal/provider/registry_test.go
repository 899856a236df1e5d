package provider

import (
	"context"
	"errors"
	"testing"

	"github.com/hliang/pai/internal/config"
	"github.com/hliang/pai/internal/model"
)

type stubProvider struct {
	name       string
	configured bool
	models     []model.ModelInfo
	listErr    error
	listCalls  int
}

func (s *stubProvider) Name() string     { return s.name }
func (s *stubProvider) Configured() bool { return s.configured }
func (s *stubProvider) Chat(ctx context.Context, req ChatRequest) (string, error) {
	return "", errors.New("not implemented")
}
func (s *stubProvider) ListModels(ctx context.Context) ([]model.ModelInfo, error) {
	s.listCalls++
	return s.models, s.listErr
}

func TestListModelsPlaceholderWhenNothingConfigured(t *testing.T) {
	r := NewRegistry(config.Settings{}, nil)

	models := r.ListModels(context.Background())
	if len(models) != 2 {
		t.Fatalf("expected the 2-entry placeholder catalog, got %d: %+v", len(models), models)
	}
	if models[0].ID != "claude-sonnet-4-20250514" || models[1].ID != "gpt-4o" {
		t.Errorf("placeholder = %+v", models)
	}
}

func TestListModelsSkipsFailingProvider(t *testing.T) {
	good := &stubProvider{
		name:       NameAnthropic,
		configured: true,
		models:     []model.ModelInfo{{ID: "claude-3", Name: "Claude 3", Provider: "Anthropic"}},
	}
	bad := &stubProvider{
		name:       NameOpenAI,
		configured: true,
		listErr:    errors.New("boom"),
	}
	unconfigured := &stubProvider{name: NameGoogle}

	r := NewRegistryWith(nil, bad, good, unconfigured)
	models := r.ListModels(context.Background())

	if len(models) != 1 || models[0].ID != "claude-3" {
		t.Errorf("models = %+v, want only the working provider's entry", models)
	}
	if unconfigured.listCalls != 0 {
		t.Errorf("unconfigured provider was queried %d times", unconfigured.listCalls)
	}
}

func TestListModelsPlaceholderWhenAllFail(t *testing.T) {
	bad := &stubProvider{name: NameAnthropic, configured: true, listErr: errors.New("boom")}

	r := NewRegistryWith(nil, bad)
	models := r.ListModels(context.Background())
	if len(models) != 2 {
		t.Errorf("expected placeholder catalog after total failure, got %+v", models)
	}
}

func TestForModel(t *testing.T) {
	r := NewRegistry(config.Settings{}, nil)
	if p := r.ForModel("grok-2"); p == nil || p.Name() != NameXAI {
		t.Errorf("ForModel(grok-2) = %v", p)
	}
	if p := r.ForModel("something-else"); p == nil || p.Name() != NameAnthropic {
		t.Errorf("ForModel(something-else) = %v, want anthropic default", p)
	}
}
