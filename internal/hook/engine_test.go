package hook

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/hliang/pai/internal/model"
	"github.com/hliang/pai/internal/provider"
)

type stubProvider struct {
	name       string
	configured bool
	reply      string
	err        error
	calls      int
	lastReq    provider.ChatRequest
}

func (s *stubProvider) Name() string     { return s.name }
func (s *stubProvider) Configured() bool { return s.configured }
func (s *stubProvider) Chat(ctx context.Context, req provider.ChatRequest) (string, error) {
	s.calls++
	s.lastReq = req
	return s.reply, s.err
}
func (s *stubProvider) ListModels(ctx context.Context) ([]model.ModelInfo, error) {
	return nil, nil
}

const extractionReply = `{"title":"Project deadline","content":"Ship Friday","memory_type":"WORK","tags":["deadline"]}`

func newTestEngine(anthropic, openai *stubProvider) *Engine {
	return NewEngine(provider.NewRegistryWith(nil, anthropic, openai), nil)
}

func TestShouldAutoExtract(t *testing.T) {
	e := NewEngine(nil, nil)
	cases := []struct {
		count int
		want  bool
	}{
		{0, false}, {1, false}, {4, false}, {5, true}, {7, false}, {10, true},
	}
	for _, tc := range cases {
		if got := e.ShouldAutoExtract(tc.count); got != tc.want {
			t.Errorf("ShouldAutoExtract(%d) = %v, want %v", tc.count, got, tc.want)
		}
	}
}

func TestTryExtractKeywordTrigger(t *testing.T) {
	anthropic := &stubProvider{name: provider.NameAnthropic, configured: true, reply: extractionReply}
	openai := &stubProvider{name: provider.NameOpenAI, configured: true}
	e := newTestEngine(anthropic, openai)

	messages := []model.ChatMessage{
		{Role: "user", Content: "hi"},
		{Role: "user", Content: "please remember the deadline is Friday"},
	}

	item := e.TryExtract(context.Background(), messages)
	if item == nil {
		t.Fatal("expected an extracted memory")
	}
	if item.Title != "Project deadline" || item.MemoryType != "WORK" {
		t.Errorf("item = %+v", item)
	}
	if item.Confidence != 0.8 {
		t.Errorf("confidence = %v, want 0.8", item.Confidence)
	}
	if !strings.HasPrefix(item.ID, "memory-") {
		t.Errorf("id = %q", item.ID)
	}

	// Anthropic is preferred when configured, on its cheap extraction model
	// with the reduced token cap.
	if anthropic.calls != 1 || openai.calls != 0 {
		t.Errorf("calls anthropic=%d openai=%d", anthropic.calls, openai.calls)
	}
	if anthropic.lastReq.Model != "claude-3-haiku-20240307" {
		t.Errorf("model = %q", anthropic.lastReq.Model)
	}
	if anthropic.lastReq.MaxTokens != 1024 {
		t.Errorf("max tokens = %d, want 1024", anthropic.lastReq.MaxTokens)
	}
}

func TestTryExtractFallsBackToOpenAI(t *testing.T) {
	anthropic := &stubProvider{name: provider.NameAnthropic}
	openai := &stubProvider{name: provider.NameOpenAI, configured: true, reply: extractionReply}
	e := newTestEngine(anthropic, openai)

	messages := []model.ChatMessage{{Role: "user", Content: "remember this"}}
	if item := e.TryExtract(context.Background(), messages); item == nil {
		t.Fatal("expected an extracted memory")
	}
	if anthropic.calls != 0 || openai.calls != 1 {
		t.Errorf("calls anthropic=%d openai=%d", anthropic.calls, openai.calls)
	}
	if openai.lastReq.Model != "gpt-4o-mini" {
		t.Errorf("model = %q", openai.lastReq.Model)
	}
}

func TestTryExtractChineseTrigger(t *testing.T) {
	anthropic := &stubProvider{name: provider.NameAnthropic, configured: true, reply: extractionReply}
	e := newTestEngine(anthropic, &stubProvider{name: provider.NameOpenAI})

	messages := []model.ChatMessage{{Role: "user", Content: "记住这个电话号码"}}
	if item := e.TryExtract(context.Background(), messages); item == nil {
		t.Fatal("expected an extracted memory")
	}
}

func TestTryExtractNoTriggerShortConversation(t *testing.T) {
	anthropic := &stubProvider{name: provider.NameAnthropic, configured: true, reply: extractionReply}
	e := newTestEngine(anthropic, &stubProvider{name: provider.NameOpenAI})

	messages := []model.ChatMessage{
		{Role: "user", Content: "hi"},
		{Role: "assistant", Content: "hello"},
	}
	if item := e.TryExtract(context.Background(), messages); item != nil {
		t.Errorf("item = %+v, want nil", item)
	}
	if anthropic.calls != 0 {
		t.Errorf("provider called %d times for a quiet conversation", anthropic.calls)
	}
}

func TestTryExtractThresholdRule(t *testing.T) {
	anthropic := &stubProvider{name: provider.NameAnthropic, configured: true, reply: extractionReply}
	e := newTestEngine(anthropic, &stubProvider{name: provider.NameOpenAI})

	long := strings.Repeat("my preferences are quite specific ", 3)
	messages := []model.ChatMessage{
		{Role: "user", Content: "one"},
		{Role: "assistant", Content: "two"},
		{Role: "user", Content: "three"},
		{Role: "assistant", Content: "four"},
		{Role: "user", Content: long},
	}

	item := e.TryExtract(context.Background(), messages)
	if item == nil {
		t.Fatal("expected an extracted memory")
	}
	if anthropic.calls != 1 {
		t.Fatalf("calls = %d", anthropic.calls)
	}
	// The transcript covers the last 5 messages.
	if !strings.Contains(anthropic.lastReq.UserMessage, "one") || !strings.Contains(anthropic.lastReq.UserMessage, long) {
		t.Errorf("transcript missing messages:\n%s", anthropic.lastReq.UserMessage)
	}
}

func TestTryExtractThresholdEmptyTitleSuppressed(t *testing.T) {
	reply := `{"title":"","content":"","memory_type":"general","tags":[]}`
	anthropic := &stubProvider{name: provider.NameAnthropic, configured: true, reply: reply}
	e := newTestEngine(anthropic, &stubProvider{name: provider.NameOpenAI})

	long := strings.Repeat("nothing of note in this exchange ", 3)
	messages := []model.ChatMessage{
		{Role: "user", Content: "one"},
		{Role: "assistant", Content: "two"},
		{Role: "user", Content: "three"},
		{Role: "assistant", Content: "four"},
		{Role: "user", Content: long},
	}
	if item := e.TryExtract(context.Background(), messages); item != nil {
		t.Errorf("item = %+v, want nil for empty title", item)
	}
}

func TestTryExtractThresholdNeedsLongUserMessage(t *testing.T) {
	anthropic := &stubProvider{name: provider.NameAnthropic, configured: true, reply: extractionReply}
	e := newTestEngine(anthropic, &stubProvider{name: provider.NameOpenAI})

	messages := []model.ChatMessage{
		{Role: "user", Content: "one"},
		{Role: "assistant", Content: "two"},
		{Role: "user", Content: "three"},
		{Role: "assistant", Content: "four"},
		{Role: "user", Content: "short"},
	}
	if item := e.TryExtract(context.Background(), messages); item != nil {
		t.Errorf("item = %+v, want nil for a short latest message", item)
	}
}

func TestTryExtractSwallowsFailures(t *testing.T) {
	messages := []model.ChatMessage{{Role: "user", Content: "remember this"}}

	// Provider error.
	failing := &stubProvider{name: provider.NameAnthropic, configured: true, err: errors.New("boom")}
	e := newTestEngine(failing, &stubProvider{name: provider.NameOpenAI})
	if item := e.TryExtract(context.Background(), messages); item != nil {
		t.Errorf("item = %+v, want nil on provider error", item)
	}

	// Unparseable reply.
	garbled := &stubProvider{name: provider.NameAnthropic, configured: true, reply: "Sure! Here's the JSON you asked for"}
	e = newTestEngine(garbled, &stubProvider{name: provider.NameOpenAI})
	if item := e.TryExtract(context.Background(), messages); item != nil {
		t.Errorf("item = %+v, want nil on parse failure", item)
	}

	// Required field missing.
	partial := &stubProvider{name: provider.NameAnthropic, configured: true, reply: `{"title":"x","content":"y"}`}
	e = newTestEngine(partial, &stubProvider{name: provider.NameOpenAI})
	if item := e.TryExtract(context.Background(), messages); item != nil {
		t.Errorf("item = %+v, want nil on missing fields", item)
	}

	// Nobody configured.
	e = newTestEngine(&stubProvider{name: provider.NameAnthropic}, &stubProvider{name: provider.NameOpenAI})
	if item := e.TryExtract(context.Background(), messages); item != nil {
		t.Errorf("item = %+v, want nil with no configured provider", item)
	}
}
