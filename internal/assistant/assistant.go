// Package assistant orchestrates a conversation turn: model resolution,
// context construction, provider dispatch, and message recording.
package assistant

import (
	"context"
	"fmt"
	"time"

	"github.com/hliang/pai/internal/config"
	"github.com/hliang/pai/internal/memory"
	"github.com/hliang/pai/internal/message"
	"github.com/hliang/pai/internal/model"
	"github.com/hliang/pai/internal/provider"
)

// Assistant binds the provider registry to the conversation and memory state.
// Settings are a snapshot taken before any network call; hook extraction and
// session bookkeeping are wired by the caller, not here.
type Assistant struct {
	settings  config.Settings
	providers *provider.Registry
	memories  *memory.Store
	messages  *message.Log
}

// New builds an assistant over an already-loaded settings snapshot.
func New(settings config.Settings, providers *provider.Registry, memories *memory.Store, messages *message.Log) *Assistant {
	return &Assistant{
		settings:  settings,
		providers: providers,
		memories:  memories,
		messages:  messages,
	}
}

// Chat runs one conversation turn. The user message is recorded even when the
// provider call fails; the assistant reply is recorded only on success, so a
// returned error means no assistant turn exists.
func (a *Assistant) Chat(ctx context.Context, text, modelOverride, systemPrompt string) (string, error) {
	modelID := modelOverride
	if modelID == "" {
		modelID = a.settings.DefaultModel
	}
	if modelID == "" {
		modelID = config.DefaultModel
	}
	p := a.providers.ForModel(modelID)

	// Context is built from the history as it stood before this turn.
	contextBlock := BuildContext(a.messages.Messages(), a.memories.Memories())
	outgoing := text
	if contextBlock != "" {
		outgoing = fmt.Sprintf("%s\n\nUser: %s", contextBlock, text)
	}

	reply, chatErr := p.Chat(ctx, provider.ChatRequest{
		Model:        modelID,
		SystemPrompt: systemPrompt,
		UserMessage:  outgoing,
	})

	if err := a.messages.Append(model.ChatMessage{
		Role:      "user",
		Content:   text,
		Timestamp: time.Now().Unix(),
	}); err != nil {
		return "", err
	}
	if chatErr != nil {
		return "", chatErr
	}
	if err := a.messages.Append(model.ChatMessage{
		Role:      "assistant",
		Content:   reply,
		Timestamp: time.Now().Unix(),
	}); err != nil {
		return "", err
	}
	return reply, nil
}

// Models returns the live model catalog. Listing never fails; with no
// configured provider it degrades to the placeholder catalog.
func (a *Assistant) Models(ctx context.Context) []model.ModelInfo {
	return a.providers.ListModels(ctx)
}

// History returns the recorded conversation, oldest first.
func (a *Assistant) History() []model.ChatMessage {
	return a.messages.Messages()
}
