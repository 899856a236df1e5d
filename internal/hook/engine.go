// Package hook decides, after each exchange, whether to distill conversation
// content into a memory record. Everything here is best-effort: extraction
// never surfaces an error to the chat flow.
package hook

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/hliang/pai/internal/model"
	"github.com/hliang/pai/internal/provider"
)

const (
	// autoExtractEvery is the cadence modulus for ShouldAutoExtract.
	autoExtractEvery = 5

	// contextTriggerMin is the message count at which the broader,
	// threshold-triggered extraction becomes eligible. Kept as a separate
	// constant from the cadence even though both default to 5.
	contextTriggerMin = 5

	// longMessageBytes is the minimum size of the latest user message for the
	// threshold rule to fire.
	longMessageBytes = 50

	recentWindow     = 10
	transcriptWindow = 5

	extractionMaxTokens = 1024

	anthropicExtractionModel = "claude-3-haiku-20240307"
	openAIExtractionModel    = "gpt-4o-mini"
)

// triggerKeywords flag a message as worth extracting on its own.
var triggerKeywords = []string{
	"记住", "remember", "memorize",
	"重要", "important",
	"别忘了", "don't forget",
	"提醒我", "remind me",
	"学习", "learn",
	"项目", "project",
	"任务", "task",
	"会议", "meeting",
	"截止日期", "deadline",
	"人名", "name",
	"电话", "phone",
	"邮箱", "email",
	"地址", "address",
}

// Engine runs the trigger rules and the extraction call.
type Engine struct {
	providers *provider.Registry
	logger    *log.Logger
}

// NewEngine builds an engine over the shared provider registry. The logger
// may be nil.
func NewEngine(providers *provider.Registry, logger *log.Logger) *Engine {
	return &Engine{providers: providers, logger: logger}
}

// ShouldAutoExtract is the cadence predicate for callers that gate extraction
// on message count. The engine does not apply it internally.
func (e *Engine) ShouldAutoExtract(messageCount int) bool {
	return messageCount > 0 && messageCount%autoExtractEvery == 0
}

// TryExtract evaluates the trigger rules against the conversation and returns
// a new memory record, or nil when nothing fired or extraction failed. It
// never returns an error.
func (e *Engine) TryExtract(ctx context.Context, messages []model.ChatMessage) *model.MemoryItem {
	recent := lastN(messages, recentWindow)

	// Rule 1: a trigger keyword in any recent message extracts from that
	// single message.
	for _, msg := range recent {
		if !containsTrigger(msg.Content) {
			continue
		}
		if item := e.extract(ctx, singleMessagePrompt(msg.Content)); item != nil {
			return item
		}
	}

	// Rule 2: enough conversation plus a substantial latest user message
	// extracts from the recent transcript.
	if len(messages) >= contextTriggerMin && len(recent) > 0 {
		latest := recent[0]
		if latest.Role == "user" && len(latest.Content) > longMessageBytes {
			item := e.extract(ctx, transcriptPrompt(lastN(messages, transcriptWindow)))
			if item == nil || item.Title == "" {
				// An empty title means "nothing worth remembering".
				return nil
			}
			return item
		}
	}

	return nil
}

// lastN returns up to n trailing messages, newest first.
func lastN(messages []model.ChatMessage, n int) []model.ChatMessage {
	var out []model.ChatMessage
	for i := len(messages) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, messages[i])
	}
	return out
}

func containsTrigger(content string) bool {
	lower := strings.ToLower(content)
	for _, kw := range triggerKeywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

func singleMessagePrompt(content string) string {
	return fmt.Sprintf(`Analyze the following text and extract important information as a memory item.
Return a JSON object with these fields:
- title: A short descriptive title (max 50 characters)
- content: The main content to remember
- memory_type: One of WORK, LEARNING, RELATIONSHIP, or general
- tags: Array of relevant tags

Text to analyze:
%s

Respond with ONLY valid JSON, no other text.`, content)
}

func transcriptPrompt(recent []model.ChatMessage) string {
	lines := make([]string, 0, len(recent))
	for _, msg := range recent {
		lines = append(lines, fmt.Sprintf("%s: %s", msg.Role, msg.Content))
	}

	return fmt.Sprintf(`Analyze the following conversation and extract any important information that should be remembered.
Look for:
- User preferences or requirements
- Project or task details
- Important dates or deadlines
- Contact information
- Learning or knowledge gained
- Relationship details

Conversation:
%s

Respond with a JSON object with these fields:
- title: A short descriptive title (max 50 characters)
- content: The important information to remember
- memory_type: One of WORK, LEARNING, RELATIONSHIP, or general
- tags: Array of relevant tags

If nothing important found, respond with: {"title": "", "content": "", "memory_type": "general", "tags": []}`,
		strings.Join(lines, "\n\n"))
}

// extract sends the prompt to whichever of Anthropic/OpenAI is configured
// (Anthropic preferred) on its cheap extraction model, and parses the strict
// JSON reply. Any failure yields nil.
func (e *Engine) extract(ctx context.Context, prompt string) *model.MemoryItem {
	p := e.providers.ByName(provider.NameAnthropic)
	modelID := anthropicExtractionModel
	if p == nil || !p.Configured() {
		p = e.providers.ByName(provider.NameOpenAI)
		modelID = openAIExtractionModel
	}
	if p == nil || !p.Configured() {
		return nil
	}

	reply, err := p.Chat(ctx, provider.ChatRequest{
		Model:       modelID,
		UserMessage: prompt,
		MaxTokens:   extractionMaxTokens,
	})
	if err != nil {
		if e.logger != nil {
			e.logger.Debug("memory extraction call failed", "provider", p.Name(), "err", err)
		}
		return nil
	}

	return parseExtraction(reply)
}

// parseExtraction decodes the model reply. All four fields must be present;
// anything else yields nil.
func parseExtraction(reply string) *model.MemoryItem {
	var parsed struct {
		Title      *string   `json:"title"`
		Content    *string   `json:"content"`
		MemoryType *string   `json:"memory_type"`
		Tags       *[]string `json:"tags"`
	}
	if err := json.Unmarshal([]byte(strings.TrimSpace(reply)), &parsed); err != nil {
		return nil
	}
	if parsed.Title == nil || parsed.Content == nil || parsed.MemoryType == nil || parsed.Tags == nil {
		return nil
	}

	return &model.MemoryItem{
		ID:         model.NewID("memory"),
		Title:      *parsed.Title,
		Content:    *parsed.Content,
		MemoryType: *parsed.MemoryType,
		Timestamp:  time.Now().UnixMilli(),
		Tags:       *parsed.Tags,
		Entities:   []string{},
		Confidence: 0.8,
	}
}
