package assistant

import (
	"fmt"
	"strings"

	"github.com/hliang/pai/internal/keyword"
	"github.com/hliang/pai/internal/model"
)

const (
	maxRelevantMemories = 5
	recentWindow        = 10
)

// BuildContext renders the text block prepended to the next outgoing user
// message. Keyword-matched memories take precedence; the recent-conversation
// rendering is a fallback for an empty memory store, never concatenated with
// memory blocks.
func BuildContext(messages []model.ChatMessage, memories []model.MemoryItem) string {
	var b strings.Builder

	if last, ok := lastUserMessage(messages); ok {
		if query := keyword.Extract(last.Content); query != "" {
			relevant := relevantMemories(memories, query)
			if len(relevant) > 0 {
				b.WriteString("## Relevant Memories\n")
				for _, m := range relevant {
					fmt.Fprintf(&b, "### %s\n%s\n\n", m.Title, m.Content)
				}
			}
		}
	}

	if len(memories) == 0 && len(messages) > 0 {
		b.WriteString("## Recent Conversation\n")
		start := len(messages) - recentWindow
		if start < 0 {
			start = 0
		}
		for _, msg := range messages[start:] {
			fmt.Fprintf(&b, "%s: %s\n", msg.Role, msg.Content)
		}
	}

	return b.String()
}

func lastUserMessage(messages []model.ChatMessage) (model.ChatMessage, bool) {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == "user" {
			return messages[i], true
		}
	}
	return model.ChatMessage{}, false
}

// relevantMemories keeps memories whose title, tags, or entities contain the
// whole keyword string as a case-insensitive substring, up to the cap.
func relevantMemories(memories []model.MemoryItem, query string) []model.MemoryItem {
	var relevant []model.MemoryItem
	for _, m := range memories {
		if !matchesKeywords(m, query) {
			continue
		}
		relevant = append(relevant, m)
		if len(relevant) == maxRelevantMemories {
			break
		}
	}
	return relevant
}

func matchesKeywords(m model.MemoryItem, query string) bool {
	if strings.Contains(strings.ToLower(m.Title), query) {
		return true
	}
	for _, t := range m.Tags {
		if strings.Contains(strings.ToLower(t), query) {
			return true
		}
	}
	for _, e := range m.Entities {
		if strings.Contains(strings.ToLower(e), query) {
			return true
		}
	}
	return false
}
