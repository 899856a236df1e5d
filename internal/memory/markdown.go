package memory

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hliang/pai/internal/model"
)

// renderMemory serializes a record as a delimited key/value header followed by
// the free-text body. Lists are comma-space joined; an empty list renders as a
// bare "key:" line, which the parser skips, so empty round-trips to empty.
func renderMemory(item model.MemoryItem) string {
	return fmt.Sprintf(
		"---\nid: %s\ntitle: %s\ntype: %s\ntags: %s\nentities: %s\nconfidence: %s\ntimestamp: %d\n---\n\n%s",
		item.ID,
		item.Title,
		item.MemoryType,
		strings.Join(item.Tags, ", "),
		strings.Join(item.Entities, ", "),
		strconv.FormatFloat(item.Confidence, 'g', -1, 64),
		item.Timestamp,
		item.Content,
	)
}

// parseMemory parses a serialized record. Missing optional fields fall back to
// defaults (confidence 1.0, timestamp 0, empty lists); a record missing id or
// title is rejected. defaultType applies when the header has no type line.
func parseMemory(content, defaultType string) (model.MemoryItem, bool) {
	if !strings.HasPrefix(content, "---") {
		return model.MemoryItem{}, false
	}

	parts := strings.SplitN(content, "---", 3)
	if len(parts) < 3 {
		return model.MemoryItem{}, false
	}

	item := model.MemoryItem{
		MemoryType: defaultType,
		Tags:       []string{},
		Entities:   []string{},
		Confidence: 1.0,
		Content:    strings.TrimSpace(parts[2]),
	}

	for _, line := range strings.Split(parts[1], "\n") {
		line = strings.TrimSpace(line)
		key, value, ok := strings.Cut(line, ": ")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		switch key {
		case "id":
			item.ID = value
		case "title":
			item.Title = value
		case "type":
			item.MemoryType = value
		case "tags":
			item.Tags = strings.Split(value, ", ")
		case "entities":
			item.Entities = strings.Split(value, ", ")
		case "confidence":
			if c, err := strconv.ParseFloat(value, 64); err == nil {
				item.Confidence = c
			}
		case "timestamp":
			if ts, err := strconv.ParseInt(value, 10, 64); err == nil {
				item.Timestamp = ts
			}
		}
	}

	if !item.Valid() {
		return model.MemoryItem{}, false
	}
	return item, true
}
