// Package message implements the append-only file-per-message log with an
// in-memory mirror.
package message

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/hliang/pai/internal/model"
)

// Log persists one JSON file per message, named by the message timestamp, and
// mirrors the full history in memory. Appends write to disk first.
type Log struct {
	dir string

	mu       sync.Mutex
	messages []model.ChatMessage
}

// NewLog creates a log rooted at <dataRoot>/messages.
func NewLog(dataRoot string) *Log {
	return &Log{dir: filepath.Join(dataRoot, "messages")}
}

// Load reads every message file and replaces the mirror, sorted ascending by
// timestamp so append order equals timestamp order. Unreadable files are
// skipped.
func (l *Log) Load() error {
	var messages []model.ChatMessage

	entries, err := os.ReadDir(l.dir)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("read messages dir: %w", err)
	}
	for _, entry := range entries {
		if !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		raw, err := os.ReadFile(filepath.Join(l.dir, entry.Name()))
		if err != nil {
			continue
		}
		var msg model.ChatMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			continue
		}
		messages = append(messages, msg)
	}

	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].Timestamp < messages[j].Timestamp
	})

	l.mu.Lock()
	l.messages = messages
	l.mu.Unlock()
	return nil
}

// Append writes the message to disk, then appends it to the mirror.
func (l *Log) Append(msg model.ChatMessage) error {
	if err := os.MkdirAll(l.dir, 0o755); err != nil {
		return fmt.Errorf("create messages dir: %w", err)
	}

	raw, err := json.MarshalIndent(msg, "", "  ")
	if err != nil {
		return fmt.Errorf("encode message: %w", err)
	}
	path := filepath.Join(l.dir, fmt.Sprintf("%d.json", msg.Timestamp))
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write message: %w", err)
	}

	l.mu.Lock()
	l.messages = append(l.messages, msg)
	l.mu.Unlock()
	return nil
}

// Messages returns a copy of the mirror.
func (l *Log) Messages() []model.ChatMessage {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]model.ChatMessage, len(l.messages))
	copy(out, l.messages)
	return out
}

// Len returns the number of messages in the mirror.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.messages)
}

// Clear removes the message directory, recreates it, and empties the mirror.
func (l *Log) Clear() error {
	if _, err := os.Stat(l.dir); err == nil {
		if err := os.RemoveAll(l.dir); err != nil {
			return fmt.Errorf("clear messages: %w", err)
		}
		if err := os.MkdirAll(l.dir, 0o755); err != nil {
			return fmt.Errorf("recreate messages dir: %w", err)
		}
	}

	l.mu.Lock()
	l.messages = nil
	l.mu.Unlock()
	return nil
}
