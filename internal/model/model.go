// Package model defines the core data types shared across the assistant.
package model

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Memory type partitions. Anything else falls into the general partition.
const (
	TypeWork         = "WORK"
	TypeLearning     = "LEARNING"
	TypeRelationship = "RELATIONSHIP"
	TypeGeneral      = "general"
)

// MemoryItem is a remembered fact or note, persisted as one markdown file.
type MemoryItem struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	MemoryType string   `json:"memory_type"`
	Timestamp  int64    `json:"timestamp"` // milliseconds
	Tags       []string `json:"tags"`
	Entities   []string `json:"entities"`
	Confidence float64  `json:"confidence"`
}

// Valid reports whether the item can be stored and reloaded. Records failing
// this are skipped on load, never surfaced as errors.
func (m MemoryItem) Valid() bool {
	return m.ID != "" && m.Title != ""
}

// ChatMessage is one conversation turn. Immutable once appended; append order
// must equal timestamp order.
type ChatMessage struct {
	Role      string `json:"role"` // user | assistant | system
	Content   string `json:"content"`
	Timestamp int64  `json:"timestamp"` // seconds
}

// Session groups a conversation. Exactly one session is current at a time,
// tracked by a pointer file that is overwritten on every switch.
type Session struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	CreatedAt    int64  `json:"created_at"`
	LastActive   int64  `json:"last_active"`
	MessageCount int    `json:"message_count"`
}

// ModelInfo is a provider-reported model descriptor. Fetched live, never
// persisted.
type ModelInfo struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Provider string `json:"provider"`
}

// Skill describes one entry of the skills catalog.
type Skill struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Category    string `json:"category" yaml:"category"`
}

// RelationshipNote is one entry of the append-only relationship log.
type RelationshipNote struct {
	NoteType  string `json:"note_type"`
	Entity    string `json:"entity"`
	Content   string `json:"content"`
	Timestamp int64  `json:"timestamp"`
}

// WorkItem is a tracked piece of work stored as a per-item directory.
type WorkItem struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	CreatedAt   int64  `json:"created_at"`
	CompletedAt *int64 `json:"completed_at,omitempty"`
}

// PRD is a product requirements document, one markdown file per id.
type PRD struct {
	ID      string `json:"id"`
	Content string `json:"content"`
}

var (
	entropyMu sync.Mutex
	entropy   = rand.New(rand.NewSource(time.Now().UnixNano()))
)

// NewID returns a process-unique id of the form "<kind>-<ULID>". The ULID
// component encodes the creation instant.
func NewID(kind string) string {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return fmt.Sprintf("%s-%s", kind, ulid.MustNew(ulid.Timestamp(time.Now()), entropy))
}
