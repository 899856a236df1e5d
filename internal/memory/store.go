// Package memory implements the durable, partitioned, human-readable record
// stores: typed memory records, relationship notes, work items, and PRDs.
package memory

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/hliang/pai/internal/model"
)

// partition pairs a physical directory with the memory type it holds. The
// general partition is the memory root itself; the typed partitions are
// subdirectories. Delete probes them in this order.
type partition struct {
	sub string // "" means the memory root
	typ string
}

var partitions = []partition{
	{sub: model.TypeWork, typ: model.TypeWork},
	{sub: model.TypeLearning, typ: model.TypeLearning},
	{sub: model.TypeRelationship, typ: model.TypeRelationship},
	{sub: "", typ: model.TypeGeneral},
}

// Store is the file-backed memory store with a write-through in-memory index.
// Every mutating operation writes to disk before touching the index; locks are
// held only around index access, never across I/O on the search path.
type Store struct {
	dataRoot string

	mu    sync.Mutex
	index []model.MemoryItem
}

// NewStore creates a store rooted at the assistant data directory. The memory
// partitions live under <dataRoot>/memory, PRDs under <dataRoot>/prd.
func NewStore(dataRoot string) *Store {
	return &Store{dataRoot: dataRoot}
}

func (s *Store) memoryDir() string { return filepath.Join(s.dataRoot, "memory") }
func (s *Store) prdDir() string    { return filepath.Join(s.dataRoot, "prd") }

func (s *Store) partitionDir(memoryType string) string {
	switch memoryType {
	case model.TypeWork, model.TypeLearning, model.TypeRelationship:
		return filepath.Join(s.memoryDir(), memoryType)
	default:
		return s.memoryDir()
	}
}

func (s *Store) ensureDirs() error {
	dirs := []string{
		s.memoryDir(),
		filepath.Join(s.memoryDir(), model.TypeWork),
		filepath.Join(s.memoryDir(), model.TypeLearning),
		filepath.Join(s.memoryDir(), model.TypeRelationship),
		s.prdDir(),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create dir %s: %w", dir, err)
		}
	}
	return nil
}

// Save writes the record to its partition and appends it to the index.
func (s *Store) Save(item model.MemoryItem) error {
	if err := s.ensureDirs(); err != nil {
		return err
	}

	path := filepath.Join(s.partitionDir(item.MemoryType), item.ID+".md")
	if err := os.WriteFile(path, []byte(renderMemory(item)), 0o644); err != nil {
		return fmt.Errorf("write memory: %w", err)
	}

	s.mu.Lock()
	s.index = append(s.index, item)
	s.mu.Unlock()
	return nil
}

// Memories returns a copy of the in-memory index.
func (s *Store) Memories() []model.MemoryItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.MemoryItem, len(s.index))
	copy(out, s.index)
	return out
}

// LoadAll scans every partition, parses each .md file, sorts descending by
// timestamp, and atomically replaces the index. Records missing id or title
// are skipped, never surfaced as errors.
func (s *Store) LoadAll() ([]model.MemoryItem, error) {
	items, err := s.loadFromDisk()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.index = items
	s.mu.Unlock()

	out := make([]model.MemoryItem, len(items))
	copy(out, items)
	return out, nil
}

func (s *Store) loadFromDisk() ([]model.MemoryItem, error) {
	if err := s.ensureDirs(); err != nil {
		return nil, err
	}

	var items []model.MemoryItem
	for _, p := range partitions {
		dir := filepath.Join(s.memoryDir(), p.sub)
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
				continue
			}
			content, err := os.ReadFile(filepath.Join(dir, entry.Name()))
			if err != nil {
				continue
			}
			if item, ok := parseMemory(string(content), p.typ); ok {
				items = append(items, item)
			}
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Timestamp > items[j].Timestamp
	})
	return items, nil
}

// Delete probes each partition in fixed order and removes the first file named
// <id>.md. The index entry is cleared even when no file was found on disk.
func (s *Store) Delete(id string) error {
	for _, p := range partitions {
		path := filepath.Join(s.memoryDir(), p.sub, id+".md")
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("delete memory: %w", err)
		}
		break
	}

	s.mu.Lock()
	kept := s.index[:0]
	for _, item := range s.index {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	s.index = kept
	s.mu.Unlock()
	return nil
}

// Search re-reads the store from disk so external file edits are reflected,
// then filters by optional type equality and case-insensitive substring match
// on title, content, or tags.
func (s *Store) Search(query, memoryType string) ([]model.MemoryItem, error) {
	items, err := s.loadFromDisk()
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(query)
	var matched []model.MemoryItem
	for _, item := range items {
		if memoryType != "" && item.MemoryType != memoryType {
			continue
		}
		if matchesQuery(item, q) {
			matched = append(matched, item)
		}
	}
	return matched, nil
}

func matchesQuery(item model.MemoryItem, q string) bool {
	if strings.Contains(strings.ToLower(item.Title), q) ||
		strings.Contains(strings.ToLower(item.Content), q) {
		return true
	}
	for _, tag := range item.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}
