package memory

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/hliang/pai/internal/model"
)

const workMetaFile = "META.yaml"

// SaveWorkItem writes the item as a per-item directory holding a key/value
// meta file and a separate description file.
func (s *Store) SaveWorkItem(w model.WorkItem) error {
	if err := s.ensureDirs(); err != nil {
		return err
	}

	dir := filepath.Join(s.memoryDir(), model.TypeWork, w.ID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create work dir: %w", err)
	}

	completed := ""
	if w.CompletedAt != nil {
		completed = strconv.FormatInt(*w.CompletedAt, 10)
	}
	meta := fmt.Sprintf("id: %s\ntitle: %s\nstatus: %s\ncreated_at: %d\ncompleted_at: %s\n",
		w.ID, w.Title, w.Status, w.CreatedAt, completed)

	if err := os.WriteFile(filepath.Join(dir, workMetaFile), []byte(meta), 0o644); err != nil {
		return fmt.Errorf("write work meta: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "description.md"), []byte(w.Description), 0o644); err != nil {
		return fmt.Errorf("write work description: %w", err)
	}
	return nil
}

// WorkItems lists every work item directory, newest first. Items whose meta
// file is missing a title are skipped.
func (s *Store) WorkItems() ([]model.WorkItem, error) {
	if err := s.ensureDirs(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(filepath.Join(s.memoryDir(), model.TypeWork))
	if err != nil {
		return nil, nil
	}

	var items []model.WorkItem
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		content, err := os.ReadFile(filepath.Join(s.memoryDir(), model.TypeWork, entry.Name(), workMetaFile))
		if err != nil {
			continue
		}
		if item, ok := parseWorkMeta(string(content), entry.Name()); ok {
			items = append(items, item)
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt > items[j].CreatedAt
	})
	return items, nil
}

// parseWorkMeta reads the key/value meta format. Duplicate keys are last-wins,
// which is what makes the completion quirk below harmless on read.
func parseWorkMeta(content, id string) (model.WorkItem, bool) {
	item := model.WorkItem{ID: id, Status: "active"}

	for _, line := range strings.Split(content, "\n") {
		key, value, ok := strings.Cut(line, ": ")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		switch key {
		case "title":
			item.Title = value
		case "status":
			item.Status = value
		case "created_at":
			if ts, err := strconv.ParseInt(value, 10, 64); err == nil {
				item.CreatedAt = ts
			}
		case "completed_at":
			if value != "" {
				if ts, err := strconv.ParseInt(value, 10, 64); err == nil {
					item.CompletedAt = &ts
				}
			}
		}
	}

	if item.Title == "" {
		return model.WorkItem{}, false
	}
	return item, true
}

// CompleteWorkItem appends completed_at/status lines to the meta file rather
// than rewriting it. Repeated completion accumulates duplicate lines; the
// last-wins parser keeps the result stable. Known quirk, kept deliberately.
func (s *Store) CompleteWorkItem(id string) error {
	path := filepath.Join(s.memoryDir(), model.TypeWork, id, workMetaFile)

	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("work item %s not found", id)
	}

	updated := fmt.Sprintf("%s\ncompleted_at: %d\nstatus: COMPLETED",
		strings.TrimSpace(string(content)), time.Now().Unix())

	if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
		return fmt.Errorf("write work meta: %w", err)
	}
	return nil
}
