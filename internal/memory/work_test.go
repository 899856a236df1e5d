package memory

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hliang/pai/internal/model"
)

func TestWorkItemSaveAndList(t *testing.T) {
	s := newTestStore(t)

	items := []model.WorkItem{
		{ID: "work-a", Title: "Older", Description: "first", Status: "active", CreatedAt: 100},
		{ID: "work-b", Title: "Newer", Description: "second", Status: "active", CreatedAt: 200},
	}
	for _, item := range items {
		if err := s.SaveWorkItem(item); err != nil {
			t.Fatalf("save %s: %v", item.ID, err)
		}
	}

	got, err := s.WorkItems()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 items, got %d", len(got))
	}
	if got[0].ID != "work-b" || got[1].ID != "work-a" {
		t.Errorf("order = %s,%s, want newest first", got[0].ID, got[1].ID)
	}

	desc, err := os.ReadFile(filepath.Join(s.memoryDir(), "WORK", "work-a", "description.md"))
	if err != nil {
		t.Fatalf("read description: %v", err)
	}
	if string(desc) != "first" {
		t.Errorf("description = %q", desc)
	}
}

func TestWorkItemsSkipMissingTitle(t *testing.T) {
	s := newTestStore(t)
	if err := s.SaveWorkItem(model.WorkItem{ID: "work-ok", Title: "ok", Status: "active", CreatedAt: 1}); err != nil {
		t.Fatalf("save: %v", err)
	}

	dir := filepath.Join(s.memoryDir(), "WORK", "work-broken")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, workMetaFile), []byte("status: active\ncreated_at: 2\n"), 0o644); err != nil {
		t.Fatalf("write meta: %v", err)
	}

	got, err := s.WorkItems()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 || got[0].ID != "work-ok" {
		t.Errorf("got %+v, want only the titled item", got)
	}
}

func TestCompleteWorkItemAppendsAndParsesLastWins(t *testing.T) {
	s := newTestStore(t)
	if err := s.SaveWorkItem(model.WorkItem{ID: "work-c", Title: "Finish report", Status: "active", CreatedAt: 50}); err != nil {
		t.Fatalf("save: %v", err)
	}

	// Completing twice accumulates duplicate keys in the meta file; the
	// last-wins parser still yields a single completed item.
	if err := s.CompleteWorkItem("work-c"); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if err := s.CompleteWorkItem("work-c"); err != nil {
		t.Fatalf("complete again: %v", err)
	}

	meta, err := os.ReadFile(filepath.Join(s.memoryDir(), "WORK", "work-c", workMetaFile))
	if err != nil {
		t.Fatalf("read meta: %v", err)
	}
	if n := strings.Count(string(meta), "status:"); n != 3 {
		t.Errorf("status lines = %d, want the original plus two appended", n)
	}

	got, err := s.WorkItems()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 item, got %d", len(got))
	}
	if got[0].Status != "COMPLETED" {
		t.Errorf("status = %q", got[0].Status)
	}
	if got[0].CompletedAt == nil {
		t.Error("completed_at not set")
	}
}

func TestCompleteWorkItemNotFound(t *testing.T) {
	s := newTestStore(t)
	if err := s.CompleteWorkItem("work-missing"); err == nil {
		t.Fatal("expected error for missing work item")
	}
}
