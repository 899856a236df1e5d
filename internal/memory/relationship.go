package memory

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/hliang/pai/internal/model"
)

// SaveRelationshipNote appends a note to the per-month, per-day relationship
// log under the RELATIONSHIP partition.
func (s *Store) SaveRelationshipNote(note model.RelationshipNote) error {
	if err := s.ensureDirs(); err != nil {
		return err
	}

	now := time.Now().UTC()
	dir := filepath.Join(s.memoryDir(), model.TypeRelationship, now.Format("2006-01"))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create relationship dir: %w", err)
	}

	entry := fmt.Sprintf("## %s @%s\n\n%s\n\n---\n", note.NoteType, note.Entity, note.Content)
	path := filepath.Join(dir, now.Format("2006-01-02")+".md")

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open relationship log: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(entry); err != nil {
		return fmt.Errorf("append relationship note: %w", err)
	}
	return nil
}

// RelationshipNotes reads every monthly log back. Parsing splits on the
// "## type @entity" headers; content lines that themselves start with "##"
// are lost, a known limitation of the log format.
func (s *Store) RelationshipNotes() ([]model.RelationshipNote, error) {
	if err := s.ensureDirs(); err != nil {
		return nil, err
	}

	root := filepath.Join(s.memoryDir(), model.TypeRelationship)
	months, err := os.ReadDir(root)
	if err != nil {
		return nil, nil
	}

	var notes []model.RelationshipNote
	for _, month := range months {
		if !month.IsDir() {
			continue
		}
		days, err := os.ReadDir(filepath.Join(root, month.Name()))
		if err != nil {
			continue
		}
		for _, day := range days {
			if !strings.HasSuffix(day.Name(), ".md") {
				continue
			}
			content, err := os.ReadFile(filepath.Join(root, month.Name(), day.Name()))
			if err != nil {
				continue
			}
			notes = append(notes, parseRelationshipNotes(string(content))...)
		}
	}

	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].Timestamp > notes[j].Timestamp
	})
	return notes, nil
}

func parseRelationshipNotes(content string) []model.RelationshipNote {
	var notes []model.RelationshipNote
	now := time.Now().Unix()

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "## "):
			noteType, entity, ok := strings.Cut(line[3:], " @")
			if ok {
				notes = append(notes, model.RelationshipNote{
					NoteType:  noteType,
					Entity:    entity,
					Timestamp: now,
				})
			}
		case line != "" && !strings.HasPrefix(line, "---") && !strings.HasPrefix(line, "##"):
			if len(notes) == 0 {
				continue
			}
			last := &notes[len(notes)-1]
			if last.Content != "" {
				last.Content += "\n"
			}
			last.Content += line
		}
	}
	return notes
}
