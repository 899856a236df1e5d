package memory

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hliang/pai/internal/model"
)

// SavePRD writes a PRD as one markdown file per id. No structured fields.
func (s *Store) SavePRD(id, content string) error {
	if err := s.ensureDirs(); err != nil {
		return err
	}
	path := filepath.Join(s.prdDir(), id+".md")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write prd: %w", err)
	}
	return nil
}

// PRDs reads every stored PRD back.
func (s *Store) PRDs() ([]model.PRD, error) {
	if err := s.ensureDirs(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(s.prdDir())
	if err != nil {
		return nil, nil
	}

	var prds []model.PRD
	for _, entry := range entries {
		if !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		content, err := os.ReadFile(filepath.Join(s.prdDir(), entry.Name()))
		if err != nil {
			continue
		}
		prds = append(prds, model.PRD{
			ID:      strings.TrimSuffix(entry.Name(), ".md"),
			Content: string(content),
		})
	}
	return prds, nil
}
