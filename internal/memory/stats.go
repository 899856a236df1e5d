package memory

import (
	"os"
	"path/filepath"
	"strings"
)

// Stats holds store statistics.
type Stats struct {
	Root       string           `json:"root"`
	Total      int              `json:"total"`
	Partitions []PartitionStats `json:"partitions"`
}

// PartitionStats holds per-partition record counts.
type PartitionStats struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// Stats counts records per partition from disk.
func (s *Store) Stats() (*Stats, error) {
	if err := s.ensureDirs(); err != nil {
		return nil, err
	}

	st := &Stats{Root: s.memoryDir()}
	for _, p := range partitions {
		count := 0
		entries, err := os.ReadDir(filepath.Join(s.memoryDir(), p.sub))
		if err == nil {
			for _, entry := range entries {
				if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".md") {
					count++
				}
			}
		}
		st.Partitions = append(st.Partitions, PartitionStats{Type: p.typ, Count: count})
		st.Total += count
	}
	return st, nil
}
