package ingest

import (
	"fmt"
	"os"
	"path/filepath"
)

type SourceFile struct {
	Path string
}

// DiscoverSource lists the regular files directly inside dir in name order.
// Subdirectories are not descended into.
func DiscoverSource(dir string) ([]SourceFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", dir, err)
	}
	var out []SourceFile
	for _, e := range entries {
		if e.IsDir() || !e.Type().IsRegular() {
			continue
		}
		out = append(out, SourceFile{Path: filepath.Join(dir, e.Name())})
	}
	return out, nil
}
