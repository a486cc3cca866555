package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"samplehost/internal/domain"
)

// scanDirectory lists the regular files directly inside dir, sorted by name.
func scanDirectory(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", dir, err)
	}
	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// matchFilter reports whether the base name of path matches any pattern of
// filter. Matching ignores case.
func matchFilter(filter domain.FileFilter, path string) bool {
	name := strings.ToLower(filepath.Base(path))
	for _, pattern := range filter.Patterns {
		ok, err := filepath.Match(strings.ToLower(pattern), name)
		if err == nil && ok {
			return true
		}
	}
	return false
}

func applyFilter(filter domain.FileFilter, files []string) []string {
	out := make([]string, 0, len(files))
	for _, file := range files {
		if matchFilter(filter, file) {
			out = append(out, file)
		}
	}
	return out
}
