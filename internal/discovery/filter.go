package discovery

import (
	"path/filepath"
	"strings"

	"platina/internal/domain"
)

// Filter filters golden files by name pattern
type Filter struct{}

// NewFilter creates a new Filter
func NewFilter() *Filter {
	return &Filter{}
}

// FilterByName filters golden files by name pattern using wildcard matching.
// Supports patterns like "*parser.golden" or "*sql*"
func (f *Filter) FilterByName(files []domain.GoldenFile, pattern string) []domain.GoldenFile {
	if pattern == "" {
		return files
	}

	var filtered []domain.GoldenFile
	for _, file := range files {
		if Match(pattern, file.FileName) {
			filtered = append(filtered, file)
		}
	}
	return filtered
}

// FilterNames keeps the names (e.g. case names) matching pattern.
func (f *Filter) FilterNames(names []string, pattern string) []string {
	if pattern == "" {
		return names
	}

	var filtered []string
	for _, name := range names {
		if Match(pattern, name) {
			filtered = append(filtered, name)
		}
	}
	return filtered
}

// Match reports whether name matches pattern. Wildcard patterns fall back to
// checking that every literal part occurs in name; plain patterns are
// substring matches.
func Match(pattern, name string) bool {
	// Try to match using filepath.Match (supports * and ? wildcards)
	if matched, err := filepath.Match(pattern, name); err == nil && matched {
		return true
	}

	if strings.Contains(pattern, "*") {
		hasNonEmptyPart := false
		for _, part := range strings.Split(pattern, "*") {
			if part == "" {
				continue
			}
			if !strings.Contains(name, part) {
				return false
			}
			hasNonEmptyPart = true
		}
		return hasNonEmptyPart
	}

	// If no wildcards, do a simple contains check
	if !strings.Contains(pattern, "?") {
		return strings.Contains(name, pattern)
	}
	return false
}
