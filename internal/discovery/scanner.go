package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"platina/internal/domain"
)

// Scanner scans for golden files in a directory
type Scanner struct {
	extension string
	skipDirs  map[string]bool
}

// NewScanner creates a new Scanner for files ending in extension, skipping
// the given directory names
func NewScanner(extension string, skipDirs []string) *Scanner {
	skipMap := make(map[string]bool)
	for _, dir := range skipDirs {
		skipMap[dir] = true
	}
	return &Scanner{extension: extension, skipDirs: skipMap}
}

// Scan finds all golden files under root, in lexical order
func (s *Scanner) Scan(root string) ([]domain.GoldenFile, error) {
	var files []domain.GoldenFile

	root = filepath.Clean(root)
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("golden path does not exist: %s", root)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("golden path is not a directory: %s", root)
	}

	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			name := d.Name()
			// Skip hidden directories (starting with .)
			if path != root && strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			if s.skipDirs[name] {
				return filepath.SkipDir
			}
			return nil
		}

		if strings.HasSuffix(d.Name(), s.extension) {
			files = append(files, domain.NewGoldenFile(root, path))
		}
		return nil
	})

	return files, err
}

// Resolve turns explicit file arguments into golden files. Directories are
// scanned, files are taken as they are.
func (s *Scanner) Resolve(root string, args []string) ([]domain.GoldenFile, error) {
	if len(args) == 0 {
		return s.Scan(root)
	}

	var files []domain.GoldenFile
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("golden file does not exist: %s", arg)
		}
		if info.IsDir() {
			found, err := s.Scan(arg)
			if err != nil {
				return nil, err
			}
			files = append(files, found...)
			continue
		}
		files = append(files, domain.NewGoldenFile(root, arg))
	}
	return files, nil
}
