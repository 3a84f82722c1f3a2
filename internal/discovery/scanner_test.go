package discovery

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTree(t *testing.T, root string, files []string) {
	t.Helper()
	for _, file := range files {
		fullPath := filepath.Join(root, file)
		if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
			t.Fatalf("failed to create dir for %s: %v", file, err)
		}
		if err := os.WriteFile(fullPath, []byte("[c]\n===========\n"), 0644); err != nil {
			t.Fatalf("failed to create file %s: %v", file, err)
		}
	}
}

func TestScanner_Scan(t *testing.T) {
	tmpDir := t.TempDir()
	writeTree(t, tmpDir, []string{
		"parser/headers.golden",
		"parser/values.golden",
		"exec/echo.golden",
		"vendor/lib/dep.golden",
		"node_modules/some/file.golden",
		".cache/stale.golden",
		"notes.txt",
	})

	scanner := NewScanner(".golden", []string{"vendor", "node_modules"})

	t.Run("scans golden files correctly", func(t *testing.T) {
		results, err := scanner.Scan(tmpDir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := []string{"exec/echo.golden", "parser/headers.golden", "parser/values.golden"}
		if len(results) != len(want) {
			t.Fatalf("expected %d golden files, got %d", len(want), len(results))
		}
		for i, w := range want {
			if results[i].FilePath != filepath.FromSlash(w) {
				t.Errorf("result %d: expected %s, got %s", i, w, results[i].FilePath)
			}
			if results[i].Path != filepath.Join(tmpDir, w) {
				t.Errorf("result %d: expected full path, got %s", i, results[i].Path)
			}
		}
		if results[0].FileName != "echo.golden" {
			t.Errorf("expected file name echo.golden, got %s", results[0].FileName)
		}
	})

	t.Run("custom extension", func(t *testing.T) {
		results, err := NewScanner(".txt", nil).Scan(tmpDir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(results) != 1 || results[0].FileName != "notes.txt" {
			t.Errorf("expected notes.txt only, got %v", results)
		}
	})

	t.Run("returns error for non-existent directory", func(t *testing.T) {
		_, err := scanner.Scan("/non/existent/path")
		if err == nil {
			t.Error("expected error for non-existent directory")
		}
	})

	t.Run("returns error for file instead of directory", func(t *testing.T) {
		_, err := scanner.Scan(filepath.Join(tmpDir, "notes.txt"))
		if err == nil {
			t.Error("expected error for file path")
		}
	})
}

func TestScanner_Resolve(t *testing.T) {
	tmpDir := t.TempDir()
	writeTree(t, tmpDir, []string{"a/one.golden", "b/two.golden", "b/three.golden"})
	scanner := NewScanner(".golden", nil)

	t.Run("no args scans root", func(t *testing.T) {
		results, err := scanner.Resolve(tmpDir, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(results) != 3 {
			t.Errorf("expected 3 files, got %d", len(results))
		}
	})

	t.Run("files and directories", func(t *testing.T) {
		args := []string{filepath.Join(tmpDir, "a", "one.golden"), filepath.Join(tmpDir, "b")}
		results, err := scanner.Resolve(tmpDir, args)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(results) != 3 {
			t.Fatalf("expected 3 files, got %d", len(results))
		}
		if results[0].FilePath != filepath.Join("a", "one.golden") {
			t.Errorf("expected path relative to root, got %s", results[0].FilePath)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := scanner.Resolve(tmpDir, []string{filepath.Join(tmpDir, "nope.golden")}); err == nil {
			t.Error("expected error for missing file")
		}
	})
}
