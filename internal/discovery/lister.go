package discovery

import (
	"errors"
	"io"
	"os"

	"platina/internal/domain"
	"platina/internal/parser"
)

// Lister reads the case names of golden files
type Lister struct{}

// NewLister creates a new Lister
func NewLister() *Lister {
	return &Lister{}
}

// FindTestCases returns the case names of the golden file at path, in file
// order. Names are not deduplicated.
func (l *Lister) FindTestCases(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &domain.IOError{Op: "open", Path: path, Err: err}
	}
	defer f.Close()

	var names []string
	reader := parser.NewReader(f, path)
	for {
		c, err := reader.Next()
		if errors.Is(err, io.EOF) {
			return names, nil
		}
		if err != nil {
			return nil, err
		}
		names = append(names, c.Name)
	}
}
