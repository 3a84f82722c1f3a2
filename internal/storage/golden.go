package storage

import (
	"encoding/hex"
	"io"
	"os"

	"github.com/zeebo/blake3"

	"platina/internal/domain"
	"platina/internal/parser"
)

// GoldenFile reads and rewrites golden files on disk. Each call opens,
// fully consumes or writes, and closes its own handle.
type GoldenFile struct {
	parser     parser.Parser
	serializer parser.Serializer
}

// NewGoldenFile creates a GoldenFile using the golden grammar
func NewGoldenFile(p *parser.GoldenParser) *GoldenFile {
	return &GoldenFile{parser: p, serializer: p}
}

// Load parses every case of the file at path and returns them with the
// blake3 digest of the bytes read.
func (g *GoldenFile) Load(path string) ([]*domain.TestCase, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", &domain.IOError{Op: "open", Path: path, Err: err}
	}
	defer f.Close()

	hasher := blake3.New()
	cases, err := g.parser.Parse(io.TeeReader(f, hasher), path)
	if err != nil {
		return nil, "", err
	}
	return cases, hex.EncodeToString(hasher.Sum(nil)), nil
}

// Save replaces the file at path with cases and returns the blake3 digest of
// the bytes written.
func (g *GoldenFile) Save(path string, cases []*domain.TestCase) (string, error) {
	f, err := os.Create(path)
	if err != nil {
		return "", &domain.IOError{Op: "create", Path: path, Err: err}
	}

	hasher := blake3.New()
	if err := g.serializer.Write(io.MultiWriter(f, hasher), cases); err != nil {
		f.Close()
		return "", &domain.IOError{Op: "write", Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return "", &domain.IOError{Op: "write", Path: path, Err: err}
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// Digest returns the blake3 digest of data as hex.
func Digest(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}
