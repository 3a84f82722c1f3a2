package parser

import (
	"io"

	"platina/internal/domain"
)

// Parser turns a golden file stream into its cases
type Parser interface {
	Parse(r io.Reader, path string) ([]*domain.TestCase, error)
}

// Serializer writes cases back in the golden file grammar
type Serializer interface {
	Write(w io.Writer, cases []*domain.TestCase) error
}

// GoldenParser parses and writes the bracket/separator golden format
type GoldenParser struct{}

// NewGoldenParser creates a new GoldenParser
func NewGoldenParser() *GoldenParser {
	return &GoldenParser{}
}

// Parse reads every case of r. Nothing is returned when the stream is malformed.
func (p *GoldenParser) Parse(r io.Reader, path string) ([]*domain.TestCase, error) {
	return ParseAll(r, path)
}

// Write serializes cases to w.
func (p *GoldenParser) Write(w io.Writer, cases []*domain.TestCase) error {
	return Write(w, cases)
}
