package parser

import (
	"bufio"
	"errors"
	"io"
	"strings"

	"platina/internal/domain"
)

// Separator markers. Lines are matched by prefix, so anything after the
// marker on the same line is ignored.
const (
	CaseSeparator  = "==========="
	ParamSeparator = "-----------"
)

// Reader yields the cases of a golden file one at a time. It reads forward
// only and cannot be restarted.
type Reader struct {
	r    *bufio.Reader
	path string
	line int
	err  error
}

// NewReader returns a Reader over r. path is only used in error messages.
func NewReader(r io.Reader, path string) *Reader {
	return &Reader{r: bufio.NewReader(r), path: path}
}

// ParseAll reads every case from r.
func ParseAll(r io.Reader, path string) ([]*domain.TestCase, error) {
	reader := NewReader(r, path)
	var cases []*domain.TestCase
	for {
		c, err := reader.Next()
		if errors.Is(err, io.EOF) {
			return cases, nil
		}
		if err != nil {
			return nil, err
		}
		cases = append(cases, c)
	}
}

// Next returns the next case. It returns io.EOF once the input holds no
// further case header, and a *domain.FormatError for malformed input.
// Errors are sticky.
func (p *Reader) Next() (*domain.TestCase, error) {
	if p.err != nil {
		return nil, p.err
	}
	c, err := p.next()
	if err != nil {
		p.err = err
	}
	return c, err
}

func (p *Reader) next() (*domain.TestCase, error) {
	// Seeking header
	var c *domain.TestCase
	for c == nil {
		line, err := p.readLine()
		if err != nil {
			return nil, err
		}
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		name, reason := headerName(trimmed)
		if reason != "" {
			return nil, p.formatError(trimmed, "case must be in form [case]: "+reason)
		}
		c = domain.NewTestCase(name)
	}

	// Reading body
	var open string
	var value strings.Builder
	for {
		line, err := p.readLine()
		if errors.Is(err, io.EOF) {
			return nil, &domain.FormatError{Path: p.path, Reason: "end of input before case " + c.Name + " was closed"}
		}
		if err != nil {
			return nil, err
		}
		trimmed := strings.TrimSpace(line)

		if open != "" {
			if strings.HasPrefix(trimmed, ParamSeparator) {
				c.Set(open, strings.TrimSuffix(value.String(), "\n"))
				open = ""
				value.Reset()
				continue
			}
			value.WriteString(line)
			continue
		}

		switch {
		case strings.HasPrefix(trimmed, CaseSeparator):
			return c, nil
		case trimmed == "":
			continue
		}
		name, reason := headerName(trimmed)
		if reason != "" {
			return nil, p.formatError(trimmed, "parameter must be in form [param]: "+reason)
		}
		// A repeated name starts over from an empty value and keeps its slot.
		c.Set(name, "")
		open = name
	}
}

// readLine returns the next line including its newline. A final line without
// a newline is returned as is; io.EOF is only returned once nothing is left.
func (p *Reader) readLine() (string, error) {
	line, err := p.r.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", &domain.IOError{Op: "read", Path: p.path, Err: err}
	}
	if line == "" && err != nil {
		return "", io.EOF
	}
	p.line++
	return line, nil
}

func (p *Reader) formatError(content, reason string) error {
	return &domain.FormatError{Path: p.path, Line: p.line, Content: content, Reason: reason}
}

// headerName extracts name from a trimmed "[name]" line. reason is non-empty
// when the line is not a well-formed header.
func headerName(trimmed string) (name, reason string) {
	if !strings.HasPrefix(trimmed, "[") || !strings.HasSuffix(trimmed, "]") {
		return "", "missing brackets"
	}
	name = trimmed[1 : len(trimmed)-1]
	if name == "" {
		return "", "empty name"
	}
	return name, ""
}
