package parser

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"platina/internal/domain"
)

// flat is a comparable view of a parsed case
type flat struct {
	Name   string
	Order  []string
	Values map[string]string
}

func flatten(cases []*domain.TestCase) []flat {
	out := make([]flat, 0, len(cases))
	for _, c := range cases {
		f := flat{Name: c.Name, Order: c.Params(), Values: map[string]string{}}
		for _, p := range f.Order {
			f.Values[p], _ = c.Get(p)
		}
		out = append(out, f)
	}
	return out
}

func TestParseAll(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []flat
	}{
		{
			name:  "empty file",
			input: "",
			want:  []flat{},
		},
		{
			name:  "whitespace only",
			input: "\n   \n\t\n",
			want:  []flat{},
		},
		{
			name: "single case",
			input: `[c1]
[input]
a test case run
-----------
[expected_output]
a result run
-----------
===========

`,
			want: []flat{{
				Name:   "c1",
				Order:  []string{"input", "expected_output"},
				Values: map[string]string{"input": "a test case run", "expected_output": "a result run"},
			}},
		},
		{
			name: "multi-line and empty values",
			input: `
[multi]
[body]
line one

line three
-----------
[empty]
-----------
===========
`,
			want: []flat{{
				Name:   "multi",
				Order:  []string{"body", "empty"},
				Values: map[string]string{"body": "line one\n\nline three", "empty": ""},
			}},
		},
		{
			name: "separators matched by prefix",
			input: `[a]
[p]
x
----------- trailing text
=========== end of a
[b]
===========`,
			want: []flat{
				{Name: "a", Order: []string{"p"}, Values: map[string]string{"p": "x"}},
				{Name: "b", Order: []string{}, Values: map[string]string{}},
			},
		},
		{
			name: "value lines kept verbatim",
			input: "[c]\n[p]\n  [not a header]\n\t===========\n-----------\n===========\n",
			want: []flat{{
				Name:   "c",
				Order:  []string{"p"},
				Values: map[string]string{"p": "  [not a header]\n\t==========="},
			}},
		},
		{
			name: "blank lines between parameters",
			input: `[c]

[p]
1
-----------

[q]
2
-----------

===========
`,
			want: []flat{{
				Name:   "c",
				Order:  []string{"p", "q"},
				Values: map[string]string{"p": "1", "q": "2"},
			}},
		},
		{
			name: "duplicate parameter keeps first slot and last value",
			input: `[c]
[p]
first
-----------
[q]
other
-----------
[p]
second
-----------
===========
`,
			want: []flat{{
				Name:   "c",
				Order:  []string{"p", "q"},
				Values: map[string]string{"p": "second", "q": "other"},
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cases, err := ParseAll(strings.NewReader(tt.input), "test.golden")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, flatten(cases)); diff != "" {
				t.Errorf("ParseAll() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseAll_FormatErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantLine int
		wantText string
	}{
		{
			name:     "case header without brackets",
			input:    "c1\n===========\n",
			wantLine: 1,
			wantText: "c1",
		},
		{
			name:     "case header with empty name",
			input:    "\n[]\n===========\n",
			wantLine: 2,
			wantText: "empty name",
		},
		{
			name:     "case header missing closing bracket",
			input:    "[c1\n===========\n",
			wantLine: 1,
			wantText: "[c1",
		},
		{
			name:     "bare line in case body",
			input:    "[c1]\n[p]\nv\n-----------\nstray\n===========\n",
			wantLine: 5,
			wantText: "stray",
		},
		{
			name:     "parameter header with empty name",
			input:    "[c1]\n[]\n-----------\n===========\n",
			wantLine: 2,
			wantText: "parameter must be in form [param]",
		},
		{
			name:     "end of input inside case",
			input:    "[c1]\n[p]\nv\n-----------\n",
			wantText: "end of input before case c1",
		},
		{
			name:     "end of input inside parameter",
			input:    "[c1]\n[p]\nv\n",
			wantText: "end of input",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cases, err := ParseAll(strings.NewReader(tt.input), "bad.golden")
			if err == nil {
				t.Fatalf("expected error, got %d cases", len(cases))
			}
			if cases != nil {
				t.Errorf("expected no cases on error, got %d", len(cases))
			}
			var fe *domain.FormatError
			if !errors.As(err, &fe) {
				t.Fatalf("expected *domain.FormatError, got %T: %v", err, err)
			}
			if !errors.Is(err, domain.ErrFormat) {
				t.Errorf("expected errors.Is(err, ErrFormat)")
			}
			if fe.Line != tt.wantLine {
				t.Errorf("expected line %d, got %d", tt.wantLine, fe.Line)
			}
			if !strings.Contains(err.Error(), tt.wantText) {
				t.Errorf("expected error containing %q, got %q", tt.wantText, err.Error())
			}
			if fe.Path != "bad.golden" {
				t.Errorf("expected path bad.golden, got %s", fe.Path)
			}
		})
	}
}

func TestReader_Next(t *testing.T) {
	input := "[a]\n===========\n\n[b]\n===========\n\n"
	r := NewReader(strings.NewReader(input), "")

	first, err := r.Next()
	if err != nil || first.Name != "a" {
		t.Fatalf("expected case a, got %v, %v", first, err)
	}
	second, err := r.Next()
	if err != nil || second.Name != "b" {
		t.Fatalf("expected case b, got %v, %v", second, err)
	}
	for i := 0; i < 2; i++ {
		if _, err := r.Next(); !errors.Is(err, io.EOF) {
			t.Fatalf("expected io.EOF after last case, got %v", err)
		}
	}
}

func TestReader_NextStickyError(t *testing.T) {
	r := NewReader(strings.NewReader("oops\n[a]\n===========\n"), "")
	_, first := r.Next()
	_, second := r.Next()
	if first == nil || first != second {
		t.Errorf("expected the same error twice, got %v and %v", first, second)
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk on fire") }

func TestReader_ReadError(t *testing.T) {
	_, err := ParseAll(failingReader{}, "broken.golden")
	if !errors.Is(err, domain.ErrIO) {
		t.Fatalf("expected ErrIO, got %v", err)
	}
	if !strings.Contains(err.Error(), "disk on fire") {
		t.Errorf("expected underlying error in message, got %q", err.Error())
	}
}
