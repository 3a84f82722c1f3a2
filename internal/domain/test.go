package domain

import "path/filepath"

// GoldenFile is a golden file discovered on disk
type GoldenFile struct {
	Path     string // Full path to the golden file
	FilePath string // Path relative to the scan root
	FileName string // Just the filename
}

// NewGoldenFile describes the golden file at path, relative to root when possible.
func NewGoldenFile(root, path string) GoldenFile {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}
	return GoldenFile{Path: path, FilePath: rel, FileName: filepath.Base(path)}
}

// Diff is a parameter whose freshly computed value differs from the stored one.
type Diff struct {
	Param    string // Parameter name
	Previous string // Value stored in the golden file before the run
	Computed string // Value produced by the test logic during the run
}

// TestCase is one named case of a golden file.
//
// Parameter values live in a map while order keeps the first-insertion order
// of the names, which is the order they are written back in. Diffs are only
// ever appended while the case runs.
type TestCase struct {
	Name string

	params map[string]string
	order  []string
	diffs  []Diff
}

// NewTestCase creates an empty case with the given name.
func NewTestCase(name string) *TestCase {
	return &TestCase{
		Name:   name,
		params: make(map[string]string),
	}
}

// Set stores value under param. A name seen for the first time is appended
// to the parameter order; a repeated name keeps its first position.
func (c *TestCase) Set(param, value string) {
	if c.params == nil {
		c.params = make(map[string]string)
	}
	if _, ok := c.params[param]; !ok {
		c.order = append(c.order, param)
	}
	c.params[param] = value
}

// Get returns the stored value of param and whether the case defines it.
func (c *TestCase) Get(param string) (string, bool) {
	v, ok := c.params[param]
	return v, ok
}

// CompareAndUpdate stores computed as the new value of param and records a
// Diff when it differs from the value stored before the call. A parameter the
// case did not define compares against the empty string.
func (c *TestCase) CompareAndUpdate(param, computed string) {
	previous := c.params[param]
	c.Set(param, computed)
	if previous != computed {
		c.diffs = append(c.diffs, Diff{
			Param:    param,
			Previous: previous,
			Computed: computed,
		})
	}
}

// Params returns the parameter names in serialization order.
func (c *TestCase) Params() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Diffs returns the mismatches recorded so far, in the order they were declared.
func (c *TestCase) Diffs() []Diff {
	out := make([]Diff, len(c.diffs))
	copy(out, c.diffs)
	return out
}

// Failed reports whether any mismatch was recorded.
func (c *TestCase) Failed() bool {
	return len(c.diffs) > 0
}
