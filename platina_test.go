package platina

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"
)

// resultTester derives expected_output from input.
var resultTester = TesterFunc(func(c *TestCase) {
	in, _ := c.Get("input")
	c.CompareAndUpdate("expected_output", strings.ReplaceAll(in, "test case", "result"))
})

func TestScenarios(t *testing.T) {
	files, err := filepath.Glob("testdata/*.txtar")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, file := range files {
		t.Run(strings.TrimSuffix(filepath.Base(file), ".txtar"), func(t *testing.T) {
			runScenario(t, file)
		})
	}
}

// runScenario runs input.golden through resultTester in the mode named by the
// archive comment and compares the outcome with the report, error and
// want.golden sections.
func runScenario(t *testing.T, file string) {
	archive, err := txtar.ParseFile(file)
	require.NoError(t, err)

	sections := make(map[string]string)
	for _, f := range archive.Files {
		sections[f.Name] = string(f.Data)
	}
	input, ok := sections["input.golden"]
	require.True(t, ok, "archive has no input.golden")
	update := strings.HasPrefix(string(archive.Comment), "mode: update")

	path := filepath.Join(t.TempDir(), "input.golden")
	require.NoError(t, os.WriteFile(path, []byte(input), 0644))

	_, err = New(path).Run(context.Background(), resultTester, update)

	wantErr, expectErr := sections["error"]
	switch {
	case expectErr:
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrFormat)
		assert.Contains(t, err.Error(), strings.TrimSpace(wantErr))
	case sections["report"] != "":
		var failure *AssertionFailure
		require.ErrorAs(t, err, &failure)
		if diff := cmp.Diff(sections["report"], failure.Report); diff != "" {
			t.Errorf("report mismatch (-want +got):\n%s", diff)
		}
	default:
		require.NoError(t, err)
	}

	want := input
	if w, ok := sections["want.golden"]; ok {
		want = w
	}
	if diff := cmp.Diff(want, readFile(t, path)); diff != "" {
		t.Errorf("golden file mismatch (-want +got):\n%s", diff)
	}

	if update && !expectErr {
		// the rewritten file passes and another update leaves it byte for byte
		require.NoError(t, New(path).RunTests(resultTester))
		require.NoError(t, New(path).RunTestsAndUpdate(resultTester))
		assert.Equal(t, want, readFile(t, path))
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestRunTests_Modes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cases.golden")
	content := "[c1]\n[input]\na test case run\n-----------\n[expected_output]\nWRONG\n-----------\n===========\n\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	f := New(path)

	err := f.RunTests(resultTester)
	assert.ErrorIs(t, err, ErrAssertion)
	assert.Equal(t, content, readFile(t, path))

	err = f.RunTestsAndUpdate(resultTester)
	assert.ErrorIs(t, err, ErrAssertion)
	assert.Contains(t, readFile(t, path), "a result run")

	assert.NoError(t, f.RunTests(resultTester))
}

func TestRun_Result(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cases.golden")
	require.NoError(t, os.WriteFile(path, []byte("[c1]\n[input]\nx\n-----------\n===========\n"), 0644))

	result, err := New(path).Run(context.Background(), resultTester, true)
	require.Error(t, err)

	require.Len(t, result.Cases, 1)
	assert.Equal(t, []string{"input", "expected_output"}, result.Cases[0].Params())
	assert.Equal(t, []Diff{{Param: "expected_output", Previous: "", Computed: "x"}}, result.Cases[0].Diffs())
	assert.True(t, result.Updated)
	assert.NotEqual(t, result.DigestBefore, result.DigestAfter)
}

func TestRun_IOError(t *testing.T) {
	err := New(filepath.Join(t.TempDir(), "missing.golden")).RunTests(resultTester)

	var ioErr *IOError
	require.True(t, errors.As(err, &ioErr))
	assert.Equal(t, "open", ioErr.Op)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

type fatalRecorder struct {
	testing.TB
	fatal string
}

func (r *fatalRecorder) Helper() {}

func (r *fatalRecorder) Fatal(args ...any) {
	r.fatal = fmt.Sprint(args...)
}

func TestCheck(t *testing.T) {
	dir := t.TempDir()
	pass := filepath.Join(dir, "pass.golden")
	fail := filepath.Join(dir, "fail.golden")
	require.NoError(t, os.WriteFile(pass, []byte("[c1]\n[input]\na test case\n-----------\n[expected_output]\na result\n-----------\n===========\n"), 0644))
	require.NoError(t, os.WriteFile(fail, []byte("[c1]\n[input]\na test case\n-----------\n[expected_output]\nno\n-----------\n===========\n"), 0644))

	Check(t, pass, resultTester, false)

	rec := &fatalRecorder{TB: t}
	Check(rec, fail, resultTester, false)
	assert.Equal(t, "\nFAILURES:\nCASE FAILED: c1\nPARAM MISMATCH: expected_output\nexpected: no\nactual: a result\n", rec.fatal)
}
