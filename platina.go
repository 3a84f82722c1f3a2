package platina

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"platina/internal/domain"
	"platina/internal/engine"
	"platina/internal/execution"
)

type (
	// TestCase is one named case of a golden file
	TestCase = domain.TestCase
	// Diff is a declared value that differs from the stored one
	Diff = domain.Diff
	// Tester is the test logic run against each case
	Tester = execution.Tester
	// TesterFunc adapts a function to Tester
	TesterFunc = execution.TesterFunc
	// Progress receives per-case progress of a run
	Progress = execution.Progress
	// Result is the outcome of running one golden file
	Result = domain.FileResult

	// FormatError reports a golden file that violates the grammar
	FormatError = domain.FormatError
	// IOError reports a golden file that could not be read or written
	IOError = domain.IOError
	// AssertionFailure carries the mismatch report of a failed run
	AssertionFailure = domain.AssertionFailure
)

// Sentinels matched with errors.Is
var (
	ErrFormat    = domain.ErrFormat
	ErrIO        = domain.ErrIO
	ErrAssertion = domain.ErrAssertion
)

// Option configures a TestFile
type Option = engine.Option

// WithLogger logs run diagnostics to logger.
func WithLogger(logger *zap.Logger) Option {
	return engine.WithLogger(logger)
}

// WithProgress reports per-case progress to p.
func WithProgress(p Progress) Option {
	return engine.WithProgress(p)
}

// TestFile is a golden file that can be run in check or update mode
type TestFile struct {
	file *engine.TestFile
}

// New binds a TestFile to path. The file is read on each run.
func New(path string, opts ...Option) *TestFile {
	return &TestFile{file: engine.NewTestFile(path, opts...)}
}

// RunTests runs every case through t without touching the file.
func (f *TestFile) RunTests(t Tester) error {
	_, err := f.Run(context.Background(), t, false)
	return err
}

// RunTestsAndUpdate runs every case through t and rewrites the file with the
// computed values. It still returns an *AssertionFailure when any value changed.
func (f *TestFile) RunTestsAndUpdate(t Tester) error {
	_, err := f.Run(context.Background(), t, true)
	return err
}

// Run runs the file and returns its result alongside the error. ctx is
// checked between cases; a cancelled run never rewrites the file.
func (f *TestFile) Run(ctx context.Context, t Tester, update bool) (*Result, error) {
	mode := engine.ModeCheck
	if update {
		mode = engine.ModeUpdate
	}
	return f.file.Run(ctx, t, mode)
}

// Check runs the golden file at path and fails tb with the report on any
// error or mismatch.
func Check(tb testing.TB, path string, t Tester, update bool, opts ...Option) {
	tb.Helper()
	if _, err := New(path, opts...).Run(context.Background(), t, update); err != nil {
		tb.Fatal(err)
	}
}
