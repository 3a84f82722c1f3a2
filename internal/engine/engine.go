// Package engine runs the cases of one golden file through a tester and
// optionally rewrites the file with the values the tester computed.
package engine

import (
	"context"
	"time"

	"go.uber.org/zap"

	"platina/internal/domain"
	"platina/internal/execution"
	"platina/internal/parser"
	"platina/internal/report"
	"platina/internal/storage"
)

// Mode selects whether a run rewrites the golden file
type Mode int

const (
	// ModeCheck only compares
	ModeCheck Mode = iota
	// ModeUpdate compares, then rewrites the file with the computed values
	ModeUpdate
)

func (m Mode) String() string {
	if m == ModeUpdate {
		return "update"
	}
	return "check"
}

// Option configures a TestFile
type Option func(*TestFile)

// WithLogger sets the logger used for run diagnostics
func WithLogger(logger *zap.Logger) Option {
	return func(f *TestFile) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithProgress reports per-case progress to p
func WithProgress(p execution.Progress) Option {
	return func(f *TestFile) {
		f.progress = p
	}
}

// TestFile is a golden file bound to the path it is read from and written to
type TestFile struct {
	path     string
	store    *storage.GoldenFile
	logger   *zap.Logger
	progress execution.Progress
}

// NewTestFile creates a TestFile for path. Nothing is read until Run.
func NewTestFile(path string, opts ...Option) *TestFile {
	f := &TestFile{
		path:   path,
		store:  storage.NewGoldenFile(parser.NewGoldenParser()),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Path returns the golden file path
func (f *TestFile) Path() string {
	return f.path
}

// Run parses the file, hands every case to tester in file order and
// aggregates the mismatches. In update mode the file is rewritten after all
// cases ran, whether or not they matched.
//
// The returned result is never nil. Format and IO errors abort before any
// case runs and leave the file untouched; a non-empty report is returned as
// an *domain.AssertionFailure.
func (f *TestFile) Run(ctx context.Context, tester execution.Tester, mode Mode) (*domain.FileResult, error) {
	start := time.Now()
	result := &domain.FileResult{Path: f.path}
	log := f.logger.With(zap.String("file", f.path), zap.Stringer("mode", mode))

	cases, digest, err := f.store.Load(f.path)
	if err != nil {
		log.Debug("parse failed", zap.Error(err))
		result.Error = err
		result.Duration = time.Since(start)
		return result, err
	}
	result.Cases = cases
	result.DigestBefore = digest
	log.Debug("parsed", zap.Int("cases", len(cases)), zap.String("digest", digest))

	seq := execution.NewSequence(execution.NewRunner(tester, log))
	if f.progress != nil {
		seq.SetProgress(f.progress)
	}
	if _, err := seq.Execute(ctx, cases); err != nil {
		log.Debug("run interrupted", zap.Error(err))
		result.Error = err
		result.Duration = time.Since(start)
		return result, err
	}

	rep := report.Aggregate(cases)
	result.Report = rep.String()
	log.Debug("aggregated", zap.Int("failed_cases", len(rep.Failures)), zap.Int("mismatches", rep.Mismatches()))

	if mode == ModeUpdate {
		after, err := f.store.Save(f.path, cases)
		if err != nil {
			log.Debug("rewrite failed", zap.Error(err))
			result.Error = err
			result.Duration = time.Since(start)
			return result, err
		}
		result.Updated = true
		result.DigestAfter = after
		log.Debug("rewritten", zap.String("digest_before", digest), zap.String("digest_after", after))
	}

	result.Duration = time.Since(start)
	return result, rep.Err()
}
