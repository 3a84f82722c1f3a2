package execution

import (
	"context"
	"time"

	"platina/internal/domain"
)

// Sequence executes cases one at a time, in file order
type Sequence struct {
	runner   *Runner
	progress Progress
}

// NewSequence creates a new Sequence
func NewSequence(runner *Runner) *Sequence {
	return &Sequence{runner: runner}
}

// SetProgress sets the progress reporter for the sequence
func (s *Sequence) SetProgress(progress Progress) {
	s.progress = progress
}

// Execute runs every case. Mismatches never stop the sequence; ctx is only
// checked between cases.
func (s *Sequence) Execute(ctx context.Context, cases []*domain.TestCase) (time.Duration, error) {
	startTime := time.Now()
	var passed, failed int

	if s.progress != nil {
		s.progress.Start(len(cases))
	}
	for i, c := range cases {
		if err := ctx.Err(); err != nil {
			return time.Since(startTime), err
		}
		if s.runner.Run(c) {
			passed++
		} else {
			failed++
		}
		if s.progress != nil {
			s.progress.Update(i+1, passed, failed)
		}
	}

	if s.progress != nil {
		s.progress.Finish()
	}
	return time.Since(startTime), nil
}
