package execution

import (
	"context"
	"time"

	"platina/internal/domain"
)

// Tester is the test logic run against each case. It reads parameters with
// Get and declares computed values with CompareAndUpdate.
type Tester interface {
	RunTestCase(c *domain.TestCase)
}

// TesterFunc adapts a function to the Tester interface
type TesterFunc func(c *domain.TestCase)

// RunTestCase calls f(c).
func (f TesterFunc) RunTestCase(c *domain.TestCase) {
	f(c)
}

// Executor runs parsed cases through a Tester
type Executor interface {
	Execute(ctx context.Context, cases []*domain.TestCase) (time.Duration, error)
}

// Progress receives per-case progress of an execution
type Progress interface {
	Start(total int)
	Update(completed, passed, failed int)
	Finish()
}
