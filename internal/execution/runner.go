package execution

import (
	"go.uber.org/zap"

	"platina/internal/domain"
)

// Runner runs the test logic for a single case
type Runner struct {
	tester Tester
	logger *zap.Logger
}

// NewRunner creates a new Runner
func NewRunner(tester Tester, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{tester: tester, logger: logger}
}

// Run hands c to the tester and reports whether the case still matches.
// Values the tester declares are written into c whether they match or not.
func (r *Runner) Run(c *domain.TestCase) bool {
	before := len(c.Diffs())
	r.tester.RunTestCase(c)
	added := len(c.Diffs()) - before

	r.logger.Debug("case finished",
		zap.String("case", c.Name),
		zap.Int("mismatches", added))
	return added == 0
}
