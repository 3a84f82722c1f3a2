// Package report aggregates the mismatches of a run into its failure report.
package report

import (
	"fmt"
	"strings"

	"platina/internal/domain"
)

// CaseFailure groups the diffs of one failing case
type CaseFailure struct {
	Case  string
	Diffs []domain.Diff
}

// Report is the ordered list of failing cases of a run
type Report struct {
	Failures []CaseFailure
}

// Aggregate collects diffs in file order, and within a case in the order the
// test logic declared them. Cases without diffs are left out.
func Aggregate(cases []*domain.TestCase) *Report {
	r := &Report{}
	for _, c := range cases {
		if !c.Failed() {
			continue
		}
		r.Failures = append(r.Failures, CaseFailure{Case: c.Name, Diffs: c.Diffs()})
	}
	return r
}

// Empty reports whether the run had no mismatch.
func (r *Report) Empty() bool {
	return len(r.Failures) == 0
}

// Mismatches returns the total number of diffs.
func (r *Report) Mismatches() int {
	n := 0
	for _, f := range r.Failures {
		n += len(f.Diffs)
	}
	return n
}

// String renders the report. The value stored in the golden file is labelled
// expected and the freshly computed one actual.
func (r *Report) String() string {
	var b strings.Builder
	for _, f := range r.Failures {
		fmt.Fprintf(&b, "CASE FAILED: %s\n", f.Case)
		for _, d := range f.Diffs {
			fmt.Fprintf(&b, "PARAM MISMATCH: %s\nexpected: %s\nactual: %s\n", d.Param, d.Previous, d.Computed)
		}
	}
	return b.String()
}

// Err returns nil for an empty report and an *domain.AssertionFailure otherwise.
func (r *Report) Err() error {
	if r.Empty() {
		return nil
	}
	return &domain.AssertionFailure{Report: r.String()}
}
