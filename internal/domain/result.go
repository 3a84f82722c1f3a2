package domain

import "time"

// FileResult represents the result of running one golden file
type FileResult struct {
	Path         string        // Path to the golden file that was run
	Cases        []*TestCase   // Cases in file order, after the run
	Report       string        // Aggregated failure report, empty on success
	Updated      bool          // Whether the file was rewritten
	DigestBefore string        // blake3 of the file as read
	DigestAfter  string        // blake3 of the file as rewritten, empty in check mode
	Error        error         // Format or IO error that aborted the file
	Duration     time.Duration // Time taken to run the file
}

// Success reports whether the file parsed, ran and matched.
func (r *FileResult) Success() bool {
	return r.Error == nil && r.Report == ""
}

// MismatchCount returns the number of diffs across all cases.
func (r *FileResult) MismatchCount() int {
	n := 0
	for _, c := range r.Cases {
		n += len(c.diffs)
	}
	return n
}

// RunMeta contains metadata about a run over one or more golden files
type RunMeta struct {
	RunID           string  `json:"run_id"`
	Mode            string  `json:"mode"`
	TotalFiles      int     `json:"total_files"`
	FailedFiles     int     `json:"failed_files"`
	PassedFiles     int     `json:"passed_files"`
	ErroredFiles    int     `json:"errored_files"`
	TotalCases      int     `json:"total_cases"`
	Mismatches      int     `json:"mismatches"`
	Duration        string  `json:"duration"`
	DurationSeconds float64 `json:"duration_seconds"`
	Timestamp       string  `json:"timestamp"`
}

// FileSummary is the persisted outcome of one golden file
type FileSummary struct {
	Path         string `json:"path"`
	Cases        int    `json:"cases"`
	Mismatches   int    `json:"mismatches"`
	Updated      bool   `json:"updated,omitempty"`
	DigestBefore string `json:"digest_before,omitempty"`
	DigestAfter  string `json:"digest_after,omitempty"`
	Error        string `json:"error,omitempty"`
}

// RunOutput is the complete persisted structure of a run
type RunOutput struct {
	Meta    RunMeta       `json:"meta"`
	Files   []FileSummary `json:"files"`
	Details []Mismatch    `json:"details"`
}
