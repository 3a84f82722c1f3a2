package domain

// Mismatch is a recorded parameter mismatch as persisted after a run
type Mismatch struct {
	File     string `json:"file"`
	Case     string `json:"case"`
	Param    string `json:"param"`
	Expected string `json:"expected"` // value stored in the golden file
	Actual   string `json:"actual"`   // value computed by the test logic
	Updated  bool   `json:"updated,omitempty"`
	Resolved bool   `json:"resolved,omitempty"` // Track if the mismatch is marked as resolved
}

// MismatchesOf flattens the diffs of cases into persisted mismatch records.
func MismatchesOf(file string, cases []*TestCase, updated bool) []Mismatch {
	var out []Mismatch
	for _, c := range cases {
		for _, d := range c.diffs {
			out = append(out, Mismatch{
				File:     file,
				Case:     c.Name,
				Param:    d.Param,
				Expected: d.Previous,
				Actual:   d.Computed,
				Updated:  updated,
			})
		}
	}
	return out
}
