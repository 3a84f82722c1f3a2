package parser

import (
	"bufio"
	"fmt"
	"io"

	"platina/internal/domain"
)

// Write serializes cases in the grammar Reader accepts. Values are written as
// currently stored, whatever the outcome of the run.
//
// Values are not escaped. A value line that starts with ParamSeparator once
// trimmed closes the parameter when read back, so such a value does not
// survive a rewrite. Lines starting with CaseSeparator are kept verbatim.
func Write(w io.Writer, cases []*domain.TestCase) error {
	bw := bufio.NewWriter(w)
	for _, c := range cases {
		writeCase(bw, c)
	}
	return bw.Flush()
}

// bufio.Writer errors are sticky and surface on Flush.
func writeCase(bw *bufio.Writer, c *domain.TestCase) {
	fmt.Fprintf(bw, "[%s]\n", c.Name)
	for _, param := range c.Params() {
		value, _ := c.Get(param)
		fmt.Fprintf(bw, "[%s]\n%s\n%s\n", param, value, ParamSeparator)
	}
	fmt.Fprintf(bw, "%s\n\n", CaseSeparator)
}
