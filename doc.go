// Package platina runs parameterized golden-file tests.
//
// A golden file holds named cases, each with named text parameters:
//
//	[upper]
//	[input]
//	hello
//	-----------
//	[output]
//	HELLO
//	-----------
//	===========
//
// A Tester reads the parameters it needs with Get and declares the values it
// computes with CompareAndUpdate. Every declared value that differs from the
// stored one is reported. In update mode the file is rewritten with the
// computed values once all cases ran.
//
//	func TestUpper(t *testing.T) {
//		platina.Check(t, "testdata/upper.golden", platina.TesterFunc(func(c *platina.TestCase) {
//			in, _ := c.Get("input")
//			c.CompareAndUpdate("output", strings.ToUpper(in))
//		}), *update)
//	}
package platina
