package vbl_test

import (
	"fmt"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/vibelang/vbl/pkg/printer"
	"github.com/vibelang/vbl/pkg/vbl"
)

// fixtures covers one representative program per major language feature:
// sum types, refined types, given-pattern matching, and a mix of proven
// and residual contracts. Each is run through the full pipeline and
// snapshot-tested on both its canonical formatting and its emitted output,
// so a change to the printer or emitter shows up as a reviewable diff
// rather than a silent behavior change.
var fixtures = []struct {
	name   string
	source string
}{
	{
		name: "SumTypeShape",
		source: `type Shape =
  | Circle(Float)
  | Square(Float)

define area(s: Shape) -> Float
given
  given s
    Circle(r) -> r * r
    Square(side) -> side * side
`,
	},
	{
		name: "RefinedPositiveInt",
		source: `type Positive = Int
  invariant value > 0

define increment(x: Positive) -> Positive
  expect x > 0
  ensure result > x
given
  x + 1
`,
	},
	{
		name: "ProvenAndResidualContracts",
		source: `define add(x: Int, y: Int) -> Int
  expect x >= 0
  expect y >= 0
  ensure result >= x
given
  x + y

define halve(x: Int) -> Int
  ensure result * 2 == x
given
  x / 2
`,
	},
	{
		name: "WhenDeadBranch",
		source: `define always() -> Int
given
  when true
    1
  otherwise
    2
`,
	},
}

func TestFixtureSnapshots(t *testing.T) {
	p := printer.New(printer.Options{})

	for _, fx := range fixtures {
		t.Run(fx.name, func(t *testing.T) {
			program, perr := vbl.Parse(fx.source)
			if perr != nil {
				t.Fatalf("unexpected parse error: %v", perr)
			}

			snaps.MatchSnapshot(t, fmt.Sprintf("%s_format", fx.name), p.Print(program))

			result := vbl.Compile(fx.source, vbl.DefaultOptions())
			if result.HasErrors() {
				snaps.MatchSnapshot(t, fmt.Sprintf("%s_diagnostics", fx.name), result.Diagnostics)
				return
			}
			snaps.MatchSnapshot(t, fmt.Sprintf("%s_emit", fx.name), result.Output)
		})
	}
}
