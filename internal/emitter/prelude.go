package emitter

import (
	"bytes"
	"text/template"
)

// preludeTemplate is the fixed runtime prelude prepended to every emitted
// program. It defines Unit, the Result type, and Result's two
// constructors Success and Error, and nothing else; the emitter relies on
// no other runtime helper.
const preludeTemplate = `type Unit struct{}

type Result[T any, E any] struct {
	ok    bool
	value T
	err   E
}

func Success[T any, E any](value T) Result[T, E] {
	return Result[T, E]{ok: true, value: value}
}

func Error[T any, E any](err E) Result[T, E] {
	return Result[T, E]{ok: false, err: err}
}
`

// prelude renders the fixed prelude once per Emit call. It takes the
// text/template route (rather than a bare string constant) following the
// fixed-prelude-prepended-once generation pattern the pack's template-based
// generator uses, even though this prelude has no per-program data to
// substitute.
func prelude() string {
	tmpl := template.Must(template.New("prelude").Parse(preludeTemplate))
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, nil); err != nil {
		panic(err) // preludeTemplate is a compile-time constant; this cannot fail
	}
	return buf.String()
}
