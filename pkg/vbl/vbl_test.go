package vbl_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vibelang/vbl/internal/verifier"
	"github.com/vibelang/vbl/pkg/vbl"
)

const addSource = `define add(a: Int, b: Int) -> Int
  expect a >= 0
  expect b >= 0
  ensure result >= 0
given
  a + b
`

func TestCompileAddProvesPostcondition(t *testing.T) {
	result := vbl.Compile(addSource, vbl.DefaultOptions())
	require.False(t, result.HasErrors(), result.Diagnostics)
	assert.NotEmpty(t, result.Output)
	assert.NotContains(t, result.Output, "Postcondition failed")
}

func TestCompileStopsAtLexError(t *testing.T) {
	result := vbl.Compile("define f() -> Int\ngiven\n  @\n", vbl.DefaultOptions())
	assert.True(t, result.HasErrors())
	assert.Empty(t, result.Output)
}

func TestCompileStopsAtSyntaxError(t *testing.T) {
	result := vbl.Compile("define f(->\n", vbl.DefaultOptions())
	assert.True(t, result.HasErrors())
	assert.Empty(t, result.Output)
}

func TestCompileStopsAtTypeError(t *testing.T) {
	src := `define f() -> Int
given
  true
`
	result := vbl.Compile(src, vbl.DefaultOptions())
	assert.True(t, result.HasErrors())
	assert.Empty(t, result.Output)
}

func TestCheckReportsDiagnosticsWithoutEmitting(t *testing.T) {
	src := `define f() -> Int
given
  true
`
	_, diags, perr := vbl.Check(src)
	require.Nil(t, perr)
	assert.True(t, diags.HasErrors())
}

func TestLexReturnsTokenStream(t *testing.T) {
	tokens, errs := vbl.Lex("let x = 1\n")
	assert.Empty(t, errs)
	assert.NotEmpty(t, tokens)
}

func TestCompileLevelNoneSkipsVerification(t *testing.T) {
	src := `define f(a: Int) -> Int
  ensure result > a
given
  a - 1
`
	result := vbl.Compile(src, vbl.Options{Level: verifier.LevelNone})
	require.False(t, result.HasErrors(), result.Diagnostics)
	assert.NotEmpty(t, result.Output)
}
