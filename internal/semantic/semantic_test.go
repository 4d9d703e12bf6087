package semantic_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vibelang/vbl/internal/ast"
	"github.com/vibelang/vbl/internal/lexer"
	"github.com/vibelang/vbl/internal/parser"
	"github.com/vibelang/vbl/internal/semantic"
	"github.com/vibelang/vbl/internal/types"
)

func check(t *testing.T, src string) (*ast.Program, *semantic.Context) {
	t.Helper()
	program, perr := parser.ParseProgram(lexer.New(src))
	require.Nil(t, perr)

	ctx := semantic.NewContext()
	pm := semantic.NewPassManager(
		semantic.NewDeclarationPass(),
		semantic.NewValidationPass(),
		semantic.NewContractPass(),
	)
	require.NoError(t, pm.RunAll(program, ctx))
	return program, ctx
}

func TestWellTypedFunctionHasNoDiagnostics(t *testing.T) {
	_, ctx := check(t, "define add(a: Int, b: Int) -> Int\ngiven\n  a + b\n")
	assert.False(t, ctx.Diagnostics.HasErrors())
}

func TestReturnTypeMismatchIsAnError(t *testing.T) {
	_, ctx := check(t, "define f() -> Int\ngiven\n  true\n")
	assert.True(t, ctx.Diagnostics.HasErrors())
}

func TestPreconditionMustBeBool(t *testing.T) {
	_, ctx := check(t, "define f(a: Int) -> Int\n  expect a\ngiven\n  a\n")
	assert.True(t, ctx.Diagnostics.HasErrors())
}

func TestResultIsBoundInPostcondition(t *testing.T) {
	_, ctx := check(t, "define f() -> Int\n  ensure result >= 0\ngiven\n  1\n")
	assert.False(t, ctx.Diagnostics.HasErrors())
}

func TestRefinedTypeInvariantMustBeBool(t *testing.T) {
	_, ctx := check(t, "type PositiveInt = Int\n  invariant self\n")
	assert.True(t, ctx.Diagnostics.HasErrors())
}

func TestRefinedTypeInvariantOk(t *testing.T) {
	_, ctx := check(t, "type PositiveInt = Int\n  invariant self > 0\n")
	assert.False(t, ctx.Diagnostics.HasErrors())
}

func TestSumTypeDeclarationRegistersVariants(t *testing.T) {
	_, ctx := check(t, "type Shape =\n  | Circle(Float)\n  | Square(Float)\n")
	assert.False(t, ctx.Diagnostics.HasErrors())
	info, ok := ctx.Types.Lookup("Shape")
	require.True(t, ok)
	assert.Len(t, info.Variants, 2)
}

func TestIdentifierResolutionInNestedScope(t *testing.T) {
	_, ctx := check(t, "define f(a: Int) -> Int\ngiven\n  let b = a + 1\n  b\n")
	assert.False(t, ctx.Diagnostics.HasErrors())
}

func TestUndefinedIdentifierIsAnError(t *testing.T) {
	_, ctx := check(t, "define f() -> Int\ngiven\n  y\n")
	assert.True(t, ctx.Diagnostics.HasErrors())
}

func TestOldOutsidePostconditionIsAnError(t *testing.T) {
	_, ctx := check(t, "define f(a: Int) -> Int\n  expect old(a) >= 0\ngiven\n  a\n")
	assert.True(t, ctx.Diagnostics.HasErrors())
}

func TestResultOutsidePostconditionIsAnError(t *testing.T) {
	_, ctx := check(t, "define f() -> Int\n  expect result >= 0\ngiven\n  1\n")
	assert.True(t, ctx.Diagnostics.HasErrors())
}

func TestOldOfNonParameterIsAnError(t *testing.T) {
	_, ctx := check(t, "define f(a: Int) -> Int\n  ensure result == old(a + 1)\ngiven\n  a\n")
	assert.True(t, ctx.Diagnostics.HasErrors())
}

func TestScopeLookupThroughParent(t *testing.T) {
	global := semantic.NewScope(semantic.ScopeGlobal, nil)
	global.Define("x", types.Int)
	inner := semantic.NewScope(semantic.ScopeBlock, global)

	typ, ok := inner.Lookup("x")
	assert.True(t, ok)
	assert.True(t, typ.Equals(types.Int))
}
