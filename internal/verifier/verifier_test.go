package verifier_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vibelang/vbl/internal/ast"
	"github.com/vibelang/vbl/internal/errors"
	"github.com/vibelang/vbl/internal/lexer"
	"github.com/vibelang/vbl/internal/parser"
	"github.com/vibelang/vbl/internal/semantic"
	"github.com/vibelang/vbl/internal/verifier"
)

func checkedProgram(t *testing.T, src string) *ast.Program {
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
	require.False(t, ctx.Diagnostics.HasErrors())
	return program
}

func firstFunc(program *ast.Program) *ast.FunctionDecl {
	return program.Declarations[0].(*ast.FunctionDecl)
}

func TestMonotoneNonnegativityIsProven(t *testing.T) {
	src := `define add(a: Int, b: Int) -> Int
  expect a >= 0
  expect b >= 0
  ensure result >= a
given
  a + b
`
	program := checkedProgram(t, src)
	diags := &errors.Diagnostics{}
	verifier.New(verifier.LevelHybrid, 0, diags).VerifyProgram(program)

	fn := firstFunc(program)
	assert.Equal(t, ast.StatusProven, fn.Postconditions[0].Status)
	assert.False(t, diags.HasErrors())
}

func TestConstantFoldingProvesLiteralTrue(t *testing.T) {
	src := `define f() -> Int
  ensure 1 == 1
given
  1
`
	program := checkedProgram(t, src)
	diags := &errors.Diagnostics{}
	verifier.New(verifier.LevelHybrid, 0, diags).VerifyProgram(program)

	fn := firstFunc(program)
	assert.Equal(t, ast.StatusProven, fn.Postconditions[0].Status)
}

func TestConstantFoldingRefutesLiteralFalse(t *testing.T) {
	src := `define f() -> Int
  ensure 1 == 2
given
  1
`
	program := checkedProgram(t, src)
	diags := &errors.Diagnostics{}
	verifier.New(verifier.LevelHybrid, 0, diags).VerifyProgram(program)

	fn := firstFunc(program)
	assert.Equal(t, ast.StatusRefuted, fn.Postconditions[0].Status)
	assert.True(t, diags.HasErrors())
}

func TestUnprovenGoalUnderHybridIsNotAnError(t *testing.T) {
	src := `define f(a: Int, b: Int) -> Int
  ensure result == a * b
given
  a + 1
`
	program := checkedProgram(t, src)
	diags := &errors.Diagnostics{}
	verifier.New(verifier.LevelHybrid, 0, diags).VerifyProgram(program)

	fn := firstFunc(program)
	assert.Equal(t, ast.StatusUnproven, fn.Postconditions[0].Status)
	assert.False(t, diags.HasErrors())
}

func TestUnprovenGoalUnderFullIsAnError(t *testing.T) {
	src := `define f(a: Int, b: Int) -> Int
  ensure result == a * b
given
  a + 1
`
	program := checkedProgram(t, src)
	diags := &errors.Diagnostics{}
	verifier.New(verifier.LevelFull, 0, diags).VerifyProgram(program)

	fn := firstFunc(program)
	assert.Equal(t, ast.StatusUnproven, fn.Postconditions[0].Status)
	assert.True(t, diags.HasErrors())
}

func TestLevelNoneSkipsDischargeEntirely(t *testing.T) {
	src := `define f() -> Int
  ensure 1 == 2
given
  1
`
	program := checkedProgram(t, src)
	diags := &errors.Diagnostics{}
	verifier.New(verifier.LevelNone, 0, diags).VerifyProgram(program)

	fn := firstFunc(program)
	assert.Equal(t, ast.StatusUnverified, fn.Postconditions[0].Status)
	assert.False(t, diags.HasErrors())
}

func TestRefinedTypeInvariantDischarge(t *testing.T) {
	program := checkedProgram(t, "type PositiveInt = Int\n  invariant self > 0\n")
	diags := &errors.Diagnostics{}
	verifier.New(verifier.LevelHybrid, 0, diags).VerifyProgram(program)

	decl := program.Declarations[0].(*ast.TypeDecl)
	assert.Equal(t, ast.StatusUnproven, decl.Invariants[0].Status)
}

func TestResidualRequiredMatrix(t *testing.T) {
	assert.False(t, verifier.ResidualRequired(verifier.LevelNone, ast.StatusProven))
	assert.False(t, verifier.ResidualRequired(verifier.LevelNone, ast.StatusUnproven))
	assert.True(t, verifier.ResidualRequired(verifier.LevelRuntime, ast.StatusProven))
	assert.False(t, verifier.ResidualRequired(verifier.LevelHybrid, ast.StatusProven))
	assert.True(t, verifier.ResidualRequired(verifier.LevelHybrid, ast.StatusUnproven))
	assert.True(t, verifier.ResidualRequired(verifier.LevelFull, ast.StatusUnproven))
}

func TestParseLevelRoundTrip(t *testing.T) {
	for _, name := range []string{"none", "runtime", "hybrid", "full"} {
		level, err := verifier.ParseLevel(name)
		require.NoError(t, err)
		assert.Equal(t, name, level.String())
	}
}

func TestParseLevelRejectsUnknown(t *testing.T) {
	_, err := verifier.ParseLevel("bogus")
	assert.Error(t, err)
}
