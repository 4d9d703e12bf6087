package optimizer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vibelang/vbl/internal/ast"
	"github.com/vibelang/vbl/internal/lexer"
	"github.com/vibelang/vbl/internal/optimizer"
	"github.com/vibelang/vbl/internal/parser"
)

func parseBody(t *testing.T, src string) ast.Expression {
	t.Helper()
	program, err := parser.ParseProgram(lexer.New(src))
	require.Nil(t, err)
	fn := program.Declarations[0].(*ast.FunctionDecl)
	return fn.Body.Statements[0].(*ast.ExpressionStatement).Expr
}

func optimizeSource(t *testing.T, src string) optimizer.Result {
	t.Helper()
	program, err := parser.ParseProgram(lexer.New(src))
	require.Nil(t, err)
	return optimizer.Optimize(program)
}

func bodyExpr(program *ast.Program) ast.Expression {
	fn := program.Declarations[0].(*ast.FunctionDecl)
	return fn.Body.Statements[0].(*ast.ExpressionStatement).Expr
}

func TestConstantFoldsIntegerArithmetic(t *testing.T) {
	result := optimizeSource(t, "define f() -> Int\ngiven\n  1 + 2 * 3\n")
	expr := bodyExpr(result.Program)
	lit, ok := expr.(*ast.IntegerLiteral)
	require.True(t, ok)
	assert.EqualValues(t, 7, lit.Value)
	assert.True(t, result.Rewrites > 0)
}

func TestConstantFoldsBoolAndString(t *testing.T) {
	result := optimizeSource(t, `define f() -> Bool
given
  true && false
`)
	lit, ok := bodyExpr(result.Program).(*ast.BoolLiteral)
	require.True(t, ok)
	assert.False(t, lit.Value)
}

func TestDoubleNegationCancels(t *testing.T) {
	result := optimizeSource(t, "define f(x: Bool) -> Bool\ngiven\n  !(!x)\n")
	expr := bodyExpr(result.Program)
	assert.Equal(t, "x", expr.String())
}

func TestIdentityAdditionSimplifies(t *testing.T) {
	result := optimizeSource(t, "define f(x: Int) -> Int\ngiven\n  x + 0\n")
	expr := bodyExpr(result.Program)
	assert.Equal(t, "x", expr.String())
}

func TestAbsorbingMultiplicationByZero(t *testing.T) {
	result := optimizeSource(t, "define f(x: Int) -> Int\ngiven\n  x * 0\n")
	lit, ok := bodyExpr(result.Program).(*ast.IntegerLiteral)
	require.True(t, ok)
	assert.EqualValues(t, 0, lit.Value)
}

func TestMultiplicationByOneSimplifies(t *testing.T) {
	result := optimizeSource(t, "define f(x: Int) -> Int\ngiven\n  1 * x\n")
	expr := bodyExpr(result.Program)
	assert.Equal(t, "x", expr.String())
}

func TestFixpointAppliesNestedRewrites(t *testing.T) {
	// (x + 0) * 1 needs two separate identity rules applied in sequence
	// before it reduces fully to x.
	result := optimizeSource(t, "define f(x: Int) -> Int\ngiven\n  (x + 0) * 1\n")
	expr := bodyExpr(result.Program)
	assert.Equal(t, "x", expr.String())
}

func TestDivisionByZeroIsNotFolded(t *testing.T) {
	result := optimizeSource(t, "define f() -> Int\ngiven\n  1 / 0\n")
	expr := bodyExpr(result.Program)
	bin, ok := expr.(*ast.BinaryExpression)
	require.True(t, ok, "expected division to survive unfolded, got %T", expr)
	assert.Equal(t, "/", bin.Operator)
}

func TestDeadBranchEliminationInWhen(t *testing.T) {
	src := "define f() -> Int\ngiven\n  when true\n    1\n  otherwise\n    2\n"
	result := optimizeSource(t, src)
	expr := bodyExpr(result.Program)
	lit, ok := expr.(*ast.IntegerLiteral)
	require.True(t, ok, "expected the then-branch to survive alone, got %T", expr)
	assert.EqualValues(t, 1, lit.Value)
}

func TestDeadBranchEliminationTakesElseWhenFalse(t *testing.T) {
	src := "define f() -> Int\ngiven\n  when false\n    1\n  otherwise\n    2\n"
	result := optimizeSource(t, src)
	expr := bodyExpr(result.Program)
	lit, ok := expr.(*ast.IntegerLiteral)
	require.True(t, ok)
	assert.EqualValues(t, 2, lit.Value)
}

func TestOptimizeDoesNotMutateInputTree(t *testing.T) {
	program, err := parser.ParseProgram(lexer.New("define f() -> Int\ngiven\n  1 + 2\n"))
	require.Nil(t, err)
	before := bodyExpr(program).String()

	result := optimizer.Optimize(program)

	assert.Equal(t, before, bodyExpr(program).String(), "input tree must be left untouched")
	assert.NotEqual(t, before, bodyExpr(result.Program).String())
}

func TestNonLiteralBinaryExpressionIsPreservedUnchanged(t *testing.T) {
	expr := parseBody(t, "define f(a: Int, b: Int) -> Int\ngiven\n  a + b\n")
	program, err := parser.ParseProgram(lexer.New("define f(a: Int, b: Int) -> Int\ngiven\n  a + b\n"))
	require.Nil(t, err)
	result := optimizer.Optimize(program)
	assert.Equal(t, expr.String(), bodyExpr(result.Program).String())
}
