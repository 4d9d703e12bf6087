package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vibelang/vbl/internal/ast"
	"github.com/vibelang/vbl/internal/lexer"
	"github.com/vibelang/vbl/internal/parser"
)

func parse(t *testing.T, src string) *ast.Program {
	t.Helper()
	program, err := parser.ParseProgram(lexer.New(src))
	require.Nil(t, err, "unexpected parse error: %v", err)
	return program
}

func TestParseSimpleFunctionDecl(t *testing.T) {
	program := parse(t, "define add(a: Int, b: Int) -> Int\ngiven\n  a + b\n")
	require.Len(t, program.Declarations, 1)

	fn, ok := program.Declarations[0].(*ast.FunctionDecl)
	require.True(t, ok)
	assert.Equal(t, "add", fn.Name)
	require.Len(t, fn.Params, 2)
	assert.Equal(t, "a", fn.Params[0].Name)
	require.Len(t, fn.Body.Statements, 1)
}

func TestParsePreAndPostConditions(t *testing.T) {
	src := `define div(a: Int, b: Int) -> Int
  expect b != 0
  ensure result <= a
given
  a / b
`
	program := parse(t, src)
	fn := program.Declarations[0].(*ast.FunctionDecl)
	require.Len(t, fn.Preconditions, 1)
	require.Len(t, fn.Postconditions, 1)
	assert.Equal(t, "(b != 0)", fn.Preconditions[0].Expr.String())
}

func TestOperatorPrecedenceClimbing(t *testing.T) {
	program := parse(t, "define f() -> Int\ngiven\n  1 + 2 * 3\n")
	fn := program.Declarations[0].(*ast.FunctionDecl)
	expr := fn.Body.Statements[0].(*ast.ExpressionStatement).Expr
	// Multiplication binds tighter than addition.
	assert.Equal(t, "(1 + (2 * 3))", expr.String())
}

func TestLogicalPrecedenceBelowComparison(t *testing.T) {
	program := parse(t, "define f() -> Bool\ngiven\n  a < b && c > d\n")
	fn := program.Declarations[0].(*ast.FunctionDecl)
	expr := fn.Body.Statements[0].(*ast.ExpressionStatement).Expr
	assert.Equal(t, "((a < b) && (c > d))", expr.String())
}

func TestLetAndAssignStatements(t *testing.T) {
	program := parse(t, "define f() -> Int\ngiven\n  let x = 1\n  x\n")
	fn := program.Declarations[0].(*ast.FunctionDecl)
	require.Len(t, fn.Body.Statements, 2)
	let, ok := fn.Body.Statements[0].(*ast.LetStatement)
	require.True(t, ok)
	assert.Equal(t, "x", let.Name)
}

func TestTypeAliasDecl(t *testing.T) {
	program := parse(t, "type Age = Int\n")
	decl := program.Declarations[0].(*ast.TypeDecl)
	assert.Equal(t, ast.AliasTypeDef, decl.DefKind)
	assert.Equal(t, "Age", decl.Name)
}

func TestRefinedTypeDeclWithInvariant(t *testing.T) {
	src := "type PositiveInt = Int\n  invariant self > 0\n"
	program := parse(t, src)
	decl := program.Declarations[0].(*ast.TypeDecl)
	assert.Equal(t, ast.RefinedTypeDef, decl.DefKind)
	require.Len(t, decl.Invariants, 1)
}

func TestSumTypeDeclIndented(t *testing.T) {
	src := "type Shape =\n  | Circle(Float)\n  | Square(Float)\n"
	program := parse(t, src)
	decl := program.Declarations[0].(*ast.TypeDecl)
	assert.Equal(t, ast.SumTypeDef, decl.DefKind)
	require.Len(t, decl.Variants, 2)
	assert.Equal(t, "Circle", decl.Variants[0].Name)
	assert.Equal(t, "Square", decl.Variants[1].Name)
}

func TestWhenExpression(t *testing.T) {
	src := "define f(x: Int) -> Int\ngiven\n  when x > 0\n    1\n  otherwise\n    0\n"
	program := parse(t, src)
	fn := program.Declarations[0].(*ast.FunctionDecl)
	expr := fn.Body.Statements[0].(*ast.ExpressionStatement).Expr
	when, ok := expr.(*ast.WhenExpression)
	require.True(t, ok)
	require.NotNil(t, when.Else)
}

func TestGivenExpressionWithPatterns(t *testing.T) {
	src := "define f(s: Shape) -> Float\ngiven\n  given s\n    Circle(r) -> r\n    _ -> 0.0\n"
	program := parse(t, src)
	fn := program.Declarations[0].(*ast.FunctionDecl)
	expr := fn.Body.Statements[0].(*ast.ExpressionStatement).Expr
	given, ok := expr.(*ast.GivenExpression)
	require.True(t, ok)
	require.Len(t, given.Cases, 2)
	ctor, ok := given.Cases[0].Pattern.(*ast.ConstructorPattern)
	require.True(t, ok)
	assert.Equal(t, "Circle", ctor.Name)
}

func TestForLoopRejectedAsUnimplemented(t *testing.T) {
	_, err := parser.ParseProgram(lexer.New("define f() -> Int\ngiven\n  for x in xs\n    x\n"))
	require.NotNil(t, err)
	assert.Equal(t, parser.ErrUnimplementedLoop, err.Code)
}

func TestQuestionOperatorRejectedAsUnimplemented(t *testing.T) {
	_, err := parser.ParseProgram(lexer.New("define f() -> Int\ngiven\n  x?\n"))
	require.NotNil(t, err)
	assert.Equal(t, parser.ErrUnimplementedOperator, err.Code)
}

func TestMissingGivenIsASyntaxError(t *testing.T) {
	_, err := parser.ParseProgram(lexer.New("define f() -> Int\n  1\n"))
	require.NotNil(t, err)
	assert.Equal(t, parser.ErrMissingGiven, err.Code)
}

func TestOldExpressionParses(t *testing.T) {
	src := `define incr(x: Int) -> Int
  ensure result == old(x) + 1
given
  x + 1
`
	program := parse(t, src)
	fn := program.Declarations[0].(*ast.FunctionDecl)
	post := fn.Postconditions[0]
	assert.Contains(t, post.Expr.String(), "old(x)")
}
