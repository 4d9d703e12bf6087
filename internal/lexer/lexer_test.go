package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vibelang/vbl/internal/lexer"
)

func kinds(tokens []lexer.Token) []lexer.TokenType {
	out := make([]lexer.TokenType, len(tokens))
	for i, t := range tokens {
		out[i] = t.Kind
	}
	return out
}

func TestTokenizeSimpleLet(t *testing.T) {
	tokens, errs := lexer.Tokenize("let x = 1\n")
	require.Empty(t, errs)
	assert.Equal(t, []lexer.TokenType{
		lexer.LET, lexer.IDENT, lexer.ASSIGN, lexer.INT, lexer.NEWLINE, lexer.EOF,
	}, kinds(tokens))
}

func TestTokenizeIndentDedentBalanced(t *testing.T) {
	src := "define f() -> Int\ngiven\n  let x = 1\n  x\n"
	tokens, errs := lexer.Tokenize(src)
	require.Empty(t, errs)

	depth := 0
	for _, tok := range tokens {
		switch tok.Kind {
		case lexer.INDENT:
			depth++
		case lexer.DEDENT:
			depth--
		}
	}
	assert.Zero(t, depth, "INDENT/DEDENT must balance by EOF")
	assert.Equal(t, lexer.EOF, tokens[len(tokens)-1].Kind)
}

func TestIndentationMustBeExactlyTwoSpaces(t *testing.T) {
	src := "define f() -> Int\ngiven\n   x\n"
	_, errs := lexer.Tokenize(src)
	require.NotEmpty(t, errs)
	assert.Contains(t, errs[0].Message, "exactly 2 spaces")
}

func TestTabIndentationIsIllegal(t *testing.T) {
	src := "define f() -> Int\ngiven\n\tx\n"
	_, errs := lexer.Tokenize(src)
	require.NotEmpty(t, errs)
	assert.Contains(t, errs[0].Message, "tab character")
}

func TestDedentMustMatchEnclosingLevel(t *testing.T) {
	src := "define f() -> Int\ngiven\n  when true\n    1\n   2\n"
	_, errs := lexer.Tokenize(src)
	require.NotEmpty(t, errs)
	found := false
	for _, e := range errs {
		if e.Message == "illegal indentation: dedent does not match any enclosing level" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestCommentsAreSkipped(t *testing.T) {
	src := "let x = 1 # trailing comment\n## block\ncomment ##\nlet y = 2\n"
	tokens, errs := lexer.Tokenize(src)
	require.Empty(t, errs)
	assert.Equal(t, []lexer.TokenType{
		lexer.LET, lexer.IDENT, lexer.ASSIGN, lexer.INT, lexer.NEWLINE,
		lexer.LET, lexer.IDENT, lexer.ASSIGN, lexer.INT, lexer.NEWLINE, lexer.EOF,
	}, kinds(tokens))
}

func TestTwoCharOperatorsMaximalMunch(t *testing.T) {
	tokens, errs := lexer.Tokenize("a >= b && c != d\n")
	require.Empty(t, errs)
	assert.Equal(t, []lexer.TokenType{
		lexer.IDENT, lexer.GT_EQ, lexer.IDENT, lexer.AND_AND, lexer.IDENT, lexer.NOT_EQ, lexer.IDENT, lexer.NEWLINE, lexer.EOF,
	}, kinds(tokens))
}

func TestStringEscapes(t *testing.T) {
	tokens, errs := lexer.Tokenize(`"a\nb\t\"c\""` + "\n")
	require.Empty(t, errs)
	require.Len(t, tokens, 3)
	assert.Equal(t, lexer.STRING, tokens[0].Kind)
	assert.Equal(t, "a\nb\t\"c\"", tokens[0].Literal)
}

func TestUnterminatedStringIsAnError(t *testing.T) {
	_, errs := lexer.Tokenize(`"unterminated`)
	require.NotEmpty(t, errs)
	assert.Contains(t, errs[0].Message, "unterminated")
}

func TestIllegalCharacterIsAnError(t *testing.T) {
	_, errs := lexer.Tokenize("let x = @\n")
	require.NotEmpty(t, errs)
	assert.Contains(t, errs[0].Message, "illegal character")
}

func TestFloatLiteral(t *testing.T) {
	tokens, errs := lexer.Tokenize("3.14\n")
	require.Empty(t, errs)
	assert.Equal(t, lexer.FLOAT, tokens[0].Kind)
	assert.Equal(t, "3.14", tokens[0].Literal)
}

func TestKeywordsLexAsTheirOwnKind(t *testing.T) {
	tokens, errs := lexer.Tokenize("define type when otherwise given let invariant expect ensure old result self\n")
	require.Empty(t, errs)
	want := []lexer.TokenType{
		lexer.DEFINE, lexer.TYPE, lexer.WHEN, lexer.OTHERWISE, lexer.GIVEN, lexer.LET,
		lexer.INVARIANT, lexer.EXPECT, lexer.ENSURE, lexer.OLD, lexer.RESULT, lexer.SELF,
		lexer.NEWLINE, lexer.EOF,
	}
	assert.Equal(t, want, kinds(tokens))
}

func TestWildcardIdentifier(t *testing.T) {
	tokens, errs := lexer.Tokenize("_\n")
	require.Empty(t, errs)
	assert.Equal(t, lexer.WILDCARD, tokens[0].Kind)
}

func TestPositionTracksLineAndColumn(t *testing.T) {
	tokens, errs := lexer.Tokenize("let\nx\n")
	require.Empty(t, errs)
	assert.Equal(t, 1, tokens[0].Pos.Line)
	assert.Equal(t, 2, tokens[2].Pos.Line)
}

func TestQuestionAndForTokenizeAsOwnKinds(t *testing.T) {
	tokens, errs := lexer.Tokenize("x ? for y in z\n")
	require.Empty(t, errs)
	assert.Equal(t, []lexer.TokenType{
		lexer.IDENT, lexer.QUESTION, lexer.FOR, lexer.IDENT, lexer.IN, lexer.IDENT, lexer.NEWLINE, lexer.EOF,
	}, kinds(tokens))
}
