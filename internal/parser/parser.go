// Package parser implements VibeLang's recursive-descent, precedence-
// climbing parser. It consumes an internal/lexer token stream and produces
// an internal/ast.Program, stopping at the first syntax error.
package parser

import (
	"strconv"

	"github.com/vibelang/vbl/internal/ast"
	"github.com/vibelang/vbl/internal/lexer"
)

// Precedence levels, low to high: logical-or, logical-and, equality,
// comparison, additive, multiplicative, unary, postfix.
const (
	_ int = iota
	LOWEST
	OR_PREC
	AND_PREC
	EQUALITY
	COMPARISON
	ADDITIVE
	MULTIPLICATIVE
	UNARY
	POSTFIX
)

var precedences = map[lexer.TokenType]int{
	lexer.OR_OR:   OR_PREC,
	lexer.AND_AND: AND_PREC,
	lexer.EQ:      EQUALITY,
	lexer.NOT_EQ:  EQUALITY,
	lexer.LT:      COMPARISON,
	lexer.GT:      COMPARISON,
	lexer.LT_EQ:   COMPARISON,
	lexer.GT_EQ:   COMPARISON,
	lexer.PLUS:    ADDITIVE,
	lexer.MINUS:   ADDITIVE,
	lexer.ASTERISK: MULTIPLICATIVE,
	lexer.SLASH:    MULTIPLICATIVE,
	lexer.PERCENT:  MULTIPLICATIVE,
	lexer.LPAREN:   POSTFIX,
	lexer.DOT:      POSTFIX,
}

type (
	prefixParseFn func() ast.Expression
	infixParseFn  func(ast.Expression) ast.Expression
)

// Parser is VibeLang's single-pass parser: one TokenCursor, one error
// (the first encountered) — recovery is not attempted.
type Parser struct {
	cursor *TokenCursor
	err    *ParserError

	prefixParseFns map[lexer.TokenType]prefixParseFn
	infixParseFns  map[lexer.TokenType]infixParseFn
}

// New creates a Parser over the tokens produced by l.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{cursor: NewTokenCursor(l)}

	p.prefixParseFns = map[lexer.TokenType]prefixParseFn{
		lexer.INT:      p.parseIntegerLiteral,
		lexer.FLOAT:    p.parseFloatLiteral,
		lexer.STRING:   p.parseStringLiteral,
		lexer.TRUE:     p.parseBoolLiteral,
		lexer.FALSE:    p.parseBoolLiteral,
		lexer.IDENT:    p.parseIdentifier,
		lexer.RESULT:   p.parseIdentifier,
		lexer.SELF:     p.parseIdentifier,
		lexer.VALUE:    p.parseIdentifier,
		lexer.OLD:      p.parseOldExpression,
		lexer.MINUS:    p.parseUnaryExpression,
		lexer.BANG:     p.parseUnaryExpression,
		lexer.LPAREN:   p.parseParenExpression,
		lexer.LBRACKET: p.parseArrayLiteral,
		lexer.LBRACE:   p.parseRecordLiteral,
		lexer.WHEN:     p.parseWhenExpression,
		lexer.GIVEN:    p.parseGivenExpression,
	}

	p.infixParseFns = map[lexer.TokenType]infixParseFn{
		lexer.PLUS: p.parseBinaryExpression, lexer.MINUS: p.parseBinaryExpression,
		lexer.ASTERISK: p.parseBinaryExpression, lexer.SLASH: p.parseBinaryExpression,
		lexer.PERCENT: p.parseBinaryExpression,
		lexer.EQ:      p.parseBinaryExpression, lexer.NOT_EQ: p.parseBinaryExpression,
		lexer.LT: p.parseBinaryExpression, lexer.GT: p.parseBinaryExpression,
		lexer.LT_EQ: p.parseBinaryExpression, lexer.GT_EQ: p.parseBinaryExpression,
		lexer.AND_AND: p.parseBinaryExpression, lexer.OR_OR: p.parseBinaryExpression,
		lexer.LPAREN: p.parseCallExpression,
		lexer.DOT:    p.parseMemberAccess,
	}

	return p
}

// Error returns the first syntax error encountered, or nil.
func (p *Parser) Error() *ParserError { return p.err }

func (p *Parser) fail(code, format string, args ...any) {
	if p.err == nil {
		p.err = newParserError(p.cursor.Current().Pos, code, format, args...)
	}
}

func (p *Parser) failed() bool { return p.err != nil }

func (p *Parser) curPos() lexer.Position { return p.cursor.Current().Pos }

// expect advances past Current if it matches kind, else records an error.
func (p *Parser) expect(kind lexer.TokenType) lexer.Token {
	tok := p.cursor.Current()
	if tok.Kind != kind {
		p.fail(ErrUnexpectedToken, "expected %s, got %s", kind, tok.Kind)
		return tok
	}
	p.cursor.Advance()
	return tok
}

// skipNewlines consumes zero or more NEWLINE tokens.
func (p *Parser) skipNewlines() {
	for p.cursor.Is(lexer.NEWLINE) {
		p.cursor.Advance()
	}
}

// ParseProgram parses zero or more imports followed by declarations.
func ParseProgram(l *lexer.Lexer) (*ast.Program, *ParserError) {
	p := New(l)
	prog := p.parseProgram()
	return prog, p.err
}

func (p *Parser) parseProgram() *ast.Program {
	prog := &ast.Program{}
	p.skipNewlines()

	for p.cursor.Is(lexer.IMPORT) && !p.failed() {
		prog.Imports = append(prog.Imports, p.parseImport())
		p.skipNewlines()
	}

	for !p.cursor.Is(lexer.EOF) && !p.failed() {
		switch p.cursor.Current().Kind {
		case lexer.TYPE:
			prog.Declarations = append(prog.Declarations, p.parseTypeDecl())
		case lexer.DEFINE:
			prog.Declarations = append(prog.Declarations, p.parseFunctionDecl())
		default:
			p.fail(ErrUnexpectedToken, "expected 'type' or 'define', got %s", p.cursor.Current().Kind)
			return prog
		}
		p.skipNewlines()
	}
	return prog
}

func (p *Parser) parseImport() *ast.Import {
	pos := p.curPos()
	p.expect(lexer.IMPORT)
	var path []string
	path = append(path, p.expect(lexer.IDENT).Literal)
	for p.cursor.Is(lexer.DOT) {
		p.cursor.Advance()
		path = append(path, p.expect(lexer.IDENT).Literal)
	}
	p.expect(lexer.NEWLINE)
	return &ast.Import{Path: path, Position: pos}
}

// ---- expressions ----

func (p *Parser) parseExpression(precedence int) ast.Expression {
	tok := p.cursor.Current()
	prefix, ok := p.prefixParseFns[tok.Kind]
	if !ok {
		if tok.Kind == lexer.QUESTION {
			p.fail(ErrUnimplementedOperator, "the '?' propagation operator is not implemented")
		} else {
			p.fail(ErrNoPrefixParse, "no prefix parse function for %s", tok.Kind)
		}
		return nil
	}
	left := prefix()

	for !p.failed() && precedence < getPrecedence(p.cursor.Current().Kind) {
		infix, ok := p.infixParseFns[p.cursor.Current().Kind]
		if !ok {
			return left
		}
		left = infix(left)
	}
	return left
}

func getPrecedence(kind lexer.TokenType) int {
	if prec, ok := precedences[kind]; ok {
		return prec
	}
	return LOWEST
}

func (p *Parser) parseIntegerLiteral() ast.Expression {
	tok := p.cursor.Current()
	v, err := strconv.ParseInt(tok.Literal, 10, 64)
	if err != nil {
		p.fail(ErrUnexpectedToken, "invalid integer literal %q", tok.Literal)
		return nil
	}
	p.cursor.Advance()
	return &ast.IntegerLiteral{Value: v, Position: tok.Pos}
}

func (p *Parser) parseFloatLiteral() ast.Expression {
	tok := p.cursor.Current()
	v, err := strconv.ParseFloat(tok.Literal, 64)
	if err != nil {
		p.fail(ErrUnexpectedToken, "invalid float literal %q", tok.Literal)
		return nil
	}
	p.cursor.Advance()
	return &ast.FloatLiteral{Value: v, Raw: tok.Literal, Position: tok.Pos}
}

func (p *Parser) parseStringLiteral() ast.Expression {
	tok := p.cursor.Current()
	p.cursor.Advance()
	return &ast.StringLiteral{Value: tok.Literal, Position: tok.Pos}
}

func (p *Parser) parseBoolLiteral() ast.Expression {
	tok := p.cursor.Current()
	p.cursor.Advance()
	return &ast.BoolLiteral{Value: tok.Kind == lexer.TRUE, Position: tok.Pos}
}

func (p *Parser) parseIdentifier() ast.Expression {
	tok := p.cursor.Current()
	p.cursor.Advance()
	return &ast.Identifier{Name: tok.Literal, Position: tok.Pos}
}

func (p *Parser) parseOldExpression() ast.Expression {
	pos := p.curPos()
	p.expect(lexer.OLD)
	p.expect(lexer.LPAREN)
	inner := p.parseExpression(LOWEST)
	p.expect(lexer.RPAREN)
	return &ast.OldExpression{Inner: inner, Position: pos}
}

func (p *Parser) parseUnaryExpression() ast.Expression {
	tok := p.cursor.Current()
	p.cursor.Advance()
	operand := p.parseExpression(UNARY)
	return &ast.UnaryExpression{Operator: tok.Literal, Operand: operand, Position: tok.Pos}
}

func (p *Parser) parseBinaryExpression(left ast.Expression) ast.Expression {
	tok := p.cursor.Current()
	prec := getPrecedence(tok.Kind)
	p.cursor.Advance()
	right := p.parseExpression(prec)
	return &ast.BinaryExpression{Left: left, Operator: tok.Literal, Right: right, Position: tok.Pos}
}

func (p *Parser) parseParenExpression() ast.Expression {
	pos := p.curPos()
	p.expect(lexer.LPAREN)
	inner := p.parseExpression(LOWEST)
	p.expect(lexer.RPAREN)
	return &ast.ParenExpression{Inner: inner, Position: pos}
}

func (p *Parser) parseArrayLiteral() ast.Expression {
	pos := p.curPos()
	p.expect(lexer.LBRACKET)
	var elems []ast.Expression
	for !p.cursor.Is(lexer.RBRACKET) && !p.failed() {
		elems = append(elems, p.parseExpression(LOWEST))
		if p.cursor.Is(lexer.COMMA) {
			p.cursor.Advance()
		} else {
			break
		}
	}
	p.expect(lexer.RBRACKET)
	return &ast.ArrayLiteral{Elements: elems, Position: pos}
}

func (p *Parser) parseRecordLiteral() ast.Expression {
	pos := p.curPos()
	p.expect(lexer.LBRACE)
	var fields []ast.RecordField
	for !p.cursor.Is(lexer.RBRACE) && !p.failed() {
		name := p.expect(lexer.IDENT).Literal
		p.expect(lexer.COLON)
		val := p.parseExpression(LOWEST)
		fields = append(fields, ast.RecordField{Name: name, Value: val})
		if p.cursor.Is(lexer.COMMA) {
			p.cursor.Advance()
		} else {
			break
		}
	}
	p.expect(lexer.RBRACE)
	return &ast.RecordLiteral{Fields: fields, Position: pos}
}

func (p *Parser) parseCallExpression(callee ast.Expression) ast.Expression {
	pos := callee.Pos()
	p.expect(lexer.LPAREN)
	var args []ast.Expression
	for !p.cursor.Is(lexer.RPAREN) && !p.failed() {
		args = append(args, p.parseExpression(LOWEST))
		if p.cursor.Is(lexer.COMMA) {
			p.cursor.Advance()
		} else {
			break
		}
	}
	p.expect(lexer.RPAREN)
	return &ast.CallExpression{Callee: callee, Args: args, Position: pos}
}

func (p *Parser) parseMemberAccess(object ast.Expression) ast.Expression {
	pos := p.curPos()
	p.expect(lexer.DOT)
	member := p.expect(lexer.IDENT).Literal
	return &ast.MemberAccessExpression{Object: object, Member: member, Position: pos}
}

// parseWhenExpression parses `when cond block (otherwise block)?`.
func (p *Parser) parseWhenExpression() ast.Expression {
	pos := p.curPos()
	p.expect(lexer.WHEN)
	cond := p.parseExpression(LOWEST)
	then := p.parseIndentedBlock()
	// The lexer never emits a NEWLINE for a blank or comment-only line
	// (skipBlankAndCommentLines), so immediately after the DEDENT closing
	// `then` the cursor already sits on the next real token: no lookahead
	// or backtracking is needed to test for `otherwise`.
	var els *ast.Block
	if p.cursor.Is(lexer.OTHERWISE) {
		p.cursor.Advance()
		els = p.parseIndentedBlock()
	}
	return &ast.WhenExpression{Condition: cond, Then: then, Else: els, Position: pos}
}

// parseGivenExpression parses `given scrutinee` followed by one or more
// `pattern -> expression` cases.
func (p *Parser) parseGivenExpression() ast.Expression {
	pos := p.curPos()
	p.expect(lexer.GIVEN)
	scrutinee := p.parseExpression(LOWEST)
	p.expect(lexer.NEWLINE)
	p.expect(lexer.INDENT)

	var cases []ast.MatchCase
	for !p.cursor.Is(lexer.DEDENT) && !p.failed() {
		pat := p.parsePattern()
		p.expect(lexer.ARROW)
		result := p.parseExpression(LOWEST)
		cases = append(cases, ast.MatchCase{Pattern: pat, Result: result})
		if p.cursor.Is(lexer.NEWLINE) {
			p.skipNewlines()
		} else {
			break
		}
	}
	p.expect(lexer.DEDENT)
	return &ast.GivenExpression{Scrutinee: scrutinee, Cases: cases, Position: pos}
}

// parseIndentedBlock parses a NEWLINE INDENT statement* DEDENT block, the
// body shape every `when`/`define` suite shares.
func (p *Parser) parseIndentedBlock() *ast.Block {
	pos := p.curPos()
	p.expect(lexer.NEWLINE)
	p.expect(lexer.INDENT)
	block := p.parseBlockStatements(pos)
	p.expect(lexer.DEDENT)
	return block
}

func (p *Parser) parseBlockStatements(pos lexer.Position) *ast.Block {
	block := &ast.Block{Position: pos}
	for !p.cursor.Is(lexer.DEDENT) && !p.cursor.Is(lexer.EOF) && !p.failed() {
		if p.cursor.Is(lexer.NEWLINE) {
			p.cursor.Advance()
			continue
		}
		stmt := p.parseStatement()
		if stmt == nil {
			break
		}
		block.Statements = append(block.Statements, stmt)
		if p.cursor.Is(lexer.NEWLINE) {
			p.cursor.Advance()
		}
	}
	return block
}
