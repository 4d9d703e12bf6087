package parser

import (
	"github.com/vibelang/vbl/internal/ast"
	"github.com/vibelang/vbl/internal/lexer"
)

// parseStatement parses one of the closed statement kinds: let-binding,
// assignment, or expression statement. `for` is reserved-but-unimplemented
// and is rejected with a syntactic diagnostic rather than guessed semantics.
func (p *Parser) parseStatement() ast.Statement {
	switch p.cursor.Current().Kind {
	case lexer.LET:
		return p.parseLetStatement()
	case lexer.FOR:
		p.fail(ErrUnimplementedLoop, "the 'for ... in ...' loop is not implemented")
		return nil
	case lexer.IDENT:
		if p.cursor.PeekIs(lexer.ASSIGN) {
			return p.parseAssignStatement()
		}
		return p.parseExpressionStatement()
	default:
		return p.parseExpressionStatement()
	}
}

// parseLetStatement parses `let name(: Type)? = value`.
func (p *Parser) parseLetStatement() ast.Statement {
	pos := p.curPos()
	p.expect(lexer.LET)
	name := p.expect(lexer.IDENT).Literal
	var annotation ast.TypeExpr
	if p.cursor.Is(lexer.COLON) {
		p.cursor.Advance()
		annotation = p.parseTypeExpr()
	}
	p.expect(lexer.ASSIGN)
	value := p.parseExpression(LOWEST)
	return &ast.LetStatement{Name: name, Annotation: annotation, Value: value, Position: pos}
}

// parseAssignStatement parses `target = value`.
func (p *Parser) parseAssignStatement() ast.Statement {
	pos := p.curPos()
	target := p.expect(lexer.IDENT).Literal
	p.expect(lexer.ASSIGN)
	value := p.parseExpression(LOWEST)
	return &ast.AssignStatement{Target: target, Value: value, Position: pos}
}

func (p *Parser) parseExpressionStatement() ast.Statement {
	pos := p.curPos()
	expr := p.parseExpression(LOWEST)
	if expr == nil {
		return nil
	}
	return &ast.ExpressionStatement{Expr: expr, Position: pos}
}

// ---- patterns ----

// parsePattern parses one `given`-expression pattern: constructor,
// identifier binding, literal, or wildcard.
func (p *Parser) parsePattern() ast.Pattern {
	tok := p.cursor.Current()
	switch tok.Kind {
	case lexer.WILDCARD:
		p.cursor.Advance()
		return &ast.WildcardPattern{Position: tok.Pos}
	case lexer.INT, lexer.FLOAT, lexer.STRING, lexer.TRUE, lexer.FALSE:
		lit := p.parseExpression(POSTFIX)
		return &ast.LiteralPattern{Value: lit, Position: tok.Pos}
	case lexer.IDENT:
		name := tok.Literal
		p.cursor.Advance()
		if p.cursor.Is(lexer.LPAREN) {
			p.cursor.Advance()
			var subs []ast.Pattern
			for !p.cursor.Is(lexer.RPAREN) && !p.failed() {
				subs = append(subs, p.parsePattern())
				if p.cursor.Is(lexer.COMMA) {
					p.cursor.Advance()
				} else {
					break
				}
			}
			p.expect(lexer.RPAREN)
			return &ast.ConstructorPattern{Name: name, SubPatterns: subs, Position: tok.Pos}
		}
		if isUpperInitial(name) {
			return &ast.ConstructorPattern{Name: name, Position: tok.Pos}
		}
		return &ast.IdentifierPattern{Name: name, Position: tok.Pos}
	default:
		p.fail(ErrMalformedPattern, "expected a pattern, got %s", tok.Kind)
		return nil
	}
}

func isUpperInitial(s string) bool {
	return len(s) > 0 && s[0] >= 'A' && s[0] <= 'Z'
}
