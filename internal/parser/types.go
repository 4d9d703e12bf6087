package parser

import (
	"github.com/vibelang/vbl/internal/ast"
	"github.com/vibelang/vbl/internal/lexer"
)

var primitiveNames = map[string]bool{
	"Int": true, "Float": true, "Bool": true, "String": true, "Byte": true, "Unit": true,
}

// parseTypeExpr parses one of the closed TypeExpr kinds: array, result,
// function, or named (including primitives, which are named types whose name
// is reserved).
func (p *Parser) parseTypeExpr() ast.TypeExpr {
	tok := p.cursor.Current()
	switch tok.Kind {
	case lexer.LBRACKET:
		p.cursor.Advance()
		elem := p.parseTypeExpr()
		p.expect(lexer.RBRACKET)
		return &ast.ArrayType{Element: elem, Position: tok.Pos}
	case lexer.LPAREN:
		p.cursor.Advance()
		var params []ast.TypeExpr
		for !p.cursor.Is(lexer.RPAREN) && !p.failed() {
			params = append(params, p.parseTypeExpr())
			if p.cursor.Is(lexer.COMMA) {
				p.cursor.Advance()
			} else {
				break
			}
		}
		p.expect(lexer.RPAREN)
		p.expect(lexer.ARROW)
		ret := p.parseTypeExpr()
		return &ast.FunctionType{Params: params, Return: ret, Position: tok.Pos}
	case lexer.IDENT:
		name := tok.Literal
		p.cursor.Advance()
		if name == "Result" && p.cursor.Is(lexer.LBRACKET) {
			p.cursor.Advance()
			ok := p.parseTypeExpr()
			p.expect(lexer.COMMA)
			errT := p.parseTypeExpr()
			p.expect(lexer.RBRACKET)
			return &ast.ResultType{Ok: ok, Err: errT, Position: tok.Pos}
		}
		if primitiveNames[name] {
			return &ast.PrimitiveType{Name: name, Position: tok.Pos}
		}
		var args []ast.TypeExpr
		if p.cursor.Is(lexer.LBRACKET) {
			p.cursor.Advance()
			for !p.cursor.Is(lexer.RBRACKET) && !p.failed() {
				args = append(args, p.parseTypeExpr())
				if p.cursor.Is(lexer.COMMA) {
					p.cursor.Advance()
				} else {
					break
				}
			}
			p.expect(lexer.RBRACKET)
		}
		return &ast.NamedType{Name: name, Args: args, Position: tok.Pos}
	default:
		p.fail(ErrUnexpectedToken, "expected a type, got %s", tok.Kind)
		return nil
	}
}
