package parser

import (
	"github.com/vibelang/vbl/internal/ast"
	"github.com/vibelang/vbl/internal/lexer"
)

// parseTypeParams parses an optional `[T1, T2, ...]` type parameter list.
func (p *Parser) parseTypeParams() []string {
	if !p.cursor.Is(lexer.LBRACKET) {
		return nil
	}
	p.cursor.Advance()
	var params []string
	for !p.cursor.Is(lexer.RBRACKET) && !p.failed() {
		params = append(params, p.expect(lexer.IDENT).Literal)
		if p.cursor.Is(lexer.COMMA) {
			p.cursor.Advance()
		} else {
			break
		}
	}
	p.expect(lexer.RBRACKET)
	return params
}

// parseTypeDecl parses `type Name type-params? = type-definition NEWLINE`
// plus optional invariant lines.
func (p *Parser) parseTypeDecl() ast.Declaration {
	pos := p.curPos()
	p.expect(lexer.TYPE)
	name := p.expect(lexer.IDENT).Literal
	params := p.parseTypeParams()
	p.expect(lexer.ASSIGN)

	decl := &ast.TypeDecl{Name: name, Params: params, Position: pos}

	if p.cursor.Is(lexer.PIPE) || (p.cursor.Is(lexer.NEWLINE) && p.peekStartsVariants()) {
		decl.DefKind = ast.SumTypeDef
		indented := p.cursor.Is(lexer.NEWLINE)
		decl.Variants = p.parseSumVariants()
		if !indented {
			// the indented form's final NEWLINE is consumed before its DEDENT
			p.expect(lexer.NEWLINE)
		}
		decl.Invariants = p.parseOptionalInvariants()
		return decl
	}

	base := p.parseTypeExpr()
	p.expect(lexer.NEWLINE)
	invariants := p.parseOptionalInvariants()
	if len(invariants) > 0 {
		decl.DefKind = ast.RefinedTypeDef
		decl.Base = base
		decl.Invariants = invariants
	} else {
		decl.DefKind = ast.AliasTypeDef
		decl.Alias = base
	}
	return decl
}

// peekStartsVariants reports whether the definition continues on the next
// line (a NEWLINE right after `=`), which is parsed as the multi-line
// sum-type form. It does not look ahead for the leading PIPE; if the
// indented lines are not variants, parseSumVariants reports the error:
//
//	type Shape =
//	  | Circle(Float)
//	  | Square(Float)
func (p *Parser) peekStartsVariants() bool {
	return p.cursor.Is(lexer.NEWLINE)
}

// parseSumVariants parses the pipe-separated variant list of a sum type,
// either inline (`= | A | B`) or on an indented block following NEWLINE.
func (p *Parser) parseSumVariants() []ast.SumVariant {
	indented := false
	if p.cursor.Is(lexer.NEWLINE) {
		p.cursor.Advance()
		p.expect(lexer.INDENT)
		indented = true
	}

	var variants []ast.SumVariant
	for p.cursor.Is(lexer.PIPE) && !p.failed() {
		vpos := p.curPos()
		p.cursor.Advance()
		vname := p.expect(lexer.IDENT).Literal
		var payload []ast.TypeExpr
		if p.cursor.Is(lexer.LPAREN) {
			p.cursor.Advance()
			for !p.cursor.Is(lexer.RPAREN) && !p.failed() {
				payload = append(payload, p.parseTypeExpr())
				if p.cursor.Is(lexer.COMMA) {
					p.cursor.Advance()
				} else {
					break
				}
			}
			p.expect(lexer.RPAREN)
		}
		variants = append(variants, ast.SumVariant{Name: vname, Payload: payload, Position: vpos})
		if indented {
			if p.cursor.Is(lexer.NEWLINE) {
				p.cursor.Advance()
			}
		}
	}
	if indented {
		p.expect(lexer.DEDENT)
	}
	return variants
}

// parseOptionalInvariants parses zero or more `invariant expr` lines
// indented one level under the type.
func (p *Parser) parseOptionalInvariants() []*ast.Contract {
	if !p.cursor.Is(lexer.INDENT) {
		return nil
	}
	p.cursor.Advance()
	var invariants []*ast.Contract
	for p.cursor.Is(lexer.INVARIANT) && !p.failed() {
		pos := p.curPos()
		p.cursor.Advance()
		expr := p.parseExpression(LOWEST)
		invariants = append(invariants, &ast.Contract{Expr: expr, Position: pos})
		if p.cursor.Is(lexer.NEWLINE) {
			p.cursor.Advance()
		}
	}
	p.expect(lexer.DEDENT)
	return invariants
}

// parseFunctionDecl parses `define name(params) -> Type`, optional
// contract lines, and a `given`-delimited body.
func (p *Parser) parseFunctionDecl() ast.Declaration {
	pos := p.curPos()
	p.expect(lexer.DEFINE)
	name := p.expect(lexer.IDENT).Literal
	p.expect(lexer.LPAREN)
	params := p.parseParams()
	p.expect(lexer.RPAREN)
	p.expect(lexer.ARROW)
	retType := p.parseTypeExpr()
	p.expect(lexer.NEWLINE)

	decl := &ast.FunctionDecl{Name: name, Params: params, ReturnType: retType, Position: pos}

	if p.cursor.Is(lexer.INDENT) {
		p.cursor.Advance()
		for (p.cursor.Is(lexer.EXPECT) || p.cursor.Is(lexer.ENSURE)) && !p.failed() {
			kind := p.cursor.Current().Kind
			cpos := p.curPos()
			p.cursor.Advance()
			expr := p.parseExpression(LOWEST)
			contract := &ast.Contract{Expr: expr, Position: cpos}
			if kind == lexer.EXPECT {
				decl.Preconditions = append(decl.Preconditions, contract)
			} else {
				decl.Postconditions = append(decl.Postconditions, contract)
			}
			if p.cursor.Is(lexer.NEWLINE) {
				p.cursor.Advance()
			}
		}
		if !p.cursor.Is(lexer.DEDENT) {
			p.fail(ErrMissingGiven, "expected 'given' to introduce the function body, got %s", p.cursor.Current().Kind)
			return decl
		}
		p.cursor.Advance()
	}

	if !p.cursor.Is(lexer.GIVEN) {
		p.fail(ErrMissingGiven, "expected 'given' to introduce the function body, got %s", p.cursor.Current().Kind)
		return decl
	}
	p.cursor.Advance()
	decl.Body = p.parseIndentedBlock()
	return decl
}

// parseParams parses a comma-separated `name: Type` parameter list.
func (p *Parser) parseParams() []ast.Param {
	var params []ast.Param
	for !p.cursor.Is(lexer.RPAREN) && !p.failed() {
		pos := p.curPos()
		name := p.expect(lexer.IDENT).Literal
		p.expect(lexer.COLON)
		typ := p.parseTypeExpr()
		params = append(params, ast.Param{Name: name, Type: typ, Position: pos})
		if p.cursor.Is(lexer.COMMA) {
			p.cursor.Advance()
		} else {
			break
		}
	}
	return params
}
