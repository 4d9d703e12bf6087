package ast

import (
	"strings"

	"github.com/vibelang/vbl/internal/lexer"
)

// TypeExpr is the syntactic representation of a type as written in source;
// it is resolved to a internal/types.Type by the type checker. Types form a
// closed sum.
type TypeExpr interface {
	Node
	typeExprNode()
}

// PrimitiveType is one of Int, Float, Bool, String, Byte, Unit.
type PrimitiveType struct {
	Name     string
	Position lexer.Position
}

func (t *PrimitiveType) typeExprNode()       {}
func (t *PrimitiveType) Pos() lexer.Position { return t.Position }
func (t *PrimitiveType) String() string      { return t.Name }

// ArrayType is `[T]`, an array of elements of type Element.
type ArrayType struct {
	Element  TypeExpr
	Position lexer.Position
}

func (t *ArrayType) typeExprNode()       {}
func (t *ArrayType) Pos() lexer.Position { return t.Position }
func (t *ArrayType) String() string      { return "[" + t.Element.String() + "]" }

// ResultType is `Result[T, E]`, the tagged Success(T)/Error(E) result type.
type ResultType struct {
	Ok       TypeExpr
	Err      TypeExpr
	Position lexer.Position
}

func (t *ResultType) typeExprNode()       {}
func (t *ResultType) Pos() lexer.Position { return t.Position }
func (t *ResultType) String() string {
	return "Result[" + t.Ok.String() + ", " + t.Err.String() + "]"
}

// FunctionType is `(T1, T2) -> R`.
type FunctionType struct {
	Params   []TypeExpr
	Return   TypeExpr
	Position lexer.Position
}

func (t *FunctionType) typeExprNode()       {}
func (t *FunctionType) Pos() lexer.Position { return t.Position }
func (t *FunctionType) String() string {
	parts := make([]string, len(t.Params))
	for i, p := range t.Params {
		parts[i] = p.String()
	}
	return "(" + strings.Join(parts, ", ") + ") -> " + t.Return.String()
}

// NamedType references a declared type (alias, sum, refined, or generic
// parameter) by name, with optional type arguments.
type NamedType struct {
	Name     string
	Args     []TypeExpr
	Position lexer.Position
}

func (t *NamedType) typeExprNode()       {}
func (t *NamedType) Pos() lexer.Position { return t.Position }
func (t *NamedType) String() string {
	if len(t.Args) == 0 {
		return t.Name
	}
	parts := make([]string, len(t.Args))
	for i, a := range t.Args {
		parts[i] = a.String()
	}
	return t.Name + "[" + strings.Join(parts, ", ") + "]"
}
