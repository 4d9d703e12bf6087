package ast

import (
	"strings"

	"github.com/vibelang/vbl/internal/lexer"
	"github.com/vibelang/vbl/internal/types"
)

// TypeDefKind classifies a type declaration's definition.
type TypeDefKind int

const (
	AliasTypeDef TypeDefKind = iota
	SumTypeDef
	RefinedTypeDef
)

// SumVariant is one `Name(T1, T2, ...)` constructor of a sum type.
type SumVariant struct {
	Name     string
	Payload  []TypeExpr
	Position lexer.Position
}

// TypeDecl is `type Name[params] = definition` plus optional invariants.
type TypeDecl struct {
	Name       string
	Params     []string // type parameter identifiers, in order
	DefKind    TypeDefKind
	Alias      TypeExpr     // AliasTypeDef
	Variants   []SumVariant // SumTypeDef
	Base       TypeExpr     // RefinedTypeDef
	Invariants []*Contract  // RefinedTypeDef invariants (and top-level sum/alias decls, if any)
	Position   lexer.Position
}

func (d *TypeDecl) declarationNode()       {}
func (d *TypeDecl) Pos() lexer.Position    { return d.Position }
func (d *TypeDecl) String() string {
	var sb strings.Builder
	sb.WriteString("type " + d.Name)
	if len(d.Params) > 0 {
		sb.WriteString("[" + strings.Join(d.Params, ", ") + "]")
	}
	sb.WriteString(" = ")
	switch d.DefKind {
	case SumTypeDef:
		parts := make([]string, len(d.Variants))
		for i, v := range d.Variants {
			parts[i] = v.Name
		}
		sb.WriteString(strings.Join(parts, " | "))
	case RefinedTypeDef:
		sb.WriteString(d.Base.String())
	default:
		sb.WriteString(d.Alias.String())
	}
	return sb.String()
}

// Param is one function parameter: a name and its declared type.
type Param struct {
	Name     string
	Type     TypeExpr
	Position lexer.Position
}

// FunctionDecl is `define name(params) -> ReturnType` plus contracts and a
// body.
type FunctionDecl struct {
	Name       string
	Params     []Param
	ReturnType TypeExpr
	Preconditions  []*Contract // `expect` lines
	Postconditions []*Contract // `ensure` lines
	Body       *Block
	// ResolvedReturnType mirrors ReturnType after resolution, filled in by
	// the type checker.
	ResolvedReturnType types.Type
	Position           lexer.Position
}

func (d *FunctionDecl) declarationNode()    {}
func (d *FunctionDecl) Pos() lexer.Position { return d.Position }
func (d *FunctionDecl) String() string {
	parts := make([]string, len(d.Params))
	for i, p := range d.Params {
		parts[i] = p.Name + ": " + p.Type.String()
	}
	return "define " + d.Name + "(" + strings.Join(parts, ", ") + ") -> " + d.ReturnType.String()
}
