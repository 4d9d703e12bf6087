// Package ast defines VibeLang's abstract syntax tree.
//
// Every node records its own source position and belongs to one of three
// closed sums: Type, Expression, Statement (plus Pattern, Declaration, and
// the Program root). The tree is produced once by the parser and is
// thereafter read-only except for the three documented annotation points:
// the type checker attaches resolved types, the verifier attaches contract
// proof status, and the optimizer returns a structurally new tree rather
// than mutating the one it was given.
package ast

import (
	"strings"

	"github.com/vibelang/vbl/internal/lexer"
)

// Node is the base interface implemented by every tree element.
type Node interface {
	Pos() lexer.Position
	String() string
}

// Program is the root of the tree: an ordered list of imports followed by
// an ordered list of declarations.
type Program struct {
	Imports      []*Import
	Declarations []Declaration
}

func (p *Program) Pos() lexer.Position {
	if len(p.Imports) > 0 {
		return p.Imports[0].Pos()
	}
	if len(p.Declarations) > 0 {
		return p.Declarations[0].Pos()
	}
	return lexer.Position{Line: 1, Column: 1}
}

func (p *Program) String() string {
	var sb strings.Builder
	for _, imp := range p.Imports {
		sb.WriteString(imp.String())
		sb.WriteString("\n")
	}
	for _, d := range p.Declarations {
		sb.WriteString(d.String())
		sb.WriteString("\n")
	}
	return sb.String()
}

// Import is a single `import` statement naming a dotted path.
type Import struct {
	Path     []string
	Position lexer.Position
}

func (i *Import) Pos() lexer.Position { return i.Position }
func (i *Import) String() string      { return "import " + strings.Join(i.Path, ".") }

// Declaration is implemented by TypeDecl and FunctionDecl, the two kinds of
// top-level declaration.
type Declaration interface {
	Node
	declarationNode()
}
