package ast

import (
	"strings"

	"github.com/vibelang/vbl/internal/lexer"
)

// Pattern is implemented by every `given`-expression pattern.
type Pattern interface {
	Node
	patternNode()
}

// ConstructorPattern matches a sum-type variant by name and destructures
// its positional payload.
type ConstructorPattern struct {
	Name     string
	SubPatterns []Pattern
	Position lexer.Position
}

func (p *ConstructorPattern) patternNode()       {}
func (p *ConstructorPattern) Pos() lexer.Position { return p.Position }
func (p *ConstructorPattern) String() string {
	if len(p.SubPatterns) == 0 {
		return p.Name
	}
	parts := make([]string, len(p.SubPatterns))
	for i, sp := range p.SubPatterns {
		parts[i] = sp.String()
	}
	return p.Name + "(" + strings.Join(parts, ", ") + ")"
}

// IdentifierPattern binds the matched value to a new name.
type IdentifierPattern struct {
	Name     string
	Position lexer.Position
}

func (p *IdentifierPattern) patternNode()       {}
func (p *IdentifierPattern) Pos() lexer.Position { return p.Position }
func (p *IdentifierPattern) String() string      { return p.Name }

// LiteralPattern matches an exact literal value.
type LiteralPattern struct {
	Value    Expression // one of IntegerLiteral, FloatLiteral, StringLiteral, BoolLiteral
	Position lexer.Position
}

func (p *LiteralPattern) patternNode()       {}
func (p *LiteralPattern) Pos() lexer.Position { return p.Position }
func (p *LiteralPattern) String() string      { return p.Value.String() }

// WildcardPattern (`_`) matches anything and binds nothing.
type WildcardPattern struct {
	Position lexer.Position
}

func (p *WildcardPattern) patternNode()       {}
func (p *WildcardPattern) Pos() lexer.Position { return p.Position }
func (p *WildcardPattern) String() string      { return "_" }
