package ast

import (
	"strings"

	"github.com/vibelang/vbl/internal/lexer"
	"github.com/vibelang/vbl/internal/types"
)

// Statement is implemented by every statement node.
type Statement interface {
	Node
	statementNode()
}

// Block is an ordered list of statements; the last ExpressionStatement in a
// block (if any) is the block's value.
type Block struct {
	Statements []Statement
	Position   lexer.Position
}

func (b *Block) statementNode()       {}
func (b *Block) Pos() lexer.Position { return b.Position }
func (b *Block) String() string {
	var sb strings.Builder
	sb.WriteString("{")
	for _, s := range b.Statements {
		sb.WriteString(" " + s.String() + ";")
	}
	sb.WriteString(" }")
	return sb.String()
}

// Value returns the block's trailing expression, i.e. the Expression held
// by its last statement if that statement is an ExpressionStatement, or nil
// if the block has no value (used by the type checker to type a block and
// by the verifier/emitter to find a function's returned expression).
func (b *Block) Value() Expression {
	if len(b.Statements) == 0 {
		return nil
	}
	if es, ok := b.Statements[len(b.Statements)-1].(*ExpressionStatement); ok {
		return es.Expr
	}
	return nil
}

// LetStatement is `let name(: Type)? = value`.
type LetStatement struct {
	Name       string
	Annotation TypeExpr // nil if omitted
	Value      Expression
	// ResolvedType is filled in by the type checker: the annotation's type
	// if present, otherwise the value's inferred type.
	ResolvedType types.Type
	Position     lexer.Position
}

func (s *LetStatement) statementNode()       {}
func (s *LetStatement) Pos() lexer.Position { return s.Position }
func (s *LetStatement) String() string {
	if s.Annotation != nil {
		return "let " + s.Name + ": " + s.Annotation.String() + " = " + s.Value.String()
	}
	return "let " + s.Name + " = " + s.Value.String()
}

// AssignStatement is `target = value`.
type AssignStatement struct {
	Target   string
	Value    Expression
	Position lexer.Position
}

func (s *AssignStatement) statementNode()       {}
func (s *AssignStatement) Pos() lexer.Position { return s.Position }
func (s *AssignStatement) String() string {
	return s.Target + " = " + s.Value.String()
}

// ExpressionStatement wraps a bare expression used for its value or its
// side effect.
type ExpressionStatement struct {
	Expr     Expression
	Position lexer.Position
}

func (s *ExpressionStatement) statementNode()       {}
func (s *ExpressionStatement) Pos() lexer.Position { return s.Position }
func (s *ExpressionStatement) String() string      { return s.Expr.String() }
