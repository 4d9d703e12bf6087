package ast

import (
	"strconv"
	"strings"

	"github.com/vibelang/vbl/internal/lexer"
	"github.com/vibelang/vbl/internal/types"
)

// Expression is implemented by every node that produces a value.
type Expression interface {
	Node
	expressionNode()
	// ResolvedType returns the type the checker annotated this node with,
	// or nil before type-checking has run.
	ResolvedType() types.Type
	SetResolvedType(types.Type)
}

// typed is embedded by every expression node to provide the
// ResolvedType/SetResolvedType pair without repeating it on each struct.
type typed struct {
	typ types.Type
}

func (t *typed) ResolvedType() types.Type     { return t.typ }
func (t *typed) SetResolvedType(ty types.Type) { t.typ = ty }

// IntegerLiteral is an Int literal.
type IntegerLiteral struct {
	typed
	Value    int64
	Position lexer.Position
}

func (e *IntegerLiteral) expressionNode()       {}
func (e *IntegerLiteral) Pos() lexer.Position   { return e.Position }
func (e *IntegerLiteral) String() string        { return strconv.FormatInt(e.Value, 10) }

// FloatLiteral is a Float literal.
type FloatLiteral struct {
	typed
	Value    float64
	Raw      string
	Position lexer.Position
}

func (e *FloatLiteral) expressionNode()     {}
func (e *FloatLiteral) Pos() lexer.Position { return e.Position }
func (e *FloatLiteral) String() string      { return e.Raw }

// StringLiteral is a String literal (decoded, without surrounding quotes).
type StringLiteral struct {
	typed
	Value    string
	Position lexer.Position
}

func (e *StringLiteral) expressionNode()     {}
func (e *StringLiteral) Pos() lexer.Position { return e.Position }
func (e *StringLiteral) String() string      { return "\"" + e.Value + "\"" }

// BoolLiteral is `true` or `false`.
type BoolLiteral struct {
	typed
	Value    bool
	Position lexer.Position
}

func (e *BoolLiteral) expressionNode()     {}
func (e *BoolLiteral) Pos() lexer.Position { return e.Position }
func (e *BoolLiteral) String() string {
	if e.Value {
		return "true"
	}
	return "false"
}

// Identifier is a bare name reference, including the reserved words
// `result`, `self`, and `value` when they appear in an expression
// position.
type Identifier struct {
	typed
	Name     string
	Position lexer.Position
}

func (e *Identifier) expressionNode()     {}
func (e *Identifier) Pos() lexer.Position { return e.Position }
func (e *Identifier) String() string      { return e.Name }

// OldExpression is `old(e)`, valid only inside a postcondition; it denotes
// the value of e at function entry.
type OldExpression struct {
	typed
	Inner    Expression
	Position lexer.Position
}

func (e *OldExpression) expressionNode()     {}
func (e *OldExpression) Pos() lexer.Position { return e.Position }
func (e *OldExpression) String() string      { return "old(" + e.Inner.String() + ")" }

// BinaryExpression is `left op right`.
type BinaryExpression struct {
	typed
	Left     Expression
	Operator string
	Right    Expression
	Position lexer.Position
}

func (e *BinaryExpression) expressionNode()     {}
func (e *BinaryExpression) Pos() lexer.Position { return e.Position }
func (e *BinaryExpression) String() string {
	return "(" + e.Left.String() + " " + e.Operator + " " + e.Right.String() + ")"
}

// UnaryExpression is `op operand` (prefix `-` or `!`).
type UnaryExpression struct {
	typed
	Operator string
	Operand  Expression
	Position lexer.Position
}

func (e *UnaryExpression) expressionNode()     {}
func (e *UnaryExpression) Pos() lexer.Position { return e.Position }
func (e *UnaryExpression) String() string      { return e.Operator + e.Operand.String() }

// CallExpression is `callee(args...)`.
type CallExpression struct {
	typed
	Callee   Expression
	Args     []Expression
	Position lexer.Position
}

func (e *CallExpression) expressionNode()     {}
func (e *CallExpression) Pos() lexer.Position { return e.Position }
func (e *CallExpression) String() string {
	parts := make([]string, len(e.Args))
	for i, a := range e.Args {
		parts[i] = a.String()
	}
	return e.Callee.String() + "(" + strings.Join(parts, ", ") + ")"
}

// MemberAccessExpression is `object.member`.
type MemberAccessExpression struct {
	typed
	Object   Expression
	Member   string
	Position lexer.Position
}

func (e *MemberAccessExpression) expressionNode()     {}
func (e *MemberAccessExpression) Pos() lexer.Position { return e.Position }
func (e *MemberAccessExpression) String() string {
	return e.Object.String() + "." + e.Member
}

// ArrayLiteral is `[e1, e2, ...]`.
type ArrayLiteral struct {
	typed
	Elements []Expression
	Position lexer.Position
}

func (e *ArrayLiteral) expressionNode()     {}
func (e *ArrayLiteral) Pos() lexer.Position { return e.Position }
func (e *ArrayLiteral) String() string {
	parts := make([]string, len(e.Elements))
	for i, el := range e.Elements {
		parts[i] = el.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// RecordField is one `name: value` pair inside a RecordLiteral.
type RecordField struct {
	Name  string
	Value Expression
}

// RecordLiteral is `{ field: value, ... }`.
type RecordLiteral struct {
	typed
	Fields   []RecordField
	Position lexer.Position
}

func (e *RecordLiteral) expressionNode()     {}
func (e *RecordLiteral) Pos() lexer.Position { return e.Position }
func (e *RecordLiteral) String() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Name + ": " + f.Value.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// WhenExpression is `when cond thenBlock (otherwise elseBlock)?`.
type WhenExpression struct {
	typed
	Condition Expression
	Then      *Block
	Else      *Block // nil if no `otherwise` clause
	Position  lexer.Position
}

func (e *WhenExpression) expressionNode()     {}
func (e *WhenExpression) Pos() lexer.Position { return e.Position }
func (e *WhenExpression) String() string {
	s := "when " + e.Condition.String() + " " + e.Then.String()
	if e.Else != nil {
		s += " otherwise " + e.Else.String()
	}
	return s
}

// MatchCase is one `pattern -> expression` arm of a given-expression.
type MatchCase struct {
	Pattern Pattern
	Result  Expression
}

// GivenExpression is VibeLang's pattern match: a scrutinee plus an ordered
// list of (pattern, expression) cases.
type GivenExpression struct {
	typed
	Scrutinee Expression
	Cases     []MatchCase
	Position  lexer.Position
}

func (e *GivenExpression) expressionNode()     {}
func (e *GivenExpression) Pos() lexer.Position { return e.Position }
func (e *GivenExpression) String() string {
	var sb strings.Builder
	sb.WriteString("given " + e.Scrutinee.String())
	for _, c := range e.Cases {
		sb.WriteString("\n  " + c.Pattern.String() + " -> " + c.Result.String())
	}
	return sb.String()
}

// ParenExpression is a syntactic grouping with no semantic effect beyond
// overriding precedence.
type ParenExpression struct {
	typed
	Inner    Expression
	Position lexer.Position
}

func (e *ParenExpression) expressionNode()     {}
func (e *ParenExpression) Pos() lexer.Position { return e.Position }
func (e *ParenExpression) String() string {
	if _, ok := e.Inner.(*BinaryExpression); ok {
		return e.Inner.String() // BinaryExpression already renders its own parentheses
	}
	return "(" + e.Inner.String() + ")"
}
