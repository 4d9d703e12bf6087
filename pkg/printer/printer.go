// Package printer implements VibeLang's canonical formatter: a
// deterministic, idempotent AST→source serializer with an
// Options-configured Printer exposing one print method per
// declaration/statement kind.
package printer

import (
	"strings"

	"github.com/vibelang/vbl/internal/ast"
)

// Options configures the printer. IndentWidth defaults to 2.
type Options struct {
	IndentWidth int
}

// Printer renders a Program to its canonical textual form.
type Printer struct {
	opts Options
}

// New creates a Printer, defaulting IndentWidth to 2 if unset.
func New(opts Options) *Printer {
	if opts.IndentWidth <= 0 {
		opts.IndentWidth = 2
	}
	return &Printer{opts: opts}
}

// Print renders program canonically. Calling Print on the result of
// parsing Print's own output reproduces it exactly: the canonical form
// is idempotent.
func (p *Printer) Print(program *ast.Program) string {
	var sb strings.Builder
	for _, imp := range program.Imports {
		sb.WriteString(imp.String())
		sb.WriteString("\n")
	}
	if len(program.Imports) > 0 && len(program.Declarations) > 0 {
		sb.WriteString("\n")
	}
	for i, decl := range program.Declarations {
		if i > 0 {
			sb.WriteString("\n")
		}
		switch d := decl.(type) {
		case *ast.TypeDecl:
			p.printTypeDecl(&sb, d)
		case *ast.FunctionDecl:
			p.printFunctionDecl(&sb, d)
		}
	}
	return sb.String()
}

func (p *Printer) indent(level int) string {
	return strings.Repeat(" ", p.opts.IndentWidth*level)
}

func (p *Printer) printTypeDecl(sb *strings.Builder, d *ast.TypeDecl) {
	sb.WriteString("type " + d.Name)
	if len(d.Params) > 0 {
		sb.WriteString("[" + strings.Join(d.Params, ", ") + "]")
	}

	switch d.DefKind {
	case ast.AliasTypeDef:
		sb.WriteString(" = " + d.Alias.String() + "\n")
	case ast.RefinedTypeDef:
		sb.WriteString(" = " + d.Base.String() + "\n")
	case ast.SumTypeDef:
		sb.WriteString(" =\n")
		for _, v := range d.Variants {
			sb.WriteString(p.indent(1) + "| " + v.Name)
			if len(v.Payload) > 0 {
				parts := make([]string, len(v.Payload))
				for i, t := range v.Payload {
					parts[i] = t.String()
				}
				sb.WriteString("(" + strings.Join(parts, ", ") + ")")
			}
			sb.WriteString("\n")
		}
	}

	for _, inv := range d.Invariants {
		sb.WriteString(p.indent(1) + "invariant " + inv.Expr.String() + "\n")
	}
}

func (p *Printer) printFunctionDecl(sb *strings.Builder, d *ast.FunctionDecl) {
	params := make([]string, len(d.Params))
	for i, param := range d.Params {
		params[i] = param.Name + ": " + param.Type.String()
	}
	sb.WriteString("define " + d.Name + "(" + strings.Join(params, ", ") + ") -> " + d.ReturnType.String() + "\n")

	for _, pre := range d.Preconditions {
		sb.WriteString(p.indent(1) + "expect " + pre.Expr.String() + "\n")
	}
	for _, post := range d.Postconditions {
		sb.WriteString(p.indent(1) + "ensure " + post.Expr.String() + "\n")
	}

	sb.WriteString("given\n")
	p.printBlock(sb, d.Body, 1)
}

func (p *Printer) printBlock(sb *strings.Builder, b *ast.Block, level int) {
	for _, stmt := range b.Statements {
		sb.WriteString(p.indent(level))
		p.printStatement(sb, stmt, level)
		sb.WriteString("\n")
	}
}

func (p *Printer) printStatement(sb *strings.Builder, stmt ast.Statement, level int) {
	switch s := stmt.(type) {
	case *ast.LetStatement:
		sb.WriteString("let " + s.Name)
		if s.Annotation != nil {
			sb.WriteString(": " + s.Annotation.String())
		}
		sb.WriteString(" = ")
		p.printExpr(sb, s.Value, level)
	case *ast.AssignStatement:
		sb.WriteString(s.Target + " = ")
		p.printExpr(sb, s.Value, level)
	case *ast.ExpressionStatement:
		p.printExpr(sb, s.Expr, level)
	default:
		sb.WriteString(stmt.String())
	}
}

// printExpr renders e. Every expression kind has a single-line String()
// already, except `when` and `given`, whose bodies are blocks that need
// canonical multi-line, indented rendering.
func (p *Printer) printExpr(sb *strings.Builder, e ast.Expression, level int) {
	switch e := e.(type) {
	case *ast.WhenExpression:
		sb.WriteString("when " + e.Condition.String() + "\n")
		p.printBlock(sb, e.Then, level+1)
		if e.Else != nil {
			sb.WriteString(p.indent(level) + "otherwise\n")
			p.printBlock(sb, e.Else, level+1)
		}
	case *ast.GivenExpression:
		sb.WriteString("given " + e.Scrutinee.String() + "\n")
		for _, c := range e.Cases {
			sb.WriteString(p.indent(level+1) + c.Pattern.String() + " -> ")
			p.printExpr(sb, c.Result, level+1)
			sb.WriteString("\n")
		}
	default:
		sb.WriteString(e.String())
	}
}
