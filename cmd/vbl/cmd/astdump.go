package cmd

import (
	"fmt"
	"strings"

	"github.com/vibelang/vbl/internal/ast"
)

// dumpProgram renders program as an indented, s-expression-like summary
// : one line per declaration naming its kind and source position, with
// nested statements/expressions indented under it. This is a diagnostic
// view, distinct from pkg/printer's canonical round-trippable source
// rendering.
func dumpProgram(program *ast.Program) string {
	var sb strings.Builder
	for _, imp := range program.Imports {
		fmt.Fprintf(&sb, "(import %s)\n", strings.Join(imp.Path, "."))
	}
	for _, decl := range program.Declarations {
		dumpDecl(&sb, decl, 0)
	}
	return sb.String()
}

func dumpDecl(sb *strings.Builder, decl ast.Declaration, depth int) {
	switch d := decl.(type) {
	case *ast.TypeDecl:
		fmt.Fprintf(sb, "%s(type %s @%s)\n", indent(depth), d.Name, d.Pos())
	case *ast.FunctionDecl:
		fmt.Fprintf(sb, "%s(define %s @%s)\n", indent(depth), d.Name, d.Pos())
		for _, pre := range d.Preconditions {
			fmt.Fprintf(sb, "%s(expect %s)\n", indent(depth+1), pre.Expr.String())
		}
		for _, post := range d.Postconditions {
			fmt.Fprintf(sb, "%s(ensure %s)\n", indent(depth+1), post.Expr.String())
		}
		dumpBlock(sb, d.Body, depth+1)
	}
}

func dumpBlock(sb *strings.Builder, b *ast.Block, depth int) {
	if b == nil {
		return
	}
	for _, stmt := range b.Statements {
		dumpStatement(sb, stmt, depth)
	}
}

func dumpStatement(sb *strings.Builder, stmt ast.Statement, depth int) {
	switch s := stmt.(type) {
	case *ast.LetStatement:
		fmt.Fprintf(sb, "%s(let %s = %s)\n", indent(depth), s.Name, s.Value.String())
	case *ast.AssignStatement:
		fmt.Fprintf(sb, "%s(assign %s = %s)\n", indent(depth), s.Target, s.Value.String())
	case *ast.ExpressionStatement:
		fmt.Fprintf(sb, "%s(expr %s)\n", indent(depth), s.Expr.String())
	default:
		fmt.Fprintf(sb, "%s%s\n", indent(depth), stmt.String())
	}
}

func indent(depth int) string {
	return strings.Repeat("  ", depth)
}
