package emitter

import (
	"strings"

	"github.com/vibelang/vbl/internal/ast"
)

// emitStatement lowers one non-trailing block statement verbatim.
func (e *Emitter) emitStatement(sb *strings.Builder, indent string, stmt ast.Statement, c *exprCtx) {
	switch s := stmt.(type) {
	case *ast.LetStatement:
		sb.WriteString(indent + s.Name + " := " + e.emitExpr(s.Value, c) + "\n")
	case *ast.AssignStatement:
		sb.WriteString(indent + s.Target + " = " + e.emitExpr(s.Value, c) + "\n")
	case *ast.ExpressionStatement:
		sb.WriteString(indent + "_ = " + e.emitExpr(s.Expr, c) + "\n")
	default:
		e.internalError(stmt.Pos(), "emitter cannot lower statement %T", stmt)
	}
}
