package emitter

import (
	"strconv"
	"strings"

	"github.com/vibelang/vbl/internal/ast"
	"github.com/vibelang/vbl/internal/types"
)

// exprCtx carries the identifier substitutions live while emitting one
// expression tree: `self`/`value` inside a refined-type invariant collapse
// to the constructor's single parameter, and `old(e)` inside a postcondition
// resolves to the entry-snapshot local bound for e at function entry.
type exprCtx struct {
	aliases map[string]string
	oldVars map[string]string
}

func (c *exprCtx) alias(name string) (string, bool) {
	if c == nil || c.aliases == nil {
		return "", false
	}
	v, ok := c.aliases[name]
	return v, ok
}

func (c *exprCtx) old(name string) (string, bool) {
	if c == nil || c.oldVars == nil {
		return "", false
	}
	v, ok := c.oldVars[name]
	return v, ok
}

// emitExpr lowers an expression to target source text.
func (e *Emitter) emitExpr(expr ast.Expression, c *exprCtx) string {
	switch expr := expr.(type) {
	case *ast.IntegerLiteral:
		return strconv.FormatInt(expr.Value, 10)
	case *ast.FloatLiteral:
		return expr.Raw
	case *ast.StringLiteral:
		return strconv.Quote(expr.Value)
	case *ast.BoolLiteral:
		if expr.Value {
			return "true"
		}
		return "false"
	case *ast.Identifier:
		if v, ok := c.alias(expr.Name); ok {
			return v
		}
		return expr.Name
	case *ast.OldExpression:
		if id, ok := expr.Inner.(*ast.Identifier); ok {
			if v, ok := c.old(id.Name); ok {
				return v
			}
		}
		e.internalError(expr.Position, "old(...) must wrap a bare parameter reference")
		return e.emitExpr(expr.Inner, c)
	case *ast.ParenExpression:
		return "(" + e.emitExpr(expr.Inner, c) + ")"
	case *ast.UnaryExpression:
		return expr.Operator + e.emitExpr(expr.Operand, c)
	case *ast.BinaryExpression:
		return e.emitExpr(expr.Left, c) + " " + expr.Operator + " " + e.emitExpr(expr.Right, c)
	case *ast.CallExpression:
		args := make([]string, len(expr.Args))
		for i, a := range expr.Args {
			args[i] = e.emitExpr(a, c)
		}
		return e.emitExpr(expr.Callee, c) + "(" + strings.Join(args, ", ") + ")"
	case *ast.MemberAccessExpression:
		return e.emitExpr(expr.Object, c) + "." + expr.Member
	case *ast.ArrayLiteral:
		elemType := "any"
		if arr, ok := expr.ResolvedType().(*types.Array); ok {
			elemType = goTypeFromResolved(arr.Element)
		}
		parts := make([]string, len(expr.Elements))
		for i, el := range expr.Elements {
			parts[i] = e.emitExpr(el, c)
		}
		return "[]" + elemType + "{" + strings.Join(parts, ", ") + "}"
	case *ast.RecordLiteral:
		// Record literals have no declared shape in, so there is no Go struct type
		// to target; field values are still evaluated, in source order, for their
		// side effects.
		var sb strings.Builder
		sb.WriteString("func() struct{} {\n")
		for _, f := range expr.Fields {
			sb.WriteString("\t_ = " + e.emitExpr(f.Value, c) + "\n")
		}
		sb.WriteString("\treturn struct{}{}\n}()")
		return sb.String()
	case *ast.WhenExpression:
		return e.emitWhen(expr, c)
	case *ast.GivenExpression:
		return e.emitGiven(expr, c)
	default:
		e.internalError(expr.Pos(), "emitter cannot lower expression %T", expr)
		return "nil"
	}
}

// emitWhen lowers `when`/`otherwise` to an immediately-invoked function
// literal carrying a two-arm conditional, since VibeLang's `when` is an
// expression and the target language's `if` is a statement.
func (e *Emitter) emitWhen(expr *ast.WhenExpression, c *exprCtx) string {
	retType := goTypeFromResolved(expr.ResolvedType())
	var sb strings.Builder
	sb.WriteString("func() " + retType + " {\n")
	sb.WriteString("\tif " + e.emitExpr(expr.Condition, c) + " {\n")
	e.emitReturningBlock(&sb, "\t\t", expr.Then, c)
	if expr.Else != nil {
		sb.WriteString("\t} else {\n")
		e.emitReturningBlock(&sb, "\t\t", expr.Else, c)
		sb.WriteString("\t}\n")
	} else {
		sb.WriteString("\t}\n")
	}
	sb.WriteString("\tvar zero " + retType + "\n\treturn zero\n")
	sb.WriteString("}()")
	return sb.String()
}

// emitGiven lowers a match expression to an immediately-invoked function
// literal holding the scrutinee in a local and testing each case in source
// order.
func (e *Emitter) emitGiven(expr *ast.GivenExpression, c *exprCtx) string {
	retType := goTypeFromResolved(expr.ResolvedType())
	scrutVar := "match" + strconv.Itoa(e.nextTemp())
	var sb strings.Builder
	sb.WriteString("func() " + retType + " {\n")
	sb.WriteString("\t" + scrutVar + " := " + e.emitExpr(expr.Scrutinee, c) + "\n")
	for _, mc := range expr.Cases {
		e.emitPattern(&sb, "\t", scrutVar, mc.Pattern, func(indent string) {
			sb.WriteString(indent + "return " + e.emitExpr(mc.Result, c) + "\n")
		})
	}
	sb.WriteString("\tpanic(\"no matching pattern\")\n")
	sb.WriteString("}()")
	return sb.String()
}

// emitReturningBlock lowers a block used in value position (a `when` arm):
// every statement but the trailing value expression lowers verbatim, and
// the trailing value (if any) becomes a return.
func (e *Emitter) emitReturningBlock(sb *strings.Builder, indent string, b *ast.Block, c *exprCtx) {
	for i, stmt := range b.Statements {
		if i == len(b.Statements)-1 {
			if es, ok := stmt.(*ast.ExpressionStatement); ok {
				sb.WriteString(indent + "return " + e.emitExpr(es.Expr, c) + "\n")
				continue
			}
		}
		e.emitStatement(sb, indent, stmt, c)
	}
}
