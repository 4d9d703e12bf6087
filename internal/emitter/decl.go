package emitter

import (
	"strconv"
	"strings"

	"github.com/vibelang/vbl/internal/ast"
	"github.com/vibelang/vbl/internal/verifier"
)

// emitTypeDecl lowers one type declaration.
func (e *Emitter) emitTypeDecl(sb *strings.Builder, d *ast.TypeDecl) {
	switch d.DefKind {
	case ast.AliasTypeDef:
		sb.WriteString("type " + d.Name + " = " + goType(d.Alias) + "\n")
	case ast.RefinedTypeDef:
		e.emitRefinedTypeDecl(sb, d)
	case ast.SumTypeDef:
		e.emitSumTypeDecl(sb, d)
	default:
		e.internalError(d.Position, "emitter cannot lower type definition kind %v", d.DefKind)
	}
}

func (e *Emitter) emitRefinedTypeDecl(sb *strings.Builder, d *ast.TypeDecl) {
	base := goType(d.Base)
	sb.WriteString("type " + d.Name + " " + base + "\n\n")
	sb.WriteString("func New" + d.Name + "(value " + base + ") " + d.Name + " {\n")
	c := &exprCtx{aliases: map[string]string{"self": "value", "value": "value"}}
	for _, inv := range d.Invariants {
		if !verifier.ResidualRequired(e.Level, inv.Status) {
			continue
		}
		sb.WriteString("\tif !(" + e.emitExpr(inv.Expr, c) + ") {\n")
		sb.WriteString("\t\tpanic(\"Refined type invariant failed: " + escapeGoString(inv.Expr.String()) + "\")\n")
		sb.WriteString("\t}\n")
	}
	sb.WriteString("\treturn " + d.Name + "(value)\n}\n")
}

func (e *Emitter) emitSumTypeDecl(sb *strings.Builder, d *ast.TypeDecl) {
	sb.WriteString("type " + d.Name + " struct {\n\ttag     string\n\tpayload []any\n}\n")
	for _, v := range d.Variants {
		params := make([]string, len(v.Payload))
		args := make([]string, len(v.Payload))
		for i, p := range v.Payload {
			params[i] = "p" + strconv.Itoa(i) + " " + goType(p)
			args[i] = "p" + strconv.Itoa(i)
		}
		sb.WriteString("\nfunc " + v.Name + "(" + strings.Join(params, ", ") + ") " + d.Name + " {\n")
		if len(args) == 0 {
			sb.WriteString("\treturn " + d.Name + "{tag: " + strconv.Quote(v.Name) + "}\n")
		} else {
			sb.WriteString("\treturn " + d.Name + "{tag: " + strconv.Quote(v.Name) + ", payload: []any{" + strings.Join(args, ", ") + "}}\n")
		}
		sb.WriteString("}\n")
	}
}

// emitFunctionDecl lowers one function declaration to a procedure with the
// same name and parameter names, with residual contract checks at entry and
// every exit.
func (e *Emitter) emitFunctionDecl(sb *strings.Builder, d *ast.FunctionDecl) {
	params := make([]string, len(d.Params))
	for i, p := range d.Params {
		params[i] = p.Name + " " + goType(p.Type)
	}
	retType := goType(d.ReturnType)
	sb.WriteString("func " + d.Name + "(" + strings.Join(params, ", ") + ") " + retType + " {\n")

	oldVars, oldOrder := e.collectOldVars(d)
	for _, name := range oldOrder {
		sb.WriteString("\t" + oldVars[name] + " := " + name + "\n")
	}
	bodyCtx := &exprCtx{oldVars: oldVars}

	for _, c := range d.Preconditions {
		if !verifier.ResidualRequired(e.Level, c.Status) {
			continue
		}
		sb.WriteString("\tif !(" + e.emitExpr(c.Expr, nil) + ") {\n")
		sb.WriteString("\t\tpanic(\"Precondition failed: " + escapeGoString(c.Expr.String()) + "\")\n")
		sb.WriteString("\t}\n")
	}

	boundResult := false
	stmts := d.Body.Statements
	for i, stmt := range stmts {
		if i == len(stmts)-1 {
			if es, ok := stmt.(*ast.ExpressionStatement); ok {
				sb.WriteString("\tresult := " + e.emitExpr(es.Expr, bodyCtx) + "\n")
				boundResult = true
				continue
			}
		}
		e.emitStatement(sb, "\t", stmt, bodyCtx)
	}
	if !boundResult {
		sb.WriteString("\tvar result " + retType + "\n")
	}

	for _, c := range d.Postconditions {
		if !verifier.ResidualRequired(e.Level, c.Status) {
			continue
		}
		sb.WriteString("\tif !(" + e.emitExpr(c.Expr, bodyCtx) + ") {\n")
		sb.WriteString("\t\tpanic(\"Postcondition failed: " + escapeGoString(c.Expr.String()) + "\")\n")
		sb.WriteString("\t}\n")
	}

	sb.WriteString("\treturn result\n}\n")
}

// collectOldVars finds every distinct parameter referenced by `old(...)` in
// those of d's postconditions that still need a runtime check, and assigns
// each a deterministic entry-snapshot local
// name, binding a fresh local at entry for each old-referenced expression.
// oldOrder preserves first-seen order so emission is deterministic
// regardless of Go map iteration order.
func (e *Emitter) collectOldVars(d *ast.FunctionDecl) (map[string]string, []string) {
	vars := make(map[string]string)
	var order []string
	seen := make(map[string]bool)
	for _, c := range d.Postconditions {
		if !verifier.ResidualRequired(e.Level, c.Status) {
			continue
		}
		collectOldNames(c.Expr, seen, &order)
	}
	for _, name := range order {
		vars[name] = "old_" + name
	}
	return vars, order
}

func collectOldNames(e ast.Expression, seen map[string]bool, order *[]string) {
	switch e := e.(type) {
	case *ast.OldExpression:
		if id, ok := e.Inner.(*ast.Identifier); ok {
			if !seen[id.Name] {
				seen[id.Name] = true
				*order = append(*order, id.Name)
			}
		}
	case *ast.BinaryExpression:
		collectOldNames(e.Left, seen, order)
		collectOldNames(e.Right, seen, order)
	case *ast.UnaryExpression:
		collectOldNames(e.Operand, seen, order)
	case *ast.ParenExpression:
		collectOldNames(e.Inner, seen, order)
	case *ast.CallExpression:
		collectOldNames(e.Callee, seen, order)
		for _, a := range e.Args {
			collectOldNames(a, seen, order)
		}
	case *ast.MemberAccessExpression:
		collectOldNames(e.Object, seen, order)
	case *ast.ArrayLiteral:
		for _, el := range e.Elements {
			collectOldNames(el, seen, order)
		}
	case *ast.WhenExpression:
		collectOldNames(e.Condition, seen, order)
		if v := e.Then.Value(); v != nil {
			collectOldNames(v, seen, order)
		}
		if e.Else != nil {
			if v := e.Else.Value(); v != nil {
				collectOldNames(v, seen, order)
			}
		}
	}
}

func escapeGoString(s string) string {
	quoted := strconv.Quote(s)
	return quoted[1 : len(quoted)-1]
}
